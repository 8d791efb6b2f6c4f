package gateway

import (
	"context"
	"fmt"
	"sync"
)

// Provider is an external text-completion service: a system and user prompt in,
// free text out.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// Provider names used to register and select providers.
const (
	OpenAI      = "openai"
	HuggingFace = "huggingface"
	Gemini      = "gemini"
	Perplexity  = "perplexity"
)

// Gateway routes a prompt pair to a named provider. A provider that failed to
// initialize stays registered with its error, so selecting it fails hard
// instead of being skipped.
type Gateway struct {
	mu        sync.RWMutex
	providers map[string]Provider
	initErrs  map[string]error
}

func New() *Gateway {
	return &Gateway{
		providers: make(map[string]Provider),
		initErrs:  make(map[string]error),
	}
}

// Register stores p under name, or initErr when construction failed.
func (g *Gateway) Register(name string, p Provider, initErr error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if initErr != nil || p == nil {
		if initErr == nil {
			initErr = &ConfigurationError{Provider: name}
		}
		delete(g.providers, name)
		g.initErrs[name] = initErr
		return
	}
	delete(g.initErrs, name)
	g.providers[name] = p
}

// Available reports whether name is registered without an initialization error.
func (g *Gateway) Available(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.providers[name]
	return ok
}

// Complete issues a single request to the selected provider. No retry, no caching.
func (g *Gateway) Complete(ctx context.Context, system, user, provider string) (string, error) {
	g.mu.RLock()
	p, ok := g.providers[provider]
	initErr := g.initErrs[provider]
	g.mu.RUnlock()

	if !ok {
		if initErr != nil {
			return "", initErr
		}
		return "", &ConfigurationError{Provider: provider}
	}
	text, err := p.Complete(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("%s completion: %w", provider, err)
	}
	return text, nil
}

// Attempt binds a prompt pair to a provider for use in FirstSuccess.
func (g *Gateway) Attempt(provider, system, user string) Attempt[string] {
	return func(ctx context.Context) (string, error) {
		return g.Complete(ctx, system, user, provider)
	}
}
