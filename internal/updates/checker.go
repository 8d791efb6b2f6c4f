package updates

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/gateway"
)

const (
	systemPrompt = "You are a constitutional expert monitoring Kenya's Finance Bill 2025. Provide factual updates only."
	userPrompt   = "What are the latest developments regarding Kenya's Finance Bill 2025? Include any amendments, court cases, or public reactions in the last 24 hours."
)

const (
	MessageChecked  = "Finance Bill updates checked successfully"
	MessageNoAPIKey = "No API key configured"
)

type Update struct {
	Updates   string    `json:"updates,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Skipped   bool      `json:"skipped,omitempty"`
}

// Checker asks a search-grounded provider for the day's bill developments
// and remembers the last successful answer. Without a provider every check
// is a no-op.
type Checker struct {
	provider gateway.Provider
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.RWMutex
	latest *Update
}

// NewChecker accepts a nil provider, which is how a missing API key is
// represented.
func NewChecker(provider gateway.Provider, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{provider: provider, logger: logger, now: time.Now}
}

func (c *Checker) Enabled() bool { return c.provider != nil }

func (c *Checker) Check(ctx context.Context) (Update, error) {
	if c.provider == nil {
		c.logger.Info("perplexity API key not configured, skipping update check")
		return Update{Message: MessageNoAPIKey, Timestamp: c.now(), Skipped: true}, nil
	}

	text, err := c.provider.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		c.logger.Error("finance bill update check failed", zap.Error(err))
		return Update{}, err
	}

	u := Update{Updates: strings.TrimSpace(text), Timestamp: c.now(), Message: MessageChecked}
	c.mu.Lock()
	c.latest = &u
	c.mu.Unlock()

	c.logger.Info("finance bill updates checked", zap.Int("chars", len(u.Updates)))
	return u, nil
}

// Latest returns the last successful update, if any.
func (c *Checker) Latest() (Update, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil {
		return Update{}, false
	}
	return *c.latest, true
}
