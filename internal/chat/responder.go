package chat

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/gateway"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/prompt"
)

const Apology = "I'm sorry, I couldn't reach the advisory service just now. Please try sending your question again in a moment."

// ErrEmptyMessage is returned by Send for a blank message; nothing is appended.
var ErrEmptyMessage = errors.New("message is empty")

type Completer interface {
	Complete(ctx context.Context, system, user, provider string) (string, error)
}

// Responder answers one chat turn through the configured providers in order.
type Responder struct {
	llm       Completer
	providers []string
	logger    *zap.Logger
}

func NewResponder(llm Completer, providers []string, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{llm: llm, providers: providers, logger: logger}
}

// Respond returns the model's reply, or Apology when no provider answers.
// The bool reports whether the reply came from a provider.
func (r *Responder) Respond(ctx context.Context, message string, profile *models.UserProfile) (string, bool) {
	p := prompt.Build(profile, prompt.ChatTurn, prompt.Extra{Message: message})

	attempts := make([]gateway.Attempt[string], 0, len(r.providers))
	for _, name := range r.providers {
		attempts = append(attempts, func(ctx context.Context) (string, error) {
			return r.llm.Complete(ctx, p.System, p.User, name)
		})
	}
	reply, err := gateway.FirstSuccess(ctx, attempts...)
	if err != nil {
		r.logger.Warn("chat reply failed", zap.Error(err))
		return Apology, false
	}
	return strings.TrimSpace(reply), true
}

// Send runs one turn against t: the user's message is appended, then exactly
// one reply, which is Apology on failure.
func (r *Responder) Send(ctx context.Context, t *Transcript, message string, profile *models.UserProfile) (models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}
	t.Append(message, true)
	reply, _ := r.Respond(ctx, message, profile)
	return t.Append(reply, false), nil
}

var suggestions = []string{
	"How does the Finance Bill 2025 affect students?",
	"What are the new digital taxes for IT professionals?",
	"How will parents be impacted by the new VAT changes?",
	"What constitutional rights protect me from unfair taxation?",
	"How can I legally challenge aspects of this bill?",
	"What are the tax benefits for employed persons?",
	"How does this bill affect small business owners?",
	"What loopholes exist in the current draft?",
}

// Suggestions returns the starter questions offered before the first turn.
func Suggestions() []string {
	return append([]string(nil), suggestions...)
}
