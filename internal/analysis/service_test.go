package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/fallback"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/gateway"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/mail"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/parser"
)

var profile = &models.UserProfile{
	Occupation:        "Teacher",
	IncomeLevel:       models.IncomeMiddle,
	Location:          models.LocationRural,
	Transport:         []string{"Matatu/Bus"},
	Dependents:        2,
	ConsumptionHabits: []string{"Basic foodstuffs"},
}

func newService(t *testing.T, providers map[string]*gateway.Fake) *Service {
	t.Helper()
	gw := gateway.New()
	for _, name := range []string{gateway.HuggingFace, gateway.OpenAI, gateway.Gemini} {
		if f, ok := providers[name]; ok {
			gw.Register(name, f, nil)
			continue
		}
		gw.Register(name, nil, &gateway.ConfigurationError{Provider: name})
	}
	static := fallback.New(nil, func() time.Time { return time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC) })
	return NewService(gw, static, nil, nil)
}

const labeledReply = `Category: Classroom Technology
Impact: negative
Severity: high
Description: VAT on digital learning tools raises the cost of lesson preparation.`

func TestPersonalUsesSecondaryFirst(t *testing.T) {
	hf := &gateway.Fake{ProviderName: gateway.HuggingFace, Reply: labeledReply}
	openai := &gateway.Fake{ProviderName: gateway.OpenAI, Reply: "unused"}
	s := newService(t, map[string]*gateway.Fake{gateway.HuggingFace: hf, gateway.OpenAI: openai})

	res := s.Personal(context.Background(), profile)
	assert.Equal(t, gateway.HuggingFace, res.Source)
	assert.False(t, res.Degraded)
	require.Len(t, res.Impacts, 1)
	assert.Equal(t, "Classroom Technology", res.Impacts[0].Category)
	assert.Empty(t, openai.Calls())
}

func TestPersonalFallsThroughToPrimary(t *testing.T) {
	hf := &gateway.Fake{ProviderName: gateway.HuggingFace, Err: &gateway.ServiceError{Provider: gateway.HuggingFace, HTTPStatus: 503, Message: "loading"}}
	openai := &gateway.Fake{ProviderName: gateway.OpenAI, Reply: labeledReply}
	s := newService(t, map[string]*gateway.Fake{gateway.HuggingFace: hf, gateway.OpenAI: openai})

	res := s.Personal(context.Background(), profile)
	assert.Equal(t, gateway.OpenAI, res.Source)
	require.Len(t, openai.Calls(), 1)
	assert.Equal(t, hf.Calls()[0], openai.Calls()[0], "same prompts are retried on the next provider")
}

func TestPersonalDegradesToStatic(t *testing.T) {
	s := newService(t, map[string]*gateway.Fake{
		gateway.OpenAI: {ProviderName: gateway.OpenAI, Err: errors.New("connection reset")},
	})

	res := s.Personal(context.Background(), profile)
	assert.True(t, res.Degraded)
	assert.Equal(t, SourceStatic, res.Source)
	assert.Equal(t, NoticeStaticAnalysis, res.Notice)
	assert.Equal(t, fallback.New(nil, nil).Analyze(profile), res.Impacts)
}

func TestPersonalIncompleteProfileUsesBasicAnalysis(t *testing.T) {
	openai := &gateway.Fake{ProviderName: gateway.OpenAI, Reply: labeledReply}
	s := newService(t, map[string]*gateway.Fake{gateway.OpenAI: openai})

	res := s.Personal(context.Background(), &models.UserProfile{Occupation: "Student"})
	assert.Equal(t, NoticeBasicAnalysis, res.Notice)
	assert.Equal(t, "Education Sector Impact", res.Impacts[0].Category)
	assert.Empty(t, openai.Calls())
}

func TestMultiPerspective(t *testing.T) {
	openai := &gateway.Fake{ProviderName: gateway.OpenAI, Reply: "1. Economic & Financial Perspective\nFuel levy increases are a significant burden on rural commuters."}
	s := newService(t, map[string]*gateway.Fake{gateway.OpenAI: openai})

	res := s.MultiPerspective(context.Background(), profile, "PART I: VALUE ADDED TAX")
	require.Len(t, res.Impacts, 5)
	assert.Equal(t, parser.Perspectives[1], res.Impacts[1].Category)
	assert.Contains(t, res.Impacts[1].Description, "Fuel levy")
	assert.Contains(t, openai.Calls()[0].User, "PART I: VALUE ADDED TAX")

	down := newService(t, nil).MultiPerspective(context.Background(), profile, "")
	require.Len(t, down.Impacts, 5)
	assert.True(t, down.Degraded)
}

func TestQuestionsFallBackWhenReplyHasNone(t *testing.T) {
	openai := &gateway.Fake{ProviderName: gateway.OpenAI, Reply: "I cannot help with that."}
	s := newService(t, map[string]*gateway.Fake{gateway.OpenAI: openai})

	res := s.Questions(context.Background(), profile)
	assert.True(t, res.Degraded)
	assert.Len(t, res.Questions, 8)

	openai.Reply = "1. Do you pay for Zoom or Google Classroom?\n2. How many textbooks do you import?"
	res = s.Questions(context.Background(), profile)
	assert.False(t, res.Degraded)
	assert.Equal(t, []string{"Do you pay for Zoom or Google Classroom?", "How many textbooks do you import?"}, res.Questions)
}

func TestEmail(t *testing.T) {
	impacts := fallback.New(nil, nil).Analyze(profile)
	openai := &gateway.Fake{ProviderName: gateway.OpenAI, Reply: "Subject: Reconsider fuel levy\nDear Member,\nPlease reconsider."}
	s := newService(t, map[string]*gateway.Fake{gateway.OpenAI: openai})

	res := s.Email(context.Background(), profile, impacts)
	assert.Equal(t, gateway.OpenAI, res.Source)
	assert.Equal(t, "Reconsider fuel levy", res.Draft.Subject)
	assert.Equal(t, "Dear Member,\nPlease reconsider.", res.Draft.Body)
	assert.Equal(t, mail.DefaultRecipients(), res.Draft.To)
	assert.Equal(t, impacts, res.Draft.ImpactSummary)
	assert.Contains(t, openai.Calls()[0].User, "Transportation Costs")
}

func TestEmailFallbacks(t *testing.T) {
	s := newService(t, nil)

	withImpacts := s.Email(context.Background(), profile, s.static.Analyze(profile))
	assert.True(t, withImpacts.Degraded)
	assert.Contains(t, withImpacts.Draft.Body, "IMPACT ANALYSIS:")

	basic := s.Email(context.Background(), profile, nil)
	assert.Equal(t, "Finance Bill 2025 Impact - Teacher", basic.Draft.Subject)
	assert.Equal(t, NoticeStaticEmail, basic.Notice)
}
