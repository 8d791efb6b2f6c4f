package analysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/fallback"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/gateway"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/parser"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/prompt"
)

// Source reported when the static analyzer produced the result.
const SourceStatic = "static"

// Notices shown to the user when a result is degraded.
const (
	NoticeStaticAnalysis = "AI analysis is unavailable right now, so this is a standard analysis based on your profile."
	NoticeStaticEmail    = "AI drafting is unavailable right now, so this is a standard letter you can edit."
	NoticeBasicAnalysis  = "Your profile is incomplete, so this is a basic analysis."
)

// Completer sends a prompt pair to a named provider.
type Completer interface {
	Complete(ctx context.Context, system, user, provider string) (string, error)
}

// Chains lists, per prompt kind, the providers tried in order before the
// static analyzer takes over.
type Chains map[prompt.Kind][]string

// DefaultChains sends the personal analysis and email to the hosted
// secondary model first, then the primary; everything else starts at the
// primary. Gemini is the last provider in every chain.
func DefaultChains() Chains {
	return Chains{
		prompt.PersonalImpact:      {gateway.HuggingFace, gateway.OpenAI, gateway.Gemini},
		prompt.EmailDraft:          {gateway.HuggingFace, gateway.OpenAI, gateway.Gemini},
		prompt.MultiPerspective:    {gateway.OpenAI, gateway.Gemini},
		prompt.ClarifyingQuestions: {gateway.OpenAI, gateway.Gemini},
		prompt.ChatTurn:            {gateway.OpenAI, gateway.Gemini},
	}
}

// Service runs profile -> prompt -> provider chain -> parser, substituting
// the static analyzer's output when every provider fails.
type Service struct {
	llm    Completer
	static *fallback.Analyzer
	chains Chains
	logger *zap.Logger
}

func NewService(llm Completer, static *fallback.Analyzer, chains Chains, logger *zap.Logger) *Service {
	if chains == nil {
		chains = DefaultChains()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{llm: llm, static: static, chains: chains, logger: logger}
}

type ImpactResult struct {
	Impacts  []models.ImpactAnalysis `json:"impacts"`
	Source   string                  `json:"source"`
	Degraded bool                    `json:"degraded"`
	Notice   string                  `json:"notice,omitempty"`
}

type EmailResult struct {
	Draft    models.EmailDraft `json:"emailDraft"`
	Source   string            `json:"source"`
	Degraded bool              `json:"degraded"`
	Notice   string            `json:"notice,omitempty"`
}

type QuestionsResult struct {
	Questions []string `json:"questions"`
	Source    string   `json:"source"`
	Degraded  bool     `json:"degraded"`
}

type completion struct {
	text     string
	provider string
}

// complete walks the chain for kind and reports which provider answered.
func (s *Service) complete(ctx context.Context, kind prompt.Kind, p prompt.Prompt) (completion, error) {
	providers := s.chains[kind]
	attempts := make([]gateway.Attempt[completion], 0, len(providers))
	for _, name := range providers {
		attempts = append(attempts, func(ctx context.Context) (completion, error) {
			text, err := s.llm.Complete(ctx, p.System, p.User, name)
			if err != nil {
				return completion{}, err
			}
			return completion{text: text, provider: name}, nil
		})
	}
	c, err := gateway.FirstSuccess(ctx, attempts...)
	if err != nil {
		s.logger.Warn("provider chain exhausted",
			zap.String("kind", string(kind)),
			zap.Strings("providers", providers),
			zap.Error(err))
	}
	return c, err
}

// Personal returns the personal impact analysis for profile. An incomplete
// profile gets the basic analysis without calling any provider.
func (s *Service) Personal(ctx context.Context, profile *models.UserProfile) ImpactResult {
	if profile == nil || profile.Validate() != nil {
		return ImpactResult{
			Impacts:  s.static.BasicAnalysis(profile),
			Source:   SourceStatic,
			Degraded: true,
			Notice:   NoticeBasicAnalysis,
		}
	}

	c, err := s.complete(ctx, prompt.PersonalImpact, prompt.Build(profile, prompt.PersonalImpact, prompt.Extra{}))
	if err != nil {
		return s.Static(profile)
	}
	return ImpactResult{Impacts: parser.ParseImpacts(c.text, profile), Source: c.provider}
}

// Static runs only the rule-based analyzer.
func (s *Service) Static(profile *models.UserProfile) ImpactResult {
	return ImpactResult{
		Impacts:  s.static.Analyze(profile),
		Source:   SourceStatic,
		Degraded: true,
		Notice:   NoticeStaticAnalysis,
	}
}

// MultiPerspective returns exactly five perspective records. document is the
// ingested bill text and may be empty.
func (s *Service) MultiPerspective(ctx context.Context, profile *models.UserProfile, document string) ImpactResult {
	p := prompt.Build(profile, prompt.MultiPerspective, prompt.Extra{Document: document})
	c, err := s.complete(ctx, prompt.MultiPerspective, p)
	if err != nil {
		return ImpactResult{
			Impacts:  s.static.MultiPerspective(profile),
			Source:   SourceStatic,
			Degraded: true,
			Notice:   NoticeStaticAnalysis,
		}
	}
	return ImpactResult{Impacts: parser.ParseMultiPerspective(c.text, profile), Source: c.provider}
}

// Questions returns clarifying questions, falling back to the canned set when
// no provider answers or the answer holds no questions.
func (s *Service) Questions(ctx context.Context, profile *models.UserProfile) QuestionsResult {
	p := prompt.Build(profile, prompt.ClarifyingQuestions, prompt.Extra{})
	c, err := s.complete(ctx, prompt.ClarifyingQuestions, p)
	if err == nil {
		if qs := parser.ParseQuestions(c.text); len(qs) > 0 {
			return QuestionsResult{Questions: qs, Source: c.provider}
		}
	}
	return QuestionsResult{Questions: s.static.Questions(profile), Source: SourceStatic, Degraded: true}
}

// Email drafts a letter to the default recipients from profile and impacts.
func (s *Service) Email(ctx context.Context, profile *models.UserProfile, impacts []models.ImpactAnalysis) EmailResult {
	p := prompt.Build(profile, prompt.EmailDraft, prompt.Extra{Impacts: impacts})
	c, err := s.complete(ctx, prompt.EmailDraft, p)
	if err != nil {
		return s.StaticEmail(profile, impacts)
	}

	draft := parser.ParseEmail(c.text, profile)
	draft.To = s.static.Recipients()
	draft.ImpactSummary = append([]models.ImpactAnalysis(nil), impacts...)
	return EmailResult{Draft: draft, Source: c.provider}
}

// StaticEmail renders the template letter, or the short letter when there
// are no impacts to itemise.
func (s *Service) StaticEmail(profile *models.UserProfile, impacts []models.ImpactAnalysis) EmailResult {
	draft := s.static.BasicEmail(profile)
	if len(impacts) > 0 {
		draft = s.static.DraftEmail(profile, impacts)
	}
	return EmailResult{Draft: draft, Source: SourceStatic, Degraded: true, Notice: NoticeStaticEmail}
}
