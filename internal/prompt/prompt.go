package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

type Kind string

const (
	PersonalImpact      Kind = "personal_impact"
	EmailDraft          Kind = "email_draft"
	MultiPerspective    Kind = "multi_perspective"
	ClarifyingQuestions Kind = "clarifying_questions"
	ChatTurn            Kind = "chat_turn"
)

func (k Kind) Valid() bool {
	switch k {
	case PersonalImpact, EmailDraft, MultiPerspective, ClarifyingQuestions, ChatTurn:
		return true
	}
	return false
}

// Extra carries the optional context a kind may need: prior impacts for
// email drafts, document text for multi-perspective, the user's message for chat.
type Extra struct {
	Impacts  []models.ImpactAnalysis
	Document string
	Message  string
}

type Prompt struct {
	System string
	User   string
}

// Build selects the system template for kind and fills the user template from
// profile and extra. Output depends only on its inputs.
func Build(profile *models.UserProfile, kind Kind, extra Extra) Prompt {
	switch kind {
	case PersonalImpact:
		return Prompt{System: personalImpactSystem, User: personalImpactUser(profile)}
	case EmailDraft:
		return Prompt{System: emailDraftSystem, User: emailDraftUser(profile, extra.Impacts)}
	case MultiPerspective:
		return Prompt{System: multiPerspectiveSystem, User: multiPerspectiveUser(profile, extra.Document)}
	case ClarifyingQuestions:
		return Prompt{System: clarifyingQuestionsSystem, User: clarifyingQuestionsUser(profile)}
	default:
		return Prompt{System: chatSystem(profile), User: chatUser(extra.Message)}
	}
}

func personalImpactUser(p *models.UserProfile) string {
	p = orEmpty(p)
	return fmt.Sprintf(`Analyze the Finance Bill 2025 impact for a %s in %s with %s income.

Profession Context: %s

Consider:
- Specific tax changes affecting this profession
- Digital economy impacts
- Constitutional rights (Articles 33, 37, 201, Chapter 6)
- Practical financial implications
- Legal strategies and advocacy opportunities

%s
Provide 3-5 specific impact analyses with severity levels, constitutional rights, and actionable recommendations.`,
		p.Occupation, p.Location, p.IncomeLevel, ProfessionContext(p.Occupation), profileBlock(p))
}

func emailDraftUser(p *models.UserProfile, impacts []models.ImpactAnalysis) string {
	p = orEmpty(p)
	var concerns strings.Builder
	for _, impact := range impacts {
		concerns.WriteString(fmt.Sprintf("- %s: %s\n", impact.Category, impact.Description))
	}
	if concerns.Len() == 0 {
		concerns.WriteString("- General cost of living and fair taxation\n")
	}

	return fmt.Sprintf(`Draft a professional email to an MP regarding Finance Bill 2025 for a %s.

Profession Context: %s

Key concerns based on analysis:
%s
Write a persuasive email that:
- References constitutional rights
- Includes specific profession impacts
- Suggests concrete policy changes
- Maintains respectful tone
- Includes call to action

Format as: Subject line, then email body.`,
		p.Occupation, ProfessionContext(p.Occupation), concerns.String())
}

func multiPerspectiveUser(p *models.UserProfile, document string) string {
	p = orEmpty(p)
	billContext := "Use general Finance Bill 2025 knowledge."
	if strings.TrimSpace(document) != "" {
		billContext = "Finance Bill Content:\n" + document
	}

	return fmt.Sprintf(`Analyze the Finance Bill 2025 impact for a %s in %s with %s income from exactly 5 perspectives.

Profession Context: %s

%s
%s

Provide detailed analysis from all 5 required perspectives with specific examples and actionable insights. Number each perspective "1." to "5." and start it with its perspective name.`,
		p.Occupation, p.Location, p.IncomeLevel, ProfessionContext(p.Occupation), profileBlock(p), billContext)
}

func clarifyingQuestionsUser(p *models.UserProfile) string {
	p = orEmpty(p)
	return fmt.Sprintf(`Generate detailed clarifying questions for a %s in %s with %s income to better analyze Finance Bill 2025 impacts.

Consider their profile:
- Occupation: %s
- Income Level: %s
- Location: %s
- Business Owner: %t
- Property Owner: %t
- Dependents: %d

Generate questions that will reveal specific ways the Finance Bill will affect them personally and professionally.`,
		p.Occupation, p.Location, p.IncomeLevel,
		p.Occupation, p.IncomeLevel, p.Location, p.BusinessOwner, p.PropertyOwner, p.Dependents)
}

func chatSystem(p *models.UserProfile) string {
	profile := "Not provided"
	if p != nil {
		if b, err := json.Marshal(p); err == nil {
			profile = string(b)
		}
	}
	return personaFramework + "\nUser Profile: " + profile + "\n\n" + chatSystemFooter
}

func chatUser(message string) string {
	if strings.TrimSpace(message) == "" {
		return "Give me an overview of how the Finance Bill 2025 affects ordinary Kenyans."
	}
	return message
}

func profileBlock(p *models.UserProfile) string {
	var b strings.Builder
	b.WriteString("User Profile:\n")
	b.WriteString(fmt.Sprintf("- Occupation: %s\n", p.Occupation))
	b.WriteString(fmt.Sprintf("- Income: %s\n", p.IncomeLevel))
	b.WriteString(fmt.Sprintf("- Location: %s\n", p.Location))
	b.WriteString(fmt.Sprintf("- Property Owner: %t\n", p.PropertyOwner))
	b.WriteString(fmt.Sprintf("- Business Owner: %t\n", p.BusinessOwner))
	b.WriteString(fmt.Sprintf("- Dependents: %d\n", p.Dependents))
	b.WriteString(fmt.Sprintf("- Transport: %s\n", strings.Join(p.Transport, ", ")))
	b.WriteString(fmt.Sprintf("- Consumption: %s\n", strings.Join(p.ConsumptionHabits, ", ")))
	if len(p.Concerns) > 0 {
		b.WriteString(fmt.Sprintf("- Concerns: %s\n", strings.Join(p.Concerns, ", ")))
	}
	return b.String()
}

func orEmpty(p *models.UserProfile) *models.UserProfile {
	if p == nil {
		return &models.UserProfile{Occupation: "citizen"}
	}
	return p
}
