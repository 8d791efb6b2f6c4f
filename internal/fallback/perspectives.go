package fallback

import (
	"strings"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

// MultiPerspective returns the five canned perspectives in their fixed order.
func (a *Analyzer) MultiPerspective(p *models.UserProfile) []models.ImpactAnalysis {
	occupation := "professional"
	if p != nil && strings.TrimSpace(p.Occupation) != "" {
		occupation = p.Occupation
	}
	return []models.ImpactAnalysis{
		{
			Category:             "Constitutional & Legal Perspective",
			Impact:               models.Negative,
			Severity:             models.SeverityMedium,
			Description:          "The Finance Bill 2025 raises constitutional concerns regarding fair taxation principles under Article 201, potentially affecting your rights to economic participation.",
			ConstitutionalRights: []string{"Article 201 (Fair Taxation)", "Article 33 (Freedom of Expression)"},
			Recommendations:      []string{"File constitutional petition", "Join public participation forums"},
			Loopholes:            []string{"Appeal on constitutional grounds", "Seek judicial review"},
		},
		{
			Category:             "Economic & Financial Perspective",
			Impact:               models.Negative,
			Severity:             models.SeverityHigh,
			Description:          "Direct financial impact through increased costs of digital services, imported goods, and professional tools affecting your disposable income.",
			ConstitutionalRights: []string{"Article 43 (Economic Rights)"},
			Recommendations:      []string{"Budget adjustment for increased costs", "Explore tax-efficient alternatives"},
			Loopholes:            []string{"Maximize available deductions", "Time major purchases strategically"},
		},
		{
			Category:             "Professional & Career Perspective",
			Impact:               models.Negative,
			Severity:             models.SeverityMedium,
			Description:          "As a " + occupation + ", you face profession-specific impacts including increased operational costs and compliance requirements.",
			ConstitutionalRights: []string{"Article 41 (Fair Labour Practices)"},
			Recommendations:      []string{"Join professional associations for collective action", "Adapt business model to new tax reality"},
			Loopholes:            []string{"Professional expense deductions", "Industry-specific exemptions"},
		},
		{
			Category:             "Social & Community Perspective",
			Impact:               models.Negative,
			Severity:             models.SeverityMedium,
			Description:          "Community-wide effects including reduced spending power, potential job market changes, and social service funding implications.",
			ConstitutionalRights: []string{"Article 43 (Social Security)"},
			Recommendations:      []string{"Community organizing and advocacy", "Support local economic initiatives"},
			Loopholes:            []string{"Community-based tax planning", "Collective purchasing power"},
		},
		{
			Category:             "Long-term Strategic Perspective",
			Impact:               models.Neutral,
			Severity:             models.SeverityMedium,
			Description:          "Long-term implications for economic growth, digital transformation, and Kenya's competitive position in the global economy.",
			ConstitutionalRights: []string{"Article 201 (Sustainable Development)"},
			Recommendations:      []string{"Strategic financial planning", "Invest in future-proof skills"},
			Loopholes:            []string{"Position for emerging opportunities", "Build resilient financial base"},
		},
	}
}

var baseQuestions = []string{
	"What percentage of your income comes from digital services or online work?",
	"Do you frequently purchase imported goods or equipment for your profession?",
	"Are you planning any major purchases or investments in the next 12 months?",
	"Do you use mobile money services daily for business transactions?",
	"What professional tools or software do you rely on that might be affected?",
}

var professionQuestions = []struct {
	keyword   string
	questions []string
}{
	{"teacher", []string{
		"Do you use paid online educational platforms or tools?",
		"What percentage of your teaching materials are imported?",
		"Do you earn additional income from online tutoring?",
	}},
	{"student", []string{
		"What online learning platforms do you subscribe to?",
		"Do you purchase textbooks or materials from international sources?",
		"How dependent are you on digital devices for your studies?",
	}},
	{"entrepreneur", []string{
		"What digital payment platforms does your business use?",
		"Do you sell products or services online?",
		"What percentage of your revenue comes from digital channels?",
	}},
}

// Questions returns the base clarifying questions plus those of the first
// matching profession.
func (a *Analyzer) Questions(p *models.UserProfile) []string {
	out := append([]string(nil), baseQuestions...)
	if p == nil {
		return out
	}
	for _, pq := range professionQuestions {
		if p.OccupationContains(pq.keyword) {
			return append(out, pq.questions...)
		}
	}
	return out
}
