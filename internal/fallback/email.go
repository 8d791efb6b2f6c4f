package fallback

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

const signatureDateLayout = "2 January 2006"

// DraftEmail renders the fixed advocacy letter for profile and impacts.
func (a *Analyzer) DraftEmail(p *models.UserProfile, impacts []models.ImpactAnalysis) models.EmailDraft {
	if p == nil {
		p = &models.UserProfile{Occupation: "Citizen"}
	}

	var b strings.Builder
	b.WriteString("Dear Recipients,\n\n")
	b.WriteString("I hope this message finds you well. I am writing to share my personalized analysis of how the Finance Bill 2025 may impact my life and livelihood, as guaranteed by my constitutional rights under Articles 33 (Freedom of Expression) and 37 (Right to Assembly and Petition).\n\n")

	b.WriteString("PERSONAL PROFILE:\n")
	fmt.Fprintf(&b, "- Occupation: %s\n", p.Occupation)
	fmt.Fprintf(&b, "- Location: %s Kenya\n", p.Location)
	fmt.Fprintf(&b, "- Income Level: %s\n", p.IncomeLevel)
	fmt.Fprintf(&b, "- Dependents: %d\n", p.Dependents)
	fmt.Fprintf(&b, "- Property Owner: %s\n", yesNo(p.PropertyOwner))
	fmt.Fprintf(&b, "- Business Owner: %s\n", yesNo(p.BusinessOwner))
	fmt.Fprintf(&b, "- Main Transport: %s\n\n", strings.Join(p.Transport, ", "))

	b.WriteString("IMPACT ANALYSIS:\n")
	for i, impact := range impacts {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, strings.ToUpper(impact.Category))
		fmt.Fprintf(&b, "   Impact Level: %s (%s severity)\n\n", strings.ToUpper(string(impact.Impact)), impact.Severity)
		fmt.Fprintf(&b, "   %s\n\n", impact.Description)
		rights := "General fair taxation principles"
		if len(impact.ConstitutionalRights) > 0 {
			rights = strings.Join(impact.ConstitutionalRights, ", ")
		}
		fmt.Fprintf(&b, "   Constitutional Rights Affected: %s\n", rights)
		writeBullets(&b, "Recommended Actions", impact.Recommendations)
		writeBullets(&b, "Legal Considerations", impact.Loopholes)
	}

	b.WriteString(`
CONSTITUTIONAL BASIS:
This analysis is grounded in Kenya's Constitution, particularly:
- Article 201: Principles of Public Finance requiring fair and reasonable taxation
- Article 33: My right to freely express my views on public policy
- Article 37: My right to petition government on matters of public concern
- Chapter Six: Leadership and integrity principles that should guide all public officials

CALL TO ACTION:
I respectfully request that our elected representatives:
1. Consider the disproportionate impact on citizens like myself
2. Ensure proper public participation in fiscal policy decisions
3. Uphold constitutional principles of fair taxation
4. Provide clear implementation guidelines to minimize uncertainty

I trust that this information will contribute to informed decision-making that serves the best interests of all Kenyans while upholding our constitutional values.

In service of our nation and constitution,

A Concerned Kenyan Citizen
`)
	b.WriteString(a.now().Format(signatureDateLayout))
	b.WriteString("\n\n---\nThis analysis was generated using constitutional principles and publicly available information about the Finance Bill 2025. All views expressed are protected under Article 33 of the Constitution of Kenya.")

	return models.EmailDraft{
		To:            a.Recipients(),
		Subject:       fmt.Sprintf("Finance Bill 2025 Impact Analysis - %s from %s Kenya", p.Occupation, p.Location),
		Body:          b.String(),
		UserProfile:   p.Clone(),
		ImpactSummary: append([]models.ImpactAnalysis(nil), impacts...),
	}
}

// BasicEmail is the short letter used when no draft could be generated.
func (a *Analyzer) BasicEmail(p *models.UserProfile) models.EmailDraft {
	if p == nil {
		p = &models.UserProfile{Occupation: "Citizen"}
	}
	body := fmt.Sprintf(`Dear Honorable Member of Parliament,

I am writing as a %s from %s to express my concerns about the Finance Bill 2025.

Based on my profession and circumstances, I am particularly concerned about the economic impacts of this legislation.

I urge you to consider the constitutional principles of fair taxation as outlined in Article 201 of our Constitution.

Thank you for your consideration.

Sincerely,
A Concerned Citizen`, p.Occupation, p.Location)

	return models.EmailDraft{
		To:          a.Recipients(),
		Subject:     "Finance Bill 2025 Impact - " + p.Occupation,
		Body:        body,
		UserProfile: p.Clone(),
	}
}

// Recipients returns a copy of the addresses drafts are sent to.
func (a *Analyzer) Recipients() []string {
	return append([]string(nil), a.recipients...)
}

func writeBullets(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n   %s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "   • %s\n", item)
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
