package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

func sampleProfile() *models.UserProfile {
	return &models.UserProfile{
		Occupation:        "Secondary School Teacher",
		IncomeLevel:       models.IncomeMiddle,
		Location:          models.LocationRural,
		Transport:         []string{"Matatu/Bus"},
		Dependents:        2,
		ConsumptionHabits: []string{"Basic foodstuffs", "Mobile money"},
	}
}

func TestBuildEveryKindIsNonEmptyAndDeterministic(t *testing.T) {
	kinds := []Kind{PersonalImpact, EmailDraft, MultiPerspective, ClarifyingQuestions, ChatTurn}
	for _, k := range kinds {
		t.Run(string(k), func(t *testing.T) {
			a := Build(sampleProfile(), k, Extra{Message: "What about VAT?"})
			b := Build(sampleProfile(), k, Extra{Message: "What about VAT?"})
			assert.NotEmpty(t, a.System)
			assert.NotEmpty(t, a.User)
			assert.Equal(t, a, b)
		})
	}
}

func TestPersonalImpactInterpolatesProfile(t *testing.T) {
	p := Build(sampleProfile(), PersonalImpact, Extra{})
	assert.Contains(t, p.User, "Secondary School Teacher in rural with middle income")
	assert.Contains(t, p.User, "- Transport: Matatu/Bus")
	assert.Contains(t, p.User, "- Consumption: Basic foodstuffs, Mobile money")
	assert.Contains(t, p.User, "Teachers face increased costs")
}

func TestEmailDraftListsImpacts(t *testing.T) {
	impacts := []models.ImpactAnalysis{{Category: "Transportation Costs", Description: "Fares will rise."}}
	p := Build(sampleProfile(), EmailDraft, Extra{Impacts: impacts})
	assert.Contains(t, p.User, "- Transportation Costs: Fares will rise.")
	assert.Contains(t, p.User, "Format as: Subject line, then email body.")
}

func TestMultiPerspectiveUsesDocument(t *testing.T) {
	withDoc := Build(sampleProfile(), MultiPerspective, Extra{Document: "PART I: INCOME TAX"})
	withoutDoc := Build(sampleProfile(), MultiPerspective, Extra{})

	assert.Contains(t, withDoc.User, "Finance Bill Content:\nPART I: INCOME TAX")
	assert.Contains(t, withoutDoc.User, "Use general Finance Bill 2025 knowledge.")
	assert.Contains(t, withDoc.System, "exactly 5 different analytical perspectives")
}

func TestChatTurnInjectsProfile(t *testing.T) {
	withProfile := Build(sampleProfile(), ChatTurn, Extra{Message: "hello"})
	anonymous := Build(nil, ChatTurn, Extra{Message: "hello"})

	assert.Equal(t, "hello", withProfile.User)
	assert.Contains(t, withProfile.System, `"occupation":"Secondary School Teacher"`)
	assert.Contains(t, anonymous.System, "User Profile: Not provided")
	assert.Contains(t, anonymous.System, "### 10. Expatriate/Non-Citizen Worker")
}

func TestChatTurnBlankMessageStillProducesPrompt(t *testing.T) {
	p := Build(nil, ChatTurn, Extra{Message: "   "})
	assert.NotEmpty(t, p.User)
}

func TestProfessionContext(t *testing.T) {
	tests := []struct {
		occupation string
		want       string
	}{
		{"Boda Boda DRIVER", "Transport workers"},
		{"Student Nurse", "Students experience"},
		{"Civil Engineer", "Engineers in IT"},
		{"Musician", genericProfessionContext},
		{"", genericProfessionContext},
	}
	for _, tt := range tests {
		assert.Contains(t, ProfessionContext(tt.occupation), tt.want, tt.occupation)
	}
}

func TestKindValid(t *testing.T) {
	assert.True(t, ChatTurn.Valid())
	assert.False(t, Kind("poem").Valid())
}
