package fallback

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/mail"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

var fixedNow = func() time.Time { return time.Date(2025, time.June, 3, 10, 0, 0, 0, time.UTC) }

func categories(impacts []models.ImpactAnalysis) map[string]models.ImpactAnalysis {
	out := make(map[string]models.ImpactAnalysis, len(impacts))
	for _, i := range impacts {
		out[i.Category] = i
	}
	return out
}

func TestAnalyzeSoftwareDeveloperScenario(t *testing.T) {
	a := New(nil, fixedNow)
	p := &models.UserProfile{
		Occupation:    "Software Developer",
		IncomeLevel:   models.IncomeMiddle,
		Location:      models.LocationUrban,
		Transport:     []string{"Personal Car"},
		PropertyOwner: true,
		BusinessOwner: false,
	}

	got := categories(a.Analyze(p))

	career, ok := got["Career & Employment"]
	require.True(t, ok)
	assert.Equal(t, models.Negative, career.Impact)
	assert.Equal(t, models.SeverityMedium, career.Severity)

	transport, ok := got["Transportation Costs"]
	require.True(t, ok)
	assert.Equal(t, models.Negative, transport.Impact)
	assert.Equal(t, models.SeverityHigh, transport.Severity)

	property, ok := got["Property & Real Estate"]
	require.True(t, ok)
	assert.Equal(t, models.SeverityMedium, property.Severity)

	_, ok = got["Business Operations"]
	assert.False(t, ok)
}

func TestAnalyzeDigitalWorker(t *testing.T) {
	a := New(nil, fixedNow)
	p := &models.UserProfile{
		Occupation:    "Tech Lead, Digital Products",
		IncomeLevel:   models.IncomeHigh,
		Location:      models.LocationUrban,
		Transport:     []string{"Personal Car"},
		PropertyOwner: true,
		BusinessOwner: true,
	}

	got := categories(a.Analyze(p))
	career := got["Career & Employment"]
	assert.Equal(t, models.Negative, career.Impact)
	assert.Equal(t, models.SeverityMedium, career.Severity)
	assert.Equal(t, []string{articleFairTax}, career.ConstitutionalRights)

	assert.Equal(t, models.SeverityHigh, got["Property & Real Estate"].Severity)
	assert.Equal(t, models.SeverityHigh, got["Business Operations"].Severity)
}

func TestAnalyzeTransportAndFoodBranches(t *testing.T) {
	a := New(nil, fixedNow)

	public := categories(a.Analyze(&models.UserProfile{Occupation: "Nurse", Transport: []string{"Uber/Taxi"}}))
	assert.Equal(t, models.SeverityMedium, public["Transportation Costs"].Severity)
	assert.Equal(t, models.Positive, public["Food & Living Costs"].Impact)

	walker := categories(a.Analyze(&models.UserProfile{Occupation: "Nurse", ConsumptionHabits: []string{"Imported goods"}}))
	assert.Equal(t, models.Neutral, walker["Transportation Costs"].Impact)
	assert.Equal(t, models.Negative, walker["Food & Living Costs"].Impact)
}

func TestAnalyzeAlwaysWellFormed(t *testing.T) {
	a := New(nil, fixedNow)
	profiles := []*models.UserProfile{
		nil,
		{},
		{Occupation: "Farmer", IncomeLevel: models.IncomeLow, Location: models.LocationRural, Transport: []string{"Motorcycle/Boda Boda"}},
		{Occupation: "digital marketer", Transport: models.TransportOptions, ConsumptionHabits: models.ConsumptionOptions, PropertyOwner: true, BusinessOwner: true},
	}
	for _, p := range profiles {
		impacts := a.Analyze(p)
		require.NotEmpty(t, impacts)
		for _, i := range impacts {
			assert.True(t, i.Impact.Valid())
			assert.True(t, i.Severity.Valid())
		}
	}
}

func TestDraftEmailDeterministic(t *testing.T) {
	a := New(nil, fixedNow)
	p := &models.UserProfile{
		Occupation:  "Teacher",
		IncomeLevel: models.IncomeMiddle,
		Location:    models.LocationRural,
		Transport:   []string{"Matatu/Bus", "Walking/Cycling"},
		Dependents:  3,
	}
	impacts := a.Analyze(p)

	first := a.DraftEmail(p, impacts)
	second := a.DraftEmail(p, impacts)
	assert.Equal(t, first, second)

	assert.Equal(t, "Finance Bill 2025 Impact Analysis - Teacher from rural Kenya", first.Subject)
	assert.Equal(t, mail.DefaultRecipients(), first.To)
	assert.Len(t, first.ImpactSummary, len(impacts))

	for _, section := range []string{
		"Dear Recipients,",
		"PERSONAL PROFILE:",
		"- Main Transport: Matatu/Bus, Walking/Cycling",
		"1. CAREER & EMPLOYMENT",
		"Impact Level: NEGATIVE (medium severity)",
		"CONSTITUTIONAL BASIS:",
		"CALL TO ACTION:",
		"A Concerned Kenyan Citizen\n3 June 2025",
	} {
		assert.Contains(t, first.Body, section)
	}
}

func TestDraftEmailUsesConfiguredRecipients(t *testing.T) {
	a := New([]string{"mp@parliament.go.ke"}, fixedNow)
	d := a.DraftEmail(&models.UserProfile{Occupation: "Driver"}, nil)
	assert.Equal(t, []string{"mp@parliament.go.ke"}, d.To)

	d.To[0] = "changed"
	assert.Equal(t, []string{"mp@parliament.go.ke"}, a.Recipients())
}

func TestBasicFallbacks(t *testing.T) {
	a := New(nil, fixedNow)

	edu := a.BasicAnalysis(&models.UserProfile{Occupation: "University Student"})
	require.Len(t, edu, 1)
	assert.Equal(t, "Education Sector Impact", edu[0].Category)

	general := a.BasicAnalysis(&models.UserProfile{Occupation: "Mechanic"})
	assert.Equal(t, "General Economic Impact", general[0].Category)

	email := a.BasicEmail(&models.UserProfile{Occupation: "Mechanic", Location: models.LocationUrban})
	assert.Equal(t, "Finance Bill 2025 Impact - Mechanic", email.Subject)
	assert.True(t, strings.HasPrefix(email.Body, "Dear Honorable Member of Parliament,"))
	assert.Contains(t, email.Body, "as a Mechanic from urban")
}

func TestMultiPerspectiveAndQuestions(t *testing.T) {
	a := New(nil, fixedNow)

	perspectives := a.MultiPerspective(&models.UserProfile{Occupation: "Lawyer"})
	require.Len(t, perspectives, 5)
	assert.Equal(t, "Constitutional & Legal Perspective", perspectives[0].Category)
	assert.Equal(t, "Long-term Strategic Perspective", perspectives[4].Category)
	assert.Contains(t, perspectives[2].Description, "As a Lawyer,")

	assert.Len(t, a.Questions(&models.UserProfile{Occupation: "Mechanic"}), 5)
	teacher := a.Questions(&models.UserProfile{Occupation: "Head Teacher"})
	assert.Len(t, teacher, 8)
	assert.Equal(t, "Do you earn additional income from online tutoring?", teacher[7])
	assert.Len(t, a.Questions(nil), 5)
}
