package fallback

import (
	"time"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/mail"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

const (
	articleFairTax  = "Article 201 - Principles of Public Finance"
	articleProperty = "Article 40 - Right to Property"
)

// Analyzer produces rule-based records and drafts when no provider answers.
// Output depends only on the profile, the impacts passed in and the clock.
type Analyzer struct {
	recipients []string
	now        func() time.Time
}

// New returns an Analyzer addressing drafts to recipients (the defaults when
// empty). A nil now uses time.Now.
func New(recipients []string, now func() time.Time) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{recipients: mail.RecipientsOr(recipients), now: now}
}

// Occupation fragments that mark a digital worker.
var digitalKeywords = []string{"tech", "digital", "software", "developer", "programmer", "data"}

type rule func(p *models.UserProfile) (models.ImpactAnalysis, bool)

var rules = []rule{careerImpact, transportImpact, foodImpact, propertyImpact, businessImpact}

// Analyze applies each rule independently and never returns an empty slice.
func (a *Analyzer) Analyze(p *models.UserProfile) []models.ImpactAnalysis {
	if p == nil {
		return []models.ImpactAnalysis{generalImpact()}
	}
	var impacts []models.ImpactAnalysis
	for _, r := range rules {
		if impact, ok := r(p); ok {
			impacts = append(impacts, impact)
		}
	}
	if len(impacts) == 0 {
		impacts = append(impacts, generalImpact())
	}
	return impacts
}

func careerImpact(p *models.UserProfile) (models.ImpactAnalysis, bool) {
	if p.OccupationContains(digitalKeywords...) {
		return models.ImpactAnalysis{
			Category:             "Career & Employment",
			Impact:               models.Negative,
			Severity:             models.SeverityMedium,
			Description:          "The increased VAT on digital services may affect your industry, potentially leading to higher costs for digital tools and services used in your work.",
			ConstitutionalRights: []string{articleFairTax},
			Recommendations: []string{
				"Consider negotiating cost-of-living adjustments with your employer",
				"Explore tax-deductible business expenses for digital tools",
				"Join professional associations advocating for fair digital taxation",
			},
			Loopholes: []string{
				"Personal use vs business use distinction in digital services VAT",
				"Potential exemptions for educational digital tools",
			},
		}, true
	}
	return models.ImpactAnalysis{
		Category:             "Career & Employment",
		Impact:               models.Neutral,
		Severity:             models.SeverityLow,
		Description:          "Based on your occupation, the Finance Bill's direct impact on your career may be minimal, though indirect effects through overall economic changes are possible.",
		ConstitutionalRights: []string{articleFairTax},
		Recommendations: []string{
			"Monitor inflation and its impact on your purchasing power",
			"Consider skills development in recession-proof areas",
		},
	}, true
}

func transportImpact(p *models.UserProfile) (models.ImpactAnalysis, bool) {
	switch {
	case p.UsesTransport("Personal Car"):
		return models.ImpactAnalysis{
			Category:             "Transportation Costs",
			Impact:               models.Negative,
			Severity:             models.SeverityHigh,
			Description:          "The fuel levy increase of KSh 5 per liter will significantly increase your monthly transport costs. Additionally, vehicle import duty increases may affect car maintenance and replacement costs.",
			ConstitutionalRights: []string{articleFairTax},
			Recommendations: []string{
				"Consider carpooling or public transport alternatives",
				"Explore fuel-efficient driving techniques",
				"Budget for increased monthly fuel costs (approximately KSh 1,500-3,000 more per month)",
			},
			Loopholes: []string{
				"Business vehicle fuel expenses may be tax-deductible",
				"Hybrid/electric vehicle incentives may offset some costs",
			},
		}, true
	case p.UsesTransport("Matatu/Bus") || p.UsesTransport("Uber/Taxi"):
		return models.ImpactAnalysis{
			Category:             "Transportation Costs",
			Impact:               models.Negative,
			Severity:             models.SeverityMedium,
			Description:          "While you don't directly pay for fuel, transport operators will likely increase fares to offset the fuel levy increase, affecting your commuting costs.",
			ConstitutionalRights: []string{articleFairTax},
			Recommendations: []string{
				"Budget for 10-15% increase in transport fares",
				"Consider relocating closer to work if feasible",
				"Explore remote work options",
			},
		}, true
	}
	return models.ImpactAnalysis{
		Category:             "Transportation Costs",
		Impact:               models.Neutral,
		Severity:             models.SeverityLow,
		Description:          "Your transport methods may be minimally affected by the Finance Bill changes.",
		ConstitutionalRights: []string{articleFairTax},
		Recommendations:      []string{"Continue monitoring transport cost changes in your area"},
	}, true
}

func foodImpact(p *models.UserProfile) (models.ImpactAnalysis, bool) {
	if p.Consumes("Imported goods") {
		return models.ImpactAnalysis{
			Category:             "Food & Living Costs",
			Impact:               models.Negative,
			Severity:             models.SeverityMedium,
			Description:          "VAT adjustments on imported goods may increase the cost of imported food items and consumer goods you regularly use.",
			ConstitutionalRights: []string{articleFairTax},
			Recommendations: []string{
				"Substitute imported items with local alternatives where possible",
				"Buy in bulk during promotional periods",
				"Grow your own vegetables if you have space",
			},
			Loopholes: []string{
				"Basic foodstuffs remain VAT-exempt - focus on these items",
				"Some imported raw materials for local production may have different rates",
			},
		}, true
	}
	return models.ImpactAnalysis{
		Category:             "Food & Living Costs",
		Impact:               models.Positive,
		Severity:             models.SeverityLow,
		Description:          "Your focus on basic foodstuffs means you'll benefit from continued VAT exemptions on essential food items.",
		ConstitutionalRights: []string{articleFairTax},
		Recommendations: []string{
			"Continue prioritizing basic foodstuffs to maintain low costs",
			"Support local farmers and producers",
		},
	}, true
}

func propertyImpact(p *models.UserProfile) (models.ImpactAnalysis, bool) {
	if !p.PropertyOwner {
		return models.ImpactAnalysis{}, false
	}
	severity := models.SeverityMedium
	if p.IncomeLevel == models.IncomeHigh {
		severity = models.SeverityHigh
	}
	return models.ImpactAnalysis{
		Category:             "Property & Real Estate",
		Impact:               models.Negative,
		Severity:             severity,
		Description:          "Land value assessment changes and potential property tax adjustments may increase your annual property-related tax burden.",
		ConstitutionalRights: []string{articleProperty, articleFairTax},
		Recommendations: []string{
			"Get your property professionally valued to understand potential tax implications",
			"Consider property improvements that may qualify for tax relief",
			"Explore legal property structuring options",
		},
		Loopholes: []string{
			"Owner-occupied vs investment property different tax treatments",
			"Agricultural land may have preferential rates",
			"Property development incentives may be available",
		},
	}, true
}

func businessImpact(p *models.UserProfile) (models.ImpactAnalysis, bool) {
	if !p.BusinessOwner {
		return models.ImpactAnalysis{}, false
	}
	return models.ImpactAnalysis{
		Category:             "Business Operations",
		Impact:               models.Negative,
		Severity:             models.SeverityHigh,
		Description:          "Corporate tax changes and turnover tax threshold adjustments may significantly affect your business profitability and cash flow.",
		ConstitutionalRights: []string{articleFairTax},
		Recommendations: []string{
			"Consult with a tax advisor for business restructuring options",
			"Review pricing strategies to maintain margins",
			"Explore business expense optimization",
			"Consider timing of major business decisions around tax year",
		},
		Loopholes: []string{
			"Small business relief provisions may apply",
			"Capital allowances and depreciation benefits",
			"Export incentives may offset some tax increases",
			"Business loss carry-forward provisions",
		},
	}, true
}

func generalImpact() models.ImpactAnalysis {
	return models.ImpactAnalysis{
		Category:             "General Economic Impact",
		Impact:               models.Negative,
		Severity:             models.SeverityMedium,
		Description:          "The Finance Bill 2025 may affect your economic situation through various tax changes.",
		ConstitutionalRights: []string{"Article 201 (Fair Taxation)"},
		Recommendations:      []string{"Stay informed about changes", "Engage in public participation"},
		Loopholes:            []string{"Review all available deductions and exemptions"},
	}
}

// BasicAnalysis is the minimal rule set used when personal analysis cannot be
// generated at all: an education-sector record for teachers and students,
// otherwise a general one.
func (a *Analyzer) BasicAnalysis(p *models.UserProfile) []models.ImpactAnalysis {
	if p != nil && p.OccupationContains("teacher", "student") {
		return []models.ImpactAnalysis{{
			Category:             "Education Sector Impact",
			Impact:               models.Negative,
			Severity:             models.SeverityMedium,
			Description:          "Higher costs for digital learning resources and imported educational materials.",
			ConstitutionalRights: []string{"Article 43 (Right to Education)"},
			Recommendations:      []string{"Advocate for education sector exemptions", "Form educator coalitions"},
			Loopholes:            []string{"Education materials may qualify for exemptions"},
		}}
	}
	return []models.ImpactAnalysis{generalImpact()}
}
