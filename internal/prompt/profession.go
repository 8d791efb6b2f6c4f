package prompt

import "strings"

type professionFragment struct {
	keyword string
	context string
}

// Checked in order; the first keyword contained in the occupation wins.
var professionContexts = []professionFragment{
	{"teacher", "Teachers face increased costs for digital learning tools, classroom technology, and educational materials due to VAT changes and import duties."},
	{"student", "Students experience higher costs for online learning platforms, educational technology, and imported textbooks while dealing with reduced family income."},
	{"farmer", "Farmers benefit from crop protection through import duties but face higher costs for imported seeds, fertilizers, and agricultural technology."},
	{"doctor", "Healthcare professionals see increased costs for medical equipment and digital health platforms while patients face higher healthcare expenses."},
	{"engineer", "Engineers in IT face new digital economy taxes (SEPT) but may benefit from startup incentives and reduced corporate taxes."},
	{"lawyer", "Legal professionals face higher costs for digital legal research tools and case management systems."},
	{"driver", "Transport workers experience increased costs from mobile payment platform fees and digital service taxes."},
	{"nurse", "Healthcare workers face indirect impacts through increased costs of medical technology and digital health systems."},
	{"accountant", "Financial professionals deal with new compliance requirements and digital service taxes affecting accounting software."},
	{"entrepreneur", "Business owners face mixed impacts - startup incentives vs increased digital economy taxes and compliance costs."},
}

const genericProfessionContext = "General impact analysis considering digital economy changes, tax adjustments, and constitutional rights."

func ProfessionContext(occupation string) string {
	lower := strings.ToLower(occupation)
	for _, f := range professionContexts {
		if strings.Contains(lower, f.keyword) {
			return f.context
		}
	}
	return genericProfessionContext
}
