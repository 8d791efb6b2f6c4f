package parser

import (
	"regexp"
	"strings"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

// MinSegmentLength is the shortest unlabeled segment worth turning into a record.
const MinSegmentLength = 50

const maxDescription = 300

// Defaults inserted when a segment matches no keyword in the corresponding table.
const (
	DefaultRight          = "Article 201 (Fair Taxation)"
	DefaultRecommendation = "Stay informed about changes"
	DefaultLoophole       = "Review available exemptions"
)

// Extractor turns one segment of model output into an ImpactAnalysis.
//
// Each field is resolved by the first rule that yields a value:
//  1. a labeled line such as "Severity: high" (markdown bold and bullets tolerated);
//  2. keyword inference over the whole segment;
//  3. a fixed default.
//
// Results depend on the model's phrasing. Only the shape is guaranteed.
type Extractor struct{}

type keywordRule struct {
	pattern *regexp.Regexp
	value   string
}

var (
	negativeWords = regexp.MustCompile(`(?i)\b(negative|burden|increase[sd]? costs?|higher costs?)`)
	positiveWords = regexp.MustCompile(`(?i)\b(positive|benefit|opportunit)`)
	neutralWords  = regexp.MustCompile(`(?i)\bneutral`)

	highWords   = regexp.MustCompile(`(?i)\b(high|severe|significant)`)
	lowWords    = regexp.MustCompile(`(?i)\b(low|minor|minimal)`)
	mediumWords = regexp.MustCompile(`(?i)\b(medium|moderate)`)

	rightRules = []keywordRule{
		{regexp.MustCompile(`(?i)\b201\b|taxation`), "Article 201 (Fair Taxation)"},
		{regexp.MustCompile(`(?i)\b33\b|expression`), "Article 33 (Freedom of Expression)"},
		{regexp.MustCompile(`(?i)\b37\b|petition`), "Article 37 (Right to Petition)"},
		{regexp.MustCompile(`(?i)\b43\b|economic`), "Article 43 (Economic Rights)"},
	}
	recommendationRules = []keywordRule{
		{regexp.MustCompile(`(?i)petition|legal`), "Consider legal consultation"},
		{regexp.MustCompile(`(?i)budget|plan`), "Adjust financial planning"},
		{regexp.MustCompile(`(?i)association|collective`), "Join professional associations"},
	}
	loopholeRules = []keywordRule{
		{regexp.MustCompile(`(?i)deduction|exemption`), "Explore available deductions"},
		{regexp.MustCompile(`(?i)timing|strategic`), "Strategic timing of transactions"},
	}

	labelLine = regexp.MustCompile(`(?im)^[ \t*#>-]*(category|impact|severity|description|recommendations?|strateg(?:y|ies))[ \t*]*:`)
)

// Label patterns keyed by the names Field accepts.
var fields = map[string]*regexp.Regexp{
	"category":       field("category"),
	"impact":         field("impact"),
	"severity":       field("severity"),
	"description":    field("description"),
	"recommendation": field("recommendations?"),
	"strategy":       field("strateg(?:y|ies)"),
}

func field(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t*#>-]*` + name + `[ \t*]*:[ \t*]*(.+?)[ \t*]*$`)
}

// Field returns the value of the first "name:" line in text.
func (Extractor) Field(text, name string) (string, bool) {
	re, ok := fields[name]
	if !ok {
		return "", false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

// Labeled reports whether text carries at least one recognised field label.
func (Extractor) Labeled(text string) bool {
	return labelLine.MatchString(text)
}

// Record builds a complete record from segment. category is used when the
// segment has no "Category:" label.
func (e Extractor) Record(segment, category string) models.ImpactAnalysis {
	if v, ok := e.Field(segment, "category"); ok {
		category = v
	}

	description, ok := e.Field(segment, "description")
	if !ok {
		description = clip(stripLabels(segment), maxDescription)
	}

	return models.ImpactAnalysis{
		Category:             category,
		Impact:               e.Direction(segment),
		Severity:             e.Severity(segment),
		Description:          description,
		ConstitutionalRights: e.Rights(segment),
		Recommendations:      e.labeledOrScan(segment, "recommendation", recommendationRules, DefaultRecommendation),
		Loopholes:            e.labeledOrScan(segment, "strategy", loopholeRules, DefaultLoophole),
	}
}

// Direction reads an "Impact:" label when it names a direction, otherwise
// scores the segment: negative words win over positive ones, else neutral.
func (e Extractor) Direction(segment string) models.Direction {
	if v, ok := e.Field(segment, "impact"); ok {
		if d, ok := direction(v); ok {
			return d
		}
	}
	if d, ok := direction(segment); ok {
		return d
	}
	return models.Neutral
}

func direction(text string) (models.Direction, bool) {
	switch {
	case negativeWords.MatchString(text):
		return models.Negative, true
	case positiveWords.MatchString(text):
		return models.Positive, true
	case neutralWords.MatchString(text):
		return models.Neutral, true
	}
	return "", false
}

// Severity reads a "Severity:" label, otherwise scores the segment, else medium.
func (e Extractor) Severity(segment string) models.Severity {
	if v, ok := e.Field(segment, "severity"); ok {
		if s, ok := severity(v); ok {
			return s
		}
	}
	if s, ok := severity(segment); ok {
		return s
	}
	return models.SeverityMedium
}

func severity(text string) (models.Severity, bool) {
	switch {
	case highWords.MatchString(text):
		return models.SeverityHigh, true
	case lowWords.MatchString(text):
		return models.SeverityLow, true
	case mediumWords.MatchString(text):
		return models.SeverityMedium, true
	}
	return "", false
}

// Rights maps article numbers and themes in segment to citations.
func (Extractor) Rights(segment string) []string {
	return scan(segment, rightRules, DefaultRight)
}

func (e Extractor) labeledOrScan(segment, label string, rules []keywordRule, fallback string) []string {
	if v, ok := e.Field(segment, label); ok {
		return []string{v}
	}
	return scan(segment, rules, fallback)
}

func scan(text string, rules []keywordRule, fallback string) []string {
	var out []string
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			out = append(out, r.value)
		}
	}
	if len(out) == 0 {
		out = []string{fallback}
	}
	return out
}

func stripLabels(segment string) string {
	lines := strings.Split(segment, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if labelLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	text := strings.TrimSpace(strings.Join(kept, "\n"))
	if text == "" {
		return strings.TrimSpace(segment)
	}
	return text
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}
