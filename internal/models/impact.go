package models

type Direction string

const (
	Positive Direction = "positive"
	Negative Direction = "negative"
	Neutral  Direction = "neutral"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (d Direction) Valid() bool {
	return d == Positive || d == Negative || d == Neutral
}

func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

type ImpactAnalysis struct {
	Category             string    `json:"category"`
	Impact               Direction `json:"impact"`
	Severity             Severity  `json:"severity"`
	Description          string    `json:"description"`
	ConstitutionalRights []string  `json:"constitutionalRights,omitempty"`
	Recommendations      []string  `json:"recommendations,omitempty"`
	Loopholes            []string  `json:"loopholes,omitempty"`
}

type EmailDraft struct {
	To            []string         `json:"to"`
	Subject       string           `json:"subject"`
	Body          string           `json:"body"`
	UserProfile   *UserProfile     `json:"userProfile,omitempty"`
	ImpactSummary []ImpactAnalysis `json:"impactSummary,omitempty"`
}

// WithEdits returns the user-edited copy of a generated draft. Recipients and
// the originating profile/impacts are carried over unchanged.
func (d EmailDraft) WithEdits(subject, body string) EmailDraft {
	edited := d
	edited.To = append([]string(nil), d.To...)
	edited.Subject = subject
	edited.Body = body
	return edited
}
