package parser

import (
	"regexp"
	"strings"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

// Perspectives is the fixed order of multi-perspective records.
var Perspectives = []string{
	"Constitutional & Legal Perspective",
	"Economic & Financial Perspective",
	"Professional & Career Perspective",
	"Social & Community Perspective",
	"Long-term Strategic Perspective",
}

// perspectiveTitles match a perspective's full title; perspectiveHeadings
// match its looser keywords. Indexes line up with Perspectives.
var (
	perspectiveTitles = []*regexp.Regexp{
		regexp.MustCompile(`(?i)constitutional\s*(?:&|and)\s*legal`),
		regexp.MustCompile(`(?i)economic\s*(?:&|and)\s*financial`),
		regexp.MustCompile(`(?i)professional\s*(?:&|and)\s*career`),
		regexp.MustCompile(`(?i)social\s*(?:&|and)\s*community`),
		regexp.MustCompile(`(?i)long[- ]?term\s+strategic`),
	}
	perspectiveHeadings = []*regexp.Regexp{
		regexp.MustCompile(`(?i)constitution|legal`),
		regexp.MustCompile(`(?i)econom|financ`),
		regexp.MustCompile(`(?i)profession|career`),
		regexp.MustCompile(`(?i)social|communit`),
		regexp.MustCompile(`(?i)long[- ]?term|strateg`),
	}
)

var (
	blankLine     = regexp.MustCompile(`\n[ \t\r]*\n`)
	numberedStart = regexp.MustCompile(`(?m)^[ \t]*(?:#+[ \t]*)?(?:\*\*)?[ \t]*\d+[.)][ \t]+`)
	listMarker    = regexp.MustCompile(`^(?:\d+[.)]|[-*•])\s*`)
	subjectMarker = regexp.MustCompile(`(?i)subject:`)
)

// ParseImpacts splits raw on blank lines and extracts one record per segment
// that is labeled or at least MinSegmentLength long. It never returns an
// empty slice.
func ParseImpacts(raw string, profile *models.UserProfile) []models.ImpactAnalysis {
	var e Extractor
	var impacts []models.ImpactAnalysis
	for _, segment := range blankLine.Split(normalize(raw), -1) {
		segment = strings.TrimSpace(segment)
		if !e.Labeled(segment) && len(segment) < MinSegmentLength {
			continue
		}
		impacts = append(impacts, e.Record(segment, "Economic Impact"))
	}
	if len(impacts) == 0 {
		return []models.ImpactAnalysis{defaultImpact(raw, profile)}
	}
	return impacts
}

func defaultImpact(raw string, profile *models.UserProfile) models.ImpactAnalysis {
	description := clip(strings.TrimSpace(raw), maxDescription)
	if description == "" {
		description = "AI analysis indicates potential impacts from Finance Bill 2025"
	}
	return models.ImpactAnalysis{
		Category:             occupation(profile) + " Professional Impact",
		Impact:               models.Negative,
		Severity:             models.SeverityMedium,
		Description:          description,
		ConstitutionalRights: []string{DefaultRight, "Article 33 (Freedom of Expression)"},
		Recommendations:      []string{"Engage with professional associations", "Participate in public forums"},
		Loopholes:            []string{"Explore professional expense deductions", "Consider timing of major purchases"},
	}
}

// ParseMultiPerspective returns exactly len(Perspectives) records in the
// order of Perspectives.
//
// raw is split on line-leading numeric markers ("1.", "2)"). Text before the
// first marker is dropped. A segment whose first line names a perspective is
// bound to that perspective; the remaining segments fill the empty slots in
// order. Slots still empty get a neutral filler record.
func ParseMultiPerspective(raw string, profile *models.UserProfile) []models.ImpactAnalysis {
	var e Extractor
	slots := make([]*models.ImpactAnalysis, len(Perspectives))
	var unbound []string

	for _, segment := range numberedSegments(normalize(raw)) {
		if len(segment) < MinSegmentLength {
			continue
		}
		idx := headingPerspective(segment)
		if idx >= 0 && slots[idx] == nil {
			r := e.Record(segment, Perspectives[idx])
			r.Category = Perspectives[idx]
			slots[idx] = &r
			continue
		}
		unbound = append(unbound, segment)
	}

	for i := range slots {
		if slots[i] != nil {
			continue
		}
		if len(unbound) > 0 {
			r := e.Record(unbound[0], Perspectives[i])
			r.Category = Perspectives[i]
			slots[i] = &r
			unbound = unbound[1:]
			continue
		}
		r := fillerPerspective(Perspectives[i])
		slots[i] = &r
	}

	out := make([]models.ImpactAnalysis, len(slots))
	for i, r := range slots {
		out[i] = *r
	}
	return out
}

func numberedSegments(text string) []string {
	locs := numberedStart.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		if t := strings.TrimSpace(text); t != "" {
			return []string{t}
		}
		return nil
	}
	segments := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, strings.TrimSpace(text[loc[1]:end]))
	}
	return segments
}

// headingPerspective names the perspective in a segment's first line. A full
// title wins over keywords; among matches the leftmost one wins.
func headingPerspective(segment string) int {
	heading, _, _ := strings.Cut(segment, "\n")
	if idx := leftmostMatch(heading, perspectiveTitles); idx >= 0 {
		return idx
	}
	return leftmostMatch(heading, perspectiveHeadings)
}

func leftmostMatch(s string, patterns []*regexp.Regexp) int {
	best, bestPos := -1, len(s)+1
	for i, re := range patterns {
		if loc := re.FindStringIndex(s); loc != nil && loc[0] < bestPos {
			best, bestPos = i, loc[0]
		}
	}
	return best
}

func fillerPerspective(name string) models.ImpactAnalysis {
	return models.ImpactAnalysis{
		Category:             name,
		Impact:               models.Neutral,
		Severity:             models.SeverityMedium,
		Description:          "Analysis from the " + strings.ToLower(name) + " requires further assessment.",
		ConstitutionalRights: []string{DefaultRight},
		Recommendations:      []string{"Seek professional advice"},
		Loopholes:            []string{"Review available options"},
	}
}

// ParseEmail takes the first line containing "subject:" (any case) as the
// subject and everything after it as the body. Without a marker the subject
// is DefaultSubject(profile) and the body is the whole of raw.
func ParseEmail(raw string, profile *models.UserProfile) models.EmailDraft {
	draft := models.EmailDraft{
		Subject:     DefaultSubject(profile),
		Body:        raw,
		UserProfile: profile.Clone(),
	}

	lines := strings.Split(normalize(raw), "\n")
	for i, line := range lines {
		loc := subjectMarker.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if subject := strings.Trim(line[loc[1]:], " \t*#"); subject != "" {
			draft.Subject = subject
		}
		if body := strings.TrimSpace(strings.Join(lines[i+1:], "\n")); body != "" {
			draft.Body = body
		}
		break
	}
	return draft
}

func DefaultSubject(profile *models.UserProfile) string {
	return "Finance Bill 2025 Concerns - " + occupation(profile)
}

// ParseQuestions keeps lines that carry a question mark or a list marker,
// strips the marker and returns the ones that are actually questions.
func ParseQuestions(raw string) []string {
	questions := []string{}
	for _, line := range strings.Split(normalize(raw), "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 10 {
			continue
		}
		if !strings.Contains(line, "?") && !listMarker.MatchString(line) {
			continue
		}
		q := strings.TrimSpace(strings.Trim(listMarker.ReplaceAllString(line, ""), "*"))
		if strings.Contains(q, "?") {
			questions = append(questions, q)
		}
	}
	return questions
}

func occupation(profile *models.UserProfile) string {
	if profile == nil || strings.TrimSpace(profile.Occupation) == "" {
		return "Citizen"
	}
	return profile.Occupation
}

func normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
