// Package extract derives a candidate profile from raw resume text.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Degree categories reported in Profile.Degree.
const (
	DegreeComputerScience        = "Computer Science"
	DegreeEngineering            = "Engineering"
	DegreeBusinessAdministration = "Business Administration"
	DegreeDataScience            = "Data Science"
	DegreeInformationTechnology  = "Information Technology"
)

const (
	nameScanLines  = 5
	nameMinWords   = 2
	nameMaxLength  = 50
	linkedinScheme = "https://"
)

// Profile holds the fields found in a resume. Missing fields are empty.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	College  string `json:"college"`
	Degree   string `json:"degree"`
}

// IsEmpty reports whether no field was extracted.
func (p Profile) IsEmpty() bool {
	return p == Profile{}
}

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Order matters: the first pattern that matches anywhere wins.
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+?\d{1,3}[\s-]?\(?\d{3}\)?[\s-]?\d{3}[\s-]?\d{4}`),
		regexp.MustCompile(`\(?\d{3}\)?[\s-]?\d{3}[\s-]?\d{4}`),
		regexp.MustCompile(`\d{10}`),
	}

	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/(?:in|pub)/[\w-]+`)

	notNameRe = regexp.MustCompile(`(?i)@|\d{10}|linkedin|resume|cv`)

	collegeKeywords = []string{"university", "college", "institute", "school"}
	degreeKeywords  = []string{"bachelor", "master", "phd", "b.tech", "m.tech", "bca", "mca", "be", "me"}
)

type matcher func(text string, lines []string) string

type fieldMatcher struct {
	match matcher
	set   func(p *Profile, value string)
}

// fieldMatchers run in this order; each is independent of the others.
var fieldMatchers = []fieldMatcher{
	{email, func(p *Profile, v string) { p.Email = v }},
	{phone, func(p *Profile, v string) { p.Phone = v }},
	{linkedin, func(p *Profile, v string) { p.LinkedIn = v }},
	{name, func(p *Profile, v string) { p.Name = v }},
	{college, func(p *Profile, v string) { p.College = v }},
	{degree, func(p *Profile, v string) { p.Degree = v }},
}

// Extract runs every field matcher over text. It never fails: a field without
// a match is left empty, and empty text yields an empty profile.
func Extract(text string) Profile {
	var profile Profile
	if strings.TrimSpace(text) == "" {
		return profile
	}

	lines := strings.Split(text, "\n")
	for _, f := range fieldMatchers {
		f.set(&profile, f.match(text, lines))
	}
	return profile
}

func email(text string, _ []string) string {
	return emailRe.FindString(text)
}

func phone(text string, _ []string) string {
	for _, re := range phoneRes {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

func linkedin(text string, _ []string) string {
	m := linkedinRe.FindString(text)
	if m == "" {
		return ""
	}
	return linkedinScheme + m
}

func name(_ string, lines []string) string {
	scanned := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if scanned == nameScanLines {
			break
		}
		scanned++

		if notNameRe.MatchString(line) {
			continue
		}
		if len(strings.Fields(line)) >= nameMinWords && utf8.RuneCountInString(line) < nameMaxLength {
			return line
		}
	}
	return ""
}

func college(_ string, lines []string) string {
	for _, line := range lines {
		if containsAny(strings.ToLower(line), collegeKeywords...) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// degree classifies the first line mentioning a degree keyword. Keywords are
// matched as substrings, so short ones like "be" and "me" also hit words such
// as "member"; scanning still stops at that line.
func degree(_ string, lines []string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !containsAny(lower, degreeKeywords...) {
			continue
		}

		switch {
		case containsAny(lower, "computer", "cs"):
			return DegreeComputerScience
		case containsAny(lower, "engineering", "engineer"):
			return DegreeEngineering
		case containsAny(lower, "business", "mba"):
			return DegreeBusinessAdministration
		case strings.Contains(lower, "data"):
			return DegreeDataScience
		case strings.Contains(lower, "information") && strings.Contains(lower, "technology"):
			return DegreeInformationTechnology
		default:
			return ""
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
