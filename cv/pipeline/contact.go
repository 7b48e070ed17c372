package pipeline

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"cv-reader/cv/model"
)

// maxIdentityLines bounds how far into a contact section name, title and
// location are looked for. Emails, phones and profile URLs are matched on
// every line.
const maxIdentityLines = 15

const phoneDefaultRegion = "US"

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`\+?\d[\d\s().\-/]{6,}\d`)
	linkedinRe = regexp.MustCompile(`(?i)\blinkedin\.com/in/[A-Za-z0-9_%-]+`)
	githubRe   = regexp.MustCompile(`(?i)\bgithub\.com/[A-Za-z0-9_-]+`)
	locationRe = regexp.MustCompile(`^[A-Z][A-Za-z .'-]*, ?[A-Z][A-Za-z .'-]*$`)
	digitRe    = regexp.MustCompile(`\d`)
)

// titleKeywords mark a contact line as a professional title rather than a
// name.
var titleKeywords = append([]string{
	"architect", "scientist", "designer", "administrator", "researcher",
}, positionKeywords...)

// extractContact fills contact fields from one CONTACT-labeled section.
// Fields already present in prev are kept untouched: across sections the
// first confident match per field wins.
func extractContact(prev model.ContactInfo, lines []string) model.ContactInfo {
	c := prev
	for _, line := range lines {
		if c.Email == "" {
			c.Email = emailRe.FindString(line)
		}
		if c.LinkedIn == "" {
			c.LinkedIn = linkedinRe.FindString(line)
		}
		if c.GitHub == "" {
			if m := githubRe.FindString(line); m != "" && !strings.Contains(strings.ToLower(m), "linkedin") {
				c.GitHub = m
			}
		}
		if c.Phone == "" {
			c.Phone = findPhone(line)
		}
	}

	for i, line := range lines {
		if i >= maxIdentityLines {
			break
		}
		s := strings.TrimSpace(line)
		if s == "" || hasContactPattern(s) {
			continue
		}
		switch {
		case c.Title == "" && containsAnyFold(s, titleKeywords) && len(strings.Fields(s)) <= 6:
			c.Title = s
		case c.Name == "" && looksLikeName(s):
			c.Name = s
		case c.Location == "" && locationRe.MatchString(s) && len(strings.Fields(s)) <= 5:
			c.Location = s
		}
	}
	return c
}

// extractSummary flattens a SUMMARY section into one string. The first
// non-empty summary found wins.
func extractSummary(prev string, lines []string) string {
	if prev != "" {
		return prev
	}
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if cleaned := stripBullet(line); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return strings.Join(parts, " ")
}

func hasContactPattern(s string) bool {
	return strings.Contains(s, "@") ||
		strings.Contains(strings.ToLower(s), "http") ||
		linkedinRe.MatchString(s) || githubRe.MatchString(s) ||
		findPhone(s) != ""
}

func looksLikeName(s string) bool {
	if digitRe.MatchString(s) || len(strings.Fields(s)) > 6 {
		return false
	}
	r := []rune(s)[0]
	return r >= 'A' && r <= 'Z'
}

// findPhone returns the first phone number on the line, normalized to E.164
// when the candidate validates; a candidate that fails validation is kept
// raw only when it carries enough digits and the line is not a date
// expression, which the candidate pattern would otherwise swallow.
func findPhone(line string) string {
	m := phoneRe.FindString(line)
	if m == "" {
		return ""
	}
	if num, err := phonenumbers.Parse(m, phoneDefaultRegion); err == nil && phonenumbers.IsValidNumber(num) {
		return phonenumbers.Format(num, phonenumbers.E164)
	}
	if countDigits(m) < 9 || singleDateRe.MatchString(line) {
		return ""
	}
	return strings.TrimSpace(m)
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
