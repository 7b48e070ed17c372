package pipeline

import (
	"strings"
	"unicode"
)

// Label identifies the semantic category of a Section. The set is closed:
// headers that match no synonym open an UNKNOWN section instead of minting
// new labels.
type Label string

const (
	LabelContact        Label = "CONTACT"
	LabelSummary        Label = "SUMMARY"
	LabelExperience     Label = "EXPERIENCE"
	LabelEducation      Label = "EDUCATION"
	LabelSkills         Label = "SKILLS"
	LabelProjects       Label = "PROJECTS"
	LabelCertifications Label = "CERTIFICATIONS"
	LabelVolunteering   Label = "VOLUNTEERING"
	LabelUnknown        Label = "UNKNOWN"
)

// sectionPriority fixes the order synonym tables are consulted in, so a
// header line that could match more than one label resolves the same way
// every run.
var sectionPriority = []Label{
	LabelContact,
	LabelExperience,
	LabelEducation,
	LabelSkills,
	LabelProjects,
	LabelCertifications,
	LabelVolunteering,
	LabelSummary,
}

var sectionSynonyms = map[Label][]string{
	LabelContact:        {"contact", "contact information", "contact details", "personal details"},
	LabelSummary:        {"summary", "profile", "about", "about me", "objective", "professional summary"},
	LabelExperience:     {"experience", "work experience", "employment", "employment history", "professional experience", "work history"},
	LabelEducation:      {"education", "academic background", "qualifications"},
	LabelSkills:         {"skills", "technical skills", "competencies", "core competencies"},
	LabelProjects:       {"projects", "personal projects", "key projects"},
	LabelCertifications: {"certification", "certifications", "certificates"},
	LabelVolunteering:   {"volunteering", "volunteer", "volunteer experience", "community"},
}

// Section is a contiguous span of lines attributed to one label. Labeled
// sections do not include their header line; UNKNOWN sections keep theirs,
// since the unrecognized header is content worth retaining.
type Section struct {
	Label Label
	Lines []string
}

const (
	maxHeaderLen   = 48
	maxHeaderWords = 5
)

// Segment splits normalized text into labeled sections. Lines before the
// first recognized header form an implicit CONTACT region. Once a labeled
// section has been seen, a header-shaped line that matches no synonym opens
// an UNKNOWN section, which is kept but never extracted from.
func Segment(text string) []Section {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sections []Section
	current := Section{Label: LabelContact}
	seenHeader := false
	prevBlank := true

	flush := func() {
		current.Lines = trimBlankEdges(current.Lines)
		if len(current.Lines) > 0 {
			sections = append(sections, current)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if label, ok := matchSynonymHeader(line); ok {
			flush()
			current = Section{Label: label}
			seenHeader = true
			prevBlank = true
			continue
		}
		if seenHeader && looksLikeHeader(line, prevBlank) {
			flush()
			current = Section{Label: LabelUnknown, Lines: []string{strings.TrimSpace(line)}}
			prevBlank = false
			continue
		}
		current.Lines = append(current.Lines, line)
		prevBlank = strings.TrimSpace(line) == ""
	}
	flush()

	return sections
}

// matchSynonymHeader reports whether the whole line is a known section
// header. Matching is case-insensitive and tolerates a trailing colon or
// dash; labels are tried in sectionPriority order.
func matchSynonymHeader(line string) (Label, bool) {
	norm := normalizeHeader(line)
	if norm == "" {
		return "", false
	}
	for _, label := range sectionPriority {
		for _, syn := range sectionSynonyms[label] {
			if norm == syn {
				return label, true
			}
		}
	}
	return "", false
}

func normalizeHeader(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimRight(s, ":-– ")
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// looksLikeHeader reports whether a line is shaped like a section header
// even though it matches no synonym: short, few words, free of sentence
// punctuation, and either colon-terminated or ALL-CAPS standing after a
// blank line. Job titles and company names in running content fail at
// least one of these signals.
func looksLikeHeader(line string, prevBlank bool) bool {
	s := strings.TrimSpace(line)
	if s == "" || strings.HasPrefix(s, "- ") {
		return false
	}
	body := strings.TrimRight(s, ":")
	if len(body) == 0 || len(body) > maxHeaderLen {
		return false
	}
	if len(strings.Fields(body)) > maxHeaderWords {
		return false
	}
	if strings.ContainsAny(body, ".!?;,|@") {
		return false
	}
	if strings.HasSuffix(s, ":") {
		return true
	}
	return prevBlank && isAllCaps(body)
}

// isAllCaps reports whether s contains at least one letter and no lowercase
// letters.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if unicode.IsLower(r) {
				return false
			}
			hasLetter = true
		}
	}
	return hasLetter
}

func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
