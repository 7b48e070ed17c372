package pipeline

import (
	"strings"

	"cv-reader/cv/model"
)

// degreeKeywords mark an education header line as the degree rather than
// the institution.
var degreeKeywords = []string{
	"bachelor", "master", "phd", "ph.d", "doctorate", "b.s", "m.s",
	"b.a", "m.a", "bsc", "msc", "mba", "b.eng", "m.eng", "diploma",
	"associate", "degree",
}

func extractExperience(lines []string) []model.ExperienceEntry {
	entries := parseRoleBlocks(lines, positionKeywords)
	out := make([]model.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		if e.role == "" && e.org == "" && len(e.details) == 0 && e.dates.IsZero() {
			continue
		}
		out = append(out, model.ExperienceEntry{
			Employer:         e.org,
			Title:            e.role,
			Location:         e.location,
			Dates:            e.dates,
			Responsibilities: e.details,
		})
	}
	return out
}

func extractVolunteering(lines []string) []model.VolunteeringEntry {
	entries := parseRoleBlocks(lines, volunteerKeywords)
	out := make([]model.VolunteeringEntry, 0, len(entries))
	for _, e := range entries {
		if e.role == "" && e.org == "" && len(e.details) == 0 && e.dates.IsZero() {
			continue
		}
		out = append(out, model.VolunteeringEntry{
			Organization: e.org,
			Role:         e.role,
			Dates:        e.dates,
			Details:      e.details,
		})
	}
	return out
}

// extractEducation reuses the role-block walker with degree keywords doing
// the role/org disambiguation: the degree line plays the role, the
// institution the organization.
func extractEducation(lines []string) []model.EducationEntry {
	entries := parseRoleBlocks(lines, degreeKeywords)
	out := make([]model.EducationEntry, 0, len(entries))
	for _, e := range entries {
		if e.role == "" && e.org == "" && len(e.details) == 0 && e.dates.IsZero() {
			continue
		}
		degree, field := splitDegreeField(e.role)
		out = append(out, model.EducationEntry{
			Institution: e.org,
			Degree:      degree,
			Field:       field,
			Location:    e.location,
			Dates:       e.dates,
			Details:     e.details,
		})
	}
	return out
}

// splitDegreeField splits "Bachelor of Science in Computer Science" into
// degree and field of study. Lines without an " in " connector are all
// degree.
func splitDegreeField(s string) (degree, field string) {
	lower := strings.ToLower(s)
	if i := strings.Index(lower, " in "); i > 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+4:])
	}
	return s, ""
}
