package pipeline

import (
	"strings"

	"cv-reader/cv/model"
)

// Near-duplicate entries come out of repeated headers and PDF extraction
// artifacts, the same block surviving a column split twice. Two entries
// collapse when their case-folded primary fields match and their date
// ranges overlap, or neither range resolved. The more complete entry wins;
// detail lists are unioned rather than one discarded.

func dedupeExperience(entries []model.ExperienceEntry) []model.ExperienceEntry {
	out := make([]model.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		merged := false
		for i := range out {
			if entryKey(out[i].Employer, out[i].Title) != entryKey(e.Employer, e.Title) ||
				!rangesMatch(out[i].Dates, e.Dates) {
				continue
			}
			out[i] = mergeExperience(out[i], e)
			merged = true
			break
		}
		if !merged {
			out = append(out, e)
		}
	}
	return out
}

func dedupeEducation(entries []model.EducationEntry) []model.EducationEntry {
	out := make([]model.EducationEntry, 0, len(entries))
	for _, e := range entries {
		merged := false
		for i := range out {
			if entryKey(out[i].Institution, out[i].Degree) != entryKey(e.Institution, e.Degree) ||
				!rangesMatch(out[i].Dates, e.Dates) {
				continue
			}
			out[i] = mergeEducation(out[i], e)
			merged = true
			break
		}
		if !merged {
			out = append(out, e)
		}
	}
	return out
}

func dedupeVolunteering(entries []model.VolunteeringEntry) []model.VolunteeringEntry {
	out := make([]model.VolunteeringEntry, 0, len(entries))
	for _, e := range entries {
		merged := false
		for i := range out {
			if entryKey(out[i].Organization, out[i].Role) != entryKey(e.Organization, e.Role) ||
				!rangesMatch(out[i].Dates, e.Dates) {
				continue
			}
			out[i] = mergeVolunteering(out[i], e)
			merged = true
			break
		}
		if !merged {
			out = append(out, e)
		}
	}
	return out
}

func mergeExperience(incumbent, challenger model.ExperienceEntry) model.ExperienceEntry {
	winner := incumbent
	if challengerWins(
		completeness(incumbent.Employer, incumbent.Title, incumbent.Location)+rangeScore(incumbent.Dates),
		completeness(challenger.Employer, challenger.Title, challenger.Location)+rangeScore(challenger.Dates),
		len(incumbent.Responsibilities), len(challenger.Responsibilities),
	) {
		winner = challenger
	}
	winner.Employer = firstNonEmpty(winner.Employer, incumbent.Employer, challenger.Employer)
	winner.Title = firstNonEmpty(winner.Title, incumbent.Title, challenger.Title)
	winner.Location = firstNonEmpty(winner.Location, incumbent.Location, challenger.Location)
	if winner.Dates.IsZero() {
		winner.Dates = firstRange(incumbent.Dates, challenger.Dates)
	}
	winner.Responsibilities = unionFold(incumbent.Responsibilities, challenger.Responsibilities)
	return winner
}

func mergeEducation(incumbent, challenger model.EducationEntry) model.EducationEntry {
	winner := incumbent
	if challengerWins(
		completeness(incumbent.Institution, incumbent.Degree, incumbent.Field, incumbent.Location)+rangeScore(incumbent.Dates),
		completeness(challenger.Institution, challenger.Degree, challenger.Field, challenger.Location)+rangeScore(challenger.Dates),
		len(incumbent.Details), len(challenger.Details),
	) {
		winner = challenger
	}
	winner.Institution = firstNonEmpty(winner.Institution, incumbent.Institution, challenger.Institution)
	winner.Degree = firstNonEmpty(winner.Degree, incumbent.Degree, challenger.Degree)
	winner.Field = firstNonEmpty(winner.Field, incumbent.Field, challenger.Field)
	winner.Location = firstNonEmpty(winner.Location, incumbent.Location, challenger.Location)
	if winner.Dates.IsZero() {
		winner.Dates = firstRange(incumbent.Dates, challenger.Dates)
	}
	winner.Details = unionFold(incumbent.Details, challenger.Details)
	return winner
}

func mergeVolunteering(incumbent, challenger model.VolunteeringEntry) model.VolunteeringEntry {
	winner := incumbent
	if challengerWins(
		completeness(incumbent.Organization, incumbent.Role)+rangeScore(incumbent.Dates),
		completeness(challenger.Organization, challenger.Role)+rangeScore(challenger.Dates),
		len(incumbent.Details), len(challenger.Details),
	) {
		winner = challenger
	}
	winner.Organization = firstNonEmpty(winner.Organization, incumbent.Organization, challenger.Organization)
	winner.Role = firstNonEmpty(winner.Role, incumbent.Role, challenger.Role)
	if winner.Dates.IsZero() {
		winner.Dates = firstRange(incumbent.Dates, challenger.Dates)
	}
	winner.Details = unionFold(incumbent.Details, challenger.Details)
	return winner
}

// challengerWins keeps the first-seen entry unless the other is strictly
// more complete, or equally complete with a strictly longer detail list.
func challengerWins(incumbentScore, challengerScore, incumbentDetails, challengerDetails int) bool {
	if challengerScore != incumbentScore {
		return challengerScore > incumbentScore
	}
	return challengerDetails > incumbentDetails
}

// entryKey is the normalized duplicate key: case-folded, whitespace
// collapsed.
func entryKey(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, strings.Join(strings.Fields(strings.ToLower(f)), " "))
	}
	return strings.Join(parts, "\x00")
}

// rangesMatch implements the duplicate date condition: overlapping resolved
// ranges, or two ranges that both failed to resolve.
func rangesMatch(a, b model.DateRange) bool {
	if !a.Resolved() && !b.Resolved() {
		return true
	}
	return a.Overlaps(b)
}

func completeness(fields ...string) int {
	n := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			n++
		}
	}
	return n
}

func rangeScore(d model.DateRange) int {
	if d.Resolved() {
		return 1
	}
	return 0
}

// unionFold merges two detail lists, dropping case-insensitive repeats and
// keeping first-seen order and casing.
func unionFold(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		fold := strings.ToLower(strings.TrimSpace(s))
		if fold == "" {
			continue
		}
		if _, dup := seen[fold]; dup {
			continue
		}
		seen[fold] = struct{}{}
		out = append(out, s)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstRange(ranges ...model.DateRange) model.DateRange {
	for _, r := range ranges {
		if !r.IsZero() {
			return r
		}
	}
	return model.DateRange{}
}
