package pipeline

import (
	"testing"

	"cv-reader/cv/model"
)

func TestExtractExperienceSingleBlock(t *testing.T) {
	entries := extractExperience([]string{
		"Software Engineer at Acme Corp",
		"Jan 2020 - Present",
		"- Built things",
		"- Shipped stuff",
	})
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %+v", entries)
	}
	e := entries[0]
	if e.Employer != "Acme Corp" || e.Title != "Software Engineer" {
		t.Fatalf("unexpected employer/title: %+v", e)
	}
	if e.Dates.Start != "2020-01" || e.Dates.End != "present" {
		t.Fatalf("unexpected dates: %+v", e.Dates)
	}
	if len(e.Responsibilities) != 2 || e.Responsibilities[0] != "Built things" {
		t.Fatalf("unexpected responsibilities: %q", e.Responsibilities)
	}
}

func TestExtractExperienceTwoLineHeaderAndLocation(t *testing.T) {
	entries := extractExperience([]string{
		"Acme Corp",
		"Software Engineer",
		"Jan 2020 - Dec 2021, Austin, TX",
		"- Did the work",
	})
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %+v", entries)
	}
	e := entries[0]
	if e.Employer != "Acme Corp" || e.Title != "Software Engineer" {
		t.Fatalf("keyword disambiguation failed: %+v", e)
	}
	if e.Location != "Austin, TX" {
		t.Fatalf("expected location from the date line remainder, got %q", e.Location)
	}
}

func TestExtractExperiencePipeSeparator(t *testing.T) {
	entries := extractExperience([]string{
		"Globex | Data Analyst",
		"2018 - 2019",
	})
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %+v", entries)
	}
	if entries[0].Employer != "Globex" || entries[0].Title != "Data Analyst" {
		t.Fatalf("pipe split failed: %+v", entries[0])
	}
}

func TestExtractExperienceCommaSeparator(t *testing.T) {
	entries := extractExperience([]string{
		"Software Engineer, Acme Corp",
		"2020 - 2021",
	})
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %+v", entries)
	}
	if entries[0].Employer != "Acme Corp" || entries[0].Title != "Software Engineer" {
		t.Fatalf("comma split failed: %+v", entries[0])
	}
}

func TestSplitRoleOrgCommaRules(t *testing.T) {
	cases := []struct {
		line string
		role string
		org  string
	}{
		{"Software Engineer, Acme Corp", "Software Engineer", "Acme Corp"},
		{"Acme Corp, Data Analyst", "Data Analyst", "Acme Corp"},
		// Neither side carries a role keyword: leave the line whole.
		{"Austin, TX", "", "Austin, TX"},
		// Both sides read like roles: ambiguous, leave the line whole.
		{"Lead Engineer, Senior Developer", "Lead Engineer, Senior Developer", ""},
		// More than one comma never splits.
		{"Acme Corp, Austin, TX", "", "Acme Corp, Austin, TX"},
	}
	for _, tc := range cases {
		role, org := splitRoleOrg(tc.line, positionKeywords)
		if role != tc.role || org != tc.org {
			t.Fatalf("splitRoleOrg(%q) = (%q, %q), want (%q, %q)", tc.line, role, org, tc.role, tc.org)
		}
	}
}

func TestExtractExperienceMultipleEntriesOneBlock(t *testing.T) {
	entries := extractExperience([]string{
		"Engineer at Acme",
		"2020 - 2022",
		"- First job detail",
		"Analyst at Globex",
		"2018 - 2020",
		"- Second job detail",
	})
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %+v", entries)
	}
	if entries[0].Employer != "Acme" || entries[1].Employer != "Globex" {
		t.Fatalf("unexpected employers: %+v", entries)
	}
	if len(entries[0].Responsibilities) != 1 || entries[0].Responsibilities[0] != "First job detail" {
		t.Fatalf("details leaked across entries: %+v", entries[0])
	}
}

func TestExtractExperienceBulletBlockAttachesToPreviousEntry(t *testing.T) {
	entries := extractExperience([]string{
		"Engineer at Acme",
		"2020 - 2022",
		"",
		"- Orphaned bullet one",
		"- Orphaned bullet two",
	})
	if len(entries) != 1 {
		t.Fatalf("expected bullet block to attach, got %+v", entries)
	}
	if len(entries[0].Responsibilities) != 2 {
		t.Fatalf("unexpected responsibilities: %q", entries[0].Responsibilities)
	}
}

func TestExtractExperienceUnparsedDatesKeptRaw(t *testing.T) {
	entries := extractExperience([]string{
		"Engineer at Acme",
		"Jun 2022 - Jan 2020",
	})
	if len(entries) != 1 {
		t.Fatalf("expected entry to survive a bad date range, got %+v", entries)
	}
	d := entries[0].Dates
	if d.Resolved() || d.Raw != "Jun 2022 - Jan 2020" {
		t.Fatalf("expected raw retention, got %+v", d)
	}
}

func TestExtractEducation(t *testing.T) {
	entries := extractEducation([]string{
		"B.S. in Computer Science",
		"State University",
		"2015 - 2019",
		"",
		"State University",
		"Master of Science in Data Engineering",
		"2019 - 2021",
	})
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %+v", entries)
	}
	first := entries[0]
	if first.Degree != "B.S." || first.Field != "Computer Science" || first.Institution != "State University" {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	second := entries[1]
	if second.Degree != "Master of Science" || second.Field != "Data Engineering" || second.Institution != "State University" {
		t.Fatalf("unexpected second entry: %+v", second)
	}
	if second.Dates != (model.DateRange{Start: "2019", End: "2021"}) {
		t.Fatalf("unexpected dates: %+v", second.Dates)
	}
}

func TestExtractVolunteering(t *testing.T) {
	entries := extractVolunteering([]string{
		"Volunteer Mentor at Code Club",
		"2018 - 2019",
		"- Mentored students weekly",
	})
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %+v", entries)
	}
	v := entries[0]
	if v.Organization != "Code Club" || v.Role != "Volunteer Mentor" {
		t.Fatalf("unexpected entry: %+v", v)
	}
	if len(v.Details) != 1 {
		t.Fatalf("unexpected details: %q", v.Details)
	}
}
