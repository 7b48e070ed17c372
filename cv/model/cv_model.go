package model

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// PresentEnd marks the open end of a date range in JSON output.
const PresentEnd = "present"

var datePattern = regexp.MustCompile(`^\d{4}(-(0[1-9]|1[0-2]))?$`)

// CVRecord is the structured result of parsing one CV document. It is the
// only artifact the pipeline exposes; list fields are always present in
// JSON and empty when the corresponding section was not found.
type CVRecord struct {
	Contact        ContactInfo          `json:"contact"`
	Summary        string               `json:"summary,omitempty"`
	Experience     []ExperienceEntry    `json:"experience"`
	Education      []EducationEntry     `json:"education"`
	Skills         []SkillGroup         `json:"skills"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`
	Volunteering   []VolunteeringEntry  `json:"volunteering"`
}

// NewCVRecord returns a record with every list initialized so downstream
// consumers and JSON output never see a null array.
func NewCVRecord() CVRecord {
	return CVRecord{
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Skills:         []SkillGroup{},
		Projects:       []ProjectEntry{},
		Certifications: []CertificationEntry{},
		Volunteering:   []VolunteeringEntry{},
	}
}

// Validate checks date shape and ordering across all entries.
func (r CVRecord) Validate() error {
	for i, exp := range r.Experience {
		if err := exp.Dates.Validate(); err != nil {
			return fmt.Errorf("experience[%d]: %w", i, err)
		}
	}
	for i, edu := range r.Education {
		if err := edu.Dates.Validate(); err != nil {
			return fmt.Errorf("education[%d]: %w", i, err)
		}
	}
	for i, vol := range r.Volunteering {
		if err := vol.Dates.Validate(); err != nil {
			return fmt.Errorf("volunteering[%d]: %w", i, err)
		}
	}
	return nil
}

// ContactInfo captures personal identifiers found in the contact region.
// Each field holds at most one value; empty means not found.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Title    string `json:"title,omitempty"`
	Location string `json:"location,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// DateRange is a (start, end) pair in "YYYY" or "YYYY-MM" form. End may be
// "present" for a position still held. When no recognizable range was found
// the original text is kept in Raw and both endpoints stay empty.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

// Resolved reports whether both endpoints were parsed.
func (d DateRange) Resolved() bool {
	return d.Start != "" && d.End != ""
}

// Open reports whether the range ends at "present".
func (d DateRange) Open() bool {
	return d.End == PresentEnd
}

// IsZero reports whether nothing was captured, not even raw text.
func (d DateRange) IsZero() bool {
	return d.Start == "" && d.End == "" && d.Raw == ""
}

// StartIndex returns the start as an absolute month count, treating a
// year-only value as January. ok is false when no start was parsed.
func (d DateRange) StartIndex() (idx int, ok bool) {
	return monthIndex(d.Start, 1)
}

// EndIndex mirrors StartIndex for the end, treating a year-only value as
// December and "present" as the far future. ok is false when no end was
// parsed.
func (d DateRange) EndIndex() (idx int, ok bool) {
	if d.End == PresentEnd {
		return math.MaxInt32, true
	}
	return monthIndex(d.End, 12)
}

// Overlaps reports whether two resolved ranges share at least one month.
// Ranges with unparsed endpoints never overlap.
func (d DateRange) Overlaps(other DateRange) bool {
	aStart, ok := d.StartIndex()
	if !ok {
		return false
	}
	aEnd, ok := d.EndIndex()
	if !ok {
		return false
	}
	bStart, ok := other.StartIndex()
	if !ok {
		return false
	}
	bEnd, ok := other.EndIndex()
	if !ok {
		return false
	}
	return aStart <= bEnd && bStart <= aEnd
}

// Validate enforces endpoint shape and start <= end for resolved ranges.
func (d DateRange) Validate() error {
	if d.Start != "" && !datePattern.MatchString(d.Start) {
		return fmt.Errorf("start %q must be YYYY or YYYY-MM", d.Start)
	}
	if d.End != "" && d.End != PresentEnd && !datePattern.MatchString(d.End) {
		return fmt.Errorf("end %q must be YYYY, YYYY-MM or %q", d.End, PresentEnd)
	}
	if d.Resolved() {
		start, _ := d.StartIndex()
		end, _ := d.EndIndex()
		if start > end {
			return fmt.Errorf("range %q..%q ends before it starts", d.Start, d.End)
		}
	}
	return nil
}

func monthIndex(s string, defaultMonth int) (int, bool) {
	if !datePattern.MatchString(s) {
		return 0, false
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0, false
	}
	month := defaultMonth
	if len(s) == 7 {
		month, err = strconv.Atoi(s[5:])
		if err != nil {
			return 0, false
		}
	}
	return year*12 + month - 1, true
}

// ExperienceEntry is one job record.
type ExperienceEntry struct {
	Employer         string    `json:"employer,omitempty"`
	Title            string    `json:"title,omitempty"`
	Location         string    `json:"location,omitempty"`
	Dates            DateRange `json:"dates"`
	Responsibilities []string  `json:"responsibilities"`
}

// EducationEntry is one academic record.
type EducationEntry struct {
	Institution string    `json:"institution,omitempty"`
	Degree      string    `json:"degree,omitempty"`
	Field       string    `json:"field,omitempty"`
	Location    string    `json:"location,omitempty"`
	Dates       DateRange `json:"dates"`
	Details     []string  `json:"details"`
}

// SkillGroup is one named category of skills. Skills keep their original
// casing; uniqueness within a group is case-insensitive.
type SkillGroup struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// ProjectEntry is one project record.
type ProjectEntry struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
}

// CertificationEntry is one credential. Date holds "YYYY" or "YYYY-MM" when
// it parsed, otherwise the raw text it was found in.
type CertificationEntry struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// VolunteeringEntry is one volunteering record.
type VolunteeringEntry struct {
	Organization string    `json:"organization,omitempty"`
	Role         string    `json:"role,omitempty"`
	Dates        DateRange `json:"dates"`
	Details      []string  `json:"details"`
}
