package pipeline

import (
	"cv-reader/cv/model"
)

// extracted accumulates per-section extractor output before assembly. The
// same label may appear more than once in a document; entry extractors
// append, the contact and summary extractors keep the first match per
// field.
type extracted struct {
	contact        model.ContactInfo
	summary        string
	experience     []model.ExperienceEntry
	education      []model.EducationEntry
	skills         []model.SkillGroup
	projects       []model.ProjectEntry
	certifications []model.CertificationEntry
	volunteering   []model.VolunteeringEntry
}

// sectionExtractors dispatches a section to the extractor for its label.
// UNKNOWN has no entry: unrecognized sections are retained by the
// segmenter but never extracted from.
var sectionExtractors = map[Label]func(*extracted, []string){
	LabelContact: func(x *extracted, lines []string) {
		x.contact = extractContact(x.contact, lines)
	},
	LabelSummary: func(x *extracted, lines []string) {
		x.summary = extractSummary(x.summary, lines)
	},
	LabelExperience: func(x *extracted, lines []string) {
		x.experience = append(x.experience, extractExperience(lines)...)
	},
	LabelEducation: func(x *extracted, lines []string) {
		x.education = append(x.education, extractEducation(lines)...)
	},
	LabelSkills: func(x *extracted, lines []string) {
		x.skills = append(x.skills, extractSkills(lines)...)
	},
	LabelProjects: func(x *extracted, lines []string) {
		x.projects = append(x.projects, extractProjects(lines)...)
	},
	LabelCertifications: func(x *extracted, lines []string) {
		x.certifications = append(x.certifications, extractCertifications(lines)...)
	},
	LabelVolunteering: func(x *extracted, lines []string) {
		x.volunteering = append(x.volunteering, extractVolunteering(lines)...)
	},
}

// Parse runs the full pipeline on extracted document text: normalize,
// segment, per-section extraction, dedupe, assemble. It never fails:
// empty or unrecognizable input produces a record with every list empty.
func Parse(text string) model.CVRecord {
	var x extracted
	for _, sec := range Segment(Normalize(text)) {
		if extract, ok := sectionExtractors[sec.Label]; ok {
			extract(&x, sec.Lines)
		}
	}
	return assemble(x)
}

// assemble composes extractor output into the final record. Pure and
// idempotent: the same extractor output always yields the same record,
// with every list present even when empty.
func assemble(x extracted) model.CVRecord {
	r := model.NewCVRecord()
	r.Contact = x.contact
	r.Summary = x.summary
	r.Experience = append(r.Experience, dedupeExperience(x.experience)...)
	r.Education = append(r.Education, dedupeEducation(x.education)...)
	r.Skills = append(r.Skills, mergeSkillGroups(x.skills)...)
	r.Projects = append(r.Projects, x.projects...)
	r.Certifications = append(r.Certifications, x.certifications...)
	r.Volunteering = append(r.Volunteering, dedupeVolunteering(x.volunteering)...)
	return r
}
