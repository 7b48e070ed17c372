package pipeline

import (
	"regexp"
	"strings"

	"cv-reader/cv/model"
)

// DefaultSkillCategory is the group flat, uncategorized skill lists are
// assigned to.
const DefaultSkillCategory = "General"

const (
	maxSkillWords         = 6
	maxCategoryWords      = 4
	skillDelimiters       = ",;|•·"
	maxSubHeaderLookahead = 2
)

var skillDelimRe = regexp.MustCompile(`[` + skillDelimiters + `]`)

// extractSkills parses a SKILLS section in its two shapes: "Category: a, b"
// lines and flat delimited lists, optionally grouped under bare sub-header
// lines. Groups keep the original casing of their first occurrence of each
// skill; duplicates are dropped case-insensitively.
func extractSkills(lines []string) []model.SkillGroup {
	b := newSkillBuilder()
	category := ""
	for i, raw := range lines {
		line := stripBullet(raw)
		if line == "" {
			continue
		}
		if name, rest, ok := splitCategoryLine(line); ok {
			category = name
			b.add(category, splitSkillTokens(rest))
			continue
		}
		if skillDelimRe.MatchString(line) {
			b.add(orDefault(category), splitSkillTokens(line))
			continue
		}
		if isSkillSubHeader(line, lines[i+1:]) {
			category = strings.TrimRight(line, ":")
			continue
		}
		if n := len(strings.Fields(line)); n >= 1 && n <= maxSkillWords {
			b.add(orDefault(category), []string{line})
		}
	}
	return b.groups
}

// mergeSkillGroups folds groups with the same case-folded category into
// one, preserving first-seen order.
func mergeSkillGroups(groups []model.SkillGroup) []model.SkillGroup {
	b := newSkillBuilder()
	for _, g := range groups {
		b.add(g.Category, g.Skills)
	}
	return b.groups
}

type skillBuilder struct {
	groups []model.SkillGroup
	index  map[string]int
	seen   map[string]map[string]struct{}
}

func newSkillBuilder() *skillBuilder {
	return &skillBuilder{
		groups: []model.SkillGroup{},
		index:  map[string]int{},
		seen:   map[string]map[string]struct{}{},
	}
}

func (b *skillBuilder) add(category string, skills []string) {
	if len(skills) == 0 {
		return
	}
	key := strings.ToLower(strings.TrimSpace(category))
	i, ok := b.index[key]
	if !ok {
		i = len(b.groups)
		b.index[key] = i
		b.groups = append(b.groups, model.SkillGroup{Category: category, Skills: []string{}})
		b.seen[key] = map[string]struct{}{}
	}
	for _, s := range skills {
		fold := strings.ToLower(s)
		if _, dup := b.seen[key][fold]; dup {
			continue
		}
		b.seen[key][fold] = struct{}{}
		b.groups[i].Skills = append(b.groups[i].Skills, s)
	}
}

// splitCategoryLine matches the "Category: a, b, c" shape. The category
// must be short and the remainder non-empty, so sentence-like lines with a
// colon do not become groups.
func splitCategoryLine(line string) (category, rest string, ok bool) {
	left, right, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if left == "" || right == "" || len(strings.Fields(left)) > maxCategoryWords {
		return "", "", false
	}
	if strings.Contains(strings.ToLower(line), "http") {
		return "", "", false
	}
	return left, right, true
}

// isSkillSubHeader reports whether a bare line labels the delimited lines
// that follow it, rather than naming a skill itself.
func isSkillSubHeader(line string, rest []string) bool {
	if len(strings.Fields(line)) > maxCategoryWords {
		return false
	}
	for i, next := range rest {
		if i >= maxSubHeaderLookahead {
			break
		}
		next = stripBullet(next)
		if next == "" {
			continue
		}
		return skillDelimRe.MatchString(next)
	}
	return false
}

func splitSkillTokens(s string) []string {
	parts := skillDelimRe.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || len(strings.Fields(p)) > maxSkillWords {
			continue
		}
		out = append(out, p)
	}
	return out
}

func orDefault(category string) string {
	if category == "" {
		return DefaultSkillCategory
	}
	return category
}
