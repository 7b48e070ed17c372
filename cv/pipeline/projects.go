package pipeline

import (
	"regexp"
	"strings"

	"cv-reader/cv/model"
)

const maxProjectNameWords = 6

var techLineRe = regexp.MustCompile(`(?i)^(?:technologies|technology|tech stack|built with|stack)\s*[:\-]\s*(.+)$`)

// extractProjects parses a PROJECTS section. A "Name: description" line
// starts a project on its own; otherwise the first line of a block is the
// name and the rest is description. "Technologies: ..." lines become the
// technology list instead of description text.
func extractProjects(lines []string) []model.ProjectEntry {
	var out []model.ProjectEntry
	for _, block := range splitEntryBlocks(lines) {
		out = append(out, projectsFromBlock(block)...)
	}
	return out
}

func projectsFromBlock(block []string) []model.ProjectEntry {
	var out []model.ProjectEntry
	var current *model.ProjectEntry
	var desc []string

	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.Join(desc, " ")
		out = append(out, *current)
		current, desc = nil, nil
	}
	start := func(name string) {
		flush()
		current = &model.ProjectEntry{Name: name, Technologies: []string{}}
	}

	for i, raw := range block {
		line := stripBullet(raw)
		if line == "" {
			continue
		}
		if m := techLineRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				current.Technologies = append(current.Technologies, splitSkillTokens(m[1])...)
			}
			continue
		}
		if name, rest, ok := splitProjectNameLine(line); ok {
			start(name)
			if rest != "" {
				desc = append(desc, rest)
			}
			continue
		}
		if i == 0 {
			start(line)
			continue
		}
		desc = append(desc, line)
	}
	flush()
	return out
}

// splitProjectNameLine matches the "Name: description" shape with a short
// name, the original input format for project entries.
func splitProjectNameLine(line string) (name, rest string, ok bool) {
	left, right, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if left == "" || len(strings.Fields(left)) > maxProjectNameWords {
		return "", "", false
	}
	if strings.Contains(strings.ToLower(left), "http") {
		return "", "", false
	}
	return left, right, true
}
