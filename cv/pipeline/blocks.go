package pipeline

import (
	"strings"

	"cv-reader/cv/model"
)

// maxEntryHeaderLines bounds how many lines above a date line are read as
// the role/employer header of an entry.
const maxEntryHeaderLines = 2

// positionKeywords mark a line as a job title rather than an employer.
var positionKeywords = []string{
	"developer", "engineer", "manager", "lead", "head", "intern",
	"specialist", "consultant", "director", "officer", "analyst",
}

// volunteerKeywords extend positionKeywords for volunteering roles.
var volunteerKeywords = append([]string{
	"volunteer", "mentor", "coordinator", "organizer", "tutor", "member",
}, positionKeywords...)

// roleEntry is the shared shape experience and volunteering blocks reduce
// to before mapping onto their model types.
type roleEntry struct {
	role     string
	org      string
	location string
	dates    model.DateRange
	details  []string
}

// parseRoleBlocks walks a section's entry blocks. A block whose lines are
// all bullets and carry no date attaches to the previous entry, since PDF
// extraction often splits an entry from its bullet list with a blank line.
func parseRoleBlocks(lines []string, roleWords []string) []roleEntry {
	var entries []roleEntry
	for _, block := range splitEntryBlocks(lines) {
		if len(entries) > 0 && blockIsAllBullets(block) && !blockHasAnchor(block) {
			last := &entries[len(entries)-1]
			last.details = append(last.details, cleanDetails(block)...)
			continue
		}
		entries = append(entries, roleEntriesFromBlock(block, roleWords)...)
	}
	return entries
}

// roleEntriesFromBlock splits one block at its date-range anchors. Up to
// maxEntryHeaderLines non-bullet lines above each anchor form that entry's
// header; everything below, until the next entry's header, is detail.
func roleEntriesFromBlock(block []string, roleWords []string) []roleEntry {
	var anchors []int
	for i, line := range block {
		if hasRangeAnchor(line) {
			anchors = append(anchors, i)
		}
	}
	if len(anchors) == 0 {
		return []roleEntry{roleFromDatelessBlock(block, roleWords)}
	}

	starts := make([]int, len(anchors))
	for k, ai := range anchors {
		lo := 0
		if k > 0 {
			lo = anchors[k-1] + 1
		}
		h := ai
		for h > lo && ai-h < maxEntryHeaderLines && !isBulletLine(block[h-1]) {
			h--
		}
		starts[k] = h
	}

	entries := make([]roleEntry, 0, len(anchors))
	for k, ai := range anchors {
		end := len(block)
		if k+1 < len(anchors) {
			end = starts[k+1]
		}
		e := buildRoleEntry(block[starts[k]:ai], block[ai], block[ai+1:end], roleWords)
		if k == 0 && starts[0] > 0 {
			e.details = append(cleanDetails(block[:starts[0]]), e.details...)
		}
		entries = append(entries, e)
	}
	return entries
}

func roleFromDatelessBlock(block []string, roleWords []string) roleEntry {
	var header []string
	i := 0
	for i < len(block) && len(header) < maxEntryHeaderLines && !isBulletLine(block[i]) {
		header = append(header, block[i])
		i++
	}
	return buildRoleEntry(header, "", block[i:], roleWords)
}

func buildRoleEntry(headerLines []string, dateLine string, detailLines []string, roleWords []string) roleEntry {
	e := roleEntry{details: []string{}}
	remainder := ""
	if dateLine != "" {
		var dates model.DateRange
		dates, remainder, _ = findDateRange(dateLine)
		e.dates = dates
	}

	switch len(headerLines) {
	case 0:
		e.role, e.org = splitRoleOrg(remainder, roleWords)
	case 1:
		e.role, e.org = splitRoleOrg(headerLines[0], roleWords)
		e.location = cleanLocation(remainder)
	default:
		l1 := strings.TrimSpace(headerLines[0])
		l2 := strings.TrimSpace(headerLines[1])
		l1IsRole := containsAnyFold(l1, roleWords)
		l2IsRole := containsAnyFold(l2, roleWords)
		switch {
		case l1IsRole && !l2IsRole:
			e.role, e.org = l1, l2
		case l2IsRole && !l1IsRole:
			e.role, e.org = l2, l1
		default:
			// Employer above title is the common layout.
			e.org, e.role = l1, l2
		}
		e.location = cleanLocation(remainder)
	}

	e.details = append(e.details, cleanDetails(detailLines)...)
	return e
}

// splitRoleOrg pulls a role and an organization out of one header line.
// "X at Y" reads role-first; pipe-separated parts are disambiguated by
// role keywords, defaulting to role-first. A single comma splits only
// when exactly one side carries a role keyword, so "Austin, TX" style
// remainders stay whole. A bare line is classified by keywords alone.
func splitRoleOrg(line string, roleWords []string) (role, org string) {
	s := strings.TrimSpace(line)
	if s == "" {
		return "", ""
	}
	if left, right, found := strings.Cut(s, "|"); found {
		left, right = strings.TrimSpace(left), strings.TrimSpace(right)
		if containsAnyFold(right, roleWords) && !containsAnyFold(left, roleWords) {
			return right, left
		}
		return left, right
	}
	for _, sep := range []string{" at ", " @ "} {
		if left, right, found := strings.Cut(s, sep); found {
			return strings.TrimSpace(left), strings.TrimSpace(right)
		}
	}
	if strings.Count(s, ",") == 1 {
		left, right, _ := strings.Cut(s, ",")
		left, right = strings.TrimSpace(left), strings.TrimSpace(right)
		if left != "" && right != "" {
			leftIsRole := containsAnyFold(left, roleWords)
			rightIsRole := containsAnyFold(right, roleWords)
			if leftIsRole && !rightIsRole {
				return left, right
			}
			if rightIsRole && !leftIsRole {
				return right, left
			}
		}
	}
	if containsAnyFold(s, roleWords) {
		return s, ""
	}
	return "", s
}

func containsAnyFold(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func cleanLocation(s string) string {
	return strings.Trim(s, " ,·•|–-")
}

func splitEntryBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func blockHasAnchor(block []string) bool {
	for _, line := range block {
		if hasRangeAnchor(line) {
			return true
		}
	}
	return false
}

func blockIsAllBullets(block []string) bool {
	for _, line := range block {
		if !isBulletLine(line) {
			return false
		}
	}
	return len(block) > 0
}

func isBulletLine(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "- ")
}

func stripBullet(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "- "))
}

func cleanDetails(lines []string) []string {
	out := []string{}
	for _, line := range lines {
		if cleaned := stripBullet(line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
