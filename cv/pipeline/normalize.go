package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t\f\v]+`)
	glyphBulletRe     = regexp.MustCompile(`^\s*[•·●▪‣◦]\s*`)
	asciiBulletRe     = regexp.MustCompile(`^\s*[-*]\s+`)
	contactTokenRe    = regexp.MustCompile(`@|https?://|www\.|linkedin\.com|github\.com`)
)

// Normalize cleans raw extracted text into the line-oriented form the
// segmenter expects: LF line endings, no control characters, canonical
// "- " bullets, single blank-line separators, and sentences broken apart
// by PDF layout rejoined. Empty input yields empty output; Normalize
// never fails.
func Normalize(raw string) string {
	raw = strings.TrimPrefix(raw, "\uFEFF")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	raw = strings.ReplaceAll(raw, "\u00a0", " ")

	rawLines := strings.Split(raw, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		line = stripControl(line)
		line = canonicalBullet(line)
		line = horizontalSpaceRe.ReplaceAllString(line, " ")
		lines = append(lines, strings.TrimSpace(line))
	}

	lines = rejoinBrokenLines(lines)

	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func canonicalBullet(line string) string {
	if glyphBulletRe.MatchString(line) {
		return glyphBulletRe.ReplaceAllString(line, "- ")
	}
	if asciiBulletRe.MatchString(line) {
		return asciiBulletRe.ReplaceAllString(line, "- ")
	}
	return line
}

// rejoinBrokenLines merges a line into its predecessor when the pair reads
// like one sentence split by layout: the first ends mid-sentence and the
// second starts lowercase. Headers, bullets and date lines stay intact.
func rejoinBrokenLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(out) > 0 && canRejoin(out[len(out)-1], line) {
			out[len(out)-1] += " " + line
			continue
		}
		out = append(out, line)
	}
	return out
}

func canRejoin(prev, next string) bool {
	if prev == "" || next == "" {
		return false
	}
	if strings.ContainsAny(string(prev[len(prev)-1]), ".!?:;") {
		return false
	}
	r := []rune(next)[0]
	if !unicode.IsLower(r) {
		return false
	}
	if strings.HasPrefix(next, "- ") || looksLikeHeader(prev, true) {
		return false
	}
	if contactTokenRe.MatchString(next) {
		return false
	}
	// A lowercased month ("jan 2020 - present") is still a date line, not
	// sentence continuation.
	return !startsWithDate(next)
}
