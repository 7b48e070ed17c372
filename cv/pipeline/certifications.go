package pipeline

import (
	"regexp"
	"strings"

	"cv-reader/cv/model"
)

var (
	trailingDateRe = regexp.MustCompile(`(?i)[\s,(–—-]*(` + endpointPat + `)\s*\)?$`)
	issuerSepRe    = regexp.MustCompile(`\s+[—|]\s+|\s+-\s+`)
)

// extractCertifications parses a CERTIFICATIONS section. A line carrying a
// trailing date starts a credential; a bare line either names the issuer of
// the previous credential or starts a dateless one. A date that fails to
// normalize stays in the entry as found.
func extractCertifications(lines []string) []model.CertificationEntry {
	var out []model.CertificationEntry
	for _, raw := range lines {
		line := stripBullet(raw)
		if line == "" {
			continue
		}
		name, date := splitTrailingDate(line)
		if name == "" && date != "" && len(out) > 0 && out[len(out)-1].Date == "" {
			out[len(out)-1].Date = date
			continue
		}
		if date == "" && len(out) > 0 && out[len(out)-1].Issuer == "" && !strings.ContainsAny(line, ",") {
			last := &out[len(out)-1]
			if last.Date != "" {
				last.Issuer = line
				continue
			}
		}
		entry := model.CertificationEntry{Name: name, Date: date}
		if parts := issuerSepRe.Split(entry.Name, 2); len(parts) == 2 {
			entry.Name = strings.TrimSpace(parts[0])
			entry.Issuer = strings.TrimSpace(parts[1])
		}
		if entry.Name == "" && entry.Date == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// splitTrailingDate cuts a date off the end of the line, normalized to the
// JSON date form when it parses and kept verbatim when it does not.
func splitTrailingDate(line string) (rest, date string) {
	loc := trailingDateRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return strings.TrimSpace(line), ""
	}
	raw := line[loc[2]:loc[3]]
	date = raw
	if formatted, ok := parseSingleDate(raw); ok {
		date = formatted
	}
	return strings.TrimSpace(line[:loc[0]]), date
}
