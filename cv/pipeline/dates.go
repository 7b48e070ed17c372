package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/araddon/dateparse"

	"cv-reader/cv/model"
)

// endpointPat covers the textual forms one range endpoint may take:
// month-name + year, numeric month/year, ISO year-month, or bare year.
const endpointPat = `(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}|\d{1,2}/\d{4}|\d{4}-(?:0[1-9]|1[0-2])|\d{4})`

var (
	dateRangeRe   = regexp.MustCompile(`(?i)\b(` + endpointPat + `)\s*(?:[–—-]|\bto\b|\buntil\b|\bthrough\b)\s*(` + endpointPat + `|present|current|now)\b`)
	singleDateRe  = regexp.MustCompile(`(?i)\b` + endpointPat + `\b`)
	leadingDateRe = regexp.MustCompile(`(?i)^` + endpointPat + `\b`)
	presentRe     = regexp.MustCompile(`(?i)^(?:present|current|now)$`)

	monthNameRe    = regexp.MustCompile(`(?i)^(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{4})$`)
	numericMonthRe = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	isoMonthRe     = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)
	yearOnlyRe     = regexp.MustCompile(`^\d{4}$`)
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// dateToken is one parsed range endpoint. month is zero for year-only
// forms.
type dateToken struct {
	year  int
	month int
}

func (t dateToken) format() string {
	if t.month == 0 {
		return strconv.Itoa(t.year)
	}
	return fmt.Sprintf("%04d-%02d", t.year, t.month)
}

// plausibleYear bounds the years accepted as dates, so street numbers and
// other four-digit figures do not anchor entries.
func plausibleYear(year int) bool {
	return year >= 1900 && year <= 2099
}

// findDateRange scans a line for the first date expression. A full range
// resolves to endpoints; a lone date or a malformed range (unparseable or
// reversed endpoints) is retained in Raw per the fail-soft policy. The
// second result is the line with the expression removed.
func findDateRange(line string) (model.DateRange, string, bool) {
	if loc := dateRangeRe.FindStringSubmatchIndex(line); loc != nil {
		matched := line[loc[0]:loc[1]]
		left := line[loc[2]:loc[3]]
		right := line[loc[4]:loc[5]]
		if r := rangeFromEndpoints(left, right, matched); !r.IsZero() {
			return r, cutSpan(line, loc[0], loc[1]), true
		}
	}
	if loc := singleDateRe.FindStringIndex(line); loc != nil {
		matched := line[loc[0]:loc[1]]
		if _, ok := parseDateToken(matched); ok {
			return model.DateRange{Raw: matched}, cutSpan(line, loc[0], loc[1]), true
		}
	}
	return model.DateRange{}, line, false
}

// hasRangeAnchor reports whether the line carries a date range solid enough
// to anchor an entry: a range expression with at least one parseable
// endpoint. Lone dates do not anchor.
func hasRangeAnchor(line string) bool {
	m := dateRangeRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	_, lok := parseDateToken(m[1])
	if lok {
		return true
	}
	_, rok := parseDateToken(m[2])
	return rok
}

func startsWithDate(line string) bool {
	return leadingDateRe.MatchString(line)
}

func rangeFromEndpoints(left, right, matched string) model.DateRange {
	lt, lok := parseDateToken(left)
	if presentRe.MatchString(right) {
		if !lok {
			return model.DateRange{Raw: matched}
		}
		return model.DateRange{Start: lt.format(), End: model.PresentEnd}
	}
	rt, rok := parseDateToken(right)
	switch {
	case lok && rok:
		r := model.DateRange{Start: lt.format(), End: rt.format()}
		if r.Validate() != nil {
			// Reversed endpoints: keep the text, drop the bogus range.
			return model.DateRange{Raw: matched}
		}
		return r
	case lok || rok:
		return model.DateRange{Raw: matched}
	default:
		return model.DateRange{}
	}
}

// parseDateToken parses one endpoint. The native forms cover everything
// the range pattern can match; anything else gets one attempt through
// dateparse before rejection.
func parseDateToken(s string) (dateToken, bool) {
	s = strings.TrimSpace(s)
	if m := monthNameRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[2])
		if !plausibleYear(year) {
			return dateToken{}, false
		}
		return dateToken{year: year, month: monthNumbers[strings.ToLower(m[1])]}, true
	}
	if m := numericMonthRe.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 || !plausibleYear(year) {
			return dateToken{}, false
		}
		return dateToken{year: year, month: month}, true
	}
	if m := isoMonthRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if !plausibleYear(year) {
			return dateToken{}, false
		}
		return dateToken{year: year, month: month}, true
	}
	if yearOnlyRe.MatchString(s) {
		year, _ := strconv.Atoi(s)
		if !plausibleYear(year) {
			return dateToken{}, false
		}
		return dateToken{year: year}, true
	}
	if strings.IndexFunc(s, unicode.IsLetter) >= 0 {
		if t, err := dateparse.ParseAny(s); err == nil && plausibleYear(t.Year()) {
			return dateToken{year: t.Year(), month: int(t.Month())}, true
		}
	}
	return dateToken{}, false
}

// parseSingleDate normalizes a standalone date ("Mar 2021") to the JSON
// date form. ok is false when s is not a recognizable date.
func parseSingleDate(s string) (string, bool) {
	t, ok := parseDateToken(s)
	if !ok {
		return "", false
	}
	return t.format(), true
}

func cutSpan(line string, start, end int) string {
	return strings.TrimSpace(strings.Join(strings.Fields(line[:start]+" "+line[end:]), " "))
}
