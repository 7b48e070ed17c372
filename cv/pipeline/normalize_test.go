package pipeline

import "testing"

func TestNormalizeCollapsesWhitespaceAndBlankLines(t *testing.T) {
	in := "John  \t Doe\r\n\r\n\r\n\r\nAustin,  TX\r\n"
	want := "John Doe\n\nAustin, TX"
	if got := Normalize(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalizeCanonicalizesBullets(t *testing.T) {
	in := "• Built things\n* Shipped stuff\n    - Fixed bugs"
	want := "- Built things\n- Shipped stuff\n- Fixed bugs"
	if got := Normalize(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalizeRejoinsBrokenSentences(t *testing.T) {
	in := "Led a team that built\ndistributed systems at scale.\nEXPERIENCE"
	want := "Led a team that built distributed systems at scale.\nEXPERIENCE"
	if got := Normalize(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalizeKeepsBulletsAndDatesApart(t *testing.T) {
	in := "Software Engineer\njan 2020 - present\n- built things"
	if got := Normalize(in); got != in {
		t.Fatalf("date and bullet lines must not be merged, got %q", got)
	}
}

func TestNormalizeStripsByteOrderMark(t *testing.T) {
	in := "\uFEFFJohn Doe\nAustin, TX"
	want := "John Doe\nAustin, TX"
	if got := Normalize(in); got != want {
		t.Fatalf("expected BOM stripped, got %q", got)
	}
}

func TestNormalizeReplacesNonBreakingSpaces(t *testing.T) {
	if got := Normalize("John\u00a0Doe"); got != "John Doe" {
		t.Fatalf("expected nbsp replaced, got %q", got)
	}
}

func TestNormalizeStripsControlCharacters(t *testing.T) {
	if got := Normalize("foo\x00bar\x07baz"); got != "foobarbaz" {
		t.Fatalf("expected control characters stripped, got %q", got)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\n", "\r\n \t \r\n"} {
		if got := Normalize(in); got != "" {
			t.Fatalf("expected empty output for %q, got %q", in, got)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	in := "John Doe\r\n\r\n• worked on\nbig systems\n\n\nSKILLS\nGo,  SQL"
	once := Normalize(in)
	if twice := Normalize(once); twice != once {
		t.Fatalf("normalize not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}
