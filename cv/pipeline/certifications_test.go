package pipeline

import (
	"reflect"
	"testing"

	"cv-reader/cv/model"
)

func TestExtractCertificationsInlineIssuerAndDate(t *testing.T) {
	lines := []string{
		"Certified Kubernetes Administrator — Cloud Native Computing Foundation, 2022",
	}
	got := extractCertifications(lines)
	want := []model.CertificationEntry{
		{
			Name:   "Certified Kubernetes Administrator",
			Issuer: "Cloud Native Computing Foundation",
			Date:   "2022",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestExtractCertificationsIssuerOnNextLine(t *testing.T) {
	lines := []string{
		"AWS Solutions Architect Professional (Mar 2021)",
		"Amazon Web Services",
	}
	got := extractCertifications(lines)
	want := []model.CertificationEntry{
		{
			Name:   "AWS Solutions Architect Professional",
			Issuer: "Amazon Web Services",
			Date:   "2021-03",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestExtractCertificationsDatelessAndBulleted(t *testing.T) {
	lines := []string{
		"- CompTIA Security+",
		"- Google Professional Cloud Architect, 2023",
	}
	got := extractCertifications(lines)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %+v", got)
	}
	if got[0].Name != "CompTIA Security+" || got[0].Date != "" {
		t.Fatalf("unexpected first entry %+v", got[0])
	}
	if got[1].Name != "Google Professional Cloud Architect" || got[1].Date != "2023" {
		t.Fatalf("unexpected second entry %+v", got[1])
	}
}

func TestExtractCertificationsSkipsBlankLines(t *testing.T) {
	if got := extractCertifications([]string{"", "  ", "-"}); len(got) != 0 {
		t.Fatalf("expected no entries, got %+v", got)
	}
}
