package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const sampleDoc = `Jane Roe
Senior Backend Engineer
jane.roe@example.com

SKILLS
Go, PostgreSQL, Redis
`

func TestParseCommandOutputsJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.txt")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o600); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"parse", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var result struct {
		File string `json:"file"`
		Data struct {
			Contact struct {
				Email string `json:"email"`
			} `json:"contact"`
			Skills []struct {
				Skills []string `json:"skills"`
			} `json:"skills"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("decode output: %v (%q)", err, out.String())
	}
	if result.File != path {
		t.Fatalf("unexpected file %q", result.File)
	}
	if result.Data.Contact.Email != "jane.roe@example.com" {
		t.Fatalf("unexpected email %q", result.Data.Contact.Email)
	}
	if len(result.Data.Skills) != 1 || len(result.Data.Skills[0].Skills) != 3 {
		t.Fatalf("unexpected skills %v", result.Data.Skills)
	}
}

func TestParseCommandRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.png")
	if err := os.WriteFile(path, []byte{0x89, 0x50}, 0o600); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"parse", path})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unsupported file type")
	}
}
