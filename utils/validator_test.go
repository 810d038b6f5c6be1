package utils

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"ada@institute.org", true},
		{"first.last+tag@sub.example.com", true},
		{"no-at-sign", false},
		{"@missing-local.org", false},
		{"trailing@dot.", false},
	}

	for _, tc := range cases {
		if got := ValidateEmail(tc.email); got != tc.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"research2026", true},
		{"aB3defgh", true},
		{"short1", false},
		{"onlyletters", false},
		{"1234567890", false},
	}

	for _, tc := range cases {
		got, _ := ValidatePassword(tc.password)
		if got != tc.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}

func TestValidateOrcid(t *testing.T) {
	cases := []struct {
		orcid string
		want  bool
	}{
		{"0000-0002-1825-0097", true},
		{"0000-0001-5109-3700", true},
		{"0000-0002-1825-0098", false}, // wrong check digit
		{"0000-0002-1825-009", false},
		{"0000000218250097", false},
		{"abcd-0002-1825-0097", false},
	}

	for _, tc := range cases {
		if got := ValidateOrcid(tc.orcid); got != tc.want {
			t.Errorf("ValidateOrcid(%q) = %v, want %v", tc.orcid, got, tc.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  name\x00  "); got != "name" {
		t.Fatalf("SanitizeInput = %q", got)
	}
}

func TestGenerateStoredFilename(t *testing.T) {
	name := GenerateStoredFilename("Protocol Final.PDF")
	if !strings.HasSuffix(name, ".pdf") {
		t.Fatalf("expected lowercased extension, got %q", name)
	}
	if name == GenerateStoredFilename("Protocol Final.PDF") {
		t.Fatal("stored filenames must not collide")
	}
}
