// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var orcidRegex = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength against the institute account
// policy: at least 8 characters with at least one letter and one digit.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return false, "Password must contain at least one letter and one digit"
	}

	return true, ""
}

// ValidateOrcid checks an ORCID iD in its 0000-0002-1825-0097 form,
// including the ISO 7064 mod 11-2 check digit (X means 10).
func ValidateOrcid(orcid string) bool {
	if !orcidRegex.MatchString(orcid) {
		return false
	}

	digits := strings.ReplaceAll(orcid, "-", "")
	total := 0
	for _, r := range digits[:15] {
		total = (total + int(r-'0')) * 2
	}
	check := (12 - total%11) % 11

	expected := byte('0' + check)
	if check == 10 {
		expected = 'X'
	}
	return digits[15] == expected
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
