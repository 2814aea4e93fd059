// Package textutil provides contact-information extraction helpers for raw
// text pulled from UK business directory pages.
package textutil

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// ukPhonePatterns are complementary surface patterns: national format
	// with separators, "+44 or 0" followed by 10-11 digits, and the plain
	// 5+6 grouped form. Matches across all three are unioned.
	ukPhonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:\+44|0)[\s.\-]?\d{2,4}[\s.\-]?\d{3,4}[\s.\-]?\d{3,4}`),
		regexp.MustCompile(`(?:\+44|0)\s?\d{10,11}`),
		regexp.MustCompile(`\d{5}\s?\d{6}`),
	}

	ukPostcodePattern = regexp.MustCompile(`(?i)[A-Z]{1,2}\d[A-Z\d]?\s*\d[A-Z]{2}`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// noiseEmailFragments flag addresses harvested from placeholder text, image
// filenames, or analytics snippets rather than real contact details.
var noiseEmailFragments = []string{
	"example.",
	"domain.",
	"email.",
	".png",
	".jpg",
	".gif",
	"sentry.io",
}

// ExtractEmails returns the unique email addresses found in text, lowercased.
// Addresses matching a known noise fragment are excluded. Order follows first
// appearance in the input.
func ExtractEmails(text string) []string {
	matches := emailPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	emails := make([]string, 0, len(matches))

	for _, match := range matches {
		email := strings.ToLower(match)
		if isNoiseEmail(email) {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}

	return emails
}

func isNoiseEmail(email string) bool {
	for _, fragment := range noiseEmailFragments {
		if strings.Contains(email, fragment) {
			return true
		}
	}
	return false
}

// ExtractUKPhones returns candidate UK phone numbers found in text, with
// duplicates across patterns collapsed. No checksum or area-code validation
// is applied; this is best-effort surface extraction.
func ExtractUKPhones(text string) []string {
	seen := make(map[string]struct{})
	var phones []string

	for _, pattern := range ukPhonePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			phones = append(phones, match)
		}
	}

	return phones
}

// ExtractUKPostcode returns the first UK postcode found in text, uppercased,
// or the empty string if none is present.
func ExtractUKPostcode(text string) string {
	match := ukPostcodePattern.FindString(text)
	return strings.ToUpper(match)
}

// NormalizeText collapses runs of whitespace (including newlines and tabs)
// into single spaces and trims leading and trailing whitespace.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
