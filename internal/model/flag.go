package model

import (
	"fmt"
	"strings"
	"unicode"
)

// regionalIndicatorOffset maps 'A' to U+1F1E6
const regionalIndicatorOffset = 0x1F1E6 - 'A'

// FlagEmoji converts an ISO 3166-1 alpha-2 country code into its flag glyph.
// Returns an empty string for anything that is not two ASCII letters.
func FlagEmoji(countryCode string) string {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if len(code) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range code {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return ""
		}
		b.WriteRune(r + regionalIndicatorOffset)
	}
	return b.String()
}

// FlagImageURL returns the flag image used in city lists
func FlagImageURL(countryCode string) string {
	if countryCode == "" {
		return ""
	}
	return fmt.Sprintf("https://flagsapi.com/%s/flat/48.png", strings.ToUpper(countryCode))
}

// CountryCode reverses FlagEmoji. Plain two-letter codes are returned
// upper-cased; anything else yields "".
func CountryCode(flagOrCode string) string {
	s := strings.TrimSpace(flagOrCode)
	runes := []rune(s)
	if len(runes) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range runes {
		switch {
		case r >= 0x1F1E6 && r <= 0x1F1FF:
			b.WriteRune(r - regionalIndicatorOffset)
		case r <= unicode.MaxASCII && unicode.IsLetter(r):
			b.WriteRune(unicode.ToUpper(r))
		default:
			return ""
		}
	}
	return b.String()
}
