package validation

import (
	"regexp"
	"slices"
	"unicode/utf8"
)

var (
	contactNumberRegex = regexp.MustCompile(`^[0-9]{10}$`)
	emailRegex         = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)
)

// MinPasswordLength is the hard minimum enforced on every password field.
const MinPasswordLength = 6

// Present reports whether every value is a non-empty string. Whitespace counts
// as content, matching the browser forms.
func Present(values ...string) bool {
	for _, value := range values {
		if value == "" {
			return false
		}
	}
	return true
}

// IsContactNumber reports whether value is exactly ten ASCII digits.
func IsContactNumber(value string) bool {
	return contactNumberRegex.MatchString(value)
}

// IsEmail reports whether value looks like local@domain.tld.
func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// LongEnough reports whether the password meets MinPasswordLength characters.
func LongEnough(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}

// OneOf reports whether value is a member of options.
func OneOf(value string, options []string) bool {
	return slices.Contains(options, value)
}
