// Package display contains the pure helpers that turn backend values into what
// the portal shows: initials, percentages, password hints and dates.
package display

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Placeholder is rendered for missing or unreadable values.
const Placeholder = "-"

// Initials returns the uppercased first letters of the first two words of name.
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Fields(name) {
		if count == 2 {
			break
		}
		first, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(first))
		count++
	}
	return b.String()
}

// Percent renders a percentage with one decimal place.
func Percent(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}

// PercentagePreview computes marks/total*100 for the entry form. Nothing is shown
// until both inputs are filled and total is a non-zero number.
func PercentagePreview(marks, total string) (string, bool) {
	if marks == "" || total == "" {
		return "", false
	}
	totalValue, ok := finite(total)
	if !ok || totalValue == 0 {
		return "", false
	}
	marksValue, ok := finite(marks)
	if !ok {
		return "", false
	}
	return Percent(marksValue / totalValue * 100), true
}

func finite(text string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// Strength is the password hint label. It never gates submission.
type Strength string

const (
	StrengthNone   Strength = ""
	StrengthWeak   Strength = "Weak"
	StrengthMedium Strength = "Medium"
	StrengthStrong Strength = "Strong"
)

// PasswordStrength classifies password by length alone.
func PasswordStrength(password string) Strength {
	length := utf8.RuneCountInString(password)
	switch {
	case length == 0:
		return StrengthNone
	case length < 6:
		return StrengthWeak
	case length < 10:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}

// Tone buckets a percentage for colouring.
type Tone string

const (
	ToneGood    Tone = "good"
	ToneAverage Tone = "average"
	TonePoor    Tone = "poor"
)

// PercentageTone maps >=75 to good, >=50 to average and the rest to poor.
func PercentageTone(percentage float64) Tone {
	switch {
	case percentage >= 75:
		return ToneGood
	case percentage >= 50:
		return ToneAverage
	default:
		return TonePoor
	}
}

// Truncate shortens text to limit characters followed by an ellipsis.
func Truncate(text string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "..."
}

const (
	dateLayout     = "02 Jan 2006"
	dateTimeLayout = "02 Jan 2006, 03:04 PM"
)

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseISO(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an ISO date as "12 Sep 2024".
func FormatDate(value string) string {
	parsed, ok := parseISO(value)
	if !ok {
		return Placeholder
	}
	return parsed.Format(dateLayout)
}

// FormatDateTime renders an ISO timestamp as "12 Sep 2024, 04:30 PM" in its own offset.
func FormatDateTime(value string) string {
	parsed, ok := parseISO(value)
	if !ok {
		return Placeholder
	}
	return parsed.Format(dateTimeLayout)
}
