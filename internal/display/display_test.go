package display

import (
	"math"
	"strconv"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"":                   "",
		"   ":                "",
		"asha":               "A",
		"asha verma":         "AV",
		"Asha  Rani   Verma": "AR",
		"élodie durand":      "ÉD",
	}
	for input, want := range cases {
		require.Equal(t, want, Initials(input), input)
	}
}

func TestInitialsAtMostTwoUppercase(t *testing.T) {
	for _, name := range []string{"a b c d", "x", "mary ann smith", "ß q"} {
		got := Initials(name)
		require.LessOrEqual(t, utf8.RuneCountInString(got), 2)
		for _, r := range got {
			require.Equal(t, unicode.ToUpper(r), r)
		}
	}
}

func TestPercentagePreview(t *testing.T) {
	got, ok := PercentagePreview("45", "50")
	require.True(t, ok)
	require.Equal(t, "90.0", got)

	got, ok = PercentagePreview("1", "3")
	require.True(t, ok)
	require.Equal(t, "33.3", got)

	got, ok = PercentagePreview("0", "80")
	require.True(t, ok)
	require.Equal(t, "0.0", got)

	for _, pair := range [][2]string{{"", "50"}, {"10", ""}, {"10", "0"}, {"10", "abc"}, {"x", "10"}, {"50", "Inf"}, {"NaN", "50"}, {"Infinity", "100"}, {"10", "-Inf"}} {
		_, ok := PercentagePreview(pair[0], pair[1])
		require.False(t, ok, pair)
	}
}

func TestPercentagePreviewMatchesRoundedRatio(t *testing.T) {
	for _, pair := range [][2]float64{{17, 23}, {99, 100}, {2, 7}, {150, 200}} {
		got, ok := PercentagePreview(strconv.FormatFloat(pair[0], 'f', -1, 64), strconv.FormatFloat(pair[1], 'f', -1, 64))
		require.True(t, ok)
		want := math.Round(pair[0]/pair[1]*1000) / 10
		require.Equal(t, strconv.FormatFloat(want, 'f', 1, 64), got)
	}
}

func TestPasswordStrength(t *testing.T) {
	require.Equal(t, StrengthNone, PasswordStrength(""))
	require.Equal(t, StrengthWeak, PasswordStrength("abc12"))
	require.Equal(t, StrengthMedium, PasswordStrength("abc123"))
	require.Equal(t, StrengthMedium, PasswordStrength("abc123456"))
	require.Equal(t, StrengthStrong, PasswordStrength("abc1234567"))
}

func TestPercentageTone(t *testing.T) {
	require.Equal(t, ToneGood, PercentageTone(75))
	require.Equal(t, ToneAverage, PercentageTone(74.9))
	require.Equal(t, ToneAverage, PercentageTone(50))
	require.Equal(t, TonePoor, PercentageTone(49.99))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", Truncate("short", 10))
	require.Equal(t, "exact", Truncate("exact", 5))
	require.Equal(t, "annou...", Truncate("announcement", 5))
	require.Equal(t, "नम...", Truncate("नमस्ते", 2))
}

func TestFormatDate(t *testing.T) {
	require.Equal(t, "12 Sep 2024", FormatDate("2024-09-12"))
	require.Equal(t, "12 Sep 2024", FormatDate("2024-09-12T10:30:00.000Z"))
	require.Equal(t, "01 Jan 2025", FormatDate("2025-01-01T00:00:00+05:30"))
	require.Equal(t, Placeholder, FormatDate(""))
	require.Equal(t, Placeholder, FormatDate("not a date"))
}

func TestFormatDateTime(t *testing.T) {
	require.Equal(t, "12 Sep 2024, 04:05 PM", FormatDateTime("2024-09-12T16:05:00Z"))
	require.Equal(t, Placeholder, FormatDateTime(""))
}
