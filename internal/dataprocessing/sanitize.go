package dataprocessing

import (
	"math"
	"strconv"
	"strings"
)

// StripNonLatin keeps ASCII and the Latin-1 letters U+00C0..U+00FF and drops
// every other character.
func StripNonLatin(s string) string {
	clean := true
	for _, r := range s {
		if !isLatin(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isLatin(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isLatin(r rune) bool {
	return r < 128 || (r >= 0x00C0 && r <= 0x00FF)
}

// NormalizeColumnName trims, lowercases and replaces spaces with underscores
func NormalizeColumnName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// ParseNumber parses a numeric cell. Missing cells are not numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatFloat renders a float the way the BI exports always had it:
// shortest representation, with ".0" for whole numbers.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// FormatInt formats an int for CSV output
func FormatInt(i int) string {
	return strconv.Itoa(i)
}

// FormatBool formats a boolean as True/False
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
