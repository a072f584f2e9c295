package metrics

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToSeconds converts a duration value to seconds. Accepted forms are
// numbers (already seconds), numeric strings with '.' or ',' as decimal
// separator, "HH:MM:SS" and "MM:SS". Anything else is absent.
func ToSeconds(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		return stringToSeconds(x)
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringToSeconds(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if isPlainNumber(s) {
		return parseFloat(strings.ReplaceAll(s, ",", "."))
	}

	if !strings.Contains(s, ":") {
		return 0, false
	}

	parts := strings.Split(s, ":")
	values := make([]float64, len(parts))
	for i, p := range parts {
		f, ok := parseFloat(p)
		if !ok {
			return 0, false
		}
		values[i] = f
	}

	switch len(values) {
	case 3:
		return values[0]*3600 + values[1]*60 + values[2], true
	case 2:
		return values[0]*60 + values[1], true
	default:
		return 0, false
	}
}

// isPlainNumber reports whether s is digits once separators are removed
func isPlainNumber(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

// FormatClock renders seconds as zero-padded HH:MM:SS, truncating each part
func FormatClock(seconds float64) string {
	hours := int64(seconds / 3600)
	minutes := int64(math.Mod(seconds, 3600) / 60)
	secs := int64(math.Mod(seconds, 60))
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
