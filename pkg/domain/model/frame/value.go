package frame

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// IsMissing reports whether v is a missing cell. NaN counts as missing.
func IsMissing(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(val)
	}
	return false
}

// String renders a cell as text. Missing cells render as an empty string, lists as their
// elements joined by ", " and objects as JSON.
func String(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		if math.IsNaN(val) {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case []string:
		return strings.Join(val, ", ")
	case []any:
		return Join(val, ", ")
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// Join concatenates the string form of each element with sep. Nested lists are rendered as
// compact JSON, like objects.
func Join(values []any, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		switch v.(type) {
		case []any, []string:
			raw, err := json.Marshal(v)
			if err != nil {
				continue
			}
			parts[i] = string(raw)
		default:
			parts[i] = String(v)
		}
	}
	return strings.Join(parts, sep)
}

// Digits reduces a cell to a non-negative integer. Text keeps only its ASCII digits, so
// "+2" becomes 2 and "X" has no value. Numbers are truncated toward zero and their sign
// dropped. The second value is false when nothing usable remains.
func Digits(v any) (int64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case int:
		return absInt(int64(val))
	case int64:
		return absInt(val)
	case float64:
		return truncate(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return absInt(n)
		}
		f, err := val.Float64()
		if err != nil {
			return stripDigits(val.String())
		}
		return truncate(f)
	case string:
		return stripDigits(val)
	default:
		return stripDigits(String(val))
	}
}

func stripDigits(s string) (int64, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Abs(math.Trunc(f))
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func absInt(n int64) (int64, bool) {
	switch {
	case n == math.MinInt64:
		return 0, false
	case n < 0:
		return -n, true
	default:
		return n, true
	}
}
