package pipeline

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Stringify renders a state value the way the numeric variant reads it.
// Floats never use exponent notation.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Same reports whether two state values are equal for the purpose of the
// idempotence check. Non-comparable values fall back to deep equality.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// toNumber reports the numeric reading of a candidate. Strings are trimmed
// first; NaN and infinities are not numbers here.
func toNumber(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case uint32:
		f = float64(v)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CountDecimals reports the number of fractional digits of a candidate.
// Integral numbers count as zero; strings count the digits written after the
// first decimal point, so "1.50" has two.
func CountDecimals(value any) int {
	if s, ok := value.(string); ok {
		return countAfterPoint(strings.TrimSpace(s))
	}
	if f, ok := toNumber(value); ok && f == math.Trunc(f) {
		return 0
	}
	return countAfterPoint(Stringify(value))
}

// CountIntegerLength reports the number of digits before the first decimal
// point. Signs do not count.
func CountIntegerLength(value any) int {
	s := strings.TrimSpace(Stringify(value))
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}

func countAfterPoint(s string) int {
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return 0
	}
	rest := s[idx+1:]
	if next := strings.IndexByte(rest, '.'); next >= 0 {
		rest = rest[:next]
	}
	return len(rest)
}
