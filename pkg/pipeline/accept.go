package pipeline

import (
	"math"
	"strings"
)

// IsAcceptable decides whether a parsed candidate may be committed. The
// configured restrictors run first and the first false rejects. Restricted
// variants then require a number honouring the decimal, integer-length and
// sign constraints; empty candidates always pass, and a bare "-" passes
// unless only positives are allowed.
func IsAcceptable(candidate any, variant Variant, s Settings) bool {
	for _, restrict := range s.Restrictors {
		if restrict == nil {
			continue
		}
		if !restrict(candidate) {
			return false
		}
	}

	if !variant.Restricted() || isBlank(candidate) {
		return true
	}

	text := strings.TrimSpace(Stringify(candidate))
	if text == "-" {
		return !s.OnlyPositives
	}

	number, ok := toNumber(candidate)
	if !ok {
		return false
	}
	if s.MaxDecimalPlaces != nil && CountDecimals(candidate) > *s.MaxDecimalPlaces {
		return false
	}
	if s.MaxIntegerLength != nil && CountIntegerLength(candidate) > *s.MaxIntegerLength {
		return false
	}
	if s.OnlyPositives && (number < 0 || math.Signbit(number)) {
		return false
	}
	if s.MaxDecimalPlaces != nil && *s.MaxDecimalPlaces == 0 && strings.Contains(text, ".") {
		return false
	}
	return true
}
