package pipeline

import "strings"

// Format maps a state value onto the value an element displays. Only the
// numeric variant rewrites the value; every variant then runs the element
// modifiers, and a nil result becomes the configured empty value.
func Format(value any, variant Variant, s Settings) any {
	if variant == VariantNumeric {
		value = formatNumeric(value, s)
	}
	for _, modify := range s.ElementModifiers {
		if modify == nil {
			continue
		}
		value = modify(value)
	}
	if value == nil {
		return s.EmptyValue
	}
	return value
}

// FormatString is Format for callers that always want text.
func FormatString(value any, variant Variant, s Settings) string {
	return Stringify(Format(value, variant, s))
}

func formatNumeric(value any, s Settings) any {
	if value == nil {
		return ""
	}
	text := strings.TrimSpace(Stringify(value))
	switch {
	case text == "":
		return text
	case text == "-":
		return text
	case text == ".":
		return "0."
	case strings.HasSuffix(text, ".") && strings.Count(text, ".") == 1:
		return text
	}

	parts := strings.Split(text, ".")
	intPart := groupThousands(parts[0], s.ThousandsSeparator)
	frac, hasFrac := "", len(parts) > 1
	if hasFrac {
		frac = parts[1]
	}

	if want := s.NumberOfDecimalsAlwaysAppearing; want > 0 && len(frac) < want {
		frac += strings.Repeat("0", want-len(frac))
		hasFrac = true
	}
	if !hasFrac {
		return intPart
	}
	return intPart + s.DecimalsSeparator + frac
}

// groupThousands inserts sep before every run of three digits that ends a
// digit sequence, skipping positions that sit on a word boundary (so a
// leading sign or letter never gets a separator after it).
func groupThousands(text, sep string) string {
	if sep == "" || len(text) < 4 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + len(text)/3*len(sep))
	for i := 0; i < len(text); i++ {
		if i > 0 && !wordBoundary(text, i) {
			if run := digitRun(text, i); run > 0 && run%3 == 0 {
				b.WriteString(sep)
			}
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

func wordBoundary(text string, i int) bool {
	return isWordByte(text[i-1]) != isWordByte(text[i])
}

func digitRun(text string, i int) int {
	n := 0
	for j := i; j < len(text) && isDigit(text[j]); j++ {
		n++
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordByte(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
