package pipeline

import (
	"fmt"
	"strings"
)

// Variant selects how a field's value domain is interpreted by Parse, Format
// and IsAcceptable.
type Variant string

const (
	// VariantAll assigns the element value as is.
	VariantAll Variant = "all"
	// VariantOnlyNumbers is the deprecated spelling of VariantNumericString.
	VariantOnlyNumbers Variant = "onlyNumbers"
	// VariantString keeps a plain string state value.
	VariantString Variant = "string"
	// VariantNumericString keeps a string state value restricted to numbers.
	VariantNumericString Variant = "numericString"
	// VariantNumeric keeps a normalised numeric string and formats it with
	// separators for display.
	VariantNumeric Variant = "numeric"
)

// ParseVariant resolves a variant name. Matching is case-insensitive and the
// empty string resolves to VariantAll.
func ParseVariant(raw string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return VariantAll, nil
	case "onlynumbers":
		return VariantOnlyNumbers, nil
	case "string":
		return VariantString, nil
	case "numericstring":
		return VariantNumericString, nil
	case "numeric":
		return VariantNumeric, nil
	default:
		return "", fmt.Errorf("pipeline: unknown variant %q", raw)
	}
}

// Restricted reports whether the variant only accepts numeric candidates.
func (v Variant) Restricted() bool {
	switch v {
	case VariantOnlyNumbers, VariantNumericString, VariantNumeric:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (v Variant) String() string {
	if v == "" {
		return string(VariantAll)
	}
	return string(v)
}

// UnmarshalText lets documents spell variants in any case.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
