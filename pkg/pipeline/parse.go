package pipeline

import "strings"

// Parse maps an element input onto a candidate state value.
//
// Raw inputs are returned untouched. Checked inputs require a checkbox
// field and target values require a non-checkbox field; a mismatch is a
// configuration error (ErrUnexpectedCheckbox, ErrExpectedCheckbox), not a
// validation failure. Target values of the numeric variant are normalised
// (separators stripped, decimal separator mapped to "."), then every variant
// runs the state modifiers.
func Parse(in Input, variant Variant, s Settings) (any, error) {
	switch in.kind {
	case InputNone:
		return nil, nil
	case InputRaw:
		return in.value, nil
	case InputChecked:
		if !s.Checkbox {
			return nil, ErrUnexpectedCheckbox
		}
		return in.checked, nil
	}

	if s.Checkbox {
		return nil, ErrExpectedCheckbox
	}

	value := in.value
	if variant == VariantNumeric {
		value = parseNumeric(value, s)
	}
	for _, modify := range s.StateModifiers {
		if modify == nil {
			continue
		}
		value = modify(value)
	}
	return value, nil
}

func parseNumeric(value any, s Settings) any {
	if isBlank(value) {
		return ""
	}
	text := strings.TrimSpace(Stringify(value))
	switch text {
	case "":
		return ""
	case ".":
		return "0."
	case "0.":
		return text
	}

	if len(text) > 1 && text[0] == '0' && !strings.HasPrefix(text[1:], s.DecimalsSeparator) {
		text = text[1:]
	}
	if s.ThousandsSeparator != "" {
		text = strings.ReplaceAll(text, s.ThousandsSeparator, "")
	}
	if s.DecimalsSeparator != "." {
		text = strings.Replace(text, s.DecimalsSeparator, ".", 1)
	}
	return text
}
