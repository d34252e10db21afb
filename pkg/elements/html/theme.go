package html

import (
	"fmt"

	theme "github.com/goliatone/go-theme"
)

// Theme tokens consulted for CSS classes.
const (
	TokenInput       = "inputprops.input"
	TokenInputError  = "inputprops.input.error"
	TokenHelper      = "inputprops.helper"
	TokenHelperError = "inputprops.helper.error"
	TokenFormErrors  = "inputprops.form.errors"
)

// Classes are the CSS classes applied by the templates.
type Classes struct {
	Input       string
	InputError  string
	Helper      string
	HelperError string
	FormErrors  string
}

// DefaultClasses are used when no theme is configured or a token is missing.
var DefaultClasses = Classes{
	Input:       "ip-input",
	InputError:  "ip-input ip-input--error",
	Helper:      "ip-helper",
	HelperError: "ip-helper ip-helper--error",
	FormErrors:  "ip-form-errors",
}

func (r *Renderer) classes() (Classes, error) {
	out := DefaultClasses
	if r.selector == nil {
		return out, nil
	}
	selection, err := r.selector.Select(r.themeName, r.themeVariant)
	if err != nil {
		return out, fmt.Errorf("html: select theme %q: %w", r.themeName, err)
	}
	tokens := selectionTokens(selection)
	pick := func(dst *string, token string) {
		if v, ok := tokens[token]; ok && v != "" {
			*dst = v
		}
	}
	pick(&out.Input, TokenInput)
	pick(&out.InputError, TokenInputError)
	pick(&out.Helper, TokenHelper)
	pick(&out.HelperError, TokenHelperError)
	pick(&out.FormErrors, TokenFormErrors)
	return out, nil
}

// selectionTokens merges manifest tokens with the selected variant's.
func selectionTokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for k, v := range selection.Manifest.Tokens {
		tokens[k] = v
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for k, v := range variant.Tokens {
			tokens[k] = v
		}
	}
	return tokens
}
