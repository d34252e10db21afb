// Package formspec describes forms as documents: the fields to bind, their
// variants and formatting configuration, and their initial values.
package formspec

import (
	"github.com/goliatone/go-inputprops/pkg/pipeline"
)

// Input kinds a field can render as.
const (
	InputText     = "text"
	InputPassword = "password"
	InputNumber   = "number"
	InputCheckbox = "checkbox"
)

// Form is a named list of fields.
type Form struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Action string  `json:"action,omitempty" yaml:"action,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field describes one bound input. Restrictors and modifiers are registry
// references such as "maxLength:12" or "prefix:$ ".
type Field struct {
	Name             string           `json:"name" yaml:"name"`
	Label            string           `json:"label,omitempty" yaml:"label,omitempty"`
	Help             string           `json:"help,omitempty" yaml:"help,omitempty"`
	Input            string           `json:"input,omitempty" yaml:"input,omitempty"`
	Variant          pipeline.Variant `json:"variant,omitempty" yaml:"variant,omitempty"`
	Config           pipeline.Config  `json:"config,omitempty" yaml:"config,omitempty"`
	Restrictors      []string         `json:"restrictors,omitempty" yaml:"restrictors,omitempty"`
	ElementModifiers []string         `json:"elementModifiers,omitempty" yaml:"elementModifiers,omitempty"`
	StateModifiers   []string         `json:"stateModifiers,omitempty" yaml:"stateModifiers,omitempty"`
	Initial          any              `json:"initial,omitempty" yaml:"initial,omitempty"`
	Updatable        bool             `json:"updatable,omitempty" yaml:"updatable,omitempty"`
	Required         bool             `json:"required,omitempty" yaml:"required,omitempty"`
}

// Field returns the field with the given name.
func (f Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names lists the field names in document order.
func (f Form) Names() []string {
	out := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		out = append(out, field.Name)
	}
	return out
}

// DisplayLabel falls back to the field name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// InputType resolves the element kind. Fields without one render as
// checkboxes when configured or seeded with a bool.
func (f Field) InputType() string {
	if f.Input != "" {
		return f.Input
	}
	if f.Config.IsCheckbox != nil && *f.Config.IsCheckbox {
		return InputCheckbox
	}
	if _, ok := f.Initial.(bool); ok {
		return InputCheckbox
	}
	return InputText
}
