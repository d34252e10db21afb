package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrExpectedCheckbox signals a field configured or inferred as a
	// checkbox that received a non-checkbox target value.
	ErrExpectedCheckbox = errors.New("pipeline: field is a checkbox but the input target is not")
	// ErrUnexpectedCheckbox signals a non-checkbox field that received a
	// checked flag from a checkbox target.
	ErrUnexpectedCheckbox = errors.New("pipeline: input target is a checkbox but the field is not")
)

// InputKind discriminates Input.
type InputKind uint8

const (
	// InputNone is the zero Input; bindings ignore it.
	InputNone InputKind = iota
	// InputRaw carries a value assigned as is, bypassing Parse.
	InputRaw
	// InputValue carries the value of a non-checkbox target.
	InputValue
	// InputChecked carries the checked flag of a checkbox target.
	InputChecked
)

func (k InputKind) String() string {
	switch k {
	case InputRaw:
		return "raw"
	case InputValue:
		return "value"
	case InputChecked:
		return "checked"
	default:
		return "none"
	}
}

// Input is what an element hands to a binding on change. Element adapters
// build it with RawValue, TargetValue or TargetChecked.
type Input struct {
	kind    InputKind
	value   any
	checked bool
}

// RawValue builds an Input whose value is committed without parsing.
func RawValue(value any) Input {
	return Input{kind: InputRaw, value: value}
}

// TargetValue builds an Input from a text-like target.
func TargetValue(value string) Input {
	return Input{kind: InputValue, value: value}
}

// TargetChecked builds an Input from a checkbox target.
func TargetChecked(checked bool) Input {
	return Input{kind: InputChecked, checked: checked}
}

// Kind reports the discriminator.
func (in Input) Kind() InputKind {
	return in.kind
}

// IsZero reports whether the input is absent.
func (in Input) IsZero() bool {
	return in.kind == InputNone
}

// Value returns the carried value; checked inputs return their flag.
func (in Input) Value() any {
	if in.kind == InputChecked {
		return in.checked
	}
	return in.value
}

func (in Input) String() string {
	return fmt.Sprintf("%s(%v)", in.kind, in.Value())
}
