// Package html hosts bound inputs in server-rendered HTML forms. An Input
// receives its props from an inputprops wrapper, renders through the
// template engine and turns posted form values back into binding inputs.
package html

import (
	"context"
	"errors"
	"net/url"

	"github.com/goliatone/go-inputprops/pkg/bind"
	"github.com/goliatone/go-inputprops/pkg/inputprops"
)

// ErrUnbound is returned when an input is rendered or submitted before a
// binding applied its props.
var ErrUnbound = errors.New("html: input has no props")

// Input types understood by the templates.
const (
	TypeText     = "text"
	TypePassword = "password"
	TypeNumber   = "number"
	TypeCheckbox = "checkbox"
)

// Input is an HTML form control. Checkbox rendering follows the props
// shape, so Type only distinguishes text-like controls.
type Input struct {
	Name        string
	Label       string
	Help        string
	Type        string
	Placeholder string
	Required    bool

	props inputprops.Props
	bound bool
}

var _ inputprops.Element = (*Input)(nil)

// SetProps stores the props computed by a binding wrapper.
func (in *Input) SetProps(p inputprops.Props) {
	in.props = p
	in.bound = true
}

// Props returns the last props applied and whether any were.
func (in *Input) Props() (inputprops.Props, bool) {
	return in.props, in.bound
}

// Submit feeds the posted value for the input into its change handler.
// Browsers omit unchecked checkboxes, so a missing key unchecks a checkbox
// and leaves any other input untouched.
func (in *Input) Submit(ctx context.Context, form url.Values) error {
	if !in.bound || in.props.OnChange == nil {
		return ErrUnbound
	}
	if in.props.Checkbox {
		return in.props.OnChange(ctx, bind.TargetChecked(form.Has(in.Name)))
	}
	if !form.Has(in.Name) {
		return nil
	}
	return in.props.OnChange(ctx, bind.TargetValue(form.Get(in.Name)))
}
