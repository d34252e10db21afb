// Package inputprops composes a field binding with the form's error registry
// and forwards the combined property set onto an element.
package inputprops

import (
	"github.com/goliatone/go-inputprops/pkg/bind"
	"github.com/goliatone/go-inputprops/pkg/formerrors"
	"github.com/goliatone/go-inputprops/pkg/state"
)

// Element receives the merged properties of a binding.
type Element interface {
	SetProps(Props)
}

// ElementFunc adapts a function to Element.
type ElementFunc func(Props)

func (f ElementFunc) SetProps(p Props) { f(p) }

// Props is a binding plus the optional error-display pair.
type Props struct {
	bind.Props
	// WithErrors is set when an error registry contributed Error and
	// HelperText.
	WithErrors bool
	Error      bool
	HelperText string
}

// Map renders the property bag with the keys elements expect: onChange,
// value or checked, and error/helperText when a registry is attached.
func (p Props) Map() map[string]any {
	out := map[string]any{"onChange": p.OnChange}
	if p.Checkbox {
		out["checked"] = p.Checked
	} else {
		out["value"] = p.Value
	}
	if p.WithErrors {
		out["error"] = p.Error
		out["helperText"] = p.HelperText
	}
	return out
}

// InputProps binds Field of Container and merges the registry entry stored
// under ErrorKey, or under Field when ErrorKey is empty.
type InputProps struct {
	Container state.Container
	Field     string
	Errors    *formerrors.Handler
	ErrorKey  string
	Options   []bind.Option
}

// Props computes the merged properties from current state.
func (p InputProps) Props() (Props, error) {
	bound, err := bind.Bind(p.Container, p.Field, p.Options...)
	if err != nil {
		return Props{}, err
	}
	key := p.ErrorKey
	if key == "" {
		key = p.Field
	}
	return withErrors(bound, p.Errors, key), nil
}

// Apply computes the properties and hands them to el.
func (p InputProps) Apply(el Element) error {
	props, err := p.Props()
	if err != nil {
		return err
	}
	el.SetProps(props)
	return nil
}

// UpdatableInputProps binds a standalone wrapper. Wrappers carry no field
// name, so errors are looked up under ErrorKey.
type UpdatableInputProps struct {
	Updatable *state.Updatable
	Errors    *formerrors.Handler
	ErrorKey  string
	Options   []bind.Option
}

// Props computes the merged properties from the wrapper's current value.
func (p UpdatableInputProps) Props() (Props, error) {
	bound, err := bind.BindUpdatable(p.Updatable, p.Options...)
	if err != nil {
		return Props{}, err
	}
	return withErrors(bound, p.Errors, p.ErrorKey), nil
}

// Apply computes the properties and hands them to el.
func (p UpdatableInputProps) Apply(el Element) error {
	props, err := p.Props()
	if err != nil {
		return err
	}
	el.SetProps(props)
	return nil
}

func withErrors(bound bind.Props, errs *formerrors.Handler, key string) Props {
	props := Props{Props: bound}
	if errs == nil {
		return props
	}
	fe := errs.GetFieldError(key)
	props.WithErrors = true
	props.Error = fe.Error
	props.HelperText = fe.HelperText
	return props
}
