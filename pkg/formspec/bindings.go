package formspec

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-inputprops/pkg/bind"
	"github.com/goliatone/go-inputprops/pkg/formerrors"
	"github.com/goliatone/go-inputprops/pkg/pipeline"
	"github.com/goliatone/go-inputprops/pkg/state"
)

func defaultVariant(f Field) pipeline.Variant {
	if f.Input == InputNumber {
		return pipeline.VariantNumeric
	}
	return pipeline.VariantAll
}

// NewStore seeds a store with every field's initial value. Checkbox fields
// without one start unchecked, and updatable fields hold a wrapper.
func (f Form) NewStore() (*state.Store, error) {
	store := state.NewStore(nil)
	for _, field := range f.Fields {
		value := field.Initial
		if value == nil && field.InputType() == InputCheckbox {
			value = false
		}
		if field.Updatable {
			value = state.NewUpdatable(value)
		}
		if err := store.Declare(field.Name, value); err != nil {
			return nil, fmt.Errorf("formspec: seed %q: %w", field.Name, err)
		}
	}
	return store, nil
}

// BindConfig resolves the field's named restrictors and modifiers through reg
// and merges them into the declared configuration.
func (f Field) BindConfig(reg *pipeline.Registry) (pipeline.Config, error) {
	if reg == nil {
		reg = pipeline.NewRegistry()
	}
	restrictors, err := reg.Restrictors(f.Restrictors)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("formspec: field %q: %w", f.Name, err)
	}
	elementMods, err := reg.Modifiers(f.ElementModifiers)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("formspec: field %q: %w", f.Name, err)
	}
	stateMods, err := reg.Modifiers(f.StateModifiers)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("formspec: field %q: %w", f.Name, err)
	}

	cfg := f.Config.Merge(pipeline.Config{
		ValueRestrictors:      restrictors,
		ElementValueModifiers: elementMods,
		StateModifiers:        stateMods,
	})
	if f.Input == InputCheckbox && cfg.IsCheckbox == nil {
		cfg.IsCheckbox = pipeline.Bool(true)
	}
	return cfg, nil
}

// Options returns the binding options for the field.
func (f Field) Options(reg *pipeline.Registry) ([]bind.Option, error) {
	cfg, err := f.BindConfig(reg)
	if err != nil {
		return nil, err
	}
	return []bind.Option{bind.WithVariant(f.Variant), bind.WithConfig(cfg)}, nil
}

// CheckRequired records an error for every required field whose current
// value is blank or unchecked. It reports whether all required fields are
// filled.
func (f Form) CheckRequired(c state.Container, errs *formerrors.Handler) bool {
	ok := true
	for _, field := range f.Fields {
		if !field.Required {
			continue
		}
		value, _ := c.Get(field.Name)
		if !blank(state.Unwrap(value)) {
			continue
		}
		ok = false
		if errs != nil {
			errs.Error(field.Name, field.DisplayLabel()+" is required")
		}
	}
	return ok
}

func blank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return !v
	default:
		return false
	}
}
