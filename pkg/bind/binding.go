// Package bind derives the change handler and display value that wire one
// field of an observable container to an input element.
package bind

import (
	"context"
	"fmt"

	"github.com/goliatone/go-inputprops/pkg/pipeline"
	"github.com/goliatone/go-inputprops/pkg/state"
)

// Props is the result of a binding. Checkbox fields populate Checked,
// every other field populates Value.
type Props struct {
	Field    string
	Checkbox bool
	Value    any
	Checked  bool
	OnChange func(ctx context.Context, in Input) error
	// Accepts reports whether OnChange would keep in rather than reject it.
	Accepts func(in Input) bool
}

type refKind uint8

const (
	refDirect refKind = iota
	refWrapped
)

// fieldRef is the bound location, resolved once at construction: either the
// container field itself or the Updatable held there.
type fieldRef struct {
	kind      refKind
	name      string
	container state.Container
	wrapper   *state.Updatable
}

func (r fieldRef) read() any {
	if r.kind == refWrapped {
		return r.wrapper.Value()
	}
	value, _ := r.container.Get(r.name)
	return value
}

func (r fieldRef) write(value any) error {
	if r.kind == refWrapped {
		r.wrapper.Set(value)
		return nil
	}
	return r.container.Set(r.name, value)
}

// Field is a constructed binding. It holds no copy of the field's value;
// Props recomputes from the container on every call.
type Field struct {
	ref  fieldRef
	opts options
}

// New binds field of container. Fields holding a *state.Updatable are bound
// through the wrapper; any other field must be observable, otherwise a
// *ConfigError wrapping ErrNotObservable is returned.
func New(container state.Container, field string, opts ...Option) (*Field, error) {
	if container == nil {
		return nil, &ConfigError{Field: field, Err: state.ErrNilContainer}
	}
	ref := fieldRef{kind: refDirect, name: field, container: container}
	current, _ := container.Get(field)
	if u, ok := current.(*state.Updatable); ok && u != nil {
		ref.kind = refWrapped
		ref.wrapper = u
	} else if !container.Observable(field) {
		return nil, &ConfigError{Field: field, Err: ErrNotObservable}
	}
	return &Field{ref: ref, opts: newOptions(opts)}, nil
}

// NewUpdatable binds a standalone wrapper.
func NewUpdatable(u *state.Updatable, opts ...Option) (*Field, error) {
	if u == nil {
		return nil, &ConfigError{Err: ErrNilUpdatable}
	}
	return &Field{
		ref:  fieldRef{kind: refWrapped, wrapper: u},
		opts: newOptions(opts),
	}, nil
}

// Bind is New followed by Props.
func Bind(container state.Container, field string, opts ...Option) (Props, error) {
	f, err := New(container, field, opts...)
	if err != nil {
		return Props{}, err
	}
	return f.Props(), nil
}

// BindUpdatable is NewUpdatable followed by Props.
func BindUpdatable(u *state.Updatable, opts ...Option) (Props, error) {
	f, err := NewUpdatable(u, opts...)
	if err != nil {
		return Props{}, err
	}
	return f.Props(), nil
}

// MustBind is Bind that panics on configuration errors.
func MustBind(container state.Container, field string, opts ...Option) Props {
	props, err := Bind(container, field, opts...)
	if err != nil {
		panic(err)
	}
	return props
}

// FieldProps returns a binder for container that applies defaults before
// the per-call options.
func FieldProps(container state.Container, defaults ...Option) func(field string, opts ...Option) (Props, error) {
	return func(field string, opts ...Option) (Props, error) {
		return Bind(container, field, joinOptions(defaults, opts)...)
	}
}

// UpdatableProps is FieldProps for standalone wrappers.
func UpdatableProps(defaults ...Option) func(u *state.Updatable, opts ...Option) (Props, error) {
	return func(u *state.Updatable, opts ...Option) (Props, error) {
		return BindUpdatable(u, joinOptions(defaults, opts)...)
	}
}

func joinOptions(defaults, opts []Option) []Option {
	out := make([]Option, 0, len(defaults)+len(opts))
	out = append(out, defaults...)
	return append(out, opts...)
}

// Name returns the bound field name, empty for standalone wrappers.
func (f *Field) Name() string {
	return f.ref.name
}

// Wrapped reports whether the binding writes through an Updatable.
func (f *Field) Wrapped() bool {
	return f.ref.kind == refWrapped
}

// Settings resolves the binding configuration against the current value.
func (f *Field) Settings() pipeline.Settings {
	return f.opts.config.Resolve(f.ref.read())
}

// Props computes the property pair from current state.
func (f *Field) Props() Props {
	current := f.ref.read()
	settings := f.opts.config.Resolve(current)
	props := Props{
		Field:    f.ref.name,
		Checkbox: settings.Checkbox,
		OnChange: f.OnChange,
		Accepts:  f.Accepts,
	}
	if settings.Checkbox {
		checked, _ := current.(bool)
		props.Checked = checked
		return props
	}
	props.Value = pipeline.Format(current, f.opts.variant, settings)
	return props
}

// Accepts runs the parse and validation steps of OnChange against current
// state without writing or running hooks. Unchanged values are accepted.
func (f *Field) Accepts(in Input) bool {
	if in.IsZero() {
		return true
	}
	current := f.ref.read()
	settings := f.opts.config.Resolve(current)
	candidate, err := pipeline.Parse(in, f.opts.variant, settings)
	if err != nil {
		return false
	}
	if pipeline.Same(candidate, current) {
		return true
	}
	return pipeline.IsAcceptable(candidate, f.opts.variant, settings)
}

// OnChange runs the write path for in. Validation rejections, unchanged
// values and vetoes return nil without writing. Configuration errors return
// a *ConfigError; hook and container errors are wrapped.
func (f *Field) OnChange(ctx context.Context, in Input) error {
	if in.IsZero() {
		return nil
	}
	name := f.ref.name
	current := f.ref.read()
	settings := f.opts.config.Resolve(current)

	candidate, err := pipeline.Parse(in, f.opts.variant, settings)
	if err != nil {
		return &ConfigError{Field: name, Err: err}
	}
	if pipeline.Same(candidate, current) {
		return nil
	}
	if !pipeline.IsAcceptable(candidate, f.opts.variant, settings) {
		f.opts.logger.Printf("bind: %q rejected %q", name, pipeline.Stringify(candidate))
		return nil
	}

	change := Change{Field: name, Previous: current, Value: candidate, Metadata: f.opts.metadata}
	if f.opts.pre != nil {
		decision, err := f.opts.pre(ctx, change)
		if err != nil {
			return fmt.Errorf("bind: pre-commit hook for %q: %w", name, err)
		}
		if decision == DecisionReject {
			f.opts.logger.Printf("bind: %q change vetoed", name)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		change.Previous = f.ref.read()
	}

	if err := f.ref.write(candidate); err != nil {
		return fmt.Errorf("bind: commit %q: %w", name, err)
	}
	if f.opts.post != nil {
		f.opts.post(change)
	}
	return nil
}
