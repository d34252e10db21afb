package inputprops

import (
	"github.com/goliatone/go-inputprops/pkg/bind"
	"github.com/goliatone/go-inputprops/pkg/formerrors"
	"github.com/goliatone/go-inputprops/pkg/pipeline"
	"github.com/goliatone/go-inputprops/pkg/state"
)

// Props aliases bind.Props.
type Props = bind.Props

// Option aliases bind.Option.
type Option = bind.Option

// Config aliases pipeline.Config.
type Config = pipeline.Config

// Variant aliases pipeline.Variant.
type Variant = pipeline.Variant

// The variants, re-exported.
const (
	VariantAll           = pipeline.VariantAll
	VariantString        = pipeline.VariantString
	VariantNumericString = pipeline.VariantNumericString
	VariantNumeric       = pipeline.VariantNumeric
)

// Bind binds field of container. See bind.Bind.
func Bind(container state.Container, field string, opts ...Option) (Props, error) {
	return bind.Bind(container, field, opts...)
}

// BindUpdatable binds a standalone wrapper. See bind.BindUpdatable.
func BindUpdatable(u *state.Updatable, opts ...Option) (Props, error) {
	return bind.BindUpdatable(u, opts...)
}

// WithVariant selects the value domain. See bind.WithVariant.
func WithVariant(v Variant) Option {
	return bind.WithVariant(v)
}

// WithConfig merges cfg into the binding configuration.
func WithConfig(cfg Config) Option {
	return bind.WithConfig(cfg)
}

// NewStore returns a map-backed container seeded with values.
func NewStore(values map[string]any) *state.Store {
	return state.NewStore(values)
}

// FromStruct adapts a struct pointer into a container.
func FromStruct(ptr any) (*state.StructContainer, error) {
	return state.FromStruct(ptr)
}

// NewUpdatable wraps value with change tracking.
func NewUpdatable(value any) *state.Updatable {
	return state.NewUpdatable(value)
}

// NewErrors returns an empty error registry.
func NewErrors() *formerrors.Handler {
	return formerrors.New()
}
