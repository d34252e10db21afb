// Package state provides the observable containers that field bindings read
// from and write to.
//
// A Container exposes fields by name and reports, per field, whether changes
// to it are observable. Bindings refuse to bind unobservable fields. Two
// adapters ship here: Store, a dotted-path value tree, and StructContainer,
// which exposes the tagged fields of a Go struct. Updatable is the
// {value, updated} indirection a field may hold instead of a plain value.
package state

import "errors"

var (
	// ErrNilContainer is returned when a nil container is used.
	ErrNilContainer = errors.New("state: container is nil")
	// ErrUnknownField is returned for reads or writes of fields a container
	// does not expose.
	ErrUnknownField = errors.New("state: unknown field")
)

// Container is the capability bindings require from application state.
type Container interface {
	// Get returns the stored value and whether the field exists.
	Get(field string) (any, bool)
	// Set stores a value and notifies observers of the field.
	Set(field string, value any) error
	// Observable reports whether changes to field are observable.
	Observable(field string) bool
}

// Subscriber is implemented by containers that can notify about changes.
type Subscriber interface {
	// Subscribe registers fn for changes to field. An empty field subscribes
	// to every change. The returned func cancels the subscription.
	Subscribe(field string, fn func(Change)) (cancel func())
}

// Change describes a committed write.
type Change struct {
	Field    string
	Previous any
	Value    any
}

// Unwrap returns the value held at a field, reading through an Updatable.
func Unwrap(value any) any {
	if u, ok := value.(*Updatable); ok && u != nil {
		return u.Value()
	}
	return value
}
