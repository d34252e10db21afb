package state

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// StructTag is the struct tag that marks fields as observable.
const StructTag = "bind"

type structField struct {
	index      []int
	observable bool
}

// StructContainer exposes the exported fields of a struct as a Container.
// Fields tagged `bind:"name"` are observable under that name; other exported
// fields are readable under their Go name but not observable. `bind:"-"`
// hides a field.
type StructContainer struct {
	mu     sync.RWMutex
	target reflect.Value
	fields map[string]structField
	obs    observers
}

var (
	_ Container  = (*StructContainer)(nil)
	_ Subscriber = (*StructContainer)(nil)
)

// FromStruct wraps ptr, which must be a non-nil pointer to a struct.
func FromStruct(ptr any) (*StructContainer, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("state: FromStruct expects a non-nil struct pointer, got %T", ptr)
	}
	target := rv.Elem()
	fields := make(map[string]structField)
	collectStructFields(target.Type(), nil, fields)
	return &StructContainer{target: target, fields: fields}, nil
}

func collectStructFields(t reflect.Type, parent []int, dest map[string]structField) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int(nil), parent...), i)
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			collectStructFields(sf.Type, index, dest)
			continue
		}
		tag, tagged := sf.Tag.Lookup(StructTag)
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		if _, exists := dest[name]; exists {
			continue
		}
		dest[name] = structField{index: index, observable: tagged}
	}
}

// Get returns the current field value. Fields of type *Updatable are returned
// as the wrapper itself.
func (c *StructContainer) Get(field string) (any, bool) {
	if c == nil {
		return nil, false
	}
	info, ok := c.fields[field]
	if !ok {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.target.FieldByIndex(info.index).Interface(), true
}

// Set assigns value to the named field, converting between numeric kinds
// where needed. Strings written to numeric fields are parsed; an empty
// string stores zero and a bare "-" leaves the field untouched.
func (c *StructContainer) Set(field string, value any) error {
	if c == nil {
		return ErrNilContainer
	}
	info, ok := c.fields[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	c.mu.Lock()
	dst := c.target.FieldByIndex(info.index)
	previous := dst.Interface()
	applied, err := assign(dst, value)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("state: set %q: %w", field, err)
	}
	if !applied {
		return nil
	}

	c.obs.notify(Change{Field: field, Previous: previous, Value: value})
	return nil
}

// Observable reports whether field carries a bind tag.
func (c *StructContainer) Observable(field string) bool {
	if c == nil {
		return false
	}
	info, ok := c.fields[field]
	return ok && info.observable
}

// Subscribe registers fn for writes to field. An empty field subscribes to
// every write.
func (c *StructContainer) Subscribe(field string, fn func(Change)) func() {
	if c == nil {
		return func() {}
	}
	return c.obs.add(field, fn)
}

// Fields lists the exposed field names in sorted order.
func (c *StructContainer) Fields() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.fields))
	for name := range c.fields {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func assign(dst reflect.Value, value any) (bool, error) {
	if value == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return true, nil
	}
	src := reflect.ValueOf(value)
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return true, nil
	}
	if src.Kind() == reflect.String && isNumericKind(dst.Kind()) {
		return assignNumericString(dst, src.String())
	}
	if compatibleKinds(src.Kind(), dst.Kind()) && src.Type().ConvertibleTo(dst.Type()) {
		dst.Set(src.Convert(dst.Type()))
		return true, nil
	}
	return false, fmt.Errorf("cannot assign %T to %s", value, dst.Type())
}

func assignNumericString(dst reflect.Value, raw string) (bool, error) {
	text := strings.TrimSpace(raw)
	switch text {
	case "":
		dst.Set(reflect.Zero(dst.Type()))
		return true, nil
	case "-":
		return false, nil
	}

	switch dst.Kind() {
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, dst.Type().Bits())
		if err != nil {
			return false, fmt.Errorf("cannot assign %q to %s: %w", raw, dst.Type(), err)
		}
		dst.SetFloat(f)
		return true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSuffix(text, "."), 10, dst.Type().Bits())
		if err != nil {
			return false, fmt.Errorf("cannot assign %q to %s: %w", raw, dst.Type(), err)
		}
		dst.SetUint(n)
		return true, nil
	default:
		n, err := strconv.ParseInt(strings.TrimSuffix(text, "."), 10, dst.Type().Bits())
		if err != nil {
			return false, fmt.Errorf("cannot assign %q to %s: %w", raw, dst.Type(), err)
		}
		dst.SetInt(n)
		return true, nil
	}
}

func compatibleKinds(a, b reflect.Kind) bool {
	switch {
	case isNumericKind(a) && isNumericKind(b):
		return true
	case a == reflect.String && b == reflect.String:
		return true
	case a == reflect.Bool && b == reflect.Bool:
		return true
	default:
		return false
	}
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
