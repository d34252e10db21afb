package pipeline

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// RestrictorFactory builds a restrictor from the parameter written after the
// first ':' of a reference ("maxLength:10" -> "10").
type RestrictorFactory func(param string) (Restrictor, error)

// ModifierFactory builds a modifier from a reference parameter.
type ModifierFactory func(param string) (Modifier, error)

// Registry resolves named restrictors and modifiers so that documents can
// reference them. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	restrictors map[string]RestrictorFactory
	modifiers   map[string]ModifierFactory
}

// NewRegistry returns a registry with the built-in functions registered.
func NewRegistry() *Registry {
	r := &Registry{
		restrictors: make(map[string]RestrictorFactory),
		modifiers:   make(map[string]ModifierFactory),
	}
	r.registerBuiltins()
	return r
}

// RegisterRestrictor adds a restrictor factory. Duplicate names are errors.
func (r *Registry) RegisterRestrictor(name string, factory RestrictorFactory) error {
	name = strings.TrimSpace(name)
	if name == "" || factory == nil {
		return fmt.Errorf("pipeline: restrictor name and factory are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.restrictors[name]; exists {
		return fmt.Errorf("pipeline: restrictor %q already registered", name)
	}
	r.restrictors[name] = factory
	return nil
}

// MustRegisterRestrictor panics on registration failure.
func (r *Registry) MustRegisterRestrictor(name string, factory RestrictorFactory) {
	if err := r.RegisterRestrictor(name, factory); err != nil {
		panic(err)
	}
}

// RegisterModifier adds a modifier factory. Duplicate names are errors.
func (r *Registry) RegisterModifier(name string, factory ModifierFactory) error {
	name = strings.TrimSpace(name)
	if name == "" || factory == nil {
		return fmt.Errorf("pipeline: modifier name and factory are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modifiers[name]; exists {
		return fmt.Errorf("pipeline: modifier %q already registered", name)
	}
	r.modifiers[name] = factory
	return nil
}

// MustRegisterModifier panics on registration failure.
func (r *Registry) MustRegisterModifier(name string, factory ModifierFactory) {
	if err := r.RegisterModifier(name, factory); err != nil {
		panic(err)
	}
}

// Restrictor resolves a reference such as "maxLength:10".
func (r *Registry) Restrictor(ref string) (Restrictor, error) {
	name, param := splitRef(ref)
	r.mu.RLock()
	factory, ok := r.restrictors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("pipeline: restrictor %q not registered", name)
	}
	fn, err := factory(param)
	if err != nil {
		return nil, fmt.Errorf("pipeline: restrictor %q: %w", ref, err)
	}
	return fn, nil
}

// Modifier resolves a reference such as "prefix:$ ".
func (r *Registry) Modifier(ref string) (Modifier, error) {
	name, param := splitRef(ref)
	r.mu.RLock()
	factory, ok := r.modifiers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("pipeline: modifier %q not registered", name)
	}
	fn, err := factory(param)
	if err != nil {
		return nil, fmt.Errorf("pipeline: modifier %q: %w", ref, err)
	}
	return fn, nil
}

// Restrictors resolves every reference, stopping at the first failure.
func (r *Registry) Restrictors(refs []string) ([]Restrictor, error) {
	out := make([]Restrictor, 0, len(refs))
	for _, ref := range refs {
		fn, err := r.Restrictor(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, fn)
	}
	return out, nil
}

// Modifiers resolves every reference, stopping at the first failure.
func (r *Registry) Modifiers(refs []string) ([]Modifier, error) {
	out := make([]Modifier, 0, len(refs))
	for _, ref := range refs {
		fn, err := r.Modifier(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, fn)
	}
	return out, nil
}

// List returns the sorted names of registered restrictors and modifiers.
func (r *Registry) List() (restrictors, modifiers []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name := range r.restrictors {
		restrictors = append(restrictors, name)
	}
	for name := range r.modifiers {
		modifiers = append(modifiers, name)
	}
	sort.Strings(restrictors)
	sort.Strings(modifiers)
	return restrictors, modifiers
}

func splitRef(ref string) (string, string) {
	ref = strings.TrimSpace(ref)
	name, param, _ := strings.Cut(ref, ":")
	return strings.TrimSpace(name), param
}

func (r *Registry) registerBuiltins() {
	r.MustRegisterRestrictor("maxLength", func(param string) (Restrictor, error) {
		limit, err := strconv.Atoi(strings.TrimSpace(param))
		if err != nil || limit < 0 {
			return nil, fmt.Errorf("invalid length %q", param)
		}
		return func(value any) bool {
			return utf8.RuneCountInString(Stringify(value)) <= limit
		}, nil
	})
	r.MustRegisterRestrictor("pattern", func(param string) (Restrictor, error) {
		re, err := regexp.Compile(param)
		if err != nil {
			return nil, err
		}
		return func(value any) bool {
			if isBlank(value) {
				return true
			}
			return re.MatchString(Stringify(value))
		}, nil
	})
	r.MustRegisterRestrictor("digits", func(string) (Restrictor, error) {
		return func(value any) bool {
			for _, c := range Stringify(value) {
				if c < '0' || c > '9' {
					return false
				}
			}
			return true
		}, nil
	})
	r.MustRegisterRestrictor("noSpaces", func(string) (Restrictor, error) {
		return func(value any) bool {
			return strings.IndexFunc(Stringify(value), unicode.IsSpace) < 0
		}, nil
	})

	r.MustRegisterModifier("trim", stringModifier(strings.TrimSpace))
	r.MustRegisterModifier("upper", stringModifier(strings.ToUpper))
	r.MustRegisterModifier("lower", stringModifier(strings.ToLower))
	r.MustRegisterModifier("prefix", func(param string) (Modifier, error) {
		return func(value any) any {
			if isBlank(value) {
				return value
			}
			return param + Stringify(value)
		}, nil
	})
	r.MustRegisterModifier("suffix", func(param string) (Modifier, error) {
		return func(value any) any {
			if isBlank(value) {
				return value
			}
			return Stringify(value) + param
		}, nil
	})
	r.MustRegisterModifier("stripPrefix", func(param string) (Modifier, error) {
		return func(value any) any {
			if s, ok := value.(string); ok {
				return strings.TrimPrefix(s, param)
			}
			return value
		}, nil
	})
	r.MustRegisterModifier("stripSuffix", func(param string) (Modifier, error) {
		return func(value any) any {
			if s, ok := value.(string); ok {
				return strings.TrimSuffix(s, param)
			}
			return value
		}, nil
	})
}

func stringModifier(fn func(string) string) ModifierFactory {
	return func(string) (Modifier, error) {
		return func(value any) any {
			if s, ok := value.(string); ok {
				return fn(s)
			}
			return value
		}, nil
	}
}
