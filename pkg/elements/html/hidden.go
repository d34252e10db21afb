package html

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is a hidden input emitted alongside the bound inputs.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken carries a CSRF token under the name the backend expects, for
// example "_csrf".
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField carries a version used for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// sortedHidden drops empty names, lets later fields win on collisions and
// sorts by name for deterministic output.
func sortedHidden(fields []HiddenField) []map[string]any {
	if len(fields) == 0 {
		return nil
	}
	byName := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		byName[name] = field.Value
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]map[string]any, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]any{"name": name, "value": byName[name]})
	}
	return out
}
