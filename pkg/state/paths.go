package state

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

func cloneValues(src map[string]any) map[string]any {
	if len(src) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

// deepCopy clones maps and slices. Updatable wrappers are shared on purpose:
// they are the indirection bindings write through.
func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func getPath(root map[string]any, path string) (any, bool) {
	segments := splitPath(path)
	if root == nil || len(segments) == 0 {
		return nil, false
	}
	current := any(root)
	for _, segment := range segments {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// setPath writes value at the dotted path, creating intermediate maps and
// slices as needed. Numeric segments address slice elements.
func setPath(root map[string]any, segments []string, value any) error {
	if root == nil {
		return fmt.Errorf("state: root map is nil")
	}
	if len(segments) == 0 {
		return fmt.Errorf("state: empty path")
	}
	head := segments[0]
	if len(segments) == 1 {
		root[head] = value
		return nil
	}

	if idx, err := strconv.Atoi(segments[1]); err == nil {
		list, _ := root[head].([]any)
		list, err = setIndex(list, idx, segments[2:], value)
		if err != nil {
			return err
		}
		root[head] = list
		return nil
	}

	child, ok := root[head].(map[string]any)
	if !ok || child == nil {
		child = make(map[string]any)
		root[head] = child
	}
	return setPath(child, segments[1:], value)
}

func setIndex(list []any, idx int, rest []string, value any) ([]any, error) {
	if idx < 0 {
		return nil, fmt.Errorf("state: negative index %d", idx)
	}
	if len(list) <= idx {
		list = append(list, make([]any, idx+1-len(list))...)
	}
	if len(rest) == 0 {
		list[idx] = value
		return list, nil
	}

	if nextIdx, err := strconv.Atoi(rest[0]); err == nil {
		inner, _ := list[idx].([]any)
		inner, err = setIndex(inner, nextIdx, rest[1:], value)
		if err != nil {
			return nil, err
		}
		list[idx] = inner
		return list, nil
	}

	child, ok := list[idx].(map[string]any)
	if !ok || child == nil {
		child = make(map[string]any)
		list[idx] = child
	}
	return list, setPath(child, rest, value)
}

// collectPaths records every dotted path reachable in value under prefix.
func collectPaths(prefix string, value any, dest map[string]struct{}) {
	switch node := value.(type) {
	case map[string]any:
		for key, child := range node {
			path := joinPath(prefix, key)
			dest[path] = struct{}{}
			collectPaths(path, child, dest)
		}
	case []any:
		for i, child := range node {
			path := joinPath(prefix, strconv.Itoa(i))
			dest[path] = struct{}{}
			collectPaths(path, child, dest)
		}
	}
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
