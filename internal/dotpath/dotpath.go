// Package dotpath resolves dot-separated path expressions against generic
// JSON trees (map[string]any objects and []any arrays) and applies
// get/set/delete traversal to them.
package dotpath

import (
	"errors"
	"strconv"
	"strings"
)

// Errors returned by path parsing and traversal.
var (
	// ErrInvalidPath is returned when a path is empty or contains an empty
	// segment (leading, trailing or doubled dot).
	ErrInvalidPath = errors.New("invalid dot path")

	// ErrBadPathElement is returned when traversal reaches a value that
	// cannot be descended into.
	ErrBadPathElement = errors.New("unexpected value reached while traversing path")
)

// Parse splits a dot-separated path into its segments.
// Paths with empty segments are rejected with ErrInvalidPath; nothing in
// the grammar escapes a literal dot inside a key.
func Parse(path string) ([]string, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}
	segments := strings.Split(path, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, ErrInvalidPath
		}
	}
	return segments, nil
}

// Get walks root along segments and returns a deep copy of the value found
// there. A missing key, an out-of-range index or a scalar in the middle of
// the path yields (nil, false); a missing path is never an error.
func Get(root any, segments []string) (any, bool) {
	node := root
	for _, seg := range segments {
		switch cur := node.(type) {
		case map[string]any:
			child, ok := cur[seg]
			if !ok {
				return nil, false
			}
			node = child
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(cur) {
				return nil, false
			}
			node = cur[idx]
		default:
			return nil, false
		}
	}
	return Clone(node), true
}

// Set writes value at the location named by segments and returns the
// updated root. Intermediate segments with no existing target get a fresh
// object (auto-vivification); descending through a scalar, or addressing
// an array with a non-numeric or out-of-range segment, fails with
// ErrBadPathElement. An index equal to the array length appends. The final
// slot is overwritten unconditionally.
func Set(root any, segments []string, value any) (any, error) {
	return setNode(root, segments, value)
}

func setNode(node any, segments []string, value any) (any, error) {
	seg := segments[0]
	last := len(segments) == 1

	switch cur := node.(type) {
	case map[string]any:
		if last {
			cur[seg] = value
			return cur, nil
		}
		child, ok := cur[seg]
		if !ok {
			child = map[string]any{}
		}
		updated, err := setNode(child, segments[1:], value)
		if err != nil {
			return nil, err
		}
		cur[seg] = updated
		return cur, nil

	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx > len(cur) {
			return nil, ErrBadPathElement
		}
		if idx == len(cur) {
			if last {
				return append(cur, value), nil
			}
			updated, err := setNode(map[string]any{}, segments[1:], value)
			if err != nil {
				return nil, err
			}
			return append(cur, updated), nil
		}
		if last {
			cur[idx] = value
			return cur, nil
		}
		updated, err := setNode(cur[idx], segments[1:], value)
		if err != nil {
			return nil, err
		}
		cur[idx] = updated
		return cur, nil

	default:
		return nil, ErrBadPathElement
	}
}

// Delete removes the value at segments and returns the updated root, the
// removed value and whether anything was present. Removing a missing path
// is not an error; intermediate traversal failures match Set.
func Delete(root any, segments []string) (any, any, bool, error) {
	return deleteNode(root, segments)
}

func deleteNode(node any, segments []string) (any, any, bool, error) {
	seg := segments[0]
	last := len(segments) == 1

	switch cur := node.(type) {
	case map[string]any:
		if last {
			removed, ok := cur[seg]
			if !ok {
				return cur, nil, false, nil
			}
			delete(cur, seg)
			return cur, removed, true, nil
		}
		child, ok := cur[seg]
		if !ok {
			return cur, nil, false, nil
		}
		updated, removed, present, err := deleteNode(child, segments[1:])
		if err != nil {
			return nil, nil, false, err
		}
		cur[seg] = updated
		return cur, removed, present, nil

	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 {
			return nil, nil, false, ErrBadPathElement
		}
		if idx >= len(cur) {
			return cur, nil, false, nil
		}
		if last {
			removed := cur[idx]
			return append(cur[:idx], cur[idx+1:]...), removed, true, nil
		}
		updated, removed, present, err := deleteNode(cur[idx], segments[1:])
		if err != nil {
			return nil, nil, false, err
		}
		cur[idx] = updated
		return cur, removed, present, nil

	default:
		return nil, nil, false, ErrBadPathElement
	}
}

// Clone returns a deep copy of a JSON tree value. Scalars are returned
// as-is since they are immutable.
func Clone(v any) any {
	switch cur := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(cur))
		for k, child := range cur {
			out[k] = Clone(child)
		}
		return out
	case []any:
		out := make([]any, len(cur))
		for i, child := range cur {
			out[i] = Clone(child)
		}
		return out
	default:
		return v
	}
}
