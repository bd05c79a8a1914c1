package content

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// SetPath returns a copy of root with the value at the dot-separated path
// replaced. Only the containers along the path are copied; every other branch
// is shared with root. Maps stay map[string]any and slices stay []any.
// Numeric segments index slices.
//
// Every segment but the last must exist. A missing or non-container
// intermediate segment panics: callers are expected to pass paths that match
// the document's shape.
func SetPath(root any, path string, value any) any {
	if path == "" {
		return value
	}
	return setPath(root, strings.Split(path, "."), value, path)
}

func setPath(node any, segs []string, value any, path string) any {
	key := segs[0]
	switch n := node.(type) {
	case map[string]any:
		child := value
		if len(segs) > 1 {
			next, ok := n[key]
			if !ok || next == nil {
				panic(fmt.Sprintf("content: SetPath %q: missing segment %q", path, key))
			}
			child = setPath(next, segs[1:], value, path)
		}
		out := make(map[string]any, len(n)+1)
		maps.Copy(out, n)
		out[key] = child
		return out
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(n) {
			panic(fmt.Sprintf("content: SetPath %q: bad index %q for length %d", path, key, len(n)))
		}
		child := value
		if len(segs) > 1 {
			if n[i] == nil {
				panic(fmt.Sprintf("content: SetPath %q: missing segment %q", path, key))
			}
			child = setPath(n[i], segs[1:], value, path)
		}
		out := slices.Clone(n)
		out[i] = child
		return out
	default:
		panic(fmt.Sprintf("content: SetPath %q: segment %q is not inside a map or slice (%T)", path, key, node))
	}
}

// Apply sets the field at path (in the invitation's JSON field names, e.g.
// "groom.name" or "guestbook.0.text") and returns the edited copy. inv is not
// modified. The path must exist, as with SetPath.
func Apply(inv *Invitation, path string, value any) (*Invitation, error) {
	doc, err := toGeneric(inv)
	if err != nil {
		return nil, fmt.Errorf("apply %q: %w", path, err)
	}
	edited := SetPath(doc, path, value)
	data, err := json.Marshal(edited)
	if err != nil {
		return nil, fmt.Errorf("apply %q: %w", path, err)
	}
	var out Invitation
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("apply %q: %w", path, err)
	}
	return &out, nil
}

func toGeneric(inv *Invitation) (any, error) {
	data, err := json.Marshal(inv)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
