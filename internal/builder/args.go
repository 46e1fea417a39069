package builder

import (
	"fmt"
	"strings"
)

// argString returns a string decorator argument. ok is false when the key is
// absent; err is set when it is present with another type.
func argString(args map[string]any, key string) (value string, ok bool, err error) {
	raw, present := args[key]
	if !present || raw == nil {
		return "", false, nil
	}
	s, isString := raw.(string)
	if !isString {
		return "", false, fmt.Errorf("decorator argument %q must be a string, got %T", key, raw)
	}
	return s, true, nil
}

// argStrings returns a list decorator argument. A single string is accepted as
// a one-element list. Items that are objects contribute their "name" field.
func argStrings(args map[string]any, key string) ([]string, error) {
	raw, present := args[key]
	if !present || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			switch it := item.(type) {
			case string:
				out = append(out, it)
			case map[string]any:
				name, ok := it["name"].(string)
				if !ok {
					return out, fmt.Errorf("decorator argument %q[%d] has no name", key, i)
				}
				out = append(out, name)
			default:
				return out, fmt.Errorf("decorator argument %q[%d] must be a string, got %T", key, i, item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("decorator argument %q must be a list, got %T", key, raw)
	}
}

// decoratorName strips the "@" prefix and any call suffix.
func decoratorName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	return name
}

// dedupe removes repeated values while keeping first-seen order.
func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := values[:0:0]
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
