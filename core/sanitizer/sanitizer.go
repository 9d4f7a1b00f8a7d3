package sanitizer

// maxDepth bounds recursion so pathological or cyclic inputs cannot blow
// the stack. Subtrees below the limit are returned unmodified.
const maxDepth = 128

// Sanitize recursively strips unsafe content from an arbitrary input tree.
// String leaves pass through the denylist filter; sequences and mappings
// are rebuilt element by element, preserving order, length, and keys;
// every other type passes through unchanged. The result is structurally
// isomorphic to the input.
func Sanitize(v any) any {
	return sanitize(v, 0)
}

func sanitize(v any, depth int) any {
	if depth >= maxDepth {
		return v
	}

	switch val := v.(type) {
	case string:
		return CleanString(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = sanitize(item, depth+1)
		}
		return out
	case []string:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = CleanString(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = sanitize(item, depth+1)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(val))
		for k, item := range val {
			out[k] = CleanString(item)
		}
		return out
	default:
		return v
	}
}
