// Package sanitizer strips unsafe content from untrusted input.
//
// Sanitize walks an arbitrary decoded-JSON tree (strings, sequences,
// mappings) and applies a denylist filter to every string leaf: embedded
// script blocks, script-executing URI schemes, and inline event-handler
// assignments are removed, then surrounding whitespace is trimmed. The
// transformation is pure, idempotent, and shape-preserving.
//
//	body := map[string]any{"name": "<script>alert(1)</script>Alice"}
//	clean := sanitizer.Sanitize(body) // {"name": "Alice"}
//
// Recursion is depth-limited, so cyclic or absurdly nested inputs cannot
// blow the stack; subtrees beyond the limit are passed through unmodified.
package sanitizer
