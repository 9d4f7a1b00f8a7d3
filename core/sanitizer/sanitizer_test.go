package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatekit/gatekit/core/sanitizer"
)

func TestCleanString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"script block removed", "<script>alert(1)</script>Hello", "Hello"},
		{"script block case insensitive", "<SCRIPT>alert(1)</SCRIPT>Hello", "Hello"},
		{"script with attributes", `<script type="text/javascript">evil()</script>ok`, "ok"},
		{"script spanning lines", "<script>\nalert(1)\n</script>done", "done"},
		{"multiple script blocks", "<script>a()</script>mid<script>b()</script>", "mid"},
		{"javascript scheme removed", "javascript:alert(1)", "alert(1)"},
		{"javascript scheme with spaces", "javascript : alert(1)", "alert(1)"},
		{"javascript scheme glued to word", "xjavascript:alert(1)", "xalert(1)"},
		{"vbscript scheme removed", "vbscript:msgbox(1)", "msgbox(1)"},
		{"nested script tags", "<scr<script>a</script>ipt>alert(1)</script>", ""},
		{"nested scheme reassembly", "javajavascript:script:alert(1)", "alert(1)"},
		{"event handler removed", `<img src=x onerror=alert(1)>`, `<img src=x alert(1)>`},
		{"onclick assignment removed", `a onclick = "evil()" b`, `a  "evil()" b`},
		{"whitespace trimmed", "  hello  ", "hello"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, sanitizer.CleanString(tt.input))
		})
	}
}

func TestSanitize_Scalars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 42, sanitizer.Sanitize(42))
	assert.Equal(t, 3.14, sanitizer.Sanitize(3.14))
	assert.Equal(t, true, sanitizer.Sanitize(true))
	assert.Nil(t, sanitizer.Sanitize(nil))
	assert.Equal(t, "Hello", sanitizer.Sanitize("<script>alert(1)</script>Hello"))
}

func TestSanitize_Sequences(t *testing.T) {
	t.Parallel()

	input := []any{"<script>x()</script>one", 2, []any{"javascript:run()"}}
	want := []any{"one", 2, []any{"run()"}}
	assert.Equal(t, want, sanitizer.Sanitize(input))

	strs := []string{" a ", "<script>b()</script>c"}
	assert.Equal(t, []string{"a", "c"}, sanitizer.Sanitize(strs))
}

func TestSanitize_Mappings(t *testing.T) {
	t.Parallel()

	input := map[string]any{
		"name":   "<script>alert(1)</script>Alice",
		"age":    30,
		"bio":    "javascript:void(0) hi",
		"nested": map[string]any{"note": " <script>x</script>deep "},
	}
	want := map[string]any{
		"name":   "Alice",
		"age":    30,
		"bio":    "void(0) hi",
		"nested": map[string]any{"note": "deep"},
	}
	assert.Equal(t, want, sanitizer.Sanitize(input))

	// Keys survive even when values are emptied by the filter.
	got := sanitizer.Sanitize(map[string]string{"k": "<script>only()</script>"})
	assert.Equal(t, map[string]string{"k": ""}, got)
}

func TestSanitize_ShapePreserved(t *testing.T) {
	t.Parallel()

	input := []any{"a", []any{"b", []any{"c"}}, map[string]any{"d": "e"}}
	got, ok := sanitizer.Sanitize(input).([]any)
	assert.True(t, ok)
	assert.Len(t, got, 3)
}

func TestSanitize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []any{
		"<script>alert(1)</script>Hello",
		"already clean",
		map[string]any{"a": []any{"javascript:x", 1, nil}},
		[]any{"<img onload=go()>", map[string]any{"b": " padded "}},
	}

	for _, input := range inputs {
		once := sanitizer.Sanitize(input)
		twice := sanitizer.Sanitize(once)
		assert.Equal(t, once, twice, "sanitize(sanitize(x)) must equal sanitize(x)")
	}
}

func TestSanitize_DepthLimit(t *testing.T) {
	t.Parallel()

	// Build nesting beyond the guard; the call must return, not overflow.
	deep := any("<script>x</script>leaf")
	for range 200 {
		deep = []any{deep}
	}

	assert.NotPanics(t, func() {
		sanitizer.Sanitize(deep)
	})
}
