package sanitizer

import (
	"regexp"
	"strings"
)

var (
	// Opening script tag through its matching closing tag, non-greedy.
	scriptTagRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	// Script-executing URI schemes, matched anywhere in the string.
	scriptSchemeRe = regexp.MustCompile(`(?i)(?:javascript|vbscript)\s*:`)
	// Inline event-handler attribute assignments (onclick=, onload=, ...).
	eventHandlerRe = regexp.MustCompile(`(?i)\bon\w+\s*=`)
)

// StripScripts removes embedded <script>...</script> blocks.
func StripScripts(s string) string {
	return scriptTagRe.ReplaceAllString(s, "")
}

// StripScriptSchemes removes javascript:-style URI scheme prefixes.
func StripScriptSchemes(s string) string {
	return scriptSchemeRe.ReplaceAllString(s, "")
}

// StripEventHandlers removes inline event-handler attribute assignments.
func StripEventHandlers(s string) string {
	return eventHandlerRe.ReplaceAllString(s, "")
}

// CleanString applies the full denylist filter to a string leaf:
// script blocks, script URI schemes, event-handler assignments, then
// surrounding whitespace. The strips repeat to a fixpoint: removing one
// match can splice the surrounding text into a new match (nested tags
// like <scr<script>...</script>ipt>), so a single pass is not enough.
func CleanString(s string) string {
	for {
		stripped := StripEventHandlers(StripScriptSchemes(StripScripts(s)))
		if stripped == s {
			break
		}
		s = stripped
	}
	return strings.TrimSpace(s)
}
