// Package response renders the standard response envelope and funnels
// errors into it.
//
// Every endpoint, success or failure, answers with the same envelope:
//
//	{"success": true,  "data": {...},            "timestamp": "2025-01-02T15:04:05Z"}
//	{"success": false, "error": "...", "code": "...", "timestamp": "..."}
//
// Handlers produce success envelopes with JSON and signal failures with
// Error, which defers rendering to the error handler built by
// NewErrorHandler. That handler translates the error through the taxonomy
// so internal faults never leak raw detail in production.
package response
