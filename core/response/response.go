package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gatekit/gatekit/core/handler"
)

// Envelope is the wire contract shared by every endpoint. Error is present
// iff Success is false; Code and Details accompany errors. Timestamp is
// the response-construction time in RFC 3339.
type Envelope struct {
	Success   bool           `json:"success"`
	Data      any            `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
	Code      string         `json:"code,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp string         `json:"timestamp"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Render executes the response against the context's writer. A rendering
// failure at this point means headers may already be sent, so it falls
// back to a plain 500.
func Render(ctx handler.Context, resp handler.Response) {
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		http.Error(ctx.ResponseWriter(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// JSON creates a success envelope with 200 OK status.
func JSON(data any) handler.Response {
	return JSONWithStatus(data, http.StatusOK)
}

// JSONWithStatus creates a success envelope with a custom status code.
func JSONWithStatus(data any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if status == 0 {
			status = http.StatusOK
		}
		return writeJSON(w, status, Envelope{
			Success:   true,
			Data:      data,
			Timestamp: timestamp(),
		})
	}
}

// Error returns a handler response that propagates the given error to the
// framework's error handler, where it is translated and rendered as a
// failure envelope.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
