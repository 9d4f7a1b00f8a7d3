package response

import (
	"net/http"

	"github.com/gatekit/gatekit/core/apperror"
	"github.com/gatekit/gatekit/core/handler"
)

// written is implemented by response writers that track whether output
// has started. Writing a second response corrupts the HTTP stream, so the
// error handler checks this before rendering.
type written interface {
	Written() bool
}

// NewErrorHandler builds the framework error handler: every error routed
// here is translated through the taxonomy and rendered as a failure
// envelope with the translated status code.
func NewErrorHandler[C handler.Context](translator *apperror.Translator) handler.ErrorHandler[C] {
	return func(ctx C, err error) {
		w := ctx.ResponseWriter()
		if ww, ok := w.(written); ok && ww.Written() {
			return
		}

		appErr := translator.Translate(err)
		env := Envelope{
			Success:   false,
			Error:     appErr.Message,
			Code:      string(appErr.Code),
			Details:   appErr.Details,
			Timestamp: timestamp(),
		}
		if writeErr := writeJSON(w, appErr.Status, env); writeErr != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
