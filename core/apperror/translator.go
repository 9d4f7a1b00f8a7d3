package apperror

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gatekit/gatekit/core/config"
	"github.com/gatekit/gatekit/core/sanitizer"
)

// redactedMessage replaces internal fault detail in production responses.
const redactedMessage = "Something went wrong. Please try again later."

// Translator converts arbitrary failures into stable, client-safe errors.
// Classification is by tagged variant type, first match wins: application
// Error, identity-provider failure, validation failure, anything else.
// Every error is logged with its classification before translation returns.
type Translator struct {
	env    config.Environment
	logger *slog.Logger
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithLogger sets the logger used for classification logging.
func WithLogger(logger *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTranslator creates a translator for the given environment.
// Production redacts internal detail; development and test surface it.
func NewTranslator(env config.Environment, opts ...TranslatorOption) *Translator {
	t := &Translator{
		env:    env,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate classifies err and returns the error to surface to the client.
// Outbound messages pass through the string sanitizer so reflected input
// cannot smuggle markup into error payloads.
func (t *Translator) Translate(err error) Error {
	out := t.classify(err)
	out.Message = sanitizer.CleanString(out.Message)
	return out
}

func (t *Translator) classify(err error) Error {
	var (
		appErr  Error
		provErr ProviderError
		valErr  ValidationError
	)

	switch {
	case errors.As(err, &appErr):
		t.log("app", appErr.Code, appErr.Status, err)
		if !appErr.Operational {
			return t.redact(appErr)
		}
		if t.env.IsProduction() {
			appErr.Details = nil
		}
		return appErr

	case errors.As(err, &provErr):
		mapped := translateProvider(provErr)
		t.log("provider", mapped.Code, mapped.Status, err)
		if t.env.IsProduction() {
			mapped.Details = nil
		} else {
			mapped = mapped.WithDetails(map[string]any{
				"provider_code":    provErr.ProviderCode,
				"provider_message": provErr.Message,
			})
		}
		return mapped

	case errors.As(err, &valErr):
		t.log("validation", KindInvalidInput, http.StatusBadRequest, err)
		out := ErrInvalidInput
		if !t.env.IsProduction() {
			out = out.WithDetails(map[string]any{
				"fields": valErr.Fields,
				"cause":  valErr.Error(),
			})
		}
		return out

	default:
		t.log("internal", KindInternalError, http.StatusInternalServerError, err)
		return t.redact(Internal(err.Error()))
	}
}

// redact hides non-operational detail in production while preserving the
// error's code and status.
func (t *Translator) redact(e Error) Error {
	if t.env.IsProduction() {
		e.Message = redactedMessage
		e.Details = nil
	}
	return e
}

func (t *Translator) log(class string, code Kind, status int, err error) {
	t.logger.Error("request error",
		slog.String("class", class),
		slog.String("code", string(code)),
		slog.Int("status", status),
		slog.Any("error", err),
	)
}
