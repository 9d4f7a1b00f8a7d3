// Package apperror defines the application's error taxonomy and the
// translation layer that converts internal failures into stable,
// client-safe responses.
//
// Errors are classified by tagged variant type decided at the construction
// site: Error for domain failures, ProviderError for identity-provider
// failures, ValidationError for schema failures. The Translator resolves a
// variant to a {message, code, status} triple, logging every classification
// and redacting non-operational detail in production:
//
//	translator := apperror.NewTranslator(cfg.Environment, apperror.WithLogger(log))
//	out := translator.Translate(err)
//	// out.Status, out.Code, out.Message are safe to return to the client
//
// Predefined errors cover the closed set of kinds. They are value types:
// customize them with the copy-style With* modifiers.
//
//	return apperror.ErrNotFound.WithMessage("session not found")
package apperror
