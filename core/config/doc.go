// Package config provides type-safe environment variable loading with
// per-type caching. It autoloads a .env file on first use and parses
// variables into struct fields via the caarlos0/env library.
//
//	var sec config.Security
//	config.MustLoad(&sec)
//
// Each configuration type is loaded once per process lifetime; repeated
// loads of the same type return the cached value. The Security struct
// carries the gatekeeping options (rate-limit window and ceiling, origin
// allow-list, environment), and the Environment type gates production-only
// behavior such as origin enforcement and error-detail redaction.
package config
