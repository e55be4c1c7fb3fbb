// Package logging provides structured logging for Hawkins Lab Core.
//
// It wraps Go's standard log/slog package so every component logs with
// the same shape: JSON (or text) records carrying default service and
// version fields, filtered by level.
//
// Logging is configured via the logging section of config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Usage:
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("gate opened", "spike_id", 1)
//	logger.Error("state save failed", "error", err)
//
// Never log tokens, passwords, or API keys; the request-log middleware
// masks the Authorization header before anything is persisted.
package logging
