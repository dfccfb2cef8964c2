// Package logging provides a minimal logging interface and adapters for stagekit.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the behavior runtime, module registry and application root use to report
// usage errors and lifecycle traffic. This package includes:
//
//   - Logger interface for dependency injection
//   - ZerologAdapter wrapping a zerolog.Logger
//   - RuntimeLogger on log/slog with lifecycle, mount and cascade helpers
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	g, err := game.New(func(o *game.Options) { o.Logger = logger })
//
// The interface is kept small so any structured logger can be plugged in.
package logging
