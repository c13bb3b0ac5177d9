// Package logging provides a structured logging system for rez built on
// Go's standard slog package.
//
// All log entries carry a subsystem identifier for categorization, a
// printf-formatted message and an optional error:
//
//	logging.Init(logging.LevelInfo, os.Stdout)
//
//	logging.Info("Bootstrap", "Application starting up")
//	logging.Debug("Config", "Loaded configuration from %s", configPath)
//	logging.Error("Portal", err, "Failed to reach upstream")
//
// Subsystems used across the codebase: Bootstrap, Config, Token, Session,
// Portal, Auth, Web and Tools.
//
// The helpers are safe for concurrent use from multiple goroutines.
// Session identifiers must be passed through TruncateSessionID before
// logging.
package logging
