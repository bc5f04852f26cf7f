package logging

import "log/slog"

// RunnerLogger adapts *slog.Logger to the runner.Logger interface.
type RunnerLogger struct {
	logger *slog.Logger
}

// NewRunnerLogger creates a new RunnerLogger wrapping a slog.Logger.
func NewRunnerLogger(logger *slog.Logger) *RunnerLogger {
	return &RunnerLogger{logger: logger}
}

// Debug logs a debug message with optional key-value pairs.
func (l *RunnerLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message with optional key-value pairs.
func (l *RunnerLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

// Error logs an error message with optional key-value pairs.
func (l *RunnerLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}
