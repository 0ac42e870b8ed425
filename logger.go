package confstore

import "go.uber.org/zap"

// Logger is the interface for logging in confstore.
// Users can provide custom logger implementations.
type Logger interface {
	// Debug logs a debug message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error message with optional fields
	Error(msg string, fields ...Field)
}

// Field represents a structured logging field.
type Field struct {
	Key   string
	Value any
}

// zapLogger adapts a zap.Logger to the Logger interface.
type zapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps an existing zap.Logger.
func NewZapLogger(logger *zap.Logger) Logger {
	return &zapLogger{logger: logger}
}

// NewDefaultLogger creates the default logger, a production-configured
// zap logger writing to stderr.
func NewDefaultLogger() Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return NewNopLogger()
	}
	return &zapLogger{logger: logger}
}

func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug(msg, zapFields(fields)...)
}

func (l *zapLogger) Info(msg string, fields ...Field) {
	l.logger.Info(msg, zapFields(fields)...)
}

func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.logger.Warn(msg, zapFields(fields)...)
}

func (l *zapLogger) Error(msg string, fields ...Field) {
	l.logger.Error(msg, zapFields(fields)...)
}

func zapFields(fields []Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}

// nopLogger is a logger that does nothing. Useful for testing.
type nopLogger struct{}

// NewNopLogger creates a logger that discards all log messages.
func NewNopLogger() Logger {
	return &nopLogger{}
}

func (l *nopLogger) Debug(msg string, fields ...Field) {}
func (l *nopLogger) Info(msg string, fields ...Field)  {}
func (l *nopLogger) Warn(msg string, fields ...Field)  {}
func (l *nopLogger) Error(msg string, fields ...Field) {}
