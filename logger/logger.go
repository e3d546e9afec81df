package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Field key constants used across the client stack.
const (
	FieldComponent = "component"
	FieldService   = "service"
	FieldEndpoint  = "endpoint"
	FieldAttempt   = "attempt"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Logger wraps zerolog.Logger with client-stack conventions.
type Logger struct {
	logger zerolog.Logger
}

// New creates a logger from configuration.
func New(cfg *Config) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := outputWriter(cfg.Output)

	var zl zerolog.Logger
	if strings.ToLower(cfg.Format) == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: cfg.NoColor})
	} else {
		zl = zerolog.New(out)
	}
	zl = zl.Level(level)

	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}
	if cfg.Caller {
		zl = zl.With().Caller().Logger()
	}

	return &Logger{logger: zl}
}

// NewDefault creates a logger with default configuration.
func NewDefault() *Logger {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return New(cfg)
}

// Nop returns a logger that discards everything. Used as the default when
// a caller does not supply a logger.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{logger: l.logger.With().Str(FieldComponent, name).Logger()}
}

// WithFields returns a logger with additional fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	zc := l.logger.With()
	for k, v := range fields {
		zc = zc.Interface(k, v)
	}
	return &Logger{logger: zc.Logger()}
}

// WithError returns a logger with an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{logger: l.logger.With().Err(err).Logger()}
}

// Unwrap returns the underlying zerolog.Logger.
func (l *Logger) Unwrap() zerolog.Logger {
	return l.logger
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	event := l.logger.Debug()
	addFields(event, fields...)
	event.Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	event := l.logger.Info()
	addFields(event, fields...)
	event.Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	event := l.logger.Warn()
	addFields(event, fields...)
	event.Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	event := l.logger.Error()
	addFields(event, fields...)
	event.Msg(msg)
}

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	log.Debug("retrying", logger.Fields("service", "vmapi", "attempt", 2))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

func addFields(event *zerolog.Event, fields ...map[string]interface{}) {
	for _, fm := range fields {
		for k, v := range fm {
			event.Interface(k, v)
		}
	}
}

func outputWriter(output string) io.Writer {
	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout
	default:
		return os.Stderr
	}
}
