// logger.go
package logger

import (
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel orders messages by severity. A logger emits a message when its own level is at or
// below the message's level.
type LogLevel int

const (
	// LogLevelDebug traces every call: URL, redacted headers, request and response bodies.
	LogLevelDebug LogLevel = -1
	// LogLevelInfo adds logins and token refreshes.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn covers rejected tokens, deprecated endpoints and token store failures.
	LogLevelWarn LogLevel = 1
	// LogLevelError covers failed logins, failed refreshes and failed requests.
	LogLevelError  LogLevel = 2
	LogLevelDPanic LogLevel = 3
	LogLevelPanic  LogLevel = 4
	LogLevelFatal  LogLevel = 5
	// LogLevelNone disables all output.
	LogLevelNone LogLevel = 6
)

var levelNames = map[LogLevel]string{
	LogLevelDebug:  "LogLevelDebug",
	LogLevelInfo:   "LogLevelInfo",
	LogLevelWarn:   "LogLevelWarn",
	LogLevelError:  "LogLevelError",
	LogLevelDPanic: "LogLevelDPanic",
	LogLevelPanic:  "LogLevelPanic",
	LogLevelFatal:  "LogLevelFatal",
	LogLevelNone:   "LogLevelNone",
}

// String returns the configuration name of the level, e.g. "LogLevelWarn".
func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "LogLevelNone"
}

// ParseLogLevelFromString maps a configuration name such as "LogLevelDebug" to its LogLevel.
// Unknown names disable logging.
func ParseLogLevelFromString(levelStr string) LogLevel {
	for level, name := range levelNames {
		if name == levelStr {
			return level
		}
	}
	return LogLevelNone
}

// Logger is the structured logger threaded through the client. The Log* helpers emit the
// fixed field sets used for request tracing and session events.
type Logger interface {
	GetLogLevel() LogLevel
	SetLevel(level LogLevel)
	With(fields ...zapcore.Field) Logger
	Debug(msg string, fields ...zapcore.Field)
	Info(msg string, fields ...zapcore.Field)
	Warn(msg string, fields ...zapcore.Field)
	Error(msg string, fields ...zapcore.Field) error
	Panic(msg string, fields ...zapcore.Field)
	Fatal(msg string, fields ...zapcore.Field)

	LogRequestStart(event string, requestID string, method string, url string, headers map[string][]string)
	LogResponse(event string, requestID string, method string, url string, statusCode int, responseBody string, duration time.Duration)
	LogAuthTokenError(event string, method string, url string, statusCode int, err error)
	LogTokenRefresh(event string, reason string, duration time.Duration)
	LogError(event string, method string, url string, statusCode int, serverStatusMessage string, err error, rawResponse string)
}

// defaultLogger gates a zap.Logger by LogLevel. Loggers derived through With share the level,
// so SetLevel on any of them applies to all.
type defaultLogger struct {
	logger *zap.Logger
	level  *atomic.Int32
	// zapLevel is set when this package built the zap logger, so SetLevel can move it too.
	zapLevel *zap.AtomicLevel
}

func newDefaultLogger(z *zap.Logger, level LogLevel) *defaultLogger {
	l := &defaultLogger{logger: z, level: new(atomic.Int32)}
	l.level.Store(int32(level))
	return l
}

func (d *defaultLogger) enabled(at LogLevel) bool {
	return LogLevel(d.level.Load()) <= at
}

func (d *defaultLogger) GetLogLevel() LogLevel {
	return LogLevel(d.level.Load())
}

func (d *defaultLogger) SetLevel(level LogLevel) {
	d.level.Store(int32(level))
	if d.zapLevel != nil {
		d.zapLevel.SetLevel(convertToZapLevel(level))
	}
}

func (d *defaultLogger) With(fields ...zapcore.Field) Logger {
	return &defaultLogger{logger: d.logger.With(fields...), level: d.level, zapLevel: d.zapLevel}
}

func (d *defaultLogger) Debug(msg string, fields ...zapcore.Field) {
	if d.enabled(LogLevelDebug) {
		d.logger.Debug(msg, fields...)
	}
}

func (d *defaultLogger) Info(msg string, fields ...zapcore.Field) {
	if d.enabled(LogLevelInfo) {
		d.logger.Info(msg, fields...)
	}
}

func (d *defaultLogger) Warn(msg string, fields ...zapcore.Field) {
	if d.enabled(LogLevelWarn) {
		d.logger.Warn(msg, fields...)
	}
}

// Error logs msg and returns it as an error, so call sites can write `return nil, log.Error(...)`.
// The error is returned even when the level suppresses output.
func (d *defaultLogger) Error(msg string, fields ...zapcore.Field) error {
	if d.enabled(LogLevelError) {
		d.logger.Error(msg, fields...)
	}
	return errors.New(msg)
}

// Panic logs msg and panics.
func (d *defaultLogger) Panic(msg string, fields ...zapcore.Field) {
	if d.enabled(LogLevelPanic) {
		d.logger.Panic(msg, fields...)
	}
}

// Fatal logs msg and exits the process.
func (d *defaultLogger) Fatal(msg string, fields ...zapcore.Field) {
	if d.enabled(LogLevelFatal) {
		d.logger.Fatal(msg, fields...)
	}
}

// NewLogger wraps an existing zap logger. Used by embedders that already own a zap
// configuration and by tests that observe output through zaptest/observer.
func NewLogger(z *zap.Logger, level LogLevel) Logger {
	return newDefaultLogger(z, level)
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return newDefaultLogger(zap.NewNop(), LogLevelNone)
}
