// loggerconfig.go
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogOutputJSON          = "json"
	LogOutputHumanReadable = "human-readable"
)

// BuildLogger creates and returns a new zap-backed Logger writing to stdout.
// JSON output is the default; "human-readable" switches to the console encoder with coloured levels.
// The function panics if the logger cannot be initialized.
func BuildLogger(logLevel LogLevel, logOutputFormat string) Logger {
	return BuildLoggerWithOutput(logLevel, logOutputFormat, "stdout")
}

// BuildLoggerWithOutput is BuildLogger with explicit zap output paths ("stderr", a file path).
func BuildLoggerWithOutput(logLevel LogLevel, logOutputFormat string, outputPaths ...string) Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	encoding := "json"
	if logOutputFormat == LogOutputHumanReadable {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoding = "console"
	}

	atomicLevel := zap.NewAtomicLevelAt(convertToZapLevel(logLevel))
	config := zap.Config{
		Level:             atomicLevel,
		Development:       false,
		Encoding:          encoding,
		DisableCaller:     true,
		DisableStacktrace: true,
		EncoderConfig:     encoderCfg,
		OutputPaths:       outputPaths,
		ErrorOutputPaths:  []string{"stderr"},
	}

	zapLogger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to build logger: %v", err))
	}

	l := newDefaultLogger(zapLogger, logLevel)
	l.zapLevel = &atomicLevel
	return l
}

// convertToZapLevel converts the custom LogLevel to a zapcore.Level
func convertToZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LogLevelDebug:
		return zap.DebugLevel
	case LogLevelInfo:
		return zap.InfoLevel
	case LogLevelWarn:
		return zap.WarnLevel
	case LogLevelError:
		return zap.ErrorLevel
	case LogLevelDPanic:
		return zap.DPanicLevel
	case LogLevelPanic:
		return zap.PanicLevel
	case LogLevelFatal, LogLevelNone:
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}
