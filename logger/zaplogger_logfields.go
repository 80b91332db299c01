// zaplogger_logfields.go
package logger

import (
	"time"

	"go.uber.org/zap"
)

// LogRequestStart logs the initiation of an HTTP request. Headers are expected to be redacted by the caller.
func (d *defaultLogger) LogRequestStart(event string, requestID string, method string, url string, headers map[string][]string) {
	if d.enabled(LogLevelDebug) {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("url", url),
			zap.Any("headers", headers),
		}
		d.logger.Debug("HTTP request started", fields...)
	}
}

// LogResponse logs the raw response of an HTTP request along with its duration.
func (d *defaultLogger) LogResponse(event string, requestID string, method string, url string, statusCode int, responseBody string, duration time.Duration) {
	if d.enabled(LogLevelDebug) {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.String("response_body", responseBody),
			zap.Duration("duration", duration),
		}
		d.logger.Debug("HTTP response received", fields...)
	}
}

// LogAuthTokenError logs a request that was rejected for authentication reasons.
func (d *defaultLogger) LogAuthTokenError(event string, method string, url string, statusCode int, err error) {
	if d.enabled(LogLevelWarn) {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.Error(err),
		}
		d.logger.Warn("Authentication token rejected", fields...)
	}
}

// LogTokenRefresh logs a completed token acquisition (login or refresh).
func (d *defaultLogger) LogTokenRefresh(event string, reason string, duration time.Duration) {
	if d.enabled(LogLevelInfo) {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("reason", reason),
			zap.Duration("duration", duration),
		}
		d.logger.Info("Authentication tokens updated", fields...)
	}
}

// LogError logs an error that occurs during the processing of an HTTP request.
func (d *defaultLogger) LogError(event string, method string, url string, statusCode int, serverStatusMessage string, err error, rawResponse string) {
	if d.enabled(LogLevelError) {
		errorMessage := ""
		if err != nil {
			errorMessage = err.Error()
		}
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.String("status_message", serverStatusMessage),
			zap.String("error_message", errorMessage),
			zap.String("raw_response", rawResponse),
		}
		d.logger.Error("Error during HTTP request", fields...)
	}
}
