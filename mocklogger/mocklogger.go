// mocklogger/mocklogger.go
package mocklogger

import (
	"time"

	"github.com/classowl/go-openclass/logger"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockLogger is a testify mock of logger.Logger. Tests set expectations with On(...);
// NewPermissiveMockLogger accepts every call for tests that only care about behaviour.
type MockLogger struct {
	mock.Mock
	logLevel logger.LogLevel
}

// NewMockLogger creates a new instance of MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// NewPermissiveMockLogger returns a MockLogger that accepts any call.
func NewPermissiveMockLogger() *MockLogger {
	m := NewMockLogger()
	for _, method := range []string{"Debug", "Info", "Warn", "Panic", "Fatal"} {
		m.On(method, mock.Anything, mock.Anything).Maybe()
	}
	m.On("Error", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("SetLevel", mock.Anything).Maybe()
	m.On("With", mock.Anything).Maybe()
	m.On("LogRequestStart", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("LogResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("LogAuthTokenError", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("LogTokenRefresh", mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("LogError", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	return m
}

// Ensure MockLogger implements the logger.Logger interface from the logger package
var _ logger.Logger = (*MockLogger)(nil)

// GetLogLevel returns the level last passed to SetLevel.
func (m *MockLogger) GetLogLevel() logger.LogLevel {
	return m.logLevel
}

// SetLevel sets the logging level of the MockLogger.
func (m *MockLogger) SetLevel(level logger.LogLevel) {
	m.logLevel = level
	m.Called(level)
}

// With records the call and returns the same mock so expectations keep applying.
func (m *MockLogger) With(fields ...zap.Field) logger.Logger {
	m.Called(fields)
	return m
}

// Debug logs a message at the Debug level.
func (m *MockLogger) Debug(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// Info logs a message at the Info level.
func (m *MockLogger) Info(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// Warn logs a message at the Warn level.
func (m *MockLogger) Warn(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// Error records the call and returns the configured error.
func (m *MockLogger) Error(msg string, fields ...zap.Field) error {
	args := m.Called(msg, fields)
	if err := args.Error(0); err != nil {
		return err
	}
	return mockError(msg)
}

// Panic logs a message at the Panic level.
func (m *MockLogger) Panic(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// Fatal logs a message at the Fatal level.
func (m *MockLogger) Fatal(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// LogRequestStart logs the start of an HTTP request.
func (m *MockLogger) LogRequestStart(event string, requestID string, method string, url string, headers map[string][]string) {
	m.Called(event, requestID, method, url, headers)
}

// LogResponse logs HTTP responses.
func (m *MockLogger) LogResponse(event string, requestID string, method string, url string, statusCode int, responseBody string, duration time.Duration) {
	m.Called(event, requestID, method, url, statusCode, responseBody, duration)
}

// LogAuthTokenError logs a rejected token.
func (m *MockLogger) LogAuthTokenError(event string, method string, url string, statusCode int, err error) {
	m.Called(event, method, url, statusCode, err)
}

// LogTokenRefresh logs a token acquisition.
func (m *MockLogger) LogTokenRefresh(event string, reason string, duration time.Duration) {
	m.Called(event, reason, duration)
}

// LogError logs an error event.
func (m *MockLogger) LogError(event string, method string, url string, statusCode int, serverStatusMessage string, err error, rawResponse string) {
	m.Called(event, method, url, statusCode, serverStatusMessage, err, rawResponse)
}

type mockError string

func (e mockError) Error() string { return string(e) }
