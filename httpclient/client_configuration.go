// httpclient/client_configuration.go
// Description: This file contains functions to load and validate configuration values from a JSON file or environment variables.
package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/classowl/go-openclass/authenticationhandler"
	"github.com/classowl/go-openclass/logger"
	"github.com/classowl/go-openclass/proxy"
)

const (
	DefaultBaseURL               = "https://api.openclasslabs.com"
	DefaultLogLevelString        = "LogLevelInfo"
	DefaultLogOutputFormatString = logger.LogOutputJSON
	DefaultCustomTimeout         = JSONDuration(10 * time.Second)
	DefaultMaxRedirects          = 5
	ConfigFileExtension          = ".json"

	// EnvPrefix is prepended to every environment variable read by LoadConfigFromEnv.
	EnvPrefix = "OPENCLASS_"
)

// LoadConfigFromFile loads configuration values from a JSON file into the ClientConfig struct.
// Keys match the ClientConfig field names; durations are strings such as "30s".
func LoadConfigFromFile(filepath string) (*ClientConfig, error) {
	cleanPath, err := validateFilePath(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to clean/validate filepath (%s): %w", filepath, err)
	}

	fileBytes, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read the configuration file: %s, error: %w", cleanPath, err)
	}

	var config ClientConfig
	if err := json.Unmarshal(fileBytes, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the configuration file: %s, error: %w", cleanPath, err)
	}

	return &config, nil
}

// LoadConfigFromEnv overlays OPENCLASS_* environment variables onto config. Unset variables keep
// the existing value; a nil config starts from the zero value.
func LoadConfigFromEnv(config *ClientConfig) (*ClientConfig, error) {
	if config == nil {
		config = &ClientConfig{}
	}

	config.BaseURL = getEnvOrDefault(EnvPrefix+"BASE_URL", config.BaseURL)

	// Auth
	config.AdminEmail = getEnvOrDefault(EnvPrefix+"ADMIN_EMAIL", config.AdminEmail)
	config.AdminPassword = getEnvOrDefault(EnvPrefix+"ADMIN_PASSWORD", config.AdminPassword)
	config.APIKey = getEnvOrDefault(EnvPrefix+"API_KEY", config.APIKey)
	config.AuthToken = getEnvOrDefault(EnvPrefix+"AUTH_TOKEN", config.AuthToken)
	config.RefreshToken = getEnvOrDefault(EnvPrefix+"REFRESH_TOKEN", config.RefreshToken)

	// Logging
	config.LogLevel = getEnvOrDefault(EnvPrefix+"LOG_LEVEL", config.LogLevel)
	config.LogOutputFormat = getEnvOrDefault(EnvPrefix+"LOG_OUTPUT_FORMAT", config.LogOutputFormat)
	config.HideSensitiveData = parseBool(getEnvOrDefault(EnvPrefix+"HIDE_SENSITIVE_DATA", strconv.FormatBool(config.HideSensitiveData)))

	// Transport
	config.ProxyURL = getEnvOrDefault(EnvPrefix+"PROXY_URL", config.ProxyURL)
	config.ProxyUsername = getEnvOrDefault(EnvPrefix+"PROXY_USERNAME", config.ProxyUsername)
	config.ProxyPassword = getEnvOrDefault(EnvPrefix+"PROXY_PASSWORD", config.ProxyPassword)
	config.EnableCookieJar = parseBool(getEnvOrDefault(EnvPrefix+"ENABLE_COOKIE_JAR", strconv.FormatBool(config.EnableCookieJar)))

	// Misc
	if raw, ok := os.LookupEnv(EnvPrefix + "CUSTOM_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %sCUSTOM_TIMEOUT %q: %w", EnvPrefix, raw, err)
		}
		config.CustomTimeout = JSONDuration(timeout)
	}
	config.FollowRedirects = parseBool(getEnvOrDefault(EnvPrefix+"FOLLOW_REDIRECTS", strconv.FormatBool(config.FollowRedirects)))
	config.MaxRedirects = parseInt(getEnvOrDefault(EnvPrefix+"MAX_REDIRECTS", strconv.Itoa(config.MaxRedirects)), config.MaxRedirects)

	return config, nil
}

// SetDefaultValuesClientConfig fills unset options with their defaults.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevelString
	}
	if config.LogOutputFormat == "" {
		config.LogOutputFormat = DefaultLogOutputFormatString
	}
	if config.CustomTimeout <= 0 {
		config.CustomTimeout = DefaultCustomTimeout
	}
	if config.FollowRedirects && config.MaxRedirects <= 0 {
		config.MaxRedirects = DefaultMaxRedirects
	}
}

// validateClientConfig checks credentials, base URL and logging options.
func validateClientConfig(config ClientConfig) error {
	var errs []error

	if ok, msg := authenticationhandler.IsValidAdminEmail(config.AdminEmail); !ok {
		errs = append(errs, errors.New(msg))
	}
	if ok, msg := authenticationhandler.IsValidPassword(config.AdminPassword); !ok {
		errs = append(errs, errors.New(msg))
	}
	if ok, msg := authenticationhandler.IsValidAPIKey(config.APIKey); !ok {
		errs = append(errs, errors.New(msg))
	}

	if u, err := url.Parse(config.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid base url: %q", config.BaseURL))
	}

	validLogLevels := []string{
		"LogLevelDebug",
		"LogLevelInfo",
		"LogLevelWarn",
		"LogLevelError",
		"LogLevelDPanic",
		"LogLevelPanic",
		"LogLevelFatal",
		"LogLevelNone",
	}
	if !slices.Contains(validLogLevels, config.LogLevel) {
		errs = append(errs, fmt.Errorf("invalid log level: %s", config.LogLevel))
	}

	validLogFormats := []string{
		logger.LogOutputJSON,
		logger.LogOutputHumanReadable,
	}
	if !slices.Contains(validLogFormats, config.LogOutputFormat) {
		errs = append(errs, fmt.Errorf("invalid log output format: %s", config.LogOutputFormat))
	}

	if config.ProxyURL != "" {
		if _, err := proxy.ParseProxyURL(config.ProxyURL); err != nil {
			errs = append(errs, err)
		}
	}

	if config.FollowRedirects && config.MaxRedirects < 1 {
		errs = append(errs, fmt.Errorf("invalid max redirects: %d", config.MaxRedirects))
	}

	return errors.Join(errs...)
}

// Helper function to get environment variable or default value
func getEnvOrDefault(envKey string, defaultValue string) string {
	if value, exists := os.LookupEnv(envKey); exists {
		return value
	}
	return defaultValue
}

// Helper function to parse boolean from environment variable
func parseBool(value string) bool {
	result, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return result
}

// Helper function to parse int from environment variable
func parseInt(value string, defaultVal int) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultVal
	}
	return result
}
