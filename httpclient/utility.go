package httpclient

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// validateFilePath cleans path, resolves symlinks and checks the configuration file extension.
func validateFilePath(path string) (string, error) {
	cleanPath := filepath.Clean(path)

	absPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		return "", fmt.Errorf("unable to resolve the absolute path of the configuration file: %s, error: %w", path, err)
	}

	if strings.Contains(absPath, "..") {
		return "", fmt.Errorf("invalid path, path traversal patterns detected: %s", path)
	}

	if filepath.Ext(absPath) != ConfigFileExtension {
		return "", fmt.Errorf("invalid file extension for configuration file: %s, expected .json", path)
	}

	return absPath, nil
}

// JSONDuration is a time.Duration that reads and writes as a Go duration string ("30s").
// Plain JSON numbers are read as nanoseconds.
type JSONDuration time.Duration

func (d JSONDuration) Duration() time.Duration {
	return time.Duration(d)
}

func (d JSONDuration) String() string {
	return time.Duration(d).String()
}

func (d JSONDuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *JSONDuration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = JSONDuration(time.Duration(value))
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = JSONDuration(parsed)
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
	return nil
}
