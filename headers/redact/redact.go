// headers/redact/redact.go
package redact

import "strings"

// Redacted replaces sensitive values in log output.
const Redacted = "REDACTED"

// sensitiveKeys are compared case-insensitively. They cover request headers, query
// parameters and form fields that carry credentials or tokens.
var sensitiveKeys = map[string]bool{
	"x-authorization": true,
	"authorization":   true,
	"accesstoken":     true,
	"authtoken":       true,
	"refreshtoken":    true,
	"apikey":          true,
	"password":        true,
}

// IsSensitiveKey reports whether values stored under key must never be logged in clear.
func IsSensitiveKey(key string) bool {
	return sensitiveKeys[strings.ToLower(key)]
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData && IsSensitiveKey(key) {
		return Redacted
	}
	return value
}
