// authenticationhandler/validation.go

package authenticationhandler

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidAdminEmail checks if the provided admin login looks like an email address.
// Returns true if valid, along with an empty error message; otherwise, returns false with an error message.
func IsValidAdminEmail(email string) (bool, string) {
	if emailRegex.MatchString(email) {
		return true, ""
	}
	return false, "Admin email must be a valid email address."
}

// IsValidPassword checks that an admin password was supplied.
func IsValidPassword(password string) (bool, string) {
	if password != "" {
		return true, ""
	}
	return false, "Admin password must not be empty."
}

// IsValidAPIKey checks that the application API key is present and contains no whitespace.
func IsValidAPIKey(apiKey string) (bool, string) {
	if apiKey == "" {
		return false, "API key must not be empty."
	}
	if strings.ContainsAny(apiKey, " \t\r\n") {
		return false, "API key must not contain whitespace."
	}
	return true, ""
}
