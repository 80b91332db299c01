package secrets

import (
	"context"
	"fmt"
	"strings"

	"github.com/classowl/go-openclass/authenticationhandler"
)

// Keys expected in the secret document.
const (
	KeyAdminEmail    = "admin_email"
	KeyAdminPassword = "admin_pw"
	KeyAPIKey        = "api_key"
)

// ResolveCredentials reads the OpenClass admin credentials from the secret stored under key.
func ResolveCredentials(ctx context.Context, p Provider, key string) (authenticationhandler.Credentials, error) {
	values, err := p.GetSecret(ctx, key)
	if err != nil {
		return authenticationhandler.Credentials{}, err
	}

	var missing []string
	for _, k := range []string{KeyAdminEmail, KeyAdminPassword, KeyAPIKey} {
		if values[k] == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return authenticationhandler.Credentials{}, fmt.Errorf("secret [%s] is missing %s", key, strings.Join(missing, ", "))
	}

	return authenticationhandler.Credentials{
		AdminEmail:    values[KeyAdminEmail],
		AdminPassword: values[KeyAdminPassword],
		APIKey:        values[KeyAPIKey],
	}, nil
}
