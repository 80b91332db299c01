package cli

import (
	"context"

	"github.com/classowl/go-openclass/authenticationhandler"
	"github.com/classowl/go-openclass/headers/redact"
	"github.com/classowl/go-openclass/openclass"
	"github.com/spf13/cobra"
)

type loginResult struct {
	BaseURL      string `json:"baseUrl"`
	AuthToken    string `json:"authToken"`
	RefreshToken string `json:"refreshToken"`
}

func newLoginCmd(o *rootOptions) *cobra.Command {
	var force, showTokens bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Establish a session and print it",
		Long: `Establish a session from cached tokens, the token store or the admin
credentials, in that order. --force always performs a credential login.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, c *openclass.Client) (any, error) {
				if force {
					if err := c.HTTP.Auth.Reauthenticate(ctx); err != nil {
						return nil, err
					}
				}
				return describeSession(c.HTTP.BaseURL(), c.HTTP.Tokens(), showTokens), nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "ignore cached sessions and log in with credentials")
	cmd.Flags().BoolVar(&showTokens, "show-tokens", false, "print token values instead of redacting them")
	return cmd
}

func describeSession(baseURL string, pair authenticationhandler.TokenPair, show bool) loginResult {
	result := loginResult{BaseURL: baseURL, AuthToken: redact.Redacted, RefreshToken: redact.Redacted}
	if show {
		result.AuthToken = pair.AuthToken
		result.RefreshToken = pair.RefreshToken
	}
	return result
}
