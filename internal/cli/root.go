// Package cli implements the openclass command line tool.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/classowl/go-openclass/authenticationhandler"
	"github.com/classowl/go-openclass/httpclient"
	"github.com/classowl/go-openclass/logger"
	"github.com/classowl/go-openclass/openclass"
	"github.com/classowl/go-openclass/secrets"
	"github.com/classowl/go-openclass/tokenstore"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// DefaultCLILogLevel keeps stderr quiet unless --debug or OPENCLASS_LOG_LEVEL ask for more.
const DefaultCLILogLevel = "LogLevelWarn"

type rootOptions struct {
	configFile string
	envFile    string
	secretID   string
	awsRegion  string
	tokenFile  string
	redisAddr  string
	logLevel   string
	debug      bool

	newSecretsProvider func(ctx context.Context, region string) (secrets.Provider, error)
	clientOptions      []httpclient.ClientOption
}

// NewRootCmd returns the openclass command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{newSecretsProvider: awsSecretsProvider})
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func newRootCmd(o *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "openclass",
		Short: "OpenClass API command line client",
		Long: `openclass calls the OpenClass API as an institution administrator.

Credentials come from OPENCLASS_* environment variables, a .env file, a JSON
config file or an AWS Secrets Manager secret. Sessions can be cached in a token
file or in Redis so repeated invocations skip the login call.

Example usage:
  openclass login
  openclass person get inst-1 user-9
  openclass course create --institution-id inst-1 --title "Biology 101"
  openclass courseroles list`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.configFile, "config", "", "JSON client configuration file")
	flags.StringVar(&o.envFile, "env-file", "", "dotenv file to load (default .env when present)")
	flags.StringVar(&o.secretID, "secret-id", "", "AWS Secrets Manager secret holding admin_email, admin_pw and api_key")
	flags.StringVar(&o.awsRegion, "aws-region", "", "AWS region for --secret-id")
	flags.StringVar(&o.tokenFile, "token-file", "", "cache the session in this file")
	flags.StringVar(&o.redisAddr, "redis-addr", "", "cache the session in Redis at host:port")
	flags.StringVar(&o.logLevel, "log-level", "", "log level, e.g. LogLevelInfo")
	flags.BoolVar(&o.debug, "debug", false, "log requests and responses at debug level")

	rootCmd.AddCommand(
		newLoginCmd(o),
		newPersonCmd(o),
		newCourseCmd(o),
		newCourseRolesCmd(o),
		newVersionCmd(),
	)
	return rootCmd
}

func awsSecretsProvider(ctx context.Context, region string) (secrets.Provider, error) {
	return secrets.NewAWSProvider(ctx, region)
}

// loadConfig layers the config file, the environment and the secret, in that order.
func (o *rootOptions) loadConfig(ctx context.Context) (httpclient.ClientConfig, error) {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return httpclient.ClientConfig{}, fmt.Errorf("loading env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	config := &httpclient.ClientConfig{}
	if o.configFile != "" {
		fromFile, err := httpclient.LoadConfigFromFile(o.configFile)
		if err != nil {
			return httpclient.ClientConfig{}, err
		}
		config = fromFile
	}
	config, err := httpclient.LoadConfigFromEnv(config)
	if err != nil {
		return httpclient.ClientConfig{}, err
	}

	if o.secretID != "" {
		provider, err := o.newSecretsProvider(ctx, o.awsRegion)
		if err != nil {
			return httpclient.ClientConfig{}, fmt.Errorf("creating secrets provider: %w", err)
		}
		creds, err := secrets.ResolveCredentials(ctx, provider, o.secretID)
		if err != nil {
			return httpclient.ClientConfig{}, err
		}
		config.AdminEmail = creds.AdminEmail
		config.AdminPassword = creds.AdminPassword
		config.APIKey = creds.APIKey
	}

	switch {
	case o.debug:
		config.LogLevel = "LogLevelDebug"
	case o.logLevel != "":
		config.LogLevel = o.logLevel
	case config.LogLevel == "":
		config.LogLevel = DefaultCLILogLevel
	}
	if config.LogOutputFormat == "" {
		config.LogOutputFormat = logger.LogOutputHumanReadable
	}

	return *config, nil
}

// tokenStore returns the configured session cache, its cleanup, or nil when none is set.
func (o *rootOptions) tokenStore(ctx context.Context, adminEmail string) (authenticationhandler.Store, func(), error) {
	switch {
	case o.tokenFile != "" && o.redisAddr != "":
		return nil, func() {}, errors.New("--token-file and --redis-addr cannot be used together")
	case o.tokenFile != "":
		return tokenstore.NewFileStore(o.tokenFile), func() {}, nil
	case o.redisAddr != "":
		rdb := redis.NewClient(&redis.Options{Addr: o.redisAddr})
		store := tokenstore.NewRedisStore(rdb, adminEmail, 0)
		if err := store.HealthCheck(ctx); err != nil {
			_ = rdb.Close()
			return nil, func() {}, fmt.Errorf("redis token store at %s: %w", o.redisAddr, err)
		}
		return store, func() { _ = rdb.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}

// newClient builds an authenticated client. The returned cleanup must be called when done.
func (o *rootOptions) newClient(ctx context.Context) (*openclass.Client, func(), error) {
	config, err := o.loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	log := logger.BuildLoggerWithOutput(logger.ParseLogLevelFromString(config.LogLevel), config.LogOutputFormat, "stderr")
	opts := []httpclient.ClientOption{httpclient.WithLogger(log)}

	store, cleanup, err := o.tokenStore(ctx, config.AdminEmail)
	if err != nil {
		return nil, nil, err
	}
	if store != nil {
		opts = append(opts, httpclient.WithTokenStore(store))
	}
	opts = append(opts, o.clientOptions...)

	client, err := openclass.NewClient(ctx, config, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return client, cleanup, nil
}

// run builds a client, invokes fn and prints its result as indented JSON.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, c *openclass.Client) (any, error)) error {
	ctx := cmd.Context()
	client, cleanup, err := o.newClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := fn(ctx, client)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), result)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
