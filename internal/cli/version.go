package cli

import (
	"fmt"
	"runtime"

	"github.com/classowl/go-openclass/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"name":      version.GetAppName(),
					"version":   version.GetVersion(),
					"userAgent": version.GetUserAgentHeader(),
					"goVersion": runtime.Version(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (%s)\n", version.GetAppName(), version.GetVersion(), runtime.Version())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}
