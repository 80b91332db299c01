package cli

import (
	"context"

	"github.com/classowl/go-openclass/openclass"
	"github.com/spf13/cobra"
)

func newCourseRolesCmd(o *rootOptions) *cobra.Command {
	rolesCmd := &cobra.Command{
		Use:   "courseroles",
		Short: "Inspect course roles",
	}

	rolesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the course roles defined on the platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, c *openclass.Client) (any, error) {
				return c.GetCourseRoles(ctx)
			})
		},
	})
	return rolesCmd
}
