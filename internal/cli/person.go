package cli

import (
	"context"

	"github.com/classowl/go-openclass/openclass"
	"github.com/spf13/cobra"
)

func newPersonCmd(o *rootOptions) *cobra.Command {
	personCmd := &cobra.Command{
		Use:   "person",
		Short: "Look up people enrolled at an institution",
	}

	personCmd.AddCommand(&cobra.Command{
		Use:   "get <institution> <user-id>",
		Short: "Fetch a person by SIS user id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, c *openclass.Client) (any, error) {
				return c.GetPerson(ctx, args[0], args[1])
			})
		},
	})
	return personCmd
}
