package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/classowl/go-openclass/openclass"
	"github.com/spf13/cobra"
)

func newCourseCmd(o *rootOptions) *cobra.Command {
	courseCmd := &cobra.Command{
		Use:   "course",
		Short: "Manage courses",
	}
	courseCmd.AddCommand(
		newCourseGetCmd(o),
		newCourseCreateCmd(o),
		newCourseUpdateCmd(o),
		newCourseDeleteCmd(o),
	)
	return courseCmd
}

func newCourseGetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <course-id>",
		Short: "Fetch a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, c *openclass.Client) (any, error) {
				return c.GetCourse(ctx, args[0])
			})
		},
	}
}

func newCourseCreateCmd(o *rootOptions) *cobra.Command {
	var institutionID, title, data string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a course",
		Long: `Create a course. --data supplies extra fields as a JSON object;
--institution-id and --title take precedence over the same keys in --data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parseData(data)
			if err != nil {
				return err
			}
			if institutionID != "" {
				payload["institutionId"] = institutionID
			}
			if title != "" {
				payload["courseTitle"] = title
			}
			if err := openclass.ValidateCourse(payload); err != nil {
				return err
			}
			return o.run(cmd, func(ctx context.Context, c *openclass.Client) (any, error) {
				return c.CreateCourse(ctx, payload)
			})
		},
	}

	cmd.Flags().StringVar(&institutionID, "institution-id", "", "owning institution")
	cmd.Flags().StringVar(&title, "title", "", "course title, at most 50 characters")
	cmd.Flags().StringVar(&data, "data", "", "additional course fields as a JSON object")
	return cmd
}

func newCourseUpdateCmd(o *rootOptions) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "update <course-id>",
		Short: "Replace fields on a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parseData(data)
			if err != nil {
				return err
			}
			return o.run(cmd, func(ctx context.Context, c *openclass.Client) (any, error) {
				return c.UpdateCourse(ctx, args[0], payload)
			})
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "course fields as a JSON object")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newCourseDeleteCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <course-id>",
		Short: "Delete a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, c *openclass.Client) (any, error) {
				return c.DeleteCourse(ctx, args[0])
			})
		},
	}
}

// parseData decodes a --data flag. An empty flag yields an empty payload.
func parseData(raw string) (map[string]any, error) {
	payload := map[string]any{}
	if raw == "" {
		return payload, nil
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("--data must be a JSON object: %w", err)
	}
	if payload == nil {
		return nil, errors.New("--data must be a JSON object, got null")
	}
	return payload, nil
}
