package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wellnexa/backend/internal/model/resource"
)

func newCounselorsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "counselors",
		Short: "List counselors available for booking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.backend.Counselors(cmd.Context())
			if err != nil {
				return fmt.Errorf("list counselors: %w", err)
			}

			out := cmd.OutOrStdout()
			name := color.New(color.FgCyan, color.Bold).SprintFunc()
			for _, c := range list {
				fmt.Fprintf(out, "%s  %s (%.1f)\n", c.ID, name(c.Name), c.Rating)
				fmt.Fprintf(out, "   %s, %s experience, available %s\n", c.Specialization, c.Experience, c.Availability)
			}
			return nil
		},
	}
}

func newResourcesCmd(opts *options) *cobra.Command {
	var filter resource.Filter

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Browse the resource library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.backend.Resources(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list resources: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No resources found.")
				return nil
			}

			title := color.New(color.Bold).SprintFunc()
			tag := color.New(color.FgGreen).SprintFunc()
			for _, r := range list {
				fmt.Fprintf(out, "%d. %s %s\n", r.ID, title(r.Title), tag("["+r.Category+"]"))
				fmt.Fprintf(out, "   %s · %s · %s\n", r.Type, r.Duration, r.Difficulty)
				fmt.Fprintf(out, "   %s\n", r.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Category, "category", "", "only show this category")
	cmd.Flags().StringVar(&filter.Type, "type", "", "only show this type (Article, Audio, Video...)")
	return cmd
}
