package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Get a single reply from the support assistant",
		Example: `  wellnexa ask "I'm stressed about finals"
  wellnexa ask "I can't sleep" --server http://localhost:8080`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("message cannot be empty")
			}

			reply, err := opts.backend.Respond(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("respond: %w", err)
			}

			out := cmd.OutOrStdout()
			if reply.IsCrisis() {
				color.New(color.FgRed, color.Bold).Fprintln(out, "Assistant:")
				color.New(color.FgRed).Fprintln(out, reply.Content)
				for _, contact := range opts.doc.Site.CrisisContacts {
					fmt.Fprintf(out, "  %s %s\n", color.New(color.Bold).Sprint(contact.Name+":"), contact.Detail)
				}
				return nil
			}

			color.New(color.FgCyan, color.Bold).Fprintln(out, "Assistant:")
			fmt.Fprintln(out, reply.Content)
			return nil
		},
	}
}
