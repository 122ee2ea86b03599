package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wellnexa/backend/internal/model/chat"
	"github.com/wellnexa/backend/internal/tui"
)

func newChatCmd(opts *options) *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive support chat",
		Long: `Open an interactive support chat.

Replies arrive after a short typing delay. If you are in crisis, the
assistant will point you to immediate help.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			be := opts.backend
			model := tui.New(tui.Config{
				Title:        opts.doc.Site.Name + " · " + opts.doc.Site.Tagline,
				Greeting:     opts.doc.Chat.Greeting,
				CrisisNotice: opts.doc.Site.CrisisNotice,
				Delay:        delay,
				Reply: func(ctx context.Context, text string) (chat.Message, error) {
					return be.Respond(ctx, text)
				},
			})

			_, err := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			).Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", 1500*time.Millisecond, "typing delay before each reply")
	return cmd
}
