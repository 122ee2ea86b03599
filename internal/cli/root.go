// Package cli provides the command-line interface for wellnexa.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wellnexa/backend/internal/analysis/response"
	"github.com/wellnexa/backend/internal/client"
	"github.com/wellnexa/backend/internal/content"
	"github.com/wellnexa/backend/internal/model/chat"
	"github.com/wellnexa/backend/internal/model/counselor"
	"github.com/wellnexa/backend/internal/model/resource"
)

// Version is set at build time.
var Version = "0.1.0"

// serverURLEnv selects a backend when --server is not given.
const serverURLEnv = "WELLNEXA_SERVER_URL"

// backend answers the commands either in-process or through a server.
type backend interface {
	Respond(ctx context.Context, text string) (chat.Message, error)
	Counselors(ctx context.Context) ([]counselor.Counselor, error)
	Resources(ctx context.Context, filter resource.Filter) ([]resource.Resource, error)
}

type localBackend struct {
	selector   *response.Selector
	counselors counselor.Store
	resources  resource.Store
}

func newLocalBackend(doc *content.Content) *localBackend {
	return &localBackend{
		selector:   response.NewSelector(doc.Chat),
		counselors: counselor.NewMemoryStore(doc.Booking.Counselors),
		resources:  resource.NewMemoryStore(doc.Resources),
	}
}

func (b *localBackend) Respond(_ context.Context, text string) (chat.Message, error) {
	return b.selector.Select(text), nil
}

func (b *localBackend) Counselors(context.Context) ([]counselor.Counselor, error) {
	return b.counselors.List(), nil
}

func (b *localBackend) Resources(_ context.Context, filter resource.Filter) ([]resource.Resource, error) {
	return b.resources.List(filter), nil
}

type options struct {
	contentPath string
	serverURL   string

	doc     *content.Content
	backend backend
}

// NewRootCmd builds the wellnexa command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "wellnexa",
		Short: "Student mental health support from the terminal",
		Long: `wellnexa is the terminal companion to the WellNexa support site.

Chat with the support assistant, browse the counselor directory and the
resource library. Everything runs locally unless --server (or
WELLNEXA_SERVER_URL) points at a running backend.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}

			doc, err := content.Load(opts.contentPath)
			if err != nil {
				return fmt.Errorf("load content: %w", err)
			}
			opts.doc = doc

			serverURL := opts.serverURL
			if serverURL == "" {
				serverURL = strings.TrimSpace(os.Getenv(serverURLEnv))
			}
			if serverURL != "" {
				opts.backend = client.New(serverURL)
			} else {
				opts.backend = newLocalBackend(doc)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.contentPath, "content", "", "YAML file overriding the built-in content")
	root.PersistentFlags().StringVar(&opts.serverURL, "server", "", "backend base URL (default: $WELLNEXA_SERVER_URL, else answer locally)")

	root.AddCommand(
		newChatCmd(opts),
		newAskCmd(opts),
		newCounselorsCmd(opts),
		newResourcesCmd(opts),
	)
	return root
}
