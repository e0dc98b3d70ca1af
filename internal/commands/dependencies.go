package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/diogo/chatbot/internal/api"
	"github.com/diogo/chatbot/internal/config"
	"github.com/diogo/chatbot/internal/tui"
)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// NewCompleter builds the completion client from the effective config.
	NewCompleter func(cfg config.Config) (api.Completer, error)

	// RunConfigTUI opens the interactive settings menu.
	RunConfigTUI func() error

	// CopyToClipboard places a response on the system clipboard.
	CopyToClipboard func(text string) error
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
		NewCompleter: func(cfg config.Config) (api.Completer, error) {
			return api.NewFromConfig(cfg)
		},
		RunConfigTUI:    tui.RunConfig,
		CopyToClipboard: clipboard.WriteAll,
	}
}
