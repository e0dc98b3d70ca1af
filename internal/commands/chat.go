package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/diogo/chatbot/internal/render"
	"github.com/diogo/chatbot/internal/repl"
)

func (a *app) newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session.

Each line you type is answered independently; no context is carried
between messages. Type 'exit' (any case) or press Ctrl+D to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd)
		},
	}
}

func (a *app) runChat(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	svc, err := a.newService(cfg)
	if err != nil {
		return err
	}

	var opts []repl.Option
	if cfg.Markdown.Enabled && isTerminal(a.deps.Out) {
		width := getTerminalWidth(a.deps.Out) - len(repl.BotPrefix)
		opts = append(opts, repl.WithFormatter(render.Formatter(render.OptionsFromConfig(cfg.Markdown, width))))
	}
	if cfg.CopyToClipboard {
		opts = append(opts, repl.WithOnResponse(func(text string) {
			if err := a.deps.CopyToClipboard(text); err != nil {
				log.Warn().Err(err).Msg("failed to copy response to clipboard")
			}
		}))
	}

	return repl.Run(cmd.Context(), svc, a.deps.In, a.deps.Out, opts...)
}
