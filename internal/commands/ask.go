package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/diogo/chatbot/internal/config"
	"github.com/diogo/chatbot/internal/render"
)

// askFlags are the flags of the ask command
type askFlags struct {
	file   string
	output string
	raw    bool
}

func (a *app) newAskCmd() *cobra.Command {
	var f askFlags

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Send a single message and print the response",
		Long: `Send a single message and print the response.

The message comes from the argument, from a file (-f), or from piped stdin.

Examples:
  chatbot ask "What is Go?"
  chatbot ask -f question.md
  cat question.md | chatbot ask
  chatbot ask "Hello" -o response.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := a.readMessage(f.file, args)
			if err != nil {
				return err
			}
			return a.runAsk(cmd, message, f)
		},
	}

	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read the message from file")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Save response to file")
	cmd.Flags().BoolVar(&f.raw, "raw", false, "Print only the response text")

	return cmd
}

// readMessage picks the message from a file, the argument or piped stdin
func (a *app) readMessage(file string, args []string) (string, error) {
	var message string
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		message = string(data)
	case len(args) > 0:
		message = args[0]
	case !isTerminal(a.deps.In):
		data, err := io.ReadAll(a.deps.In)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		message = string(data)
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("message cannot be empty")
	}
	return message, nil
}

// runAsk sends one message and prints or saves the response
func (a *app) runAsk(cmd *cobra.Command, message string, f askFlags) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	svc, err := a.newService(cfg)
	if err != nil {
		return err
	}

	var spin *spinner
	decorate := !f.raw && isTerminal(a.deps.Err)
	if decorate {
		spin = newSpinner(a.deps.Err, "Thinking")
		spin.start()
	}

	startTime := time.Now()
	text, err := svc.Respond(cmd.Context(), message)
	if err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		return fmt.Errorf("failed to get response: %w", err)
	}
	if spin != nil {
		spin.stopWithSuccess("Done")
	}
	log.Debug().Dur("duration", time.Since(startTime)).Msg("ask completed")

	if f.raw {
		if f.output != "" {
			return writeOutput(f.output, text)
		}
		fmt.Fprint(a.deps.Out, text)
		return nil
	}

	if cfg.CopyToClipboard {
		if err := a.deps.CopyToClipboard(text); err != nil {
			fmt.Fprintln(a.deps.Err, warningStyle.Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else {
			fmt.Fprintln(a.deps.Err, successStyle.Render("✓ Copied to clipboard"))
		}
	}

	if f.output != "" {
		if err := writeOutput(f.output, text); err != nil {
			return err
		}
		fmt.Fprintln(a.deps.Err, successStyle.Render(fmt.Sprintf("✓ Response saved to %s", f.output)))
		return nil
	}

	if !isTerminal(a.deps.Out) {
		fmt.Fprintln(a.deps.Out, text)
		return nil
	}

	a.printBubble(cfg, text)
	return nil
}

// printBubble prints the response in a bordered box, rendering markdown
// when it is enabled
func (a *app) printBubble(cfg config.Config, text string) {
	bubbleWidth := getTerminalWidth(a.deps.Out) - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	rendered := text
	if cfg.Markdown.Enabled {
		rendered = render.Formatter(render.OptionsFromConfig(cfg.Markdown, contentWidth))(text)
	}

	fmt.Fprintln(a.deps.Out, assistantLabelStyle.Render("✦ Bot"))
	fmt.Fprintln(a.deps.Out, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))
}

func writeOutput(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
