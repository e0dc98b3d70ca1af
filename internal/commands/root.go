// Package commands provides CLI commands for chatbot.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/diogo/chatbot/internal/chatbot"
	"github.com/diogo/chatbot/internal/config"
	"github.com/diogo/chatbot/internal/logging"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	model    string
	template string
	provider string
	baseURL  string
	profile  string
	verbose  bool
}

// app carries the state of one command-line invocation
type app struct {
	deps  *Dependencies
	flags globalFlags
}

// NewRootCmd builds the full command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	a := &app{deps: deps}

	rootCmd := &cobra.Command{
		Use:   "chatbot",
		Short: "A friendly command-line chatbot",
		Long: `chatbot is a small interactive chatbot for the terminal. Every message is
wrapped in a prompt template and sent to a chat-completion service
(OpenAI, any OpenAI-compatible server, or a generic JSON endpoint).

Each message is answered on its own: there is no conversation memory.

Examples:
  chatbot                               Start the interactive loop
  chatbot ask "What is Go?"             Send a single message
  cat question.txt | chatbot ask        Read the message from stdin
  chatbot -t pirate                     Chat with another prompt template
  chatbot --base-url http://localhost:11434/v1 -m llama3
  chatbot config                        Configure settings`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(deps.Err, "warn", a.flags.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Out, "chatbot %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return a.runChat(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.flags.model, "model", "m", "", "Model to use (e.g., gpt-4o-mini)")
	flags.StringVarP(&a.flags.template, "template", "t", "", "Prompt template to wrap messages in")
	flags.StringVar(&a.flags.provider, "provider", "", "Completion provider (openai, http)")
	flags.StringVar(&a.flags.baseURL, "base-url", "", "Base URL of an OpenAI-compatible server")
	flags.StringVar(&a.flags.profile, "profile", "", "Configuration profile to overlay (config.<profile>.json|yaml)")
	flags.BoolVar(&a.flags.verbose, "verbose", false, "Log debug information to stderr")
	rootCmd.Flags().Bool("version", false, "Show version and exit")

	rootCmd.AddCommand(a.newChatCmd())
	rootCmd.AddCommand(a.newAskCmd())
	rootCmd.AddCommand(a.newTemplateCmd())
	rootCmd.AddCommand(a.newConfigCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	os.Exit(execute(NewDependencies(), os.Args[1:]))
}

// execute runs the command line and returns the process exit code
func execute(deps *Dependencies, args []string) int {
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}

	cmd := NewRootCmd(deps)
	cmd.SetArgs(args)
	cmd.SetIn(deps.In)
	cmd.SetOut(deps.Out)
	cmd.SetErr(deps.Err)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(deps.Err, formatErrorMessage(err, "Error"))
		return 1
	}
	return 0
}

// loadConfig returns the effective configuration with flags applied last
func (a *app) loadConfig() (config.Config, error) {
	cfg, err := config.Load(a.flags.profile)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	if a.flags.model != "" {
		cfg.Model = a.flags.model
	}
	if a.flags.provider != "" {
		cfg.Provider = strings.ToLower(a.flags.provider)
	}
	if a.flags.baseURL != "" {
		cfg.BaseURL = a.flags.baseURL
	}
	if a.flags.verbose {
		cfg.Verbose = true
	}

	logging.Setup(a.deps.Err, cfg.LogLevel, cfg.Verbose)

	configPath, _ := config.GetConfigPath()
	log.Debug().
		Str("path", configPath).
		Str("profile", a.flags.profile).
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("config loaded")

	return cfg, nil
}

// newService validates cfg and wires the client and template together
func (a *app) newService(cfg config.Config) (*chatbot.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client, err := a.deps.NewCompleter(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	name := a.flags.template
	if name == "" {
		name = cfg.Template
	}
	tmpl, err := config.ResolveTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	log.Debug().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Str("template", name).
		Msg("client built")

	return chatbot.NewService(client, tmpl), nil
}
