package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/diogo/chatbot/internal/config"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Open configuration menu",
		Long: `Interactive menu to configure chatbot settings.

Use 'chatbot config show' to print the effective configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(a.deps.Out) {
				return fmt.Errorf("the configuration menu needs a terminal; use 'chatbot config show' instead")
			}
			return a.deps.RunConfigTUI()
		},
	}

	var asYAML bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration after applying the config file,
the selected profile, environment variables and flags. Secrets are redacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			return a.printConfig(cfg.Redacted(), asYAML)
		},
	}
	showCmd.Flags().BoolVar(&asYAML, "yaml", false, "Print as YAML instead of JSON")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.deps.Out, path)
			return nil
		},
	}

	cmd.AddCommand(showCmd, pathCmd)
	return cmd
}

func (a *app) printConfig(cfg config.Config, asYAML bool) error {
	if asYAML {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = a.deps.Out.Write(data)
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintln(a.deps.Out, string(data))
	return nil
}
