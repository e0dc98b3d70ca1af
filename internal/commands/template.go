package commands

import (
	"bufio"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diogo/chatbot/internal/config"
)

func (a *app) newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates"},
		Short:   "Manage prompt templates",
		Long: `View and manage the prompt templates messages are wrapped in.

A template must contain the {message} placeholder exactly once.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List available templates",
			Args:  cobra.NoArgs,
			RunE:  a.runTemplateList,
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Show template details",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runTemplateShow,
		},
		a.newTemplateAddCmd(),
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a template",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runTemplateDelete,
		},
		&cobra.Command{
			Use:   "default <name>",
			Short: "Set default template",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runTemplateSetDefault,
		},
	)

	return cmd
}

func (a *app) runTemplateList(cmd *cobra.Command, args []string) error {
	tc, err := config.LoadTemplates()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	defaultName := tc.DefaultTemplate
	if defaultName == "" {
		defaultName = config.DefaultTemplateName
	}

	w := tabwriter.NewWriter(a.deps.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tDESCRIPTION\tDEFAULT")
	_, _ = fmt.Fprintln(w, "----\t-----------\t-------")

	for _, t := range tc.Templates {
		isDefault := ""
		if t.Name == defaultName {
			isDefault = "✓"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, t.Description, isDefault)
	}

	return w.Flush()
}

func (a *app) runTemplateShow(cmd *cobra.Command, args []string) error {
	t, err := config.GetTemplate(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.deps.Out, "Name: %s\n", t.Name)
	fmt.Fprintf(a.deps.Out, "Description: %s\n", t.Description)
	fmt.Fprintf(a.deps.Out, "\nTemplate:\n%s\n", t.Text)

	return nil
}

func (a *app) newTemplateAddCmd() *cobra.Command {
	var (
		description string
		text        string
		replace     bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new template",
		Long: `Add a new prompt template.

Without --text the template is read from stdin, ending with an empty line.

Examples:
  chatbot template add haiku --text "Answer as a haiku: {message}"
  chatbot template add haiku --replace --text "Reply in haiku form: {message}"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := config.PromptTemplate{
				Name:        args[0],
				Description: description,
				Text:        text,
			}

			if t.Text == "" {
				if err := a.readTemplateInteractive(&t, cmd.Flags().Changed("description")); err != nil {
					return err
				}
			}

			if replace {
				if err := config.UpdateTemplate(t); err != nil {
					return err
				}
				fmt.Fprintf(a.deps.Out, "Template '%s' updated.\n", t.Name)
				return nil
			}

			if err := config.AddTemplate(t); err != nil {
				return err
			}
			fmt.Fprintf(a.deps.Out, "Template '%s' created.\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Short description of the template")
	cmd.Flags().StringVar(&text, "text", "", "Template text containing {message}")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing template")

	return cmd
}

// readTemplateInteractive fills in the description and text from stdin
func (a *app) readTemplateInteractive(t *config.PromptTemplate, haveDescription bool) error {
	reader := bufio.NewReader(a.deps.In)

	if !haveDescription {
		fmt.Fprint(a.deps.Out, "Enter description: ")
		desc, err := reader.ReadString('\n')
		if err != nil && desc == "" {
			return fmt.Errorf("failed to read description: %w", err)
		}
		t.Description = strings.TrimSpace(desc)
	}

	fmt.Fprintln(a.deps.Out, "Enter template text, using {message} for the user's message (end with an empty line):")
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\n\r")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	t.Text = strings.Join(lines, "\n")

	return nil
}

func (a *app) runTemplateDelete(cmd *cobra.Command, args []string) error {
	if err := config.DeleteTemplate(args[0]); err != nil {
		return err
	}

	fmt.Fprintf(a.deps.Out, "Template '%s' deleted.\n", args[0])
	return nil
}

func (a *app) runTemplateSetDefault(cmd *cobra.Command, args []string) error {
	if err := config.SetDefaultTemplate(args[0]); err != nil {
		return err
	}

	fmt.Fprintf(a.deps.Out, "Default template set to '%s'.\n", args[0])
	return nil
}
