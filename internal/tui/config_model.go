package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/chatbot/internal/config"
	"github.com/diogo/chatbot/internal/render"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain configView = iota
	viewModelSelect
	viewProviderSelect
	viewTemplateSelect
	viewThemeSelect
	viewBaseURLEdit
)

// Menu item indices for main view
const (
	menuModel = iota
	menuProvider
	menuTemplate
	menuBaseURL
	menuVerbose
	menuMarkdown
	menuTheme
	menuCopyToClipboard
	menuExit
	menuItemCount
)

var providers = []string{config.ProviderOpenAI, config.ProviderHTTP}

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel represents the config TUI state. It edits the base config
// file only; profile overlays and environment variables are left alone.
type ConfigModel struct {
	config        config.Config
	configPath    string
	templatesPath string
	templates     []string
	save          func(config.Config) error

	// Navigation
	view         configView
	cursor       int
	listCursor   int
	baseURLInput textinput.Model

	// Feedback
	feedback        string
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates a new config TUI model
func NewConfigModel() ConfigModel {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	configPath, _ := config.GetConfigPath()
	templatesPath, _ := config.GetTemplatesPath()

	templates, err := config.ListTemplateNames()
	if err != nil || len(templates) == 0 {
		templates = []string{config.DefaultTemplateName}
	}

	input := textinput.New()
	input.Placeholder = "https://api.openai.com/v1"
	input.CharLimit = 512
	input.Width = 50

	return ConfigModel{
		config:          cfg,
		configPath:      configPath,
		templatesPath:   templatesPath,
		templates:       templates,
		save:            config.SaveConfig,
		view:            viewMain,
		baseURLInput:    input,
		feedbackTimeout: 2 * time.Second,
	}
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		if m.view == viewBaseURLEdit {
			return m.updateBaseURLEdit(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view == viewMain {
				return m, tea.Quit
			}
			m.view = viewMain

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

func (m ConfigModel) updateBaseURLEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.baseURLInput.Blur()
		m.view = viewMain
		return m, nil

	case "enter":
		m.baseURLInput.Blur()
		m.config.BaseURL = strings.TrimSpace(m.baseURLInput.Value())
		m.view = viewMain
		if m.config.BaseURL == "" {
			cmd := m.persist("Base URL cleared")
			return m, cmd
		}
		cmd := m.persist(fmt.Sprintf("Base URL set to %s", m.config.BaseURL))
		return m, cmd
	}

	var cmd tea.Cmd
	m.baseURLInput, cmd = m.baseURLInput.Update(msg)
	return m, cmd
}

// moveCursor moves the cursor of the active view, wrapping at both ends
func (m *ConfigModel) moveCursor(delta int) {
	if m.view == viewMain {
		m.cursor = wrap(m.cursor+delta, menuItemCount)
		return
	}
	m.listCursor = wrap(m.listCursor+delta, len(m.options(m.view)))
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// options returns the choices offered by a selection view
func (m ConfigModel) options(v configView) []string {
	switch v {
	case viewModelSelect:
		return config.AvailableModels()
	case viewProviderSelect:
		return providers
	case viewTemplateSelect:
		return m.templates
	case viewThemeSelect:
		return render.Styles
	}
	return nil
}

// current returns the configured value a selection view edits
func (m ConfigModel) current(v configView) string {
	switch v {
	case viewModelSelect:
		return m.config.Model
	case viewProviderSelect:
		return m.config.Provider
	case viewTemplateSelect:
		if m.config.Template == "" {
			return config.DefaultTemplateName
		}
		return m.config.Template
	case viewThemeSelect:
		if m.config.Markdown.Style == "" {
			return "dark"
		}
		return m.config.Markdown.Style
	}
	return ""
}

// openList switches to a selection view with the cursor on the current value
func (m ConfigModel) openList(v configView) (tea.Model, tea.Cmd) {
	m.view = v
	m.listCursor = 0
	current := m.current(v)
	for i, opt := range m.options(v) {
		if opt == current {
			m.listCursor = i
			break
		}
	}
	return m, nil
}

// persist saves the config and reports the outcome
func (m *ConfigModel) persist(success string) tea.Cmd {
	if err := m.save(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.feedback = success
	}
	return clearFeedback(m.feedbackTimeout)
}

func toggleState(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	if m.view != viewMain {
		return m.applySelection()
	}

	switch m.cursor {
	case menuModel:
		return m.openList(viewModelSelect)

	case menuProvider:
		return m.openList(viewProviderSelect)

	case menuTemplate:
		return m.openList(viewTemplateSelect)

	case menuTheme:
		return m.openList(viewThemeSelect)

	case menuBaseURL:
		m.view = viewBaseURLEdit
		m.baseURLInput.SetValue(m.config.BaseURL)
		m.baseURLInput.CursorEnd()
		cmd := m.baseURLInput.Focus()
		return m, cmd

	case menuVerbose:
		m.config.Verbose = !m.config.Verbose
		cmd := m.persist(fmt.Sprintf("Verbose logging %s", toggleState(m.config.Verbose)))
		return m, cmd

	case menuMarkdown:
		m.config.Markdown.Enabled = !m.config.Markdown.Enabled
		cmd := m.persist(fmt.Sprintf("Markdown rendering %s", toggleState(m.config.Markdown.Enabled)))
		return m, cmd

	case menuCopyToClipboard:
		m.config.CopyToClipboard = !m.config.CopyToClipboard
		cmd := m.persist(fmt.Sprintf("Copy to clipboard %s", toggleState(m.config.CopyToClipboard)))
		return m, cmd

	case menuExit:
		return m, tea.Quit
	}

	return m, nil
}

// applySelection stores the highlighted choice of a selection view
func (m ConfigModel) applySelection() (tea.Model, tea.Cmd) {
	opts := m.options(m.view)
	if len(opts) == 0 {
		m.view = viewMain
		return m, nil
	}
	choice := opts[m.listCursor]

	var label string
	switch m.view {
	case viewModelSelect:
		m.config.Model = choice
		label = "Model"
	case viewProviderSelect:
		m.config.Provider = choice
		label = "Provider"
	case viewTemplateSelect:
		m.config.Template = choice
		label = "Template"
	case viewThemeSelect:
		m.config.Markdown.Style = choice
		label = "Markdown theme"
	}

	m.view = viewMain
	cmd := m.persist(fmt.Sprintf("%s set to %s", label, choice))
	return m, cmd
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	header := configHeaderStyle.Width(contentWidth).Render(configTitleStyle.Render("✦ Configuration"))
	sections = append(sections, header)

	pathsContent := lipgloss.JoinVertical(lipgloss.Left,
		configSectionTitleStyle.Render("Paths"),
		fmt.Sprintf("   Config:    %s", configPathStyle.Render(m.configPath)),
		fmt.Sprintf("   Templates: %s", configPathStyle.Render(m.templatesPath)),
	)
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(pathsContent))

	var settingsContent string
	switch m.view {
	case viewMain:
		settingsContent = m.renderMainMenu()
	case viewBaseURLEdit:
		settingsContent = m.renderBaseURLEdit()
	default:
		settingsContent = m.renderSelect()
	}
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(settingsContent))

	if m.feedback != "" {
		sections = append(sections, configFeedbackStyle.Render("✓ "+m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	baseURL := m.config.BaseURL
	if baseURL == "" {
		baseURL = "(provider default)"
	}

	rows := []struct {
		label string
		value string
	}{
		menuModel:           {"Model", configValueStyle.Render(m.config.Model)},
		menuProvider:        {"Provider", configValueStyle.Render(m.config.Provider)},
		menuTemplate:        {"Prompt Template", configValueStyle.Render(m.current(viewTemplateSelect))},
		menuBaseURL:         {"Base URL", configValueStyle.Render(baseURL)},
		menuVerbose:         {"Verbose Logging", m.renderBoolValue(m.config.Verbose)},
		menuMarkdown:        {"Render Markdown", m.renderBoolValue(m.config.Markdown.Enabled)},
		menuTheme:           {"Markdown Theme", configValueStyle.Render(m.current(viewThemeSelect))},
		menuCopyToClipboard: {"Copy to Clipboard", m.renderBoolValue(m.config.CopyToClipboard)},
	}

	items := []string{configSectionTitleStyle.Render("⚙ Settings"), ""}
	for i, row := range rows {
		cursor, style := m.itemStyle(m.cursor == i)
		items = append(items, cursor+style.Render(fmt.Sprintf("%-20s", row.label))+row.value)
	}

	items = append(items, "")
	cursor, style := m.itemStyle(m.cursor == menuExit)
	items = append(items, cursor+style.Render("Exit"))

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderSelect renders the active selection sub-menu
func (m ConfigModel) renderSelect() string {
	titles := map[configView]string{
		viewModelSelect:    "Select Model",
		viewProviderSelect: "Select Provider",
		viewTemplateSelect: "Select Prompt Template",
		viewThemeSelect:    "Select Markdown Theme",
	}

	items := []string{configSectionTitleStyle.Render(titles[m.view]), ""}
	current := m.current(m.view)
	for i, opt := range m.options(m.view) {
		cursor, style := m.itemStyle(m.listCursor == i)
		marker := ""
		if opt == current {
			marker = configStatusOkStyle.Render(" (current)")
		}
		items = append(items, cursor+style.Render(opt)+marker)
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m ConfigModel) renderBaseURLEdit() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		configSectionTitleStyle.Render("Base URL"),
		"",
		m.baseURLInput.View(),
		"",
		configValueStyle.Render("Leave empty to use the provider default."),
	)
}

func (m ConfigModel) itemStyle(selected bool) (string, lipgloss.Style) {
	if selected {
		return configCursorStyle.Render("▸ "), configMenuSelectedStyle
	}
	return "  ", configMenuItemStyle
}

// renderBoolValue renders a boolean value with appropriate styling
func (m ConfigModel) renderBoolValue(value bool) string {
	if value {
		return configEnabledStyle.Render("enabled")
	}
	return configDisabledStyle.Render("disabled")
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", "Back"},
	}
	switch m.view {
	case viewMain:
		shortcuts[2].desc = "Exit"
	case viewBaseURLEdit:
		shortcuts = shortcuts[1:]
		shortcuts[0].desc = "Save"
		shortcuts[1].desc = "Cancel"
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		))
	}

	bar := strings.Join(items, "  │  ")
	return configStatusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// RunConfig starts the config TUI
func RunConfig() error {
	p := tea.NewProgram(
		NewConfigModel(),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
