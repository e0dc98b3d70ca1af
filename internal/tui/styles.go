// Package tui provides the interactive settings menu for chatbot.
package tui

import "github.com/charmbracelet/lipgloss"

// Tokyo Night palette
var (
	colorBorder    = lipgloss.Color("#414868")
	colorPrimary   = lipgloss.Color("#7aa2f7")
	colorSecondary = lipgloss.Color("#9ece6a")
	colorAccent    = lipgloss.Color("#bb9af7")
	colorError     = lipgloss.Color("#f7768e")
	colorText      = lipgloss.Color("#c0caf5")
	colorTextDim   = lipgloss.Color("#565f89")
	colorTextMute  = lipgloss.Color("#3b4261")
)

var (
	loadingStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Bold(true)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMute)

	configHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginBottom(1).
				Align(lipgloss.Center)

	configTitleStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Bold(true).
				PaddingLeft(1)

	configPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(1, 2)

	configSectionTitleStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	configMenuItemStyle = lipgloss.NewStyle().
				Foreground(colorText)

	configMenuSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	configCursorStyle = lipgloss.NewStyle().
				Foreground(colorAccent)

	configValueStyle = lipgloss.NewStyle().
				Foreground(colorTextDim)

	configEnabledStyle = lipgloss.NewStyle().
				Foreground(colorSecondary)

	configDisabledStyle = lipgloss.NewStyle().
				Foreground(colorError)

	configPathStyle = lipgloss.NewStyle().
			Foreground(colorTextMute).
			Italic(true)

	configStatusOkStyle = lipgloss.NewStyle().
				Foreground(colorSecondary)

	configFeedbackStyle = lipgloss.NewStyle().
				Foreground(colorTextDim).
				Italic(true).
				MarginTop(1)

	configStatusBarStyle = lipgloss.NewStyle().
				Foreground(colorTextMute).
				MarginTop(1).
				Align(lipgloss.Center)
)
