// Package ui provides the terminal styling for the lolli CLI.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8F98"))
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4DB6AC")).Bold(true)
)

var enabled = true

// SetEnabled turns styling on or off. Off renders plain text, for
// --no-color, LOLLI_NO_COLOR, and non-terminal output.
func SetEnabled(on bool) { enabled = on }

func render(st lipgloss.Style, s string) string {
	if !enabled {
		return s
	}
	return st.Render(s)
}

// Success styles a positive verdict.
func Success(s string) string { return render(successStyle, s) }

// Failure styles a negative verdict.
func Failure(s string) string { return render(failureStyle, s) }

// Header styles a section label.
func Header(s string) string { return render(headerStyle, s) }

// Muted styles secondary detail such as stats lines.
func Muted(s string) string { return render(mutedStyle, s) }

// Banner styles the REPL greeting.
func Banner(s string) string { return render(bannerStyle, s) }

// Prompt styles the REPL prompt.
func Prompt(s string) string { return render(promptStyle, s) }
