package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var colorProfile = termenv.ColorProfile()

// render applies the style unless the terminal reports no color support
func render(style lipgloss.Style, text string) string {
	if colorProfile == termenv.Ascii {
		return text
	}
	return style.Render(text)
}

// ColorBranchName colors a branch name, highlighting the selected one
func ColorBranchName(name string, selected bool) string {
	if selected {
		return render(lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true), name)
	}
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("39")), name)
}

// ColorDim renders de-emphasized helper text
func ColorDim(text string) string {
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("240")), text)
}

// ColorError colors text red
func ColorError(text string) string {
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("196")), text)
}
