// Package render draws the completion selector and the edit line.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	ColorCyan   = lipgloss.Color("12") // Prompt
	ColorYellow = lipgloss.Color("11") // Scroll indicators
	ColorGray   = lipgloss.Color("8")  // Dim/secondary
)

// Style definitions using Lip Gloss
var (
	// PromptStyle is used for the prompt before the edit line
	PromptStyle = lipgloss.NewStyle().Foreground(ColorCyan)

	// CursorStyle marks the cursor cell in the edit line
	CursorStyle = lipgloss.NewStyle().Reverse(true)

	// SelectedStyle is used for the selected completion candidate
	SelectedStyle = lipgloss.NewStyle().Bold(true)

	// IndicatorStyle is used for the scroll indicators of the completion panel
	IndicatorStyle = lipgloss.NewStyle().Foreground(ColorYellow)

	// DimStyle is used for secondary information like match counts
	DimStyle = lipgloss.NewStyle().Foreground(ColorGray)

	// PanelStyle frames the completion panel
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)
)
