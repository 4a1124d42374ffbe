package render

import (
	"fmt"
	"strings"

	"github.com/atinylittleshell/gshcomplete/internal/completion"
	"github.com/rivo/uniseg"
)

// Renderer renders the edit line and the completion panel for a terminal
// of a given width.
type Renderer struct {
	width int
}

// NewRenderer creates a Renderer for the given terminal width.
func NewRenderer(width int) *Renderer {
	r := &Renderer{}
	r.SetWidth(width)
	return r
}

// SetWidth updates the terminal width.
func (r *Renderer) SetWidth(width int) {
	if width <= 0 {
		width = 80
	}
	r.width = width
}

// Width returns the terminal width.
func (r *Renderer) Width() int {
	return r.width
}

// RenderInputLine renders the prompt and the edit buffer with the cursor
// at byte position cursor.
func (r *Renderer) RenderInputLine(prompt string, text string, cursor int) string {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}

	before, after := text[:cursor], text[cursor:]
	cursorCell := " "
	if after != "" {
		gr := uniseg.NewGraphemes(after)
		gr.Next()
		cursorCell = gr.Str()
		after = after[len(cursorCell):]
	}

	return PromptStyle.Render(prompt) + before + CursorStyle.Render(cursorCell) + after
}

// RenderSelector renders the visible window of the selector. Lines above
// and below the window are summarized by scroll indicators. It returns an
// empty string when there is nothing to choose from.
func (r *Renderer) RenderSelector(selector *completion.Selector) string {
	if selector == nil || selector.Len() == 0 {
		return ""
	}

	contentWidth := max(1, r.width-4)
	window := selector.Window()
	first := selector.DisplayIndex()
	last := first + len(window)

	var content strings.Builder
	if first > 0 {
		content.WriteString(IndicatorStyle.Render(fmt.Sprintf("↑ %d more", first)))
		content.WriteString("\n")
	}

	for i, candidate := range window {
		if i > 0 {
			content.WriteString("\n")
		}
		line := Truncate(candidate.String(), contentWidth-2)
		if first+i == selector.SelectedIndex() {
			content.WriteString("> ")
			content.WriteString(SelectedStyle.Render(line))
		} else {
			content.WriteString("  ")
			content.WriteString(line)
		}
	}

	if last < selector.Len() {
		content.WriteString("\n")
		content.WriteString(IndicatorStyle.Render(fmt.Sprintf("↓ %d more", selector.Len()-last)))
	}

	content.WriteString("\n")
	content.WriteString(DimStyle.Render(fmt.Sprintf("%d/%d", selector.SelectedIndex()+1, selector.Len())))

	return PanelStyle.Width(max(1, r.width-2)).Render(content.String())
}

// Truncate shortens s to at most width terminal cells, ending with "…"
// when something was cut. Grapheme clusters are never split.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var b strings.Builder
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if used+w > width-1 {
			break
		}
		b.WriteString(gr.Str())
		used += w
	}
	b.WriteString("…")
	return b.String()
}
