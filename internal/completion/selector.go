package completion

import (
	"math"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultDisplayLines is the number of completion lines shown below the prompt.
const DefaultDisplayLines = 7

// Selector holds an interactive completion session: the candidates, the
// selected entry and the scroll window the renderer shows.
//
// When entries is non-empty the selector keeps
// 0 <= displayIndex <= selectedIndex < displayIndex+displayLines.
type Selector struct {
	entries       CandidateList
	selectedIndex int
	displayLines  int
	displayIndex  int

	logger *zap.Logger
}

// NewSelector creates a selector over entries with the first entry selected.
func NewSelector(entries CandidateList) *Selector {
	return NewSelectorWithLogger(entries, nil)
}

// NewSelectorWithLogger creates a selector that logs cursor movement at debug level.
func NewSelectorWithLogger(entries CandidateList, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		entries:      entries,
		displayLines: DefaultDisplayLines,
		logger:       logger,
	}
}

// MoveCursor moves the selection by offset entries, clamping at both ends,
// and scrolls the window so the selection stays visible.
func (s *Selector) MoveCursor(offset int) {
	index := addClamped(s.selectedIndex, offset)
	if index > len(s.entries)-1 {
		index = len(s.entries) - 1
	}
	if index < 0 {
		index = 0
	}
	s.selectedIndex = index

	if s.selectedIndex >= s.displayIndex+s.displayLines {
		s.displayIndex = s.selectedIndex - s.displayLines + 1
	}
	if s.selectedIndex < s.displayIndex {
		s.displayIndex = s.selectedIndex
	}

	s.logger.Debug("completion cursor moved",
		zap.Int("offset", offset),
		zap.Int("index", s.selectedIndex),
		zap.Int("displayIndex", s.displayIndex),
	)
}

// addClamped adds b to a, saturating instead of overflowing.
func addClamped(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}

// Entries returns the candidates. The returned slice is a copy; the
// candidate text itself is shared.
func (s *Selector) Entries() CandidateList {
	return append(CandidateList(nil), s.entries...)
}

// Len returns the number of candidates.
func (s *Selector) Len() int {
	return len(s.entries)
}

// SelectedIndex returns the index of the selected candidate.
func (s *Selector) SelectedIndex() int {
	return s.selectedIndex
}

// DisplayLines returns the height of the scroll window.
func (s *Selector) DisplayLines() int {
	return s.displayLines
}

// DisplayIndex returns the index of the first visible candidate.
func (s *Selector) DisplayIndex() int {
	return s.displayIndex
}

// Get returns the candidate at index, or false if index is out of range.
func (s *Selector) Get(index int) (Candidate, bool) {
	if index < 0 || index >= len(s.entries) {
		return "", false
	}
	return s.entries[index], true
}

// Selected returns the currently selected candidate.
func (s *Selector) Selected() (Candidate, bool) {
	return s.Get(s.selectedIndex)
}

// Window returns the candidates currently inside the scroll window.
func (s *Selector) Window() CandidateList {
	if len(s.entries) == 0 {
		return nil
	}
	end := min(s.displayIndex+s.displayLines, len(s.entries))
	return s.entries[s.displayIndex:end]
}

// SelectAndUpdateInputAndCursor replaces the current word of input with the
// selected candidate and returns the new input and cursor position. The
// input and cursor are returned unchanged when there is nothing to select.
func (s *Selector) SelectAndUpdateInputAndCursor(ctx InputContext, input string, cursor int) (string, int) {
	selected, ok := s.Selected()
	if !ok {
		return input, cursor
	}

	start := runeStart(input, ctx.CurrentWordOffset())
	end := runeStart(input, ctx.CurrentWordOffset()+ctx.CurrentWordLen())
	if end < start {
		end = start
	}

	result := ApplySuggestion(input, string(selected), start, end)
	return result.NewText, result.NewCursorPos
}

// runeStart clamps pos into text and moves it back to the start of the
// rune it falls inside.
func runeStart(text string, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(text) {
		return len(text)
	}
	for pos > 0 && !utf8.RuneStart(text[pos]) {
		pos--
	}
	return pos
}

// CompletionResult represents the result of applying a completion suggestion.
type CompletionResult struct {
	// NewText is the resulting text after applying the completion
	NewText string
	// NewCursorPos is the new byte cursor position after applying the completion
	NewCursorPos int
}

// ApplySuggestion replaces the bytes between startPos and endPos of text
// with suggestion. The cursor goes to the end of the inserted suggestion.
func ApplySuggestion(text string, suggestion string, startPos, endPos int) CompletionResult {
	if startPos > len(text) {
		startPos = len(text)
	}
	if endPos > len(text) {
		endPos = len(text)
	}
	if startPos > endPos {
		startPos = endPos
	}

	return CompletionResult{
		NewText:      text[:startPos] + suggestion + text[endPos:],
		NewCursorPos: startPos + len(suggestion),
	}
}
