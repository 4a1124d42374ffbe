// Package editor is a minimal Bubble Tea line editor that drives the
// completion engine: Tab starts a completion session, the arrow keys move
// the selection and Enter splices the selected candidate into the line.
package editor

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/atinylittleshell/gshcomplete/internal/completion"
	"github.com/atinylittleshell/gshcomplete/internal/render"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Completer starts a completion session for a line and cursor position.
type Completer interface {
	Complete(ctx context.Context, line string, pos int) (*completion.LineContext, *completion.Selector)
}

// ResultType indicates the type of result from the editor.
type ResultType int

const (
	// ResultNone indicates no result yet (still editing).
	ResultNone ResultType = iota
	// ResultSubmit indicates the user submitted the line (Enter).
	ResultSubmit
	// ResultInterrupt indicates the user interrupted (Ctrl+C, Ctrl+D).
	ResultInterrupt
)

// Result contains the outcome of an editing session.
type Result struct {
	Type  ResultType
	Value string
}

// Acceptance describes a candidate spliced into the line.
type Acceptance struct {
	// Command is the first word of the line, if any.
	Command string
	// Word is the text the candidate replaced.
	Word      string
	Candidate string
}

// session is an active completion session.
type session struct {
	ctx      *completion.LineContext
	selector *completion.Selector
}

// Model is the Bubble Tea model of the editor.
type Model struct {
	text   string
	cursor int // byte offset into text

	prompt    string
	keymap    KeyMap
	completer Completer
	session   *session

	renderer *render.Renderer
	result   Result
	onAccept func(Acceptance)
	logger   *zap.Logger
}

// Config holds configuration for creating a new Model.
type Config struct {
	Prompt    string
	Completer Completer
	// KeyMap provides key bindings. If nil, DefaultKeyMap is used.
	KeyMap *KeyMap
	Width  int
	// OnAccept is called whenever a candidate is spliced into the line.
	OnAccept func(Acceptance)
	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// New creates a new editor Model.
func New(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	keymap := DefaultKeyMap()
	if cfg.KeyMap != nil {
		keymap = *cfg.KeyMap
	}
	return Model{
		prompt:    cfg.Prompt,
		keymap:    keymap,
		completer: cfg.Completer,
		renderer:  render.NewRenderer(cfg.Width),
		onAccept:  cfg.OnAccept,
		logger:    logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.renderer.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case pasteMsg:
		m.session = nil
		m.insert(sanitizePaste(string(msg)))
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Interrupt):
		m.result = Result{Type: ResultInterrupt}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Complete):
		if m.session == nil {
			m.startCompletion()
		} else {
			m.session.selector.MoveCursor(1)
		}
		return m, nil

	case key.Matches(msg, m.keymap.CompleteBackward), key.Matches(msg, m.keymap.Up):
		if m.session != nil {
			m.session.selector.MoveCursor(-1)
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.session != nil {
			m.session.selector.MoveCursor(1)
		}
		return m, nil

	case key.Matches(msg, m.keymap.PageUp):
		if m.session != nil {
			m.session.selector.MoveCursor(-m.session.selector.DisplayLines())
		}
		return m, nil

	case key.Matches(msg, m.keymap.PageDown):
		if m.session != nil {
			m.session.selector.MoveCursor(m.session.selector.DisplayLines())
		}
		return m, nil

	case key.Matches(msg, m.keymap.Accept):
		if m.session != nil {
			m.acceptCompletion()
			return m, nil
		}
		m.result = Result{Type: ResultSubmit, Value: m.text}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Cancel):
		m.session = nil
		return m, nil

	case key.Matches(msg, m.keymap.Paste):
		return m, Paste
	}

	// Any editing ends the completion session.
	m.session = nil

	switch {
	case key.Matches(msg, m.keymap.Backspace):
		if m.cursor > 0 {
			_, size := utf8.DecodeLastRuneInString(m.text[:m.cursor])
			m.text = m.text[:m.cursor-size] + m.text[m.cursor:]
			m.cursor -= size
		}
	case key.Matches(msg, m.keymap.Left):
		if m.cursor > 0 {
			_, size := utf8.DecodeLastRuneInString(m.text[:m.cursor])
			m.cursor -= size
		}
	case key.Matches(msg, m.keymap.Right):
		if m.cursor < len(m.text) {
			_, size := utf8.DecodeRuneInString(m.text[m.cursor:])
			m.cursor += size
		}
	case key.Matches(msg, m.keymap.LineStart):
		m.cursor = 0
	case key.Matches(msg, m.keymap.LineEnd):
		m.cursor = len(m.text)
	case msg.Type == tea.KeySpace:
		m.insert(" ")
	case msg.Type == tea.KeyRunes:
		m.insert(string(msg.Runes))
	}

	return m, nil
}

func (m *Model) insert(s string) {
	m.text = m.text[:m.cursor] + s + m.text[m.cursor:]
	m.cursor += len(s)
}

// startCompletion asks the completer for candidates. A single candidate is
// applied right away.
func (m *Model) startCompletion() {
	if m.completer == nil {
		return
	}

	ctx, selector := m.completer.Complete(context.Background(), m.text, m.cursor)
	switch selector.Len() {
	case 0:
		return
	case 1:
		m.apply(ctx, selector)
	default:
		m.session = &session{ctx: ctx, selector: selector}
	}
}

func (m *Model) acceptCompletion() {
	m.apply(m.session.ctx, m.session.selector)
	m.logger.Debug("completion accepted", zap.String("text", m.text), zap.Int("cursor", m.cursor))
	m.session = nil
}

// apply splices the selected candidate into the line and reports it.
func (m *Model) apply(ctx *completion.LineContext, selector *completion.Selector) {
	candidate, ok := selector.Selected()
	if !ok {
		return
	}
	m.text, m.cursor = selector.SelectAndUpdateInputAndCursor(ctx, m.text, m.cursor)

	if m.onAccept != nil {
		command, _ := ctx.Command()
		word, _ := ctx.CurrentWord()
		m.onAccept(Acceptance{Command: command, Word: word, Candidate: candidate.String()})
	}
}

// pasteMsg carries clipboard content.
type pasteMsg string

// Paste reads the clipboard.
func Paste() tea.Msg {
	str, err := clipboard.ReadAll()
	if err != nil {
		return nil
	}
	return pasteMsg(str)
}

// sanitizePaste keeps pasted text on a single line.
func sanitizePaste(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, s)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.result.Type != ResultNone {
		return render.PromptStyle.Render(m.prompt) + m.text + "\n"
	}

	view := m.renderer.RenderInputLine(m.prompt, m.text, m.cursor)
	if m.session != nil {
		if panel := m.renderer.RenderSelector(m.session.selector); panel != "" {
			view += "\n" + panel
		}
	}
	return view
}

// Result returns the current result. Check Type != ResultNone to see if complete.
func (m Model) Result() Result {
	return m.result
}

// Value returns the current line.
func (m Model) Value() string {
	return m.text
}

// Cursor returns the cursor byte position.
func (m Model) Cursor() int {
	return m.cursor
}

// Selector returns the selector of the active completion session, or nil.
func (m Model) Selector() *completion.Selector {
	if m.session == nil {
		return nil
	}
	return m.session.selector
}
