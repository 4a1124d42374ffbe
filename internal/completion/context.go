package completion

import (
	"strings"
	"unicode"
)

// InputContext describes the word under the cursor in the edit buffer.
// Offsets and lengths are in bytes.
type InputContext interface {
	// CurrentWordOffset returns the byte offset of the current word.
	CurrentWordOffset() int
	// CurrentWordLen returns the byte length of the current word.
	CurrentWordLen() int
	// CurrentWord returns the unquoted text of the current word, or false
	// if the cursor is not on a word.
	CurrentWord() (string, bool)
}

// Word is a single shell word in the edit buffer.
type Word struct {
	// Text is the word with quotes and escapes removed.
	Text string
	// Offset is the byte offset of the raw word in the line.
	Offset int
	// Len is the byte length of the raw word in the line.
	Len int
}

// End returns the byte offset just past the raw word.
func (w Word) End() int {
	return w.Offset + w.Len
}

// LineContext is an InputContext built by splitting an edit buffer into
// shell words. Quotes and backslash escapes are honored; an unterminated
// quote extends to the end of the line.
type LineContext struct {
	line    string
	pos     int
	words   []Word
	current int // index into words, -1 if the cursor is not on a word
}

var _ InputContext = (*LineContext)(nil)

// NewLineContext parses line with the cursor at byte position pos.
func NewLineContext(line string, pos int) *LineContext {
	if pos < 0 {
		pos = 0
	}
	if pos > len(line) {
		pos = len(line)
	}

	ctx := &LineContext{
		line:    line,
		pos:     pos,
		words:   SplitWords(line),
		current: -1,
	}
	for i, w := range ctx.words {
		if w.Offset <= pos && pos <= w.End() {
			ctx.current = i
			break
		}
	}
	return ctx
}

// Line returns the full edit buffer.
func (c *LineContext) Line() string {
	return c.line
}

// Pos returns the cursor byte position.
func (c *LineContext) Pos() int {
	return c.pos
}

// Words returns all words in the line.
func (c *LineContext) Words() []Word {
	return c.words
}

// WordIndex returns the index of the word being completed. When the cursor
// is between words this is the index a new word would take.
func (c *LineContext) WordIndex() int {
	if c.current >= 0 {
		return c.current
	}
	index := 0
	for _, w := range c.words {
		if w.End() < c.pos {
			index++
		}
	}
	return index
}

// IsCommandPosition returns true if the word being completed is the command name.
func (c *LineContext) IsCommandPosition() bool {
	return c.WordIndex() == 0
}

// Command returns the first word of the line, if any.
func (c *LineContext) Command() (string, bool) {
	if len(c.words) == 0 {
		return "", false
	}
	return c.words[0].Text, true
}

// CurrentWordOffset implements InputContext.
func (c *LineContext) CurrentWordOffset() int {
	if c.current < 0 {
		return c.pos
	}
	return c.words[c.current].Offset
}

// CurrentWordLen implements InputContext.
func (c *LineContext) CurrentWordLen() int {
	if c.current < 0 {
		return 0
	}
	return c.words[c.current].Len
}

// CurrentWord implements InputContext.
func (c *LineContext) CurrentWord() (string, bool) {
	if c.current < 0 {
		return "", false
	}
	return c.words[c.current].Text, true
}

// CompletionWords returns the words of the line up to and including the
// word being completed, which is empty when the cursor is between words.
func (c *LineContext) CompletionWords() []string {
	index := c.WordIndex()
	words := make([]string, 0, index+1)
	for i := 0; i < index && i < len(c.words); i++ {
		words = append(words, c.words[i].Text)
	}
	if current, ok := c.CurrentWord(); ok {
		words = append(words, current)
	} else {
		words = append(words, "")
	}
	return words
}

// SplitWords splits a line into shell words, recording the raw byte span of
// each word. It never fails: incomplete quoting is treated as running to the
// end of the line.
func SplitWords(line string) []Word {
	var (
		words   []Word
		text    strings.Builder
		start   = -1
		quote   rune
		escaped bool
	)

	flush := func(end int) {
		if start >= 0 {
			words = append(words, Word{Text: text.String(), Offset: start, Len: end - start})
		}
		text.Reset()
		start = -1
	}

	for i, r := range line {
		switch {
		case escaped:
			text.WriteRune(r)
			escaped = false
		case quote != 0:
			if r == quote {
				quote = 0
			} else if r == '\\' && quote == '"' {
				escaped = true
			} else {
				text.WriteRune(r)
			}
		case unicode.IsSpace(r):
			flush(i)
		default:
			if start < 0 {
				start = i
			}
			switch r {
			case '\\':
				escaped = true
			case '\'', '"':
				quote = r
			default:
				text.WriteRune(r)
			}
		}
	}
	flush(len(line))

	return words
}
