package completion

import (
	"context"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// CompletionFunction represents a bash completion function registered with
// `complete -F`.
type CompletionFunction struct {
	Name   string
	Runner *interp.Runner
}

// NewCompletionFunction creates a new CompletionFunction.
func NewCompletionFunction(name string, runner *interp.Runner) *CompletionFunction {
	return &CompletionFunction{
		Name:   name,
		Runner: runner,
	}
}

// Execute runs the completion function in a subshell with the bash
// completion variables set for words, where cword is the index of the word
// being completed, and returns the contents of COMPREPLY.
func (f *CompletionFunction) Execute(ctx context.Context, words []string, cword int) ([]string, error) {
	if f.Runner == nil {
		return nil, fmt.Errorf("completion function %s: no shell runner", f.Name)
	}

	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = quoteWord(w)
	}
	line := strings.Join(words, " ")

	command, current, previous := "", "", ""
	if len(words) > 0 {
		command = words[0]
	}
	if cword >= 0 && cword < len(words) {
		current = words[cword]
	}
	if cword > 0 && cword-1 < len(words) {
		previous = words[cword-1]
	}

	script := fmt.Sprintf(`
COMP_LINE=%s
COMP_POINT=%d
COMP_WORDS=(%s)
COMP_CWORD=%d
COMPREPLY=()
%s %s %s %s
`,
		quoteWord(line),
		len(line),
		strings.Join(quoted, " "),
		cword,
		f.Name, quoteWord(command), quoteWord(current), quoteWord(previous),
	)

	file, err := syntax.NewParser().Parse(strings.NewReader(script), "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse completion script: %w", err)
	}

	subShell := f.Runner.Subshell()
	interp.StdIO(nil, io.Discard, io.Discard)(subShell) //nolint:errcheck

	// A non-zero status from the function is not a failure; COMPREPLY is
	// still read.
	if err := subShell.Run(ctx, file); err != nil {
		if _, ok := interp.IsExitStatus(err); !ok {
			return nil, fmt.Errorf("failed to execute completion function %s: %w", f.Name, err)
		}
	}

	compreply, ok := subShell.Vars["COMPREPLY"]
	if !ok {
		return []string{}, nil
	}

	switch compreply.Kind {
	case expand.Indexed:
		return compreply.List, nil
	case expand.String:
		if compreply.Str == "" {
			return []string{}, nil
		}
		return []string{compreply.Str}, nil
	default:
		return []string{}, nil
	}
}

// quoteWord quotes s for use as a single bash word.
func quoteWord(s string) string {
	if s == "" {
		return "''"
	}
	quoted, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return fmt.Sprintf("%q", s)
	}
	return quoted
}
