package completion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionFunctionExecute(t *testing.T) {
	m, _ := newTestManager(t, t.TempDir())
	require.NoError(t, runScript(t, m, `
_list() { COMPREPLY=(alpha beta); }
_vars() { COMPREPLY=("$COMP_CWORD" "${COMP_WORDS[1]}" "$1" "$2" "$3" "$COMP_LINE" "$COMP_POINT"); }
_single() { COMPREPLY=single; }
_fails() { COMPREPLY=(kept); false; }
_nothing() { :; }
_global() { LEAKED=yes; COMPREPLY=(x); }
`))

	ctx := context.Background()

	tests := []struct {
		name  string
		fn    string
		words []string
		cword int
		want  []string
	}{
		{"array reply", "_list", []string{"foo", ""}, 1, []string{"alpha", "beta"}},
		{"completion variables", "_vars", []string{"git", "ch"}, 1, []string{"1", "ch", "git", "ch", "git", "git ch", "6"}},
		{"string reply", "_single", []string{"foo", ""}, 1, []string{"single"}},
		{"non-zero status keeps reply", "_fails", []string{"foo", ""}, 1, []string{"kept"}},
		{"no reply", "_nothing", []string{"foo", ""}, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCompletionFunction(tt.fn, m.Runner()).Execute(ctx, tt.words, tt.cword)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	t.Run("runs in a subshell", func(t *testing.T) {
		_, err := NewCompletionFunction("_global", m.Runner()).Execute(ctx, []string{"foo"}, 0)
		require.NoError(t, err)

		_, ok := m.Runner().Vars["LEAKED"]
		assert.False(t, ok)
	})

	t.Run("words needing quotes", func(t *testing.T) {
		got, err := NewCompletionFunction("_vars", m.Runner()).Execute(ctx, []string{"cat", "my file's"}, 1)
		require.NoError(t, err)
		require.Len(t, got, 7)
		assert.Equal(t, "my file's", got[1])
	})
}

func TestCompletionFunctionWithoutRunner(t *testing.T) {
	_, err := NewCompletionFunction("_list", nil).Execute(context.Background(), []string{"foo"}, 0)
	assert.Error(t, err)
}

func TestQuoteWord(t *testing.T) {
	assert.Equal(t, "''", quoteWord(""))
	assert.Equal(t, "plain", quoteWord("plain"))
	assert.Equal(t, "'my file.txt'", quoteWord("my file.txt"))
}
