package completion

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestManager creates a Manager rooted at dir whose builtin output is
// captured in the returned buffer.
func newTestManager(t *testing.T, dir string, opts ...func(*ManagerOptions)) (*Manager, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	options := ManagerOptions{
		Env:    []string{"PATH=", "HOME=" + dir},
		Dir:    dir,
		Stdout: out,
		Stderr: io.Discard,
	}
	for _, opt := range opts {
		opt(&options)
	}
	m, err := NewManager(options)
	require.NoError(t, err)
	return m, out
}

func runScript(t *testing.T, m *Manager, script string) error {
	t.Helper()
	return m.RunScript(context.Background(), strings.NewReader(script), "test")
}

func TestNewCompleteCommandHandler(t *testing.T) {
	registry := NewSpecRegistry()

	t.Run("completion specifications", func(t *testing.T) {
		handler := NewCompleteCommandHandler(registry)

		// Create a mock next handler that should not be called for "complete" commands
		nextCalled := false
		next := func(ctx context.Context, args []string) error {
			nextCalled = true
			return nil
		}

		wrappedHandler := handler(next)

		err := wrappedHandler(context.Background(), []string{"complete", "-W", "add commit push", "git"})
		require.NoError(t, err)
		assert.False(t, nextCalled, "next handler should not be called for complete command")

		spec, ok := registry.GetSpec("git")
		assert.True(t, ok)
		words, ok := spec.Wordlist()
		assert.True(t, ok)
		assert.Equal(t, "add commit push", words)

		err = wrappedHandler(context.Background(), []string{"complete", "-F", "_docker_completion", "docker"})
		require.NoError(t, err)

		spec, ok = registry.GetSpec("docker")
		assert.True(t, ok)
		name, ok := spec.FuncName()
		assert.True(t, ok)
		assert.Equal(t, "_docker_completion", name)

		err = wrappedHandler(context.Background(), []string{"complete", "-r", "git"})
		require.NoError(t, err)

		_, ok = registry.GetSpec("git")
		assert.False(t, ok, "git spec should be removed")
	})

	t.Run("options and several commands", func(t *testing.T) {
		handler := NewCompleteCommandHandler(registry)(func(ctx context.Context, args []string) error { return nil })

		err := handler(context.Background(), []string{"complete", "-o", "filenames", "-o", "dirnames", "-F", "_f", "--", "cmd1", "-cmd2"})
		require.NoError(t, err)

		for _, command := range []string{"cmd1", "-cmd2"} {
			spec, ok := registry.GetSpec(command)
			require.True(t, ok, command)
			assert.True(t, spec.FilenamesIfEmpty())
			assert.True(t, spec.DirnamesIfEmpty())
		}

		err = handler(context.Background(), []string{"complete", "-o", "dirnames", "cdx"})
		require.NoError(t, err)
		spec, ok := registry.GetSpec("cdx")
		require.True(t, ok)
		assert.True(t, spec.DirnamesIfEmpty())
		assert.False(t, spec.FilenamesIfEmpty())
	})

	t.Run("error cases", func(t *testing.T) {
		handler := NewCompleteCommandHandler(registry)
		next := func(ctx context.Context, args []string) error {
			return nil
		}
		wrappedHandler := handler(next)

		tests := []struct {
			name string
			args []string
		}{
			{"missing word list", []string{"complete", "-W"}},
			{"missing function name", []string{"complete", "-F"}},
			{"missing option name", []string{"complete", "-o"}},
			{"invalid option name", []string{"complete", "-o", "nospace", "git"}},
			{"unknown option", []string{"complete", "-X", "test"}},
			{"no command specified", []string{"complete", "-W", "words"}},
			{"no completion source", []string{"complete", "mycommand"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Error(t, wrappedHandler(context.Background(), tt.args))
			})
		}

		_, ok := registry.GetSpec("mycommand")
		assert.False(t, ok)
	})

	t.Run("pass through non-complete commands", func(t *testing.T) {
		handler := NewCompleteCommandHandler(registry)

		nextCalled := false
		next := func(ctx context.Context, args []string) error {
			nextCalled = true
			return nil
		}

		wrappedHandler := handler(next)

		err := wrappedHandler(context.Background(), []string{"ls", "-la"})
		require.NoError(t, err)
		assert.True(t, nextCalled, "next handler should be called for non-complete commands")
	})
}

func TestCompleteBuiltin(t *testing.T) {
	m, out := newTestManager(t, t.TempDir())

	require.NoError(t, runScript(t, m, `
complete -W "add commit" git
complete -F _docker docker
complete -o filenames -F _cat cat
`))

	spec, ok := m.SpecRegistry().GetSpec("git")
	require.True(t, ok)
	words, _ := spec.Wordlist()
	assert.Equal(t, "add commit", words)

	t.Run("print all specs", func(t *testing.T) {
		out.Reset()
		require.NoError(t, runScript(t, m, "complete -p"))
		assert.Equal(t,
			"complete -o filenames -F _cat cat\n"+
				"complete -F _docker docker\n"+
				"complete -W 'add commit' git\n",
			out.String())
	})

	t.Run("no arguments prints all specs", func(t *testing.T) {
		out.Reset()
		require.NoError(t, runScript(t, m, "complete"))
		assert.Equal(t, 3, strings.Count(out.String(), "\n"))
	})

	t.Run("print selected specs", func(t *testing.T) {
		out.Reset()
		require.NoError(t, runScript(t, m, "complete -p git unknown"))
		assert.Equal(t, "complete -W 'add commit' git\n", out.String())
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, runScript(t, m, "complete -r git docker"))
		_, ok := m.SpecRegistry().GetSpec("git")
		assert.False(t, ok)
		assert.Len(t, m.SpecRegistry().ListSpecs(), 1)
	})

	t.Run("usage error fails the script", func(t *testing.T) {
		assert.Error(t, runScript(t, m, "complete -X git"))
	})
}
