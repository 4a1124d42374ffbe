package completion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupProvider creates a manager in a directory with a few files and a
// separate directory of executables.
func setupProvider(t *testing.T) (*Manager, string) {
	t.Helper()
	t.Setenv("PATH", "")

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "my file.txt"), []byte("x"), 0644))

	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "gsh-tool"), []byte("#!/bin/sh\n"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "gsh-readme"), []byte("x"), 0644))

	m, _ := newTestManager(t, dir, func(o *ManagerOptions) {
		o.SearchPaths = []string{bin}
		o.StaticCommands = map[string][]string{"make": {"build", "test"}}
	})

	require.NoError(t, runScript(t, m, `
complete -W "checkout commit" git
_g() { COMPREPLY=(alpha beta); }
complete -F _g g
_words() { COMPREPLY=("${#COMP_WORDS[@]}:$COMP_CWORD:$2"); }
complete -F _words w
complete -o dirnames -W "zzz" cdx
complete -o filenames -W "" catx
complete -o filenames -o dirnames -W "" both
`))

	return m, dir
}

func TestProviderGetCompletions(t *testing.T) {
	m, _ := setupProvider(t)
	p := m.Provider()

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"command name", "gsh", []string{"gsh-tool"}},
		{"all commands on empty line", "", []string{"gsh-tool"}},
		{"path argument", "cat no", []string{"notes.md"}},
		{"path needing quotes", "cat my", []string{"'my file.txt'"}},
		{"no path match", "cat zzz", []string{}},
		{"word list spec", "git ch", []string{"checkout"}},
		{"static command from config", "make te", []string{"test"}},
		{"function spec", "g al", []string{"alpha"}},
		{"dirnames fallback", "cdx d", []string{"docs"}},
		{"filenames fallback", "catx no", []string{"notes.md"}},
		{"dirnames before filenames", "both no", []string{"notes.md"}},
		{"dirnames used first", "both do", []string{"docs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.GetCompletions(tt.line, len(tt.line)))
		})
	}
}

func TestProviderPassesWordsToFunctions(t *testing.T) {
	m, _ := setupProvider(t)

	got := m.Provider().GetCompletions("w one tw", len("w one tw"))
	assert.Equal(t, []string{"3:2:tw"}, got)

	// Words after the cursor are not passed.
	got = m.Provider().GetCompletions("w one two three", len("w one"))
	assert.Equal(t, []string{"2:1:one"}, got)
}

func TestProviderCompleteSession(t *testing.T) {
	m, _ := setupProvider(t)

	line := "git ch --force"
	ctx, selector := m.Provider().Complete(context.Background(), line, len("git ch"))
	require.Equal(t, 1, selector.Len())

	input, cursor := selector.SelectAndUpdateInputAndCursor(ctx, line, len("git ch"))
	assert.Equal(t, "git checkout --force", input)
	assert.Equal(t, len("git checkout"), cursor)
}

func TestProviderWithoutRunnerSkipsFunctions(t *testing.T) {
	registry := NewSpecRegistry()
	spec, err := NewCompSpecBuilder().FuncName("_g").Wordlist("alpha").Build()
	require.NoError(t, err)
	registry.AddSpec("g", spec)

	p := NewProvider(newTestEngine(t, t.TempDir(), nil), registry, nil)
	assert.Equal(t, []string{"alpha"}, p.GetCompletions("g a", 3))
}

func TestManagerGetPwd(t *testing.T) {
	dir := t.TempDir()
	m, _ := newTestManager(t, dir)
	assert.Equal(t, dir, m.GetPwd())

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, runScript(t, m, "cd sub"))
	assert.Equal(t, sub, m.GetPwd())
}

func TestManagerRunScriptFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "git.bash")
	require.NoError(t, os.WriteFile(script, []byte("complete -W 'add commit' git\n"), 0644))

	m, _ := newTestManager(t, dir)
	require.NoError(t, m.RunScriptFile(context.Background(), script))

	_, ok := m.SpecRegistry().GetSpec("git")
	assert.True(t, ok)

	assert.Error(t, m.RunScriptFile(context.Background(), filepath.Join(dir, "missing.bash")))
	assert.Error(t, runScript(t, m, "if then fi ("))
}
