package completers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// setupBinDir creates a directory with executables, a plain file and a
// subdirectory.
func setupBinDir(t *testing.T) string {
	t.Helper()
	return setupBinDirIn(t, t.TempDir())
}

func setupBinDirIn(t *testing.T, dir string) string {
	t.Helper()
	for name, mode := range map[string]os.FileMode{
		"mytool":  0755,
		"myother": 0700,
		"mydata":  0644,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), mode))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "mydir"), 0755))
	return dir
}

func TestCommandCompleterAvailableCommands(t *testing.T) {
	t.Setenv("PATH", "")
	bin := setupBinDir(t)
	c := NewCommandCompleter(nil, nil, []string{bin}, nil)

	assert.Equal(t, []string{"myother", "mytool"}, c.Complete("my"))
	assert.Equal(t, []string{"mytool"}, c.Complete("myt"))
	assert.Empty(t, c.Complete("zzz"))
}

func TestCommandCompleterUsesPath(t *testing.T) {
	bin := setupBinDir(t)
	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(other, "mytool"), []byte("x"), 0755))
	t.Setenv("PATH", strings.Join([]string{bin, other, ""}, string(os.PathListSeparator)))

	c := NewCommandCompleter(nil, nil, nil, nil)
	assert.Equal(t, []string{"myother", "mytool"}, c.Complete("my"), "duplicates across directories are removed")
}

func TestCommandCompleterPathBased(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "bin"), 0755))
	setupBinDirIn(t, filepath.Join(dir, "bin"))

	c := NewCommandCompleter(nil, func() string { return dir }, nil, nil)

	tests := []struct {
		prefix string
		want   []string
	}{
		{"./bin/my", []string{"./bin/myother", "./bin/mytool"}},
		{"bin/myt", []string{"bin/mytool"}},
		{"./bin/", []string{"./bin/myother", "./bin/mytool"}},
		{filepath.Join(dir, "bin") + "/myo", []string{filepath.Join(dir, "bin", "myother")}},
		{"./missing/", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Complete(tt.prefix))
		})
	}
}

func TestCommandCompleterIsPathBasedCommand(t *testing.T) {
	c := NewCommandCompleter(nil, nil, nil, nil)

	assert.True(t, c.IsPathBasedCommand("./run"))
	assert.True(t, c.IsPathBasedCommand("~/bin/run"))
	assert.True(t, c.IsPathBasedCommand("/usr/bin/env"))
	assert.False(t, c.IsPathBasedCommand("git"))
}

func TestCommandCompleterReadFailure(t *testing.T) {
	original := osReadDir
	osReadDir = func(string) ([]os.DirEntry, error) { return nil, os.ErrPermission }
	t.Cleanup(func() { osReadDir = original })

	c := NewCommandCompleter(nil, nil, []string{"/locked"}, nil)
	assert.Empty(t, c.Complete("my"))
	assert.Empty(t, c.Complete("/locked/my"))
}

func TestCommandCompleterAliases(t *testing.T) {
	t.Setenv("PATH", "")

	runner, err := interp.New()
	require.NoError(t, err)

	file, err := syntax.NewParser().Parse(strings.NewReader("alias gst='git status'\nalias gco='git checkout'\nalias ll='ls -l'"), "")
	require.NoError(t, err)
	require.NoError(t, runner.Run(context.Background(), file))

	c := NewCommandCompleter(func() *interp.Runner { return runner }, nil, nil, nil)
	assert.Equal(t, []string{"gco", "gst"}, c.Complete("g"))
	assert.Equal(t, []string{"gco", "gst"}, c.GetAliasCompletions("g"))

	noRunner := NewCommandCompleter(nil, nil, nil, nil)
	assert.Empty(t, noRunner.GetAliasCompletions("g"))
}
