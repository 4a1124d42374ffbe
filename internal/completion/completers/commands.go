// Package completers provides the candidate sources the completion engine
// consults for command names.
package completers

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/interp"
)

// osReadDir is a variable that can be overridden for testing.
var osReadDir = os.ReadDir

// CommandCompleter looks up shell aliases and executables for command-name
// completion. Directories that cannot be read are skipped.
type CommandCompleter struct {
	runner      func() *interp.Runner
	pwdGetter   func() string
	searchPaths []string
	logger      *zap.Logger
}

// NewCommandCompleter creates a new CommandCompleter. The runner getter may
// return nil, in which case aliases are not completed. searchPaths are
// scanned before the directories in $PATH.
func NewCommandCompleter(runner func() *interp.Runner, pwdGetter func() string, searchPaths []string, logger *zap.Logger) *CommandCompleter {
	if runner == nil {
		runner = func() *interp.Runner { return nil }
	}
	if pwdGetter == nil {
		pwdGetter = func() string {
			wd, _ := os.Getwd()
			return wd
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandCompleter{
		runner:      runner,
		pwdGetter:   pwdGetter,
		searchPaths: searchPaths,
		logger:      logger,
	}
}

// Complete returns the commands matching prefix. Path-like prefixes are
// completed with executables in that directory, anything else with aliases
// and executables on the search path.
func (c *CommandCompleter) Complete(prefix string) []string {
	if c.IsPathBasedCommand(prefix) {
		return c.GetExecutableCompletions(prefix)
	}
	return c.GetAvailableCommands(prefix)
}

// IsPathBasedCommand determines if a command looks like a path rather than a simple command name.
func (c *CommandCompleter) IsPathBasedCommand(command string) bool {
	return strings.HasPrefix(command, "~/") || strings.Contains(command, "/")
}

// GetExecutableCompletions returns executable files that match the given path prefix.
func (c *CommandCompleter) GetExecutableCompletions(pathPrefix string) []string {
	var searchDir, filePrefix string

	if strings.HasSuffix(pathPrefix, "/") {
		searchDir = pathPrefix
		filePrefix = ""
	} else {
		searchDir = filepath.Dir(pathPrefix)
		filePrefix = filepath.Base(pathPrefix)

		if searchDir == "." && !strings.Contains(pathPrefix, "/") {
			return []string{}
		}
	}

	var resolvedDir string
	if strings.HasPrefix(searchDir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return []string{}
		}
		resolvedDir = filepath.Join(homeDir, searchDir[2:])
	} else if filepath.IsAbs(searchDir) {
		resolvedDir = searchDir
	} else {
		resolvedDir = filepath.Join(c.pwdGetter(), searchDir)
	}

	entries, err := osReadDir(resolvedDir)
	if err != nil {
		c.logger.Debug("command completion: failed to read directory", zap.String("dir", resolvedDir), zap.Error(err))
		return []string{}
	}

	completions := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), filePrefix) || !isExecutable(entry) {
			continue
		}

		// Keep the path as the user typed it, e.g. "./" stays in front.
		if strings.HasSuffix(pathPrefix, "/") {
			completions = append(completions, pathPrefix+entry.Name())
		} else {
			completions = append(completions, pathPrefix[:len(pathPrefix)-len(filePrefix)]+entry.Name())
		}
	}

	sort.Strings(completions)
	return completions
}

// GetAvailableCommands returns aliases and executables on the search path
// that match the given prefix, sorted and without duplicates.
func (c *CommandCompleter) GetAvailableCommands(prefix string) []string {
	commands := c.GetAliasCompletions(prefix)

	for _, dir := range c.searchDirs() {
		entries, err := osReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) || !isExecutable(entry) {
				continue
			}
			commands = append(commands, entry.Name())
		}
	}

	completions := lo.Uniq(commands)
	sort.Strings(completions)
	return completions
}

// searchDirs returns the configured search paths followed by $PATH.
func (c *CommandCompleter) searchDirs() []string {
	dirs := append([]string{}, c.searchPaths...)
	if pathEnv := os.Getenv("PATH"); pathEnv != "" {
		dirs = append(dirs, filepath.SplitList(pathEnv)...)
	}
	return lo.Uniq(lo.Compact(dirs))
}

// GetAliasCompletions returns shell aliases that match the given prefix.
func (c *CommandCompleter) GetAliasCompletions(prefix string) []string {
	runner := c.runner()
	if runner == nil {
		return []string{}
	}

	// interp.Runner keeps aliases in an unexported map keyed by name.
	runnerValue := reflect.ValueOf(runner).Elem()
	aliasField := runnerValue.FieldByName("alias")

	if !aliasField.IsValid() || aliasField.Kind() != reflect.Map || aliasField.IsNil() {
		return []string{}
	}

	completions := make([]string, 0)
	for _, key := range aliasField.MapKeys() {
		aliasName := key.String()
		if strings.HasPrefix(aliasName, prefix) {
			completions = append(completions, aliasName)
		}
	}

	sort.Strings(completions)
	return completions
}

// isExecutable reports whether any execute bit is set on the entry.
func isExecutable(entry os.DirEntry) bool {
	info, err := entry.Info()
	if err != nil {
		return false
	}
	return info.Mode()&0111 != 0
}
