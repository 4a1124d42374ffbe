package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir        string
	DataDir        string
	LogFile        string
	ConfigFile     string
	CompletionsDir string
	HistoryFile    string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		dataDir := filepath.Join(homeDir, ".gsh")
		defaultPaths = &Paths{
			HomeDir:        homeDir,
			DataDir:        dataDir,
			LogFile:        filepath.Join(dataDir, "gshcomplete.log"),
			ConfigFile:     filepath.Join(dataDir, "completion.yaml"),
			CompletionsDir: filepath.Join(dataDir, "completions"),
			HistoryFile:    filepath.Join(dataDir, "completion_history.db"),
		}

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

// ConfigFile is the YAML file holding completion settings.
func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

// CompletionsDir holds shell scripts that define completion functions.
func CompletionsDir() string {
	ensureDefaultPaths()
	return defaultPaths.CompletionsDir
}

// HistoryFile is the SQLite database of accepted completions.
func HistoryFile() string {
	ensureDefaultPaths()
	return defaultPaths.HistoryFile
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
