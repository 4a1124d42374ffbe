package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinylittleshell/gshcomplete/internal/completion"
	"github.com/atinylittleshell/gshcomplete/internal/config"
	"github.com/atinylittleshell/gshcomplete/internal/core"
	"github.com/atinylittleshell/gshcomplete/internal/editor"
	"github.com/atinylittleshell/gshcomplete/internal/history"
	"github.com/atinylittleshell/gshcomplete/internal/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"go.uber.org/zap"
	"golang.org/x/term"
	"mvdan.cc/sh/v3/interp"
)

var BUILD_VERSION = "dev"

var line = flag.String("c", "", "print completions for a command line (cursor at the end)")
var configPath = flag.String("config", "", "path to completion.yaml (default ~/.gsh/completion.yaml)")
var historyFlag = flag.Bool("history", false, "list recently accepted completions")
var historyCommand = flag.String("history-command", "", "with -history, only list completions for this command")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `gshcomplete - bash-compatible tab completion for gsh

USAGE:
  gshcomplete [options]

MODES:
  gshcomplete                 Start an interactive line editor with tab completion
  gshcomplete -c "git ch"     Print the completions for a command line
  gshcomplete -history        List completions accepted in the editor

  Lines submitted in the editor run in the completion shell, so completion
  functions can be defined and registered with complete/compgen:

    _greet() { COMPREPLY=(hello howdy); }
    complete -F _greet greet

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	path := *configPath
	if path == "" {
		path = core.ConfigFile()
	}

	cfgResult, err := config.NewLoader(nil).LoadFromFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(fmt.Sprintf("failed to load %s: %v", path, err)))
		os.Exit(1)
	}
	cfg := cfgResult.Config
	for _, cfgErr := range cfgResult.Errors {
		fmt.Fprintln(os.Stderr, styles.ERROR(fmt.Sprintf("%s: %v", path, cfgErr)))
	}

	logger, err := initializeLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("-------- new gshcomplete session --------", zap.Any("args", os.Args))

	manager, err := initializeManager(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize completion", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}

	err = run(manager, cfg, logger)

	if exitStatus, ok := interp.IsExitStatus(err); ok {
		os.Exit(int(exitStatus))
	}

	if err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}
}

func run(manager *completion.Manager, cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	// gshcomplete -c "git ch"
	if *line != "" {
		for _, candidate := range manager.Provider().GetCompletions(*line, len(*line)) {
			fmt.Println(styles.CANDIDATE(candidate))
		}
		return nil
	}

	// gshcomplete -history
	if *historyFlag {
		acceptanceLog, err := history.NewAcceptanceLog(core.HistoryFile())
		if err != nil {
			return err
		}
		defer acceptanceLog.Close() //nolint:errcheck
		return printHistory(acceptanceLog, *historyCommand)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return manager.RunScript(ctx, os.Stdin, "stdin")
	}

	// Completions work without history; acceptances are just not recorded.
	acceptanceLog, err := history.NewAcceptanceLog(core.HistoryFile())
	if err != nil {
		logger.Warn("completion history unavailable", zap.Error(err))
	} else {
		defer acceptanceLog.Close() //nolint:errcheck
	}

	return runInteractive(ctx, manager, cfg, acceptanceLog, logger)
}

// printHistory lists the most recently accepted completions.
func printHistory(acceptanceLog *history.AcceptanceLog, command string) error {
	entries, err := acceptanceLog.Recent(command, 50)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fmt.Printf("%-12s %-30s %s\n",
			entry.Command,
			styles.CANDIDATE(entry.Candidate),
			styles.DIM(humanize.Time(entry.CreatedAt)),
		)
	}

	if command == "" {
		return nil
	}
	top, err := acceptanceLog.TopCandidates(command, 5)
	if err != nil {
		return err
	}
	for _, count := range top {
		fmt.Println(styles.DIM(fmt.Sprintf("%s accepted %s", count.Candidate, english.Plural(int(count.Count), "time", "times"))))
	}
	return nil
}

// runInteractive reads lines with the completing editor until interrupted
// and runs each submitted line in the completion shell.
func runInteractive(ctx context.Context, manager *completion.Manager, cfg *config.Config, acceptanceLog *history.AcceptanceLog, logger *zap.Logger) error {
	onAccept := func(a editor.Acceptance) {
		if acceptanceLog == nil {
			return
		}
		if _, err := acceptanceLog.Record(a.Command, a.Word, a.Candidate, manager.GetPwd()); err != nil {
			logger.Warn("failed to record accepted completion", zap.Error(err))
		}
	}

	for {
		model := editor.New(editor.Config{
			Prompt:    cfg.Prompt,
			Completer: manager.Provider(),
			OnAccept:  onAccept,
			Logger:    logger,
		})

		finalModel, err := tea.NewProgram(model).Run()
		if err != nil {
			return fmt.Errorf("editor failed: %w", err)
		}

		result := finalModel.(editor.Model).Result()
		if result.Type != editor.ResultSubmit {
			return nil
		}
		if strings.TrimSpace(result.Value) == "" {
			continue
		}

		if err := manager.RunScript(ctx, strings.NewReader(result.Value), "gshcomplete"); err != nil {
			if _, ok := interp.IsExitStatus(err); !ok {
				fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
			}
			logger.Debug("command failed", zap.String("line", result.Value), zap.Error(err))
		}
	}
}

func initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	logLevel := cfg.GetLogLevel()
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	// Logs only go to file to avoid interfering with the Bubble Tea UI.
	// Use `tail -f ~/.gsh/gshcomplete.log` to monitor logs in real-time.
	return loggerConfig.Build()
}

// initializeManager creates the completion manager and runs the configured
// completion scripts followed by the scripts in the completions directory.
func initializeManager(cfg *config.Config, logger *zap.Logger) (*completion.Manager, error) {
	manager, err := completion.NewManager(completion.ManagerOptions{
		Logger:         logger,
		SearchPaths:    cfg.SearchPaths,
		StaticCommands: cfg.Commands,
	})
	if err != nil {
		return nil, err
	}

	scripts := append([]string{}, cfg.Scripts...)
	for _, pattern := range []string{"*.sh", "*.bash"} {
		matches, _ := filepath.Glob(filepath.Join(core.CompletionsDir(), pattern))
		scripts = append(scripts, matches...)
	}

	for _, script := range scripts {
		if strings.HasPrefix(script, "~/") {
			script = filepath.Join(core.HomeDir(), script[2:])
		}
		if stat, err := os.Stat(script); err != nil || stat.Size() == 0 {
			continue
		}
		if err := manager.RunScriptFile(context.Background(), script); err != nil {
			fmt.Fprintln(os.Stderr, styles.ERROR(fmt.Sprintf("failed to load %s: %v", script, err)))
			logger.Warn("failed to load completion script", zap.String("script", script), zap.Error(err))
		}
	}

	return manager, nil
}
