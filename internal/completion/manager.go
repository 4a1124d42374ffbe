package completion

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atinylittleshell/gshcomplete/internal/completion/completers"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
	// Env is the initial shell environment. Defaults to os.Environ().
	Env []string
	// Dir is the initial working directory. Defaults to the process directory.
	Dir string
	// SearchPaths are scanned for executables before $PATH.
	SearchPaths []string
	// StaticCommands registers a word list spec per command.
	StaticCommands map[string][]string
	// Stdout and Stderr receive output of `complete -p` and `compgen`.
	Stdout io.Writer
	Stderr io.Writer
}

// Manager owns a completion session: the spec registry, the engine, the
// dispatching provider, and the shell runner that hosts the `complete` and
// `compgen` builtins and runs completion functions.
type Manager struct {
	specRegistry *SpecRegistry
	engine       *Engine
	provider     *Provider
	runner       *interp.Runner
	logger       *zap.Logger
}

var _ RunnerProvider = (*Manager)(nil)

// NewManager creates a Manager with the builtins installed in a new runner.
func NewManager(opts ManagerOptions) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	env := opts.Env
	if env == nil {
		env = os.Environ()
	}
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	m := &Manager{
		specRegistry: NewSpecRegistry(),
		logger:       logger,
	}

	lookup := completers.NewCommandCompleter(m.Runner, m.GetPwd, opts.SearchPaths, logger)
	m.engine = NewEngine(Options{
		Lookup: lookup,
		Pwd:    m.GetPwd,
		Logger: logger,
	})
	m.provider = NewProvider(m.engine, m.specRegistry, m)

	runnerOpts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, stdout, stderr),
		interp.ExecHandlers(
			NewCompleteCommandHandler(m.specRegistry),
			NewCompgenCommandHandler(m.engine, m),
		),
	}
	if opts.Dir != "" {
		runnerOpts = append(runnerOpts, interp.Dir(opts.Dir))
	}

	runner, err := interp.New(runnerOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create shell runner: %w", err)
	}
	m.runner = runner

	for command, words := range opts.StaticCommands {
		spec, err := NewCompSpecBuilder().Wordlist(strings.Join(words, " ")).Build()
		if err != nil {
			return nil, err
		}
		m.specRegistry.AddSpec(command, spec)
	}

	return m, nil
}

// Runner implements RunnerProvider.
func (m *Manager) Runner() *interp.Runner {
	return m.runner
}

// GetPwd implements RunnerProvider.
func (m *Manager) GetPwd() string {
	if m.runner != nil && m.runner.Dir != "" {
		return m.runner.Dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Engine returns the candidate engine.
func (m *Manager) Engine() *Engine {
	return m.engine
}

// Provider returns the dispatching completion provider.
func (m *Manager) Provider() *Provider {
	return m.provider
}

// SpecRegistry returns the registry of `complete` specs.
func (m *Manager) SpecRegistry() *SpecRegistry {
	return m.specRegistry
}

// RunScript runs a shell script in the session runner, for example a file
// that defines completion functions and registers them with `complete`.
func (m *Manager) RunScript(ctx context.Context, reader io.Reader, name string) error {
	file, err := syntax.NewParser().Parse(reader, name)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := m.runner.Run(ctx, file); err != nil {
		return fmt.Errorf("failed to run %s: %w", name, err)
	}
	return nil
}

// RunScriptFile runs the shell script at path in the session runner.
func (m *Manager) RunScriptFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.RunScript(ctx, f, path)
}
