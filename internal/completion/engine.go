package completion

import (
	"os"

	"go.uber.org/zap"
)

// ExecutableLookup finds executables whose names start with a prefix.
type ExecutableLookup interface {
	Complete(prefix string) []string
}

// Options configures an Engine.
type Options struct {
	// Ranker orders candidates against a query. Defaults to FuzzyRanker.
	Ranker Ranker
	// Lookup resolves command names. Command completion yields nothing if nil.
	Lookup ExecutableLookup
	// Pwd returns the directory relative paths are resolved against.
	// Defaults to the process working directory.
	Pwd func() string
	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// Engine produces completion candidates. It carries the collaborators
// shared by the generator, path completion and command completion.
type Engine struct {
	ranker Ranker
	lookup ExecutableLookup
	pwd    func() string
	logger *zap.Logger
}

// NewEngine creates a new Engine.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		ranker: opts.Ranker,
		lookup: opts.Lookup,
		pwd:    opts.Pwd,
		logger: opts.Logger,
	}
	if e.ranker == nil {
		e.ranker = NewFuzzyRanker()
	}
	if e.pwd == nil {
		e.pwd = func() string {
			wd, err := os.Getwd()
			if err != nil {
				return "."
			}
			return wd
		}
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *zap.Logger {
	return e.logger
}

// NewCompGen starts a new single-use candidate generation.
func (e *Engine) NewCompGen() *CompGen {
	return &CompGen{engine: e}
}

// CmdCompletion completes the current word as a command name. The lookup
// result is returned as is.
func (e *Engine) CmdCompletion(ctx InputContext) CandidateList {
	if e.lookup == nil {
		return CandidateList{}
	}
	word, _ := ctx.CurrentWord()
	return NewCandidateList(e.lookup.Complete(word)...)
}
