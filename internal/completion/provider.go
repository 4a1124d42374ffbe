package completion

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/interp"
)

// RunnerProvider is an interface for getting the shell runner and current directory.
// This allows the completion provider to work with different executor implementations.
type RunnerProvider interface {
	// Runner returns the underlying mvdan/sh runner.
	Runner() *interp.Runner
	// GetPwd returns the current working directory.
	GetPwd() string
}

// shellSpecialChars are the characters that make a candidate need quoting
// before it is inserted into the command line.
const shellSpecialChars = " \t\n'\"\\$`&|;<>()*?[]#!{}"

// Provider routes completion requests: command names for the first word,
// the registered spec for the command otherwise, and paths as the fallback.
type Provider struct {
	engine         *Engine
	specRegistry   *SpecRegistry
	runnerProvider RunnerProvider
	logger         *zap.Logger
}

// NewProvider creates a new completion Provider. runnerProvider may be nil,
// in which case completion functions are not run.
func NewProvider(engine *Engine, specRegistry *SpecRegistry, runnerProvider RunnerProvider) *Provider {
	return &Provider{
		engine:         engine,
		specRegistry:   specRegistry,
		runnerProvider: runnerProvider,
		logger:         engine.logger,
	}
}

// Complete starts a completion session for line with the cursor at byte
// position pos. The returned context describes the word the selected
// candidate will replace.
func (p *Provider) Complete(ctx context.Context, line string, pos int) (*LineContext, *Selector) {
	lineCtx := NewLineContext(line, pos)
	candidates := p.candidates(ctx, lineCtx)

	p.logger.Debug("completion requested",
		zap.String("line", line),
		zap.Int("pos", pos),
		zap.Int("candidates", len(candidates)),
	)

	return lineCtx, NewSelectorWithLogger(candidates, p.logger)
}

// GetCompletions returns completion suggestions for the current input line.
func (p *Provider) GetCompletions(line string, pos int) []string {
	_, selector := p.Complete(context.Background(), line, pos)
	return selector.Entries().Strings()
}

func (p *Provider) candidates(ctx context.Context, lineCtx *LineContext) CandidateList {
	if lineCtx.IsCommandPosition() {
		return p.engine.CmdCompletion(lineCtx)
	}

	command, _ := lineCtx.Command()
	if spec, ok := p.specRegistry.GetSpec(command); ok {
		return p.specCompletion(ctx, spec, lineCtx)
	}

	return quoteCandidates(p.engine.PathCompletion(lineCtx))
}

// specCompletion runs a registered spec, falling back to directories and
// then files when it yields nothing and the spec asks for it.
func (p *Provider) specCompletion(ctx context.Context, spec CompSpec, lineCtx *LineContext) CandidateList {
	var entries CandidateList

	if words, ok := spec.Wordlist(); ok {
		list, err := p.engine.NewCompGen().Wordlist(words, defaultIFS).Generate()
		if err == nil {
			entries = append(entries, lo.Compact(list)...)
		}
	}

	if name, ok := spec.FuncName(); ok {
		entries = append(entries, p.runFunction(ctx, name, lineCtx)...)
	}

	word, _ := lineCtx.CurrentWord()
	results, err := p.engine.NewCompGen().Entries(entries).FilterBy(word).Generate()
	if err != nil {
		results = nil
	}

	if len(results) == 0 && spec.DirnamesIfEmpty() {
		results = quoteCandidates(p.engine.DirCompletion(lineCtx))
	}
	if len(results) == 0 && spec.FilenamesIfEmpty() {
		results = quoteCandidates(p.engine.PathCompletion(lineCtx))
	}
	if results == nil {
		results = CandidateList{}
	}
	return results
}

func (p *Provider) runFunction(ctx context.Context, name string, lineCtx *LineContext) CandidateList {
	if p.runnerProvider == nil || p.runnerProvider.Runner() == nil {
		p.logger.Warn("completion function skipped: no shell runner", zap.String("function", name))
		return nil
	}

	words := lineCtx.CompletionWords()
	results, err := NewCompletionFunction(name, p.runnerProvider.Runner()).Execute(ctx, words, len(words)-1)
	if err != nil {
		p.logger.Warn("completion function failed", zap.String("function", name), zap.Error(err))
		return nil
	}
	return NewCandidateList(results...)
}

// quoteCandidates quotes candidates containing shell special characters so
// they are inserted as a single word.
func quoteCandidates(candidates CandidateList) CandidateList {
	return lo.Map(candidates, func(c Candidate, _ int) Candidate {
		if !strings.ContainsAny(string(c), shellSpecialChars) {
			return c
		}
		return Candidate(quoteWord(string(c)))
	})
}
