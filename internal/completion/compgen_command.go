package completion

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"mvdan.cc/sh/v3/interp"
)

const defaultIFS = " \t\n"

// NewCompgenCommandHandler creates a new ExecHandler for the compgen command.
// Function completions (-F) run in a subshell of the runner returned by runners.
func NewCompgenCommandHandler(engine *Engine, runners RunnerProvider) func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if len(args) == 0 || args[0] != "compgen" {
				return next(ctx, args)
			}

			return handleCompgenCommand(ctx, engine, runners, args[1:])
		}
	}
}

func handleCompgenCommand(ctx context.Context, engine *Engine, runners RunnerProvider, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("compgen: no options specified")
	}

	hc := interp.HandlerCtx(ctx)
	gen := engine.NewCompGen()

	var (
		wordList     string
		hasWordList  bool
		functionName string
		word         string
		hasWord      bool
	)

	setWord := func(arg string) error {
		if hasWord {
			return fmt.Errorf("compgen: too many arguments")
		}
		word, hasWord = arg, true
		return nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-W":
			if i+1 >= len(args) {
				return fmt.Errorf("compgen: option -W requires a word list")
			}
			i++
			wordList, hasWordList = args[i], true
		case "-F":
			if i+1 >= len(args) {
				return fmt.Errorf("compgen: option -F requires a function name")
			}
			i++
			functionName = args[i]
		case "-A":
			if i+1 >= len(args) {
				return fmt.Errorf("compgen: option -A requires an action")
			}
			i++
			switch args[i] {
			case "command":
				gen.IncludeCommands(true)
			case "file":
				gen.IncludeFiles(true)
			case "directory":
				gen.IncludeDirs(true)
			default:
				return fmt.Errorf("compgen: %s: invalid action name", args[i])
			}
		case "-c":
			gen.IncludeCommands(true)
		case "-f":
			gen.IncludeFiles(true)
		case "-d":
			gen.IncludeDirs(true)
		case "--":
			for _, rest := range args[i+1:] {
				if err := setWord(rest); err != nil {
					return err
				}
			}
			i = len(args)
		default:
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("compgen: unknown option: %s", arg)
			}
			if err := setWord(arg); err != nil {
				return err
			}
		}
	}

	var entries CandidateList
	if hasWordList {
		ifs := defaultIFS
		if v := hc.Env.Get("IFS").String(); v != "" {
			ifs = v
		}
		words, err := engine.NewCompGen().Wordlist(wordList, ifs).Generate()
		if err != nil {
			return fmt.Errorf("compgen: %w", err)
		}
		entries = append(entries, words...)
	}

	if functionName != "" {
		if runners == nil || runners.Runner() == nil {
			return fmt.Errorf("compgen: -F %s: no shell available", functionName)
		}
		results, err := NewCompletionFunction(functionName, runners.Runner()).Execute(ctx, []string{word}, 0)
		if err != nil {
			return fmt.Errorf("compgen: %w", err)
		}
		entries = append(entries, NewCandidateList(results...)...)
	}

	gen.Entries(entries).FilterBy(word)
	results, err := gen.Generate()
	if err != nil {
		return fmt.Errorf("compgen: %w", err)
	}

	engine.logger.Debug("compgen", zap.Strings("args", args), zap.Int("results", len(results)))

	if len(results) == 0 {
		return interp.NewExitStatus(1)
	}
	for _, candidate := range results {
		if candidate == "" {
			continue
		}
		fmt.Fprintln(hc.Stdout, candidate) //nolint:errcheck
	}
	return nil
}
