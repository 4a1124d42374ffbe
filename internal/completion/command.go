package completion

import (
	"context"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/interp"
)

// NewCompleteCommandHandler creates a new ExecHandler for the complete command.
func NewCompleteCommandHandler(specRegistry *SpecRegistry) func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if len(args) == 0 || args[0] != "complete" {
				return next(ctx, args)
			}

			return handleCompleteCommand(ctx, specRegistry, args[1:])
		}
	}
}

func handleCompleteCommand(ctx context.Context, registry *SpecRegistry, args []string) error {
	if len(args) == 0 {
		return printCompletionSpecs(ctx, registry, nil)
	}

	var (
		printMode  bool
		removeMode bool
		commands   []string
	)
	builder := NewCompSpecBuilder()

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-p":
			printMode = true
		case "-r":
			removeMode = true
		case "-W":
			if i+1 >= len(args) {
				return fmt.Errorf("complete: option -W requires a word list")
			}
			i++
			builder.Wordlist(args[i])
		case "-F":
			if i+1 >= len(args) {
				return fmt.Errorf("complete: option -F requires a function name")
			}
			i++
			builder.FuncName(args[i])
		case "-o":
			if i+1 >= len(args) {
				return fmt.Errorf("complete: option -o requires an option name")
			}
			i++
			switch args[i] {
			case "filenames":
				builder.FilenamesIfEmpty(true)
			case "dirnames":
				builder.DirnamesIfEmpty(true)
			default:
				return fmt.Errorf("complete: %s: invalid option name", args[i])
			}
		case "--":
			commands = append(commands, args[i+1:]...)
			i = len(args)
		default:
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("complete: unknown option: %s", arg)
			}
			commands = append(commands, arg)
		}
	}

	if printMode {
		return printCompletionSpecs(ctx, registry, commands)
	}

	if len(commands) == 0 {
		return fmt.Errorf("complete: no command specified")
	}

	if removeMode {
		for _, command := range commands {
			registry.RemoveSpec(command)
		}
		return nil
	}

	spec, err := builder.Build()
	if err != nil {
		return fmt.Errorf("complete: %w", err)
	}
	if _, ok := spec.FuncName(); !ok {
		if _, ok := spec.Wordlist(); !ok && len(spec.Options()) == 0 {
			return fmt.Errorf("complete: invalid usage, expected -F, -W or -o")
		}
	}

	for _, command := range commands {
		registry.AddSpec(command, spec)
	}
	return nil
}

func printCompletionSpecs(ctx context.Context, registry *SpecRegistry, commands []string) error {
	out := interp.HandlerCtx(ctx).Stdout

	if len(commands) == 0 {
		for _, registered := range registry.ListSpecs() {
			printCompletionSpec(out, registered.Command, registered.Spec)
		}
		return nil
	}

	for _, command := range commands {
		if spec, ok := registry.GetSpec(command); ok {
			printCompletionSpec(out, command, spec)
		}
	}
	return nil
}

func printCompletionSpec(out io.Writer, command string, spec CompSpec) {
	fmt.Fprintf(out, "complete %s %s\n", spec, quoteWord(command)) //nolint:errcheck
}
