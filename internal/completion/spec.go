package completion

import (
	"errors"
	"strings"
)

// ErrBuilderConsumed is returned when Build is called more than once.
var ErrBuilderConsumed = errors.New("completion: spec builder already consumed")

// CompSpec is the completion policy registered for a command, as created by
// `complete -F func -W words -o filenames|dirnames cmd`.
type CompSpec struct {
	funcName         string
	wordlist         string
	hasWordlist      bool
	filenamesIfEmpty bool
	dirnamesIfEmpty  bool
}

// FuncName returns the completion function to invoke, if any.
func (s CompSpec) FuncName() (string, bool) {
	return s.funcName, s.funcName != ""
}

// Wordlist returns the static word list (-W), if any.
func (s CompSpec) Wordlist() (string, bool) {
	return s.wordlist, s.hasWordlist
}

// FilenamesIfEmpty reports whether path completion is used when the spec
// produces no candidates (-o filenames).
func (s CompSpec) FilenamesIfEmpty() bool {
	return s.filenamesIfEmpty
}

// DirnamesIfEmpty reports whether directory completion is used when the
// spec produces no candidates (-o dirnames).
func (s CompSpec) DirnamesIfEmpty() bool {
	return s.dirnamesIfEmpty
}

// Options returns the -o options of the spec.
func (s CompSpec) Options() []string {
	var options []string
	if s.filenamesIfEmpty {
		options = append(options, "filenames")
	}
	if s.dirnamesIfEmpty {
		options = append(options, "dirnames")
	}
	return options
}

// String formats the spec as a `complete` command line for command.
func (s CompSpec) String() string {
	var parts []string
	for _, option := range s.Options() {
		parts = append(parts, "-o", option)
	}
	if words, ok := s.Wordlist(); ok {
		parts = append(parts, "-W", quoteWord(words))
	}
	if name, ok := s.FuncName(); ok {
		parts = append(parts, "-F", name)
	}
	return strings.Join(parts, " ")
}

// CompSpecBuilder accumulates the fields of a CompSpec.
type CompSpecBuilder struct {
	spec     CompSpec
	consumed bool
}

// NewCompSpecBuilder creates a builder with no function and both fallbacks off.
func NewCompSpecBuilder() *CompSpecBuilder {
	return &CompSpecBuilder{}
}

// FuncName sets the completion function (-F).
func (b *CompSpecBuilder) FuncName(name string) *CompSpecBuilder {
	b.spec.funcName = name
	return b
}

// Wordlist sets the static word list (-W).
func (b *CompSpecBuilder) Wordlist(words string) *CompSpecBuilder {
	b.spec.wordlist = words
	b.spec.hasWordlist = true
	return b
}

// FilenamesIfEmpty sets -o filenames.
func (b *CompSpecBuilder) FilenamesIfEmpty(enable bool) *CompSpecBuilder {
	b.spec.filenamesIfEmpty = enable
	return b
}

// DirnamesIfEmpty sets -o dirnames.
func (b *CompSpecBuilder) DirnamesIfEmpty(enable bool) *CompSpecBuilder {
	b.spec.dirnamesIfEmpty = enable
	return b
}

// Build returns the finished spec. The builder cannot be used afterwards.
func (b *CompSpecBuilder) Build() (CompSpec, error) {
	if b.consumed {
		return CompSpec{}, ErrBuilderConsumed
	}
	b.consumed = true
	return b.spec, nil
}
