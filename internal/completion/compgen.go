package completion

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ErrGeneratorConsumed is returned when Generate is called more than once.
var ErrGeneratorConsumed = errors.New("completion: generator already consumed")

// CompGen assembles a candidate set the way bash's compgen does and
// optionally filters it against a query. It is consumed by Generate.
type CompGen struct {
	engine   *Engine
	entries  CandidateList
	query    string
	hasQuery bool

	includeCommands bool // -A command / -c
	includeFiles    bool // -A file / -f
	includeDirs     bool // -A directory / -d

	consumed bool
}

// IncludeCommands adds executables matching the query (-A command).
func (g *CompGen) IncludeCommands(enable bool) *CompGen {
	g.includeCommands = enable
	return g
}

// IncludeFiles adds files and directories matching the query (-A file).
func (g *CompGen) IncludeFiles(enable bool) *CompGen {
	g.includeFiles = enable
	return g
}

// IncludeDirs adds directories matching the query (-A directory).
func (g *CompGen) IncludeDirs(enable bool) *CompGen {
	g.includeDirs = enable
	return g
}

// Wordlist replaces the entries with text split on any rune in separators
// (-W). Empty fields between adjacent separators are kept.
func (g *CompGen) Wordlist(text string, separators string) *CompGen {
	if separators == "" {
		g.entries = CandidateList{Candidate(text)}
		return g
	}
	g.entries = NewCandidateList(splitAny(text, separators)...)
	return g
}

// splitAny splits s at every rune contained in separators.
func splitAny(s string, separators string) []string {
	var fields []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != utf8.RuneError && strings.ContainsRune(separators, r) {
			fields = append(fields, s[start:i])
			start = i + size
		}
		i += size
	}
	return append(fields, s[start:])
}

// Entries replaces the raw candidate set.
func (g *CompGen) Entries(entries CandidateList) *CompGen {
	g.entries = entries
	return g
}

// FilterBy sets the query the candidates are ranked against.
func (g *CompGen) FilterBy(query string) *CompGen {
	g.query = query
	g.hasQuery = true
	return g
}

// Generate produces the candidates. Action candidates (commands, files,
// directories) follow the raw entries. Without a query the result keeps
// insertion order; with one it is the Ranker's ordering.
func (g *CompGen) Generate() (CandidateList, error) {
	if g.consumed {
		return nil, ErrGeneratorConsumed
	}
	g.consumed = true

	results := append(CandidateList{}, g.entries...)

	if g.includeDirs || g.includeFiles {
		for _, entry := range g.engine.listPath(g.query) {
			if g.includeFiles || entry.isDir {
				results = append(results, Candidate(entry.text))
			}
		}
	}

	if g.includeCommands && g.engine.lookup != nil {
		results = append(results, NewCandidateList(g.engine.lookup.Complete(g.query)...)...)
	}

	if !g.hasQuery {
		return results, nil
	}

	ranked := g.engine.ranker.Rank(results, g.query)
	g.engine.logger.Debug("compgen ranked candidates",
		zap.String("query", g.query),
		zap.Int("candidates", len(results)),
		zap.Int("matches", len(ranked)),
	)
	return lo.Ternary(ranked == nil, CandidateList{}, ranked), nil
}
