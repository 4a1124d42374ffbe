package completion

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// osReadDir and osStat are variables that can be overridden for testing.
var (
	osReadDir = os.ReadDir
	osStat    = os.Stat
)

// pathEntry is one listed filesystem entry, as it should be displayed.
type pathEntry struct {
	text  string
	isDir bool
}

// PathCompletion completes the current word as a filesystem path. Listing
// failures yield an empty list.
func (e *Engine) PathCompletion(ctx InputContext) CandidateList {
	word, hasWord := ctx.CurrentWord()

	entries := lo.Map(e.listPath(word), func(entry pathEntry, _ int) Candidate {
		return Candidate(entry.text)
	})

	gen := e.NewCompGen().Entries(entries)
	if hasWord {
		gen.FilterBy(word)
	}
	results, err := gen.Generate()
	if err != nil {
		return CandidateList{}
	}
	return results
}

// DirCompletion is PathCompletion restricted to directories (-o dirnames).
func (e *Engine) DirCompletion(ctx InputContext) CandidateList {
	word, _ := ctx.CurrentWord()

	results, err := e.NewCompGen().IncludeDirs(true).FilterBy(word).Generate()
	if err != nil {
		return CandidateList{}
	}
	return results
}

// listPath lists the directory the word points into:
//
//	"dir/"     -> entries of dir
//	"dir/name" -> entries of dir
//	"name"     -> entries of the working directory
//
// Entries are reported relative to the word as typed, with a leading "./"
// removed. Entries whose names are not valid UTF-8 are skipped.
func (e *Engine) listPath(word string) []pathEntry {
	var dir string
	switch {
	case strings.HasSuffix(word, "/"):
		dir = word
	case strings.Contains(word, "/"):
		dir = word[:strings.LastIndex(word, "/")]
		if dir == "" {
			dir = "/"
		}
	default:
		dir = "."
	}

	prefix := dir
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	resolved := e.resolveDir(dir)
	if resolved == "" {
		return nil
	}

	dirents, err := osReadDir(resolved)
	if err != nil {
		e.logger.Debug("path completion: failed to read directory",
			zap.String("dir", resolved),
			zap.Error(err),
		)
		return nil
	}

	entries := make([]pathEntry, 0, len(dirents))
	for _, dirent := range dirents {
		name := dirent.Name()
		if !utf8.ValidString(name) {
			e.logger.Debug("path completion: skipping entry with invalid name",
				zap.String("dir", resolved),
				zap.Binary("name", []byte(name)),
			)
			continue
		}

		isDir := dirent.IsDir()
		if dirent.Type()&os.ModeSymlink != 0 {
			if info, err := osStat(filepath.Join(resolved, name)); err == nil {
				isDir = info.IsDir()
			}
		}

		entries = append(entries, pathEntry{
			text:  strings.TrimPrefix(prefix+name, "./"),
			isDir: isDir,
		})
	}
	return entries
}

// resolveDir turns the directory part of a word into a path that can be
// read, expanding "~" and resolving relative paths against the engine's
// working directory. It returns "" if the home directory is unknown.
func (e *Engine) resolveDir(dir string) string {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(e.pwd(), dir)
}
