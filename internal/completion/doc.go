// Package completion provides the tab completion engine for the gsh shell.
// It generates candidates for the word under the cursor (commands, paths,
// word lists and bash completion functions), ranks them with a fuzzy matcher,
// and manages the interactive selection that splices the chosen candidate
// back into the edit buffer.
package completion
