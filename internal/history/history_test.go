package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLog(t *testing.T) *AcceptanceLog {
	t.Helper()
	log, err := NewAcceptanceLog(filepath.Join(t.TempDir(), "completions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() }) //nolint:errcheck
	return log
}

func TestAcceptanceLogRecord(t *testing.T) {
	log := newTestLog(t)

	entry, err := log.Record("git", "ch", "checkout", "/repo")
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.Equal(t, "checkout", entry.Candidate)
}

func TestAcceptanceLogRecent(t *testing.T) {
	log := newTestLog(t)

	for _, c := range []struct{ command, candidate string }{
		{"git", "checkout"},
		{"cd", "docs"},
		{"git", "commit"},
	} {
		_, err := log.Record(c.command, "", c.candidate, "/repo")
		require.NoError(t, err)
	}

	all, err := log.Recent("", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "commit", all[0].Candidate)
	assert.Equal(t, "checkout", all[2].Candidate)

	git, err := log.Recent("git", 1)
	require.NoError(t, err)
	require.Len(t, git, 1)
	assert.Equal(t, "commit", git[0].Candidate)
}

func TestAcceptanceLogTopCandidates(t *testing.T) {
	log := newTestLog(t)

	for _, candidate := range []string{"checkout", "commit", "checkout", "push", "checkout", "commit"} {
		_, err := log.Record("git", "", candidate, "")
		require.NoError(t, err)
	}
	_, err := log.Record("cd", "", "checkout", "")
	require.NoError(t, err)

	top, err := log.TopCandidates("git", 2)
	require.NoError(t, err)
	assert.Equal(t, []CandidateCount{
		{Candidate: "checkout", Count: 3},
		{Candidate: "commit", Count: 2},
	}, top)

	none, err := log.TopCandidates("make", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAcceptanceLogReset(t *testing.T) {
	log := newTestLog(t)

	_, err := log.Record("git", "", "checkout", "")
	require.NoError(t, err)
	require.NoError(t, log.Reset())

	entries, err := log.Recent("", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAcceptanceLogReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "completions.db")

	log, err := NewAcceptanceLog(path)
	require.NoError(t, err)
	_, err = log.Record("git", "", "checkout", "")
	require.NoError(t, err)
	require.NoError(t, log.Close())

	reopened, err := NewAcceptanceLog(path)
	require.NoError(t, err)
	defer reopened.Close() //nolint:errcheck

	entries, err := reopened.Recent("git", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
