package completion

import (
	"github.com/samber/lo"
)

// Candidate is a single completion suggestion.
// Candidates are immutable; copying one shares the underlying text.
type Candidate string

// String returns the candidate text.
func (c Candidate) String() string {
	return string(c)
}

// CandidateList is an ordered list of candidates. Display order is
// navigation order, and duplicates are kept.
type CandidateList []Candidate

// NewCandidateList builds a CandidateList from plain strings.
func NewCandidateList(values ...string) CandidateList {
	return lo.Map(values, func(v string, _ int) Candidate {
		return Candidate(v)
	})
}

// Strings returns the candidates as plain strings.
func (l CandidateList) Strings() []string {
	return lo.Map(l, func(c Candidate, _ int) string {
		return string(c)
	})
}

// String implements fuzzy.Source.
func (l CandidateList) String(i int) string {
	return string(l[i])
}

// Len implements fuzzy.Source.
func (l CandidateList) Len() int {
	return len(l)
}
