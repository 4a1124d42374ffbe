package completion

import (
	"github.com/sahilm/fuzzy"
)

// Ranker narrows and orders candidates by how well they match a query.
// Implementations must accept an empty candidate list and an empty query.
type Ranker interface {
	Rank(candidates CandidateList, query string) CandidateList
}

// FuzzyRanker ranks candidates with sahilm/fuzzy. An empty query matches
// every candidate and keeps the original order.
type FuzzyRanker struct{}

// NewFuzzyRanker creates a new FuzzyRanker.
func NewFuzzyRanker() *FuzzyRanker {
	return &FuzzyRanker{}
}

// Rank implements Ranker. Matches with equal scores keep their input order.
func (r *FuzzyRanker) Rank(candidates CandidateList, query string) CandidateList {
	if query == "" {
		return append(CandidateList{}, candidates...)
	}

	matches := fuzzy.FindFrom(query, candidates)
	results := make(CandidateList, 0, len(matches))
	for _, match := range matches {
		results = append(results, candidates[match.Index])
	}
	return results
}
