package match

import (
	"sort"
)

// DefaultThreshold is the minimum similarity for a key to be suggested.
const DefaultThreshold = 0.6

// Candidate is a known key ranked against an unknown one.
type Candidate struct {
	Key   string
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank scores every known key against key and returns them sorted by score
// (descending), ties broken by key.
func Rank(key string, known []string) CandidateList {
	out := make(CandidateList, 0, len(known))
	for _, k := range known {
		out = append(out, Candidate{Key: k, Score: NormalizedScore(key, k)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}

		return out[i].Key < out[j].Key
	})

	return out
}

// Keys returns just the keys of the list.
func (l CandidateList) Keys() []string {
	keys := make([]string, len(l))
	for i, c := range l {
		keys[i] = c.Key
	}

	return keys
}

// Above returns the candidates whose score is at least threshold.
func (l CandidateList) Above(threshold float64) CandidateList {
	var out CandidateList

	for _, c := range l {
		if c.Score >= threshold {
			out = append(out, c)
		}
	}

	return out
}

// Suggest returns at most limit known keys similar enough to key.
func Suggest(key string, known []string, limit int) []string {
	ranked := Rank(key, known).Above(DefaultThreshold)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked.Keys()
}
