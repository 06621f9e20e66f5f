package nlp

import "github.com/fugjoo/suedtirolmobil-go/efa"

// BestCandidate picks the most plausible stop from a candidate list. Proper
// stops beat addresses and POIs of any score; within the same group the
// higher match quality wins. Returns nil for an empty list.
//
// This is a local ranking over the full candidate list and is independent of
// the IsBest flag the backend sets on at most one candidate.
func BestCandidate(candidates []efa.StopCandidate) *efa.StopCandidate {
	var best *efa.StopCandidate
	bestRank := -1
	for i := range candidates {
		c := &candidates[i]
		rank := c.MatchQuality
		if c.Type == efa.LocationStop {
			rank += 1 << 20
		}
		if rank > bestRank {
			best = c
			bestRank = rank
		}
	}
	return best
}
