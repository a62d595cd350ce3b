package retrieval

import "github.com/helios-eng/helios/core"

// normalizeScores rescales the scores of a result list onto [0, 1] using
// min-max normalization. When the list has a single element or all scores
// are equal, every score becomes 1.0 so that a lone result is not zeroed
// out of the blend. The input slice is modified in place.
func normalizeScores(results []core.ScoredResult) {
	if len(results) == 0 {
		return
	}

	minScore := results[0].Score
	maxScore := results[0].Score
	for _, r := range results[1:] {
		if r.Score < minScore {
			minScore = r.Score
		}
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}

	span := maxScore - minScore
	if span == 0 {
		for i := range results {
			results[i].Score = 1.0
		}
		return
	}

	for i := range results {
		results[i].Score = (results[i].Score - minScore) / span
	}
}
