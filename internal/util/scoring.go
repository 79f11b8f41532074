package util

import "github.com/sahilm/fuzzy"

// RankMatches returns the indexes of candidates matching input, best first,
// capped at n (n <= 0 means no cap). Empty input matches everything in order.
func RankMatches(input string, candidates []string, n int) []int {
	if input == "" {
		out := make([]int, 0, len(candidates))
		for i := range candidates {
			if n > 0 && i >= n {
				break
			}
			out = append(out, i)
		}
		return out
	}
	matches := fuzzy.Find(input, candidates)
	limit := len(matches)
	if n > 0 && n < limit {
		limit = n
	}
	out := make([]int, limit)
	for i := 0; i < limit; i++ {
		out[i] = matches[i].Index
	}
	return out
}

// ScoreCompletions returns the top n candidate strings for input.
func ScoreCompletions(input string, candidates []string, n int) []string {
	idx := RankMatches(input, candidates, n)
	if len(idx) == 0 {
		return nil
	}
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = candidates[j]
	}
	return out
}
