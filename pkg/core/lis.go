package core

import "sort"

// longestIncreasingSubsequence returns, in ascending order, the positions of
// seq forming a longest strictly increasing subsequence. Negative entries are
// skipped. Runs in O(n log n).
func longestIncreasingSubsequence(seq []int) []int {
	pred := make([]int, len(seq))
	tails := make([]int, 0, len(seq))
	for i, v := range seq {
		if v < 0 {
			continue
		}
		at := sort.Search(len(tails), func(k int) bool {
			return seq[tails[k]] >= v
		})
		if at > 0 {
			pred[i] = tails[at-1]
		} else {
			pred[i] = -1
		}
		if at == len(tails) {
			tails = append(tails, i)
		} else {
			tails[at] = i
		}
	}

	out := make([]int, len(tails))
	if len(tails) == 0 {
		return out
	}
	for k, i := len(tails)-1, tails[len(tails)-1]; k >= 0; k, i = k-1, pred[i] {
		out[k] = i
	}
	return out
}
