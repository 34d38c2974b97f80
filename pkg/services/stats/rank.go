package stats

import "sort"

// midranks assigns 1-based ranks to xs, giving tied values the average
// of the ranks they span (the standard midrank convention).
func midranks(xs []float64) []float64 {
	n := len(xs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && xs[idx[j+1]] == xs[idx[i]] {
			j++
		}
		// positions i..j share the value; midrank is the average of
		// ranks i+1..j+1
		mid := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			ranks[idx[k]] = mid
		}
		i = j + 1
	}
	return ranks
}

// tieCorrection returns sum(t^3 - t) over tie groups in xs.
func tieCorrection(xs []float64) float64 {
	counts := make(map[float64]int, len(xs))
	for _, x := range xs {
		counts[x]++
	}
	var sum float64
	for _, t := range counts {
		if t > 1 {
			ft := float64(t)
			sum += ft*ft*ft - ft
		}
	}
	return sum
}

// median of xs; xs must be non-empty and is not modified.
func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
