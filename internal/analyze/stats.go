package analyze

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// dropNaN returns the non-NaN entries of xs.
func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// quantile returns the p-quantile of xs with linear interpolation between
// order statistics (the same definition describe and qcut rank against).
func quantile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return quantileSorted(sorted, p)
}

// quantileSorted computes the interpolated quantile of pre-sorted values.
func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// describeColumn computes the eight describe statistics for one column.
func describeColumn(xs []float64) (count float64, mean, std, min, q25, q50, q75, max float64) {
	vals := dropNaN(xs)
	count = float64(len(vals))
	if len(vals) == 0 {
		nan := math.NaN()
		return 0, nan, nan, nan, nan, nan, nan, nan
	}

	mean = stat.Mean(vals, nil)
	if len(vals) > 1 {
		std = stat.StdDev(vals, nil)
	} else {
		std = math.NaN()
	}

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	min = sorted[0]
	max = sorted[len(sorted)-1]
	q25 = quantileSorted(sorted, 0.25)
	q50 = quantileSorted(sorted, 0.50)
	q75 = quantileSorted(sorted, 0.75)
	return
}

// qcut assigns each value to one of up to k equal-frequency bins. Duplicate
// quantile edges are collapsed, so fewer than k bins can come back. Bin
// labels are 0..bins-1; the returned edges have bins+1 entries.
func qcut(xs []float64, k int) (bins []int, edges []float64) {
	if len(xs) == 0 || k < 1 {
		return nil, nil
	}

	raw := make([]float64, 0, k+1)
	for i := 0; i <= k; i++ {
		raw = append(raw, quantile(xs, float64(i)/float64(k)))
	}
	edges = raw[:1]
	for _, e := range raw[1:] {
		if e > edges[len(edges)-1] {
			edges = append(edges, e)
		}
	}

	bins = make([]int, len(xs))
	if len(edges) < 2 {
		// All values identical: a single degenerate bin.
		edges = []float64{raw[0], raw[0]}
		return bins, edges
	}

	for i, v := range xs {
		// Intervals are (lo, hi] except the first, which includes its
		// lower edge.
		b := sort.SearchFloat64s(edges[1:], v)
		if b > len(edges)-2 {
			b = len(edges) - 2
		}
		bins[i] = b
	}
	return bins, edges
}
