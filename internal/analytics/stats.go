package analytics

import (
	"math"
	"sort"
)

// Scalar statistics over float64 slices. Degenerate inputs yield NaN
// (rendered as "—" downstream) rather than errors, except where the metric
// definitions pin a zero (see ComputeMetrics).

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return sum(xs) / float64(len(xs))
}

// sampleStd is the ddof=1 standard deviation; 0 for fewer than 2 values.
func sampleStd(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}

	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// downsideDeviation is the root-mean-square of the negative part of xs,
// using the population mean (divide by n); 0 when xs is empty.
func downsideDeviation(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}

	var ss float64
	for _, x := range xs {
		if x < 0 {
			ss += x * x
		}
	}
	return math.Sqrt(ss / float64(n))
}

func minOf(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// skewness is the bias-adjusted sample skewness G1. NaN for fewer than 3
// values; 0 for a zero-variance series.
func skewness(xs []float64) float64 {
	n := float64(len(xs))
	if n < 3 {
		return math.NaN()
	}

	m := mean(xs)
	var m2, m3 float64
	for _, x := range xs {
		d := x - m
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n

	if m2 == 0 {
		return 0
	}
	g1 := m3 / math.Pow(m2, 1.5)
	return g1 * math.Sqrt(n*(n-1)) / (n - 2)
}

// kurtosis is the bias-adjusted sample excess kurtosis G2. NaN for fewer
// than 4 values; 0 for a zero-variance series.
func kurtosis(xs []float64) float64 {
	n := float64(len(xs))
	if n < 4 {
		return math.NaN()
	}

	m := mean(xs)
	var ss, s4 float64
	for _, x := range xs {
		d := x - m
		ss += d * d
		s4 += d * d * d * d
	}

	variance := ss / (n - 1)
	if variance == 0 {
		return 0
	}

	term := n * (n + 1) / ((n - 1) * (n - 2) * (n - 3)) * s4 / (variance * variance)
	adj := 3 * (n - 1) * (n - 1) / ((n - 2) * (n - 3))
	return term - adj
}
