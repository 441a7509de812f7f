package flopsbench

import "sort"

// Summary is the median and interquartile spread of a sample set.
type Summary struct {
	Median float64
	Q1     float64
	Q3     float64
	Count  int
}

// Summarize sorts a copy of samples and picks the elements at len/2, len/4
// and len/4*3. There is no interpolation between neighbours. An empty set
// yields ErrNoSamples.
func Summarize(samples []float64) (Summary, error) {
	n := len(samples)
	if n == 0 {
		return Summary{}, ErrNoSamples
	}

	sorted := make([]float64, n)
	copy(sorted, samples)
	sort.Float64s(sorted)

	return Summary{
		Median: sorted[n/2],
		Q1:     sorted[n/4],
		Q3:     sorted[n/4*3],
		Count:  n,
	}, nil
}
