package flopsbench

import "fmt"

// Workload is one measured configuration: a kernel plus the calibration
// state the Calibrator keeps for it.
type Workload struct {
	Name      string
	Depth     int
	Precision Precision
	Kernel    Kernel

	// Iterations is the workgroup count requested for the next trial.
	// It starts at 1 and is rewritten after every trial.
	Iterations uint64

	// Samples holds the throughput (FMA/s) of every accepted trial.
	Samples []float64
}

// NewWorkload returns a workload for the given depth and precision.
func NewWorkload(depth int, p Precision) (*Workload, error) {
	k, err := KernelFor(depth, p)
	if err != nil {
		return nil, err
	}
	return &Workload{
		Name:       fmt.Sprintf("%s depth %d", p, depth),
		Depth:      depth,
		Precision:  p,
		Kernel:     k,
		Iterations: 1,
	}, nil
}

// DefaultWorkloads returns the eight workloads in report order: float
// depth 1 to 4, then double depth 1 to 4.
func DefaultWorkloads() []*Workload {
	workloads := make([]*Workload, 0, 2*MaxDepth)
	for _, p := range []Precision{Float32, Float64} {
		for depth := 1; depth <= MaxDepth; depth++ {
			w, err := NewWorkload(depth, p)
			if err != nil {
				panic(err) // depth and precision are in range
			}
			workloads = append(workloads, w)
		}
	}
	return workloads
}

// Summary aggregates the accepted samples of w.
func (w *Workload) Summary() (Summary, error) {
	return Summarize(w.Samples)
}
