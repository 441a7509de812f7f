// Package flopsbench tuning constants
package flopsbench

import "time"

// Kernel shape
const (
	// Multiply-adds executed by one kernel invocation, whatever its depth
	KernelFMAs = 20000

	// Deepest interleave: independent accumulator chains per invocation
	MaxDepth = 4

	// Value no accumulator chain ever reaches
	guardValue = 0.1
)

// Grid and workgroup dimensions
const (
	// Maximum extent of each grid axis
	MaxGridDim = 10000

	// Workgroup extent along X and Y
	WorkgroupX = 32
	WorkgroupY = 4

	// Invocations per workgroup (32 x 4 x 1)
	WorkgroupInvocations = WorkgroupX * WorkgroupY
)

// Calibration defaults
const (
	// Wall-clock budget across all workloads
	DefaultBudget = 3 * time.Second

	// Duration each trial is steered towards
	DefaultTarget = 20 * time.Millisecond

	// Trials shorter than this are too noisy to keep
	DefaultMinTrial = 10 * time.Millisecond

	// Ramp factor applied while a trial is under a tenth of the target
	RampFactor = 10
)
