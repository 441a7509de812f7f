package flopsbench

import (
	"fmt"
	"math"
)

// Precision selects the floating-point width of a kernel.
type Precision int

const (
	Float32 Precision = iota
	Float64
)

// String returns the C name of the type, as used in report labels.
func (p Precision) String() string {
	switch p {
	case Float32:
		return "float"
	case Float64:
		return "double"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// Accumulator chains compute x = x*chainMul + chainAdd. Seeds are at least
// 1 and the recurrence decays towards 1 from above, so no chain can reach
// guardValue.
const (
	chainMul = 0.9999
	chainAdd = 0.0001
)

// seed derives the starting value of chain k from the invocation coordinates.
func seed(gx, gy, gz uint32, k int) float64 {
	return 1 + float64(gx) + float64(gy)*1e-3 + float64(gz)*1e-6 + float64(k)*0.25
}

var kernels = [2][MaxDepth]Kernel{
	Float32: {fma1x32, fma2x32, fma3x32, fma4x32},
	Float64: {fma1x64, fma2x64, fma3x64, fma4x64},
}

// KernelFor returns the kernel with depth independent chains at the given
// precision.
func KernelFor(depth int, p Precision) (Kernel, error) {
	if depth < 1 || depth > MaxDepth {
		return nil, fmt.Errorf("depth %d: %w", depth, ErrInvalidDepth)
	}
	if p != Float32 && p != Float64 {
		return nil, NewInvalidArgError("KernelFor", "unknown precision "+p.String())
	}
	return kernels[p][depth-1], nil
}

// Sinks for the final chain values. They are only written when a chain hits
// guardValue, which never happens; the calls keep every chain live.
var (
	sink32 [MaxDepth]float32
	sink64 [MaxDepth]float64
)

//go:noinline
func keep32(a, b, c, d float32) {
	sink32 = [MaxDepth]float32{a, b, c, d}
}

//go:noinline
func keep64(a, b, c, d float64) {
	sink64 = [MaxDepth]float64{a, b, c, d}
}

// Set by the architecture-specific init.
var fusedFloat32 bool

// FusedFloat32 reports whether the float kernels execute one fused
// multiply-add instruction per step. When it is false they time a separate
// multiply and add, and their results are not comparable with the double
// kernels.
func FusedFloat32() bool {
	return fusedFloat32
}

// The portable kernels below are replaced by assembly on amd64 CPUs with
// FMA. float32 has no math.FMA; the compiler fuses x*m + c into a single
// instruction on targets that provide one.

func fma1x32(gx, gy, gz uint32) {
	a := float32(seed(gx, gy, gz, 0))
	for i := 0; i < KernelFMAs; i++ {
		a = a*chainMul + chainAdd
	}
	if a == guardValue {
		keep32(a, 0, 0, 0)
	}
}

func fma2x32(gx, gy, gz uint32) {
	a := float32(seed(gx, gy, gz, 0))
	b := float32(seed(gx, gy, gz, 1))
	for i := 0; i < KernelFMAs/2; i++ {
		a = a*chainMul + chainAdd
		b = b*chainMul + chainAdd
	}
	if a == guardValue || b == guardValue {
		keep32(a, b, 0, 0)
	}
}

func fma3x32(gx, gy, gz uint32) {
	a := float32(seed(gx, gy, gz, 0))
	b := float32(seed(gx, gy, gz, 1))
	c := float32(seed(gx, gy, gz, 2))
	for i := 0; i < KernelFMAs/3; i++ {
		a = a*chainMul + chainAdd
		b = b*chainMul + chainAdd
		c = c*chainMul + chainAdd
	}
	if a == guardValue || b == guardValue || c == guardValue {
		keep32(a, b, c, 0)
	}
}

func fma4x32(gx, gy, gz uint32) {
	a := float32(seed(gx, gy, gz, 0))
	b := float32(seed(gx, gy, gz, 1))
	c := float32(seed(gx, gy, gz, 2))
	d := float32(seed(gx, gy, gz, 3))
	for i := 0; i < KernelFMAs/4; i++ {
		a = a*chainMul + chainAdd
		b = b*chainMul + chainAdd
		c = c*chainMul + chainAdd
		d = d*chainMul + chainAdd
	}
	if a == guardValue || b == guardValue || c == guardValue || d == guardValue {
		keep32(a, b, c, d)
	}
}

func fma1x64(gx, gy, gz uint32) {
	a := seed(gx, gy, gz, 0)
	for i := 0; i < KernelFMAs; i++ {
		a = math.FMA(a, chainMul, chainAdd)
	}
	if a == guardValue {
		keep64(a, 0, 0, 0)
	}
}

func fma2x64(gx, gy, gz uint32) {
	a := seed(gx, gy, gz, 0)
	b := seed(gx, gy, gz, 1)
	for i := 0; i < KernelFMAs/2; i++ {
		a = math.FMA(a, chainMul, chainAdd)
		b = math.FMA(b, chainMul, chainAdd)
	}
	if a == guardValue || b == guardValue {
		keep64(a, b, 0, 0)
	}
}

func fma3x64(gx, gy, gz uint32) {
	a := seed(gx, gy, gz, 0)
	b := seed(gx, gy, gz, 1)
	c := seed(gx, gy, gz, 2)
	for i := 0; i < KernelFMAs/3; i++ {
		a = math.FMA(a, chainMul, chainAdd)
		b = math.FMA(b, chainMul, chainAdd)
		c = math.FMA(c, chainMul, chainAdd)
	}
	if a == guardValue || b == guardValue || c == guardValue {
		keep64(a, b, c, 0)
	}
}

func fma4x64(gx, gy, gz uint32) {
	a := seed(gx, gy, gz, 0)
	b := seed(gx, gy, gz, 1)
	c := seed(gx, gy, gz, 2)
	d := seed(gx, gy, gz, 3)
	for i := 0; i < KernelFMAs/4; i++ {
		a = math.FMA(a, chainMul, chainAdd)
		b = math.FMA(b, chainMul, chainAdd)
		c = math.FMA(c, chainMul, chainAdd)
		d = math.FMA(d, chainMul, chainAdd)
	}
	if a == guardValue || b == guardValue || c == guardValue || d == guardValue {
		keep64(a, b, c, d)
	}
}
