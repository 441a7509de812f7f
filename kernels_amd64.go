// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64 && !noasm && !gccgo
// +build amd64,!noasm,!gccgo

package flopsbench

import "golang.org/x/sys/cpu"

// HasAVX is only set when the OS saves YMM state, which VEX encoding needs.
var hasFMA = cpu.X86.HasFMA && cpu.X86.HasAVX

// fmaChains32 advances the first depth elements of v by n steps of
// v[k] = v[k]*m + c, each step a single VFMADD213SS.
//
//go:noescape
func fmaChains32(v *[MaxDepth]float32, depth int, m, c float32, n int)

// fmaChains64 is fmaChains32 in double precision, using VFMADD213SD.
//
//go:noescape
func fmaChains64(v *[MaxDepth]float64, depth int, m, c float64, n int)

func init() {
	fusedFloat32 = hasFMA
	if !hasFMA {
		return
	}
	for d := 1; d <= MaxDepth; d++ {
		kernels[Float32][d-1] = fusedKernel32(d)
		kernels[Float64][d-1] = fusedKernel64(d)
	}
}

func fusedKernel32(depth int) Kernel {
	return func(gx, gy, gz uint32) {
		var v [MaxDepth]float32
		for k := 0; k < depth; k++ {
			v[k] = float32(seed(gx, gy, gz, k))
		}
		fmaChains32(&v, depth, chainMul, chainAdd, KernelFMAs/depth)
		for k := 0; k < depth; k++ {
			if v[k] == guardValue {
				keep32(v[0], v[1], v[2], v[3])
				return
			}
		}
	}
}

func fusedKernel64(depth int) Kernel {
	return func(gx, gy, gz uint32) {
		var v [MaxDepth]float64
		for k := 0; k < depth; k++ {
			v[k] = seed(gx, gy, gz, k)
		}
		fmaChains64(&v, depth, chainMul, chainAdd, KernelFMAs/depth)
		for k := 0; k < depth; k++ {
			if v[k] == guardValue {
				keep64(v[0], v[1], v[2], v[3])
				return
			}
		}
	}
}
