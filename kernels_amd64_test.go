// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64 && !noasm && !gccgo
// +build amd64,!noasm,!gccgo

package flopsbench

import (
	"math"
	"testing"
)

func TestFusedFloat32FollowsCPU(t *testing.T) {
	if FusedFloat32() != hasFMA {
		t.Errorf("FusedFloat32() = %v on a CPU with FMA = %v", FusedFloat32(), hasFMA)
	}
}

func TestFMAChains64MatchMathFMA(t *testing.T) {
	if !hasFMA {
		t.Skip("CPU has no FMA")
	}
	const steps = 1000
	for depth := 1; depth <= MaxDepth; depth++ {
		var v, want [MaxDepth]float64
		for k := 0; k < depth; k++ {
			v[k] = seed(7, 3, 1, k)
			want[k] = v[k]
			for i := 0; i < steps; i++ {
				want[k] = math.FMA(want[k], chainMul, chainAdd)
			}
		}
		fmaChains64(&v, depth, chainMul, chainAdd, steps)
		if v != want {
			t.Errorf("depth %d: got %v, want %v", depth, v, want)
		}
	}
}

func TestFMAChains32(t *testing.T) {
	if !hasFMA {
		t.Skip("CPU has no FMA")
	}
	const steps = 1000
	m, c := float32(chainMul), float32(chainAdd)

	var lanes [MaxDepth]float32
	for k := range lanes {
		lanes[k] = float32(seed(7, 3, 1, k))
	}

	var single [MaxDepth]float32
	for k := range lanes {
		v := [MaxDepth]float32{lanes[k]}
		fmaChains32(&v, 1, m, c, steps)
		single[k] = v[0]

		want := float64(lanes[k])
		for i := 0; i < steps; i++ {
			want = float64(float32(math.FMA(want, float64(m), float64(c))))
		}
		if math.Abs(float64(v[0])-want) > 1e-5 {
			t.Errorf("chain %d: got %v, want about %v", k, v[0], want)
		}
	}

	// Interleaved chains are independent: each lane ends where it would alone.
	for depth := 2; depth <= MaxDepth; depth++ {
		v := lanes
		fmaChains32(&v, depth, m, c, steps)
		for k := 0; k < depth; k++ {
			if v[k] != single[k] {
				t.Errorf("depth %d lane %d: got %v, want %v", depth, k, v[k], single[k])
			}
		}
		for k := depth; k < MaxDepth; k++ {
			if v[k] != lanes[k] {
				t.Errorf("depth %d: unused lane %d changed to %v", depth, k, v[k])
			}
		}
	}
}

func TestFMAChainsZeroSteps(t *testing.T) {
	if !hasFMA {
		t.Skip("CPU has no FMA")
	}
	v32 := [MaxDepth]float32{1, 2, 3, 4}
	fmaChains32(&v32, MaxDepth, chainMul, chainAdd, 0)
	if v32 != ([MaxDepth]float32{1, 2, 3, 4}) {
		t.Errorf("float32 chains moved: %v", v32)
	}
	v64 := [MaxDepth]float64{1, 2, 3, 4}
	fmaChains64(&v64, MaxDepth, chainMul, chainAdd, 0)
	if v64 != ([MaxDepth]float64{1, 2, 3, 4}) {
		t.Errorf("float64 chains moved: %v", v64)
	}
}
