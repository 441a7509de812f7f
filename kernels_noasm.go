// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64 || noasm || gccgo
// +build !amd64 noasm gccgo

package flopsbench

import "runtime"

// The compiler fuses float32 x*y + z on these architectures.
func init() {
	switch runtime.GOARCH {
	case "arm64", "ppc64", "ppc64le", "s390x", "riscv64", "loong64":
		fusedFloat32 = true
	}
}
