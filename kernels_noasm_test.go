//go:build !amd64 || noasm || gccgo
// +build !amd64 noasm gccgo

package flopsbench

import (
	"runtime"
	"testing"
)

func TestFusedFloat32ByArchitecture(t *testing.T) {
	want := false
	switch runtime.GOARCH {
	case "arm64", "ppc64", "ppc64le", "s390x", "riscv64", "loong64":
		want = true
	}
	if FusedFloat32() != want {
		t.Errorf("FusedFloat32() = %v on %s", FusedFloat32(), runtime.GOARCH)
	}
}
