// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows
// +build windows

package clock

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// x/sys/windows has no wrappers for the performance counter.
var (
	kernel32                      = windows.NewLazySystemDLL("kernel32.dll")
	procQueryPerformanceCounter   = kernel32.NewProc("QueryPerformanceCounter")
	procQueryPerformanceFrequency = kernel32.NewProc("QueryPerformanceFrequency")
)

// performanceCounter reads the hardware performance counter. Its frequency
// is fixed at boot, so it is queried once.
type performanceCounter struct {
	period float64
}

// New returns the timestamp source for this platform.
func New() (Source, error) {
	if err := procQueryPerformanceFrequency.Find(); err != nil {
		return nil, fmt.Errorf("clock: %w", err)
	}
	if err := procQueryPerformanceCounter.Find(); err != nil {
		return nil, fmt.Errorf("clock: %w", err)
	}

	var freq int64
	if r, _, err := procQueryPerformanceFrequency.Call(uintptr(unsafe.Pointer(&freq))); r == 0 {
		return nil, fmt.Errorf("clock: QueryPerformanceFrequency: %w", err)
	}
	period, err := periodOf(freq)
	if err != nil {
		return nil, err
	}
	return &performanceCounter{period: period}, nil
}

// Now returns the current performance counter value.
func (pc *performanceCounter) Now() uint64 {
	var ticks int64
	// Cannot fail once QueryPerformanceFrequency has succeeded.
	procQueryPerformanceCounter.Call(uintptr(unsafe.Pointer(&ticks)))
	return uint64(ticks)
}

// Period returns 1/frequency seconds.
func (pc *performanceCounter) Period() float64 {
	return pc.period
}
