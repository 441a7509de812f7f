// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux || darwin || freebsd || netbsd || openbsd
// +build linux darwin freebsd netbsd openbsd

package clock

import (
	"golang.org/x/sys/unix"
)

// nanosecond is the tick period of CLOCK_MONOTONIC.
const nanosecond = 1e-9

// monotonic reads CLOCK_MONOTONIC.
type monotonic struct{}

// New returns the timestamp source for this platform.
func New() (Source, error) {
	return monotonic{}, nil
}

// Now returns the monotonic clock in nanoseconds.
func (monotonic) Now() uint64 {
	var ts unix.Timespec
	// CLOCK_MONOTONIC cannot fail with a valid Timespec pointer.
	_ = unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	return uint64(ts.Nano())
}

// Period returns one nanosecond.
func (monotonic) Period() float64 {
	return nanosecond
}
