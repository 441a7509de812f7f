// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clock provides the high-resolution timestamp sources used to time
// benchmark trials.
//
// The backend is chosen at build time: Windows reads the hardware
// performance counter, unix platforms read CLOCK_MONOTONIC. Platforms with
// neither primitive are not supported and do not build.
package clock

import "fmt"

// Source supplies monotonic tick values and the duration of one tick.
type Source interface {
	// Now returns an opaque, monotonically non-decreasing tick count.
	Now() uint64

	// Period returns the number of seconds represented by one tick.
	Period() float64
}

// Manual is a Source that only moves when told to. It is used to drive
// calibration deterministically.
type Manual struct {
	ticks  uint64
	period float64
}

// NewManual returns a Manual source whose ticks last period seconds.
func NewManual(period float64) *Manual {
	return &Manual{period: period}
}

// Now returns the current tick count.
func (m *Manual) Now() uint64 { return m.ticks }

// Period returns the tick duration in seconds.
func (m *Manual) Period() float64 { return m.period }

// Advance moves the clock forward by ticks.
func (m *Manual) Advance(ticks uint64) { m.ticks += ticks }

// AdvanceSeconds moves the clock forward by the number of whole ticks
// closest to s seconds.
func (m *Manual) AdvanceSeconds(s float64) {
	m.ticks += uint64(s/m.period + 0.5)
}

// periodOf converts a counter frequency in ticks per second to a tick period.
func periodOf(freq int64) (float64, error) {
	if freq <= 0 {
		return 0, fmt.Errorf("clock: invalid counter frequency %d", freq)
	}
	return 1 / float64(freq), nil
}
