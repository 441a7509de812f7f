// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flopsbench measures sustained floating-point throughput of the
// host CPU.
//
// Eight workloads are measured: one, two, three and four independent
// fused multiply-add chains, each in float32 and float64. A workload is
// dispatched like a GPU compute shader, as a 3D grid of 32x4x1 workgroups,
// but every invocation runs sequentially on the calling goroutine.
//
// The Calibrator sizes each trial so it lands near a target duration
// (20ms), keeps trials longer than a noise floor (10ms) and cycles through
// the workloads until the run budget (3s) is spent:
//
//	src, _ := clock.New()
//	cal, _ := flopsbench.NewCalibrator(src)
//	workloads := flopsbench.DefaultWorkloads()
//	cal.Run(ctx, workloads)
//	flopsbench.WriteReport(os.Stdout, workloads)
//
// Results are reported as the median and the first and third quartile of
// the accepted samples, formatted with FormatSI.
package flopsbench
