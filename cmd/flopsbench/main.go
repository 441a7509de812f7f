// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command flopsbench measures the floating-point throughput of this CPU.
//
// It runs 1- to 4-way interleaved FMA chains in float and double precision
// for a fixed budget (3s by default) and prints one line per configuration:
//
//	float depth 1: 3.41 GFLOPS  (Q1: 3.39 GFLOPS Q3: 3.42 GFLOPS)
//
// Any unrecognised option prints usage and exits with status 99.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/LynnColeArt/flopsbench"
	"github.com/LynnColeArt/flopsbench/clock"
	"github.com/LynnColeArt/flopsbench/internal/config"
	"github.com/LynnColeArt/flopsbench/internal/telemetry"
)

const commandName = "flopsbench"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process status. Failures are
// reported on stderr but, like a successful run, exit 0; only a help
// request changes the status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := config.NewFlagSet(commandName)
	cfg, err := config.Load(fs, args)
	if errors.Is(err, config.ErrHelp) {
		config.Usage(stdout, commandName, fs)
		return config.HelpExitCode
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 0
	}

	if cfg.Version {
		version, _ := flopsbench.Version()
		if version == "" {
			version = "(devel)"
		}
		fmt.Fprintln(stdout, commandName, version)
		return 0
	}

	if err := bench(ctx, cfg, stdout, stderr); err != nil {
		fmt.Fprintln(stderr, err)
	}
	return 0
}

func bench(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.WithField("processor", flopsbench.ProcessorInfo()).Debug("starting measurement")
	if !flopsbench.FusedFloat32() {
		log.Warn("float multiply-add is not fused on this CPU; float rows time a separate multiply and add")
	}

	rec := telemetry.New()
	if cfg.MetricsAddr != "" {
		addr, errc, err := rec.Listen(ctx, cfg.MetricsAddr)
		if err != nil {
			return fmt.Errorf("metrics listener: %w", err)
		}
		log.WithField("addr", addr.String()).Info("serving metrics on /metrics")
		go func() {
			for err := range errc {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	opts := append(cfg.Options(), flopsbench.WithLogger(log), flopsbench.WithRecorder(rec))
	src, err := clock.New()
	if err != nil {
		return err
	}
	cal, err := flopsbench.NewCalibrator(src, opts...)
	if err != nil {
		return err
	}

	workloads := flopsbench.DefaultWorkloads()
	rounds, err := cal.Run(ctx, workloads)
	if err != nil {
		log.WithError(err).Warn("measurement interrupted; reporting partial results")
	}
	log.WithField("rounds", rounds).Info("measurement finished")

	for _, w := range workloads {
		if s, err := w.Summary(); err == nil {
			rec.ObserveSummary(w.Name, s.Median, s.Q1, s.Q3, s.Count)
		}
	}
	if err := flopsbench.WriteReport(stdout, workloads); err != nil {
		return err
	}

	if cfg.MetricsAddr != "" && ctx.Err() == nil {
		log.Info("metrics remain available until interrupted")
		<-ctx.Done()
	}
	return nil
}
