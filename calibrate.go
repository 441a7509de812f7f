package flopsbench

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LynnColeArt/flopsbench/clock"
)

// Dispatcher executes a kernel over a grid. Dispatch is the only production
// implementation.
type Dispatcher func(grid Dim3, k Kernel)

// Recorder receives calibration events, typically to export them as metrics.
type Recorder interface {
	ObserveTrial(workload string, iterations uint64, seconds float64, accepted bool)
	ObserveRound(round int, elapsed float64)
}

type nopRecorder struct{}

func (nopRecorder) ObserveTrial(string, uint64, float64, bool) {}
func (nopRecorder) ObserveRound(int, float64)                  {}

// Trial is the outcome of one timed execution of a workload.
type Trial struct {
	Iterations uint64
	Grid       Dim3
	Seconds    float64
	Accepted   bool
	Throughput float64 // FMA/s, zero when rejected
}

// Calibrator sizes, runs and times trials until a wall-clock budget is spent.
// It is not safe for concurrent use.
type Calibrator struct {
	src    clock.Source
	period float64

	budget   float64
	target   float64
	minTrial float64

	dispatch Dispatcher
	log      logrus.FieldLogger
	recorder Recorder
}

// Option configures a Calibrator.
type Option func(*Calibrator)

// WithBudget sets the total measurement time.
func WithBudget(d time.Duration) Option {
	return func(c *Calibrator) { c.budget = d.Seconds() }
}

// WithTarget sets the duration trials are steered towards.
func WithTarget(d time.Duration) Option {
	return func(c *Calibrator) { c.target = d.Seconds() }
}

// WithMinTrial sets the shortest trial whose sample is kept.
func WithMinTrial(d time.Duration) Option {
	return func(c *Calibrator) { c.minTrial = d.Seconds() }
}

// WithLogger sets the logger for trial and round events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Calibrator) { c.log = l }
}

// WithRecorder sets the receiver of calibration events.
func WithRecorder(r Recorder) Option {
	return func(c *Calibrator) { c.recorder = r }
}

// WithDispatcher replaces grid execution.
func WithDispatcher(d Dispatcher) Option {
	return func(c *Calibrator) { c.dispatch = d }
}

// NewCalibrator returns a Calibrator timing trials with src. The tick period
// is read once here.
func NewCalibrator(src clock.Source, opts ...Option) (*Calibrator, error) {
	if src == nil {
		return nil, ErrNilClock
	}

	silent := logrus.New()
	silent.SetOutput(io.Discard)

	c := &Calibrator{
		src:      src,
		period:   src.Period(),
		budget:   DefaultBudget.Seconds(),
		target:   DefaultTarget.Seconds(),
		minTrial: DefaultMinTrial.Seconds(),
		dispatch: Dispatch,
		log:      silent,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case !(c.period > 0) || math.IsInf(c.period, 1):
		return nil, NewInvalidArgError("NewCalibrator", "timestamp period must be positive and finite")
	case !(c.budget > 0):
		return nil, NewInvalidArgError("NewCalibrator", "budget must be positive")
	case !(c.target > 0):
		return nil, NewInvalidArgError("NewCalibrator", "target must be positive")
	case c.minTrial < 0:
		return nil, NewInvalidArgError("NewCalibrator", "minimum trial must not be negative")
	case c.dispatch == nil:
		return nil, NewInvalidArgError("NewCalibrator", "nil dispatcher")
	}
	return c, nil
}

func (c *Calibrator) seconds(start, end uint64) float64 {
	return float64(end-start) * c.period
}

// RunTrial executes w once over the grid for its current iteration count,
// keeps the sample if the trial was long enough and sets the iteration
// count for the next trial.
//
// Throughput is computed from the requested count, not the grid volume, so
// results stay comparable with earlier versions of the harness.
func (c *Calibrator) RunTrial(w *Workload) Trial {
	n := w.Iterations
	if n < 1 {
		n = 1
	}
	grid := GridFor(n)

	start := c.src.Now()
	c.dispatch(grid, w.Kernel)
	end := c.src.Now()

	t := Trial{Iterations: n, Grid: grid, Seconds: c.seconds(start, end)}
	if t.Seconds >= c.minTrial && t.Seconds > 0 {
		t.Accepted = true
		t.Throughput = float64(KernelFMAs) * WorkgroupInvocations * float64(n) / t.Seconds
		w.Samples = append(w.Samples, t.Throughput)
	}
	w.Iterations = NextIterations(n, t.Seconds, c.target)

	c.log.WithFields(logrus.Fields{
		"workload":   w.Name,
		"iterations": n,
		"grid":       grid,
		"seconds":    t.Seconds,
		"accepted":   t.Accepted,
		"next":       w.Iterations,
	}).Debug("trial")
	c.recorder.ObserveTrial(w.Name, n, t.Seconds, t.Accepted)
	return t
}

// NextIterations returns the iteration count for the trial after one that
// ran n iterations in seconds, steering towards target.
//
// Far below the target the count grows tenfold; otherwise it is scaled
// proportionally. The result is at least 1 and at most MaxIterations.
func NextIterations(n uint64, seconds, target float64) uint64 {
	if seconds < target/RampFactor {
		if n > MaxIterations/RampFactor {
			return MaxIterations
		}
		return n * RampFactor
	}
	next := math.Round(float64(n) * target / seconds)
	switch {
	case next < 1:
		return 1
	case next > float64(MaxIterations):
		return MaxIterations
	}
	return uint64(next)
}

// Run cycles through workloads, one trial each per round, until the budget
// has elapsed. The budget and ctx are checked between rounds only; a round
// in progress always completes. Run returns the number of rounds completed.
func (c *Calibrator) Run(ctx context.Context, workloads []*Workload) (int, error) {
	if len(workloads) == 0 {
		return 0, NewInvalidArgError("Run", "no workloads")
	}

	start := c.src.Now()
	for round := 1; ; round++ {
		for _, w := range workloads {
			c.RunTrial(w)
		}

		elapsed := c.seconds(start, c.src.Now())
		c.log.WithFields(logrus.Fields{
			"round":   round,
			"elapsed": elapsed,
		}).Info("calibration round complete")
		c.recorder.ObserveRound(round, elapsed)

		if elapsed >= c.budget {
			return round, nil
		}
		if err := ctx.Err(); err != nil {
			return round, err
		}
	}
}
