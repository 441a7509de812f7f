// Package telemetry exports calibration progress and results as Prometheus
// metrics.
//
// A Recorder owns a private registry, so several recorders (one per test,
// for instance) never collide. Metrics are labelled by workload name only;
// there are eight workloads, so cardinality is fixed.
package telemetry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values for trials.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Recorder collects calibration metrics.
type Recorder struct {
	registry *prometheus.Registry

	trials       *prometheus.CounterVec
	trialSeconds *prometheus.HistogramVec
	iterations   *prometheus.GaugeVec
	throughput   *prometheus.GaugeVec
	samples      *prometheus.GaugeVec
	rounds       prometheus.Gauge
	elapsed      prometheus.Gauge
}

// New returns a Recorder with all metrics registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flopsbench_trials_total",
			Help: "Timed trials by workload and outcome (accepted trials ran past the noise floor)",
		}, []string{"workload", "outcome"}),
		trialSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flopsbench_trial_seconds",
			Help:    "Duration of timed trials",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}, []string{"workload"}),
		iterations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "flopsbench_trial_workgroups",
			Help: "Workgroups requested by the most recent trial",
		}, []string{"workload"}),
		throughput: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "flopsbench_throughput_flops",
			Help: "Throughput of accepted trials by statistic (median, q1, q3)",
		}, []string{"workload", "stat"}),
		samples: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "flopsbench_samples",
			Help: "Accepted samples behind the throughput statistics",
		}, []string{"workload"}),
		rounds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flopsbench_rounds",
			Help: "Calibration rounds completed",
		}),
		elapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flopsbench_elapsed_seconds",
			Help: "Measurement time spent at the end of the last round",
		}),
	}
	r.registry.MustRegister(r.trials, r.trialSeconds, r.iterations, r.throughput, r.samples, r.rounds, r.elapsed)
	return r
}

// ObserveTrial records one timed trial.
func (r *Recorder) ObserveTrial(workload string, iterations uint64, seconds float64, accepted bool) {
	outcome := OutcomeRejected
	if accepted {
		outcome = OutcomeAccepted
	}
	r.trials.WithLabelValues(workload, outcome).Inc()
	r.trialSeconds.WithLabelValues(workload).Observe(seconds)
	r.iterations.WithLabelValues(workload).Set(float64(iterations))
}

// ObserveRound records the end of a calibration round.
func (r *Recorder) ObserveRound(round int, elapsed float64) {
	r.rounds.Set(float64(round))
	r.elapsed.Set(elapsed)
}

// ObserveSummary publishes the final statistics of a workload.
func (r *Recorder) ObserveSummary(workload string, median, q1, q3 float64, count int) {
	r.throughput.WithLabelValues(workload, "median").Set(median)
	r.throughput.WithLabelValues(workload, "q1").Set(q1)
	r.throughput.WithLabelValues(workload, "q3").Set(q3)
	r.samples.WithLabelValues(workload).Set(float64(count))
}

// Handler serves the recorder's metrics in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Listen binds addr and serves /metrics on it until ctx is done.
// The returned address is the one actually bound (useful with ":0").
// Serve errors after a successful bind are reported on the returned channel.
func (r *Recorder) Listen(ctx context.Context, addr string) (net.Addr, <-chan error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	return ln.Addr(), errc, nil
}
