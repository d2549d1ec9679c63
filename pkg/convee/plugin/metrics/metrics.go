// Package metrics provides a plugin that counts runs, outputs and
// failures and times runs with Prometheus collectors.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/failure"
	"github.com/ib-77/convee/pkg/convee/metadata"
)

// Collector owns the metric vectors. One collector serves any number of
// plugins; each plugin's name is its label value.
type Collector struct {
	runs     *prometheus.CounterVec
	outputs  *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector registers the vectors on reg (prometheus.DefaultRegisterer
// when nil) under the given namespace.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Runs that reached the input belt",
			},
			[]string{"plugin"},
		),
		outputs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outputs_total",
				Help:      "Runs that reached the output belt",
			},
			[]string{"plugin"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Core failures seen by the error belt",
			},
			[]string{"plugin"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Time from the input belt to the output belt",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"plugin"},
		),
	}

	for _, col := range []prometheus.Collector{c.runs, c.outputs, c.failures, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

type Plugin[I, O any] struct {
	name     string
	startKey string
	c        *Collector
}

// New returns a plugin reporting under name. The run start time is kept
// in the run's metadata under "metrics.<name>.start".
func New[I, O any](c *Collector, name string) *Plugin[I, O] {
	return &Plugin[I, O]{name: name, startKey: "metrics." + name + ".start", c: c}
}

func (p *Plugin[I, O]) Name() string {
	return p.name
}

func (p *Plugin[I, O]) ProcessInput(_ context.Context, in I, md *metadata.Helper) (I, error) {
	p.c.runs.WithLabelValues(p.name).Inc()
	md.Add(p.startKey, time.Now())
	return in, nil
}

func (p *Plugin[I, O]) ProcessOutput(_ context.Context, out O, md *metadata.Helper) (O, error) {
	p.c.outputs.WithLabelValues(p.name).Inc()
	if start, ok := metadata.Value[time.Time](md, p.startKey); ok {
		p.c.duration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())
	}
	return out, nil
}

func (p *Plugin[I, O]) ProcessError(_ context.Context, _ *failure.Error, _ *metadata.Helper) convee.Result[O] {
	p.c.failures.WithLabelValues(p.name).Inc()
	return convee.Fail[O](nil)
}
