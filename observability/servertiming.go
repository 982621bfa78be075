package observability

import (
	"context"

	servertiming "github.com/mitchellh/go-server-timing"
)

// TimingMetric is a running Server-Timing metric.
type TimingMetric struct {
	metric *servertiming.Metric
}

// Stop stops the metric. It is safe on a no-op metric.
func (m *TimingMetric) Stop() {
	if m != nil && m.metric != nil {
		m.metric.Stop()
	}
}

// StartTiming starts a Server-Timing metric named name. When ctx carries no
// timing header the returned metric does nothing.
func StartTiming(ctx context.Context, name string) *TimingMetric {
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return &TimingMetric{}
	}
	return &TimingMetric{metric: timing.NewMetric(name).Start()}
}

// StartTimingWithDesc is StartTiming with a human readable description.
func StartTimingWithDesc(ctx context.Context, name, desc string) *TimingMetric {
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return &TimingMetric{}
	}
	return &TimingMetric{metric: timing.NewMetric(name).WithDesc(desc).Start()}
}
