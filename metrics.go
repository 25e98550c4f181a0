package pie

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key chart events.
type MetricsProvider interface {
	// OnStateChange is called when the chart transitions between states.
	OnStateChange(from, to State)

	// OnReloadSettled is called when a batch settles. Kind is the
	// reconciliation kind ("add", "update", "remove", "noop") and duration
	// is wall time from submission to the last transition's completion.
	OnReloadSettled(kind string, duration time.Duration)

	// OnReloadRejected is called when a reload fails before mutation.
	// Stage indicates where: "busy", "validate", "layout", "plan", or
	// "middleware" for errors from pipeline options.
	OnReloadRejected(stage string)

	// OnFrame is called once per sampler tick while animations run.
	OnFrame()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_, _ State)                  {}
func (NoOpMetricsProvider) OnReloadSettled(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnReloadRejected(_ string)                 {}
func (NoOpMetricsProvider) OnFrame()                                  {}
