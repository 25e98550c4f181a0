package pie

import "github.com/zoobzio/capitan"

// Reload batch signals.
var (
	// ReloadStarted is emitted when a reload batch is validated and its
	// transitions are submitted.
	ReloadStarted = capitan.NewSignal(
		"pie.reload.started",
		"Reload batch submitted",
	)

	// ReloadQueued is emitted when a reload arrives mid-batch and is
	// coalesced for submission at settle time.
	ReloadQueued = capitan.NewSignal(
		"pie.reload.queued",
		"Reload coalesced behind in-flight batch",
	)

	// ReloadRejected is emitted when a reload is rejected before any
	// mutation: invalid input, unsupported count change, or a batch already
	// in flight.
	ReloadRejected = capitan.NewSignal(
		"pie.reload.rejected",
		"Reload rejected without mutation",
	)

	// ReloadSettled is emitted when the last transition of a batch
	// completes and the chart geometry matches the committed layout.
	ReloadSettled = capitan.NewSignal(
		"pie.reload.settled",
		"Reload batch settled",
	)
)

// Wedge lifecycle signals.
var (
	// WedgeAdded is emitted when reconciliation creates a wedge.
	WedgeAdded = capitan.NewSignal(
		"pie.wedge.added",
		"Wedge created by reconciliation",
	)

	// WedgeRemoved is emitted when a removed wedge is evicted at settle
	// time, after its covering animations finish.
	WedgeRemoved = capitan.NewSignal(
		"pie.wedge.removed",
		"Wedge evicted after removal batch settled",
	)
)

// Sampler signals.
var (
	// SamplerStarted is emitted when the first animation of a batch starts
	// the frame-sampling loop.
	SamplerStarted = capitan.NewSignal(
		"pie.sampler.started",
		"Frame sampling loop started",
	)

	// SamplerStopped is emitted when the last animation completes and the
	// frame-sampling loop shuts down.
	SamplerStopped = capitan.NewSignal(
		"pie.sampler.stopped",
		"Frame sampling loop stopped",
	)
)

// Selection signals.
var (
	// SelectionChanged is emitted after a selection transition's handler
	// events have fired.
	SelectionChanged = capitan.NewSignal(
		"pie.selection.changed",
		"Selection moved to a different wedge",
	)
)

// Feed signals.
var (
	// FeedStarted is emitted when a Feed begins watching its source.
	FeedStarted = capitan.NewSignal(
		"pie.feed.started",
		"Feed watching started",
	)

	// FeedStopped is emitted when a Feed stops watching its source.
	FeedStopped = capitan.NewSignal(
		"pie.feed.stopped",
		"Feed watching stopped",
	)

	// FeedDatasetReceived is emitted when a decoded dataset passes
	// validation and is scheduled as one or more reload steps.
	FeedDatasetReceived = capitan.NewSignal(
		"pie.feed.dataset.received",
		"Dataset accepted from source",
	)

	// FeedDatasetRejected is emitted when source data fails decoding or
	// validation.
	FeedDatasetRejected = capitan.NewSignal(
		"pie.feed.dataset.rejected",
		"Dataset rejected",
	)

	// SourceReadFailed is emitted when a source observes a change but cannot
	// read the new contents. Watching continues.
	SourceReadFailed = capitan.NewSignal(
		"pie.source.read.failed",
		"Source change could not be read",
	)
)
