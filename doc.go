/*
Package pie implements an animated pie chart engine: a slice-geometry
reconciler layered on top of an opaque scalar tween provider.

pie is designed to be embedded within rendering hosts, not to render by
itself. A host supplies value sequences; the engine assigns angular wedges,
diffs the previous layout against the new one, and animates every changed
wedge, regenerating exact arc geometry each frame because scalar tweens
cannot interpolate arc shapes in a visually correct way.

# Basic Usage

Create a chart and reload it with value sequences:

	chart := pie.New().
	    Size(512, 512).
	    Duration(300 * time.Millisecond)

	if err := chart.Reload(ctx, []float64{10}); err != nil {
	    log.Fatal(err)
	}

Each reload is one atomic batch. The slice count may change by at most one
per reload: growth appends a wedge that animates open from a sliver at its
end edge, shrinkage removes the selected (or last) wedge by sliding the
survivors over it. Completion is observable through OnSettle callbacks and
capitan signals.

# Selection

Hit-testing drives selection, with ordered will/did events:

	chart.Selection(handler)
	chart.SelectAt(ctx, pie.Pt(256, 180))

# Feeding from a source

A Feed watches a dataset origin and drives reloads, serializing multi-step
count changes into single-step batches:

	feed := pie.NewFeed(chart, pie.NewFileSource("data.json"))
	if err := feed.Start(ctx); err != nil {
	    log.Printf("initial dataset: %v", err)
	}

# Testing

Animations are deterministic under test: configure SyncMode and a
clockz.FakeClock, advance the clock, and call Pump to run sampler ticks
manually.

The package is built on top of:
  - pipz: for the composable reload processing pipeline
  - clockz: for swappable animation and debounce timing
  - capitan: for observability signals
*/
package pie
