package pie

import "time"

// Batch carries one reload through the processing pipeline. Middleware
// installed via WithMiddleware observes and may veto a batch before the
// submit stage mutates any wedge state.
//
// A Batch is handed to middleware under the chart lock; read chart state
// from its fields (Previous holds the committed values) rather than calling
// back into the Chart.
type Batch struct {
	// Values is the new value sequence supplied to Reload.
	Values []float64

	// Previous is the committed value sequence before the reload.
	Previous []float64

	// Spans is the target layout, populated by the layout stage.
	Spans []Span

	// Kind is the reconciliation kind ("add", "update", "remove", "noop"),
	// populated by the plan stage.
	Kind string

	plan      plan
	submitted int       // transitions actually started
	notify    []func()  // handler callbacks to fire outside the chart lock
	at        time.Time // submission time, for settle metrics
}
