package pie

import (
	"context"

	"github.com/zoobzio/pipz"
)

// Option configures the reload processing pipeline of a Chart. Pipeline
// options wrap the batch pipeline (validate, layout, plan, submit) with
// middleware for observation or veto.
//
// The pipeline runs while the chart's internal lock is held, which is what
// makes a batch atomic. Middleware must therefore work only with the *Batch
// it receives and never call back into the Chart (Selected, Wedges, Values
// and the other accessors take the same lock and would deadlock). The Batch
// carries the committed values in Previous precisely so middleware does not
// need to.
//
// Instance configuration (duration, clock, palette, etc.) is handled via
// chainable methods on the Chart before its first Reload.
type Option func(pipz.Chainable[*Batch]) pipz.Chainable[*Batch]

// buildPipeline wraps the core batch pipeline with pipeline options.
func buildPipeline(core pipz.Chainable[*Batch], opts []Option) pipz.Chainable[*Batch] {
	pipeline := core
	for _, opt := range opts {
		pipeline = opt(pipeline)
	}
	return pipeline
}

// WithErrorHandler adds error observation to the pipeline. Rejected reloads
// are passed to the handler for logging, metrics, or alerting, but the error
// still propagates to the Reload caller. Use this for observability, not
// recovery: retrying a rejected batch against mutated chart state is never
// safe, which is why there is no retry option.
func WithErrorHandler(handler pipz.Chainable[*pipz.Error[*Batch]]) Option {
	return func(p pipz.Chainable[*Batch]) pipz.Chainable[*Batch] {
		return pipz.NewHandle("error-handler", p, handler)
	}
}

// WithMiddleware wraps the pipeline with a sequence of processors.
// Processors execute in order, with the core batch pipeline last, so
// middleware sees every batch before any wedge state is touched.
//
// Use the Use* functions to create processors, or provide custom
// pipz.Chainable implementations directly. Processors run under the chart
// lock; see Option for the contract.
func WithMiddleware(processors ...pipz.Chainable[*Batch]) Option {
	return func(p pipz.Chainable[*Batch]) pipz.Chainable[*Batch] {
		all := make([]pipz.Chainable[*Batch], 0, len(processors)+1)
		all = append(all, processors...)
		all = append(all, p)
		return pipz.NewSequence("middleware", all...)
	}
}

// UseTransform creates a processor that transforms the batch. Cannot fail.
func UseTransform(name string, fn func(context.Context, *Batch) *Batch) pipz.Chainable[*Batch] {
	return pipz.Transform(pipz.Name(name), fn)
}

// UseApply creates a processor that can transform the batch and fail.
// Returning an error vetoes the reload before any mutation.
func UseApply(name string, fn func(context.Context, *Batch) (*Batch, error)) pipz.Chainable[*Batch] {
	return pipz.Apply(pipz.Name(name), fn)
}

// UseEffect creates a processor that performs a side effect. The batch
// passes through unchanged. Use for logging, metrics, or notifications.
func UseEffect(name string, fn func(context.Context, *Batch) error) pipz.Chainable[*Batch] {
	return pipz.Effect(pipz.Name(name), fn)
}
