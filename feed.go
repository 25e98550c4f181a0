package pie

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for feed change
// processing.
const DefaultDebounce = 100 * time.Millisecond

// Dataset is the wire form of one chart reload arriving from a Source.
type Dataset struct {
	// Values is the slice value sequence, in display order.
	Values []float64 `json:"values" yaml:"values"`

	// Speed optionally reconfigures the animation duration, in seconds.
	// Zero leaves the chart's configured duration unchanged.
	Speed float64 `json:"speed,omitempty" yaml:"speed,omitempty"`
}

// Validate rejects datasets the chart would refuse, before any reload step
// is scheduled.
func (d Dataset) Validate() error {
	var sum float64
	for i, v := range d.Values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %v at index %d: %w", v, i, ErrInvalidInput)
		}
		sum += v
	}
	if sum == 0 && len(d.Values) > 0 {
		return fmt.Errorf("%d values: %w", len(d.Values), ErrZeroTotal)
	}
	if d.Speed < 0 {
		return fmt.Errorf("speed %v: %w", d.Speed, ErrInvalidDuration)
	}
	return nil
}

// Feed watches a Source for datasets and drives a Chart's reloads from
// them. Because the chart only reconciles single-step count changes, a feed
// serializes larger jumps into a queue of single-step reloads, submitting
// the next step each time the chart settles.
type Feed struct {
	chart    *Chart
	source   Source
	codec    Codec
	debounce time.Duration
	clock    clockz.Clock
	syncMode bool

	mu      sync.Mutex
	started bool
	queue   [][]float64
	last    []float64

	// For sync mode: channel to receive changes
	changes <-chan []byte

	lastError atomic.Pointer[error]
}

// NewFeed creates a Feed binding a source to a chart. Configuration uses
// chainable methods before calling Start.
//
// Example:
//
//	feed := pie.NewFeed(chart, pie.NewFileSource("data.json")).
//	    Debounce(200 * time.Millisecond)
func NewFeed(chart *Chart, source Source) *Feed {
	return &Feed{
		chart:    chart,
		source:   source,
		codec:    AutoCodec{},
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
	}
}

// Codec sets the codec for deserializing dataset bytes.
// Default: AutoCodec. Must be called before Start.
func (f *Feed) Codec(codec Codec) *Feed {
	f.codec = codec
	return f
}

// Debounce sets the debounce duration for change processing. Changes
// arriving within this duration are coalesced into a single dataset.
// Default: DefaultDebounce. Must be called before Start.
func (f *Feed) Debounce(d time.Duration) *Feed {
	f.debounce = d
	return f
}

// Clock sets a custom clock for debounce timing.
// Use this with clockz.FakeClock for deterministic testing.
// Must be called before Start.
func (f *Feed) Clock(clock clockz.Clock) *Feed {
	f.clock = clock
	return f
}

// SyncMode enables synchronous processing for testing. In sync mode,
// changes are processed only through explicit Process calls, without
// debouncing or goroutines. Must be called before Start.
func (f *Feed) SyncMode() *Feed {
	f.syncMode = true
	return f
}

// LastError returns the last dataset or reload error, or nil.
func (f *Feed) LastError() error {
	ptr := f.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Start begins watching the source. It blocks until the first dataset is
// processed (success or failure), then continues watching asynchronously.
// Start can only be called once.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return fmt.Errorf("feed already started")
	}
	f.started = true
	f.mu.Unlock()

	capitan.Emit(ctx, FeedStarted, KeyDebounce.Field(f.debounce))

	// Each settle pumps the next serialized step, if any.
	f.chart.OnSettle(func() { f.advance(ctx) })

	changes, err := f.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start source: %w", err)
	}

	// Wait for first dataset and process synchronously
	var initialErr error
	select {
	case <-ctx.Done():
		return ctx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("source closed before emitting initial value")
		}
		initialErr = f.process(ctx, raw)
	}

	if f.syncMode {
		// In sync mode, store channel for manual processing
		f.changes = changes
		return initialErr
	}

	// Continue watching asynchronously
	go f.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next value from the source.
// This is only available in sync mode and is used for deterministic testing.
// Returns false if no value is available or the channel is closed.
func (f *Feed) Process(ctx context.Context) bool {
	if !f.syncMode {
		return false
	}

	select {
	case raw, ok := <-f.changes:
		if !ok {
			return false
		}
		_ = f.process(ctx, raw) //nolint:errcheck // Errors stored via setError
		return true
	default:
		return false
	}
}

// process decodes and validates one dataset, then schedules its reload
// steps.
func (f *Feed) process(ctx context.Context, raw []byte) error {
	var ds Dataset
	if err := f.codec.Unmarshal(raw, &ds); err != nil {
		f.setError(err)
		capitan.Emit(ctx, FeedDatasetRejected, KeyError.Field(err.Error()))
		return fmt.Errorf("unmarshal failed: %w", err)
	}
	if err := ds.Validate(); err != nil {
		f.setError(err)
		capitan.Emit(ctx, FeedDatasetRejected, KeyError.Field(err.Error()))
		return fmt.Errorf("validation failed: %w", err)
	}

	if ds.Speed > 0 {
		_ = f.chart.SetDuration(time.Duration(ds.Speed * float64(time.Second))) //nolint:errcheck // Positive by validation
	}

	f.mu.Lock()
	steps := serializeSteps(f.last, ds.Values)
	f.queue = steps
	f.mu.Unlock()

	capitan.Emit(ctx, FeedDatasetReceived,
		KeySlices.Field(len(ds.Values)),
		KeySteps.Field(len(steps)),
	)

	f.advance(ctx)
	return nil
}

// advance submits the next queued step when the chart is idle. Called after
// dataset arrival and from the chart's settle callback.
func (f *Feed) advance(ctx context.Context) {
	f.mu.Lock()
	if len(f.queue) == 0 || f.chart.State() == StateAnimating {
		f.mu.Unlock()
		return
	}
	step := f.queue[0]
	f.queue = f.queue[1:]
	f.last = step
	f.mu.Unlock()

	if err := f.chart.Reload(ctx, step); err != nil {
		f.setError(err)
		// A failed step invalidates the remaining serialization; resync
		// from the chart's committed values.
		f.mu.Lock()
		f.queue = nil
		f.last = f.chart.Values()
		f.mu.Unlock()
	}
}

// setError stores an error atomically.
func (f *Feed) setError(err error) {
	e := err
	f.lastError.Store(&e)
}

// watch processes changes from the source channel with debouncing.
func (f *Feed) watch(ctx context.Context, changes <-chan []byte) {
	defer capitan.Emit(ctx, FeedStopped)

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		// Get timer channel or nil if no timer
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				// Channel closed, process any pending change
				if hasPending {
					_ = f.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				}
				return
			}

			pending = raw
			hasPending = true

			// Reset or start debounce timer
			if timer == nil {
				timer = f.clock.NewTimer(f.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(f.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = f.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				hasPending = false
			}
		}
	}
}

// serializeSteps turns an arbitrary count change into a sequence of
// single-step value sequences the chart will accept. Growth walks prefixes
// of the target; shrinkage truncates the current values one slice at a time
// before landing on the target.
func serializeSteps(current, target []float64) [][]float64 {
	c, n := len(current), len(target)
	var steps [][]float64

	switch {
	case n > c:
		for k := c + 1; k <= n; k++ {
			steps = append(steps, append([]float64(nil), target[:k]...))
		}
	case n < c:
		for k := c - 1; k > n; k-- {
			steps = append(steps, append([]float64(nil), current[:k]...))
		}
		steps = append(steps, append([]float64(nil), target...))
	default:
		if floatsEqual(current, target) {
			return nil
		}
		steps = append(steps, append([]float64(nil), target...))
	}
	return steps
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
