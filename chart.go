package pie

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// NoSelection is the sentinel index meaning no slice is selected.
const NoSelection = -1

// DefaultDuration is the animation duration applied to reload transitions
// unless configured otherwise.
const DefaultDuration = 500 * time.Millisecond

// DefaultFrameRate is the nominal sampler tick rate in frames per second.
// The sampler rate is independent of the tween provider's own stepping: the
// provider is only ever read, never driven.
const DefaultFrameRate = 60

// Chart is an animated pie chart engine. Reload diffs the previous wedge
// layout against a new value sequence, classifies the batch as an add,
// update, or remove, and animates every wedge toward its new angular span.
// While any transition is in flight a frame-sampling loop reads the live
// interpolated angles and regenerates exact wedge geometry each tick,
// because the tween provider interpolates scalars, not arc shapes.
//
// A Chart is safe for concurrent use, but a reload batch is atomic: at most
// one is in flight, and interaction is deferred until it settles.
type Chart struct {
	tweener       Tweener
	customTweener bool
	clock         clockz.Clock
	ease          EaseFunc
	duration      time.Duration
	framePeriod   time.Duration
	palette       []color.NRGBA
	origin        float64
	center        Point
	radius        float64
	syncMode      bool
	queueReloads  bool
	metrics       MetricsProvider
	handler       SelectionHandler
	formatLabel   func(index int, value float64) string
	pipeline      pipz.Chainable[*Batch]

	mu         sync.Mutex
	wedges     []*wedge
	removed    *wedge // pending eviction until the batch settles
	selected   int
	busy       bool
	pending    []float64
	hasPending bool
	nextColor  int
	tracker    tracker
	onSettle   []func()
	batchKind  opKind
	batchStart time.Time

	state     atomic.Int32
	lastError atomic.Pointer[error]
	history   *reloadRing
}

// New creates a Chart. Pipeline options (With*) configure the reload
// processing pipeline; instance configuration uses chainable methods before
// the first Reload.
//
// Example:
//
//	chart := pie.New().
//	    Size(512, 512).
//	    Duration(300 * time.Millisecond).
//	    Selection(handler)
func New(opts ...Option) *Chart {
	c := &Chart{
		clock:       clockz.RealClock,
		duration:    DefaultDuration,
		framePeriod: time.Second / DefaultFrameRate,
		palette:     DefaultPalette,
		center:      Pt(0.5, 0.5),
		radius:      0.5,
		selected:    NoSelection,
		formatLabel: defaultLabel,
	}
	c.tweener = NewClockTweener(c.clock, nil)
	c.tracker.tweener = c.tweener

	core := pipz.NewSequence("reload",
		c.validateStage(),
		c.layoutStage(),
		c.planStage(),
		c.submitStage(),
	)
	c.pipeline = buildPipeline(core, opts)
	return c
}

func defaultLabel(_ int, v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Duration sets the animation duration applied to subsequent reloads.
// Default: DefaultDuration. Non-positive values are ignored; use SetDuration
// for validated configuration at runtime.
func (c *Chart) Duration(d time.Duration) *Chart {
	if d > 0 {
		c.duration = d
	}
	return c
}

// Clock sets a custom clock for the sampler timer and the default tween
// provider. Use this with clockz.FakeClock for deterministic animation
// testing. Must be called before the first Reload.
func (c *Chart) Clock(clock clockz.Clock) *Chart {
	c.clock = clock
	if !c.customTweener {
		c.tweener = NewClockTweener(clock, c.ease)
		c.tracker.tweener = c.tweener
	}
	return c
}

// Easing sets the easing curve of the default tween provider.
// Default: EaseInOutQuad. Ignored when a custom Tweener is installed.
func (c *Chart) Easing(ease EaseFunc) *Chart {
	c.ease = ease
	if !c.customTweener {
		c.tweener = NewClockTweener(c.clock, ease)
		c.tracker.tweener = c.tweener
	}
	return c
}

// Tweener replaces the interpolation provider. The chart treats the provider
// as opaque: it submits scalar transitions and reads live values back.
// Must be called before the first Reload.
func (c *Chart) Tweener(t Tweener) *Chart {
	c.tweener = t
	c.customTweener = true
	c.tracker.tweener = t
	return c
}

// Palette sets the cyclic color sequence for added wedges.
// Default: DefaultPalette. Empty palettes are ignored.
func (c *Chart) Palette(colors []color.NRGBA) *Chart {
	if len(colors) > 0 {
		c.palette = colors
	}
	return c
}

// Origin sets the reference angle the first wedge starts at, in radians.
// Default: 0 (along +x).
func (c *Chart) Origin(angle float64) *Chart {
	c.origin = angle
	return c
}

// Geometry sets the wedge center and radius in chart coordinates.
func (c *Chart) Geometry(center Point, radius float64) *Chart {
	c.center = center
	c.radius = radius
	return c
}

// Size centers the chart in a w-by-h frame, with the radius filling the
// smaller dimension.
func (c *Chart) Size(w, h float64) *Chart {
	c.center = Pt(w/2, h/2)
	if w < h {
		c.radius = w / 2
	} else {
		c.radius = h / 2
	}
	return c
}

// FrameRate sets the nominal sampler tick rate. Default: DefaultFrameRate.
func (c *Chart) FrameRate(fps int) *Chart {
	if fps > 0 {
		c.framePeriod = time.Second / time.Duration(fps)
	}
	return c
}

// SyncMode disables the internal frame loop goroutine. Each Pump call then
// advances exactly one sampler tick, making animation tests deterministic
// when combined with clockz.FakeClock.
func (c *Chart) SyncMode() *Chart {
	c.syncMode = true
	return c
}

// QueueReloads coalesces reloads arriving while a batch is in flight instead
// of rejecting them with ErrReloadInFlight. Only the latest queued value
// sequence is submitted, at settle time.
func (c *Chart) QueueReloads() *Chart {
	c.queueReloads = true
	return c
}

// HistorySize sets the number of recent reload records to retain.
// Use 0 (default) to only retain the most recent error via LastError.
func (c *Chart) HistorySize(n int) *Chart {
	c.history = newReloadRing(n)
	return c
}

// Metrics sets a metrics provider for observability integration.
func (c *Chart) Metrics(provider MetricsProvider) *Chart {
	c.metrics = provider
	return c
}

// Selection installs the selection event handler.
func (c *Chart) Selection(h SelectionHandler) *Chart {
	c.handler = h
	return c
}

// Labels sets the label text formatter. Default formats the slice value.
func (c *Chart) Labels(fn func(index int, value float64) string) *Chart {
	if fn != nil {
		c.formatLabel = fn
	}
	return c
}

// OnSettle registers a callback invoked after each batch settles, outside
// the chart lock. Callbacks may safely call Reload.
func (c *Chart) OnSettle(fn func()) *Chart {
	c.mu.Lock()
	c.onSettle = append(c.onSettle, fn)
	c.mu.Unlock()
	return c
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// State returns the current state of the Chart.
func (c *Chart) State() State {
	return State(c.state.Load())
}

// Selected returns the selected slice index, or NoSelection.
func (c *Chart) Selected() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// LastError returns the last rejected reload's error, or nil.
func (c *Chart) LastError() error {
	ptr := c.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// History returns recent reload records, oldest first.
// Returns nil unless HistorySize was configured.
func (c *Chart) History() []ReloadRecord {
	return c.history.all()
}

// Wedges returns a snapshot of every wedge in index order, preceded by the
// wedge pending removal if one exists. Angles and opacity are live values
// when taken mid-animation; paths are deep copies.
func (c *Chart) Wedges() []WedgeView {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]WedgeView, 0, len(c.wedges)+1)
	if c.removed != nil {
		out = append(out, viewOf(NoSelection, c.removed))
	}
	for i, w := range c.wedges {
		out = append(out, viewOf(i, w))
	}
	return out
}

func viewOf(i int, w *wedge) WedgeView {
	return WedgeView{
		Index:   i,
		Value:   w.value,
		Start:   w.live(propStart),
		End:     w.live(propEnd),
		Opacity: w.live(propOpacity),
		Color:   w.color,
		Layer:   w.layer,
		Label:   w.label,
		Path:    w.path.Clone(),
		Removed: w.removed,
	}
}

// Values returns the committed value of each slice in index order.
func (c *Chart) Values() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committedValues()
}

// SetDuration sets the animation duration applied to subsequent reloads.
// Returns ErrInvalidDuration for non-positive durations.
func (c *Chart) SetDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%v: %w", d, ErrInvalidDuration)
	}
	c.mu.Lock()
	c.duration = d
	c.mu.Unlock()
	return nil
}

// -----------------------------------------------------------------------------
// Reload
// -----------------------------------------------------------------------------

// Reload recomputes the layout for a new value sequence and animates the
// chart toward it as one atomic batch: either the whole batch is validated
// and submitted, or nothing is mutated.
//
// Exactly one wedge may be added or removed per reload; larger count jumps
// return ErrUnsupportedReconciliation. A reload arriving while a previous
// batch is still animating returns ErrReloadInFlight unless QueueReloads is
// enabled. Completion is signaled through OnSettle callbacks and the
// ReloadSettled signal.
//
// Canceling ctx while the batch animates does not abandon it: the frame loop
// snaps every transition to its target and settles the batch, so the chart
// stays interactive.
func (c *Chart) Reload(ctx context.Context, values []float64) error {
	vals := append([]float64(nil), values...)

	c.mu.Lock()
	if c.busy {
		if c.queueReloads {
			c.pending = vals
			c.hasPending = true
			c.mu.Unlock()
			capitan.Emit(ctx, ReloadQueued, KeySlices.Field(len(vals)))
			return nil
		}
		c.mu.Unlock()
		err := fmt.Errorf("%d slices: %w", len(vals), ErrReloadInFlight)
		c.reject(ctx, err, len(vals))
		return err
	}

	b := &Batch{
		Values:   vals,
		Previous: c.committedValues(),
		at:       c.clock.Now(),
	}
	if _, err := c.pipeline.Process(ctx, b); err != nil {
		c.mu.Unlock()
		c.reject(ctx, err, len(vals))
		return err
	}

	notify := b.notify
	var settled []func()
	if c.tracker.animating() {
		c.busy = true
		c.batchKind = b.plan.kind
		c.batchStart = b.at
		c.tracker.frames = 0
		c.setState(StateAnimating)
		capitan.Emit(ctx, ReloadStarted,
			KeyKind.Field(b.Kind),
			KeySlices.Field(len(vals)),
			KeyDuration.Field(c.duration),
		)
		capitan.Emit(ctx, SamplerStarted)
		if !c.syncMode {
			go c.run(ctx)
		}
	} else {
		// Nothing to animate: an idempotent update or an empty diff
		// settles in place.
		c.tracker.frames = 0
		settled = c.finalizeLocked(ctx, b.plan.kind, b.at)
	}
	c.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
	for _, fn := range settled {
		fn()
	}
	return nil
}

// committedValues snapshots the committed value of each wedge in index order.
func (c *Chart) committedValues() []float64 {
	vals := make([]float64, len(c.wedges))
	for i, w := range c.wedges {
		vals[i] = w.value
	}
	return vals
}

// reject records a refused reload. No wedge state was mutated.
func (c *Chart) reject(ctx context.Context, err error, slices int) {
	e := err
	c.lastError.Store(&e)
	c.history.push(ReloadRecord{
		Kind:   "rejected",
		Slices: slices,
		Err:    err,
		At:     c.clock.Now(),
	})
	if c.metrics != nil {
		c.metrics.OnReloadRejected(rejectStage(err))
	}
	capitan.Emit(ctx, ReloadRejected,
		KeyError.Field(err.Error()),
		KeySlices.Field(slices),
	)
}

// rejectStage maps a rejection to the pipeline stage that produced it.
func rejectStage(err error) string {
	switch {
	case errors.Is(err, ErrReloadInFlight):
		return "busy"
	case errors.Is(err, ErrInvalidInput):
		return "validate"
	case errors.Is(err, ErrZeroTotal):
		return "layout"
	case errors.Is(err, ErrUnsupportedReconciliation):
		return "plan"
	default:
		return "middleware"
	}
}

// -----------------------------------------------------------------------------
// Pipeline stages
// -----------------------------------------------------------------------------

// validateStage rejects malformed value sequences before anything else runs.
func (c *Chart) validateStage() pipz.Chainable[*Batch] {
	return pipz.Apply(pipz.Name("validate"), func(_ context.Context, b *Batch) (*Batch, error) {
		for i, v := range b.Values {
			if v < 0 {
				return b, fmt.Errorf("value %v at index %d: %w", v, i, ErrInvalidInput)
			}
		}
		return b, nil
	})
}

// layoutStage solves the target angular spans.
func (c *Chart) layoutStage() pipz.Chainable[*Batch] {
	return pipz.Apply(pipz.Name("layout"), func(_ context.Context, b *Batch) (*Batch, error) {
		spans, err := Solve(b.Values, c.origin)
		if err != nil {
			return b, err
		}
		b.Spans = spans
		return b, nil
	})
}

// planStage diffs the new layout against the current wedge set.
func (c *Chart) planStage() pipz.Chainable[*Batch] {
	return pipz.Apply(pipz.Name("plan"), func(_ context.Context, b *Batch) (*Batch, error) {
		p, err := reconcile(len(c.wedges), b.Spans, b.Values, c.selected)
		if err != nil {
			return b, err
		}
		b.plan = p
		b.Kind = p.kind.String()
		return b, nil
	})
}

// submitStage mutates wedge state and starts transitions. It runs last and
// cannot fail; every rejection has already happened.
func (c *Chart) submitStage() pipz.Chainable[*Batch] {
	return pipz.Effect(pipz.Name("submit"), func(ctx context.Context, b *Batch) error {
		c.apply(ctx, b)
		return nil
	})
}

// apply executes a validated plan against the wedge set.
func (c *Chart) apply(ctx context.Context, b *Batch) {
	p := b.plan
	d := c.duration

	switch p.kind {
	case opNoop:

	case opAdd:
		for i, w := range c.wedges {
			c.retarget(i, w, p.spans[i], p.values[i], d)
		}
		idx := len(c.wedges)
		sp := p.spans[idx]
		w := newWedge(c.palette[c.nextColor%len(c.palette)])
		c.nextColor++
		w.value = p.values[idx]
		// A new wedge opens from a zero-width sliver at its end edge: the
		// committed angles both start where a zero-valued slice at this
		// index would sit, and startAngle sweeps back to its real target.
		w.startAngle = sp.End
		w.endAngle = sp.End
		w.label.Text = c.formatLabel(idx, w.value)
		w.rebuild(c.center, c.radius)
		c.wedges = append(c.wedges, w)
		c.tracker.submit(w, propStart, sp.Start, d)
		c.tracker.submit(w, propEnd, sp.End, d)
		capitan.Emit(ctx, WedgeAdded,
			KeyIndex.Field(idx),
			KeySlices.Field(len(c.wedges)),
		)

	case opUpdate:
		for i, w := range c.wedges {
			c.retarget(i, w, p.spans[i], p.values[i], d)
		}

	case opRemove:
		w := c.wedges[p.removedIdx]
		// The removed wedge stops animating and drops to the back of the
		// z-order; survivors slide over it and it is evicted only after the
		// batch settles, so nothing visible ever pops.
		c.tracker.detach(w)
		w.removed = true
		w.layer = LayerBack
		c.removed = w
		c.wedges = append(c.wedges[:p.removedIdx], c.wedges[p.removedIdx+1:]...)

		if p.fadeOut {
			// No survivors to cover the last wedge; fade it out instead.
			c.tracker.submit(w, propOpacity, 0, d)
		}
		for i, surv := range c.wedges {
			c.retarget(i, surv, p.spans[i], p.values[i], d)
		}

		if c.selected != NoSelection {
			prev := c.selected
			c.selected = NoSelection
			b.notify = append(b.notify, c.selectionEvents(ctx, prev, NoSelection)...)
		}
	}
	b.submitted = len(c.tracker.active)
}

// retarget animates an existing wedge toward a new span and updates its
// committed value and label text.
func (c *Chart) retarget(index int, w *wedge, sp Span, value float64, d time.Duration) {
	w.value = value
	w.label.Text = c.formatLabel(index, value)
	c.tracker.submit(w, propStart, sp.Start, d)
	c.tracker.submit(w, propEnd, sp.End, d)
}

// -----------------------------------------------------------------------------
// Sampler
// -----------------------------------------------------------------------------

// Pump advances one sampler tick: it rebuilds the geometry of every
// animating wedge from the live interpolated values, commits finished
// transitions, and finalizes the batch when the last one completes. In sync
// mode tests call Pump directly after advancing a fake clock; otherwise the
// internal frame loop calls it at the configured frame rate.
//
// Pump reports whether the chart is settled (no transitions in flight).
func (c *Chart) Pump(ctx context.Context) bool {
	c.mu.Lock()
	if !c.busy && !c.tracker.animating() {
		c.mu.Unlock()
		return true
	}

	c.tracker.frames++
	if c.metrics != nil {
		c.metrics.OnFrame()
	}
	for _, w := range c.wedges {
		if w.animating() {
			w.rebuild(c.center, c.radius)
		}
	}

	var fns []func()
	settled := c.tracker.sweep() == 0
	if settled {
		capitan.Emit(ctx, SamplerStopped, KeyFrames.Field(c.tracker.frames))
		fns = c.finalizeLocked(ctx, c.batchKind, c.batchStart)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return settled
}

// run is the frame loop for async charts. It lives only while a batch is in
// flight: started by Reload on the first transition, stopped by Pump after
// the last one completes.
func (c *Chart) run(ctx context.Context) {
	t := c.clock.NewTimer(c.framePeriod)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			c.cancelBatch(ctx)
			return
		case <-t.C():
			if c.Pump(ctx) {
				return
			}
			t.Reset(c.framePeriod)
		}
	}
}

// cancelBatch finalizes an in-flight batch whose frame loop lost its
// context: every transition snaps to its exact target and the batch settles
// immediately. Without this the busy gate would never release and the chart
// would refuse reloads and interaction forever.
func (c *Chart) cancelBatch(ctx context.Context) {
	c.mu.Lock()
	if !c.busy {
		c.mu.Unlock()
		return
	}
	c.tracker.finish()
	capitan.Emit(ctx, SamplerStopped, KeyFrames.Field(c.tracker.frames))
	fns := c.finalizeLocked(ctx, c.batchKind, c.batchStart)
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// finalizeLocked commits the settled batch: exact final geometry, eviction
// of the removed wedge, state transition, and bookkeeping. It returns the
// settle callbacks to run outside the lock.
func (c *Chart) finalizeLocked(ctx context.Context, kind opKind, started time.Time) []func() {
	for _, w := range c.wedges {
		w.rebuild(c.center, c.radius)
	}
	if c.removed != nil {
		c.removed = nil
		capitan.Emit(ctx, WedgeRemoved, KeySlices.Field(len(c.wedges)))
	}
	c.busy = false
	if len(c.wedges) == 0 {
		c.setState(StateEmpty)
	} else {
		c.setState(StateSettled)
	}

	c.history.push(ReloadRecord{
		Kind:   kind.String(),
		Slices: len(c.wedges),
		At:     c.clock.Now(),
	})
	if c.metrics != nil {
		c.metrics.OnReloadSettled(kind.String(), c.clock.Since(started))
	}
	capitan.Emit(ctx, ReloadSettled,
		KeyKind.Field(kind.String()),
		KeySlices.Field(len(c.wedges)),
		KeyFrames.Field(c.tracker.frames),
	)

	fns := make([]func(), 0, len(c.onSettle)+1)
	fns = append(fns, c.onSettle...)
	if c.hasPending {
		vals := c.pending
		c.pending = nil
		c.hasPending = false
		fns = append(fns, func() {
			_ = c.Reload(ctx, vals) //nolint:errcheck // Errors recorded via LastError
		})
	}
	return fns
}

// setState transitions the chart state and notifies metrics.
func (c *Chart) setState(to State) {
	from := State(c.state.Load())
	if from == to {
		return
	}
	c.state.Store(int32(to))
	if c.metrics != nil {
		c.metrics.OnStateChange(from, to)
	}
}
