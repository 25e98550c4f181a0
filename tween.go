package pie

import (
	"time"

	"github.com/zoobzio/clockz"
)

// Tween is a single scalar animation in flight. The chart never computes
// interpolation itself; each sampler tick it reads Value and regenerates
// wedge geometry from whatever the provider currently reports.
type Tween interface {
	// Value returns the live interpolated value.
	Value() float64

	// Target returns the final value the tween settles at.
	Target() float64

	// Done reports whether the tween has reached its target.
	Done() bool
}

// Tweener produces scalar animations. Implement this to drive the chart from
// a platform animation substrate; the default implementation interpolates
// off a clockz.Clock.
type Tweener interface {
	// Tween starts animating from one value to another over the given
	// duration. A non-positive duration completes immediately at the target.
	Tween(from, to float64, d time.Duration) Tween
}

// EaseFunc maps normalized elapsed time t in [0, 1] to normalized progress.
type EaseFunc func(t float64) float64

// EaseLinear is constant-rate interpolation.
func EaseLinear(t float64) float64 {
	return t
}

// EaseInOutQuad accelerates through the first half and decelerates through
// the second, matching the default platform timing curve the original
// chart animated with.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

// ClockTweener is the default Tweener. It derives the live value of each
// tween from a clockz.Clock, so tests drive animations deterministically
// with clockz.FakeClock.
type ClockTweener struct {
	clock clockz.Clock
	ease  EaseFunc
}

// NewClockTweener creates a ClockTweener. A nil ease defaults to
// EaseInOutQuad.
func NewClockTweener(clock clockz.Clock, ease EaseFunc) *ClockTweener {
	if ease == nil {
		ease = EaseInOutQuad
	}
	return &ClockTweener{clock: clock, ease: ease}
}

// Tween starts a clock-driven scalar animation.
func (ct *ClockTweener) Tween(from, to float64, d time.Duration) Tween {
	return &clockTween{
		clock:   ct.clock,
		ease:    ct.ease,
		from:    from,
		to:      to,
		d:       d,
		started: ct.clock.Now(),
	}
}

type clockTween struct {
	clock   clockz.Clock
	ease    EaseFunc
	from    float64
	to      float64
	d       time.Duration
	started time.Time
}

func (t *clockTween) Value() float64 {
	if t.d <= 0 {
		return t.to
	}
	frac := float64(t.clock.Since(t.started)) / float64(t.d)
	if frac >= 1 {
		return t.to
	}
	if frac < 0 {
		frac = 0
	}
	return t.from + (t.to-t.from)*t.ease(frac)
}

func (t *clockTween) Target() float64 {
	return t.to
}

func (t *clockTween) Done() bool {
	return t.clock.Since(t.started) >= t.d
}

// Ensure ClockTweener implements Tweener.
var _ Tweener = (*ClockTweener)(nil)
