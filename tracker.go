package pie

import (
	"math"
	"time"
)

// Transitions closer than this are treated as already at their target and
// not animated, which makes an identical reload settle immediately.
const transitionEpsilon = 1e-9

// animation is one in-flight transition on a wedge property.
type animation struct {
	w    *wedge
	prop property
	tw   Tween
}

// tracker is the animation lifecycle bookkeeper: it reference-counts
// in-flight transitions so the chart can start the frame-sampling loop when
// the first animation begins and stop it when the last one completes. It is
// owned by the chart and guarded by the chart's lock.
type tracker struct {
	tweener Tweener
	active  []*animation
	frames  int
}

// submit starts a transition toward a new target. The from value is the
// wedge's committed model value unless a prior tween on the same property is
// still in flight, in which case the live interpolated value is used so the
// redirected animation continues without a visible jump. Transitions whose
// from and to already coincide are skipped; submit reports whether a tween
// was actually started.
func (t *tracker) submit(w *wedge, p property, to float64, d time.Duration) bool {
	from := w.committed(p)
	if tw := w.anim[p]; tw != nil {
		from = tw.Value()
		t.drop(w, p)
	}
	if math.Abs(to-from) < transitionEpsilon {
		w.commit(p, to)
		return false
	}
	tw := t.tweener.Tween(from, to, d)
	w.anim[p] = tw
	t.active = append(t.active, &animation{w: w, prop: p, tw: tw})
	return true
}

// drop discards a wedge property's in-flight tween without committing its
// target. Used when a removed wedge is detached from animation and when a
// transition is redirected mid-flight.
func (t *tracker) drop(w *wedge, p property) {
	if w.anim[p] == nil {
		return
	}
	w.anim[p] = nil
	for i, a := range t.active {
		if a.w == w && a.prop == p {
			t.active = append(t.active[:i], t.active[i+1:]...)
			return
		}
	}
}

// detach discards every in-flight tween on a wedge.
func (t *tracker) detach(w *wedge) {
	for p := property(0); p < propertyCount; p++ {
		t.drop(w, p)
	}
}

// sweep commits finished transitions to their exact targets and clears them
// from the active set, returning the number still in flight.
func (t *tracker) sweep() int {
	kept := t.active[:0]
	for _, a := range t.active {
		if a.tw.Done() {
			a.w.commit(a.prop, a.tw.Target())
			a.w.anim[a.prop] = nil
			continue
		}
		kept = append(kept, a)
	}
	t.active = kept
	return len(kept)
}

// finish commits every in-flight transition at its exact target and clears
// the active set. Used when a batch must settle immediately, ahead of its
// animations.
func (t *tracker) finish() {
	for _, a := range t.active {
		a.w.commit(a.prop, a.tw.Target())
		a.w.anim[a.prop] = nil
	}
	t.active = t.active[:0]
}

// animating reports whether any transition is in flight. The frame-sampling
// loop runs exactly while this holds.
func (t *tracker) animating() bool {
	return len(t.active) > 0
}
