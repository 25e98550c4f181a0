package pie

import "image/color"

// property identifies an independently animatable scalar on a wedge.
type property int

const (
	propStart property = iota
	propEnd
	propOpacity
	propertyCount
)

func (p property) String() string {
	switch p {
	case propStart:
		return "startAngle"
	case propEnd:
		return "endAngle"
	case propOpacity:
		return "opacity"
	default:
		return "unknown"
	}
}

// Layer is a wedge's z-order tier. Back-to-front paint order is
// LayerBack, LayerNormal (by index), LayerSelected.
type Layer int

const (
	// LayerBack holds wedges scheduled for removal; survivors slide over
	// them until the batch settles and they are evicted.
	LayerBack Layer = iota

	// LayerNormal holds unselected wedges.
	LayerNormal

	// LayerSelected holds the selected wedge, painted in front.
	LayerSelected
)

func (l Layer) String() string {
	switch l {
	case LayerBack:
		return "back"
	case LayerNormal:
		return "normal"
	case LayerSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// Label is a wedge's value label: text plus a directly positioned anchor.
// Label motion is a derived effect of angle interpolation, never animated
// on its own.
type Label struct {
	Text string
	At   Point
}

// wedge is the per-slice render and animation unit. Committed angles are the
// model values; while a tween is in flight on a property, the live value
// comes from the tween instead.
type wedge struct {
	value   float64
	color   color.NRGBA
	layer   Layer
	removed bool

	// Committed model values.
	startAngle float64
	endAngle   float64
	opacity    float64

	// In-flight tween per property, nil when idle.
	anim [propertyCount]Tween

	path  *Path
	label Label
}

func newWedge(c color.NRGBA) *wedge {
	return &wedge{
		color:   c,
		layer:   LayerNormal,
		opacity: 1,
		path:    NewPath(),
	}
}

// live returns the current value of a property: the tween's live value while
// one is in flight, the committed model value otherwise.
func (w *wedge) live(p property) float64 {
	if tw := w.anim[p]; tw != nil {
		return tw.Value()
	}
	return w.committed(p)
}

func (w *wedge) committed(p property) float64 {
	switch p {
	case propStart:
		return w.startAngle
	case propEnd:
		return w.endAngle
	default:
		return w.opacity
	}
}

func (w *wedge) commit(p property, v float64) {
	switch p {
	case propStart:
		w.startAngle = v
	case propEnd:
		w.endAngle = v
	default:
		w.opacity = v
	}
}

// animating reports whether any property tween is in flight.
func (w *wedge) animating() bool {
	for _, tw := range w.anim {
		if tw != nil {
			return true
		}
	}
	return false
}

// rebuild regenerates the wedge path and label anchor from the live angles.
// Called once per sampler tick while animating and once more at settle time
// with the exact committed values.
func (w *wedge) rebuild(center Point, radius float64) {
	start := w.live(propStart)
	end := w.live(propEnd)
	w.path.Clear()
	w.path.Wedge(center, radius, start, end)

	mid := (start + end) / 2
	w.label.At = center.Add(angleVector(mid).Mul(radius / 2))
}

// WedgeView is a read-only snapshot of one wedge, as returned by
// Chart.Wedges. Angles and opacity are live values when taken mid-animation.
type WedgeView struct {
	Index   int
	Value   float64
	Start   float64
	End     float64
	Opacity float64
	Color   color.NRGBA
	Layer   Layer
	Label   Label
	Path    *Path
	Removed bool
}
