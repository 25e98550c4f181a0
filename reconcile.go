package pie

import "fmt"

// opKind classifies one reconciliation batch.
type opKind int

const (
	opNoop opKind = iota
	opAdd
	opUpdate
	opRemove
)

func (k opKind) String() string {
	switch k {
	case opNoop:
		return "noop"
	case opAdd:
		return "add"
	case opUpdate:
		return "update"
	case opRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// plan describes how the current wedge set maps onto a new layout. It is
// computed without mutating anything, so a rejected reload never leaves
// partial state behind.
type plan struct {
	kind   opKind
	spans  []Span // target spans for surviving wedges, in new index order
	values []float64

	// removedIdx indexes the current wedge set; -1 when nothing is removed.
	// For removals it is the selected wedge if a selection exists, else the
	// last wedge.
	removedIdx int

	// fadeOut marks a removal of the only remaining wedge: there is nothing
	// left to slide over it, so it fades its opacity to zero instead.
	fadeOut bool
}

// reconcile diffs the current wedge count against the new layout and decides
// whether the batch adds, updates, or removes a wedge. Only single-step
// count changes are supported; larger jumps return
// ErrUnsupportedReconciliation (a Feed serializes those into steps).
func reconcile(currentCount int, spans []Span, values []float64, selected int) (plan, error) {
	n := len(values)
	p := plan{spans: spans, values: values, removedIdx: -1}

	switch delta := n - currentCount; {
	case currentCount == 0 && n == 0:
		p.kind = opNoop
	case delta == 0:
		p.kind = opUpdate
	case delta == 1:
		p.kind = opAdd
	case delta == -1:
		p.kind = opRemove
		if selected >= 0 && selected < currentCount {
			p.removedIdx = selected
		} else {
			p.removedIdx = currentCount - 1
		}
		p.fadeOut = n == 0
	default:
		return plan{}, fmt.Errorf("%d -> %d slices: %w", currentCount, n, ErrUnsupportedReconciliation)
	}
	return p, nil
}
