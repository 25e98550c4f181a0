package pie

import (
	"context"

	"github.com/zoobzio/capitan"
)

// SelectionHandler receives selection transition events. For a changed
// selection the calls arrive in this fixed order: WillDeselect(prev) if a
// previous selection existed, WillSelect(next) if a next exists,
// DidDeselect(prev), DidSelect(next). Nothing fires when the selection does
// not change. Handlers run outside the chart lock and may call back into
// the chart.
type SelectionHandler interface {
	WillSelect(index int)
	DidSelect(index int)
	WillDeselect(index int)
	DidDeselect(index int)
}

// NoOpSelectionHandler is a no-op implementation of SelectionHandler.
// Embed it to implement only the events you need.
type NoOpSelectionHandler struct{}

func (NoOpSelectionHandler) WillSelect(int)   {}
func (NoOpSelectionHandler) DidSelect(int)    {}
func (NoOpSelectionHandler) WillDeselect(int) {}
func (NoOpSelectionHandler) DidDeselect(int)  {}

// HitTest returns the index of the wedge containing the point, or
// NoSelection. Committed geometry is tested; mid-batch the result reflects
// the layout the chart is settling toward having not yet been applied.
func (c *Chart) HitTest(pt Point) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hitLocked(pt)
}

func (c *Chart) hitLocked(pt Point) int {
	for i, w := range c.wedges {
		if wedgeContains(c.center, c.radius, w.startAngle, w.endAngle, c.origin, pt) {
			return i
		}
	}
	return NoSelection
}

// SelectAt hit-tests a point and moves the selection there; a miss clears
// it. Ignored while a batch is in flight (interaction is disabled for the
// batch's duration).
func (c *Chart) SelectAt(ctx context.Context, pt Point) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return
	}
	fns := c.moveSelectionLocked(ctx, c.hitLocked(pt))
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Select moves the selection to an index, or clears it with NoSelection.
// Out-of-range indices clear. Ignored while a batch is in flight.
func (c *Chart) Select(ctx context.Context, index int) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return
	}
	if index < 0 || index >= len(c.wedges) {
		index = NoSelection
	}
	fns := c.moveSelectionLocked(ctx, index)
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// moveSelectionLocked mutates selection state and z-order, returning the
// event callbacks to fire outside the lock.
func (c *Chart) moveSelectionLocked(ctx context.Context, next int) []func() {
	if next == c.selected {
		return nil
	}
	prev := c.selected
	c.selected = next
	if prev != NoSelection && prev < len(c.wedges) {
		c.wedges[prev].layer = LayerNormal
	}
	if next != NoSelection {
		c.wedges[next].layer = LayerSelected
	}
	return c.selectionEvents(ctx, prev, next)
}

// selectionEvents builds the ordered handler callbacks for a selection
// transition, ending with the SelectionChanged signal.
func (c *Chart) selectionEvents(ctx context.Context, prev, next int) []func() {
	var fns []func()
	if h := c.handler; h != nil {
		if prev != NoSelection {
			fns = append(fns, func() { h.WillDeselect(prev) })
		}
		if next != NoSelection {
			fns = append(fns, func() { h.WillSelect(next) })
		}
		if prev != NoSelection {
			fns = append(fns, func() { h.DidDeselect(prev) })
		}
		if next != NoSelection {
			fns = append(fns, func() { h.DidSelect(next) })
		}
	}
	fns = append(fns, func() {
		capitan.Emit(ctx, SelectionChanged,
			KeyPrevious.Field(prev),
			KeyNext.Field(next),
		)
	})
	return fns
}
