package pie

import (
	"fmt"
	"math"
)

// Span is one wedge's angular interval. Spans produced by Solve tile the
// full circle: Start of the first span equals the origin angle, End of each
// span equals Start of the next, and End of the last equals origin + 2pi.
type Span struct {
	Start float64
	End   float64
}

// Mid returns the angular midpoint of the span. Labels anchor here.
func (s Span) Mid() float64 {
	return (s.Start + s.End) / 2
}

// Solve assigns each non-negative value an angular wedge proportional to its
// share of the total, walking from the origin angle in increasing-angle
// order. An empty sequence yields an empty layout. A negative value returns
// ErrInvalidInput; a non-empty sequence summing to zero returns ErrZeroTotal.
func Solve(values []float64, origin float64) ([]Span, error) {
	if len(values) == 0 {
		return nil, nil
	}

	var sum float64
	for i, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("value %v at index %d: %w", v, i, ErrInvalidInput)
		}
		sum += v
	}
	if sum == 0 {
		return nil, fmt.Errorf("%d values: %w", len(values), ErrZeroTotal)
	}

	spans := make([]Span, len(values))
	start := origin
	for i, v := range values {
		end := start + 2*math.Pi*(v/sum)
		spans[i] = Span{Start: start, End: end}
		start = end
	}
	// Pin the final edge so the layout always closes the circle exactly,
	// regardless of accumulated floating-point drift.
	spans[len(spans)-1].End = origin + 2*math.Pi
	return spans, nil
}
