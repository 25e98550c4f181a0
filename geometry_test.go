package pie

import (
	"math"
	"testing"
)

func TestWedgePath_Structure(t *testing.T) {
	center := Pt(100, 100)
	p := WedgePath(center, 50, 0, math.Pi/2)

	elems := p.Elements()
	if len(elems) < 3 {
		t.Fatalf("expected at least move/line/close, got %d elements", len(elems))
	}

	mv, ok := elems[0].(MoveTo)
	if !ok {
		t.Fatalf("first element = %T, want MoveTo", elems[0])
	}
	if mv.Point != center {
		t.Errorf("path starts at %+v, want center %+v", mv.Point, center)
	}

	ln, ok := elems[1].(LineTo)
	if !ok {
		t.Fatalf("second element = %T, want LineTo", elems[1])
	}
	want := Pt(150, 100) // arc start at angle 0
	if math.Abs(ln.Point.X-want.X) > epsilon || math.Abs(ln.Point.Y-want.Y) > epsilon {
		t.Errorf("radial edge ends at %+v, want %+v", ln.Point, want)
	}

	if _, ok := elems[len(elems)-1].(Close); !ok {
		t.Errorf("last element = %T, want Close", elems[len(elems)-1])
	}

	// A quarter arc fits in a single cubic segment.
	cubics := 0
	for _, e := range elems {
		if _, ok := e.(CubicTo); ok {
			cubics++
		}
	}
	if cubics != 1 {
		t.Errorf("quarter arc used %d cubic segments, want 1", cubics)
	}
}

func TestWedgePath_FullCircleSegments(t *testing.T) {
	p := WedgePath(Pt(0, 0), 10, 0, 2*math.Pi)
	cubics := 0
	for _, e := range p.Elements() {
		if _, ok := e.(CubicTo); ok {
			cubics++
		}
	}
	if cubics != 4 {
		t.Errorf("full circle used %d cubic segments, want 4", cubics)
	}
}

func TestWedgePath_ArcEndpoint(t *testing.T) {
	center := Pt(0, 0)
	p := WedgePath(center, 10, math.Pi/4, math.Pi)

	var last CubicTo
	for _, e := range p.Elements() {
		if c, ok := e.(CubicTo); ok {
			last = c
		}
	}
	want := Pt(-10, 0) // angle pi at radius 10
	if math.Abs(last.Point.X-want.X) > 1e-6 || math.Abs(last.Point.Y-want.Y) > 1e-6 {
		t.Errorf("arc ends at %+v, want %+v", last.Point, want)
	}
}

func TestWedgePath_Degenerate(t *testing.T) {
	// start == end occurs transiently during animations and for zero
	// values; it must yield a valid zero-area path, not an error.
	p := WedgePath(Pt(50, 50), 25, math.Pi, math.Pi)

	elems := p.Elements()
	if len(elems) != 3 {
		t.Fatalf("degenerate wedge has %d elements, want move/line/close", len(elems))
	}
	if _, ok := elems[0].(MoveTo); !ok {
		t.Errorf("first element = %T, want MoveTo", elems[0])
	}
	if _, ok := elems[1].(LineTo); !ok {
		t.Errorf("second element = %T, want LineTo", elems[1])
	}
	if _, ok := elems[2].(Close); !ok {
		t.Errorf("third element = %T, want Close", elems[2])
	}
}

func TestPath_ClearRetainsCapacity(t *testing.T) {
	p := NewPath()
	p.Wedge(Pt(0, 0), 10, 0, math.Pi)
	before := cap(p.elements)
	p.Clear()
	if len(p.Elements()) != 0 {
		t.Errorf("Clear left %d elements", len(p.Elements()))
	}
	if cap(p.elements) != before {
		t.Errorf("Clear shrank capacity from %d to %d", before, cap(p.elements))
	}
}

func TestPath_Clone(t *testing.T) {
	p := WedgePath(Pt(0, 0), 10, 0, math.Pi/2)
	q := p.Clone()
	p.Clear()
	if len(q.Elements()) == 0 {
		t.Error("clone shares storage with original")
	}
}

func TestWedgeContains(t *testing.T) {
	center := Pt(50, 50)
	const radius = 50.0

	tests := []struct {
		name       string
		start, end float64
		pt         Point
		want       bool
	}{
		{"inside lower half", 0, math.Pi, Pt(60, 60), true},
		{"upper half misses lower wedge", 0, math.Pi, Pt(60, 40), false},
		{"inside upper half", math.Pi, 2 * math.Pi, Pt(60, 40), true},
		{"outside radius", 0, math.Pi, Pt(120, 60), false},
		{"zero width wedge", math.Pi, math.Pi, Pt(40, 50), false},
		{"full circle", 0, 2 * math.Pi, Pt(30, 70), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wedgeContains(center, radius, tt.start, tt.end, 0, tt.pt)
			if got != tt.want {
				t.Errorf("wedgeContains(%v in [%v,%v)) = %v, want %v", tt.pt, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestWedgeContains_ShiftedOrigin(t *testing.T) {
	center := Pt(0, 0)
	origin := math.Pi / 2
	// Wedge spans [pi/2, 3pi/2) relative to an origin of pi/2.
	if !wedgeContains(center, 10, math.Pi/2, 3*math.Pi/2, origin, Pt(-5, 1)) {
		t.Error("point at angle ~pi should be inside")
	}
	if wedgeContains(center, 10, math.Pi/2, 3*math.Pi/2, origin, Pt(5, -1)) {
		t.Error("point at angle ~-pi/16 should be outside")
	}
}
