package pie

import "math"

// Point is a 2D point or vector in chart coordinates (y increases downward,
// angle 0 points along +x and increases clockwise on screen).
type Point struct {
	X, Y float64
}

// Pt is a convenience constructor for a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the vector length.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Angle returns the polar angle of the vector in (-pi, pi].
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// PathElement is a single element of a Path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a closed vector outline. Wedge paths are rebuilt every sampler
// tick, so a Path is reusable: Clear keeps the element backing array.
type Path struct {
	elements []PathElement
	current  Point
}

// NewPath creates an empty path with room for a typical wedge.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 8),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve to a point.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// ClosePath closes the current subpath.
func (p *Path) ClosePath() {
	p.elements = append(p.elements, Close{})
}

// Clear removes all elements, retaining the backing array for reuse.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.current = Point{}
}

// Elements returns the path elements. The returned slice is owned by the
// path and is invalidated by Clear.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	result := &Path{
		elements: make([]PathElement, len(p.elements)),
		current:  p.current,
	}
	copy(result.elements, p.elements)
	return result
}

// Arc appends a circular arc from angle a1 to a2 (radians, increasing angle)
// around (cx, cy), approximated with cubic Bezier segments of at most 90
// degrees each. The path must already have a current point.
func (p *Path) Arc(cx, cy, r, a1, a2 float64) {
	const maxAngle = math.Pi / 2
	for a2 < a1 {
		a2 += 2 * math.Pi
	}

	numSegments := int(math.Ceil((a2 - a1) / maxAngle))
	if numSegments == 0 {
		return
	}
	angleStep := (a2 - a1) / float64(numSegments)

	for i := 0; i < numSegments; i++ {
		s1 := a1 + float64(i)*angleStep
		p.arcSegment(cx, cy, r, s1, s1+angleStep)
	}
}

// arcSegment appends a single arc segment of at most 90 degrees.
func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	// Cubic control point offset for a circular arc segment.
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*math.Tan((a2-a1)/2)*math.Tan((a2-a1)/2)) - 1) / 3

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	x1 := cx + r*cos1
	y1 := cy + r*sin1
	x2 := cx + r*cos2
	y2 := cy + r*sin2

	p.CubicTo(
		x1-alpha*r*sin1, y1+alpha*r*cos1,
		x2+alpha*r*sin2, y2-alpha*r*cos2,
		x2, y2,
	)
}

// Wedge appends a closed pie wedge: center, radial edge to the arc start,
// the arc from start to end (increasing angle), and back to center.
// start == end yields a degenerate zero-area wedge, which is valid and
// occurs transiently while wedges animate open or closed.
func (p *Path) Wedge(center Point, radius, start, end float64) {
	p.MoveTo(center.X, center.Y)
	p.LineTo(center.X+radius*math.Cos(start), center.Y+radius*math.Sin(start))
	if end > start {
		p.Arc(center.X, center.Y, radius, start, end)
	}
	p.ClosePath()
}

// WedgePath builds a fresh closed wedge path. Equivalent to NewPath followed
// by Wedge; callers on a hot path should reuse a Path via Clear instead.
func WedgePath(center Point, radius, start, end float64) *Path {
	p := NewPath()
	p.Wedge(center, radius, start, end)
	return p
}

// angleVector returns the unit vector pointing along the given angle.
func angleVector(a float64) Point {
	return Point{X: math.Cos(a), Y: math.Sin(a)}
}

// wedgeContains reports whether a point lies inside the wedge spanned by
// [start, end) at the given center and radius. Angles are absolute values
// produced by the layout solver, i.e. within [origin, origin+2pi].
func wedgeContains(center Point, radius, start, end, origin float64, pt Point) bool {
	v := pt.Sub(center)
	if v.Length() > radius {
		return false
	}
	rel := math.Mod(v.Angle()-origin, 2*math.Pi)
	if rel < 0 {
		rel += 2 * math.Pi
	}
	return rel >= start-origin && rel < end-origin
}
