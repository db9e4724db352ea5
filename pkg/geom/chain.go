package geom

import (
	"errors"
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// ErrInvalidInput reports malformed geometry input, such as a control point
// list that cannot form a whole number of cubic segments.
var ErrInvalidInput = errors.New("invalid input")

// ErrOutOfDomain reports an x coordinate outside a chain's [X1, X2] range.
var ErrOutOfDomain = errors.New("out of domain")

// Segment is a single cubic Bezier span: start anchor, two control points,
// end anchor.
type Segment struct {
	P0, P1, P2, P3 v2.Vec
}

// Eval returns the point at parameter t using the cubic Bernstein basis,
// applied to x and y independently.
func (s Segment) Eval(t float64) v2.Vec {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return v2.Vec{
		X: a*s.P0.X + b*s.P1.X + c*s.P2.X + d*s.P3.X,
		Y: a*s.P0.Y + b*s.P1.Y + c*s.P2.Y + d*s.P3.Y,
	}
}

// Chain is an ordered sequence of cubic segments where the end anchor of
// segment i is the start anchor of segment i+1. A Chain is immutable once
// constructed.
type Chain struct {
	segs []Segment
}

// NewChain builds a chain from a flat ordered control point list. Segment i
// is points[3i..3i+3], so the list must hold 4+3k points for some k >= 0.
func NewChain(points []v2.Vec) (*Chain, error) {
	if len(points) < 4 {
		return nil, fmt.Errorf("%w: chain needs at least 4 control points, got %d", ErrInvalidInput, len(points))
	}
	if (len(points)-4)%3 != 0 {
		return nil, fmt.Errorf("%w: control point count %d does not form whole cubic segments", ErrInvalidInput, len(points))
	}
	n := (len(points)-4)/3 + 1
	segs := make([]Segment, n)
	for i := 0; i < n; i++ {
		p := points[3*i:]
		segs[i] = Segment{P0: p[0], P1: p[1], P2: p[2], P3: p[3]}
	}
	return &Chain{segs: segs}, nil
}

// Line returns a single-segment chain that traces the straight line from p0
// to p1, with control points at the third points.
func Line(p0, p1 v2.Vec) *Chain {
	third := v2.Vec{X: (p1.X - p0.X) / 3, Y: (p1.Y - p0.Y) / 3}
	c, err := NewChain([]v2.Vec{
		p0,
		{X: p0.X + third.X, Y: p0.Y + third.Y},
		{X: p0.X + 2*third.X, Y: p0.Y + 2*third.Y},
		p1,
	})
	if err != nil {
		// Four points always validate.
		panic(err)
	}
	return c
}

// Segments returns the ordered segment list. Callers must not modify it.
func (c *Chain) Segments() []Segment {
	return c.segs
}

// SegmentCount returns the number of cubic segments.
func (c *Chain) SegmentCount() int {
	return len(c.segs)
}

// X1 returns the x coordinate of the first anchor point.
func (c *Chain) X1() float64 {
	return c.segs[0].P0.X
}

// X2 returns the x coordinate of the last anchor point.
func (c *Chain) X2() float64 {
	return c.segs[len(c.segs)-1].P3.X
}

// Start returns the first anchor point.
func (c *Chain) Start() v2.Vec {
	return c.segs[0].P0
}

// End returns the last anchor point.
func (c *Chain) End() v2.Vec {
	return c.segs[len(c.segs)-1].P3
}

// Contains reports whether x lies within the chain's [X1, X2] domain.
func (c *Chain) Contains(x float64) bool {
	return x >= c.X1() && x <= c.X2()
}

// ControlPoints returns the flat control point list the chain was built
// from: 4 + 3*(segments-1) points, shared anchors emitted once.
func (c *Chain) ControlPoints() []v2.Vec {
	out := make([]v2.Vec, 0, 4+3*(len(c.segs)-1))
	out = append(out, c.segs[0].P0)
	for _, s := range c.segs {
		out = append(out, s.P1, s.P2, s.P3)
	}
	return out
}
