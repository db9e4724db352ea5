package geom

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DefaultTolerance is the bisection tolerance in mm used when a caller
// passes a non-positive tolerance.
const DefaultTolerance = 5.0

// maxBisectIter bounds every bisection loop. Hitting the ceiling is not an
// error: the best estimate reached is returned.
const maxBisectIter = 50

// SampleByCount samples the chain at roughly n points spread evenly in the
// Bezier parameter t across all segments ("theta sampling"). A sample is
// kept only when its x differs from the previously kept sample's x, which
// collapses degenerate runs on near-vertical or retrograde spans; the end
// anchor of each segment always terminates the segment's run. The output
// length is therefore approximate, never exactly n.
func SampleByCount(c *Chain, n int) []v2.Vec {
	segs := c.Segments()
	steps := float64(n-len(segs)) / float64(len(segs))
	if steps < 1 {
		steps = 1
	}
	dt := 1 / steps

	out := make([]v2.Vec, 0, n+len(segs))
	for _, s := range segs {
		for t := 0.0; t < 1; t += dt {
			p := s.Eval(t)
			if len(out) > 0 && p.X == out[len(out)-1].X {
				continue
			}
			out = append(out, p)
		}
		// If the last kept sample already landed on the anchor's x, the
		// anchor replaces it so consecutive samples keep distinct x.
		if len(out) > 0 && out[len(out)-1].X == s.P3.X {
			out = out[:len(out)-1]
		}
		out = append(out, s.P3)
	}
	return out
}

// SampleByInterval samples the chain at fixed x spacing across [X1, X2],
// solving each y by bisection. The chain's exact start and end anchors are
// always the first and last samples regardless of interval alignment.
func SampleByInterval(c *Chain, interval float64) ([]v2.Vec, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: sampling interval %g must be positive", ErrInvalidInput, interval)
	}
	segs := c.Segments()
	out := []v2.Vec{c.Start()}

	si := 0
	for x := c.X1() + interval; x < c.X2(); x += interval {
		for si < len(segs)-1 && x > segs[si].P3.X {
			si++
		}
		y, _ := bisect(segs[si], x, DefaultTolerance)
		out = append(out, v2.Vec{X: x, Y: y})
	}
	return append(out, c.End()), nil
}

// YAtX returns the chain's y value at x, located by bisection over the
// Bezier parameter within the segment whose x range contains x. The search
// stops when the evaluated x is within tol of the target or after the fixed
// iteration budget; non-convergence yields the best estimate reached. The
// domain endpoints return the exact anchor y without iterating.
func YAtX(c *Chain, x, tol float64) (float64, error) {
	if !c.Contains(x) {
		return 0, fmt.Errorf("%w: x=%g outside chain domain [%g, %g]", ErrOutOfDomain, x, c.X1(), c.X2())
	}
	if x == c.X1() {
		return c.Start().Y, nil
	}
	if x == c.X2() {
		return c.End().Y, nil
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}

	// Linear scan for the owning segment; segment end x values ascend.
	segs := c.Segments()
	seg := segs[len(segs)-1]
	for _, s := range segs {
		if x <= s.P3.X {
			seg = s
			break
		}
	}
	y, _ := bisect(seg, x, tol)
	return y, nil
}

// bisect solves for y at the given x within one segment, assuming x is
// monotonic in t over the segment. It reports whether it converged within
// tolerance; either way the best y estimate is returned.
func bisect(s Segment, x, tol float64) (float64, bool) {
	ascending := s.P3.X >= s.P0.X
	lo, hi := 0.0, 1.0
	t := 0.5
	p := s.Eval(t)
	for i := 0; i < maxBisectIter; i++ {
		if math.Abs(p.X-x) <= tol {
			return p.Y, true
		}
		if (p.X < x) == ascending {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
		p = s.Eval(t)
	}
	return p.Y, math.Abs(p.X-x) <= tol
}
