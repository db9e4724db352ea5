package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/keelson/pkg/geom"
)

// StitchOptions configures ring stitching.
type StitchOptions struct {
	SamplesPerRing int     // theta samples per section ring
	Mirror         bool    // duplicate facets across the centerline
	InvertZ        bool    // negate the vertical axis
	LateralShiftMm float64 // lateral offset applied to both halves
}

// DefaultStitchOptions returns the documented stitching defaults.
func DefaultStitchOptions() StitchOptions {
	return StitchOptions{
		SamplesPerRing: 10,
		Mirror:         true,
		InvertZ:        true,
		LateralShiftMm: 1000,
	}
}

// StitchStrip joins two transverse section curves at longitudinal positions
// x1 and x2 into a watertight triangle strip. The two rings are theta
// sampled independently, so their point counts usually differ; converging
// fan triangles at the strip's ends reconcile the mismatch, split evenly
// between beginning and end. With mirroring enabled every facet is
// duplicated across the centerline with reversed vertex order, preserving
// outward normals under the reflection.
func StitchStrip(x1 float64, c1 *geom.Chain, x2 float64, c2 *geom.Chain, opts StitchOptions) *Mesh {
	n := opts.SamplesPerRing
	if n <= 0 {
		n = DefaultStitchOptions().SamplesPerRing
	}
	r1 := ring(x1, geom.SampleByCount(c1, n), opts)
	r2 := ring(x2, geom.SampleByCount(c2, n), opts)

	m := &Mesh{}
	stitchRings(m, r1, r2, opts)
	return m
}

// ring lifts 2D section samples into 3D at longitudinal position x. The
// section chain's x axis becomes the lateral (y) coordinate and its y axis
// the vertical (z) coordinate.
func ring(x float64, pts []v2.Vec, opts StitchOptions) []v3.Vec {
	out := make([]v3.Vec, len(pts))
	for i, p := range pts {
		z := p.Y
		if opts.InvertZ {
			z = -z
		}
		out[i] = v3.Vec{X: x, Y: p.X, Z: z}
	}
	return out
}

// stitchRings emits the strip between two rings. The longer ring's surplus
// points, split between a leading and a trailing group, fan onto the nearest
// unmatched point of the shorter ring; the rest pairs off into quads.
func stitchRings(m *Mesh, r1, r2 []v3.Vec, opts StitchOptions) {
	long, short := r1, r2
	flip := false
	if len(r2) > len(r1) {
		long, short = r2, r1
		flip = true
	}
	d := len(long) - len(short)
	extraBeg := d / 2
	extraEnd := d - extraBeg
	nc := len(short)

	for i := 0; i < extraBeg; i++ {
		emit(m, long[i], long[i+1], short[0], flip, opts)
	}
	for i := 0; i < nc-1; i++ {
		a := long[extraBeg+i]
		b := long[extraBeg+i+1]
		c := short[i]
		e := short[i+1]
		emit(m, a, b, c, flip, opts)
		emit(m, b, e, c, flip, opts)
	}
	for i := 0; i < extraEnd; i++ {
		j := extraBeg + nc - 1 + i
		emit(m, long[j], long[j+1], short[nc-1], flip, opts)
	}
}

// emit adds one facet, and its mirrored twin when enabled. flip swaps the
// winding when the rings were exchanged to make r1 the longer one, keeping
// the outward-normal convention independent of which ring is denser.
func emit(m *Mesh, a, b, c v3.Vec, flip bool, opts StitchOptions) {
	if flip {
		a, c = c, a
	}
	m.Add(sdf.Triangle3{shifted(a, opts), shifted(b, opts), shifted(c, opts)})
	if opts.Mirror {
		m.Add(sdf.Triangle3{mirrored(c, opts), mirrored(b, opts), mirrored(a, opts)})
	}
}

func shifted(v v3.Vec, opts StitchOptions) v3.Vec {
	v.Y += opts.LateralShiftMm
	return v
}

func mirrored(v v3.Vec, opts StitchOptions) v3.Vec {
	v.Y = -v.Y + opts.LateralShiftMm
	return v
}
