package mesh

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/keelson/pkg/geom"
	"github.com/chazu/keelson/pkg/hull"
)

// symmetricHull builds a flat-stationed 4m hull with zero bow/stern
// heights, whose mesh must balance exactly about the centerline.
func symmetricHull(t *testing.T) *hull.Description {
	t.Helper()
	template := func(pos float64) hull.StationTemplate {
		return hull.StationTemplate{
			Position:   pos,
			DeckCenter: hull.Offset{Lat: 300, Vert: 6667},
			DeckSheer:  hull.Offset{Lat: 7000, Vert: 3333},
			HullSheer:  hull.Offset{Lat: 9000, Vert: 6667},
			HullKeel:   hull.Offset{Lat: 5000, Vert: 3333},
		}
	}
	sheerY, err := geom.NewChain([]v2.Vec{
		{X: 0, Y: 0}, {X: 1333, Y: 300}, {X: 2667, Y: 300}, {X: 4000, Y: 0},
	})
	if err != nil {
		t.Fatalf("sheer plan chain: %v", err)
	}
	d := &hull.Description{
		Name: "sym",
		LOA:  4000,
		Stations: []hull.StationTemplate{
			template(10), template(30), template(50), template(70), template(90),
		},
		Keel:     geom.Line(v2.Vec{X: 0, Y: 0}, v2.Vec{X: 4000, Y: 0}),
		SheerY:   sheerY,
		SheerZ:   geom.Line(v2.Vec{X: 0, Y: 150}, v2.Vec{X: 4000, Y: 150}),
		DeckFore: geom.Line(v2.Vec{X: 0, Y: 300}, v2.Vec{X: 4000, Y: 300}),
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("test hull invalid: %v", err)
	}
	return d
}

// centeredOptions disables the lateral shift so symmetry shows up as a zero
// centroid.
func centeredOptions() BuildOptions {
	opts := DefaultBuildOptions()
	opts.Stitch.LateralShiftMm = 0
	return opts
}

func yCentroid(m *Mesh) float64 {
	var sum float64
	var n int
	for _, tri := range m.Triangles {
		for _, v := range tri {
			sum += v.Y
			n++
		}
	}
	return sum / float64(n)
}

func TestBuildHullMeshSymmetric(t *testing.T) {
	d := symmetricHull(t)
	m, err := BuildHullMesh(d, centeredOptions())
	if err != nil {
		t.Fatalf("BuildHullMesh failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}

	if c := yCentroid(m); math.Abs(c) > 1e-9 {
		t.Errorf("mesh y centroid = %g, want 0 for a mirrored hull", c)
	}

	min, max := m.BoundingBox()
	if min.X < 0 || max.X > d.LOA {
		t.Errorf("mesh spans [%g, %g] longitudinally, want within [0, %g]", min.X, max.X, d.LOA)
	}
	if max.X-min.X < d.LOA*0.99 {
		t.Errorf("mesh covers [%g, %g], want nearly the full length", min.X, max.X)
	}
}

func TestBuildHullMeshRingsAdvance(t *testing.T) {
	d := symmetricHull(t)
	opts := centeredOptions()
	opts.Stitch.Mirror = false
	m, err := BuildHullMesh(d, opts)
	if err != nil {
		t.Fatalf("BuildHullMesh failed: %v", err)
	}

	// Every facet connects two distinct ring planes (or is degenerate at
	// a fan apex); ring x values only ever move sternward.
	maxSeen := 0.0
	for i, tri := range m.Triangles {
		lo, hi := tri[0].X, tri[0].X
		for _, v := range tri {
			lo = math.Min(lo, v.X)
			hi = math.Max(hi, v.X)
		}
		if hi < maxSeen {
			t.Fatalf("facet %d at x range [%g, %g] behind previous strips at %g", i, lo, hi, maxSeen)
		}
		maxSeen = math.Max(maxSeen, lo)
	}
}

func TestBuildHullMeshFixedStepping(t *testing.T) {
	d := symmetricHull(t)

	smart, err := BuildHullMesh(d, centeredOptions())
	if err != nil {
		t.Fatalf("smart stepping failed: %v", err)
	}

	opts := centeredOptions()
	opts.SteppingMm = 500
	coarse, err := BuildHullMesh(d, opts)
	if err != nil {
		t.Fatalf("fixed stepping failed: %v", err)
	}

	if coarse.TriangleCount() >= smart.TriangleCount() {
		t.Errorf("coarse mesh has %d facets, smart %d; expected fewer",
			coarse.TriangleCount(), smart.TriangleCount())
	}
}

func TestBuildHullMeshTransom(t *testing.T) {
	d := symmetricHull(t)

	open, err := BuildHullMesh(d, centeredOptions())
	if err != nil {
		t.Fatalf("BuildHullMesh failed: %v", err)
	}

	opts := centeredOptions()
	opts.Transom = true
	closed, err := BuildHullMesh(d, opts)
	if err != nil {
		t.Fatalf("BuildHullMesh with transom failed: %v", err)
	}

	if closed.TriangleCount() <= open.TriangleCount() {
		t.Errorf("transom added no facets: %d vs %d",
			closed.TriangleCount(), open.TriangleCount())
	}
	// The transom stays on the stern plane; the fan still balances about
	// the centerline.
	if c := yCentroid(closed); math.Abs(c) > 1e-9 {
		t.Errorf("closed mesh y centroid = %g, want 0", c)
	}
}

func TestBuildHullMeshWaterlineDatum(t *testing.T) {
	ref := symmetricHull(t)
	wl := symmetricHull(t)
	wl.WaterlineOffset = 120

	a, err := BuildHullMesh(ref, centeredOptions())
	if err != nil {
		t.Fatalf("BuildHullMesh failed: %v", err)
	}
	b, err := BuildHullMesh(wl, centeredOptions())
	if err != nil {
		t.Fatalf("BuildHullMesh with waterline offset failed: %v", err)
	}

	if a.TriangleCount() != b.TriangleCount() {
		t.Fatalf("facet counts differ: %d vs %d", a.TriangleCount(), b.TriangleCount())
	}
	// InvertZ negates heights, so lifting the waterline datum raises z.
	for i := range a.Triangles {
		for j := 0; j < 3; j++ {
			va, vb := a.Triangles[i][j], b.Triangles[i][j]
			if vb.X != va.X || vb.Y != va.Y || math.Abs(vb.Z-va.Z-120) > 1e-9 {
				t.Fatalf("facet %d vertex %d: %v vs %v, want z shifted by 120", i, j, va, vb)
			}
		}
	}
}

func TestBuildHullMeshInnerWall(t *testing.T) {
	d := symmetricHull(t)

	single, err := BuildHullMesh(d, centeredOptions())
	if err != nil {
		t.Fatalf("BuildHullMesh failed: %v", err)
	}

	opts := centeredOptions()
	opts.WallThicknessMm = 8
	opts.SolidBowMm = 300
	opts.SolidSternMm = 300
	double, err := BuildHullMesh(d, opts)
	if err != nil {
		t.Fatalf("BuildHullMesh with wall failed: %v", err)
	}

	if double.TriangleCount() <= single.TriangleCount() {
		t.Errorf("inner wall added no facets: %d vs %d",
			double.TriangleCount(), single.TriangleCount())
	}

	// The inner surface is confined to the hollow span.
	min, max := double.BoundingBox()
	if min.X < 0 || max.X > d.LOA {
		t.Errorf("mesh exceeds hull bounds: [%g, %g]", min.X, max.X)
	}
}
