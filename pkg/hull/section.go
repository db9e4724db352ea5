package hull

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/keelson/pkg/geom"
)

// SectionOptions configures cross-section synthesis.
type SectionOptions struct {
	ShrinkMm    float64 // inward wall offset; 0 reproduces the outer profile
	ToleranceMm float64 // bisection tolerance; <= 0 means geom.DefaultTolerance
}

// templateScale is the denominator of the station template encoding:
// offsets are stored as per-10000 fractions of the local section spans.
const templateScale = 10000.0

// CrossSectionAt synthesizes the chain describing the hull's transverse
// silhouette at longitudinal position x. The chain is the symmetric half
// section, seven control points forming two cubic segments that share the
// sheer anchor: deck center, deck control, deck-sheer control, sheer,
// hull-sheer control, hull-keel control, keel. In the section plane the
// chain's x axis is the lateral (half-beam) coordinate and its y axis the
// vertical coordinate.
func CrossSectionAt(d *Description, x float64, opts SectionOptions) (*geom.Chain, error) {
	if x < 0 || x > d.LOA {
		return nil, fmt.Errorf("%w: x=%g outside hull [0, %g]", geom.ErrOutOfDomain, x, d.LOA)
	}
	tol := opts.ToleranceMm
	if tol <= 0 {
		tol = geom.DefaultTolerance
	}

	keelZ, err := geom.YAtX(d.Keel, x, tol)
	if err != nil {
		return nil, fmt.Errorf("keel at x=%g: %w", x, err)
	}
	sheerLat, err := geom.YAtX(d.SheerY, x, tol)
	if err != nil {
		return nil, fmt.Errorf("sheer plan at x=%g: %w", x, err)
	}
	sheerZ, err := geom.YAtX(d.SheerZ, x, tol)
	if err != nil {
		return nil, fmt.Errorf("sheer profile at x=%g: %w", x, err)
	}
	deckLat, deckZ, err := d.deckAt(x, tol)
	if err != nil {
		return nil, fmt.Errorf("deck at x=%g: %w", x, err)
	}

	s1, s2, k := d.bracket(x)
	k1, k2 := 1-k, k

	// Each bracketing station scales its own offsets to mm before blending.
	// The deck shares the hull's lateral scale; verticals scale against
	// their own span — except at the synthesized end stations, where both
	// spans degenerate and the configured bow/stern height takes their
	// place.
	latScale := sheerLat / templateScale
	hullScale := (sheerZ - keelZ) / templateScale
	deckScale := (deckZ - sheerZ) / templateScale

	type controls struct{ dc, ds, hs, hk v2.Vec }
	scale := func(s StationTemplate) controls {
		hullV, deckV := hullScale, deckScale
		if h, end := d.endSpan(s.Position); end {
			hullV, deckV = h/templateScale, h/templateScale
		}
		at := func(o Offset, vertScale float64) v2.Vec {
			return v2.Vec{X: o.Lat * latScale, Y: o.Vert * vertScale}
		}
		return controls{
			dc: at(s.DeckCenter, deckV),
			ds: at(s.DeckSheer, deckV),
			hs: at(s.HullSheer, hullV),
			hk: at(s.HullKeel, hullV),
		}
	}
	c1, c2 := scale(s1), scale(s2)
	blend := func(a, b v2.Vec) v2.Vec {
		return v2.Vec{X: k1*a.X + k2*b.X, Y: k1*a.Y + k2*b.Y}
	}
	dc := blend(c1.dc, c2.dc)
	ds := blend(c1.ds, c2.ds)
	hs := blend(c1.hs, c2.hs)
	hk := blend(c1.hk, c2.hk)

	pts := []v2.Vec{
		{X: deckLat, Y: deckZ},
		{X: dc.X, Y: sheerZ + dc.Y},
		{X: ds.X, Y: sheerZ + ds.Y},
		{X: sheerLat, Y: sheerZ},
		{X: hs.X, Y: keelZ + hs.Y},
		{X: hk.X, Y: keelZ + hk.Y},
		{X: 0, Y: keelZ},
	}

	if opts.ShrinkMm > 0 {
		applyShrink(pts, opts.ShrinkMm, d.inCockpit(x))
	}
	return geom.NewChain(pts)
}

// inCockpit reports whether x falls between the coaming boundaries.
func (d *Description) inCockpit(x float64) bool {
	return d.Coaming != nil && x >= d.CockpitFore.X && x <= d.CockpitAft.X
}

// deckAt evaluates the deck centerline at x: the vertical comes from
// whichever of the fore/mid/aft curves owns x (selected by domain end), the
// lateral is zero except inside the cockpit region, where it comes from the
// coaming profile evaluated at x stretched by 1/cos(coaming angle) onto the
// coaming's own parameterization.
func (d *Description) deckAt(x, tol float64) (lat, z float64, err error) {
	var curve *geom.Chain
	switch {
	case d.DeckFore != nil && x <= d.DeckFore.X2():
		curve = d.DeckFore
	case d.DeckMid != nil && x <= d.DeckMid.X2():
		curve = d.DeckMid
	default:
		curve = d.DeckAft
	}
	if curve == nil {
		return 0, 0, fmt.Errorf("%w: no deck curve covers x=%g", geom.ErrOutOfDomain, x)
	}
	z, err = geom.YAtX(curve, x, tol)
	if err != nil {
		return 0, 0, err
	}

	if d.inCockpit(x) {
		stretch := 1 / math.Cos(d.CoamingAngle*math.Pi/180)
		xc := d.Coaming.X1() + (x-d.CockpitFore.X)*stretch
		if xc > d.Coaming.X2() {
			xc = d.Coaming.X2()
		}
		lat, err = geom.YAtX(d.Coaming, xc, tol)
		if err != nil {
			return 0, 0, err
		}
	}
	return lat, z, nil
}

// applyShrink displaces the section inward by shrink mm to form an inner
// wall profile: verticals drop by shrink and interior laterals move inboard,
// clamped at the centerline rather than crossing it. Inside the cockpit the
// deck edge and its first control stay put so the inner wall meets the
// coaming edge exactly.
func applyShrink(pts []v2.Vec, shrink float64, cockpit bool) {
	for i := range pts {
		if cockpit && i <= 1 {
			continue
		}
		pts[i].Y -= shrink
		if i > 0 && i < len(pts)-1 {
			pts[i].X = math.Max(0, pts[i].X-shrink)
		}
	}
}
