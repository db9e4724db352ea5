package mesh

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/keelson/pkg/geom"
	"github.com/chazu/keelson/pkg/hull"
)

// BuildOptions configures full-hull mesh assembly.
type BuildOptions struct {
	SteppingMm      float64 // fixed longitudinal step; 0 selects smart stepping
	Transom         bool    // close the stern with a transom fan
	WallThicknessMm float64 // > 0 adds an inner wall surface
	SolidBowMm      float64 // bow length left solid (no inner wall)
	SolidSternMm    float64 // stern length left solid
	ToleranceMm     float64 // section evaluation tolerance
	Stitch          StitchOptions
}

// DefaultBuildOptions returns the documented build defaults: smart stepping
// and the default stitch parameters.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		ToleranceMm: geom.DefaultTolerance,
		Stitch:      DefaultStitchOptions(),
	}
}

// Smart stepping parameters: the coarse step amidships, the fine step and
// ring densification applied within endZone of the hull ends and within
// cockpitBand of the coaming boundaries.
const (
	baseStepMm    = 100.0
	fineStepMm    = 25.0
	endZoneMm     = 200.0
	cockpitBandMm = 100.0
	fineRingScale = 2
)

// BuildHullMesh walks the hull from bow to stern, synthesizing a cross
// section at each boundary and stitching consecutive pairs into strips. An
// inner wall pass (reversed winding, shrunk sections) is added when a wall
// thickness is set, and the stern is optionally closed with a transom fan.
func BuildHullMesh(d *hull.Description, opts BuildOptions) (*Mesh, error) {
	m := &Mesh{}

	outer, lastSec, err := buildSurface(d, opts, 0, 0, d.LOA)
	if err != nil {
		return nil, fmt.Errorf("outer surface: %w", err)
	}
	m.Append(outer)

	if opts.WallThicknessMm > 0 {
		x0 := opts.SolidBowMm
		x1 := d.LOA - opts.SolidSternMm
		if x1 > x0 {
			inner, _, err := buildSurface(d, opts, opts.WallThicknessMm, x0, x1)
			if err != nil {
				return nil, fmt.Errorf("inner surface: %w", err)
			}
			m.Append(inner.Reversed())
		}
	}

	if opts.Transom {
		if err := transomFan(d, m, lastSec, opts); err != nil {
			return nil, fmt.Errorf("transom: %w", err)
		}
	}

	// Sections are synthesized above the design datum; the mesh ships with
	// z referenced to the waterline instead.
	if d.WaterlineOffset != 0 {
		dz := -d.WaterlineOffset
		if opts.Stitch.InvertZ {
			dz = d.WaterlineOffset
		}
		m.Translate(v3.Vec{Z: dz})
	}
	return m, nil
}

// buildSurface stitches one surface over [x0, x1] at the given shrink. It
// returns the mesh and the final section curve, which the transom fan
// reuses.
func buildSurface(d *hull.Description, opts BuildOptions, shrink, x0, x1 float64) (*Mesh, *geom.Chain, error) {
	xs := stepPlan(d, opts, x0, x1)

	secOpts := hull.SectionOptions{ShrinkMm: shrink, ToleranceMm: opts.ToleranceMm}
	prev, err := hull.CrossSectionAt(d, xs[0], secOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("section at x=%g: %w", xs[0], err)
	}

	m := &Mesh{}
	prevX := xs[0]
	for _, x := range xs[1:] {
		sec, err := hull.CrossSectionAt(d, x, secOpts)
		if err != nil {
			return nil, nil, fmt.Errorf("section at x=%g: %w", x, err)
		}
		st := opts.Stitch
		if opts.SteppingMm == 0 && (d.NearEnds(prevX, endZoneMm) || d.NearCockpit(prevX, cockpitBandMm)) {
			st.SamplesPerRing *= fineRingScale
		}
		m.Append(StitchStrip(prevX, prev, x, sec, st))
		prevX, prev = x, sec
	}
	return m, prev, nil
}

// stepPlan returns the strictly increasing longitudinal boundaries over
// [x0, x1]. A fixed stepping uses that step throughout; smart stepping
// walks finer near the hull ends and around the coaming boundaries.
func stepPlan(d *hull.Description, opts BuildOptions, x0, x1 float64) []float64 {
	xs := []float64{x0}
	x := x0
	for x < x1 {
		step := opts.SteppingMm
		if step <= 0 {
			step = baseStepMm
			if d.NearEnds(x, endZoneMm) || d.NearCockpit(x, cockpitBandMm) {
				step = fineStepMm
			}
		}
		x = math.Min(x+step, x1)
		xs = append(xs, x)
	}
	return xs
}

// transomSamples is the ring density used to close the stern.
const transomSamples = 20

// transomFan closes the stern: each consecutive pair of points on the final
// section ring forms a triangle with a single apex on the stern centerline,
// halfway between keel and deck.
func transomFan(d *hull.Description, m *Mesh, lastSec *geom.Chain, opts BuildOptions) error {
	keelZ, err := geom.YAtX(d.Keel, d.LOA, opts.ToleranceMm)
	if err != nil {
		return err
	}
	deckZ, err := deckEnd(d, opts.ToleranceMm)
	if err != nil {
		return err
	}

	apexZ := (keelZ + deckZ) / 2
	if opts.Stitch.InvertZ {
		apexZ = -apexZ
	}
	apex := v3.Vec{X: d.LOA, Y: opts.Stitch.LateralShiftMm, Z: apexZ}

	pts := ring(d.LOA, geom.SampleByCount(lastSec, transomSamples), opts.Stitch)
	for i := 0; i < len(pts)-1; i++ {
		a := shifted(pts[i+1], opts.Stitch)
		b := shifted(pts[i], opts.Stitch)
		m.Add(sdf.Triangle3{a, b, apex})
		if opts.Stitch.Mirror {
			m.Add(sdf.Triangle3{apex, mirrored(pts[i], opts.Stitch), mirrored(pts[i+1], opts.Stitch)})
		}
	}
	return nil
}

// deckEnd evaluates the deck centerline height at the stern.
func deckEnd(d *hull.Description, tol float64) (float64, error) {
	curve := d.DeckAft
	if curve == nil {
		curve = d.DeckMid
	}
	if curve == nil {
		curve = d.DeckFore
	}
	return geom.YAtX(curve, d.LOA, tol)
}
