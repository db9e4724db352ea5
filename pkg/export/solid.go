package export

import (
	"fmt"
	"math"

	"github.com/chazu/keelson/pkg/geom"
	"github.com/chazu/keelson/pkg/hull"
)

// SolidOptions configures the parametric-solid script.
type SolidOptions struct {
	SectionIntervalMm float64 // longitudinal spacing of emitted sections
	WallThicknessMm   float64 // > 0 also emits the inner wall sections
	ToleranceMm       float64
}

// DefaultSolidOptions returns the script defaults.
func DefaultSolidOptions() SolidOptions {
	return SolidOptions{
		SectionIntervalMm: 250,
		ToleranceMm:       geom.DefaultTolerance,
	}
}

// BuildSolidScript renders the hull as a parametric-solid program: the keel
// profile as a sampled polyline, one section command per station interval
// carrying the section's Bezier control net, and a final loft command over
// all emitted sections. This is the curves output path; it never touches
// the mesh pipeline.
func BuildSolidScript(d *hull.Description, opts SolidOptions) (*Script, error) {
	if opts.SectionIntervalMm <= 0 {
		opts.SectionIntervalMm = DefaultSolidOptions().SectionIntervalMm
	}

	s := &Script{}

	keel, err := geom.SampleByInterval(d.Keel, opts.SectionIntervalMm)
	if err != nil {
		return nil, fmt.Errorf("sample keel: %w", err)
	}
	s.Add("polyline", PointSeq(keel))

	// Integer-stepped so the final section always lands exactly on the
	// stern, whatever the interval divides into.
	steps := int(math.Ceil(d.LOA / opts.SectionIntervalMm))
	emit := func(shrink float64, name string) error {
		count := 0
		prev := math.Inf(-1)
		for i := 0; i <= steps; i++ {
			x := math.Min(float64(i)*opts.SectionIntervalMm, d.LOA)
			if x == prev {
				continue
			}
			prev = x
			sec, err := hull.CrossSectionAt(d, x, hull.SectionOptions{
				ShrinkMm:    shrink,
				ToleranceMm: opts.ToleranceMm,
			})
			if err != nil {
				return fmt.Errorf("section at x=%g: %w", x, err)
			}
			s.Add(name, Seq{Num(x), PointSeq(sec.ControlPoints())})
			count++
		}
		s.Add("loft", Num(count))
		return nil
	}

	if err := emit(0, "section"); err != nil {
		return nil, err
	}
	if opts.WallThicknessMm > 0 {
		if err := emit(opts.WallThicknessMm, "innerSection"); err != nil {
			return nil, err
		}
	}

	s.Add("mirror", Seq{Num(0), Num(1), Num(0)})
	return s, nil
}
