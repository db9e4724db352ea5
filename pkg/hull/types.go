package hull

import (
	"math"

	"github.com/chazu/keelson/pkg/geom"
)

// stationGrid is the fixed longitudinal reference grid, in percent of LOA.
// The interior positions carry measured templates; 0 and 100 are synthesized
// from the bow/stern geometry.
var stationGrid = [...]float64{0, 10, 30, 50, 70, 90, 100}

// Offset is one control point of a station template, stored in per-10000ths
// of the local section spans: Lat is a fraction of the sheer half-beam,
// Vert a fraction of the keel-to-sheer span (hull side) or sheer-to-deck
// span (deck side).
type Offset struct {
	Lat  float64 `yaml:"lat"`
	Vert float64 `yaml:"vert"`
}

// StationTemplate holds the four named control offsets measured at one
// reference station.
type StationTemplate struct {
	Position   float64 `yaml:"position"` // percent of LOA: 10, 30, 50, 70 or 90
	DeckCenter Offset  `yaml:"deckCenter"`
	DeckSheer  Offset  `yaml:"deckSheer"`
	HullSheer  Offset  `yaml:"hullSheer"`
	HullKeel   Offset  `yaml:"hullKeel"`
}

// Anchor is a longitudinal+vertical anchor point, both in mm.
type Anchor struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

// Description is the complete parametric hull input. It is immutable per
// run; every synthesis call is a pure function of it.
type Description struct {
	Name string

	LOA             float64 // length overall, mm
	BowHeight       float64 // stem height above datum, mm
	SternHeight     float64 // stern height above datum, mm
	WaterlineOffset float64 // datum waterline offset, mm

	CockpitFore  Anchor  // forward coaming boundary
	CockpitAft   Anchor  // aft coaming boundary
	CoamingAngle float64 // coaming rake angle, degrees

	// Five measured station templates at 10/30/50/70/90 percent of LOA,
	// ascending.
	Stations []StationTemplate

	// Longitudinal curves over [0, LOA]: x is the longitudinal coordinate.
	Keel     *geom.Chain // bottom centerline, y = z height
	SheerY   *geom.Chain // sheer line in plan view, y = half-beam
	SheerZ   *geom.Chain // sheer line in profile, y = z height
	DeckFore *geom.Chain // deck centerline forward of the cockpit
	DeckMid  *geom.Chain // deck centerline through the cockpit
	DeckAft  *geom.Chain // deck centerline aft of the cockpit
	Coaming  *geom.Chain // coaming rim profile, in the coaming's own parameterization
}

// station returns the template at a grid position, synthesizing the 0 and
// 100 percent stations which carry no measured data.
func (d *Description) station(pos float64) StationTemplate {
	if pos == 0 || pos == 100 {
		return endStation(pos)
	}
	for _, s := range d.Stations {
		if s.Position == pos {
			return s
		}
	}
	// Unreachable for a validated description.
	return endStation(pos)
}

// endSpan returns the stem span the synthesized end stations scale their
// vertical controls against, in place of the measured section spans: bow
// height at 0%, stern height at 100%. Measured stations report false.
func (d *Description) endSpan(pos float64) (float64, bool) {
	switch pos {
	case 0:
		return d.BowHeight, true
	case 100:
		return d.SternHeight, true
	}
	return 0, false
}

// endStation synthesizes a bow or stern template: zero lateral offsets and
// vertical controls at the third points of the stem span, so blending
// toward an end tapers the section to a straight stem/stern profile.
func endStation(pos float64) StationTemplate {
	return StationTemplate{
		Position:   pos,
		DeckCenter: Offset{Lat: 0, Vert: 6667},
		DeckSheer:  Offset{Lat: 0, Vert: 3333},
		HullSheer:  Offset{Lat: 0, Vert: 6667},
		HullKeel:   Offset{Lat: 0, Vert: 3333},
	}
}

// NearEnds reports whether x is within dist of the bow or stern.
func (d *Description) NearEnds(x, dist float64) bool {
	return x < dist || x > d.LOA-dist
}

// NearCockpit reports whether x is within dist of either coaming boundary.
func (d *Description) NearCockpit(x, dist float64) bool {
	if d.Coaming == nil {
		return false
	}
	return math.Abs(x-d.CockpitFore.X) <= dist || math.Abs(x-d.CockpitAft.X) <= dist
}

// bracket returns the two station templates surrounding x and the linear
// blend weight k in [0, 1] between them.
func (d *Description) bracket(x float64) (StationTemplate, StationTemplate, float64) {
	pct := x / d.LOA * 100
	i := len(stationGrid) - 2
	for j := 0; j < len(stationGrid)-1; j++ {
		if pct <= stationGrid[j+1] {
			i = j
			break
		}
	}
	lo, hi := stationGrid[i], stationGrid[i+1]
	k := (pct - lo) / (hi - lo)
	return d.station(lo), d.station(hi), k
}
