package hull

import (
	"fmt"

	"github.com/chazu/keelson/pkg/geom"
)

// measuredStations are the grid positions that must carry measured
// templates, in ascending order.
var measuredStations = [...]float64{10, 30, 50, 70, 90}

// Validate checks that the description is internally consistent: positive
// LOA, the five measured stations on their grid positions, and longitudinal
// curves whose domains cover the full hull length.
func (d *Description) Validate() error {
	if d.LOA <= 0 {
		return fmt.Errorf("%w: LOA must be positive, got %g", geom.ErrInvalidInput, d.LOA)
	}

	if len(d.Stations) != len(measuredStations) {
		return fmt.Errorf("%w: expected %d station templates, got %d",
			geom.ErrInvalidInput, len(measuredStations), len(d.Stations))
	}
	for i, s := range d.Stations {
		if s.Position != measuredStations[i] {
			return fmt.Errorf("%w: station %d at %g%%, expected %g%%",
				geom.ErrInvalidInput, i, s.Position, measuredStations[i])
		}
	}

	fullLength := []struct {
		name  string
		chain *geom.Chain
	}{
		{"keel", d.Keel},
		{"sheerHorizontal", d.SheerY},
		{"sheerVertical", d.SheerZ},
	}
	for _, c := range fullLength {
		if c.chain == nil {
			return fmt.Errorf("%w: missing %s curve", geom.ErrInvalidInput, c.name)
		}
		if c.chain.X1() > 0 || c.chain.X2() < d.LOA {
			return fmt.Errorf("%w: %s curve spans [%g, %g], must cover [0, %g]",
				geom.ErrInvalidInput, c.name, c.chain.X1(), c.chain.X2(), d.LOA)
		}
	}

	// The deck curves partition [0, LOA] between them; at minimum one must
	// exist and the last must reach the stern.
	last := d.DeckAft
	if last == nil {
		last = d.DeckMid
	}
	if last == nil {
		last = d.DeckFore
	}
	if last == nil {
		return fmt.Errorf("%w: missing deck curves", geom.ErrInvalidInput)
	}
	if last.X2() < d.LOA {
		return fmt.Errorf("%w: deck curves end at %g, must reach %g",
			geom.ErrInvalidInput, last.X2(), d.LOA)
	}

	if d.Coaming != nil && d.CockpitAft.X <= d.CockpitFore.X {
		return fmt.Errorf("%w: cockpit aft boundary %g not after fore boundary %g",
			geom.ErrInvalidInput, d.CockpitAft.X, d.CockpitFore.X)
	}
	return nil
}
