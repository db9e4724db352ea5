package hull

import (
	"fmt"
	"os"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"gopkg.in/yaml.v3"

	"github.com/chazu/keelson/pkg/geom"
)

// designFile is the on-disk YAML layout of a hull design.
type designFile struct {
	Name           string  `yaml:"name"`
	LOAMm          float64 `yaml:"loaMm"`
	BowHeightMm    float64 `yaml:"bowHeightMm"`
	SternHeightMm  float64 `yaml:"sternHeightMm"`
	WaterlineOffMm float64 `yaml:"waterlineOffsetMm"`

	Cockpit struct {
		Fore            Anchor  `yaml:"fore"`
		Aft             Anchor  `yaml:"aft"`
		CoamingAngleDeg float64 `yaml:"coamingAngleDeg"`
	} `yaml:"cockpit"`

	Stations []StationTemplate `yaml:"stations"`

	// Each curve is a flat control point list, [x, y] pairs in mm.
	Curves struct {
		Keel            [][2]float64 `yaml:"keel"`
		SheerHorizontal [][2]float64 `yaml:"sheerHorizontal"`
		SheerVertical   [][2]float64 `yaml:"sheerVertical"`
		DeckFore        [][2]float64 `yaml:"deckFore"`
		DeckMid         [][2]float64 `yaml:"deckMid"`
		DeckAft         [][2]float64 `yaml:"deckAft"`
		Coaming         [][2]float64 `yaml:"coaming"`
	} `yaml:"curves"`
}

// Load reads and validates a hull design file.
func Load(path string) (*Description, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read design file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML hull design and validates it.
func Parse(raw []byte) (*Description, error) {
	var f designFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: decode design file: %v", geom.ErrInvalidInput, err)
	}

	d := &Description{
		Name:            f.Name,
		LOA:             f.LOAMm,
		BowHeight:       f.BowHeightMm,
		SternHeight:     f.SternHeightMm,
		WaterlineOffset: f.WaterlineOffMm,
		CockpitFore:     f.Cockpit.Fore,
		CockpitAft:      f.Cockpit.Aft,
		CoamingAngle:    f.Cockpit.CoamingAngleDeg,
		Stations:        f.Stations,
	}

	curves := []struct {
		name string
		pts  [][2]float64
		dst  **geom.Chain
	}{
		{"keel", f.Curves.Keel, &d.Keel},
		{"sheerHorizontal", f.Curves.SheerHorizontal, &d.SheerY},
		{"sheerVertical", f.Curves.SheerVertical, &d.SheerZ},
		{"deckFore", f.Curves.DeckFore, &d.DeckFore},
		{"deckMid", f.Curves.DeckMid, &d.DeckMid},
		{"deckAft", f.Curves.DeckAft, &d.DeckAft},
		{"coaming", f.Curves.Coaming, &d.Coaming},
	}
	for _, c := range curves {
		if len(c.pts) == 0 {
			continue
		}
		chain, err := geom.NewChain(toVecs(c.pts))
		if err != nil {
			return nil, fmt.Errorf("curve %q: %w", c.name, err)
		}
		*c.dst = chain
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func toVecs(pts [][2]float64) []v2.Vec {
	out := make([]v2.Vec, len(pts))
	for i, p := range pts {
		out[i] = v2.Vec{X: p[0], Y: p[1]}
	}
	return out
}
