// Package guides is the catalogue of brewing guides.
package guides

import (
	"strings"

	"github.com/raphi011/brewlog/internal/brew"
)

// Step is one instruction of a guide.
type Step struct {
	Text string `json:"text"`
	Alt  string `json:"alt,omitempty"`
}

// Guide walks through one brewer.
type Guide struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Brewer      string     `json:"brewer"`
	Description string     `json:"description"`
	Steps       []Step     `json:"steps"`
	Preset      BrewPreset `json:"preset"`
}

// BrewPreset holds the starting parameters a guide suggests.
type BrewPreset struct {
	BrewMethod       string
	CoffeeWeight     float64
	WaterWeight      float64
	GrindSize        string
	WaterTemperature float64
	BrewTime         int // seconds
}

// Params returns the preset as brew parameters for a new brew log.
func (p BrewPreset) Params() brew.BrewParams {
	params := brew.BrewParams{BrewMethod: p.BrewMethod}
	if p.CoffeeWeight > 0 {
		params.CoffeeWeight = ptr(p.CoffeeWeight)
	}
	if p.WaterWeight > 0 {
		params.WaterWeight = ptr(p.WaterWeight)
	}
	if p.GrindSize != "" {
		params.GrindSize = ptr(p.GrindSize)
	}
	if p.WaterTemperature > 0 {
		params.WaterTemperature = ptr(p.WaterTemperature)
	}
	if p.BrewTime > 0 {
		params.BrewTime = ptr(p.BrewTime)
	}
	return params
}

func ptr[T any](v T) *T { return &v }

var all = []Guide{
	{
		Slug:        "v60",
		Title:       "V60 Pour-Over Guide",
		Brewer:      "V60",
		Description: "A clean, bright cup highlighting clarity and nuance.",
		Steps: []Step{
			{Text: "Rinse filter and preheat brewer and mug.", Alt: "Rinsing paper filter in V60 cone."},
			{Text: "Add medium-fine ground coffee and level the bed.", Alt: "Ground coffee leveled in V60 filter."},
			{Text: "Bloom with ~2x coffee weight for 30–45s.", Alt: "Blooming phase with initial pour wetting grounds."},
			{Text: "Pour in slow concentric circles until target water weight.", Alt: "Spiral pour pattern into V60."},
			{Text: "Gentle stir or swirl mid-brew if channeling appears.", Alt: "Gently stirring slurry to prevent channeling."},
			{Text: "Let drain fully, swirl, and serve.", Alt: "Finished brew swirling in server."},
		},
		Preset: BrewPreset{
			BrewMethod:       brew.MethodV60,
			CoffeeWeight:     15,
			WaterWeight:      250,
			GrindSize:        "Medium-Fine",
			WaterTemperature: 93,
			BrewTime:         180,
		},
	},
	{
		Slug:        "chemex",
		Title:       "Chemex Brewing Guide",
		Brewer:      "Chemex",
		Description: "Balanced and clean profile with heavier filter.",
		Steps: []Step{
			{Text: "Fold and place Chemex filter, triple-fold side on spout; rinse well.", Alt: "Chemex filter placed and rinsed."},
			{Text: "Add medium grind coffee and create a small well.", Alt: "Ground coffee in Chemex with a well."},
			{Text: "Bloom adequately; ensure all grounds are saturated.", Alt: "Bloom phase in Chemex."},
			{Text: "Pour in stages, maintaining a steady bed height.", Alt: "Stage-wise pouring into Chemex."},
			{Text: "Adjust pour rate to keep drawdown between 3–5 minutes.", Alt: "Monitoring drawdown timing in Chemex."},
			{Text: "Allow to draw down; remove filter and serve.", Alt: "Removing filter from Chemex."},
		},
		Preset: BrewPreset{
			BrewMethod:       brew.MethodChemex,
			CoffeeWeight:     30,
			WaterWeight:      500,
			GrindSize:        "Medium",
			WaterTemperature: 94,
			BrewTime:         240,
		},
	},
}

// All returns every guide in display order.
func All() []Guide {
	out := make([]Guide, len(all))
	copy(out, all)
	return out
}

// FindBySlug returns the guide with the given slug, ignoring case.
func FindBySlug(slug string) (Guide, bool) {
	for _, g := range all {
		if strings.EqualFold(g.Slug, strings.TrimSpace(slug)) {
			return g, true
		}
	}
	return Guide{}, false
}

// Slugs returns the slugs of all guides, for shell completion.
func Slugs() []string {
	out := make([]string, len(all))
	for i, g := range all {
		out[i] = g.Slug
	}
	return out
}
