package flows

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/ui/styles"
	"github.com/raphi011/brewlog/internal/ui/wizard/framework"
	"github.com/raphi011/brewlog/internal/ui/wizard/steps"
)

// Step ids of the brew form.
const (
	StepCoffee      = "coffee"
	StepMethod      = "method"
	StepGrind       = "grind"
	StepDose        = "dose"
	StepWater       = "water"
	StepTemperature = "temperature"
	StepTime        = "time"
	StepRating      = "rating"
	StepNotes       = "notes"
)

// BrewFormParams contains parameters for the brew form.
type BrewFormParams struct {
	Title    string
	Coffees  []brew.Coffee
	CoffeeID int64           // pre-selected coffee, 0 to ask
	Seed     brew.BrewParams // guide preset or a previous brew
}

// BrewFormResult holds the request gathered from the form.
type BrewFormResult struct {
	Request   brew.CreateBrewLogRequest
	Cancelled bool
}

// ErrNoCoffees is returned when there is nothing to log a brew against.
var ErrNoCoffees = errors.New("no coffees yet, add one with 'brewlog coffee add'")

// NewBrewForm builds the brew log wizard. Seeded values are pre-filled
// and their steps skipped on start; every step stays editable from the
// summary.
func NewBrewForm(p BrewFormParams) (*framework.Wizard, error) {
	if len(p.Coffees) == 0 {
		return nil, ErrNoCoffees
	}

	title := p.Title
	if title == "" {
		title = "Log a brew"
	}
	w := framework.NewWizard(title).WithSummary("Brew log")

	coffeeOpts := make([]framework.Option, len(p.Coffees))
	for i, c := range p.Coffees {
		coffeeOpts[i] = framework.Option{Label: c.Name, Value: c.ID, Description: c.Roaster}
	}
	coffeeStep := steps.NewFilterableList(StepCoffee, "Coffee", "Which coffee did you brew?", coffeeOpts)
	if p.CoffeeID != 0 {
		coffeeStep.SelectValue(p.CoffeeID)
	}
	w.AddStep(coffeeStep)

	methodStep := steps.NewSingleSelect(StepMethod, "Method", "Brew method:", methodOptions(p.Seed.BrewMethod))
	if p.Seed.BrewMethod != "" {
		methodStep.SelectValue(brew.CanonicalMethod(p.Seed.BrewMethod))
	}
	w.AddStep(methodStep)

	grindStep := steps.NewSingleSelect(StepGrind, "Grind", "Grind size:", grindOptions(p.Seed.GrindSize))
	if p.Seed.GrindSize != nil {
		grindStep.SelectValue(*p.Seed.GrindSize)
	}
	w.AddStep(grindStep)

	w.AddStep(measurementStep(StepDose, "Coffee", "Coffee weight (g):", "15", "g", brew.MaxCoffeeWeight, p.Seed.CoffeeWeight))
	w.AddStep(measurementStep(StepWater, "Water", "Water weight (g):", "250", "g", brew.MaxWaterWeight, p.Seed.WaterWeight))
	w.AddStep(measurementStep(StepTemperature, "Temp", "Water temperature (°C):", "94", "°C", brew.MaxWaterTemperature, p.Seed.WaterTemperature))

	timeStep := steps.NewTextInput(StepTime, "Time", "Brew time (m:ss):", "3:00").
		WithRuneFilter(framework.RuneFilterDuration).
		WithParse(parseBrewTime).
		Optional()
	if p.Seed.BrewTime != nil {
		timeStep.Prefill(brew.FormatBrewTime(*p.Seed.BrewTime))
	}
	w.AddStep(timeStep)

	ratingStep := steps.NewSingleSelect(StepRating, "Rating", "How was it?", ratingOptions())
	if p.Seed.Rating != nil {
		ratingStep.SelectValue(*p.Seed.Rating)
	}
	w.AddStep(ratingStep)

	notesStep := steps.NewTextInput(StepNotes, "Notes", "Tasting notes:", "e.g. Chocolate, Cherry").Optional()
	if p.Seed.TastingNotes != nil {
		notesStep.Prefill(*p.Seed.TastingNotes)
	}
	w.AddStep(notesStep)

	w.WithInfoLine(ratioLine)
	w.WithValidate(func(w *framework.Wizard) error {
		return brew.ValidateCreateBrewLog(BrewRequest(w)).Err()
	})
	return w, nil
}

// BrewInteractive runs the brew form on the terminal.
func BrewInteractive(p BrewFormParams) (BrewFormResult, error) {
	w, err := NewBrewForm(p)
	if err != nil {
		return BrewFormResult{}, err
	}

	result, err := w.Run()
	if err != nil {
		return BrewFormResult{}, err
	}
	if result.IsCancelled() {
		return BrewFormResult{Cancelled: true}, nil
	}
	return BrewFormResult{Request: BrewRequest(result)}, nil
}

// BrewRequest collects the form's current values into a create request.
// Skipped optional fields stay nil.
func BrewRequest(w *framework.Wizard) brew.CreateBrewLogRequest {
	var req brew.CreateBrewLogRequest
	if id, ok := w.GetInt64(StepCoffee); ok {
		req.CoffeeID = id
	}
	req.BrewMethod = w.GetString(StepMethod)
	if grind := w.GetString(StepGrind); grind != "" {
		req.GrindSize = &grind
	}
	if v, ok := w.GetFloat(StepDose); ok {
		req.CoffeeWeight = &v
	}
	if v, ok := w.GetFloat(StepWater); ok {
		req.WaterWeight = &v
	}
	if v, ok := w.GetFloat(StepTemperature); ok {
		req.WaterTemperature = &v
	}
	if v, ok := w.GetInt(StepTime); ok {
		req.BrewTime = &v
	}
	if v, ok := w.GetInt(StepRating); ok && v > 0 {
		req.Rating = &v
	}
	if notes := w.GetString(StepNotes); notes != "" {
		req.TastingNotes = &notes
	}
	return req
}

func ratioLine(w *framework.Wizard) string {
	dose, okDose := w.GetFloat(StepDose)
	water, okWater := w.GetFloat(StepWater)
	if !okDose || !okWater {
		return ""
	}
	if ratio := brew.FormatRatio(&dose, &water); ratio != "" {
		return "Ratio " + ratio
	}
	return ""
}

// methodOptions lists the suggested methods, plus seeded when it is not
// one of them.
func methodOptions(seeded string) []framework.Option {
	opts := make([]framework.Option, 0, len(brew.Methods)+1)
	for _, m := range brew.Methods {
		opts = append(opts, framework.Option{Label: m, Value: m})
	}
	if m := brew.CanonicalMethod(seeded); m != "" && !containsValue(opts, m) {
		opts = append(opts, framework.Option{Label: m, Value: m})
	}
	return opts
}

// grindOptions starts with a "not recorded" choice whose value is "".
func grindOptions(seeded *string) []framework.Option {
	opts := []framework.Option{{Label: "Not recorded", Value: ""}}
	for _, g := range brew.GrindSizes {
		opts = append(opts, framework.Option{Label: g, Value: g})
	}
	if seeded != nil && *seeded != "" && !containsValue(opts, *seeded) {
		opts = append(opts, framework.Option{Label: *seeded, Value: *seeded})
	}
	return opts
}

// ratingOptions starts with a "not rated" choice whose value is 0.
func ratingOptions() []framework.Option {
	opts := []framework.Option{{Label: "Not rated", Value: 0}}
	for r := brew.MaxRating; r >= brew.MinRating; r-- {
		opts = append(opts, framework.Option{Label: styles.Stars(r, brew.MaxRating), Value: r})
	}
	return opts
}

func containsValue(opts []framework.Option, v any) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

func measurementStep(id, title, prompt, placeholder, unit string, limit float64, seed *float64) *steps.TextInputStep {
	step := steps.NewTextInput(id, title, prompt, placeholder).
		WithRuneFilter(framework.RuneFilterDecimal).
		WithParse(parseMeasurement(limit, unit)).
		WithUnit(unit).
		Optional()
	if seed != nil {
		step.Prefill(strconv.FormatFloat(*seed, 'f', -1, 64))
	}
	return step
}

func parseMeasurement(limit float64, unit string) steps.ParseFunc {
	return func(s string) (any, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", s)
		}
		if v < 0 || v > limit {
			return nil, fmt.Errorf("must be between 0 and %s %s", strconv.FormatFloat(limit, 'f', -1, 64), unit)
		}
		return v, nil
	}
}

// parseBrewTime accepts "m:ss" or whole minutes and checks each part
// against the brew time limits.
func parseBrewTime(s string) (any, error) {
	total, errs := brew.ValidateBrewTime(s)
	if len(errs) > 0 {
		return nil, errors.New(errs[0].Message)
	}
	return total, nil
}
