package flows

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/guides"
	"github.com/raphi011/brewlog/internal/ui/wizard/framework"
)

func ptr[T any](v T) *T { return &v }

var testCoffees = []brew.Coffee{
	{ID: 1, Name: "Ethiopia Guji", Roaster: "Tim Wendelboe"},
	{ID: 2, Name: "Kenya Kiambu", Roaster: "Square Mile"},
}

func press(t *testing.T, w *framework.Wizard, code rune, text string) {
	t.Helper()
	m, _ := w.Update(tea.KeyPressMsg{Code: code, Text: text})
	if _, ok := m.(*framework.Wizard); !ok {
		t.Fatal("Update did not return the wizard")
	}
}

func TestNewBrewForm_NoCoffees(t *testing.T) {
	t.Parallel()

	_, err := NewBrewForm(BrewFormParams{})
	if !errors.Is(err, ErrNoCoffees) {
		t.Errorf("err = %v, want ErrNoCoffees", err)
	}
}

func TestNewBrewForm_FreshStartsAtCoffee(t *testing.T) {
	t.Parallel()

	w, err := NewBrewForm(BrewFormParams{Coffees: testCoffees})
	if err != nil {
		t.Fatal(err)
	}
	w.Init()

	if got := w.CurrentStepID(); got != StepCoffee {
		t.Errorf("CurrentStepID() = %q, want %q", got, StepCoffee)
	}
	if w.StepCount() != 9 {
		t.Errorf("StepCount() = %d, want 9", w.StepCount())
	}
}

func TestNewBrewForm_SeededFromGuide(t *testing.T) {
	t.Parallel()

	g, ok := guides.FindBySlug("v60")
	if !ok {
		t.Skip("no v60 guide")
	}
	preset := g.Preset.Params()

	w, err := NewBrewForm(BrewFormParams{Coffees: testCoffees, CoffeeID: 2, Seed: preset})
	if err != nil {
		t.Fatal(err)
	}
	w.Init()

	// Every measured field is pre-filled, so the form opens on the rating.
	if got := w.CurrentStepID(); got != StepRating {
		t.Fatalf("CurrentStepID() = %q, want %q", got, StepRating)
	}

	press(t, w, tea.KeyEnter, "") // Not rated
	if got := w.CurrentStepID(); got != StepNotes {
		t.Fatalf("after rating CurrentStepID() = %q, want %q", got, StepNotes)
	}
	press(t, w, tea.KeyEnter, "") // skip notes
	if got := w.CurrentStepID(); got != "summary" {
		t.Fatalf("after notes CurrentStepID() = %q, want summary", got)
	}
	press(t, w, tea.KeyEnter, "")
	if w.IsCancelled() {
		t.Fatal("form should not be cancelled")
	}

	req := BrewRequest(w)
	if req.CoffeeID != 2 {
		t.Errorf("CoffeeID = %d, want 2", req.CoffeeID)
	}
	if req.BrewMethod != brew.CanonicalMethod(preset.BrewMethod) {
		t.Errorf("BrewMethod = %q, want %q", req.BrewMethod, preset.BrewMethod)
	}
	if preset.CoffeeWeight != nil && (req.CoffeeWeight == nil || *req.CoffeeWeight != *preset.CoffeeWeight) {
		t.Errorf("CoffeeWeight = %v, want %v", req.CoffeeWeight, *preset.CoffeeWeight)
	}
	if preset.BrewTime != nil && (req.BrewTime == nil || *req.BrewTime != *preset.BrewTime) {
		t.Errorf("BrewTime = %v, want %v", req.BrewTime, *preset.BrewTime)
	}
	if req.Rating != nil {
		t.Errorf("Rating = %d, want unrated", *req.Rating)
	}
	if req.TastingNotes != nil {
		t.Errorf("TastingNotes = %q, want nil", *req.TastingNotes)
	}
	if errs := brew.ValidateCreateBrewLog(req); len(errs) > 0 {
		t.Errorf("seeded request should be valid: %v", errs)
	}
}

func TestNewBrewForm_SeededFromPreviousBrew(t *testing.T) {
	t.Parallel()

	seed := brew.BrewParams{
		BrewMethod:       "siphon",
		CoffeeWeight:     ptr(18.0),
		WaterWeight:      ptr(300.0),
		GrindSize:        ptr("Medium"),
		WaterTemperature: ptr(92.5),
		BrewTime:         ptr(150),
		Rating:           ptr(4),
		TastingNotes:     ptr("Jasmine, Peach"),
	}

	w, err := NewBrewForm(BrewFormParams{Coffees: testCoffees, CoffeeID: 1, Seed: seed})
	if err != nil {
		t.Fatal(err)
	}
	w.Init()

	if !w.AllStepsComplete() {
		t.Fatal("a fully seeded form should be complete")
	}
	if got := w.CurrentStepID(); got != "summary" {
		t.Errorf("CurrentStepID() = %q, want summary", got)
	}

	req := BrewRequest(w)
	if req.BrewMethod != "siphon" {
		t.Errorf("unknown methods are kept as entered, got %q", req.BrewMethod)
	}
	if req.GrindSize == nil || *req.GrindSize != "Medium" {
		t.Errorf("GrindSize = %v", req.GrindSize)
	}
	if req.WaterTemperature == nil || *req.WaterTemperature != 92.5 {
		t.Errorf("WaterTemperature = %v", req.WaterTemperature)
	}
	if req.BrewTime == nil || *req.BrewTime != 150 {
		t.Errorf("BrewTime = %v, want 150", req.BrewTime)
	}
	if req.Rating == nil || *req.Rating != 4 {
		t.Errorf("Rating = %v, want 4", req.Rating)
	}
	if req.TastingNotes == nil || *req.TastingNotes != "Jasmine, Peach" {
		t.Errorf("TastingNotes = %v", req.TastingNotes)
	}

	if got := ratioLine(w); got != "Ratio 1:16.7" {
		t.Errorf("ratioLine() = %q, want Ratio 1:16.7", got)
	}
}

func TestNewBrewForm_OutOfRangeSeedIsAsked(t *testing.T) {
	t.Parallel()

	w, err := NewBrewForm(BrewFormParams{
		Coffees:  testCoffees,
		CoffeeID: 1,
		Seed:     brew.BrewParams{BrewMethod: brew.MethodV60, CoffeeWeight: ptr(500.0)},
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Init()

	if got := w.CurrentStepID(); got != StepGrind {
		t.Errorf("CurrentStepID() = %q, want %q", got, StepGrind)
	}
	if w.GetStep(StepDose).IsComplete() {
		t.Error("an out-of-range dose should not be pre-filled")
	}
}

func TestNewBrewForm_EscCancels(t *testing.T) {
	t.Parallel()

	w, err := NewBrewForm(BrewFormParams{Coffees: testCoffees})
	if err != nil {
		t.Fatal(err)
	}
	w.Init()

	press(t, w, tea.KeyEscape, "")
	if !w.IsCancelled() {
		t.Error("esc without input should cancel the form")
	}
}

func TestParseBrewTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"3:05", 185, false},
		{"4", 240, false},
		{"0:59", 59, false},
		{"60:00", 3600, false},
		{"1:75", 0, true},
		{"61:00", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := parseBrewTime(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBrewTime(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseBrewTime(%q) = %v, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMeasurement(t *testing.T) {
	t.Parallel()

	parse := parseMeasurement(brew.MaxCoffeeWeight, "g")

	if v, err := parse("18.5"); err != nil || v != 18.5 {
		t.Errorf("parse(18.5) = %v, %v", v, err)
	}
	if _, err := parse("201"); err == nil || err.Error() != "must be between 0 and 200 g" {
		t.Errorf("parse(201) err = %v", err)
	}
	if _, err := parse("1.2.3"); err == nil {
		t.Error("parse(1.2.3) should fail")
	}
}

func TestRatingOptions(t *testing.T) {
	t.Parallel()

	opts := ratingOptions()
	if len(opts) != 6 {
		t.Fatalf("len = %d, want 6", len(opts))
	}
	if opts[0].Value != 0 || opts[1].Value != 5 || opts[5].Value != 1 {
		t.Errorf("unexpected order: %v", opts)
	}
}
