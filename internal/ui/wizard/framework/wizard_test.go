package framework

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

// mockStep is a minimal Step implementation for testing wizard orchestration.
type mockStep struct {
	id        string
	title     string
	complete  bool
	value     StepValue
	hasClear  bool
	clearCb   func()
	advanceOn string // key that triggers advance (e.g., "enter")
}

func newMockStep(id, title string) *mockStep {
	return &mockStep{
		id:        id,
		title:     title,
		advanceOn: "enter",
	}
}

func (s *mockStep) ID() string    { return s.id }
func (s *mockStep) Title() string { return s.title }
func (s *mockStep) Init() tea.Cmd { return nil }

func (s *mockStep) Update(msg tea.KeyPressMsg) (Step, tea.Cmd, StepResult) {
	switch msg.String() {
	case "left":
		return s, nil, StepBack
	case "right":
		s.complete = true
		return s, nil, StepAdvance
	case s.advanceOn:
		s.complete = true
		return s, nil, StepSubmitIfReady
	}
	return s, nil, StepContinue
}

func (s *mockStep) View() string { return s.title }
func (s *mockStep) Help() string { return "mock help" }

func (s *mockStep) Value() StepValue {
	if s.value.Key != "" {
		return s.value
	}
	return StepValue{Key: s.id, Label: "mock", Raw: "mock"}
}

func (s *mockStep) IsComplete() bool { return s.complete }
func (s *mockStep) Reset()           { s.complete = false }

func (s *mockStep) HasClearableInput() bool { return s.hasClear }

func (s *mockStep) ClearInput() tea.Cmd {
	if s.clearCb != nil {
		s.clearCb()
	}
	s.hasClear = false
	return nil
}

func (s *mockStep) setComplete() *mockStep {
	s.complete = true
	return s
}

func (s *mockStep) setValue(v StepValue) *mockStep {
	s.value = v
	return s
}

// keyMsg creates a KeyPressMsg for testing.
func keyMsg(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			r := rune(key[0])
			return tea.KeyPressMsg{Code: r, Text: key}
		}
		return tea.KeyPressMsg{}
	}
}

// updateWizard sends a key to the wizard and returns it (with type assertion).
func updateWizard(t *testing.T, w *Wizard, key string) *Wizard {
	t.Helper()
	m, _ := w.Update(keyMsg(key))
	return m.(*Wizard)
}

func TestWizard_StepNavigation(t *testing.T) {
	t.Parallel()

	t.Run("Init sets first step as current", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").AddStep(newMockStep("coffee", "Coffee")).AddStep(newMockStep("method", "Method"))
		w.Init()

		if w.CurrentStepID() != "coffee" {
			t.Errorf("CurrentStepID = %s, want coffee", w.CurrentStepID())
		}
	})

	t.Run("enter advances to next step", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").AddStep(newMockStep("coffee", "Coffee")).AddStep(newMockStep("method", "Method"))
		w.Init()

		w = updateWizard(t, w, "enter")

		if w.CurrentStepID() != "method" {
			t.Errorf("CurrentStepID = %s, want method", w.CurrentStepID())
		}
	})

	t.Run("left goes back to previous step", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").AddStep(newMockStep("coffee", "Coffee")).AddStep(newMockStep("method", "Method"))
		w.Init()

		w = updateWizard(t, w, "enter")
		w = updateWizard(t, w, "left")

		if w.CurrentStepID() != "coffee" {
			t.Errorf("CurrentStepID = %s, want coffee", w.CurrentStepID())
		}
	})

	t.Run("left on first step stays", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").AddStep(newMockStep("coffee", "Coffee"))
		w.Init()

		w = updateWizard(t, w, "left")

		if w.CurrentStepID() != "coffee" {
			t.Errorf("CurrentStepID = %s, want coffee", w.CurrentStepID())
		}
	})

	t.Run("right advances even past complete steps", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").
			AddStep(newMockStep("coffee", "Coffee")).
			AddStep(newMockStep("method", "Method").setComplete()).
			AddStep(newMockStep("grind", "Grind"))
		w.Init()

		w = updateWizard(t, w, "right")

		if w.CurrentStepID() != "method" {
			t.Errorf("CurrentStepID = %s, want method", w.CurrentStepID())
		}
	})

	t.Run("enter skips complete steps", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").
			AddStep(newMockStep("coffee", "Coffee")).
			AddStep(newMockStep("method", "Method").setComplete()).
			AddStep(newMockStep("grind", "Grind"))
		w.Init()

		w = updateWizard(t, w, "enter")

		if w.CurrentStepID() != "grind" {
			t.Errorf("CurrentStepID = %s, want grind", w.CurrentStepID())
		}
	})

	t.Run("last step goes to summary", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").AddStep(newMockStep("coffee", "Coffee")).AddStep(newMockStep("method", "Method"))
		w.Init()

		w = updateWizard(t, w, "enter")
		w = updateWizard(t, w, "enter")

		if w.CurrentStepID() != "summary" {
			t.Errorf("CurrentStepID = %s, want summary", w.CurrentStepID())
		}
	})
}

func TestWizard_Summary(t *testing.T) {
	t.Parallel()

	t.Run("enter on summary completes wizard", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").AddStep(newMockStep("coffee", "Coffee"))
		w.Init()

		w = updateWizard(t, w, "enter")
		if w.CurrentStepID() != "summary" {
			t.Fatalf("Should be on summary, got %s", w.CurrentStepID())
		}
		w = updateWizard(t, w, "enter")

		if !w.done {
			t.Error("Wizard should be done after enter on summary")
		}
		if w.IsCancelled() {
			t.Error("Wizard should not be cancelled")
		}
	})

	t.Run("left on summary goes back to last step", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").AddStep(newMockStep("coffee", "Coffee")).AddStep(newMockStep("method", "Method"))
		w.Init()

		w = updateWizard(t, w, "enter")
		w = updateWizard(t, w, "enter")
		w = updateWizard(t, w, "left")

		if w.CurrentStepID() != "method" {
			t.Errorf("CurrentStepID = %s, want method", w.CurrentStepID())
		}
	})

	t.Run("enter on summary jumps to an incomplete step", func(t *testing.T) {
		t.Parallel()
		coffee := newMockStep("coffee", "Coffee")
		w := NewWizard("Test").AddStep(coffee).AddStep(newMockStep("method", "Method"))
		w.Init()

		w = updateWizard(t, w, "enter")
		w = updateWizard(t, w, "enter")
		coffee.Reset()

		w = updateWizard(t, w, "enter")

		if w.done {
			t.Fatal("wizard should not finish with an incomplete step")
		}
		if w.CurrentStepID() != "coffee" {
			t.Errorf("CurrentStepID = %s, want coffee", w.CurrentStepID())
		}
	})

	t.Run("summary lists step values", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Log a brew").
			WithSummary("Save this brew").
			AddStep(newMockStep("method", "Method").setComplete().setValue(StepValue{Key: "method", Label: "Chemex", Raw: "Chemex"}))
		w.Init()

		view := w.View().Content
		for _, want := range []string{"Save this brew", "Method: ", "Chemex"} {
			if !strings.Contains(view, want) {
				t.Errorf("summary view missing %q", want)
			}
		}
	})
}

func TestWizard_Validate(t *testing.T) {
	t.Parallel()

	calls := 0
	w := NewWizard("Test").
		AddStep(newMockStep("coffee", "Coffee")).
		WithValidate(func(*Wizard) error {
			calls++
			if calls == 1 {
				return errors.New("brew time must be at most 60:00")
			}
			return nil
		})
	w.Init()

	w = updateWizard(t, w, "enter") // to summary
	w = updateWizard(t, w, "enter") // rejected

	if w.done {
		t.Fatal("wizard should stay open when validation fails")
	}
	if !strings.Contains(w.View().Content, "brew time must be at most 60:00") {
		t.Error("summary should show the validation error")
	}

	w = updateWizard(t, w, "enter")
	if !w.done {
		t.Error("wizard should finish once validation passes")
	}
}

func TestWizard_Cancel(t *testing.T) {
	t.Parallel()

	t.Run("esc cancels wizard", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").AddStep(newMockStep("coffee", "Coffee"))
		w.Init()

		w = updateWizard(t, w, "esc")

		if !w.IsCancelled() || !w.done {
			t.Error("Wizard should be cancelled and done after esc")
		}
	})

	t.Run("ctrl+c cancels wizard", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").AddStep(newMockStep("coffee", "Coffee"))
		w.Init()

		w = updateWizard(t, w, "ctrl+c")

		if !w.IsCancelled() {
			t.Error("Wizard should be cancelled after ctrl+c")
		}
	})

	t.Run("esc clears input before cancelling", func(t *testing.T) {
		t.Parallel()
		step := newMockStep("coffee", "Coffee")
		step.hasClear = true
		clearCalled := false
		step.clearCb = func() { clearCalled = true }

		w := NewWizard("Test").AddStep(step)
		w.Init()

		w = updateWizard(t, w, "esc")
		if !clearCalled {
			t.Error("ClearInput should have been called")
		}
		if w.IsCancelled() {
			t.Error("Wizard should not be cancelled after first esc")
		}

		w = updateWizard(t, w, "esc")
		if !w.IsCancelled() {
			t.Error("Wizard should be cancelled after second esc")
		}
	})
}

func TestWizard_PrefilledSteps(t *testing.T) {
	t.Parallel()

	t.Run("Init skips to first incomplete step", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").
			AddStep(newMockStep("method", "Method").setComplete()).
			AddStep(newMockStep("grind", "Grind").setComplete()).
			AddStep(newMockStep("rating", "Rating"))
		w.Init()

		if w.CurrentStepID() != "rating" {
			t.Errorf("CurrentStepID = %s, want rating", w.CurrentStepID())
		}
		if !w.confirmedSteps["method"] || !w.confirmedSteps["grind"] {
			t.Error("pre-filled steps should be marked confirmed")
		}
	})

	t.Run("Init goes to summary if all steps complete", func(t *testing.T) {
		t.Parallel()
		w := NewWizard("Test").
			AddStep(newMockStep("method", "Method").setComplete()).
			AddStep(newMockStep("grind", "Grind").setComplete())
		w.Init()

		if w.CurrentStepID() != "summary" {
			t.Errorf("CurrentStepID = %s, want summary", w.CurrentStepID())
		}
	})
}

func TestWizard_GetValues(t *testing.T) {
	t.Parallel()

	w := NewWizard("Test").
		AddStep(newMockStep("method", "Method").setValue(StepValue{Key: "method", Label: "V60", Raw: "V60"})).
		AddStep(newMockStep("coffee", "Coffee").setValue(StepValue{Key: "coffee", Label: "Kenya AA", Raw: int64(7)})).
		AddStep(newMockStep("dose", "Dose").setValue(StepValue{Key: "dose", Label: "15 g", Raw: 15.0})).
		AddStep(newMockStep("rating", "Rating").setValue(StepValue{Key: "rating", Label: "4", Raw: 4})).
		AddStep(newMockStep("notes", "Notes").setValue(StepValue{Key: "notes"}))

	if got := w.GetString("method"); got != "V60" {
		t.Errorf("GetString = %q, want V60", got)
	}
	if got, ok := w.GetInt64("coffee"); !ok || got != 7 {
		t.Errorf("GetInt64 = %d, %v; want 7, true", got, ok)
	}
	if got, ok := w.GetFloat("dose"); !ok || got != 15 {
		t.Errorf("GetFloat = %v, %v; want 15, true", got, ok)
	}
	if got, ok := w.GetInt("rating"); !ok || got != 4 {
		t.Errorf("GetInt = %d, %v; want 4, true", got, ok)
	}
	if _, ok := w.GetFloat("notes"); ok {
		t.Error("GetFloat on an empty value should report unset")
	}
	if _, ok := w.GetInt("missing"); ok {
		t.Error("GetInt on unknown step should report unset")
	}
	if w.GetStep("unknown") != nil {
		t.Error("GetStep should return nil for unknown ID")
	}
}

func TestWizard_AllStepsComplete(t *testing.T) {
	t.Parallel()

	done := newMockStep("method", "Method").setComplete()
	pending := newMockStep("grind", "Grind")

	w := NewWizard("Test").AddStep(done).AddStep(pending)
	if w.AllStepsComplete() {
		t.Error("AllStepsComplete should be false")
	}

	pending.setComplete()
	if !w.AllStepsComplete() {
		t.Error("AllStepsComplete should be true")
	}
	if w.StepCount() != 2 {
		t.Errorf("StepCount = %d, want 2", w.StepCount())
	}
}

func TestWizard_EmptyWizard(t *testing.T) {
	t.Parallel()

	w := NewWizard("Empty")
	if cmd := w.Init(); cmd != nil {
		t.Error("Init on an empty wizard should return nil")
	}
	if _, err := w.RunWith(nil, nil); !errors.Is(err, ErrNoSteps) {
		t.Errorf("RunWith error = %v, want ErrNoSteps", err)
	}
}

func TestWizard_InfoLine(t *testing.T) {
	t.Parallel()

	w := NewWizard("Test").
		AddStep(newMockStep("dose", "Dose")).
		WithInfoLine(func(w *Wizard) string { return "Ratio 1:16.7" })
	w.Init()

	if !strings.Contains(w.View().Content, "Ratio 1:16.7") {
		t.Error("view should include the info line")
	}
}

func TestWizard_WindowSizeMsg(t *testing.T) {
	t.Parallel()

	w := NewWizard("Test").AddStep(newMockStep("coffee", "Coffee"))
	w.Init()

	m, _ := w.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	w = m.(*Wizard)

	if w.width != 100 || w.height != 50 {
		t.Errorf("Window size = %dx%d, want 100x50", w.width, w.height)
	}
}
