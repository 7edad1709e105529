package steps

import (
	"errors"
	"strconv"
	"testing"

	"github.com/raphi011/brewlog/internal/ui/wizard/framework"
)

func parseFloat(s string) (any, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New("enter a number")
	}
	return v, nil
}

func TestTextInputStep_Typing(t *testing.T) {
	t.Parallel()

	step := NewTextInput("notes", "Notes", "Tasting notes:", "")
	step.Init()

	for _, k := range []string{"j", "a", "m"} {
		step, _ = updateStep(t, step, keyMsg(k))
	}
	if step.GetValue() != "jam" {
		t.Errorf("GetValue() = %q, want jam", step.GetValue())
	}

	step, _ = updateStep(t, step, keyMsg("backspace"))
	if step.GetValue() != "ja" {
		t.Errorf("GetValue() after backspace = %q, want ja", step.GetValue())
	}
}

func TestTextInputStep_RuneFilter(t *testing.T) {
	t.Parallel()

	step := NewTextInput("dose", "Dose", "Coffee (g):", "15").WithRuneFilter(framework.RuneFilterDecimal)
	step.Init()

	for _, k := range []string{"1", "x", "8", ".", "5", "g"} {
		step, _ = updateStep(t, step, keyMsg(k))
	}
	if step.GetValue() != "18.5" {
		t.Errorf("GetValue() = %q, want 18.5", step.GetValue())
	}
}

func TestTextInputStep_Submit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		build      func() *TextInputStep
		input      string
		key        string
		wantResult framework.StepResult
		wantDone   bool
		wantRaw    any
		wantLabel  string
		wantErr    string
	}{
		{
			name:       "enter submits text",
			build:      func() *TextInputStep { return NewTextInput("notes", "Notes", "Notes:", "") },
			input:      "  cherry ",
			key:        "enter",
			wantResult: framework.StepSubmitIfReady,
			wantDone:   true,
			wantRaw:    "cherry",
			wantLabel:  "cherry",
		},
		{
			name:       "right advances at end of input",
			build:      func() *TextInputStep { return NewTextInput("notes", "Notes", "Notes:", "") },
			input:      "cherry",
			key:        "right",
			wantResult: framework.StepAdvance,
			wantDone:   true,
			wantRaw:    "cherry",
			wantLabel:  "cherry",
		},
		{
			name:       "empty required value is rejected",
			build:      func() *TextInputStep { return NewTextInput("notes", "Notes", "Notes:", "") },
			input:      "   ",
			key:        "enter",
			wantResult: framework.StepContinue,
			wantErr:    "Value cannot be empty",
		},
		{
			name:       "empty optional value is accepted as nil",
			build:      func() *TextInputStep { return NewTextInput("notes", "Notes", "Notes:", "").Optional() },
			input:      "",
			key:        "enter",
			wantResult: framework.StepSubmitIfReady,
			wantDone:   true,
		},
		{
			name: "parse yields typed value with unit label",
			build: func() *TextInputStep {
				return NewTextInput("water", "Water", "Water (g):", "").WithParse(parseFloat).WithUnit("g")
			},
			input:      "250",
			key:        "enter",
			wantResult: framework.StepSubmitIfReady,
			wantDone:   true,
			wantRaw:    250.0,
			wantLabel:  "250 g",
		},
		{
			name: "parse error is shown",
			build: func() *TextInputStep {
				return NewTextInput("water", "Water", "Water (g):", "").WithParse(parseFloat)
			},
			input:      "2.5.0",
			key:        "enter",
			wantResult: framework.StepContinue,
			wantErr:    "enter a number",
		},
		{
			name: "validate error is shown",
			build: func() *TextInputStep {
				return NewTextInput("water", "Water", "Water (g):", "").SetValidate(func(string) error {
					return errors.New("too much water")
				})
			},
			input:      "5000",
			key:        "enter",
			wantResult: framework.StepContinue,
			wantErr:    "too much water",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			step := tt.build()
			step.Init()
			step.SetValue(tt.input)

			step, result := updateStep(t, step, keyMsg(tt.key))
			if result != tt.wantResult {
				t.Errorf("result = %v, want %v", result, tt.wantResult)
			}
			if step.IsComplete() != tt.wantDone {
				t.Errorf("IsComplete() = %v, want %v", step.IsComplete(), tt.wantDone)
			}
			if step.ValidationError() != tt.wantErr {
				t.Errorf("ValidationError() = %q, want %q", step.ValidationError(), tt.wantErr)
			}
			if !tt.wantDone {
				return
			}
			v := step.Value()
			if v.Raw != tt.wantRaw {
				t.Errorf("Raw = %#v, want %#v", v.Raw, tt.wantRaw)
			}
			if v.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", v.Label, tt.wantLabel)
			}
		})
	}
}

func TestTextInputStep_TypingClearsError(t *testing.T) {
	t.Parallel()

	step := NewTextInput("notes", "Notes", "Notes:", "")
	step.Init()
	step, _ = updateStep(t, step, keyMsg("enter"))
	if step.ValidationError() == "" {
		t.Fatal("expected a validation error")
	}
	step, _ = updateStep(t, step, keyMsg("a"))
	if step.ValidationError() != "" {
		t.Errorf("error should clear on typing, got %q", step.ValidationError())
	}
}

func TestTextInputStep_LeftAtStartGoesBack(t *testing.T) {
	t.Parallel()

	step := NewTextInput("notes", "Notes", "Notes:", "")
	step.Init()

	_, result := updateStep(t, step, keyMsg("left"))
	if result != framework.StepBack {
		t.Errorf("result = %v, want StepBack", result)
	}
}

func TestTextInputStep_Prefill(t *testing.T) {
	t.Parallel()

	step := NewTextInput("water", "Water", "Water (g):", "").WithParse(parseFloat)
	if !step.Prefill("250") {
		t.Fatal("Prefill(250) = false")
	}
	if !step.IsComplete() || step.Value().Raw != 250.0 {
		t.Errorf("prefilled step = complete %v raw %#v", step.IsComplete(), step.Value().Raw)
	}

	other := NewTextInput("water", "Water", "Water (g):", "").WithParse(parseFloat)
	if other.Prefill("lots") {
		t.Error("Prefill with an unparsable value should fail")
	}
	if other.IsComplete() || other.GetValue() != "lots" {
		t.Errorf("invalid prefill: complete %v value %q", other.IsComplete(), other.GetValue())
	}
}

func TestTextInputStep_ResetAndClear(t *testing.T) {
	t.Parallel()

	step := NewTextInput("notes", "Notes", "Notes:", "")
	step.Prefill("floral")

	if !step.HasClearableInput() {
		t.Error("HasClearableInput() should be true with text")
	}
	step.ClearInput()
	if step.GetValue() != "" || step.HasClearableInput() {
		t.Errorf("after ClearInput value = %q", step.GetValue())
	}
	if !step.IsComplete() {
		t.Error("ClearInput should keep the submitted value")
	}

	step.Reset()
	if step.IsComplete() || step.Value().Raw != nil {
		t.Errorf("after Reset: complete %v raw %#v", step.IsComplete(), step.Value().Raw)
	}
}
