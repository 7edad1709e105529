package framework

import tea "charm.land/bubbletea/v2"

// StepResult indicates what action to take after a step update.
type StepResult int

const (
	// StepContinue means stay on the current step.
	StepContinue StepResult = iota
	// StepAdvance means move to the next step.
	StepAdvance
	// StepBack means move to the previous step.
	StepBack
	// StepSubmitIfReady means move to the next incomplete step, or to the
	// summary when every step has a value.
	StepSubmitIfReady
)

// StepValue holds the result of a completed step.
type StepValue struct {
	Key   string // step id, e.g. "method"
	Label string // display value, e.g. "V60"
	Raw   any    // typed value: string, int, int64 or float64
}

// Step is the interface for wizard steps.
type Step interface {
	ID() string

	// Title returns the display title for the step tab.
	Title() string

	// Init returns an initial command when entering this step.
	Init() tea.Cmd

	// Update handles key events and returns the updated step,
	// a command to run, and a result indicating navigation.
	Update(msg tea.KeyPressMsg) (Step, tea.Cmd, StepResult)

	View() string
	Help() string

	// Value returns the step's current value for summary display.
	Value() StepValue

	// IsComplete returns true if the step has a valid value.
	IsComplete() bool

	// Reset clears the step's selection or input.
	Reset()

	// HasClearableInput reports whether esc should clear input rather
	// than cancel the wizard.
	HasClearableInput() bool

	// ClearInput clears any user input (filter, text field).
	ClearInput() tea.Cmd
}

// Option represents a selectable item in list-based steps.
type Option struct {
	Label       string // Display text
	Value       any    // Actual value
	Description string // Optional second line
	Disabled    bool
}
