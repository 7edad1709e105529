// Package framework provides the core wizard orchestration system.
//
// A wizard is a multi-step interactive form. It manages step navigation,
// pre-filled steps, a summary page and a final cross-field validation
// before the form is accepted.
package framework

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
)

// ErrNoSteps is returned by Run for a wizard without steps.
var ErrNoSteps = errors.New("wizard has no steps")

// Wizard orchestrates a multi-step interactive flow.
type Wizard struct {
	title          string
	steps          []Step
	stepIndex      map[string]int // id -> index
	currentStep    int
	infoLine       func(*Wizard) string
	validate       func(*Wizard) error
	summaryTitle   string
	summaryErr     string
	done           bool
	cancelled      bool
	width          int
	height         int
	confirmedSteps map[string]bool // steps the user advanced past
}

// NewWizard creates a new wizard with the given title.
func NewWizard(title string) *Wizard {
	return &Wizard{
		title:          title,
		stepIndex:      make(map[string]int),
		summaryTitle:   "Review and confirm",
		width:          60,
		height:         20,
		confirmedSteps: make(map[string]bool),
	}
}

// AddStep adds a step to the wizard.
func (w *Wizard) AddStep(step Step) *Wizard {
	w.stepIndex[step.ID()] = len(w.steps)
	w.steps = append(w.steps, step)
	return w
}

// WithSummary sets the summary step title.
func (w *Wizard) WithSummary(title string) *Wizard {
	w.summaryTitle = title
	return w
}

// WithInfoLine sets a line rendered under the title, recomputed on
// every frame.
func (w *Wizard) WithInfoLine(fn func(*Wizard) string) *Wizard {
	w.infoLine = fn
	return w
}

// WithValidate sets a check run when the summary is confirmed. A
// non-nil error is shown on the summary and the wizard stays open.
func (w *Wizard) WithValidate(fn func(*Wizard) error) *Wizard {
	w.validate = fn
	return w
}

// GetStep returns a step by ID.
func (w *Wizard) GetStep(id string) Step {
	if idx, ok := w.stepIndex[id]; ok {
		return w.steps[idx]
	}
	return nil
}

// GetValue returns a step's value by ID.
func (w *Wizard) GetValue(id string) StepValue {
	if step := w.GetStep(id); step != nil {
		return step.Value()
	}
	return StepValue{}
}

// GetString returns a step's value as a string.
func (w *Wizard) GetString(id string) string {
	v := w.GetValue(id)
	if s, ok := v.Raw.(string); ok {
		return s
	}
	return v.Label
}

// GetInt returns a step's integer value and whether it was set.
func (w *Wizard) GetInt(id string) (int, bool) {
	switch v := w.GetValue(id).Raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// GetInt64 returns a step's int64 value (such as a resource id) and
// whether it was set.
func (w *Wizard) GetInt64(id string) (int64, bool) {
	switch v := w.GetValue(id).Raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}

// GetFloat returns a step's float value and whether it was set.
func (w *Wizard) GetFloat(id string) (float64, bool) {
	switch v := w.GetValue(id).Raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// IsCancelled returns true if the wizard was cancelled.
func (w *Wizard) IsCancelled() bool {
	return w.cancelled
}

// Run executes the wizard on stdin/stderr and returns when it is
// confirmed or cancelled. stdout stays free for command output.
func (w *Wizard) Run() (*Wizard, error) {
	return w.RunWith(os.Stdin, os.Stderr)
}

// RunWith executes the wizard reading keys from in and rendering to out.
func (w *Wizard) RunWith(in io.Reader, out io.Writer) (*Wizard, error) {
	if len(w.steps) == 0 {
		return w, ErrNoSteps
	}

	p := tea.NewProgram(w,
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithColorProfile(colorprofile.Detect(out, os.Environ())),
	)
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run %s wizard: %w", strings.ToLower(w.title), err)
	}
	return finalModel.(*Wizard), nil
}

// Init jumps past pre-filled steps to the first incomplete one.
func (w *Wizard) Init() tea.Cmd {
	if len(w.steps) == 0 {
		return nil
	}

	w.currentStep = w.findNextIncompleteStep(-1)
	if w.currentStep < 0 {
		w.currentStep = len(w.steps)
	}
	for i := 0; i < w.currentStep && i < len(w.steps); i++ {
		if w.steps[i].IsComplete() {
			w.confirmedSteps[w.steps[i].ID()] = true
		}
	}
	if w.currentStep < len(w.steps) {
		return w.steps[w.currentStep].Init()
	}
	return nil
}

func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if w.currentStep < len(w.steps) {
				if step := w.steps[w.currentStep]; step.HasClearableInput() {
					return w, step.ClearInput()
				}
			}
			w.cancelled = true
			w.done = true
			return w, tea.Quit
		}

		if w.currentStep >= len(w.steps) {
			return w.handleSummaryInput(msg)
		}

		step := w.steps[w.currentStep]
		newStep, cmd, result := step.Update(msg)
		w.steps[w.currentStep] = newStep

		switch result {
		case StepSubmitIfReady:
			return w, tea.Batch(cmd, w.advance(step, w.findNextIncompleteStep(w.currentStep)))
		case StepAdvance:
			return w, tea.Batch(cmd, w.advance(step, w.findNextStep(w.currentStep)))
		case StepBack:
			if w.currentStep > 0 {
				w.currentStep--
			}
		}
		return w, cmd
	}

	return w, nil
}

// advance confirms step and moves to next, or to the summary when next
// is negative.
func (w *Wizard) advance(step Step, next int) tea.Cmd {
	w.confirmedSteps[step.ID()] = true
	w.summaryErr = ""
	if next < 0 {
		w.currentStep = len(w.steps)
		return nil
	}
	w.currentStep = next
	return w.steps[next].Init()
}

func (w *Wizard) handleSummaryInput(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if idx := w.findNextIncompleteStep(-1); idx >= 0 {
			w.currentStep = idx
			return w, w.steps[idx].Init()
		}
		if w.validate != nil {
			if err := w.validate(w); err != nil {
				w.summaryErr = err.Error()
				return w, nil
			}
		}
		w.done = true
		return w, tea.Quit
	case "left":
		w.summaryErr = ""
		w.currentStep = len(w.steps) - 1
		return w, w.steps[w.currentStep].Init()
	}
	return w, nil
}

func (w *Wizard) View() tea.View {
	if w.done {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(TitleStyle().Render(w.title))
	b.WriteString("\n\n")

	if w.infoLine != nil {
		if info := w.infoLine(w); info != "" {
			b.WriteString(InfoStyle().Render(info))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(w.renderStepTabs())
	b.WriteString("\n\n")

	if w.currentStep >= len(w.steps) {
		b.WriteString(w.renderSummary())
		b.WriteString("\n")
		b.WriteString(HelpStyle().Render("← back • enter confirm • esc cancel"))
	} else {
		b.WriteString(w.steps[w.currentStep].View())
		b.WriteString("\n")
		b.WriteString(HelpStyle().Render(w.steps[w.currentStep].Help()))
	}

	return tea.NewView(BorderStyle().Render(b.String()))
}

func (w *Wizard) renderStepTabs() string {
	tabs := make([]string, 0, len(w.steps)+1)

	for i, step := range w.steps {
		label := fmt.Sprintf("%d. %s", i+1, step.Title())
		prefix := "  "
		if w.confirmedSteps[step.ID()] {
			prefix = StepCheckStyle().Render("✓ ")
		}

		switch {
		case i == w.currentStep:
			tabs = append(tabs, prefix+StepActiveStyle().Render(label))
		case w.confirmedSteps[step.ID()]:
			tabs = append(tabs, prefix+StepCompletedStyle().Render(label))
		default:
			tabs = append(tabs, prefix+StepInactiveStyle().Render(label))
		}
	}

	summary := fmt.Sprintf("%d. Summary", len(w.steps)+1)
	if w.currentStep >= len(w.steps) {
		tabs = append(tabs, "  "+StepActiveStyle().Render(summary))
	} else {
		tabs = append(tabs, "  "+StepInactiveStyle().Render(summary))
	}

	return strings.Join(tabs, StepInactiveStyle().Render(" → "))
}

func (w *Wizard) renderSummary() string {
	var b strings.Builder
	b.WriteString(w.summaryTitle + ":\n\n")

	for _, step := range w.steps {
		v := step.Value()
		if v.Label == "" {
			continue
		}
		b.WriteString(OptionNormalStyle().Render(step.Title()+": ") +
			OptionSelectedStyle().Render(v.Label) + "\n")
	}

	if w.summaryErr != "" {
		b.WriteString("\n" + ErrorStyle().Render(w.summaryErr) + "\n")
	}
	return b.String()
}

func (w *Wizard) findNextStep(from int) int {
	if from+1 < len(w.steps) {
		return from + 1
	}
	return -1
}

func (w *Wizard) findNextIncompleteStep(from int) int {
	for i := from + 1; i < len(w.steps); i++ {
		if !w.steps[i].IsComplete() {
			return i
		}
	}
	return -1
}

// CurrentStepID returns the current step's ID, or "summary" if on summary.
func (w *Wizard) CurrentStepID() string {
	if w.currentStep >= len(w.steps) {
		return "summary"
	}
	return w.steps[w.currentStep].ID()
}

// StepCount returns the number of steps (excluding summary).
func (w *Wizard) StepCount() int {
	return len(w.steps)
}

// AllStepsComplete returns true if all steps have values.
func (w *Wizard) AllStepsComplete() bool {
	for _, step := range w.steps {
		if !step.IsComplete() {
			return false
		}
	}
	return true
}
