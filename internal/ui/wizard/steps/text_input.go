package steps

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/brewlog/internal/ui/wizard/framework"
)

// ParseFunc converts submitted text into the step's typed value.
type ParseFunc func(string) (any, error)

// TextInputStep allows entering free-form text.
type TextInputStep struct {
	id              string
	title           string
	prompt          string
	input           textinput.Model
	validate        func(string) error
	parse           ParseFunc
	filter          framework.RuneFilter
	optional        bool
	unit            string
	submitted       bool
	submitValue     string
	submitRaw       any
	validationError string // Error message to display
}

// NewTextInput creates a new text input step.
// By default, uses a blinking bar cursor for better visibility.
func NewTextInput(id, title, prompt, placeholder string) *TextInputStep {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.SetWidth(40)

	styles := ti.Styles()
	styles.Cursor.Shape = tea.CursorBar
	styles.Cursor.Blink = true
	ti.SetStyles(styles)

	return &TextInputStep{
		id:     id,
		title:  title,
		prompt: prompt,
		input:  ti,
	}
}

func (s *TextInputStep) ID() string    { return s.id }
func (s *TextInputStep) Title() string { return s.title }

func (s *TextInputStep) Init() tea.Cmd {
	s.input.Focus()
	return textinput.Blink
}

func (s *TextInputStep) Update(msg tea.KeyPressMsg) (framework.Step, tea.Cmd, framework.StepResult) {
	switch msg.String() {
	case "enter":
		if s.submit() {
			return s, nil, framework.StepSubmitIfReady
		}
		return s, nil, framework.StepContinue
	case "right":
		// Only leave the field when the cursor is already at the end, so
		// the arrow still moves through typed text.
		if s.input.Position() < len([]rune(s.input.Value())) {
			break
		}
		if s.submit() {
			return s, nil, framework.StepAdvance
		}
		return s, nil, framework.StepContinue
	case "left":
		if s.input.Position() == 0 {
			return s, nil, framework.StepBack
		}
	}

	if msg.Text != "" && s.filter != nil &&
		framework.FilterRunes([]rune(msg.Text), s.filter) != msg.Text {
		return s, nil, framework.StepContinue
	}

	s.validationError = ""

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, framework.StepContinue
}

// submit validates the current input and stores it. It reports whether
// the value was accepted.
func (s *TextInputStep) submit() bool {
	value := strings.TrimSpace(s.input.Value())
	if value == "" {
		if !s.optional {
			s.validationError = "Value cannot be empty"
			return false
		}
		s.accept("", nil)
		return true
	}

	if s.validate != nil {
		if err := s.validate(value); err != nil {
			s.validationError = err.Error()
			return false
		}
	}

	var raw any = value
	if s.parse != nil {
		parsed, err := s.parse(value)
		if err != nil {
			s.validationError = err.Error()
			return false
		}
		raw = parsed
	}
	s.accept(value, raw)
	return true
}

func (s *TextInputStep) accept(value string, raw any) {
	s.validationError = ""
	s.submitted = true
	s.submitValue = value
	s.submitRaw = raw
}

func (s *TextInputStep) View() string {
	var b strings.Builder
	b.WriteString(s.prompt + "\n\n")
	b.WriteString(s.input.View())
	if s.optional {
		b.WriteString("\n" + framework.OptionDescriptionStyle().Render("optional, leave empty to skip"))
	}
	if s.validationError != "" {
		b.WriteString("\n" + framework.ErrorStyle().Render(s.validationError))
	}
	return b.String()
}

func (s *TextInputStep) Help() string {
	return "type text • ←/→ navigate • enter confirm • esc cancel"
}

func (s *TextInputStep) Value() framework.StepValue {
	label := s.submitValue
	if label != "" && s.unit != "" {
		label += " " + s.unit
	}
	return framework.StepValue{
		Key:   s.id,
		Label: label,
		Raw:   s.submitRaw,
	}
}

func (s *TextInputStep) IsComplete() bool {
	return s.submitted
}

func (s *TextInputStep) Reset() {
	s.input.SetValue("")
	s.submitted = false
	s.submitValue = ""
	s.submitRaw = nil
	s.validationError = ""
}

func (s *TextInputStep) HasClearableInput() bool {
	return s.input.Value() != ""
}

func (s *TextInputStep) ClearInput() tea.Cmd {
	s.input.SetValue("")
	s.validationError = ""
	return nil
}

// SetValidate sets a validation function for the input.
// If validation fails, the step won't advance.
func (s *TextInputStep) SetValidate(fn func(string) error) *TextInputStep {
	s.validate = fn
	return s
}

// WithParse sets the conversion applied on submit. Without it the
// submitted string is the raw value.
func (s *TextInputStep) WithParse(fn ParseFunc) *TextInputStep {
	s.parse = fn
	return s
}

// WithRuneFilter drops typed characters the filter rejects.
func (s *TextInputStep) WithRuneFilter(filter framework.RuneFilter) *TextInputStep {
	s.filter = filter
	return s
}

// Optional lets the step be submitted empty, leaving its raw value nil.
func (s *TextInputStep) Optional() *TextInputStep {
	s.optional = true
	return s
}

// WithUnit appends unit to the summary label, e.g. "g" or "°C".
func (s *TextInputStep) WithUnit(unit string) *TextInputStep {
	s.unit = unit
	return s
}

// SetValue sets the current input value.
func (s *TextInputStep) SetValue(value string) {
	s.input.SetValue(value)
	s.input.CursorEnd()
}

// Prefill sets the input and submits it, so the wizard skips the step
// when it starts. An invalid value is left in the input unsubmitted.
func (s *TextInputStep) Prefill(value string) bool {
	s.SetValue(value)
	return s.submit()
}

// GetValue returns the current input value (not yet submitted).
func (s *TextInputStep) GetValue() string {
	return s.input.Value()
}

// ValidationError returns the message shown under the input, if any.
func (s *TextInputStep) ValidationError() string {
	return s.validationError
}

// IsFocused returns true if the input is focused.
func (s *TextInputStep) IsFocused() bool {
	return s.input.Focused()
}

// SetCharLimit sets the character limit.
func (s *TextInputStep) SetCharLimit(limit int) {
	s.input.CharLimit = limit
}

// String implements fmt.Stringer for debugging.
func (s *TextInputStep) String() string {
	return fmt.Sprintf("TextInputStep{id=%s, submitted=%v, value=%q}",
		s.id, s.submitted, s.submitValue)
}
