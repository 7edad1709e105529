package steps

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/brewlog/internal/ui/wizard/framework"
)

// SingleSelectStep allows selecting one option from a list.
type SingleSelectStep struct {
	id       string
	title    string
	prompt   string
	options  []framework.Option
	cursor   int
	selected int // -1 if nothing selected yet
}

// NewSingleSelect creates a new single-select step.
func NewSingleSelect(id, title, prompt string, options []framework.Option) *SingleSelectStep {
	s := &SingleSelectStep{
		id:       id,
		title:    title,
		prompt:   prompt,
		options:  options,
		selected: -1,
	}
	s.cursor = s.findFirstEnabled()
	return s
}

func (s *SingleSelectStep) ID() string    { return s.id }
func (s *SingleSelectStep) Title() string { return s.title }

func (s *SingleSelectStep) Init() tea.Cmd {
	return nil
}

func (s *SingleSelectStep) Update(msg tea.KeyPressMsg) (framework.Step, tea.Cmd, framework.StepResult) {
	switch msg.String() {
	case "up", "k":
		s.moveCursorUp()
	case "down", "j":
		s.moveCursorDown()
	case "home", "pgup":
		s.cursor = s.findFirstEnabled()
	case "end", "pgdown":
		s.cursor = s.findLastEnabled()
	case "enter":
		if s.selectCursor() {
			return s, nil, framework.StepSubmitIfReady
		}
	case "right":
		if s.selectCursor() {
			return s, nil, framework.StepAdvance
		}
	case "left":
		return s, nil, framework.StepBack
	}
	return s, nil, framework.StepContinue
}

func (s *SingleSelectStep) selectCursor() bool {
	if len(s.options) == 0 || s.options[s.cursor].Disabled {
		return false
	}
	s.selected = s.cursor
	return true
}

func (s *SingleSelectStep) View() string {
	var b strings.Builder
	b.WriteString(s.prompt)
	b.WriteString("\n\n")

	if len(s.options) == 0 {
		b.WriteString(framework.OptionNormalStyle().Render("  No options available") + "\n")
		return b.String()
	}

	for i, opt := range s.options {
		if opt.Disabled {
			label := opt.Label
			if opt.Description != "" {
				label += " (" + opt.Description + ")"
			}
			b.WriteString("  " + framework.OptionDescriptionStyle().Render(label) + "\n")
			continue
		}

		cursor := "  "
		style := framework.OptionNormalStyle()
		if i == s.cursor {
			cursor = "> "
			style = framework.OptionSelectedStyle()
		}

		b.WriteString(cursor + style.Render(opt.Label) + "\n")
		if opt.Description != "" {
			b.WriteString("    " + framework.OptionDescriptionStyle().Render(opt.Description) + "\n")
		}
	}

	return b.String()
}

func (s *SingleSelectStep) Help() string {
	return "↑/↓ select • ←/→ navigate • enter confirm • esc cancel"
}

func (s *SingleSelectStep) Value() framework.StepValue {
	if s.selected < 0 || s.selected >= len(s.options) {
		return framework.StepValue{Key: s.id}
	}
	opt := s.options[s.selected]
	return framework.StepValue{
		Key:   s.id,
		Label: opt.Label,
		Raw:   opt.Value,
	}
}

func (s *SingleSelectStep) IsComplete() bool {
	return s.selected >= 0
}

func (s *SingleSelectStep) Reset() {
	s.selected = -1
	s.cursor = s.findFirstEnabled()
}

func (s *SingleSelectStep) HasClearableInput() bool { return false }
func (s *SingleSelectStep) ClearInput() tea.Cmd     { return nil }

// SelectValue pre-selects the first enabled option whose Value equals v.
// It reports whether such an option exists.
func (s *SingleSelectStep) SelectValue(v any) bool {
	for i, opt := range s.options {
		if !opt.Disabled && opt.Value == v {
			s.selected = i
			s.cursor = i
			return true
		}
	}
	return false
}

// GetCursor returns the current cursor position.
func (s *SingleSelectStep) GetCursor() int {
	return s.cursor
}

// GetSelectedIndex returns the selected index.
func (s *SingleSelectStep) GetSelectedIndex() int {
	return s.selected
}

func (s *SingleSelectStep) moveCursorUp() {
	for i := s.cursor - 1; i >= 0; i-- {
		if !s.options[i].Disabled {
			s.cursor = i
			return
		}
	}
}

func (s *SingleSelectStep) moveCursorDown() {
	for i := s.cursor + 1; i < len(s.options); i++ {
		if !s.options[i].Disabled {
			s.cursor = i
			return
		}
	}
}

func (s *SingleSelectStep) findFirstEnabled() int {
	for i, opt := range s.options {
		if !opt.Disabled {
			return i
		}
	}
	return 0
}

func (s *SingleSelectStep) findLastEnabled() int {
	for i := len(s.options) - 1; i >= 0; i-- {
		if !s.options[i].Disabled {
			return i
		}
	}
	return max(0, len(s.options)-1)
}

// String implements fmt.Stringer for debugging.
func (s *SingleSelectStep) String() string {
	return fmt.Sprintf("SingleSelectStep{id=%s, cursor=%d, selected=%d, options=%d}",
		s.id, s.cursor, s.selected, len(s.options))
}
