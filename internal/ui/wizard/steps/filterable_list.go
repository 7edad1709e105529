package steps

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/brewlog/internal/ui/wizard/framework"
)

const maxVisibleOptions = 10

// optionSource implements fuzzy.Source for options.
type optionSource []framework.Option

func (s optionSource) String(i int) string { return s[i].Label }
func (s optionSource) Len() int            { return len(s) }

// FilterableListStep selects one option from a list narrowed by typing.
// Uses fuzzy matching for filtering.
type FilterableListStep struct {
	id       string
	title    string
	prompt   string
	options  []framework.Option
	filter   string
	filtered []fuzzy.Match // matches against options, best first
	cursor   int           // index into filtered
	selected int           // index into options, -1 if nothing selected
}

// NewFilterableList creates a new filterable single-select step.
func NewFilterableList(id, title, prompt string, options []framework.Option) *FilterableListStep {
	s := &FilterableListStep{
		id:       id,
		title:    title,
		prompt:   prompt,
		options:  options,
		selected: -1,
	}
	s.applyFilter()
	return s
}

func (s *FilterableListStep) ID() string    { return s.id }
func (s *FilterableListStep) Title() string { return s.title }

func (s *FilterableListStep) Init() tea.Cmd {
	return nil
}

func (s *FilterableListStep) Update(msg tea.KeyPressMsg) (framework.Step, tea.Cmd, framework.StepResult) {
	switch msg.String() {
	case "up":
		s.moveCursor(-1)
	case "down":
		s.moveCursor(1)
	case "pgup":
		s.moveCursor(-maxVisibleOptions)
	case "pgdown":
		s.moveCursor(maxVisibleOptions)
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
	case "backspace":
		if s.filter != "" {
			runes := []rune(s.filter)
			s.filter = string(runes[:len(runes)-1])
			s.applyFilter()
		}
	default:
		if msg.Text != "" {
			if text := framework.FilterRunes([]rune(msg.Text), framework.RuneFilterNone); text != "" {
				s.filter += text
				s.applyFilter()
			}
		}
	}
	return s, nil, framework.StepContinue
}

func (s *FilterableListStep) selectCursor() bool {
	if s.cursor < 0 || s.cursor >= len(s.filtered) {
		return false
	}
	idx := s.filtered[s.cursor].Index
	if s.options[idx].Disabled {
		return false
	}
	s.selected = idx
	return true
}

// moveCursor moves by delta, skipping disabled options and clamping to
// the filtered range.
func (s *FilterableListStep) moveCursor(delta int) {
	if len(s.filtered) == 0 {
		return
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	target := min(max(s.cursor+delta, 0), len(s.filtered)-1)
	for i := target; i >= 0 && i < len(s.filtered); i += step {
		if !s.options[s.filtered[i].Index].Disabled {
			s.cursor = i
			return
		}
	}
	for i := target - step; i >= 0 && i < len(s.filtered); i -= step {
		if !s.options[s.filtered[i].Index].Disabled {
			s.cursor = i
			return
		}
	}
}

func (s *FilterableListStep) applyFilter() {
	if s.filter == "" {
		s.filtered = make([]fuzzy.Match, len(s.options))
		for i, opt := range s.options {
			s.filtered[i] = fuzzy.Match{Str: opt.Label, Index: i}
		}
	} else {
		s.filtered = fuzzy.FindFrom(s.filter, optionSource(s.options))
	}

	s.cursor = 0
	for i, m := range s.filtered {
		if !s.options[m.Index].Disabled {
			s.cursor = i
			break
		}
	}
}

func (s *FilterableListStep) View() string {
	var b strings.Builder
	b.WriteString(s.prompt + "\n")
	b.WriteString(framework.OptionDescriptionStyle().Render("Filter: ") + framework.FilterStyle().Render(s.filter) + "\n\n")

	start := 0
	if s.cursor >= maxVisibleOptions {
		start = s.cursor - maxVisibleOptions + 1
	}
	end := min(start+maxVisibleOptions, len(s.filtered))

	if start > 0 {
		b.WriteString(framework.OptionNormalStyle().Render("  ↑ more above") + "\n")
	}

	for i := start; i < end; i++ {
		match := s.filtered[i]
		opt := s.options[match.Index]

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

		label := style.Render(opt.Label)
		if s.filter != "" && len(match.MatchedIndexes) > 0 {
			label = highlightMatches(opt.Label, match.MatchedIndexes, style)
		}

		b.WriteString(cursor + label + "\n")
		if opt.Description != "" {
			b.WriteString("    " + framework.OptionDescriptionStyle().Render(opt.Description) + "\n")
		}
	}

	if end < len(s.filtered) {
		b.WriteString(framework.OptionNormalStyle().Render("  ↓ more below") + "\n")
	}
	if len(s.filtered) == 0 {
		b.WriteString(framework.OptionNormalStyle().Render("  No matching items") + "\n")
	}

	return b.String()
}

// highlightMatches renders matched byte positions of label with the match
// style and the rest with base.
func highlightMatches(label string, matched []int, base lipgloss.Style) string {
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range label {
		if hit[i] {
			b.WriteString(framework.MatchHighlightStyle().Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

func (s *FilterableListStep) Help() string {
	return "↑/↓ select • pgup/pgdn jump • type to filter • ← back • enter confirm • esc cancel"
}

func (s *FilterableListStep) Value() framework.StepValue {
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

func (s *FilterableListStep) IsComplete() bool {
	return s.selected >= 0
}

// Reset clears the selection. The filter is kept so going back to the
// step shows the same narrowed list.
func (s *FilterableListStep) Reset() {
	s.selected = -1
}

func (s *FilterableListStep) HasClearableInput() bool {
	return s.filter != ""
}

func (s *FilterableListStep) ClearInput() tea.Cmd {
	s.filter = ""
	s.applyFilter()
	return nil
}

// SelectValue pre-selects the first enabled option whose Value equals v.
func (s *FilterableListStep) SelectValue(v any) bool {
	for i, opt := range s.options {
		if !opt.Disabled && opt.Value == v {
			s.selected = i
			for j, m := range s.filtered {
				if m.Index == i {
					s.cursor = j
				}
			}
			return true
		}
	}
	return false
}

// GetFilter returns the current filter string.
func (s *FilterableListStep) GetFilter() string {
	return s.filter
}

// GetCursor returns the current cursor position in the filtered list.
func (s *FilterableListStep) GetCursor() int {
	return s.cursor
}

// FilteredCount returns how many options match the filter.
func (s *FilterableListStep) FilteredCount() int {
	return len(s.filtered)
}
