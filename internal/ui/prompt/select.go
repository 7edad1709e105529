package prompt

import (
	"io"
	"os"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/raphi011/brewlog/internal/ui/styles"
)

// SelectResult holds the result of a selection prompt.
type SelectResult struct {
	Value     string
	Index     int
	Cancelled bool
}

// Choice is a selectable entry with an optional second line.
type Choice struct {
	Label       string
	Description string
}

type listItem struct {
	choice Choice
	index  int
}

func (i listItem) Title() string       { return i.choice.Label }
func (i listItem) Description() string { return i.choice.Description }
func (i listItem) FilterValue() string { return i.choice.Label }

type selectModel struct {
	list      list.Model
	done      bool
	cancelled bool
	selected  int
}

func newSelectModel(prompt string, choices []Choice) selectModel {
	items := make([]list.Item, len(choices))
	withDescriptions := false
	for i, c := range choices {
		items[i] = listItem{choice: c, index: i}
		if c.Description != "" {
			withDescriptions = true
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = withDescriptions
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)

	height := len(choices) + 6
	if withDescriptions {
		height += len(choices)
	}

	l := list.New(items, delegate, 60, min(height, 20))
	l.Title = prompt
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(len(choices) > 7)
	l.DisableQuitKeybindings()

	return selectModel{list: l, selected: -1}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		filtering := m.list.FilterState() == list.Filtering
		switch msg.String() {
		case "enter":
			if filtering {
				break
			}
			if item, ok := m.list.SelectedItem().(listItem); ok {
				m.selected = item.index
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "esc", "q":
			if filtering || m.list.FilterState() == list.FilterApplied {
				break
			}
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(m.list.View())
}

// Select shows a list selection prompt and returns the user's selection.
func Select(prompt string, options []string) (SelectResult, error) {
	choices := make([]Choice, len(options))
	for i, o := range options {
		choices[i] = Choice{Label: o}
	}
	return SelectChoice(prompt, choices)
}

// SelectChoice is Select with per-choice descriptions.
func SelectChoice(prompt string, choices []Choice) (SelectResult, error) {
	return selectChoice(prompt, choices, os.Stdin, os.Stderr)
}

func selectChoice(prompt string, choices []Choice, in io.Reader, out io.Writer) (SelectResult, error) {
	if len(choices) == 0 {
		return SelectResult{Cancelled: true}, nil
	}

	p := tea.NewProgram(newSelectModel(prompt, choices), programOptions(in, out)...)
	finalModel, err := p.Run()
	if err != nil {
		return SelectResult{}, err
	}
	return selectResult(finalModel.(selectModel), choices), nil
}

func selectResult(m selectModel, choices []Choice) SelectResult {
	if m.cancelled || m.selected < 0 || m.selected >= len(choices) {
		return SelectResult{Cancelled: true}
	}
	return SelectResult{
		Value: choices[m.selected].Label,
		Index: m.selected,
	}
}
