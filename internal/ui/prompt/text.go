package prompt

import (
	"io"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/brewlog/internal/ui/styles"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

// TextOptions configures TextInput.
type TextOptions struct {
	Placeholder string
	Initial     string
	Password    bool
	// Validate rejects a submitted value; the error is shown inline and
	// the prompt stays open.
	Validate func(string) error
}

type textInputModel struct {
	textInput textinput.Model
	prompt    string
	validate  func(string) error
	errMsg    string
	done      bool
	cancelled bool
}

func newTextInputModel(prompt string, opts TextOptions) textInputModel {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = 256
	ti.SetWidth(50)
	if opts.Password {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.SetValue(opts.Initial)
	ti.Focus()

	return textInputModel{
		textInput: ti,
		prompt:    prompt,
		validate:  opts.Validate,
	}
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "enter":
			if m.validate != nil {
				if err := m.validate(strings.TrimSpace(m.textInput.Value())); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
		m.errMsg = ""
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	s := m.prompt + "\n" + m.textInput.View()
	if m.errMsg != "" {
		s += "\n" + styles.ErrorStyle.Render(m.errMsg)
	}
	return tea.NewView(s)
}

// TextInput shows a text input prompt on stderr and returns the trimmed
// input.
func TextInput(prompt string, opts TextOptions) (TextInputResult, error) {
	return textInput(prompt, opts, os.Stdin, os.Stderr)
}

func textInput(prompt string, opts TextOptions, in io.Reader, out io.Writer) (TextInputResult, error) {
	p := tea.NewProgram(newTextInputModel(prompt, opts), programOptions(in, out)...)
	finalModel, err := p.Run()
	if err != nil {
		return TextInputResult{}, err
	}
	m := finalModel.(textInputModel)
	if m.cancelled {
		return TextInputResult{Cancelled: true}, nil
	}
	return TextInputResult{Value: strings.TrimSpace(m.textInput.Value())}, nil
}
