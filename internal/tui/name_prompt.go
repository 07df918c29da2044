// internal/tui/name_prompt.go
//
// Single-question bubbletea program used when a roster name is too long to
// turn into a principal name automatically. It follows The Elm Architecture
// like any other bubbletea model:
//
//  1. Model: the original name plus a text input
//  2. Update: Enter submits, Esc / Ctrl+C abort, everything else edits.
//     When the input stream ends, a typed answer is kept and an empty one
//     aborts, the same as the line console.
//  3. View: the prompt line, then a hint footer while editing

package tui

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the operator leaves the prompt without an answer.
var ErrAborted = errors.New("tui: prompt aborted")

var (
	promptLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	promptHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// PromptText is the question shown for a name.
func PromptText(original string) string {
	return fmt.Sprintf("Manually enter display name for %s: ", original)
}

// inputClosedMsg is sent once the program's input stream reaches EOF.
type inputClosedMsg struct{}

// NamePrompt asks for one replacement display name.
type NamePrompt struct {
	original  string
	input     textinput.Model
	value     string
	submitted bool
	aborted   bool
}

// NewNamePrompt builds the model for original.
func NewNamePrompt(original string) *NamePrompt {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "First Last"
	ti.CharLimit = 256
	ti.Focus()
	return &NamePrompt{original: original, input: ti}
}

// Init starts the cursor blinking.
func (m *NamePrompt) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses.
func (m *NamePrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(inputClosedMsg); ok {
		if m.submitted || m.aborted {
			return m, nil
		}
		if value := m.input.Value(); value != "" {
			m.value = value
			m.submitted = true
		} else {
			m.aborted = true
		}
		return m, tea.Quit
	}
	if m.submitted || m.aborted {
		return m, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			m.value = m.input.Value()
			m.submitted = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "ctrl+d":
			// End of input on an empty line, like a closed console.
			if m.input.Value() == "" {
				m.aborted = true
				return m, tea.Quit
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt line.
func (m *NamePrompt) View() string {
	label := promptLabelStyle.Render(PromptText(m.original))
	if m.submitted {
		return label + m.value + "\n"
	}
	if m.aborted {
		return label + "\n"
	}
	return label + m.input.View() + "\n" + promptHintStyle.Render("enter: confirm · esc: abort run") + "\n"
}

// Result returns the answer and whether one was submitted.
func (m *NamePrompt) Result() (string, bool) {
	return m.value, m.submitted && !m.aborted
}

// AskName runs a NamePrompt on the given streams and blocks until the
// operator answers or aborts.
func AskName(original string, in io.Reader, out io.Writer) (string, error) {
	model := NewNamePrompt(original)
	var p *tea.Program
	input := &eofReader{r: in, onEOF: func() { go p.Send(inputClosedMsg{}) }}
	p = tea.NewProgram(model, tea.WithInput(input), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("tui: run prompt: %w", err)
	}
	answered, ok := final.(*NamePrompt)
	if !ok {
		return "", fmt.Errorf("tui: unexpected model %T", final)
	}
	value, ok := answered.Result()
	if !ok {
		return "", ErrAborted
	}
	return value, nil
}

// eofReader reports the first io.EOF from r through onEOF. Data returned
// together with EOF is handed out first so its keys are processed before
// the close.
type eofReader struct {
	r     io.Reader
	onEOF func()
	once  sync.Once
	atEOF bool
}

func (e *eofReader) Read(b []byte) (int, error) {
	if e.atEOF {
		e.once.Do(e.onEOF)
		return 0, io.EOF
	}
	n, err := e.r.Read(b)
	if errors.Is(err, io.EOF) {
		e.atEOF = true
		if n > 0 {
			return n, nil
		}
		e.once.Do(e.onEOF)
	}
	return n, err
}
