// Package prompt provides the operator-facing disambiguators used to replace
// display names that are too long to convert automatically.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/kingrea/entra-bulk/internal/naming"
	"github.com/kingrea/entra-bulk/internal/tui"
)

// ErrInputAborted means the operator channel closed before an answer arrived.
var ErrInputAborted = errors.New("prompt: input aborted")

// Mode picks the disambiguator implementation.
type Mode string

const (
	ModeAuto    Mode = "auto"
	ModeConsole Mode = "console"
	ModeTUI     Mode = "tui"
)

// ParseMode validates a mode string. Empty means ModeAuto.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeConsole:
		return ModeConsole, nil
	case ModeTUI:
		return ModeTUI, nil
	default:
		return "", fmt.Errorf("prompt: unknown mode %q (want auto, console or tui)", value)
	}
}

// New returns the disambiguator for mode. Auto picks the terminal UI when
// both streams are terminals and the line console otherwise. TUI needs a
// terminal on in; piped or closed input falls back to the console.
func New(mode Mode, in io.Reader, out io.Writer) (naming.Disambiguator, error) {
	switch mode {
	case ModeConsole:
		return NewConsole(in, out), nil
	case ModeTUI:
		if !isTerminal(in) {
			return NewConsole(in, out), nil
		}
		return NewTerminal(in, out), nil
	case ModeAuto, "":
		if isTerminal(in) && isTerminal(out) {
			return NewTerminal(in, out), nil
		}
		return NewConsole(in, out), nil
	default:
		return nil, fmt.Errorf("prompt: unknown mode %q", mode)
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Console asks on a line-oriented stream, one line per answer.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole reads answers from in and writes questions to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Disambiguate prints the question and returns the next line without its
// line terminator. Anything else the operator typed is kept.
func (c *Console) Disambiguate(rawName string) (string, error) {
	if _, err := io.WriteString(c.out, tui.PromptText(rawName)); err != nil {
		return "", fmt.Errorf("%w: write prompt: %v", ErrInputAborted, err)
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputAborted
		}
		return "", fmt.Errorf("%w: %v", ErrInputAborted, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Terminal asks through a bubbletea text input.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal runs prompts on the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Disambiguate runs one prompt program and waits for its answer.
func (t *Terminal) Disambiguate(rawName string) (string, error) {
	value, err := tui.AskName(rawName, t.in, t.out)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return "", ErrInputAborted
		}
		return "", fmt.Errorf("%w: %v", ErrInputAborted, err)
	}
	return value, nil
}

// Scripted answers from a fixed table. Names missing from the table behave
// like a closed channel. It records every name it was asked about.
type Scripted struct {
	answers map[string]string
	calls   []string
}

// NewScripted returns a disambiguator answering from answers.
func NewScripted(answers map[string]string) *Scripted {
	copied := make(map[string]string, len(answers))
	for k, v := range answers {
		copied[k] = v
	}
	return &Scripted{answers: copied}
}

// Disambiguate returns the scripted answer for rawName.
func (s *Scripted) Disambiguate(rawName string) (string, error) {
	s.calls = append(s.calls, rawName)
	answer, ok := s.answers[rawName]
	if !ok {
		return "", fmt.Errorf("%w: no scripted answer for %q", ErrInputAborted, rawName)
	}
	return answer, nil
}

// Calls lists the names asked about, in order.
func (s *Scripted) Calls() []string {
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}
