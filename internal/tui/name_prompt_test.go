package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func typeRunes(t *testing.T, m *NamePrompt, text string) *NamePrompt {
	t.Helper()
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return model.(*NamePrompt)
}

func TestNamePromptSubmitsTypedValue(t *testing.T) {
	m := NewNamePrompt("Bob Lee Smith")
	m = typeRunes(t, m, "Bob Smith")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(*NamePrompt)
	if cmd == nil {
		t.Fatalf("enter should quit the program")
	}
	value, ok := m.Result()
	if !ok {
		t.Fatalf("expected submitted result")
	}
	if value != "Bob Smith" {
		t.Fatalf("value = %q, want %q", value, "Bob Smith")
	}
	if view := m.View(); !strings.Contains(view, "Manually enter display name for Bob Lee Smith: ") {
		t.Fatalf("view missing prompt text: %q", view)
	}
}

func TestNamePromptAbortKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyCtrlD},
	} {
		m := NewNamePrompt("Mary Ann Lee")
		model, cmd := m.Update(key)
		m = model.(*NamePrompt)
		if cmd == nil {
			t.Fatalf("%s should quit the program", key.String())
		}
		if _, ok := m.Result(); ok {
			t.Fatalf("%s should abort, got a result", key.String())
		}
	}
}

func TestNamePromptCtrlDWithTextKeepsEditing(t *testing.T) {
	m := NewNamePrompt("Mary Ann Lee")
	m = typeRunes(t, m, "Mary Lee")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = model.(*NamePrompt)
	if m.aborted {
		t.Fatalf("ctrl+d with text must not abort")
	}
}

func TestAskNameReadsFromInput(t *testing.T) {
	var out bytes.Buffer
	value, err := AskName("Bob Lee Smith", strings.NewReader("Bob Smith\r"), &out)
	if err != nil {
		t.Fatalf("AskName returned error: %v", err)
	}
	if value != "Bob Smith" {
		t.Fatalf("value = %q, want %q", value, "Bob Smith")
	}
}

func askNameWithin(t *testing.T, input string) (string, error) {
	t.Helper()
	type answer struct {
		value string
		err   error
	}
	done := make(chan answer, 1)
	go func() {
		value, err := AskName("Bob Lee Smith", strings.NewReader(input), &bytes.Buffer{})
		done <- answer{value, err}
	}()
	select {
	case a := <-done:
		return a.value, a.err
	case <-time.After(5 * time.Second):
		t.Fatalf("AskName(%q) did not return after its input ended", input)
		return "", nil
	}
}

func TestAskNameEmptyInputAborts(t *testing.T) {
	_, err := askNameWithin(t, "")
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
}

func TestAskNameKeepsUnterminatedAnswer(t *testing.T) {
	value, err := askNameWithin(t, "Bob")
	if err != nil {
		t.Fatalf("AskName returned error: %v", err)
	}
	if value != "Bob" {
		t.Fatalf("value = %q, want %q", value, "Bob")
	}
}

func TestNamePromptInputClosed(t *testing.T) {
	m := NewNamePrompt("Mary Ann Lee")
	model, cmd := m.Update(inputClosedMsg{})
	m = model.(*NamePrompt)
	if cmd == nil {
		t.Fatalf("closed input should quit the program")
	}
	if _, ok := m.Result(); ok {
		t.Fatalf("closed input on an empty line should abort")
	}

	m = NewNamePrompt("Mary Ann Lee")
	m = typeRunes(t, m, "Mary Lee")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, _ = model.(*NamePrompt).Update(inputClosedMsg{})
	value, ok := model.(*NamePrompt).Result()
	if !ok || value != "Mary Lee" {
		t.Fatalf("answer submitted before the close was lost: %q, %v", value, ok)
	}
}

func TestRenderDone(t *testing.T) {
	got := RenderDone("bulk_create.csv", 2)
	want := "file ready :) bulk_create.csv (2 rows)\n"
	if got != want {
		t.Fatalf("RenderDone = %q, want %q", got, want)
	}
}

func TestRenderPreview(t *testing.T) {
	out := RenderPreview([]string{"DisplayName", "LicenseSkuId"}, [][]string{
		{"Jane Doe", "X"},
		{"Bob Lee Smith", "Y"},
		{"Ann Lee", "Z"},
	}, 2)
	for _, want := range []string{"Reading CSV with columns:", `"DisplayName"`, "Jane Doe | X", "Bob Lee Smith | Y"} {
		if !strings.Contains(out, want) {
			t.Fatalf("preview missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Ann Lee") {
		t.Fatalf("preview should stop at the limit:\n%s", out)
	}
	if !strings.Contains(RenderPreview(nil, nil, 5), "(no rows)") {
		t.Fatalf("empty preview should say so")
	}
}
