package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func typeInto(in TextInput, text string) TextInput {
	for _, r := range text {
		in, _ = in.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return in
}

func TestTextInputNumericOnly(t *testing.T) {
	in := NewTextInput("0", true, 3)
	in.Focus()
	in = typeInto(in, "1a2")

	if in.Value() != "12" {
		t.Fatalf("Value = %q, want 12", in.Value())
	}
	n, err := in.NumericValue()
	if err != nil || n != 12 {
		t.Errorf("NumericValue = %d, %v", n, err)
	}
}

func TestTextInputSubmitMarkClearsOnEdit(t *testing.T) {
	in := NewTextInput("", true, 3)
	in.Focus()
	in = typeInto(in, "99")

	in.Submit(false)
	if !strings.Contains(in.View(), "✗") {
		t.Fatal("expected invalid mark after Submit(false)")
	}

	in = typeInto(in, "1")
	if strings.Contains(in.View(), "✗") {
		t.Error("editing should clear the mark")
	}

	in.Submit(true)
	if !strings.Contains(in.View(), "✓") {
		t.Error("expected valid mark after Submit(true)")
	}
}
