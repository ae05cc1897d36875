package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/tierkit/tier"
)

// TestHelper provides utilities for testing the TUI model
type TestHelper struct {
	model Model
	store *tier.MemStore
}

// NewTestHelper creates a test helper over an in-memory tier of banks banks.
// Byte N of the tier holds the low byte of N.
func NewTestHelper(banks int) *TestHelper {
	s, err := tier.NewMemStore(banks)
	if err != nil {
		panic(err)
	}
	for i := range s.Bytes() {
		s.Bytes()[i] = byte(i)
	}
	return &TestHelper{
		model: NewModel("test.img", tier.NewChannel(s), banks),
		store: s,
	}
}

// SendKey simulates a special key press and returns the resulting command
func (h *TestHelper) SendKey(keyType tea.KeyType) tea.Cmd {
	updated, cmd := h.model.Update(tea.KeyMsg{Type: keyType})
	h.model = updated.(Model)
	return cmd
}

// SendKeyRune simulates a character key press and returns the resulting command
func (h *TestHelper) SendKeyRune(r rune) tea.Cmd {
	updated, cmd := h.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	h.model = updated.(Model)
	return cmd
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	updated, _ := h.model.Update(tea.WindowSizeMsg{Width: width, Height: height})
	h.model = updated.(Model)
	return h
}

// Send delivers an arbitrary message
func (h *TestHelper) Send(msg tea.Msg) *TestHelper {
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}
