package main

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/tierkit/internal/logger"
)

// clearStatusMsg clears the temporary status message.
type clearStatusMsg struct{}

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scroll()
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case imageChangedMsg:
		// Returning re-renders the rows from the updated image
		m.statusMessage = "Image changed on disk"
		return m, clearStatusAfter(2 * time.Second)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// While help is showing only keys that dismiss it do anything
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Esc) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.visibleRows())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.visibleRows())
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-rowsPerBank)
	case key.Matches(msg, m.keys.End):
		m.moveCursor(rowsPerBank)

	case key.Matches(msg, m.keys.NextBank):
		if !m.switchBank(1) {
			m.statusMessage = "Last bank"
			return m, clearStatusAfter(2 * time.Second)
		}
		logger.Debug("bank changed", "bank", m.bank)
	case key.Matches(msg, m.keys.PrevBank):
		if !m.switchBank(-1) {
			m.statusMessage = "First bank"
			return m, clearStatusAfter(2 * time.Second)
		}
		logger.Debug("bank changed", "bank", m.bank)

	case key.Matches(msg, m.keys.Refresh):
		m.ch.ResetStats()
		m.statusMessage = "Stats reset"
		return m, clearStatusAfter(2 * time.Second)

	case key.Matches(msg, m.keys.Copy):
		return m.copyRow()
	}
	return m, nil
}

// copyRow puts the address and hex bytes of the cursor row on the clipboard.
func (m Model) copyRow() (tea.Model, tea.Cmd) {
	row, err := m.readRow(m.cursor)
	if err == nil {
		err = copyToClipboard(fmt.Sprintf("%06X: % X", uint32(m.rowAddr(m.cursor)), row[:]))
	}
	if err != nil {
		logger.Warn("copy failed", "error", err)
		m.statusMessage = "Failed to copy row"
	} else {
		m.statusMessage = "Row copied to clipboard"
	}
	// Clear status after 2 seconds
	return m, clearStatusAfter(2 * time.Second)
}
