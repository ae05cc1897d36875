package main

import (
	"github.com/charmbracelet/bubbles/help"

	"github.com/joshuapare/tierkit/tier"
)

const (
	// rowBytes is the number of tier bytes per dump row.
	rowBytes = 16

	// rowsPerBank is the number of dump rows in one 64KB bank.
	rowsPerBank = tier.BankSize / rowBytes

	// chromeHeight is the number of lines taken by header and status bar.
	chromeHeight = 4
)

// Model is the main application model
type Model struct {
	name  string
	ch    *tier.Channel
	banks int
	keys  KeyMap
	help  help.Model

	bank   int // bank on screen
	cursor int // selected row within the bank
	offset int // first visible row

	width  int
	height int

	// Help overlay
	showHelp bool

	// Status message for temporary feedback
	statusMessage string

	err error
}

// NewModel creates a browser over the tier behind ch. banks is the number of
// banks the store holds; rows past it are never read.
func NewModel(name string, ch *tier.Channel, banks int) Model {
	return Model{
		name:   name,
		ch:     ch,
		banks:  banks,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
}

// visibleRows is the number of dump rows that fit on screen.
func (m Model) visibleRows() int {
	return max(1, m.height-chromeHeight)
}

// rowAddr returns the tier address of row in the current bank.
func (m Model) rowAddr(row int) tier.Addr {
	return tier.BankAddr(m.bank) + tier.Addr(row*rowBytes)
}

// readRow fetches one row in a single transfer.
func (m Model) readRow(row int) ([rowBytes]byte, error) {
	var b [rowBytes]byte
	err := m.ch.Read(b[:], m.rowAddr(row))
	return b, err
}

// moveCursor moves the cursor by delta rows, clamped to the bank, and scrolls
// so the cursor stays visible.
func (m *Model) moveCursor(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), rowsPerBank-1)
	m.scroll()
}

func (m *Model) scroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = min(max(m.offset, 0), max(rowsPerBank-rows, 0))
}

// switchBank moves to bank+delta, keeping the cursor row.
func (m *Model) switchBank(delta int) bool {
	next := m.bank + delta
	if next < 0 || next >= m.banks {
		return false
	}
	m.bank = next
	return true
}
