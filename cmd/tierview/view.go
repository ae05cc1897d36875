package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.showHelp {
		helpOverlay := overlay.New(
			&helpView{model: &m},
			&mainView{model: &m},
			overlay.Center,
			overlay.Center,
			0,
			0,
		)
		return helpOverlay.View()
	}

	return m.renderMain()
}

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderDump(),
		m.renderStatus(),
	)
}

// renderHeader renders the title, source and bank position.
func (m Model) renderHeader() string {
	title := headerStyle.Render("Tier Browser")
	source := pathStyle.Render(fmt.Sprintf("%s  (%d banks)", m.name, m.banks))
	position := fmt.Sprintf("Bank %d/%d  Row %d/%d  Addr %06X",
		m.bank, m.banks-1, m.cursor, rowsPerBank-1, uint32(m.rowAddr(m.cursor)))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", source),
		position,
	)
}

// renderDump renders the visible rows, reading each from the tier.
func (m Model) renderDump() string {
	rows := m.visibleRows()
	lines := make([]string, 0, rows)
	for row := m.offset; row < m.offset+rows && row < rowsPerBank; row++ {
		lines = append(lines, m.renderRow(row))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row int) string {
	addr := fmt.Sprintf("%06X", uint32(m.rowAddr(row)))
	b, err := m.readRow(row)
	if err != nil {
		return addr + "  " + errorStyle.Render(err.Error())
	}

	line := fmt.Sprintf("%s  %s  |%s|", addr, hexColumns(b[:]), printable(b[:]))
	if row == m.cursor {
		return rowSelectedStyle.Render(line)
	}
	if row == 0 && hasSignature(m.bank, b[:]) {
		line += signatureStyle.Render("  detect signature")
	}
	return addrStyle.Render(addr) + line[len(addr):]
}

// hexColumns formats b as two groups of eight hex bytes.
func hexColumns(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
			if i == rowBytes/2 {
				sb.WriteByte(' ')
			}
		}
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}

// printable renders b as ASCII with '.' for non-printable bytes.
func printable(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 0x20 && c < 0x7f {
			out[i] = c
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}

// hasSignature reports whether b starts with the bank detection pattern.
func hasSignature(bank int, b []byte) bool {
	return len(b) >= 4 && b[0] == byte(bank) && string(b[1:4]) == "reu"
}

// renderStatus renders channel statistics, the status message and key hints.
func (m Model) renderStatus() string {
	st := m.ch.Stats()
	stats := fmt.Sprintf("%s transfers  %s bytes read",
		statusCountStyle.Render(fmt.Sprint(st.Transfers)),
		statusCountStyle.Render(fmt.Sprint(st.FromTier)))

	left := stats
	if m.statusMessage != "" {
		left += "  " + m.statusMessage
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		statusStyle.Render(left),
		m.help.View(m.keys),
	)
}

// mainView renders the browser as the overlay background.
type mainView struct {
	model *Model
}

func (v *mainView) Init() tea.Cmd                       { return nil }
func (v *mainView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v *mainView) View() string                        { return v.model.renderMain() }

// helpView renders the full key help as the overlay foreground.
type helpView struct {
	model *Model
}

func (v *helpView) Init() tea.Cmd                       { return nil }
func (v *helpView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }

func (v *helpView) View() string {
	title := modalTitleStyle.Render("Keyboard Shortcuts")
	body := v.model.help.FullHelpView(v.model.keys.FullHelp())
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}
