package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

var helpLines = []string{
	"↑/↓      move",
	"enter    open message",
	"/        fuzzy filter",
	"esc      back / clear filter",
	"?        toggle help",
	"q        quit",
}

// helpBox is the content of the help modal.
func helpBox() (string, int, int) {
	body := lipgloss.NewStyle().Bold(true).Render("Keys") + "\n\n" + strings.Join(helpLines, "\n")
	box := lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(body)
	return box, lipgloss.Width(box), lipgloss.Height(box)
}

// renderOverlay composes a centered modal on top of the given base view string.
func (m model) renderOverlay(base, fg string, overlayW, overlayH int) string {
	termW, termH := m.width, m.height
	if termW <= 0 {
		termW = 80
	}
	if termH <= 0 {
		termH = 24
	}
	x := max(0, (termW-overlayW)/2)
	y := max(0, (termH-overlayH)/2)

	dimBase := lipgloss.NewStyle().Faint(true).Render(base)
	baseLayer := lipgloss.NewLayer(dimBase).
		Width(termW).
		Height(termH)
	fgLayer := lipgloss.NewLayer(fg).
		Width(overlayW).
		Height(overlayH).
		X(x).
		Y(y)

	return lipgloss.NewCanvas(baseLayer, fgLayer).Render()
}
