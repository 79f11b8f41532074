package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// filterModal is a one-line prompt for a fuzzy query over message previews.
type filterModal struct {
	input textinput.Model
}

func newFilterModal(query string, termW int) *filterModal {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "keynote, lunch, workshop…"
	ti.SetValue(query)
	ti.Focus()
	if termW > 0 {
		ti.Width = max(12, termW-lipgloss.Width(ti.Prompt)-1)
	}
	return &filterModal{input: ti}
}

func (f *filterModal) value() string { return f.input.Value() }

func (f *filterModal) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *filterModal) View() string { return f.input.View() }
