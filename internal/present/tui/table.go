package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/confchat/internal/present/format"
	"github.com/mithrel/confchat/internal/util"
)

// Options configures the transcript browser.
type Options struct {
	// Width fixes the wrap width of opened messages; 0 follows the terminal.
	Width  int
	Status string
}

// Browse opens an interactive Bubble Tea table over a rendered transcript.
func Browse(ctx context.Context, msgs []format.Rendered, opts Options) error {
	m := newModel(msgs, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

type model struct {
	table    table.Model
	view     viewport.Model
	msgs     []format.Rendered
	visible  []int
	previews []string
	filter   *filterModal
	query    string
	viewing  bool
	viewIdx  int
	showHelp bool
	width    int
	height   int
	wrap     int
	status   string
}

func newModel(msgs []format.Rendered, opts Options) model {
	m := model{
		msgs:    msgs,
		wrap:    opts.Width,
		status:  opts.Status,
		viewIdx: -1,
		view:    viewport.New(80, 20),
	}
	m.previews = make([]string, len(msgs))
	for i, r := range msgs {
		m.previews[i] = preview(r.Blocks)
	}
	m.table = table.New(table.WithColumns(m.columns(80)), table.WithFocused(true))
	m.applyStyles()
	m.applyFilter()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	if m.viewing {
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.filter != nil {
		switch key {
		case "enter":
			m.filter = nil
			return m, nil
		case "esc":
			m.filter = nil
			m.query = ""
			m.applyFilter()
			return m, nil
		}
		cmd := m.filter.update(msg)
		m.query = m.filter.value()
		m.applyFilter()
		return m, cmd
	}
	if m.showHelp {
		switch key {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}
	if m.viewing {
		switch key {
		case "esc", "backspace":
			m.viewing = false
			return m, nil
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		}
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	switch key {
	case "q":
		return m, tea.Quit
	case "esc":
		if m.query != "" {
			m.query = ""
			m.applyFilter()
			return m, nil
		}
		return m, tea.Quit
	case "/":
		m.filter = newFilterModal(m.query, m.width)
		return m, nil
	case "?":
		m.showHelp = true
		return m, nil
	case "enter":
		cur := m.table.Cursor()
		if cur >= 0 && cur < len(m.visible) {
			m.open(m.visible[cur])
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// open shows message idx in the viewport.
func (m *model) open(idx int) {
	m.viewIdx = idx
	m.viewing = true
	m.renderView()
	m.view.GotoTop()
}

func (m *model) renderView() {
	if m.viewIdx < 0 || m.viewIdx >= len(m.msgs) {
		return
	}
	width := m.wrap
	if width <= 0 {
		width = max(20, m.view.Width-1)
	}
	m.view.SetContent(format.NewStyledRenderer(width).Render(m.msgs[m.viewIdx].Blocks))
}

// applyFilter rebuilds the visible rows from the current query.
func (m *model) applyFilter() {
	// An empty query keeps transcript order.
	m.visible = util.RankMatches(m.query, m.previews, 0)
	rows := make([]table.Row, 0, len(m.visible))
	for _, i := range m.visible {
		r := m.msgs[i]
		rows = append(rows, table.Row{
			strconv.Itoa(r.Index),
			string(r.Role),
			m.previews[i],
			strconv.Itoa(len(r.Blocks)),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

func (m *model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	body := max(3, m.height-2)
	m.table.SetHeight(body)
	m.table.SetWidth(m.width)
	m.table.SetColumns(m.columns(m.width))
	m.view.Width = m.width
	m.view.Height = body
	if m.viewing {
		m.renderView()
	}
}

func (m *model) columns(width int) []table.Column {
	const idxW, roleW, blocksW, pad = 4, 10, 6, 8
	prevW := max(10, width-idxW-roleW-blocksW-pad)
	return []table.Column{
		{Title: "#", Width: idxW},
		{Title: "Role", Width: roleW},
		{Title: "Message", Width: prevW},
		{Title: "Blocks", Width: blocksW},
	}
}

func (m *model) applyStyles() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)
}

func (m model) renderFooter() string {
	left := "↑/↓ navigate • enter=open • /=filter • ?=help • q=exit"
	if m.viewing {
		left = "↑/↓ scroll • esc=back • q=exit"
	}
	if m.filter != nil {
		left = m.filter.View()
	}

	var right string
	if m.status != "" {
		right = m.status + " • "
	}
	if m.query != "" {
		right += fmt.Sprintf("%d/%d messages ", len(m.visible), len(m.msgs))
	} else {
		right += fmt.Sprintf("%d messages ", len(m.msgs))
	}

	width := max(m.width, m.table.Width())
	space := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", space) + right
}

func (m model) View() string {
	var base string
	switch {
	case m.viewing && m.viewIdx >= 0:
		r := m.msgs[m.viewIdx]
		title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("#%d %s", r.Index, r.Role))
		base = title + "\n" + m.view.View() + "\n" + m.renderFooter()
	case len(m.msgs) == 0:
		base = "(no messages)\n"
	default:
		base = m.table.View() + "\n" + m.renderFooter() + "\n"
	}
	if m.showHelp {
		box, w, h := helpBox()
		return m.renderOverlay(base, box, w, h)
	}
	return base
}
