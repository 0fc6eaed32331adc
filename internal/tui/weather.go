package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/stopcast/internal/catalog"
	"github.com/verte-zerg/stopcast/internal/weather"
)

const (
	pickerRows      = 7
	emptyOption     = ""
	emptyOptionText = "Select a city"
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	pickerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	cursorRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Italic(true)
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

type weatherResultMsg struct {
	mount  int64
	result weather.Result
}

type weatherModel struct {
	mount   int64
	query   *weather.Query
	fetcher weather.Fetcher
	catalog *catalog.Catalog

	options []string
	cursor  int

	inputMode bool
	input     textinput.Model

	width int
}

func newWeatherModel(mount int64, query *weather.Query, fetcher weather.Fetcher, cat *catalog.Catalog) *weatherModel {
	options := append([]string{emptyOption}, cat.Names()...)
	selected := query.Selected()
	if selected != "" && cat.Index(selected) < 0 {
		options = append([]string{emptyOption, selected}, cat.Names()...)
	}
	m := &weatherModel{
		mount:   mount,
		query:   query,
		fetcher: fetcher,
		catalog: cat,
		options: options,
	}
	m.cursor = max(m.optionIndex(selected), 0)
	m.input = textinput.New()
	m.input.Prompt = "Location: "
	m.input.Placeholder = "any city, postcode or lat,lon"
	m.input.CharLimit = 0
	m.input.Cursor.SetMode(cursor.CursorBlink)
	return m
}

// mountCmd issues the fetch for the initial location.
func (m *weatherModel) mountCmd() tea.Cmd {
	req, ok := m.query.Mount()
	if !ok {
		return nil
	}
	return fetchCmd(m.fetcher, m.mount, req)
}

func fetchCmd(f weather.Fetcher, mount int64, req weather.Request) tea.Cmd {
	return func() tea.Msg {
		return weatherResultMsg{mount: mount, result: weather.Do(context.Background(), f, req)}
	}
}

func (m *weatherModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case weatherResultMsg:
		if msg.mount == m.mount {
			m.query.Apply(msg.result)
		}
		return nil
	case tea.KeyMsg:
		if m.inputMode {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.options) - 1
		case "enter":
			return m.selectLocation(m.options[m.cursor])
		case "/":
			m.inputMode = true
			m.input.SetValue("")
			return m.input.Focus()
		}
	}
	return nil
}

func (m *weatherModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		m.closeInput()
		if value == "" {
			return nil
		}
		return m.selectLocation(m.catalog.Resolve(value))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *weatherModel) closeInput() {
	m.inputMode = false
	m.input.Blur()
}

func (m *weatherModel) selectLocation(name string) tea.Cmd {
	if name != emptyOption && m.optionIndex(name) < 0 {
		m.options = append(m.options, name)
	}
	m.cursor = max(m.optionIndex(name), 0)
	req, ok := m.query.SelectLocation(name)
	if !ok {
		return nil
	}
	return fetchCmd(m.fetcher, m.mount, req)
}

func (m *weatherModel) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.options) {
		next = len(m.options) - 1
	}
	m.cursor = next
}

func (m *weatherModel) optionIndex(name string) int {
	for i, opt := range m.options {
		if strings.EqualFold(opt, name) {
			return i
		}
	}
	return -1
}

func (m *weatherModel) setWidth(width int) {
	m.width = width
	promptWidth := lipgloss.Width(m.input.Prompt)
	m.input.Width = maxInt(10, minInt(width-4, 60)-promptWidth-6)
}

func (m *weatherModel) view() string {
	if m.inputMode {
		return m.renderInput()
	}
	picker := m.renderPicker()
	var card string
	snap := m.query.Snapshot()
	switch {
	case m.query.Selected() == "" || snap.IsEmpty():
		card = cardTitleStyle.Render("Select a city to see its weather.")
	default:
		card = RenderSnapshot(snap, m.width, false)
	}
	sections := []string{titleStyle.Render("Weather Forecast"), "", picker, "", card}
	if m.query.Pending() {
		sections = append(sections, "", pendingStyle.Render("Updating..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *weatherModel) renderPicker() string {
	start := m.cursor - pickerRows/2
	if start > len(m.options)-pickerRows {
		start = len(m.options) - pickerRows
	}
	if start < 0 {
		start = 0
	}
	end := minInt(len(m.options), start+pickerRows)
	selected := m.query.Selected()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		label := m.options[i]
		if label == emptyOption {
			label = emptyOptionText
		}
		marker := "  "
		if strings.EqualFold(m.options[i], selected) {
			marker = "• "
		}
		if i == m.cursor {
			lines = append(lines, cursorRowStyle.Render("› "+marker+label))
			continue
		}
		lines = append(lines, pickerStyle.Render("  "+marker+label))
	}
	return strings.Join(lines, "\n")
}

func (m *weatherModel) renderInput() string {
	body := []string{
		cardValueStyle.Render("Look up a location"),
		m.input.View(),
		cardTitleStyle.Render("Close matches resolve to the catalog."),
		cardTitleStyle.Render("Enter to fetch / Esc to cancel"),
	}
	return modalStyle.Width(maxInt(40, minInt(m.width-4, 60))).Render(strings.Join(body, "\n"))
}

func (m *weatherModel) help() string {
	if m.inputMode {
		return "enter: fetch  esc: cancel"
	}
	return "move: up/down  select: enter  search: /"
}
