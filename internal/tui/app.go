// Package tui provides the Bubble Tea stopwatch and weather interface.
package tui

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/verte-zerg/stopcast/internal/catalog"
	"github.com/verte-zerg/stopcast/internal/model"
	"github.com/verte-zerg/stopcast/internal/weather"
)

const (
	modeStopwatch = iota
	modeWeather
)

const (
	zoneNavStopwatch = "nav-stopwatch"
	zoneNavWeather   = "nav-weather"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Options wires the UI to its collaborators.
type Options struct {
	Config   model.Config
	Catalog  *catalog.Catalog
	Fetcher  weather.Fetcher
	Archiver RunArchiver
	Logger   *slog.Logger
	Zones    *zone.Manager
}

type zoneMarker struct {
	m *zone.Manager
}

func (z zoneMarker) mark(id, v string) string {
	if z.m == nil {
		return v
	}
	return z.m.Mark(id, v)
}

func (z zoneMarker) scan(v string) string {
	if z.m == nil {
		return v
	}
	return z.m.Scan(v)
}

func (z zoneMarker) hit(id string, msg tea.MouseMsg) bool {
	if z.m == nil {
		return false
	}
	return z.m.Get(id).InBounds(msg)
}

// Model implements the Bubble Tea root UI. Exactly one widget is mounted at a time.
type Model struct {
	opts   Options
	logger *slog.Logger
	zones  zoneMarker

	mode      int
	mounts    int64
	stopwatch *stopwatchModel
	weather   *weatherModel

	width  int
	height int
}

// NewModel constructs the root UI with the stopwatch mounted.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.New(opts.Config.Locations)
	}
	m := &Model{
		opts:   opts,
		logger: logger,
		zones:  zoneMarker{m: opts.Zones},
	}
	m.mountStopwatch()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.weather != nil {
			m.weather.setWidth(m.width)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}
		if m.weather != nil && m.weather.inputMode {
			return m, m.weather.update(msg)
		}
		switch msg.String() {
		case "q":
			return m, m.quit()
		case "1":
			return m, m.switchMode(modeStopwatch)
		case "2":
			return m, m.switchMode(modeWeather)
		case "tab":
			return m, m.switchMode(1 - m.mode)
		}
		return m, m.routeToActive(msg)
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m, m.handleClick(msg)
	case tickMsg:
		if m.stopwatch == nil {
			return m, nil
		}
		return m, m.stopwatch.update(msg)
	case weatherResultMsg:
		if m.weather == nil {
			m.logger.Debug("dropping weather result for unmounted widget", "location", msg.result.Location)
			return m, nil
		}
		return m, m.weather.update(msg)
	}
	return m, nil
}

func (m *Model) routeToActive(msg tea.Msg) tea.Cmd {
	switch m.mode {
	case modeWeather:
		return m.weather.update(msg)
	default:
		return m.stopwatch.update(msg)
	}
}

func (m *Model) handleClick(msg tea.MouseMsg) tea.Cmd {
	switch {
	case m.zones.hit(zoneNavStopwatch, msg):
		return m.switchMode(modeStopwatch)
	case m.zones.hit(zoneNavWeather, msg):
		return m.switchMode(modeWeather)
	}
	if m.stopwatch != nil {
		for _, id := range []string{zoneToggle, zoneLap, zoneReset} {
			if m.zones.hit(id, msg) {
				return m.stopwatch.click(id)
			}
		}
	}
	return nil
}

func (m *Model) switchMode(mode int) tea.Cmd {
	if mode == m.mode {
		return nil
	}
	m.unmount()
	m.mode = mode
	if mode == modeWeather {
		return m.mountWeather()
	}
	m.mountStopwatch()
	return nil
}

func (m *Model) mountStopwatch() {
	m.stopwatch = newStopwatchModel(m.opts.Config.Tick, m.opts.Archiver, m.logger, m.zones)
}

func (m *Model) mountWeather() tea.Cmd {
	m.mounts++
	query := weather.NewQuery(m.opts.Config.DefaultLocation, m.logger)
	m.weather = newWeatherModel(m.mounts, query, m.opts.Fetcher, m.opts.Catalog)
	m.weather.setWidth(m.width)
	return m.weather.mountCmd()
}

func (m *Model) unmount() {
	if m.stopwatch != nil {
		m.stopwatch.teardown()
		m.stopwatch = nil
	}
	m.weather = nil
}

func (m *Model) quit() tea.Cmd {
	m.unmount()
	return tea.Quit
}

// View implements tea.Model.
func (m *Model) View() string {
	var body, help string
	switch {
	case m.weather != nil:
		body = m.weather.view()
		help = m.weather.help()
	case m.stopwatch != nil:
		body = m.stopwatch.view()
		help = m.stopwatch.help()
	}
	footer := headerStyle.Render(truncateLine(help+"  views: 1/2/tab  quit: q", m.width))
	sections := []string{m.renderNav(), "", body, "", footer}
	view := strings.Join(sections, "\n")
	if m.height > 0 {
		view = fitLines(view, m.width, m.height)
	}
	return m.zones.scan(view)
}

func (m *Model) renderNav() string {
	render := func(id, label string, active bool) string {
		if active {
			return m.zones.mark(id, activeNavStyle.Render(label))
		}
		return m.zones.mark(id, inactiveNavStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		render(zoneNavStopwatch, "Stopwatch", m.mode == modeStopwatch),
		render(zoneNavWeather, "Weather", m.mode == modeWeather),
	)
}
