package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/stopcast/internal/model"
	"github.com/verte-zerg/stopcast/internal/stopwatch"
)

const (
	zoneToggle = "sw-toggle"
	zoneLap    = "sw-lap"
	zoneReset  = "sw-reset"

	maxLapRows = 8
)

// RunArchiver stores finished stopwatch runs.
type RunArchiver interface {
	InsertRun(ctx context.Context, run model.RunRecord) (int64, error)
}

type tickMsg struct {
	id int64
	at time.Time
}

var (
	clockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Padding(1, 4)
	startStyle = buttonStyle.BorderForeground(lipgloss.Color("#3FB950"))
	lapStyle   = buttonStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	resetStyle = buttonStyle.BorderForeground(lipgloss.Color("#FF4D4F"))
)

type stopwatchModel struct {
	state    *stopwatch.State
	ticker   *stopwatch.Ticker
	tick     time.Duration
	laps     table.Model
	archiver RunArchiver
	logger   *slog.Logger
	zones    zoneMarker
	now      func() time.Time
}

func newStopwatchModel(tick time.Duration, archiver RunArchiver, logger *slog.Logger, zones zoneMarker) *stopwatchModel {
	if tick <= 0 {
		tick = stopwatch.DefaultTick
	}
	m := &stopwatchModel{
		state:    stopwatch.New(),
		tick:     tick,
		archiver: archiver,
		logger:   logger,
		zones:    zones,
		now:      time.Now,
	}
	m.laps = table.New(
		table.WithColumns([]table.Column{
			{Title: "Lap", Width: 4},
			{Title: "Time", Width: 14},
			{Title: "Split", Width: 14},
		}),
		table.WithHeight(1),
	)
	m.laps.SetStyles(lapTableStyles())
	return m
}

func (m *stopwatchModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tickMsg:
		return m.handleTick(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case " ", "s":
			return m.toggle()
		case "l":
			m.lap()
		case "r":
			m.reset()
		}
	}
	return nil
}

func (m *stopwatchModel) click(id string) tea.Cmd {
	switch id {
	case zoneToggle:
		return m.toggle()
	case zoneLap:
		m.lap()
	case zoneReset:
		m.reset()
	}
	return nil
}

func (m *stopwatchModel) toggle() tea.Cmd {
	if !m.state.Toggle() {
		m.release()
		return nil
	}
	m.ticker = stopwatch.NewTicker(m.tick)
	return waitTick(m.ticker)
}

func (m *stopwatchModel) lap() {
	if m.state.RecordLap() {
		m.refreshLaps()
	}
}

func (m *stopwatchModel) reset() {
	m.archive()
	m.release()
	m.state.Reset()
	m.refreshLaps()
}

// teardown releases the tick source when the widget is unmounted.
func (m *stopwatchModel) teardown() {
	m.archive()
	m.release()
	m.state.Pause()
}

func (m *stopwatchModel) release() {
	if m.ticker == nil {
		return
	}
	m.ticker.Stop()
	m.ticker = nil
}

func (m *stopwatchModel) handleTick(msg tickMsg) tea.Cmd {
	if m.ticker == nil || msg.id != m.ticker.ID() {
		return nil
	}
	m.state.Tick(m.ticker.Period())
	return waitTick(m.ticker)
}

func (m *stopwatchModel) archive() {
	if m.archiver == nil || m.state.ElapsedMs == 0 {
		return
	}
	snap := m.state.Snapshot()
	run := model.RunRecord{
		EndedAt:   m.now(),
		ElapsedMs: snap.ElapsedMs,
		Laps:      snap.Laps,
	}
	if _, err := m.archiver.InsertRun(context.Background(), run); err != nil {
		m.logger.Error("failed to archive run", "err", err)
	}
}

func waitTick(t *stopwatch.Ticker) tea.Cmd {
	return func() tea.Msg {
		at, ok := t.Next()
		if !ok {
			return nil
		}
		return tickMsg{id: t.ID(), at: at}
	}
}

func (m *stopwatchModel) refreshLaps() {
	laps := m.state.Laps
	splits := stopwatch.LapSplits(laps)
	rows := make([]table.Row, 0, len(laps))
	for i, lap := range laps {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			stopwatch.Format(lap),
			"+" + stopwatch.Format(splits[i]),
		})
	}
	m.laps.SetRows(rows)
	m.laps.SetHeight(maxInt(1, minInt(len(rows), maxLapRows)))
	m.laps.GotoBottom()
}

func (m *stopwatchModel) view() string {
	clock := clockStyle.Render(stopwatch.Format(m.state.ElapsedMs))
	toggleLabel := "Start"
	if m.state.Running {
		toggleLabel = "Pause"
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.zones.mark(zoneToggle, startStyle.Render(toggleLabel)),
		" ",
		m.zones.mark(zoneLap, lapStyle.Render("Lap")),
		" ",
		m.zones.mark(zoneReset, resetStyle.Render("Reset")),
	)
	sections := []string{clock, buttons}
	if len(m.state.Laps) > 0 {
		sections = append(sections, "", cardTitleStyle.Render("Laps"), m.laps.View())
	}
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func (m *stopwatchModel) help() string {
	return strings.Join([]string{"start/pause: space", "lap: l", "reset: r"}, "  ")
}

func lapTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
