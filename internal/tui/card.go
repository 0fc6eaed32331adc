package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/stopcast/internal/model"
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	cityStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tempStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true).PaddingLeft(2)
)

type metric struct {
	label string
	value string
}

func snapshotMetrics(snap model.WeatherSnapshot) []metric {
	return []metric{
		{label: "Feels Like", value: celsius(snap.FeelsLike)},
		{label: "Humidity", value: formatNumber(snap.Humidity) + "%"},
		{label: "Wind Speed", value: formatNumber(roundHalfUp(snap.WindSpeed)) + " km/h"},
		{label: "Pressure", value: formatNumber(snap.Pressure) + " hPa"},
	}
}

// RenderSnapshot renders a weather card for snap. Plain output carries no
// terminal styling and is meant for pipes.
func RenderSnapshot(snap model.WeatherSnapshot, width int, plain bool) string {
	if plain {
		return renderPlainSnapshot(snap, width)
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		cityStyle.Render(snap.City),
		cardTitleStyle.Render(snap.Description),
	)
	top := lipgloss.JoinHorizontal(lipgloss.Center, header, tempStyle.Render(celsius(snap.Temperature)))

	metrics := snapshotMetrics(snap)
	cards := make([]string, 0, len(metrics))
	for _, m := range metrics {
		cards = append(cards, metricCard(m.label, m.value))
	}
	var grid string
	if width > 0 && width < 40 {
		grid = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3])
		grid = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	icon := cardTitleStyle.Render("icon " + snap.Icon)
	return lipgloss.JoinVertical(lipgloss.Left, top, icon, "", grid)
}

func renderPlainSnapshot(snap model.WeatherSnapshot, width int) string {
	rows := append([]metric{{label: "Temperature", value: celsius(snap.Temperature)}}, snapshotMetrics(snap)...)
	rows = append(rows, metric{label: "Icon", value: snap.Icon})
	labelWidth := 0
	for _, r := range rows {
		labelWidth = maxInt(labelWidth, runewidth.StringWidth(r.label))
	}
	lines := []string{snap.City}
	if snap.Description != "" {
		lines = append(lines, snap.Description)
	}
	for _, r := range rows {
		lines = append(lines, runewidth.FillRight(r.label, labelWidth)+"  "+r.value)
	}
	for i, line := range lines {
		lines[i] = truncateLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Width(16).Render(content)
}

func celsius(v float64) string {
	return formatNumber(roundHalfUp(v)) + "°C"
}

// roundHalfUp rounds halves toward positive infinity.
func roundHalfUp(v float64) float64 {
	r := math.Floor(v + 0.5)
	if r == 0 {
		return 0
	}
	return r
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
