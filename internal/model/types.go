// Package model defines shared data structures.
package model

import "time"

// DefaultCity is the city label of the empty weather snapshot.
const DefaultCity = "Select a city"

// Config defines runtime settings resolved from flags and the config file.
type Config struct {
	APIKey          string
	Endpoint        string
	DefaultLocation string
	Timeout         time.Duration
	Tick            time.Duration
	Locations       []string
	History         bool
}

// WeatherSnapshot is the set of weather fields for one location.
type WeatherSnapshot struct {
	City        string
	Temperature float64
	Humidity    float64
	FeelsLike   float64
	Pressure    float64
	WindSpeed   float64
	Description string
	Icon        string
}

// EmptySnapshot returns the snapshot shown before any fetch succeeds.
func EmptySnapshot() WeatherSnapshot {
	return WeatherSnapshot{
		City: DefaultCity,
		Icon: "01d",
	}
}

// IsEmpty reports whether s is the placeholder snapshot.
func (s WeatherSnapshot) IsEmpty() bool {
	return s.City == DefaultCity
}

// RunRecord captures an archived stopwatch run.
type RunRecord struct {
	ID        int64
	EndedAt   time.Time
	ElapsedMs int64
	Laps      []int64
}

// HistoryFilter limits which runs are listed.
type HistoryFilter struct {
	Since *time.Time
	Last  int
}
