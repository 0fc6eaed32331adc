// Package stopwatch implements the stopwatch time state and its tick source.
package stopwatch

import (
	"fmt"
	"time"
)

// DefaultTick is the tick period and elapsed quantum.
const DefaultTick = 10 * time.Millisecond

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// State holds elapsed time, the running flag and recorded laps.
type State struct {
	ElapsedMs int64
	Running   bool
	Laps      []int64
}

// New returns a stopped stopwatch at zero.
func New() *State {
	return &State{Laps: []int64{}}
}

// Start marks the stopwatch running. It returns false if it already was.
func (s *State) Start() bool {
	if s.Running {
		return false
	}
	s.Running = true
	return true
}

// Pause stops the stopwatch. It returns false if it was not running.
func (s *State) Pause() bool {
	if !s.Running {
		return false
	}
	s.Running = false
	return true
}

// Toggle starts a paused stopwatch or pauses a running one and reports the
// new running flag.
func (s *State) Toggle() bool {
	if s.Running {
		s.Pause()
	} else {
		s.Start()
	}
	return s.Running
}

// RecordLap appends the current elapsed time while running.
func (s *State) RecordLap() bool {
	if !s.Running {
		return false
	}
	s.Laps = append(s.Laps, s.ElapsedMs)
	return true
}

// Reset stops the stopwatch and clears elapsed time and laps.
func (s *State) Reset() {
	s.Running = false
	s.ElapsedMs = 0
	s.Laps = []int64{}
}

// Tick advances elapsed time by quantum while running. The quantum is
// counted in whole milliseconds.
func (s *State) Tick(quantum time.Duration) {
	if !s.Running || quantum <= 0 {
		return
	}
	s.ElapsedMs += quantum.Milliseconds()
}

// Snapshot returns a copy safe to keep after further mutation.
func (s *State) Snapshot() State {
	laps := make([]int64, len(s.Laps))
	copy(laps, s.Laps)
	return State{ElapsedMs: s.ElapsedMs, Running: s.Running, Laps: laps}
}

// Format renders ms as HH:MM:SS:mmm. Hours are not wrapped.
func Format(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / msPerHour
	minutes := (ms % msPerHour) / msPerMinute
	seconds := (ms % msPerMinute) / msPerSecond
	millis := ms % msPerSecond
	return fmt.Sprintf("%02d:%02d:%02d:%03d", hours, minutes, seconds, millis)
}

// LapSplits returns the time between consecutive laps. The first split is
// measured from zero.
func LapSplits(laps []int64) []int64 {
	out := make([]int64, len(laps))
	var prev int64
	for i, lap := range laps {
		out[i] = lap - prev
		prev = lap
	}
	return out
}
