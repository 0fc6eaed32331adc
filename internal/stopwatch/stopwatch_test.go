package stopwatch

import (
	"sync"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00:000"},
		{61_234, "00:01:01:234"},
		{3_661_000, "01:01:01:000"},
		{999, "00:00:00:999"},
		{359_999_999, "99:59:59:999"},
		{3_600_000_000, "1000:00:00:000"},
		{-5, "00:00:00:000"},
	}
	for _, tc := range cases {
		if got := Format(tc.ms); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}

func TestNewIsStoppedAtZero(t *testing.T) {
	s := New()
	if s.ElapsedMs != 0 || s.Running || len(s.Laps) != 0 {
		t.Fatalf("unexpected initial state: %+v", s)
	}
}

func TestStartPauseAreIdempotent(t *testing.T) {
	s := New()
	if !s.Start() {
		t.Fatalf("expected first start to change state")
	}
	if s.Start() {
		t.Fatalf("expected second start to be a no-op")
	}
	s.Tick(DefaultTick)
	if !s.Pause() {
		t.Fatalf("expected first pause to change state")
	}
	if s.Pause() {
		t.Fatalf("expected second pause to be a no-op")
	}
	if s.ElapsedMs != 10 {
		t.Fatalf("expected 10ms elapsed, got %d", s.ElapsedMs)
	}
}

func TestTickOnlyAdvancesWhileRunning(t *testing.T) {
	s := New()
	s.Tick(DefaultTick)
	if s.ElapsedMs != 0 {
		t.Fatalf("expected no advance while stopped, got %d", s.ElapsedMs)
	}
	s.Start()
	prev := s.ElapsedMs
	for i := 0; i < 5; i++ {
		s.Tick(DefaultTick)
		if s.ElapsedMs < prev {
			t.Fatalf("elapsed decreased: %d -> %d", prev, s.ElapsedMs)
		}
		prev = s.ElapsedMs
	}
	s.Pause()
	frozen := s.ElapsedMs
	s.Tick(DefaultTick)
	s.Tick(DefaultTick)
	if s.ElapsedMs != frozen {
		t.Fatalf("expected elapsed frozen at %d, got %d", frozen, s.ElapsedMs)
	}
	if frozen != 50 {
		t.Fatalf("expected 50ms elapsed, got %d", frozen)
	}
}

func TestToggle(t *testing.T) {
	s := New()
	if !s.Toggle() {
		t.Fatalf("expected toggle to start")
	}
	if s.Toggle() {
		t.Fatalf("expected toggle to pause")
	}
}

func TestRecordLap(t *testing.T) {
	s := New()
	if s.RecordLap() {
		t.Fatalf("expected lap to be ignored while paused")
	}
	if len(s.Laps) != 0 {
		t.Fatalf("expected no laps, got %v", s.Laps)
	}
	s.Start()
	s.Tick(DefaultTick)
	s.RecordLap()
	s.Tick(DefaultTick)
	s.Tick(DefaultTick)
	s.RecordLap()
	if len(s.Laps) != 2 || s.Laps[0] != 10 || s.Laps[1] != 30 {
		t.Fatalf("unexpected laps: %v", s.Laps)
	}
	s.Pause()
	s.RecordLap()
	if len(s.Laps) != 2 {
		t.Fatalf("expected paused lap to be ignored, got %v", s.Laps)
	}
}

func TestResetFromAnyState(t *testing.T) {
	states := []*State{
		New(),
		{ElapsedMs: 120, Running: true, Laps: []int64{40, 80}},
		{ElapsedMs: 500, Running: false, Laps: []int64{100}},
	}
	for _, s := range states {
		s.Reset()
		if s.ElapsedMs != 0 || s.Running || len(s.Laps) != 0 {
			t.Fatalf("unexpected state after reset: %+v", s)
		}
	}
}

func TestSnapshotCopiesLaps(t *testing.T) {
	s := New()
	s.Start()
	s.RecordLap()
	snap := s.Snapshot()
	s.Tick(DefaultTick)
	s.RecordLap()
	if len(snap.Laps) != 1 {
		t.Fatalf("snapshot laps changed: %v", snap.Laps)
	}
}

func TestLapSplits(t *testing.T) {
	splits := LapSplits([]int64{100, 250, 600})
	want := []int64{100, 150, 350}
	for i := range want {
		if splits[i] != want[i] {
			t.Fatalf("split %d = %d, want %d", i, splits[i], want[i])
		}
	}
}

func TestTickerStopIsIdempotent(t *testing.T) {
	tk := NewTicker(time.Millisecond)
	tk.Stop()
	tk.Stop()
	if !tk.Stopped() {
		t.Fatalf("expected ticker to report stopped")
	}
	if _, ok := tk.Next(); ok {
		t.Fatalf("expected no tick after stop")
	}
}

func TestTickerIDsAreUnique(t *testing.T) {
	a := NewTicker(time.Second)
	b := NewTicker(time.Second)
	defer a.Stop()
	defer b.Stop()
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct ticker ids")
	}
}

func TestNoAdvanceAfterTickerStopped(t *testing.T) {
	var mu sync.Mutex
	s := New()
	s.Start()
	tk := NewTicker(time.Millisecond)
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		for {
			if _, ok := tk.Next(); !ok {
				return
			}
			mu.Lock()
			s.Tick(time.Millisecond)
			mu.Unlock()
		}
	}()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	s.Pause()
	mu.Unlock()
	tk.Stop()

	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatalf("tick loop did not exit after stop")
	}

	mu.Lock()
	frozen := s.ElapsedMs
	mu.Unlock()
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if s.ElapsedMs != frozen {
		t.Fatalf("elapsed advanced after stop: %d -> %d", frozen, s.ElapsedMs)
	}
}
