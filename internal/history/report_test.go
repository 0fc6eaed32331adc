package history

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/stopcast/internal/model"
	"github.com/verte-zerg/stopcast/internal/store"
)

type failingLister struct{}

func (failingLister) ListRuns(context.Context, model.HistoryFilter) ([]model.RunRecord, error) {
	return nil, errors.New("disk on fire")
}

func TestBuildReport(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	runs := []model.RunRecord{
		{EndedAt: time.Unix(0, 0), ElapsedMs: 5000, Laps: []int64{1000, 3500}},
		{EndedAt: time.Unix(60, 0), ElapsedMs: 2000, Laps: []int64{800}},
	}
	for _, run := range runs {
		if _, err := st.InsertRun(ctx, run); err != nil {
			t.Fatalf("insert run: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(report.Runs))
	}
	if report.TotalMs != 7000 || report.TotalLaps != 3 || report.BestLapMs != 800 {
		t.Fatalf("unexpected totals: %+v", report)
	}

	var buf bytes.Buffer
	if err := Render(&buf, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Elapsed", "00:00:05:000", "00:00:01:000", "Runs: 2", "Best lap: 00:00:00:800"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestBuildReportWrapsError(t *testing.T) {
	if _, err := BuildReport(context.Background(), failingLister{}, model.HistoryFilter{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Report{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs recorded.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestBestSplit(t *testing.T) {
	if _, ok := BestSplit(nil); ok {
		t.Fatalf("expected no split for empty laps")
	}
	best, ok := BestSplit([]int64{1000, 1500, 3000})
	if !ok || best != 500 {
		t.Fatalf("unexpected best split %d", best)
	}
}
