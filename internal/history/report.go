package history

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/stopcast/internal/model"
	"github.com/verte-zerg/stopcast/internal/stopwatch"
)

// RunLister lists archived runs.
type RunLister interface {
	ListRuns(ctx context.Context, filter model.HistoryFilter) ([]model.RunRecord, error)
}

// Report contains precomputed data for history output.
type Report struct {
	Runs      []model.RunRecord
	TotalMs   int64
	TotalLaps int
	BestLapMs int64
}

// BuildReport loads runs and computes totals.
func BuildReport(ctx context.Context, st RunLister, filter model.HistoryFilter) (Report, error) {
	runs, err := st.ListRuns(ctx, filter)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list runs: %w", err)
	}
	report := Report{Runs: runs}
	for _, run := range runs {
		report.TotalMs += run.ElapsedMs
		report.TotalLaps += len(run.Laps)
		if best, ok := BestSplit(run.Laps); ok && (report.BestLapMs == 0 || best < report.BestLapMs) {
			report.BestLapMs = best
		}
	}
	return report, nil
}

// BestSplit returns the shortest split among laps.
func BestSplit(laps []int64) (int64, bool) {
	splits := stopwatch.LapSplits(laps)
	if len(splits) == 0 {
		return 0, false
	}
	best := splits[0]
	for _, s := range splits[1:] {
		if s < best {
			best = s
		}
	}
	return best, true
}

// Render writes the report as an aligned table followed by totals.
func Render(w io.Writer, report Report) error {
	if len(report.Runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	tbl := newRunTable(
		column{title: "#", right: true},
		column{title: "Ended"},
		column{title: "Elapsed"},
		column{title: "Laps", right: true},
		column{title: "Best lap"},
	)
	for _, run := range report.Runs {
		best := "-"
		if b, ok := BestSplit(run.Laps); ok {
			best = stopwatch.Format(b)
		}
		tbl.addRow(
			strconv.FormatInt(run.ID, 10),
			run.EndedAt.Local().Format("2006-01-02 15:04"),
			stopwatch.Format(run.ElapsedMs),
			strconv.Itoa(len(run.Laps)),
			best,
		)
	}
	for _, line := range tbl.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	summary := fmt.Sprintf("\nRuns: %d  Total: %s  Laps: %d", len(report.Runs), stopwatch.Format(report.TotalMs), report.TotalLaps)
	if report.BestLapMs > 0 {
		summary += "  Best lap: " + stopwatch.Format(report.BestLapMs)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}
