package weather

import (
	"context"
	"log/slog"

	"github.com/verte-zerg/stopcast/internal/model"
)

// DefaultLocation is selected when the panel is mounted.
const DefaultLocation = "Bengaluru"

// Request is one fetch issued by a Query.
type Request struct {
	Seq      uint64
	Location string
}

// Result carries the outcome of a Request back to its Query.
type Result struct {
	Seq      uint64
	Location string
	Snapshot model.WeatherSnapshot
	Err      error
}

// Query owns the selected location and the last successfully fetched
// snapshot. Requests are numbered and only the newest issued one may
// replace the snapshot; an older completion is discarded even when the
// newest request failed.
type Query struct {
	selected string
	snapshot model.WeatherSnapshot
	issued   uint64
	finished uint64
	logger   *slog.Logger
}

// NewQuery creates a query selecting defaultLocation with an empty snapshot.
func NewQuery(defaultLocation string, logger *slog.Logger) *Query {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Query{
		selected: defaultLocation,
		snapshot: model.EmptySnapshot(),
		logger:   logger,
	}
}

// Mount issues the fetch for the initially selected location.
func (q *Query) Mount() (Request, bool) {
	if q.selected == "" {
		return Request{}, false
	}
	return q.issue(q.selected), true
}

// SelectLocation changes the selection. A non-empty name yields a request
// to fetch; an empty name only clears the selection.
func (q *Query) SelectLocation(name string) (Request, bool) {
	q.selected = name
	if name == "" {
		return Request{}, false
	}
	return q.issue(name), true
}

// Apply records a finished fetch. Failures are reported to the diagnostic
// logger and leave the snapshot untouched. It returns true when the
// snapshot was replaced.
func (q *Query) Apply(res Result) bool {
	if res.Seq > q.finished {
		q.finished = res.Seq
	}
	if res.Err != nil {
		q.logger.Error("weather fetch failed",
			"location", res.Location,
			"seq", res.Seq,
			"err", res.Err,
		)
		return false
	}
	if res.Seq < q.issued {
		q.logger.Debug("discarding stale weather result",
			"location", res.Location,
			"seq", res.Seq,
			"latest", q.issued,
		)
		return false
	}
	q.snapshot = res.Snapshot
	q.logger.Debug("weather updated", "location", res.Location, "seq", res.Seq)
	return true
}

// Selected returns the selected location name.
func (q *Query) Selected() string {
	return q.selected
}

// Snapshot returns the last successfully fetched snapshot.
func (q *Query) Snapshot() model.WeatherSnapshot {
	return q.snapshot
}

// Pending reports whether the newest request has not completed yet.
func (q *Query) Pending() bool {
	return q.issued > q.finished
}

func (q *Query) issue(location string) Request {
	q.issued++
	q.logger.Debug("weather fetch issued", "location", location, "seq", q.issued)
	return Request{Seq: q.issued, Location: location}
}

// Do runs req against f and packages the outcome.
func Do(ctx context.Context, f Fetcher, req Request) Result {
	snap, err := f.Fetch(ctx, req.Location)
	return Result{
		Seq:      req.Seq,
		Location: req.Location,
		Snapshot: snap,
		Err:      err,
	}
}
