package archive

import (
	"context"

	"github.com/dshills/rbarchive/internal/reviewboard"
	"github.com/dshills/rbarchive/internal/revrange"
)

// Fetcher is the remote side of the archiver. *reviewboard.Client
// implements it.
type Fetcher interface {
	DiffCount(ctx context.Context, revisionID int) (int, error)
	Patch(ctx context.Context, revisionID, diffID int) ([]byte, error)
}

// Reporter receives one event per unit of work.
type Reporter interface {
	RevisionNotFound(revisionID int)
	RevisionFailed(revisionID int, err error)
	DiffFailed(revisionID, diffID int, err error)
	PatchWritten(d Diff, path string)
	IndexWritten(revisionID int, path string)
	NoNewDiffs(revisionID int)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) RevisionNotFound(int)       {}
func (NopReporter) RevisionFailed(int, error)  {}
func (NopReporter) DiffFailed(int, int, error) {}
func (NopReporter) PatchWritten(Diff, string)  {}
func (NopReporter) IndexWritten(int, string)   {}
func (NopReporter) NoNewDiffs(int)             {}

// Status is the outcome of archiving one revision.
type Status int

const (
	// StatusArchived means at least one patch was written and the index
	// was regenerated.
	StatusArchived Status = iota
	// StatusUnchanged means nothing needed fetching.
	StatusUnchanged
	// StatusNotFound means the server has no such review request.
	StatusNotFound
	// StatusFailed means the listing failed, or every attempted diff did.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusArchived:
		return "archived"
	case StatusUnchanged:
		return "unchanged"
	case StatusNotFound:
		return "not found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DiffFailure records a diff that could not be fetched.
type DiffFailure struct {
	DiffID int
	Err    error
}

// RevisionResult describes what happened to one revision.
type RevisionResult struct {
	RevisionID   int
	Status       Status
	DiffCount    int
	Fetched      []int
	Skipped      []int
	Failed       []DiffFailure
	BytesWritten int64
	// Err is the listing error for StatusNotFound and listing failures.
	Err error
}

// Summary aggregates results over a range.
type Summary struct {
	Revisions    int
	Archived     int
	Unchanged    int
	NotFound     int
	Failed       int
	Patches      int
	DiffFailures int
	BytesWritten int64
}

func (s *Summary) add(r RevisionResult) {
	s.Revisions++
	switch r.Status {
	case StatusArchived:
		s.Archived++
	case StatusUnchanged:
		s.Unchanged++
	case StatusNotFound:
		s.NotFound++
	case StatusFailed:
		s.Failed++
	}
	s.Patches += len(r.Fetched)
	s.DiffFailures += len(r.Failed)
	s.BytesWritten += r.BytesWritten
}

// Options configures an Archiver.
type Options struct {
	// SkipExisting skips diffs whose patch file is already on disk.
	SkipExisting bool
	Reporter     Reporter
}

// Archiver copies diffs from a Fetcher into a Store.
type Archiver struct {
	fetcher      Fetcher
	store        *Store
	reporter     Reporter
	skipExisting bool
}

// New creates an Archiver.
func New(fetcher Fetcher, store *Store, opts Options) *Archiver {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Archiver{
		fetcher:      fetcher,
		store:        store,
		reporter:     reporter,
		skipExisting: opts.SkipExisting,
	}
}

// Revision archives every diff of one review request. Remote errors are
// reported and reflected in the result; the returned error is non-nil only
// for filesystem failures and context cancellation.
func (a *Archiver) Revision(ctx context.Context, revisionID int) (RevisionResult, error) {
	res := RevisionResult{RevisionID: revisionID}

	count, err := a.fetcher.DiffCount(ctx, revisionID)
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		res.Err = err
		if reviewboard.IsNotFound(err) {
			res.Status = StatusNotFound
			a.reporter.RevisionNotFound(revisionID)
		} else {
			res.Status = StatusFailed
			a.reporter.RevisionFailed(revisionID, err)
		}
		return res, nil
	}
	res.DiffCount = count

	if err := a.store.EnsureRevisionDir(revisionID); err != nil {
		return res, err
	}

	for diffID := 1; diffID <= count; diffID++ {
		if a.skipExisting && a.store.HasPatch(revisionID, diffID) {
			res.Skipped = append(res.Skipped, diffID)
			continue
		}

		patch, err := a.fetcher.Patch(ctx, revisionID, diffID)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Failed = append(res.Failed, DiffFailure{DiffID: diffID, Err: err})
			a.reporter.DiffFailed(revisionID, diffID, err)
			continue
		}

		d := Diff{RevisionID: revisionID, DiffID: diffID, Patch: patch}
		path, err := a.store.WritePatch(d)
		if err != nil {
			return res, err
		}
		res.Fetched = append(res.Fetched, diffID)
		res.BytesWritten += int64(len(patch))
		a.reporter.PatchWritten(d, path)
	}

	switch {
	case len(res.Fetched) > 0:
		path, err := a.store.WriteIndex(revisionID, count)
		if err != nil {
			return res, err
		}
		res.Status = StatusArchived
		a.reporter.IndexWritten(revisionID, path)
	case len(res.Failed) > 0:
		res.Status = StatusFailed
	default:
		res.Status = StatusUnchanged
		a.reporter.NoNewDiffs(revisionID)
	}
	return res, nil
}

// Range archives every revision in r in ascending order. A revision that
// fails remotely does not stop the batch.
func (a *Archiver) Range(ctx context.Context, r revrange.Range) (Summary, error) {
	var sum Summary
	if r.Start > r.End {
		return sum, nil
	}
	// Stop on End itself so a range ending at math.MaxInt does not wrap.
	for id := r.Start; ; id++ {
		res, err := a.Revision(ctx, id)
		if err != nil {
			return sum, err
		}
		sum.add(res)
		if id == r.End {
			return sum, nil
		}
	}
}
