package cli

import (
	"fmt"

	"github.com/dshills/rbarchive/internal/archive"
	"github.com/dshills/rbarchive/internal/ui"
)

// consoleReporter prints one status line per archive event.
type consoleReporter struct{}

func (consoleReporter) RevisionNotFound(revisionID int) {
	ui.Skipped(fmt.Sprintf("r%d (not found)", revisionID))
}

func (consoleReporter) RevisionFailed(revisionID int, err error) {
	ui.ErrorMsg(fmt.Sprintf("r%d %v", revisionID, err))
}

func (consoleReporter) DiffFailed(revisionID, diffID int, err error) {
	ui.ErrorMsg(fmt.Sprintf("fetching diff r%d %d: %v", revisionID, diffID, err))
}

func (consoleReporter) PatchWritten(d archive.Diff, path string) {
	ui.Wrote(fmt.Sprintf("%s %d bytes", path, len(d.Patch)))
}

func (consoleReporter) IndexWritten(revisionID int, path string) {
	ui.Wrote(path)
}

func (consoleReporter) NoNewDiffs(revisionID int) {
	ui.Skipped(fmt.Sprintf("r%d (no new diffs)", revisionID))
}
