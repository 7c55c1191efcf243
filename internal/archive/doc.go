// Package archive mirrors review request diffs into a static file tree.
//
// Layout under the output root:
//
//	<root>/<revision>/r<revision>-diff<diff>.patch
//	<root>/<revision>/index.html
//
// [Store] owns the layout and file IO, [RenderIndex] produces the per-revision
// listing page, and [Archiver] drives one revision or a whole range against a
// [Fetcher]. Remote failures are reported through a [Reporter] and never stop
// a range; filesystem failures and context cancellation do.
//
// A revision's index is rewritten only when the run wrote at least one diff.
// If every attempted fetch fails, the previous index (or none) is left in
// place and the revision is reported as failed, even with skip-existing off.
package archive
