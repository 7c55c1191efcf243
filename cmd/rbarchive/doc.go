// Rbarchive saves Review Board (MozReview) patches to a static directory tree.
//
// For every review request in the given revision or range it asks the Web API
// how many diff revisions exist, downloads each raw diff from the site, and
// writes an index.html listing them newest first with a latest.patch alias.
//
// Usage:
//
//	rbarchive 1234                      # archive one review request
//	rbarchive 1234..1300 --limit 0.5    # archive a range, two requests per second
//	rbarchive 1234..1300 --skip-existing --output-dir mirror
//	rbarchive stats --output-dir mirror # summarize an existing archive
//	rbarchive config init               # write a default config file
//
// Failures on individual revisions or diffs are printed and skipped; the
// batch always runs to the end.
package main
