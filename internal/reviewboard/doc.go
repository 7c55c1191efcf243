// Package reviewboard is a minimal client for the two Review Board endpoints
// needed to mirror patches: the diff listing in the Web API and the raw diff
// download on the regular site. Raw diff bytes are not exposed through the
// Web API, so the two calls use different base URLs.
//
// Every request waits on a [ratelimit.Limiter] first. Failures are returned
// as [*Error] values whose [ErrorKind] lets callers tell a missing review
// request apart from an unreachable server or another HTTP status.
package reviewboard
