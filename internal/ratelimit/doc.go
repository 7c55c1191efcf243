// Package ratelimit spaces outbound requests with a fixed delay.
//
// A [Limiter] sleeps for the same duration before every request. It has no
// burst allowance and does not account for request latency, so the effective
// rate is one request per delay plus response time. The sleep is injectable
// so callers can test without waiting on the clock.
package ratelimit
