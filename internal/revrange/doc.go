// Package revrange parses revision arguments of the form "N" or "N..M".
//
// Ranges are inclusive on both ends. A range whose start is greater than
// its end is valid and simply contains no revisions.
package revrange
