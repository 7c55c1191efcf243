// Package cli wires together the Cobra command tree for the rbarchive binary.
//
// The root command takes a revision or revision range, builds the effective
// configuration, and drives the archiver. Subcommands manage the config file
// (config), summarize an existing archive (stats), and print the version.
// Per-revision failures are reported as status lines and never change the
// exit code; only bad arguments, bad configuration, filesystem failures and
// interruption do.
package cli
