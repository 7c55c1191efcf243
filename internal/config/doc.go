// Package config loads and merges rbarchive configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (RBARCHIVE_API_URL, RBARCHIVE_LIMIT, RBARCHIVE_OUTPUT_DIR, etc.)
//  3. Config file ($XDG_CONFIG_HOME/rbarchive/config.json)
//  4. Built-in defaults
//
// The config file is JSON with comments and trailing commas allowed.
// Use [Load] to obtain a merged [Config], [Save] to write the config file,
// and [SetField] to update a single key.
package config
