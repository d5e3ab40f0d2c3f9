// Package config loads and validates the TOML configuration for lineup.
//
// Load resolves the config path (explicit flag, ~/.config/lineup/config.toml,
// or ./lineup.toml), decodes over Default(), normalizes paths, and validates.
// Matcher weights are handed to the matcher as an explicit value; nothing in
// this package is process-global.
package config
