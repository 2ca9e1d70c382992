// Package config handles configuration loading, parsing, and validation
// from environment variables (prefix FLASHDECK_) and an optional YAML file.
// Environment variables take precedence over file values, which take
// precedence over defaults.
package config
