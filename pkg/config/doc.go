// Package config handles configuration management for macappbundler.
// It supports loading configuration from multiple sources: embedded
// defaults, the project file (TOML or YAML), environment variables and
// command-line flags, in increasing order of precedence.
package config
