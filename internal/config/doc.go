// Package config handles loading and validation of brewlog configuration.
//
// Configuration is read from ~/.config/brewlog/config.toml (or the file
// named by BREWLOG_CONFIG) with environment variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - BREWLOG_API_URL, BREWLOG_WEB_URL, BREWLOG_TIMEOUT, BREWLOG_THEME,
//     BREWLOG_THEME_MODE env vars
//   - Config file settings
//   - Default values
//
// # Sections
//
//	[api]
//	base_url = "https://brew.example.com"
//	timeout = "15s"
//	rate_limit = 5.0
//
//	[cache]
//	coffee_ttl = "60s"
//	brewlog_ttl = "10s"
//
//	[theme]
//	name = "nord"
//
// Durations use Go syntax ("500ms", "1m30s"). Unknown keys are rejected
// so typos surface early.
package config
