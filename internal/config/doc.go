// Package config loads, normalizes, and validates the TOML configuration
// shared by the sharp CLI and MCP server.
//
// Load searches ~/.config/sharp/config.toml and then ./sharp.toml unless an
// explicit path is given. A missing file is not an error: Default values are
// used and the returned exists flag is false. SHARP_LOG_LEVEL, when set,
// overrides logging.level after the file is read.
package config
