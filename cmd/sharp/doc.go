// Command sharp inspects images and serves the image intake tools over MCP.
//
// Running sharp with no subcommand starts the MCP server on stdin/stdout,
// which is how MCP clients launch it. The remaining subcommands are for
// people at a terminal:
//
//	sharp classify PATH...      detect container formats
//	sharp info [--access MODE] PATH...
//	                            describe images and their metadata
//	sharp version               print build information
//
// Output is a table when stdout is a terminal and JSON otherwise; --json
// forces JSON. Configuration is read from --config, then
// ~/.config/sharp/config.toml, then ./sharp.toml. Logs go to stderr; set
// SHARP_LOG_LEVEL=debug for request tracing.
package main
