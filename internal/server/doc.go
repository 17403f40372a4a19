// Package server implements the MCP (Model Context Protocol) server for the
// image intake tools.
//
// The server exposes format classification, image loading, and EXIF
// orientation handling as MCP tools so that assistants and scripts can
// inspect and normalize images without a native toolchain.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Classification and loading:
//   - image_classify: Detect the container format
//   - image_load: Load an image and describe it
//
// Metadata:
//   - image_orientation: Read the EXIF orientation
//   - image_set_orientation: Write the EXIF orientation
//   - image_remove_orientation: Remove the EXIF orientation
//   - image_auto_orient: Render the image upright
//
// Helpers:
//   - image_interpolator_window: Interpolator window size lookup
//   - server_status: Queued and in-flight call counts
//
// # Image Lifetime
//
// Every tool call loads its image, uses it, and closes it before replying.
// Nothing is cached between calls, so orientation writes affect only the
// returned EXIF block and never the file on disk.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(server.Options{Logger: logger})
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
