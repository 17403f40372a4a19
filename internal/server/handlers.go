package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/denkfabrik-neueMedien/sharp/internal/engine"
	"github.com/denkfabrik-neueMedien/sharp/internal/format"
	"github.com/denkfabrik-neueMedien/sharp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_set_orientation").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Every call is counted: queued on receipt, in flight while the tool runs.
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	if !req.queued {
		s.counters.Enqueue()
	}
	s.counters.Start()
	defer s.counters.Done()

	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug("tool completed", "tool", params.Name, "elapsed", time.Since(start))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the image, if any, and closes it before returning
//  4. Calls the appropriate format/imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Classification and loading
	case "image_classify":
		return s.handleImageClassify(args)
	case "image_load":
		return s.handleImageLoad(args)

	// Metadata
	case "image_orientation":
		return s.handleImageOrientation(args)
	case "image_set_orientation":
		return s.handleImageSetOrientation(args)
	case "image_remove_orientation":
		return s.handleImageRemoveOrientation(args)
	case "image_auto_orient":
		return s.handleImageAutoOrient(args)

	// Helpers
	case "image_interpolator_window":
		return s.handleInterpolatorWindow(args)
	case "server_status":
		return s.handleServerStatus()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

var errPathRequired = errors.New("path is required")

type pathArgs struct {
	Path string `json:"path"`
}

func decodePathArgs(args json.RawMessage, a interface{ path() string }) error {
	if err := json.Unmarshal(args, a); err != nil {
		return err
	}
	if a.path() == "" {
		return errPathRequired
	}
	return nil
}

func (a *pathArgs) path() string { return a.Path }

// load opens the image at path; the caller must Close the handle.
func (s *Server) load(path string, access engine.AccessMode) (*imaging.Handle, error) {
	h, err := s.loader.LoadFile(path, access)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("image loaded", "path", path, "format", h.Format(), "access", access.String())
	return h, nil
}

// === Classification and Loading Handlers ===

// ClassifyResult reports the format detected for a file.
type ClassifyResult struct {
	Path   string             `json:"path"`
	Format format.ImageFormat `json:"format"`
	Known  bool               `json:"known"`
}

func (s *Server) handleImageClassify(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodePathArgs(args, &a); err != nil {
		return nil, err
	}
	f := format.ClassifyFile(a.Path)
	return &ClassifyResult{Path: a.Path, Format: f, Known: f.Known()}, nil
}

type imageLoadArgs struct {
	pathArgs
	Access string `json:"access"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodePathArgs(args, &a); err != nil {
		return nil, err
	}
	access := s.access
	if a.Access != "" {
		mode, err := engine.ParseAccessMode(a.Access)
		if err != nil {
			return nil, err
		}
		access = mode
	}
	h, err := s.load(a.Path, access)
	if err != nil {
		return nil, err
	}
	defer h.Close()
	return imaging.Describe(h), nil
}

// === Metadata Handlers ===

// OrientationResult reports an image's orientation and, after a write, the
// rewritten EXIF block.
type OrientationResult struct {
	Path        string              `json:"path"`
	Orientation imaging.Orientation `json:"orientation"`
	Name        string              `json:"name"`
	ExifBase64  string              `json:"exif_base64,omitempty"`
}

func newOrientationResult(path string, h *imaging.Handle, withExif bool) *OrientationResult {
	o := h.Orientation()
	r := &OrientationResult{Path: path, Orientation: o, Name: o.String()}
	if withExif {
		r.ExifBase64 = base64.StdEncoding.EncodeToString(h.ExifBlock())
	}
	return r
}

func (s *Server) handleImageOrientation(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodePathArgs(args, &a); err != nil {
		return nil, err
	}
	h, err := s.load(a.Path, engine.AccessSequential)
	if err != nil {
		return nil, err
	}
	defer h.Close()
	return newOrientationResult(a.Path, h, false), nil
}

type imageSetOrientationArgs struct {
	pathArgs
	Orientation *int `json:"orientation"`
}

func (s *Server) handleImageSetOrientation(args json.RawMessage) (interface{}, error) {
	var a imageSetOrientationArgs
	if err := decodePathArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Orientation == nil {
		return nil, errors.New("orientation is required")
	}
	h, err := s.load(a.Path, engine.AccessSequential)
	if err != nil {
		return nil, err
	}
	defer h.Close()
	if err := h.SetOrientation(imaging.Orientation(*a.Orientation)); err != nil {
		return nil, err
	}
	return newOrientationResult(a.Path, h, true), nil
}

func (s *Server) handleImageRemoveOrientation(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodePathArgs(args, &a); err != nil {
		return nil, err
	}
	h, err := s.load(a.Path, engine.AccessSequential)
	if err != nil {
		return nil, err
	}
	defer h.Close()
	h.RemoveOrientation()
	return newOrientationResult(a.Path, h, true), nil
}

func (s *Server) handleImageAutoOrient(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodePathArgs(args, &a); err != nil {
		return nil, err
	}
	h, err := s.load(a.Path, engine.AccessRandom)
	if err != nil {
		return nil, err
	}
	defer h.Close()
	return imaging.AutoOrientPNG(h)
}

// === Helper Handlers ===

type interpolatorArgs struct {
	Name string `json:"name"`
}

// InterpolatorResult reports the sampling window of an interpolator.
type InterpolatorResult struct {
	Name       string `json:"name"`
	WindowSize int    `json:"window_size"`
}

func (s *Server) handleInterpolatorWindow(args json.RawMessage) (interface{}, error) {
	var a interpolatorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return &InterpolatorResult{Name: a.Name, WindowSize: imaging.InterpolatorWindowSize(a.Name)}, nil
}

// StatusResult reports the task counters. Queued counts tool calls received
// but not yet started; the status call itself is counted as in flight.
type StatusResult struct {
	Queued   int64 `json:"queued"`
	InFlight int64 `json:"in_flight"`
}

func (s *Server) handleServerStatus() (interface{}, error) {
	return &StatusResult{Queued: s.counters.Queued(), InFlight: s.counters.InFlight()}, nil
}
