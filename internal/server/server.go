package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/denkfabrik-neueMedien/sharp/internal/counters"
	"github.com/denkfabrik-neueMedien/sharp/internal/engine"
	"github.com/denkfabrik-neueMedien/sharp/internal/imaging"
	"github.com/denkfabrik-neueMedien/sharp/internal/logging"
)

// Options configures a Server. Zero values select defaults.
type Options struct {
	// Name and Version are reported in the initialize handshake.
	Name    string
	Version string

	// Access is the default access mode for tools that accept one.
	Access engine.AccessMode

	// Counters receives queued/in-flight updates for every tool call. A
	// fresh instance is created when nil.
	Counters *counters.Counters

	// Logger receives request diagnostics. Logging is discarded when nil.
	Logger *slog.Logger
}

// Server handles MCP protocol communication
type Server struct {
	loader   *imaging.Loader
	counters *counters.Counters
	logger   *slog.Logger
	name     string
	version  string
	access   engine.AccessMode
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`

	// queued is set when the request was counted on receipt.
	queued bool
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance
func New(opts Options) *Server {
	s := &Server{
		loader:   imaging.NewLoader(),
		counters: opts.Counters,
		logger:   opts.Logger,
		name:     opts.Name,
		version:  opts.Version,
		access:   opts.Access,
	}
	if s.counters == nil {
		s.counters = counters.New()
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.name == "" {
		s.name = "sharp"
	}
	if s.version == "" {
		s.version = "dev"
	}
	return s
}

// Counters returns the task counters the server updates.
func (s *Server) Counters() *counters.Counters {
	return s.counters
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// requestBacklog bounds how many received requests wait for the handler.
const requestBacklog = 64

type inbound struct {
	req *MCPRequest
	err error
}

// Serve reads newline-delimited requests from r and writes responses to w
// until r is exhausted.
//
// Requests are read on a separate goroutine so tool calls are counted as
// queued while earlier calls run. Responses are written in request order.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	s.logger.Info("mcp server started", "name", s.name, "version", s.version, "access", s.access.String())

	requests := make(chan inbound, requestBacklog)
	var scanErr error
	go func() {
		defer close(requests)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			req, err := s.receive(line)
			requests <- inbound{req: req, err: err}
		}
		scanErr = scanner.Err()
	}()

	for in := range requests {
		var resp *MCPResponse
		if in.err != nil {
			s.logger.Warn("failed to parse request", "error", in.err)
			resp = s.errorResponse(nil, -32700, "Parse error", in.err.Error())
		} else {
			resp = s.handleRequest(in.req)
		}
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error("failed to encode response", "error", err)
			}
		}
	}

	if scanErr != nil {
		return fmt.Errorf("scanner error: %w", scanErr)
	}

	s.logger.Info("mcp server stopped")
	return nil
}

// receive decodes one request line. A tool call counts as queued from here
// until its handler starts.
func (s *Server) receive(line []byte) (*MCPRequest, error) {
	var req MCPRequest
	if err := json.Unmarshal(line, &req); err != nil {
		return nil, err
	}
	if req.Method == "tools/call" {
		s.counters.Enqueue()
		req.queued = true
	}
	return &req, nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.logger.Debug("request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    s.name,
				"version": s.version,
			},
		},
	}
}
