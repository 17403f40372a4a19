package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Classification and loading
		{
			Name:        "image_classify",
			Description: "Detect the format of an image file from its leading bytes, falling back to the filename extension. Returns jpeg, png, webp, tiff, magick, openslide or unknown.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color interpretation, band count, alpha and profile flags, and EXIF orientation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"access": map[string]interface{}{
						"type":        "string",
						"description": "Pixel access pattern: random decodes immediately, sequential defers decoding until pixels are needed",
						"enum":        []string{"random", "sequential"},
						"default":     "random",
					},
				},
				"required": []string{"path"},
			},
		},

		// Metadata
		{
			Name:        "image_orientation",
			Description: "Read the EXIF orientation code (1-8) of an image. Returns 0 when the image declares no orientation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_set_orientation",
			Description: "Write the EXIF orientation code of a loaded image, keeping all other EXIF fields. Returns the new EXIF block as base64; the file on disk is not modified.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"orientation": map[string]interface{}{
						"type":        "integer",
						"description": "EXIF orientation code",
						"minimum":     1,
						"maximum":     8,
					},
				},
				"required": []string{"path", "orientation"},
			},
		},
		{
			Name:        "image_remove_orientation",
			Description: "Remove the EXIF orientation tag of a loaded image, keeping all other EXIF fields. Returns the resulting EXIF block as base64; the file on disk is not modified.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_auto_orient",
			Description: "Rotate and flip an image according to its EXIF orientation and return the upright pixels as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Helpers
		{
			Name:        "image_interpolator_window",
			Description: "Return the pixel window size sampled by a named interpolator (nearest, bilinear, bicubic, lbb, nohalo, vsqbs). Unknown names return 0.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Interpolator name",
					},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "server_status",
			Description: "Report how many tool calls are queued and in flight.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
