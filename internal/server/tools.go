package server

import (
	"fmt"

	"github.com/ironsheep/depth-face-mcp/internal/imaging"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema of the depth raster argument shared by every tool.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the depth image (PNG, JPEG or GIF; color images are converted to grayscale)",
	}
}

// extractionProperties returns the schema of the optional pipeline settings.
func extractionProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"crop_radius": map[string]interface{}{
			"type":        "integer",
			"description": "Half-width in pixels of the window cut around the nose tip. Default 100",
			"default":     100,
		},
		"smoothing_sigma": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian sigma of the roughness map. Default 3",
			"default":     3.0,
		},
		"trim_percent": map[string]interface{}{
			"type":        "number",
			"description": "Fraction of rows and columns removed from each edge of the masked face, below 0.5. Default 0.1",
			"default":     0.1,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	extractProps := extractionProperties()
	extractProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional path (.png or .jpg) to write the refined face raster to",
	}

	roughnessProps := extractionProperties()
	delete(roughnessProps, "trim_percent")

	visualizeProps := extractionProperties()
	visualizeProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional .png path for the diagnostic view. When omitted the view is returned as base64 PNG",
	}
	visualizeProps["panel_size"] = map[string]interface{}{
		"type":        "integer",
		"description": fmt.Sprintf("Edge length in pixels of each panel, at most %d. Default %d", imaging.MaxPanelSize, imaging.DefaultPanelSize),
		"default":     imaging.DefaultPanelSize,
		"maximum":     imaging.MaxPanelSize,
	}

	return []Tool{
		{
			Name:        "depth_load",
			Description: "Load a depth image and return its dimensions, bit depth and channel count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "depth_nose_tip",
			Description: "Find the nose tip: the closest (smallest nonzero) depth sample. Ties go to the first sample in row-major order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "depth_extract_face",
			Description: "Extract the face region from a depth image: crop around the nose tip, keep the bounding box of the largest rough region, and trim the borders. Returns the refined face as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": extractProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "depth_roughness",
			Description: "Compute the roughness map |I - blur(I)| of the crop around the nose tip and return its statistics and a normalized preview.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": roughnessProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "depth_visualize",
			Description: "Render the six-panel diagnostic view of a face extraction: original, crop, roughness map, masked face, refined face and nose tip.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": visualizeProps,
				"required":   []string{"path"},
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
