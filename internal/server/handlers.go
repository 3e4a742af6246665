package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/depth-face-mcp/internal/depth"
	"github.com/ironsheep/depth-face-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "depth_load", "depth_extract_face").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "depth_load":
		return s.handleDepthLoad(args)
	case "depth_nose_tip":
		return s.handleDepthNoseTip(args)
	case "depth_extract_face":
		return s.handleDepthExtractFace(args)
	case "depth_roughness":
		return s.handleDepthRoughness(args)
	case "depth_visualize":
		return s.handleDepthVisualize(args)
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

type depthPathArgs struct {
	Path string `json:"path"`
}

// extractionArgs carries the optional pipeline settings. Absent fields keep
// their defaults; pointers distinguish "absent" from an explicit zero.
type extractionArgs struct {
	Path           string   `json:"path"`
	CropRadius     *int     `json:"crop_radius"`
	SmoothingSigma *float64 `json:"smoothing_sigma"`
	TrimPercent    *float64 `json:"trim_percent"`
	OutputPath     string   `json:"output_path"`
	PanelSize      int      `json:"panel_size"`
}

func (a *extractionArgs) config() depth.Config {
	cfg := depth.DefaultConfig()
	if a.CropRadius != nil {
		cfg.CropRadius = *a.CropRadius
	}
	if a.SmoothingSigma != nil {
		cfg.SmoothingSigma = *a.SmoothingSigma
	}
	if a.TrimPercent != nil {
		cfg.TrimPercent = *a.TrimPercent
	}
	return cfg
}

func (s *Server) loadExtractionArgs(args json.RawMessage) (*extractionArgs, *imaging.Source, error) {
	var a extractionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, nil, err
	}
	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}
	return &a, src, nil
}

// === Depth Handlers ===

func (s *Server) handleDepthLoad(args json.RawMessage) (interface{}, error) {
	var a depthPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadDepthInfo(s.cache, a.Path)
}

func (s *Server) handleDepthNoseTip(args json.RawMessage) (interface{}, error) {
	var a depthPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.LocateNoseTip(src)
}

func (s *Server) handleDepthExtractFace(args json.RawMessage) (interface{}, error) {
	a, src, err := s.loadExtractionArgs(args)
	if err != nil {
		return nil, err
	}
	result, _, err := imaging.ExtractFace(src, a.config(), a.OutputPath)
	if err != nil {
		return nil, err
	}
	s.debugf("extracted %s: nose (%d,%d) window %+v face %+v -> %dx%d",
		a.Path, result.NoseTip.Row, result.NoseTip.Col, result.Window, result.Face.Box,
		result.Refined.Width, result.Refined.Height)
	return result, nil
}

func (s *Server) handleDepthRoughness(args json.RawMessage) (interface{}, error) {
	a, src, err := s.loadExtractionArgs(args)
	if err != nil {
		return nil, err
	}
	return imaging.Roughness(src, a.config())
}

func (s *Server) handleDepthVisualize(args json.RawMessage) (interface{}, error) {
	a, src, err := s.loadExtractionArgs(args)
	if err != nil {
		return nil, err
	}
	if a.PanelSize == 0 {
		a.PanelSize = imaging.DefaultPanelSize
	}
	return imaging.Visualize(src, a.config(), a.OutputPath, a.PanelSize)
}
