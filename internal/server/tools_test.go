package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"depth_load",
		"depth_nose_tip",
		"depth_extract_face",
		"depth_roughness",
		"depth_visualize",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}
			if _, ok := props["path"]; !ok {
				t.Error("InputSchema missing 'path' property")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok || len(required) != 1 || required[0] != "path" {
				t.Errorf("required: got %v, want [path]", tool.InputSchema["required"])
			}
		})
	}
}

func TestToolDefinitions_ExtractionDefaults(t *testing.T) {
	wantDefaults := map[string]interface{}{
		"crop_radius":     100,
		"smoothing_sigma": 3.0,
		"trim_percent":    0.1,
	}

	for _, tool := range GetToolDefinitions() {
		if tool.Name != "depth_extract_face" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		for name, want := range wantDefaults {
			prop, ok := props[name].(map[string]interface{})
			if !ok {
				t.Errorf("%s: property missing", name)
				continue
			}
			if prop["default"] != want {
				t.Errorf("%s default: got %v, want %v", name, prop["default"], want)
			}
		}
		return
	}
	t.Fatal("depth_extract_face not defined")
}

func TestToolDefinitions_RoughnessHasNoTrim(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "depth_roughness" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		if _, ok := props["trim_percent"]; ok {
			t.Error("depth_roughness should not accept trim_percent")
		}
		return
	}
	t.Fatal("depth_roughness not defined")
}
