// Package server implements the MCP (Model Context Protocol) server for depth face extraction.
//
// This package provides a JSON-RPC 2.0 server that exposes the extraction
// pipeline of package depth, and the raster I/O of package imaging, as MCP
// tools.
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
//   - depth_load: Load a depth image and get its metadata
//   - depth_nose_tip: Locate the closest valid sample
//   - depth_extract_face: Run the full extraction, optionally writing the result
//   - depth_roughness: Inspect the roughness map around the nose tip
//   - depth_visualize: Render the six-panel diagnostic view
//
// The extraction tools accept crop_radius, smoothing_sigma and trim_percent;
// absent values fall back to depth.DefaultConfig.
//
// # Caching
//
// Decoded depth rasters are cached by path for the lifetime of the server.
//
// # Logging
//
// Logs go to stderr through the standard log package. Set
// DEPTH_FACE_LOG_LEVEL=debug to log each extraction and failed tool call.
package server
