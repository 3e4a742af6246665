// Package imaging provides the raster I/O around the depth extraction core.
//
// It loads depth rasters from disk, writes extracted faces back out, and
// renders the six-panel diagnostic view. The extraction itself lives in
// package depth; functions here only convert between files and depth grids
// and package results for the MCP server and the command line.
//
// # Loading
//
// LoadDepth decodes PNG, JPEG, or GIF files. Grayscale files keep their native
// precision (8 or 16 bits). Color files are reduced to luminance with ITU-R
// BT.601 weights. DepthCache memoizes decoded rasters by path and is safe for
// concurrent use.
//
// # Writing
//
// SaveRaster writes depth values unscaled, rounded and clamped to the pixel
// type. Normalize, by contrast, stretches a grid onto 0-255 and is meant for
// display only.
//
// # Error Handling
//
// Unreadable or empty inputs fail with depth.ErrInvalidImage. Extraction
// failures are returned unchanged from package depth.
package imaging
