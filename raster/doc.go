// Package raster reads classified maps for sampling.
//
// A Source exposes 1-based bands, each read as an immutable classmap.Grid,
// and optional per-band category names. Two sources are provided:
//
//   - File: a TIFF/GeoTIFF decoded with golang.org/x/image/tiff. Gray, Gray16
//     and Paletted images have one band (palette indices are the codes);
//     RGBA-family images expose their four channels as bands 1..4. Category
//     names are read from a GDAL PAM sidecar, "<path>.aux.xml".
//   - Memory: bands and names already held in memory.
//
// Errors carry their triggering parameters: *RasterOpenError (path) and
// *BandIndexError (requested index and band count).
package raster
