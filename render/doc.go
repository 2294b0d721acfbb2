// Package render draws grids and portal graphs as raster images for
// debugging. It is a pure sink: it reads a finished portal.Graph and never
// feeds anything back into construction.
//
// A Canvas maps grid cells to scale×scale pixel blocks on a white
// background and offers three primitives: Fill for a cell, BoxOutline for a
// rectangle, and Line for a segment between two cell-space points.
// Passable and Graph compose those primitives into the two standard debug
// views; Save writes PNG or 24-bit TGA depending on the file extension.
package render
