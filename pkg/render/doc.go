// Package render exports dialogue documents as Graphviz diagrams.
//
// # Overview
//
// The editor's canvas is the primary view of a document; this package
// provides the shareable exports:
//
//   - [ToDOT]: Document → Graphviz DOT text
//   - [RenderSVG]: DOT → SVG bytes
//   - [RenderPNG]: DOT → PNG bytes
//
// Node fill colors follow the variant color table from the doc package,
// so an exported diagram matches the canvas styling.
//
//	dot := render.ToDOT(d, render.Options{})
//	svg, err := render.RenderSVG(dot)
package render
