// Package dot renders a mind map as a Graphviz node-link diagram.
//
// [ToDOT] emits DOT text with one shape per node type, and [RenderSVG]
// rasterizes it through the embedded Graphviz engine. Callers that want
// collapse/focus semantics applied should resolve a view first and pass
// its node/edge subset in.
package dot
