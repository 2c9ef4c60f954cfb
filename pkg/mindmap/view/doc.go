// Package view derives the renderable subset of a mind map.
//
// Visibility is a pure function of the graph, the collapsed flags on its
// nodes, and an optional focus root. There is no incremental state: every
// call to [Resolve] recomputes the result from scratch, which keeps the
// view trivially consistent with the graph after any mutation.
package view
