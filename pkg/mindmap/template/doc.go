// Package template expands declarative blueprints into laid-out
// subgraphs.
//
// A [Blueprint] describes a three-level structure - one root, its
// sections, and each section's children. [Instantiate] turns it into
// nodes and edges with deterministic ids and grid positions, then the
// caller typically runs the tree layout for final placement.
//
// Instantiation by name is best-effort: an unknown template key logs a
// warning and returns ok=false instead of failing the caller.
package template
