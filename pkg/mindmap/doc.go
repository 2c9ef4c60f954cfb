// Package mindmap provides the core node/edge graph model for Mindloom.
//
// The package owns the canonical in-memory representation of a mind map:
// typed nodes with positional data, directed edges, and an explicit
// selection state. Mutation goes through [Store], which guarantees the
// structural invariants the rest of the engine relies on (unique ids,
// atomic cascading deletes, no dangling state after DeleteSelected).
//
// The graph is not required to be acyclic. Every traversal in this package
// and its subpackages guards against cycles with a visited set, and edges
// whose endpoints are missing are skipped rather than treated as errors.
//
// Subpackages build on this model:
//   - layout: pure position-assignment functions (radial and tree)
//   - view: visibility resolution for collapse and focus semantics
//   - history: snapshot-based undo/redo
//   - template: declarative blueprint expansion
package mindmap
