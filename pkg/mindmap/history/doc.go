// Package history implements snapshot-based undo/redo for the mind map.
//
// The [Log] keeps an ordered sequence of deep-copied graph snapshots and
// a cursor into it. Recording after one or more undos discards the redo
// tail before appending, so history is always a single line, never a
// tree.
//
// Whether a mutation is recorded is decided by its [Origin]: edits made
// by the user are recorded, mutations caused by replaying a snapshot
// (undo/redo writing the graph back) are not. Passing the origin
// explicitly replaces the usual "suppress recording while navigating"
// guard flag, which is timing-dependent and easy to get wrong.
package history
