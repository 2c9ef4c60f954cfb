// Package engine ties the graph store, layout engine, visibility
// resolver, history log, and persistence collaborator into one session.
//
// # Architecture
//
// User actions arrive as explicit [Intent] values consumed by a single
// dispatcher, [Session.Dispatch]. Each user-originating mutation runs
// through the same tail: a history snapshot is recorded and a debounced
// persist is scheduled. Undo and redo restore a snapshot through the
// store's bulk-replace primitive and tag the mutation with the replay
// origin so the history log ignores it.
//
// All engine logic is synchronous pure-data transformation; the only
// asynchronous seam is the persistence debounce timer, which is why
// Session guards its state with a mutex. The session is owned by a
// single logical editing surface - multi-writer arbitration is the
// caller's concern.
package engine
