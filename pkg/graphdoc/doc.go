// Package graphdoc is the canonical serialization format for mind-map
// documents.
//
// A document is the pair {nodes, edges} encoded as JSON, keyed by node
// and edge id. The format is human-readable and round-trip lossless for
// every field of every payload variant: import -> edit -> export ->
// re-import produces identical structures.
//
// Loading is fail-soft at the session boundary: [LoadOrEmpty] discards a
// blob that fails to parse wholesale in favor of an empty default
// document, never a partially-applied one.
package graphdoc
