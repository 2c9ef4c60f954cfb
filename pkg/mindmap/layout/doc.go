// Package layout computes node positions for a mind map.
//
// Both algorithms are pure functions over (rootID, nodes, edges): they
// return copies of the input nodes with only positions changed and never
// touch the inputs. Determinism is a hard requirement - children are
// visited in edge-sequence order, and repeated invocations on the same
// input produce bit-identical positions.
//
// Two placements are provided:
//   - [Radial]: depth-first angular placement, children spread evenly on a
//     circle around their parent with a growing radius per depth
//   - [Tree]: breadth-first layered placement, one column per depth with
//     rows centered vertically around the root
//
// A root id absent from the graph leaves the input unchanged, and nodes
// unreachable from the root keep their existing positions. Cycles are
// tolerated; every node is visited at most once.
package layout
