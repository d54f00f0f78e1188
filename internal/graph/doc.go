// Package graph is the build graph: file nodes, build edges, and the rules
// that keep them consistent.
//
// # Structure
//
// The graph is bipartite. A Node is a file-like artifact; an Edge is one
// invocation of a rule. Every node has at most one producer (the edge listing
// it as an output) and any number of consumers (edges listing it as an input).
//
// Edge inputs live in a single ordered slice split into three contiguous
// regions:
//
//	[ explicit ... | implicit ... | order-only ... ]
//	               ^inImplicit    ^inOrder
//
// Outputs are split the same way into explicit and implicit regions.
// Explicit inputs and outputs are what $in and $out expand to. Implicit
// inputs affect staleness only. Order-only inputs affect scheduling only.
//
// # Generations
//
// A Graph is one generation. Nodes are interned by path, so within a
// generation pointer equality of nodes is path equality. Nothing is ever
// removed; to reload a manifest, build a new Graph and drop every reference
// into the old one.
//
// # Leaves
//
// A node that is consumed but never produced is a source file. Such nodes get
// a synthesized producer using env.Phony, so consumers of the graph can
// assume Producer() is non-nil for anything reachable from an edge input.
//
// # Concurrency
//
// Construction is single-threaded. After wiring completes, nodes and edges
// may be read concurrently; the lazily computed shell path and fingerprint are
// guarded by sync.Once. StatAll is the only operation that fans out, and each
// of its workers writes a distinct node.
package graph
