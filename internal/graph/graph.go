package graph

import (
	"slices"
	"strings"

	"github.com/specialistvlad/burstbuild/internal/env"
)

// Graph is one generation of nodes and edges.
type Graph struct {
	root  *env.Env
	nodes map[string]*Node
	edges []*Edge
}

// New returns an empty generation whose edges default to the root scope.
// A nil root gets a fresh empty scope.
func New(root *env.Env) *Graph {
	if root == nil {
		root = env.New(nil)
	}
	return &Graph{
		root:  root,
		nodes: make(map[string]*Node, 1024),
	}
}

// Root returns the top-level scope.
func (g *Graph) Root() *env.Env { return g.root }

// Intern returns the node for path, creating it on first use.
func (g *Graph) Intern(path string) *Node {
	if n, ok := g.nodes[path]; ok {
		return n
	}
	return g.insert(path)
}

// InternBytes is Intern for a borrowed buffer. The buffer is only read during
// the call; it is copied if and only if a new node is created, so the caller
// may reuse it afterwards either way.
func (g *Graph) InternBytes(path []byte) *Node {
	if n, ok := g.nodes[string(path)]; ok {
		return n
	}
	return g.insert(string(path))
}

func (g *Graph) insert(path string) *Node {
	n := newNode(path)
	g.nodes[path] = n
	return n
}

// Lookup returns the node for path without creating one.
func (g *Graph) Lookup(path string) (*Node, bool) {
	n, ok := g.nodes[path]
	return n, ok
}

// LookupBytes is Lookup for a borrowed buffer.
func (g *Graph) LookupBytes(path []byte) (*Node, bool) {
	n, ok := g.nodes[string(path)]
	return n, ok
}

// Len returns the number of interned nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns every node, sorted by path.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *Node) int { return strings.Compare(a.path, b.path) })
	return nodes
}

// Edges returns every edge in creation order, synthesized phony edges included.
func (g *Graph) Edges() []*Edge {
	return slices.Clone(g.edges)
}

// NewEdge creates an edge with a fresh scope chained to parent (the root
// scope when parent is nil) and registers it with the generation. Its rule is
// left for the caller to set.
func (g *Graph) NewEdge(parent *env.Env) *Edge {
	if parent == nil {
		parent = g.root
	}
	e := &Edge{
		graph: g,
		scope: env.New(parent),
	}
	g.edges = append(g.edges, e)
	return e
}

// EnsureProducers gives every consumed node without a producer a phony one
// and returns how many were synthesized.
func (g *Graph) EnsureProducers() int {
	var count int
	for _, n := range g.Nodes() {
		if n.producer == nil && len(n.consumers) > 0 {
			g.phonyFor(n)
			count++
		}
	}
	return count
}
