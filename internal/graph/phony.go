package graph

import "github.com/specialistvlad/burstbuild/internal/env"

// phonyFor synthesizes a no-op producer for n under the root scope: phony
// rule, no inputs, n as its single explicit output.
func (g *Graph) phonyFor(n *Node) *Edge {
	e := g.NewEdge(g.root)
	e.Rule = env.Phony
	e.outputs = []*Node{n}
	e.outImplicit = 1
	e.setFlag(FlagSynthesized)
	n.producer = e
	return e
}
