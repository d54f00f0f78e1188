package manifest

import (
	"errors"
	"fmt"
	"maps"
	"path"
	"path/filepath"
	"slices"

	"github.com/specialistvlad/burstbuild/internal/env"
	"github.com/specialistvlad/burstbuild/internal/graph"
)

// build wires one build block into the graph. Edge variables are evaluated in
// the file scope; paths are evaluated in the edge scope so they can use them.
func (b *builder) build(blk *buildBlock) error {
	rule, ok := b.rules[blk.Rule]
	if !ok {
		return rangeError(blk.DefRange, fmt.Errorf("%w '%s'", errUnknownRule, blk.Rule))
	}
	if len(blk.Outputs) == 0 {
		return rangeError(blk.DefRange, errors.New("build has no outputs"))
	}

	e := b.g.NewEdge(b.root)
	e.Rule = rule

	vars, err := stringMap(blk.Vars)
	if err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		t, err := env.ParseTemplate(vars[name])
		if err != nil {
			return rangeError(blk.DefRange, err)
		}
		e.Env().Set(name, t.EvalIn(b.root))
	}

	resolve := func(raw []string) ([]*graph.Node, error) {
		nodes := make([]*graph.Node, 0, len(raw))
		for _, r := range raw {
			t, err := env.ParseTemplate(r)
			if err != nil {
				return nil, rangeError(blk.DefRange, err)
			}
			p, err := canonicalPath(t.EvalIn(e.Env()))
			if err != nil {
				return nil, rangeError(blk.DefRange, err)
			}
			nodes = append(nodes, b.g.Intern(p))
		}
		return nodes, nil
	}

	var groups [6][]*graph.Node
	for i, raw := range [][]string{blk.Outputs, blk.ImplicitOutputs, blk.Inputs, blk.Implicit, blk.OrderOnly, blk.Discovered} {
		if groups[i], err = resolve(raw); err != nil {
			return err
		}
	}

	if err := e.AddOutputs(groups[0], groups[1]); err != nil {
		return rangeError(blk.DefRange, err)
	}
	e.AddInputs(groups[2], groups[3], groups[4])
	if len(groups[5]) > 0 {
		b.discovered = append(b.discovered, pendingDeps{edge: e, deps: groups[5]})
	}

	return b.assignPool(e, blk)
}

// pendingDeps holds dependencies wired only once every build block is in, as if
// read from a depfile after parsing, so a later block may still produce them.
type pendingDeps struct {
	edge *graph.Edge
	deps []*graph.Node
}

func (b *builder) wireDiscovered() {
	for _, d := range b.discovered {
		d.edge.AddDeps(d.deps)
	}
}

// assignPool uses the block's pool, falling back to the rule's pool binding.
func (b *builder) assignPool(e *graph.Edge, blk *buildBlock) error {
	name := blk.Pool
	if name == "" {
		v, _, err := e.Lookup("pool", false)
		if err != nil {
			return rangeError(blk.DefRange, err)
		}
		name = v
	}
	if name == "" {
		return nil
	}
	pool, ok := b.pools[name]
	if !ok {
		return rangeError(blk.DefRange, fmt.Errorf("%w '%s'", errUnknownPool, name))
	}
	e.Pool = pool
	return nil
}

// canonicalPath normalizes separators and removes "." and ".." components
// where possible, so every spelling of a file interns to the same node.
func canonicalPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("empty path")
	}
	return path.Clean(filepath.ToSlash(p)), nil
}
