package graph

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/burstbuild/internal/env"
)

// Flags is a small bitset of per-edge state.
type Flags uint8

const (
	// FlagHash is set once the fingerprint has been computed.
	FlagHash Flags = 1 << iota
	// FlagSynthesized marks a phony producer created for a node nothing
	// declared an output.
	FlagSynthesized
)

// Edge is one invocation of a rule.
type Edge struct {
	Rule *env.Rule
	Pool *env.Pool

	graph *Graph
	scope *env.Env

	outputs     []*Node
	outImplicit int

	inputs     []*Node
	inImplicit int
	inOrder    int

	hashOnce sync.Once
	hash     uint64
	hashErr  error
	flags    atomic.Uint32
}

// Env returns the edge's own scope. Bindings set here shadow the rule's.
func (e *Edge) Env() *env.Env { return e.scope }

// Flags returns the edge's state bits. It is safe to call while another
// goroutine computes the fingerprint.
func (e *Edge) Flags() Flags { return Flags(e.flags.Load()) }

func (e *Edge) setFlag(f Flags) { e.flags.Or(uint32(f)) }

// Synthesized reports whether the graph created e as a phony producer for a
// source, as opposed to a phony edge declared by the manifest.
func (e *Edge) Synthesized() bool { return e.Flags()&FlagSynthesized != 0 }

// IsPhony reports whether the edge uses the phony rule.
func (e *Edge) IsPhony() bool { return env.IsPhony(e.Rule) }

// Outputs returns all outputs, explicit first. The slice must not be modified.
func (e *Edge) Outputs() []*Node { return e.outputs }

// ExplicitOutputs returns the outputs that $out expands to.
func (e *Edge) ExplicitOutputs() []*Node { return e.outputs[:e.outImplicit] }

// ImplicitOutputs returns the outputs the command produces without naming them.
func (e *Edge) ImplicitOutputs() []*Node { return e.outputs[e.outImplicit:] }

// Inputs returns all inputs in region order. The slice must not be modified.
func (e *Edge) Inputs() []*Node { return e.inputs }

// ExplicitInputs returns the inputs that $in expands to.
func (e *Edge) ExplicitInputs() []*Node { return e.inputs[:e.inImplicit] }

// ImplicitInputs returns inputs that affect staleness but not the command line.
func (e *Edge) ImplicitInputs() []*Node { return e.inputs[e.inImplicit:e.inOrder] }

// OrderOnlyInputs returns inputs that only constrain ordering.
func (e *Edge) OrderOnlyInputs() []*Node { return e.inputs[e.inOrder:] }

// AddOutputs appends explicit and implicit outputs and makes e their
// producer. A node that already has a producer is rejected before anything is
// modified.
func (e *Edge) AddOutputs(explicit, implicit []*Node) error {
	for _, group := range [][]*Node{explicit, implicit} {
		for _, n := range group {
			if n.producer != nil {
				return fmt.Errorf("%w: '%s'", ErrMultipleProducers, n.path)
			}
		}
	}
	seen := make(map[*Node]struct{}, len(explicit)+len(implicit))
	for _, group := range [][]*Node{explicit, implicit} {
		for _, n := range group {
			if _, dup := seen[n]; dup {
				return fmt.Errorf("%w: '%s' is listed twice", ErrMultipleProducers, n.path)
			}
			seen[n] = struct{}{}
		}
	}

	e.outputs = slices.Insert(e.outputs, e.outImplicit, explicit...)
	e.outImplicit += len(explicit)
	e.outputs = append(e.outputs, implicit...)
	for _, group := range [][]*Node{explicit, implicit} {
		for _, n := range group {
			n.producer = e
		}
	}
	return nil
}

// AddInputs appends to each input region and registers e as a consumer of
// every node. Producers are not synthesized here, since a later statement may
// still declare one; see Graph.EnsureProducers.
func (e *Edge) AddInputs(explicit, implicit, orderOnly []*Node) {
	e.inputs = slices.Insert(e.inputs, e.inImplicit, explicit...)
	e.inImplicit += len(explicit)
	e.inOrder += len(explicit)

	e.inputs = slices.Insert(e.inputs, e.inOrder, implicit...)
	e.inOrder += len(implicit)

	e.inputs = append(e.inputs, orderOnly...)

	for _, group := range [][]*Node{explicit, implicit, orderOnly} {
		for _, n := range group {
			n.AddConsumer(e)
		}
	}
}

// AddDeps wires discovered dependencies into e, the way a depfile or dyndep
// reader does. Each dep without a producer gets a phony one, and e becomes
// its consumer. The deps are then inserted as one block at the boundary
// between implicit and order-only inputs, and the boundary moves past them:
// they end up as implicit inputs after the existing implicit ones, with every
// order-only input shifted behind them in its original order.
func (e *Edge) AddDeps(deps []*Node) {
	for _, n := range deps {
		if n.producer == nil {
			e.graph.phonyFor(n)
		}
		n.AddConsumer(e)
	}
	e.inputs = slices.Insert(e.inputs, e.inOrder, deps...)
	e.inOrder += len(deps)
}
