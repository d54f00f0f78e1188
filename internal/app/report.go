package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/burstbuild/internal/graph"
)

// Report is the inspection result for one graph generation.
type Report struct {
	Nodes   int          `json:"nodes" yaml:"nodes"`
	Edges   []EdgeReport `json:"edges" yaml:"edges"`
	Sources []NodeReport `json:"sources" yaml:"sources"`
}

// EdgeReport describes one edge that came from the manifest.
type EdgeReport struct {
	Rule            string   `json:"rule" yaml:"rule"`
	Pool            string   `json:"pool,omitempty" yaml:"pool,omitempty"`
	Outputs         []string `json:"outputs" yaml:"outputs"`
	ImplicitOutputs []string `json:"implicit_outputs,omitempty" yaml:"implicit_outputs,omitempty"`
	Inputs          []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Implicit        []string `json:"implicit,omitempty" yaml:"implicit,omitempty"`
	OrderOnly       []string `json:"order_only,omitempty" yaml:"order_only,omitempty"`
	Command         string   `json:"command,omitempty" yaml:"command,omitempty"`
	Fingerprint     string   `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Mtimes          []string `json:"mtimes,omitempty" yaml:"mtimes,omitempty"`
}

// NodeReport describes a source file: a node only a synthesized phony edge produces.
type NodeReport struct {
	Path  string `json:"path" yaml:"path"`
	Mtime string `json:"mtime,omitempty" yaml:"mtime,omitempty"`
}

func buildReport(g *graph.Graph, withMtimes bool) (*Report, error) {
	rep := &Report{Nodes: g.Len()}
	for _, e := range g.Edges() {
		if e.Synthesized() {
			n := e.Outputs()[0]
			nr := NodeReport{Path: n.Path()}
			if withMtimes {
				nr.Mtime = n.Mtime().String()
			}
			rep.Sources = append(rep.Sources, nr)
			continue
		}

		er := EdgeReport{
			Rule:            e.Rule.Name,
			Outputs:         paths(e.ExplicitOutputs()),
			ImplicitOutputs: paths(e.ImplicitOutputs()),
			Inputs:          paths(e.ExplicitInputs()),
			Implicit:        paths(e.ImplicitInputs()),
			OrderOnly:       paths(e.OrderOnlyInputs()),
		}
		if e.Pool != nil {
			er.Pool = e.Pool.Name
		}
		if !e.IsPhony() {
			cmd, err := e.Command()
			if err != nil {
				return nil, err
			}
			h, err := e.Fingerprint()
			if err != nil {
				return nil, err
			}
			er.Command = cmd
			er.Fingerprint = fmt.Sprintf("%016x", h)
		}
		if withMtimes {
			for _, n := range e.Outputs() {
				er.Mtimes = append(er.Mtimes, n.Mtime().String())
			}
		}
		rep.Edges = append(rep.Edges, er)
	}
	return rep, nil
}

func paths(nodes []*graph.Node) []string {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Path()
	}
	return out
}

func (r *Report) write(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return r.writeText(w)
	}
	return fmt.Errorf("unknown output format '%s'", format)
}

// writeText renders ninja-like build lines:
//
//	build out | implicit_out: rule in | implicit || order_only
func (r *Report) writeText(w io.Writer) error {
	var b strings.Builder
	for _, e := range r.Edges {
		b.WriteString("build ")
		b.WriteString(strings.Join(e.Outputs, " "))
		if len(e.ImplicitOutputs) > 0 {
			b.WriteString(" | ")
			b.WriteString(strings.Join(e.ImplicitOutputs, " "))
		}
		b.WriteString(": ")
		b.WriteString(e.Rule)
		for _, group := range []struct {
			sep   string
			paths []string
		}{{" ", e.Inputs}, {" | ", e.Implicit}, {" || ", e.OrderOnly}} {
			if len(group.paths) > 0 {
				b.WriteString(group.sep)
				b.WriteString(strings.Join(group.paths, " "))
			}
		}
		b.WriteByte('\n')
		if e.Pool != "" {
			fmt.Fprintf(&b, "  pool = %s\n", e.Pool)
		}
		if e.Fingerprint != "" {
			fmt.Fprintf(&b, "  command = %s\n  fingerprint = %s\n", e.Command, e.Fingerprint)
		}
		if len(e.Mtimes) > 0 {
			fmt.Fprintf(&b, "  mtime = %s\n", strings.Join(e.Mtimes, " "))
		}
	}
	fmt.Fprintf(&b, "# %d nodes, %d edges, %d sources\n", r.Nodes, len(r.Edges), len(r.Sources))
	_, err := io.WriteString(w, b.String())
	return err
}
