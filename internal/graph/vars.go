package graph

import (
	"fmt"
	"slices"
	"strings"
)

// Lookup resolves a variable as seen from e. The order is:
//
//   - $in, $in_newline and $out, built from the explicit inputs and outputs;
//   - bindings set on the edge's own scope;
//   - the rule's binding, expanded in the context of e;
//   - the enclosing scopes.
//
// With escape set, paths substituted for $in and $out are shell-quoted.
func (e *Edge) Lookup(name string, escape bool) (string, bool, error) {
	return e.lookup(name, escape, nil)
}

func (e *Edge) lookup(name string, escape bool, visiting []string) (string, bool, error) {
	switch name {
	case "in":
		return joinPaths(e.ExplicitInputs(), ' ', escape), true, nil
	case "in_newline":
		return joinPaths(e.ExplicitInputs(), '\n', escape), true, nil
	case "out":
		return joinPaths(e.ExplicitOutputs(), ' ', escape), true, nil
	}
	if v, ok := e.scope.Local(name); ok {
		return v, true, nil
	}
	if e.Rule != nil {
		if t, ok := e.Rule.Binding(name); ok {
			if slices.Contains(visiting, name) {
				return "", false, fmt.Errorf("%w involving '%s'", ErrVarCycle, name)
			}
			visiting = append(visiting, name)
			var evalErr error
			v := t.Eval(func(ref string) string {
				if evalErr != nil {
					return ""
				}
				s, _, err := e.lookup(ref, escape, visiting)
				if err != nil {
					evalErr = err
				}
				return s
			})
			if evalErr != nil {
				return "", false, evalErr
			}
			return v, true, nil
		}
	}
	v, ok := e.scope.Parent().Lookup(name)
	return v, ok, nil
}

func joinPaths(nodes []*Node, sep byte, escape bool) string {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(n.EscapedPath(escape))
	}
	return b.String()
}

// Command returns the evaluated command line, or a *MissingCommandError.
func (e *Edge) Command() (string, error) {
	cmd, ok, err := e.Lookup("command", true)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &MissingCommandError{Rule: e.ruleName()}
	}
	return cmd, nil
}

// noRule names the rule of an edge whose Rule was never set.
const noRule = "<none>"

func (e *Edge) ruleName() string {
	if e.Rule == nil {
		return noRule
	}
	return e.Rule.Name
}
