package env

// PhonyName is the reserved rule name. A scheduler must never run an edge
// with this rule as a subprocess; it always succeeds with no side effects.
const PhonyName = "phony"

// Rule is a named set of variable bindings, typically command and friends.
type Rule struct {
	Name     string
	Bindings map[string]*Template
}

// Phony is the one phony rule. Its command is bound and empty.
var Phony = &Rule{
	Name:     PhonyName,
	Bindings: map[string]*Template{"command": Literal("")},
}

// NewRule returns a rule with no bindings.
func NewRule(name string) *Rule {
	return &Rule{Name: name, Bindings: make(map[string]*Template)}
}

// Bind sets a binding on the rule.
func (r *Rule) Bind(name string, t *Template) {
	if r.Bindings == nil {
		r.Bindings = make(map[string]*Template)
	}
	r.Bindings[name] = t
}

// Binding returns the named binding.
func (r *Rule) Binding(name string) (*Template, bool) {
	t, ok := r.Bindings[name]
	return t, ok
}

// IsPhony reports whether r is the reserved phony rule.
func IsPhony(r *Rule) bool {
	return r != nil && r.Name == PhonyName
}

// Pool limits how many edges referencing it run at once. Only the reference
// is tracked here.
type Pool struct {
	Name  string
	Depth int
}

// ConsolePool is the predeclared pool whose edges get the terminal.
var ConsolePool = &Pool{Name: "console", Depth: 1}
