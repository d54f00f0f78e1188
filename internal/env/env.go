package env

import (
	"maps"
	"slices"
)

// Env is one variable scope.
type Env struct {
	parent *Env
	vars   map[string]string
}

// New returns an empty scope chained to parent, which may be nil.
func New(parent *Env) *Env {
	return &Env{parent: parent}
}

// Parent returns the enclosing scope, or nil for a root scope.
func (e *Env) Parent() *Env { return e.parent }

// Set binds name in this scope, shadowing any binding in a parent.
func (e *Env) Set(name, value string) {
	if e.vars == nil {
		e.vars = make(map[string]string)
	}
	e.vars[name] = value
}

// Lookup finds name in this scope or the nearest parent that binds it.
func (e *Env) Lookup(name string) (string, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Local finds name in this scope only.
func (e *Env) Local(name string) (string, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Get is Lookup that returns the empty string for unbound names, matching how
// templates treat unknown variables.
func (e *Env) Get(name string) string {
	v, _ := e.Lookup(name)
	return v
}

// Names returns the names bound directly in this scope, sorted.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}
