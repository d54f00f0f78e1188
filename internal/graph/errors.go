package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCommand is matched by *MissingCommandError.
	ErrMissingCommand = errors.New("rule has no command")
	// ErrMultipleProducers is returned when a node is declared as the output
	// of a second edge.
	ErrMultipleProducers = errors.New("multiple rules generate output")
	// ErrVarCycle is returned when rule bindings reference each other in a loop.
	ErrVarCycle = errors.New("cycle in rule variable")
)

// MissingCommandError means an edge cannot be fingerprinted or run because
// neither its scope nor its rule binds "command".
type MissingCommandError struct {
	Rule string
}

func (e *MissingCommandError) Error() string {
	return fmt.Sprintf("rule '%s' has no command", e.Rule)
}

func (e *MissingCommandError) Is(target error) bool { return target == ErrMissingCommand }
