package mtime

import (
	"fmt"
	"time"
)

// State discriminates the three kinds of Mtime.
type State uint8

const (
	// StateUnknown means the path was never queried.
	StateUnknown State = iota
	// StateMissing means the path was queried and does not exist.
	StateMissing
	// StateKnown means the path exists and Nanos holds its modification time.
	StateKnown
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateMissing:
		return "missing"
	case StateKnown:
		return "known"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Mtime is a modification time tagged with its State. Any int64, including
// negative values, is a valid Known time; the state never lives in the number.
// The zero value is Unknown.
type Mtime struct {
	state State
	ns    int64
}

// Unknown returns an Mtime for a path that has not been queried.
func Unknown() Mtime { return Mtime{} }

// Missing returns an Mtime for a path confirmed absent.
func Missing() Mtime { return Mtime{state: StateMissing} }

// Known returns an Mtime holding ns nanoseconds since the Unix epoch.
func Known(ns int64) Mtime { return Mtime{state: StateKnown, ns: ns} }

// FromTime converts t to a Known Mtime.
func FromTime(t time.Time) Mtime { return Known(t.UnixNano()) }

func (t Mtime) State() State    { return t.state }
func (t Mtime) IsKnown() bool   { return t.state == StateKnown }
func (t Mtime) IsMissing() bool { return t.state == StateMissing }
func (t Mtime) IsUnknown() bool { return t.state == StateUnknown }

// Nanos returns the timestamp and true for a Known value, or 0 and false.
func (t Mtime) Nanos() (int64, bool) {
	if t.state != StateKnown {
		return 0, false
	}
	return t.ns, true
}

// Time returns the timestamp as a time.Time for a Known value.
func (t Mtime) Time() (time.Time, bool) {
	if t.state != StateKnown {
		return time.Time{}, false
	}
	return time.Unix(0, t.ns), true
}

func (t Mtime) String() string {
	if t.state == StateKnown {
		return fmt.Sprintf("%d", t.ns)
	}
	return t.state.String()
}
