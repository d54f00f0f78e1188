package mtime

import (
	"errors"
	"fmt"
	"sync"
)

// ErrStat is matched by every *StatError.
var ErrStat = errors.New("stat failed")

// StatError reports a metadata query that failed for a reason other than the
// path not existing. Callers treat it as an environment malfunction.
type StatError struct {
	Path string
	Err  error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("stat %s: %v", e.Path, e.Err)
}

func (e *StatError) Unwrap() error { return e.Err }

func (e *StatError) Is(target error) bool { return target == ErrStat }

// Stater resolves the modification time of a path. It returns Missing when
// the path does not exist and a *StatError for any other failure.
type Stater interface {
	Stat(path string) (Mtime, error)
}

// Func adapts a function to the Stater interface.
type Func func(path string) (Mtime, error)

func (f Func) Stat(path string) (Mtime, error) { return f(path) }

// System is the platform's filesystem backend.
var System Stater = Func(statSystem)

// Fake is an in-memory Stater. Paths that were never set are Missing; paths
// registered with Fail return a *StatError. It is safe for concurrent use.
type Fake struct {
	mu    sync.Mutex
	times map[string]int64
	fails map[string]error
	calls map[string]int
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{
		times: make(map[string]int64),
		fails: make(map[string]error),
		calls: make(map[string]int),
	}
}

// Set records a modification time for path.
func (f *Fake) Set(path string, ns int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.fails, path)
	f.times[path] = ns
}

// Remove makes path Missing again.
func (f *Fake) Remove(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.times, path)
	delete(f.fails, path)
}

// Fail makes queries for path fail with err.
func (f *Fake) Fail(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fails[path] = err
}

// Calls reports how many times path was queried.
func (f *Fake) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *Fake) Stat(path string) (Mtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[path]++
	if err, ok := f.fails[path]; ok {
		return Unknown(), &StatError{Path: path, Err: err}
	}
	if ns, ok := f.times[path]; ok {
		return Known(ns), nil
	}
	return Missing(), nil
}
