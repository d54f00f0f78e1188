package graph

import (
	"sync"

	"github.com/specialistvlad/burstbuild/internal/mtime"
)

// Node is one file-like artifact.
type Node struct {
	path string

	shellOnce sync.Once
	shellPath string

	producer  *Edge
	consumers []*Edge

	mtime       mtime.Mtime
	logMtime    mtime.Mtime
	contentHash uint64

	id    int
	hasID bool
}

func newNode(path string) *Node {
	return &Node{
		path:     path,
		mtime:    mtime.Unknown(),
		logMtime: mtime.Missing(),
	}
}

// Path returns the canonical path the node was interned under.
func (n *Node) Path() string { return n.path }

// Producer returns the edge that outputs this node, or nil.
func (n *Node) Producer() *Edge { return n.producer }

// Consumers returns the edges that take this node as input, in the order they
// were added. The slice must not be modified.
func (n *Node) Consumers() []*Edge { return n.consumers }

// ConsumerCap returns the capacity of the consumer list.
func (n *Node) ConsumerCap() int { return cap(n.consumers) }

// Mtime returns the result of the last Stat.
func (n *Node) Mtime() mtime.Mtime { return n.mtime }

// LogMtime returns the modification time recorded in the build log.
func (n *Node) LogMtime() mtime.Mtime { return n.logMtime }

// SetLogMtime is called by the build log reader.
func (n *Node) SetLogMtime(t mtime.Mtime) { n.logMtime = t }

// ContentHash returns the hash recorded in the build log, 0 if none.
func (n *Node) ContentHash() uint64 { return n.contentHash }

// SetContentHash is called by the build log reader.
func (n *Node) SetContentHash(h uint64) { n.contentHash = h }

// ID returns the ordering id and whether one was assigned.
func (n *Node) ID() (int, bool) { return n.id, n.hasID }

// SetID assigns an ordering id.
func (n *Node) SetID(id int) {
	n.id = id
	n.hasID = true
}

// ClearID removes the ordering id.
func (n *Node) ClearID() {
	n.id = 0
	n.hasID = false
}

// Stat queries st for the node's modification time. It always re-queries. A
// missing file is not an error; any other failure is returned as the
// *mtime.StatError from st and leaves the previous mtime untouched.
func (n *Node) Stat(st mtime.Stater) error {
	t, err := st.Stat(n.path)
	if err != nil {
		return err
	}
	n.mtime = t
	return nil
}

// EscapedPath returns the path, shell-quoted when escape is set. Paths made
// only of [A-Za-z0-9_+-./] are returned as-is and share the path's storage.
// Anything else is wrapped in single quotes with embedded quotes written as
// '\''. The quoted form is computed once.
func (n *Node) EscapedPath(escape bool) string {
	if !escape {
		return n.path
	}
	n.shellOnce.Do(func() {
		n.shellPath = shellQuote(n.path)
	})
	return n.shellPath
}

func shellQuote(path string) string {
	var needsQuote bool
	var quotes int
	for i := 0; i < len(path); i++ {
		c := path[i]
		if !isShellSafe(c) {
			needsQuote = true
		}
		if c == '\'' {
			quotes++
		}
	}
	if !needsQuote {
		return path
	}

	buf := make([]byte, 0, len(path)+2+3*quotes)
	buf = append(buf, '\'')
	for i := 0; i < len(path); i++ {
		buf = append(buf, path[i])
		if path[i] == '\'' {
			buf = append(buf, '\\', '\'', '\'')
		}
	}
	buf = append(buf, '\'')
	return string(buf)
}

func isShellSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '_', '+', '-', '.', '/':
		return true
	}
	return false
}

// AddConsumer records e as a consumer. The list grows by doubling, and only
// when its length is an exact power of two (capacity 1, 2, 4, ...), so each
// append is amortized O(1) with one reallocation per doubling.
func (n *Node) AddConsumer(e *Edge) {
	count := len(n.consumers)
	if count&(count-1) == 0 {
		newCap := 1
		if count > 0 {
			newCap = count * 2
		}
		grown := make([]*Edge, count, newCap)
		copy(grown, n.consumers)
		n.consumers = grown
	}
	n.consumers = append(n.consumers, e)
}
