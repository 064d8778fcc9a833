// Package paths implements materialized post paths: the root-to-self
// sequence of post ids stored with every post.
//
// Paths are totally ordered element by element, with a strict prefix ordering
// before any path it is a prefix of. Sorting posts of one thread by path
// yields a pre-order depth-first walk where siblings follow their id order.
package paths

import (
	"strconv"
	"strings"
)

type Path []int64

// Root returns the path of a post without parent.
func Root(id int64) Path {
	return Path{id}
}

// Child returns a new path for a post with the given id placed under p.
// The receiver is never modified.
func (p Path) Child(id int64) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = id
	return child
}

func (p Path) Valid() bool {
	return len(p) > 0
}

// Depth is zero for root posts.
func (p Path) Depth() int {
	return len(p) - 1
}

// RootID returns the first element, the id of the root ancestor.
func (p Path) RootID() int64 {
	return p[0]
}

// ID returns the last element, the id of the post owning the path.
func (p Path) ID() int64 {
	return p[len(p)-1]
}

// ParentID returns the id of the direct ancestor or zero for roots.
func (p Path) ParentID() int64 {
	if len(p) < 2 {
		return 0
	}
	return p[len(p)-2]
}

// IsAncestorOf reports whether p is a strict prefix of other.
func (p Path) IsAncestorOf(other Path) bool {
	if len(p) >= len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Compare returns -1, 0 or 1 depending on whether a orders before, equal
// to or after b.
func Compare(a, b Path) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func Less(a, b Path) bool {
	return Compare(a, b) < 0
}

func (p Path) Equal(other Path) bool {
	return Compare(p, other) == 0
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
