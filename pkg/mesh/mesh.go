// Package mesh holds unstructured mesh connectivity and its boundary
// conventions: 1-based node ids at rest, 0-based ids only inside a scoped
// conversion.
package mesh

import (
	"sync"

	"github.com/matzehuels/dctree/pkg/errors"
)

// Mesh is the element-to-node connectivity of an unstructured mesh with a
// fixed element arity.
//
// Conn holds Dim node ids per element, 1-based, row-major. Code that reads
// Conn while a tree is being built must go through [Mesh.View], which waits
// for any running [Mesh.ZeroBased] scope to restore the numbering.
type Mesh struct {
	Conn    []int
	Dim     int
	NbNodes int

	mu sync.RWMutex
}

// New returns a mesh over conn. conn is used in place, not copied.
func New(conn []int, dim, nbNodes int) *Mesh {
	return &Mesh{Conn: conn, Dim: dim, NbNodes: nbNodes}
}

// NbElem returns the number of elements.
func (m *Mesh) NbElem() int {
	if m.Dim <= 0 {
		return 0
	}
	return len(m.Conn) / m.Dim
}

// Validate checks the mesh shape and that every node id is in [1, NbNodes].
// Disconnected meshes and unused nodes are accepted.
func (m *Mesh) Validate() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Dim < 1 {
		return errors.New(errors.ErrCodeInvalidMesh, "element arity must be at least 1, got %d", m.Dim)
	}
	if m.NbNodes < 1 {
		return errors.New(errors.ErrCodeInvalidMesh, "mesh has no nodes")
	}
	if len(m.Conn) == 0 {
		return errors.New(errors.ErrCodeInvalidMesh, "mesh has no elements")
	}
	if len(m.Conn)%m.Dim != 0 {
		return errors.New(errors.ErrCodeInvalidMesh,
			"connectivity length %d is not a multiple of arity %d", len(m.Conn), m.Dim)
	}

	for i, v := range m.Conn {
		if v < 1 || v > m.NbNodes {
			return errors.New(errors.ErrCodeInvalidMesh,
				"element %d references node %d outside [1,%d]", i/m.Dim, v, m.NbNodes)
		}
	}
	return nil
}

// ZeroBased converts Conn to 0-based ids, runs fn with it, and restores the
// 1-based ids when fn returns or panics. fn may reorder rows of conn; the
// restore only touches values. The mesh is write-locked for the whole scope.
func (m *Mesh) ZeroBased(fn func(conn []int)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	shift(m.Conn, -1)
	defer shift(m.Conn, 1)
	fn(m.Conn)
}

// View runs fn with the 1-based connectivity under a read lock.
func (m *Mesh) View(fn func(conn []int)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(m.Conn)
}

func shift(conn []int, delta int) {
	for i := range conn {
		conn[i] += delta
	}
}
