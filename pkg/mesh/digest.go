package mesh

import (
	"crypto/sha256"
	"encoding/binary"
)

// DigestSize is the length of a [Mesh.Digest].
const DigestSize = sha256.Size

// Digest returns a SHA-256 fingerprint of the arity, node count and
// connectivity of m. Meshes with the same sizes but different rows, or rows
// in another order, have different digests.
func (m *Mesh) Digest() [DigestSize]byte {
	h := sha256.New()
	var buf [8]byte
	put := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	m.View(func(conn []int) {
		put(m.Dim)
		put(m.NbNodes)
		for _, v := range conn {
			put(v)
		}
	})
	var d [DigestSize]byte
	h.Sum(d[:0])
	return d
}
