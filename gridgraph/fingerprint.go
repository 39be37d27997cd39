// SPDX-License-Identifier: MIT

package gridgraph

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/zeebo/blake3"
)

// Fingerprint identifies a map's geometry and motion edges.
type Fingerprint [32]byte

// String returns the first 8 bytes in hex, enough for log lines.
func (f Fingerprint) String() string { return hex.EncodeToString(f[:8]) }

// IsZero reports whether f is the zero value.
func (f Fingerprint) IsZero() bool { return f == Fingerprint{} }

// Fingerprint hashes target coordinates and the motion edge list.
// Two maps with equal fingerprints yield identical travel-time matrices.
func (m *Map) Fingerprint() Fingerprint {
	h := blake3.New()
	var buf [8]byte
	put := func(u uint64) {
		binary.LittleEndian.PutUint64(buf[:], u)
		_, _ = h.Write(buf[:])
	}
	put(uint64(len(m.Targets)))
	for _, p := range m.Targets {
		put(math.Float64bits(p.X))
		put(math.Float64bits(p.Y))
	}
	for _, e := range m.Motion.Edges() {
		put(uint64(e.From))
		put(uint64(e.To))
	}
	var f Fingerprint
	copy(f[:], h.Sum(nil))
	return f
}
