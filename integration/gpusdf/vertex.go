// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpusdf

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/sdftext"
)

// VertexStride is the byte size of one vertex: position vec2 + uv vec2.
const VertexStride = 16

// MaxQuads is the largest quad count addressable with uint16 indices.
const MaxQuads = 1 << 14

// QuadVertices serializes quads into vertex buffer bytes, four vertices per
// quad in the order top-left, top-right, bottom-right, bottom-left.
func QuadVertices(quads []sdftext.Quad) []byte {
	if len(quads) == 0 {
		return nil
	}
	data := make([]byte, len(quads)*4*VertexStride)
	off := 0
	put := func(v float64) {
		binary.LittleEndian.PutUint32(data[off:], math.Float32bits(float32(v)))
		off += 4
	}
	for _, q := range quads {
		put(q.X0)
		put(q.Y0)
		put(q.U0)
		put(q.V0)

		put(q.X1)
		put(q.Y0)
		put(q.U1)
		put(q.V0)

		put(q.X1)
		put(q.Y1)
		put(q.U1)
		put(q.V1)

		put(q.X0)
		put(q.Y1)
		put(q.U0)
		put(q.V1)
	}
	return data
}

// QuadIndices returns index data for n quads as two triangles each
// (0,1,2 and 2,3,0). n is clamped to MaxQuads.
func QuadIndices(n int) []uint16 {
	n = min(max(n, 0), MaxQuads)
	indices := make([]uint16, n*6)
	for i := range n {
		base := i * 6
		v := uint16(i * 4) //nolint:gosec // n is bounded by MaxQuads

		indices[base+0] = v + 0
		indices[base+1] = v + 1
		indices[base+2] = v + 2
		indices[base+3] = v + 2
		indices[base+4] = v + 3
		indices[base+5] = v + 0
	}
	return indices
}
