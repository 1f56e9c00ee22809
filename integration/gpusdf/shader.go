// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpusdf

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/sdftext"
)

// UniformSize is the byte size of the TextUniforms block:
// mat4x4 (64) + color (16) + params (16).
const UniformSize = 96

// Shader collects the uniforms set by sdftext.Renderer and packs them into
// the TextUniforms layout. It does not touch the GPU; the caller writes
// UniformBytes to the bound uniform buffer before drawing.
type Shader struct {
	bound     bool
	transform sdftext.Matrix
	color     [4]float32
	params    [4]float32
}

var _ sdftext.Shader = (*Shader)(nil)

// NewShader returns a uniform block with an identity transform, opaque
// black color and the reference resolution.
func NewShader() *Shader {
	return &Shader{
		transform: sdftext.Identity(),
		color:     [4]float32{0, 0, 0, 1},
		params:    [4]float32{0, 0, 1, sdftext.ReferenceResolution},
	}
}

// Bind marks the shader active.
func (s *Shader) Bind() { s.bound = true }

// Unbind marks the shader inactive.
func (s *Shader) Unbind() { s.bound = false }

// Bound reports whether the shader is active.
func (s *Shader) Bound() bool { return s.bound }

// SetTransform sets the position transform, usually Graphics.ActiveTransform.
func (s *Shader) SetTransform(m sdftext.Matrix) { s.transform = m }

// SetUniform sets a uniform by name. Unknown names and values of the wrong
// arity are ignored.
func (s *Shader) SetUniform(name string, values ...float32) {
	switch {
	case name == "u_color" && len(values) == 4:
		copy(s.color[:], values)
	case len(values) != 1:
	case name == "u_smoothing":
		s.params[0] = values[0]
	case name == "u_atlas_width":
		s.params[1] = values[0]
	case name == "u_scale_x":
		s.params[2] = values[0]
	case name == "u_res":
		s.params[3] = values[0]
	}
}

// UniformBytes returns the uniform block in WGSL layout. The 2D affine
// transform is expanded to a column-major mat4x4.
func (s *Shader) UniformBytes() []byte {
	m := s.transform
	mat := [16]float32{
		float32(m.A), float32(m.D), 0, 0,
		float32(m.B), float32(m.E), 0, 0,
		0, 0, 1, 0,
		float32(m.C), float32(m.F), 0, 1,
	}

	buf := make([]byte, UniformSize)
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range mat {
		put(v)
	}
	for _, v := range s.color {
		put(v)
	}
	for _, v := range s.params {
		put(v)
	}
	return buf
}
