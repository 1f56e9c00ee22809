// Package software implements sdftext.Backend on the CPU.
//
// Quads are rasterized into an image.RGBA. Each covered pixel samples the
// bound single-channel atlas bilinearly and converts the distance value to
// coverage with a smoothstep around the outline, the same evaluation the GPU
// shader performs. Coverage is composited through golang.org/x/image/draw.
//
// The backend is registered as "software" with package backend.
package software

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/sdftext"
	"github.com/gogpu/sdftext/backend"
	"golang.org/x/image/draw"
)

func init() {
	backend.Register(backend.BackendSoftware, func(width, height int) (sdftext.Backend, error) {
		return New(width, height)
	})
}

// Backend draws SDF text into an image.RGBA. It is not safe for concurrent
// use.
type Backend struct {
	dst      *image.RGBA
	proj     sdftext.Matrix
	stack    []sdftext.Matrix
	texture  *Texture
	shader   *Shader
	blending bool
}

var _ sdftext.Backend = (*Backend)(nil)

// New creates a backend with a transparent width×height target.
func New(width, height int) (*Backend, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", backend.ErrInvalidSize, width, height)
	}
	return NewWithImage(image.NewRGBA(image.Rect(0, 0, width, height))), nil
}

// NewWithImage draws into dst. The projection maps dst's bounds with the
// origin at the top-left.
func NewWithImage(dst *image.RGBA) *Backend {
	b := dst.Bounds()
	return &Backend{
		dst:  dst,
		proj: sdftext.Ortho(float64(b.Dx()), float64(b.Dy())),
	}
}

// Image returns the render target.
func (b *Backend) Image() *image.RGBA { return b.dst }

// Viewport returns the target size.
func (b *Backend) Viewport() sdftext.Viewport {
	r := b.dst.Bounds()
	return sdftext.Viewport{Width: float64(r.Dx()), Height: float64(r.Dy())}
}

// Clear fills the target with c.
func (b *Backend) Clear(c color.Color) {
	draw.Draw(b.dst, b.dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// SetProjection replaces the base projection. Pushed transforms apply on
// top of it.
func (b *Backend) SetProjection(m sdftext.Matrix) { b.proj = m }

// ActiveTransform returns the projection times every pushed transform.
func (b *Backend) ActiveTransform() sdftext.Matrix {
	m := b.proj
	for _, t := range b.stack {
		m = m.Multiply(t)
	}
	return m
}

// PushTransform pushes a local transform.
func (b *Backend) PushTransform(m sdftext.Matrix) { b.stack = append(b.stack, m) }

// PopTransform pops the last pushed transform. It is a no-op on an empty
// stack.
func (b *Backend) PopTransform() {
	if len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// BindTexture binds an atlas created by this backend. Other textures unbind.
func (b *Backend) BindTexture(t sdftext.Texture) {
	b.texture, _ = t.(*Texture)
}

// UnbindTexture clears the bound texture.
func (b *Backend) UnbindTexture() { b.texture = nil }

// SetBlending enables source-over compositing and returns the previous
// setting. Without blending quads replace the target pixels.
func (b *Backend) SetBlending(enabled bool) bool {
	prev := b.blending
	b.blending = enabled
	return prev
}

// SDFShader returns a new SDF shader program.
func (b *Backend) SDFShader() (sdftext.Shader, error) {
	return &Shader{owner: b, uniforms: make(map[string][]float32)}, nil
}

// CreateTexture stores pixel data for sampling.
func (b *Backend) CreateTexture(width, height int, pix []byte, format sdftext.PixelFormat) (sdftext.Texture, error) {
	return NewTexture(width, height, pix, format)
}
