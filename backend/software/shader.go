package software

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/sdftext"
	"golang.org/x/image/draw"
)

// DefaultSmoothing is the edge half-width used before u_smoothing is set.
const DefaultSmoothing = 0.1

// Shader evaluates the SDF text program for quads drawn while it is bound.
//
// Recognized uniforms: u_color (rgba), u_smoothing. Other uniforms are
// stored and ignored.
type Shader struct {
	owner    *Backend
	uniforms map[string][]float32
}

// Bind makes s the active program of its backend.
func (s *Shader) Bind() { s.owner.shader = s }

// Unbind clears the active program if s is bound.
func (s *Shader) Unbind() {
	if s.owner.shader == s {
		s.owner.shader = nil
	}
}

// SetUniform stores a uniform value.
func (s *Shader) SetUniform(name string, values ...float32) {
	s.uniforms[name] = append(s.uniforms[name][:0], values...)
}

// Uniform returns a stored uniform value.
func (s *Shader) Uniform(name string) ([]float32, bool) {
	v, ok := s.uniforms[name]
	return v, ok
}

func (s *Shader) smoothing() float64 {
	if v, ok := s.uniforms["u_smoothing"]; ok && len(v) == 1 {
		return float64(v[0])
	}
	return DefaultSmoothing
}

// coverage maps a distance value to coverage with a Hermite smoothstep over
// [0.5-w, 0.5+w]. A zero width is a hard threshold.
func coverage(dist, w float64) float64 {
	if w <= 0 {
		if dist >= 0.5 {
			return 1
		}
		return 0
	}
	t := (dist - (0.5 - w)) / (2 * w)
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

// DrawQuad shades q with the bound shader and texture. Quads are assumed
// axis aligned after transformation; nothing is drawn without a bound
// shader and texture.
func (b *Backend) DrawQuad(q sdftext.Quad) {
	if b.shader == nil || b.texture == nil {
		return
	}

	// Pixel space = inverse projection of the active NDC transform.
	m := b.proj.Invert().Multiply(b.ActiveTransform())
	x0, y0 := m.Apply(q.X0, q.Y0)
	x1, y1 := m.Apply(q.X1, q.Y1)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	if x1-x0 <= 0 || y1-y0 <= 0 {
		return
	}

	bounds := b.dst.Bounds()
	r := image.Rect(
		int(math.Floor(x0))+bounds.Min.X, int(math.Floor(y0))+bounds.Min.Y,
		int(math.Ceil(x1))+bounds.Min.X, int(math.Ceil(y1))+bounds.Min.Y,
	).Intersect(bounds)
	if r.Empty() {
		return
	}

	col := q.Color
	if v, ok := b.shader.uniforms["u_color"]; ok && len(v) == 4 {
		col = sdftext.RGBA{R: float64(v[0]), G: float64(v[1]), B: float64(v[2]), A: float64(v[3])}
	}
	w := b.shader.smoothing()

	mask := image.NewAlpha(r)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		cy := float64(py-bounds.Min.Y) + 0.5
		if cy < y0 || cy >= y1 {
			continue
		}
		v := q.V0 + (cy-y0)/(y1-y0)*(q.V1-q.V0)
		for px := r.Min.X; px < r.Max.X; px++ {
			cx := float64(px-bounds.Min.X) + 0.5
			if cx < x0 || cx >= x1 {
				continue
			}
			u := q.U0 + (cx-x0)/(x1-x0)*(q.U1-q.U0)
			a := coverage(b.texture.Sample(u, v), w) * col.A
			mask.SetAlpha(px, py, color.Alpha{A: uint8(math.Round(a * 255))})
		}
	}

	src := image.NewUniform(color.NRGBA{
		R: to8(col.R), G: to8(col.G), B: to8(col.B), A: 255,
	})
	op := draw.Src
	if b.blending {
		op = draw.Over
	}
	draw.DrawMask(b.dst, r, src, image.Point{}, mask, r.Min, op)
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
