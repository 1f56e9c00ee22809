package sdftext

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/sdftext/internal/cache"
)

// Renderer draws text with one Font under an immutable Config.
// Renderers are values: the With methods return reconfigured copies and the
// receiver is never changed. The zero Renderer has no font and fails every
// call with ErrNoFont.
type Renderer struct {
	font    *Font
	g       Graphics
	cfg     Config
	layouts *cache.Cache[layoutKey, *Layout]
}

// NewRenderer returns a Renderer for f drawing into g with DefaultConfig.
// Layouts are not cached; use a Registry for layout caching.
func NewRenderer(f *Font, g Graphics) Renderer {
	return Renderer{font: f, g: g, cfg: DefaultConfig()}
}

// Font returns the renderer's font.
func (r Renderer) Font() *Font { return r.font }

// Config returns the renderer's configuration.
func (r Renderer) Config() Config { return r.cfg }

// WithConfig returns a copy using cfg.
func (r Renderer) WithConfig(cfg Config) Renderer {
	r.cfg = cfg
	return r
}

// WithWrapping returns a copy using w.
func (r Renderer) WithWrapping(w Wrapping) Renderer {
	r.cfg.Wrapping = w
	return r
}

// WithScaleMode returns a copy using m.
func (r Renderer) WithScaleMode(m ScaleMode) Renderer {
	r.cfg.ScaleMode = m
	return r
}

// WithTabLength returns a copy whose tab spans n spaces.
func (r Renderer) WithTabLength(n int) Renderer {
	r.cfg.TabLength = n
	return r
}

// WithLineSpacing returns a copy using line spacing s.
func (r Renderer) WithLineSpacing(s float64) Renderer {
	r.cfg.LineSpacing = s
	return r
}

// WithFallback returns a copy using policy p.
func (r Renderer) WithFallback(p FallbackPolicy) Renderer {
	r.cfg.Fallback = p
	return r
}

// WithSubstitute returns a copy substituting undefined runes with s.
func (r Renderer) WithSubstitute(s rune) Renderer {
	r.cfg.Substitute = s
	return r
}

// WithAlign returns a copy using horizontal alignment a.
func (r Renderer) WithAlign(a float64) Renderer {
	r.cfg.Align = a
	return r
}

// Layout is the result of laying out one string.
type Layout struct {
	// Quads are in reference-resolution glyph space; draw them under a
	// Scale(Scale, Scale) transform.
	Quads []Quad

	// Scale is size / ReferenceResolution.
	Scale float64

	// Width and Height are the last line's width and height in drawing
	// units.
	Width, Height float64

	// Lines is the number of lines after wrapping.
	Lines int

	// FactorX and FactorY are the projection scale factors the layout was
	// snapped against.
	FactorX, FactorY float64

	// Smoothing is the SDF edge smoothing width.
	Smoothing float64

	// Boxes holds one entry per laid-out rune, including spaces and tabs.
	// Spaces dropped at wrap points and '\n' have no box.
	Boxes []Box

	// LineRanges[i] selects the boxes of line i.
	LineRanges []LineRange

	// EndX and EndY are the pen position after the last rune, in drawing
	// units. EndY is the top of the last line.
	EndX, EndY float64
}

// Box is the pen cell of one laid-out rune in drawing units. X and Y are
// the pen position before the rune, Y being the top of its line. Height is
// the glyph height, or the cap height for runes without a bitmap.
type Box struct {
	Rune    rune
	X, Y    float64
	Advance float64
	Height  float64
}

// LineRange is the half-open range Boxes[Start:End] of one line.
type LineRange struct {
	Start, End int
}

// BoxAt returns the box of the column-th rune on line. ok is false when
// either index is out of range.
func (l *Layout) BoxAt(line, column int) (b Box, ok bool) {
	if line < 0 || line >= len(l.LineRanges) || column < 0 {
		return Box{}, false
	}
	lr := l.LineRanges[line]
	if lr.Start+column >= lr.End {
		return Box{}, false
	}
	return l.Boxes[lr.Start+column], true
}

// Clone returns a deep copy of l.
func (l *Layout) Clone() *Layout {
	c := *l
	c.Quads = slices.Clone(l.Quads)
	c.Boxes = slices.Clone(l.Boxes)
	c.LineRanges = slices.Clone(l.LineRanges)
	return &c
}

type layoutKey struct {
	font   *Font
	text   string
	size   float64
	x, y   float64
	fx, fy float64
	color  RGBA
	config Config
}

// Snap rounds value up to the next unit addressable at factor units per
// pixel: ceil(value*factor)/factor. A factor of zero or less returns value.
func Snap(value, factor float64) float64 {
	if factor <= 0 {
		return value
	}
	return math.Ceil(value*factor) / factor
}

// Smoothing returns the SDF smoothing width for text of size drawn under
// projection scale factors fx and fy, clamped to [0, 0.4].
func Smoothing(size, fx, fy float64) float64 {
	s := 0.25 / (size / 10 * (fx + fy) / 2) * ReferenceResolution / 64
	if math.IsNaN(s) {
		return 0.4
	}
	return math.Max(0, math.Min(0.4, s))
}

// Layout computes the quads and rune boxes for text at (x, y) without
// drawing. The projection is taken from the renderer's Graphics, or the
// identity if it has none. The result belongs to the caller.
func (r Renderer) Layout(vp Viewport, size float64, text string, x, y float64, color RGBA) (*Layout, error) {
	l, err := r.cachedLayout(vp, size, text, x, y, color)
	if err != nil {
		return nil, err
	}
	if r.layouts != nil {
		return l.Clone(), nil
	}
	return l, nil
}

// cachedLayout returns the layout for the arguments, shared with the
// layout cache when there is one. It must not be modified.
func (r Renderer) cachedLayout(vp Viewport, size float64, text string, x, y float64, color RGBA) (*Layout, error) {
	if r.font == nil {
		return nil, ErrNoFont
	}
	if !(size > 0) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}

	m := Identity()
	if r.g != nil {
		m = r.g.ActiveTransform()
	}
	fx, fy := m.ScaleFactors(vp)

	key := layoutKey{
		font:   r.font,
		text:   text,
		size:   size,
		x:      x,
		y:      y,
		fx:     fx,
		fy:     fy,
		color:  color,
		config: r.cfg,
	}
	if r.layouts == nil {
		return r.layout(key)
	}
	return r.layouts.GetOrCreate(key, func() (*Layout, error) {
		return r.layout(key)
	})
}

func (r Renderer) layout(k layoutKey) (*Layout, error) {
	chars, err := r.cfg.resolve(k.text)
	if err != nil {
		return nil, err
	}

	f := r.font
	scale := k.size / ReferenceResolution
	inv := 1 / scale
	combX, combY := k.fx*scale, k.fy*scale
	quality := r.cfg.ScaleMode == ScaleQuality
	advance := func(c rune) float64 { return f.penAdvance(c, r.cfg.TabLength) }

	lines := splitLines(chars, r.cfg.Wrapping.Mode, r.cfg.Wrapping.MaxWidth*inv, advance)
	l := &Layout{
		Quads:      make([]Quad, 0, len(chars)),
		Scale:      scale,
		Lines:      len(lines),
		FactorX:    k.fx,
		FactorY:    k.fy,
		Smoothing:  Smoothing(k.size, k.fx, k.fy),
		Boxes:      make([]Box, 0, len(chars)),
		LineRanges: make([]LineRange, 0, len(lines)),
	}

	capTop := f.capTop()
	startX := k.x * inv
	penY := k.y * inv
	var lineWidth, lineHeight, penX float64
	for i, line := range lines {
		if i > 0 {
			h := lineHeight
			if h == 0 {
				h = capTop
			}
			step := h * r.cfg.LineSpacing
			if quality {
				step = Snap(step, combY)
			}
			penY += step
			lineWidth, lineHeight = 0, 0
		}

		penX = startX
		if r.cfg.Align != 0 {
			penX -= r.cfg.Align * lineAdvance(line, advance)
		}
		first := len(l.Boxes)
		for _, c := range line {
			if c == '\t' {
				step := advance(c)
				l.Boxes = append(l.Boxes, Box{
					Rune: c, X: penX * scale, Y: penY * scale,
					Advance: step * scale, Height: capTop * scale,
				})
				penX += step
				continue
			}
			g := f.glyphs[c]
			adv := float64(g.PenAdvance())
			step := adv
			if quality {
				step = Snap(adv, combX)
			}
			h := float64(g.Height)
			if h == 0 {
				h = capTop
			}
			l.Boxes = append(l.Boxes, Box{
				Rune: c, X: penX * scale, Y: penY * scale,
				Advance: step * scale, Height: h * scale,
			})
			if g.Width > 0 && g.Height > 0 {
				x0 := penX
				y0 := penY + capTop - float64(g.Top)
				u0, v0, u1, v1 := f.atlas.Region(g)
				l.Quads = append(l.Quads, Quad{
					X0: x0, Y0: y0,
					X1: Snap(x0+float64(g.Width), combX),
					Y1: Snap(y0+float64(g.Height), combY),
					U0: u0, V0: v0, U1: u1, V1: v1,
					Color: k.color,
				})
			}
			lineWidth += adv
			lineHeight = math.Max(lineHeight, float64(g.Height))
			penX += step
		}
		l.LineRanges = append(l.LineRanges, LineRange{Start: first, End: len(l.Boxes)})
	}

	l.EndX = penX * scale
	l.EndY = penY * scale
	l.Width = lineWidth * scale
	l.Height = lineHeight * scale
	return l, nil
}

func lineAdvance(line []rune, advance func(rune) float64) float64 {
	w := 0.0
	for _, c := range line {
		w += advance(c)
	}
	return w
}

// Draw renders text with its top-left pen position at (x, y) and returns
// the width and height of the last line in drawing units.
//
// Draw pushes a local scale transform, enables blending, binds the atlas
// and shader, sets the shader uniforms and issues one quad per visible
// glyph. All state is restored before it returns. On error nothing is
// drawn.
func (r Renderer) Draw(vp Viewport, size float64, text string, x, y float64, color RGBA) (width, height float64, err error) {
	if r.g == nil && r.font != nil {
		return 0, 0, ErrNoGraphics
	}
	l, err := r.cachedLayout(vp, size, text, x, y, color)
	if err != nil {
		return 0, 0, err
	}
	r.render(l, color)
	return l.Width, l.Height, nil
}

func (r Renderer) render(l *Layout, color RGBA) {
	g := r.g
	f := r.font

	g.PushTransform(Scale(l.Scale, l.Scale))
	defer g.PopTransform()
	prev := g.SetBlending(true)
	defer g.SetBlending(prev)

	f.shader.Bind()
	defer f.shader.Unbind()
	g.BindTexture(f.texture)
	defer g.UnbindTexture()

	f.shader.SetUniform("u_color", color.Components()...)
	f.shader.SetUniform("u_smoothing", float32(l.Smoothing))
	f.shader.SetUniform("u_atlas_width", float32(f.atlas.Width))
	f.shader.SetUniform("u_scale_x", float32(l.FactorX))
	f.shader.SetUniform("u_res", ReferenceResolution)

	for _, q := range l.Quads {
		g.DrawQuad(q)
	}
}
