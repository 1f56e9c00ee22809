package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/sdftext/glyphcache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// DefaultSpread is the distance in pixels, measured from the outline, at
// which the field saturates. The glyph bitmap is padded by this amount on
// every side.
const DefaultSpread = 8

// ErrGlyphMissing is returned when the face cannot produce a glyph image for
// a code point the font maps.
var ErrGlyphMissing = errors.New("raster: glyph image unavailable")

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithSpread sets the distance field spread in pixels. Values below 1 are
// ignored.
func WithSpread(spread int) Option {
	return func(r *Rasterizer) {
		if spread > 0 {
			r.spread = spread
		}
	}
}

// WithHinting sets the outline hinting used for coverage. The default is
// font.HintingNone, which keeps outlines unchanged across resolutions.
func WithHinting(h font.Hinting) Option {
	return func(r *Rasterizer) {
		r.hinting = h
	}
}

// Rasterizer renders glyphs from one font as signed distance fields.
// It implements glyphcache.Rasterizer and is safe for concurrent use.
type Rasterizer struct {
	font    *opentype.Font
	spread  int
	hinting font.Hinting

	mu    sync.Mutex
	faces map[int]*sync.Pool
}

var _ glyphcache.Rasterizer = (*Rasterizer)(nil)

// New parses TrueType or OpenType font data.
func New(data []byte, opts ...Option) (*Rasterizer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("raster: failed to parse font: %w", err)
	}
	r := &Rasterizer{
		font:    f,
		spread:  DefaultSpread,
		hinting: font.HintingNone,
		faces:   make(map[int]*sync.Pool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Spread returns the distance field spread in pixels.
func (r *Rasterizer) Spread() int { return r.spread }

// Name returns the font family name, or "" if the font has none.
func (r *Rasterizer) Name() string {
	name, err := r.font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// Rasterize renders code point ch at resolution pixels per em.
//
// Code points the font does not map produce an empty glyph with zero
// metrics. Whitespace produces an empty bitmap with a valid advance.
func (r *Rasterizer) Rasterize(ch rune, resolution int) (glyphcache.RawGlyph, error) {
	if resolution <= 0 {
		return glyphcache.RawGlyph{}, fmt.Errorf("raster: invalid resolution %d", resolution)
	}

	var buf sfnt.Buffer
	idx, err := r.font.GlyphIndex(&buf, ch)
	if err != nil {
		return glyphcache.RawGlyph{}, fmt.Errorf("raster: glyph index: %w", err)
	}
	if idx == 0 {
		return glyphcache.RawGlyph{}, nil
	}

	pool, err := r.pool(resolution)
	if err != nil {
		return glyphcache.RawGlyph{}, err
	}
	face, ok := pool.Get().(font.Face)
	if !ok {
		return glyphcache.RawGlyph{}, fmt.Errorf("raster: no face for resolution %d", resolution)
	}
	defer pool.Put(face)

	bounds, _, ok := face.GlyphBounds(ch)
	if !ok {
		return glyphcache.RawGlyph{}, fmt.Errorf("%w: %q", ErrGlyphMissing, ch)
	}
	dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, ch)
	if !ok {
		return glyphcache.RawGlyph{}, fmt.Errorf("%w: %q", ErrGlyphMissing, ch)
	}

	g := glyphcache.RawGlyph{
		Advance:  int32(advance >> 6),
		BearingX: int32(bounds.Min.X >> 6),
	}
	w, h := dr.Dx(), dr.Dy()
	if w <= 0 || h <= 0 {
		return g, nil
	}

	cov := coverage(mask, maskp, w, h)
	g.Width = int32(w + 2*r.spread)
	g.Height = int32(h + 2*r.spread)
	g.Top = int32(-dr.Min.Y + r.spread)
	g.Pix = distanceField(cov, w, h, r.spread)
	return g, nil
}

// pool returns the face pool for a resolution. opentype faces keep
// per-face scratch buffers and must not be shared between goroutines.
func (r *Rasterizer) pool(resolution int) (*sync.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.faces[resolution]; ok {
		return p, nil
	}

	// Validate options once so pooled construction cannot fail silently.
	opts := &opentype.FaceOptions{
		Size:    float64(resolution),
		DPI:     72,
		Hinting: r.hinting,
	}
	first, err := opentype.NewFace(r.font, opts)
	if err != nil {
		return nil, fmt.Errorf("raster: create face: %w", err)
	}

	p := &sync.Pool{
		New: func() any {
			face, err := opentype.NewFace(r.font, opts)
			if err != nil {
				return nil
			}
			return face
		},
	}
	p.Put(first)
	r.faces[resolution] = p
	return p, nil
}

// coverage copies a w×h region of mask starting at maskp into a byte slice.
func coverage(mask image.Image, maskp image.Point, w, h int) []byte {
	out := make([]byte, w*h)
	if a, ok := mask.(*image.Alpha); ok {
		for y := 0; y < h; y++ {
			off := a.PixOffset(maskp.X, maskp.Y+y)
			copy(out[y*w:(y+1)*w], a.Pix[off:off+w])
		}
		return out
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.AlphaModel.Convert(mask.At(maskp.X+x, maskp.Y+y)).(color.Alpha)
			out[y*w+x] = c.A
		}
	}
	return out
}
