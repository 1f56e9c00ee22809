package sdftext

import (
	"errors"
	"fmt"

	"github.com/gogpu/sdftext/glyphcache"
)

// Font is a loaded glyph cache: 128 glyph metrics, the uploaded atlas
// texture and the SDF shader. A Font is immutable and may be shared by any
// number of Renderers.
type Font struct {
	name   string
	glyphs [glyphcache.NumGlyphs]glyphcache.LayoutGlyph
	// atlas keeps the dimensions only; pixels live in texture.
	atlas   glyphcache.Atlas
	texture Texture
	shader  Shader
}

// LoadFont uploads the cache atlas as a single-channel texture and obtains
// the SDF shader. On error nothing is retained and any created texture is
// released.
func LoadFont(c *glyphcache.Cache, tf TextureFactory, sf ShaderFactory) (*Font, error) {
	if c == nil {
		return nil, errors.New("sdftext: nil glyph cache")
	}
	tex, err := tf.CreateTexture(c.Atlas.Width, c.Atlas.Height, c.Atlas.Pix, FormatAlpha8)
	if err != nil {
		return nil, fmt.Errorf("sdftext: create atlas texture: %w", err)
	}
	sh, err := sf.SDFShader()
	if err != nil {
		if rerr := release(tex); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return nil, fmt.Errorf("sdftext: create SDF shader: %w", err)
	}
	return &Font{
		glyphs:  c.Glyphs,
		atlas:   glyphcache.Atlas{Width: c.Atlas.Width, Height: c.Atlas.Height},
		texture: tex,
		shader:  sh,
	}, nil
}

// Name returns the registry name of the font, or "" for fonts loaded
// directly with LoadFont.
func (f *Font) Name() string { return f.name }

// Glyph returns the metrics for r. ok is false for runes outside 0..127.
func (f *Font) Glyph(r rune) (g glyphcache.LayoutGlyph, ok bool) {
	if !definedRune(r) {
		return glyphcache.LayoutGlyph{}, false
	}
	return f.glyphs[r], true
}

// AtlasSize returns the atlas texture dimensions.
func (f *Font) AtlasSize() (width, height int) {
	return f.atlas.Width, f.atlas.Height
}

// Texture returns the atlas texture.
func (f *Font) Texture() Texture { return f.texture }

// Shader returns the SDF shader.
func (f *Font) Shader() Shader { return f.shader }

// capTop is the top offset of 'H', the baseline anchor for every line.
func (f *Font) capTop() float64 {
	return float64(f.glyphs['H'].Top)
}

// penAdvance returns the glyph-space pen increment for r under tabLength.
func (f *Font) penAdvance(r rune, tabLength int) float64 {
	if r == '\t' {
		return float64(tabLength) * float64(f.glyphs[' '].PenAdvance())
	}
	return float64(f.glyphs[r].PenAdvance())
}

// Release frees the texture and shader if they implement Releaser.
func (f *Font) Release() error {
	return errors.Join(release(f.texture), release(f.shader))
}

func release(v any) error {
	if r, ok := v.(Releaser); ok {
		return r.Release()
	}
	return nil
}
