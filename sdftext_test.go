package sdftext

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gogpu/sdftext/glyphcache"
)

type fakeTexture struct {
	w, h     int
	pix      []byte
	format   PixelFormat
	released int
}

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }

func (t *fakeTexture) Release() error {
	t.released++
	return nil
}

type fakeShader struct {
	bound    bool
	binds    int
	uniforms map[string][]float32
	released int
}

func (s *fakeShader) Bind() {
	s.bound = true
	s.binds++
}

func (s *fakeShader) Unbind() { s.bound = false }

func (s *fakeShader) SetUniform(name string, values ...float32) {
	if !s.bound {
		panic("SetUniform on unbound shader")
	}
	if s.uniforms == nil {
		s.uniforms = make(map[string][]float32)
	}
	s.uniforms[name] = append([]float32(nil), values...)
}

func (s *fakeShader) Release() error {
	s.released++
	return nil
}

// fakeBackend records draw calls. Its base projection maps a 64×64
// viewport, so projection scale factors are 1 with testViewport.
type fakeBackend struct {
	base     Matrix
	stack    []Matrix
	bound    Texture
	blending bool
	quads    []Quad
	textures []*fakeTexture
	shaders  []*fakeShader

	textureErr error
	shaderErr  error
}

var testViewport = Viewport{Width: 64, Height: 64}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{base: Ortho(64, 64)}
}

func (b *fakeBackend) ActiveTransform() Matrix {
	m := b.base
	for _, t := range b.stack {
		m = m.Multiply(t)
	}
	return m
}

func (b *fakeBackend) PushTransform(m Matrix) { b.stack = append(b.stack, m) }
func (b *fakeBackend) PopTransform()          { b.stack = b.stack[:len(b.stack)-1] }
func (b *fakeBackend) BindTexture(t Texture)  { b.bound = t }
func (b *fakeBackend) UnbindTexture()         { b.bound = nil }

func (b *fakeBackend) SetBlending(enabled bool) bool {
	prev := b.blending
	b.blending = enabled
	return prev
}

func (b *fakeBackend) DrawQuad(q Quad) {
	if b.bound == nil || !b.blending || len(b.stack) == 0 {
		panic("DrawQuad without texture, blending or local transform")
	}
	b.quads = append(b.quads, q)
}

func (b *fakeBackend) CreateTexture(w, h int, pix []byte, format PixelFormat) (Texture, error) {
	if b.textureErr != nil {
		return nil, b.textureErr
	}
	t := &fakeTexture{w: w, h: h, pix: pix, format: format}
	b.textures = append(b.textures, t)
	return t, nil
}

func (b *fakeBackend) SDFShader() (Shader, error) {
	if b.shaderErr != nil {
		return nil, b.shaderErr
	}
	s := &fakeShader{}
	b.shaders = append(b.shaders, s)
	return s, nil
}

func rawGlyph(w, h, advance, bearing, top int32, fill byte) glyphcache.RawGlyph {
	return glyphcache.RawGlyph{
		Pix:      bytes.Repeat([]byte{fill}, int(w*h)),
		Width:    w,
		Height:   h,
		Advance:  advance,
		BearingX: bearing,
		Top:      top,
	}
}

// scenarioRasterizer knows only 'A' and 'B'.
var scenarioRasterizer = glyphcache.RasterizerFunc(func(r rune, _ int) (glyphcache.RawGlyph, error) {
	switch r {
	case 'A':
		return rawGlyph(10, 20, 12, 1, 18, 0xAA), nil
	case 'B':
		return rawGlyph(8, 15, 9, 0, 14, 0xBB), nil
	}
	return glyphcache.RawGlyph{}, nil
})

// fullRasterizer gives every printable character a glyph.
// Space advances 5; 'H' has top 9.
var fullRasterizer = glyphcache.RasterizerFunc(func(r rune, _ int) (glyphcache.RawGlyph, error) {
	switch {
	case r == ' ':
		return glyphcache.RawGlyph{Advance: 5}, nil
	case r > ' ' && r < 0x7F:
		w := 6 + r%3
		return rawGlyph(w, 10, w+2, 1, 9, byte(r)), nil
	}
	return glyphcache.RawGlyph{}, nil
})

func buildCache(t *testing.T, r glyphcache.Rasterizer) *glyphcache.Cache {
	t.Helper()
	c, err := glyphcache.Build(context.Background(), r)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return c
}

func newTestRenderer(t *testing.T, r glyphcache.Rasterizer) (Renderer, *fakeBackend) {
	t.Helper()
	b := newFakeBackend()
	f, err := LoadFont(buildCache(t, r), b, b)
	if err != nil {
		t.Fatalf("LoadFont() error = %v", err)
	}
	return NewRenderer(f, b), b
}

func TestLoadFont(t *testing.T) {
	b := newFakeBackend()
	f, err := LoadFont(buildCache(t, scenarioRasterizer), b, b)
	if err != nil {
		t.Fatalf("LoadFont() error = %v", err)
	}
	if w, h := f.AtlasSize(); w != 18 || h != 20 {
		t.Errorf("AtlasSize() = %dx%d, want 18x20", w, h)
	}
	tex := b.textures[0]
	if tex.w != 18 || tex.h != 20 || tex.format != FormatAlpha8 || len(tex.pix) != 18*20 {
		t.Errorf("texture = %dx%d %v (%d bytes), want 18x20 Alpha8 (360 bytes)", tex.w, tex.h, tex.format, len(tex.pix))
	}
	g, ok := f.Glyph('B')
	if !ok || g.AtlasX != 10 || g.Advance != 9 {
		t.Errorf("Glyph('B') = %+v, %v, want AtlasX 10, Advance 9", g, ok)
	}
	if _, ok := f.Glyph(200); ok {
		t.Error("Glyph(200) ok = true, want false")
	}
	if _, ok := f.Glyph(-1); ok {
		t.Error("Glyph(-1) ok = true, want false")
	}
}

func TestLoadFontShaderErrorReleasesTexture(t *testing.T) {
	b := newFakeBackend()
	b.shaderErr = errors.New("compile failed")
	f, err := LoadFont(buildCache(t, scenarioRasterizer), b, b)
	if err == nil || f != nil {
		t.Fatalf("LoadFont() = %v, %v, want nil font and error", f, err)
	}
	if !errors.Is(err, b.shaderErr) {
		t.Errorf("error = %v, want wrapping %v", err, b.shaderErr)
	}
	if b.textures[0].released != 1 {
		t.Errorf("texture released %d times, want 1", b.textures[0].released)
	}
}

func TestLoadFontTextureError(t *testing.T) {
	b := newFakeBackend()
	b.textureErr = errors.New("out of memory")
	if _, err := LoadFont(buildCache(t, scenarioRasterizer), b, b); !errors.Is(err, b.textureErr) {
		t.Errorf("LoadFont() error = %v, want %v", err, b.textureErr)
	}
	if len(b.shaders) != 0 {
		t.Error("shader created after texture failure")
	}
}

func TestFontRelease(t *testing.T) {
	b := newFakeBackend()
	f, err := LoadFont(buildCache(t, scenarioRasterizer), b, b)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if b.textures[0].released != 1 || b.shaders[0].released != 1 {
		t.Errorf("released texture %d, shader %d times, want 1 and 1", b.textures[0].released, b.shaders[0].released)
	}
}
