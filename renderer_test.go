package sdftext

import (
	"errors"
	"math"
	"testing"
)

func TestDrawTwoGlyphs(t *testing.T) {
	r, b := newTestRenderer(t, scenarioRasterizer)

	w, h, err := r.Draw(testViewport, 64, "AB", 0, 0, White)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if w != 20 {
		t.Errorf("width = %v, want 20", w)
	}
	if h != 20 {
		t.Errorf("height = %v, want 20", h)
	}
	if len(b.quads) != 2 {
		t.Fatalf("quads = %d, want 2", len(b.quads))
	}

	// 'H' has no glyph here, so the cap anchor is 0 and y0 = -top.
	want := []Quad{
		{X0: 0, Y0: -18, X1: 10, Y1: 2, U0: 0, V0: 0, U1: 10.0 / 18, V1: 1, Color: White},
		{X0: 11, Y0: -14, X1: 19, Y1: 1, U0: 10.0 / 18, V0: 0, U1: 1, V1: 15.0 / 20, Color: White},
	}
	for i, q := range b.quads {
		if !quadClose(q, want[i]) {
			t.Errorf("quad[%d] = %+v, want %+v", i, q, want[i])
		}
	}
}

func quadClose(a, b Quad) bool {
	const eps = 1e-9
	vals := [][2]float64{
		{a.X0, b.X0}, {a.Y0, b.Y0}, {a.X1, b.X1}, {a.Y1, b.Y1},
		{a.U0, b.U0}, {a.V0, b.V0}, {a.U1, b.U1}, {a.V1, b.V1},
	}
	for _, v := range vals {
		if math.Abs(v[0]-v[1]) > eps {
			return false
		}
	}
	return a.Color == b.Color
}

func TestDrawRestoresState(t *testing.T) {
	r, b := newTestRenderer(t, scenarioRasterizer)
	b.blending = false

	if _, _, err := r.Draw(testViewport, 32, "AB", 0, 0, Black); err != nil {
		t.Fatal(err)
	}
	if len(b.stack) != 0 {
		t.Errorf("transform stack depth = %d, want 0", len(b.stack))
	}
	if b.blending {
		t.Error("blending left enabled")
	}
	if b.bound != nil {
		t.Error("texture left bound")
	}
	sh := b.shaders[0]
	if sh.bound {
		t.Error("shader left bound")
	}
	if got := sh.uniforms["u_atlas_width"]; len(got) != 1 || got[0] != 18 {
		t.Errorf("u_atlas_width = %v, want [18]", got)
	}
	if got := sh.uniforms["u_color"]; len(got) != 4 || got[3] != 1 {
		t.Errorf("u_color = %v, want opaque black", got)
	}
	if got := sh.uniforms["u_scale_x"]; len(got) != 1 || got[0] != 1 {
		t.Errorf("u_scale_x = %v, want [1]", got)
	}
	// 0.25 / (32/10 * 1) = 0.078125
	if got := sh.uniforms["u_smoothing"]; len(got) != 1 || math.Abs(float64(got[0])-0.078125) > 1e-6 {
		t.Errorf("u_smoothing = %v, want [0.078125]", got)
	}
}

func TestDrawNewlineResetsPenX(t *testing.T) {
	r, b := newTestRenderer(t, scenarioRasterizer)

	w, h, err := r.Draw(testViewport, 64, "AB\nBA", 5, 0, White)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.quads) != 4 {
		t.Fatalf("quads = %d, want 4", len(b.quads))
	}
	wantX := []float64{5, 16, 5, 14}
	for i, q := range b.quads {
		if q.X0 != wantX[i] {
			t.Errorf("quad[%d].X0 = %v, want %v", i, q.X0, wantX[i])
		}
	}
	// Line 1 is 20 high, so line 2 starts at y = 20.
	if got := b.quads[2].Y0; got != 20-14 {
		t.Errorf("line 2 'B' Y0 = %v, want 6", got)
	}
	if w != 20 || h != 20 {
		t.Errorf("last line = %vx%v, want 20x20", w, h)
	}
}

func TestDrawLineSpacing(t *testing.T) {
	r, b := newTestRenderer(t, scenarioRasterizer)
	r = r.WithLineSpacing(1.5)
	if _, _, err := r.Draw(testViewport, 64, "A\nA", 0, 0, White); err != nil {
		t.Fatal(err)
	}
	if got := b.quads[1].Y0 - b.quads[0].Y0; got != 30 {
		t.Errorf("line step = %v, want 30", got)
	}
}

func TestDrawEmptyLineUsesCapHeight(t *testing.T) {
	r, b := newTestRenderer(t, fullRasterizer)
	if _, _, err := r.Draw(testViewport, 64, "a\n\nb", 0, 0, White); err != nil {
		t.Fatal(err)
	}
	// Line 1 is 10 high, the empty line 2 uses 'H'.Top = 9.
	if got := b.quads[1].Y0 - b.quads[0].Y0; got != 19 {
		t.Errorf("two line step = %v, want 19", got)
	}
}

func TestDrawTab(t *testing.T) {
	tests := []struct {
		name      string
		tabLength int
		size      float64
	}{
		{"one space at reference size", 1, 64},
		{"one space at half size", 1, 32},
		{"default four spaces", 4, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, b := newTestRenderer(t, fullRasterizer)
			r = r.WithTabLength(tt.tabLength)

			if _, _, err := r.Draw(testViewport, tt.size, "A\tB", 0, 0, White); err != nil {
				t.Fatal(err)
			}
			advA, err := r.Width(tt.size, "A")
			if err != nil {
				t.Fatal(err)
			}
			space, err := r.Width(tt.size, " ")
			if err != nil {
				t.Fatal(err)
			}
			scale := tt.size / ReferenceResolution
			gap := (b.quads[1].X0-b.quads[0].X0)*scale - advA
			if want := float64(tt.tabLength) * space; math.Abs(gap-want) > 1e-9 {
				t.Errorf("tab advance = %v, want %v", gap, want)
			}
		})
	}
}

func TestDrawSpaceEmitsNoQuad(t *testing.T) {
	r, b := newTestRenderer(t, fullRasterizer)
	if _, _, err := r.Draw(testViewport, 64, "a b", 0, 0, White); err != nil {
		t.Fatal(err)
	}
	if len(b.quads) != 2 {
		t.Fatalf("quads = %d, want 2", len(b.quads))
	}
	// 'a' (0x61) is 7 wide: pen advance 8, then space 5.
	if got := b.quads[1].X0; got != 13 {
		t.Errorf("'b' X0 = %v, want 13", got)
	}
}

func TestDrawEmpty(t *testing.T) {
	r, b := newTestRenderer(t, scenarioRasterizer)
	w, h, err := r.Draw(testViewport, 12, "", 3, 4, White)
	if err != nil || w != 0 || h != 0 {
		t.Errorf("Draw(\"\") = %v, %v, %v, want 0, 0, nil", w, h, err)
	}
	if len(b.quads) != 0 {
		t.Errorf("quads = %d, want 0", len(b.quads))
	}
}

func TestDrawScaleModes(t *testing.T) {
	// At size 32 with unit projection factors one glyph unit spans half a
	// pixel, so Quality rounds the 11 unit advance of 'A' up to 12.
	tests := []struct {
		mode  ScaleMode
		wantX float64
	}{
		{ScaleNormal, 11},
		{ScaleQuality, 12},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			r, b := newTestRenderer(t, scenarioRasterizer)
			r = r.WithScaleMode(tt.mode)
			w, _, err := r.Draw(testViewport, 32, "AB", 0, 0, White)
			if err != nil {
				t.Fatal(err)
			}
			if got := b.quads[1].X0; got != tt.wantX {
				t.Errorf("'B' X0 = %v, want %v", got, tt.wantX)
			}
			// Width accumulates raw pen advances in both modes.
			if w != 10 {
				t.Errorf("width = %v, want 10", w)
			}
			// Bottom-right corners are snapped in both modes.
			for i, q := range b.quads {
				if q.X1*0.5 != math.Ceil(q.X1*0.5) || q.Y1*0.5 != math.Ceil(q.Y1*0.5) {
					t.Errorf("quad[%d] corner (%v, %v) not on a pixel", i, q.X1, q.Y1)
				}
			}
		})
	}
}

func TestDrawAlign(t *testing.T) {
	r, b := newTestRenderer(t, scenarioRasterizer)
	r = r.WithAlign(0.5)
	if _, _, err := r.Draw(testViewport, 64, "AB\nA", 100, 0, White); err != nil {
		t.Fatal(err)
	}
	if got := b.quads[0].X0; got != 90 {
		t.Errorf("line 1 X0 = %v, want 90", got)
	}
	if got := b.quads[2].X0; got != 94.5 {
		t.Errorf("line 2 X0 = %v, want 94.5", got)
	}
}

func TestDrawWrapping(t *testing.T) {
	r, b := newTestRenderer(t, fullRasterizer)
	// "ab" is 8+9 = 17 units wide; limit 20 units at size 64.
	r = r.WithWrapping(SoftWrap(20))
	_, _, err := r.Draw(testViewport, 64, "ab ab", 0, 0, White)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.quads) != 4 {
		t.Fatalf("quads = %d, want 4", len(b.quads))
	}
	if b.quads[2].X0 != 0 || b.quads[2].Y0 <= b.quads[0].Y0 {
		t.Errorf("second word at (%v, %v), want x 0 on a new line", b.quads[2].X0, b.quads[2].Y0)
	}
}

func TestDrawErrors(t *testing.T) {
	r, b := newTestRenderer(t, scenarioRasterizer)

	for _, size := range []float64{0, -1, math.Inf(1), math.NaN()} {
		if _, _, err := r.Draw(testViewport, size, "A", 0, 0, White); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Draw(size %v) error = %v, want ErrInvalidSize", size, err)
		}
	}
	if _, _, err := r.WithLineSpacing(0).Draw(testViewport, 10, "A", 0, 0, White); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Draw(line spacing 0) error = %v, want ErrInvalidConfig", err)
	}

	_, _, err := r.WithFallback(FallbackError).Draw(testViewport, 10, "AB€", 0, 0, White)
	var cpe *CodePointError
	if !errors.As(err, &cpe) || cpe.Rune != '€' || cpe.Index != 2 {
		t.Errorf("Draw(\"AB€\") error = %v, want CodePointError at byte 2", err)
	}
	if !errors.Is(err, ErrUndefinedCodePoint) {
		t.Errorf("error %v does not match ErrUndefinedCodePoint", err)
	}
	if len(b.quads) != 0 {
		t.Errorf("quads after failed draws = %d, want 0", len(b.quads))
	}

	var zero Renderer
	if _, _, err := zero.Draw(testViewport, 10, "A", 0, 0, White); !errors.Is(err, ErrNoFont) {
		t.Errorf("zero Renderer Draw() error = %v, want ErrNoFont", err)
	}
	noGraphics := NewRenderer(r.Font(), nil)
	if _, _, err := noGraphics.Draw(testViewport, 10, "A", 0, 0, White); !errors.Is(err, ErrNoGraphics) {
		t.Errorf("Draw() without graphics error = %v, want ErrNoGraphics", err)
	}
	if _, err := noGraphics.Layout(testViewport, 10, "A", 0, 0, White); err != nil {
		t.Errorf("Layout() without graphics error = %v, want nil", err)
	}
}

func TestDrawSubstitutesUndefined(t *testing.T) {
	r, b := newTestRenderer(t, fullRasterizer)
	if _, _, err := r.Draw(testViewport, 64, "é€", 0, 0, White); err != nil {
		t.Fatal(err)
	}
	if len(b.quads) != 2 {
		t.Fatalf("quads = %d, want 2", len(b.quads))
	}
	f := r.Font()
	e, _ := f.Glyph('e')
	q, _ := f.Glyph('?')
	aw, _ := f.AtlasSize()
	if got, want := b.quads[0].U0, float64(e.AtlasX)/float64(aw); got != want {
		t.Errorf("quad[0].U0 = %v, want 'e' at %v", got, want)
	}
	if got, want := b.quads[1].U0, float64(q.AtlasX)/float64(aw); got != want {
		t.Errorf("quad[1].U0 = %v, want '?' at %v", got, want)
	}
}

func TestWithMethodsDoNotMutate(t *testing.T) {
	r, _ := newTestRenderer(t, scenarioRasterizer)
	_ = r.WithTabLength(8).WithScaleMode(ScaleQuality).WithWrapping(HardWrap(10)).
		WithFallback(FallbackSkip).WithSubstitute('*').WithAlign(1).WithLineSpacing(2)
	if r.Config() != DefaultConfig() {
		t.Errorf("Config() = %+v, want defaults", r.Config())
	}
	cfg := DefaultConfig()
	cfg.TabLength = 2
	if got := r.WithConfig(cfg).Config().TabLength; got != 2 {
		t.Errorf("WithConfig TabLength = %d, want 2", got)
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		value, factor, want float64
	}{
		{11, 0.5, 12},
		{10, 0.5, 10},
		{3.2, 1, 4},
		{-1.5, 1, -1},
		{7.3, 0, 7.3},
		{7.3, -2, 7.3},
		{1.1, 4, 1.25},
	}
	for _, tt := range tests {
		if got := Snap(tt.value, tt.factor); got != tt.want {
			t.Errorf("Snap(%v, %v) = %v, want %v", tt.value, tt.factor, got, tt.want)
		}
	}
}

func TestSmoothing(t *testing.T) {
	tests := []struct {
		size, fx, fy, want float64
	}{
		{10, 1, 1, 0.25},
		{100, 1, 1, 0.025},
		{1, 1, 1, 0.4},
		{10, 0, 0, 0.4},
	}
	for _, tt := range tests {
		if got := Smoothing(tt.size, tt.fx, tt.fy); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Smoothing(%v, %v, %v) = %v, want %v", tt.size, tt.fx, tt.fy, got, tt.want)
		}
	}
}
