package glyphcache

// PackAtlas packs glyph bitmaps into a single-row atlas.
//
// The atlas is built one scanline at a time across its whole height. For each
// scanline every glyph, in order, contributes either its own row of the same
// index or Width zero bytes when it is shorter than the atlas. Each glyph thus
// occupies a contiguous strip of its own width and the full atlas height.
//
// Glyphs must pass Validate.
func PackAtlas(glyphs []RawGlyph) Atlas {
	var width, height int
	for i := range glyphs {
		width += int(glyphs[i].Width)
		if h := int(glyphs[i].Height); h > height {
			height = h
		}
	}

	pix := make([]byte, 0, width*height)
	for row := 0; row < height; row++ {
		for i := range glyphs {
			g := &glyphs[i]
			if row < int(g.Height) {
				pix = append(pix, g.row(row)...)
				continue
			}
			// Transparent padding below shorter glyphs.
			for range int(g.Width) {
				pix = append(pix, 0)
			}
		}
	}

	return Atlas{Width: width, Height: height, Pix: pix}
}

// layoutGlyphs derives atlas offsets from rasterized glyph metrics.
func layoutGlyphs(raw []RawGlyph) [NumGlyphs]LayoutGlyph {
	var out [NumGlyphs]LayoutGlyph
	var x int32
	for i := range raw {
		g := &raw[i]
		out[i] = LayoutGlyph{
			AtlasX:   x,
			Width:    g.Width,
			Height:   g.Height,
			Advance:  g.Advance,
			BearingX: g.BearingX,
			Top:      g.Top,
		}
		x += g.Width
	}
	return out
}

// Region returns the atlas column range of glyph g in texture coordinates.
// u0..u1 span the glyph's columns and v1 its height; v0 is always 0.
func (a Atlas) Region(g LayoutGlyph) (u0, v0, u1, v1 float64) {
	if a.Width == 0 || a.Height == 0 {
		return 0, 0, 0, 0
	}
	w := float64(a.Width)
	u0 = float64(g.AtlasX) / w
	u1 = float64(g.AtlasX+g.Width) / w
	v1 = float64(g.Height) / float64(a.Height)
	return u0, 0, u1, v1
}
