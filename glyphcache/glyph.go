package glyphcache

import "fmt"

// ReferenceResolution is the pixel size every glyph is rasterized at.
// Draw-time scaling divides the requested size by this value.
const ReferenceResolution = 64

// NumGlyphs is the number of code points stored per font (ASCII).
const NumGlyphs = 128

// recordFields is the number of int32 fields per metric record.
const recordFields = 5

// RecordSize is the encoded size of one metric record in bytes.
const RecordSize = recordFields * 4

// MetricsSize is the encoded size of all metric records.
const MetricsSize = NumGlyphs * RecordSize

// RawGlyph is a rasterized glyph before packing.
// Pix holds Height rows of Width bytes each.
type RawGlyph struct {
	Pix      []byte
	Width    int32
	Height   int32
	Advance  int32
	BearingX int32
	Top      int32
}

// Validate checks that the bitmap matches the declared dimensions.
func (g *RawGlyph) Validate() error {
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("negative bitmap size %dx%d", g.Width, g.Height)
	}
	if want := int(g.Width) * int(g.Height); len(g.Pix) != want {
		return fmt.Errorf("bitmap has %d bytes, want %d", len(g.Pix), want)
	}
	return nil
}

// row returns scanline i of the bitmap. The caller checks i < Height.
func (g *RawGlyph) row(i int) []byte {
	w := int(g.Width)
	return g.Pix[i*w : (i+1)*w]
}

// LayoutGlyph holds the metrics of one glyph and its place in the atlas.
// All values are in reference-resolution pixels.
type LayoutGlyph struct {
	// AtlasX is the first atlas column of the glyph.
	AtlasX int32

	Width  int32
	Height int32

	// Advance is the horizontal pen distance including side bearings.
	Advance int32

	// BearingX is the offset from the pen to the glyph's left edge.
	BearingX int32

	// Top is the distance from the baseline up to the bitmap's first row.
	Top int32
}

// PenAdvance returns the horizontal pen increment, advance minus bearing.
// The result may be negative for unusual fonts.
func (g LayoutGlyph) PenAdvance() int32 {
	return g.Advance - g.BearingX
}

// Atlas is the packed single-channel bitmap of all glyphs.
type Atlas struct {
	Width  int
	Height int

	// Pix is row-major, Width bytes per row.
	Pix []byte
}

// Cache is a decoded glyph cache.
type Cache struct {
	Glyphs [NumGlyphs]LayoutGlyph
	Atlas  Atlas
}
