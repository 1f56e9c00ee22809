package sdftext

import "math"

// Width returns the sum of the pen advances of every rune in text, scaled
// to size. Newlines, tabs and wrapping have no special effect; each rune
// counts as its glyph. Runes outside the glyph table follow the fallback
// policy.
func (r Renderer) Width(size float64, text string) (float64, error) {
	if r.font == nil {
		return 0, ErrNoFont
	}
	if err := r.cfg.Validate(); err != nil {
		return 0, err
	}
	chars, err := r.cfg.resolve(text)
	if err != nil {
		return 0, err
	}
	var w int64
	for _, c := range chars {
		w += int64(r.font.glyphs[c].PenAdvance())
	}
	return float64(w) * size / ReferenceResolution, nil
}

// Height returns the top offset of 'H' scaled to size, the font-wide
// single line height estimate.
func (r Renderer) Height(size float64) float64 {
	if r.font == nil {
		return 0
	}
	return r.font.capTop() * size / ReferenceResolution
}

// MeasureLines returns the widest line's width and the total height of
// text laid out with the renderer's wrapping, tab and spacing settings.
// Pen advances are not snapped.
func (r Renderer) MeasureLines(size float64, text string) (width, height float64, err error) {
	if r.font == nil {
		return 0, 0, ErrNoFont
	}
	if !(size > 0) || math.IsInf(size, 0) {
		return 0, 0, ErrInvalidSize
	}
	if err := r.cfg.Validate(); err != nil {
		return 0, 0, err
	}
	chars, err := r.cfg.resolve(text)
	if err != nil {
		return 0, 0, err
	}

	f := r.font
	scale := size / ReferenceResolution
	advance := func(c rune) float64 { return f.penAdvance(c, r.cfg.TabLength) }
	lines := splitLines(chars, r.cfg.Wrapping.Mode, r.cfg.Wrapping.MaxWidth/scale, advance)

	capTop := f.capTop()
	for i, line := range lines {
		width = math.Max(width, lineAdvance(line, advance))
		h := 0.0
		for _, c := range line {
			if c != '\t' {
				h = math.Max(h, float64(f.glyphs[c].Height))
			}
		}
		if h == 0 {
			h = capTop
		}
		if i < len(lines)-1 {
			h *= r.cfg.LineSpacing
		}
		height += h
	}
	return width * scale, height * scale, nil
}
