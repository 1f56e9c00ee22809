package raster

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
)

// Coverage reports which printable ASCII code points (0x20 to 0x7E) the
// font's character map does not cover. Those glyphs are cached as empty.
func Coverage(data []byte) ([]rune, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("raster: failed to parse font: %w", err)
	}
	var missing []rune
	for ch := rune(0x20); ch < 0x7F; ch++ {
		if _, ok := face.NominalGlyph(ch); !ok {
			missing = append(missing, ch)
		}
	}
	return missing, nil
}
