package software

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/sdftext"
)

// ErrTextureSize is returned when pixel data does not match the texture
// dimensions.
var ErrTextureSize = errors.New("software: texture data size mismatch")

// Texture is a CPU copy of an uploaded texture. RGBA textures sample their
// alpha channel.
type Texture struct {
	width, height int
	format        sdftext.PixelFormat
	pix           []byte
}

// NewTexture copies pix into a new texture.
func NewTexture(width, height int, pix []byte, format sdftext.PixelFormat) (*Texture, error) {
	bpp := 1
	switch format {
	case sdftext.FormatAlpha8:
	case sdftext.FormatRGBA8:
		bpp = 4
	default:
		return nil, fmt.Errorf("software: unsupported pixel format %v", format)
	}
	if width < 0 || height < 0 || len(pix) != width*height*bpp {
		return nil, fmt.Errorf("%w: %dx%d %v with %d bytes", ErrTextureSize, width, height, format, len(pix))
	}
	return &Texture{
		width:  width,
		height: height,
		format: format,
		pix:    append([]byte(nil), pix...),
	}, nil
}

// Size returns the texture dimensions.
func (t *Texture) Size() (int, int) { return t.width, t.height }

// at returns the sampled channel at integer texel coordinates, clamped to
// the edge.
func (t *Texture) at(x, y int) float64 {
	x = min(max(x, 0), t.width-1)
	y = min(max(y, 0), t.height-1)
	if t.format == sdftext.FormatRGBA8 {
		return float64(t.pix[(y*t.width+x)*4+3]) / 255
	}
	return float64(t.pix[y*t.width+x]) / 255
}

// Sample returns the bilinearly filtered value at normalized (u, v), in
// [0, 1]. Empty textures sample as 0.
func (t *Texture) Sample(u, v float64) float64 {
	if t.width == 0 || t.height == 0 {
		return 0
	}
	x := u*float64(t.width) - 0.5
	y := v*float64(t.height) - 0.5
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	ix, iy := int(x0), int(y0)

	top := t.at(ix, iy)*(1-fx) + t.at(ix+1, iy)*fx
	bottom := t.at(ix, iy+1)*(1-fx) + t.at(ix+1, iy+1)*fx
	return top*(1-fy) + bottom*fy
}
