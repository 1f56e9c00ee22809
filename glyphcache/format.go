package glyphcache

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Encode writes c in cache file layout.
// The atlas must agree with the glyph metrics: its width is the sum of
// glyph widths, its height the maximum glyph height.
func Encode(w io.Writer, c *Cache) error {
	if err := c.check(); err != nil {
		return err
	}

	bw := bufio.NewWriterSize(w, MetricsSize)
	var rec [RecordSize]byte
	for i := range c.Glyphs {
		g := &c.Glyphs[i]
		binary.BigEndian.PutUint32(rec[0:], uint32(g.Width))
		binary.BigEndian.PutUint32(rec[4:], uint32(g.Height))
		binary.BigEndian.PutUint32(rec[8:], uint32(g.Advance))
		binary.BigEndian.PutUint32(rec[12:], uint32(g.BearingX))
		binary.BigEndian.PutUint32(rec[16:], uint32(g.Top))
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}
	if _, err := bw.Write(c.Atlas.Pix); err != nil {
		return err
	}
	return bw.Flush()
}

// MarshalBinary returns the cache file bytes.
func (c *Cache) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(MetricsSize + len(c.Atlas.Pix))
	if err := Encode(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes cache file bytes into c.
func (c *Cache) UnmarshalBinary(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*c = *decoded
	return nil
}

// Decode parses cache file bytes.
//
// Atlas offsets are recomputed as the running sum of glyph widths. The bytes
// after the last record must be exactly atlas_width × atlas_height; anything
// shorter or longer is reported as ErrCacheCorrupt.
func Decode(data []byte) (*Cache, error) {
	c := &Cache{}

	var atlasWidth, atlasHeight int64
	off := 0
	for i := range NumGlyphs {
		if len(data)-off < RecordSize {
			return nil, corruptf("record %d truncated at byte %d", i, len(data))
		}
		rec := data[off : off+RecordSize]
		off += RecordSize

		g := LayoutGlyph{
			AtlasX:   int32(atlasWidth),
			Width:    int32(binary.BigEndian.Uint32(rec[0:])),
			Height:   int32(binary.BigEndian.Uint32(rec[4:])),
			Advance:  int32(binary.BigEndian.Uint32(rec[8:])),
			BearingX: int32(binary.BigEndian.Uint32(rec[12:])),
			Top:      int32(binary.BigEndian.Uint32(rec[16:])),
		}
		if g.Width < 0 || g.Height < 0 {
			return nil, corruptf("record %d has negative size %dx%d", i, g.Width, g.Height)
		}
		c.Glyphs[i] = g

		atlasWidth += int64(g.Width)
		if atlasWidth > math.MaxInt32 {
			return nil, corruptf("atlas width exceeds %d at record %d", math.MaxInt32, i)
		}
		if int64(g.Height) > atlasHeight {
			atlasHeight = int64(g.Height)
		}
	}

	pix := data[off:]
	if want := atlasWidth * atlasHeight; int64(len(pix)) != want {
		return nil, corruptf("atlas %dx%d needs %d bytes, have %d", atlasWidth, atlasHeight, want, len(pix))
	}

	c.Atlas = Atlas{
		Width:  int(atlasWidth),
		Height: int(atlasHeight),
		Pix:    bytes.Clone(pix),
	}
	return c, nil
}

// check validates the invariants Encode relies on.
func (c *Cache) check() error {
	var width, height int
	for i := range c.Glyphs {
		g := &c.Glyphs[i]
		if g.Width < 0 || g.Height < 0 {
			return fmt.Errorf("glyphcache: glyph %d has negative size %dx%d", i, g.Width, g.Height)
		}
		width += int(g.Width)
		height = max(height, int(g.Height))
	}
	if c.Atlas.Width != width || c.Atlas.Height != height {
		return fmt.Errorf("glyphcache: atlas is %dx%d, glyphs need %dx%d",
			c.Atlas.Width, c.Atlas.Height, width, height)
	}
	if len(c.Atlas.Pix) != width*height {
		return fmt.Errorf("glyphcache: atlas has %d bytes, want %d", len(c.Atlas.Pix), width*height)
	}
	return nil
}
