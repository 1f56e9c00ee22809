// Package glyphcache builds and loads the binary SDF glyph cache used by sdftext.
//
// A cache holds the first 128 code points of one font, rasterized as signed
// distance fields at [ReferenceResolution] pixels per em. The file layout is:
//
//	128 × { width, height, advance, bearing_x, top }   // big-endian int32
//	atlas_width × atlas_height bytes                    // one 8-bit channel
//
// The atlas is a single row of glyphs packed left to right in code-point order,
// so atlas_width is the sum of all glyph widths and atlas_height the tallest
// glyph. There is no header, magic number or version field: a file written by
// a different layout decodes as corrupt and must be deleted and rebuilt.
//
// # Building
//
//	r, err := raster.New(fontBytes)
//	if err != nil {
//	    return err
//	}
//	if err := glyphcache.BuildFile(ctx, r, "roboto_64.cache"); err != nil {
//	    return err
//	}
//
// BuildFile writes atomically: a failed build never leaves a file at the
// destination path.
//
// # Loading
//
//	c, err := glyphcache.Load("roboto_64.cache")
//	g := c.Glyphs['A'] // atlas offset and layout metrics
package glyphcache
