// Package raster renders TrueType/OpenType glyphs as signed distance fields
// for the glyph cache builder.
//
// Glyph coverage comes from golang.org/x/image/font/opentype. The coverage
// mask is padded by a spread on every side and converted to a distance field
// with an exact Euclidean distance transform. Pixel value 128 lies on the
// outline, larger values are inside the glyph and smaller values outside,
// falling to 0 and 255 at one spread from the edge.
//
//	r, err := raster.New(goregular.TTF)
//	if err != nil {
//	    return err
//	}
//	c, err := glyphcache.Build(ctx, r)
package raster
