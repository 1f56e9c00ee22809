// Package sdftext draws scalable text from a signed distance field glyph
// atlas.
//
// # Overview
//
// A font is rasterized once, at a fixed reference resolution, into 128 SDF
// glyphs (the ASCII range). The glyphs are packed into a single-row atlas
// and written to a cache file (see package glyphcache). At run time the
// cache is loaded, the atlas is uploaded as one single-channel texture and
// text of any size is drawn as textured quads shaded by an SDF shader.
//
// # Quick Start
//
//	reg := sdftext.NewRegistry(backend,
//	    sdftext.WithFontDir("assets/fonts"),
//	    sdftext.WithCacheDir("assets/cache"),
//	)
//	defer reg.Close()
//	reg.UpdateScreenDimensions(1280, 720)
//
//	r, err := reg.Get("Roboto")
//	if err != nil {
//	    return err
//	}
//	w, h, err := r.Draw(reg.Viewport(), 24, "Hello", 10, 10, sdftext.White)
//
//	// once per frame
//	reg.EndFrame()
//
// # Collaborators
//
// Drawing goes through the Graphics, TextureFactory and ShaderFactory
// interfaces. Package backend/software implements them on an image.RGBA
// target; package integration/gpusdf provides the GPU pieces (texture
// upload through gpucontext, the WGSL SDF shader and its uniform layout).
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Glyph quads are emitted in reference-resolution glyph space under a
//     local scale transform of size/ReferenceResolution
//
// # Code Points
//
// Only code points 0 to 127 have glyphs. Other runes are handled by the
// renderer's FallbackPolicy: folded to ASCII and substituted, skipped, or
// reported as ErrUndefinedCodePoint.
package sdftext

import "github.com/gogpu/sdftext/glyphcache"

// ReferenceResolution is the pixel size glyphs are rasterized at.
const ReferenceResolution = glyphcache.ReferenceResolution
