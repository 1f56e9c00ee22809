// Command sdfcache builds, inspects and previews SDF glyph caches.
//
// Build a cache for a font file:
//
//	sdfcache -font res/fonts/Inter.ttf -out res/cache
//
// Inspect a cache and dump its atlas:
//
//	sdfcache -inspect res/cache/Inter_64.cache -atlas atlas.png -zoom 2
//
// Render sample text with the software backend:
//
//	sdfcache -gofont -preview preview.png -text "Hello" -size 48
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/sdftext"
	"github.com/gogpu/sdftext/backend/software"
	"github.com/gogpu/sdftext/glyphcache"
	"github.com/gogpu/sdftext/raster"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"
)

func main() {
	var (
		fontPath = flag.String("font", "", "TrueType font to build a cache for")
		goFont   = flag.Bool("gofont", false, "use the bundled Go Regular font")
		name     = flag.String("name", "", "cache name (default: font file base name)")
		outDir   = flag.String("out", ".", "cache output directory")
		spread   = flag.Int("spread", raster.DefaultSpread, "distance field spread in pixels")
		workers  = flag.Int("workers", 0, "rasterization workers (0 = GOMAXPROCS)")
		inspect  = flag.String("inspect", "", "cache file to inspect instead of building")
		atlasOut = flag.String("atlas", "", "write the atlas as a grayscale PNG")
		zoom     = flag.Int("zoom", 1, "atlas PNG scale factor")
		preview  = flag.String("preview", "", "render -text to a PNG with the software backend")
		text     = flag.String("text", "The quick brown fox\njumps over the lazy dog", "preview text")
		size     = flag.Float64("size", 32, "preview text size in pixels")
		fg       = flag.String("color", "#000", "preview text color (hex RGB[A] or RRGGBB[AA])")
		bg       = flag.String("bg", "#fff", "preview background color")
		verbose  = flag.Bool("v", false, "log build progress")
	)
	flag.Parse()

	if *verbose {
		sdftext.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var (
		c   *glyphcache.Cache
		err error
	)
	if *inspect != "" {
		c, err = glyphcache.Load(*inspect)
		if err != nil {
			log.Fatalf("Failed to load cache: %v", err)
		}
		printMetrics(os.Stdout, c)
	} else {
		data, fontName, err := readFont(*fontPath, *goFont)
		if err != nil {
			log.Fatal(err)
		}
		if *name != "" {
			fontName = *name
		}
		var path string
		c, path, err = buildCache(context.Background(), data, fontName, *outDir, *spread, *workers)
		if err != nil {
			log.Fatalf("Failed to build cache: %v", err)
		}
		log.Printf("Cache saved to %s (atlas %dx%d)\n", path, c.Atlas.Width, c.Atlas.Height)
	}

	if *atlasOut != "" {
		if err := savePNG(*atlasOut, atlasImage(c, *zoom)); err != nil {
			log.Fatalf("Failed to save atlas: %v", err)
		}
		log.Printf("Atlas saved to %s\n", *atlasOut)
	}

	if *preview != "" {
		img, err := renderPreview(c, *text, *size, sdftext.Hex(*fg), sdftext.Hex(*bg))
		if err != nil {
			log.Fatalf("Failed to render preview: %v", err)
		}
		if err := savePNG(*preview, img); err != nil {
			log.Fatalf("Failed to save preview: %v", err)
		}
		log.Printf("Preview saved to %s (%dx%d)\n", *preview, img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func readFont(path string, goFont bool) (data []byte, name string, err error) {
	switch {
	case goFont:
		return goregular.TTF, "GoRegular", nil
	case path == "":
		return nil, "", fmt.Errorf("one of -font, -gofont or -inspect is required")
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), nil
}

func buildCache(ctx context.Context, data []byte, name, dir string, spread, workers int) (*glyphcache.Cache, string, error) {
	r, err := raster.New(data, raster.WithSpread(spread))
	if err != nil {
		return nil, "", err
	}
	if missing, err := raster.Coverage(data); err == nil && len(missing) > 0 {
		log.Printf("Font has no glyphs for %q\n", string(missing))
	}

	c, err := glyphcache.Build(ctx, r, glyphcache.WithWorkers(workers), glyphcache.WithLogger(sdftext.Logger()))
	if err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", err
	}
	path := filepath.Join(dir, glyphcache.FileName(name, sdftext.ReferenceResolution))
	if err := glyphcache.WriteFile(path, c); err != nil {
		return nil, "", err
	}
	return c, path, nil
}

func printMetrics(w io.Writer, c *glyphcache.Cache) {
	fmt.Fprintf(w, "atlas %dx%d\n", c.Atlas.Width, c.Atlas.Height)
	fmt.Fprintf(w, "%-6s %5s %4s %4s %5s %5s %5s\n", "glyph", "x", "w", "h", "adv", "bx", "top")
	for r, g := range c.Glyphs {
		if g.Width == 0 && g.Advance == 0 {
			continue
		}
		label := fmt.Sprintf("%q", rune(r))
		fmt.Fprintf(w, "%-6s %5d %4d %4d %5d %5d %5d\n",
			label, g.AtlasX, g.Width, g.Height, g.Advance, g.BearingX, g.Top)
	}
}

// atlasImage returns the atlas as a grayscale image, scaled by zoom.
func atlasImage(c *glyphcache.Cache, zoom int) image.Image {
	src := &image.Gray{
		Pix:    c.Atlas.Pix,
		Stride: c.Atlas.Width,
		Rect:   image.Rect(0, 0, c.Atlas.Width, c.Atlas.Height),
	}
	if zoom <= 1 {
		return src
	}
	dst := image.NewGray(image.Rect(0, 0, c.Atlas.Width*zoom, c.Atlas.Height*zoom))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// renderPreview draws text in fg on bg with a margin of one line height.
func renderPreview(c *glyphcache.Cache, text string, size float64, fg, bg sdftext.RGBA) (*image.RGBA, error) {
	// Shaders belong to the backend that created them, so the font is
	// loaded again once the target is sized.
	probe, err := software.New(1, 1)
	if err != nil {
		return nil, err
	}
	f, err := sdftext.LoadFont(c, probe, probe)
	if err != nil {
		return nil, err
	}
	w, h, err := sdftext.NewRenderer(f, nil).MeasureLines(size, text)
	if err != nil {
		return nil, err
	}

	margin := int(math.Ceil(size))
	b, err := software.New(int(math.Ceil(w))+2*margin, int(math.Ceil(h))+2*margin)
	if err != nil {
		return nil, err
	}
	b.Clear(bg.Color())
	f, err = sdftext.LoadFont(c, b, b)
	if err != nil {
		return nil, err
	}
	defer f.Release()

	if _, _, err := sdftext.NewRenderer(f, b).Draw(b.Viewport(), size, text, float64(margin), float64(margin), fg); err != nil {
		return nil, err
	}
	return b.Image(), nil
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
