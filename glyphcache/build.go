package glyphcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/sdftext/internal/parallel"
)

// Rasterizer renders one code point of a font as a signed distance field.
// Advance and bearing are whole pixels with sub-pixel bits truncated.
//
// Build calls Rasterize from several goroutines at once, so implementations
// must be safe for concurrent use.
type Rasterizer interface {
	Rasterize(r rune, resolution int) (RawGlyph, error)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(r rune, resolution int) (RawGlyph, error)

// Rasterize calls f(r, resolution).
func (f RasterizerFunc) Rasterize(r rune, resolution int) (RawGlyph, error) {
	return f(r, resolution)
}

// BuildOption configures Build and BuildFile.
type BuildOption func(*buildOptions)

type buildOptions struct {
	workers int
	logger  *slog.Logger
}

// WithWorkers bounds the number of concurrent Rasterize calls.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) BuildOption {
	return func(o *buildOptions) { o.workers = n }
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *slog.Logger) BuildOption {
	return func(o *buildOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func newBuildOptions(opts []BuildOption) buildOptions {
	o := buildOptions{logger: slog.New(discardHandler{})}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Build rasterizes code points 0..127 at ReferenceResolution and packs them.
//
// The first rasterization failure cancels the remaining work and is returned
// as a *RasterizeError; no partial cache is produced.
func Build(ctx context.Context, r Rasterizer, opts ...BuildOption) (*Cache, error) {
	o := newBuildOptions(opts)
	start := time.Now()

	raw := make([]RawGlyph, NumGlyphs)
	err := parallel.ForEach(ctx, NumGlyphs, o.workers, func(_ context.Context, i int) error {
		g, err := r.Rasterize(rune(i), ReferenceResolution)
		if err != nil {
			return &RasterizeError{Rune: rune(i), Err: err}
		}
		if err := g.Validate(); err != nil {
			return &RasterizeError{Rune: rune(i), Err: err}
		}
		raw[i] = g
		return nil
	})
	if err != nil {
		return nil, err
	}

	c := &Cache{
		Glyphs: layoutGlyphs(raw),
		Atlas:  PackAtlas(raw),
	}
	o.logger.Debug("glyphcache: built",
		"atlas_width", c.Atlas.Width,
		"atlas_height", c.Atlas.Height,
		"elapsed", time.Since(start))
	return c, nil
}

// BuildFile builds a cache and writes it to path with WriteFile.
func BuildFile(ctx context.Context, r Rasterizer, path string, opts ...BuildOption) error {
	c, err := Build(ctx, r, opts...)
	if err != nil {
		return err
	}
	return WriteFile(path, c)
}

// WriteFile writes c to path atomically.
//
// The data goes to a temporary file in the destination directory, which is
// synced and renamed over path. On any failure the temporary file is removed
// and path is left untouched.
func WriteFile(path string, c *Cache) (err error) {
	if err := c.check(); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCacheIO, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = Encode(f, c); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrCacheIO, tmp, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", ErrCacheIO, tmp, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrCacheIO, tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", ErrCacheIO, path, err)
	}
	return nil
}

// Load reads and decodes the cache file at path.
func Load(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheIO, err)
	}
	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Exists reports whether a cache file is present at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrCacheIO, err)
	}
}

// FileName returns the deterministic cache file name for a font.
func FileName(fontName string, resolution int) string {
	return fmt.Sprintf("%s_%d.cache", fontName, resolution)
}
