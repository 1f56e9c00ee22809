package sdftext

import (
	"github.com/gogpu/sdftext/glyphcache"
	"github.com/gogpu/sdftext/raster"
)

// RasterizerFactory creates a glyph rasterizer from font file bytes.
type RasterizerFactory func(fontData []byte) (glyphcache.Rasterizer, error)

// DefaultLayoutIdleFrames is how many frames an unused layout survives.
const DefaultLayoutIdleFrames = 10

// RegistryOption configures a Registry.
//
// Example:
//
//	reg := sdftext.NewRegistry(backend,
//	    sdftext.WithFontDir("res/fonts"),
//	    sdftext.WithCacheDir("res/cache"),
//	)
type RegistryOption func(*registryOptions)

type registryOptions struct {
	fontDir     string
	cacheDir    string
	inMemory    bool
	workers     int
	rasterizer  RasterizerFactory
	idleFrames  int
	layoutLimit int
}

func defaultRegistryOptions() registryOptions {
	return registryOptions{
		fontDir:    ".",
		cacheDir:   ".",
		rasterizer: defaultRasterizer,
		idleFrames: DefaultLayoutIdleFrames,
	}
}

func defaultRasterizer(data []byte) (glyphcache.Rasterizer, error) {
	return raster.New(data)
}

// WithFontDir sets the directory searched for "<name>.ttf" files.
func WithFontDir(dir string) RegistryOption {
	return func(o *registryOptions) {
		o.fontDir = dir
	}
}

// WithCacheDir sets the directory holding "<name>_<res>.cache" files.
// It is created on first build if missing.
func WithCacheDir(dir string) RegistryOption {
	return func(o *registryOptions) {
		o.cacheDir = dir
	}
}

// WithInMemoryCache builds missing caches in memory and never writes cache
// files. Existing cache files are still read.
func WithInMemoryCache() RegistryOption {
	return func(o *registryOptions) {
		o.inMemory = true
	}
}

// WithBuildWorkers bounds the goroutines rasterizing one font.
// Zero or less uses GOMAXPROCS.
func WithBuildWorkers(n int) RegistryOption {
	return func(o *registryOptions) {
		o.workers = n
	}
}

// WithRasterizer replaces the default x/image based SDF rasterizer.
func WithRasterizer(f RasterizerFactory) RegistryOption {
	return func(o *registryOptions) {
		if f != nil {
			o.rasterizer = f
		}
	}
}

// WithLayoutCache sets how many frames an unused layout is kept and the
// soft limit on cached layouts (0 means unlimited). A negative maxIdleFrames
// disables layout caching.
func WithLayoutCache(maxIdleFrames, softLimit int) RegistryOption {
	return func(o *registryOptions) {
		o.idleFrames = maxIdleFrames
		o.layoutLimit = softLimit
	}
}
