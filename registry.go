package sdftext

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gogpu/sdftext/glyphcache"
	"github.com/gogpu/sdftext/internal/cache"
	"github.com/gogpu/sdftext/raster"
	"golang.org/x/sync/singleflight"
)

// Registry loads fonts by name and shares them between renderers.
//
// The first request for a name loads "<cacheDir>/<name>_<res>.cache",
// building it from the font source first if it does not exist. Fonts live
// until Close. Registry methods are safe for concurrent use; drawing with
// the returned renderers is not.
type Registry struct {
	backend Backend
	opts    registryOptions
	layouts *cache.Cache[layoutKey, *Layout]
	group   singleflight.Group

	mu      sync.Mutex
	fonts   map[string]*Font
	sources map[string][]byte
	vp      Viewport
	closed  bool
}

// NewRegistry creates a registry drawing through backend.
func NewRegistry(backend Backend, opts ...RegistryOption) *Registry {
	o := defaultRegistryOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Registry{
		backend: backend,
		opts:    o,
		fonts:   make(map[string]*Font),
		sources: make(map[string][]byte),
	}
	if o.idleFrames >= 0 {
		r.layouts = cache.New[layoutKey, *Layout](o.idleFrames, o.layoutLimit, nil)
	}
	return r
}

// Get returns a renderer with DefaultConfig for the named font, loading or
// building the font on first use.
func (r *Registry) Get(name string) (Renderer, error) {
	f, err := r.Font(name)
	if err != nil {
		return Renderer{}, err
	}
	return Renderer{font: f, g: r.backend, cfg: DefaultConfig(), layouts: r.layouts}, nil
}

// Font returns the named font, loading or building it on first use.
// Concurrent first requests for one name share a single load.
func (r *Registry) Font(name string) (*Font, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRegistryClosed
	}
	if f, ok := r.fonts[name]; ok {
		r.mu.Unlock()
		return f, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do(name, func() (any, error) {
		r.mu.Lock()
		f, ok := r.fonts[name]
		r.mu.Unlock()
		if ok {
			return f, nil
		}

		f, err := r.load(name)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed {
			return nil, errors.Join(ErrRegistryClosed, f.Release())
		}
		r.fonts[name] = f
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Font), nil
}

// SetFontBytes registers font file contents for name, used instead of
// "<fontDir>/<name>.ttf" when the cache must be built. Fonts already
// loaded are not affected.
func (r *Registry) SetFontBytes(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = data
	return nil
}

// CachePath returns the cache file path for name.
func (r *Registry) CachePath(name string) string {
	return filepath.Join(r.opts.cacheDir, glyphcache.FileName(name, ReferenceResolution))
}

// UpdateScreenDimensions sets the viewport returned by Viewport.
func (r *Registry) UpdateScreenDimensions(width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vp = Viewport{Width: width, Height: height}
}

// Viewport returns the current screen dimensions, to be passed to Draw.
func (r *Registry) Viewport() Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vp
}

// EndFrame evicts layouts unused for more than the configured number of
// frames. Call it once per frame. Returns the number of evicted layouts.
func (r *Registry) EndFrame() int {
	if r.layouts == nil {
		return 0
	}
	n := r.layouts.EndFrame()
	if n > 0 {
		Logger().Debug("sdftext: layouts evicted", "count", n, "cached", r.layouts.Len())
	}
	return n
}

// LayoutStats returns layout cache statistics.
func (r *Registry) LayoutStats() cache.Stats {
	if r.layouts == nil {
		return cache.Stats{}
	}
	return r.layouts.Stats()
}

// Close releases every loaded font. Renderers obtained from the registry
// must not be used afterwards. Close is idempotent.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	fonts := r.fonts
	r.fonts = make(map[string]*Font)
	r.mu.Unlock()

	if r.layouts != nil {
		r.layouts.Clear()
	}
	var errs []error
	for name, f := range fonts {
		if err := f.Release(); err != nil {
			Logger().Warn("sdftext: font release failed", "name", name, "err", err)
			errs = append(errs, fmt.Errorf("sdftext: release %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) load(name string) (*Font, error) {
	path := r.CachePath(name)
	ok, err := glyphcache.Exists(path)
	if err != nil {
		return nil, err
	}

	var c *glyphcache.Cache
	if !ok {
		c, err = r.build(name, path)
	} else {
		Logger().Debug("sdftext: cache hit", "name", name, "path", path)
		start := time.Now()
		c, err = glyphcache.Load(path)
		if err == nil {
			Logger().Info("sdftext: font cache loaded", "name", name, "took", time.Since(start))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("sdftext: font %q: %w", name, err)
	}

	f, err := LoadFont(c, r.backend, r.backend)
	if err != nil {
		return nil, fmt.Errorf("sdftext: font %q: %w", name, err)
	}
	f.name = name
	return f, nil
}

// build rasterizes the font and, unless caching in memory, writes the
// cache file and loads it back.
func (r *Registry) build(name, path string) (*glyphcache.Cache, error) {
	data, err := r.source(name)
	if err != nil {
		return nil, err
	}
	if missing, err := raster.Coverage(data); err == nil && len(missing) > 0 {
		Logger().Warn("sdftext: font lacks glyphs", "name", name, "missing", string(missing))
	}
	rz, err := r.opts.rasterizer(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRasterization, err)
	}

	start := time.Now()
	opts := []glyphcache.BuildOption{
		glyphcache.WithWorkers(r.opts.workers),
		glyphcache.WithLogger(Logger()),
	}
	if r.opts.inMemory {
		c, err := glyphcache.Build(context.Background(), rz, opts...)
		if err == nil {
			Logger().Info("sdftext: font cached in memory", "name", name, "took", time.Since(start))
		}
		return c, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheIO, err)
	}
	if err := glyphcache.BuildFile(context.Background(), rz, path, opts...); err != nil {
		return nil, err
	}
	Logger().Info("sdftext: font cached", "name", name, "path", path, "took", time.Since(start))
	return glyphcache.Load(path)
}

func (r *Registry) source(name string) ([]byte, error) {
	r.mu.Lock()
	data, ok := r.sources[name]
	r.mu.Unlock()
	if ok {
		return data, nil
	}

	path := filepath.Join(r.opts.fontDir, name+".ttf")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFontFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheIO, err)
	}
	return data, nil
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidFontName, name)
	}
	return nil
}
