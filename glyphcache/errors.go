package glyphcache

import (
	"errors"
	"fmt"
)

// Sentinel errors for glyphcache package.
var (
	// ErrRasterization is returned when the rasterizer fails for a code point.
	ErrRasterization = errors.New("glyphcache: rasterization failed")

	// ErrCacheCorrupt is returned when a cache file does not match the layout.
	ErrCacheCorrupt = errors.New("glyphcache: corrupt cache")

	// ErrCacheIO is returned when a cache file cannot be read or written.
	ErrCacheIO = errors.New("glyphcache: cache i/o failed")
)

// RasterizeError reports the code point a rasterizer failed on.
type RasterizeError struct {
	Rune rune
	Err  error
}

func (e *RasterizeError) Error() string {
	return fmt.Sprintf("glyphcache: rasterize %U: %v", e.Rune, e.Err)
}

// Unwrap returns the underlying rasterizer error.
func (e *RasterizeError) Unwrap() error { return e.Err }

// Is reports ErrRasterization as a match.
func (e *RasterizeError) Is(target error) bool { return target == ErrRasterization }

// CorruptError describes why a cache failed to decode.
type CorruptError struct {
	Reason string
}

func (e *CorruptError) Error() string {
	return "glyphcache: corrupt cache: " + e.Reason
}

// Is reports ErrCacheCorrupt as a match.
func (e *CorruptError) Is(target error) bool { return target == ErrCacheCorrupt }

func corruptf(format string, args ...any) error {
	return &CorruptError{Reason: fmt.Sprintf(format, args...)}
}
