package sdftext

import (
	"errors"
	"fmt"

	"github.com/gogpu/sdftext/glyphcache"
)

// Errors returned by font loading and text rendering.
var (
	// ErrFontFileNotFound is returned when no font source exists for a name.
	ErrFontFileNotFound = errors.New("sdftext: font file not found")

	// ErrUndefinedCodePoint is returned for runes outside the glyph table
	// under FallbackError.
	ErrUndefinedCodePoint = errors.New("sdftext: undefined code point")

	// ErrInvalidSize is returned when a draw size is not a positive number.
	ErrInvalidSize = errors.New("sdftext: invalid text size")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("sdftext: invalid renderer config")

	// ErrInvalidFontName is returned for empty names or names containing
	// path separators.
	ErrInvalidFontName = errors.New("sdftext: invalid font name")

	// ErrRegistryClosed is returned by a Registry after Close.
	ErrRegistryClosed = errors.New("sdftext: registry closed")

	// ErrNoFont is returned by a zero Renderer.
	ErrNoFont = errors.New("sdftext: renderer has no font")

	// ErrNoGraphics is returned by Draw on a Renderer without a Graphics.
	ErrNoGraphics = errors.New("sdftext: renderer has no graphics context")
)

// Cache errors surface unchanged from package glyphcache.
var (
	ErrRasterization = glyphcache.ErrRasterization
	ErrCacheCorrupt  = glyphcache.ErrCacheCorrupt
	ErrCacheIO       = glyphcache.ErrCacheIO
)

// CodePointError reports a rune without a glyph.
type CodePointError struct {
	Rune rune
	// Index is the byte offset of the rune in the drawn or measured text.
	Index int
}

func (e *CodePointError) Error() string {
	return fmt.Sprintf("sdftext: undefined code point %U at byte %d", e.Rune, e.Index)
}

// Is reports whether target is ErrUndefinedCodePoint.
func (e *CodePointError) Is(target error) bool {
	return target == ErrUndefinedCodePoint
}
