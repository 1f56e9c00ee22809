package sdftext

import (
	"fmt"
	"math"
)

// WrapMode selects how lines longer than Wrapping.MaxWidth are broken.
type WrapMode int

const (
	// WrapNone never breaks lines except at '\n'.
	WrapNone WrapMode = iota
	// WrapHard breaks at the last character that fits.
	WrapHard
	// WrapSoft breaks at the last space that fits. Words longer than the
	// line overflow it.
	WrapSoft
	// WrapSoftHard breaks at spaces and falls back to WrapHard for words
	// longer than the line.
	WrapSoftHard
)

// String returns the mode name.
func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "None"
	case WrapHard:
		return "Hard"
	case WrapSoft:
		return "Soft"
	case WrapSoftHard:
		return "SoftHard"
	default:
		return fmt.Sprintf("WrapMode(%d)", int(m))
	}
}

// Wrapping is a line breaking policy.
type Wrapping struct {
	Mode WrapMode
	// MaxWidth is the line width limit in drawing units at the drawn size.
	MaxWidth float64
}

// NoWrap disables wrapping.
func NoWrap() Wrapping { return Wrapping{} }

// HardWrap breaks lines mid-word at maxWidth.
func HardWrap(maxWidth float64) Wrapping { return Wrapping{Mode: WrapHard, MaxWidth: maxWidth} }

// SoftWrap breaks lines at spaces before maxWidth.
func SoftWrap(maxWidth float64) Wrapping { return Wrapping{Mode: WrapSoft, MaxWidth: maxWidth} }

// SoftHardWrap breaks at spaces, and mid-word for words wider than maxWidth.
func SoftHardWrap(maxWidth float64) Wrapping {
	return Wrapping{Mode: WrapSoftHard, MaxWidth: maxWidth}
}

// ScaleMode selects pen positioning precision.
type ScaleMode int

const (
	// ScaleNormal advances the pen by exact glyph advances.
	ScaleNormal ScaleMode = iota
	// ScaleQuality snaps pen advances and line steps to whole screen
	// pixels, which keeps small text crisp.
	ScaleQuality
)

// String returns the mode name.
func (m ScaleMode) String() string {
	switch m {
	case ScaleNormal:
		return "Normal"
	case ScaleQuality:
		return "Quality"
	default:
		return fmt.Sprintf("ScaleMode(%d)", int(m))
	}
}

// FallbackPolicy decides what happens to runes outside the glyph table.
type FallbackPolicy int

const (
	// FallbackSubstitute folds runes to ASCII where possible and replaces
	// the rest with Config.Substitute.
	FallbackSubstitute FallbackPolicy = iota
	// FallbackSkip folds runes to ASCII where possible and drops the rest.
	FallbackSkip
	// FallbackError fails the whole call with a *CodePointError.
	FallbackError
)

// String returns the policy name.
func (p FallbackPolicy) String() string {
	switch p {
	case FallbackSubstitute:
		return "Substitute"
	case FallbackSkip:
		return "Skip"
	case FallbackError:
		return "Error"
	default:
		return fmt.Sprintf("FallbackPolicy(%d)", int(p))
	}
}

// Config is the immutable configuration of a Renderer.
type Config struct {
	Wrapping  Wrapping
	ScaleMode ScaleMode

	// TabLength is the width of '\t' in spaces.
	TabLength int

	// LineSpacing multiplies the height of each finished line.
	LineSpacing float64

	Fallback FallbackPolicy
	// Substitute replaces undefined runes under FallbackSubstitute.
	Substitute rune

	// Align shifts each line left by this fraction of its width:
	// 0 is left aligned, 0.5 centered on x, 1 right aligned.
	Align float64
}

// DefaultConfig returns the default renderer configuration.
func DefaultConfig() Config {
	return Config{
		TabLength:   4,
		LineSpacing: 1,
		Fallback:    FallbackSubstitute,
		Substitute:  '?',
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Wrapping.Mode < WrapNone || c.Wrapping.Mode > WrapSoftHard:
		return fmt.Errorf("%w: wrap mode %v", ErrInvalidConfig, c.Wrapping.Mode)
	case c.Wrapping.Mode != WrapNone && !(c.Wrapping.MaxWidth > 0):
		return fmt.Errorf("%w: max width %v", ErrInvalidConfig, c.Wrapping.MaxWidth)
	case c.ScaleMode != ScaleNormal && c.ScaleMode != ScaleQuality:
		return fmt.Errorf("%w: scale mode %v", ErrInvalidConfig, c.ScaleMode)
	case c.TabLength < 0:
		return fmt.Errorf("%w: tab length %d", ErrInvalidConfig, c.TabLength)
	case !(c.LineSpacing > 0) || math.IsInf(c.LineSpacing, 0):
		return fmt.Errorf("%w: line spacing %v", ErrInvalidConfig, c.LineSpacing)
	case c.Fallback < FallbackSubstitute || c.Fallback > FallbackError:
		return fmt.Errorf("%w: fallback %v", ErrInvalidConfig, c.Fallback)
	case c.Fallback == FallbackSubstitute && !definedRune(c.Substitute):
		return fmt.Errorf("%w: substitute %U", ErrInvalidConfig, c.Substitute)
	case !(c.Align >= 0 && c.Align <= 1):
		return fmt.Errorf("%w: align %v", ErrInvalidConfig, c.Align)
	}
	return nil
}
