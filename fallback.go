package sdftext

import (
	"unicode"
	"unicode/utf8"

	"github.com/gogpu/sdftext/glyphcache"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func definedRune(r rune) bool {
	return r >= 0 && r < glyphcache.NumGlyphs
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// FoldASCII strips combining marks after canonical decomposition, so that
// "café" becomes "cafe". Runes without an ASCII base are left unchanged.
func FoldASCII(s string) string {
	if isASCII(s) {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// resolve maps text to glyph table indices under the fallback policy.
func (c Config) resolve(text string) ([]rune, error) {
	if isASCII(text) {
		return []rune(text), nil
	}
	if c.Fallback == FallbackError {
		for i, r := range text {
			if !definedRune(r) {
				return nil, &CodePointError{Rune: r, Index: i}
			}
		}
		return []rune(text), nil
	}

	folded := FoldASCII(text)
	out := make([]rune, 0, len(folded))
	for _, r := range folded {
		switch {
		case definedRune(r):
			out = append(out, r)
		case c.Fallback == FallbackSubstitute:
			out = append(out, c.Substitute)
		}
	}
	return out, nil
}
