package sdftext

// splitLines breaks text at '\n' and then wraps each line under w.
// advance returns the glyph-space width of a rune; limit is in glyph space.
// The result always holds at least one (possibly empty) line.
func splitLines(text []rune, w WrapMode, limit float64, advance func(rune) float64) [][]rune {
	var lines [][]rune
	start := 0
	for i, r := range text {
		if r == '\n' {
			lines = wrapLine(lines, text[start:i], w, limit, advance)
			start = i + 1
		}
	}
	return wrapLine(lines, text[start:], w, limit, advance)
}

// wrapLine appends the wrapped pieces of one explicit line to dst. Spaces
// and tabs are break candidates and are dropped at a break. An empty line stays one empty line.
func wrapLine(dst [][]rune, line []rune, mode WrapMode, limit float64, advance func(rune) float64) [][]rune {
	if mode == WrapNone || len(line) == 0 {
		return append(dst, line)
	}

	for len(line) > 0 {
		fit, lastSpace := fitRunes(line, limit, advance)
		if fit == len(line) {
			return append(dst, line)
		}

		if isBlank(line[fit]) {
			dst = append(dst, trimSpaceRight(line[:fit]))
			line = trimSpaceLeft(line[fit:])
			continue
		}

		if mode != WrapHard && lastSpace >= 0 {
			if head := trimSpaceRight(line[:lastSpace]); len(head) > 0 {
				dst = append(dst, head)
				line = trimSpaceLeft(line[lastSpace+1:])
				continue
			}
		}

		if mode == WrapSoft {
			// The word overflows; break at the next space instead.
			end := fit
			for end < len(line) && !isBlank(line[end]) {
				end++
			}
			dst = append(dst, line[:end])
			line = trimSpaceLeft(line[end:])
			continue
		}

		dst = append(dst, trimSpaceRight(line[:fit]))
		line = trimSpaceLeft(line[fit:])
	}
	return dst
}

// fitRunes returns how many leading runes fit within limit, at least one,
// and the index of the last blank among them (-1 if none).
func fitRunes(line []rune, limit float64, advance func(rune) float64) (fit, lastSpace int) {
	lastSpace = -1
	width := 0.0
	for fit < len(line) {
		w := advance(line[fit])
		if fit > 0 && width+w > limit {
			break
		}
		if isBlank(line[fit]) {
			lastSpace = fit
		}
		width += w
		fit++
	}
	return fit, lastSpace
}

func trimSpaceLeft(s []rune) []rune {
	for len(s) > 0 && isBlank(s[0]) {
		s = s[1:]
	}
	return s
}

func trimSpaceRight(s []rune) []rune {
	for len(s) > 0 && isBlank(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}

func isBlank(r rune) bool { return r == ' ' || r == '\t' }
