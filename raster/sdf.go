package raster

import "math"

// edgeValue is the distance field value on the glyph outline.
const edgeValue = 128

// inf marks pixels with no source in the distance transform.
const inf = 1e20

// distanceField converts a w×h coverage mask into a (w+2·spread)×(h+2·spread)
// signed distance field. Partially covered pixels contribute a sub-pixel
// offset so that antialiased edges land between pixels.
func distanceField(coverage []byte, w, h, spread int) []byte {
	pw, ph := w+2*spread, h+2*spread
	n := pw * ph
	if n == 0 {
		return nil
	}

	// outer: squared distance to the nearest inside pixel.
	// inner: squared distance to the nearest outside pixel.
	outer := make([]float64, n)
	inner := make([]float64, n)
	for i := range outer {
		outer[i] = inf
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := float64(coverage[y*w+x]) / 255
			i := (y+spread)*pw + x + spread
			switch {
			case a >= 1:
				outer[i], inner[i] = 0, inf
			case a <= 0:
				outer[i], inner[i] = inf, 0
			default:
				d := 0.5 - a
				outer[i] = math.Pow(math.Max(0, d), 2)
				inner[i] = math.Pow(math.Max(0, -d), 2)
			}
		}
	}

	t := newTransform(max(pw, ph))
	t.apply(outer, pw, ph)
	t.apply(inner, pw, ph)

	out := make([]byte, n)
	scale := float64(edgeValue) / float64(spread)
	for i := range out {
		d := math.Sqrt(outer[i]) - math.Sqrt(inner[i])
		v := edgeValue - d*scale
		out[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
	}
	return out
}

// transform holds scratch buffers for the 1D distance transform
// (Felzenszwalb and Huttenlocher, lower envelope of parabolas).
type transform struct {
	f []float64
	z []float64
	v []int
}

func newTransform(size int) *transform {
	return &transform{
		f: make([]float64, size),
		z: make([]float64, size+1),
		v: make([]int, size),
	}
}

// apply replaces grid values with squared Euclidean distances, columns first.
func (t *transform) apply(grid []float64, w, h int) {
	for x := 0; x < w; x++ {
		t.line(grid, x, w, h)
	}
	for y := 0; y < h; y++ {
		t.line(grid, y*w, 1, w)
	}
}

func (t *transform) line(grid []float64, offset, stride, length int) {
	f, z, v := t.f, t.z, t.v
	v[0] = 0
	z[0] = -inf
	z[1] = inf
	f[0] = grid[offset]

	k := 0
	for q := 1; q < length; q++ {
		f[q] = grid[offset+q*stride]
		q2 := float64(q * q)
		var s float64
		for {
			r := v[k]
			// f[q]-f[r] first keeps inf-inf exact.
			s = (f[q] - f[r] + q2 - float64(r*r)) / float64(q-r) / 2
			if s > z[k] {
				break
			}
			k--
			if k < 0 {
				break
			}
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = inf
	}

	k = 0
	for q := 0; q < length; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		r := v[k]
		qr := float64(q - r)
		grid[offset+q*stride] = f[r] + qr*qr
	}
}
