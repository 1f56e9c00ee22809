// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpusdf

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/sdftext"
)

var (
	// ErrNilCreator is returned when a TextureFactory has no creator.
	ErrNilCreator = errors.New("gpusdf: nil texture creator")

	// ErrTextureSize is returned when pixel data does not match the
	// requested dimensions.
	ErrTextureSize = errors.New("gpusdf: texture data size mismatch")
)

// uploadFunc creates a GPU texture from tightly packed RGBA8 pixels.
type uploadFunc func(width, height int, rgba []byte) (any, error)

// TextureFactory uploads atlases through a gpucontext.TextureCreator.
// Alpha8 data is expanded to white RGBA8 with the distance in alpha.
type TextureFactory struct {
	upload uploadFunc
}

var _ sdftext.TextureFactory = (*TextureFactory)(nil)

// NewTextureFactory returns a factory backed by creator, typically
// gpucontext.TextureDrawer.TextureCreator().
func NewTextureFactory(creator gpucontext.TextureCreator) *TextureFactory {
	if creator == nil {
		return &TextureFactory{}
	}
	return &TextureFactory{
		upload: func(width, height int, rgba []byte) (any, error) {
			return creator.NewTextureFromRGBA(width, height, rgba)
		},
	}
}

// CreateTexture uploads pix. A zero-sized atlas creates a 1x1 transparent
// texture since GPU textures cannot be empty; Size still reports 0x0.
func (f *TextureFactory) CreateTexture(width, height int, pix []byte, format sdftext.PixelFormat) (sdftext.Texture, error) {
	if f.upload == nil {
		return nil, ErrNilCreator
	}
	rgba, err := toRGBA(width, height, pix, format)
	if err != nil {
		return nil, err
	}
	uw, uh := width, height
	if width == 0 || height == 0 {
		uw, uh = 1, 1
		rgba = make([]byte, 4)
	}

	handle, err := f.upload(uw, uh, rgba)
	if err != nil {
		return nil, fmt.Errorf("gpusdf: upload %dx%d texture: %w", uw, uh, err)
	}
	return &Texture{width: width, height: height, handle: handle}, nil
}

func toRGBA(width, height int, pix []byte, format sdftext.PixelFormat) ([]byte, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTextureSize, width, height)
	}
	n := width * height
	switch format {
	case sdftext.FormatAlpha8:
		if len(pix) != n {
			return nil, fmt.Errorf("%w: %dx%d alpha with %d bytes", ErrTextureSize, width, height, len(pix))
		}
		rgba := make([]byte, n*4)
		for i, a := range pix {
			rgba[i*4+0] = 255
			rgba[i*4+1] = 255
			rgba[i*4+2] = 255
			rgba[i*4+3] = a
		}
		return rgba, nil
	case sdftext.FormatRGBA8:
		if len(pix) != n*4 {
			return nil, fmt.Errorf("%w: %dx%d rgba with %d bytes", ErrTextureSize, width, height, len(pix))
		}
		return append([]byte(nil), pix...), nil
	default:
		return nil, fmt.Errorf("gpusdf: unsupported pixel format %v", format)
	}
}

// textureDestroyer matches the Destroy method of gogpu textures.
type textureDestroyer interface {
	Destroy()
}

// Texture wraps a texture returned by the creator.
type Texture struct {
	width, height int
	handle        any
}

// Size returns the atlas dimensions.
func (t *Texture) Size() (int, int) { return t.width, t.height }

// Handle returns the creator's texture, for binding or
// gpucontext.TextureDrawer.DrawTexture.
func (t *Texture) Handle() any { return t.handle }

// Release destroys the GPU texture if it supports it.
func (t *Texture) Release() error {
	if d, ok := t.handle.(textureDestroyer); ok {
		d.Destroy()
	}
	t.handle = nil
	return nil
}
