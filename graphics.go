package sdftext

// PixelFormat describes texture pixel data handed to a TextureFactory.
type PixelFormat int

const (
	// FormatAlpha8 is one byte per pixel. Glyph atlases use it.
	FormatAlpha8 PixelFormat = iota
	// FormatRGBA8 is four bytes per pixel, non-premultiplied.
	FormatRGBA8
)

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case FormatAlpha8:
		return "Alpha8"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}

// Texture is a backend texture handle.
type Texture interface {
	Size() (width, height int)
}

// TextureFactory uploads pixel data. A zero-sized texture is valid.
type TextureFactory interface {
	CreateTexture(width, height int, pix []byte, format PixelFormat) (Texture, error)
}

// Shader is a compiled SDF text program.
type Shader interface {
	Bind()
	Unbind()
	SetUniform(name string, values ...float32)
}

// ShaderFactory provides the SDF text shader.
type ShaderFactory interface {
	SDFShader() (Shader, error)
}

// Quad is one textured glyph rectangle. Positions are in the coordinate
// space of the current transform, UVs are normalized atlas coordinates.
type Quad struct {
	X0, Y0, X1, Y1 float64
	U0, V0, U1, V1 float64
	Color          RGBA
}

// Graphics is the rendering context text is drawn into.
type Graphics interface {
	// ActiveTransform returns the current projection, the product of all
	// pushed transforms.
	ActiveTransform() Matrix
	PushTransform(m Matrix)
	PopTransform()

	BindTexture(t Texture)
	UnbindTexture()

	// SetBlending enables or disables alpha blending and returns the
	// previous setting.
	SetBlending(enabled bool) bool

	DrawQuad(q Quad)
}

// Backend bundles the collaborators a Registry needs.
type Backend interface {
	Graphics
	TextureFactory
	ShaderFactory
}

// Releaser is implemented by textures and shaders that hold resources.
type Releaser interface {
	Release() error
}

// Viewport is the size of the render target in pixels.
type Viewport struct {
	Width, Height float64
}
