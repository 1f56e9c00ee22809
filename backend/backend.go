package backend

import (
	"errors"

	"github.com/gogpu/sdftext"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU backend drawing into an
	// image.RGBA (package backend/software).
	BackendSoftware = "software"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrInvalidSize is returned by factories for non-positive target sizes.
	ErrInvalidSize = errors.New("backend: invalid target size")
)

// Factory creates a backend with a render target of the given size.
type Factory func(width, height int) (sdftext.Backend, error)
