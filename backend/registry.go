package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/sdftext"
)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for Default (first registered wins).
	backendPriority = []string{BackendSoftware}
)

// Register registers a backend factory under name, replacing any previous
// registration. It is typically called from init functions.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend. This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether a backend is registered under name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get creates the named backend with a width×height target.
func Get(name string, width, height int) (sdftext.Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory(width, height)
}

// Default creates the highest priority registered backend, falling back to
// the first name in sorted order.
func Default(width, height int) (sdftext.Backend, error) {
	for _, name := range backendPriority {
		if IsRegistered(name) {
			return Get(name, width, height)
		}
	}
	if names := Available(); len(names) > 0 {
		return Get(names[0], width, height)
	}
	return nil, ErrBackendNotAvailable
}
