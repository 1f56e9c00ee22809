// Package backend selects an sdftext.Backend implementation by name.
//
// Backends register a Factory from an init function, so importing the
// implementing package is enough to make it available:
//
//	import _ "github.com/gogpu/sdftext/backend/software"
//
//	b, err := backend.Get(backend.BackendSoftware, 800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//	reg := sdftext.NewRegistry(b)
//
// # Available Backends
//
//   - "software": CPU SDF shading into an image.RGBA (backend/software)
package backend
