// Package gpures provides backend-agnostic handles for GPU resources.
//
// # Overview
//
// A rendering engine built on gpures may target several graphics backends
// (Metal, Vulkan, and a no-op Empty backend). Which ones are compiled in is
// decided by build tags. The rest of the engine deals with one handle type
// per asset kind, render.Mesh and render.Texture, while each handle holds a
// resource that belongs to exactly one backend.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/gpures/asset"
//		"github.com/gogpu/gpures/render"
//	)
//
//	// Open a device for the default backend of this build.
//	dev, err := render.OpenDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
//	// Load a serialized mesh description and store the wrapped result.
//	src, err := asset.ReadSource("assets/cube.mesh.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	loader := asset.NewLoader()
//	dev.RegisterProcessors(loader)
//	meshes := asset.NewStorage[render.Mesh]()
//	h, err := asset.Load(ctx, loader, meshes, src)
//
//	// Code that knows its backend unwraps the concrete resource.
//	w, _ := meshes.Get(h)
//	if m, ok := render.UnwrapMesh[render.DefaultBackend](&w); ok {
//		draw(m.VertexBuffers, m.IndexBuffer)
//	}
//
// # Architecture
//
// The module is organized into:
//   - backend: the declared backend set, build-tag flags, default resolution
//   - builder: backend-independent mesh and texture payloads
//   - codec: binary, YAML, TOML and image encodings of payloads
//   - asset: type bindings, handle storage, the load pipeline, file watching
//   - render: resource wrappers, per-backend cases, devices, descriptors
//
// # Build Tags
//
//	nometal    disable the Metal backend (only available on darwin)
//	novulkan   disable the Vulkan backend
//	noempty    disable the no-op backend
//
// At least one backend must remain enabled; otherwise the build fails.
package gpures

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
