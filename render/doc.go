// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render holds backend-agnostic handles for GPU resources.
//
// # Resource Wrappers
//
// Mesh and Texture are the handle types the rest of an engine stores. Each
// holds exactly one backend-specific resource (BackendMesh[B] or
// BackendTexture[B]) tagged with the backend it belongs to. The cases a
// wrapper can hold are the backends compiled into the build:
//
//   - Metal: darwin builds without the nometal tag
//   - Vulkan: builds without the novulkan tag (not android or js)
//   - Empty: builds without the noempty tag
//
// # Capability Interface
//
// Each compiled backend has a marker type (Metal, Vulkan, Empty) that
// implements Backend[B]. Code generic over B wraps and unwraps without
// naming a concrete backend:
//
//	func upload[B render.Backend[B]](dev *render.Device[B], m *builder.MeshBuilder) (render.Mesh, error) {
//	    res, err := render.BuildMesh(dev, m)
//	    if err != nil {
//	        return render.Mesh{}, err
//	    }
//	    return render.WrapMesh(res), nil
//	}
//
// Unwrapping checks the wrapper's backend tag and reports false on a
// mismatch; it never panics. DefaultBackend names the highest-priority
// compiled backend (Metal, then Vulkan, then Empty).
//
// # Devices
//
// Device[B] owns a hal device for one backend. OpenDevice[B] opens one from
// the hal registry; NewDevice[B] wraps a device owned by the host
// application. When the backend is only known at run time, Open,
// OpenDefault and OpenFirst return a Session.
//
// # Descriptors
//
// MeshData and TextureData are the backend-independent descriptors a
// loader decodes from disk. The package registers both kinds with the asset
// binding table at init, and Processor[B] builds them into wrappers.
package render
