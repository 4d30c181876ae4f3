// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/asset"
	"github.com/gogpu/gpures/backend"
)

// Session is a Device whose backend is chosen at run time. Every
// *Device[B] implements it.
type Session interface {
	// Backend returns the descriptor of the device's backend.
	Backend() backend.Descriptor

	// AdapterName returns the adapter name, or "" for host-owned devices.
	AdapterName() string

	// RegisterProcessors installs mesh and texture processors that build on
	// this device.
	RegisterProcessors(l *asset.Loader)

	// ReleaseMesh destroys the mesh held by w when it belongs to this
	// device's backend.
	ReleaseMesh(w *Mesh) bool

	// ReleaseTexture destroys the texture held by w when it belongs to this
	// device's backend.
	ReleaseTexture(w *Texture) bool

	// Close releases the device.
	Close()
}

// Opener opens a Session for one backend.
type Opener func() (Session, error)

// openers holds one Opener per compiled backend, ranked like the declared
// set.
var openers = gpucontext.NewRegistry[Opener](
	gpucontext.WithPriority(backend.NameMetal, backend.NameVulkan, backend.NameEmpty),
)

// registerOpener publishes the opener of B. Marker init functions call it.
func registerOpener[B Backend[B]]() {
	openers.Register(DescriptorOf[B]().Name, func() Opener {
		return func() (Session, error) {
			dev, err := OpenDevice[B]()
			if err != nil {
				return nil, err
			}
			return dev, nil
		}
	})
}

// Open opens a device for the named backend.
func Open(name string) (Session, error) {
	if _, ok := backend.Lookup(name); !ok {
		return nil, fmt.Errorf("%w: %q", backend.ErrUnknownBackend, name)
	}
	open := openers.Get(name)
	if open == nil {
		return nil, fmt.Errorf("%w: %s is not compiled into this build", ErrBackendUnavailable, name)
	}
	return open()
}

// OpenDefault opens a device for the default backend of this build.
func OpenDefault() (Session, error) {
	d, err := backend.Default()
	if err != nil {
		return nil, err
	}
	return Open(d.Name)
}

// OpenFirst tries every compiled backend in priority order and returns the
// first device that opens. If none does, the error joins every failure.
func OpenFirst() (Session, error) {
	var errs []error
	for _, d := range Cases() {
		s, err := Open(d.Name)
		if err == nil {
			return s, nil
		}
		gpures.Logger().Debug("backend unavailable, trying next", "backend", d.Name, "err", err)
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("render: no backend could be opened: %w", errors.Join(errs...))
}

// Openers returns the names of the backends with a registered opener.
func Openers() []string {
	names := make([]string, 0, len(compiled))
	for _, d := range Cases() {
		if openers.Has(d.Name) {
			names = append(names, d.Name)
		}
	}
	return names
}
