// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/backend"
	"github.com/gogpu/wgpu/hal"
)

// Device errors.
var (
	// ErrBackendUnavailable is returned when hal has no implementation
	// registered for the requested backend on this platform.
	ErrBackendUnavailable = errors.New("render: backend not available")

	// ErrNoAdapter is returned when a backend enumerates no adapters.
	ErrNoAdapter = errors.New("render: no GPU adapters found")

	// ErrDeviceClosed is returned by operations on a closed Device.
	ErrDeviceClosed = errors.New("render: device closed")
)

// Device is a hal device of backend B. Resources built on it are
// BackendMesh[B] and BackendTexture[B] values.
//
// Resource construction and destruction are safe for concurrent use; the
// device serializes them internally.
type Device[B Backend[B]] struct {
	mu sync.Mutex

	device   hal.Device
	queue    hal.Queue
	instance hal.Instance // nil when the host owns the device
	adapter  gputypes.AdapterInfo
	external bool
	closed   bool
}

// OpenDevice creates an instance of backend B, picks an adapter (discrete or
// integrated GPUs first) and opens a device on it.
func OpenDevice[B Backend[B]]() (*Device[B], error) {
	desc := DescriptorOf[B]()
	hb, ok := hal.GetBackend(desc.API)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, desc.Name)
	}
	instance, err := hb.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("render: create %s instance: %w", desc.Name, err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: %s", ErrNoAdapter, desc.Name)
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("render: open %s device: %w", desc.Name, err)
	}

	gpures.Logger().Info("device opened", "backend", desc.Name, "adapter", selected.Info.Name)
	return &Device[B]{
		device:   openDev.Device,
		queue:    openDev.Queue,
		instance: instance,
		adapter:  selected.Info,
	}, nil
}

// NewDevice wraps a device and queue owned by the host application. Close
// on the result does not destroy them.
func NewDevice[B Backend[B]](device hal.Device, queue hal.Queue) (*Device[B], error) {
	if device == nil || queue == nil {
		return nil, errors.New("render: NewDevice needs a device and a queue")
	}
	return &Device[B]{device: device, queue: queue, external: true}, nil
}

// Backend returns the descriptor of B.
func (d *Device[B]) Backend() backend.Descriptor {
	return DescriptorOf[B]()
}

// AdapterName returns the name of the adapter the device was opened on, or
// "" for a host-owned device.
func (d *Device[B]) AdapterName() string {
	return d.adapter.Name
}

// HalDevice returns the underlying hal device.
func (d *Device[B]) HalDevice() hal.Device { return d.device }

// HalQueue returns the underlying hal queue.
func (d *Device[B]) HalQueue() hal.Queue { return d.queue }

// Close waits for the device to go idle and releases it. Host-owned
// devices are left intact. Close is idempotent.
func (d *Device[B]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	if d.external {
		return
	}
	if err := d.device.WaitIdle(); err != nil {
		gpures.Logger().Warn("device wait idle failed", "backend", d.Backend().Name, "err", err)
	}
	d.device.Destroy()
	if d.instance != nil {
		d.instance.Destroy()
	}
	gpures.Logger().Info("device closed", "backend", d.Backend().Name)
}

// Closed reports whether Close has been called.
func (d *Device[B]) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// DestroyMesh releases the buffers of m. It is a no-op for nil m or on a
// closed device.
func (d *Device[B]) DestroyMesh(m *BackendMesh[B]) {
	if m == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.destroyBuffers(m)
}

// DestroyTexture releases the sampler, view and texture of t. It is a no-op
// for nil t or on a closed device.
func (d *Device[B]) DestroyTexture(t *BackendTexture[B]) {
	if t == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.destroyTextureParts(t)
}

// ReleaseMesh destroys the mesh held by w when it belongs to B and reports
// whether it did.
func (d *Device[B]) ReleaseMesh(w *Mesh) bool {
	m, ok := UnwrapMesh[B](w)
	if !ok {
		return false
	}
	d.DestroyMesh(m)
	return true
}

// ReleaseTexture destroys the texture held by w when it belongs to B and
// reports whether it did.
func (d *Device[B]) ReleaseTexture(w *Texture) bool {
	t, ok := UnwrapTexture[B](w)
	if !ok {
		return false
	}
	d.DestroyTexture(t)
	return true
}

var _ Session = (*Device[DefaultBackend])(nil)
