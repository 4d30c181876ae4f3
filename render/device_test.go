// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(js && wasm)

package render

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/backend"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice opens a device on the hal no-op backend. No GPU is
// needed; every resource call succeeds and buffers keep their bytes.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		t.Fatal("no noop adapters")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// newTestDevice wraps a no-op hal device as a device of the default
// backend. Resources built on it carry the default backend's tag.
func newTestDevice(t *testing.T) *Device[DefaultBackend] {
	t.Helper()
	device, queue := createNoopDevice(t)
	dev, err := NewDevice[DefaultBackend](device, queue)
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	t.Cleanup(dev.Close)
	return dev
}

func TestNewDeviceRequiresDeviceAndQueue(t *testing.T) {
	device, queue := createNoopDevice(t)
	if _, err := NewDevice[DefaultBackend](nil, queue); err == nil {
		t.Error("NewDevice(nil, queue) should fail")
	}
	if _, err := NewDevice[DefaultBackend](device, nil); err == nil {
		t.Error("NewDevice(device, nil) should fail")
	}
}

func TestDeviceBackend(t *testing.T) {
	dev := newTestDevice(t)
	want, err := backend.Default()
	if err != nil {
		t.Fatalf("backend.Default() error = %v", err)
	}
	if got := dev.Backend(); got != want {
		t.Errorf("Backend() = %v, want %v", got, want)
	}
	if dev.AdapterName() != "" {
		t.Errorf("AdapterName() = %q, want empty for a host-owned device", dev.AdapterName())
	}
	if dev.HalDevice() == nil || dev.HalQueue() == nil {
		t.Error("HalDevice()/HalQueue() should return the wrapped objects")
	}
}

func TestDeviceCloseIdempotent(t *testing.T) {
	dev := newTestDevice(t)
	dev.Close()
	dev.Close()
	if !dev.Closed() {
		t.Error("Closed() = false after Close")
	}

	_, err := BuildMesh(dev, testMesh())
	if !errors.Is(err, ErrDeviceClosed) {
		t.Errorf("BuildMesh() on closed device error = %v, want ErrDeviceClosed", err)
	}
	_, err = BuildTexture(dev, testTexture())
	if !errors.Is(err, ErrDeviceClosed) {
		t.Errorf("BuildTexture() on closed device error = %v, want ErrDeviceClosed", err)
	}
}

func TestDeviceDestroyNil(t *testing.T) {
	dev := newTestDevice(t)
	dev.DestroyMesh(nil)
	dev.DestroyTexture(nil)
}

func TestReleaseZeroWrapper(t *testing.T) {
	dev := newTestDevice(t)
	if dev.ReleaseMesh(&Mesh{}) {
		t.Error("ReleaseMesh(zero) = true, want false")
	}
	if dev.ReleaseTexture(nil) {
		t.Error("ReleaseTexture(nil) = true, want false")
	}
}

func TestReleaseBuiltResources(t *testing.T) {
	dev := newTestDevice(t)

	m, err := BuildMesh(dev, testMesh())
	if err != nil {
		t.Fatalf("BuildMesh() error = %v", err)
	}
	w := WrapMesh(m)
	if !dev.ReleaseMesh(&w) {
		t.Fatal("ReleaseMesh() = false for a mesh of the device's backend")
	}
	if m.VertexBuffers != nil || m.IndexBuffer != nil {
		t.Error("ReleaseMesh() left buffers on the resource")
	}

	tex, err := BuildTexture(dev, testTexture())
	if err != nil {
		t.Fatalf("BuildTexture() error = %v", err)
	}
	tw := WrapTexture(tex)
	if !dev.ReleaseTexture(&tw) {
		t.Fatal("ReleaseTexture() = false for a texture of the device's backend")
	}
	if tex.Texture != nil || tex.View != nil || tex.Sampler != nil {
		t.Error("ReleaseTexture() left objects on the resource")
	}
}

func TestSessionInterface(t *testing.T) {
	var s Session = newTestDevice(t)
	if s.Backend().Name != DescriptorOf[DefaultBackend]().Name {
		t.Errorf("Session.Backend() = %v", s.Backend())
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("dx12")
	if !errors.Is(err, backend.ErrUnknownBackend) {
		t.Errorf("Open(dx12) error = %v, want ErrUnknownBackend", err)
	}
}

func TestOpenDisabledBackend(t *testing.T) {
	for _, d := range backend.Declared() {
		if d.Enabled {
			continue
		}
		t.Run(d.Name, func(t *testing.T) {
			s, err := Open(d.Name)
			if !errors.Is(err, ErrBackendUnavailable) {
				t.Errorf("Open(%q) error = %v, want ErrBackendUnavailable", d.Name, err)
			}
			if s != nil {
				t.Errorf("Open(%q) returned a session for a disabled backend", d.Name)
			}
		})
	}
}

func TestHalLoggerFollowsSetLogger(t *testing.T) {
	orig := gpures.Logger()
	t.Cleanup(func() { gpures.SetLogger(orig) })

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	gpures.SetLogger(custom)
	if hal.Logger() != custom {
		t.Error("hal.Logger() does not follow gpures.SetLogger")
	}
}
