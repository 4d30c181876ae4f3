// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !noempty && !(js && wasm)

package render

import (
	// Import the no-op backend so it registers via init(). It has no
	// js/wasm build, where opening an Empty device reports
	// ErrBackendUnavailable instead.
	_ "github.com/gogpu/wgpu/hal/noop"
)
