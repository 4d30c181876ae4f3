// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(js && wasm)

package render

import (
	"github.com/gogpu/gpures"
	"github.com/gogpu/wgpu/hal"
)

// The device layer logs through the same logger as the rest of gpures.
func init() {
	gpures.AddLoggerSink(hal.SetLogger)
}
