// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin && !nometal

package render

import (
	// Import Metal backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/metal"
)
