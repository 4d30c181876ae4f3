// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build (!darwin || nometal) && (novulkan || android || js) && !noempty

package render

// DefaultBackend is the highest-priority backend compiled into this build.
type DefaultBackend = Empty
