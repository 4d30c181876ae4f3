//go:build novulkan || android || js

package backend

const vulkanEnabled = false
