//go:build (!darwin || nometal) && (novulkan || android || js) && noempty

package backend

// Every backend is disabled by the build tags in use. The undefined name
// below is the compile error reported for this configuration.
var _ = enable_at_least_one_graphics_backend__drop_nometal_novulkan_or_noempty
