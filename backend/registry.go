package backend

import (
	"slices"
	"sync"

	"github.com/gogpu/gputypes"
)

// declared holds every candidate backend in priority order (first wins).
// Metal > Vulkan > Empty (native APIs first, the no-op backend is the fallback).
var declared = []Descriptor{
	{Name: NameMetal, API: gputypes.BackendMetal, Enabled: metalEnabled, Priority: 0},
	{Name: NameVulkan, API: gputypes.BackendVulkan, Enabled: vulkanEnabled, Priority: 1},
	{Name: NameEmpty, API: gputypes.BackendEmpty, Enabled: emptyEnabled, Priority: 2},
}

// Declared returns every candidate backend, enabled or not, in priority order.
func Declared() []Descriptor {
	return slices.Clone(declared)
}

// Enabled returns the backends compiled into this build in priority order.
func Enabled() []Descriptor {
	return Cases(declared)
}

// IsEnabled checks if the backend with the given name is compiled into this build.
func IsEnabled(name string) bool {
	d, ok := Lookup(name)
	return ok && d.Enabled
}

// Lookup returns the declared backend with the given name.
func Lookup(name string) (Descriptor, bool) {
	for _, d := range declared {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// LookupAPI returns the declared backend driving the given graphics API.
func LookupAPI(api gputypes.Backend) (Descriptor, bool) {
	for _, d := range declared {
		if d.API == api {
			return d, true
		}
	}
	return Descriptor{}, false
}

// defaultOnce resolves the compiled set exactly once.
var defaultOnce = sync.OnceValues(func() (Descriptor, error) {
	return ResolveDefault(declared)
})

// Default returns the highest-priority backend enabled in this build.
//
// The result is computed once and shared; it never changes for the life of
// the process. The zero-backend case is rejected at compile time, so the
// error is only reachable if the declared set is edited inconsistently.
func Default() (Descriptor, error) {
	return defaultOnce()
}
