package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Common backend errors.
var (
	// ErrNoBackendEnabled is returned when a backend set has no enabled entry.
	ErrNoBackendEnabled = errors.New("backend: no graphics backend enabled")

	// ErrUnknownBackend is returned when a name does not match any declared backend.
	ErrUnknownBackend = errors.New("backend: unknown backend")
)

// Backend name constants.
const (
	// NameMetal is the name of the Metal backend (macOS, iOS).
	NameMetal = "metal"
	// NameVulkan is the name of the Vulkan backend.
	NameVulkan = "vulkan"
	// NameEmpty is the name of the no-op backend used for testing and headless runs.
	NameEmpty = "empty"
)

// Descriptor describes one candidate backend.
//
// Descriptors are values; the declared set is never mutated and every
// accessor in this package returns copies.
type Descriptor struct {
	// Name is the backend identifier (e.g., "metal", "vulkan").
	Name string

	// API is the graphics API the backend drives.
	API gputypes.Backend

	// Enabled reports whether the backend is compiled into this build.
	Enabled bool

	// Priority ranks the backend for default selection. Lower wins.
	Priority int
}

// String returns the backend name.
func (d Descriptor) String() string {
	return d.Name
}

// IsZero reports whether d is the zero Descriptor.
func (d Descriptor) IsZero() bool {
	return d == Descriptor{}
}

// configError wraps ErrNoBackendEnabled with the action needed to fix it.
func configError(set []Descriptor) error {
	names := make([]string, 0, len(set))
	for _, d := range set {
		names = append(names, d.Name)
	}
	return fmt.Errorf("%w: enable at least one of %v (remove the matching no<name> build tag)",
		ErrNoBackendEnabled, names)
}
