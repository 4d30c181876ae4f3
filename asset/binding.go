package asset

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/gogpu/gpures/codec"
	"github.com/google/uuid"
)

// Binding errors.
var (
	ErrConflictingBinding = errors.New("asset: conflicting type binding")
	ErrInvalidBinding     = errors.New("asset: invalid type binding")
	ErrUnknownKind        = errors.New("asset: unknown asset kind")
)

// DecodeFunc decodes serialized bytes into an owned descriptor value.
type DecodeFunc func(f codec.Format, raw []byte) (any, error)

// Registration describes one asset kind.
type Registration struct {
	// ID is the identity tag of the asset (wrapper) type.
	ID uuid.UUID
	// DataID is the identity tag of the descriptor type.
	DataID uuid.UUID
	// Name is the short kind name used in file names ("mesh").
	Name string
	// Decode produces a descriptor of the registered data type.
	Decode DecodeFunc
}

// Binding is a registered asset kind.
type Binding struct {
	ID     uuid.UUID
	DataID uuid.UUID
	Name   string
	Data   reflect.Type
	Asset  reflect.Type
	Decode DecodeFunc
}

func (b Binding) String() string {
	return fmt.Sprintf("%s (%s -> %s, %s)", b.Name, b.Data, b.Asset, b.ID)
}

// same reports whether two bindings describe the same triple.
func (b Binding) same(o Binding) bool {
	return b.ID == o.ID && b.DataID == o.DataID && b.Name == o.Name &&
		b.Data == o.Data && b.Asset == o.Asset
}

var (
	bindingsMu sync.RWMutex
	byID       = map[uuid.UUID]Binding{}
	byDataID   = map[uuid.UUID]Binding{}
	byName     = map[string]Binding{}
)

// Register binds descriptor type D and asset type A to the identity tags in
// r. Registering the same triple again is a no-op. A tag or name already
// bound to something else yields ErrConflictingBinding and leaves the table
// unchanged.
//
// Register is meant to be called from init functions.
func Register[D, A any](r Registration) error {
	b := Binding{
		ID:     r.ID,
		DataID: r.DataID,
		Name:   r.Name,
		Data:   reflect.TypeFor[D](),
		Asset:  reflect.TypeFor[A](),
		Decode: r.Decode,
	}
	if b.ID == uuid.Nil || b.DataID == uuid.Nil || b.Name == "" || b.Decode == nil {
		return fmt.Errorf("%w: %s needs both tags, a name and a decoder", ErrInvalidBinding, b)
	}
	if b.ID == b.DataID {
		return fmt.Errorf("%w: %s uses one tag for both types", ErrInvalidBinding, b)
	}

	bindingsMu.Lock()
	defer bindingsMu.Unlock()

	existing, found := byID[b.ID]
	if found && existing.same(b) {
		return nil
	}
	for _, prev := range []struct {
		ok bool
		b  Binding
		on string
	}{
		{found, existing, "asset tag " + b.ID.String()},
		{has(byID, b.DataID), byID[b.DataID], "data tag " + b.DataID.String()},
		{has(byDataID, b.DataID), byDataID[b.DataID], "data tag " + b.DataID.String()},
		{has(byDataID, b.ID), byDataID[b.ID], "asset tag " + b.ID.String()},
		{has(byName, b.Name), byName[b.Name], "name " + b.Name},
	} {
		if prev.ok {
			return fmt.Errorf("%w: %s already bound to %s", ErrConflictingBinding, prev.on, prev.b)
		}
	}

	byID[b.ID] = b
	byDataID[b.DataID] = b
	byName[b.Name] = b
	return nil
}

func has[K comparable](m map[K]Binding, k K) bool {
	_, ok := m[k]
	return ok
}

// Lookup returns the binding whose asset tag is id.
func Lookup(id uuid.UUID) (Binding, bool) {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()
	b, ok := byID[id]
	return b, ok
}

// LookupData returns the binding whose descriptor tag is id.
func LookupData(id uuid.UUID) (Binding, bool) {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()
	b, ok := byDataID[id]
	return b, ok
}

// LookupName returns the binding registered under a kind name.
func LookupName(name string) (Binding, bool) {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()
	b, ok := byName[name]
	return b, ok
}

// Bindings returns every registered binding ordered by name.
func Bindings() []Binding {
	bindingsMu.RLock()
	out := make([]Binding, 0, len(byID))
	for _, b := range byID {
		out = append(out, b)
	}
	bindingsMu.RUnlock()
	slices.SortFunc(out, func(a, b Binding) int { return cmp.Compare(a.Name, b.Name) })
	return out
}
