package asset

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync"

	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/codec"
	"github.com/gogpu/gpures/internal/cache"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pipeline errors.
var (
	ErrNoProcessor = errors.New("asset: no processor for asset kind")
	ErrAssetType   = errors.New("asset: asset type mismatch")
)

// Processor builds an asset from a decoded descriptor. The descriptor has
// the binding's Data type and the result must have its Asset type.
type Processor func(ctx context.Context, data any) (any, error)

// Loader holds the processors used to turn descriptors into assets.
type Loader struct {
	mu         sync.RWMutex
	processors map[uuid.UUID]Processor
	workers    int
	decoded    *cache.LRU[decodeKey, any]
}

// decodeKey identifies serialized bytes by content.
type decodeKey struct {
	kind   string
	format codec.Format
	sum    [sha256.Size]byte
}

func hashDecodeKey(k decodeKey) uint64 {
	return binary.LittleEndian.Uint64(k.sum[:8])
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithWorkers limits concurrent decoding in LoadAll. Values below one mean
// GOMAXPROCS.
func WithWorkers(n int) LoaderOption {
	return func(l *Loader) { l.workers = n }
}

// WithDecodeCache keeps up to n decoded descriptors keyed by the digest of
// their source bytes, so sources that are reported again unchanged skip
// decoding. Cached descriptors are shared between loads and processors must
// not modify them. Values below one disable the cache.
func WithDecodeCache(n int) LoaderOption {
	return func(l *Loader) {
		if n < 1 {
			l.decoded = nil
			return
		}
		l.decoded = cache.New[decodeKey, any](n, hashDecodeKey)
	}
}

// NewLoader returns a loader without processors.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{processors: make(map[uuid.UUID]Processor)}
	for _, opt := range opts {
		opt(l)
	}
	if l.workers < 1 {
		l.workers = runtime.GOMAXPROCS(0)
	}
	return l
}

// SetProcessor installs p for the asset kind tagged id, replacing any
// previous processor.
func (l *Loader) SetProcessor(id uuid.UUID, p Processor) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.processors[id] = p
}

// Processor returns the processor for the asset kind tagged id.
func (l *Loader) Processor(id uuid.UUID) (Processor, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.processors[id]
	return p, ok
}

// Workers returns the decode concurrency limit.
func (l *Loader) Workers() int { return l.workers }

// DecodeCacheStats returns the decode cache hit and miss counts. Both are
// zero when the cache is disabled.
func (l *Loader) DecodeCacheStats() (hits, misses uint64) {
	if l.decoded == nil {
		return 0, 0
	}
	s := l.decoded.Stats()
	return s.Hits, s.Misses
}

// Decode decodes src like the package-level Decode, consulting the decode
// cache first when one is configured.
func (l *Loader) Decode(src Source) (any, error) {
	if l.decoded == nil {
		data, _, err := Decode(src)
		return data, err
	}
	key := decodeKey{kind: src.Kind, format: src.Format, sum: sha256.Sum256(src.Data)}
	if data, ok := l.decoded.Get(key); ok {
		gpures.Logger().Debug("asset decode cached", "name", src.Name)
		return data, nil
	}
	data, _, err := Decode(src)
	if err != nil {
		return nil, err
	}
	l.decoded.Add(key, data)
	return data, nil
}

// bindingFor resolves the binding of src and checks it produces A.
func bindingFor[A any](src Source) (Binding, error) {
	b, ok := LookupName(src.Kind)
	if !ok {
		return Binding{}, fmt.Errorf("%w: %q", ErrUnknownKind, src.Kind)
	}
	if want := reflect.TypeFor[A](); b.Asset != want {
		return Binding{}, fmt.Errorf("%w: %s kind produces %s, not %s", ErrAssetType, b.Name, b.Asset, want)
	}
	return b, nil
}

// Decode decodes src into an owned descriptor using its binding. It touches
// no shared state besides the read-only binding table and may run on any
// goroutine.
func Decode(src Source) (any, Binding, error) {
	b, ok := LookupName(src.Kind)
	if !ok {
		return nil, Binding{}, fmt.Errorf("%w: %q", ErrUnknownKind, src.Kind)
	}
	data, err := b.Decode(src.Format, src.Data)
	if err != nil {
		return nil, b, fmt.Errorf("asset: decode %s: %w", src.Name, err)
	}
	return data, b, nil
}

// construct runs the processor for b on data and type-checks the result.
func construct[A any](ctx context.Context, l *Loader, b Binding, name string, data any) (A, error) {
	var zero A
	p, ok := l.Processor(b.ID)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNoProcessor, b.Name)
	}
	out, err := p(ctx, data)
	if err != nil {
		return zero, fmt.Errorf("asset: process %s: %w", name, err)
	}
	a, ok := out.(A)
	if !ok {
		return zero, fmt.Errorf("%w: processor for %s returned %T", ErrAssetType, b.Name, out)
	}
	return a, nil
}

// Load decodes src, builds the asset with the loader's processor for its
// kind and stores it. A is the wrapper type registered for the kind.
func Load[A any](ctx context.Context, l *Loader, s *Storage[A], src Source) (Handle[A], error) {
	b, err := bindingFor[A](src)
	if err != nil {
		return Handle[A]{}, err
	}
	data, err := l.Decode(src)
	if err != nil {
		return Handle[A]{}, err
	}
	a, err := construct[A](ctx, l, b, src.Name, data)
	if err != nil {
		return Handle[A]{}, err
	}
	h := s.Insert(a)
	gpures.Logger().Info("asset loaded", "name", src.Name, "kind", b.Name, "handle", h.String())
	return h, nil
}

// LoadAll loads many sources of one kind. Decoding runs concurrently on up
// to Workers goroutines; construction and insertion then run in order on
// the calling goroutine. A decode failure inserts nothing. A construction
// failure returns the handles inserted before it alongside the error.
func LoadAll[A any](ctx context.Context, l *Loader, s *Storage[A], srcs []Source) ([]Handle[A], error) {
	bindings := make([]Binding, len(srcs))
	for i, src := range srcs {
		b, err := bindingFor[A](src)
		if err != nil {
			return nil, err
		}
		bindings[i] = b
	}

	decoded := make([]any, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, src := range srcs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := l.Decode(src)
			if err != nil {
				return err
			}
			decoded[i] = data
			gpures.Logger().Debug("asset decoded", "name", src.Name, "bytes", len(src.Data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	handles := make([]Handle[A], 0, len(srcs))
	for i, src := range srcs {
		a, err := construct[A](ctx, l, bindings[i], src.Name, decoded[i])
		if err != nil {
			return handles, err
		}
		handles = append(handles, s.Insert(a))
	}
	gpures.Logger().Info("assets loaded", "count", len(handles), "workers", l.workers)
	return handles, nil
}

// Reload rebuilds the asset behind h from src and returns the asset it
// replaced so the caller can release it. h stays valid.
func Reload[A any](ctx context.Context, l *Loader, s *Storage[A], h Handle[A], src Source) (A, error) {
	var zero A
	if !s.Contains(h) {
		return zero, fmt.Errorf("asset: reload %s: stale handle %s", src.Name, h)
	}
	b, err := bindingFor[A](src)
	if err != nil {
		return zero, err
	}
	data, err := l.Decode(src)
	if err != nil {
		return zero, err
	}
	a, err := construct[A](ctx, l, b, src.Name, data)
	if err != nil {
		return zero, err
	}
	old, ok := s.Replace(h, a)
	if !ok {
		return zero, fmt.Errorf("asset: reload %s: stale handle %s", src.Name, h)
	}
	gpures.Logger().Info("asset reloaded", "name", src.Name, "handle", h.String())
	return old, nil
}
