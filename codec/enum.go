package codec

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// enum is a gputypes enumeration with a String method.
type enum interface {
	~uint32
	fmt.Stringer
}

// enumTable maps lowercase names to values for every value in [0, last]
// whose name is known.
type enumTable[T enum] map[string]T

func newEnumTable[T enum](last T) enumTable[T] {
	t := make(enumTable[T])
	for v := T(0); v <= last; v++ {
		if name := v.String(); name != "Unknown" {
			t[strings.ToLower(name)] = v
		}
	}
	return t
}

// parse looks a name up case-insensitively. An empty name yields def.
func (t enumTable[T]) parse(name string, def T) (T, error) {
	if name == "" {
		return def, nil
	}
	if v, ok := t[strings.ToLower(name)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %T %q", ErrEnum, zero, name)
}

var (
	vertexFormats  = newEnumTable(gputypes.VertexFormatUnorm1010102)
	stepModes      = newEnumTable(gputypes.VertexStepModeInstance)
	indexFormats   = newEnumTable(gputypes.IndexFormatUint32)
	topologies     = newEnumTable(gputypes.PrimitiveTopologyTriangleStrip)
	textureFormats = newEnumTable(gputypes.TextureFormatASTC12x12UnormSrgb)
	dimensions     = newEnumTable(gputypes.TextureDimension3D)
	addressModes   = newEnumTable(gputypes.AddressModeMirrorRepeat)
	filterModes    = newEnumTable(gputypes.FilterModeLinear)
)
