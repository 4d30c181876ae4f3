package builder

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
)

// PackVertices encodes a slice of fixed-size vertex values as little-endian
// bytes, the layout GPU vertex buffers expect. T must be a fixed-size type
// (numbers, arrays and structs of them) without padding.
func PackVertices[T any](vertices []T) ([]byte, error) {
	data, err := binary.Append(nil, binary.LittleEndian, vertices)
	if err != nil {
		return nil, fmt.Errorf("builder: pack vertices: %w", err)
	}
	return data, nil
}

// Uint16Indices encodes 16-bit indices as little-endian bytes.
func Uint16Indices(indices []uint16) []byte {
	out := make([]byte, 0, len(indices)*2)
	for _, i := range indices {
		out = binary.LittleEndian.AppendUint16(out, i)
	}
	return out
}

// Uint32Indices encodes 32-bit indices as little-endian bytes.
func Uint32Indices(indices []uint32) []byte {
	out := make([]byte, 0, len(indices)*4)
	for _, i := range indices {
		out = binary.LittleEndian.AppendUint32(out, i)
	}
	return out
}

// InterleavedLayout returns a per-vertex layout with one attribute per
// format, packed back to back at consecutive shader locations starting at 0.
func InterleavedLayout(formats ...gputypes.VertexFormat) gputypes.VertexBufferLayout {
	layout := gputypes.VertexBufferLayout{StepMode: gputypes.VertexStepModeVertex}
	for i, f := range formats {
		layout.Attributes = append(layout.Attributes, gputypes.VertexAttribute{
			Format:         f,
			Offset:         layout.ArrayStride,
			ShaderLocation: uint32(i),
		})
		layout.ArrayStride += f.Size()
	}
	return layout
}
