package builder

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/jinzhu/copier"
)

// VertexStream is one vertex buffer: raw bytes laid out as described by Layout.
type VertexStream struct {
	Layout gputypes.VertexBufferLayout
	Data   []byte
}

// perVertex reports whether the stream advances once per vertex.
// An undefined step mode is treated as per-vertex.
func (s VertexStream) perVertex() bool {
	return s.Layout.StepMode == gputypes.VertexStepModeUndefined ||
		s.Layout.StepMode == gputypes.VertexStepModeVertex
}

// Count returns the number of elements (vertices or instances) in the stream.
func (s VertexStream) Count() uint32 {
	if s.Layout.ArrayStride == 0 {
		return 0
	}
	return uint32(uint64(len(s.Data)) / s.Layout.ArrayStride)
}

// IndexStream is the optional index buffer of a mesh.
type IndexStream struct {
	Format gputypes.IndexFormat
	Data   []byte
}

// Count returns the number of indices in the stream.
func (s IndexStream) Count() uint32 {
	size := s.Format.Size()
	if size == 0 {
		return 0
	}
	return uint32(len(s.Data)) / size
}

// MeshBuilder is the backend-independent description of a mesh.
type MeshBuilder struct {
	Label    string
	Vertices []VertexStream
	Indices  *IndexStream
	Topology gputypes.PrimitiveTopology
}

// NewMesh returns an empty mesh builder with triangle-list topology.
//
// Example:
//
//	m := builder.NewMesh().
//		WithLabel("quad").
//		WithVertices(builder.InterleavedLayout(gputypes.VertexFormatFloat32x2), positions).
//		WithIndices(gputypes.IndexFormatUint16, builder.Uint16Indices([]uint16{0, 1, 2, 2, 1, 3}))
func NewMesh() *MeshBuilder {
	return &MeshBuilder{Topology: gputypes.PrimitiveTopologyTriangleList}
}

// WithLabel sets the debug label.
func (b *MeshBuilder) WithLabel(label string) *MeshBuilder {
	b.Label = label
	return b
}

// WithVertices appends a vertex stream. The builder takes ownership of data.
func (b *MeshBuilder) WithVertices(layout gputypes.VertexBufferLayout, data []byte) *MeshBuilder {
	if layout.StepMode == gputypes.VertexStepModeUndefined {
		layout.StepMode = gputypes.VertexStepModeVertex
	}
	b.Vertices = append(b.Vertices, VertexStream{Layout: layout, Data: data})
	return b
}

// WithIndices sets the index stream. The builder takes ownership of data.
func (b *MeshBuilder) WithIndices(format gputypes.IndexFormat, data []byte) *MeshBuilder {
	b.Indices = &IndexStream{Format: format, Data: data}
	return b
}

// WithTopology sets the primitive topology.
func (b *MeshBuilder) WithTopology(t gputypes.PrimitiveTopology) *MeshBuilder {
	b.Topology = t
	return b
}

// VertexCount returns the number of vertices, taken from the first
// per-vertex stream. It is zero when the mesh has no such stream.
func (b *MeshBuilder) VertexCount() uint32 {
	for _, s := range b.Vertices {
		if s.perVertex() {
			return s.Count()
		}
	}
	return 0
}

// IndexCount returns the number of indices, or zero for a non-indexed mesh.
func (b *MeshBuilder) IndexCount() uint32 {
	if b.Indices == nil {
		return 0
	}
	return b.Indices.Count()
}

// Indexed reports whether the mesh carries an index stream.
func (b *MeshBuilder) Indexed() bool {
	return b.Indices != nil
}

// Size returns the total payload size in bytes.
func (b *MeshBuilder) Size() int {
	n := 0
	for _, s := range b.Vertices {
		n += len(s.Data)
	}
	if b.Indices != nil {
		n += len(b.Indices.Data)
	}
	return n
}

// Validate checks that the streams are internally consistent: non-zero
// strides, attributes inside the stride, whole elements only, a common
// vertex count across per-vertex streams, and a well-formed index stream.
func (b *MeshBuilder) Validate() error {
	if len(b.Vertices) == 0 {
		return ErrNoVertices
	}
	if b.Topology > gputypes.PrimitiveTopologyTriangleStrip {
		return fmt.Errorf("%w: %d", ErrTopology, b.Topology)
	}

	count := -1
	for i, s := range b.Vertices {
		stride := s.Layout.ArrayStride
		if stride == 0 {
			return fmt.Errorf("%w: stream %d", ErrZeroStride, i)
		}
		if uint64(len(s.Data))%stride != 0 {
			return fmt.Errorf("%w: stream %d has %d bytes, stride %d", ErrVertexData, i, len(s.Data), stride)
		}
		for j, a := range s.Layout.Attributes {
			size := a.Format.Size()
			if size == 0 {
				return fmt.Errorf("%w: stream %d attribute %d", ErrVertexFormat, i, j)
			}
			if a.Offset+size > stride {
				return fmt.Errorf("%w: stream %d attribute %d (%s at offset %d, stride %d)",
					ErrAttributeBounds, i, j, a.Format, a.Offset, stride)
			}
		}
		if !s.perVertex() {
			continue
		}
		n := int(s.Count())
		if count >= 0 && n != count {
			return fmt.Errorf("%w: stream %d has %d vertices, want %d", ErrVertexCount, i, n, count)
		}
		count = n
	}

	if b.Indices != nil {
		size := b.Indices.Format.Size()
		if size == 0 {
			return fmt.Errorf("%w: %s", ErrIndexFormat, b.Indices.Format)
		}
		if uint32(len(b.Indices.Data))%size != 0 {
			return fmt.Errorf("%w: %d bytes of %s", ErrIndexData, len(b.Indices.Data), b.Indices.Format)
		}
	}
	return nil
}

// Clone returns a deep copy of the builder. The copy shares no memory with b
// and nil slices stay nil.
func (b *MeshBuilder) Clone() MeshBuilder {
	var out MeshBuilder
	if err := copier.CopyWithOption(&out, b, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on invalid destinations; fall back to a manual copy.
		return b.cloneSlow()
	}
	out.keepNils(b)
	return out
}

// keepNils undoes copier's allocation of empty slices where src had nil.
func (b *MeshBuilder) keepNils(src *MeshBuilder) {
	if src.Vertices == nil {
		b.Vertices = nil
	}
	for i := range min(len(b.Vertices), len(src.Vertices)) {
		if src.Vertices[i].Data == nil {
			b.Vertices[i].Data = nil
		}
		if src.Vertices[i].Layout.Attributes == nil {
			b.Vertices[i].Layout.Attributes = nil
		}
	}
	if src.Indices != nil && b.Indices != nil && src.Indices.Data == nil {
		b.Indices.Data = nil
	}
}

func (b *MeshBuilder) cloneSlow() MeshBuilder {
	out := MeshBuilder{Label: b.Label, Topology: b.Topology}
	for _, s := range b.Vertices {
		layout := s.Layout
		layout.Attributes = append([]gputypes.VertexAttribute(nil), s.Layout.Attributes...)
		out.Vertices = append(out.Vertices, VertexStream{
			Layout: layout,
			Data:   append([]byte(nil), s.Data...),
		})
	}
	if b.Indices != nil {
		out.Indices = &IndexStream{
			Format: b.Indices.Format,
			Data:   append([]byte(nil), b.Indices.Data...),
		}
	}
	return out
}
