package builder

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/gputypes"
)

type vertex struct {
	Pos [3]float32
	UV  [2]float32
}

func quad(t *testing.T) *MeshBuilder {
	t.Helper()
	verts := []vertex{
		{Pos: [3]float32{-1, -1, 0}, UV: [2]float32{0, 1}},
		{Pos: [3]float32{1, -1, 0}, UV: [2]float32{1, 1}},
		{Pos: [3]float32{-1, 1, 0}, UV: [2]float32{0, 0}},
		{Pos: [3]float32{1, 1, 0}, UV: [2]float32{1, 0}},
	}
	data, err := PackVertices(verts)
	if err != nil {
		t.Fatalf("PackVertices() error = %v", err)
	}
	return NewMesh().
		WithLabel("quad").
		WithVertices(InterleavedLayout(gputypes.VertexFormatFloat32x3, gputypes.VertexFormatFloat32x2), data).
		WithIndices(gputypes.IndexFormatUint16, Uint16Indices([]uint16{0, 1, 2, 2, 1, 3}))
}

func TestInterleavedLayout(t *testing.T) {
	l := InterleavedLayout(gputypes.VertexFormatFloat32x3, gputypes.VertexFormatFloat32x2, gputypes.VertexFormatUnorm8x4)
	if l.ArrayStride != 24 {
		t.Errorf("ArrayStride = %d, want 24", l.ArrayStride)
	}
	wantOffsets := []uint64{0, 12, 20}
	for i, a := range l.Attributes {
		if a.Offset != wantOffsets[i] {
			t.Errorf("Attributes[%d].Offset = %d, want %d", i, a.Offset, wantOffsets[i])
		}
		if a.ShaderLocation != uint32(i) {
			t.Errorf("Attributes[%d].ShaderLocation = %d, want %d", i, a.ShaderLocation, i)
		}
	}
	if l.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want Vertex", l.StepMode)
	}
}

func TestPackVertices(t *testing.T) {
	data, err := PackVertices([]vertex{{Pos: [3]float32{1, 2, 3}}, {}})
	if err != nil {
		t.Fatalf("PackVertices() error = %v", err)
	}
	if len(data) != 40 {
		t.Fatalf("len = %d, want 40", len(data))
	}
	// 1.0 as little-endian float32.
	if !bytes.Equal(data[:4], []byte{0x00, 0x00, 0x80, 0x3f}) {
		t.Errorf("first float = % x, want 00 00 80 3f", data[:4])
	}
}

func TestPackVerticesRejectsVariableSize(t *testing.T) {
	if _, err := PackVertices([]string{"a"}); err == nil {
		t.Error("PackVertices([]string) should fail")
	}
}

func TestIndexEncoding(t *testing.T) {
	if got := Uint16Indices([]uint16{1, 0x0203}); !bytes.Equal(got, []byte{1, 0, 3, 2}) {
		t.Errorf("Uint16Indices() = % x", got)
	}
	if got := Uint32Indices([]uint32{0x01020304}); !bytes.Equal(got, []byte{4, 3, 2, 1}) {
		t.Errorf("Uint32Indices() = % x", got)
	}
}

func TestMeshCounts(t *testing.T) {
	m := quad(t)
	if got := m.VertexCount(); got != 4 {
		t.Errorf("VertexCount() = %d, want 4", got)
	}
	if got := m.IndexCount(); got != 6 {
		t.Errorf("IndexCount() = %d, want 6", got)
	}
	if !m.Indexed() {
		t.Error("Indexed() = false, want true")
	}
	if got := m.Size(); got != 4*20+6*2 {
		t.Errorf("Size() = %d, want %d", got, 4*20+6*2)
	}

	empty := NewMesh()
	if empty.VertexCount() != 0 || empty.IndexCount() != 0 || empty.Indexed() {
		t.Error("empty mesh should report zero counts and no indices")
	}
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *MeshBuilder)
		want   error
	}{
		{"valid", func(*MeshBuilder) {}, nil},
		{"no vertices", func(m *MeshBuilder) { m.Vertices = nil }, ErrNoVertices},
		{"zero stride", func(m *MeshBuilder) { m.Vertices[0].Layout.ArrayStride = 0 }, ErrZeroStride},
		{"partial vertex", func(m *MeshBuilder) { m.Vertices[0].Data = m.Vertices[0].Data[:30] }, ErrVertexData},
		{"undefined attribute format", func(m *MeshBuilder) {
			m.Vertices[0].Layout.Attributes[1].Format = gputypes.VertexFormatUndefined
		}, ErrVertexFormat},
		{"attribute past stride", func(m *MeshBuilder) {
			m.Vertices[0].Layout.Attributes[1].Offset = 16
		}, ErrAttributeBounds},
		{"stream count mismatch", func(m *MeshBuilder) {
			m.WithVertices(InterleavedLayout(gputypes.VertexFormatFloat32), make([]byte, 12))
		}, ErrVertexCount},
		{"undefined index format", func(m *MeshBuilder) { m.Indices.Format = gputypes.IndexFormatUndefined }, ErrIndexFormat},
		{"partial index", func(m *MeshBuilder) {
			m.WithIndices(gputypes.IndexFormatUint32, make([]byte, 6))
		}, ErrIndexData},
		{"unknown topology", func(m *MeshBuilder) { m.Topology = 99 }, ErrTopology},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := quad(t)
			tt.mutate(m)
			err := m.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMeshValidateInstanceStream(t *testing.T) {
	m := quad(t)
	inst := InterleavedLayout(gputypes.VertexFormatFloat32x4)
	inst.StepMode = gputypes.VertexStepModeInstance
	m.WithVertices(inst, make([]byte, 16*3))

	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, instance streams have their own count", err)
	}
	if got := m.VertexCount(); got != 4 {
		t.Errorf("VertexCount() = %d, want 4", got)
	}
	if got := m.Vertices[1].Count(); got != 3 {
		t.Errorf("instance Count() = %d, want 3", got)
	}
}

func TestMeshClone(t *testing.T) {
	orig := quad(t)
	c := orig.Clone()

	if c.Label != orig.Label || c.Topology != orig.Topology {
		t.Errorf("Clone() = %q/%v, want %q/%v", c.Label, c.Topology, orig.Label, orig.Topology)
	}
	if !bytes.Equal(c.Vertices[0].Data, orig.Vertices[0].Data) {
		t.Fatal("Clone() vertex data differs")
	}
	if c.Vertices[0].Layout.ArrayStride != orig.Vertices[0].Layout.ArrayStride {
		t.Error("Clone() layout differs")
	}
	if c.Indices == nil || !bytes.Equal(c.Indices.Data, orig.Indices.Data) {
		t.Fatal("Clone() index data differs")
	}

	orig.Vertices[0].Data[0] ^= 0xff
	orig.Vertices[0].Layout.Attributes[0].ShaderLocation = 7
	orig.Indices.Data[0] ^= 0xff

	if c.Vertices[0].Data[0] == orig.Vertices[0].Data[0] {
		t.Error("Clone() shares vertex data with the original")
	}
	if c.Vertices[0].Layout.Attributes[0].ShaderLocation == 7 {
		t.Error("Clone() shares attributes with the original")
	}
	if c.Indices.Data[0] == orig.Indices.Data[0] {
		t.Error("Clone() shares index data with the original")
	}
	if c.Indices == orig.Indices {
		t.Error("Clone() shares the index stream pointer")
	}
}

func TestMeshCloneNonIndexed(t *testing.T) {
	m := NewMesh().WithVertices(InterleavedLayout(gputypes.VertexFormatFloat32x2), make([]byte, 24))
	c := m.Clone()
	if c.Indices != nil {
		t.Error("Clone() of a non-indexed mesh should have no index stream")
	}
	if c.VertexCount() != 3 {
		t.Errorf("Clone().VertexCount() = %d, want 3", c.VertexCount())
	}
}

func TestMeshCloneKeepsNils(t *testing.T) {
	tests := []struct {
		name string
		mesh *MeshBuilder
	}{
		{"empty", NewMesh()},
		{"nil vertex data", NewMesh().WithVertices(gputypes.VertexBufferLayout{ArrayStride: 8}, nil)},
		{"nil index data", NewMesh().
			WithVertices(InterleavedLayout(gputypes.VertexFormatFloat32x2), make([]byte, 24)).
			WithIndices(gputypes.IndexFormatUint16, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := tt.mesh.Clone(); !reflect.DeepEqual(c, *tt.mesh) {
				t.Errorf("Clone() = %+v, want %+v", c, *tt.mesh)
			}
		})
	}
}
