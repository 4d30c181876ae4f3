package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gpures/builder"
	"github.com/gogpu/gputypes"
)

func testMesh() *builder.MeshBuilder {
	pos := make([]byte, 3*12)
	for i := range pos {
		pos[i] = byte(i + 1)
	}
	inst := builder.InterleavedLayout(gputypes.VertexFormatFloat32x4)
	inst.StepMode = gputypes.VertexStepModeInstance
	return builder.NewMesh().
		WithLabel("triangle").
		WithTopology(gputypes.PrimitiveTopologyTriangleStrip).
		WithVertices(builder.InterleavedLayout(gputypes.VertexFormatFloat32x3), pos).
		WithVertices(inst, make([]byte, 32)).
		WithIndices(gputypes.IndexFormatUint32, builder.Uint32Indices([]uint32{0, 1, 2}))
}

func testTexture() *builder.TextureBuilder {
	data := make([]byte, 2*2*4)
	for i := range data {
		data[i] = byte(0x40 + i)
	}
	return builder.NewTexture(2, 2, gputypes.TextureFormatRGBA8UnormSrgb, data).
		WithLabel("tile").
		WithSampler(builder.SamplerInfo{
			AddressMode:  gputypes.AddressModeRepeat,
			MagFilter:    gputypes.FilterModeNearest,
			MinFilter:    gputypes.FilterModeLinear,
			MipmapFilter: gputypes.FilterModeLinear,
		})
}

func assertMeshEqual(t *testing.T, got, want *builder.MeshBuilder) {
	t.Helper()
	if got.Label != want.Label {
		t.Errorf("Label = %q, want %q", got.Label, want.Label)
	}
	if got.Topology != want.Topology {
		t.Errorf("Topology = %v, want %v", got.Topology, want.Topology)
	}
	if len(got.Vertices) != len(want.Vertices) {
		t.Fatalf("len(Vertices) = %d, want %d", len(got.Vertices), len(want.Vertices))
	}
	for i := range want.Vertices {
		g, w := got.Vertices[i], want.Vertices[i]
		if g.Layout.ArrayStride != w.Layout.ArrayStride || g.Layout.StepMode != w.Layout.StepMode {
			t.Errorf("Vertices[%d].Layout = %+v, want %+v", i, g.Layout, w.Layout)
		}
		if len(g.Layout.Attributes) != len(w.Layout.Attributes) {
			t.Fatalf("Vertices[%d] has %d attributes, want %d", i, len(g.Layout.Attributes), len(w.Layout.Attributes))
		}
		for j := range w.Layout.Attributes {
			if g.Layout.Attributes[j] != w.Layout.Attributes[j] {
				t.Errorf("Vertices[%d].Attributes[%d] = %+v, want %+v", i, j, g.Layout.Attributes[j], w.Layout.Attributes[j])
			}
		}
		if !bytes.Equal(g.Data, w.Data) {
			t.Errorf("Vertices[%d].Data differs", i)
		}
	}
	if (got.Indices == nil) != (want.Indices == nil) {
		t.Fatalf("Indices = %v, want %v", got.Indices, want.Indices)
	}
	if want.Indices != nil {
		if got.Indices.Format != want.Indices.Format || !bytes.Equal(got.Indices.Data, want.Indices.Data) {
			t.Errorf("Indices = %+v, want %+v", *got.Indices, *want.Indices)
		}
	}
}

func assertTextureEqual(t *testing.T, got, want *builder.TextureBuilder) {
	t.Helper()
	if got.Label != want.Label || got.Size != want.Size || got.Dimension != want.Dimension ||
		got.Format != want.Format || got.MipLevels != want.MipLevels || got.Sampler != want.Sampler {
		t.Errorf("texture = %+v, want %+v", *got, *want)
	}
	if !bytes.Equal(got.Data, want.Data) {
		t.Error("texture data differs")
	}
}

func TestMeshRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatBinary, FormatYAML, FormatTOML} {
		t.Run(f.String(), func(t *testing.T) {
			want := testMesh()
			raw, err := EncodeMesh(f, want)
			if err != nil {
				t.Fatalf("EncodeMesh() error = %v", err)
			}
			got, err := DecodeMesh(f, raw)
			if err != nil {
				t.Fatalf("DecodeMesh() error = %v", err)
			}
			assertMeshEqual(t, &got, want)
			if err := got.Validate(); err != nil {
				t.Errorf("decoded mesh Validate() error = %v", err)
			}
		})
	}
}

func TestTextureRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatBinary, FormatYAML, FormatTOML} {
		t.Run(f.String(), func(t *testing.T) {
			want := testTexture()
			raw, err := EncodeTexture(f, want)
			if err != nil {
				t.Fatalf("EncodeTexture() error = %v", err)
			}
			got, err := DecodeTexture(f, raw)
			if err != nil {
				t.Fatalf("DecodeTexture() error = %v", err)
			}
			assertTextureEqual(t, &got, want)
		})
	}
}

// Decoded payloads must stay intact after the input buffer is overwritten.
func TestDecodeDoesNotAliasInput(t *testing.T) {
	for _, f := range []Format{FormatBinary, FormatYAML, FormatTOML} {
		t.Run(f.String(), func(t *testing.T) {
			want := testMesh()
			raw, err := EncodeMesh(f, want)
			if err != nil {
				t.Fatalf("EncodeMesh() error = %v", err)
			}
			got, err := DecodeMesh(f, raw)
			if err != nil {
				t.Fatalf("DecodeMesh() error = %v", err)
			}
			for i := range raw {
				raw[i] = 0xcc
			}
			assertMeshEqual(t, &got, want)

			traw, err := EncodeTexture(f, testTexture())
			if err != nil {
				t.Fatalf("EncodeTexture() error = %v", err)
			}
			tex, err := DecodeTexture(f, traw)
			if err != nil {
				t.Fatalf("DecodeTexture() error = %v", err)
			}
			for i := range traw {
				traw[i] = 0
			}
			assertTextureEqual(t, &tex, testTexture())
		})
	}
}

func TestBinaryHeader(t *testing.T) {
	raw, _ := EncodeTexture(FormatBinary, testTexture())
	if !bytes.Equal(raw[:4], []byte{0xd1, 0xad, 0xaa, 0xda}) {
		t.Errorf("magic = % x, want d1 ad aa da", raw[:4])
	}
	if raw[6] != byte(KindTexture) {
		t.Errorf("kind byte = %d, want %d", raw[6], KindTexture)
	}
}

func TestBinaryDecodeErrors(t *testing.T) {
	good, _ := EncodeMesh(FormatBinary, testMesh())

	badMagic := bytes.Clone(good)
	badMagic[0] = 0
	badVersion := bytes.Clone(good)
	badVersion[4] = 9
	texture, _ := EncodeTexture(FormatBinary, testTexture())
	hugeCount := bytes.Clone(good)
	// label length (4) + "triangle" (8) + topology (4) puts the stream count at 24.
	copy(hugeCount[24:28], []byte{0xff, 0xff, 0xff, 0x7f})
	plain := testMesh()
	plain.Indices = nil
	badFlag, _ := EncodeMesh(FormatBinary, plain)
	// The index presence flag is the last byte of a non-indexed mesh.
	badFlag[len(badFlag)-1] = 7

	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"empty", nil, ErrTruncate},
		{"short header", good[:5], ErrTruncate},
		{"bad magic", badMagic, ErrMagic},
		{"bad version", badVersion, ErrVersion},
		{"wrong kind", texture, ErrKind},
		{"truncated body", good[:len(good)-3], ErrTruncate},
		{"trailing bytes", append(bytes.Clone(good), 1, 2), ErrTrailing},
		{"absurd stream count", hugeCount, ErrTruncate},
		{"bad index flag", badFlag, ErrIndexFlag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMesh(FormatBinary, tt.raw)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("DecodeMesh() error = %v, want ErrDecode", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeMesh() error = %v, want %v", err, tt.want)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("DecodeMesh() error %T is not *DecodeError", err)
			}
			if de.Format != FormatBinary || de.Kind != KindMesh {
				t.Errorf("DecodeError = %s/%s, want binary/mesh", de.Format, de.Kind)
			}
		})
	}
}

func TestDocumentDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		f    Format
		raw  string
		want error
	}{
		{"yaml wrong kind", FormatYAML, "kind: texture\nvertices: []\n", ErrKind},
		{"yaml missing kind", FormatYAML, "vertices: []\n", ErrKind},
		{"yaml bad enum", FormatYAML, "kind: mesh\ntopology: Hexagons\nvertices: []\n", ErrEnum},
		{"yaml bad base64", FormatYAML, "kind: mesh\nvertices:\n  - stride: 4\n    attributes: []\n    data: '!!!'\n", ErrPayload},
		{"toml bad attribute", FormatTOML, "kind = 'mesh'\n[[vertices]]\nstride = 4\ndata = ''\n[[vertices.attributes]]\nformat = 'Float99'\noffset = 0\nlocation = 0\n", ErrEnum},
		{"toml bad index format", FormatTOML, "kind = 'mesh'\nvertices = []\n[indices]\nformat = 'Uint8'\ndata = ''\n", ErrEnum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMesh(tt.f, []byte(tt.raw))
			if !errors.Is(err, ErrDecode) {
				t.Errorf("DecodeMesh() error = %v, want ErrDecode", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeMesh() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDocumentRejectsUnknownFields(t *testing.T) {
	tests := []struct {
		f   Format
		raw string
	}{
		{FormatYAML, "kind: mesh\nvertices: []\ncolour: red\n"},
		{FormatTOML, "kind = 'mesh'\nvertices = []\ncolour = 'red'\n"},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			if _, err := DecodeMesh(tt.f, []byte(tt.raw)); !errors.Is(err, ErrDecode) {
				t.Errorf("DecodeMesh() error = %v, want ErrDecode", err)
			}
		})
	}
}

func TestTextureDocumentDefaults(t *testing.T) {
	raw := "kind: texture\nwidth: 1\nheight: 1\nformat: rgba8unorm\ndata: AAAAAA==\n"
	got, err := DecodeTexture(FormatYAML, []byte(raw))
	if err != nil {
		t.Fatalf("DecodeTexture() error = %v", err)
	}
	if got.Dimension != gputypes.TextureDimension2D {
		t.Errorf("Dimension = %v, want 2D", got.Dimension)
	}
	if got.Size.DepthOrArrayLayers != 1 || got.MipLevels != 1 {
		t.Errorf("depth/mips = %d/%d, want 1/1", got.Size.DepthOrArrayLayers, got.MipLevels)
	}
	if got.Sampler != builder.DefaultSampler() {
		t.Errorf("Sampler = %+v, want default", got.Sampler)
	}
	if got.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", got.Format)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestYAMLUsesEnumNames(t *testing.T) {
	raw, err := EncodeMesh(FormatYAML, testMesh())
	if err != nil {
		t.Fatalf("EncodeMesh() error = %v", err)
	}
	for _, want := range []string{"kind: mesh", "TriangleStrip", "Float32x3", "Instance", "Uint32"} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("YAML output missing %q:\n%s", want, raw)
		}
	}
}

func TestEncodeUnsupported(t *testing.T) {
	if _, err := EncodeMesh(FormatImage, testMesh()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("EncodeMesh(image) error = %v, want ErrUnsupported", err)
	}
	if _, err := DecodeMesh(FormatImage, nil); !errors.Is(err, ErrUnsupported) {
		t.Errorf("DecodeMesh(image) error = %v, want ErrUnsupported", err)
	}
	if _, err := EncodeTexture(FormatUnknown, testTexture()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("EncodeTexture(unknown) error = %v, want ErrUnsupported", err)
	}
}

func TestPeekKind(t *testing.T) {
	for _, f := range []Format{FormatBinary, FormatYAML, FormatTOML} {
		mraw, _ := EncodeMesh(f, testMesh())
		traw, _ := EncodeTexture(f, testTexture())
		if k, err := PeekKind(f, mraw); err != nil || k != KindMesh {
			t.Errorf("PeekKind(%s, mesh) = %v, %v, want mesh", f, k, err)
		}
		if k, err := PeekKind(f, traw); err != nil || k != KindTexture {
			t.Errorf("PeekKind(%s, texture) = %v, %v, want texture", f, k, err)
		}
	}
	if _, err := PeekKind(FormatBinary, []byte("nope")); !errors.Is(err, ErrDecode) {
		t.Errorf("PeekKind(garbage) error = %v, want ErrDecode", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"assets/cube.mesh.yaml", FormatYAML},
		{"cube.mesh.YML", FormatYAML},
		{"brick.texture.toml", FormatTOML},
		{"brick.texture.bin", FormatBinary},
		{"brick.png", FormatImage},
		{"brick.JPEG", FormatImage},
		{"brick.tiff", FormatImage},
		{"brick.webp", FormatImage},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, %v, want %v", tt.path, got, err, tt.want)
		}
	}
	if _, err := FormatFromPath("notes.txt"); err == nil {
		t.Error("FormatFromPath(notes.txt) should fail")
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(strings.ToUpper(f.String()))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}
