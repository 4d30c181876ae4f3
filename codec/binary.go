package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gpures/builder"
	"github.com/gogpu/gputypes"
)

// Container header.
const (
	Magic   uint32 = 0xdaaaadd1
	Version uint16 = 1

	headerSize = 8
)

// writer appends little-endian fields to a buffer.
type writer struct {
	buf []byte
}

func (w *writer) u8(v uint8)   { w.buf = append(w.buf, v) }
func (w *writer) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *writer) u32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }
func (w *writer) u64(v uint64) { w.buf = binary.LittleEndian.AppendUint64(w.buf, v) }

func (w *writer) bytes(b []byte) {
	w.u32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

func (w *writer) str(s string) { w.bytes([]byte(s)) }

func (w *writer) header(k Kind) {
	w.u32(Magic)
	w.u16(Version)
	w.u8(uint8(k))
	w.u8(0)
}

// reader consumes little-endian fields. The first failure sticks: later
// reads return zero values and err reports the original problem.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.buf)-r.off < n {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncate, n, r.off, len(r.buf)-r.off)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) u16() uint16 {
	if b := r.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (r *reader) u32() uint32 {
	if b := r.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (r *reader) u64() uint64 {
	if b := r.take(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

// bytes reads a length-prefixed span and returns a copy of it.
func (r *reader) bytes() []byte {
	n := r.u32()
	b := r.take(int(n))
	if b == nil {
		return nil
	}
	return bytes.Clone(b)
}

func (r *reader) str() string {
	n := r.u32()
	return string(r.take(int(n)))
}

// count reads an element count and rejects values that could not fit in
// the remaining input at minSize bytes per element.
func (r *reader) count(minSize int) int {
	n := int(r.u32())
	if r.err == nil && n*minSize > len(r.buf)-r.off {
		r.err = fmt.Errorf("%w: %d elements declared, %d bytes left", ErrTruncate, n, len(r.buf)-r.off)
		return 0
	}
	return n
}

func (r *reader) header(want Kind) {
	if len(r.buf) < headerSize {
		r.err = fmt.Errorf("%w: %d byte header", ErrTruncate, len(r.buf))
		return
	}
	if m := r.u32(); m != Magic {
		r.err = fmt.Errorf("%w: %#x", ErrMagic, m)
		return
	}
	if v := r.u16(); v != Version {
		r.err = fmt.Errorf("%w: %d", ErrVersion, v)
		return
	}
	if k := Kind(r.u8()); k != want {
		r.err = fmt.Errorf("%w: container holds %s, want %s", ErrKind, k, want)
		return
	}
	r.u8()
}

func (r *reader) finish() error {
	if r.err == nil && r.off != len(r.buf) {
		r.err = fmt.Errorf("%w: %d bytes", ErrTrailing, len(r.buf)-r.off)
	}
	return r.err
}

// peekBinaryKind reads the kind byte of a binary container header.
func peekBinaryKind(raw []byte) (Kind, error) {
	r := reader{buf: raw}
	if len(raw) < headerSize {
		return KindUnknown, fmt.Errorf("%w: %d byte header", ErrTruncate, len(raw))
	}
	if m := r.u32(); m != Magic {
		return KindUnknown, fmt.Errorf("%w: %#x", ErrMagic, m)
	}
	if v := r.u16(); v != Version {
		return KindUnknown, fmt.Errorf("%w: %d", ErrVersion, v)
	}
	return Kind(r.u8()), nil
}

func encodeMeshBinary(m *builder.MeshBuilder) []byte {
	w := writer{buf: make([]byte, 0, headerSize+64+m.Size())}
	w.header(KindMesh)
	w.str(m.Label)
	w.u32(uint32(m.Topology))
	w.u32(uint32(len(m.Vertices)))
	for _, s := range m.Vertices {
		w.u64(s.Layout.ArrayStride)
		w.u32(uint32(s.Layout.StepMode))
		w.u32(uint32(len(s.Layout.Attributes)))
		for _, a := range s.Layout.Attributes {
			w.u32(uint32(a.Format))
			w.u64(a.Offset)
			w.u32(a.ShaderLocation)
		}
		w.bytes(s.Data)
	}
	if m.Indices == nil {
		w.u8(0)
	} else {
		w.u8(1)
		w.u32(uint32(m.Indices.Format))
		w.bytes(m.Indices.Data)
	}
	return w.buf
}

// Minimum encoded sizes used to bound declared counts.
const (
	minStreamSize    = 8 + 4 + 4 + 4
	minAttributeSize = 4 + 8 + 4
)

func decodeMeshBinary(raw []byte) (builder.MeshBuilder, error) {
	r := reader{buf: raw}
	r.header(KindMesh)

	var m builder.MeshBuilder
	m.Label = r.str()
	m.Topology = gputypes.PrimitiveTopology(r.u32())
	streams := r.count(minStreamSize)
	for i := 0; i < streams && r.err == nil; i++ {
		var s builder.VertexStream
		s.Layout.ArrayStride = r.u64()
		s.Layout.StepMode = gputypes.VertexStepMode(r.u32())
		attrs := r.count(minAttributeSize)
		for j := 0; j < attrs && r.err == nil; j++ {
			s.Layout.Attributes = append(s.Layout.Attributes, gputypes.VertexAttribute{
				Format:         gputypes.VertexFormat(r.u32()),
				Offset:         r.u64(),
				ShaderLocation: r.u32(),
			})
		}
		s.Data = r.bytes()
		m.Vertices = append(m.Vertices, s)
	}
	switch flag := r.u8(); flag {
	case 0:
	case 1:
		format := gputypes.IndexFormat(r.u32())
		m.Indices = &builder.IndexStream{Format: format, Data: r.bytes()}
	default:
		if r.err == nil {
			r.err = fmt.Errorf("%w: %d", ErrIndexFlag, flag)
		}
	}
	if err := r.finish(); err != nil {
		return builder.MeshBuilder{}, err
	}
	return m, nil
}

func encodeTextureBinary(t *builder.TextureBuilder) []byte {
	w := writer{buf: make([]byte, 0, headerSize+64+len(t.Data))}
	w.header(KindTexture)
	w.str(t.Label)
	w.u32(t.Size.Width)
	w.u32(t.Size.Height)
	w.u32(t.Size.DepthOrArrayLayers)
	w.u32(uint32(t.Dimension))
	w.u32(uint32(t.Format))
	w.u32(t.MipLevels)
	w.u32(uint32(t.Sampler.AddressMode))
	w.u32(uint32(t.Sampler.MagFilter))
	w.u32(uint32(t.Sampler.MinFilter))
	w.u32(uint32(t.Sampler.MipmapFilter))
	w.bytes(t.Data)
	return w.buf
}

func decodeTextureBinary(raw []byte) (builder.TextureBuilder, error) {
	r := reader{buf: raw}
	r.header(KindTexture)

	var t builder.TextureBuilder
	t.Label = r.str()
	t.Size.Width = r.u32()
	t.Size.Height = r.u32()
	t.Size.DepthOrArrayLayers = r.u32()
	t.Dimension = gputypes.TextureDimension(r.u32())
	t.Format = gputypes.TextureFormat(r.u32())
	t.MipLevels = r.u32()
	t.Sampler.AddressMode = gputypes.AddressMode(r.u32())
	t.Sampler.MagFilter = gputypes.FilterMode(r.u32())
	t.Sampler.MinFilter = gputypes.FilterMode(r.u32())
	t.Sampler.MipmapFilter = gputypes.FilterMode(r.u32())
	t.Data = r.bytes()
	if err := r.finish(); err != nil {
		return builder.TextureBuilder{}, err
	}
	return t, nil
}
