package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/gogpu/gpures/builder"
	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Document shapes shared by the YAML and TOML formats. Enums are written by
// name and byte payloads as standard base64.

type meshDoc struct {
	Kind     string      `yaml:"kind" toml:"kind"`
	Label    string      `yaml:"label,omitempty" toml:"label,omitempty"`
	Topology string      `yaml:"topology,omitempty" toml:"topology,omitempty"`
	Vertices []streamDoc `yaml:"vertices" toml:"vertices"`
	Indices  *indexDoc   `yaml:"indices,omitempty" toml:"indices,omitempty"`
}

type streamDoc struct {
	Stride     uint64    `yaml:"stride" toml:"stride"`
	StepMode   string    `yaml:"step_mode,omitempty" toml:"step_mode,omitempty"`
	Attributes []attrDoc `yaml:"attributes" toml:"attributes"`
	Data       string    `yaml:"data" toml:"data"`
}

type attrDoc struct {
	Format   string `yaml:"format" toml:"format"`
	Offset   uint64 `yaml:"offset" toml:"offset"`
	Location uint32 `yaml:"location" toml:"location"`
}

type indexDoc struct {
	Format string `yaml:"format" toml:"format"`
	Data   string `yaml:"data" toml:"data"`
}

type textureDoc struct {
	Kind      string     `yaml:"kind" toml:"kind"`
	Label     string     `yaml:"label,omitempty" toml:"label,omitempty"`
	Width     uint32     `yaml:"width" toml:"width"`
	Height    uint32     `yaml:"height" toml:"height"`
	Depth     uint32     `yaml:"depth,omitempty" toml:"depth,omitempty"`
	Dimension string     `yaml:"dimension,omitempty" toml:"dimension,omitempty"`
	Format    string     `yaml:"format" toml:"format"`
	MipLevels uint32     `yaml:"mip_levels,omitempty" toml:"mip_levels,omitempty"`
	Sampler   samplerDoc `yaml:"sampler" toml:"sampler"`
	Data      string     `yaml:"data,omitempty" toml:"data,omitempty"`
}

type samplerDoc struct {
	AddressMode  string `yaml:"address_mode,omitempty" toml:"address_mode,omitempty"`
	MagFilter    string `yaml:"mag_filter,omitempty" toml:"mag_filter,omitempty"`
	MinFilter    string `yaml:"min_filter,omitempty" toml:"min_filter,omitempty"`
	MipmapFilter string `yaml:"mipmap_filter,omitempty" toml:"mipmap_filter,omitempty"`
}

// kindDoc is decoded first to check the payload kind.
type kindDoc struct {
	Kind string `yaml:"kind" toml:"kind"`
}

func encodePayload(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// decodePayload allocates a fresh slice; the document text is never aliased.
func decodePayload(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	return b, nil
}

func newMeshDoc(m *builder.MeshBuilder) meshDoc {
	doc := meshDoc{
		Kind:     KindMesh.String(),
		Label:    m.Label,
		Topology: m.Topology.String(),
	}
	for _, s := range m.Vertices {
		sd := streamDoc{
			Stride:   s.Layout.ArrayStride,
			StepMode: s.Layout.StepMode.String(),
			Data:     encodePayload(s.Data),
		}
		for _, a := range s.Layout.Attributes {
			sd.Attributes = append(sd.Attributes, attrDoc{
				Format:   a.Format.String(),
				Offset:   a.Offset,
				Location: a.ShaderLocation,
			})
		}
		doc.Vertices = append(doc.Vertices, sd)
	}
	if m.Indices != nil {
		doc.Indices = &indexDoc{
			Format: m.Indices.Format.String(),
			Data:   encodePayload(m.Indices.Data),
		}
	}
	return doc
}

func (doc *meshDoc) builder() (builder.MeshBuilder, error) {
	var m builder.MeshBuilder
	if err := checkKind(doc.Kind, KindMesh); err != nil {
		return m, err
	}
	var err error
	m.Label = doc.Label
	if m.Topology, err = topologies.parse(doc.Topology, gputypes.PrimitiveTopologyTriangleList); err != nil {
		return m, err
	}
	for i, sd := range doc.Vertices {
		var s builder.VertexStream
		s.Layout.ArrayStride = sd.Stride
		if s.Layout.StepMode, err = stepModes.parse(sd.StepMode, gputypes.VertexStepModeVertex); err != nil {
			return m, fmt.Errorf("vertices[%d]: %w", i, err)
		}
		for j, ad := range sd.Attributes {
			f, err := vertexFormats.parse(ad.Format, gputypes.VertexFormatUndefined)
			if err != nil {
				return m, fmt.Errorf("vertices[%d].attributes[%d]: %w", i, j, err)
			}
			s.Layout.Attributes = append(s.Layout.Attributes, gputypes.VertexAttribute{
				Format:         f,
				Offset:         ad.Offset,
				ShaderLocation: ad.Location,
			})
		}
		if s.Data, err = decodePayload(sd.Data); err != nil {
			return m, fmt.Errorf("vertices[%d]: %w", i, err)
		}
		m.Vertices = append(m.Vertices, s)
	}
	if doc.Indices != nil {
		f, err := indexFormats.parse(doc.Indices.Format, gputypes.IndexFormatUndefined)
		if err != nil {
			return m, fmt.Errorf("indices: %w", err)
		}
		data, err := decodePayload(doc.Indices.Data)
		if err != nil {
			return m, fmt.Errorf("indices: %w", err)
		}
		m.Indices = &builder.IndexStream{Format: f, Data: data}
	}
	return m, nil
}

func newTextureDoc(t *builder.TextureBuilder) textureDoc {
	return textureDoc{
		Kind:      KindTexture.String(),
		Label:     t.Label,
		Width:     t.Size.Width,
		Height:    t.Size.Height,
		Depth:     t.Size.DepthOrArrayLayers,
		Dimension: t.Dimension.String(),
		Format:    t.Format.String(),
		MipLevels: t.MipLevels,
		Sampler: samplerDoc{
			AddressMode:  t.Sampler.AddressMode.String(),
			MagFilter:    t.Sampler.MagFilter.String(),
			MinFilter:    t.Sampler.MinFilter.String(),
			MipmapFilter: t.Sampler.MipmapFilter.String(),
		},
		Data: encodePayload(t.Data),
	}
}

func (doc *textureDoc) builder() (builder.TextureBuilder, error) {
	var t builder.TextureBuilder
	if err := checkKind(doc.Kind, KindTexture); err != nil {
		return t, err
	}
	def := builder.DefaultSampler()
	var err error
	t.Label = doc.Label
	t.Size = gputypes.NewExtent3D(doc.Width, doc.Height, max(doc.Depth, 1))
	t.MipLevels = max(doc.MipLevels, 1)
	if t.Dimension, err = dimensions.parse(doc.Dimension, gputypes.TextureDimension2D); err != nil {
		return t, err
	}
	if t.Format, err = textureFormats.parse(doc.Format, gputypes.TextureFormatUndefined); err != nil {
		return t, err
	}
	if t.Sampler.AddressMode, err = addressModes.parse(doc.Sampler.AddressMode, def.AddressMode); err != nil {
		return t, fmt.Errorf("sampler: %w", err)
	}
	if t.Sampler.MagFilter, err = filterModes.parse(doc.Sampler.MagFilter, def.MagFilter); err != nil {
		return t, fmt.Errorf("sampler: %w", err)
	}
	if t.Sampler.MinFilter, err = filterModes.parse(doc.Sampler.MinFilter, def.MinFilter); err != nil {
		return t, fmt.Errorf("sampler: %w", err)
	}
	if t.Sampler.MipmapFilter, err = filterModes.parse(doc.Sampler.MipmapFilter, def.MipmapFilter); err != nil {
		return t, fmt.Errorf("sampler: %w", err)
	}
	if t.Data, err = decodePayload(doc.Data); err != nil {
		return t, err
	}
	return t, nil
}

func checkKind(name string, want Kind) error {
	k, err := ParseKind(name)
	if err != nil {
		return err
	}
	if k != want {
		return fmt.Errorf("%w: document holds %s, want %s", ErrKind, k, want)
	}
	return nil
}

// marshalDoc writes v in a document format.
func marshalDoc(f Format, v any) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatTOML:
		return toml.Marshal(v)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, f)
}

// unmarshalDoc reads a document strictly: unknown keys are errors.
func unmarshalDoc(f Format, raw []byte, v any) error {
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("yaml: %w", err)
		}
		return nil
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return fmt.Errorf("toml: %s", strict.String())
			}
			return fmt.Errorf("toml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, f)
}

// peekDocKind reads only the kind field of a document.
func peekDocKind(f Format, raw []byte) (Kind, error) {
	var doc kindDoc
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(raw, &doc)
	case FormatTOML:
		err = toml.Unmarshal(raw, &doc)
	default:
		return KindUnknown, fmt.Errorf("%w: %s", ErrUnsupported, f)
	}
	if err != nil {
		return KindUnknown, err
	}
	return ParseKind(doc.Kind)
}
