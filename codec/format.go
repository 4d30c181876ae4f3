package codec

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a serialization format.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatBinary
	FormatYAML
	FormatTOML
	FormatImage
)

var formatNames = [...]string{
	FormatUnknown: "unknown",
	FormatBinary:  "binary",
	FormatYAML:    "yaml",
	FormatTOML:    "toml",
	FormatImage:   "image",
}

// String returns the format name.
func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Formats returns every known format.
func Formats() []Format {
	return []Format{FormatBinary, FormatYAML, FormatTOML, FormatImage}
}

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(name, f.String()) {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("codec: unknown format %q", name)
}

var extFormats = map[string]Format{
	".bin":  FormatBinary,
	".gpr":  FormatBinary,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
	".png":  FormatImage,
	".jpg":  FormatImage,
	".jpeg": FormatImage,
	".bmp":  FormatImage,
	".tif":  FormatImage,
	".tiff": FormatImage,
	".webp": FormatImage,
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return FormatUnknown, fmt.Errorf("codec: no format for extension %q", ext)
}

// Extension returns the canonical file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatBinary:
		return ".bin"
	case FormatYAML:
		return ".yaml"
	case FormatTOML:
		return ".toml"
	case FormatImage:
		return ".png"
	default:
		return ""
	}
}

// Kind identifies the payload stored in a serialized file.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindMesh
	KindTexture
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "mesh":
		return KindMesh, nil
	case "texture":
		return KindTexture, nil
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrKind, name)
}
