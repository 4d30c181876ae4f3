package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/codec"
	"golang.org/x/text/unicode/norm"
)

// ErrSourceName is returned for file names that do not follow the
// name.<kind>.<ext> convention.
var ErrSourceName = errors.New("asset: source name must be name.<kind>.<ext>")

// Source is one serialized asset.
type Source struct {
	// Name is the asset name in Unicode NFC form.
	Name string
	// Kind is the registered kind name ("mesh", "texture").
	Kind string
	// Format is the serialization format of Data.
	Format codec.Format
	// Data holds the serialized bytes.
	Data []byte
	// Path is the file the source was read from, if any.
	Path string
}

func (s Source) String() string {
	return fmt.Sprintf("%s.%s (%s, %d bytes)", s.Name, s.Kind, s.Format, len(s.Data))
}

// ParsePath splits a file path of the form dir/name.<kind>.<ext> into its
// asset name, kind and format. Image files are always textures: a
// ".texture" segment is dropped and any other dotted part stays in the name.
func ParsePath(path string) (name, kind string, f codec.Format, err error) {
	base := filepath.Base(path)
	f, err = codec.FormatFromPath(base)
	if err != nil {
		return "", "", codec.FormatUnknown, fmt.Errorf("%w: %q: %w", ErrSourceName, base, err)
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	texture := codec.KindTexture.String()
	if f == codec.FormatImage {
		name, kind = stem, texture
		if i := strings.LastIndexByte(stem, '.'); i > 0 && strings.EqualFold(stem[i+1:], texture) {
			name = stem[:i]
		}
	} else if i := strings.LastIndexByte(stem, '.'); i > 0 {
		name, kind = stem[:i], strings.ToLower(stem[i+1:])
	} else {
		return "", "", codec.FormatUnknown, fmt.Errorf("%w: %q", ErrSourceName, base)
	}
	if name == "" {
		return "", "", codec.FormatUnknown, fmt.Errorf("%w: %q", ErrSourceName, base)
	}
	return norm.NFC.String(name), kind, f, nil
}

// ReadSource reads a source file.
func ReadSource(path string) (Source, error) {
	name, kind, f, err := ParsePath(path)
	if err != nil {
		return Source{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("asset: read source: %w", err)
	}
	return Source{Name: name, Kind: kind, Format: f, Data: data, Path: path}, nil
}

// ReadDir reads every source file below dir whose kind is registered.
// Files that do not follow the naming convention are skipped.
func ReadDir(dir string) ([]Source, error) {
	var out []Source
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		_, kind, _, perr := ParsePath(path)
		if perr != nil {
			gpures.Logger().Debug("asset: skipping file", "path", path, "reason", perr)
			return nil
		}
		if _, ok := LookupName(kind); !ok {
			gpures.Logger().Warn("asset: skipping unregistered kind", "path", path, "kind", kind)
			return nil
		}
		src, err := ReadSource(path)
		if err != nil {
			return err
		}
		out = append(out, src)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("asset: read dir %s: %w", dir, err)
	}
	return out, nil
}
