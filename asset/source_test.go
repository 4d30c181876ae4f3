package asset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gpures/codec"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		path   string
		name   string
		kind   string
		format codec.Format
	}{
		{"assets/cube.mesh.yaml", "cube", "mesh", codec.FormatYAML},
		{"cube.Mesh.toml", "cube", "mesh", codec.FormatTOML},
		{"dir/brick.wall.texture.bin", "brick.wall", "texture", codec.FormatBinary},
		{"brick.png", "brick", "texture", codec.FormatImage},
		{"brick.texture.jpg", "brick", "texture", codec.FormatImage},
		{"hero.v2.png", "hero.v2", "texture", codec.FormatImage},
		{"sprites/hero.Texture.bmp", "hero", "texture", codec.FormatImage},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			name, kind, f, err := ParsePath(tt.path)
			if err != nil {
				t.Fatalf("ParsePath() error = %v", err)
			}
			if name != tt.name || kind != tt.kind || f != tt.format {
				t.Errorf("ParsePath() = %q, %q, %v, want %q, %q, %v", name, kind, f, tt.name, tt.kind, tt.format)
			}
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, path := range []string{"cube.yaml", "notes.txt", ".mesh.yaml", "README"} {
		if _, _, _, err := ParsePath(path); !errors.Is(err, ErrSourceName) {
			t.Errorf("ParsePath(%q) error = %v, want ErrSourceName", path, err)
		}
	}
}

func TestParsePathNormalizesName(t *testing.T) {
	// "é" as e + combining acute accent.
	decomposed := "cafe\u0301.mesh.yaml"
	name, _, _, err := ParsePath(decomposed)
	if err != nil {
		t.Fatalf("ParsePath() error = %v", err)
	}
	if name != "caf\u00e9" {
		t.Errorf("ParsePath() name = %q, want NFC %q", name, "caf\u00e9")
	}
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.note.yaml")
	if err := os.WriteFile(path, []byte("hi"), 0o600); err != nil {
		t.Fatal(err)
	}
	src, err := ReadSource(path)
	if err != nil {
		t.Fatalf("ReadSource() error = %v", err)
	}
	if src.Name != "hello" || src.Kind != "note" || src.Format != codec.FormatYAML || string(src.Data) != "hi" || src.Path != path {
		t.Errorf("ReadSource() = %+v", src)
	}

	if _, err := ReadSource(filepath.Join(dir, "missing.note.yaml")); err == nil {
		t.Error("ReadSource(missing) should fail")
	}
}

func TestReadDir(t *testing.T) {
	registerNote(t)
	dir := t.TempDir()
	files := map[string]string{
		"a.note.yaml":         "a",
		"sub/b.note.toml":     "b",
		"c.unregistered.yaml": "c",
		"README.md":           "docs",
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	srcs, err := ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(srcs) != 2 {
		t.Fatalf("ReadDir() returned %d sources, want 2: %v", len(srcs), srcs)
	}
	got := map[string]bool{}
	for _, s := range srcs {
		got[s.Name] = true
	}
	if !got["a"] || !got["b"] {
		t.Errorf("ReadDir() = %v, want a and b", srcs)
	}
}
