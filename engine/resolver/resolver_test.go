package resolver

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDirectoryResolver(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.wgsl"), []byte("// hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewDirectoryResolver(dir)

	text, err := r.ReadText("main.wgsl")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != "// hi" {
		t.Errorf("got %q, want %q", text, "// hi")
	}

	if _, err := r.ReadBytes("missing.png"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestArchiveResolver(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("main.wgsl")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("// hi"))
	zw.Close()

	if !LooksLikeArchive(buf.Bytes()) {
		t.Fatal("expected zip magic to be detected")
	}

	r, err := NewArchiveResolver(buf.Bytes())
	if err != nil {
		t.Fatalf("NewArchiveResolver: %v", err)
	}

	text, err := r.ReadText("main.wgsl")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != "// hi" {
		t.Errorf("got %q, want %q", text, "// hi")
	}

	if _, err := r.ReadBytes("missing.png"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
