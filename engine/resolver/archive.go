package resolver

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// zipMagic is the four-byte local file header signature every zip archive
// begins with, used to detect an Archive resolver from raw bytes before
// attempting to parse it.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// LooksLikeArchive reports whether data begins with the zip local file
// header magic, per §4.1's "detects its own magic" requirement.
func LooksLikeArchive(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

// archiveResolver is a flat map of filename to bytes, loaded once from a zip
// archive at construction.
type archiveResolver struct {
	files map[string][]byte
}

// NewArchiveResolver reads every file in the zip archive contained in data
// into memory. Paths are archive-relative, matching each zip.File.Name
// exactly (forward-slash separated, as zip always stores them).
func NewArchiveResolver(data []byte) (Resolver, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	files := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open archive entry %q: %w", f.Name, err)
		}
		contents, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read archive entry %q: %w", f.Name, err)
		}
		files[f.Name] = contents
	}

	return &archiveResolver{files: files}, nil
}

func (a *archiveResolver) ReadBytes(path string) ([]byte, error) {
	data, ok := a.files[path]
	if !ok {
		return nil, notFound(path)
	}
	return data, nil
}

func (a *archiveResolver) ReadText(path string) (string, error) {
	data, err := a.ReadBytes(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *archiveResolver) List() []string {
	paths := make([]string, 0, len(a.files))
	for name := range a.files {
		paths = append(paths, name)
	}
	return paths
}
