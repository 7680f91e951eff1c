package resolver

import (
	"io/fs"
	"os"
	"path/filepath"
)

// directoryResolver resolves paths relative to a root directory on disk.
type directoryResolver struct {
	root string
}

// NewDirectoryResolver returns a Resolver rooted at the given directory.
// Paths passed to ReadBytes/ReadText are joined onto root with
// filepath.Join; a path that is absolute or whose ".." segments would climb
// above root is reported as not found, so lookups cannot escape root.
func NewDirectoryResolver(root string) Resolver {
	return &directoryResolver{root: root}
}

func (d *directoryResolver) ReadBytes(path string) ([]byte, error) {
	if !filepath.IsLocal(filepath.FromSlash(path)) {
		return nil, notFound(path)
	}
	full := filepath.Join(d.root, filepath.FromSlash(path))
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(path)
		}
		return nil, err
	}
	return data, nil
}

func (d *directoryResolver) ReadText(path string) (string, error) {
	data, err := d.ReadBytes(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (d *directoryResolver) List() []string {
	var paths []string
	filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(d.root, path)
		if relErr != nil {
			return nil
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	return paths
}
