// Package resolver implements the File Resolver (§4.1): an abstract
// byte/text read by relative path, backed either by a directory on disk or
// an in-memory archive. The preprocessor and asset pipeline only ever see
// this interface, so a shader loaded from a zip and one loaded from a
// directory go through identical code past this point.
package resolver

import (
	"fmt"

	"github.com/nullrefgames/wgslhost/internal/hosterr"
)

// Resolver reads a game's files by path relative to its root, regardless of
// whether the root is a directory or an archive.
type Resolver interface {
	// ReadBytes returns the raw contents of path. Returns a
	// *hosterr.Error of kind AssetNotFound if path does not exist.
	ReadBytes(path string) ([]byte, error)

	// ReadText returns the contents of path decoded as UTF-8.
	ReadText(path string) (string, error)

	// List returns every path known to this resolver, in no particular
	// order. Used by the CLI to find the .wgsl entry file in a loaded archive.
	List() []string
}

func notFound(path string) error {
	return hosterr.NewPath(hosterr.AssetNotFound, path, fmt.Errorf("asset not found"))
}
