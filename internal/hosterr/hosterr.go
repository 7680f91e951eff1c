// Package hosterr defines the typed error kinds the core produces (§7 of the
// dialect contract) and the fatal/degraded propagation policy around them.
// Callers use errors.As to recover a *Error and inspect its Kind rather than
// matching on error strings.
package hosterr

import "fmt"

// Kind classifies a failure by its origin so callers can decide whether it
// is fatal-at-load or degrades a single frame/asset.
type Kind int

const (
	// AssetNotFound means a directive references a file the resolver
	// cannot find. Fatal at load.
	AssetNotFound Kind = iota

	// PreprocessSyntax means a directive's arguments are malformed.
	// Fatal at load.
	PreprocessSyntax

	// ShaderCompile means the downstream WGSL compiler rejected the
	// generated source. Fatal at load.
	ShaderCompile

	// GpuDeviceLost is reported once and surfaced to the embedder.
	GpuDeviceLost

	// AudioDecode means an audio asset's bytes could not be decoded.
	// Fatal if the sound was referenced by name; a failed camera/video
	// frame decode instead degrades to a 1x1 black texture.
	AudioDecode

	// ImageDecode means a texture's bytes could not be decoded.
	ImageDecode

	// ObjParse means a model file failed to parse as OBJ.
	ObjParse

	// OscIgnored means an inbound OSC message did not match any known
	// address and was dropped. Never reported to the caller; this kind
	// exists only so the decision is traceable in code, not logs.
	OscIgnored
)

func (k Kind) String() string {
	switch k {
	case AssetNotFound:
		return "AssetNotFound"
	case PreprocessSyntax:
		return "PreprocessSyntax"
	case ShaderCompile:
		return "ShaderCompile"
	case GpuDeviceLost:
		return "GpuDeviceLost"
	case AudioDecode:
		return "AudioDecode"
	case ImageDecode:
		return "ImageDecode"
	case ObjParse:
		return "ObjParse"
	case OscIgnored:
		return "OscIgnored"
	default:
		return "Unknown"
	}
}

// Error wraps an underlying cause with a Kind and the asset path (if any)
// that produced it.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error of the given kind wrapping err, with no associated
// path.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// NewPath constructs an Error of the given kind for a specific asset path.
func NewPath(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Fatal reports whether an error of this kind aborts the shader load
// entirely, per §7's propagation policy. GpuDeviceLost, per-frame OSC
// drops, and optional-asset decode failures are not fatal; everything else
// that reaches the preprocessor or a required asset load is.
func (k Kind) Fatal() bool {
	switch k {
	case AssetNotFound, PreprocessSyntax, ShaderCompile:
		return true
	default:
		// AudioDecode/ImageDecode/ObjParse are fatal only when the asset
		// was required (a referenced texture/model/sound); the Asset
		// Pipeline decides that per call site and wraps accordingly with
		// NewPath, so the Kind alone cannot say yes/no for those three.
		return false
	}
}
