package wgsl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// typeLayout mirrors the teacher's wgslTypeLayout (engine/renderer/shader/
// wgsl_parser_types.go): a std430 size and alignment pair for one WGSL type.
type typeLayout struct {
	size  uint64
	align uint64
}

// primitiveLayouts covers exactly the subset §4.3 requires the Layout
// Calculator to recognize: scalars and 2/3/4-component float vectors.
// vec3f's 12-byte size with 16-byte alignment is the std430 rule that makes
// arrays of vec3f pad each element to a 16-byte stride.
var primitiveLayouts = map[string]typeLayout{
	"u32": {4, 4}, "i32": {4, 4}, "f32": {4, 4},
	"vec2f": {8, 8}, "vec2<f32>": {8, 8},
	"vec3f": {12, 16}, "vec3<f32>": {12, 16},
	"vec4f": {16, 16}, "vec4<f32>": {16, 16},
}

// roundUp rounds value up to the next multiple of alignment. alignment of 0
// is treated as a no-op so callers never need to special-case an unknown
// type's zero-value layout.
func roundUp(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// resolveTypeLayout resolves a WGSL type name to its std430 size and
// alignment, recursing into array<T, N> for any T this calculator knows
// about. Unknown element types or malformed array arguments return ok=false
// so the caller can report a PreprocessSyntax-style failure.
func resolveTypeLayout(typeName string) (typeLayout, bool) {
	typeName = strings.TrimSpace(typeName)
	if l, ok := primitiveLayouts[typeName]; ok {
		return l, true
	}
	if strings.HasPrefix(typeName, "array<") && strings.HasSuffix(typeName, ">") {
		inner := typeName[len("array<") : len(typeName)-1]
		parts := splitTopLevel(inner)
		if len(parts) != 2 {
			return typeLayout{}, false
		}
		elem, ok := resolveTypeLayout(strings.TrimSpace(parts[0]))
		if !ok {
			return typeLayout{}, false
		}
		n, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return typeLayout{}, false
		}
		stride := roundUp(elem.align, elem.size)
		return typeLayout{size: n * stride, align: elem.align}, true
	}
	return typeLayout{}, false
}

// splitTopLevel splits s on commas that are not nested inside <...>,
// matching the teacher's splitAtTopLevelCommas (engine/renderer/shader/
// wgsl_parser_backend.go) so array<T, N> with a bracketed T still splits
// into exactly two fields.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// gameStateRe locates the literal `struct GameState { ... }` block anywhere
// in the inlined source, per §9's "structural match" design note.
var gameStateRe = regexp.MustCompile(`(?s)struct\s+GameState\s*\{(.*?)\}`)

// GameStateField is one parsed member of the user's GameState struct, kept
// in declaration order. The header generator does not use these; it
// re-emits the struct from ComputeGameStateLayout's raw text.
type GameStateField struct {
	Name string
	Type string
}

// ComputeGameStateLayout parses the GameState struct literal (if any) out of
// source and computes its std430 size and alignment. If no GameState struct
// is present, it returns the §4.3 sentinel: size 16, alignment 4, no fields,
// matching §9's "shader code that references @engine.state must not exist"
// rule for that case. raw is the exact matched struct declaration text
// (`struct GameState { ... }`, trimmed), used by the header generator to
// re-emit the struct without re-deriving its syntax.
func ComputeGameStateLayout(source string) (size, alignment uint64, fields []GameStateField, raw string, err error) {
	m := gameStateRe.FindStringSubmatch(source)
	if m == nil {
		return 16, 4, nil, "", nil
	}

	offset := uint64(0)
	maxAlign := uint64(4)
	for _, rawField := range splitTopLevel(m[1]) {
		field := strings.TrimSpace(rawField)
		if field == "" {
			continue
		}
		nameType := strings.SplitN(field, ":", 2)
		if len(nameType) != 2 {
			return 0, 0, nil, "", fmt.Errorf("malformed GameState field %q", field)
		}
		name := strings.TrimSpace(nameType[0])
		typeName := strings.TrimSpace(nameType[1])
		layout, ok := resolveTypeLayout(typeName)
		if !ok {
			return 0, 0, nil, "", fmt.Errorf("unsupported GameState field type %q for member %q", typeName, name)
		}
		offset = roundUp(layout.align, offset)
		offset += layout.size
		if layout.align > maxAlign {
			maxAlign = layout.align
		}
		fields = append(fields, GameStateField{Name: name, Type: typeName})
	}

	size = roundUp(maxAlign, offset)
	return size, maxAlign, fields, strings.TrimSpace(m[0]), nil
}
