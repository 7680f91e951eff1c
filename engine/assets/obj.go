package assets

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nullrefgames/wgslhost/internal/hosterr"
)

// vec3 is a minimal local vector type; engine/assets has no reason to
// depend on a math/vector package for three float32s.
type vec3 struct{ x, y, z float32 }

func (a vec3) add(b vec3) vec3    { return vec3{a.x + b.x, a.y + b.y, a.z + b.z} }
func (a vec3) sub(b vec3) vec3    { return vec3{a.x - b.x, a.y - b.y, a.z - b.z} }
func (a vec3) cross(b vec3) vec3 {
	return vec3{a.y*b.z - a.z*b.y, a.z*b.x - a.x*b.z, a.x*b.y - a.y*b.x}
}
func (a vec3) normalized() vec3 {
	length := float32(math.Sqrt(float64(a.x*a.x + a.y*a.y + a.z*a.z)))
	if length == 0 {
		return vec3{}
	}
	return vec3{a.x / length, a.y / length, a.z / length}
}

// faceVertex is one a/b/c corner of an OBJ face: 1-based indices into the
// v and vn lists (0 means "not given").
type faceVertex struct {
	posIndex    int
	normalIndex int
}

// ModelData is the flat, per-vertex expansion of an OBJ mesh: no index
// buffer, positions[i] and normals[i] describe the same vertex i, per
// §4.4. Each is padded to 16 bytes (vec4, w=0) to match the storage
// buffer layout the Binding Planner declares for group 2.
type ModelData struct {
	Positions   []float32 // len = 4 * VertexCount
	Normals     []float32 // len = 4 * VertexCount
	VertexCount int
}

// ParseOBJ parses a Wavefront OBJ's v/vn/f lines per §4.4: faces are
// triangle-fanned from their first vertex if more than three are given; if
// the file has no vn lines, normals are computed by summing per-face cross
// products into each referenced vertex and normalizing.
func ParseOBJ(path string, data []byte) (*ModelData, error) {
	var positions []vec3
	var normals []vec3
	var faces [][]faceVertex

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, hosterr.NewPath(hosterr.ObjParse, path, err)
			}
			positions = append(positions, v)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, hosterr.NewPath(hosterr.ObjParse, path, err)
			}
			normals = append(normals, n)
		case "f":
			if len(fields) < 4 {
				return nil, hosterr.NewPath(hosterr.ObjParse, path, fmt.Errorf("face requires at least 3 vertices, got %d", len(fields)-1))
			}
			face := make([]faceVertex, len(fields)-1)
			for i, tok := range fields[1:] {
				fv, err := parseFaceVertex(tok)
				if err != nil {
					return nil, hosterr.NewPath(hosterr.ObjParse, path, err)
				}
				face[i] = fv
			}
			faces = append(faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, hosterr.NewPath(hosterr.ObjParse, path, err)
	}

	computedNormals := make([]vec3, len(positions))
	needsComputedNormals := len(normals) == 0
	if needsComputedNormals {
		for _, face := range triangulate(faces) {
			a := positions[face[0].posIndex-1]
			b := positions[face[1].posIndex-1]
			c := positions[face[2].posIndex-1]
			n := b.sub(a).cross(c.sub(a))
			for _, fv := range face {
				computedNormals[fv.posIndex-1] = computedNormals[fv.posIndex-1].add(n)
			}
		}
		for i := range computedNormals {
			computedNormals[i] = computedNormals[i].normalized()
		}
	}

	triangles := triangulate(faces)
	out := &ModelData{
		Positions:   make([]float32, 0, 4*3*len(triangles)),
		Normals:     make([]float32, 0, 4*3*len(triangles)),
		VertexCount: 3 * len(triangles),
	}
	for _, tri := range triangles {
		for _, fv := range tri {
			p := positions[fv.posIndex-1]
			out.Positions = append(out.Positions, p.x, p.y, p.z, 0)

			var n vec3
			if needsComputedNormals {
				n = computedNormals[fv.posIndex-1]
			} else if fv.normalIndex > 0 {
				n = normals[fv.normalIndex-1]
			}
			out.Normals = append(out.Normals, n.x, n.y, n.z, 0)
		}
	}
	return out, nil
}

// triangulate fans every face into triangles sharing its first vertex, so a
// quad or n-gon expands into n-2 triangles.
func triangulate(faces [][]faceVertex) [][3]faceVertex {
	var out [][3]faceVertex
	for _, face := range faces {
		for i := 1; i < len(face)-1; i++ {
			out = append(out, [3]faceVertex{face[0], face[i], face[i+1]})
		}
	}
	return out
}

func parseVec3(fields []string) (vec3, error) {
	if len(fields) < 3 {
		return vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 32)
	if err != nil {
		return vec3{}, err
	}
	return vec3{float32(x), float32(y), float32(z)}, nil
}

// parseFaceVertex parses one "a", "a/b", "a/b/c", or "a//c" face corner
// into 1-based position/normal indices.
func parseFaceVertex(tok string) (faceVertex, error) {
	parts := strings.Split(tok, "/")
	pos, err := strconv.Atoi(parts[0])
	if err != nil {
		return faceVertex{}, fmt.Errorf("malformed face vertex %q: %w", tok, err)
	}
	fv := faceVertex{posIndex: pos}
	if len(parts) == 3 && parts[2] != "" {
		normIdx, err := strconv.Atoi(parts[2])
		if err != nil {
			return faceVertex{}, fmt.Errorf("malformed face normal index %q: %w", tok, err)
		}
		fv.normalIndex = normIdx
	}
	return fv, nil
}
