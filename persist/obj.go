package persist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// bitSize reports the floating-point width of T, used to pick a
// strconv.FormatFloat/ParseFloat precision that round-trips exactly
// (mirrors the any(x).(type) dispatch idiom of the numeric package).
func bitSize[T numeric.Scalar]() int {
	switch any(T(0)).(type) {
	case float32:
		return 32
	default:
		return 64
	}
}

// EncodeOBJ writes mesh to w in Wavefront OBJ text form: one
// "v x y z" line per vertex, one "vn x y z" line per normal (only if mesh
// has normals), then one "f a b c" line per triangle using 1-based
// vertex/normal indices ("a//a" form when normals are present).
func EncodeOBJ[T numeric.Scalar](mesh *geom.Mesh[T], w io.Writer) error {
	bits := bitSize[T]()
	bw := bufio.NewWriter(w)

	fv := func(x T) string { return strconv.FormatFloat(float64(x), 'g', -1, bits) }

	for _, v := range mesh.Vertices() {
		if _, err := fmt.Fprintf(bw, "v %s %s %s\n", fv(v.X), fv(v.Y), fv(v.Z)); err != nil {
			return fmt.Errorf("%w: %v", ierrors.ErrIO, err)
		}
	}

	hasNormals := mesh.Normals() != nil
	if hasNormals {
		for _, n := range mesh.Normals() {
			if _, err := fmt.Fprintf(bw, "vn %s %s %s\n", fv(n.X), fv(n.Y), fv(n.Z)); err != nil {
				return fmt.Errorf("%w: %v", ierrors.ErrIO, err)
			}
		}
	}

	tris := mesh.Triangles()
	for i := 0; i < len(tris); i += 3 {
		a, b, c := tris[i]+1, tris[i+1]+1, tris[i+2]+1
		var err error
		if hasNormals {
			_, err = fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		} else {
			_, err = fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ierrors.ErrIO, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ierrors.ErrIO, err)
	}
	return nil
}

// DecodeOBJ reads a Wavefront OBJ document from r and returns the mesh it
// describes. Recognizes "v", "vn" and "f" directives; "f" accepts the
// "i", "i/j", "i/j/k" and "i//k" index forms. Any other directive
// (comments, "vt", "o", "g", "s", "mtllib"...) is ignored. Faces with
// more than three vertices are fan-triangulated around their first
// vertex.
func DecodeOBJ[T numeric.Scalar](r io.Reader) (*geom.Mesh[T], error) {
	var vertices, normals []geom.Vec3[T]
	var triangles []int
	vertexNormalIdx := make(map[int]int) // vertex index -> normal index, first reference wins
	sawFace := false

	bits := bitSize[T]()
	parseFloat := func(s string) (T, error) {
		f, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number: %v", ierrors.ErrParse, s, err)
		}
		return T(f), nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: \"v\" directive needs 3 coordinates: %q", ierrors.ErrParse, line)
			}
			x, err := parseFloat(fields[1])
			if err != nil {
				return nil, err
			}
			y, err := parseFloat(fields[2])
			if err != nil {
				return nil, err
			}
			z, err := parseFloat(fields[3])
			if err != nil {
				return nil, err
			}
			vertices = append(vertices, geom.NewVec3(x, y, z))

		case "vn":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: \"vn\" directive needs 3 coordinates: %q", ierrors.ErrParse, line)
			}
			x, err := parseFloat(fields[1])
			if err != nil {
				return nil, err
			}
			y, err := parseFloat(fields[2])
			if err != nil {
				return nil, err
			}
			z, err := parseFloat(fields[3])
			if err != nil {
				return nil, err
			}
			normals = append(normals, geom.NewVec3(x, y, z))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: \"f\" directive needs at least 3 vertices: %q", ierrors.ErrParse, line)
			}
			sawFace = true
			idx := make([]int, len(fields)-1)
			for i, tok := range fields[1:] {
				vi, ni, err := parseFaceToken(tok, len(vertices))
				if err != nil {
					return nil, err
				}
				idx[i] = vi
				if ni >= 0 {
					if _, seen := vertexNormalIdx[vi]; !seen {
						vertexNormalIdx[vi] = ni
					}
				}
			}
			for i := 1; i+1 < len(idx); i++ {
				triangles = append(triangles, idx[0], idx[i], idx[i+1])
			}

		default:
			// Unsupported directive (vt, o, g, s, mtllib, usemtl, ...): ignored.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ierrors.ErrIO, err)
	}

	var meshNormals []geom.Vec3[T]
	if sawFace && len(vertexNormalIdx) > 0 {
		meshNormals = make([]geom.Vec3[T], len(vertices))
		for vi, ni := range vertexNormalIdx {
			if ni >= 0 && ni < len(normals) {
				meshNormals[vi] = normals[ni]
			}
		}
	}

	return geom.NewMesh(vertices, meshNormals, triangles)
}

// parseFaceToken parses one "f" directive index group in any of the four
// OBJ forms (i / i/j / i/j/k / i//k), returning the 0-based vertex index
// and the 0-based normal index (-1 if none was given). Negative
// (relative-to-end) indices are resolved against vertexCount.
func parseFaceToken(tok string, vertexCount int) (vertexIdx, normalIdx int, err error) {
	parts := strings.Split(tok, "/")
	vi, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, -1, fmt.Errorf("%w: bad face index %q: %v", ierrors.ErrParse, tok, err)
	}
	if vi < 0 {
		vi = vertexCount + vi + 1
	}

	ni := -1
	if len(parts) == 3 && parts[2] != "" {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return 0, -1, fmt.Errorf("%w: bad normal index %q: %v", ierrors.ErrParse, tok, err)
		}
		ni = n - 1
	}

	return vi - 1, ni, nil
}
