package parse

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrQuadFaces is returned for faces with four vertices. Export meshes
// triangulated.
var ErrQuadFaces = errors.New("obj: quad faces are not supported")

// FaceVertex holds the 1-based position, uv and normal indices of one
// face corner.
type FaceVertex [3]int

// Obj is a Wavefront OBJ mesh made of triangles.
type Obj struct {
	Positions [][3]float32
	UVs       [][2]float32
	Normals   [][3]float32
	// Faces lists the corners of all triangles, three per triangle.
	Faces []FaceVertex
}

// ParseObj reads v, vt, vn and f statements; everything else is skipped.
// Faces must be triangles written as pos/uv/normal.
func ParseObj(buf []byte) (*Obj, error) {
	obj := &Obj{}
	sc := bufio.NewScanner(bytes.NewReader(buf))
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		var err error
		switch fields[0] {
		case "v":
			var v [3]float32
			err = parseFloats(fields[1:], v[:])
			obj.Positions = append(obj.Positions, v)
		case "vt":
			var vt [2]float32
			err = parseFloats(fields[1:], vt[:])
			obj.UVs = append(obj.UVs, vt)
		case "vn":
			var vn [3]float32
			err = parseFloats(fields[1:], vn[:])
			obj.Normals = append(obj.Normals, vn)
		case "f":
			err = obj.parseFace(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("obj line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	if err := obj.validate(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseFloats(fields []string, dst []float32) error {
	if len(fields) != len(dst) {
		return fmt.Errorf("expected %d components, got %d", len(dst), len(fields))
	}
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return err
		}
		dst[i] = float32(v)
	}
	return nil
}

func (o *Obj) parseFace(corners []string) error {
	switch len(corners) {
	case 3:
	case 4:
		return ErrQuadFaces
	default:
		return fmt.Errorf("unsupported face with %d vertices", len(corners))
	}
	for _, c := range corners {
		parts := strings.Split(c, "/")
		if len(parts) != 3 {
			return fmt.Errorf("face vertex %q: want pos/uv/normal", c)
		}
		var fv FaceVertex
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return fmt.Errorf("face vertex %q: %w", c, err)
			}
			fv[i] = n
		}
		o.Faces = append(o.Faces, fv)
	}
	return nil
}

func (o *Obj) validate() error {
	limits := [3]int{len(o.Positions), len(o.UVs), len(o.Normals)}
	names := [3]string{"position", "uv", "normal"}
	for i, fv := range o.Faces {
		for k, idx := range fv {
			if idx < 1 || idx > limits[k] {
				return fmt.Errorf("obj: face %d: %s index %d out of range [1, %d]", i/3, names[k], idx, limits[k])
			}
		}
	}
	return nil
}

// Vertices expands the faces into position(3), uv(2), normal(3) floats,
// the gles.LayoutPosUVNormal layout.
func (o *Obj) Vertices() []float32 {
	out := make([]float32, 0, len(o.Faces)*8)
	for _, fv := range o.Faces {
		p := o.Positions[fv[0]-1]
		uv := o.UVs[fv[1]-1]
		n := o.Normals[fv[2]-1]
		out = append(out, p[0], p[1], p[2], uv[0], uv[1], n[0], n[1], n[2])
	}
	return out
}
