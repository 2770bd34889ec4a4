// Package obj provides a Wavefront OBJ reader and writer for indexed
// triangle meshes with per-corner texture coordinates and normals.
package obj

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/vatbake/pkg/math"
)

// OBJ format errors.
var (
	ErrMalformedLine = errors.New("malformed OBJ line")
	ErrInvalidIndex  = errors.New("face index out of range")
	ErrNoFaces       = errors.New("OBJ contains no faces")
)

// Corner references the attributes of one triangle corner. UV and Normal
// are -1 when the face did not specify them.
type Corner struct {
	Position int
	UV       int
	Normal   int
}

// Triangle is one triangulated face, three corners in winding order.
type Triangle [3]Corner

// Mesh is an indexed triangle mesh as read from or written to an OBJ file.
// Faces with more than three corners are fan-triangulated on parse.
type Mesh struct {
	Positions []math.Vec3
	UVs       []math.Vec2
	Normals   []math.Vec3
	Triangles []Triangle
}

// ParseFile reads and parses an OBJ file.
func ParseFile(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses OBJ data. Supported statements: v, vt, vn, f; everything
// else (groups, materials, comments) is skipped.
func Parse(data []byte) (*Mesh, error) {
	m := &Mesh{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedLine, err)
			}
			m.Positions = append(m.Positions, v)
		case "vt":
			v, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedLine, err)
			}
			m.UVs = append(m.UVs, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedLine, err)
			}
			m.Normals = append(m.Normals, v)
		case "f":
			if err := m.parseFace(fields[1:], lineNo); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(m.Triangles) == 0 {
		return nil, ErrNoFaces
	}
	return m, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("want 3 components, got %d", len(fields))
	}
	var c [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, err
		}
		c[i] = float32(f)
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

func parseVec2(fields []string) (math.Vec2, error) {
	if len(fields) < 2 {
		return math.Vec2{}, fmt.Errorf("want 2 components, got %d", len(fields))
	}
	u, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return math.Vec2{}, err
	}
	v, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return math.Vec2{}, err
	}
	return math.Vec2{X: float32(u), Y: float32(v)}, nil
}

// parseFace parses one f statement, fan-triangulating polygons.
func (m *Mesh) parseFace(fields []string, lineNo int) error {
	if len(fields) < 3 {
		return fmt.Errorf("line %d: %w: face with %d corners", lineNo, ErrMalformedLine, len(fields))
	}
	corners := make([]Corner, len(fields))
	for i, f := range fields {
		c, err := m.parseCorner(f)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		corners[i] = c
	}
	for i := 1; i+1 < len(corners); i++ {
		m.Triangles = append(m.Triangles, Triangle{corners[0], corners[i], corners[i+1]})
	}
	return nil
}

// parseCorner parses a "v", "v/vt", "v//vn" or "v/vt/vn" reference.
// OBJ indices are one-based; negative indices count back from the end of
// the respective list.
func (m *Mesh) parseCorner(s string) (Corner, error) {
	parts := strings.Split(s, "/")
	c := Corner{UV: -1, Normal: -1}

	pos, err := m.resolveIndex(parts[0], len(m.Positions))
	if err != nil {
		return c, err
	}
	c.Position = pos

	if len(parts) > 1 && parts[1] != "" {
		uv, err := m.resolveIndex(parts[1], len(m.UVs))
		if err != nil {
			return c, err
		}
		c.UV = uv
	}
	if len(parts) > 2 && parts[2] != "" {
		n, err := m.resolveIndex(parts[2], len(m.Normals))
		if err != nil {
			return c, err
		}
		c.Normal = n
	}
	return c, nil
}

func (m *Mesh) resolveIndex(s string, count int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLine, s)
	}
	if idx < 0 {
		idx = count + idx
	} else {
		idx--
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: %s (have %d)", ErrInvalidIndex, s, count)
	}
	return idx, nil
}
