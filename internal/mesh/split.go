package mesh

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/vatbake/pkg/math"
	"github.com/Faultbox/vatbake/pkg/obj"
)

// ErrInvalidGeometry reports degenerate faces, zero-length normals, or
// non-finite rest-pose data in the source mesh.
var ErrInvalidGeometry = errors.New("invalid geometry")

// DefaultNormalEpsilon is the corner-clustering angle threshold in
// radians (0.1 degrees).
const DefaultNormalEpsilon = 0.1 * gomath.Pi / 180

// Split builds a PointMesh from a source mesh. Corners sharing a vertex
// are clustered by normal direction: corners whose normals differ from a
// cluster's by at most normalEps radians merge onto one Point, anything
// sharper becomes a new Point. normalEps <= 0 selects
// DefaultNormalEpsilon.
func Split(src *obj.Mesh, normalEps float32) (*PointMesh, error) {
	if len(src.Triangles) == 0 {
		return nil, fmt.Errorf("%w: mesh has no faces", ErrInvalidGeometry)
	}
	if normalEps <= 0 {
		normalEps = DefaultNormalEpsilon
	}
	cosEps := float32(gomath.Cos(float64(normalEps)))

	for i, p := range src.Positions {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: non-finite position at vertex %d", ErrInvalidGeometry, i)
		}
	}

	cornerNormals, err := restCornerNormals(src)
	if err != nil {
		return nil, err
	}

	pm := &PointMesh{
		Triangles:   make([][3]int, len(src.Triangles)),
		cornerPoint: make([]int, len(src.Triangles)*3),
		vertices:    len(src.Positions),
	}

	// Clusters are created in corner order, so point numbering is
	// deterministic for a given source mesh and epsilon.
	byVertex := make(map[int][]int)
	normalSums := []math.Vec3{}

	for t, tri := range src.Triangles {
		for c := 0; c < 3; c++ {
			corner := t*3 + c
			vert := tri[c].Position
			n := cornerNormals[corner]

			point := -1
			for _, p := range byVertex[vert] {
				// Compare against the cluster's founding normal so
				// membership does not drift as the cluster grows.
				if n.Dot(pm.Points[p].Normal) >= cosEps {
					point = p
					break
				}
			}
			if point < 0 {
				point = len(pm.Points)
				pm.Points = append(pm.Points, Point{
					Vertex:   vert,
					Position: src.Positions[vert],
					Normal:   n,
					UV:       cornerUV(src, tri[c]),
				})
				normalSums = append(normalSums, math.Vec3{})
				byVertex[vert] = append(byVertex[vert], point)
			}
			pm.Points[point].Corners = append(pm.Points[point].Corners, corner)
			normalSums[point] = normalSums[point].Add(n)
			pm.cornerPoint[corner] = point
			pm.Triangles[t][c] = point
		}
	}

	// Replace founding normals with the cluster averages.
	for i := range pm.Points {
		avg := normalSums[i].Normalize()
		if avg.IsZero() {
			return nil, fmt.Errorf("%w: normals cancel out at point %d", ErrInvalidGeometry, i)
		}
		pm.Points[i].Normal = avg
	}
	return pm, nil
}

// restCornerNormals resolves one unit normal per corner, failing on
// degenerate faces and zero-length normals.
func restCornerNormals(src *obj.Mesh) ([]math.Vec3, error) {
	normals := make([]math.Vec3, len(src.Triangles)*3)
	for t, tri := range src.Triangles {
		if tri[0].Position == tri[1].Position ||
			tri[1].Position == tri[2].Position ||
			tri[0].Position == tri[2].Position {
			return nil, fmt.Errorf("%w: face %d repeats a vertex", ErrInvalidGeometry, t)
		}
		a := src.Positions[tri[0].Position]
		b := src.Positions[tri[1].Position]
		c := src.Positions[tri[2].Position]
		faceN := b.Sub(a).Cross(c.Sub(a))
		if faceN.LengthSqr() < 1e-20 {
			return nil, fmt.Errorf("%w: face %d has zero area", ErrInvalidGeometry, t)
		}
		faceN = faceN.Normalize()

		for i := 0; i < 3; i++ {
			n := faceN
			if tri[i].Normal >= 0 {
				n = src.Normals[tri[i].Normal]
				if n.LengthSqr() < 1e-20 {
					return nil, fmt.Errorf("%w: face %d corner %d has a zero-length normal",
						ErrInvalidGeometry, t, i)
				}
				n = n.Normalize()
			}
			if !n.IsFinite() {
				return nil, fmt.Errorf("%w: face %d corner %d has a non-finite normal",
					ErrInvalidGeometry, t, i)
			}
			normals[t*3+i] = n
		}
	}
	return normals, nil
}

func cornerUV(src *obj.Mesh, c obj.Corner) math.Vec2 {
	if c.UV >= 0 {
		return src.UVs[c.UV]
	}
	return math.Vec2{}
}
