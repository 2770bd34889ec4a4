// Package mesh preprocesses triangle meshes for vertex-animation baking:
// corners with divergent normals are split into topologically distinct
// points, and per-point tangent frames are derived from UV gradients.
package mesh

import (
	"github.com/Faultbox/vatbake/pkg/math"
)

// Point is a topologically distinct mesh corner after splitting. Corners
// of the source mesh that share a vertex and agree on normal direction
// collapse onto one Point.
type Point struct {
	// Vertex is the source position index the point was split from.
	Vertex int
	// Position is the rest-pose position.
	Position math.Vec3
	// Normal is the rest-pose normal (cluster average, unit length).
	Normal math.Vec3
	// UV is the source texture coordinate, used for tangent gradients.
	UV math.Vec2
	// Corners lists the flat corner indices (triangle*3 + corner) that
	// belong to this point's cluster.
	Corners []int
}

// PointMesh is the preprocessed mesh the baking pipeline operates on.
// Point indices are stable and deterministic for a given source mesh.
type PointMesh struct {
	Points    []Point
	Triangles [][3]int

	// cornerPoint maps flat corner indices to point indices.
	cornerPoint []int
	// vertices is the source position count, kept for topology checks.
	vertices int
}

// PointCount returns the number of points after splitting.
func (pm *PointMesh) PointCount() int {
	return len(pm.Points)
}

// CornerPoint returns the point index of flat corner i.
func (pm *PointMesh) CornerPoint(i int) int {
	return pm.cornerPoint[i]
}
