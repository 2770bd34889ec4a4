package mesh

import (
	"fmt"

	"github.com/Faultbox/vatbake/pkg/math"
	"github.com/Faultbox/vatbake/pkg/obj"
)

// Sample is the evaluated geometry of one point at one frame.
type Sample struct {
	Position math.Vec3
	Normal   math.Vec3
	// Basis is the orthonormal tangent frame with rows (N, T, B), B = N x T.
	Basis math.Mat3
}

// CheckTopology verifies that an evaluated frame mesh has the same
// topology as the mesh this PointMesh was split from: same vertex and
// face counts, and every corner referencing the same vertex.
func (pm *PointMesh) CheckTopology(src *obj.Mesh) error {
	if len(src.Positions) != pm.vertices {
		return fmt.Errorf("vertex count changed: %d -> %d", pm.vertices, len(src.Positions))
	}
	if len(src.Triangles) != len(pm.Triangles) {
		return fmt.Errorf("face count changed: %d -> %d", len(pm.Triangles), len(src.Triangles))
	}
	for t, tri := range src.Triangles {
		for c := 0; c < 3; c++ {
			want := pm.Points[pm.cornerPoint[t*3+c]].Vertex
			if tri[c].Position != want {
				return fmt.Errorf("face %d corner %d references vertex %d, expected %d",
					t, c, tri[c].Position, want)
			}
		}
	}
	return nil
}

// FrameGeometry evaluates per-point position, normal, and tangent frame
// for a frame mesh. The caller must have verified topology first. Points
// whose geometry degenerates at this frame (zero-area faces, cancelled
// normals) come back with a zero Normal; validity is the caller's check,
// so the offending point and frame can be reported together.
func (pm *PointMesh) FrameGeometry(src *obj.Mesh) []Sample {
	samples := make([]Sample, len(pm.Points))
	for i, pt := range pm.Points {
		samples[i].Position = src.Positions[pt.Vertex]
	}

	normals := pm.frameNormals(src)
	tangents := pm.frameTangents(src)

	for i := range samples {
		n := normals[i]
		samples[i].Normal = n
		if n.IsZero() {
			continue
		}

		// Gram-Schmidt the accumulated tangent against the normal.
		t := tangents[i]
		t = t.Sub(n.Scale(n.Dot(t)))
		if t.LengthSqr() < 1e-12 {
			t = perpendicular(n)
		}
		t = t.Normalize()
		b := n.Cross(t)
		samples[i].Basis = math.Basis(n, t, b)
	}
	return samples
}

// frameNormals averages evaluated corner normals over each point cluster.
func (pm *PointMesh) frameNormals(src *obj.Mesh) []math.Vec3 {
	sums := make([]math.Vec3, len(pm.Points))
	for t, tri := range src.Triangles {
		a := src.Positions[tri[0].Position]
		b := src.Positions[tri[1].Position]
		c := src.Positions[tri[2].Position]
		faceN := b.Sub(a).Cross(c.Sub(a)).Normalize()

		for i := 0; i < 3; i++ {
			n := faceN
			if tri[i].Normal >= 0 && tri[i].Normal < len(src.Normals) {
				n = src.Normals[tri[i].Normal].Normalize()
			}
			p := pm.cornerPoint[t*3+i]
			sums[p] = sums[p].Add(n)
		}
	}
	for i := range sums {
		sums[i] = sums[i].Normalize()
	}
	return sums
}

// frameTangents accumulates tangent directions per point from the UV and
// position gradients of each triangle. Triangles with degenerate UV area
// contribute nothing.
func (pm *PointMesh) frameTangents(src *obj.Mesh) []math.Vec3 {
	tangents := make([]math.Vec3, len(pm.Points))
	for _, tri := range pm.Triangles {
		p0, p1, p2 := tri[0], tri[1], tri[2]
		v0 := src.Positions[pm.Points[p0].Vertex]
		v1 := src.Positions[pm.Points[p1].Vertex]
		v2 := src.Positions[pm.Points[p2].Vertex]

		e1 := v1.Sub(v0)
		e2 := v2.Sub(v0)

		uv0 := pm.Points[p0].UV
		uv1 := pm.Points[p1].UV
		uv2 := pm.Points[p2].UV

		du1 := uv1.X - uv0.X
		dv1 := uv1.Y - uv0.Y
		du2 := uv2.X - uv0.X
		dv2 := uv2.Y - uv0.Y

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			continue
		}
		r := 1 / denom

		t := e1.Scale(dv2 * r).Sub(e2.Scale(dv1 * r))
		tangents[p0] = tangents[p0].Add(t)
		tangents[p1] = tangents[p1].Add(t)
		tangents[p2] = tangents[p2].Add(t)
	}
	return tangents
}

// perpendicular picks a deterministic unit vector orthogonal to n, for
// points whose UV gradients give no usable tangent.
func perpendicular(n math.Vec3) math.Vec3 {
	ref := math.Vec3{X: 1}
	if abs(n.X) > 0.9 {
		ref = math.Vec3{Y: 1}
	}
	return ref.Sub(n.Scale(n.Dot(ref)))
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
