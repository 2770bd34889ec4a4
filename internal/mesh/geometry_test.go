package mesh

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/vatbake/pkg/math"
)

func TestCheckTopology(t *testing.T) {
	src := smoothCube()
	pm, err := Split(src, 0)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if err := pm.CheckTopology(smoothCube()); err != nil {
		t.Errorf("identical mesh should pass topology check: %v", err)
	}

	fewer := smoothCube()
	fewer.Positions = fewer.Positions[:7]
	if err := pm.CheckTopology(fewer); err == nil {
		t.Error("vertex count change should fail topology check")
	}

	moreTris := smoothCube()
	moreTris.Triangles = append(moreTris.Triangles, moreTris.Triangles[0])
	if err := pm.CheckTopology(moreTris); err == nil {
		t.Error("face count change should fail topology check")
	}

	rewired := smoothCube()
	rewired.Triangles[0][0].Position = 5
	if err := pm.CheckTopology(rewired); err == nil {
		t.Error("rewired corner should fail topology check")
	}
}

func TestFrameGeometryBasisOrthonormal(t *testing.T) {
	src := smoothCube()
	pm, err := Split(src, 0)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	samples := pm.FrameGeometry(src)
	if len(samples) != pm.PointCount() {
		t.Fatalf("expected %d samples, got %d", pm.PointCount(), len(samples))
	}

	const eps = 1e-4
	for i, s := range samples {
		if s.Normal.IsZero() {
			t.Fatalf("point %d has zero normal", i)
		}
		n := s.Basis.Row(0)
		tan := s.Basis.Row(1)
		b := s.Basis.Row(2)

		for j, row := range []math.Vec3{n, tan, b} {
			if gomath.Abs(float64(row.Length()-1)) > eps {
				t.Errorf("point %d basis row %d not unit length: %v", i, j, row.Length())
			}
		}
		if gomath.Abs(float64(n.Dot(tan))) > eps {
			t.Errorf("point %d: normal and tangent not orthogonal", i)
		}
		if n.Cross(tan).Sub(b).Length() > eps {
			t.Errorf("point %d: bitangent is not n x t", i)
		}
	}
}

func TestFrameGeometryTranslation(t *testing.T) {
	src := smoothCube()
	pm, err := Split(src, 0)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	rest := pm.FrameGeometry(src)

	moved := smoothCube()
	delta := math.Vec3{X: 2, Y: -1, Z: 0.5}
	for i := range moved.Positions {
		moved.Positions[i] = moved.Positions[i].Add(delta)
	}
	cur := pm.FrameGeometry(moved)

	const eps = 1e-5
	for i := range rest {
		d := cur[i].Position.Sub(rest[i].Position)
		if d.Sub(delta).Length() > eps {
			t.Errorf("point %d: displacement %v, want %v", i, d, delta)
		}
		// Pure translation leaves the tangent frame unchanged.
		if cur[i].Basis != rest[i].Basis {
			t.Errorf("point %d: basis changed under translation", i)
		}
	}
}

func TestFrameGeometryRotation(t *testing.T) {
	src := smoothCube()
	pm, err := Split(src, 0)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	rest := pm.FrameGeometry(src)

	// Rotate everything 90 degrees around Z.
	rot := math.QuatFromAxisAngle(math.Vec3{Z: 1}, float32(gomath.Pi/2))
	turned := smoothCube()
	for i := range turned.Positions {
		turned.Positions[i] = rotate(rot, turned.Positions[i])
		turned.Normals[i] = rotate(rot, turned.Normals[i])
	}
	cur := pm.FrameGeometry(turned)

	for i := range rest {
		got := math.RotationBetween(rest[i].Basis, cur[i].Basis)
		if d := gomath.Abs(float64(got.Dot(rot))); d < 0.999 {
			t.Errorf("point %d: recovered rotation %v, want %v (|dot|=%v)", i, got, rot, d)
		}
	}
}

func rotate(q math.Quat, v math.Vec3) math.Vec3 {
	u := math.Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}
