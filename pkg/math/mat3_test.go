package math

import (
	"math"
	"testing"
)

func TestMat3Identity(t *testing.T) {
	m := Mat3Identity()
	v := Vec3{X: 1, Y: 2, Z: 3}
	r := m.MulVec(v)
	if r != v {
		t.Errorf("identity matrix should not change vector, got %v", r)
	}
}

func TestMat3Transposed(t *testing.T) {
	m := Mat3{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	tr := m.Transposed()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if tr[i*3+j] != m[j*3+i] {
				t.Errorf("transpose element (%d,%d): got %v, want %v", i, j, tr[i*3+j], m[j*3+i])
			}
		}
	}
	back := tr.Transposed()
	if back != m {
		t.Error("double transpose should restore the original matrix")
	}
}

func TestMat3MulIdentity(t *testing.T) {
	m := Mat3{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	if r := m.Mul(Mat3Identity()); r != m {
		t.Errorf("m * I should equal m, got %v", r)
	}
	if r := Mat3Identity().Mul(m); r != m {
		t.Errorf("I * m should equal m, got %v", r)
	}
}

func TestMat3ToQuatIdentity(t *testing.T) {
	q := Mat3Identity().ToQuat()
	if d := math.Abs(float64(q.Dot(QuatIdentity()))); d < 0.9999 {
		t.Errorf("identity matrix should convert to identity quaternion, got %v", q)
	}
}

func TestRotationBetweenIdentity(t *testing.T) {
	rest := Basis(Vec3{X: 1}, Vec3{Y: 1}, Vec3{Z: 1})
	q := RotationBetween(rest, rest)
	// Same frame means no rotation (up to quaternion sign).
	if d := math.Abs(float64(q.Dot(QuatIdentity()))); d < 0.9999 {
		t.Errorf("rotation between identical frames should be identity, got %v", q)
	}
}

func TestRotationBetween90Deg(t *testing.T) {
	rest := Basis(Vec3{X: 1}, Vec3{Y: 1}, Vec3{Z: 1})
	// Frame rotated 90 degrees around Z: x axis maps to y.
	cur := Basis(Vec3{Y: 1}, Vec3{X: -1}, Vec3{Z: 1})

	q := RotationBetween(rest, cur)
	want := QuatFromAxisAngle(Vec3{Z: 1}, float32(math.Pi/2))

	if d := math.Abs(float64(q.Dot(want))); d < 0.9999 {
		t.Errorf("expected 90 degree Z rotation %v, got %v", want, q)
	}

	// Applying the rotation to the rest normal must yield the current normal.
	n := q.Normalize()
	rot := quatRotate(n, Vec3{X: 1})
	if rot.Sub(Vec3{Y: 1}).Length() > 0.0001 {
		t.Errorf("rotated rest normal should be (0,1,0), got %v", rot)
	}
}

func TestRotationBetweenArbitraryAxis(t *testing.T) {
	axis := Vec3{X: 1, Y: 2, Z: 3}.Normalize()
	angle := float32(0.73)
	q := QuatFromAxisAngle(axis, angle)

	n0 := Vec3{X: 1}
	t0 := Vec3{Y: 1}
	rest := Basis(n0, t0, n0.Cross(t0))
	cur := Basis(quatRotate(q, n0), quatRotate(q, t0), quatRotate(q, n0.Cross(t0)))

	got := RotationBetween(rest, cur)
	if d := math.Abs(float64(got.Dot(q))); d < 0.999 {
		t.Errorf("expected %v, got %v (|dot|=%v)", q, got, d)
	}
}

// quatRotate rotates v by q, assuming q is normalized.
func quatRotate(q Quat, v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}
