package math

import (
	"math"
	"testing"
)

func TestVec3AddSub(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 5, Z: 6}

	sum := a.Add(b)
	if sum.X != 5 || sum.Y != 7 || sum.Z != 9 {
		t.Errorf("expected (5,7,9), got %v", sum)
	}

	diff := b.Sub(a)
	if diff.X != 3 || diff.Y != 3 || diff.Z != 3 {
		t.Errorf("expected (3,3,3), got %v", diff)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	z := x.Cross(y)
	if z.X != 0 || z.Y != 0 || z.Z != 1 {
		t.Errorf("x cross y should be z, got %v", z)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 0}
	n := v.Normalize()
	if math.Abs(float64(n.Length()-1)) > 0.0001 {
		t.Errorf("normalized length should be 1, got %v", n.Length())
	}

	zero := Vec3{}.Normalize()
	if !zero.IsZero() {
		t.Errorf("normalizing zero vector should yield zero, got %v", zero)
	}
}

func TestVec3AngleTo(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}

	if a := x.AngleTo(x); math.Abs(float64(a)) > 0.0001 {
		t.Errorf("angle to self should be 0, got %v", a)
	}
	if a := x.AngleTo(y); math.Abs(float64(a)-math.Pi/2) > 0.0001 {
		t.Errorf("angle between x and y should be pi/2, got %v", a)
	}
	if a := x.AngleTo(x.Scale(-1)); math.Abs(float64(a)-math.Pi) > 0.0001 {
		t.Errorf("angle to opposite should be pi, got %v", a)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{X: 1, Y: 2, Z: 3}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec3{X: float32(math.NaN())}).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if (Vec3{Z: float32(math.Inf(-1))}).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}

func TestVec2Basics(t *testing.T) {
	a := Vec2{X: 3, Y: 4}
	if a.Length() != 5 {
		t.Errorf("expected length 5, got %v", a.Length())
	}
	if d := a.Dot(Vec2{X: 1, Y: 0}); d != 3 {
		t.Errorf("expected dot 3, got %v", d)
	}
	s := a.Sub(Vec2{X: 1, Y: 1})
	if s.X != 2 || s.Y != 3 {
		t.Errorf("expected (2,3), got %v", s)
	}
}
