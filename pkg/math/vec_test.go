package math

import (
	"testing"
)

func TestVec2Sub(t *testing.T) {
	a := Vec2{5, 7}
	b := Vec2{3, 4}
	got := a.Sub(b)
	want := Vec2{2, 3}
	if got != want {
		t.Errorf("Vec2.Sub() = %v, want %v", got, want)
	}
	if !a.Sub(a).IsZero() {
		t.Error("v - v should be zero")
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	got := v.Length()
	want := float32(7)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

func TestVec3Distance(t *testing.T) {
	a := Vec3{-1, -1, -1}
	b := Vec3{1, 1, 1}
	got := a.Distance(b)
	if abs(got-2*1.7320508) > 1e-5 {
		t.Errorf("Vec3.Distance() = %v, want 2√3", got)
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	if got := a.Add(Vec3{1, 1, 1}).Scale(2); got != (Vec3{4, 6, 8}) {
		t.Errorf("(a + 1) * 2 = %v, want (4, 6, 8)", got)
	}
	if got := a.Negate(); got != (Vec3{-1, -2, -3}) {
		t.Errorf("Negate() = %v", got)
	}
	if got := a.Dot(Vec3{4, 5, 6}); got != 32 {
		t.Errorf("Dot() = %v, want 32", got)
	}
}
