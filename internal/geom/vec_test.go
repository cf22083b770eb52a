package geom

import (
	"math"
	"testing"
)

func TestVecOps(t *testing.T) {
	a := V(1, 2, 3)
	b := V(4, -5, 6)

	if got := a.Add(b); got != V(5, -3, 9) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Sub(b); got != V(-3, 7, -3) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Scale(2); got != V(2, 4, 6) {
		t.Errorf("Scale: got %v", got)
	}
	if got := a.Dot(b); got != 4-10+18 {
		t.Errorf("Dot: got %v", got)
	}
}

func TestNorm(t *testing.T) {
	v := V(3, 4, 0)
	if got := v.Norm(); math.Abs(got-5) > 1e-15 {
		t.Errorf("Norm: got %v, want 5", got)
	}
	if got := v.Norm2(); got != 25 {
		t.Errorf("Norm2: got %v, want 25", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !V(1, 2, 3).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if V(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component reported finite")
	}
	if V(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf component reported finite")
	}
}
