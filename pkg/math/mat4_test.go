package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
	if !m.IsIdentity() {
		t.Error("IsIdentity should report true for Identity()")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestMulMatchesMathGL(t *testing.T) {
	a := Translate(1, 2, 3).Mul(QuatFromAxisAngle(Vec3{Y: 1}, 0.7).ToMat4())
	b := Scale(2, 0.5, 4).Mul(Translate(-3, 0, 1))

	want := mgl32.Mat4(a).Mul4(mgl32.Mat4(b))
	got := a.Mul(b)
	if !got.ApproxEqual(Mat4(want), 1e-5) {
		t.Errorf("Mul mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4.
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if m.Translation() != [3]float32{5, 10, 15} {
		t.Errorf("Translation() = %v", m.Translation())
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformVector(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 3, 4))
	got := m.TransformVector([3]float32{1, 1, 1})

	// Translation does not move directions.
	if got != [3]float32{2, 3, 4} {
		t.Errorf("TransformVector: got %v, want (2, 3, 4)", got)
	}
}

func TestComposeMatchesMathGL(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 0, Z: 1}, 0.9)
	got := Compose([3]float32{1, 2, 3}, q, [3]float32{2, 2, 2})

	mq := mgl32.QuatRotate(0.9, mgl32.Vec3{0, 0, 1})
	want := mgl32.Translate3D(1, 2, 3).Mul4(mq.Mat4()).Mul4(mgl32.Scale3D(2, 2, 2))

	if !got.ApproxEqual(Mat4(want), 1e-5) {
		t.Errorf("Compose mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4)
	got := Perspective(fov, 1.5, 0.1, 100)
	want := mgl32.Perspective(fov, 1.5, 0.1, 100)
	if !got.ApproxEqual(Mat4(want), 1e-5) {
		t.Errorf("Perspective mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestLookAt(t *testing.T) {
	got := LookAt(Vec3{1, 2, 5}, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	want := mgl32.LookAtV(mgl32.Vec3{1, 2, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	if !got.ApproxEqual(Mat4(want), 1e-5) {
		t.Errorf("LookAt mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestInverse(t *testing.T) {
	m := Compose([3]float32{4, -1, 2}, QuatFromAxisAngle(Vec3{X: 1}, 0.3), [3]float32{1, 2, 3})
	if !m.Mul(m.Inverse()).ApproxEqual(Identity(), 1e-5) {
		t.Error("M * M^-1 should be identity")
	}

	var singular Mat4
	if !singular.Inverse().IsIdentity() {
		t.Error("singular matrix should invert to identity")
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()
	if tr[3] != 1 || tr[7] != 2 || tr[11] != 3 {
		t.Errorf("Transpose: translation should move to the bottom row, got %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("double transpose should be the original matrix")
	}
}
