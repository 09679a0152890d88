package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-5, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-5, "z")
}

func assertMat4(t *testing.T, want, got Mat4) {
	t.Helper()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, want[i][j], got[i][j], 1e-5, "[%d][%d]", i, j)
		}
	}
}

func TestMat4TRS(t *testing.T) {
	q := QuaternionFromAxisAngle(NewVec3(0, 0, 1), math32.Pi/2)
	m := Mat4TRS(NewVec3(0, 0, 5), q, NewVec3(2, 2, 2))

	assertVec3(t, NewVec3(0, 2, 5), m.MulVec3(NewVec3(1, 0, 0)))
	assertVec3(t, NewVec3(0, 1, 0), m.MulNormal(NewVec3(1, 0, 0)))
	assert.Equal(t, m, Mat4Identity().Mul(m))
	assert.Equal(t, m, m.Mul(Mat4Identity()))
}

func TestMat4MulOrder(t *testing.T) {
	// Scale first, then translate.
	m := Mat4Scale(NewVec3(2, 2, 2)).Mul(Mat4Translation(NewVec3(1, 0, 0)))
	assertVec3(t, NewVec3(3, 0, 0), m.MulVec3(NewVec3(1, 0, 0)))
}

func TestMat4RotationY(t *testing.T) {
	m := Mat4RotationY(math32.Pi / 2)
	assertVec3(t, NewVec3(0, 0, -1), m.MulVec3(NewVec3(1, 0, 0)))
	assertVec3(t, NewVec3(1, 0, 0), m.MulVec3(NewVec3(0, 0, 1)))
}

func TestMat4Inverse(t *testing.T) {
	q := QuaternionFromAxisAngle(NewVec3(1, 1, 0), 0.7)
	m := Mat4TRS(NewVec3(3, -2, 1), q, NewVec3(1, 4, 0.5))

	assertMat4(t, Mat4Identity(), m.Mul(m.Inverse()))
	assertMat4(t, Mat4Identity(), m.Inverse().Mul(m))

	p := NewVec3(0.3, 7, -2)
	assertVec3(t, p, m.Inverse().MulVec3(m.MulVec3(p)))
}

func TestMat4InverseSingular(t *testing.T) {
	assert.Equal(t, Mat4Identity(), Mat4Scale(NewVec3(1, 0, 1)).Inverse())
}

func TestMulNormalNonUniformScale(t *testing.T) {
	// A 45 degree slope in the xy plane squashed along y.
	m := Mat4Scale(NewVec3(1, 0.25, 1))
	tangent := NewVec3(1, 1, 0)
	normal := NewVec3(-1, 1, 0).Normalize()

	n := m.MulNormal(normal)
	tt := m.MulVec3(tangent)
	assert.InDelta(t, 0, n.Dot(tt), 1e-5, "the normal stays perpendicular to the surface")
	assert.InDelta(t, 1, n.Length(), 1e-5)
}

func TestMat4Array(t *testing.T) {
	m := Mat4Translation(NewVec3(1, 2, 3))
	a := m.Array()
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{a[12], a[13], a[14]}, "translation sits in the last column")
	assert.Equal(t, m, Mat4FromArray(a))
}

func TestQuaternionNormalize(t *testing.T) {
	q := Quaternion{X: 0, Y: 0, Z: 3, W: 4}.Normalize()
	assert.InDelta(t, 0.6, q.Z, 1e-6)
	assert.InDelta(t, 0.8, q.W, 1e-6)
	assert.Equal(t, Quaternion{}, Quaternion{}.Normalize())
	assert.Equal(t, Mat4Identity(), QuaternionIdentity().ToMat4())
}
