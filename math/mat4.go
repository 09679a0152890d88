// Package math holds the small amount of linear algebra the scene loader and
// the demo need. Matrices multiply row vectors from the left (p' = p * M),
// so a Mat4 stored row by row has the memory layout GL and glTF expect for
// their column-major matrices.
package math

import "github.com/chewxy/math32"

type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mat4FromArray reads a column-major array such as a glTF node matrix.
func Mat4FromArray(a [16]float32) Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m[i][j] = a[i*4+j]
		}
	}
	return m
}

// Array flattens m into the column-major order shaders read.
func (m Mat4) Array() [16]float32 {
	var a [16]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			a[i*4+j] = m[i][j]
		}
	}
	return a
}

// Mul returns m followed by other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

func (m Mat4) MulVec(v Vec4) Vec4 {
	return v.MulMat(m)
}

// MulVec3 transforms a point.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec(v.ToVec4(1)).ToVec3DivW()
}

// MulNormal transforms a normal by the inverse transpose of m and
// renormalizes it, so non-uniform scale keeps it perpendicular to the
// surface. A degenerate result returns n unchanged.
func (m Mat4) MulNormal(n Vec3) Vec3 {
	d := n.ToVec4(0).MulMat(m.Inverse().Transpose()).ToVec3()
	if d.LengthSqr() == 0 {
		return n
	}
	return d.Normalize()
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = translation.X
	m[3][1] = translation.Y
	m[3][2] = translation.Z
	return m
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

func Mat4RotationY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// Mat4TRS scales, then rotates, then translates.
func Mat4TRS(translation Vec3, rotation Quaternion, scale Vec3) Mat4 {
	return Mat4Scale(scale).Mul(rotation.ToMat4()).Mul(Mat4Translation(translation))
}

// Inverse returns the inverse of m by Gauss-Jordan elimination with partial
// pivoting. A singular matrix yields the identity.
func (m Mat4) Inverse() Mat4 {
	a := m
	inv := Mat4Identity()
	for col := 0; col < 4; col++ {
		pivot := col
		for r := col + 1; r < 4; r++ {
			if math32.Abs(a[r][col]) > math32.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if a[pivot][col] == 0 {
			return Mat4Identity()
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		p := 1 / a[col][col]
		for j := 0; j < 4; j++ {
			a[col][j] *= p
			inv[col][j] *= p
		}
		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			f := a[r][col]
			for j := 0; j < 4; j++ {
				a[r][j] -= f * a[col][j]
				inv[r][j] -= f * inv[col][j]
			}
		}
	}
	return inv
}
