package scene

import (
	"github.com/qmuntal/gltf"

	"github.com/x2w-rook/Ludens-sub001/math"
)

// localTransform prefers an explicit node matrix over its TRS properties.
func localTransform(n *gltf.Node) math.Mat4 {
	var a [16]float32
	for i, v := range n.MatrixOrDefault() {
		a[i] = float32(v)
	}
	if m := math.Mat4FromArray(a); m != math.Mat4Identity() {
		return m
	}
	t, r, s := n.TranslationOrDefault(), n.RotationOrDefault(), n.ScaleOrDefault()
	return math.Mat4TRS(
		math.NewVec3(float32(t[0]), float32(t[1]), float32(t[2])),
		math.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])},
		math.NewVec3(float32(s[0]), float32(s[1]), float32(s[2])),
	)
}
