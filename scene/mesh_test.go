package scene

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x2w-rook/Ludens-sub001/math"
	"github.com/x2w-rook/Ludens-sub001/render"
	_ "github.com/x2w-rook/Ludens-sub001/vulkan"
)

var triangle = []Vertex{
	{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{0, 0}},
	{Position: [3]float32{1, 0, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{1, 0}},
	{Position: [3]float32{0, 1, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{0, 1}},
}

func assertVec3(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

func TestNewMeshPacks(t *testing.T) {
	m := NewMesh("tri", triangle, []uint32{0, 1, 2})

	assert.Equal(t, render.IndexU16, m.IndexType)
	assert.Len(t, m.Vertices, 3*VertexSize)
	assert.Len(t, m.Indices, 3*2)
	assert.Equal(t, uint32(3), m.VertexCount)
	assert.Equal(t, uint32(3), m.IndexCount)
	assert.Equal(t, triangle[1], m.Vertex(1))
	assert.Equal(t, uint32(2), m.Index(2))
	assert.Equal(t, [3]float32{0, 0, 0}, m.Min)
	assert.Equal(t, [3]float32{1, 1, 0}, m.Max)
	assert.Equal(t, VertexSize, int(VertexSlot().Stride()))
}

func TestNewMeshWideIndices(t *testing.T) {
	vertices := make([]Vertex, 1<<16+1)
	m := NewMesh("wide", vertices, []uint32{0, 1, 1 << 16})

	assert.Equal(t, render.IndexU32, m.IndexType)
	assert.Len(t, m.Indices, 3*4)
	assert.Equal(t, uint32(1<<16), m.Index(2))
}

func TestLocalTransformTRS(t *testing.T) {
	s, c := math32.Sincos(math32.Pi / 4)
	m := localTransform(&gltf.Node{
		Translation: [3]float64{0, 0, 5},
		Rotation:    [4]float64{0, 0, float64(s), float64(c)},
		Scale:       [3]float64{2, 2, 2},
	})

	assertVec3(t, [3]float32{0, 2, 5}, m.MulVec3(math.NewVec3(1, 0, 0)).Array())
	assertVec3(t, [3]float32{0, 1, 0}, m.MulNormal(math.NewVec3(1, 0, 0)).Array())
}

func TestLocalTransformMatrix(t *testing.T) {
	m := localTransform(&gltf.Node{Matrix: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		3, 4, 5, 1,
	}})
	assertVec3(t, [3]float32{4, 4, 5}, m.MulVec3(math.NewVec3(1, 0, 0)).Array())
}

func TestLocalTransformNonUniformScaleNormal(t *testing.T) {
	m := localTransform(&gltf.Node{Scale: [3]float64{1, 0.25, 1}})
	tangent := m.MulVec3(math.NewVec3(1, 1, 0))
	normal := m.MulNormal(math.NewVec3(-1, 1, 0).Normalize())

	assert.InDelta(t, 0, normal.Dot(tangent), 1e-5)
	assert.InDelta(t, 1, normal.Length(), 1e-5)
}

func saveDocument(t *testing.T, doc *gltf.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func triangleDocument() *gltf.Document {
	doc := gltf.NewDocument()
	positions := make([][3]float32, len(triangle))
	normals := make([][3]float32, len(triangle))
	uvs := make([][2]float32, len(triangle))
	for i, v := range triangle {
		positions[i], normals[i], uvs[i] = v.Position, v.Normal, v.UV
	}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(modeler.WriteIndices(doc, []uint16{0, 1, 2})),
			Attributes: map[string]int{
				gltf.POSITION:   modeler.WritePosition(doc, positions),
				gltf.NORMAL:     modeler.WriteNormal(doc, normals),
				gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
			},
		}},
	}}
	return doc
}

func TestLoadMeshAppliesNodeTransforms(t *testing.T) {
	doc := triangleDocument()
	doc.Nodes = []*gltf.Node{
		{Name: "root", Translation: [3]float64{0, 0, 5}, Children: []int{1, 2}},
		{Name: "big", Mesh: gltf.Index(0), Scale: [3]float64{2, 2, 2}},
		{Name: "plain", Mesh: gltf.Index(0)},
	}
	doc.Scenes[0].Nodes = []int{0}

	m, err := LoadMesh(saveDocument(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "model", m.Name)
	assert.Equal(t, uint32(6), m.VertexCount)
	require.Equal(t, uint32(6), m.IndexCount)

	assertVec3(t, [3]float32{2, 0, 5}, m.Vertex(1).Position)
	assertVec3(t, [3]float32{0, 0, 1}, m.Vertex(1).Normal)
	assert.Equal(t, [2]float32{1, 0}, m.Vertex(1).UV)
	assertVec3(t, [3]float32{1, 0, 5}, m.Vertex(4).Position)

	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, []uint32{
		m.Index(0), m.Index(1), m.Index(2), m.Index(3), m.Index(4), m.Index(5),
	})
	assertVec3(t, [3]float32{0, 0, 5}, m.Min)
	assertVec3(t, [3]float32{2, 2, 5}, m.Max)
}

func TestLoadMeshWithoutGeometry(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Nodes = []*gltf.Node{{Name: "empty"}}
	doc.Scenes[0].Nodes = []int{0}

	_, err := LoadMesh(saveDocument(t, doc))
	assert.True(t, errors.Is(err, ErrNoGeometry), "got %v", err)
}

func TestLoadMeshMissingFile(t *testing.T) {
	_, err := LoadMesh(filepath.Join(t.TempDir(), "missing.glb"))
	assert.Error(t, err)
}

func TestRootNodesWithoutScene(t *testing.T) {
	doc := &gltf.Document{Nodes: []*gltf.Node{
		{Children: []int{2}},
		{},
		{},
	}}
	assert.Equal(t, []int{0, 1}, rootNodes(doc))
}

func TestUpload(t *testing.T) {
	var dev render.Device
	res := render.CreateRenderDevice(&dev, render.DeviceInfo{Backend: render.BackendVulkan})
	require.True(t, res.OK(), res.Error())
	defer render.DeleteRenderDevice(&dev)

	m := NewMesh("tri", triangle, []uint32{0, 1, 2})
	g, err := m.Upload(dev)
	require.NoError(t, err)

	info, res := dev.BufferInfo(g.Vertices)
	require.True(t, res.OK())
	assert.Equal(t, render.BufferVertex, info.Type)
	assert.Equal(t, uint32(len(m.Vertices)), info.Size)

	info, res = dev.BufferInfo(g.Indices)
	require.True(t, res.OK())
	assert.Equal(t, render.BufferIndex, info.Type)
	assert.Equal(t, uint32(6), info.Size)

	err = g.Draw(dev, 1)
	assert.True(t, errors.Is(err, render.ResourceMissing), "drawing needs a pipeline, got %v", err)

	g.Delete(dev)
	assert.False(t, g.Vertices.IsValid())
	assert.False(t, g.Indices.IsValid())
}
