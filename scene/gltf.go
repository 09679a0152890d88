package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/x2w-rook/Ludens-sub001/math"
	"github.com/x2w-rook/Ludens-sub001/render"
)

var ErrNoGeometry = errors.New("scene: no triangle geometry")

// LoadMesh opens a .glb or .gltf file and merges every triangle primitive
// reachable from the default scene into one mesh, with node transforms
// applied. Files without a default scene contribute all parentless nodes.
func LoadMesh(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %q: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return meshFromDocument(name, doc)
}

type meshBuilder struct {
	doc      *gltf.Document
	vertices []Vertex
	indices  []uint32
	visiting []bool
}

func meshFromDocument(name string, doc *gltf.Document) (*Mesh, error) {
	b := &meshBuilder{doc: doc, visiting: make([]bool, len(doc.Nodes))}
	for _, root := range rootNodes(doc) {
		if err := b.addNode(root, math.Mat4Identity()); err != nil {
			return nil, err
		}
	}
	if len(b.indices) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoGeometry, name)
	}
	return NewMesh(name, b.vertices, b.indices), nil
}

func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (b *meshBuilder) addNode(idx int, parent math.Mat4) error {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return fmt.Errorf("scene: node %d out of range", idx)
	}
	if b.visiting[idx] {
		return fmt.Errorf("scene: node %d is its own ancestor", idx)
	}
	b.visiting[idx] = true
	defer func() { b.visiting[idx] = false }()

	node := b.doc.Nodes[idx]
	world := localTransform(node).Mul(parent)

	if node.Mesh != nil && *node.Mesh < len(b.doc.Meshes) {
		gm := b.doc.Meshes[*node.Mesh]
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				render.Logger().Debug("scene: skipping non-triangle primitive",
					"mesh", gm.Name, "primitive", pi, "mode", prim.Mode)
				continue
			}
			if err := b.addPrimitive(prim, world); err != nil {
				return fmt.Errorf("scene: mesh %q primitive %d: %w", gm.Name, pi, err)
			}
		}
	}
	for _, c := range node.Children {
		if err := b.addNode(c, world); err != nil {
			return err
		}
	}
	return nil
}

func (b *meshBuilder) addPrimitive(prim *gltf.Primitive, world math.Mat4) error {
	doc := b.doc
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return errors.New("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("texture coordinates: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	base := uint32(len(b.vertices))
	for i, p := range positions {
		v := Vertex{Position: world.MulVec3(math.Vec3FromArray(p)).Array(), Normal: [3]float32{0, 1, 0}}
		if i < len(normals) {
			v.Normal = world.MulNormal(math.Vec3FromArray(normals[i])).Array()
		}
		if i < len(uvs) {
			v.UV = uvs[i]
		}
		b.vertices = append(b.vertices, v)
	}
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return fmt.Errorf("index %d out of range of %d vertices", idx, len(positions))
		}
		b.indices = append(b.indices, base+idx)
	}
	return nil
}
