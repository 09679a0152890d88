// Package scene turns glTF files into flat vertex and index data that can be
// uploaded to render buffers.
package scene

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x2w-rook/Ludens-sub001/render"
)

// VertexSize is the byte size of one packed vertex: position (vec3),
// normal (vec3) and texture coordinate (vec2), little endian float32.
const VertexSize = 32

// VertexSlot describes the packed vertex layout at shader locations 0, 1
// and 2.
func VertexSlot() render.VertexBufferSlot {
	return render.VertexBufferSlot{
		Attributes: []render.VertexAttribute{
			{Location: 0, Type: render.DataVec3},
			{Location: 1, Type: render.DataVec3},
			{Location: 2, Type: render.DataVec2},
		},
	}
}

type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Mesh holds CPU-side geometry in the packed vertex layout.
type Mesh struct {
	Name        string
	Vertices    []byte
	Indices     []byte
	IndexType   render.IndexType
	VertexCount uint32
	IndexCount  uint32

	// Local-space bounds of all positions.
	Min, Max [3]float32
}

// NewMesh packs vertices and indices. Indices are stored as uint16 when
// every vertex can be addressed that way.
func NewMesh(name string, vertices []Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:        name,
		Vertices:    make([]byte, 0, len(vertices)*VertexSize),
		VertexCount: uint32(len(vertices)),
		IndexCount:  uint32(len(indices)),
	}
	for i, v := range vertices {
		for _, f := range v.Position {
			m.Vertices = binary.LittleEndian.AppendUint32(m.Vertices, math.Float32bits(f))
		}
		for _, f := range v.Normal {
			m.Vertices = binary.LittleEndian.AppendUint32(m.Vertices, math.Float32bits(f))
		}
		for _, f := range v.UV {
			m.Vertices = binary.LittleEndian.AppendUint32(m.Vertices, math.Float32bits(f))
		}
		if i == 0 {
			m.Min, m.Max = v.Position, v.Position
			continue
		}
		for c := 0; c < 3; c++ {
			m.Min[c] = min(m.Min[c], v.Position[c])
			m.Max[c] = max(m.Max[c], v.Position[c])
		}
	}

	if len(vertices) <= math.MaxUint16+1 {
		m.IndexType = render.IndexU16
		m.Indices = make([]byte, 0, len(indices)*2)
		for _, idx := range indices {
			m.Indices = binary.LittleEndian.AppendUint16(m.Indices, uint16(idx))
		}
	} else {
		m.IndexType = render.IndexU32
		m.Indices = make([]byte, 0, len(indices)*4)
		for _, idx := range indices {
			m.Indices = binary.LittleEndian.AppendUint32(m.Indices, idx)
		}
	}
	return m
}

// Vertex unpacks vertex i.
func (m *Mesh) Vertex(i int) Vertex {
	var v Vertex
	b := m.Vertices[i*VertexSize : (i+1)*VertexSize]
	f := func(k int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b[k*4:])) }
	v.Position = [3]float32{f(0), f(1), f(2)}
	v.Normal = [3]float32{f(3), f(4), f(5)}
	v.UV = [2]float32{f(6), f(7)}
	return v
}

// Index unpacks index i.
func (m *Mesh) Index(i int) uint32 {
	if m.IndexType == render.IndexU16 {
		return uint32(binary.LittleEndian.Uint16(m.Indices[i*2:]))
	}
	return binary.LittleEndian.Uint32(m.Indices[i*4:])
}

// GPUMesh is a mesh uploaded to a device.
type GPUMesh struct {
	Vertices   render.Buffer
	Indices    render.Buffer
	IndexType  render.IndexType
	IndexCount uint32
}

// Upload creates static vertex and index buffers holding the mesh.
func (m *Mesh) Upload(dev render.Device) (*GPUMesh, error) {
	g := &GPUMesh{IndexType: m.IndexType, IndexCount: m.IndexCount}
	res := dev.CreateBuffer(&g.Vertices, render.BufferInfo{Type: render.BufferVertex, Data: m.Vertices})
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("scene: upload %s vertices: %w", m.Name, err)
	}
	res = dev.CreateBuffer(&g.Indices, render.BufferInfo{Type: render.BufferIndex, Data: m.Indices})
	if err := res.Err(); err != nil {
		dev.DeleteBuffer(&g.Vertices)
		return nil, fmt.Errorf("scene: upload %s indices: %w", m.Name, err)
	}
	return g, nil
}

// Draw binds the mesh buffers at vertex slot 0 and issues one indexed draw.
// A pipeline using VertexSlot must be bound.
func (g *GPUMesh) Draw(dev render.Device, instances uint32) error {
	if err := dev.SetVertexBuffer(0, g.Vertices).Err(); err != nil {
		return err
	}
	if err := dev.SetIndexBuffer(g.Indices, g.IndexType).Err(); err != nil {
		return err
	}
	return dev.DrawIndexed(render.DrawIndexedInfo{IndexCount: g.IndexCount, InstanceCount: instances}).Err()
}

func (g *GPUMesh) Delete(dev render.Device) {
	dev.DeleteBuffer(&g.Vertices)
	dev.DeleteBuffer(&g.Indices)
}
