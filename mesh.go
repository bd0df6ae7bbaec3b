package rsg

import "github.com/gazed/vu/math/lin"

// VertexInputType names the scalar/vector/matrix shape of one vertex
// attribute as laid out in a buffer.
type VertexInputType uint8

const (
	InputFloat VertexInputType = iota
	InputVec2
	InputVec3
	InputVec4
	InputInt
	InputInt2
	InputInt3
	InputInt4
	InputMat2
	InputMat3
	InputMat4
)

// VertexInputKind selects which semantic role a VertexInput binds.
type VertexInputKind uint8

const (
	InputPosition VertexInputKind = iota
	InputNormal
	InputTangent
	InputColor
	InputTexCoord
)

// VertexInput describes one vertex attribute: its semantic kind, an index
// distinguishing it from same-kind siblings (used by Color/TexCoord, which
// may repeat), the scalar shape, which buffer view it reads from, and the
// byte offset within that view.
type VertexInput struct {
	Kind       VertexInputKind
	Index      uint32
	Type       VertexInputType
	ViewIndex  uint32
	ByteOffset uint64
}

// BufferView describes a byte range within an application-managed buffer,
// identified by BufferID (an opaque handle this package never resolves).
type BufferView struct {
	BufferID uint32
	Offset   uint64
	Size     uint64
	Stride   uint64
}

// IndexBufferView is a BufferView whose element width is fixed at either 16
// or 32 bits, selected by Wide.
type IndexBufferView struct {
	View BufferView
	Wide bool // false = uint16 indices, true = uint32 indices
}

// Topology names the primitive assembly mode for a SubMesh.
type Topology uint8

const (
	Triangles Topology = iota
	TriangleStrip
	Lines
	LineStrip
	Points
)

// SubMesh is one draw range within a Mesh: a primitive topology, vertex
// count, the vertex attributes feeding it, and an optional index range.
type SubMesh struct {
	Topology     Topology
	VertexCount  uint32
	Inputs       []VertexInput
	IndexCount   uint32
	HasIndexView bool
	IndexView    IndexBufferView
}

// Aabb is an axis-aligned bounding box in local space.
type Aabb struct {
	Min lin.V3
	Max lin.V3
}

// Center returns the midpoint of the box.
func (a Aabb) Center() lin.V3 {
	var c lin.V3
	c.Add(&a.Min, &a.Max)
	c.Scale(&c, 0.5)
	return c
}

// Mesh describes the geometry attached to a node: the buffer views its
// submeshes read vertex data from, the submeshes themselves, and an
// optional 3D bounding box (required for any mesh that participates in
// camera-relative sorting — see CalculateSortingDistance).
type Mesh struct {
	VertexViews []BufferView
	SubMeshes   []SubMesh
	Bounds3D    *Aabb
}
