package exportcmd

import (
	"encoding/binary"
	"math"
	"testing"

	rsg "github.com/alpqr/rsg2"
)

func float32Bytes(vals ...float32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func TestExportSubMeshPositionOnly(t *testing.T) {
	posData := float32Bytes(1, 2, 3, 4)
	buf := map[uint32][]byte{
		1: posData,
	}
	provider := func(id uint32) []byte { return buf[id] }

	mesh := rsg.Mesh{
		VertexViews: []rsg.BufferView{{BufferID: 1, Offset: 0, Stride: 8}},
	}
	sub := rsg.SubMesh{
		Topology:    rsg.Triangles,
		VertexCount: 2,
		Inputs: []rsg.VertexInput{
			{Kind: rsg.InputPosition, Type: rsg.InputVec2, ViewIndex: 0, ByteOffset: 0},
		},
	}
	material := rsg.Material{GraphicsState: rsg.DefaultGraphicsState()}

	out, err := ExportSubMesh(mesh, sub, material, 1.0, provider)
	if err != nil {
		t.Fatalf("ExportSubMesh returned %v", err)
	}
	if len(out.Vertices) != 2 {
		t.Fatalf("len(Vertices) = %d, want 2", len(out.Vertices))
	}
	if out.Vertices[0].DstX != 1 || out.Vertices[0].DstY != 2 {
		t.Fatalf("vertex 0 = (%v, %v), want (1, 2)", out.Vertices[0].DstX, out.Vertices[0].DstY)
	}
	if out.Vertices[1].DstX != 3 || out.Vertices[1].DstY != 4 {
		t.Fatalf("vertex 1 = (%v, %v), want (3, 4)", out.Vertices[1].DstX, out.Vertices[1].DstY)
	}
	if out.Vertices[0].ColorA != 1 {
		t.Fatalf("ColorA = %v, want 1 (opaque, no color input)", out.Vertices[0].ColorA)
	}
}

func TestExportSubMeshAppliesInheritedOpacity(t *testing.T) {
	mesh := rsg.Mesh{}
	sub := rsg.SubMesh{Topology: rsg.Triangles, VertexCount: 1}
	material := rsg.Material{GraphicsState: rsg.DefaultGraphicsState()}

	out, err := ExportSubMesh(mesh, sub, material, 0.5, func(uint32) []byte { return nil })
	if err != nil {
		t.Fatalf("ExportSubMesh returned %v", err)
	}
	if out.Vertices[0].ColorA != 0.5 {
		t.Fatalf("ColorA = %v, want 0.5", out.Vertices[0].ColorA)
	}
	if out.GraphicsState.DepthWrite {
		t.Fatalf("DepthWrite should be disabled once transparency is forced on")
	}
	if !out.GraphicsState.Blend.BlendEnable {
		t.Fatalf("BlendEnable should be forced on for a translucent submesh")
	}
}

func TestExportSubMeshIndexBuffer16(t *testing.T) {
	idxBuf := make([]byte, 6)
	binary.LittleEndian.PutUint16(idxBuf[0:], 0)
	binary.LittleEndian.PutUint16(idxBuf[2:], 1)
	binary.LittleEndian.PutUint16(idxBuf[4:], 2)
	buf := map[uint32][]byte{2: idxBuf}
	provider := func(id uint32) []byte { return buf[id] }

	mesh := rsg.Mesh{}
	sub := rsg.SubMesh{
		Topology:     rsg.Triangles,
		VertexCount:  3,
		IndexCount:   3,
		HasIndexView: true,
		IndexView:    rsg.IndexBufferView{View: rsg.BufferView{BufferID: 2}, Wide: false},
	}
	material := rsg.Material{GraphicsState: rsg.DefaultGraphicsState()}

	out, err := ExportSubMesh(mesh, sub, material, 1.0, provider)
	if err != nil {
		t.Fatalf("ExportSubMesh returned %v", err)
	}
	want := []uint16{0, 1, 2}
	for i, w := range want {
		if out.Indices[i] != w {
			t.Fatalf("Indices[%d] = %d, want %d", i, out.Indices[i], w)
		}
	}
}
