// Package exportcmd converts a built render list into CPU-side
// ebiten.Vertex/index buffers. It stops at the CPU buffer boundary: callers
// still own handing the result to ebiten.Image.DrawTriangles (or an
// equivalent), and still own resolving BufferID to actual bytes — this
// package never allocates a GPU resource itself.
package exportcmd

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	rsg "github.com/alpqr/rsg2"
)

// BufferProvider resolves an application-owned buffer ID to its backing
// bytes. This package never interprets BufferID itself.
type BufferProvider func(bufferID uint32) []byte

// ExportedSubMesh is one submesh's CPU-side draw data, ready to hand to
// ebiten's DrawTriangles family alongside an application-chosen image.
type ExportedSubMesh struct {
	Vertices      []ebiten.Vertex
	Indices       []uint16
	GraphicsState rsg.GraphicsState
}

func readFloat32(buf []byte, byteOffset uint64, component int) float32 {
	off := byteOffset + uint64(component)*4
	bits := binary.LittleEndian.Uint32(buf[off : off+4])
	return math.Float32frombits(bits)
}

// ExportSubMesh builds the vertex and index buffers for one submesh. It
// reads the position input (if present) as the vertex's screen-space
// destination (Z is dropped, a flat CPU-side stand-in for a real
// projection) and the color input (if present, modulated by
// inheritedOpacity) as the vertex color; a submesh with no color input
// gets opaque white modulated by inheritedOpacity.
func ExportSubMesh(mesh rsg.Mesh, sub rsg.SubMesh, material rsg.Material, inheritedOpacity float32, provider BufferProvider) (ExportedSubMesh, error) {
	var posInput, colorInput *rsg.VertexInput
	for i := range sub.Inputs {
		in := &sub.Inputs[i]
		switch in.Kind {
		case rsg.InputPosition:
			posInput = in
		case rsg.InputColor:
			colorInput = in
		}
	}

	verts := make([]ebiten.Vertex, sub.VertexCount)
	for i := range verts {
		verts[i] = ebiten.Vertex{ColorR: 1, ColorG: 1, ColorB: 1, ColorA: inheritedOpacity}
	}

	if posInput != nil {
		if int(posInput.ViewIndex) >= len(mesh.VertexViews) {
			return ExportedSubMesh{}, fmt.Errorf("exportcmd: position view index %d out of range", posInput.ViewIndex)
		}
		view := mesh.VertexViews[posInput.ViewIndex]
		buf := provider(view.BufferID)
		stride := view.Stride
		for i := range verts {
			off := view.Offset + uint64(i)*stride + posInput.ByteOffset
			verts[i].DstX = readFloat32(buf, off, 0)
			verts[i].DstY = readFloat32(buf, off, 1)
		}
	}

	if colorInput != nil {
		if int(colorInput.ViewIndex) >= len(mesh.VertexViews) {
			return ExportedSubMesh{}, fmt.Errorf("exportcmd: color view index %d out of range", colorInput.ViewIndex)
		}
		view := mesh.VertexViews[colorInput.ViewIndex]
		buf := provider(view.BufferID)
		stride := view.Stride
		for i := range verts {
			off := view.Offset + uint64(i)*stride + colorInput.ByteOffset
			verts[i].ColorR = readFloat32(buf, off, 0)
			verts[i].ColorG = readFloat32(buf, off, 1)
			verts[i].ColorB = readFloat32(buf, off, 2)
			verts[i].ColorA = readFloat32(buf, off, 3) * inheritedOpacity
		}
	}

	var indices []uint16
	if sub.HasIndexView {
		buf := provider(sub.IndexView.View.BufferID)
		indices = make([]uint16, sub.IndexCount)
		off := sub.IndexView.View.Offset
		if sub.IndexView.Wide {
			for i := range indices {
				v := binary.LittleEndian.Uint32(buf[off+uint64(i)*4 : off+uint64(i)*4+4])
				indices[i] = uint16(v)
			}
		} else {
			for i := range indices {
				indices[i] = binary.LittleEndian.Uint16(buf[off+uint64(i)*2 : off+uint64(i)*2+2])
			}
		}
	}

	return ExportedSubMesh{
		Vertices:      verts,
		Indices:       indices,
		GraphicsState: material.EffectiveGraphicsState(inheritedOpacity),
	}, nil
}
