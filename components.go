package rsg

import (
	"fmt"
	"io"
	"strings"

	"github.com/gazed/vu/math/lin"
)

// TransformComponent holds a node's local transform and its most recently
// computed world transform. World transform is only ever written by
// UpdateWorldTransforms; everywhere else it should be treated as read-only.
type TransformComponent struct {
	Local lin.M4
	World lin.M4
}

// OpacityComponent holds a node's own opacity and its most recently computed
// inherited (ancestor-multiplied) opacity.
type OpacityComponent struct {
	Opacity           float32
	InheritedOpacity  float32
}

// LayerComponent marks a node as an inheritance and traversal barrier: the
// world-transform/opacity passes stop ancestor lookup here, and the
// render-list builder treats any other layer-bearing node it encounters as
// the end of the whole traversal (see BuildRenderLists).
type LayerComponent struct{}

// ComponentLinks is the fixed, closed set of component handles a node may
// carry. There is deliberately no mechanism to attach any other component
// kind — see the Non-goals in SPEC_FULL.md.
type ComponentLinks struct {
	Transform TransformHandle
	Opacity   OpacityHandle
	Material  MaterialHandle
	Mesh      MeshHandle
	Layer     LayerHandle
}

// ComponentContainer owns the five parallel component stores. A Scene's
// nodes only ever reference into here by handle; the container has no
// knowledge of the tree shape itself.
type ComponentContainer struct {
	transforms *slotArena[transformKey, TransformComponent]
	opacities  *slotArena[opacityKey, OpacityComponent]
	materials  *slotArena[materialKey, struct{}]
	materialData map[MaterialHandle]Material
	meshes     *slotArena[meshKey, struct{}]
	meshData   map[MeshHandle]Mesh
	layers     *slotArena[layerKey, LayerComponent]
}

// NewComponentContainer returns an empty component store.
func NewComponentContainer() *ComponentContainer {
	return &ComponentContainer{
		transforms:   newSlotArena[transformKey, TransformComponent](),
		opacities:    newSlotArena[opacityKey, OpacityComponent](),
		materials:    newSlotArena[materialKey, struct{}](),
		materialData: make(map[MaterialHandle]Material),
		meshes:       newSlotArena[meshKey, struct{}](),
		meshData:     make(map[MeshHandle]Mesh),
		layers:       newSlotArena[layerKey, LayerComponent](),
	}
}

// Transform returns the transform component for h, or nil if h does not
// resolve.
func (c *ComponentContainer) Transform(h TransformHandle) *TransformComponent { return c.transforms.Get(h) }

// Opacity returns the opacity component for h, or nil if h does not
// resolve.
func (c *ComponentContainer) Opacity(h OpacityHandle) *OpacityComponent { return c.opacities.Get(h) }

// Material returns the material data for h and whether it was found.
func (c *ComponentContainer) Material(h MaterialHandle) (Material, bool) {
	m, ok := c.materialData[h]
	return m, ok
}

// Mesh returns the mesh data for h and whether it was found.
func (c *ComponentContainer) Mesh(h MeshHandle) (Mesh, bool) {
	m, ok := c.meshData[h]
	return m, ok
}

// AddDefaultRoot creates a root node carrying an identity transform and full
// opacity and installs it as scene's root. This is the usual way to start a
// scene: every other node in SPEC_FULL.md's scenarios descends from one of
// these.
func (c *ComponentContainer) AddDefaultRoot(scene *Scene) NodeHandle {
	links := NewComponentBuilder(c).Transform(*lin.M4I).Opacity(1).Links()
	return scene.SetRoot(NewNode(links))
}

// Remove releases every component referenced by links. Scene never calls
// it; callers pass it the links that Scene.Remove and friends return.
func (c *ComponentContainer) Remove(links ComponentLinks) {
	if !links.Transform.IsNil() {
		c.transforms.Remove(links.Transform)
	}
	if !links.Opacity.IsNil() {
		c.opacities.Remove(links.Opacity)
	}
	if !links.Material.IsNil() {
		c.materials.Remove(links.Material)
		delete(c.materialData, links.Material)
	}
	if !links.Mesh.IsNil() {
		c.meshes.Remove(links.Mesh)
		delete(c.meshData, links.Mesh)
	}
	if !links.Layer.IsNil() {
		c.layers.Remove(links.Layer)
	}
}

// IsOpaque reports whether a node is fully opaque: its inherited opacity (if
// any) is 1, and its material (if any) does not have blending enabled.
func (c *ComponentContainer) IsOpaque(links ComponentLinks) bool {
	if !links.Opacity.IsNil() {
		if o := c.opacities.Get(links.Opacity); o != nil && o.InheritedOpacity < 1 {
			return false
		}
	}
	if !links.Material.IsNil() {
		if m, ok := c.materialData[links.Material]; ok && m.GraphicsState.Blend.BlendEnable {
			return false
		}
	}
	return true
}

// PrintScene writes a human-readable dump of the subtree rooted at start to
// w, for interactive debugging. maxDepth < 0 means unlimited. Not used by
// any production code path; purely a development aid, the way a debugger
// watch expression would be.
func (c *ComponentContainer) PrintScene(w io.Writer, scene *Scene, start NodeHandle, maxDepth int) {
	it := scene.Traverse(start)
	for {
		key, depth, ok := it.Next()
		if !ok {
			break
		}
		if maxDepth >= 0 && int(depth) > maxDepth {
			fmt.Fprintln(w, "... <truncated>")
			break
		}
		links := scene.ComponentLinks(key)
		indent := strings.Repeat("    ", int(depth))
		fmt.Fprintf(w, "%s----%v alpha=%v\n", indent, key, !c.IsOpaque(links))

		if !links.Transform.IsNil() {
			t := c.transforms.MustGet(links.Transform)
			fmt.Fprintf(w, "%s    local translate=(%g, %g, %g) world translate=(%g, %g, %g)\n", indent,
				t.Local.Wx, t.Local.Wy, t.Local.Wz, t.World.Wx, t.World.Wy, t.World.Wz)
		}
		if !links.Opacity.IsNil() {
			o := c.opacities.MustGet(links.Opacity)
			fmt.Fprintf(w, "%s    opacity=%v inherited opacity=%v\n", indent, o.Opacity, o.InheritedOpacity)
		}
		if !links.Material.IsNil() {
			mat := c.materialData[links.Material]
			fmt.Fprintf(w, "%s    material property value count=%d\n", indent, len(mat.PropertyValues))
		}
		if !links.Mesh.IsNil() {
			mesh := c.meshData[links.Mesh]
			fmt.Fprintf(w, "%s    mesh submesh count=%d\n", indent, len(mesh.SubMeshes))
		}
		if !links.Layer.IsNil() {
			fmt.Fprintf(w, "%s    layer root\n", indent)
		}
	}
}

// ComponentBuilder assembles a ComponentLinks value one component at a
// time, inserting each into the container as it goes. Call Links once at
// the end to obtain the finished value to hand to NewNode.
type ComponentBuilder struct {
	links     ComponentLinks
	container *ComponentContainer
}

// NewComponentBuilder starts building a ComponentLinks backed by container.
func NewComponentBuilder(container *ComponentContainer) *ComponentBuilder {
	return &ComponentBuilder{container: container}
}

// Transform attaches a transform component initialized from localTransform
// (world transform starts out equal to it, until the next inheritance
// pass).
func (b *ComponentBuilder) Transform(localTransform lin.M4) *ComponentBuilder {
	b.links.Transform = b.container.transforms.Insert(TransformComponent{Local: localTransform, World: localTransform})
	return b
}

// Opacity attaches an opacity component (inherited opacity starts out equal
// to opacity, until the next inheritance pass).
func (b *ComponentBuilder) Opacity(opacity float32) *ComponentBuilder {
	b.links.Opacity = b.container.opacities.Insert(OpacityComponent{Opacity: opacity, InheritedOpacity: opacity})
	return b
}

// Material attaches a material component.
func (b *ComponentBuilder) Material(material Material) *ComponentBuilder {
	key := b.container.materials.Insert(struct{}{})
	b.links.Material = key
	b.container.materialData[key] = material
	return b
}

// Mesh attaches a mesh component.
func (b *ComponentBuilder) Mesh(mesh Mesh) *ComponentBuilder {
	key := b.container.meshes.Insert(struct{}{})
	b.links.Mesh = key
	b.container.meshData[key] = mesh
	return b
}

// Layer marks the node under construction as a layer barrier.
func (b *ComponentBuilder) Layer() *ComponentBuilder {
	b.links.Layer = b.container.layers.Insert(LayerComponent{})
	return b
}

// Links returns the assembled ComponentLinks.
func (b *ComponentBuilder) Links() ComponentLinks {
	return b.links
}
