package rsg

// EventKind discriminates an Event.
type EventKind uint8

const (
	SubtreeAddedOrReattached EventKind = iota
	SubtreeAboutToBeRemoved
	SubtreeAboutToBeTemporarilyDetached
	Dirty
)

// Event is a single tree-mutation or dirty-marking notification delivered
// to an Observer. For SubtreeAddedOrReattached/SubtreeAboutToBeRemoved/
// SubtreeAboutToBeTemporarilyDetached, Node is the affected subtree root;
// for Dirty, Node is the marked node and Flags carries the DirtyFlags bits.
type Event struct {
	Kind  EventKind
	Node  NodeHandle
	Flags DirtyFlags
}

// Observer receives every tree mutation and every MarkDirty call a Scene
// makes. A Scene has at most one observer at a time (see Scene.SetObserver/
// TakeObserver); the canonical implementation is SceneObserver.
type Observer interface {
	Notify(Event)
}

// DirtyFlags selects which cached, inherited value(s) a node's Dirty event
// invalidates.
type DirtyFlags uint32

const (
	FlagTransform      DirtyFlags = 0x01
	FlagOpacity        DirtyFlags = 0x02
	FlagMaterial       DirtyFlags = 0x04
	FlagMaterialValues DirtyFlags = 0x08
	FlagMesh           DirtyFlags = 0x10
)

// SceneObserver is the canonical Observer: it accumulates, per kind, the
// subtree roots that need an inheritance pass or other reprocessing before
// the next render-list build, plus a HierarchyChanged flag so a caller can
// skip render-list rebuilding entirely on an unchanged frame.
//
// Divergence from the original: a Dirty event whose Flags spans more than
// one bit appends to every matching list, not just the first one a
// first-match switch would have hit. See DESIGN.md for why.
type SceneObserver struct {
	Changed                bool
	HierarchyChanged       bool
	DirtyWorldRoots        []NodeHandle
	DirtyOpacityRoots      []NodeHandle
	DirtyMaterialNodes     []NodeHandle
	DirtyMaterialValueNodes []NodeHandle
	DirtyMeshNodes         []NodeHandle
}

// NewSceneObserver returns a zeroed SceneObserver ready to receive events.
func NewSceneObserver() *SceneObserver {
	return &SceneObserver{}
}

// Notify implements Observer.
func (o *SceneObserver) Notify(event Event) {
	o.Changed = true
	switch event.Kind {
	case SubtreeAddedOrReattached:
		o.HierarchyChanged = true
		o.DirtyWorldRoots = append(o.DirtyWorldRoots, event.Node)
		o.DirtyOpacityRoots = append(o.DirtyOpacityRoots, event.Node)
		o.DirtyMaterialNodes = append(o.DirtyMaterialNodes, event.Node)
		o.DirtyMaterialValueNodes = append(o.DirtyMaterialValueNodes, event.Node)
		o.DirtyMeshNodes = append(o.DirtyMeshNodes, event.Node)
	case SubtreeAboutToBeRemoved:
		o.HierarchyChanged = true
	case Dirty:
		if event.Flags&FlagTransform != 0 {
			o.DirtyWorldRoots = append(o.DirtyWorldRoots, event.Node)
		}
		if event.Flags&FlagOpacity != 0 {
			o.DirtyOpacityRoots = append(o.DirtyOpacityRoots, event.Node)
		}
		if event.Flags&FlagMaterial != 0 {
			o.DirtyMaterialNodes = append(o.DirtyMaterialNodes, event.Node)
		}
		if event.Flags&FlagMaterialValues != 0 {
			o.DirtyMaterialValueNodes = append(o.DirtyMaterialValueNodes, event.Node)
		}
		if event.Flags&FlagMesh != 0 {
			o.DirtyMeshNodes = append(o.DirtyMeshNodes, event.Node)
		}
	}
}

// Reset clears all accumulated state, ready for the next frame.
func (o *SceneObserver) Reset() {
	o.Changed = false
	o.HierarchyChanged = false
	o.DirtyWorldRoots = o.DirtyWorldRoots[:0]
	o.DirtyOpacityRoots = o.DirtyOpacityRoots[:0]
	o.DirtyMaterialNodes = o.DirtyMaterialNodes[:0]
	o.DirtyMaterialValueNodes = o.DirtyMaterialValueNodes[:0]
	o.DirtyMeshNodes = o.DirtyMeshNodes[:0]
}
