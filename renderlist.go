package rsg

import (
	"sort"

	"github.com/alpqr/rsg2/taskpool"
)

// RenderListEntry pairs a mesh-bearing node with its sort key: camera-
// relative signed distance in 3D mode, stacking order in 2D mode.
type RenderListEntry struct {
	Node    NodeHandle
	SortKey float32
}

// RenderList is a list of mesh-bearing nodes in submission order.
type RenderList []RenderListEntry

func insertAscending(list RenderList, e RenderListEntry) RenderList {
	pos := sort.Search(len(list), func(i int) bool { return list[i].SortKey >= e.SortKey })
	list = append(list, RenderListEntry{})
	copy(list[pos+1:], list[pos:])
	list[pos] = e
	return list
}

func insertDescending(list RenderList, e RenderListEntry) RenderList {
	pos := sort.Search(len(list), func(i int) bool { return list[i].SortKey <= e.SortKey })
	list = append(list, RenderListEntry{})
	copy(list[pos+1:], list[pos:])
	list[pos] = e
	return list
}

func reverse(list RenderList) {
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
}

// BuildRenderLists walks the subtree rooted at start and fills opaqueList
// and alphaList with every mesh-bearing node it visits.
//
// If cameraProps is non-nil (3D mode), entries are sorted by signed
// camera-relative distance: opaqueList ascending (front to back), alphaList
// descending (back to front, for correct blending). If cameraProps is nil
// (2D mode), entries keep stacking order: traversal order for alphaList
// (tree order is already back to front), reversed for opaqueList (so it
// ends up front to back too).
//
// dirtyWorldRoots/dirtyOpacityRoots, when non-empty, trigger a background
// UpdateWorldTransforms/UpdateInheritedOpacities pass via runner; each is
// joined lazily, the first time a mesh-bearing node actually needs its
// result, rather than up front. Both passes are started before the
// traversal, and any pass not yet joined is joined before BuildRenderLists
// returns, so a traversal that reaches no mesh node still waits for them.
//
// Traversal stops the instant it visits a layer-bearing node other than
// start itself — layers are rendered via their own separate
// BuildRenderLists call, scoped to that layer's subtree.
func BuildRenderLists(
	components *ComponentContainer,
	scene *Scene,
	start NodeHandle,
	cameraProps *CameraDerivedProps,
	dirtyWorldRoots, dirtyOpacityRoots []NodeHandle,
	opaqueList, alphaList *RenderList,
	runner taskpool.Runner,
) error {
	updateOpacities := len(dirtyOpacityRoots) > 0
	opacityDone := make(chan struct{})
	if updateOpacities {
		runner.Go(func() error {
			UpdateInheritedOpacities(components.opacities, scene, dirtyOpacityRoots)
			close(opacityDone)
			return nil
		})
	}

	updateTransforms := len(dirtyWorldRoots) > 0
	transformDone := make(chan struct{})
	if updateTransforms {
		runner.Go(func() error {
			UpdateWorldTransforms(components.transforms, scene, dirtyWorldRoots)
			close(transformDone)
			return nil
		})
	}

	*opaqueList = (*opaqueList)[:0]
	*alphaList = (*alphaList)[:0]

	stackingOrder2D := 0
	it := scene.Traverse(start)
	for {
		key, _, ok := it.Next()
		if !ok {
			break
		}
		links := scene.ComponentLinks(key)
		if !links.Mesh.IsNil() {
			meshData, _ := components.Mesh(links.Mesh)

			if updateOpacities {
				<-opacityDone
				updateOpacities = false
			}

			if cameraProps != nil {
				if updateTransforms {
					<-transformDone
					updateTransforms = false
				}
				world := components.transforms.MustGet(links.Transform).World
				sortDist := CalculateSortingDistance(&world, *meshData.Bounds3D, *cameraProps)
				entry := RenderListEntry{Node: key, SortKey: sortDist}
				if components.IsOpaque(links) {
					*opaqueList = insertAscending(*opaqueList, entry)
				} else {
					*alphaList = insertDescending(*alphaList, entry)
				}
			} else {
				entry := RenderListEntry{Node: key, SortKey: float32(stackingOrder2D)}
				if components.IsOpaque(links) {
					*opaqueList = append(*opaqueList, entry)
				} else {
					*alphaList = append(*alphaList, entry)
				}
				stackingOrder2D++
			}
		}
		if !links.Layer.IsNil() && key != start {
			break
		}
	}

	if cameraProps == nil {
		reverse(*opaqueList)
	}

	if updateOpacities {
		<-opacityDone
	}
	if updateTransforms {
		<-transformDone
	}

	return runner.Wait()
}
