package rsg

import "github.com/gazed/vu/math/lin"

// UpdateWorldTransforms recomputes the world transform of every transform-
// bearing node in each subtree named by subtreeRoots (normally a Scene's
// accumulated DirtyWorldRoots since the last build). For each such node it
// walks strict ancestors until it finds the nearest one that itself carries
// a transform, multiplying local by that ancestor's (already up to date)
// world transform; a layer-bearing ancestor encountered first stops the
// walk with no ancestor contribution, same as finding no transform-bearing
// ancestor at all. The walk order matters: subtreeRoots are assumed to be
// such that, within a single call, every ancestor outside a given root's
// own subtree has already been refreshed by an earlier call.
func UpdateWorldTransforms(transforms *slotArena[transformKey, TransformComponent], scene *Scene, subtreeRoots []NodeHandle) {
	for _, subtreeRoot := range subtreeRoots {
		it := scene.Traverse(subtreeRoot)
		for {
			key, _, ok := it.Next()
			if !ok {
				break
			}
			links := scene.ComponentLinks(key)
			if links.Transform.IsNil() {
				continue
			}
			world := transforms.MustGet(links.Transform).Local

			ancestors := scene.Ancestors(key)
			for {
				ancestorKey, ok := ancestors.Next()
				if !ok {
					break
				}
				ancestorLinks := scene.ComponentLinks(ancestorKey)
				if !ancestorLinks.Transform.IsNil() {
					ancestorWorld := transforms.MustGet(ancestorLinks.Transform).World
					var combined lin.M4
					combined.Mult(&world, &ancestorWorld)
					world = combined
					break
				}
				if !ancestorLinks.Layer.IsNil() {
					break
				}
			}

			transforms.MustGet(links.Transform).World = world
		}
	}
}

// UpdateInheritedOpacities recomputes InheritedOpacity for every opacity-
// bearing node in each subtree named by subtreeRoots, the same ancestor-walk
// rule as UpdateWorldTransforms but multiplying own opacity by the nearest
// opacity-bearing ancestor's inherited opacity.
func UpdateInheritedOpacities(opacities *slotArena[opacityKey, OpacityComponent], scene *Scene, subtreeRoots []NodeHandle) {
	for _, subtreeRoot := range subtreeRoots {
		it := scene.Traverse(subtreeRoot)
		for {
			key, _, ok := it.Next()
			if !ok {
				break
			}
			links := scene.ComponentLinks(key)
			if links.Opacity.IsNil() {
				continue
			}
			inherited := opacities.MustGet(links.Opacity).Opacity

			ancestors := scene.Ancestors(key)
			for {
				ancestorKey, ok := ancestors.Next()
				if !ok {
					break
				}
				ancestorLinks := scene.ComponentLinks(ancestorKey)
				if !ancestorLinks.Opacity.IsNil() {
					inherited *= opacities.MustGet(ancestorLinks.Opacity).InheritedOpacity
					break
				}
				if !ancestorLinks.Layer.IsNil() {
					break
				}
			}

			opacities.MustGet(links.Opacity).InheritedOpacity = inherited
		}
	}
}
