// Package rsg is a retained-mode scene graph core: a handle-based node
// tree, a fixed set of component stores (transform, opacity, material,
// mesh, layer), dirty tracking via an [Observer], inheritance passes that
// propagate world transform and opacity down the tree, and a render-list
// builder that turns a subtree into sorted, draw-ready node lists.
//
// # Scene graph
//
// A [Scene] owns the tree; nodes are referenced everywhere by [NodeHandle],
// never by pointer, so the tree survives arbitrary structural mutation
// without dangling references. Components live in a separate
// [ComponentContainer], addressed by their own handle types
// ([TransformHandle], [OpacityHandle], [MaterialHandle], [MeshHandle],
// [LayerHandle]); a node only carries the handles relevant to it via
// [ComponentLinks].
//
//	scene := rsg.NewScene()
//	components := rsg.NewComponentContainer()
//	root := components.AddDefaultRoot(scene)
//
//	links := rsg.NewComponentBuilder(components).
//		Transform(*lin.M4I).
//		Opacity(1).
//		Links()
//	child := scene.Append(root, rsg.NewNode(links))
//
// # Dirty tracking
//
// Install a [SceneObserver] via [Scene.SetObserver] before mutating the
// scene; every structural change and every [Scene.MarkDirty] call is
// recorded as an [Event]. Take the accumulated dirty-root lists with
// [Scene.TakeObserver] before building a frame's render lists, then
// [SceneObserver.Reset] it for the next frame.
//
// # Inheritance and render lists
//
// [UpdateWorldTransforms] and [UpdateInheritedOpacities] propagate a
// node's world transform and inherited opacity down from the nearest
// transform/opacity-bearing ancestor (stopping early at a [LayerComponent]
// barrier). [BuildRenderLists] then walks a subtree once, sorting
// mesh-bearing nodes into an opaque and an alpha render list — by
// camera-relative distance in 3D, by stacking order in 2D — joining the
// inheritance passes lazily via a [taskpool.Runner] only once a node
// actually needs their result.
package rsg
