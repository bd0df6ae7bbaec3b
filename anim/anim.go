// Package anim provides simple per-node tweening on top of a scene's
// transform and opacity components, using gween for the easing curves.
// There is no global animation manager: callers hold on to a Group and
// call Update(dt) themselves, same as the rest of this module's
// frame-driven pieces.
package anim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	rsg "github.com/alpqr/rsg2"
)

// Group animates up to 3 values simultaneously via gween.Tween (which
// operates in float32, same as the teacher's own TweenGroup) and marks the
// owning node dirty with the given flags every frame until all of its
// tweens finish. apply writes the tweened values back into whichever
// component fields a constructor targets.
type Group struct {
	tweens [3]*gween.Tween
	count  int
	apply  func(values [3]float32)
	scene  *rsg.Scene
	node   rsg.NodeHandle
	flags  rsg.DirtyFlags
	Done   bool
}

// Update advances every tween by dt seconds, writes the results back via
// apply, and marks the owning node dirty. No-op once Done.
func (g *Group) Update(dt float32) {
	if g.Done {
		return
	}
	var values [3]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		values[i] = val
		if !finished {
			allDone = false
		}
	}
	g.apply(values)
	g.Done = allDone
	g.scene.MarkDirty(g.node, g.flags)
}

// TweenPosition animates a node's local translation (the W row of its
// TransformComponent) to (toX, toY, toZ) over duration seconds.
func TweenPosition(components *rsg.ComponentContainer, scene *rsg.Scene, node rsg.NodeHandle, transform rsg.TransformHandle, toX, toY, toZ float32, duration float32, fn ease.TweenFunc) *Group {
	t := components.Transform(transform)
	g := &Group{count: 3, scene: scene, node: node, flags: rsg.FlagTransform}
	g.tweens[0] = gween.New(float32(t.Local.Wx), toX, duration, fn)
	g.tweens[1] = gween.New(float32(t.Local.Wy), toY, duration, fn)
	g.tweens[2] = gween.New(float32(t.Local.Wz), toZ, duration, fn)
	g.apply = func(values [3]float32) {
		t.Local.Wx = float64(values[0])
		t.Local.Wy = float64(values[1])
		t.Local.Wz = float64(values[2])
	}
	return g
}

// TweenOpacity animates a node's own opacity to to over duration seconds.
func TweenOpacity(components *rsg.ComponentContainer, scene *rsg.Scene, node rsg.NodeHandle, opacity rsg.OpacityHandle, to float32, duration float32, fn ease.TweenFunc) *Group {
	o := components.Opacity(opacity)
	g := &Group{count: 1, scene: scene, node: node, flags: rsg.FlagOpacity}
	g.tweens[0] = gween.New(o.Opacity, to, duration, fn)
	g.apply = func(values [3]float32) {
		o.Opacity = values[0]
	}
	return g
}
