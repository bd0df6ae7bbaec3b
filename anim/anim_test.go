package anim

import (
	"testing"

	"github.com/gazed/vu/math/lin"
	"github.com/tanema/gween/ease"

	rsg "github.com/alpqr/rsg2"
)

func newTestScene(t *testing.T) (*rsg.Scene, *rsg.ComponentContainer, rsg.NodeHandle) {
	t.Helper()
	scene := rsg.NewScene()
	components := rsg.NewComponentContainer()
	root := components.AddDefaultRoot(scene)
	return scene, components, root
}

func TestTweenPositionReachesTarget(t *testing.T) {
	scene, components, root := newTestScene(t)
	links := rsg.NewComponentBuilder(components).Transform(*lin.M4I).Links()
	node := scene.Append(root, rsg.NewNode(links))

	g := TweenPosition(components, scene, node, links.Transform, 10, 20, 30, 1.0, ease.Linear)
	g.Update(1.0)

	if !g.Done {
		t.Fatalf("expected Done after full duration")
	}
	transform := components.Transform(links.Transform)
	if transform.Local.Wx != 10 || transform.Local.Wy != 20 || transform.Local.Wz != 30 {
		t.Fatalf("local translate = (%v, %v, %v), want (10, 20, 30)",
			transform.Local.Wx, transform.Local.Wy, transform.Local.Wz)
	}
}

func TestTweenOpacityReachesTarget(t *testing.T) {
	scene, components, root := newTestScene(t)
	links := rsg.NewComponentBuilder(components).Opacity(1).Links()
	node := scene.Append(root, rsg.NewNode(links))

	g := TweenOpacity(components, scene, node, links.Opacity, 0, 0.5, ease.Linear)
	if g.Done {
		t.Fatalf("should not be done before any Update")
	}
	g.Update(0.25)
	if g.Done {
		t.Fatalf("should not be done halfway through")
	}
	g.Update(0.25)
	if !g.Done {
		t.Fatalf("expected Done after full duration")
	}
	o := components.Opacity(links.Opacity)
	if o.Opacity != 0 {
		t.Fatalf("opacity = %v, want 0", o.Opacity)
	}
}
