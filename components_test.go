package rsg

import (
	"testing"

	"github.com/gazed/vu/math/lin"
)

func TestComponentBuilderAssemblesLinks(t *testing.T) {
	c := NewComponentContainer()
	links := NewComponentBuilder(c).
		Transform(*lin.M4I).
		Opacity(0.5).
		Mesh(Mesh{}).
		Layer().
		Links()

	if links.Transform.IsNil() || links.Opacity.IsNil() || links.Mesh.IsNil() || links.Layer.IsNil() {
		t.Fatalf("expected every requested component to be linked, got %+v", links)
	}
	if !links.Material.IsNil() {
		t.Fatalf("Material was never requested, should stay nil")
	}

	transform := c.Transform(links.Transform)
	if transform.Local != *lin.M4I || transform.World != *lin.M4I {
		t.Fatalf("Local/World should both start out equal to the constructor argument")
	}
	opacity := c.Opacity(links.Opacity)
	if opacity.Opacity != 0.5 || opacity.InheritedOpacity != 0.5 {
		t.Fatalf("Opacity/InheritedOpacity should both start out equal to the constructor argument")
	}
}

func TestComponentContainerRemoveReleasesEveryLinkedComponent(t *testing.T) {
	c := NewComponentContainer()
	links := NewComponentBuilder(c).
		Transform(*lin.M4I).
		Opacity(1).
		Material(Material{GraphicsState: DefaultGraphicsState()}).
		Mesh(Mesh{}).
		Layer().
		Links()

	c.Remove(links)

	if c.Transform(links.Transform) != nil {
		t.Fatalf("transform component should be released")
	}
	if c.Opacity(links.Opacity) != nil {
		t.Fatalf("opacity component should be released")
	}
	if _, ok := c.Material(links.Material); ok {
		t.Fatalf("material data should be released")
	}
	if _, ok := c.Mesh(links.Mesh); ok {
		t.Fatalf("mesh data should be released")
	}
}

func TestIsOpaqueConsidersOpacityAndBlend(t *testing.T) {
	c := NewComponentContainer()

	fullyOpaque := NewComponentBuilder(c).Opacity(1).Links()
	if !c.IsOpaque(fullyOpaque) {
		t.Fatalf("opacity 1, no material: expected opaque")
	}

	translucent := NewComponentBuilder(c).Opacity(0.5).Links()
	if c.IsOpaque(translucent) {
		t.Fatalf("opacity 0.5: expected not opaque")
	}

	blended := Material{GraphicsState: DefaultGraphicsState()}
	blended.GraphicsState.Blend.BlendEnable = true
	blendedLinks := NewComponentBuilder(c).Opacity(1).Material(blended).Links()
	if c.IsOpaque(blendedLinks) {
		t.Fatalf("blend enabled material: expected not opaque even at opacity 1")
	}
}

func TestAddDefaultRootInstallsIdentityTransformAndFullOpacity(t *testing.T) {
	scene := NewScene()
	c := NewComponentContainer()
	root := c.AddDefaultRoot(scene)

	if scene.Root() != root {
		t.Fatalf("AddDefaultRoot should install the returned node as scene root")
	}
	links := scene.ComponentLinks(root)
	if c.Transform(links.Transform).Local != *lin.M4I {
		t.Fatalf("default root should carry an identity local transform")
	}
	if c.Opacity(links.Opacity).Opacity != 1 {
		t.Fatalf("default root should carry full opacity")
	}
}
