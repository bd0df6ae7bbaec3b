package rsg

import (
	"math"
	"testing"

	"github.com/gazed/vu/math/lin"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNewCameraDerivedPropsFromTranslationOnlyTransform(t *testing.T) {
	world := lin.M4{}
	world.Set(lin.M4I)
	world.Wx, world.Wy, world.Wz = 0, 0, 600

	props := NewCameraDerivedProps(&world)

	if props.Position.X != 0 || props.Position.Y != 0 || props.Position.Z != 600 {
		t.Fatalf("Position = %+v, want (0,0,600)", props.Position)
	}
	if !approxEqual(props.Direction.X, 0, 1e-6) || !approxEqual(props.Direction.Y, 0, 1e-6) || !approxEqual(props.Direction.Z, -1, 1e-6) {
		t.Fatalf("Direction = %+v, want (0,0,-1)", props.Direction)
	}
}

// S6: camera at z=600 looking down -Z; world Z of -1 and -6 should sort to
// 601 and 606 respectively.
func TestCalculateSortingDistanceMatchesCameraLookingDownNegativeZ(t *testing.T) {
	world := lin.M4{}
	world.Set(lin.M4I)
	world.Wx, world.Wy, world.Wz = 0, 0, 600
	props := NewCameraDerivedProps(&world)

	bounds := Aabb{Min: lin.V3{}, Max: lin.V3{}}

	near := lin.M4{}
	near.Set(lin.M4I)
	near.Wz = -1
	if got := CalculateSortingDistance(&near, bounds, props); !approxEqual(float64(got), 601, 1e-4) {
		t.Fatalf("sort distance at world z=-1 = %v, want 601", got)
	}

	far := lin.M4{}
	far.Set(lin.M4I)
	far.Wz = -6
	if got := CalculateSortingDistance(&far, bounds, props); !approxEqual(float64(got), 606, 1e-4) {
		t.Fatalf("sort distance at world z=-6 = %v, want 606", got)
	}
}
