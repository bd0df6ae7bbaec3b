package rsg

import "github.com/gazed/vu/math/lin"

// OrthographicProjection describes a parallel (orthographic) projection.
type OrthographicProjection struct {
	XMag, YMag float32
	Near, Far  float32
}

// PerspectiveProjection describes a perspective projection.
type PerspectiveProjection struct {
	AspectRatio float32
	Fov         float32
	Near, Far   float32
}

// Camera is either an orthographic or a perspective projection, selected by
// Orthographic != nil. Exactly one of Orthographic/Perspective is set.
type Camera struct {
	Orthographic *OrthographicProjection
	Perspective  *PerspectiveProjection
}

// DefaultCamera returns a conventional perspective camera (aspect ratio
// 1.777, 45 degree field of view, near 0.01, far 1000).
func DefaultCamera() Camera {
	return Camera{Perspective: &PerspectiveProjection{AspectRatio: 1.777, Fov: 45, Near: 0.01, Far: 1000}}
}

// CameraDerivedProps caches the camera's world-space position and facing
// direction, derived once per frame from its world transform rather than
// recomputed per sorted node. Only a 3D render list needs this; 2D render
// lists are sorted by stacking order instead (see BuildRenderLists).
type CameraDerivedProps struct {
	Position  lin.V3
	Direction lin.V3
}

// NewCameraDerivedProps derives a camera's position and forward direction
// (the local -Z axis rotated into world space) from its world transform.
func NewCameraDerivedProps(worldTransform *lin.M4) CameraDerivedProps {
	position := lin.V3{X: worldTransform.Wx, Y: worldTransform.Wy, Z: worldTransform.Wz}

	rotScale := lin.M3{}
	rotScale.SetM4(worldTransform)
	inv := lin.M3{}
	inv.Inv(&rotScale)
	scalingCorrect := lin.M3{}
	scalingCorrect.Transpose(&inv)

	forward := lin.V3{X: 0, Y: 0, Z: -1}
	direction := lin.V3{}
	direction.MultvM(&forward, &scalingCorrect)
	direction.Unit()

	return CameraDerivedProps{Position: position, Direction: direction}
}

// CalculateSortingDistance projects a mesh's world-space bounding center
// onto the camera's forward axis, giving a scalar usable to order geometry
// front-to-back (ascending, for opaque draws) or back-to-front (descending,
// for alpha-blended draws).
func CalculateSortingDistance(worldTransform *lin.M4, bounds Aabb, cameraProps CameraDerivedProps) float32 {
	center := bounds.Center()
	centerV4 := lin.V4{X: center.X, Y: center.Y, Z: center.Z, W: 1}
	worldCenterV4 := lin.V4{}
	worldCenterV4.MultvM(&centerV4, worldTransform)
	worldCenter := lin.V3{X: worldCenterV4.X, Y: worldCenterV4.Y, Z: worldCenterV4.Z}

	toCenter := lin.V3{}
	toCenter.Sub(&worldCenter, &cameraProps.Position)
	return float32(toCenter.Dot(&cameraProps.Direction))
}
