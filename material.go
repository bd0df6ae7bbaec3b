package rsg

import "github.com/gazed/vu/math/lin"

// BuiltinValue names a value the renderer derives automatically from scene
// state (the model/view/projection matrix family) rather than one supplied
// by the application.
type BuiltinValue uint8

const (
	ModelMatrix BuiltinValue = iota
	ViewMatrix
	ProjectionMatrix
	ModelViewMatrix
	ViewProjectionMatrix
	ModelViewProjectionMatrix
	NormalMatrix
)

// CustomValue is an application-supplied shader property value. Only one
// field is meaningful, selected by Kind.
type CustomValue struct {
	Kind CustomValueKind
	F    float32
	V2   [2]float32
	V3   lin.V3
	V4   lin.V4
	I    int32
	I2   [2]int32
	I3   [3]int32
	I4   [4]int32
	M3   lin.M3
	M4   lin.M4
}

// CustomValueKind discriminates which field of a CustomValue is in use.
type CustomValueKind uint8

const (
	CustomFloat CustomValueKind = iota
	CustomVec2
	CustomVec3
	CustomVec4
	CustomInt
	CustomInt2
	CustomInt3
	CustomInt4
	CustomMat3
	CustomMat4
)

// PropertyValue is a tagged union: either a scene-derived BuiltinValue or an
// application-supplied CustomValue. Exactly one of Builtin/Custom applies,
// selected by IsBuiltin.
type PropertyValue struct {
	IsBuiltin bool
	Builtin   BuiltinValue
	Custom    CustomValue
}

// BuiltinPropertyValue wraps a BuiltinValue as a PropertyValue.
func BuiltinPropertyValue(v BuiltinValue) PropertyValue {
	return PropertyValue{IsBuiltin: true, Builtin: v}
}

// CustomPropertyValue wraps a CustomValue as a PropertyValue.
func CustomPropertyValue(v CustomValue) PropertyValue {
	return PropertyValue{Custom: v}
}

// CullMode selects which triangle winding, if any, is culled.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FrontFace selects which winding order is considered front-facing.
type FrontFace uint8

const (
	CounterClockwise FrontFace = iota
	Clockwise
)

// CompareOp selects the depth comparison function.
type CompareOp uint8

const (
	CompareNever CompareOp = iota
	CompareLess
	CompareEqual
	CompareLessOrEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterOrEqual
	CompareAlways
)

// ColorMask selects which color channels a draw writes to.
type ColorMask uint8

const (
	ColorMaskR ColorMask = 1 << iota
	ColorMaskG
	ColorMaskB
	ColorMaskA
	ColorMaskAll = ColorMaskR | ColorMaskG | ColorMaskB | ColorMaskA
)

// BlendFactor enumerates the full GPU blend-factor set.
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendConstantColor
	BlendOneMinusConstantColor
	BlendConstantAlpha
	BlendOneMinusConstantAlpha
	BlendSrcAlphaSaturate
	BlendSrc1Color
	BlendOneMinusSrc1Color
	BlendSrc1Alpha
	BlendOneMinusSrc1Alpha
)

// BlendOp selects how source and destination are combined once factored.
type BlendOp uint8

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// Blend describes the full fixed-function blend state.
type Blend struct {
	ColorWrite  ColorMask
	BlendEnable bool
	SrcColor    BlendFactor
	DstColor    BlendFactor
	OpColor     BlendOp
	SrcAlpha    BlendFactor
	DstAlpha    BlendFactor
	OpAlpha     BlendOp
}

// DefaultBlend returns the disabled, premultiplied-alpha-over blend state
// used as the starting point whenever transparency forces blending on.
func DefaultBlend() Blend {
	return Blend{
		ColorWrite:  ColorMaskAll,
		BlendEnable: false,
		SrcColor:    BlendOne,
		DstColor:    BlendOneMinusSrcAlpha,
		OpColor:     BlendOpAdd,
		SrcAlpha:    BlendOne,
		DstAlpha:    BlendOneMinusSrcAlpha,
		OpAlpha:     BlendOpAdd,
	}
}

// GraphicsState is the fixed-function pipeline state a material requests.
type GraphicsState struct {
	DepthTest  bool
	DepthWrite bool
	DepthOp    CompareOp
	CullMode   CullMode
	FrontFace  FrontFace
	Blend      Blend
}

// DefaultGraphicsState returns the conventional opaque-geometry defaults:
// depth test and write on, back-face culling, counter-clockwise front face.
func DefaultGraphicsState() GraphicsState {
	return GraphicsState{
		DepthTest:  true,
		DepthWrite: true,
		DepthOp:    CompareLess,
		CullMode:   CullBack,
		FrontFace:  CounterClockwise,
		Blend:      DefaultBlend(),
	}
}

// Material describes a node's shader binding and fixed-function graphics
// state. ShaderSetID is an opaque handle into whatever shader registry the
// embedder maintains; this package never resolves it.
type Material struct {
	ShaderSetID    uint32
	PropertyValues map[string]PropertyValue
	GraphicsState  GraphicsState
}

// EffectiveGraphicsState returns the graphics state a draw submission
// should actually use, accounting for inherited transparency: when the
// node is not fully opaque, depth writes are disabled and blending is
// forced on (using the default blend factors if the material didn't
// already request blending), so translucent geometry composites correctly
// without the caller having to special-case it.
func (m Material) EffectiveGraphicsState(inheritedOpacity float32) GraphicsState {
	state := m.GraphicsState
	hasTransparency := inheritedOpacity < 1 || state.Blend.BlendEnable
	if hasTransparency {
		state.DepthWrite = false
		if !state.Blend.BlendEnable {
			state.Blend = DefaultBlend()
			state.Blend.BlendEnable = true
		}
	}
	return state
}
