package core

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{0, 0, 0, 0}
	ColorRed         = Color{1, 0, 0, 1}
	ColorGreen       = Color{0, 1, 0, 1}
	ColorBlue        = Color{0, 0, 1, 1}
)

// Array returns the color as an RGBA array, the layout GL clear calls take.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

type Extent struct {
	Width, Height uint32
}

// Rect is a pixel rectangle, origin at the lower left as in GL.
type Rect struct {
	X, Y          int32
	Width, Height int32
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// ClearKind tells which part of a ClearValue is set.
type ClearKind uint8

const (
	ClearNone ClearKind = iota
	ClearColorValue
	ClearDepthStencilValue
)

type ClearValue struct {
	Kind    ClearKind
	Color   Color
	Depth   float32
	Stencil uint32
}

func ClearColor(c Color) ClearValue {
	return ClearValue{Kind: ClearColorValue, Color: c}
}

func ClearDepthStencil(depth float32, stencil uint32) ClearValue {
	return ClearValue{Kind: ClearDepthStencilValue, Depth: depth, Stencil: stencil}
}
