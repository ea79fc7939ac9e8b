package models

// Anchor selects which horizontal edge of an event block is fixed
type Anchor int

const (
	AnchorLeft  Anchor = iota // Offset counts pixels from the surface's left edge
	AnchorRight               // Offset counts pixels from the surface's right edge
)

func (a Anchor) String() string {
	if a == AnchorRight {
		return "right"
	}
	return "left"
}

// Geometry is the pixel placement of an event block inside a resource row.
//
// Only one horizontal offset exists at a time: Anchor decides whether Offset
// is measured from the left or from the right edge of the row surface.
type Geometry struct {
	Anchor          Anchor
	Offset          int
	OffsetY         int
	Width           int
	Height          int
	BackgroundColor string
}

// LeftAnchored returns a geometry positioned from the left edge
func LeftAnchored(offsetX, offsetY, width, height int, bg string) Geometry {
	return Geometry{Anchor: AnchorLeft, Offset: offsetX, OffsetY: offsetY, Width: width, Height: height, BackgroundColor: bg}
}

// RightAnchored returns a geometry positioned from the right edge
func RightAnchored(offsetXFromRight, offsetY, width, height int, bg string) Geometry {
	return Geometry{Anchor: AnchorRight, Offset: offsetXFromRight, OffsetY: offsetY, Width: width, Height: height, BackgroundColor: bg}
}

// OffsetX returns the left offset if the geometry is left-anchored
func (g Geometry) OffsetX() (int, bool) {
	if g.Anchor != AnchorLeft {
		return 0, false
	}
	return g.Offset, true
}

// OffsetXFromRight returns the right offset if the geometry is right-anchored
func (g Geometry) OffsetXFromRight() (int, bool) {
	if g.Anchor != AnchorRight {
		return 0, false
	}
	return g.Offset, true
}

// Left resolves the left edge for a surface of the given width
func (g Geometry) Left(surfaceWidth int) int {
	if g.Anchor == AnchorRight {
		return surfaceWidth - g.Offset - g.Width
	}
	return g.Offset
}

// Right resolves the right edge for a surface of the given width
func (g Geometry) Right(surfaceWidth int) int {
	return g.Left(surfaceWidth) + g.Width
}

// AnchorLeftAt re-anchors the geometry on its left edge at x
func (g Geometry) AnchorLeftAt(x int) Geometry {
	g.Anchor = AnchorLeft
	g.Offset = x
	return g
}

// AnchorRightAt re-anchors the geometry on its right edge, given in
// surface coordinates, for a surface of the given width
func (g Geometry) AnchorRightAt(right, surfaceWidth int) Geometry {
	g.Anchor = AnchorRight
	g.Offset = surfaceWidth - right
	return g
}
