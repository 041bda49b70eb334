package scene

// Node is the sealed interface for visual tree nodes. Only Frame, Group,
// Text and Image implement it. The tree is a declarative description of a
// single frame's visual state - numeric parameters plus structure - and is
// handed to an external rasterizer. The core never touches pixels.
//
// Each node kind has explicit typed fields; there is no open-ended property
// bag. Child order within a container is paint order.
type Node interface {
	node()

	// Kind returns the wire tag for the node variant.
	Kind() string
}

// Node variant tags used in canonical serialization.
const (
	KindFrame = "frame"
	KindGroup = "group"
	KindText  = "text"
	KindImage = "image"
)

// Color is an RGBA color with components in [0, 1]. Float components keep
// colors interpolable with the same primitives as every other parameter.
type Color struct {
	R, G, B, A float64
}

// Frame is the root container covering the full composition area.
type Frame struct {
	Fill     Color
	Children []Node
}

func (*Frame) node() {}

// Kind implements Node.
func (*Frame) Kind() string { return KindFrame }

// Group positions, scales and fades a subtree as a unit.
type Group struct {
	ID       string
	X, Y     float64
	Scale    float64
	Rotation float64 // degrees, clockwise
	Opacity  float64
	Children []Node
}

func (*Group) node() {}

// Kind implements Node.
func (*Group) Kind() string { return KindGroup }

// Text is a positioned run of text.
type Text struct {
	ID      string
	Value   string
	X, Y    float64
	Size    float64
	Color   Color
	Opacity float64
}

func (*Text) node() {}

// Kind implements Node.
func (*Text) Kind() string { return KindText }

// Image references an asset by logical name. Resolution of Ref to bytes is
// the asset collaborator's job; the core performs no file I/O.
type Image struct {
	ID      string
	Ref     string
	X, Y    float64
	W, H    float64
	Opacity float64
}

func (*Image) node() {}

// Kind implements Node.
func (*Image) Kind() string { return KindImage }

// Walk visits root and every descendant in paint order (parents before
// children, children in declaration order). The visit function returning
// false stops the walk.
func Walk(root Node, visit func(Node) bool) {
	walk(root, visit)
}

func walk(n Node, visit func(Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	switch v := n.(type) {
	case *Frame:
		for _, c := range v.Children {
			if !walk(c, visit) {
				return false
			}
		}
	case *Group:
		for _, c := range v.Children {
			if !walk(c, visit) {
				return false
			}
		}
	}
	return true
}
