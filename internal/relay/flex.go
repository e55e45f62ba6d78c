package relay

// The flex tree mirrors the target platform's bubble layout model: nested
// boxes terminating in text, image, icon, or filler leaves. Each Box owns its
// Contents exclusively, so the tree is acyclic by construction and a single
// walk serializes it.

// Layout is a Box stacking direction.
type Layout string

const (
	LayoutHorizontal Layout = "horizontal"
	LayoutVertical   Layout = "vertical"
	LayoutBaseline   Layout = "baseline"
)

// Node is one element of a card's layout tree.
type Node interface {
	isNode()
}

// Filler is a zero-content placeholder, used where the renderer rejects an
// empty text node.
type Filler struct{}

// Text is a text leaf. A nil Flex leaves the renderer default in place.
type Text struct {
	Text   string
	Color  string
	Weight string
	Size   string
	Flex   *int
	Wrap   bool
}

// Image is an image leaf, used for the author avatar.
type Image struct {
	URL  string
	Size string
	Flex *int
}

// Icon is a small inline image leaf, used for emoji grid cells.
type Icon struct {
	URL  string
	Size string
}

// Box stacks its children in the given direction.
type Box struct {
	Layout   Layout
	Spacing  string
	Contents []Node
}

func (Filler) isNode() {}
func (Text) isNode()   {}
func (Image) isNode()  {}
func (Icon) isNode()   {}
func (Box) isNode()    {}

// Card is the root of a composed visual message. The tree hangs off the
// bubble's footer region, which carries the least intrinsic padding on the
// target renderer.
type Card struct {
	AltText string
	Footer  *Box
}
