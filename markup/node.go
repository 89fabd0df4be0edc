package markup

import (
	"iter"
	"slices"
)

// TypeAttr is the attribute naming the type tag of an element.
const TypeAttr = "type"

// Document is a parsed markup tree.
type Document struct {
	root *Node
}

// Root returns the nameless node whose children are the top-level elements.
func (d *Document) Root() *Node { return d.root }

// Len returns the total number of elements in the document.
func (d *Document) Len() int { return d.root.count() - 1 }

// Node is one element of a [Document].
type Node struct {
	name     string
	typ      string
	hasType  bool
	text     string
	children []*Node
}

// Name returns the element name.
func (n *Node) Name() string { return n.name }

// Type returns the value of the type attribute and whether it was present.
func (n *Node) Type() (string, bool) { return n.typ, n.hasType }

// Text returns the unescaped character data of the element.
func (n *Node) Text() string { return n.text }

// Children returns the child elements in document order.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// HasChildren reports whether the element contains any child elements.
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// All returns an iterator over the child elements. It may be consumed any
// number of times.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.children {
			if !yield(c) {
				return
			}
		}
	}
}

func (n *Node) count() int {
	total := 1
	for _, c := range n.children {
		total += c.count()
	}

	return total
}
