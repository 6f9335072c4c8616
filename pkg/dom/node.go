// Package dom implements the live node tree that the loom reconciler
// renders into. It plays the role a host DOM plays for a browser
// renderer: mutable element/text/comment nodes, attributes, reflected
// properties, and child-list surgery. Nodes are not safe for concurrent
// mutation; the reconciler is single-threaded by contract.
package dom

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // <div>, <button>, etc.
	KindText                // Plain text node
	KindComment             // Comment node (also used as slot markers)
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// FragmentTag is the tag of the synthetic container used when a parse
// produces multiple top-level siblings.
const FragmentTag = "#fragment"

// SVGNamespace marks nodes compiled in markup (vector-graphics) mode.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Attr is a single markup attribute.
type Attr struct {
	Key string
	Val string
}

// Node is a live (or template) tree node.
type Node struct {
	Kind      Kind
	Tag       string // element tag name, lower-case
	Namespace string // empty for plain markup
	Text      string // text content or comment data

	attrs    []Attr
	props    map[string]any
	parent   *Node
	children []*Node
}

// NewElement creates an element node with the given tag.
func NewElement(tag string) *Node {
	return &Node{Kind: KindElement, Tag: tag}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// NewComment creates a comment node.
func NewComment(data string) *Node {
	return &Node{Kind: KindComment, Text: data}
}

// IsFragment reports whether the node is a synthetic fragment container.
func (n *Node) IsFragment() bool {
	return n.Kind == KindElement && n.Tag == FragmentTag
}

// Clone returns a shallow copy of the node: kind, tag, namespace, text
// and attributes, but no children, parent, properties or listeners.
func (n *Node) Clone() *Node {
	c := &Node{
		Kind:      n.Kind,
		Tag:       n.Tag,
		Namespace: n.Namespace,
		Text:      n.Text,
	}
	if len(n.attrs) > 0 {
		c.attrs = make([]Attr, len(n.attrs))
		copy(c.attrs, n.attrs)
	}
	return c
}

// Parent returns the node's parent, or nil for a detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's current child list. The returned slice is
// a copy; mutating it does not affect the tree.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// NumChildren returns the number of children without copying.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.Child(0) }

// NextSibling returns the node immediately after n in its parent's
// child list, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	for i, c := range n.parent.children {
		if c == n {
			return n.parent.Child(i + 1)
		}
	}
	return nil
}

// Append detaches each child from its current parent and appends it.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Detach()
		c.parent = n
		n.children = append(n.children, c)
	}
}

// InsertBefore inserts child immediately before ref. A nil ref appends.
// If ref is not a child of n, the child is appended.
func (n *Node) InsertBefore(child, ref *Node) {
	if child == nil || child == ref {
		return
	}
	child.Detach()
	if ref != nil {
		for i, c := range n.children {
			if c == ref {
				child.parent = n
				n.children = append(n.children, nil)
				copy(n.children[i+1:], n.children[i:])
				n.children[i] = child
				return
			}
		}
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Detach removes the node from its parent's child list, if any.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// ReplaceWith swaps the node for repl in its parent's child list.
// A detached node is a no-op.
func (n *Node) ReplaceWith(repl *Node) {
	p := n.parent
	if p == nil || repl == nil || repl == n {
		return
	}
	for i, c := range p.children {
		if c == n {
			repl.Detach()
			repl.parent = p
			p.children[i] = repl
			n.parent = nil
			return
		}
	}
}

// RemoveChildren detaches every child.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// TextContent returns the concatenated text of the subtree, in document
// order. Comments contribute nothing.
func (n *Node) TextContent() string {
	switch n.Kind {
	case KindText:
		return n.Text
	case KindComment:
		return ""
	}
	var out string
	for _, c := range n.children {
		out += c.TextContent()
	}
	return out
}
