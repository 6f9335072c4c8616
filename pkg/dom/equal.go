package dom

// Equal reports deep structural equality between two subtrees: kind,
// tag, namespace, text, attribute sets and children, recursively.
// Parent links, properties and event listeners are ignored; equality is
// about what the markup says, not about runtime identity.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	if a.Kind != b.Kind || a.Tag != b.Tag || a.Namespace != b.Namespace || a.Text != b.Text {
		return false
	}
	if len(a.attrs) != len(b.attrs) || len(a.children) != len(b.children) {
		return false
	}
	for _, attr := range a.attrs {
		v, ok := b.Attr(attr.Key)
		if !ok || v != attr.Val {
			return false
		}
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}
