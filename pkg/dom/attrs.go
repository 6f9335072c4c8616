package dom

// Attribute and property access. Attributes are ordered string pairs as
// they would appear in markup. Properties model the host-reflected
// settable fields (value, checked, ...) that the reconciler prefers over
// attributes when applying interpolation results, so non-string values
// survive without stringification.

// Attr returns the value of the named attribute and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is set.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// SetAttr sets or replaces the named attribute.
func (n *Node) SetAttr(key, val string) {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs[i].Val = val
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Key: key, Val: val})
}

// RemoveAttr deletes the named attribute if present.
func (n *Node) RemoveAttr(key string) {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// Attrs returns a copy of the attribute list in document order.
func (n *Node) Attrs() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// reflectedProps are the property names a node exposes as directly
// settable, mirroring host-reflected DOM properties.
var reflectedProps = map[string]bool{
	"value":    true,
	"checked":  true,
	"selected": true,
	"disabled": true,
	"hidden":   true,
	"open":     true,
	"muted":    true,
	"readonly": true,
}

// booleanProps are the reflected properties with boolean type; removal
// resets them to false rather than the empty string.
var booleanProps = map[string]bool{
	"checked":  true,
	"selected": true,
	"disabled": true,
	"hidden":   true,
	"open":     true,
	"muted":    true,
	"readonly": true,
}

// IsSettableProp reports whether name is exposed as a settable property.
func IsSettableProp(name string) bool { return reflectedProps[name] }

// IsBooleanProp reports whether name is a boolean-typed property.
func IsBooleanProp(name string) bool { return booleanProps[name] }

// PropNames returns the names of the properties currently set.
func (n *Node) PropNames() []string {
	if len(n.props) == 0 {
		return nil
	}
	out := make([]string, 0, len(n.props))
	for k := range n.props {
		out = append(out, k)
	}
	return out
}

// Prop returns the named property value and whether it has been set.
func (n *Node) Prop(name string) (any, bool) {
	if n.props == nil {
		return nil, false
	}
	v, ok := n.props[name]
	return v, ok
}

// SetProp sets the named property, preserving the value's type.
func (n *Node) SetProp(name string, v any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = v
}

// DeleteProp removes the named property.
func (n *Node) DeleteProp(name string) {
	delete(n.props, name)
}

// ResetProp restores the property to its zero value: false for boolean
// properties, empty string otherwise. Host-reflected properties must be
// zeroed before removal so they do not linger on the node.
func (n *Node) ResetProp(name string) {
	if n.props == nil {
		return
	}
	if _, ok := n.props[name]; !ok {
		return
	}
	if booleanProps[name] {
		n.props[name] = false
	} else {
		n.props[name] = ""
	}
}
