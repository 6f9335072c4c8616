package loom

import "github.com/loomdev/loom/pkg/dom"

// placeholderNode is the sentinel render returns when the template node
// is itself a standalone child-position marker: the caller synthesizes
// the anchor and registers a child editor instead of treating the marker
// as directly renderable.
var placeholderNode = dom.NewComment("loom:placeholder")

// render recursively stamps or reuses live nodes to match tpl,
// registering editors on ctx for every interpolation site discovered in
// template traversal order. live may be nil (fresh render) or an
// existing node offered for reuse; incompatible offers are ignored.
func render(tpl *dom.Node, ctx *Context, live *dom.Node) *dom.Node {
	switch tpl.Kind {
	case dom.KindText:
		if live != nil && live.Kind == dom.KindText {
			live.Text = tpl.Text
			return live
		}
		return dom.NewText(tpl.Text)
	case dom.KindComment:
		if isMarker(tpl) {
			return placeholderNode
		}
		// A literal comment with no interpolation passes through.
		if live != nil && live.Kind == dom.KindComment {
			live.Text = tpl.Text
			return live
		}
		return tpl.Clone()
	}

	node := live
	if node == nil || !Compatible(node, tpl) {
		node = tpl.Clone()
	}
	renderAttrs(tpl, ctx, node)
	renderChildren(tpl, ctx, node)
	return node
}

// renderAttrs copies static attributes verbatim and collects every
// placeholder-bearing attribute into a single attribute editor for the
// node, deferred until update-time values are known.
func renderAttrs(tpl *dom.Node, ctx *Context, node *dom.Node) {
	var parts []attrPart
	static := make(map[string]bool)

	for _, a := range tpl.Attrs() {
		if i, ok := datasetSlotIndex(a.Key); ok {
			// Tag-level dataset placeholder: strip the synthetic
			// attribute, keep the slot.
			node.RemoveAttr(a.Key)
			parts = append(parts, namePart(i, a.Val))
			continue
		}
		if i, ok := slotIndex(a.Key); ok {
			node.RemoveAttr(a.Key)
			parts = append(parts, namePart(i, a.Val))
			continue
		}
		nameDynamic := hasSlot(a.Key)
		valueExact, valueIsExact := slotIndex(a.Val)
		valueDynamic := valueIsExact || hasSlot(a.Val)
		if !nameDynamic && !valueDynamic {
			node.SetAttr(a.Key, a.Val)
			static[a.Key] = true
			continue
		}
		node.RemoveAttr(a.Key)
		part := attrPart{name: a.Key, nameSlot: -1, value: a.Val, valueSlot: -1}
		if valueIsExact {
			part.valueSlot = valueExact
		}
		parts = append(parts, part)
	}

	if len(parts) > 0 {
		ctx.addEditor(&attrEditor{node: node, parts: parts, static: static})
	}
}

// namePart builds the editor part for an attribute whose name is a
// placeholder. An exact-placeholder value keeps its own slot so the
// interpolation result reaches the editor raw, not stringified.
func namePart(nameSlot int, val string) attrPart {
	part := attrPart{nameSlot: nameSlot, value: val, valueSlot: -1}
	if i, ok := slotIndex(val); ok {
		part.valueSlot = i
	}
	return part
}

// renderChildren reconciles the template's children against the live
// node's existing children: each template child claims the first
// remaining compatible old child, leftovers are stale and removed.
func renderChildren(tpl *dom.Node, ctx *Context, node *dom.Node) {
	pool := node.Children()
	next := make([]*dom.Node, 0, tpl.NumChildren())

	for _, tc := range tpl.Children() {
		var match *dom.Node
		for i, old := range pool {
			if Compatible(old, tc) {
				match = old
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
		out := render(tc, ctx, match)
		if out == placeholderNode {
			slot, _ := markerSlot(tc)
			anchor := match
			if anchor == nil || anchor.Kind != dom.KindComment {
				if anchor != nil {
					releaseNode(anchor)
				}
				anchor = tc.Clone()
			}
			ctx.addEditor(&childEditor{slot: slot, anchor: anchor, owner: ctx})
			next = append(next, anchor)
			continue
		}
		next = append(next, out)
	}

	for _, stale := range pool {
		releaseNode(stale)
	}
	node.RemoveChildren()
	node.Append(next...)
}
