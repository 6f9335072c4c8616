package loom

import (
	"reflect"
	"strings"

	"github.com/loomdev/loom/internal/diag"
	"github.com/loomdev/loom/pkg/dom"
)

// Editor is one registered update record bound to the interpolation
// sites of a single live position. Editors are explicit state objects
// rather than closures so the captured node handles stay inspectable.
type Editor interface {
	Apply(values []any)
}

// RefAttr is the reserved attribute name for external-reference binding.
const RefAttr = "ref"

// attrPart is one template attribute carrying at least one placeholder
// in its name or value.
type attrPart struct {
	name      string
	nameSlot  int // -1 unless the whole name is one placeholder
	value     string
	valueSlot int // -1 unless the whole value is one placeholder
}

// attrEditor resolves and applies the dynamic attributes of one element
// on every update, then strips whatever is currently set on the node
// that the pass no longer wants, including attributes inherited from an
// adopted subtree. Static attributes stamped at render time are never
// touched.
type attrEditor struct {
	node   *dom.Node
	parts  []attrPart
	static map[string]bool

	events map[string]bool // event types registered by last pass
}

func (e *attrEditor) Apply(values []any) {
	resolved := make(map[string]any, len(e.parts))
	events := make(map[string]bool)

	for _, part := range e.parts {
		var val any
		switch {
		case part.valueSlot >= 0:
			if part.valueSlot < len(values) {
				val = values[part.valueSlot]
			}
		case hasSlot(part.value):
			val = substituteSlots(part.value, values)
		default:
			val = part.value
		}

		if part.nameSlot >= 0 {
			var raw any
			if part.nameSlot < len(values) {
				raw = values[part.nameSlot]
			}
			e.assignDynamicName(resolved, events, raw, val)
			continue
		}
		name := part.name
		if hasSlot(name) {
			name = substituteSlots(name, values)
		}
		e.assign(resolved, events, name, val)
	}

	// Prefer direct property assignment where the node exposes the name
	// as settable; otherwise set a markup attribute.
	for k, v := range resolved {
		if dom.IsSettableProp(k) {
			e.node.SetProp(k, v)
		} else {
			e.node.SetAttr(k, stringify(v))
		}
	}

	// Strip everything currently set on the node that is neither
	// resolved now nor static. Walking the node rather than the last
	// pass's names also clears attributes an adopted subtree brought
	// along. Reflected properties are zeroed before removal so they do
	// not linger.
	for _, a := range e.node.Attrs() {
		if e.static[a.Key] {
			continue
		}
		if _, stillSet := resolved[a.Key]; stillSet {
			continue
		}
		e.node.RemoveAttr(a.Key)
	}
	for _, name := range e.node.PropNames() {
		if e.static[name] {
			continue
		}
		if _, stillSet := resolved[name]; stillSet {
			continue
		}
		e.node.ResetProp(name)
		e.node.DeleteProp(name)
	}
	for ev := range e.events {
		if !events[ev] {
			dom.RemoveListener(e.node, ev)
		}
	}
	e.events = events
}

// assignDynamicName handles an attribute whose name is itself an
// interpolation result: a mapping spreads its entries, a list flattens
// one level into further mappings or bare flag attributes, and a string
// behaves like a literal name.
func (e *attrEditor) assignDynamicName(resolved map[string]any, events map[string]bool, raw, val any) {
	switch name := raw.(type) {
	case nil:
	case string:
		e.assign(resolved, events, name, val)
	case map[string]any:
		for k, v := range name {
			e.assign(resolved, events, k, v)
		}
	case []any:
		for _, entry := range name {
			if m, ok := entry.(map[string]any); ok {
				for k, v := range m {
					e.assign(resolved, events, k, v)
				}
				continue
			}
			if entry != nil {
				e.assign(resolved, events, stringify(entry), "")
			}
		}
	default:
		e.assign(resolved, events, stringify(raw), val)
	}
}

func (e *attrEditor) assign(resolved map[string]any, events map[string]bool, name string, val any) {
	if name == "" {
		return
	}
	if list, ok := asList(val); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if item == nil {
				continue
			}
			parts = append(parts, stringify(item))
		}
		val = strings.Join(parts, " ")
	}
	if len(name) > 2 && strings.HasPrefix(name, "on") {
		event := strings.ToLower(name[2:])
		if h, ok := toHandler(val); ok {
			dom.SetListener(e.node, event, h)
			events[event] = true
		} else {
			dom.RemoveListener(e.node, event)
		}
		return
	}
	if name == RefAttr {
		switch r := val.(type) {
		case func(*dom.Node):
			r(e.node)
		case *Ref:
			r.bind(e.node)
		}
		return
	}
	if val == nil {
		return
	}
	resolved[name] = val
}

// toHandler coerces the common callback shapes to a dom.Handler.
func toHandler(v any) (dom.Handler, bool) {
	switch h := v.(type) {
	case nil:
		return nil, false
	case dom.Handler:
		return h, true
	case func(any):
		return dom.Handler(h), true
	case func():
		return func(any) { h() }, true
	}
	return nil, false
}

// slotItem is one currently-rendered entry of a child slot.
type slotItem struct {
	key   any
	nodes []*dom.Node // >1 when the entry rendered as a fragment
	ctx   *Context    // non-nil for Partial/Component entries
	text  bool        // entry is coerced text content
}

// childEditor owns one child-position slot: a marker comment left in the
// live tree as the insertion anchor, plus the records of what the slot
// currently holds. Content is always inserted immediately before the
// anchor, so alternating fragment/scalar content cannot leak nodes.
type childEditor struct {
	slot   int
	anchor *dom.Node
	owner  *Context
	items  []*slotItem
}

func (e *childEditor) Apply(values []any) {
	if e.slot >= len(values) {
		return
	}
	v := values[e.slot]
	if list, ok := asList(v); ok {
		e.applyList(list)
		return
	}
	e.applyScalar(v)
}

func (e *childEditor) applyList(entries []any) {
	// Flatten one level.
	flat := make([]any, 0, len(entries))
	for _, entry := range entries {
		if sub, ok := asList(entry); ok {
			flat = append(flat, sub...)
			continue
		}
		flat = append(flat, entry)
	}

	old := e.items
	used := make([]bool, len(old))
	seen := make(map[any]bool, len(flat))
	newItems := make([]*slotItem, 0, len(flat))

	for _, entry := range flat {
		switch entry.(type) {
		case *Partial, Component:
			key := contentKey(entry)
			if key != nil {
				if seen[key] {
					diag.Report(diag.DuplicateKey, "key %v", key)
					key = nil
				} else {
					seen[key] = true
				}
			}
			// Key match reuses the prior context's update path.
			var item *slotItem
			if key != nil {
				for i, o := range old {
					if !used[i] && o.ctx != nil && o.key == key {
						item = o
						used[i] = true
						break
					}
				}
			}
			if item != nil {
				updateItem(item, entry)
				newItems = append(newItems, item)
				continue
			}
			// Fall back to compatibility-based node reuse, then fresh.
			reuse := e.takeCompatible(old, used, templateOf(entry))
			newItems = append(newItems, e.renderEntry(entry, key, reuse))
		case *dom.Node:
			n := entry.(*dom.Node)
			item := e.takeNode(old, used, n)
			if item == nil {
				item = &slotItem{nodes: []*dom.Node{n}}
			}
			newItems = append(newItems, item)
		default:
			text, ok := coerceText(entry)
			if !ok {
				continue // not renderable: dropped
			}
			item := e.takeText(old, used)
			if item != nil {
				item.nodes[0].Text = text
			} else {
				item = &slotItem{nodes: []*dom.Node{dom.NewText(text)}, text: true}
			}
			newItems = append(newItems, item)
		}
	}

	e.place(newItems)
	for i, o := range old {
		if !used[i] && !contains(newItems, o) {
			o.remove()
		}
	}
	e.items = newItems
}

func (e *childEditor) applyScalar(v any) {
	prev := e.currentScalar()
	switch c := v.(type) {
	case nil:
		e.clear()
	case *Partial:
		if prev != nil && prev.ctx != nil && prev.key == c.Key() {
			prev.ctx.Update(c.Values())
			prev.ctx.firePhase(AfterUpdate)
			return
		}
		e.replace(e.renderEntry(c, c.Key(), nil))
	case Component:
		if prev != nil && prev.ctx != nil && prev.key == c.Key() {
			updateItem(prev, c)
			return
		}
		e.replace(e.renderEntry(c, c.Key(), nil))
	case *dom.Node:
		if prev != nil && len(prev.nodes) == 1 && prev.nodes[0] == c {
			return
		}
		e.replace(&slotItem{nodes: []*dom.Node{c}})
	default:
		text, ok := coerceText(v)
		if !ok {
			e.clear()
			return
		}
		if prev != nil && prev.text && len(prev.nodes) == 1 {
			prev.nodes[0].Text = text
			return
		}
		e.replace(&slotItem{nodes: []*dom.Node{dom.NewText(text)}, text: true})
	}
}

func (e *childEditor) currentScalar() *slotItem {
	if len(e.items) == 1 {
		return e.items[0]
	}
	return nil
}

// clear removes everything currently in the slot, absorbing multi-node
// fragment content.
func (e *childEditor) clear() {
	for _, item := range e.items {
		item.remove()
	}
	e.items = nil
}

func (e *childEditor) replace(item *slotItem) {
	e.clear()
	parent := e.anchor.Parent()
	for _, n := range item.nodes {
		parent.InsertBefore(n, e.anchor)
	}
	e.items = []*slotItem{item}
}

// place moves/inserts the desired node sequence so it sits, in order,
// immediately before the anchor. Nodes already positioned are left
// alone; new nodes are inserted before the next stable sibling.
func (e *childEditor) place(items []*slotItem) {
	parent := e.anchor.Parent()
	ref := e.anchor
	for i := len(items) - 1; i >= 0; i-- {
		nodes := items[i].nodes
		for j := len(nodes) - 1; j >= 0; j-- {
			n := nodes[j]
			if n.Parent() != parent || n.NextSibling() != ref {
				parent.InsertBefore(n, ref)
			}
			ref = n
		}
	}
}

// takeCompatible claims the first unclaimed old entry whose sole node
// can be reused for tpl.
func (e *childEditor) takeCompatible(old []*slotItem, used []bool, tpl *dom.Node) *slotItem {
	if tpl == nil {
		return nil
	}
	for i, o := range old {
		if used[i] || len(o.nodes) != 1 {
			continue
		}
		if Compatible(o.nodes[0], tpl) {
			used[i] = true
			return o
		}
	}
	return nil
}

// takeNode claims the old entry wrapping exactly this node, so a direct
// node in a list slot stays claimed across updates instead of falling to
// the stale-removal sweep.
func (e *childEditor) takeNode(old []*slotItem, used []bool, n *dom.Node) *slotItem {
	for i, o := range old {
		if used[i] || len(o.nodes) != 1 {
			continue
		}
		if o.nodes[0] == n {
			used[i] = true
			return o
		}
	}
	return nil
}

// takeText claims the first unclaimed old text entry.
func (e *childEditor) takeText(old []*slotItem, used []bool) *slotItem {
	for i, o := range old {
		if used[i] || !o.text || len(o.nodes) != 1 {
			continue
		}
		used[i] = true
		return o
	}
	return nil
}

// renderEntry performs a first render for a Partial or Component entry
// into its own sub-context, optionally stamping over a reused node.
func (e *childEditor) renderEntry(entry any, key any, reuse *slotItem) *slotItem {
	sub := newContext(key, e.owner.State)
	partial, settled := resolveEntry(entry, sub)
	if partial == nil {
		// Component settled on a plain value.
		text, ok := coerceText(settled)
		if !ok {
			return &slotItem{key: key, ctx: sub}
		}
		return &slotItem{key: key, nodes: []*dom.Node{dom.NewText(text)}, ctx: sub, text: true}
	}
	var live *dom.Node
	if reuse != nil && len(reuse.nodes) == 1 {
		live = reuse.nodes[0]
		if reuse.ctx != nil {
			dissociate(live)
			reuse.ctx.release(nil)
		}
	}
	root := render(partial.Template(), sub, live)
	sub.root = root
	sub.Update(partial.Values())
	nodes := splitFragment(root)
	if len(nodes) > 0 {
		associate(nodes[0], sub)
		sub.root = nodes[0]
	}
	sub.firePhase(AfterRender)
	return &slotItem{key: key, nodes: nodes, ctx: sub}
}

// resolveEntry reduces an entry to the Partial it renders as. For plain
// Partials that is the entry itself; Components are unwound first. The
// second result carries a non-Partial settlement, including the entry
// itself when it is already a plain value.
func resolveEntry(entry any, ctx *Context) (*Partial, any) {
	switch c := entry.(type) {
	case *Partial:
		return c, nil
	case Component:
		res := Unwrap(c, ctx)
		if p, ok := res.(*Partial); ok {
			return p, nil
		}
		return nil, res
	}
	return nil, entry
}

// updateItem pushes new content through an existing entry's context.
func updateItem(item *slotItem, entry any) {
	switch c := entry.(type) {
	case *Partial:
		item.ctx.Update(c.Values())
	case Component:
		item.ctx.rewind()
		res := Unwrap(c, item.ctx)
		if p, ok := res.(*Partial); ok {
			item.ctx.Update(p.Values())
		}
	}
	item.ctx.firePhase(AfterUpdate)
}

// templateOf returns the compiled template root for a Partial entry.
// Components have no template until unwound, so they never match the
// compatibility fallback.
func templateOf(entry any) *dom.Node {
	if p, ok := entry.(*Partial); ok {
		return p.Template()
	}
	return nil
}

func (item *slotItem) remove() {
	for _, n := range item.nodes {
		releaseNode(n)
	}
}

func contains(items []*slotItem, target *slotItem) bool {
	for _, it := range items {
		if it == target {
			return true
		}
	}
	return false
}

// splitFragment flattens a fragment root into its children; any other
// node stands alone.
func splitFragment(root *dom.Node) []*dom.Node {
	if root == nil {
		return nil
	}
	if root.IsFragment() {
		children := root.Children()
		for _, c := range children {
			c.Detach()
		}
		return children
	}
	return []*dom.Node{root}
}

// asList reports whether v is list-like content: any slice except
// strings and byte slices.
func asList(v any) ([]any, bool) {
	switch list := v.(type) {
	case nil:
		return nil, false
	case []any:
		return list, true
	case string, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
