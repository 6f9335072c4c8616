package dom

import (
	"html"
	"strings"
)

// OuterHTML serializes the subtree back to markup. Fragments print only
// their children. Intended for tests, benchmarks and debugging; it makes
// no attempt at streaming.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder) {
	switch n.Kind {
	case KindText:
		b.WriteString(html.EscapeString(n.Text))
		return
	case KindComment:
		b.WriteString("<!--")
		b.WriteString(n.Text)
		b.WriteString("-->")
		return
	}
	if n.IsFragment() {
		for _, c := range n.children {
			c.writeHTML(b)
		}
		return
	}
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range n.attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		if a.Val != "" {
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(a.Val))
			b.WriteByte('"')
		}
	}
	if voidTags[n.Tag] && len(n.children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range n.children {
		c.writeHTML(b)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}
