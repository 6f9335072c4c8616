package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/wavetermdev/htmltoken"
)

// voidTags never carry children; their start tag closes them.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Parse tokenizes a markup string into a node tree. The result is always
// a fragment container; callers decide whether to unwrap a sole child.
// Comments are preserved as nodes since the template compiler uses them
// as slot markers.
func Parse(markup string) (*Node, error) {
	root := &Node{Kind: KindElement, Tag: FragmentTag}
	stack := []*Node{root}
	iter := htmltoken.NewTokenizer(strings.NewReader(markup))
	for {
		tokenType := iter.Next()
		token := iter.Token()
		switch tokenType {
		case htmltoken.StartTagToken:
			elem := tokenToNode(token)
			if voidTags[token.Data] {
				stack[len(stack)-1].Append(elem)
				continue
			}
			stack[len(stack)-1].Append(elem)
			stack = append(stack, elem)
		case htmltoken.EndTagToken:
			if len(stack) <= 1 {
				return nil, fmt.Errorf("dom: end tag %q without start tag", token.Data)
			}
			cur := stack[len(stack)-1]
			if cur.Tag != token.Data {
				return nil, fmt.Errorf("dom: end tag %q does not match start tag %q", token.Data, cur.Tag)
			}
			stack = stack[:len(stack)-1]
		case htmltoken.SelfClosingTagToken:
			stack[len(stack)-1].Append(tokenToNode(token))
		case htmltoken.TextToken:
			if token.Data == "" {
				continue
			}
			stack[len(stack)-1].Append(NewText(token.Data))
		case htmltoken.CommentToken:
			stack[len(stack)-1].Append(NewComment(token.Data))
		case htmltoken.DoctypeToken:
			return nil, fmt.Errorf("dom: doctype not supported")
		case htmltoken.ErrorToken:
			if iter.Err() == io.EOF {
				return root, nil
			}
			return nil, iter.Err()
		}
	}
}

func tokenToNode(token htmltoken.Token) *Node {
	elem := NewElement(token.Data)
	for _, attr := range token.Attr {
		if attr.Key == "" {
			continue
		}
		elem.SetAttr(attr.Key, attr.Val)
	}
	return elem
}

// SetNamespace stamps ns on the node and its whole subtree.
func (n *Node) SetNamespace(ns string) {
	n.Namespace = ns
	for _, c := range n.children {
		c.SetNamespace(ns)
	}
}
