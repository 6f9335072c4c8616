package loom

import "github.com/loomdev/loom/pkg/dom"

// Compatible is the sole reuse-vs-replace criterion: can old keep
// standing in for what tpl describes. Pure predicate, no side effects.
//
// An explicit id attribute is an identity claim and wins over structural
// similarity: presence on one side never matches absence on the other.
func Compatible(old, tpl *dom.Node) bool {
	if old == nil || tpl == nil {
		return false
	}
	oldID, oldHas := old.Attr("id")
	tplID, tplHas := tpl.Attr("id")
	if oldHas || tplHas {
		return oldHas && tplHas && oldID == tplID
	}
	if textLike(old) && textLike(tpl) {
		return true
	}
	if old.Kind == dom.KindElement && tpl.Kind == dom.KindElement && old.Tag == tpl.Tag {
		return true
	}
	return dom.Equal(old, tpl)
}

// textLike covers plain text and marker comments, which are freely
// interchangeable reuse targets.
func textLike(n *dom.Node) bool {
	return n.Kind == dom.KindText || isMarker(n)
}
