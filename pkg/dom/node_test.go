package dom

import "testing"

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindComment, "Comment"},
		{Kind(99), "Unknown"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestAppendDetach(t *testing.T) {
	parent := NewElement("div")
	a := NewText("a")
	b := NewText("b")
	parent.Append(a, b)

	if parent.NumChildren() != 2 {
		t.Fatalf("NumChildren() = %d, want 2", parent.NumChildren())
	}
	if a.Parent() != parent || b.Parent() != parent {
		t.Errorf("children not parented after Append")
	}
	if parent.FirstChild() != a {
		t.Errorf("FirstChild() = %v, want a", parent.FirstChild())
	}
	if a.NextSibling() != b {
		t.Errorf("a.NextSibling() != b")
	}
	if b.NextSibling() != nil {
		t.Errorf("b.NextSibling() = %v, want nil", b.NextSibling())
	}

	a.Detach()
	if a.Parent() != nil {
		t.Errorf("a.Parent() = %v after Detach, want nil", a.Parent())
	}
	if parent.NumChildren() != 1 || parent.FirstChild() != b {
		t.Errorf("parent children = %d after Detach, want just b", parent.NumChildren())
	}
	// Detaching twice is a no-op.
	a.Detach()
}

func TestAppendReparents(t *testing.T) {
	p1 := NewElement("div")
	p2 := NewElement("span")
	c := NewText("x")
	p1.Append(c)
	p2.Append(c)

	if p1.NumChildren() != 0 {
		t.Errorf("old parent still holds %d children", p1.NumChildren())
	}
	if c.Parent() != p2 {
		t.Errorf("c.Parent() = %v, want p2", c.Parent())
	}
}

func TestInsertBefore(t *testing.T) {
	parent := NewElement("ul")
	a := NewElement("li")
	c := NewElement("li")
	parent.Append(a, c)

	b := NewElement("li")
	parent.InsertBefore(b, c)
	if parent.Child(1) != b {
		t.Fatalf("Child(1) != b after InsertBefore")
	}

	// Nil ref appends.
	d := NewElement("li")
	parent.InsertBefore(d, nil)
	if parent.Child(3) != d {
		t.Errorf("nil-ref InsertBefore did not append")
	}

	// A ref that is not a child appends too.
	stray := NewElement("li")
	e := NewElement("li")
	parent.InsertBefore(e, stray)
	if parent.Child(4) != e {
		t.Errorf("stray-ref InsertBefore did not append")
	}

	// Moving an existing child before another reorders in place.
	parent.InsertBefore(d, a)
	if parent.FirstChild() != d {
		t.Errorf("FirstChild() != d after move, children order broken")
	}
	if parent.NumChildren() != 5 {
		t.Errorf("NumChildren() = %d after move, want 5", parent.NumChildren())
	}
}

func TestReplaceWith(t *testing.T) {
	parent := NewElement("div")
	old := NewText("old")
	parent.Append(old)

	repl := NewText("new")
	old.ReplaceWith(repl)

	if parent.FirstChild() != repl {
		t.Errorf("FirstChild() != repl after ReplaceWith")
	}
	if old.Parent() != nil {
		t.Errorf("old still parented after ReplaceWith")
	}
	// Detached node is a no-op.
	old.ReplaceWith(NewText("x"))
}

func TestRemoveChildren(t *testing.T) {
	parent := NewElement("div")
	a := NewText("a")
	b := NewText("b")
	parent.Append(a, b)
	parent.RemoveChildren()

	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren() = %d, want 0", parent.NumChildren())
	}
	if a.Parent() != nil || b.Parent() != nil {
		t.Errorf("children still parented after RemoveChildren")
	}
}

func TestChildrenReturnsCopy(t *testing.T) {
	parent := NewElement("div")
	parent.Append(NewText("a"))
	kids := parent.Children()
	kids[0] = nil
	if parent.FirstChild() == nil {
		t.Errorf("mutating Children() result affected the tree")
	}
}

func TestTextContent(t *testing.T) {
	root := NewElement("div")
	p := NewElement("p")
	p.Append(NewText("hello "), NewComment("ignored"))
	root.Append(p, NewText("world"))

	if got := root.TextContent(); got != "hello world" {
		t.Errorf("TextContent() = %q, want %q", got, "hello world")
	}
}

func TestClone(t *testing.T) {
	n := NewElement("div")
	n.SetAttr("class", "big")
	n.SetProp("value", "secret")
	n.Append(NewText("child"))

	c := n.Clone()
	if c == n {
		t.Fatalf("Clone() returned the same node")
	}
	if c.Tag != "div" {
		t.Errorf("clone Tag = %q, want div", c.Tag)
	}
	if v, ok := c.Attr("class"); !ok || v != "big" {
		t.Errorf("clone class = %q, %v; want big, true", v, ok)
	}
	if c.NumChildren() != 0 {
		t.Errorf("clone carried %d children, want 0", c.NumChildren())
	}
	if _, ok := c.Prop("value"); ok {
		t.Errorf("clone carried properties")
	}
	// Attribute lists must not alias.
	c.SetAttr("class", "small")
	if v, _ := n.Attr("class"); v != "big" {
		t.Errorf("mutating clone attr changed original: %q", v)
	}
}
