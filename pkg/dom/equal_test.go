package dom

import "testing"

func mustParse(t *testing.T, markup string) *Node {
	t.Helper()
	root, err := Parse(markup)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", markup, err)
	}
	return root
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", `<div class="x"><p>a</p></div>`, `<div class="x"><p>a</p></div>`, true},
		{"attr order", `<div a="1" b="2"></div>`, `<div b="2" a="1"></div>`, true},
		{"attr value", `<div a="1"></div>`, `<div a="2"></div>`, false},
		{"extra attr", `<div a="1"></div>`, `<div a="1" b="2"></div>`, false},
		{"tag", `<div></div>`, `<span></span>`, false},
		{"text", `<p>a</p>`, `<p>b</p>`, false},
		{"child count", `<ul><li></li></ul>`, `<ul><li></li><li></li></ul>`, false},
		{"child order", `<div><i></i><b></b></div>`, `<div><b></b><i></i></div>`, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := mustParse(t, c.a).FirstChild()
			b := mustParse(t, c.b).FirstChild()
			if got := Equal(a, b); got != c.want {
				t.Errorf("Equal() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestEqualNilAndIdentity(t *testing.T) {
	n := NewElement("div")
	if !Equal(nil, nil) {
		t.Errorf("Equal(nil, nil) = false")
	}
	if Equal(n, nil) || Equal(nil, n) {
		t.Errorf("Equal with one nil side = true")
	}
	if !Equal(n, n) {
		t.Errorf("Equal(n, n) = false")
	}
}

func TestEqualIgnoresPropsAndListeners(t *testing.T) {
	a := NewElement("input")
	b := NewElement("input")
	a.SetProp("value", "x")
	SetListener(a, "input", func(any) {})
	defer ClearListeners(a)
	if !Equal(a, b) {
		t.Errorf("Equal() = false, props/listeners should be ignored")
	}
}

func TestEqualNamespace(t *testing.T) {
	a := NewElement("circle")
	b := NewElement("circle")
	a.Namespace = SVGNamespace
	if Equal(a, b) {
		t.Errorf("Equal() = true across namespaces")
	}
}
