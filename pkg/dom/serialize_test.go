package dom

import "testing"

func TestOuterHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"element", `<div class="box"><p>hi</p></div>`, `<div class="box"><p>hi</p></div>`},
		{"void", `<input type="text">`, `<input type="text"/>`},
		{"comment", `<div><!--note--></div>`, `<div><!--note--></div>`},
		{"siblings", `<i>a</i><i>b</i>`, `<i>a</i><i>b</i>`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			root, err := Parse(c.in)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if got := root.OuterHTML(); got != c.want {
				t.Errorf("OuterHTML() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestOuterHTMLEscapes(t *testing.T) {
	div := NewElement("div")
	div.SetAttr("title", `a"b`)
	div.Append(NewText("1 < 2 & 3"))
	want := `<div title="a&#34;b">1 &lt; 2 &amp; 3</div>`
	if got := div.OuterHTML(); got != want {
		t.Errorf("OuterHTML() = %q, want %q", got, want)
	}
}

func TestOuterHTMLEmptyAttr(t *testing.T) {
	div := NewElement("div")
	div.SetAttr("hidden", "")
	if got := div.OuterHTML(); got != `<div hidden></div>` {
		t.Errorf("OuterHTML() = %q, want %q", got, `<div hidden></div>`)
	}
}
