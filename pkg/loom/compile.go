package loom

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/loomdev/loom/internal/diag"
	"github.com/loomdev/loom/pkg/dom"
)

// Compile turns a literal fragment sequence into a canonical node tree
// whose interpolation boundaries are materialized as placeholder tokens.
// Results are memoized by the identity of the fragment sequence, not its
// contents: repeated calls with the same slice return the same tree.
// The tree is immutable by convention; the reconciler only clones it.
func Compile(fragments []string, markup bool) *dom.Node {
	id := fragmentsID(fragments)
	if id != 0 {
		compileMu.Lock()
		entry, ok := compileCache[id]
		compileMu.Unlock()
		if ok && entry.markup == markup && slices.Equal(entry.fragments, fragments) {
			recordCacheHit()
			return entry.tpl
		}
	}
	recordCacheMiss()
	tpl := compile(fragments, markup)
	if id != 0 {
		compileMu.Lock()
		compileCache[id] = &compileEntry{fragments: fragments, markup: markup, tpl: tpl}
		compileMu.Unlock()
	}
	return tpl
}

// compileEntry retains the cached sequence alongside its tree. Holding
// the slice keeps its backing array alive, so the identity key cannot be
// reused by a later allocation; the stored copy is also compared on hit,
// which catches prefix slices of the same array and markup-mode flips.
type compileEntry struct {
	fragments []string
	markup    bool
	tpl       *dom.Node
}

var (
	compileMu    sync.Mutex
	compileCache = make(map[uintptr]*compileEntry)
)

// attrValueTail matches a tag tail positioned inside an attribute value:
// after '=', optionally inside an open single or double quote.
var attrValueTail = regexp.MustCompile(`=\s*(?:"[^"]*|'[^']*)?$`)

type boundary uint8

const (
	childBoundary boundary = iota
	attrBoundary
	datasetBoundary
)

// classifyBoundary inspects the tail of the accumulated markup and
// decides how the next interpolation slot must be materialized.
func classifyBoundary(s string) boundary {
	lt := strings.LastIndexByte(s, '<')
	gt := strings.LastIndexByte(s, '>')
	if lt < 0 || gt > lt {
		return childBoundary
	}
	tag := s[lt:]
	if strings.HasPrefix(tag, "<!--") {
		return childBoundary
	}
	if attrValueTail.MatchString(tag) {
		return attrBoundary
	}
	// Attribute-name position: the tag is open and the last character
	// ends a token, so a bare name (or spread bag) is expected next.
	last := tag[len(tag)-1]
	if last == ' ' || last == '\t' || last == '\n' || last == '\r' || last == '"' || last == '\'' {
		return attrBoundary
	}
	return datasetBoundary
}

func compile(fragments []string, markup bool) *dom.Node {
	var b strings.Builder
	for i, frag := range fragments {
		b.WriteString(frag)
		if i == len(fragments)-1 {
			break
		}
		switch classifyBoundary(b.String()) {
		case attrBoundary:
			b.WriteString(slotToken(i))
		case datasetBoundary:
			b.WriteString(" data-" + slotToken(i) + " ")
		case childBoundary:
			b.WriteString("<!--" + slotToken(i) + "-->")
		}
	}

	src := trimAtTagBoundaries(b.String())
	if markup {
		src = "<svg>" + src + "</svg>"
	}

	parsed, err := dom.Parse(src)
	if err != nil {
		// A template literal that does not tokenize renders as its own
		// error text, keeping the pass alive like any other misuse.
		frag := dom.NewElement(dom.FragmentTag)
		frag.Append(dom.NewText(err.Error()))
		return frag
	}

	if markup {
		parsed = unwrapMarkup(parsed)
	}
	return templateRoot(parsed)
}

// trimAtTagBoundaries removes a single leading/trailing whitespace run
// when it abuts the first/last tag boundary. Cosmetic, not structural.
func trimAtTagBoundaries(s string) string {
	trimmed := strings.TrimLeft(s, " \t\r\n")
	if strings.HasPrefix(trimmed, "<") {
		s = trimmed
	}
	trimmed = strings.TrimRight(s, " \t\r\n")
	if strings.HasSuffix(trimmed, ">") {
		s = trimmed
	}
	return s
}

// unwrapMarkup strips the synthetic namespace container added around
// markup-mode templates and stamps the namespace on its children.
func unwrapMarkup(parsed *dom.Node) *dom.Node {
	wrapper := parsed.FirstChild()
	if wrapper == nil || wrapper.Tag != "svg" {
		return parsed
	}
	frag := dom.NewElement(dom.FragmentTag)
	for _, c := range wrapper.Children() {
		if c.Kind == dom.KindElement && c.Tag == "svg" {
			diag.Report(diag.NamespaceMismatch, "nested <svg> inside a markup-mode template")
		}
		c.SetNamespace(dom.SVGNamespace)
		frag.Append(c)
	}
	return frag
}

// templateRoot applies the root rules: a sole parsed node becomes the
// template tree; multiple siblings keep the fragment container; a sole
// child-position marker also keeps the container, since the marker alone
// is not directly renderable.
func templateRoot(parsed *dom.Node) *dom.Node {
	if parsed.NumChildren() == 1 {
		only := parsed.FirstChild()
		if !isMarker(only) {
			only.Detach()
			return only
		}
	}
	return parsed
}

// isMarker reports whether the node is a child-position marker comment.
func isMarker(n *dom.Node) bool {
	if n == nil || n.Kind != dom.KindComment {
		return false
	}
	_, ok := slotIndex(strings.TrimSpace(n.Text))
	return ok
}

// markerSlot returns the slot index carried by a marker comment.
func markerSlot(n *dom.Node) (int, bool) {
	if n == nil || n.Kind != dom.KindComment {
		return 0, false
	}
	return slotIndex(strings.TrimSpace(n.Text))
}
