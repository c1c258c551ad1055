// Package htmlscan wraps x/net/html with the small set of traversals the
// scrapers share: flattened text, tag/attribute lookup, block-element walks.
// It deliberately has no provider knowledge; each adapter owns its own
// extraction heuristics on top of these.
package htmlscan

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/goalfeed/goal-feed/internal/schedule"
)

// Parse parses an HTML document. x/net/html is tolerant by design, so this
// only fails on truly broken input (which scrapers treat as "no data").
func Parse(body []byte) (*html.Node, error) {
	return html.Parse(bytes.NewReader(body))
}

// FlatText returns n's text content with whitespace runs collapsed, the way
// a browser would render it on one line.
func FlatText(n *html.Node) string {
	var sb strings.Builder
	appendText(&sb, n)
	return schedule.CollapseSpace(sb.String())
}

func appendText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendText(sb, c)
	}
}

// Elements collects every element under root whose tag is in tags,
// in document order.
func Elements(root *html.Node, tags ...string) []*html.Node {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var out []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && want[n.Data] {
			out = append(out, n)
		}
	})
	return out
}

// First returns the first element with the given tag under n, or nil.
func First(n *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) {
		if found == nil && c.Type == html.ElementNode && c.Data == tag {
			found = c
		}
	})
	return found
}

// ByID returns the element whose id attribute equals id, or nil.
func ByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode && Attr(n, "id") == id {
			found = n
		}
	})
	return found
}

// WithClass collects every element under root carrying class as a token,
// in document order.
func WithClass(root *html.Node, class string) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && HasClass(n, class) {
			out = append(out, n)
		}
	})
	return out
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether n's class attribute contains class as a
// whitespace-separated token.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
