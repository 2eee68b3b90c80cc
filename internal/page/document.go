// Package page edits the project page: it places the README in the content
// container and rewrites the placeholder elements for the current project.
//
// The page template is parsed into a node tree and only elements that
// already exist in it are modified; nothing is created outside the
// content and fail-over containers.
package page

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed templates/default.html
var defaultTemplate []byte

const (
	contentID  = "content"
	failoverID = "failover"
)

var (
	ErrNoContentContainer = errors.New("page has no #content element")
)

// Document is a parsed page
type Document struct {
	root *html.Node
}

// DefaultTemplate returns the embedded page template
func DefaultTemplate() []byte {
	return bytes.Clone(defaultTemplate)
}

// Parse reads a page template
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseBytes is Parse over a byte slice
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b))
}

// Default parses the embedded template
func Default() (*Document, error) {
	return ParseBytes(defaultTemplate)
}

// Render writes the page
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the page to a string
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// SetContent replaces the children of #content with the given HTML
func (d *Document) SetContent(fragment string) error {
	container := d.byID(contentID)
	if container == nil {
		return ErrNoContentContainer
	}
	return replaceChildren(container, fragment)
}

// ContentHTML returns the rendered children of #content
func (d *Document) ContentHTML() (string, error) {
	container := d.byID(contentID)
	if container == nil {
		return "", ErrNoContentContainer
	}
	return innerHTML(container)
}

// ShowNotice fills #failover. Pages without one are left alone.
func (d *Document) ShowNotice(fragment string) error {
	container := d.byID(failoverID)
	if container == nil {
		return nil
	}
	return replaceChildren(container, fragment)
}

func (d *Document) byID(id string) *html.Node {
	matches := findAll(d.root, func(n *html.Node) bool {
		return attr(n, "id") == id
	})
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

func replaceChildren(n *html.Node, fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     n.Data,
		DataAtom: n.DataAtom,
	})
	if err != nil {
		return fmt.Errorf("failed to parse fragment: %w", err)
	}

	removeChildren(n)
	for _, child := range nodes {
		n.AppendChild(child)
	}
	return nil
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

func setText(n *html.Node, text string) {
	removeChildren(n)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func innerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// elementWithClass matches <tag class="... class ...">
func elementWithClass(tag atom.Atom, class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.DataAtom == tag && hasClass(n, class)
	}
}

// elementNamed matches by tag name, including custom elements with no atom
func elementNamed(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Data == name
	}
}
