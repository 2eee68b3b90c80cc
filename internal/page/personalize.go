package page

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jakoblorz/go-projectpage/internal/models"
)

// Marker classes and tags located by Personalize
const (
	ViewLinkClass = "view_github_link"
	ZipLinkClass  = "zip_download_link"
	TarLinkClass  = "tar_download_link"
	HeadingClass  = "header"
	NameTag       = "projectname"
)

// Personalize points the placeholder elements at p. Elements missing from
// the template are skipped. Calling it again with the same project leaves
// the page unchanged.
func (d *Document) Personalize(p models.Project) {
	links := []struct {
		class string
		href  string
	}{
		{ViewLinkClass, p.RepositoryURL()},
		{ZipLinkClass, p.ZipURL()},
		{TarLinkClass, p.TarURL()},
	}
	for _, l := range links {
		for _, a := range findAll(d.root, elementWithClass(atom.A, l.class)) {
			setAttr(a, "href", l.href)
		}
	}

	for _, h := range findAll(d.root, elementWithClass(atom.H1, HeadingClass)) {
		setText(h, p.Name)
	}
	for _, n := range findAll(d.root, elementNamed(NameTag)) {
		setText(n, p.Name)
	}
	for _, t := range findAll(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Title }) {
		setText(t, p.Name)
	}
}

// Title returns the text of the first <title>
func (d *Document) Title() string {
	return d.firstText(func(n *html.Node) bool { return n.DataAtom == atom.Title })
}

// Heading returns the text of the first h1.header
func (d *Document) Heading() string {
	return d.firstText(elementWithClass(atom.H1, HeadingClass))
}

// ProjectNames returns the text of every <projectname> element
func (d *Document) ProjectNames() []string {
	var out []string
	for _, n := range findAll(d.root, elementNamed(NameTag)) {
		out = append(out, textOf(n))
	}
	return out
}

// LinkTarget returns the href of the first anchor carrying class
func (d *Document) LinkTarget(class string) string {
	matches := findAll(d.root, elementWithClass(atom.A, class))
	if len(matches) == 0 {
		return ""
	}
	return attr(matches[0], "href")
}

func (d *Document) firstText(match func(*html.Node) bool) string {
	matches := findAll(d.root, match)
	if len(matches) == 0 {
		return ""
	}
	return textOf(matches[0])
}

func textOf(n *html.Node) string {
	var s string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			s += c.Data
		case html.ElementNode:
			s += textOf(c)
		}
	}
	return s
}
