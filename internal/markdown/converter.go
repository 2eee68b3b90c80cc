// Package markdown turns raw README markup into HTML.
package markdown

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter renders GitHub-flavoured Markdown. It is safe for concurrent use.
type Converter struct {
	md               goldmark.Markdown
	sanitizer        *bluemonday.Policy
	stripFrontMatter bool
}

// Options configures a Converter
type Options struct {
	// Sanitize runs the output through a user-generated-content policy
	Sanitize bool

	// StripFrontMatter drops a leading front matter block instead of
	// rendering it as a table
	StripFrontMatter bool
}

// NewConverter creates a Converter
func NewConverter(opts Options) *Converter {
	c := &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				// READMEs routinely embed badges and raw HTML blocks.
				html.WithUnsafe(),
			),
		),
		stripFrontMatter: opts.StripFrontMatter,
	}
	if opts.Sanitize {
		c.sanitizer = bluemonday.UGCPolicy()
	}
	return c
}

// Convert renders markup to HTML. A leading front matter block is rendered
// as a one-row table ahead of the body, the way GitHub shows it, unless
// the converter strips it.
func (c *Converter) Convert(markup []byte) (string, error) {
	matter, body := splitFrontMatter(markup)

	var buf bytes.Buffer
	if !c.stripFrontMatter {
		writeMatterTable(&buf, matter)
	}
	if err := c.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return c.Sanitize(buf.String()), nil
}

// Sanitize applies the sanitization policy, if enabled
func (c *Converter) Sanitize(s string) string {
	if c.sanitizer == nil {
		return s
	}
	return c.sanitizer.Sanitize(s)
}

// splitFrontMatter separates a YAML/TOML/JSON front matter block from the
// body. Markup without one, or with one that does not parse, is returned
// unchanged with no matter.
func splitFrontMatter(markup []byte) (map[string]interface{}, []byte) {
	var matter map[string]interface{}
	rest, err := frontmatter.Parse(bytes.NewReader(markup), &matter)
	if err != nil {
		return nil, markup
	}
	return matter, rest
}

// writeMatterTable renders keys as the header row and values as the only
// body row. Keys are sorted; the parsed matter carries no order.
func writeMatterTable(buf *bytes.Buffer, matter map[string]interface{}) {
	if len(matter) == 0 {
		return
	}

	keys := make([]string, 0, len(matter))
	for k := range matter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteString("<table>\n<thead>\n<tr>\n")
	for _, k := range keys {
		fmt.Fprintf(buf, "<th>%s</th>\n", template.HTMLEscapeString(k))
	}
	buf.WriteString("</tr>\n</thead>\n<tbody>\n<tr>\n")
	for _, k := range keys {
		fmt.Fprintf(buf, "<td>%s</td>\n", template.HTMLEscapeString(fmt.Sprint(matter[k])))
	}
	buf.WriteString("</tr>\n</tbody>\n</table>\n")
}
