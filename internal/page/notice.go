package page

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const DefaultNoticeTemplate = "<small>Using fail-over page generation, please notify <a href='mailto:{{ .Contact }}' target='_top'>{{ .Contact }}</a></small><br>"

const DefaultContact = "cgp-it@sanger.ac.uk"

// NoticeData is passed to the fail-over notice template
type NoticeData struct {
	Project string
	Contact string
}

// Notice renders the fail-over notice
type Notice struct {
	tmpl *template.Template
}

// ParseNotice compiles a notice template. Sprig functions are available.
// An empty string selects DefaultNoticeTemplate.
func ParseNotice(text string) (*Notice, error) {
	if text == "" {
		text = DefaultNoticeTemplate
	}
	tmpl, err := template.New("notice").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse notice template: %w", err)
	}
	return &Notice{tmpl: tmpl}, nil
}

func (n *Notice) Execute(data NoticeData) (string, error) {
	var buf bytes.Buffer
	if err := n.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render notice: %w", err)
	}
	return buf.String(), nil
}
