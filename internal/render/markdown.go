package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"

	"judgeman/internal/scraper"
)

// simplifiedTemplate is the simplified view alone, without the snapshot or
// script, shaped so the Markdown converter gets headings and lists.
const simplifiedTemplate = `<h1>{{.Record.Title}}</h1>
<ul>
<li><strong>Case number:</strong> {{.Record.CaseNumber}}</li>
<li><strong>Date:</strong> {{.Record.Date}}</li>
<li><strong>Tribunal / Court:</strong> {{.Record.TribunalCourt}}</li>
<li><strong>Coram:</strong> {{.Record.Coram}}</li>
<li><strong>Counsel:</strong> {{.Record.Counsel}}</li>
<li><strong>Parties:</strong> {{.Record.Parties}}</li>
</ul>
{{if .Record.LegalIssues}}<h2>Legal issues</h2>
<ul>{{range .Record.LegalIssues}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{range .Sections}}<h2>{{.Name}}</h2>
{{range .Paragraphs}}<p>{{.Number}}. {{.Text}}</p>
{{end}}{{end}}`

type MarkdownRenderer struct {
	tmpl *template.Template
	conv *converter.Converter
}

func NewMarkdownRenderer() (*MarkdownRenderer, error) {
	tmpl, err := template.New("simplified").Parse(simplifiedTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse simplified template: %w", err)
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	return &MarkdownRenderer{tmpl: tmpl, conv: conv}, nil
}

// Render returns the simplified view as Markdown.
func (m *MarkdownRenderer) Render(record *scraper.CaseRecord) (string, error) {
	var sb strings.Builder
	data := reportData{Record: record, Sections: NumberSections(record)}
	if err := m.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render simplified view: %w", err)
	}

	markdown, err := m.conv.ConvertString(sb.String())
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return markdown + "\n", nil
}
