package render

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"strings"

	"judgeman/internal/checksum"
	"judgeman/internal/normalize"
	"judgeman/internal/scraper"
)

// Original is the page the record was extracted from.
type Original struct {
	URL    string
	Markup string
}

type NumberedParagraph struct {
	Number int
	Text   string
}

type SectionView struct {
	Name       string
	Paragraphs []NumberedParagraph
}

type reportData struct {
	Record         *scraper.CaseRecord
	Sections       []SectionView
	DecisionDate   string
	SourceURL      string
	SnapshotBase64 string
	SnapshotHash   string
}

type Renderer struct {
	tmpl     *template.Template
	checksum *checksum.Generator
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	if _, err := tmpl.Parse(styleTemplate); err != nil {
		return nil, fmt.Errorf("parse style template: %w", err)
	}

	return &Renderer{tmpl: tmpl, checksum: checksum.NewGenerator()}, nil
}

// Render writes the toggleable report for record. The original markup is
// embedded base64-encoded and decoded in the browser.
func (r *Renderer) Render(w io.Writer, record *scraper.CaseRecord, original Original) error {
	data := reportData{
		Record:         record,
		Sections:       NumberSections(record),
		SourceURL:      original.URL,
		SnapshotBase64: base64.StdEncoding.EncodeToString([]byte(original.Markup)),
		SnapshotHash:   r.checksum.SnapshotHash(original.Markup),
	}
	if date, ok := record.DecisionDate(); ok {
		data.DecisionDate = date.Format("2006-01-02")
	}

	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func (r *Renderer) RenderString(record *scraper.CaseRecord, original Original) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, record, original); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// NumberSections renumbers paragraphs 1..n across the whole body, replacing
// the numbers the page printed.
func NumberSections(record *scraper.CaseRecord) []SectionView {
	sections := record.Sections()
	views := make([]SectionView, 0, len(sections))
	n := 0
	for _, section := range sections {
		view := SectionView{
			Name:       section.Name,
			Paragraphs: make([]NumberedParagraph, 0, len(section.Paragraphs)),
		}
		for _, paragraph := range section.Paragraphs {
			n++
			view.Paragraphs = append(view.Paragraphs, NumberedParagraph{
				Number: n,
				Text:   normalize.StripNumbering(paragraph),
			})
		}
		views = append(views, view)
	}
	return views
}
