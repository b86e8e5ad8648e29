package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"judgeman/internal/scraper"
)

// Dump writes the record field by field as plain text.
func Dump(w io.Writer, record *scraper.CaseRecord) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Case Title: %s\n", record.Title)
	fmt.Fprintf(&sb, "Case Number: %s\n", record.CaseNumber)
	fmt.Fprintf(&sb, "Case Date: %s\n", record.Date)
	fmt.Fprintf(&sb, "Tribunal Court: %s\n", record.TribunalCourt)
	fmt.Fprintf(&sb, "Coram: %s\n", record.Coram)
	fmt.Fprintf(&sb, "Counsel: %s\n", record.Counsel)
	fmt.Fprintf(&sb, "Parties: %s\n", record.Parties)
	fmt.Fprintf(&sb, "Legal Issues: %s\n", strings.Join(record.LegalIssues, ", "))
	if facts, ok := record.FactsSection(); ok {
		fmt.Fprintf(&sb, "Facts Section: %s (%d paragraphs)\n", facts.Name, len(facts.Paragraphs))
	}
	sb.WriteString("Case Body:\n")
	for _, section := range record.Sections() {
		fmt.Fprintf(&sb, "Section: %s\n", section.Name)
		for _, paragraph := range section.Paragraphs {
			sb.WriteString(paragraph)
			sb.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// DumpJSON writes the record as indented JSON, body sections in page order.
func DumpJSON(w io.Writer, record *scraper.CaseRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return nil
}
