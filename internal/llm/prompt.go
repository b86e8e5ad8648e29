package llm

import (
	"bytes"
	"encoding/json"
	"strings"

	"judgeman/internal/normalize"
	"judgeman/internal/scraper"
)

// maxFactsParagraphs caps how much of the facts section goes into a prompt.
const maxFactsParagraphs = 40

const diagramSchema = `{"nodes":[{"id":"string","label":"string","type":"party|court|event|issue|outcome"}],"edges":[{"from":"string","to":"string","label":"string"}]}`

type caseMetadata struct {
	CaseNumber    string `json:"caseNumber"`
	CaseDate      string `json:"caseDate"`
	TribunalCourt string `json:"tribunalCourt"`
	Coram         string `json:"coram"`
	Parties       string `json:"parties"`
}

// FactsText joins the first paragraphs of the facts section, numbers
// stripped. It is empty when no section heading reads like facts.
func FactsText(record *scraper.CaseRecord) string {
	section, ok := record.FactsSection()
	if !ok {
		return ""
	}

	paragraphs := section.Paragraphs
	if len(paragraphs) > maxFactsParagraphs {
		paragraphs = paragraphs[:maxFactsParagraphs]
	}

	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		lines = append(lines, normalize.StripNumbering(p))
	}
	return strings.Join(lines, "\n")
}

func FactsPrompt(record *scraper.CaseRecord) string {
	return strings.Join([]string{
		"You are a legal assistant. Produce a crisp case facts rundown.",
		"Constraints:",
		"- Output plain text with short bullets.",
		`- Do NOT fabricate facts. If missing, say "Not stated".`,
		"- Keep it under 180 words.",
		"",
		"Title: " + record.Title,
		"Metadata: " + metadataJSON(record),
		"Legal issues: " + strings.Join(record.LegalIssues, " | "),
		"",
		"Extracted facts (may be partial):",
		FactsText(record),
	}, "\n")
}

func DiagramPrompt(record *scraper.CaseRecord) string {
	return strings.Join([]string{
		"You are a legal analyst. Create a simple directed graph representing the case.",
		"Return ONLY valid JSON, nothing else.",
		"Schema:",
		diagramSchema,
		"Rules:",
		"- Keep nodes <= 10 and edges <= 14.",
		"- Use stable ids like n1, n2...",
		"- Do NOT fabricate facts; if unknown, omit.",
		"",
		"Title: " + record.Title,
		"Legal issues: " + strings.Join(record.LegalIssues, " | "),
		"",
		"Extracted facts (may be partial):",
		FactsText(record),
	}, "\n")
}

func metadataJSON(record *scraper.CaseRecord) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(caseMetadata{
		CaseNumber:    record.CaseNumber,
		CaseDate:      record.Date,
		TribunalCourt: record.TribunalCourt,
		Coram:         record.Coram,
		Parties:       record.Parties,
	})
	return strings.TrimSuffix(buf.String(), "\n")
}
