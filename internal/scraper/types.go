package scraper

import (
	"regexp"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// CaseRecord is the structured form of one judgment page.
type CaseRecord struct {
	Title         string   `json:"title"`
	CaseNumber    string   `json:"case_number"`
	Date          string   `json:"date"`
	TribunalCourt string   `json:"tribunal_court"`
	Coram         string   `json:"coram"`
	Counsel       string   `json:"counsel"`
	Parties       string   `json:"parties"`
	LegalIssues   []string `json:"legal_issues"`

	// Body maps section names to paragraphs in the order sections first appear.
	Body *orderedmap.OrderedMap[string, []string] `json:"body"`
}

type Section struct {
	Name       string
	Paragraphs []string
}

func NewCaseRecord() *CaseRecord {
	return &CaseRecord{
		LegalIssues: []string{},
		Body:        orderedmap.New[string, []string](),
	}
}

// Sections returns the body as an ordered slice.
func (r *CaseRecord) Sections() []Section {
	sections := make([]Section, 0, r.Body.Len())
	for pair := r.Body.Oldest(); pair != nil; pair = pair.Next() {
		sections = append(sections, Section{Name: pair.Key, Paragraphs: pair.Value})
	}
	return sections
}

func (r *CaseRecord) ParagraphCount() int {
	total := 0
	for pair := r.Body.Oldest(); pair != nil; pair = pair.Next() {
		total += len(pair.Value)
	}
	return total
}

var factsHeading = regexp.MustCompile(`(?i)\bfacts\b|\bbackground\b|\bmaterial facts\b`)

// FactsSection returns the first section that reads like a statement of facts.
func (r *CaseRecord) FactsSection() (Section, bool) {
	for pair := r.Body.Oldest(); pair != nil; pair = pair.Next() {
		if factsHeading.MatchString(pair.Key) {
			return Section{Name: pair.Key, Paragraphs: pair.Value}, true
		}
	}
	return Section{}, false
}

// DecisionDate parses the Date field. ok is false when the site used a format
// the parser does not know.
func (r *CaseRecord) DecisionDate() (time.Time, bool) {
	t, err := NewDateParser().Parse(r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Stats describes one pass over the paragraph list.
type Stats struct {
	Paragraphs int
	Headings   int
	Accepted   int
	Ignored    int
	Orphaned   int
}

type Selectors struct {
	Title            string `yaml:"title"`
	InfoTable        string `yaml:"info_table"`
	InfoRow          string `yaml:"info_row"`
	InfoCell         string `yaml:"info_cell"`
	SummaryCellIndex int    `yaml:"summary_cell_index"`
	LegalIssues      string `yaml:"legal_issues"`
	Paragraphs       string `yaml:"paragraphs"`
	HeadingClass     string `yaml:"heading_class"`
	BodyClass        string `yaml:"body_class"`
}

// DefaultSelectors matches the eLitigation judgment layout.
func DefaultSelectors() *Selectors {
	return &Selectors{
		Title:            ".caseTitle",
		InfoTable:        "#info-table",
		InfoRow:          "tr",
		InfoCell:         "td",
		SummaryCellIndex: 2,
		LegalIssues:      "div.txt-body",
		Paragraphs:       "p",
		HeadingClass:     "Judg-Heading-1",
		BodyClass:        "Judg-1",
	}
}

// SummaryField assigns one info-table value to the record.
type SummaryField struct {
	Label string
	Set   func(r *CaseRecord, value string)
}

// SummaryFields maps info-table row index to record field. The table is read
// positionally; a label-based lookup would only replace this table.
var SummaryFields = []SummaryField{
	{Label: "Case Number", Set: func(r *CaseRecord, v string) { r.CaseNumber = v }},
	{Label: "Decision Date", Set: func(r *CaseRecord, v string) { r.Date = v }},
	{Label: "Tribunal/Court", Set: func(r *CaseRecord, v string) { r.TribunalCourt = v }},
	{Label: "Coram", Set: func(r *CaseRecord, v string) { r.Coram = v }},
	{Label: "Counsel Name(s)", Set: func(r *CaseRecord, v string) { r.Counsel = v }},
	{Label: "Parties", Set: func(r *CaseRecord, v string) { r.Parties = v }},
}
