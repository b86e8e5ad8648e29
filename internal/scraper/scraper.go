package scraper

import (
	"fmt"
	"strings"

	"judgeman/internal/dom"
	"judgeman/internal/normalize"
	"judgeman/internal/observability"
)

type Scraper struct {
	selectors  *Selectors
	normalizer *normalize.Normalizer
	logger     *observability.Logger
}

func NewScraper(selectors *Selectors, normalizer *normalize.Normalizer, logger *observability.Logger) *Scraper {
	return &Scraper{
		selectors:  selectors,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Extract builds a CaseRecord from doc. Missing title, info table or issues
// container leave the matching fields empty; only DOM access failures are
// returned as errors.
func (s *Scraper) Extract(doc dom.Document) (*CaseRecord, *Stats, error) {
	record := NewCaseRecord()

	if err := s.extractTitle(doc, record); err != nil {
		return nil, nil, fmt.Errorf("extract title: %w", err)
	}
	if err := s.extractSummary(doc, record); err != nil {
		return nil, nil, fmt.Errorf("extract summary: %w", err)
	}
	if err := s.extractLegalIssues(doc, record); err != nil {
		return nil, nil, fmt.Errorf("extract legal issues: %w", err)
	}
	stats, err := s.extractBody(doc, record)
	if err != nil {
		return nil, nil, fmt.Errorf("extract body: %w", err)
	}

	return record, stats, nil
}

func (s *Scraper) extractTitle(doc dom.Document, record *CaseRecord) error {
	title, err := dom.First(doc, s.selectors.Title)
	if err != nil {
		return err
	}
	if title == nil {
		s.logger.Debug("Title element not found", "selector", s.selectors.Title)
		return nil
	}

	record.Title, err = s.text(title)
	return err
}

func (s *Scraper) extractSummary(doc dom.Document, record *CaseRecord) error {
	table, err := dom.First(doc, s.selectors.InfoTable)
	if err != nil {
		return err
	}
	if table == nil {
		s.logger.Debug("Info table not found", "selector", s.selectors.InfoTable)
		return nil
	}

	rows, err := table.QueryAll(s.selectors.InfoRow)
	if err != nil {
		return err
	}

	cellIndex := s.selectors.SummaryCellIndex
	for i, row := range rows {
		if i >= len(SummaryFields) {
			break
		}

		cells, err := row.QueryAll(s.selectors.InfoCell)
		if err != nil {
			return err
		}
		if len(cells) <= cellIndex {
			s.logger.Debug("Info row too short, skipping",
				"row", i,
				"cells", len(cells),
			)
			continue
		}

		value, err := s.text(cells[cellIndex])
		if err != nil {
			return err
		}
		SummaryFields[i].Set(record, value)
	}

	return nil
}

func (s *Scraper) extractLegalIssues(doc dom.Document, record *CaseRecord) error {
	container, err := dom.First(doc, s.selectors.LegalIssues)
	if err != nil {
		return err
	}
	if container == nil {
		s.logger.Debug("Legal issues container not found", "selector", s.selectors.LegalIssues)
		return nil
	}

	children, err := container.Children()
	if err != nil {
		return err
	}

	for _, child := range children {
		issue, err := s.text(child)
		if err != nil {
			return err
		}
		if issue != "" {
			record.LegalIssues = append(record.LegalIssues, issue)
		}
	}

	return nil
}

// extractBody groups numbered body paragraphs under the preceding heading.
// A heading with empty text closes the current section without opening one,
// so paragraphs seen before the first named heading are dropped.
func (s *Scraper) extractBody(doc dom.Document, record *CaseRecord) (*Stats, error) {
	paragraphs, err := doc.QueryAll(s.selectors.Paragraphs)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Paragraphs: len(paragraphs)}
	sectionName := ""
	buffer := []string{}

	for _, paragraph := range paragraphs {
		text, err := s.text(paragraph)
		if err != nil {
			return nil, err
		}
		className, err := paragraph.Attribute("class")
		if err != nil {
			return nil, err
		}

		switch {
		case strings.Contains(className, s.selectors.HeadingClass):
			if sectionName != "" {
				record.Body.Set(sectionName, buffer)
			}
			buffer = []string{}
			sectionName = text
			stats.Headings++

		case strings.Contains(className, s.selectors.BodyClass) && normalize.StartsWithDigit(text):
			if sectionName == "" {
				stats.Orphaned++
				continue
			}
			buffer = append(buffer, text)
			stats.Accepted++

		default:
			stats.Ignored++
		}
	}

	if sectionName != "" {
		record.Body.Set(sectionName, buffer)
	}

	if stats.Orphaned > 0 {
		s.logger.Warn("Dropped numbered paragraphs outside any named section",
			"count", stats.Orphaned,
		)
	}

	return stats, nil
}

func (s *Scraper) text(el dom.Element) (string, error) {
	raw, err := el.Text()
	if err != nil {
		return "", err
	}
	return s.normalizer.Text(raw), nil
}
