package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"judgeman/internal/scraper"
)

// LoadSelectors reads selector overrides from YAML on top of the defaults.
func LoadSelectors(filePath string) (*scraper.Selectors, error) {
	if filePath == "" {
		return nil, fmt.Errorf("selectors file path is empty")
	}

	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("selectors file not found: %s: %w", filePath, err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open selectors file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close selectors file: %v\n", closeErr)
		}
	}()

	selectors := scraper.DefaultSelectors()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(selectors); err != nil {
		return nil, fmt.Errorf("failed to parse selectors YAML: %w", err)
	}

	if err := validateSelectors(selectors); err != nil {
		return nil, err
	}

	return selectors, nil
}

// Selectors returns the configured selectors, or the built-in set when no
// selectors file is configured.
func (c *Config) Selectors() (*scraper.Selectors, error) {
	if c.SelectorsFile == "" {
		return scraper.DefaultSelectors(), nil
	}
	return LoadSelectors(c.SelectorsFile)
}

func validateSelectors(s *scraper.Selectors) error {
	if s.Title == "" {
		return fmt.Errorf("title is required")
	}
	if s.InfoTable == "" || s.InfoRow == "" || s.InfoCell == "" {
		return fmt.Errorf("info_table, info_row and info_cell are required")
	}
	if s.SummaryCellIndex < 0 {
		return fmt.Errorf("summary_cell_index must be >= 0")
	}
	if s.LegalIssues == "" {
		return fmt.Errorf("legal_issues is required")
	}
	if s.Paragraphs == "" {
		return fmt.Errorf("paragraphs is required")
	}
	if s.HeadingClass == "" {
		return fmt.Errorf("heading_class is required")
	}
	if s.BodyClass == "" {
		return fmt.Errorf("body_class is required")
	}
	return nil
}
