package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateParser reads the decision dates printed in judgment info tables.
// Numeric dates are read day first ("23/01/2009").
type DateParser struct {
	opts []dateparse.ParserOption
}

func NewDateParser() *DateParser {
	return &DateParser{
		opts: []dateparse.ParserOption{dateparse.PreferMonthFirst(false)},
	}
}

// Parse returns the date at 00:00 UTC.
func (dp *DateParser) Parse(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	t, err := dateparse.ParseAny(dateStr, dp.opts...)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", dateStr, err)
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
