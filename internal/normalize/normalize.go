package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Judgment paragraphs carry their own number: "12 The appellant", "3. Held".
	leadingNumber = regexp.MustCompile(`^\s*\d+\.?\s*`)
)

type Options struct {
	TrimNBSP       bool
	CollapseSpaces bool
	PreviewChars   int
}

type Normalizer struct {
	opts Options
}

func NewNormalizer(opts Options) *Normalizer {
	return &Normalizer{opts: opts}
}

// Text trims s and applies the configured whitespace rules.
func (n *Normalizer) Text(s string) string {
	if n.opts.TrimNBSP {
		s = strings.ReplaceAll(s, "\u00a0", " ")
	}
	if n.opts.CollapseSpaces {
		s = whitespaceRun.ReplaceAllString(s, " ")
	}
	return strings.TrimSpace(s)
}

// TruncatePreview cuts text to PreviewChars runes at a word boundary. Zero
// disables truncation.
func (n *Normalizer) TruncatePreview(text string) string {
	limit := n.opts.PreviewChars
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	truncated := string(runes[:limit])
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > 0 {
		return truncated[:lastSpace] + "…"
	}

	return truncated + "…"
}

// StripNumbering removes one leading paragraph number and the whitespace
// around it, then trims.
func StripNumbering(paragraph string) string {
	return strings.TrimSpace(leadingNumber.ReplaceAllString(paragraph, ""))
}

// StartsWithDigit reports whether s begins with an ASCII digit.
func StartsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
