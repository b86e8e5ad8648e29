package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

const snapshotHashMeta = `meta[name="judgeman:snapshot-sha256"]`

var snapshotLiteral = regexp.MustCompile(`const originalHtmlBase64 = (".*?");`)

var ErrNoSnapshot = errors.New("report carries no snapshot")

// ReadSnapshot returns the base64 snapshot and its recorded SHA256 from a
// rendered report.
func ReadSnapshot(report []byte) (encoded, digest string, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(report))
	if err != nil {
		return "", "", fmt.Errorf("parse report: %w", err)
	}

	digest, ok := doc.Find(snapshotHashMeta).First().Attr("content")
	if !ok {
		return "", "", fmt.Errorf("%w: hash meta missing", ErrNoSnapshot)
	}

	var literal string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := snapshotLiteral.FindStringSubmatch(s.Text()); m != nil {
			literal = m[1]
			return false
		}
		return true
	})
	if literal == "" {
		return "", "", fmt.Errorf("%w: literal missing", ErrNoSnapshot)
	}

	if err := json.Unmarshal([]byte(literal), &encoded); err != nil {
		return "", "", fmt.Errorf("decode snapshot literal: %w", err)
	}
	return encoded, digest, nil
}
