package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// HTMLDocument is a Document parsed in memory.
type HTMLDocument struct {
	doc *goquery.Document
}

func ParseHTML(html string) (*HTMLDocument, error) {
	return ParseReader(strings.NewReader(html))
}

func ParseReader(r io.Reader) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &HTMLDocument{doc: doc}, nil
}

func (d *HTMLDocument) QueryAll(selector string) ([]Element, error) {
	return queryAll(d.doc.Selection, selector)
}

type htmlElement struct {
	sel *goquery.Selection
}

func (e htmlElement) Text() (string, error) {
	return e.sel.Text(), nil
}

func (e htmlElement) Attribute(name string) (string, error) {
	return e.sel.AttrOr(name, ""), nil
}

func (e htmlElement) QueryAll(selector string) ([]Element, error) {
	return queryAll(e.sel, selector)
}

func (e htmlElement) Children() ([]Element, error) {
	return wrap(e.sel.Children()), nil
}

func queryAll(sel *goquery.Selection, selector string) ([]Element, error) {
	// goquery matches nothing on an invalid selector, compile first to get an error
	compiled, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return wrap(sel.FindMatcher(compiled)), nil
}

func wrap(sel *goquery.Selection) []Element {
	elements := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, htmlElement{sel: s})
	})
	return elements
}
