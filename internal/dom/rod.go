package dom

import (
	"fmt"

	"github.com/go-rod/rod"
)

// PageDocument queries a live browser page.
type PageDocument struct {
	page *rod.Page
}

func NewPageDocument(page *rod.Page) *PageDocument {
	return &PageDocument{page: page}
}

func (d *PageDocument) QueryAll(selector string) ([]Element, error) {
	elements, err := d.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	return wrapRod(elements), nil
}

type rodElement struct {
	el *rod.Element
}

// Text reads textContent, same as the in-memory adapter.
func (e rodElement) Text() (string, error) {
	value, err := e.el.Property("textContent")
	if err != nil {
		return "", fmt.Errorf("read textContent: %w", err)
	}
	if value.Nil() {
		return "", nil
	}
	return value.Str(), nil
}

func (e rodElement) Attribute(name string) (string, error) {
	value, err := e.el.Attribute(name)
	if err != nil {
		return "", fmt.Errorf("read attribute %q: %w", name, err)
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

func (e rodElement) QueryAll(selector string) ([]Element, error) {
	elements, err := e.el.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	return wrapRod(elements), nil
}

func (e rodElement) Children() ([]Element, error) {
	return e.QueryAll(":scope > *")
}

func wrapRod(elements rod.Elements) []Element {
	wrapped := make([]Element, 0, len(elements))
	for _, el := range elements {
		wrapped = append(wrapped, rodElement{el: el})
	}
	return wrapped
}
