// Package dom is the small slice of a document tree the extractor needs. It
// has a live-browser implementation and an in-memory one, so extraction rules
// can be tested without Chrome.
package dom

// Document is a queryable page.
type Document interface {
	// QueryAll returns matches in document order. No match is not an error.
	QueryAll(selector string) ([]Element, error)
}

type Element interface {
	// Text is the element's text content, untrimmed.
	Text() (string, error)
	// Attribute returns "" when the attribute is absent.
	Attribute(name string) (string, error)
	QueryAll(selector string) ([]Element, error)
	// Children returns the child elements, skipping text and comment nodes.
	Children() ([]Element, error)
}

// First returns the first match or nil.
func First(q interface {
	QueryAll(string) ([]Element, error)
}, selector string) (Element, error) {
	matches, err := q.QueryAll(selector)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}
