package xmldoc

import (
	"fmt"

	"github.com/beevik/etree"
)

// Document wraps a parsed XML tree behind the availability.FieldReader
// contract. Paths are slash separated and resolved as descendant searches
// from the document root.
type Document struct {
	tree *etree.Document
}

// Parse builds a Document from raw XML bytes.
func Parse(raw []byte) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("parse request document: %w", err)
	}
	if tree.Root() == nil {
		return nil, fmt.Errorf("parse request document: no root element")
	}
	return &Document{tree: tree}, nil
}

func (d *Document) find(path string) *etree.Element {
	return d.tree.FindElement("//" + path)
}

// ReadText returns the text content of the first element at path.
func (d *Document) ReadText(path string) (string, bool) {
	el := d.find(path)
	if el == nil {
		return "", false
	}
	return el.Text(), true
}

// ReadAttributes returns the attribute map of the first element at path.
func (d *Document) ReadAttributes(path string) (map[string]string, bool) {
	el := d.find(path)
	if el == nil {
		return nil, false
	}
	attrs := make(map[string]string, len(el.Attr))
	for _, a := range el.Attr {
		attrs[a.Key] = a.Value
	}
	return attrs, true
}
