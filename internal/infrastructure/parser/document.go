package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"SEOAgent/internal/scanner"
)

// Document adapts a goquery document to scanner.Document.
type Document struct {
	doc *goquery.Document
}

var _ scanner.Document = (*Document)(nil)

// Parse builds a Document from raw HTML.
func Parse(html string) (scanner.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{doc: doc}, nil
}

// FindFirst returns the first element matching selector.
func (d *Document) FindFirst(selector string) (scanner.Node, bool) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return node{sel: sel}, true
}

// FindAll returns every element matching selector in document order.
func (d *Document) FindAll(selector string) []scanner.Node {
	sel := d.doc.Find(selector)
	nodes := make([]scanner.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, node{sel: s})
	})
	return nodes
}

type node struct {
	sel *goquery.Selection
}

func (n node) Text() string {
	return n.sel.Text()
}

func (n node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}
