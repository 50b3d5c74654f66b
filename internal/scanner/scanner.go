package scanner

import (
	"fmt"
	"net/url"

	"SEOAgent/internal/domain"
)

// Node is a matched element of a Document.
type Node interface {
	Text() string
	Attr(name string) (string, bool)
}

// Document is the query capability extraction logic is written against.
// Selectors are CSS selectors; results are in document order.
type Document interface {
	FindFirst(selector string) (Node, bool)
	FindAll(selector string) []Node
}

// ParseFunc turns raw HTML into a Document.
type ParseFunc func(html string) (Document, error)

// Request carries what a discovery strategy needs to enumerate article links.
type Request struct {
	BaseURL    *url.URL
	Competitor domain.CompetitorConfig
}

// Discoverer enumerates candidate article URLs on a listing page.
type Discoverer interface {
	Name() string
	Discover(doc Document, req Request) []string
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	discoverers map[string]Discoverer
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{discoverers: map[string]Discoverer{}}
}

// NewDefaultRegistry registers the built-in strategies.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(MarkerDiscoverer{})
	reg.Register(SelectorDiscoverer{})
	return reg
}

// Register adds or replaces a strategy.
func (r *Registry) Register(d Discoverer) {
	if r.discoverers == nil {
		r.discoverers = map[string]Discoverer{}
	}
	r.discoverers[d.Name()] = d
}

// Resolve returns a strategy by name; the empty name resolves to the marker strategy.
func (r *Registry) Resolve(name string) (Discoverer, error) {
	if name == "" {
		name = MarkerStrategy
	}
	if d, ok := r.discoverers[name]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("discovery strategy %s is not registered", name)
}
