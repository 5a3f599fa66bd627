package qname

import (
	"sort"
	"sync"
)

// NamespaceResolver maps namespace prefixes to the URIs and back.
type NamespaceResolver interface {
	// NamespaceURI gets the namespace URI registered for the 'prefix'.
	NamespaceURI(prefix string) (string, bool)
	// Prefix gets the prefix registered for the namespace 'uri'.
	Prefix(uri string) (string, bool)
	// IsRegistered checks if the namespace 'uri' is known.
	IsRegistered(uri string) bool
}

// compile time check for the Namespaces.
var _ NamespaceResolver = &Namespaces{}

// Namespaces is the in-memory, thread safe NamespaceResolver.
type Namespaces struct {
	lock     sync.RWMutex
	prefixes map[string]string
	uris     map[string]string
}

// NewNamespaces creates the namespace registry with the 'prefix' -> 'uri' mapping.
func NewNamespaces(mapping map[string]string) *Namespaces {
	n := &Namespaces{
		prefixes: make(map[string]string),
		uris:     make(map[string]string),
	}
	for prefix, uri := range mapping {
		n.Register(prefix, uri)
	}
	return n
}

// DefaultNamespaces creates the registry with the well known view, content, system
// and data type namespaces.
func DefaultNamespaces() *Namespaces {
	return NewNamespaces(map[string]string{
		ViewPrefix:     ViewURI,
		ContentPrefix:  ContentModelURI,
		SystemPrefix:   SystemModelURI,
		DataTypePrefix: DictionaryModelURI,
	})
}

// Register registers the 'prefix' for the namespace 'uri'.
// Re-registering the prefix overrides its previous URI.
func (n *Namespaces) Register(prefix, uri string) {
	n.lock.Lock()
	defer n.lock.Unlock()

	if old, ok := n.prefixes[prefix]; ok && n.uris[old] == prefix {
		delete(n.uris, old)
	}
	n.prefixes[prefix] = uri
	if _, ok := n.uris[uri]; !ok {
		n.uris[uri] = prefix
	}
}

// NamespaceURI implements NamespaceResolver.
func (n *Namespaces) NamespaceURI(prefix string) (string, bool) {
	n.lock.RLock()
	defer n.lock.RUnlock()

	uri, ok := n.prefixes[prefix]
	return uri, ok
}

// Prefix implements NamespaceResolver.
func (n *Namespaces) Prefix(uri string) (string, bool) {
	n.lock.RLock()
	defer n.lock.RUnlock()

	prefix, ok := n.uris[uri]
	return prefix, ok
}

// IsRegistered implements NamespaceResolver.
func (n *Namespaces) IsRegistered(uri string) bool {
	n.lock.RLock()
	defer n.lock.RUnlock()

	_, ok := n.uris[uri]
	return ok
}

// URIs gets the sorted registered namespace URIs.
func (n *Namespaces) URIs() []string {
	n.lock.RLock()
	defer n.lock.RUnlock()

	uris := make([]string, 0, len(n.uris))
	for uri := range n.uris {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}
