// Package qname contains the qualified name used as the universal key
// of the dictionary and of the view documents.
//
// A qualified name is a namespace URI and a local name pair. The package
// also provides the namespace prefix resolution used while reading the
// prefixed names of the view documents and the dictionary models.
package qname
