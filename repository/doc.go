// Package repository contains the node store abstraction the view importer
// materialises the nodes into: the node and store references, property values,
// access control entries and the Store interface with its factory registry.
//
// The store implementations register their factories on init, i.e.:
//	import _ "github.com/neuronlabs/viewimport/repository/memory"
package repository
