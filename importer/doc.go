// Package importer defines the sink interface driven by the view parser and
// contains the NodeImporter which materialises the parsed nodes in the repository.Store.
package importer
