// Package errors provides the classified errors used by the view importer.
//
// Every error created by this package carries a class.Class that could be
// checked with the IsClass and IsMajor functions, also when the error is
// wrapped by another error type.
package errors
