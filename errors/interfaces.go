package errors

import (
	"github.com/neuronlabs/viewimport/errors/class"
)

// ClassError is the interface used for all errors
// that uses classification system.
type ClassError interface {
	error
	// Classification gets current error classification.
	Classification() class.Class
}
