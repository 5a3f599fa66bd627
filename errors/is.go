package errors

import (
	stderrors "errors"

	"github.com/neuronlabs/viewimport/errors/class"
)

// IsClass checks if given error or any error it wraps is of given 'class'.
func IsClass(err error, c class.Class) bool {
	classError, ok := As(err)
	if !ok {
		return false
	}
	return classError.Classification() == c
}

// IsMajor checks if the classification of the error is of the major 'm'.
func IsMajor(err error, m class.Major) bool {
	classError, ok := As(err)
	if !ok {
		return false
	}
	return classError.Classification().IsMajor(m)
}

// As finds the first ClassError in the 'err' chain.
func As(err error) (ClassError, bool) {
	var classError ClassError
	if !stderrors.As(err, &classError) {
		return nil, false
	}
	return classError, true
}
