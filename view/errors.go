package view

import (
	stderrors "errors"
	"fmt"

	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/qname"
)

// compile time check for the ClassError interface.
var _ errors.ClassError = &Error{}

// Error is the view import failure. It carries the position of the document
// event that triggered it.
type Error struct {
	// Err is the classified cause.
	Err *errors.Error
	// Line and Column are the 1-based position of the triggering event.
	Line   int
	Column int
	// Name is the offending qualified name, if any.
	Name qname.QName
	// Token is the offending literal, if any.
	Token string
}

// Classification implements errors.ClassError.
func (e *Error) Classification() class.Class {
	return e.Err.Class
}

// Error implements error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("failed to import view at line %d; column %d: %s", e.Line, e.Column, e.Err.Error())
}

// Unwrap gets the classified cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// positioned turns the 'err' into the Error at the position of the 'ev'.
func positioned(err error, ev *event) error {
	var viewErr *Error
	if stderrors.As(err, &viewErr) {
		return err
	}

	// the unclassified errors come from the importer collaborators.
	var classified *errors.Error
	if !stderrors.As(err, &classified) {
		classified = errors.Wrap(err, class.ImportImporter, "importer failed")
	}

	e := &Error{Err: classified}
	if ev != nil {
		e.Line, e.Column = ev.line, ev.column
		e.Name = ev.name
	}
	return e
}

// newError creates the Error of the class 'c' at the position of the 'ev'.
func newError(ev *event, c class.Class, format string, args ...interface{}) *Error {
	e := &Error{Err: errors.Newf(c, format, args...)}
	if ev != nil {
		e.Line, e.Column = ev.line, ev.column
		e.Name = ev.name
	}
	return e
}

// withToken sets the offending literal.
func (e *Error) withToken(token string) *Error {
	e.Token = token
	return e
}
