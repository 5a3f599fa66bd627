package view

import (
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
)

// contextStack is the stack of the element contexts of the parsed document.
type contextStack struct {
	contexts []elementContext
}

func (s *contextStack) len() int {
	return len(s.contexts)
}

func (s *contextStack) push(c elementContext) {
	s.contexts = append(s.contexts, c)
	logger.Debug3f("%*sPushed %s", len(s.contexts)-1, "", c)
}

// pop removes the top context and runs the 'finalize' action on it.
func (s *contextStack) pop(finalize func(elementContext) error) (elementContext, error) {
	if len(s.contexts) == 0 {
		return elementContext{}, errors.New(class.ImportNodeState, "context stack is empty")
	}
	c := s.contexts[len(s.contexts)-1]
	s.contexts[len(s.contexts)-1] = elementContext{}
	s.contexts = s.contexts[:len(s.contexts)-1]
	logger.Debug3f("%*sPopped %s", len(s.contexts), "", c)
	if finalize == nil {
		return c, nil
	}
	return c, finalize(c)
}

// peek gets the top context. The stack must not be empty.
func (s *contextStack) peek() *elementContext {
	return &s.contexts[len(s.contexts)-1]
}

// peekNode gets the nearest node context, looking through the node item context.
// Only the top context and the one below it are checked.
func (s *contextStack) peekNode() (*nodeContext, error) {
	for i := len(s.contexts) - 1; i >= 0 && i >= len(s.contexts)-2; i-- {
		if c := s.contexts[i]; c.kind == nodeKind || c.kind == nodeItemKind {
			return c.node, nil
		}
	}
	return nil, errors.New(class.ImportNoEnclosingNode, "failed to retrieve node context")
}
