package repository

import (
	"strings"

	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
)

// StoreRef is the reference of the node store i.e. 'workspace://SpacesStore'.
type StoreRef struct {
	Protocol   string
	Identifier string
}

// String implements fmt.Stringer.
func (s StoreRef) String() string {
	return s.Protocol + "://" + s.Identifier
}

// IsZero checks if the store reference is empty.
func (s StoreRef) IsZero() bool {
	return s.Protocol == "" && s.Identifier == ""
}

// ParseStoreRef parses the 'protocol://identifier' store reference.
func ParseStoreRef(s string) (StoreRef, error) {
	i := strings.Index(s, "://")
	if i <= 0 || i+3 == len(s) || strings.Contains(s[i+3:], "/") {
		return StoreRef{}, errors.Newf(class.RepositoryNodeInvalidRef, "invalid store reference: '%s'", s)
	}
	return StoreRef{Protocol: s[:i], Identifier: s[i+3:]}, nil
}

// NodeRef is the reference of the node in the store.
type NodeRef struct {
	Store StoreRef
	ID    string
}

// String implements fmt.Stringer. The reference is rendered as 'protocol://identifier/id'.
func (n NodeRef) String() string {
	if n.IsZero() {
		return ""
	}
	return n.Store.String() + "/" + n.ID
}

// IsZero checks if the node reference is empty.
func (n NodeRef) IsZero() bool {
	return n.ID == "" && n.Store.IsZero()
}

// ParseNodeRef parses the 'protocol://identifier/id' node reference.
func ParseNodeRef(s string) (NodeRef, error) {
	i := strings.LastIndexByte(s, '/')
	if i <= 0 || i == len(s)-1 {
		return NodeRef{}, errors.Newf(class.RepositoryNodeInvalidRef, "invalid node reference: '%s'", s)
	}
	store, err := ParseStoreRef(s[:i])
	if err != nil {
		return NodeRef{}, errors.Newf(class.RepositoryNodeInvalidRef, "invalid node reference: '%s'", s)
	}
	return NodeRef{Store: store, ID: s[i+1:]}, nil
}
