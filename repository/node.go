package repository

import (
	"github.com/neuronlabs/viewimport/qname"
)

// Node is the node stored in the repository.
type Node struct {
	Ref        NodeRef
	Type       qname.QName
	Aspects    []qname.QName
	Properties map[qname.QName]Value
	// Parent is the primary parent association. It is zero for the store root.
	Parent             ChildAssociation
	ACL                []AccessControlEntry
	InheritPermissions bool
}

// HasAspect checks if the node has the 'aspect' applied.
func (n *Node) HasAspect(aspect qname.QName) bool {
	for _, a := range n.Aspects {
		if a == aspect {
			return true
		}
	}
	return false
}

// ChildAssociation is the association between the parent and the child node.
type ChildAssociation struct {
	Parent  NodeRef
	Type    qname.QName
	Name    qname.QName
	Child   NodeRef
	Primary bool
}

// NodeDefinition describes the node to create.
type NodeDefinition struct {
	Parent          NodeRef
	AssociationType qname.QName
	ChildName       qname.QName
	Type            qname.QName
	// ID is the requested node identifier. A new identifier is generated when empty.
	ID         string
	Properties map[qname.QName]Value
}
