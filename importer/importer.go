package importer

import (
	"github.com/neuronlabs/viewimport/dictionary"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

// Importer is the sink driven by the view parser. The parser calls it strictly in
// the document order and never concurrently.
type Importer interface {
	// RootRef gets the parent reference of the top level imported nodes.
	RootRef() repository.NodeRef
	// RootAssociation gets the association type of the top level imported nodes.
	// A zero name lets the importer derive the association from the parent type.
	RootAssociation() qname.QName
	// ImportNode materialises the node. It is called at most once per parsed node.
	ImportNode(node ImportNode) (repository.NodeRef, error)
	// ChildrenImported signals that all direct children of the node were processed.
	ChildrenImported(ref repository.NodeRef) error
	// ImportMetaData delivers single metadata block.
	ImportMetaData(meta map[qname.QName]string) error
	// IsExcludedClass checks if the type or aspect should not be imported.
	IsExcludedClass(name qname.QName) bool
}

// ReferenceResolver is implemented by the importers that could resolve the
// 'view:reference' elements pointing to the already existing nodes.
type ReferenceResolver interface {
	// ResolvePath resolves the repository path into the node reference.
	ResolvePath(path string) (repository.NodeRef, error)
	// Describe gets the type and the aspects of the existing node.
	Describe(ref repository.NodeRef) (typeName qname.QName, aspects []qname.QName, err error)
}

// ImportNode is the read only snapshot of the parsed node handed to the Importer.
type ImportNode struct {
	// Parent is the parent node reference.
	Parent repository.NodeRef
	// AssociationType is the name of the association between the parent and the node.
	AssociationType qname.QName
	// Type is the node type definition. It could be nil for the references to
	// the nodes of the types unknown to the dictionary.
	Type *dictionary.TypeDefinition
	// Aspects are the aspects added to the node in the document order.
	Aspects []qname.QName
	// Properties are the node property values.
	Properties map[qname.QName]repository.Value
	// DataTypes are the explicit property data types.
	DataTypes map[qname.QName]qname.QName
	// InheritPermissions defines if the node inherits the parent permissions.
	InheritPermissions bool
	// ACL are the access control entries in the document order.
	ACL []repository.AccessControlEntry
	// ChildName is the explicit, prefixed child name.
	ChildName string
	// UUID is the repository unique node id.
	UUID string
	// ImportID is the import scoped node identifier.
	ImportID string
	// Reference marks the nodes referencing already existing nodes.
	Reference bool
}

// TypeName gets the node type name or zero value if the type is not known.
func (n *ImportNode) TypeName() qname.QName {
	if n.Type == nil {
		return qname.QName{}
	}
	return n.Type.Name
}

// HasAspect checks if the 'aspect' was added to the node.
func (n *ImportNode) HasAspect(aspect qname.QName) bool {
	for _, a := range n.Aspects {
		if a == aspect {
			return true
		}
	}
	return false
}
