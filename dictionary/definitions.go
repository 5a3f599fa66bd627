package dictionary

import (
	"github.com/neuronlabs/viewimport/qname"
)

// DataTypeDefinition is the definition of the property data type.
type DataTypeDefinition struct {
	Name        qname.QName
	Description string
}

// PropertyDefinition is the definition of the class property.
type PropertyDefinition struct {
	Name qname.QName
	// Container is the name of the type or aspect that defines the property.
	Container qname.QName
	DataType  qname.QName
	Multiple  bool
	Mandatory bool
}

// AssociationDefinition is the definition of the association between the nodes.
type AssociationDefinition struct {
	Name qname.QName
	// Source is the name of the type or aspect that defines the association.
	Source qname.QName
	Target qname.QName
	// Child defines if the association establishes the parent / child hierarchy.
	Child bool
}

// ClassDefinition is the common part of the type and aspect definitions.
type ClassDefinition struct {
	Name           qname.QName
	Parent         qname.QName
	DefaultAspects []qname.QName
	Properties     map[qname.QName]*PropertyDefinition
	Associations   map[qname.QName]*AssociationDefinition
}

// ChildAssociations gets the class own child associations.
func (c *ClassDefinition) ChildAssociations() []*AssociationDefinition {
	var assocs []*AssociationDefinition
	for _, assoc := range c.Associations {
		if assoc.Child {
			assocs = append(assocs, assoc)
		}
	}
	return assocs
}

func newClassDefinition(name qname.QName) ClassDefinition {
	return ClassDefinition{
		Name:         name,
		Properties:   make(map[qname.QName]*PropertyDefinition),
		Associations: make(map[qname.QName]*AssociationDefinition),
	}
}

// TypeDefinition is the definition of the node type.
type TypeDefinition struct {
	ClassDefinition
}

// AspectDefinition is the definition of the aspect that could be applied to the node.
type AspectDefinition struct {
	ClassDefinition
}

// Service resolves the qualified names into the dictionary definitions.
// The lookup methods return nil if the definition is not found.
type Service interface {
	Type(name qname.QName) *TypeDefinition
	Aspect(name qname.QName) *AspectDefinition
	Property(name qname.QName) *PropertyDefinition
	Association(name qname.QName) *AssociationDefinition
	DataType(name qname.QName) *DataTypeDefinition
	Namespaces() qname.NamespaceResolver
}
