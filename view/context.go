package view

import (
	"fmt"

	"github.com/neuronlabs/viewimport/dictionary"
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/importer"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

// contextKind is the variant of the elementContext.
type contextKind int

const (
	parentKind contextKind = iota
	nodeKind
	metaDataKind
	nodeItemKind
)

func (k contextKind) String() string {
	switch k {
	case parentKind:
		return "parent"
	case nodeKind:
		return "node"
	case metaDataKind:
		return "metadata"
	case nodeItemKind:
		return "node item"
	}
	return "unknown"
}

// elementContext is the state of single nesting level of the document.
// The payload fields in use depend on the kind:
//
//	parentKind   - parentRef, assocType
//	nodeKind     - node
//	metaDataKind - meta
//	nodeItemKind - node, name is the grouping keyword
type elementContext struct {
	kind contextKind
	name qname.QName

	parentRef repository.NodeRef
	assocType qname.QName

	node *nodeContext
	meta map[qname.QName]string
}

func newParentContext(name qname.QName, parentRef repository.NodeRef, assocType qname.QName) elementContext {
	return elementContext{kind: parentKind, name: name, parentRef: parentRef, assocType: assocType}
}

func newNodeContext(node *nodeContext) elementContext {
	return elementContext{kind: nodeKind, name: node.name, node: node}
}

func newMetaDataContext(name qname.QName) elementContext {
	return elementContext{kind: metaDataKind, name: name, meta: map[qname.QName]string{}}
}

func newNodeItemContext(keyword qname.QName, node *nodeContext) elementContext {
	return elementContext{kind: nodeItemKind, name: keyword, node: node}
}

// String implements fmt.Stringer.
func (c elementContext) String() string {
	switch c.kind {
	case parentKind:
		return fmt.Sprintf("ParentContext[name=%s, parent=%s, assoc=%s]", c.name, c.parentRef, c.assocType)
	case nodeKind:
		return c.node.String()
	case metaDataKind:
		return fmt.Sprintf("MetaDataContext[name=%s]", c.name)
	case nodeItemKind:
		return fmt.Sprintf("NodeItemContext[name=%s, node=%s]", c.name, c.node.name)
	}
	return "unknown context"
}

// nodeRef is the node reference assigned once the node is materialised.
type nodeRef struct {
	ref repository.NodeRef
	set bool
}

// nodeContext is the data of the parsed node.
type nodeContext struct {
	name      qname.QName
	parentRef repository.NodeRef
	assocType qname.QName
	typeDef   *dictionary.TypeDefinition

	ref       nodeRef
	importID  string
	uuid      string
	childName string
	reference bool

	aspects    []qname.QName
	properties map[qname.QName]repository.Value
	dataTypes  map[qname.QName]qname.QName
	inherit    bool
	acl        []repository.AccessControlEntry

	// effective is the memoised set of the effective type associations.
	effective map[qname.QName]struct{}
}

func newNode(name qname.QName, parent elementContext, typeDef *dictionary.TypeDefinition) *nodeContext {
	return &nodeContext{
		name:       name,
		parentRef:  parent.parentRef,
		assocType:  parent.assocType,
		typeDef:    typeDef,
		properties: map[qname.QName]repository.Value{},
		dataTypes:  map[qname.QName]qname.QName{},
		inherit:    true,
	}
}

// String implements fmt.Stringer.
func (n *nodeContext) String() string {
	return fmt.Sprintf("NodeContext[childName=%s, type=%s, nodeRef=%s, aspects=%v, parentRef=%s, assocType=%s]",
		n.childName, n.typeName(), n.ref.ref, n.aspects, n.parentRef, n.assocType)
}

func (n *nodeContext) typeName() qname.QName {
	if n.typeDef == nil {
		return qname.QName{}
	}
	return n.typeDef.Name
}

// setRef assigns the node reference. The reference could be assigned only once.
func (n *nodeContext) setRef(ref repository.NodeRef) error {
	if n.ref.set {
		return errors.Newf(class.ImportNodeState, "node: '%s' is already imported as: '%s'", n.name, n.ref.ref)
	}
	n.ref = nodeRef{ref: ref, set: true}
	return nil
}

func (n *nodeContext) hasAspect(name qname.QName) bool {
	for _, aspect := range n.aspects {
		if aspect == name {
			return true
		}
	}
	return false
}

// addAspect adds the aspect to the node unless it is excluded by the importer.
func (n *nodeContext) addAspect(imp importer.Importer, name qname.QName) {
	if imp.IsExcludedClass(name) || n.hasAspect(name) {
		return
	}
	n.aspects = append(n.aspects, name)
	n.effective = nil
}

// isImportable checks if the property container class is not excluded.
func isImportable(svc dictionary.Service, imp importer.Importer, property qname.QName) bool {
	def := svc.Property(property)
	return def == nil || def.Container.IsZero() || !imp.IsExcludedClass(def.Container)
}

// addProperty records the property value. The second value of the property
// turns the scalar value into the collection, unless 'strict' is set.
func (n *nodeContext) addProperty(svc dictionary.Service, imp importer.Importer, property qname.QName, value repository.Value, strict bool) error {
	if !isImportable(svc, imp, property) {
		return nil
	}

	existing, ok := n.properties[property]
	switch {
	case !ok:
		n.properties[property] = value
	case existing.IsCollection():
		n.properties[property] = existing.Append(value)
	case strict:
		return errors.Newf(class.ImportMalformedValue,
			"property: '%s' has more than one value and is not declared as collection", property)
	default:
		n.properties[property] = existing.Append(value)
	}

	if property == qname.PropNodeUUID && n.uuid == "" && value.Kind == repository.ScalarValue && !value.Null {
		n.uuid = value.Text
	}
	return nil
}

// addPropertyCollection sets the property to the empty collection.
func (n *nodeContext) addPropertyCollection(svc dictionary.Service, imp importer.Importer, property qname.QName) {
	if !isImportable(svc, imp, property) {
		return
	}
	n.properties[property] = repository.Collection()
}

func (n *nodeContext) addDataType(property, dataType qname.QName) {
	n.dataTypes[property] = dataType
}

func (n *nodeContext) addAccessControlEntry(ace repository.AccessControlEntry) {
	n.acl = append(n.acl, ace)
}

// effectiveAssociations gets the associations of the node type, its default
// aspects and the aspects added so far.
func (n *nodeContext) effectiveAssociations(svc dictionary.Service) map[qname.QName]struct{} {
	if n.effective == nil {
		n.effective = dictionary.EffectiveAssociations(svc, n.typeName(), n.aspects)
	}
	return n.effective
}

// effectiveProperties gets the properties of the node type, its default
// aspects and the aspects added so far.
func (n *nodeContext) effectiveProperties(svc dictionary.Service) map[qname.QName]*dictionary.PropertyDefinition {
	return dictionary.EffectiveProperties(svc, n.typeName(), n.aspects)
}

// snapshot creates the read only view of the node for the importer.
func (n *nodeContext) snapshot() importer.ImportNode {
	node := importer.ImportNode{
		Parent:             n.parentRef,
		AssociationType:    n.assocType,
		Type:               n.typeDef,
		Aspects:            append([]qname.QName{}, n.aspects...),
		Properties:         make(map[qname.QName]repository.Value, len(n.properties)),
		DataTypes:          make(map[qname.QName]qname.QName, len(n.dataTypes)),
		InheritPermissions: n.inherit,
		ACL:                append([]repository.AccessControlEntry{}, n.acl...),
		ChildName:          n.childName,
		UUID:               n.uuid,
		ImportID:           n.importID,
		Reference:          n.reference,
	}
	for name, value := range n.properties {
		node.Properties[name] = value
	}
	for name, dataType := range n.dataTypes {
		node.DataTypes[name] = dataType
	}
	return node
}
