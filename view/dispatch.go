package view

import (
	"github.com/neuronlabs/viewimport/dictionary"
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/qname"
)

func isGroupingKeyword(name qname.QName) bool {
	switch name {
	case qname.ViewAspects, qname.ViewProperties, qname.ViewAssociations, qname.ViewACL:
		return true
	}
	return false
}

// processRoot seeds the context stack with the parent context of the document root.
func (p *parser) processRoot(ev *event) error {
	name, err := p.elementName(ev)
	if err != nil {
		return err
	}
	if name == qname.ViewRoot {
		p.stack.push(newParentContext(name, p.importer.RootRef(), p.importer.RootAssociation()))
		return nil
	}
	// the root node is imported into the unnamed parent context.
	p.stack.push(newParentContext(qname.QName{}, p.importer.RootRef(), p.importer.RootAssociation()))
	return p.processStartElement(ev)
}

func (p *parser) processStartElement(ev *event) error {
	name, err := p.elementName(ev)
	if err != nil {
		return err
	}
	top := *p.stack.peek()

	switch {
	case name == qname.ViewMetaData:
		if top.kind != parentKind && top.kind != nodeKind {
			return newError(ev, class.ImportInvalidNesting, "element: '%s' can't be declared within: '%s'", name, top.name)
		}
		p.stack.push(newMetaDataContext(name))
		return nil
	case isGroupingKeyword(name):
		if top.kind == nodeItemKind {
			return newError(ev, class.ImportInvalidNesting, "cannot nest element: '%s' within: '%s'", name, top.name)
		}
		if top.kind != nodeKind {
			return newError(ev, class.ImportInvalidNesting, "element: '%s' can only be declared within a node", name)
		}
		node, err := p.stack.peekNode()
		if err != nil {
			return err
		}
		p.stack.push(newNodeItemContext(name, node))
		if name == qname.ViewACL {
			return p.processACL(ev, node)
		}
		return nil
	}

	switch top.kind {
	case metaDataKind:
		return p.processMetaData(name, top.meta)
	case parentKind:
		if name == qname.ViewReference {
			return p.processStartReference(ev, name, top)
		}
		typeDef := p.dictionary.Type(name)
		if typeDef == nil {
			return newError(ev, class.ImportUnknownType, "type: '%s' has not been defined in the dictionary", name)
		}
		return p.processStartType(ev, typeDef, top)
	case nodeKind:
		node, err := p.stack.peekNode()
		if err != nil {
			return err
		}
		return p.processNodeChild(ev, name, node)
	case nodeItemKind:
		node, err := p.stack.peekNode()
		if err != nil {
			return err
		}
		return p.processNodeItem(ev, name, top.name, node)
	}
	return errors.Newf(class.ImportNodeState, "unknown context kind: '%s'", top.kind)
}

func (p *parser) processStartType(ev *event, typeDef *dictionary.TypeDefinition, parent elementContext) error {
	node := newNode(typeDef.Name, parent, typeDef)
	if childName, ok := ev.attr(childNameAttr); ok && childName != "" {
		node.childName = childName
	}
	if importID, ok := ev.attr(idAttr); ok && importID != "" {
		node.importID = importID
	}
	p.stack.push(newNodeContext(node))
	return nil
}

// processNodeChild resolves the element within the node as the aspect, the
// property or the child association, in that order.
func (p *parser) processNodeChild(ev *event, name qname.QName, node *nodeContext) error {
	if p.dictionary.Aspect(name) != nil {
		return p.processAspect(node, name)
	}
	property := decodeName(name)
	if _, ok := node.effectiveProperties(p.dictionary)[property]; ok {
		return p.processProperty(node, property)
	}
	if assoc := p.dictionary.Association(name); assoc != nil && assoc.Child {
		return p.processStartAssoc(ev, node, assoc)
	}
	return newError(ev, class.ImportUnresolvedDefinition, "definition: '%s' is not valid; cannot find in the dictionary", name)
}

func (p *parser) processNodeItem(ev *event, name, item qname.QName, node *nodeContext) error {
	switch item {
	case qname.ViewAspects:
		if p.dictionary.Aspect(name) == nil {
			return newError(ev, class.ImportUnknownAspect, "aspect name: '%s' is not valid; cannot find in the dictionary", name)
		}
		return p.processAspect(node, name)
	case qname.ViewProperties:
		// the properties without the dictionary definition are allowed.
		return p.processProperty(node, decodeName(name))
	case qname.ViewAssociations:
		assoc := p.dictionary.Association(name)
		if assoc == nil || !assoc.Child {
			return newError(ev, class.ImportUnknownAssociation, "association name: '%s' is not valid; cannot find in the dictionary", name)
		}
		return p.processStartAssoc(ev, node, assoc)
	case qname.ViewACL:
		if name != qname.ViewACE {
			return newError(ev, class.ImportInvalidNesting, "expected start element: '%s'", qname.ViewACE)
		}
		return p.processAccessControlEntry(ev, node)
	}
	return errors.Newf(class.ImportNodeState, "unknown node item: '%s'", item)
}

// processAspect adds the aspect to the node. The aspect element must be empty.
func (p *parser) processAspect(node *nodeContext, name qname.QName) error {
	node.addAspect(p.importer, name)
	next, err := p.src.nextElement()
	if err != nil {
		return err
	}
	if next.kind != endEvent {
		return newError(next, class.ImportInvalidNesting, "aspect: '%s' definition is not valid - it cannot contain any elements", name)
	}
	logger.Debug3f("%*sProcessed aspect %s", p.stack.len(), "", name)
	return nil
}

// processStartAssoc validates the association against the effective node type,
// materialises the node and pushes the parent context for its children.
func (p *parser) processStartAssoc(ev *event, node *nodeContext, assoc *dictionary.AssociationDefinition) error {
	if node.typeDef != nil {
		if _, ok := node.effectiveAssociations(p.dictionary)[assoc.Name]; !ok {
			return newError(ev, class.ImportAssociationNotValidForType,
				"association: '%s' is not valid for the type: '%s'", assoc.Name, node.typeName())
		}
	}
	if err := p.importNode(node); err != nil {
		return err
	}
	p.stack.push(newParentContext(assoc.Name, node.ref.ref, assoc.Name))
	return nil
}

func (p *parser) processMetaData(name qname.QName, meta map[qname.QName]string) error {
	next, err := p.src.next()
	if err != nil {
		return err
	}
	value := ""
	if next.kind == textEvent {
		value = next.text
		if next, err = p.src.next(); err != nil {
			return err
		}
	}
	if next.kind == startEvent {
		return newError(next, class.ImportInvalidNesting, "metadata element: '%s' cannot contain elements", name)
	}
	if next.kind != endEvent {
		return newError(next, class.ImportMalformedValue, "metadata element: '%s' is missing end tag", name)
	}
	meta[name] = value
	return nil
}

func (p *parser) processEndElement(ev *event) error {
	if p.stack.len() == 0 || p.stack.peek().name != ev.name {
		return newError(ev, class.ImportInvalidNesting, "unexpected end element: '%s'", ev.name)
	}
	if _, err := p.stack.pop(p.finalize); err != nil {
		return err
	}
	if p.stack.len() == 0 || (p.stack.len() == 1 && p.stack.peek().name.IsZero()) {
		p.rootClosed = true
	}
	return nil
}

// finalize completes the popped context. The node is imported if it has not
// been yet and the metadata is passed to the importer.
func (p *parser) finalize(c elementContext) error {
	switch c.kind {
	case nodeKind:
		if err := p.importNode(c.node); err != nil {
			return err
		}
		return p.importer.ChildrenImported(c.node.ref.ref)
	case metaDataKind:
		return p.importer.ImportMetaData(c.meta)
	}
	return nil
}

// importNode materialises the node unless it is already imported.
func (p *parser) importNode(node *nodeContext) error {
	if node.ref.set {
		return nil
	}
	ref, err := p.importer.ImportNode(node.snapshot())
	if err != nil {
		return err
	}
	if err = node.setRef(ref); err != nil {
		return err
	}
	logger.Debug2f("Imported node: %s", node)

	if node.importID != "" {
		if _, ok := p.importIDs[node.importID]; ok {
			return errors.Newf(class.ImportDuplicateID, "import id: '%s' already specified within import file", node.importID)
		}
		p.importIDs[node.importID] = ref
	}
	return nil
}

func decodeName(name qname.QName) qname.QName {
	return qname.New(name.Namespace, qname.DecodeISO9075(name.Local))
}
