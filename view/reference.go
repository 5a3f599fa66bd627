package view

import (
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

// processStartReference pushes the node context referencing the existing node.
// The node is pointed by exactly one of the 'idref', 'pathref' or 'noderef' attributes.
func (p *parser) processStartReference(ev *event, name qname.QName, parent elementContext) error {
	node := newNode(name, parent, nil)
	node.reference = true

	idRef, _ := ev.attr(idRefAttr)
	pathRef, _ := ev.attr(pathRefAttr)
	nodeRef, _ := ev.attr(nodeRefAttr)
	var count int
	for _, attr := range []string{idRef, pathRef, nodeRef} {
		if attr != "" {
			count++
		}
	}
	switch count {
	case 0:
		return newError(ev, class.ImportMissingRequiredField, "one of: '%s', '%s' or '%s' must be specified", idRefAttr, pathRefAttr, nodeRefAttr)
	case 1:
	default:
		return newError(ev, class.ImportMalformedValue, "only one of: '%s', '%s' or '%s' can be specified", idRefAttr, pathRefAttr, nodeRefAttr)
	}

	var target repository.NodeRef
	switch {
	case nodeRef != "":
		ref, err := repository.ParseNodeRef(nodeRef)
		if err != nil {
			return positioned(errors.Wrapf(err, class.ImportMalformedValue, "invalid node reference: '%s'", nodeRef), ev)
		}
		target = ref
	case idRef != "":
		ref, ok := p.importIDs[idRef]
		if !ok {
			return newError(ev, class.ImportReferenceNotFound, "cannot find node referenced by id: '%s'", idRef).withToken(idRef)
		}
		target = ref
	default:
		if p.resolver == nil {
			return newError(ev, class.ImportReferenceNotFound, "the importer can't resolve the path: '%s'", pathRef).withToken(pathRef)
		}
		ref, err := p.resolver.ResolvePath(pathRef)
		if err != nil {
			return positioned(err, ev)
		}
		target = ref
	}
	node.uuid = target.ID

	if p.resolver != nil {
		typeName, aspects, err := p.resolver.Describe(target)
		if err != nil {
			return positioned(err, ev)
		}
		node.typeDef = p.dictionary.Type(typeName)
		for _, aspect := range aspects {
			if p.dictionary.Aspect(aspect) != nil {
				node.addAspect(p.importer, aspect)
			}
		}
	}

	if childName, ok := ev.attr(childNameAttr); ok && childName != "" {
		node.childName = childName
	}
	if importID, ok := ev.attr(idAttr); ok && importID != "" {
		node.importID = importID
	}
	p.stack.push(newNodeContext(node))
	return nil
}
