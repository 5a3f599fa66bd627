package view

import (
	"strings"

	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

// processACL reads the 'inherit' attribute of the 'acl' element.
func (p *parser) processACL(ev *event, node *nodeContext) error {
	inherit, err := boolAttr(ev, inheritAttr, true)
	if err != nil {
		return err
	}
	if !inherit {
		node.inherit = false
	}
	return nil
}

// processAccessControlEntry reads the 'ace' element with its 'authority' and
// 'permission' elements and appends the entry to the node.
func (p *parser) processAccessControlEntry(ev *event, node *nodeContext) error {
	status := repository.Allowed
	if access, ok := ev.attr(accessAttr); ok {
		var err error
		if status, err = repository.ParseAccessStatus(access); err != nil {
			return newError(ev, class.ImportMalformedValue, "permission access status: '%s' is not recognised", access).withToken(access)
		}
	}

	var authority, permission string
	for {
		next, err := p.src.nextElement()
		if err != nil {
			return err
		}
		if next.kind == endEvent {
			break
		}
		if next.kind != startEvent {
			return newError(next, class.ImportInvalidNesting, "unexpected %s within: '%s'", next.kind, qname.ViewACE)
		}

		name, err := p.elementName(next)
		if err != nil {
			return err
		}
		var target *string
		switch name {
		case qname.ViewAuthority:
			target = &authority
		case qname.ViewPermission:
			target = &permission
		default:
			return newError(next, class.ImportInvalidNesting, "expected start element: '%s' or '%s'", qname.ViewAuthority, qname.ViewPermission)
		}
		if *target != "" {
			return newError(next, class.ImportMalformedValue, "element: '%s' is already defined for the access control entry", name)
		}
		if *target, err = p.readEntryField(next, name); err != nil {
			return err
		}
	}

	if authority == "" {
		return newError(ev, class.ImportMissingRequiredField, "authority must be specified")
	}
	if permission == "" {
		return newError(ev, class.ImportMissingRequiredField, "permission must be specified")
	}
	node.addAccessControlEntry(repository.NewAccessControlEntry(status, authority, permission, p.options.ConsumerPermission))
	return nil
}

// readEntryField reads the non empty text of the entry field and checks its end tag.
func (p *parser) readEntryField(start *event, name qname.QName) (string, error) {
	next, err := p.src.next()
	if err != nil {
		return "", err
	}
	if next.kind != textEvent || strings.TrimSpace(next.text) == "" {
		return "", newError(start, class.ImportMissingRequiredField, "element: '%s' must have a value", name)
	}
	text := strings.TrimSpace(next.text)

	if next, err = p.src.next(); err != nil {
		return "", err
	}
	if next.kind != endEvent || next.name != name {
		return "", newError(next, class.ImportMalformedValue, "expected end element: '%s'", name)
	}
	return text, nil
}
