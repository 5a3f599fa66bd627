package view

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

// processProperty reads the property value. The value is either the plain text,
// the list of the 'value' elements, the 'values' collection or the list of
// the multilingual 'mlvalue' elements.
func (p *parser) processProperty(node *nodeContext, property qname.QName) error {
	next, err := p.src.next()
	if err != nil {
		return err
	}
	text := ""
	if next.kind == textEvent {
		text = next.text
		if next, err = p.src.next(); err != nil {
			return err
		}
	}

	switch next.kind {
	case endEvent:
		if err = p.addProperty(node, property, repository.Scalar(text)); err != nil {
			return positioned(err, next)
		}
		logger.Debug3f("%*sProcessed property %s", p.stack.len(), "", property)
		return nil
	case startEvent:
	default:
		return newError(next, class.ImportMalformedValue, "invalid view structure - property: '%s' definition is invalid", property)
	}
	if strings.TrimSpace(text) != "" {
		return newError(next, class.ImportInvalidNesting, "property: '%s' can't mix the text with the elements", property)
	}

	name, err := p.elementName(next)
	if err != nil {
		return err
	}
	switch name {
	case qname.ViewValues:
		err = p.processValues(node, property)
	case qname.ViewMLValue:
		err = p.processMLValues(node, property, next)
	case qname.ViewValue:
		err = p.processValueList(node, property, next)
	default:
		err = newError(next, class.ImportMalformedValue, "invalid view structure - expected element: '%s' for property: '%s'", qname.ViewValue, property)
	}
	if err != nil {
		return err
	}
	logger.Debug3f("%*sProcessed property %s", p.stack.len(), "", property)
	return nil
}

// processValues reads the 'values' collection. The property is the collection
// even if it contains less than two values.
func (p *parser) processValues(node *nodeContext, property qname.QName) error {
	node.addPropertyCollection(p.dictionary, p.importer, property)

	next, err := p.src.nextElement()
	if err != nil {
		return err
	}
	// the list ends with the end of the 'values' element.
	if err = p.processValueList(node, property, next); err != nil {
		return err
	}
	if next, err = p.src.nextElement(); err != nil {
		return err
	}
	if next.kind != endEvent {
		return newError(next, class.ImportMalformedValue, "invalid view structure - property: '%s' definition is invalid", property)
	}
	return nil
}

// processValueList reads the 'value' elements starting at the 'first' event up
// to the end of the enclosing element.
func (p *parser) processValueList(node *nodeContext, property qname.QName, first *event) error {
	for ev := first; ev.kind != endEvent; {
		if ev.kind != startEvent {
			return newError(ev, class.ImportInvalidNesting, "unexpected %s within property: '%s'", ev.kind, property)
		}
		name, err := p.elementName(ev)
		if err != nil {
			return err
		}
		if name != qname.ViewValue {
			return newError(ev, class.ImportMalformedValue, "invalid view structure - expected element: '%s' for property: '%s'", qname.ViewValue, property)
		}
		if err = p.processValue(node, property, ev); err != nil {
			return err
		}
		if ev, err = p.src.nextElement(); err != nil {
			return err
		}
	}
	return nil
}

// processValue reads single decorated 'value' element.
func (p *parser) processValue(node *nodeContext, property qname.QName, ev *event) error {
	dataType, err := p.dataType(ev)
	if err != nil {
		return err
	}
	isNull, err := boolAttr(ev, isNullAttr, false)
	if err != nil {
		return err
	}

	text, err := p.readText(property)
	if err != nil {
		return err
	}
	value := repository.Scalar(text)
	if isNull {
		value = repository.Null()
	}
	if err = p.addProperty(node, property, value); err != nil {
		return positioned(err, ev)
	}
	if !dataType.IsZero() {
		node.addDataType(property, dataType)
	}
	return nil
}

// processMLValues reads the multilingual 'mlvalue' elements starting at the 'first' event.
func (p *parser) processMLValues(node *nodeContext, property qname.QName, first *event) error {
	var text repository.MLText
	for ev := first; ev.kind != endEvent; {
		if ev.kind != startEvent {
			return newError(ev, class.ImportInvalidNesting, "unexpected %s within property: '%s'", ev.kind, property)
		}
		name, err := p.elementName(ev)
		if err != nil {
			return err
		}
		if name != qname.ViewMLValue {
			return newError(ev, class.ImportMalformedValue, "invalid view structure - expected element: '%s' for property: '%s'", qname.ViewMLValue, property)
		}
		locale, err := parseLocale(ev)
		if err != nil {
			return err
		}
		isNull, err := boolAttr(ev, isNullAttr, false)
		if err != nil {
			return err
		}
		value, err := p.readText(property)
		if err != nil {
			return err
		}
		if !isNull {
			text = text.With(locale, value)
		}
		if ev, err = p.src.nextElement(); err != nil {
			return err
		}
	}

	node.addDataType(property, qname.DataTypeMLText)
	if err := p.addProperty(node, property, repository.ML(text)); err != nil {
		return positioned(err, first)
	}
	return nil
}

// readText reads the optional text of the value element and its end tag.
func (p *parser) readText(property qname.QName) (string, error) {
	next, err := p.src.next()
	if err != nil {
		return "", err
	}
	text := ""
	if next.kind == textEvent {
		text = next.text
		if next, err = p.src.next(); err != nil {
			return "", err
		}
	}
	if next.kind != endEvent {
		return "", newError(next, class.ImportMalformedValue,
			"value for property: '%s' has not been defined correctly - missing end tag", property)
	}
	return text, nil
}

func (p *parser) addProperty(node *nodeContext, property qname.QName, value repository.Value) error {
	return node.addProperty(p.dictionary, p.importer, property, value, p.options.StrictPropertyValues)
}

// dataType gets the explicit data type of the value.
func (p *parser) dataType(ev *event) (qname.QName, error) {
	literal, ok := ev.attr(dataTypeAttr)
	if !ok || literal == "" {
		return qname.QName{}, nil
	}
	name, err := qname.Parse(literal, p.dictionary.Namespaces())
	if err != nil {
		return qname.QName{}, positioned(err, ev)
	}
	if p.dictionary.DataType(name) == nil {
		return qname.QName{}, newError(ev, class.ImportUnresolvedDefinition, "data type: '%s' is not defined", literal).withToken(literal)
	}
	return name, nil
}

// parseLocale parses the 'locale' attribute. Both 'en-GB' and 'en_GB' forms are accepted.
func parseLocale(ev *event) (language.Tag, error) {
	literal, ok := ev.attr(localeAttr)
	if !ok || literal == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(strings.ReplaceAll(literal, "_", "-"))
	if err != nil {
		return language.Und, positioned(errors.Wrapf(err, class.ImportMalformedValue, "invalid locale: '%s'", literal), ev)
	}
	return tag, nil
}
