package view

import (
	"io"
	"strings"

	"github.com/neuronlabs/viewimport/config"
	"github.com/neuronlabs/viewimport/dictionary"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/importer"
	"github.com/neuronlabs/viewimport/log"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

var logger = log.NewModuleLogger("view")

// View document attribute local names.
const (
	childNameAttr = "childName"
	idAttr        = "id"
	idRefAttr     = "idref"
	pathRefAttr   = "pathref"
	nodeRefAttr   = "noderef"
	inheritAttr   = "inherit"
	accessAttr    = "access"
	dataTypeAttr  = "datatype"
	isNullAttr    = "isNull"
	localeAttr    = "locale"
)

// Options is the structure that contains the Parser options.
type Options struct {
	// StrictPropertyValues rejects the second value of the property not declared
	// with the 'values' element, instead of turning it into the collection.
	StrictPropertyValues bool
	// ConsumerPermission replaces the 'guest' permission of the access control entries.
	ConsumerPermission string
}

func defaultOptions() *Options {
	return &Options{ConsumerPermission: repository.DefaultConsumerPermission}
}

// Option is the function that sets the options for the Parser.
type Option func(o *Options)

// WithStrictPropertyValues sets the strict property values option.
func WithStrictPropertyValues(strict bool) Option {
	return func(o *Options) {
		o.StrictPropertyValues = strict
	}
}

// WithConsumerPermission sets the permission replacing the 'guest' permission.
func WithConsumerPermission(permission string) Option {
	return func(o *Options) {
		o.ConsumerPermission = permission
	}
}

// ConfigOptions creates the parser options for the importer configuration.
func ConfigOptions(cfg *config.Importer) []Option {
	if cfg == nil {
		return nil
	}
	options := []Option{WithStrictPropertyValues(cfg.StrictPropertyValues)}
	if cfg.ConsumerPermission != "" {
		options = append(options, WithConsumerPermission(cfg.ConsumerPermission))
	}
	return options
}

// Parser parses the view documents resolving their names with the dictionary.
// The Parser could be used for many documents, each Parse call owns its own state.
type Parser struct {
	dictionary dictionary.Service
	options    *Options
}

// NewParser creates new view parser.
func NewParser(svc dictionary.Service, options ...Option) *Parser {
	o := defaultOptions()
	for _, option := range options {
		option(o)
	}
	return &Parser{dictionary: svc, options: o}
}

// Parse parses the view document read from 'r' and drives the 'imp' with the
// parsed nodes. Any failure aborts the import and is returned as the *Error.
func (p *Parser) Parse(r io.Reader, imp importer.Importer) error {
	state := &parser{
		Parser:    p,
		importer:  imp,
		src:       newSource(r),
		importIDs: map[string]repository.NodeRef{},
	}
	if resolver, ok := imp.(importer.ReferenceResolver); ok {
		state.resolver = resolver
	}
	if err := state.run(); err != nil {
		logger.Debugf("Failed to import view: %v", err)
		return err
	}
	return nil
}

// parser is the state of single document parse.
type parser struct {
	*Parser
	importer importer.Importer
	resolver importer.ReferenceResolver

	src        *source
	stack      contextStack
	importIDs  map[string]repository.NodeRef
	rootClosed bool
}

func (p *parser) run() error {
	for {
		ev, err := p.src.next()
		if err != nil {
			return err
		}
		if err = p.process(ev); err != nil {
			return positioned(err, p.src.last)
		}
		if ev.kind == endOfDocument {
			return nil
		}
	}
}

func (p *parser) process(ev *event) error {
	switch ev.kind {
	case startEvent:
		if p.rootClosed {
			return newError(ev, class.ImportMalformedValue, "document has more than one root element")
		}
		if p.stack.len() == 0 {
			return p.processRoot(ev)
		}
		return p.processStartElement(ev)
	case endEvent:
		return p.processEndElement(ev)
	case textEvent:
		if ev.isWhitespace() {
			return nil
		}
		text := strings.TrimSpace(ev.text)
		return newError(ev, class.ImportInvalidNesting, "unexpected text: '%s'", text).withToken(text)
	}

	if !p.rootClosed {
		return newError(ev, class.ImportMalformedValue, "unexpected end of document")
	}
	return nil
}

// elementName gets the qualified name of the element. The element namespace must be registered.
func (p *parser) elementName(ev *event) (qname.QName, error) {
	if !p.dictionary.Namespaces().IsRegistered(ev.name.Namespace) {
		return qname.QName{}, newError(ev, class.ImportNamespaceNotRegistered,
			"namespace URI: '%s' has not been defined in the dictionary", ev.name.Namespace).withToken(ev.name.Namespace)
	}
	return ev.name, nil
}

// boolAttr gets the boolean attribute value or the 'defaultValue' if the attribute is not set.
func boolAttr(ev *event, local string, defaultValue bool) (bool, error) {
	value, ok := ev.attr(local)
	if !ok {
		return defaultValue, nil
	}
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, newError(ev, class.ImportMalformedValue, "attribute: '%s' is not a valid boolean: '%s'", local, value).withToken(value)
}
