package importer

import (
	"github.com/neuronlabs/viewimport/config"
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

// Options is the structure that contains the NodeImporter options.
type Options struct {
	// RootRef is the import location. The store root is used if not set.
	RootRef         repository.NodeRef
	RootAssociation qname.QName
	UUIDBinding     string
	ExcludedClasses []qname.QName
	Progress        Progress
}

func defaultOptions() *Options {
	return &Options{
		UUIDBinding: config.UUIDCreateNew,
	}
}

// Option is the function that sets the options for the NodeImporter.
type Option func(o *Options)

// WithRootRef sets the import location.
func WithRootRef(ref repository.NodeRef) Option {
	return func(o *Options) {
		o.RootRef = ref
	}
}

// WithRootAssociation sets the association type of the top level nodes.
func WithRootAssociation(assoc qname.QName) Option {
	return func(o *Options) {
		o.RootAssociation = assoc
	}
}

// WithUUIDBinding sets the UUID binding strategy. See the config.UUIDCreateNew and related constants.
func WithUUIDBinding(binding string) Option {
	return func(o *Options) {
		o.UUIDBinding = binding
	}
}

// WithExcludedClasses adds the types and aspects that are not imported.
func WithExcludedClasses(names ...qname.QName) Option {
	return func(o *Options) {
		o.ExcludedClasses = append(o.ExcludedClasses, names...)
	}
}

// WithProgress sets the import progress listener.
func WithProgress(p Progress) Option {
	return func(o *Options) {
		o.Progress = p
	}
}

// ConfigOptions creates the options for the importer configuration. The excluded
// class names are resolved with the 'resolver'.
func ConfigOptions(cfg *config.Importer, resolver qname.NamespaceResolver) ([]Option, error) {
	if cfg == nil {
		return nil, errors.New(class.ConfigValueNil, "no importer configuration provided")
	}
	var options []Option
	if cfg.UUIDBinding != "" {
		options = append(options, WithUUIDBinding(cfg.UUIDBinding))
	}
	for _, name := range cfg.ExcludedClasses {
		excluded, err := qname.Parse(name, resolver)
		if err != nil {
			return nil, errors.Wrapf(err, class.ConfigValueInvalid, "invalid excluded class: '%s'", name)
		}
		options = append(options, WithExcludedClasses(excluded))
	}
	return options, nil
}
