package dictionary

import (
	"sync"

	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/log"
	"github.com/neuronlabs/viewimport/qname"
)

var logger = log.NewModuleLogger("dictionary")

// compile time check for the Service interface.
var _ Service = &Registry{}

// Registry is the in-memory, thread safe dictionary Service.
type Registry struct {
	namespaces *qname.Namespaces

	dataTypes    map[qname.QName]*DataTypeDefinition
	types        map[qname.QName]*TypeDefinition
	aspects      map[qname.QName]*AspectDefinition
	properties   map[qname.QName]*PropertyDefinition
	associations map[qname.QName]*AssociationDefinition

	lock sync.RWMutex
}

// NewRegistry creates new registry resolving the prefixes with the 'namespaces'.
// If the 'namespaces' is nil, the default namespaces are used.
func NewRegistry(namespaces *qname.Namespaces) *Registry {
	if namespaces == nil {
		namespaces = qname.DefaultNamespaces()
	}
	return &Registry{
		namespaces:   namespaces,
		dataTypes:    make(map[qname.QName]*DataTypeDefinition),
		types:        make(map[qname.QName]*TypeDefinition),
		aspects:      make(map[qname.QName]*AspectDefinition),
		properties:   make(map[qname.QName]*PropertyDefinition),
		associations: make(map[qname.QName]*AssociationDefinition),
	}
}

// NewDefaultRegistry creates the registry with the built in models registered.
func NewDefaultRegistry() (*Registry, error) {
	models, err := DefaultModels()
	if err != nil {
		return nil, err
	}
	r := NewRegistry(nil)
	if err = r.RegisterModels(models...); err != nil {
		return nil, err
	}
	return r, nil
}

// Namespaces implements Service.
func (r *Registry) Namespaces() qname.NamespaceResolver {
	return r.namespaces
}

// Type implements Service.
func (r *Registry) Type(name qname.QName) *TypeDefinition {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.types[name]
}

// Aspect implements Service.
func (r *Registry) Aspect(name qname.QName) *AspectDefinition {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.aspects[name]
}

// Property implements Service.
func (r *Registry) Property(name qname.QName) *PropertyDefinition {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.properties[name]
}

// Association implements Service.
func (r *Registry) Association(name qname.QName) *AssociationDefinition {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.associations[name]
}

// DataType implements Service.
func (r *Registry) DataType(name qname.QName) *DataTypeDefinition {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.dataTypes[name]
}

// RegisterModels registers the 'models' definitions and checks that all the names
// referenced by the registry are defined.
func (r *Registry) RegisterModels(models ...*Model) error {
	for _, m := range models {
		for _, ns := range m.Namespaces {
			r.namespaces.Register(ns.Prefix, ns.URI)
		}
	}
	for _, m := range models {
		if err := r.registerModel(m); err != nil {
			return err
		}
		logger.Debugf("Registered model: '%s'", m.Name)
	}
	return r.Verify()
}

// RegisterDataType registers the data type definition.
func (r *Registry) RegisterDataType(def *DataTypeDefinition) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.dataTypes[def.Name]; ok {
		return errors.Newf(class.DictionaryModelDuplicated, "data type: '%s' already registered", def.Name)
	}
	r.dataTypes[def.Name] = def
	return nil
}

// RegisterType registers the type definition together with its properties and associations.
func (r *Registry) RegisterType(def *TypeDefinition) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.isClassRegistered(def.Name) {
		return errors.Newf(class.DictionaryModelDuplicated, "class: '%s' already registered", def.Name)
	}
	if err := r.registerMembers(&def.ClassDefinition); err != nil {
		return err
	}
	r.types[def.Name] = def
	return nil
}

// RegisterAspect registers the aspect definition together with its properties and associations.
func (r *Registry) RegisterAspect(def *AspectDefinition) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.isClassRegistered(def.Name) {
		return errors.Newf(class.DictionaryModelDuplicated, "class: '%s' already registered", def.Name)
	}
	if err := r.registerMembers(&def.ClassDefinition); err != nil {
		return err
	}
	r.aspects[def.Name] = def
	return nil
}

// Verify checks if all the parents, default aspects, data types and association targets are defined.
func (r *Registry) Verify() error {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var multi errors.MultiError
	verifyClass := func(c *ClassDefinition) {
		if !c.Parent.IsZero() && !r.isClassRegistered(c.Parent) {
			multi = append(multi, errors.Newf(class.DictionaryModelUnresolved, "class: '%s' parent: '%s' not defined", c.Name, c.Parent))
		}
		for _, aspect := range c.DefaultAspects {
			if _, ok := r.aspects[aspect]; !ok {
				multi = append(multi, errors.Newf(class.DictionaryModelUnresolved, "class: '%s' default aspect: '%s' not defined", c.Name, aspect))
			}
		}
		for _, prop := range c.Properties {
			if _, ok := r.dataTypes[prop.DataType]; !ok {
				multi = append(multi, errors.Newf(class.DictionaryModelUnresolved, "property: '%s' data type: '%s' not defined", prop.Name, prop.DataType))
			}
		}
		for _, assoc := range c.Associations {
			if !r.isClassRegistered(assoc.Target) {
				multi = append(multi, errors.Newf(class.DictionaryModelUnresolved, "association: '%s' target: '%s' not defined", assoc.Name, assoc.Target))
			}
		}
	}
	for _, t := range r.types {
		verifyClass(&t.ClassDefinition)
	}
	for _, a := range r.aspects {
		verifyClass(&a.ClassDefinition)
	}
	return multi.ErrorOrNil()
}

func (r *Registry) registerModel(m *Model) error {
	for _, dt := range m.DataTypes {
		name, err := r.parse(m, dt.Name)
		if err != nil {
			return err
		}
		if err = r.RegisterDataType(&DataTypeDefinition{Name: name, Description: dt.Description}); err != nil {
			return err
		}
	}
	for _, cm := range m.Types {
		c, err := r.classDefinition(m, cm)
		if err != nil {
			return err
		}
		if err = r.RegisterType(&TypeDefinition{ClassDefinition: c}); err != nil {
			return err
		}
	}
	for _, cm := range m.Aspects {
		c, err := r.classDefinition(m, cm)
		if err != nil {
			return err
		}
		if err = r.RegisterAspect(&AspectDefinition{ClassDefinition: c}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) classDefinition(m *Model, cm ClassModel) (ClassDefinition, error) {
	name, err := r.parse(m, cm.Name)
	if err != nil {
		return ClassDefinition{}, err
	}
	c := newClassDefinition(name)
	if cm.Parent != "" {
		if c.Parent, err = r.parse(m, cm.Parent); err != nil {
			return c, err
		}
	}
	for _, aspect := range cm.DefaultAspects {
		aspectName, err := r.parse(m, aspect)
		if err != nil {
			return c, err
		}
		c.DefaultAspects = append(c.DefaultAspects, aspectName)
	}
	for _, pm := range cm.Properties {
		prop := &PropertyDefinition{Container: name, Multiple: pm.Multiple, Mandatory: pm.Mandatory}
		if prop.Name, err = r.parse(m, pm.Name); err != nil {
			return c, err
		}
		if prop.DataType, err = r.parse(m, pm.Type); err != nil {
			return c, err
		}
		c.Properties[prop.Name] = prop
	}
	for _, am := range cm.Associations {
		assoc := &AssociationDefinition{Source: name, Child: am.Child}
		if assoc.Name, err = r.parse(m, am.Name); err != nil {
			return c, err
		}
		if assoc.Target, err = r.parse(m, am.Target); err != nil {
			return c, err
		}
		c.Associations[assoc.Name] = assoc
	}
	return c, nil
}

func (r *Registry) parse(m *Model, name string) (qname.QName, error) {
	q, err := qname.Parse(name, r.namespaces)
	if err != nil {
		return q, errors.Wrapf(err, class.DictionaryModelInvalid, "model: '%s' invalid name: '%s'", m.Name, name)
	}
	return q, nil
}

func (r *Registry) registerMembers(c *ClassDefinition) error {
	for name, prop := range c.Properties {
		if prop.Container.IsZero() {
			prop.Container = c.Name
		}
		if existing, ok := r.properties[name]; ok && existing.Container != c.Name {
			return errors.Newf(class.DictionaryModelDuplicated, "property: '%s' already defined by: '%s'", name, existing.Container)
		}
	}
	for name, assoc := range c.Associations {
		if assoc.Source.IsZero() {
			assoc.Source = c.Name
		}
		if existing, ok := r.associations[name]; ok && existing.Source != c.Name {
			return errors.Newf(class.DictionaryModelDuplicated, "association: '%s' already defined by: '%s'", name, existing.Source)
		}
	}
	for name, prop := range c.Properties {
		r.properties[name] = prop
	}
	for name, assoc := range c.Associations {
		r.associations[name] = assoc
	}
	return nil
}

func (r *Registry) isClassRegistered(name qname.QName) bool {
	if _, ok := r.types[name]; ok {
		return true
	}
	_, ok := r.aspects[name]
	return ok
}
