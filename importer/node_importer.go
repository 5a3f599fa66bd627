package importer

import (
	"context"
	"sort"
	"strings"

	"github.com/neuronlabs/viewimport/config"
	"github.com/neuronlabs/viewimport/dictionary"
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/log"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

var logger = log.NewModuleLogger("importer")

// compile time check for the interfaces.
var (
	_ Importer          = &NodeImporter{}
	_ ReferenceResolver = &NodeImporter{}
)

type strategyFunc func(node ImportNode) (repository.NodeRef, error)

// NodeImporter is the Importer that materialises the nodes in the repository.Store.
// The context provided on creation is used for all the store operations.
type NodeImporter struct {
	ctx        context.Context
	store      repository.Store
	dictionary dictionary.Service
	options    *Options
	storeRoot  repository.NodeRef
	excluded   map[qname.QName]struct{}
	strategy   strategyFunc
}

// New creates new NodeImporter that imports into the 'store'.
func New(ctx context.Context, store repository.Store, svc dictionary.Service, options ...Option) (*NodeImporter, error) {
	o := defaultOptions()
	for _, option := range options {
		option(o)
	}
	root, err := store.Root(ctx)
	if err != nil {
		return nil, err
	}
	if o.RootRef.IsZero() {
		o.RootRef = root
	} else if exists, err := store.Exists(ctx, o.RootRef); err != nil {
		return nil, err
	} else if !exists {
		return nil, errors.Newf(class.RepositoryNodeNotFound, "import location: '%s' doesn't exist", o.RootRef)
	}

	n := &NodeImporter{
		ctx:        ctx,
		store:      store,
		dictionary: svc,
		options:    o,
		storeRoot:  root,
		excluded:   map[qname.QName]struct{}{},
	}
	for _, name := range o.ExcludedClasses {
		n.excluded[name] = struct{}{}
	}

	switch o.UUIDBinding {
	case config.UUIDCreateNew:
		n.strategy = n.createNewStrategy(true)
	case config.UUIDRemoveExisting:
		n.strategy = n.removeExisting
	case config.UUIDReplaceExisting:
		n.strategy = n.replaceExisting
	case config.UUIDUpdateExisting:
		n.strategy = n.updateExisting
	case config.UUIDThrowOnCollision:
		n.strategy = n.throwOnCollision
	default:
		return nil, errors.Newf(class.ConfigValueInvalid, "unknown uuid binding: '%s'", o.UUIDBinding)
	}
	return n, nil
}

// RootRef implements Importer.
func (n *NodeImporter) RootRef() repository.NodeRef {
	return n.options.RootRef
}

// RootAssociation implements Importer.
func (n *NodeImporter) RootAssociation() qname.QName {
	return n.options.RootAssociation
}

// IsExcludedClass implements Importer.
func (n *NodeImporter) IsExcludedClass(name qname.QName) bool {
	_, ok := n.excluded[name]
	return ok
}

// ImportNode implements Importer.
func (n *NodeImporter) ImportNode(node ImportNode) (repository.NodeRef, error) {
	if node.Reference {
		return n.linkNode(node)
	}
	ref, err := n.strategy(node)
	if err != nil {
		return repository.NodeRef{}, err
	}
	if err = n.applyAspects(ref, node); err != nil {
		return repository.NodeRef{}, err
	}
	return ref, nil
}

// ChildrenImported implements Importer.
func (n *NodeImporter) ChildrenImported(ref repository.NodeRef) error {
	logger.Debug2f("Children of: '%s' imported", ref)
	return nil
}

// ImportMetaData implements Importer. A complete repository export may only be
// imported into the store root.
func (n *NodeImporter) ImportMetaData(meta map[qname.QName]string) error {
	if exportOf, ok := meta[qname.ViewExportOf]; ok && strings.TrimSpace(exportOf) == "/" {
		if n.options.RootRef != n.storeRoot {
			return errors.Newf(class.RepositoryNodeRootImport,
				"complete repository package can't be imported into: '%s', only into the store root", n.options.RootRef)
		}
	}
	if n.options.Progress != nil {
		n.options.Progress.MetaDataImported(meta)
	}
	return nil
}

// ResolvePath implements ReferenceResolver. The path segments are the child
// association names i.e. '/cm:company_home/cm:guest'. An absolute path starts at
// the store root, a relative one at the import location.
func (n *NodeImporter) ResolvePath(path string) (repository.NodeRef, error) {
	current := n.options.RootRef
	if strings.HasPrefix(path, "/") {
		current = n.storeRoot
	}
	for _, segment := range strings.Split(path, "/") {
		switch segment {
		case "", ".":
			continue
		case "..":
			node, err := n.store.GetNode(n.ctx, current)
			if err != nil {
				return repository.NodeRef{}, err
			}
			if node.Parent.Parent.IsZero() {
				return repository.NodeRef{}, errors.Newf(class.ImportReferenceNotFound, "path: '%s' leads above the store root", path)
			}
			current = node.Parent.Parent
			continue
		}

		name, err := qname.Parse(segment, n.dictionary.Namespaces())
		if err != nil {
			return repository.NodeRef{}, err
		}
		next, err := n.child(current, name)
		if err != nil {
			return repository.NodeRef{}, err
		}
		if next.IsZero() {
			return repository.NodeRef{}, errors.Newf(class.ImportReferenceNotFound, "cannot find node referenced by path: '%s'", path)
		}
		current = next
	}
	return current, nil
}

// Describe implements ReferenceResolver.
func (n *NodeImporter) Describe(ref repository.NodeRef) (qname.QName, []qname.QName, error) {
	node, err := n.store.GetNode(n.ctx, ref)
	if err != nil {
		if errors.IsClass(err, class.RepositoryNodeNotFound) {
			return qname.QName{}, nil, errors.Wrapf(err, class.ImportReferenceNotFound, "cannot find referenced node: '%s'", ref)
		}
		return qname.QName{}, nil, err
	}
	return node.Type, node.Aspects, nil
}

func (n *NodeImporter) child(parent repository.NodeRef, name qname.QName) (repository.NodeRef, error) {
	assocs, err := n.store.Children(n.ctx, parent)
	if err != nil {
		return repository.NodeRef{}, err
	}
	for _, assoc := range assocs {
		if assoc.Name == name {
			return assoc.Child, nil
		}
	}
	return repository.NodeRef{}, nil
}

func (n *NodeImporter) createNewStrategy(assignNewUUID bool) strategyFunc {
	return func(node ImportNode) (repository.NodeRef, error) {
		return n.createNode(node, assignNewUUID)
	}
}

func (n *NodeImporter) createNode(node ImportNode, assignNewUUID bool) (repository.NodeRef, error) {
	assocType, err := n.associationType(node)
	if err != nil {
		return repository.NodeRef{}, err
	}
	childName, err := n.childName(node, assocType)
	if err != nil {
		return repository.NodeRef{}, err
	}

	props := n.bindProperties(node)
	def := repository.NodeDefinition{
		Parent:          node.Parent,
		AssociationType: assocType,
		ChildName:       childName,
		Type:            node.TypeName(),
		Properties:      props,
	}
	if !assignNewUUID && node.UUID != "" {
		def.ID = node.UUID
		props[qname.PropNodeUUID] = repository.Scalar(node.UUID)
	} else {
		delete(props, qname.PropNodeUUID)
	}

	ref, err := n.store.CreateNode(n.ctx, def)
	if err != nil {
		return repository.NodeRef{}, err
	}
	logger.Debugf("Created node: '%s' of type: '%s' as: '%s'", ref, def.Type, childName)
	if n.options.Progress != nil {
		n.options.Progress.NodeCreated(repository.ChildAssociation{
			Parent:  node.Parent,
			Type:    assocType,
			Name:    childName,
			Child:   ref,
			Primary: true,
		})
		n.options.Progress.PropertiesSet(ref, props)
	}

	// the inheritance is applied after the entries as it may affect setting them.
	if err = n.setPermissions(ref, node.ACL); err != nil {
		return repository.NodeRef{}, err
	}
	if !node.InheritPermissions {
		if err = n.store.SetInheritPermissions(n.ctx, ref, false); err != nil {
			return repository.NodeRef{}, err
		}
	}
	return ref, nil
}

func (n *NodeImporter) removeExisting(node ImportNode) (repository.NodeRef, error) {
	existing, err := n.existing(node)
	if err != nil {
		return repository.NodeRef{}, err
	}
	if !existing.IsZero() {
		logger.Debugf("Removing existing node: '%s'", existing)
		if err = n.store.DeleteNode(n.ctx, existing); err != nil {
			return repository.NodeRef{}, err
		}
	}
	return n.createNode(node, false)
}

func (n *NodeImporter) replaceExisting(node ImportNode) (repository.NodeRef, error) {
	existing, err := n.existing(node)
	if err != nil {
		return repository.NodeRef{}, err
	}
	if !existing.IsZero() {
		current, err := n.store.GetNode(n.ctx, existing)
		if err != nil {
			return repository.NodeRef{}, err
		}
		logger.Debugf("Replacing existing node: '%s'", existing)
		if err = n.store.DeleteNode(n.ctx, existing); err != nil {
			return repository.NodeRef{}, err
		}
		// the replacement takes the location of the removed node.
		node.Parent = current.Parent.Parent
		node.AssociationType = current.Parent.Type
	}
	return n.createNode(node, false)
}

func (n *NodeImporter) throwOnCollision(node ImportNode) (repository.NodeRef, error) {
	existing, err := n.existing(node)
	if err != nil {
		return repository.NodeRef{}, err
	}
	if !existing.IsZero() {
		return repository.NodeRef{}, errors.Newf(class.RepositoryNodeExists, "node: '%s' already exists", existing)
	}
	return n.createNode(node, false)
}

func (n *NodeImporter) updateExisting(node ImportNode) (repository.NodeRef, error) {
	existing, err := n.existing(node)
	if err != nil {
		return repository.NodeRef{}, err
	}
	if existing.IsZero() {
		return n.createNode(node, false)
	}
	if err = n.updateNode(existing, node); err != nil {
		return repository.NodeRef{}, err
	}
	return existing, nil
}

// updateNode merges the node properties into the existing node and applies its permissions.
func (n *NodeImporter) updateNode(ref repository.NodeRef, node ImportNode) error {
	props := n.bindProperties(node)
	delete(props, qname.PropNodeUUID)
	if len(props) > 0 {
		if err := n.store.SetProperties(n.ctx, ref, props); err != nil {
			return err
		}
	}
	if n.options.Progress != nil {
		n.options.Progress.PropertiesSet(ref, props)
	}
	if !node.InheritPermissions {
		if err := n.store.SetInheritPermissions(n.ctx, ref, false); err != nil {
			return err
		}
	}
	return n.setPermissions(ref, node.ACL)
}

// linkNode links the referenced node as the secondary child of the node's parent.
func (n *NodeImporter) linkNode(node ImportNode) (repository.NodeRef, error) {
	if node.UUID == "" {
		return repository.NodeRef{}, errors.New(class.ImportReferenceNotFound, "reference node has no unique id")
	}
	child := repository.NodeRef{Store: node.Parent.Store, ID: node.UUID}
	exists, err := n.store.Exists(n.ctx, child)
	if err != nil {
		return repository.NodeRef{}, err
	}
	if !exists {
		return repository.NodeRef{}, errors.Newf(class.ImportReferenceNotFound, "referenced node: '%s' doesn't exist", child)
	}

	if node.Parent != n.options.RootRef {
		assocType, err := n.associationType(node)
		if err != nil {
			return repository.NodeRef{}, err
		}
		childName, err := n.referenceChildName(child, node, assocType)
		if err != nil {
			return repository.NodeRef{}, err
		}
		assoc := repository.ChildAssociation{Parent: node.Parent, Type: assocType, Name: childName, Child: child}
		if err = n.store.AddChild(n.ctx, assoc); err != nil {
			return repository.NodeRef{}, err
		}
		logger.Debugf("Linked node: '%s' to: '%s' as: '%s'", child, node.Parent, childName)
		if n.options.Progress != nil {
			n.options.Progress.NodeLinked(assoc)
		}
	}

	if err = n.updateNode(child, node); err != nil {
		return repository.NodeRef{}, err
	}
	return child, nil
}

func (n *NodeImporter) referenceChildName(child repository.NodeRef, node ImportNode, assocType qname.QName) (qname.QName, error) {
	if _, ok := node.Properties[qname.PropName]; ok || node.ChildName != "" {
		return n.childName(node, assocType)
	}
	existing, err := n.store.GetNode(n.ctx, child)
	if err != nil {
		return qname.QName{}, err
	}
	named := node
	named.Properties = map[qname.QName]repository.Value{}
	if name, ok := existing.Properties[qname.PropName]; ok {
		named.Properties[qname.PropName] = name
	}
	return n.childName(named, assocType)
}

func (n *NodeImporter) applyAspects(ref repository.NodeRef, node ImportNode) error {
	current, err := n.store.GetNode(n.ctx, ref)
	if err != nil {
		return err
	}
	for _, aspect := range n.nodeAspects(node) {
		if current.HasAspect(aspect) {
			continue
		}
		if err = n.store.AddAspect(n.ctx, ref, aspect); err != nil {
			return err
		}
		if n.options.Progress != nil {
			n.options.Progress.AspectAdded(ref, aspect)
		}
	}
	return nil
}

// nodeAspects gets the node aspects in the document order followed by the
// remaining default aspects of its type sorted by name. The excluded default
// aspects are skipped.
func (n *NodeImporter) nodeAspects(node ImportNode) []qname.QName {
	aspects := append([]qname.QName{}, node.Aspects...)
	var defaults []qname.QName
	for aspect := range dictionary.EffectiveAspects(n.dictionary, node.TypeName(), node.Aspects) {
		if !node.HasAspect(aspect) && !n.IsExcludedClass(aspect) {
			defaults = append(defaults, aspect)
		}
	}
	sort.Slice(defaults, func(i, j int) bool {
		return defaults[i].String() < defaults[j].String()
	})
	return append(aspects, defaults...)
}

func (n *NodeImporter) setPermissions(ref repository.NodeRef, acl []repository.AccessControlEntry) error {
	for _, ace := range acl {
		if err := n.store.SetPermission(n.ctx, ref, ace); err != nil {
			return err
		}
	}
	if n.options.Progress != nil && len(acl) > 0 {
		n.options.Progress.PermissionsSet(ref, acl)
	}
	return nil
}

// bindProperties gets the properties to store. The content properties are not imported.
func (n *NodeImporter) bindProperties(node ImportNode) map[qname.QName]repository.Value {
	props := make(map[qname.QName]repository.Value, len(node.Properties))
	for name, value := range node.Properties {
		dataType, ok := node.DataTypes[name]
		if !ok {
			if def := n.dictionary.Property(name); def != nil {
				dataType = def.DataType
			}
		}
		if dataType == qname.DataTypeContent {
			continue
		}
		props[name] = value
	}
	return props
}

func (n *NodeImporter) existing(node ImportNode) (repository.NodeRef, error) {
	if node.UUID == "" {
		return repository.NodeRef{}, nil
	}
	ref := repository.NodeRef{Store: n.options.RootRef.Store, ID: node.UUID}
	exists, err := n.store.Exists(n.ctx, ref)
	if err != nil || !exists {
		return repository.NodeRef{}, err
	}
	return ref, nil
}

// childName gets the explicit child name, or the one made of the 'cm:name'
// property in the association namespace.
func (n *NodeImporter) childName(node ImportNode, assocType qname.QName) (qname.QName, error) {
	if node.ChildName != "" {
		name, err := qname.Parse(node.ChildName, n.dictionary.Namespaces())
		if err != nil {
			return qname.QName{}, err
		}
		return qname.New(name.Namespace, qname.ValidLocalName(name.Local)), nil
	}
	if value, ok := node.Properties[qname.PropName]; ok && !value.Null && value.String() != "" {
		return qname.New(assocType.Namespace, qname.ValidLocalName(value.String())), nil
	}
	return qname.QName{}, errors.Newf(class.RepositoryNodeChildName, "cannot determine child name of node (type: '%s')", node.TypeName())
}

// associationType gets the explicit association type or derives it from the
// parent child associations whose target class is the closest to the node type
// or one of its aspects.
func (n *NodeImporter) associationType(node ImportNode) (qname.QName, error) {
	if !node.AssociationType.IsZero() {
		return node.AssociationType, nil
	}
	parent, err := n.store.GetNode(n.ctx, node.Parent)
	if err != nil {
		return qname.QName{}, err
	}

	targets := map[qname.QName]qname.QName{}
	for name := range dictionary.EffectiveAssociations(n.dictionary, parent.Type, parent.Aspects) {
		def := n.dictionary.Association(name)
		if def == nil || !def.Child {
			continue
		}
		if current, ok := targets[def.Target]; !ok || name.String() < current.String() {
			targets[def.Target] = name
		}
	}

	classes := append([]qname.QName{node.TypeName()}, node.Aspects...)
	var closest qname.QName
	closestHit := -1
	for _, name := range classes {
		for distance, ancestor := range dictionary.Ancestors(n.dictionary, name) {
			if assoc, ok := targets[ancestor]; ok {
				if closestHit == -1 || distance < closestHit {
					closest, closestHit = assoc, distance
				}
				break
			}
		}
	}
	if closest.IsZero() {
		return qname.QName{}, errors.Newf(class.RepositoryNodeAssociation,
			"cannot determine association type of node (type: '%s') in parent: '%s'", node.TypeName(), node.Parent)
	}
	return closest, nil
}

