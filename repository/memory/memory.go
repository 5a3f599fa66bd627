// Package memory contains the in-memory repository.Store. It is the default
// store of the view importer and registers itself with the 'memory' driver name.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/neuronlabs/viewimport/config"
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/log"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

// DriverName is the driver name of the memory store factory.
const DriverName = "memory"

var logger = log.NewModuleLogger("memory")

func init() {
	if err := repository.RegisterFactory(&Factory{}); err != nil {
		log.Errorf("Registering memory factory failed: %v", err)
	}
}

// compile time check for the interfaces.
var (
	_ repository.Store   = &Store{}
	_ repository.Factory = &Factory{}
)

// Factory creates the memory stores.
type Factory struct{}

// DriverName implements repository.Factory.
func (f *Factory) DriverName() string {
	return DriverName
}

// New implements repository.Factory.
func (f *Factory) New(_ context.Context, cfg *config.Repository) (repository.Store, error) {
	ref, err := repository.ParseStoreRef(cfg.Store)
	if err != nil {
		return nil, err
	}
	return New(ref), nil
}

type node struct {
	typeName   qname.QName
	aspects    []qname.QName
	properties map[qname.QName]repository.Value
	parent     repository.ChildAssociation
	acl        []repository.AccessControlEntry
	inherit    bool
	seq        uint64
}

// Store is the in-memory, thread safe node store.
type Store struct {
	ref      repository.StoreRef
	root     string
	nodes    map[string]*node
	children map[string][]repository.ChildAssociation
	seq      uint64

	lock sync.RWMutex
}

// New creates the memory store with the root node of the 'sys:store_root' type.
func New(ref repository.StoreRef) *Store {
	s := &Store{
		ref:      ref,
		root:     uuid.New().String(),
		nodes:    map[string]*node{},
		children: map[string][]repository.ChildAssociation{},
	}
	s.nodes[s.root] = &node{
		typeName:   qname.New(qname.SystemModelURI, "store_root"),
		properties: map[qname.QName]repository.Value{},
		inherit:    true,
	}
	return s
}

// StoreRef implements repository.Store.
func (s *Store) StoreRef() repository.StoreRef {
	return s.ref
}

// Root implements repository.Store.
func (s *Store) Root(context.Context) (repository.NodeRef, error) {
	return s.nodeRef(s.root), nil
}

// CreateNode implements repository.Store.
func (s *Store) CreateNode(_ context.Context, def repository.NodeDefinition) (repository.NodeRef, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, err := s.get(def.Parent); err != nil {
		return repository.NodeRef{}, err
	}
	id := def.ID
	if id == "" {
		id = uuid.New().String()
	} else if _, exists := s.nodes[id]; exists {
		return repository.NodeRef{}, errors.Newf(class.RepositoryNodeExists, "node: '%s' already exists", id)
	}

	ref := s.nodeRef(id)
	assoc := repository.ChildAssociation{
		Parent:  def.Parent,
		Type:    def.AssociationType,
		Name:    def.ChildName,
		Child:   ref,
		Primary: true,
	}
	s.seq++
	n := &node{
		typeName:   def.Type,
		properties: map[qname.QName]repository.Value{},
		parent:     assoc,
		inherit:    true,
		seq:        s.seq,
	}
	for name, value := range def.Properties {
		n.properties[name] = value
	}
	s.nodes[id] = n
	s.children[def.Parent.ID] = append(s.children[def.Parent.ID], assoc)

	logger.Debug2f("Created node: '%s' of type: '%s'", ref, def.Type)
	return ref, nil
}

// GetNode implements repository.Store.
func (s *Store) GetNode(_ context.Context, ref repository.NodeRef) (*repository.Node, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	n, err := s.get(ref)
	if err != nil {
		return nil, err
	}
	result := &repository.Node{
		Ref:                ref,
		Type:               n.typeName,
		Aspects:            append([]qname.QName{}, n.aspects...),
		Properties:         make(map[qname.QName]repository.Value, len(n.properties)),
		Parent:             n.parent,
		ACL:                append([]repository.AccessControlEntry{}, n.acl...),
		InheritPermissions: n.inherit,
	}
	for name, value := range n.properties {
		result.Properties[name] = value
	}
	return result, nil
}

// Exists implements repository.Store.
func (s *Store) Exists(_ context.Context, ref repository.NodeRef) (bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	_, err := s.get(ref)
	return err == nil, nil
}

// DeleteNode implements repository.Store.
func (s *Store) DeleteNode(_ context.Context, ref repository.NodeRef) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	n, err := s.get(ref)
	if err != nil {
		return err
	}
	if ref.ID == s.root {
		return errors.New(class.RepositoryNodeRoot, "can't delete the store root")
	}
	s.unlink(n.parent.Parent.ID, ref.ID)
	s.deleteTree(ref.ID)
	return nil
}

// SetProperties implements repository.Store.
func (s *Store) SetProperties(_ context.Context, ref repository.NodeRef, props map[qname.QName]repository.Value) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	n, err := s.get(ref)
	if err != nil {
		return err
	}
	for name, value := range props {
		n.properties[name] = value
	}
	return nil
}

// AddAspect implements repository.Store.
func (s *Store) AddAspect(_ context.Context, ref repository.NodeRef, aspect qname.QName) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	n, err := s.get(ref)
	if err != nil {
		return err
	}
	for _, a := range n.aspects {
		if a == aspect {
			return nil
		}
	}
	n.aspects = append(n.aspects, aspect)
	return nil
}

// SetPermission implements repository.Store.
func (s *Store) SetPermission(_ context.Context, ref repository.NodeRef, ace repository.AccessControlEntry) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	n, err := s.get(ref)
	if err != nil {
		return err
	}
	n.acl = append(n.acl, ace)
	return nil
}

// SetInheritPermissions implements repository.Store.
func (s *Store) SetInheritPermissions(_ context.Context, ref repository.NodeRef, inherit bool) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	n, err := s.get(ref)
	if err != nil {
		return err
	}
	n.inherit = inherit
	return nil
}

// AddChild implements repository.Store.
func (s *Store) AddChild(_ context.Context, assoc repository.ChildAssociation) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, err := s.get(assoc.Parent); err != nil {
		return err
	}
	if _, err := s.get(assoc.Child); err != nil {
		return err
	}
	assoc.Primary = false
	s.children[assoc.Parent.ID] = append(s.children[assoc.Parent.ID], assoc)
	return nil
}

// Move implements repository.Store.
func (s *Store) Move(_ context.Context, ref, parent repository.NodeRef, assocType, childName qname.QName) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	n, err := s.get(ref)
	if err != nil {
		return err
	}
	if _, err = s.get(parent); err != nil {
		return err
	}
	s.unlink(n.parent.Parent.ID, ref.ID)
	n.parent = repository.ChildAssociation{Parent: parent, Type: assocType, Name: childName, Child: ref, Primary: true}
	s.children[parent.ID] = append(s.children[parent.ID], n.parent)
	return nil
}

// Children implements repository.Store.
func (s *Store) Children(_ context.Context, parent repository.NodeRef) ([]repository.ChildAssociation, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if _, err := s.get(parent); err != nil {
		return nil, err
	}
	return append([]repository.ChildAssociation{}, s.children[parent.ID]...), nil
}

// Close implements repository.Store.
func (s *Store) Close(context.Context) error {
	return nil
}

// Len gets the number of the nodes, including the root.
func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.nodes)
}

// NodeRefs gets the references of all nodes but the root in the creation order.
func (s *Store) NodeRefs() []repository.NodeRef {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		if id != s.root {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.nodes[ids[i]].seq < s.nodes[ids[j]].seq
	})
	refs := make([]repository.NodeRef, len(ids))
	for i, id := range ids {
		refs[i] = s.nodeRef(id)
	}
	return refs
}

func (s *Store) get(ref repository.NodeRef) (*node, error) {
	if ref.Store != s.ref {
		return nil, errors.Newf(class.RepositoryNodeNotFound, "node: '%s' is not in the store: '%s'", ref, s.ref)
	}
	n, ok := s.nodes[ref.ID]
	if !ok {
		return nil, errors.Newf(class.RepositoryNodeNotFound, "node: '%s' not found", ref)
	}
	return n, nil
}

func (s *Store) unlink(parentID, childID string) {
	assocs := s.children[parentID]
	for i := 0; i < len(assocs); i++ {
		if assocs[i].Child.ID == childID && assocs[i].Primary {
			assocs = append(assocs[:i], assocs[i+1:]...)
			break
		}
	}
	s.children[parentID] = assocs
}

func (s *Store) deleteTree(id string) {
	for _, assoc := range s.children[id] {
		if assoc.Primary {
			s.deleteTree(assoc.Child.ID)
		}
	}
	delete(s.children, id)
	delete(s.nodes, id)
	for parentID, assocs := range s.children {
		kept := assocs[:0]
		for _, assoc := range assocs {
			if assoc.Child.ID != id {
				kept = append(kept, assoc)
			}
		}
		s.children[parentID] = kept
	}
}

func (s *Store) nodeRef(id string) repository.NodeRef {
	return repository.NodeRef{Store: s.ref, ID: id}
}
