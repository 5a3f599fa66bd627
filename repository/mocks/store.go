// Package mocks contains the testify mock implementations of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/neuronlabs/viewimport/config"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

var (
	_ repository.Store   = &Store{}
	_ repository.Factory = &Factory{}
)

// Store is the mock repository.Store.
type Store struct {
	mock.Mock
}

// StoreRef implements repository.Store.
func (s *Store) StoreRef() repository.StoreRef {
	args := s.Called()
	return args.Get(0).(repository.StoreRef)
}

// Root implements repository.Store.
func (s *Store) Root(ctx context.Context) (repository.NodeRef, error) {
	args := s.Called(ctx)
	return args.Get(0).(repository.NodeRef), args.Error(1)
}

// CreateNode implements repository.Store.
func (s *Store) CreateNode(ctx context.Context, def repository.NodeDefinition) (repository.NodeRef, error) {
	args := s.Called(ctx, def)
	return args.Get(0).(repository.NodeRef), args.Error(1)
}

// GetNode implements repository.Store.
func (s *Store) GetNode(ctx context.Context, ref repository.NodeRef) (*repository.Node, error) {
	args := s.Called(ctx, ref)
	node, _ := args.Get(0).(*repository.Node)
	return node, args.Error(1)
}

// Exists implements repository.Store.
func (s *Store) Exists(ctx context.Context, ref repository.NodeRef) (bool, error) {
	args := s.Called(ctx, ref)
	return args.Bool(0), args.Error(1)
}

// DeleteNode implements repository.Store.
func (s *Store) DeleteNode(ctx context.Context, ref repository.NodeRef) error {
	return s.Called(ctx, ref).Error(0)
}

// SetProperties implements repository.Store.
func (s *Store) SetProperties(ctx context.Context, ref repository.NodeRef, props map[qname.QName]repository.Value) error {
	return s.Called(ctx, ref, props).Error(0)
}

// AddAspect implements repository.Store.
func (s *Store) AddAspect(ctx context.Context, ref repository.NodeRef, aspect qname.QName) error {
	return s.Called(ctx, ref, aspect).Error(0)
}

// SetPermission implements repository.Store.
func (s *Store) SetPermission(ctx context.Context, ref repository.NodeRef, ace repository.AccessControlEntry) error {
	return s.Called(ctx, ref, ace).Error(0)
}

// SetInheritPermissions implements repository.Store.
func (s *Store) SetInheritPermissions(ctx context.Context, ref repository.NodeRef, inherit bool) error {
	return s.Called(ctx, ref, inherit).Error(0)
}

// AddChild implements repository.Store.
func (s *Store) AddChild(ctx context.Context, assoc repository.ChildAssociation) error {
	return s.Called(ctx, assoc).Error(0)
}

// Move implements repository.Store.
func (s *Store) Move(ctx context.Context, ref, parent repository.NodeRef, assocType, childName qname.QName) error {
	return s.Called(ctx, ref, parent, assocType, childName).Error(0)
}

// Children implements repository.Store.
func (s *Store) Children(ctx context.Context, parent repository.NodeRef) ([]repository.ChildAssociation, error) {
	args := s.Called(ctx, parent)
	children, _ := args.Get(0).([]repository.ChildAssociation)
	return children, args.Error(1)
}

// Close implements repository.Store.
func (s *Store) Close(ctx context.Context) error {
	return s.Called(ctx).Error(0)
}

// Factory is the mock repository.Factory.
type Factory struct {
	mock.Mock
	Name string
}

// DriverName implements repository.Factory.
func (f *Factory) DriverName() string {
	return f.Name
}

// New implements repository.Factory.
func (f *Factory) New(ctx context.Context, cfg *config.Repository) (repository.Store, error) {
	args := f.Called(ctx, cfg)
	store, _ := args.Get(0).(repository.Store)
	return store, args.Error(1)
}
