package repository

import (
	"context"

	"github.com/neuronlabs/viewimport/config"
	"github.com/neuronlabs/viewimport/qname"
)

// Store is the node store the importer materialises the nodes into.
// All the methods fail with the 'RepositoryNodeNotFound' class when the
// referenced node doesn't exist.
type Store interface {
	// StoreRef gets the reference of the store.
	StoreRef() StoreRef
	// Root gets the store root node reference.
	Root(ctx context.Context) (NodeRef, error)
	// CreateNode creates the node with the primary parent association.
	// Creating the node with already used ID fails with 'RepositoryNodeExists' class.
	CreateNode(ctx context.Context, def NodeDefinition) (NodeRef, error)
	// GetNode gets the node.
	GetNode(ctx context.Context, ref NodeRef) (*Node, error)
	// Exists checks if the node exists.
	Exists(ctx context.Context, ref NodeRef) (bool, error)
	// DeleteNode deletes the node together with its primary children.
	DeleteNode(ctx context.Context, ref NodeRef) error
	// SetProperties sets the node properties. Existing properties not in 'props' are kept.
	SetProperties(ctx context.Context, ref NodeRef, props map[qname.QName]Value) error
	// AddAspect applies the aspect to the node.
	AddAspect(ctx context.Context, ref NodeRef, aspect qname.QName) error
	// SetPermission adds the access control entry to the node.
	SetPermission(ctx context.Context, ref NodeRef, ace AccessControlEntry) error
	// SetInheritPermissions sets if the node inherits the parent permissions.
	SetInheritPermissions(ctx context.Context, ref NodeRef, inherit bool) error
	// AddChild creates the secondary child association.
	AddChild(ctx context.Context, assoc ChildAssociation) error
	// Move changes the primary parent association of the node.
	Move(ctx context.Context, ref NodeRef, parent NodeRef, assocType, childName qname.QName) error
	// Children gets the child associations of the 'parent' ordered by creation.
	Children(ctx context.Context, parent NodeRef) ([]ChildAssociation, error)
	// Close closes the store.
	Close(ctx context.Context) error
}

// Factory is the interface used for creating the stores.
type Factory interface {
	// DriverName gets the driver name for given factory.
	DriverName() string
	// New creates new Store for given 'cfg'.
	New(ctx context.Context, cfg *config.Repository) (Store, error)
}
