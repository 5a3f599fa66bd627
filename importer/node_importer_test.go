package importer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/viewimport/config"
	"github.com/neuronlabs/viewimport/dictionary"
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/importer"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
	"github.com/neuronlabs/viewimport/repository/memory"
)

var (
	contentType  = qname.New(qname.ContentModelURI, "content")
	folderType   = qname.New(qname.ContentModelURI, "folder")
	contains     = qname.New(qname.ContentModelURI, "contains")
	titleProp    = qname.New(qname.ContentModelURI, "title")
	contentProp  = qname.New(qname.ContentModelURI, "content")
	auditable    = qname.New(qname.ContentModelURI, "auditable")
	titled       = qname.New(qname.ContentModelURI, "titled")
	referencable = qname.New(qname.SystemModelURI, "referenceable")
)

type testEnv struct {
	ctx      context.Context
	store    *memory.Store
	root     repository.NodeRef
	registry *dictionary.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	registry, err := dictionary.NewDefaultRegistry()
	require.NoError(t, err)

	s := memory.New(repository.StoreRef{Protocol: "workspace", Identifier: "SpacesStore"})
	root, err := s.Root(context.Background())
	require.NoError(t, err)
	return &testEnv{ctx: context.Background(), store: s, root: root, registry: registry}
}

func (e *testEnv) importer(t *testing.T, options ...importer.Option) *importer.NodeImporter {
	t.Helper()
	i, err := importer.New(e.ctx, e.store, e.registry, options...)
	require.NoError(t, err)
	return i
}

func (e *testEnv) node(parent repository.NodeRef, typeName qname.QName, name string) importer.ImportNode {
	return importer.ImportNode{
		Parent:             parent,
		Type:               e.registry.Type(typeName),
		Properties:         map[qname.QName]repository.Value{qname.PropName: repository.Scalar(name)},
		InheritPermissions: true,
	}
}

// TestImportNode tests creating the node with the 'create_new' uuid binding.
func TestImportNode(t *testing.T) {
	e := newTestEnv(t)
	summary := &importer.Summary{}
	i := e.importer(t, importer.WithProgress(summary))

	node := e.node(e.root, contentType, "hello.txt")
	node.UUID = "imported-uuid"
	node.Properties[qname.PropNodeUUID] = repository.Scalar("imported-uuid")
	node.Properties[contentProp] = repository.Scalar("content-url")
	node.Aspects = []qname.QName{titled}
	node.InheritPermissions = false
	node.ACL = []repository.AccessControlEntry{
		repository.NewAccessControlEntry(repository.Denied, "GROUP_X", "Write", ""),
	}

	ref, err := i.ImportNode(node)
	require.NoError(t, err)
	assert.NotEqual(t, "imported-uuid", ref.ID)

	created, err := e.store.GetNode(e.ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, contentType, created.Type)
	assert.Equal(t, e.root, created.Parent.Parent)
	assert.Equal(t, qname.AssocChildren, created.Parent.Type)
	assert.Equal(t, qname.New(qname.SystemModelURI, "hello.txt"), created.Parent.Name)
	assert.Equal(t, repository.Scalar("hello.txt"), created.Properties[qname.PropName])

	_, ok := created.Properties[qname.PropNodeUUID]
	assert.False(t, ok)
	_, ok = created.Properties[contentProp]
	assert.False(t, ok, "content properties are not imported")

	assert.Equal(t, []qname.QName{titled, auditable, referencable}, created.Aspects)
	assert.False(t, created.InheritPermissions)
	if assert.Len(t, created.ACL, 1) {
		assert.Equal(t, repository.Denied, created.ACL[0].Status)
		assert.Equal(t, "GROUP_X", created.ACL[0].Authority)
	}

	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 3, summary.Aspects)
	assert.Equal(t, 1, summary.Permissions)
	assert.Equal(t, "1 node created, 0 nodes linked, 3 aspects added, 1 property set, 1 permission set, 0 metadata blocks imported",
		summary.String())
}

// TestChildName tests determining the child name of the node.
func TestChildName(t *testing.T) {
	e := newTestEnv(t)
	i := e.importer(t)

	t.Run("Explicit", func(t *testing.T) {
		node := e.node(e.root, contentType, "ignored")
		node.ChildName = "cm:doc 1"
		ref, err := i.ImportNode(node)
		require.NoError(t, err)

		created, err := e.store.GetNode(e.ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, qname.New(qname.ContentModelURI, "doc_x0020_1"), created.Parent.Name)
	})

	t.Run("ExplicitAssociation", func(t *testing.T) {
		folder, err := i.ImportNode(e.node(e.root, folderType, "docs"))
		require.NoError(t, err)

		node := e.node(folder, contentType, "report")
		node.AssociationType = contains
		ref, err := i.ImportNode(node)
		require.NoError(t, err)

		created, err := e.store.GetNode(e.ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, contains, created.Parent.Type)
		assert.Equal(t, qname.New(qname.ContentModelURI, "report"), created.Parent.Name)
	})

	t.Run("DerivedAssociation", func(t *testing.T) {
		folder, err := i.ImportNode(e.node(e.root, folderType, "reports"))
		require.NoError(t, err)

		ref, err := i.ImportNode(e.node(folder, contentType, "summary"))
		require.NoError(t, err)

		created, err := e.store.GetNode(e.ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, contains, created.Parent.Type)
		assert.Equal(t, qname.New(qname.ContentModelURI, "summary"), created.Parent.Name)

		_, err = i.ImportNode(e.node(ref, contentType, "nested"))
		assert.True(t, errors.IsClass(err, class.RepositoryNodeAssociation))
	})

	t.Run("Missing", func(t *testing.T) {
		node := e.node(e.root, contentType, "")
		delete(node.Properties, qname.PropName)
		_, err := i.ImportNode(node)
		assert.True(t, errors.IsClass(err, class.RepositoryNodeChildName))
	})

	t.Run("UnknownPrefix", func(t *testing.T) {
		node := e.node(e.root, contentType, "doc")
		node.ChildName = "unknown:doc"
		_, err := i.ImportNode(node)
		assert.True(t, errors.IsClass(err, class.ImportNamespaceNotRegistered))
	})
}

// TestUUIDBinding tests the uuid binding strategies.
func TestUUIDBinding(t *testing.T) {
	withUUID := func(e *testEnv, parent repository.NodeRef, name string) importer.ImportNode {
		node := e.node(parent, contentType, name)
		node.UUID = "n1"
		return node
	}

	t.Run("ThrowOnCollision", func(t *testing.T) {
		e := newTestEnv(t)
		i := e.importer(t, importer.WithUUIDBinding(config.UUIDThrowOnCollision))

		ref, err := i.ImportNode(withUUID(e, e.root, "first"))
		require.NoError(t, err)
		assert.Equal(t, "n1", ref.ID)

		_, err = i.ImportNode(withUUID(e, e.root, "second"))
		assert.True(t, errors.IsClass(err, class.RepositoryNodeExists))
	})

	t.Run("UpdateExisting", func(t *testing.T) {
		e := newTestEnv(t)
		i := e.importer(t, importer.WithUUIDBinding(config.UUIDUpdateExisting))

		_, err := i.ImportNode(withUUID(e, e.root, "first"))
		require.NoError(t, err)
		nodes := e.store.Len()

		node := withUUID(e, e.root, "first")
		node.Properties[titleProp] = repository.Scalar("updated")
		ref, err := i.ImportNode(node)
		require.NoError(t, err)
		assert.Equal(t, "n1", ref.ID)
		assert.Equal(t, nodes, e.store.Len())

		updated, err := e.store.GetNode(e.ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, repository.Scalar("updated"), updated.Properties[titleProp])
	})

	t.Run("RemoveExisting", func(t *testing.T) {
		e := newTestEnv(t)
		i := e.importer(t, importer.WithUUIDBinding(config.UUIDRemoveExisting))

		first := withUUID(e, e.root, "first")
		first.Properties[titleProp] = repository.Scalar("title")
		_, err := i.ImportNode(first)
		require.NoError(t, err)

		ref, err := i.ImportNode(withUUID(e, e.root, "second"))
		require.NoError(t, err)
		assert.Equal(t, "n1", ref.ID)
		assert.Equal(t, 2, e.store.Len())

		replaced, err := e.store.GetNode(e.ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, repository.Scalar("second"), replaced.Properties[qname.PropName])
		_, ok := replaced.Properties[titleProp]
		assert.False(t, ok)
	})

	t.Run("ReplaceExisting", func(t *testing.T) {
		e := newTestEnv(t)
		i := e.importer(t, importer.WithUUIDBinding(config.UUIDReplaceExisting))

		folder, err := i.ImportNode(e.node(e.root, folderType, "docs"))
		require.NoError(t, err)
		node := withUUID(e, folder, "first")
		node.AssociationType = contains
		_, err = i.ImportNode(node)
		require.NoError(t, err)

		ref, err := i.ImportNode(withUUID(e, e.root, "second"))
		require.NoError(t, err)

		replaced, err := e.store.GetNode(e.ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, folder, replaced.Parent.Parent)
		assert.Equal(t, contains, replaced.Parent.Type)
	})

	t.Run("Unknown", func(t *testing.T) {
		e := newTestEnv(t)
		_, err := importer.New(e.ctx, e.store, e.registry, importer.WithUUIDBinding("unknown"))
		assert.True(t, errors.IsClass(err, class.ConfigValueInvalid))
	})
}

// TestLinkNode tests importing the references to the existing nodes.
func TestLinkNode(t *testing.T) {
	e := newTestEnv(t)
	summary := &importer.Summary{}
	i := e.importer(t, importer.WithProgress(summary))

	folder, err := i.ImportNode(e.node(e.root, folderType, "docs"))
	require.NoError(t, err)
	doc, err := i.ImportNode(e.node(e.root, contentType, "doc"))
	require.NoError(t, err)

	ref, err := i.ImportNode(importer.ImportNode{
		Parent:             folder,
		AssociationType:    contains,
		UUID:               doc.ID,
		Reference:          true,
		InheritPermissions: true,
	})
	require.NoError(t, err)
	assert.Equal(t, doc, ref)
	assert.Equal(t, 1, summary.Linked)

	children, err := e.store.Children(e.ctx, folder)
	require.NoError(t, err)
	if assert.Len(t, children, 1) {
		assert.Equal(t, doc, children[0].Child)
		assert.False(t, children[0].Primary)
		assert.Equal(t, qname.New(qname.ContentModelURI, "doc"), children[0].Name)
	}

	t.Run("UnderRoot", func(t *testing.T) {
		ref, err := i.ImportNode(importer.ImportNode{Parent: e.root, UUID: doc.ID, Reference: true, InheritPermissions: true})
		require.NoError(t, err)
		assert.Equal(t, doc, ref)
		assert.Equal(t, 1, summary.Linked)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := i.ImportNode(importer.ImportNode{Parent: folder, UUID: "missing", Reference: true})
		assert.True(t, errors.IsClass(err, class.ImportReferenceNotFound))
	})
}

// TestImportMetaData tests the complete repository export location check.
func TestImportMetaData(t *testing.T) {
	e := newTestEnv(t)
	meta := map[qname.QName]string{qname.ViewExportOf: "/"}

	summary := &importer.Summary{}
	i := e.importer(t, importer.WithProgress(summary))
	require.NoError(t, i.ImportMetaData(meta))
	assert.Equal(t, 1, summary.MetaData)

	folder, err := i.ImportNode(e.node(e.root, folderType, "docs"))
	require.NoError(t, err)

	nested := e.importer(t, importer.WithRootRef(folder))
	err = nested.ImportMetaData(meta)
	assert.True(t, errors.IsClass(err, class.RepositoryNodeRootImport))

	assert.NoError(t, nested.ImportMetaData(map[qname.QName]string{qname.ViewExportOf: "/cm:docs"}))
}

// TestResolvePath tests resolving the repository paths.
func TestResolvePath(t *testing.T) {
	e := newTestEnv(t)
	i := e.importer(t)

	folder, err := i.ImportNode(e.node(e.root, folderType, "docs"))
	require.NoError(t, err)
	node := e.node(folder, contentType, "report")
	node.AssociationType = contains
	doc, err := i.ImportNode(node)
	require.NoError(t, err)

	ref, err := i.ResolvePath("/sys:docs/cm:report")
	require.NoError(t, err)
	assert.Equal(t, doc, ref)

	ref, err = i.ResolvePath("sys:docs/cm:report/..")
	require.NoError(t, err)
	assert.Equal(t, folder, ref)

	ref, err = i.ResolvePath("/")
	require.NoError(t, err)
	assert.Equal(t, e.root, ref)

	_, err = i.ResolvePath("/sys:docs/cm:missing")
	assert.True(t, errors.IsClass(err, class.ImportReferenceNotFound))

	_, err = i.ResolvePath("/..")
	assert.True(t, errors.IsClass(err, class.ImportReferenceNotFound))

	typeName, aspects, err := i.Describe(doc)
	require.NoError(t, err)
	assert.Equal(t, contentType, typeName)
	assert.Contains(t, aspects, auditable)

	_, _, err = i.Describe(repository.NodeRef{Store: e.root.Store, ID: "missing"})
	assert.True(t, errors.IsClass(err, class.ImportReferenceNotFound))
}

// TestConfigOptions tests creating the importer options from the configuration.
func TestConfigOptions(t *testing.T) {
	e := newTestEnv(t)

	options, err := importer.ConfigOptions(&config.Importer{
		UUIDBinding:     config.UUIDUpdateExisting,
		ExcludedClasses: []string{"cm:versionable"},
	}, e.registry.Namespaces())
	require.NoError(t, err)

	i := e.importer(t, options...)
	assert.True(t, i.IsExcludedClass(qname.New(qname.ContentModelURI, "versionable")))
	assert.False(t, i.IsExcludedClass(titled))
	assert.Equal(t, e.root, i.RootRef())
	assert.True(t, i.RootAssociation().IsZero())

	_, err = importer.ConfigOptions(&config.Importer{ExcludedClasses: []string{"unknown:aspect"}}, e.registry.Namespaces())
	assert.True(t, errors.IsClass(err, class.ConfigValueInvalid))

	_, err = importer.ConfigOptions(nil, e.registry.Namespaces())
	assert.True(t, errors.IsClass(err, class.ConfigValueNil))
}
