package view_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/neuronlabs/viewimport/dictionary"
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/importer"
	"github.com/neuronlabs/viewimport/importer/mocks"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
	"github.com/neuronlabs/viewimport/repository/memory"
	"github.com/neuronlabs/viewimport/view"
)

const ns = `xmlns:view="http://www.alfresco.org/view/repository/1.0" ` +
	`xmlns:cm="http://www.alfresco.org/model/content/1.0" ` +
	`xmlns:sys="http://www.alfresco.org/model/system/1.0" ` +
	`xmlns:d="http://www.alfresco.org/model/dictionary/1.0"`

var (
	storeRef = repository.StoreRef{Protocol: "workspace", Identifier: "SpacesStore"}
	rootRef  = repository.NodeRef{Store: storeRef, ID: "root"}

	contentType = qname.New(qname.ContentModelURI, "content")
	folderType  = qname.New(qname.ContentModelURI, "folder")
	contains    = qname.New(qname.ContentModelURI, "contains")
	titled      = qname.New(qname.ContentModelURI, "titled")
	titleProp   = qname.New(qname.ContentModelURI, "title")
	tagsProp    = qname.New(qname.ContentModelURI, "tags")
)

// call is single recorded importer call.
type call struct {
	method string
	node   importer.ImportNode
	ref    repository.NodeRef
	meta   map[qname.QName]string
}

// recorder is the importer.Importer that records all the calls and assigns
// sequential node references.
type recorder struct {
	excluded map[qname.QName]bool
	calls    []call
	seq      int
}

func (r *recorder) RootRef() repository.NodeRef {
	return rootRef
}

func (r *recorder) RootAssociation() qname.QName {
	return qname.AssocChildren
}

func (r *recorder) ImportNode(node importer.ImportNode) (repository.NodeRef, error) {
	r.seq++
	ref := repository.NodeRef{Store: storeRef, ID: fmt.Sprintf("n%d", r.seq)}
	r.calls = append(r.calls, call{method: "ImportNode", node: node, ref: ref})
	return ref, nil
}

func (r *recorder) ChildrenImported(ref repository.NodeRef) error {
	r.calls = append(r.calls, call{method: "ChildrenImported", ref: ref})
	return nil
}

func (r *recorder) ImportMetaData(meta map[qname.QName]string) error {
	r.calls = append(r.calls, call{method: "ImportMetaData", meta: meta})
	return nil
}

func (r *recorder) IsExcludedClass(name qname.QName) bool {
	return r.excluded[name]
}

func (r *recorder) methods() []string {
	methods := make([]string, len(r.calls))
	for i, c := range r.calls {
		methods[i] = c.method
	}
	return methods
}

// nodes gets the imported nodes in the import order.
func (r *recorder) nodes() []importer.ImportNode {
	var nodes []importer.ImportNode
	for _, c := range r.calls {
		if c.method == "ImportNode" {
			nodes = append(nodes, c.node)
		}
	}
	return nodes
}

func newRegistry(t *testing.T) *dictionary.Registry {
	t.Helper()
	registry, err := dictionary.NewDefaultRegistry()
	require.NoError(t, err)
	return registry
}

func parse(t *testing.T, doc string, imp importer.Importer, options ...view.Option) error {
	t.Helper()
	return view.NewParser(newRegistry(t), options...).Parse(strings.NewReader(doc), imp)
}

// parseNode parses the document and returns the single imported node.
func parseNode(t *testing.T, doc string, options ...view.Option) importer.ImportNode {
	t.Helper()
	r := &recorder{}
	require.NoError(t, parse(t, doc, r, options...))
	nodes := r.nodes()
	require.Len(t, nodes, 1)
	return nodes[0]
}

func assertClass(t *testing.T, err error, c class.Class) *view.Error {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.IsClass(err, c), "expected class: %s, got: %v", c, err)

	var viewErr *view.Error
	require.True(t, stderrors.As(err, &viewErr))
	return viewErr
}

// TestParseContent tests importing single content node with its properties.
func TestParseContent(t *testing.T) {
	doc := `<cm:content ` + ns + ` childName="doc1">
  <view:properties>
    <cm:name>hello.txt</cm:name>
  </view:properties>
</cm:content>`

	r := &recorder{}
	require.NoError(t, parse(t, doc, r))
	require.Equal(t, []string{"ImportNode", "ChildrenImported"}, r.methods())

	node := r.calls[0].node
	assert.Equal(t, contentType, node.TypeName())
	assert.Equal(t, "doc1", node.ChildName)
	assert.Equal(t, rootRef, node.Parent)
	assert.Equal(t, qname.AssocChildren, node.AssociationType)
	assert.True(t, node.InheritPermissions)
	assert.Empty(t, node.ACL)
	assert.Empty(t, node.Aspects)
	assert.Equal(t, map[qname.QName]repository.Value{qname.PropName: repository.Scalar("hello.txt")}, node.Properties)
	assert.Equal(t, r.calls[0].ref, r.calls[1].ref)
}

// TestParseProperties tests the property value forms.
func TestParseProperties(t *testing.T) {
	content := func(properties string) string {
		return `<cm:content ` + ns + `><view:properties>` + properties + `</view:properties></cm:content>`
	}

	t.Run("Values", func(t *testing.T) {
		node := parseNode(t, content(`<cm:tags><view:values><view:value>a</view:value><view:value>b</view:value></view:values></cm:tags>`))
		assert.Equal(t, repository.Collection(repository.Scalar("a"), repository.Scalar("b")), node.Properties[tagsProp])
	})

	t.Run("SingleValues", func(t *testing.T) {
		node := parseNode(t, content(`<cm:tags><view:values><view:value>a</view:value></view:values></cm:tags>`))
		assert.Equal(t, repository.Collection(repository.Scalar("a")), node.Properties[tagsProp])
	})

	t.Run("EmptyValues", func(t *testing.T) {
		node := parseNode(t, content(`<cm:tags><view:values/></cm:tags>`))
		value := node.Properties[tagsProp]
		assert.True(t, value.IsCollection())
		assert.Empty(t, value.Items)
	})

	t.Run("ValueList", func(t *testing.T) {
		node := parseNode(t, content(`<cm:tags>
          <view:value>a</view:value>
          <view:value>b</view:value>
        </cm:tags>`))
		assert.Equal(t, repository.Collection(repository.Scalar("a"), repository.Scalar("b")), node.Properties[tagsProp])
	})

	t.Run("SingleValue", func(t *testing.T) {
		node := parseNode(t, content(`<cm:name><view:value>x</view:value></cm:name>`))
		assert.Equal(t, repository.Scalar("x"), node.Properties[qname.PropName])
	})

	t.Run("Empty", func(t *testing.T) {
		node := parseNode(t, content(`<cm:name/>`))
		assert.Equal(t, repository.Scalar(""), node.Properties[qname.PropName])
	})

	t.Run("Null", func(t *testing.T) {
		node := parseNode(t, content(`<cm:name><view:value view:isNull="true"/></cm:name>`))
		assert.Equal(t, repository.Null(), node.Properties[qname.PropName])
	})

	t.Run("InvalidNull", func(t *testing.T) {
		err := parse(t, content(`<cm:name><view:value view:isNull="maybe"/></cm:name>`), &recorder{})
		viewErr := assertClass(t, err, class.ImportMalformedValue)
		assert.Equal(t, "maybe", viewErr.Token)
	})

	t.Run("DataType", func(t *testing.T) {
		node := parseNode(t, content(`<cm:name><view:value view:datatype="d:text">x</view:value></cm:name>`))
		assert.Equal(t, qname.DataTypeText, node.DataTypes[qname.PropName])
	})

	t.Run("UnknownDataType", func(t *testing.T) {
		err := parse(t, content(`<cm:name><view:value view:datatype="d:unknown">x</view:value></cm:name>`), &recorder{})
		viewErr := assertClass(t, err, class.ImportUnresolvedDefinition)
		assert.Equal(t, "d:unknown", viewErr.Token)
	})

	t.Run("MLValue", func(t *testing.T) {
		node := parseNode(t, content(`<cm:title>
          <view:mlvalue view:locale="en">Docs</view:mlvalue>
          <view:mlvalue view:locale="fr_FR">Dossiers</view:mlvalue>
          <view:mlvalue view:locale="de" view:isNull="true"/>
        </cm:title>`))
		value := node.Properties[titleProp]
		require.Equal(t, repository.MLTextValue, value.Kind)
		assert.Equal(t, qname.DataTypeMLText, node.DataTypes[titleProp])

		text, ok := value.MLText.Get(language.MustParse("en"))
		require.True(t, ok)
		assert.Equal(t, "Docs", text)

		text, ok = value.MLText.Get(language.MustParse("fr-FR"))
		require.True(t, ok)
		assert.Equal(t, "Dossiers", text)

		_, ok = value.MLText.Get(language.MustParse("de"))
		assert.False(t, ok)
	})

	t.Run("EncodedName", func(t *testing.T) {
		node := parseNode(t, content(`<cm:my_x0020_prop>x</cm:my_x0020_prop>`))
		assert.Equal(t, repository.Scalar("x"), node.Properties[qname.New(qname.ContentModelURI, "my prop")])
	})

	t.Run("NodeUUID", func(t *testing.T) {
		node := parseNode(t, content(`<sys:node-uuid>abc-123</sys:node-uuid>`))
		assert.Equal(t, "abc-123", node.UUID)
	})

	t.Run("Promoted", func(t *testing.T) {
		node := parseNode(t, content(`<cm:name>a</cm:name><cm:name>b</cm:name>`))
		assert.Equal(t, repository.Collection(repository.Scalar("a"), repository.Scalar("b")), node.Properties[qname.PropName])
	})

	t.Run("Strict", func(t *testing.T) {
		err := parse(t, content(`<cm:name>a</cm:name><cm:name>b</cm:name>`), &recorder{}, view.WithStrictPropertyValues(true))
		assertClass(t, err, class.ImportMalformedValue)

		node := parseNode(t, content(`<cm:tags><view:values><view:value>a</view:value><view:value>b</view:value></view:values></cm:tags>`),
			view.WithStrictPropertyValues(true))
		assert.Equal(t, repository.Collection(repository.Scalar("a"), repository.Scalar("b")), node.Properties[tagsProp])
	})

	t.Run("Implicit", func(t *testing.T) {
		node := parseNode(t, `<cm:content `+ns+`><cm:name>x</cm:name></cm:content>`)
		assert.Equal(t, repository.Scalar("x"), node.Properties[qname.PropName])
	})

	t.Run("Undefined", func(t *testing.T) {
		node := parseNode(t, content(`<cm:custom>x</cm:custom>`))
		assert.Equal(t, repository.Scalar("x"), node.Properties[qname.New(qname.ContentModelURI, "custom")])
	})

	t.Run("MixedText", func(t *testing.T) {
		err := parse(t, content(`<cm:name>x<view:value>y</view:value></cm:name>`), &recorder{})
		assertClass(t, err, class.ImportInvalidNesting)
	})

	t.Run("UnexpectedElement", func(t *testing.T) {
		err := parse(t, content(`<cm:name><cm:title>y</cm:title></cm:name>`), &recorder{})
		assertClass(t, err, class.ImportMalformedValue)
	})
}

// TestParseAspects tests the explicit and implicit aspects.
func TestParseAspects(t *testing.T) {
	t.Run("Explicit", func(t *testing.T) {
		node := parseNode(t, `<cm:content `+ns+`><view:aspects><cm:titled/><cm:taggable></cm:taggable></view:aspects></cm:content>`)
		assert.Equal(t, []qname.QName{titled, qname.New(qname.ContentModelURI, "taggable")}, node.Aspects)
	})

	t.Run("Implicit", func(t *testing.T) {
		node := parseNode(t, `<cm:content `+ns+`><cm:titled/><cm:titled/></cm:content>`)
		assert.Equal(t, []qname.QName{titled}, node.Aspects)
	})

	t.Run("Excluded", func(t *testing.T) {
		r := &recorder{excluded: map[qname.QName]bool{titled: true}}
		doc := `<cm:content ` + ns + `><view:aspects><cm:titled/></view:aspects>
          <view:properties><cm:title>x</cm:title><cm:name>y</cm:name></view:properties></cm:content>`
		require.NoError(t, parse(t, doc, r))

		node := r.nodes()[0]
		assert.Empty(t, node.Aspects)
		assert.Equal(t, map[qname.QName]repository.Value{qname.PropName: repository.Scalar("y")}, node.Properties)
	})

	t.Run("Unknown", func(t *testing.T) {
		err := parse(t, `<cm:content `+ns+`><view:aspects><cm:unknown/></view:aspects></cm:content>`, &recorder{})
		viewErr := assertClass(t, err, class.ImportUnknownAspect)
		assert.Equal(t, qname.New(qname.ContentModelURI, "unknown"), viewErr.Name)
	})

	t.Run("NotEmpty", func(t *testing.T) {
		err := parse(t, `<cm:content `+ns+`><view:aspects><cm:titled><cm:name>x</cm:name></cm:titled></view:aspects></cm:content>`, &recorder{})
		assertClass(t, err, class.ImportInvalidNesting)
	})
}

// TestParseACL tests the access control lists.
func TestParseACL(t *testing.T) {
	content := func(acl string) string {
		return `<cm:content ` + ns + `>` + acl + `</cm:content>`
	}

	t.Run("Entries", func(t *testing.T) {
		node := parseNode(t, content(`<view:acl>
          <view:ace view:access="DENIED">
            <view:authority>GROUP_X</view:authority>
            <view:permission>Write</view:permission>
          </view:ace>
          <view:ace>
            <view:permission> Read </view:permission>
            <view:authority>bob</view:authority>
          </view:ace>
          <view:ace view:access="DENIED">
            <view:authority>GROUP_X</view:authority>
            <view:permission>Write</view:permission>
          </view:ace>
        </view:acl>`))
		assert.True(t, node.InheritPermissions)
		assert.Equal(t, []repository.AccessControlEntry{
			{Status: repository.Denied, Authority: "GROUP_X", Permission: "Write"},
			{Status: repository.Allowed, Authority: "bob", Permission: "Read"},
			{Status: repository.Denied, Authority: "GROUP_X", Permission: "Write"},
		}, node.ACL)
	})

	t.Run("Inherit", func(t *testing.T) {
		node := parseNode(t, content(`<view:acl view:inherit="false"/>`))
		assert.False(t, node.InheritPermissions)
		assert.Empty(t, node.ACL)

		node = parseNode(t, content(`<view:acl view:inherit="true"/>`))
		assert.True(t, node.InheritPermissions)
	})

	t.Run("InvalidInherit", func(t *testing.T) {
		for _, value := range []string{"maybe", "TRUE", "False", " false"} {
			err := parse(t, content(`<view:acl view:inherit="`+value+`"/>`), &recorder{})
			assertClass(t, err, class.ImportMalformedValue)
		}
	})

	t.Run("Guest", func(t *testing.T) {
		acl := content(`<view:acl><view:ace><view:authority>bob</view:authority><view:permission>guest</view:permission></view:ace></view:acl>`)
		node := parseNode(t, acl)
		assert.Equal(t, repository.DefaultConsumerPermission, node.ACL[0].Permission)

		node = parseNode(t, acl, view.WithConsumerPermission("Read"))
		assert.Equal(t, "Read", node.ACL[0].Permission)
	})

	t.Run("MissingAuthority", func(t *testing.T) {
		err := parse(t, content(`<view:acl><view:ace view:access="DENIED"><view:permission>Write</view:permission></view:ace></view:acl>`), &recorder{})
		assertClass(t, err, class.ImportMissingRequiredField)
	})

	t.Run("EmptyPermission", func(t *testing.T) {
		err := parse(t, content(`<view:acl><view:ace><view:authority>bob</view:authority><view:permission></view:permission></view:ace></view:acl>`), &recorder{})
		assertClass(t, err, class.ImportMissingRequiredField)
	})

	t.Run("RepeatedAuthority", func(t *testing.T) {
		err := parse(t, content(`<view:acl><view:ace><view:authority>a</view:authority><view:authority>b</view:authority><view:permission>Read</view:permission></view:ace></view:acl>`), &recorder{})
		assertClass(t, err, class.ImportMalformedValue)
	})

	t.Run("RepeatedPermission", func(t *testing.T) {
		err := parse(t, content(`<view:acl><view:ace><view:permission>Read</view:permission><view:authority>bob</view:authority><view:permission>Write</view:permission></view:ace></view:acl>`), &recorder{})
		assertClass(t, err, class.ImportMalformedValue)
	})

	t.Run("InvalidAccess", func(t *testing.T) {
		err := parse(t, content(`<view:acl><view:ace view:access="MAYBE"><view:authority>bob</view:authority></view:ace></view:acl>`), &recorder{})
		viewErr := assertClass(t, err, class.ImportMalformedValue)
		assert.Equal(t, "MAYBE", viewErr.Token)
	})

	t.Run("NotEntry", func(t *testing.T) {
		err := parse(t, content(`<view:acl><view:authority>bob</view:authority></view:acl>`), &recorder{})
		assertClass(t, err, class.ImportInvalidNesting)
	})

	t.Run("UnknownEntryField", func(t *testing.T) {
		err := parse(t, content(`<view:acl><view:ace><view:value>x</view:value></view:ace></view:acl>`), &recorder{})
		assertClass(t, err, class.ImportInvalidNesting)
	})
}

// TestParseAssociations tests importing the child nodes.
func TestParseAssociations(t *testing.T) {
	t.Run("Explicit", func(t *testing.T) {
		doc := `<cm:folder ` + ns + ` childName="f">
  <view:associations>
    <cm:contains>
      <cm:content childName="c"/>
    </cm:contains>
  </view:associations>
</cm:folder>`
		r := &recorder{}
		require.NoError(t, parse(t, doc, r))
		require.Equal(t, []string{"ImportNode", "ImportNode", "ChildrenImported", "ChildrenImported"}, r.methods())

		folder, content := r.calls[0], r.calls[1]
		assert.Equal(t, folderType, folder.node.TypeName())
		assert.Equal(t, rootRef, folder.node.Parent)
		assert.Equal(t, contentType, content.node.TypeName())
		assert.Equal(t, folder.ref, content.node.Parent)
		assert.Equal(t, contains, content.node.AssociationType)
		assert.Equal(t, content.ref, r.calls[2].ref)
		assert.Equal(t, folder.ref, r.calls[3].ref)
	})

	t.Run("Implicit", func(t *testing.T) {
		doc := `<cm:folder ` + ns + `><cm:contains><cm:content/><cm:folder/></cm:contains></cm:folder>`
		r := &recorder{}
		require.NoError(t, parse(t, doc, r))
		require.Equal(t, []string{"ImportNode", "ImportNode", "ChildrenImported", "ImportNode", "ChildrenImported", "ChildrenImported"}, r.methods())
		assert.Equal(t, r.calls[0].ref, r.calls[3].node.Parent)
	})

	t.Run("NotValidForType", func(t *testing.T) {
		doc := `<cm:content ` + ns + `><view:associations><cm:contains><cm:content/></cm:contains></view:associations></cm:content>`
		r := &recorder{}
		err := parse(t, doc, r)
		assertClass(t, err, class.ImportAssociationNotValidForType)
		assert.Empty(t, r.calls)
	})

	t.Run("AspectAssociation", func(t *testing.T) {
		doc := `<cm:content ` + ns + `><view:aspects><cm:thumbnailed/></view:aspects>
          <view:associations><cm:thumbnails><cm:content/></cm:thumbnails></view:associations></cm:content>`
		r := &recorder{}
		require.NoError(t, parse(t, doc, r))
		nodes := r.nodes()
		require.Len(t, nodes, 2)
		assert.Equal(t, qname.New(qname.ContentModelURI, "thumbnails"), nodes[1].AssociationType)
	})

	t.Run("Unknown", func(t *testing.T) {
		doc := `<cm:folder ` + ns + `><view:associations><cm:unknown/></view:associations></cm:folder>`
		assertClass(t, parse(t, doc, &recorder{}), class.ImportUnknownAssociation)
	})

	t.Run("NotChild", func(t *testing.T) {
		doc := `<cm:folder ` + ns + `><view:associations><cm:references/></view:associations></cm:folder>`
		assertClass(t, parse(t, doc, &recorder{}), class.ImportUnknownAssociation)

		doc = `<cm:folder ` + ns + `><cm:references/></cm:folder>`
		assertClass(t, parse(t, doc, &recorder{}), class.ImportUnresolvedDefinition)
	})
}

// TestParseStructure tests the document structure failures.
func TestParseStructure(t *testing.T) {
	testCases := []struct {
		name  string
		doc   string
		class class.Class
	}{
		{"UnknownType", `<cm:unknown ` + ns + `/>`, class.ImportUnknownType},
		{"NamespaceNotRegistered", `<x:node xmlns:x="urn:unknown"/>`, class.ImportNamespaceNotRegistered},
		{"UnresolvedDefinition", `<cm:content ` + ns + `><cm:unknown/></cm:content>`, class.ImportUnresolvedDefinition},
		{"NestedGrouping", `<cm:content ` + ns + `><view:properties><view:aspects/></view:properties></cm:content>`, class.ImportInvalidNesting},
		{"GroupingWithoutNode", `<view:view ` + ns + `><view:properties/></view:view>`, class.ImportInvalidNesting},
		{"TextWithinNode", `<cm:content ` + ns + `>hello</cm:content>`, class.ImportInvalidNesting},
		{"MetaDataWithElement", `<view:view ` + ns + `><view:metadata><view:exportOf><cm:name/></view:exportOf></view:metadata></view:view>`, class.ImportInvalidNesting},
		{"MetaDataInNodeItem", `<cm:content ` + ns + `><view:properties><view:metadata/></view:properties></cm:content>`, class.ImportInvalidNesting},
		{"Mismatched", `<cm:content ` + ns + `><view:properties></cm:content>`, class.ImportMalformedValue},
		{"Unterminated", `<cm:content ` + ns + `><view:properties>`, class.ImportMalformedValue},
		{"Empty", ``, class.ImportMalformedValue},
		{"TwoRoots", `<cm:content ` + ns + `/><cm:content ` + ns + `/>`, class.ImportMalformedValue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assertClass(t, parse(t, tc.doc, &recorder{}), tc.class)
		})
	}
}

// TestParseErrorPosition tests the position of the failure.
func TestParseErrorPosition(t *testing.T) {
	doc := `<cm:content ` + ns + `>
  <view:aspects>
    <cm:unknown/>
  </view:aspects>
</cm:content>`

	err := parse(t, doc, &recorder{})
	viewErr := assertClass(t, err, class.ImportUnknownAspect)
	assert.Equal(t, 3, viewErr.Line)
	assert.Equal(t, 5, viewErr.Column)
	assert.Contains(t, err.Error(), "line 3; column 5")
}

// TestParseMetaData tests the metadata blocks.
func TestParseMetaData(t *testing.T) {
	doc := `<view:view ` + ns + `>
  <view:metadata>
    <view:exportOf>/cm:company_home</view:exportOf>
    <view:exportDate/>
  </view:metadata>
  <cm:folder/>
</view:view>`

	r := &recorder{}
	require.NoError(t, parse(t, doc, r))
	require.Equal(t, []string{"ImportMetaData", "ImportNode", "ChildrenImported"}, r.methods())
	assert.Equal(t, map[qname.QName]string{
		qname.ViewExportOf:                     "/cm:company_home",
		qname.New(qname.ViewURI, "exportDate"): "",
	}, r.calls[0].meta)
}

// TestParseView tests the multiple top level nodes of the view root.
func TestParseView(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<!-- exported view -->
<view:view ` + ns + `>
  <cm:folder childName="a"/>
  <cm:content childName="b"/>
</view:view>`

	r := &recorder{}
	require.NoError(t, parse(t, doc, r))
	nodes := r.nodes()
	require.Len(t, nodes, 2)
	for _, node := range nodes {
		assert.Equal(t, rootRef, node.Parent)
	}
	assert.Equal(t, "a", nodes[0].ChildName)
	assert.Equal(t, "b", nodes[1].ChildName)
}

// TestParseReferences tests the references to the existing nodes.
func TestParseReferences(t *testing.T) {
	t.Run("IDRef", func(t *testing.T) {
		doc := `<view:view ` + ns + `>
  <cm:folder view:id="f" childName="cm:f"/>
  <view:reference view:idref="f" childName="cm:link"/>
</view:view>`
		r := &recorder{}
		require.NoError(t, parse(t, doc, r))
		nodes := r.nodes()
		require.Len(t, nodes, 2)
		assert.Equal(t, "f", nodes[0].ImportID)
		assert.True(t, nodes[1].Reference)
		assert.Equal(t, "n1", nodes[1].UUID)
		assert.Equal(t, "cm:link", nodes[1].ChildName)
		assert.Nil(t, nodes[1].Type)
	})

	t.Run("IDRefNotFound", func(t *testing.T) {
		doc := `<view:view ` + ns + `><view:reference view:idref="missing"/></view:view>`
		viewErr := assertClass(t, parse(t, doc, &recorder{}), class.ImportReferenceNotFound)
		assert.Equal(t, "missing", viewErr.Token)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		doc := `<view:view ` + ns + `><cm:folder view:id="f"/><cm:folder view:id="f"/></view:view>`
		assertClass(t, parse(t, doc, &recorder{}), class.ImportDuplicateID)
	})

	t.Run("NodeRef", func(t *testing.T) {
		doc := `<view:reference ` + ns + ` view:noderef="workspace://SpacesStore/abc"/>`
		node := parseNode(t, doc)
		assert.True(t, node.Reference)
		assert.Equal(t, "abc", node.UUID)
	})

	t.Run("InvalidNodeRef", func(t *testing.T) {
		doc := `<view:reference ` + ns + ` view:noderef="abc"/>`
		assertClass(t, parse(t, doc, &recorder{}), class.ImportMalformedValue)
	})

	t.Run("Missing", func(t *testing.T) {
		doc := `<view:reference ` + ns + `/>`
		assertClass(t, parse(t, doc, &recorder{}), class.ImportMissingRequiredField)
	})

	t.Run("Ambiguous", func(t *testing.T) {
		doc := `<view:reference ` + ns + ` view:idref="f" view:noderef="workspace://SpacesStore/abc"/>`
		assertClass(t, parse(t, doc, &recorder{}), class.ImportMalformedValue)
	})

	t.Run("PathRefWithoutResolver", func(t *testing.T) {
		doc := `<view:reference ` + ns + ` view:pathref="/cm:docs"/>`
		assertClass(t, parse(t, doc, &recorder{}), class.ImportReferenceNotFound)
	})

	t.Run("PathRef", func(t *testing.T) {
		target := repository.NodeRef{Store: storeRef, ID: "docs"}
		created := repository.NodeRef{Store: storeRef, ID: "link"}

		imp := &mocks.Resolver{}
		imp.On("RootRef").Return(rootRef)
		imp.On("RootAssociation").Return(qname.AssocChildren)
		imp.On("IsExcludedClass", mock.Anything).Return(false)
		imp.On("ResolvePath", "/cm:docs").Return(target, nil)
		imp.On("Describe", target).Return(folderType, []qname.QName{titled, qname.New(qname.ContentModelURI, "unknown")}, nil)

		var imported importer.ImportNode
		imp.On("ImportNode", mock.Anything).Run(func(args mock.Arguments) {
			imported = args.Get(0).(importer.ImportNode)
		}).Return(created, nil)
		imp.On("ChildrenImported", created).Return(nil)

		doc := `<view:reference ` + ns + ` view:pathref="/cm:docs" childName="cm:link"/>`
		require.NoError(t, parse(t, doc, imp))
		imp.AssertExpectations(t)

		assert.True(t, imported.Reference)
		assert.Equal(t, "docs", imported.UUID)
		assert.Equal(t, folderType, imported.TypeName())
		assert.Equal(t, []qname.QName{titled}, imported.Aspects)
	})

	t.Run("PathRefNotResolved", func(t *testing.T) {
		imp := &mocks.Resolver{}
		imp.On("RootRef").Return(rootRef)
		imp.On("RootAssociation").Return(qname.AssocChildren)
		imp.On("ResolvePath", "/cm:missing").Return(repository.NodeRef{}, errors.New(class.ImportReferenceNotFound, "not found"))

		doc := `<view:reference ` + ns + ` view:pathref="/cm:missing"/>`
		viewErr := assertClass(t, parse(t, doc, imp), class.ImportReferenceNotFound)
		assert.Equal(t, 1, viewErr.Line)
		imp.AssertNotCalled(t, "ImportNode", mock.Anything)
	})
}

// TestParseImporterFailure tests that the importer failures abort the parse.
func TestParseImporterFailure(t *testing.T) {
	imp := &mocks.Importer{}
	imp.On("RootRef").Return(rootRef)
	imp.On("RootAssociation").Return(qname.AssocChildren)
	imp.On("IsExcludedClass", mock.Anything).Return(false)
	imp.On("ImportNode", mock.Anything).Return(repository.NodeRef{}, stderrors.New("connection refused"))

	doc := `<cm:folder ` + ns + `>
  <cm:contains>
    <cm:content/>
  </cm:contains>
</cm:folder>`
	err := parse(t, doc, imp)
	viewErr := assertClass(t, err, class.ImportImporter)
	assert.Equal(t, 2, viewErr.Line)
	assert.Contains(t, err.Error(), "connection refused")
	imp.AssertNumberOfCalls(t, "ImportNode", 1)
	imp.AssertNotCalled(t, "ChildrenImported", mock.Anything)
}

// TestParseDeterministic tests that the same document produces the same calls.
func TestParseDeterministic(t *testing.T) {
	doc := `<view:view ` + ns + `>
  <view:metadata><view:exportOf>/</view:exportOf></view:metadata>
  <cm:folder view:id="docs" childName="cm:docs">
    <view:aspects><cm:titled/></view:aspects>
    <view:acl view:inherit="false">
      <view:ace><view:authority>GROUP_X</view:authority><view:permission>Write</view:permission></view:ace>
    </view:acl>
    <view:properties>
      <cm:name>docs</cm:name>
      <cm:title><view:mlvalue view:locale="en">Docs</view:mlvalue></cm:title>
    </view:properties>
    <view:associations>
      <cm:contains>
        <cm:content childName="cm:readme"><cm:name>readme</cm:name></cm:content>
        <view:reference view:idref="docs" childName="cm:self"/>
      </cm:contains>
    </view:associations>
  </cm:folder>
</view:view>`

	first, second := &recorder{}, &recorder{}
	require.NoError(t, parse(t, doc, first))
	require.NoError(t, parse(t, doc, second))
	assert.Equal(t, first.calls, second.calls)

	// exactly one top level node and each node finalised once.
	var top int
	finalized := map[repository.NodeRef]int{}
	for _, c := range first.calls {
		switch c.method {
		case "ImportNode":
			if c.node.Parent == rootRef {
				top++
			}
		case "ChildrenImported":
			finalized[c.ref]++
		}
	}
	assert.Equal(t, 1, top)
	assert.Len(t, finalized, 3)
	for _, count := range finalized {
		assert.Equal(t, 1, count)
	}
}

// TestParseIntoStore tests parsing the document into the memory store.
func TestParseIntoStore(t *testing.T) {
	ctx := context.Background()
	registry := newRegistry(t)
	store := memory.New(storeRef)
	summary := &importer.Summary{}

	imp, err := importer.New(ctx, store, registry, importer.WithProgress(summary))
	require.NoError(t, err)

	doc := `<view:view ` + ns + `>
  <view:metadata><view:exportOf>/cm:company_home</view:exportOf></view:metadata>
  <cm:folder childName="cm:docs">
    <view:aspects><cm:titled/></view:aspects>
    <view:acl view:inherit="false">
      <view:ace view:access="DENIED"><view:authority>GROUP_X</view:authority><view:permission>Write</view:permission></view:ace>
    </view:acl>
    <view:properties>
      <cm:name>docs</cm:name>
      <cm:title><view:mlvalue view:locale="en">Docs</view:mlvalue></cm:title>
    </view:properties>
    <view:associations>
      <cm:contains>
        <cm:content childName="cm:readme">
          <view:properties><cm:name>readme.txt</cm:name></view:properties>
        </cm:content>
      </cm:contains>
    </view:associations>
  </cm:folder>
</view:view>`
	require.NoError(t, view.NewParser(registry).Parse(strings.NewReader(doc), imp))

	root, err := store.Root(ctx)
	require.NoError(t, err)
	children, err := store.Children(ctx, root)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, qname.New(qname.ContentModelURI, "docs"), children[0].Name)
	assert.Equal(t, qname.AssocChildren, children[0].Type)

	folder, err := store.GetNode(ctx, children[0].Child)
	require.NoError(t, err)
	assert.Equal(t, folderType, folder.Type)
	assert.True(t, folder.HasAspect(titled))
	assert.False(t, folder.InheritPermissions)
	assert.Equal(t, []repository.AccessControlEntry{{Status: repository.Denied, Authority: "GROUP_X", Permission: "Write"}}, folder.ACL)
	assert.Equal(t, repository.Scalar("docs"), folder.Properties[qname.PropName])

	children, err = store.Children(ctx, folder.Ref)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, contains, children[0].Type)
	assert.Equal(t, qname.New(qname.ContentModelURI, "readme"), children[0].Name)

	content, err := store.GetNode(ctx, children[0].Child)
	require.NoError(t, err)
	assert.Equal(t, contentType, content.Type)
	assert.Equal(t, repository.Scalar("readme.txt"), content.Properties[qname.PropName])

	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 1, summary.MetaData)
	assert.Equal(t, 1, summary.Permissions)
}
