package qname

// Well known namespaces.
const (
	ViewURI            = "http://www.alfresco.org/view/repository/1.0"
	ContentModelURI    = "http://www.alfresco.org/model/content/1.0"
	SystemModelURI     = "http://www.alfresco.org/model/system/1.0"
	DictionaryModelURI = "http://www.alfresco.org/model/dictionary/1.0"

	ViewPrefix     = "view"
	ContentPrefix  = "cm"
	SystemPrefix   = "sys"
	DataTypePrefix = "d"
)

// View document element names.
var (
	ViewRoot         = New(ViewURI, "view")
	ViewMetaData     = New(ViewURI, "metadata")
	ViewAspects      = New(ViewURI, "aspects")
	ViewProperties   = New(ViewURI, "properties")
	ViewAssociations = New(ViewURI, "associations")
	ViewACL          = New(ViewURI, "acl")
	ViewACE          = New(ViewURI, "ace")
	ViewAuthority    = New(ViewURI, "authority")
	ViewPermission   = New(ViewURI, "permission")
	ViewValue        = New(ViewURI, "value")
	ViewValues       = New(ViewURI, "values")
	ViewMLValue      = New(ViewURI, "mlvalue")
	ViewReference    = New(ViewURI, "reference")
	ViewExportOf     = New(ViewURI, "exportOf")
)

// Dictionary names referenced by the importer.
var (
	PropName      = New(ContentModelURI, "name")
	PropNodeUUID  = New(SystemModelURI, "node-uuid")
	AssocChildren = New(SystemModelURI, "children")
	TypeContainer = New(SystemModelURI, "container")

	DataTypeText    = New(DictionaryModelURI, "text")
	DataTypeMLText  = New(DictionaryModelURI, "mltext")
	DataTypeContent = New(DictionaryModelURI, "content")
)
