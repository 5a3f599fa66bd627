package class

// MjrImport is the major classification of the view document import errors.
var MjrImport Major

func registerImportClasses() {
	MjrImport = MustRegisterMajor("Import", "view document import errors")

	registerImportNamespace()
	registerImportSchema()
	registerImportDocument()
	registerImportReference()
	registerImportInternal()
}

/**

Import Namespace

*/

var (
	// MnrImportNamespace is the 'MjrImport' minor for the namespace resolution failures.
	MnrImportNamespace Minor

	// ImportNamespaceNotRegistered is the 'MjrImport', 'MnrImportNamespace' class
	// when the namespace URI or prefix is not registered in the dictionary.
	ImportNamespaceNotRegistered Class
)

func registerImportNamespace() {
	MnrImportNamespace = MjrImport.MustRegisterMinor("Namespace", "namespace resolution failures")

	ImportNamespaceNotRegistered = MnrImportNamespace.MustRegisterIndex("Not Registered",
		"namespace uri or prefix is not registered").Class()
}

/**

Import Schema

*/

var (
	// MnrImportSchema is the 'MjrImport' minor for the dictionary resolution failures.
	MnrImportSchema Minor

	// ImportUnknownType is the 'MjrImport', 'MnrImportSchema' class for the element
	// that does not resolve to a type.
	ImportUnknownType Class

	// ImportUnknownAspect is the 'MjrImport', 'MnrImportSchema' class for the element
	// that does not resolve to an aspect.
	ImportUnknownAspect Class

	// ImportUnknownAssociation is the 'MjrImport', 'MnrImportSchema' class for the element
	// that does not resolve to a child association.
	ImportUnknownAssociation Class

	// ImportUnresolvedDefinition is the 'MjrImport', 'MnrImportSchema' class for the element
	// that is neither an aspect, property nor an association of the node.
	ImportUnresolvedDefinition Class

	// ImportAssociationNotValidForType is the 'MjrImport', 'MnrImportSchema' class for the
	// association that is not defined for the node type nor any of its aspects.
	ImportAssociationNotValidForType Class
)

func registerImportSchema() {
	MnrImportSchema = MjrImport.MustRegisterMinor("Schema", "dictionary resolution failures")

	ImportUnknownType = MnrImportSchema.MustRegisterIndex("Unknown Type", "type is not defined in the dictionary").Class()
	ImportUnknownAspect = MnrImportSchema.MustRegisterIndex("Unknown Aspect", "aspect is not defined in the dictionary").Class()
	ImportUnknownAssociation = MnrImportSchema.MustRegisterIndex("Unknown Association",
		"child association is not defined in the dictionary").Class()
	ImportUnresolvedDefinition = MnrImportSchema.MustRegisterIndex("Unresolved Definition",
		"name is neither an aspect, property nor association of the node").Class()
	ImportAssociationNotValidForType = MnrImportSchema.MustRegisterIndex("Association Not Valid For Type",
		"association is not defined for the node type and its aspects").Class()
}

/**

Import Document

*/

var (
	// MnrImportDocument is the 'MjrImport' minor for the document structure failures.
	MnrImportDocument Minor

	// ImportMalformedValue is the 'MjrImport', 'MnrImportDocument' class for the missing end tags,
	// unexpected events and invalid literals.
	ImportMalformedValue Class

	// ImportInvalidNesting is the 'MjrImport', 'MnrImportDocument' class for the elements or text
	// placed where they are not allowed.
	ImportInvalidNesting Class

	// ImportMissingRequiredField is the 'MjrImport', 'MnrImportDocument' class for the missing
	// required elements or values.
	ImportMissingRequiredField Class

	// ImportRead is the 'MjrImport', 'MnrImportDocument' class for the failures of the
	// underlying xml reader.
	ImportRead Class
)

func registerImportDocument() {
	MnrImportDocument = MjrImport.MustRegisterMinor("Document", "document structure failures")

	ImportMalformedValue = MnrImportDocument.MustRegisterIndex("Malformed Value",
		"missing end tag, unexpected event or invalid literal").Class()
	ImportInvalidNesting = MnrImportDocument.MustRegisterIndex("Invalid Nesting",
		"element or text is not allowed in this place").Class()
	ImportMissingRequiredField = MnrImportDocument.MustRegisterIndex("Missing Required Field",
		"required element or value is missing").Class()
	ImportRead = MnrImportDocument.MustRegisterIndex("Read", "reading the xml document failed").Class()
}

/**

Import Reference

*/

var (
	// MnrImportReference is the 'MjrImport' minor for the node references and import scoped ids.
	MnrImportReference Minor

	// ImportDuplicateID is the 'MjrImport', 'MnrImportReference' class for the import id
	// used more than once in a document.
	ImportDuplicateID Class

	// ImportReferenceNotFound is the 'MjrImport', 'MnrImportReference' class for the reference
	// that does not resolve to a node.
	ImportReferenceNotFound Class
)

func registerImportReference() {
	MnrImportReference = MjrImport.MustRegisterMinor("Reference", "node references and import ids")

	ImportDuplicateID = MnrImportReference.MustRegisterIndex("Duplicate ID", "import id already used in the document").Class()
	ImportReferenceNotFound = MnrImportReference.MustRegisterIndex("Not Found", "referenced node not found").Class()
}

/**

Import Internal

*/

var (
	// MnrImportInternal is the 'MjrImport' minor for the importer state failures.
	MnrImportInternal Minor

	// ImportNoEnclosingNode is the 'MjrImport', 'MnrImportInternal' class when the
	// element requires an enclosing node and there is none.
	ImportNoEnclosingNode Class

	// ImportNodeState is the 'MjrImport', 'MnrImportInternal' class for the invalid
	// node context state transition.
	ImportNodeState Class

	// ImportImporter is the 'MjrImport', 'MnrImportInternal' class for the failures
	// reported by the importer without its own classification.
	ImportImporter Class
)

func registerImportInternal() {
	MnrImportInternal = MjrImport.MustRegisterMinor("Internal", "importer state failures")

	ImportNoEnclosingNode = MnrImportInternal.MustRegisterIndex("No Enclosing Node", "no enclosing node context").Class()
	ImportNodeState = MnrImportInternal.MustRegisterIndex("Node State", "invalid node context state").Class()
	ImportImporter = MnrImportInternal.MustRegisterIndex("Importer", "importer failure").Class()
}
