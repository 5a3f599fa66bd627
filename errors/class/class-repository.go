package class

// MjrRepository is the major classification of the node store errors.
var MjrRepository Major

func registerRepositoryClasses() {
	MjrRepository = MustRegisterMajor("Repository", "node store related errors")

	registerRepositoryFactory()
	registerRepositoryConnection()
	registerRepositoryNode()
}

var (
	// MnrRepositoryFactory is the 'MjrRepository' minor for the store factories.
	MnrRepositoryFactory Minor

	// RepositoryFactoryNotFound is the 'MjrRepository', 'MnrRepositoryFactory' class
	// when no factory is registered for the driver.
	RepositoryFactoryNotFound Class

	// RepositoryFactoryAlreadyRegistered is the 'MjrRepository', 'MnrRepositoryFactory' class
	// when the factory for the driver is already registered.
	RepositoryFactoryAlreadyRegistered Class
)

func registerRepositoryFactory() {
	MnrRepositoryFactory = MjrRepository.MustRegisterMinor("Factory", "store factories")

	RepositoryFactoryNotFound = MnrRepositoryFactory.MustRegisterIndex("Not Found", "factory not found").Class()
	RepositoryFactoryAlreadyRegistered = MnrRepositoryFactory.MustRegisterIndex("Already Registered",
		"factory already registered").Class()
}

var (
	// MnrRepositoryConnection is the 'MjrRepository' minor for the store connections.
	MnrRepositoryConnection Minor

	// RepositoryConnectionFailed is the 'MjrRepository', 'MnrRepositoryConnection' class
	// when the store could not be reached.
	RepositoryConnectionFailed Class

	// RepositoryConnectionQuery is the 'MjrRepository', 'MnrRepositoryConnection' class
	// for the failed store statements.
	RepositoryConnectionQuery Class
)

func registerRepositoryConnection() {
	MnrRepositoryConnection = MjrRepository.MustRegisterMinor("Connection", "store connection")

	RepositoryConnectionFailed = MnrRepositoryConnection.MustRegisterIndex("Failed", "connecting to the store failed").Class()
	RepositoryConnectionQuery = MnrRepositoryConnection.MustRegisterIndex("Query", "store statement failed").Class()
}

var (
	// MnrRepositoryNode is the 'MjrRepository' minor for the node operations.
	MnrRepositoryNode Minor

	// RepositoryNodeNotFound is the 'MjrRepository', 'MnrRepositoryNode' class when the node
	// doesn't exist.
	RepositoryNodeNotFound Class

	// RepositoryNodeExists is the 'MjrRepository', 'MnrRepositoryNode' class when the node
	// with given id already exists.
	RepositoryNodeExists Class

	// RepositoryNodeChildName is the 'MjrRepository', 'MnrRepositoryNode' class when the
	// node child name could not be determined.
	RepositoryNodeChildName Class

	// RepositoryNodeInvalidRef is the 'MjrRepository', 'MnrRepositoryNode' class for the
	// malformed node reference literal.
	RepositoryNodeInvalidRef Class

	// RepositoryNodeRootImport is the 'MjrRepository', 'MnrRepositoryNode' class when a
	// complete repository export is imported outside of the store root.
	RepositoryNodeRootImport Class

	// RepositoryNodeRoot is the 'MjrRepository', 'MnrRepositoryNode' class for the
	// operations not allowed on the store root.
	RepositoryNodeRoot Class

	// RepositoryNodeAssociation is the 'MjrRepository', 'MnrRepositoryNode' class when the
	// association type between the parent and the child could not be determined.
	RepositoryNodeAssociation Class
)

func registerRepositoryNode() {
	MnrRepositoryNode = MjrRepository.MustRegisterMinor("Node", "node operations")

	RepositoryNodeNotFound = MnrRepositoryNode.MustRegisterIndex("Not Found", "node not found").Class()
	RepositoryNodeExists = MnrRepositoryNode.MustRegisterIndex("Exists", "node already exists").Class()
	RepositoryNodeChildName = MnrRepositoryNode.MustRegisterIndex("Child Name", "cannot determine child name").Class()
	RepositoryNodeInvalidRef = MnrRepositoryNode.MustRegisterIndex("Invalid Ref", "malformed node reference").Class()
	RepositoryNodeRootImport = MnrRepositoryNode.MustRegisterIndex("Root Import",
		"complete repository package imported outside of the root").Class()
	RepositoryNodeRoot = MnrRepositoryNode.MustRegisterIndex("Root", "operation not allowed on the store root").Class()
	RepositoryNodeAssociation = MnrRepositoryNode.MustRegisterIndex("Association", "cannot determine association type").Class()
}
