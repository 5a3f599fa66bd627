package class

// MjrDictionary is the major classification of the dictionary errors.
var MjrDictionary Major

func registerDictionaryClasses() {
	MjrDictionary = MustRegisterMajor("Dictionary", "dictionary model errors")

	registerDictionaryModel()
}

var (
	// MnrDictionaryModel is the 'MjrDictionary' minor for the model definitions.
	MnrDictionaryModel Minor

	// DictionaryModelRead is the 'MjrDictionary', 'MnrDictionaryModel' class when the model
	// file could not be read.
	DictionaryModelRead Class

	// DictionaryModelInvalid is the 'MjrDictionary', 'MnrDictionaryModel' class for the
	// invalid model definition.
	DictionaryModelInvalid Class

	// DictionaryModelDuplicated is the 'MjrDictionary', 'MnrDictionaryModel' class for the
	// definition registered more than once.
	DictionaryModelDuplicated Class

	// DictionaryModelUnresolved is the 'MjrDictionary', 'MnrDictionaryModel' class for the
	// definition referencing unknown class or data type.
	DictionaryModelUnresolved Class
)

func registerDictionaryModel() {
	MnrDictionaryModel = MjrDictionary.MustRegisterMinor("Model", "model definitions")

	DictionaryModelRead = MnrDictionaryModel.MustRegisterIndex("Read", "reading model failed").Class()
	DictionaryModelInvalid = MnrDictionaryModel.MustRegisterIndex("Invalid", "invalid model definition").Class()
	DictionaryModelDuplicated = MnrDictionaryModel.MustRegisterIndex("Duplicated", "definition already registered").Class()
	DictionaryModelUnresolved = MnrDictionaryModel.MustRegisterIndex("Unresolved", "definition references unknown name").Class()
}
