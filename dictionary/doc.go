// Package dictionary contains the definitions of the repository content model:
// the data types, types, aspects, properties and associations the view
// documents are resolved against.
//
// The Registry is the in-memory Service implementation. Its definitions are
// registered from the Model descriptions that could be read from the yaml or
// json model files. The built in system and content models are available
// with the DefaultModels function.
package dictionary
