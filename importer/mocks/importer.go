// Package mocks contains the testify mock implementations of the importer interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/neuronlabs/viewimport/importer"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

var (
	_ importer.Importer          = &Importer{}
	_ importer.ReferenceResolver = &Resolver{}
)

// Importer is the mock importer.Importer.
type Importer struct {
	mock.Mock
}

// RootRef implements importer.Importer.
func (i *Importer) RootRef() repository.NodeRef {
	args := i.Called()
	return args.Get(0).(repository.NodeRef)
}

// RootAssociation implements importer.Importer.
func (i *Importer) RootAssociation() qname.QName {
	args := i.Called()
	return args.Get(0).(qname.QName)
}

// ImportNode implements importer.Importer.
func (i *Importer) ImportNode(node importer.ImportNode) (repository.NodeRef, error) {
	args := i.Called(node)
	return args.Get(0).(repository.NodeRef), args.Error(1)
}

// ChildrenImported implements importer.Importer.
func (i *Importer) ChildrenImported(ref repository.NodeRef) error {
	return i.Called(ref).Error(0)
}

// ImportMetaData implements importer.Importer.
func (i *Importer) ImportMetaData(meta map[qname.QName]string) error {
	return i.Called(meta).Error(0)
}

// IsExcludedClass implements importer.Importer.
func (i *Importer) IsExcludedClass(name qname.QName) bool {
	return i.Called(name).Bool(0)
}

// Resolver is the mock importer.Importer which also implements importer.ReferenceResolver.
type Resolver struct {
	Importer
}

// ResolvePath implements importer.ReferenceResolver.
func (r *Resolver) ResolvePath(path string) (repository.NodeRef, error) {
	args := r.Called(path)
	return args.Get(0).(repository.NodeRef), args.Error(1)
}

// Describe implements importer.ReferenceResolver.
func (r *Resolver) Describe(ref repository.NodeRef) (qname.QName, []qname.QName, error) {
	args := r.Called(ref)
	aspects, _ := args.Get(1).([]qname.QName)
	return args.Get(0).(qname.QName), aspects, args.Error(2)
}
