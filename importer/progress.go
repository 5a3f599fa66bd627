package importer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jinzhu/inflection"

	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

// Progress is the listener notified about the NodeImporter changes.
type Progress interface {
	NodeCreated(assoc repository.ChildAssociation)
	NodeLinked(assoc repository.ChildAssociation)
	AspectAdded(ref repository.NodeRef, aspect qname.QName)
	PropertiesSet(ref repository.NodeRef, props map[qname.QName]repository.Value)
	PermissionsSet(ref repository.NodeRef, acl []repository.AccessControlEntry)
	MetaDataImported(meta map[qname.QName]string)
}

// compile time check for the Progress interface.
var _ Progress = &Summary{}

// Summary is the Progress that counts the import changes.
type Summary struct {
	Created     int
	Linked      int
	Aspects     int
	Properties  int
	Permissions int
	MetaData    int

	lock sync.Mutex
}

// NodeCreated implements Progress.
func (s *Summary) NodeCreated(repository.ChildAssociation) {
	s.lock.Lock()
	s.Created++
	s.lock.Unlock()
}

// NodeLinked implements Progress.
func (s *Summary) NodeLinked(repository.ChildAssociation) {
	s.lock.Lock()
	s.Linked++
	s.lock.Unlock()
}

// AspectAdded implements Progress.
func (s *Summary) AspectAdded(repository.NodeRef, qname.QName) {
	s.lock.Lock()
	s.Aspects++
	s.lock.Unlock()
}

// PropertiesSet implements Progress.
func (s *Summary) PropertiesSet(_ repository.NodeRef, props map[qname.QName]repository.Value) {
	s.lock.Lock()
	s.Properties += len(props)
	s.lock.Unlock()
}

// PermissionsSet implements Progress.
func (s *Summary) PermissionsSet(_ repository.NodeRef, acl []repository.AccessControlEntry) {
	s.lock.Lock()
	s.Permissions += len(acl)
	s.lock.Unlock()
}

// MetaDataImported implements Progress.
func (s *Summary) MetaDataImported(map[qname.QName]string) {
	s.lock.Lock()
	s.MetaData++
	s.lock.Unlock()
}

// String implements fmt.Stringer i.e. '2 nodes created, 1 node linked, 0 aspects added'.
func (s *Summary) String() string {
	s.lock.Lock()
	defer s.lock.Unlock()

	parts := []string{
		count(s.Created, "node", "created"),
		count(s.Linked, "node", "linked"),
		count(s.Aspects, "aspect", "added"),
		count(s.Properties, "property", "set"),
		count(s.Permissions, "permission", "set"),
		count(s.MetaData, "metadata block", "imported"),
	}
	return strings.Join(parts, ", ")
}

func count(n int, noun, verb string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s %s", n, noun, verb)
}
