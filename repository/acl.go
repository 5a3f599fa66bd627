package repository

import (
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
)

const (
	// GuestPermission is the legacy permission name replaced by the consumer permission.
	GuestPermission = "guest"
	// DefaultConsumerPermission is the default consumer level permission name.
	DefaultConsumerPermission = "Consumer"
)

// AccessStatus defines if the permission is allowed or denied.
type AccessStatus int

// Access statuses.
const (
	Allowed AccessStatus = iota
	Denied
)

// String implements fmt.Stringer.
func (a AccessStatus) String() string {
	if a == Denied {
		return "DENIED"
	}
	return "ALLOWED"
}

// ParseAccessStatus parses the 'ALLOWED' or 'DENIED' literal.
func ParseAccessStatus(s string) (AccessStatus, error) {
	switch s {
	case "ALLOWED":
		return Allowed, nil
	case "DENIED":
		return Denied, nil
	}
	return Allowed, errors.Newf(class.ImportMalformedValue, "invalid access status: '%s'", s)
}

// AccessControlEntry is the permission granted or denied to the authority.
type AccessControlEntry struct {
	Status     AccessStatus
	Authority  string
	Permission string
}

// NewAccessControlEntry creates the entry. The 'guest' permission is replaced with
// the 'consumer' permission, which defaults to DefaultConsumerPermission if empty.
func NewAccessControlEntry(status AccessStatus, authority, permission, consumer string) AccessControlEntry {
	if permission == GuestPermission {
		if consumer == "" {
			consumer = DefaultConsumerPermission
		}
		permission = consumer
	}
	return AccessControlEntry{Status: status, Authority: authority, Permission: permission}
}
