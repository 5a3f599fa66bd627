package qname

import (
	"strings"

	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
)

// QName is the namespace qualified name.
// The zero value is an empty name.
type QName struct {
	Namespace string
	Local     string
}

// New creates new qualified name for given namespace 'uri' and 'local' name.
func New(uri, local string) QName {
	return QName{Namespace: uri, Local: local}
}

// IsZero checks if the name is empty.
func (q QName) IsZero() bool {
	return q.Namespace == "" && q.Local == ""
}

// String implements fmt.Stringer. The name is rendered as '{uri}local'.
func (q QName) String() string {
	if q.Namespace == "" {
		return q.Local
	}
	return "{" + q.Namespace + "}" + q.Local
}

// Prefixed renders the name in the 'prefix:local' form using provided resolver.
// If the namespace has no registered prefix the '{uri}local' form is returned.
func (q QName) Prefixed(resolver NamespaceResolver) string {
	if q.Namespace == "" || resolver == nil {
		return q.String()
	}
	prefix, ok := resolver.Prefix(q.Namespace)
	if !ok {
		return q.String()
	}
	if prefix == "" {
		return q.Local
	}
	return prefix + ":" + q.Local
}

// Parse parses the qualified name literal. Both '{uri}local' and 'prefix:local'
// forms are accepted. A name without a prefix resolves to the default (empty prefix)
// namespace if the resolver knows it, otherwise the namespace is empty.
func Parse(s string, resolver NamespaceResolver) (QName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return QName{}, errors.New(class.ImportMalformedValue, "empty qualified name")
	}

	if s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end == -1 || end == len(s)-1 {
			return QName{}, errors.Newf(class.ImportMalformedValue, "qualified name: '%s' is malformed", s)
		}
		return New(s[1:end], s[end+1:]), nil
	}

	prefix, local := "", s
	if i := strings.IndexByte(s, ':'); i != -1 {
		prefix, local = s[:i], s[i+1:]
		if prefix == "" || local == "" {
			return QName{}, errors.Newf(class.ImportMalformedValue, "qualified name: '%s' is malformed", s)
		}
	}

	if resolver == nil {
		if prefix != "" {
			return QName{}, errors.Newf(class.ImportNamespaceNotRegistered, "namespace prefix: '%s' is not registered", prefix)
		}
		return New("", local), nil
	}

	uri, ok := resolver.NamespaceURI(prefix)
	if !ok {
		if prefix == "" {
			return New("", local), nil
		}
		return QName{}, errors.Newf(class.ImportNamespaceNotRegistered, "namespace prefix: '%s' is not registered", prefix)
	}
	return New(uri, local), nil
}

// MustParse parses the qualified name and panics on failure.
func MustParse(s string, resolver NamespaceResolver) QName {
	q, err := Parse(s, resolver)
	if err != nil {
		panic(err)
	}
	return q
}
