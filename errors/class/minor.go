package class

import (
	"errors"
	"sync"
)

// Minor is the 10 bit mid level error classification, unique within its Major.
type Minor struct {
	value uint16
	major Major

	own bool
}

// Description gets the minor's description.
func (m Minor) Description() string {
	if !m.valid() {
		return ""
	}
	return m.container().get(m.value).description
}

// InBounds checks if the minor value fits its bit size.
func (m Minor) InBounds() bool {
	return m.value>>minorBitSize == 0 && m.value != 0
}

// Indexes returns minor's registered indexes.
func (m Minor) Indexes() []Index {
	if !m.valid() {
		return nil
	}
	ctr := m.container().indexContainer(m.value)

	ctr.lock.Lock()
	defer ctr.lock.Unlock()

	indexes := make([]Index, len(ctr.entries))
	for i := range ctr.entries {
		indexes[i] = Index{value: uint16(i + 1), minor: m, own: true}
	}
	return indexes
}

// MustRegisterIndex registers the index for the minor and panics on failure.
func (m Minor) MustRegisterIndex(name string, description ...string) Index {
	idx, err := m.RegisterIndex(name, description...)
	if err != nil {
		panic(err)
	}
	return idx
}

// Name gets the minor registered name.
func (m Minor) Name() string {
	if !m.valid() {
		return ""
	}
	return m.container().get(m.value).name
}

// Major gets the minor's Major.
func (m Minor) Major() Major {
	return m.major
}

// Valid checks if the Minor is registered and in bounds.
func (m Minor) Valid() bool {
	return m.valid()
}

// Value gets the minor's value.
func (m Minor) Value() uint16 {
	return m.value
}

// RegisterIndex registers the index with unique within the minor 'name'.
func (m Minor) RegisterIndex(name string, description ...string) (Index, error) {
	if !m.valid() {
		return Index{}, errors.New("invalid minor provided")
	}
	value, err := m.container().indexContainer(m.value).new(name, maxIndexValue, description...)
	if err != nil {
		return Index{}, err
	}
	return Index{value: value, minor: m, own: true}, nil
}

func (m Minor) container() *minorsContainer {
	return majors.minorContainer(m.major)
}

func (m Minor) valid() bool {
	return m.InBounds() && m.own
}

type entry struct {
	name        string
	description string
}

// namedContainer stores the names of the classifications with the values starting from 1.
type namedContainer struct {
	uniqueNames map[string]struct{}
	entries     []entry
	lock        sync.Mutex
}

func (c *namedContainer) new(name string, max int, description ...string) (uint16, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, exists := c.uniqueNames[name]; exists {
		return 0, errors.New("name already registered: " + name)
	}
	if len(c.entries)+1 > max {
		return 0, errors.New("too many classifications registered")
	}

	e := entry{name: name}
	if len(description) > 0 {
		e.description = description[0]
	}
	c.entries = append(c.entries, e)
	c.uniqueNames[name] = struct{}{}
	return uint16(len(c.entries)), nil
}

func (c *namedContainer) get(value uint16) entry {
	c.lock.Lock()
	defer c.lock.Unlock()

	if value == 0 || int(value) > len(c.entries) {
		return entry{}
	}
	return c.entries[value-1]
}

func newNamedContainer() namedContainer {
	return namedContainer{uniqueNames: make(map[string]struct{})}
}

type minorsContainer struct {
	namedContainer
	indices map[uint16]*indexContainer
	nextID  uint16
}

func (m *minorsContainer) new(major Major, name string, description ...string) (Minor, error) {
	value, err := m.namedContainer.new(name, maxMinorValue, description...)
	if err != nil {
		return Minor{}, err
	}
	m.nextID = value + 1
	return Minor{value: value, major: major, own: true}, nil
}

func (m *minorsContainer) indexContainer(minor uint16) *indexContainer {
	m.lock.Lock()
	defer m.lock.Unlock()

	ctr, ok := m.indices[minor]
	if !ok {
		ctr = &indexContainer{namedContainer: newNamedContainer()}
		m.indices[minor] = ctr
	}
	return ctr
}

func newMinorsContainer() *minorsContainer {
	return &minorsContainer{
		namedContainer: newNamedContainer(),
		indices:        make(map[uint16]*indexContainer),
		nextID:         1,
	}
}
