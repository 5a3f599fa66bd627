package class

import (
	"errors"
	"sync"
)

var majors = newMajors()

// Major is the 7 bit top level error classification.
type Major uint8

// Description gets the major registered description.
func (m Major) Description() string {
	return majors.description(m)
}

// InBounds checks if the major value fits its bit size.
func (m Major) InBounds() bool {
	return (m >> majorBitSize) == 0
}

// Minors gets the minors registered for the major.
func (m Major) Minors() []Minor {
	if !m.InBounds() {
		return nil
	}
	container := majors.minorContainer(m)

	minors := make([]Minor, 0, container.nextID)
	for i := uint16(1); i < container.nextID; i++ {
		minors = append(minors, Minor{value: i, major: m, own: true})
	}
	return minors
}

// MustRegisterMinor registers the minor for the major and panics on failure.
func (m Major) MustRegisterMinor(name string, description ...string) Minor {
	minor, err := m.RegisterMinor(name, description...)
	if err != nil {
		panic(err)
	}
	return minor
}

// Name gets the major registered name.
func (m Major) Name() string {
	return majors.name(m)
}

// RegisterMinor registers the minor with unique within the major 'name' and an
// optional 'description'.
func (m Major) RegisterMinor(name string, description ...string) (Minor, error) {
	if !m.InBounds() {
		return Minor{}, errors.New("major out of bounds")
	}
	return majors.minorContainer(m).new(m, name, description...)
}

func (m Major) containerIndex() uint8 {
	return uint8(m) - 1
}

// RegisterMajor registers new major with unique 'name' and optional description.
func RegisterMajor(name string, description ...string) (Major, error) {
	return majors.new(name, description...)
}

// MustRegisterMajor registers new major and panics on failure.
func MustRegisterMajor(name string, description ...string) Major {
	m, err := RegisterMajor(name, description...)
	if err != nil {
		panic(err)
	}
	return m
}

type majorsContainer struct {
	uniqueNames  map[string]struct{}
	names        []string
	descriptions []string
	minors       []*minorsContainer

	currentID uint16
	idLock    sync.Mutex
}

func (m *majorsContainer) description(major Major) string {
	if major == 0 || !major.InBounds() {
		return ""
	}
	return m.descriptions[major.containerIndex()]
}

func (m *majorsContainer) minorContainer(v Major) *minorsContainer {
	minorCtr := m.minors[v.containerIndex()]
	if minorCtr == nil {
		minorCtr = newMinorsContainer()
		m.minors[v.containerIndex()] = minorCtr
	}
	return minorCtr
}

func (m *majorsContainer) name(major Major) string {
	if major == 0 || !major.InBounds() {
		return ""
	}
	return m.names[major.containerIndex()]
}

func (m *majorsContainer) new(name string, description ...string) (Major, error) {
	m.idLock.Lock()
	defer m.idLock.Unlock()

	if _, exists := m.uniqueNames[name]; exists {
		return Major(0), errors.New("major name already registered")
	}
	if m.currentID > maxMajorValue {
		return Major(0), errors.New("too many majors registered")
	}

	major := Major(m.currentID)
	m.currentID++

	m.names[major.containerIndex()] = name
	if len(description) == 1 {
		m.descriptions[major.containerIndex()] = description[0]
	}
	m.uniqueNames[name] = struct{}{}
	return major, nil
}

func (m *majorsContainer) reset() {
	fresh := newMajors()
	m.currentID = fresh.currentID
	m.names = fresh.names
	m.descriptions = fresh.descriptions
	m.minors = fresh.minors
	m.uniqueNames = fresh.uniqueNames
}

func newMajors() *majorsContainer {
	return &majorsContainer{
		names:        make([]string, maxMajorValue+1),
		descriptions: make([]string, maxMajorValue+1),
		minors:       make([]*minorsContainer, maxMajorValue+1),
		uniqueNames:  make(map[string]struct{}),
		currentID:    1,
	}
}
