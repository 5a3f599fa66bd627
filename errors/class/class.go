// Package class contains the error classification system of the view importer.
//
// Each Class is a 32-bit value composed of the Major (7 bits), Minor (10 bits)
// and Index (15 bits) parts. Majors divide the errors by the component
// ('Import', 'Dictionary', 'Repository'...), minors divide the major into
// the subjects and the index is the most precise classification.
package class

import (
	"errors"
	"strings"
)

const (
	majorBitSize = 7
	minorBitSize = 10
	indexBitSize = 32 - majorBitSize - minorBitSize

	maxIndexValue = (2 << (indexBitSize - 1)) - 1
	maxMinorValue = (2 << (minorBitSize - 1)) - 1
	maxMajorValue = (2 << (majorBitSize - 1)) - 1

	majorMinorMask = uint32((2<<(majorBitSize+minorBitSize-1) - 1) << indexBitSize)
)

func init() {
	registerClasses()
}

func registerClasses() {
	registerCommonClasses()
	registerConfigClasses()
	registerImportClasses()
	registerDictionaryClasses()
	registerRepositoryClasses()
}

// Class is the error classification.
// Example:
//  the binary form 0000001 0000000011 000000000000010 decomposes into
//	major 1 ('Import'), minor 3 ('Document') and index 2 ('Invalid Nesting').
type Class uint32

// Index gets the class index.
func (c Class) Index() Index {
	return Index{value: uint16(c.indexValue()), minor: c.minor(), own: true}
}

// IsMajor checks if the class is composed of the major 'm'.
func (c Class) IsMajor(m Major) bool {
	return c.major() == m
}

// Major gets the class major.
func (c Class) Major() Major {
	return c.major()
}

// Minor gets the class minor.
func (c Class) Minor() Minor {
	return c.minor()
}

// MjrMnrMasked returns the class value masked by the major and minor only.
func (c Class) MjrMnrMasked() uint32 {
	return uint32(c) & majorMinorMask
}

// String implements fmt.Stringer. The class is named by joined, space free names
// of its major, minor and index i.e.: 'ImportDocumentInvalidNesting'.
func (c Class) String() string {
	names := strings.Fields(c.Major().Name())

	minor := c.minor()
	if !minor.InBounds() {
		return strings.Join(names, "")
	}
	names = append(names, strings.Fields(minor.Name())...)

	if index := c.Index(); index.Valid() {
		names = append(names, strings.Fields(index.Name())...)
	}
	return strings.Join(names, "")
}

func (c Class) indexValue() int {
	return int(c & maxIndexValue)
}

func (c Class) major() Major {
	return Major(c >> (32 - majorBitSize))
}

func (c Class) minor() Minor {
	return Minor{value: uint16(int(c) >> indexBitSize & maxMinorValue), major: c.major(), own: true}
}

// NewClass gets the class for provided 'index'.
func NewClass(index Index) (Class, error) {
	minor := index.Minor()
	if !minor.Major().InBounds() {
		return Class(0), errors.New("provided invalid major")
	}
	if !minor.valid() {
		return Class(0), errors.New("provided invalid minor")
	}
	if !index.valid() {
		return Class(0), errors.New("provided invalid index")
	}
	return index.Class(), nil
}

// NewMinorClass gets the class for the 'minor' without an index.
func NewMinorClass(minor Minor) (Class, error) {
	if !minor.Major().InBounds() {
		return Class(0), errors.New("provided invalid major")
	}
	if !minor.valid() {
		return Class(0), errors.New("provided invalid minor")
	}
	return Class(uint32(minor.major)<<(32-majorBitSize) | uint32(minor.value)<<indexBitSize), nil
}

// MustNewMinorClass gets the minor class and panics if the minor is not valid.
func MustNewMinorClass(minor Minor) Class {
	c, err := NewMinorClass(minor)
	if err != nil {
		panic(err)
	}
	return c
}
