package class

// Index is the lowest level error classification, unique within its Minor.
// It is the most precise division i.e.:
//	'major' Import
//	 'minor' Schema
//	  'index' Unknown Type.
type Index struct {
	value uint16
	minor Minor
	own   bool
}

// Class gets the class composed of the index, its minor and major.
func (i Index) Class() Class {
	if !i.valid() {
		return Class(0)
	}
	return Class(uint32(i.minor.major)<<(32-majorBitSize) | uint32(i.minor.value)<<indexBitSize | uint32(i.value))
}

// InBounds checks if the index value fits its bit size.
func (i Index) InBounds() bool {
	return i.value != 0 && int(i.value) <= maxIndexValue
}

// Name gets the index registered name.
func (i Index) Name() string {
	if !i.valid() {
		return ""
	}
	return i.container().get(i.value).name
}

// Description gets the index registered description.
func (i Index) Description() string {
	if !i.valid() {
		return ""
	}
	return i.container().get(i.value).description
}

// Minor returns the index Minor.
func (i Index) Minor() Minor {
	return i.minor
}

// Valid checks if the index is registered and in bounds.
func (i Index) Valid() bool {
	return i.valid()
}

// Value gets the index value.
func (i Index) Value() uint16 {
	return i.value
}

func (i Index) container() *indexContainer {
	return i.minor.container().indexContainer(i.minor.value)
}

func (i Index) valid() bool {
	return i.InBounds() && i.own && i.minor.valid()
}

type indexContainer struct {
	namedContainer
}
