package skemagql

import "strconv"

// Kind tags the shape of a Descriptor.
type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
	KindBoolean
	KindDate
	KindObject
	KindArray
	KindAlternatives
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindAlternatives:
		return "alternatives"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Info carries the attributes every descriptor kind shares.
type Info struct {
	Required    bool
	Description string
}

// Descriptor is the read-only input node consumed by the translator.
// Implementations expose the view matching their Kind (NumberDescriptor,
// ObjectDescriptor, ...). Object, array and alternatives descriptors should be
// pointers so that identity can be used for caching.
type Descriptor interface {
	Kind() Kind
	Info() Info
}

// NumberDescriptor is the view of a KindNumber descriptor.
type NumberDescriptor interface {
	Descriptor
	IsInteger() bool
}

// StringDescriptor is an optional view of a KindString descriptor. Literals lists
// the literal values the string may take.
type StringDescriptor interface {
	Descriptor
	Literals() []string
}

// Meta is the metadata attached to object descriptors.
type Meta struct {
	// Name names the resulting GraphQL object type.
	Name string
	// Args defines the arguments of a field whose type is this object.
	Args map[string]Descriptor
}

// ObjectDescriptor is the view of a KindObject descriptor.
type ObjectDescriptor interface {
	Descriptor
	Fields() map[string]Descriptor
	ObjectMeta() Meta
}

// ArrayDescriptor is the view of a KindArray descriptor.
type ArrayDescriptor interface {
	Descriptor
	Elements() []Descriptor
}

// AlternativesDescriptor is the view of a KindAlternatives descriptor.
type AlternativesDescriptor interface {
	Descriptor
	Alternatives() []Descriptor
}
