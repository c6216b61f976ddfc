package dsl

import (
	skemagql "github.com/reoring/skemagql"
)

// Keys maps field names to descriptors.
type Keys = map[string]skemagql.Descriptor

// Meta names an object type and declares the arguments of fields typed by it.
type Meta = skemagql.Meta

// ObjectSchema describes an object with named fields.
type ObjectSchema struct {
	flags
	fields Keys
	meta   *Meta
}

// Object creates an object descriptor with the given fields. The map is
// copied; use Key to add fields later.
func Object(keys Keys) *ObjectSchema {
	o := &ObjectSchema{fields: Keys{}, meta: &Meta{}}
	for k, d := range keys {
		o.fields[k] = d
	}
	return o
}

func (*ObjectSchema) Kind() skemagql.Kind { return skemagql.KindObject }

// Fields returns the registered fields.
func (o *ObjectSchema) Fields() map[string]skemagql.Descriptor { return o.fields }

// ObjectMeta returns the metadata set through Meta.
func (o *ObjectSchema) ObjectMeta() skemagql.Meta { return *o.meta }

// Key registers or replaces a single field.
func (o *ObjectSchema) Key(name string, d skemagql.Descriptor) *ObjectSchema {
	o.fields[name] = d
	return o
}

// Meta merges m into the object metadata. Empty values leave the current
// settings untouched and args are merged by name.
func (o *ObjectSchema) Meta(m Meta) *ObjectSchema {
	if m.Name != "" {
		o.meta.Name = m.Name
	}
	if len(m.Args) > 0 {
		if o.meta.Args == nil {
			o.meta.Args = Keys{}
		}
		for k, d := range m.Args {
			o.meta.Args[k] = d
		}
	}
	return o
}

// Share returns a new descriptor backed by the same field map and metadata
// with fresh flags. Keys and Meta applied to either one later are visible
// through both.
// Importers use it to mark one use of a shared definition as required.
func (o *ObjectSchema) Share() *ObjectSchema {
	return &ObjectSchema{fields: o.fields, meta: o.meta}
}

func (o *ObjectSchema) Required() *ObjectSchema               { o.info.Required = true; return o }
func (o *ObjectSchema) Optional() *ObjectSchema               { o.info.Required = false; return o }
func (o *ObjectSchema) Description(text string) *ObjectSchema { o.info.Description = text; return o }
