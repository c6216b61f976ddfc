package dsl

import (
	skemagql "github.com/reoring/skemagql"
)

// ArraySchema describes a list whose elements match one of its items.
type ArraySchema struct {
	flags
	items []skemagql.Descriptor
}

// Array returns an array descriptor accepting the given items.
func Array(items ...skemagql.Descriptor) *ArraySchema {
	return &ArraySchema{items: append([]skemagql.Descriptor(nil), items...)}
}

func (*ArraySchema) Kind() skemagql.Kind { return skemagql.KindArray }

// Items appends item descriptors.
func (a *ArraySchema) Items(items ...skemagql.Descriptor) *ArraySchema {
	a.items = append(a.items, items...)
	return a
}

// Elements returns the item descriptors in declaration order.
func (a *ArraySchema) Elements() []skemagql.Descriptor { return a.items }

func (a *ArraySchema) Required() *ArraySchema               { a.info.Required = true; return a }
func (a *ArraySchema) Optional() *ArraySchema               { a.info.Required = false; return a }
func (a *ArraySchema) Description(text string) *ArraySchema { a.info.Description = text; return a }
