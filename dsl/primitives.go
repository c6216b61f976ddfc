package dsl

import (
	skemagql "github.com/reoring/skemagql"
)

// flags holds the attributes shared by every builder.
type flags struct {
	info skemagql.Info
}

func (f *flags) Info() skemagql.Info { return f.info }

// StringSchema describes a string field.
type StringSchema struct {
	flags
	valid []string
}

// String returns a string descriptor.
func String() *StringSchema { return &StringSchema{} }

func (*StringSchema) Kind() skemagql.Kind { return skemagql.KindString }

// Valid restricts the string to the given literals. A single literal on an
// object's discriminator field selects that object inside a union.
func (s *StringSchema) Valid(values ...string) *StringSchema {
	s.valid = append(s.valid, values...)
	return s
}

// Literals returns the values passed to Valid.
func (s *StringSchema) Literals() []string { return s.valid }

func (s *StringSchema) Required() *StringSchema               { s.info.Required = true; return s }
func (s *StringSchema) Optional() *StringSchema               { s.info.Required = false; return s }
func (s *StringSchema) Description(text string) *StringSchema { s.info.Description = text; return s }

// NumberSchema describes a numeric field.
type NumberSchema struct {
	flags
	integer bool
}

// Number returns a floating point number descriptor.
func Number() *NumberSchema { return &NumberSchema{} }

func (*NumberSchema) Kind() skemagql.Kind { return skemagql.KindNumber }

// Integer marks the number as integral.
func (n *NumberSchema) Integer() *NumberSchema { n.integer = true; return n }

// IsInteger reports whether Integer was called.
func (n *NumberSchema) IsInteger() bool { return n.integer }

func (n *NumberSchema) Required() *NumberSchema               { n.info.Required = true; return n }
func (n *NumberSchema) Optional() *NumberSchema               { n.info.Required = false; return n }
func (n *NumberSchema) Description(text string) *NumberSchema { n.info.Description = text; return n }

// BooleanSchema describes a boolean field.
type BooleanSchema struct{ flags }

// Boolean returns a boolean descriptor.
func Boolean() *BooleanSchema { return &BooleanSchema{} }

func (*BooleanSchema) Kind() skemagql.Kind { return skemagql.KindBoolean }

func (b *BooleanSchema) Required() *BooleanSchema               { b.info.Required = true; return b }
func (b *BooleanSchema) Optional() *BooleanSchema               { b.info.Required = false; return b }
func (b *BooleanSchema) Description(text string) *BooleanSchema { b.info.Description = text; return b }

// DateSchema describes a date field. GraphQL has no date scalar, so dates
// translate to String.
type DateSchema struct{ flags }

// Date returns a date descriptor.
func Date() *DateSchema { return &DateSchema{} }

func (*DateSchema) Kind() skemagql.Kind { return skemagql.KindDate }

func (d *DateSchema) Required() *DateSchema               { d.info.Required = true; return d }
func (d *DateSchema) Optional() *DateSchema               { d.info.Required = false; return d }
func (d *DateSchema) Description(text string) *DateSchema { d.info.Description = text; return d }
