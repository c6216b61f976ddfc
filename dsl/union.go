package dsl

import (
	skemagql "github.com/reoring/skemagql"
)

// AlternativesSchema describes a value matching one of several objects.
type AlternativesSchema struct {
	flags
	alts []skemagql.Descriptor
}

// Alternatives returns an alternatives descriptor over alts.
func Alternatives(alts ...skemagql.Descriptor) *AlternativesSchema {
	return &AlternativesSchema{alts: append([]skemagql.Descriptor(nil), alts...)}
}

func (*AlternativesSchema) Kind() skemagql.Kind { return skemagql.KindAlternatives }

// Try appends alternatives.
func (a *AlternativesSchema) Try(alts ...skemagql.Descriptor) *AlternativesSchema {
	a.alts = append(a.alts, alts...)
	return a
}

// Alternatives returns the alternatives in declaration order.
func (a *AlternativesSchema) Alternatives() []skemagql.Descriptor { return a.alts }

func (a *AlternativesSchema) Required() *AlternativesSchema { a.info.Required = true; return a }
func (a *AlternativesSchema) Optional() *AlternativesSchema { a.info.Required = false; return a }
func (a *AlternativesSchema) Description(text string) *AlternativesSchema {
	a.info.Description = text
	return a
}
