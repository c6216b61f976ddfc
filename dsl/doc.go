// Package dsl provides Joi-like builders for skemagql descriptors.
//
// Overview
//   - Scalars: String()/Number()/Boolean()/Date(), with Number().Integer() and
//     String().Valid(...) for literal values.
//   - Composites: Object(Keys), Array(items...), Alternatives(alts...).
//   - Every builder chains Required()/Optional()/Description(text).
//   - Object(...).Meta(Meta{Name, Args}) names the GraphQL type and declares
//     field arguments.
//
// Builders return pointers; reuse the same pointer to share a type, and use
// Object.Key to close cycles:
//
//	person := dsl.Object(dsl.Keys{"name": dsl.String()}).Meta(dsl.Meta{Name: "Person"})
//	person.Key("friends", dsl.Array(person))
package dsl
