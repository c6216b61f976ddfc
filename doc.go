// Package skemagql translates schema descriptors into GraphQL field
// definitions built with github.com/graphql-go/graphql.
//
// A descriptor is a scalar (string, number, boolean, date), an object, an
// array, or a set of alternatives. Translation maps:
//
//   - string and date to String, number to Float (Int when IsInteger reports
//     true), boolean to Boolean;
//   - objects to named object types (Meta.Name, or a PascalCase name derived
//     from the field path) whose fields are resolved lazily;
//   - arrays with one item descriptor to a list of that item, arrays with
//     several to a list of a synthesized union;
//   - alternatives to a union whose members must all be objects.
//
// Required descriptors are wrapped in NonNull. Meta.Args on an object become
// the arguments of every field typed by it; object arguments become input
// object types.
//
// Descriptors can be built with the dsl package or imported from JSON Schema
// (package jsonschema), OpenAPI components (package openapi) or HCL files
// (package hclschema).
//
// Typical usage:
//
//	fields, err := skemagql.Translate(map[string]skemagql.Descriptor{
//		"person": dsl.Object(dsl.Keys{
//			"name": dsl.String(),
//			"age":  dsl.Number().Integer(),
//		}).Meta(dsl.Meta{Name: "Person"}),
//	})
//	query := graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: fields})
package skemagql
