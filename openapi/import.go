// Package openapi imports the component schemas of an OpenAPI 3 document as
// skemagql descriptors using kin-openapi.
//
// The properties of one component schema (Options.Root) become the fields.
// Component references become shared object descriptors named after the
// component, so recursive components are supported. The x-graphql-name and
// x-graphql-args extensions behave as in package jsonschema; argument schemas
// are plain JSON Schema and cannot reference components.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	skemagql "github.com/reoring/skemagql"
	"github.com/reoring/skemagql/dsl"
	"github.com/reoring/skemagql/internal/importutil"
	"github.com/reoring/skemagql/jsonschema"
)

const (
	extName = "x-graphql-name"
	extArgs = "x-graphql-args"
)

// Import loads data (JSON or YAML) and converts the root component schema.
func Import(ctx context.Context, data []byte, opts Options) (map[string]skemagql.Descriptor, Diag, error) {
	d := &importutil.Report{}
	if err := ctx.Err(); err != nil {
		return nil, d, err
	}
	if len(data) == 0 {
		return nil, d, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, d, fmt.Errorf("openapi: load document: %w", err)
	}
	if !opts.SkipValidation {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, d, fmt.Errorf("openapi: validate document: %w", err)
		}
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, d, errors.New("openapi: document has no component schemas")
	}
	root := opts.root()
	ref, ok := doc.Components.Schemas[root]
	if !ok || ref == nil || ref.Value == nil {
		return nil, d, fmt.Errorf("openapi: component schema %q not found", root)
	}
	c := &converter{d: d, shared: map[string]*dsl.ObjectSchema{}}
	descs, err := c.properties(ref.Value, "#/components/schemas/"+root)
	if err != nil {
		return nil, d, err
	}
	if opts.Strict {
		if err := d.Strict("openapi"); err != nil {
			return nil, d, err
		}
	}
	return descs, d, nil
}

type converter struct {
	d      *importutil.Report
	shared map[string]*dsl.ObjectSchema
}

func (c *converter) properties(s *openapi3.Schema, at string) (map[string]skemagql.Descriptor, error) {
	required := map[string]bool{}
	for _, name := range s.Required {
		required[name] = true
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make(map[string]skemagql.Descriptor, len(names))
	for _, name := range names {
		desc, err := c.convert(s.Properties[name], at+"/properties/"+name, required[name])
		if err != nil {
			return nil, err
		}
		out[name] = desc
	}
	return out, nil
}

func (c *converter) convert(ref *openapi3.SchemaRef, at string, required bool) (skemagql.Descriptor, error) {
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: unresolved schema at %s", at)
	}
	s := ref.Value
	if ref.Ref != "" && schemaType(s) == "object" && len(s.OneOf) == 0 && len(s.AnyOf) == 0 {
		base, err := c.sharedObject(ref)
		if err != nil {
			return nil, err
		}
		if !required {
			return base, nil
		}
		return base.Share().Description(base.Info().Description).Required(), nil
	}
	if len(s.AllOf) > 0 {
		c.d.Warnf("allOf at %s is not supported and was ignored", at)
	}

	if alts := firstNonEmpty(s.OneOf, s.AnyOf); alts != nil {
		a := dsl.Alternatives()
		for i, alt := range alts {
			desc, err := c.convert(alt, fmt.Sprintf("%s/oneOf/%d", at, i), false)
			if err != nil {
				return nil, err
			}
			a.Try(desc)
		}
		return flag(a, s, required), nil
	}

	switch typ := schemaType(s); typ {
	case "string":
		if s.Format == "date" || s.Format == "date-time" {
			return flag(dsl.Date(), s, required), nil
		}
		str := dsl.String()
		for _, v := range s.Enum {
			if lit, ok := v.(string); ok {
				str.Valid(lit)
			}
		}
		return flag(str, s, required), nil
	case "integer":
		return flag(dsl.Number().Integer(), s, required), nil
	case "number":
		return flag(dsl.Number(), s, required), nil
	case "boolean":
		return flag(dsl.Boolean(), s, required), nil
	case "object":
		obj := dsl.Object(nil)
		if err := c.fillObject(obj, s, at); err != nil {
			return nil, err
		}
		return flag(obj, s, required), nil
	case "array":
		arr := dsl.Array()
		if s.Items == nil {
			return nil, fmt.Errorf("openapi: array at %s declares no items", at)
		}
		items := []*openapi3.SchemaRef{s.Items}
		if iv := s.Items.Value; s.Items.Ref == "" && iv != nil {
			if alts := firstNonEmpty(iv.OneOf, iv.AnyOf); alts != nil {
				items = alts
			}
		}
		for i, item := range items {
			desc, err := c.convert(item, fmt.Sprintf("%s/items/%d", at, i), false)
			if err != nil {
				return nil, err
			}
			arr.Items(desc)
		}
		return flag(arr, s, required), nil
	case "":
		return nil, fmt.Errorf("openapi: schema at %s declares no type", at)
	default:
		return nil, fmt.Errorf("openapi: unsupported type %q at %s", typ, at)
	}
}

// sharedObject imports a referenced component once. The descriptor is
// registered before its properties are converted so cycles terminate.
func (c *converter) sharedObject(ref *openapi3.SchemaRef) (*dsl.ObjectSchema, error) {
	if base, ok := c.shared[ref.Ref]; ok {
		return base, nil
	}
	name := importutil.TypeName(ref.Ref[strings.LastIndex(ref.Ref, "/")+1:])
	base := dsl.Object(nil).Meta(dsl.Meta{Name: name})
	if ref.Value.Description != "" {
		base.Description(ref.Value.Description)
	}
	c.shared[ref.Ref] = base
	if err := c.fillObject(base, ref.Value, ref.Ref); err != nil {
		return nil, err
	}
	return base, nil
}

func (c *converter) fillObject(obj *dsl.ObjectSchema, s *openapi3.Schema, at string) error {
	fields, err := c.properties(s, at)
	if err != nil {
		return err
	}
	for name, f := range fields {
		obj.Key(name, f)
	}
	meta := dsl.Meta{}
	if name, ok := s.Extensions[extName].(string); ok {
		meta.Name = name
	}
	if raw, ok := s.Extensions[extArgs]; ok {
		args, diag, err := jsonschema.Import(raw, jsonschema.Options{})
		if err != nil {
			return fmt.Errorf("openapi: %s at %s: %w", extArgs, at, err)
		}
		for _, w := range diag.Warnings() {
			c.d.Warnf("%s at %s: %s", extArgs, at, w)
		}
		meta.Args = args
	}
	obj.Meta(meta)
	return nil
}

// schemaType returns the first non-null declared type. Untyped schemas with
// properties or items count as objects or arrays.
func schemaType(s *openapi3.Schema) string {
	if t := firstSchemaType(s.Type); t != "" {
		return t
	}
	switch {
	case len(s.Properties) > 0:
		return "object"
	case s.Items != nil:
		return "array"
	}
	return ""
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}

func firstNonEmpty(refs ...openapi3.SchemaRefs) openapi3.SchemaRefs {
	for _, r := range refs {
		if len(r) > 0 {
			return r
		}
	}
	return nil
}

type flagged[T any] interface {
	skemagql.Descriptor
	Required() T
	Description(string) T
}

func flag[T flagged[T]](d T, s *openapi3.Schema, required bool) T {
	if required {
		d = d.Required()
	}
	if s.Description != "" {
		d = d.Description(s.Description)
	}
	return d
}
