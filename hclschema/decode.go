// Package hclschema reads skemagql descriptors from HCL files.
//
//	field "person" {
//	  kind        = "object"
//	  type_name   = "Person"
//	  description = "The current person"
//
//	  field "name" {
//	    kind     = "string"
//	    required = true
//	  }
//	  arg "id" {
//	    kind    = "number"
//	    integer = true
//	  }
//	}
//
//	field "blocks" {
//	  kind = "array"
//	  item "image" {
//	    kind = "object"
//	    field "type" {
//	      kind  = "string"
//	      valid = ["image"]
//	    }
//	  }
//	}
//
// Arrays list their item descriptors in item blocks, alternatives in
// alternative blocks; block labels of items and alternatives are informative.
// Objects may refer to another top-level object with type_name plus
// ref = true, which is how recursive types are written.
//
// Attribute expressions may reference variables passed to DecodeVars, for
// example description = "${product} identifier".
package hclschema

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	skemagql "github.com/reoring/skemagql"
	"github.com/reoring/skemagql/dsl"
)

// hclFile is the top-level structure of a descriptor file.
type hclFile struct {
	Fields []*hclField `hcl:"field,block"`
}

// hclField is one descriptor block. Nested blocks reuse the same shape.
type hclField struct {
	Name         string      `hcl:"name,label"`
	Kind         string      `hcl:"kind"`
	Required     *bool       `hcl:"required,optional"`
	Description  *string     `hcl:"description,optional"`
	Integer      *bool       `hcl:"integer,optional"`
	Valid        []string    `hcl:"valid,optional"`
	TypeName     *string     `hcl:"type_name,optional"`
	Ref          *bool       `hcl:"ref,optional"`
	Fields       []*hclField `hcl:"field,block"`
	Args         []*hclField `hcl:"arg,block"`
	Items        []*hclField `hcl:"item,block"`
	Alternatives []*hclField `hcl:"alternative,block"`
}

// DecodeFile parses and decodes a descriptor file from disk.
func DecodeFile(filePath string) (map[string]skemagql.Descriptor, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclschema: failed to parse %s: %w", filePath, diags)
	}
	return decodeBody(file.Body, filePath, nil)
}

// Decode parses and decodes descriptor source. filename is used in
// diagnostics only.
func Decode(src []byte, filename string) (map[string]skemagql.Descriptor, error) {
	return DecodeVars(src, filename, nil)
}

// DecodeVars is Decode with variables available to attribute expressions.
func DecodeVars(src []byte, filename string, vars map[string]cty.Value) (map[string]skemagql.Descriptor, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclschema: failed to parse %s: %w", filename, diags)
	}
	var ctx *hcl.EvalContext
	if len(vars) > 0 {
		ctx = &hcl.EvalContext{Variables: vars}
	}
	return decodeBody(file.Body, filename, ctx)
}

func decodeBody(body hcl.Body, filename string, ctx *hcl.EvalContext) (map[string]skemagql.Descriptor, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(body, ctx, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("hclschema: failed to decode %s: %w", filename, diags)
	}
	b := &builder{named: map[string]*dsl.ObjectSchema{}}
	// Register named top-level objects first so ref blocks can point at them
	// regardless of declaration order.
	for _, f := range parsed.Fields {
		if f.Kind == "object" && f.TypeName != nil && !isRef(f) {
			b.named[*f.TypeName] = dsl.Object(nil).Meta(dsl.Meta{Name: *f.TypeName})
		}
	}
	return b.fields(parsed.Fields)
}

type builder struct {
	named map[string]*dsl.ObjectSchema
	// filled records named objects whose blocks were already decoded.
	filled map[string]bool
}

func (b *builder) fields(blocks []*hclField) (map[string]skemagql.Descriptor, error) {
	out := make(map[string]skemagql.Descriptor, len(blocks))
	for _, f := range blocks {
		if _, dup := out[f.Name]; dup {
			return nil, fmt.Errorf("hclschema: duplicate block %q", f.Name)
		}
		d, err := b.descriptor(f)
		if err != nil {
			return nil, err
		}
		out[f.Name] = d
	}
	return out, nil
}

func (b *builder) list(blocks []*hclField) ([]skemagql.Descriptor, error) {
	out := make([]skemagql.Descriptor, 0, len(blocks))
	for _, f := range blocks {
		d, err := b.descriptor(f)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (b *builder) descriptor(f *hclField) (skemagql.Descriptor, error) {
	if err := f.checkBlocks(); err != nil {
		return nil, err
	}
	switch f.Kind {
	case "string":
		return apply(dsl.String().Valid(f.Valid...), f), nil
	case "number":
		n := dsl.Number()
		if f.Integer != nil && *f.Integer {
			n.Integer()
		}
		return apply(n, f), nil
	case "integer":
		return apply(dsl.Number().Integer(), f), nil
	case "boolean":
		return apply(dsl.Boolean(), f), nil
	case "date":
		return apply(dsl.Date(), f), nil
	case "object":
		return b.object(f)
	case "array":
		items, err := b.list(f.Items)
		if err != nil {
			return nil, err
		}
		return apply(dsl.Array(items...), f), nil
	case "alternatives":
		alts, err := b.list(f.Alternatives)
		if err != nil {
			return nil, err
		}
		return apply(dsl.Alternatives(alts...), f), nil
	default:
		return nil, fmt.Errorf("hclschema: block %q: unknown kind %q", f.Name, f.Kind)
	}
}

func (b *builder) object(f *hclField) (skemagql.Descriptor, error) {
	if isRef(f) {
		if f.TypeName == nil {
			return nil, fmt.Errorf("hclschema: block %q: ref requires type_name", f.Name)
		}
		target, ok := b.named[*f.TypeName]
		if !ok {
			return nil, fmt.Errorf("hclschema: block %q: ref to unknown type %q", f.Name, *f.TypeName)
		}
		if !isTrue(f.Required) && f.Description == nil {
			return target, nil
		}
		return apply(target.Share(), f), nil
	}

	obj := dsl.Object(nil)
	shared := false
	if f.TypeName != nil {
		if pre, ok := b.named[*f.TypeName]; ok {
			if b.filled[*f.TypeName] {
				return nil, fmt.Errorf("hclschema: block %q: type %q is declared twice; use ref = true", f.Name, *f.TypeName)
			}
			if b.filled == nil {
				b.filled = map[string]bool{}
			}
			b.filled[*f.TypeName] = true
			obj, shared = pre, true
		}
		obj.Meta(dsl.Meta{Name: *f.TypeName})
	}
	fields, err := b.fields(f.Fields)
	if err != nil {
		return nil, err
	}
	for name, d := range fields {
		obj.Key(name, d)
	}
	if len(f.Args) > 0 {
		args, err := b.fields(f.Args)
		if err != nil {
			return nil, err
		}
		obj.Meta(dsl.Meta{Args: args})
	}
	// Flags of a shared declaration belong to this field only; ref blocks
	// start from the bare definition.
	if shared && (isTrue(f.Required) || f.Description != nil) {
		return apply(obj.Share(), f), nil
	}
	return apply(obj, f), nil
}

// checkBlocks rejects nested blocks that the kind cannot hold.
func (f *hclField) checkBlocks() error {
	allowed := map[string]bool{}
	switch f.Kind {
	case "object":
		allowed["field"], allowed["arg"] = true, true
	case "array":
		allowed["item"] = true
	case "alternatives":
		allowed["alternative"] = true
	}
	for name, blocks := range map[string][]*hclField{
		"field": f.Fields, "arg": f.Args, "item": f.Items, "alternative": f.Alternatives,
	} {
		if len(blocks) > 0 && !allowed[name] {
			return fmt.Errorf("hclschema: block %q: %s blocks are not allowed in a %q descriptor", f.Name, name, f.Kind)
		}
	}
	return nil
}

type flagged[T any] interface {
	skemagql.Descriptor
	Required() T
	Description(string) T
}

func apply[T flagged[T]](d T, f *hclField) T {
	if isTrue(f.Required) {
		d = d.Required()
	}
	if f.Description != nil {
		d = d.Description(*f.Description)
	}
	return d
}

func isRef(f *hclField) bool { return isTrue(f.Ref) }

func isTrue(b *bool) bool { return b != nil && *b }
