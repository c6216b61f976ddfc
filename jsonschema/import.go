// Package jsonschema imports JSON Schema documents (JSON, YAML or decoded
// maps) as skemagql descriptors.
//
// The root must be an object schema; each of its properties becomes one entry
// of the returned mapping. Supported keywords: type, format (date, date-time),
// enum/const (string literals), required, description, properties, items
// (including oneOf/anyOf inside items), oneOf/anyOf and local $ref. Two
// extensions drive GraphQL specifics: x-graphql-name names an object type and
// x-graphql-args declares field arguments as an object schema.
package jsonschema

import (
	"errors"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"

	skemagql "github.com/reoring/skemagql"
	"github.com/reoring/skemagql/dsl"
	"github.com/reoring/skemagql/internal/importutil"
)

const (
	extName = "x-graphql-name"
	extArgs = "x-graphql-args"
)

// Import converts the properties of an object schema into descriptors.
// The input can be a decoded map[string]any, raw JSON bytes, or any value
// that marshals to a JSON object.
func Import(schema any, opts Options) (map[string]skemagql.Descriptor, Diag, error) {
	d := &importutil.Report{}
	if schema == nil {
		return nil, d, errors.New("jsonschema: nil schema")
	}
	var root map[string]any
	switch t := schema.(type) {
	case []byte:
		if err := json.Unmarshal(t, &root); err != nil {
			return nil, d, fmt.Errorf("jsonschema: invalid JSON: %w", err)
		}
	case map[string]any:
		root = t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, d, fmt.Errorf("jsonschema: cannot marshal input: %w", err)
		}
		if err := json.Unmarshal(b, &root); err != nil {
			return nil, d, fmt.Errorf("jsonschema: invalid marshaled JSON: %w", err)
		}
	}
	if root == nil {
		return nil, d, errors.New("jsonschema: root is not an object")
	}
	if t, _ := root["type"].(string); t != "" && t != "object" {
		return nil, d, fmt.Errorf("jsonschema: root must be an object schema, got type=%q", t)
	}

	im := &importer{root: root, opts: opts, d: d, shared: map[string]*dsl.ObjectSchema{}, active: map[string]bool{}}
	descs, err := im.properties(root, "")
	if err != nil {
		return nil, d, err
	}
	if opts.Strict {
		if err := d.Strict("jsonschema"); err != nil {
			return nil, d, err
		}
	}
	return descs, d, nil
}

type importer struct {
	root map[string]any
	opts Options
	d    *importutil.Report
	// shared holds object definitions reached through $ref, keyed by ref.
	shared map[string]*dsl.ObjectSchema
	// active tracks non-object refs being expanded to detect cycles.
	active map[string]bool
}

// properties converts node.properties honoring node.required.
func (im *importer) properties(node map[string]any, at string) (map[string]skemagql.Descriptor, error) {
	pm, _ := node["properties"].(map[string]any)
	required := map[string]bool{}
	for _, name := range importutil.RequiredNames(node) {
		required[name] = true
	}
	out := make(map[string]skemagql.Descriptor, len(pm))
	for _, name := range sortedNames(pm) {
		ps, ok := pm[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("jsonschema: %s/properties/%s is not a schema", at, name)
		}
		desc, err := im.convert(ps, at+"/properties/"+name, required[name])
		if err != nil {
			return nil, err
		}
		out[name] = desc
	}
	for name := range required {
		if _, ok := pm[name]; !ok {
			im.d.Warnf("required property %q is not declared at %s", name, pointerOrRoot(at))
		}
	}
	return out, nil
}

// convert maps one schema node to a descriptor.
func (im *importer) convert(node map[string]any, at string, required bool) (skemagql.Descriptor, error) {
	if ref, ok := node["$ref"].(string); ok {
		return im.ref(ref, node, at, required)
	}
	im.warnUnsupported(node, at)

	if alts := firstOf(node, "oneOf", "anyOf"); alts != nil {
		a := dsl.Alternatives()
		for i, raw := range alts {
			m, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("jsonschema: %s/%d is not a schema", at, i)
			}
			alt, err := im.convert(m, fmt.Sprintf("%s/%d", at, i), false)
			if err != nil {
				return nil, err
			}
			a.Try(alt)
		}
		return flag(a, node, required), nil
	}

	switch typ := im.schemaType(node, at); typ {
	case "string":
		if f, _ := node["format"].(string); f == "date" || f == "date-time" {
			return flag(dsl.Date(), node, required), nil
		}
		return flag(dsl.String().Valid(im.literals(node, at)...), node, required), nil
	case "integer":
		return flag(dsl.Number().Integer(), node, required), nil
	case "number":
		return flag(dsl.Number(), node, required), nil
	case "boolean":
		return flag(dsl.Boolean(), node, required), nil
	case "object":
		obj := dsl.Object(nil)
		if err := im.fillObject(obj, node, at); err != nil {
			return nil, err
		}
		return flag(obj, node, required), nil
	case "array":
		arr, err := im.array(node, at)
		if err != nil {
			return nil, err
		}
		return flag(arr, node, required), nil
	case "":
		return nil, fmt.Errorf("jsonschema: %s declares no type", pointerOrRoot(at))
	default:
		return nil, fmt.Errorf("jsonschema: unsupported type %q at %s", typ, pointerOrRoot(at))
	}
}

// fillObject copies properties, name and args of node into obj.
func (im *importer) fillObject(obj *dsl.ObjectSchema, node map[string]any, at string) error {
	fields, err := im.properties(node, at)
	if err != nil {
		return err
	}
	for name, f := range fields {
		obj.Key(name, f)
	}
	meta := dsl.Meta{}
	if name, ok := node[extName].(string); ok {
		meta.Name = name
	}
	if raw, ok := node[extArgs]; ok {
		argsNode, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("jsonschema: %s/%s must be an object schema", at, extArgs)
		}
		if meta.Args, err = im.properties(argsNode, at+"/"+extArgs); err != nil {
			return err
		}
	}
	obj.Meta(meta)
	return nil
}

// array converts items. A tuple, or oneOf/anyOf inside items, produces one
// item descriptor per member.
func (im *importer) array(node map[string]any, at string) (*dsl.ArraySchema, error) {
	arr := dsl.Array()
	var members []any
	switch items := node["items"].(type) {
	case map[string]any:
		if alts := firstOf(items, "oneOf", "anyOf"); alts != nil && items["$ref"] == nil {
			members = alts
			at += "/items"
		} else {
			item, err := im.convert(items, at+"/items", false)
			if err != nil {
				return nil, err
			}
			return arr.Items(item), nil
		}
	case []any:
		members = items
		at += "/items"
	case nil:
		return nil, fmt.Errorf("jsonschema: array at %s declares no items", pointerOrRoot(at))
	default:
		return nil, fmt.Errorf("jsonschema: %s/items is not a schema", at)
	}
	for i, raw := range members {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("jsonschema: %s/%d is not a schema", at, i)
		}
		item, err := im.convert(m, fmt.Sprintf("%s/%d", at, i), false)
		if err != nil {
			return nil, err
		}
		arr.Items(item)
	}
	return arr, nil
}

// schemaType returns the declared type, picking the first non-null entry of
// a type array. Objects without a type are recognized by their properties.
func (im *importer) schemaType(node map[string]any, at string) string {
	switch t := node["type"].(type) {
	case string:
		return t
	case []any:
		var picked string
		for _, v := range t {
			s, _ := v.(string)
			if s == "" || s == "null" {
				continue
			}
			if picked == "" {
				picked = s
				continue
			}
			im.d.Warnf("type union %v at %s narrowed to %q", t, pointerOrRoot(at), picked)
			break
		}
		return picked
	}
	if _, ok := node["properties"]; ok {
		return "object"
	}
	if _, ok := node["items"]; ok {
		return "array"
	}
	return ""
}

// literals collects string values of enum and const.
func (im *importer) literals(node map[string]any, at string) []string {
	var out []string
	if c, ok := node["const"]; ok {
		if s, ok := c.(string); ok {
			out = append(out, s)
		} else {
			im.d.Warnf("non-string const at %s ignored", pointerOrRoot(at))
		}
	}
	if enum, ok := node["enum"].([]any); ok {
		for _, v := range enum {
			if s, ok := v.(string); ok {
				out = append(out, s)
				continue
			}
			im.d.Warnf("non-string enum value %v at %s ignored", v, pointerOrRoot(at))
		}
	}
	return out
}

var unsupportedKeywords = []string{"allOf", "not", "if", "then", "else", "patternProperties", "dependentSchemas"}

func (im *importer) warnUnsupported(node map[string]any, at string) {
	for _, k := range unsupportedKeywords {
		if _, ok := node[k]; ok {
			im.d.Warnf("keyword %q at %s is not supported and was ignored", k, pointerOrRoot(at))
		}
	}
	if _, ok := node["additionalProperties"].(map[string]any); ok {
		im.d.Warnf("additionalProperties as schema at %s is ignored", pointerOrRoot(at))
	}
}

// flagged is implemented by every dsl builder.
type flagged[T any] interface {
	skemagql.Descriptor
	Required() T
	Description(string) T
}

// flag applies required and description to a builder.
func flag[T flagged[T]](d T, node map[string]any, required bool) T {
	if required {
		d = d.Required()
	}
	if desc, ok := node["description"].(string); ok && desc != "" {
		d = d.Description(desc)
	}
	return d
}

func firstOf(node map[string]any, keys ...string) []any {
	for _, k := range keys {
		if v, ok := node[k].([]any); ok && len(v) > 0 {
			return v
		}
	}
	return nil
}

func sortedNames(m map[string]any) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
