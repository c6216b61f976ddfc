package jsonschema_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/graphql-go/graphql"

	skemagql "github.com/reoring/skemagql"
	"github.com/reoring/skemagql/jsonschema"
)

const articleSchema = `{
  "type": "object",
  "required": ["id"],
  "properties": {
    "id": {"type": "integer", "description": "Primary key"},
    "title": {"type": "string"},
    "published": {"type": "string", "format": "date-time"},
    "score": {"type": ["number", "null"]},
    "author": {"$ref": "#/$defs/Person"},
    "editor": {"$ref": "#/$defs/Person", "description": "Last editor"},
    "blocks": {
      "type": "array",
      "items": {
        "oneOf": [
          {"type": "object", "properties": {"type": {"const": "image", "type": "string"}, "size": {"type": "integer"}}},
          {"type": "object", "properties": {"type": {"enum": ["text"], "type": "string"}, "body": {"type": "string"}}}
        ]
      }
    }
  },
  "$defs": {
    "Person": {
      "type": "object",
      "description": "A person",
      "required": ["name"],
      "properties": {
        "name": {"type": "string"},
        "friends": {"type": "array", "items": {"$ref": "#/$defs/Person"}}
      }
    }
  }
}`

func TestImport_JSONBytes(t *testing.T) {
	descs, diag, err := jsonschema.Import([]byte(articleSchema), jsonschema.Options{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if diag.HasWarnings() {
		t.Fatalf("unexpected warnings: %v", diag.Warnings())
	}
	kinds := map[string]skemagql.Kind{}
	for k, d := range descs {
		kinds[k] = d.Kind()
	}
	want := map[string]skemagql.Kind{
		"id":        skemagql.KindNumber,
		"title":     skemagql.KindString,
		"published": skemagql.KindDate,
		"score":     skemagql.KindNumber,
		"author":    skemagql.KindObject,
		"editor":    skemagql.KindObject,
		"blocks":    skemagql.KindArray,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
	if !descs["id"].Info().Required || descs["title"].Info().Required {
		t.Fatalf("required flags not honored")
	}
	if got := descs["editor"].Info().Description; got != "Last editor" {
		t.Fatalf("editor description: %q", got)
	}
}

func TestImport_TranslatesEndToEnd(t *testing.T) {
	descs, _, err := jsonschema.Import([]byte(articleSchema), jsonschema.Options{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	fields, err := skemagql.Translate(descs)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if _, ok := fields["id"].Type.(*graphql.NonNull); !ok {
		t.Fatalf("id: got %v", fields["id"].Type)
	}
	if fields["id"].Description != "Primary key" {
		t.Fatalf("id description: %q", fields["id"].Description)
	}
	if fields["published"].Type != graphql.String {
		t.Fatalf("published: got %v", fields["published"].Type)
	}
	person, ok := fields["author"].Type.(*graphql.Object)
	if !ok || person.Name() != "Person" {
		t.Fatalf("author: got %v", fields["author"].Type)
	}
	if fields["editor"].Type != person {
		t.Fatalf("editor does not share the Person type")
	}
	if person.Fields()["friends"].Type.(*graphql.List).OfType != person {
		t.Fatalf("friends should list Person")
	}
	u := fields["blocks"].Type.(*graphql.List).OfType.(*graphql.Union)
	var names []string
	for _, m := range u.Types() {
		names = append(names, m.Name())
	}
	if diff := cmp.Diff([]string{"BlocksImage", "BlocksText"}, names); diff != "" {
		t.Fatalf("union members (-want +got):\n%s", diff)
	}
}

func TestImportYAML_ArgsAndNames(t *testing.T) {
	src := `
type: object
properties:
  user:
    type: object
    x-graphql-name: User
    x-graphql-args:
      type: object
      required: [id]
      properties:
        id: {type: integer}
        filter:
          type: object
          properties:
            active: {type: boolean}
    properties:
      login: {type: string}
`
	descs, _, err := jsonschema.ImportYAML([]byte(src), jsonschema.Options{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	fields, err := skemagql.Translate(descs)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got := fields["user"].Type.Name(); got != "User" {
		t.Fatalf("user type: %q", got)
	}
	id, ok := fields["user"].Args["id"].Type.(*graphql.NonNull)
	if !ok || id.OfType != graphql.Int {
		t.Fatalf("id arg: got %v", fields["user"].Args["id"].Type)
	}
	if _, ok := fields["user"].Args["filter"].Type.(*graphql.InputObject); !ok {
		t.Fatalf("filter arg: got %T", fields["user"].Args["filter"].Type)
	}
}

func TestImport_Warnings(t *testing.T) {
	doc := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "string", "allOf": []any{map[string]any{"minLength": 1}}},
		},
	}
	_, diag, err := jsonschema.Import(doc, jsonschema.Options{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !diag.HasWarnings() || !strings.Contains(diag.Warnings()[0], "allOf") {
		t.Fatalf("expected allOf warning, got %v", diag.Warnings())
	}
	if _, _, err := jsonschema.Import(doc, jsonschema.Options{Strict: true}); err == nil {
		t.Fatalf("strict import should fail on warnings")
	}
}

func TestImport_Errors(t *testing.T) {
	cases := map[string]any{
		"nonObjectRoot": map[string]any{"type": "string"},
		"remoteRef": map[string]any{"properties": map[string]any{
			"a": map[string]any{"$ref": "https://example.com/a.json"},
		}},
		"missingRef": map[string]any{"properties": map[string]any{
			"a": map[string]any{"$ref": "#/$defs/Nope"},
		}},
		"noType": map[string]any{"properties": map[string]any{
			"a": map[string]any{"description": "?"},
		}},
		"nullType": map[string]any{"properties": map[string]any{
			"a": map[string]any{"type": "null"},
		}},
		"arrayWithoutItems": map[string]any{"properties": map[string]any{
			"a": map[string]any{"type": "array"},
		}},
		"scalarRefCycle": map[string]any{
			"properties": map[string]any{"a": map[string]any{"$ref": "#/$defs/A"}},
			"$defs": map[string]any{
				"A": map[string]any{"$ref": "#/$defs/B"},
				"B": map[string]any{"$ref": "#/$defs/A"},
			},
		},
		"badJSON": []byte(`{"type":`),
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := jsonschema.Import(doc, jsonschema.Options{}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestImport_MarshalableValue(t *testing.T) {
	type prop struct {
		Type string `json:"type"`
	}
	type doc struct {
		Type       string          `json:"type"`
		Properties map[string]prop `json:"properties"`
	}
	descs, _, err := jsonschema.Import(doc{Type: "object", Properties: map[string]prop{"ok": {Type: "boolean"}}}, jsonschema.Options{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if descs["ok"].Kind() != skemagql.KindBoolean {
		t.Fatalf("ok: got %s", descs["ok"].Kind())
	}
}
