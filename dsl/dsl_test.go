package dsl_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	skemagql "github.com/reoring/skemagql"
	"github.com/reoring/skemagql/dsl"
)

func TestBuilders_KindsAndFlags(t *testing.T) {
	cases := []struct {
		name string
		d    skemagql.Descriptor
		kind skemagql.Kind
		info skemagql.Info
	}{
		{"string", dsl.String().Required().Description("s"), skemagql.KindString, skemagql.Info{Required: true, Description: "s"}},
		{"number", dsl.Number().Optional(), skemagql.KindNumber, skemagql.Info{}},
		{"boolean", dsl.Boolean().Required().Optional(), skemagql.KindBoolean, skemagql.Info{}},
		{"date", dsl.Date().Description("when"), skemagql.KindDate, skemagql.Info{Description: "when"}},
		{"object", dsl.Object(nil).Required(), skemagql.KindObject, skemagql.Info{Required: true}},
		{"array", dsl.Array(dsl.String()), skemagql.KindArray, skemagql.Info{}},
		{"alternatives", dsl.Alternatives().Required(), skemagql.KindAlternatives, skemagql.Info{Required: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.d.Kind() != tc.kind {
				t.Fatalf("kind: got %v want %v", tc.d.Kind(), tc.kind)
			}
			if diff := cmp.Diff(tc.info, tc.d.Info()); diff != "" {
				t.Fatalf("info (-want +got):\n%s", diff)
			}
		})
	}
}

func TestViews(t *testing.T) {
	if !dsl.Number().Integer().IsInteger() || dsl.Number().IsInteger() {
		t.Fatalf("IsInteger mismatch")
	}
	if diff := cmp.Diff([]string{"a", "b"}, dsl.String().Valid("a").Valid("b").Literals()); diff != "" {
		t.Fatalf("literals (-want +got):\n%s", diff)
	}
	s := dsl.String()
	if got := dsl.Array(s).Items(s).Elements(); len(got) != 2 {
		t.Fatalf("items: %d", len(got))
	}
	if got := dsl.Alternatives(s).Try(s, s).Alternatives(); len(got) != 3 {
		t.Fatalf("alternatives: %d", len(got))
	}
}

func TestObject_CopiesKeysAndMergesMeta(t *testing.T) {
	keys := dsl.Keys{"a": dsl.String()}
	o := dsl.Object(keys)
	keys["b"] = dsl.Boolean()
	if _, ok := o.Fields()["b"]; ok {
		t.Fatalf("Object must copy the key map")
	}

	o.Meta(dsl.Meta{Name: "Thing"}).Meta(dsl.Meta{Args: dsl.Keys{"id": dsl.String()}})
	o.Meta(dsl.Meta{Args: dsl.Keys{"limit": dsl.Number()}})
	meta := o.ObjectMeta()
	if meta.Name != "Thing" || len(meta.Args) != 2 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestShare(t *testing.T) {
	base := dsl.Object(nil)
	share := base.Share().Required()
	base.Key("late", dsl.String()).Meta(dsl.Meta{Name: "Late", Args: dsl.Keys{"x": dsl.String()}})

	if base.Info().Required {
		t.Fatalf("share flags leaked into base")
	}
	if _, ok := share.Fields()["late"]; !ok {
		t.Fatalf("share must see keys added later")
	}
	if m := share.ObjectMeta(); m.Name != "Late" || len(m.Args) != 1 {
		t.Fatalf("share must see meta set later: %+v", m)
	}
}
