package jsonschema

import (
	"fmt"
	"strconv"
	"strings"

	skemagql "github.com/reoring/skemagql"
	"github.com/reoring/skemagql/dsl"
	"github.com/reoring/skemagql/internal/importutil"
)

// ref resolves a local $ref. Object targets are imported once and shared by
// every reference, which lets definitions refer to themselves; the type is
// named after the definition key unless it carries x-graphql-name.
func (im *importer) ref(ref string, node map[string]any, at string, required bool) (skemagql.Descriptor, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, fmt.Errorf("jsonschema: $ref %q at %s is not local", ref, pointerOrRoot(at))
	}
	if base, ok := im.shared[ref]; ok {
		return use(base, node, required), nil
	}
	target, ok := lookupPointer(im.root, strings.TrimPrefix(ref, "#"))
	if !ok {
		return nil, fmt.Errorf("jsonschema: unresolvable $ref %q at %s", ref, pointerOrRoot(at))
	}
	tat := strings.TrimPrefix(ref, "#")
	if target["$ref"] == nil && firstOf(target, "oneOf", "anyOf") == nil && im.schemaType(target, tat) == "object" {
		base := dsl.Object(nil).Meta(dsl.Meta{Name: refName(ref)})
		if desc, ok := target["description"].(string); ok {
			base.Description(desc)
		}
		im.shared[ref] = base
		im.warnUnsupported(target, tat)
		if err := im.fillObject(base, target, tat); err != nil {
			return nil, err
		}
		return use(base, node, required), nil
	}
	if im.active[ref] {
		return nil, fmt.Errorf("jsonschema: cyclic $ref %q does not pass through an object", ref)
	}
	im.active[ref] = true
	defer delete(im.active, ref)
	return im.convert(target, tat, required)
}

// use returns base for plain references and a share of it when the
// reference adds a required flag or its own description.
func use(base *dsl.ObjectSchema, node map[string]any, required bool) skemagql.Descriptor {
	desc, _ := node["description"].(string)
	if !required && desc == "" {
		return base
	}
	share := base.Share().Description(base.Info().Description)
	return flag(share, node, required)
}

// lookupPointer walks a JSON Pointer through decoded JSON.
func lookupPointer(root map[string]any, ptr string) (map[string]any, bool) {
	var cur any = root
	for _, seg := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		seg = strings.NewReplacer("~1", "/", "~0", "~").Replace(seg)
		switch t := cur.(type) {
		case map[string]any:
			cur = t[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(t) {
				return nil, false
			}
			cur = t[i]
		default:
			return nil, false
		}
	}
	m, ok := cur.(map[string]any)
	return m, ok
}

// refName derives a GraphQL type name from the last pointer segment.
func refName(ref string) string {
	seg := ref[strings.LastIndex(ref, "/")+1:]
	return importutil.TypeName(strings.NewReplacer("~1", "/", "~0", "~").Replace(seg))
}
