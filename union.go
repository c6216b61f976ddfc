package skemagql

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/graphql-go/graphql"
)

// variant is one union member together with the discriminator literals that
// select it.
type variant struct {
	obj  *graphql.Object
	tags []string
}

// union synthesizes a union over members, which must all be objects. Member
// order follows the input; members resolving to the same type collapse.
func (s *session) union(owner Descriptor, members []Descriptor, at path) (*graphql.Union, error) {
	key, keyed := identity(owner)
	if keyed {
		if u, ok := s.unions[key]; ok {
			return u, nil
		}
	}
	name := s.claim(at.typeName(), ownerKey(key, keyed))
	disc := s.opts.discriminator()

	var (
		types    []*graphql.Object
		variants []variant
	)
	for i, m := range members {
		mat := at.child(strconv.Itoa(i))
		o, ok := m.(ObjectDescriptor)
		if !ok || m.Kind() != KindObject {
			return nil, &Issue{
				Path:    mat.pointer(),
				Code:    CodeUnsupportedUnionMember,
				Kind:    kindOf(m),
				Message: fmt.Sprintf("union %q accepts object members only, got %s", name, kindOf(m)),
			}
		}
		tags := discriminatorTags(o, disc)
		obj, err := s.object(o, mat, name+variantSuffix(tags, i))
		if err != nil {
			return nil, err
		}
		if slices.Contains(types, obj) {
			continue
		}
		types = append(types, obj)
		variants = append(variants, variant{obj: obj, tags: tags})
	}

	u := graphql.NewUnion(graphql.UnionConfig{
		Name:        name,
		Types:       types,
		ResolveType: resolveVariant(variants, disc),
	})
	if keyed {
		s.unions[key] = u
	}
	s.track(u, at)
	s.log.Debug("union type created", "name", name, "path", at.pointer(), "members", len(types))
	return u, nil
}

// discriminatorTags returns the literals declared on the discriminator field
// of o, if that field is a string descriptor exposing Literals.
func discriminatorTags(o ObjectDescriptor, disc string) []string {
	sd, ok := o.Fields()[disc].(StringDescriptor)
	if !ok || sd.Kind() != KindString {
		return nil
	}
	return sd.Literals()
}

// variantSuffix names an unnamed member after its single discriminator
// literal, falling back to its 1-based position.
func variantSuffix(tags []string, i int) string {
	if len(tags) == 1 {
		if p := pascal(tags[0]); p != "" {
			return p
		}
	}
	return strconv.Itoa(i + 1)
}

// resolveVariant picks the member for a runtime value. Map values are matched
// by "__typename" or by the discriminator literal; a single-member union
// always resolves to its member.
func resolveVariant(variants []variant, disc string) graphql.ResolveTypeFn {
	return func(p graphql.ResolveTypeParams) *graphql.Object {
		if m, ok := p.Value.(map[string]any); ok {
			if tn, ok := m["__typename"].(string); ok {
				for _, v := range variants {
					if v.obj.Name() == tn {
						return v.obj
					}
				}
			}
			if tag, ok := m[disc].(string); ok {
				for _, v := range variants {
					if slices.Contains(v.tags, tag) {
						return v.obj
					}
				}
			}
		}
		if len(variants) == 1 {
			return variants[0].obj
		}
		return nil
	}
}
