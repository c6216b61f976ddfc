package skemagql

import (
	"fmt"

	"github.com/graphql-go/graphql"
)

const inputSuffix = "Input"

// object resolves d to a named object type. The shell is cached before its
// fields thunk can run, so self-referencing graphs terminate.
func (s *session) object(d ObjectDescriptor, at path, hint string) (*graphql.Object, error) {
	key, keyed := identity(d)
	if keyed {
		if obj, ok := s.objects[key]; ok {
			return obj, nil
		}
	}
	name := d.ObjectMeta().Name
	if name != "" {
		if prev, ok := s.named[name]; ok {
			if err := s.checkShape(prev.desc, d, name, at); err != nil {
				return nil, err
			}
			if keyed {
				s.objects[key] = prev.obj
			}
			return prev.obj, nil
		}
	} else {
		name = s.claim(hint, ownerKey(key, keyed))
	}

	obj := graphql.NewObject(graphql.ObjectConfig{
		Name:        name,
		Description: d.Info().Description,
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			fields, err := s.fields(d.Fields(), at)
			if err != nil {
				s.fail(err)
				return graphql.Fields{}
			}
			return fields
		}),
	})
	if keyed {
		s.objects[key] = obj
	}
	if d.ObjectMeta().Name != "" {
		s.named[name] = namedObject{desc: d, obj: obj}
	}
	s.track(obj, at)
	s.log.Debug("object type created", "name", name, "path", at.pointer())
	return obj, nil
}

// args translates Meta.Args. Arguments follow the field rules except that
// object kinds become input objects.
func (s *session) args(descs map[string]Descriptor, at path) (graphql.FieldConfigArgument, error) {
	out := make(graphql.FieldConfigArgument, len(descs))
	for _, name := range sortedKeys(descs) {
		d := descs[name]
		t, err := s.inputType(d, at.child(name))
		if err != nil {
			return nil, err
		}
		out[name] = &graphql.ArgumentConfig{Type: t, Description: d.Info().Description}
	}
	return out, nil
}

func (s *session) inputType(d Descriptor, at path) (graphql.Input, error) {
	t, err := s.baseInput(d, at)
	if err != nil {
		return nil, err
	}
	if d.Info().Required {
		return graphql.NewNonNull(t), nil
	}
	return t, nil
}

func (s *session) baseInput(d Descriptor, at path) (graphql.Input, error) {
	if sc, ok, err := scalar(d, at); ok || err != nil {
		return sc, err
	}
	switch d.Kind() {
	case KindObject:
		o, ok := d.(ObjectDescriptor)
		if !ok {
			return nil, unsupported(d, at, "object descriptor does not expose fields")
		}
		return s.inputObject(o, at)
	case KindArray:
		a, ok := d.(ArrayDescriptor)
		if !ok {
			return nil, unsupported(d, at, "array descriptor does not expose items")
		}
		items := distinct(a.Elements())
		switch len(items) {
		case 0:
			return nil, &Issue{Path: at.pointer(), Code: CodeEmptyArray, Kind: KindArray, Message: "array declares no item descriptors"}
		case 1:
			item, err := s.inputType(items[0], at.child("0"))
			if err != nil {
				return nil, err
			}
			return graphql.NewList(item), nil
		}
		return nil, unsupported(d, at, "heterogeneous arrays cannot be used as input")
	case KindAlternatives:
		return nil, unsupported(d, at, "alternatives cannot be used as input")
	}
	return nil, unsupported(d, at, "")
}

// inputObject is the input-position counterpart of object. Input types are
// suffixed with "Input" so they never clash with their output twin.
func (s *session) inputObject(d ObjectDescriptor, at path) (*graphql.InputObject, error) {
	key, keyed := identity(d)
	if keyed {
		if in, ok := s.inputs[key]; ok {
			return in, nil
		}
	}
	var name string
	if explicit := d.ObjectMeta().Name; explicit != "" {
		name = explicit + inputSuffix
		if s.explicit[name] {
			return nil, &Issue{
				Path:    at.pointer(),
				Code:    CodeNamingConflict,
				Kind:    KindObject,
				Message: fmt.Sprintf("input type name %q derived from %q is already used by an object type", name, explicit),
			}
		}
		if prev, ok := s.namedInputs[name]; ok {
			if err := s.checkShape(prev.desc, d, explicit, at); err != nil {
				return nil, err
			}
			if keyed {
				s.inputs[key] = prev.in
			}
			return prev.in, nil
		}
	} else {
		name = s.claim(at.typeName()+inputSuffix, ownerKey(key, keyed))
	}

	in := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:        name,
		Description: d.Info().Description,
		Fields: graphql.InputObjectConfigFieldMapThunk(func() graphql.InputObjectConfigFieldMap {
			fields, err := s.inputFields(d.Fields(), at)
			if err != nil {
				s.fail(err)
				return graphql.InputObjectConfigFieldMap{}
			}
			return fields
		}),
	})
	if keyed {
		s.inputs[key] = in
	}
	if d.ObjectMeta().Name != "" {
		s.namedInputs[name] = namedInput{desc: d, in: in}
	}
	s.track(in, at)
	s.log.Debug("input object type created", "name", name, "path", at.pointer())
	return in, nil
}

func (s *session) inputFields(descs map[string]Descriptor, at path) (graphql.InputObjectConfigFieldMap, error) {
	out := make(graphql.InputObjectConfigFieldMap, len(descs))
	for _, key := range sortedKeys(descs) {
		d := descs[key]
		t, err := s.inputType(d, at.child(key))
		if err != nil {
			return nil, err
		}
		out[key] = &graphql.InputObjectFieldConfig{Type: t, Description: d.Info().Description}
	}
	return out, nil
}

// checkShape rejects two different descriptors claiming the same name unless
// their field sets agree on keys, kinds and required flags.
func (s *session) checkShape(prev, next ObjectDescriptor, name string, at path) error {
	if s.opts.AllowNameConflicts || sameShape(prev, next) {
		return nil
	}
	return &Issue{
		Path:    at.pointer(),
		Code:    CodeNamingConflict,
		Kind:    KindObject,
		Message: fmt.Sprintf("type name %q is already used by a differently shaped object", name),
	}
}

func sameShape(a, b ObjectDescriptor) bool {
	af, bf := a.Fields(), b.Fields()
	if len(af) != len(bf) {
		return false
	}
	for k, ad := range af {
		bd, ok := bf[k]
		if !ok || kindOf(ad) != kindOf(bd) {
			return false
		}
		if ad != nil && ad.Info().Required != bd.Info().Required {
			return false
		}
	}
	return true
}

// ownerKey returns the claim owner for a descriptor; descriptors without
// identity get a fresh owner so they never share a fallback name.
func ownerKey(key any, keyed bool) any {
	if keyed {
		return key
	}
	return new(int)
}
