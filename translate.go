package skemagql

import (
	"fmt"
	"log/slog"

	"github.com/graphql-go/graphql"
)

// Translator converts descriptor mappings into GraphQL field definitions.
// A Translator holds no per-call state and may be shared between goroutines.
type Translator struct {
	opts Options
}

// New returns a Translator configured with opts.
func New(opts Options) *Translator {
	return &Translator{opts: opts}
}

// Translate converts descs using default options.
func Translate(descs map[string]Descriptor) (graphql.Fields, error) {
	return New(Options{}).Translate(descs)
}

// Translate converts every entry of descs into a field definition. Object
// types sharing a descriptor or an explicit name are built once per call.
// On error no fields are returned.
func (t *Translator) Translate(descs map[string]Descriptor) (graphql.Fields, error) {
	s := newSession(t.opts)
	s.reserve(descs)
	fields, err := s.fields(descs, nil)
	if err != nil {
		return nil, err
	}
	if err := s.settle(); err != nil {
		return nil, err
	}
	s.log.Debug("translated descriptors", "fields", len(fields), "types", len(s.created))
	return fields, nil
}

// namedType is the common surface of the composite types a session creates.
type namedType interface {
	Name() string
	Error() error
}

type createdType struct {
	t  namedType
	at path
}

type namedObject struct {
	desc ObjectDescriptor
	obj  *graphql.Object
}

type namedInput struct {
	desc ObjectDescriptor
	in   *graphql.InputObject
}

// session is the state of a single Translate call. It is never shared.
type session struct {
	opts Options
	log  *slog.Logger

	reserved map[string]bool
	explicit map[string]bool
	owners   map[string]any

	objects     map[any]*graphql.Object
	named       map[string]namedObject
	inputs      map[any]*graphql.InputObject
	namedInputs map[string]namedInput
	unions      map[any]*graphql.Union

	created []createdType
	err     error
}

func newSession(opts Options) *session {
	return &session{
		opts:        opts,
		log:         opts.logger(),
		reserved:    map[string]bool{},
		explicit:    map[string]bool{},
		owners:      map[string]any{},
		objects:     map[any]*graphql.Object{},
		named:       map[string]namedObject{},
		inputs:      map[any]*graphql.InputObject{},
		namedInputs: map[string]namedInput{},
		unions:      map[any]*graphql.Union{},
	}
}

// fail records the first error raised inside a thunk.
func (s *session) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *session) track(t namedType, at path) {
	s.created = append(s.created, createdType{t: t, at: at})
}

// settle forces every lazily defined type once so that errors raised while
// resolving thunks abort the call. Types created while forcing are forced too.
func (s *session) settle() error {
	for i := 0; i < len(s.created); i++ {
		c := s.created[i]
		switch t := c.t.(type) {
		case *graphql.Object:
			t.Fields()
		case *graphql.InputObject:
			t.Fields()
		case *graphql.Union:
			t.Types()
		}
		if s.err != nil {
			return s.err
		}
		if err := c.t.Error(); err != nil {
			return &Issue{
				Path:    c.at.pointer(),
				Code:    CodeInvalidType,
				Message: fmt.Sprintf("type %q rejected", c.t.Name()),
				Cause:   err,
			}
		}
	}
	return s.err
}

// fields is the mapping driver shared by the top level and object thunks.
func (s *session) fields(descs map[string]Descriptor, at path) (graphql.Fields, error) {
	out := make(graphql.Fields, len(descs))
	for _, key := range sortedKeys(descs) {
		f, err := s.field(descs[key], at.child(key))
		if err != nil {
			return nil, err
		}
		out[key] = f
	}
	return out, nil
}

func (s *session) field(d Descriptor, at path) (*graphql.Field, error) {
	t, err := s.outputType(d, at)
	if err != nil {
		return nil, err
	}
	f := &graphql.Field{Type: t, Description: d.Info().Description}
	if o, ok := d.(ObjectDescriptor); ok && d.Kind() == KindObject {
		if args := o.ObjectMeta().Args; len(args) > 0 {
			if f.Args, err = s.args(args, at); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func (s *session) outputType(d Descriptor, at path) (graphql.Output, error) {
	t, err := s.baseOutput(d, at)
	if err != nil {
		return nil, err
	}
	if d.Info().Required {
		return graphql.NewNonNull(t), nil
	}
	return t, nil
}

func (s *session) baseOutput(d Descriptor, at path) (graphql.Output, error) {
	if sc, ok, err := scalar(d, at); ok || err != nil {
		return sc, err
	}
	switch d.Kind() {
	case KindObject:
		o, ok := d.(ObjectDescriptor)
		if !ok {
			return nil, unsupported(d, at, "object descriptor does not expose fields")
		}
		return s.object(o, at, at.typeName())
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
			item, err := s.outputType(items[0], at.child("0"))
			if err != nil {
				return nil, err
			}
			return graphql.NewList(item), nil
		}
		u, err := s.union(a, items, at)
		if err != nil {
			return nil, err
		}
		return graphql.NewList(u), nil
	case KindAlternatives:
		alt, ok := d.(AlternativesDescriptor)
		if !ok {
			return nil, unsupported(d, at, "alternatives descriptor does not expose alternatives")
		}
		return s.union(alt, distinct(alt.Alternatives()), at)
	}
	return nil, unsupported(d, at, "")
}

// scalar maps the scalar kinds; ok is false for composite kinds.
func scalar(d Descriptor, at path) (*graphql.Scalar, bool, error) {
	if d == nil {
		return nil, false, unsupported(d, at, "nil descriptor")
	}
	switch d.Kind() {
	case KindString, KindDate:
		return graphql.String, true, nil
	case KindBoolean:
		return graphql.Boolean, true, nil
	case KindNumber:
		n, ok := d.(NumberDescriptor)
		if !ok {
			return nil, false, unsupported(d, at, "number descriptor does not expose IsInteger")
		}
		if n.IsInteger() {
			return graphql.Int, true, nil
		}
		return graphql.Float, true, nil
	}
	return nil, false, nil
}

// distinct drops repeated descriptors while keeping the first occurrence.
func distinct(ds []Descriptor) []Descriptor {
	out := make([]Descriptor, 0, len(ds))
	seen := map[any]bool{}
	for _, d := range ds {
		if key, ok := identity(d); ok {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, d)
	}
	return out
}

func unsupported(d Descriptor, at path, msg string) *Issue {
	k := kindOf(d)
	if msg == "" {
		msg = fmt.Sprintf("kind %s is not supported here", k)
	}
	return &Issue{Path: at.pointer(), Code: CodeUnsupportedKind, Kind: k, Message: msg}
}
