package skemagql

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// path is the chain of field keys (and item indexes) leading to a descriptor.
type path []string

func (p path) child(seg string) path {
	out := make(path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// pointer renders the path as a JSON Pointer.
func (p path) pointer() string {
	if len(p) == 0 {
		return ""
	}
	r := strings.NewReplacer("~", "~0", "/", "~1")
	b := &strings.Builder{}
	for _, seg := range p {
		b.WriteByte('/')
		b.WriteString(r.Replace(seg))
	}
	return b.String()
}

// typeName derives a GraphQL type name from the path: item indexes are
// skipped and the remaining keys are joined in PascalCase.
func (p path) typeName() string {
	b := &strings.Builder{}
	for _, seg := range p {
		if isIndex(seg) {
			continue
		}
		b.WriteString(pascal(seg))
	}
	name := b.String()
	if name == "" {
		return "Type"
	}
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(r) {
		name = "T" + name
	}
	return name
}

func isIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// pascal converts an arbitrary key into a GraphQL-safe PascalCase word.
// Characters outside [A-Za-z0-9] separate words and are dropped.
func pascal(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !(r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)))
	})
	b := &strings.Builder{}
	for _, w := range words {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

func sortedKeys(m map[string]Descriptor) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// identity returns a cache key for d when its dynamic type is comparable.
func identity(d Descriptor) (any, bool) {
	if d == nil || !reflect.TypeOf(d).Comparable() {
		return nil, false
	}
	return d, true
}

func kindOf(d Descriptor) Kind {
	if d == nil {
		return 0
	}
	return d.Kind()
}

// claim reserves a unique type name derived from hint for owner. Names
// declared explicitly through Meta.Name are never handed out as fallbacks.
func (s *session) claim(hint string, owner any) string {
	name := hint
	for n := 2; ; n++ {
		prev, taken := s.owners[name]
		if !s.reserved[name] && (!taken || prev == owner) {
			s.owners[name] = owner
			return name
		}
		name = hint + strconv.Itoa(n)
	}
}

// reserve records every explicit object name reachable from descs so that
// fallback names never shadow them.
func (s *session) reserve(descs map[string]Descriptor) {
	seen := map[any]bool{}
	var walk func(d Descriptor)
	walk = func(d Descriptor) {
		if key, ok := identity(d); ok {
			if seen[key] {
				return
			}
			seen[key] = true
		}
		switch v := d.(type) {
		case ObjectDescriptor:
			meta := v.ObjectMeta()
			if meta.Name != "" {
				s.reserved[meta.Name] = true
				s.explicit[meta.Name] = true
				s.reserved[meta.Name+inputSuffix] = true
			}
			for _, k := range sortedKeys(v.Fields()) {
				walk(v.Fields()[k])
			}
			for _, k := range sortedKeys(meta.Args) {
				walk(meta.Args[k])
			}
		case ArrayDescriptor:
			for _, item := range v.Elements() {
				walk(item)
			}
		case AlternativesDescriptor:
			for _, alt := range v.Alternatives() {
				walk(alt)
			}
		}
	}
	for _, k := range sortedKeys(descs) {
		walk(descs[k])
	}
}
