// Package sdl renders graphql-go types as GraphQL schema definition language.
package sdl

import (
	"sort"
	"strings"

	"github.com/graphql-go/graphql"
)

// Print renders root and every named composite type reachable from it.
// Root comes first, the remaining types follow sorted by name. Built-in
// scalars are not printed.
func Print(root *graphql.Object) string {
	p := &printer{seen: map[string]graphql.Type{}}
	p.visit(root)

	names := make([]string, 0, len(p.seen))
	for name := range p.seen {
		if name != root.Name() {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	p.write(&b, root)
	for _, name := range names {
		b.WriteString("\n")
		p.write(&b, p.seen[name])
	}
	return b.String()
}

type printer struct {
	seen map[string]graphql.Type
}

func (p *printer) visit(t graphql.Type) {
	switch t := t.(type) {
	case *graphql.NonNull:
		p.visit(t.OfType)
	case *graphql.List:
		p.visit(t.OfType)
	case *graphql.Object:
		if p.mark(t) {
			for _, name := range sortedFieldNames(t.Fields()) {
				f := t.Fields()[name]
				p.visit(f.Type)
				for _, a := range f.Args {
					p.visit(a.Type)
				}
			}
		}
	case *graphql.InputObject:
		if p.mark(t) {
			for _, f := range t.Fields() {
				p.visit(f.Type)
			}
		}
	case *graphql.Union:
		if p.mark(t) {
			for _, m := range t.Types() {
				p.visit(m)
			}
		}
	}
}

func (p *printer) mark(t graphql.Type) bool {
	if _, ok := p.seen[t.Name()]; ok {
		return false
	}
	p.seen[t.Name()] = t
	return true
}

func (p *printer) write(b *strings.Builder, t graphql.Type) {
	description(b, "", t.Description())
	switch t := t.(type) {
	case *graphql.Object:
		b.WriteString("type " + t.Name() + " {\n")
		fields := t.Fields()
		for _, name := range sortedFieldNames(fields) {
			f := fields[name]
			description(b, "  ", f.Description)
			b.WriteString("  " + name + arguments(f.Args) + ": " + f.Type.String() + "\n")
		}
		b.WriteString("}\n")
	case *graphql.InputObject:
		b.WriteString("input " + t.Name() + " {\n")
		fields := t.Fields()
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			f := fields[name]
			description(b, "  ", f.Description())
			b.WriteString("  " + name + ": " + f.Type.String() + "\n")
		}
		b.WriteString("}\n")
	case *graphql.Union:
		members := make([]string, 0, len(t.Types()))
		for _, m := range t.Types() {
			members = append(members, m.Name())
		}
		b.WriteString("union " + t.Name() + " = " + strings.Join(members, " | ") + "\n")
	}
}

func arguments(args []*graphql.Argument) string {
	if len(args) == 0 {
		return ""
	}
	sorted := append([]*graphql.Argument(nil), args...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })
	parts := make([]string, 0, len(sorted))
	for _, a := range sorted {
		parts = append(parts, a.Name()+": "+a.Type.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func description(b *strings.Builder, indent, text string) {
	if text == "" {
		return
	}
	if strings.Contains(text, "\n") || strings.Contains(text, `"`) {
		b.WriteString(indent + `"""` + "\n")
		for _, line := range strings.Split(text, "\n") {
			b.WriteString(indent + strings.ReplaceAll(line, `"""`, `\"""`) + "\n")
		}
		b.WriteString(indent + `"""` + "\n")
		return
	}
	b.WriteString(indent + `"` + text + `"` + "\n")
}

func sortedFieldNames(fields graphql.FieldDefinitionMap) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
