package cxxlite

import (
	"strings"

	"movefix/internal/analysis"
)

var primitiveTypes = map[string]bool{
	"void": true, "int": true, "bool": true, "double": true,
	"float": true, "char": true, "long": true, "unsigned": true,
}

// Type is cxxlite's concrete analysis.Type: a parsed type spelling
// decomposed into its reference/const qualifiers and whether its base
// name names a record (user-defined value type) rather than a
// primitive. Every record type in this toy language is assumed to
// declare both a copy and a move constructor — cxxlite has no class
// definitions to inspect, so it cannot observe a type that deletes its
// move constructor; this is recorded as a simplification in DESIGN.md.
type Type struct {
	base      string
	reference bool
	constQual bool
}

// parseType decomposes a type spelling like "const Buffer&" into its
// qualifiers and base name.
func parseType(spelling string) Type {
	s := strings.TrimSpace(spelling)
	t := Type{}
	if strings.HasSuffix(s, "&") {
		t.reference = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "&"))
	}
	if strings.HasPrefix(s, "const ") {
		t.constQual = true
		s = strings.TrimSpace(strings.TrimPrefix(s, "const "))
	}
	t.base = s
	return t
}

func (t Type) NonReference() analysis.Type {
	if !t.reference {
		return t
	}
	return Type{base: t.base, constQual: t.constQual}
}

func (t Type) IsConstQualified() bool { return t.constQual }

func (t Type) IsRecord() bool {
	return t.base != "" && !primitiveTypes[t.base]
}

func (t Type) Constructors() []analysis.Constructor {
	if !t.IsRecord() {
		return nil
	}
	return []analysis.Constructor{{IsCopy: true}, {IsMove: true}}
}

// Decl is cxxlite's concrete analysis.Decl: a function parameter or a
// local variable declaration.
type Decl struct {
	Name     string
	Type     Type
	param    bool
	localVar bool
}

func (d *Decl) IsParameter() bool     { return d.param }
func (d *Decl) HasLocalStorage() bool { return d.localVar }
