package ktsrc

import (
	"slices"
	"strings"
)

// Nullability of a Kotlin type. Unknown types render like not-null ones but may still be
// treated as nullable by callers that care.
type Nullability uint8

const (
	NullabilityUnknown Nullability = iota
	Nullable
	NotNull
)

func (n Nullability) String() string {
	switch n {
	case Nullable:
		return "nullable"
	case NotNull:
		return "not-null"
	default:
		return "unknown"
	}
}

// Type is a Kotlin type reference. Variance is the use site projection of a type argument,
// "in" or "out".
type Type struct {
	Name        string
	Args        []Type
	Nullability Nullability
	Variance    string
}

// EmptyType renders as nothing
var EmptyType = Type{}

// Well known Kotlin types
var (
	UnitType      = Type{Name: "Unit", Nullability: NotNull}
	AnyType       = Type{Name: "Any", Nullability: Nullable}
	StarProjected = Type{Name: "*"}
)

// NewType builds a type with the given nullability and no type arguments
func NewType(name string, nullability Nullability, args ...Type) Type {
	return Type{Name: name, Args: args, Nullability: nullability}
}

// ArrayOf builds Array<elem>
func ArrayOf(elem Type, nullability Nullability) Type {
	return Type{Name: "Array", Args: []Type{elem}, Nullability: nullability}
}

func (t Type) ToSource() string {
	switch t.Name {
	case "":
		return ""
	case "*":
		return "*"
	}
	variance := ""
	if t.Variance != "" {
		variance = t.Variance + " "
	}
	return variance + QuoteQualifiedName(t.Name) + Join(t.Args, ", ", "<", ">") + t.suffix()
}

func (t Type) suffix() string {
	if t.Nullability == Nullable {
		return "?"
	}
	return ""
}

func (t Type) IsEmpty() bool {
	return t.Name == ""
}

func (t Type) IsNullable() bool {
	return t.Nullability == Nullable
}

// IsUnit reports whether the type is Unit or absent
func (t Type) IsUnit() bool {
	return t.Name == "" || t.Name == UnitType.Name
}

// ConvertedToNotNull returns a copy of the type that never renders `?`
func (t Type) ConvertedToNotNull() Type {
	return t.withNullability(NotNull)
}

// ConvertedToNullable returns a nullable copy of the type
func (t Type) ConvertedToNullable() Type {
	return t.withNullability(Nullable)
}

func (t Type) withNullability(n Nullability) Type {
	if t.Name == "" || t.Name == "*" {
		return t
	}
	return Type{Name: t.Name, Args: slices.Clone(t.Args), Nullability: n, Variance: t.Variance}
}

// Modifiers is a bit set of Kotlin declaration modifiers
type Modifiers uint16

const (
	ABSTRACT Modifiers = 1 << iota
	FINAL
	STATIC
	PUBLIC
	PROTECTED
	INTERNAL
	PRIVATE
	OVERRIDE
	NOT_OPEN
)

var modifierNames = []struct {
	m    Modifiers
	name string
}{
	{ABSTRACT, "abstract"},
	{FINAL, "final"},
	{STATIC, "static"},
	{PUBLIC, "public"},
	{PROTECTED, "protected"},
	{INTERNAL, "internal"},
	{PRIVATE, "private"},
	{OVERRIDE, "override"},
	{NOT_OPEN, "not-open"},
}

func (m Modifiers) Has(other Modifiers) bool {
	return m&other == other
}

func (m Modifiers) With(other Modifiers) Modifiers {
	return m | other
}

func (m Modifiers) Without(other Modifiers) Modifiers {
	return m &^ other
}

func (m Modifiers) String() string {
	var names []string
	for _, each := range modifierNames {
		if m.Has(each.m) {
			names = append(names, each.name)
		}
	}
	return strings.Join(names, " ")
}

// accessSource renders the visibility modifier followed by a space, if any
func (m Modifiers) accessSource() string {
	switch {
	case m.Has(PUBLIC):
		return "public "
	case m.Has(PROTECTED):
		return "protected "
	case m.Has(PRIVATE):
		return "private "
	case m.Has(INTERNAL):
		return "internal "
	}
	return ""
}

// TypeParameter is a declaration site generic parameter
type TypeParameter struct {
	notEmpty
	Name   *Identifier
	Bounds []Type
}

func (p *TypeParameter) ToSource() string {
	if len(p.Bounds) == 0 {
		return p.Name.ToSource()
	}
	// Kotlin needs a where clause for more than one bound, the first one is kept inline
	return p.Name.ToSource() + " : " + p.Bounds[0].ToSource()
}

func typeParameters(params []*TypeParameter) string {
	return Join(params, ", ", "<", ">")
}
