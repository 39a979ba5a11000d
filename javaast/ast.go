// Package javaast is a typed model of Java source built from tree-sitter parse trees. Besides
// the syntax it carries the little semantic information the converter needs: canonical type
// identities, resolved reference and call targets, expression types and override links, all
// computed locally to one compilation unit.
package javaast

import (
	"fmt"
	"slices"
	"strings"
)

// Position is a 1-based line and column
type Position struct {
	Line   uint
	Column uint
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is implemented by every element of the model
type Node interface {
	Source() string
	Pos() Position
}

type node struct {
	Text     string
	Position Position
}

func (n *node) Source() string { return n.Text }
func (n *node) Pos() Position  { return n.Position }

// Modifier bit flags
const (
	PUBLIC Modifiers = 1 << iota
	PRIVATE
	PROTECTED
	STATIC
	FINAL
	ABSTRACT
	DEFAULT
	SYNCHRONIZED
	NATIVE
	TRANSIENT
	VOLATILE
)

// Modifiers represents Java modifiers as a bitmask
type Modifiers uint16

var modifierWords = []struct {
	m    Modifiers
	word string
}{
	{PUBLIC, "public"},
	{PRIVATE, "private"},
	{PROTECTED, "protected"},
	{STATIC, "static"},
	{FINAL, "final"},
	{ABSTRACT, "abstract"},
	{DEFAULT, "default"},
	{SYNCHRONIZED, "synchronized"},
	{NATIVE, "native"},
	{TRANSIENT, "transient"},
	{VOLATILE, "volatile"},
}

func (m Modifiers) String() string {
	var parts []string
	for _, each := range modifierWords {
		if m&each.m != 0 {
			parts = append(parts, each.word)
		}
	}
	return strings.Join(parts, " ")
}

func (m Modifiers) Has(other Modifiers) bool {
	return m&other != 0
}

// IsPackagePrivate reports whether no access modifier was written
func (m Modifiers) IsPackagePrivate() bool {
	return m&(PUBLIC|PRIVATE|PROTECTED) == 0
}

// ParseModifiers parses modifier keywords into a modifiers bitmask
func ParseModifiers(source string) Modifiers {
	var mods Modifiers
	for _, part := range strings.Fields(source) {
		for _, each := range modifierWords {
			if part == each.word {
				mods |= each.m
			}
		}
	}
	return mods
}

// Annotation is a use of an annotation. QualifiedName is resolved against the imports.
type Annotation struct {
	node
	Name          string
	QualifiedName string
}

type annotated struct {
	Annotations []*Annotation
}

// HasAnnotation reports whether any annotation resolves to one of the qualified names
func (a *annotated) HasAnnotation(qualifiedNames ...string) bool {
	for _, annotation := range a.Annotations {
		if slices.Contains(qualifiedNames, annotation.QualifiedName) {
			return true
		}
	}
	return false
}

// Top level

type (
	// File is a parsed compilation unit
	File struct {
		node
		Path    string
		Package string
		Imports []*Import
		// Elements are the top level classes, comments and the whitespace between them
		Elements     []Node
		SyntaxErrors []SyntaxError
	}

	Import struct {
		node
		Path     string
		Static   bool
		OnDemand bool
	}

	Comment struct {
		node
	}

	Whitespace struct {
		node
	}

	// SyntaxError is a region tree-sitter could not parse
	SyntaxError struct {
		Position Position
		Text     string
	}
)

// Classes returns the top level classes in declaration order
func (f *File) Classes() []*Class {
	var result []*Class
	for _, e := range f.Elements {
		if c, ok := e.(*Class); ok {
			result = append(result, c)
		}
	}
	return result
}

// AllClasses returns every class in the file, nested ones included, outer classes first
func (f *File) AllClasses() []*Class {
	var result []*Class
	var visit func(c *Class)
	visit = func(c *Class) {
		result = append(result, c)
		for _, nested := range c.NestedClasses() {
			visit(nested)
		}
	}
	for _, c := range f.Classes() {
		visit(c)
	}
	return result
}

// IsDoc reports whether the comment is a documentation comment
func (c *Comment) IsDoc() bool {
	return strings.HasPrefix(c.Text, "/**")
}

// Declarations

// ClassKind distinguishes the flavours of type declarations
type ClassKind uint8

const (
	ClassKindClass ClassKind = iota
	ClassKindInterface
	ClassKindEnum
	ClassKindAnnotation
	ClassKindRecord
)

func (k ClassKind) String() string {
	switch k {
	case ClassKindInterface:
		return "interface"
	case ClassKindEnum:
		return "enum"
	case ClassKindAnnotation:
		return "annotation"
	case ClassKindRecord:
		return "record"
	default:
		return "class"
	}
}

// Member is anything that may appear in a class body
type Member interface {
	Node
	member()
}

// Declaration is anything a name can refer to
type Declaration interface {
	Node
	DeclName() string
	DeclType() *Type
}

type (
	Class struct {
		node
		annotated
		Kind           ClassKind
		Name           string
		Package        string
		Modifiers      Modifiers
		TypeParameters []*TypeParameter
		Extends        []*Type
		Implements     []*Type
		Docs           []*Comment
		Members        []Member
		Outer          *Class
		// Anonymous classes have no name and are reached through New.Body
		Anonymous bool
		// Local classes are declared inside a method body
		Local bool
	}

	Field struct {
		node
		annotated
		Name        string
		Modifiers   Modifiers
		Type        *Type
		Initializer Expression
		Docs        []*Comment
		Owner       *Class
	}

	EnumConstant struct {
		node
		annotated
		Name   string
		Args   []Expression
		Body   *Class
		Docs   []*Comment
		Owner  *Class
		Target *Method
	}

	Method struct {
		node
		annotated
		Name           string
		Modifiers      Modifiers
		TypeParameters []*TypeParameter
		ReturnType     *Type
		Params         []*Parameter
		Throws         []*Type
		Body           *Block
		IsConstructor  bool
		Docs           []*Comment
		Owner          *Class
		// Overrides is the ancestor method declared in this file that this method overrides
		Overrides *Method
		// ObjectMethod is the universal method this one overrides without any intermediate
		// declaration, one of equals, hashCode and toString
		ObjectMethod string
	}

	Parameter struct {
		node
		annotated
		Name      string
		Modifiers Modifiers
		Type      *Type
		Varargs   bool
		// CatchTypes holds the alternatives of a multi catch parameter
		CatchTypes []*Type
	}

	// ClassInitializer is an instance or static initializer block
	ClassInitializer struct {
		node
		Static bool
		Body   *Block
		Owner  *Class
	}

	TypeParameter struct {
		node
		Name   string
		Bounds []*Type
	}
)

func (*Class) member()            {}
func (*Field) member()            {}
func (*EnumConstant) member()     {}
func (*Method) member()           {}
func (*ClassInitializer) member() {}
func (*Comment) member()          {}

// QualifiedName is the dotted name including the package and outer classes
func (c *Class) QualifiedName() string {
	if c.Outer != nil {
		return c.Outer.QualifiedName() + "." + c.Name
	}
	if c.Package != "" {
		return c.Package + "." + c.Name
	}
	return c.Name
}

func (c *Class) IsInterface() bool {
	return c.Kind == ClassKindInterface || c.Kind == ClassKindAnnotation
}

func (c *Class) IsEnum() bool {
	return c.Kind == ClassKindEnum
}

// Superclass returns the extended class of a class declaration, nil for interfaces
func (c *Class) Superclass() *Type {
	if c.IsInterface() || len(c.Extends) == 0 {
		return nil
	}
	return c.Extends[0]
}

// AsType returns the type of this in the class body
func (c *Class) AsType() *Type {
	t := &Type{Kind: ClassType, Name: c.Name, ID: TypeID(c.QualifiedName()), Decl: c}
	for _, tp := range c.TypeParameters {
		t.Args = append(t.Args, &Type{Kind: TypeVariable, Name: tp.Name, ID: TypeID(tp.Name)})
	}
	return t
}

func (c *Class) Fields() []*Field {
	return membersOf[*Field](c)
}

func (c *Class) Methods() []*Method {
	var result []*Method
	for _, m := range membersOf[*Method](c) {
		if !m.IsConstructor {
			result = append(result, m)
		}
	}
	return result
}

func (c *Class) Constructors() []*Method {
	var result []*Method
	for _, m := range membersOf[*Method](c) {
		if m.IsConstructor {
			result = append(result, m)
		}
	}
	return result
}

func (c *Class) EnumConstants() []*EnumConstant {
	return membersOf[*EnumConstant](c)
}

func (c *Class) NestedClasses() []*Class {
	return membersOf[*Class](c)
}

func membersOf[T Member](c *Class) []T {
	var result []T
	for _, m := range c.Members {
		if t, ok := m.(T); ok {
			result = append(result, t)
		}
	}
	return result
}

// IsStatic reports whether the field needs no instance, interface constants included
func (f *Field) IsStatic() bool {
	return f.Modifiers.Has(STATIC) || (f.Owner != nil && f.Owner.IsInterface())
}

// IsFinal reports whether the field can not be reassigned, interface constants included
func (f *Field) IsFinal() bool {
	return f.Modifiers.Has(FINAL) || (f.Owner != nil && f.Owner.IsInterface())
}

func (f *Field) DeclName() string         { return f.Name }
func (f *Field) DeclType() *Type          { return f.Type }
func (e *EnumConstant) DeclName() string  { return e.Name }
func (e *EnumConstant) DeclType() *Type   { return e.Owner.AsType() }
func (p *Parameter) DeclName() string     { return p.Name }
func (v *LocalVariable) DeclName() string { return v.Name }
func (v *LocalVariable) DeclType() *Type  { return v.Type }

// DeclType of a varargs parameter is the array type seen inside the body
func (p *Parameter) DeclType() *Type {
	if p.Varargs {
		return &Type{Kind: ArrayType, Name: p.Type.Name + "[]", Elem: p.Type, ID: TypeID(string(p.Type.Canonical()) + "[]")}
	}
	return p.Type
}

// IsAbstract reports whether the method has no body to convert
func (m *Method) IsAbstract() bool {
	return m.Body == nil && !m.Modifiers.Has(NATIVE)
}

// Signature renders name and parameter types, used for diagnostics and override matching
func (m *Method) Signature() string {
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, string(p.Type.Canonical()))
	}
	return m.Name + "(" + strings.Join(params, ",") + ")"
}

// Accepts reports whether a call with argCount arguments can target the method
func (m *Method) Accepts(argCount int) bool {
	if len(m.Params) == argCount {
		return true
	}
	if n := len(m.Params); n > 0 && m.Params[n-1].Varargs {
		return argCount >= n-1
	}
	return false
}

// DelegatesToThis returns the this(...) call opening the constructor body, if any
func (m *Method) DelegatesToThis() *MethodCall {
	if !m.IsConstructor || m.Body == nil {
		return nil
	}
	for _, s := range m.Body.Statements {
		if _, isComment := s.(*Comment); isComment {
			continue
		}
		stmt, ok := s.(*ExpressionStatement)
		if !ok {
			return nil
		}
		call, ok := stmt.Expr.(*MethodCall)
		if ok && call.IsConstructorCall && !call.IsSuper {
			return call
		}
		return nil
	}
	return nil
}
