package ktsrc

import (
	"strings"
)

// Declarations

type (
	// File represents a complete Kotlin source file
	File struct {
		notEmpty
		Header       string
		PackageName  string
		Imports      []*Import
		Body         []SourceElement
		MainFunction string
	}

	// Import represents a single import directive
	Import struct {
		notEmpty
		Path string
	}

	// Class represents a Kotlin class. Trait and Enum reuse its shape with their own rendering.
	Class struct {
		notEmpty
		Name           *Identifier
		Docs           []SourceElement
		Modifiers      Modifiers
		TypeParameters []*TypeParameter
		Extends        []Type
		BaseArgs       []Expression
		Implements     []Type
		Members        []SourceElement
		Inner          bool
	}

	// Trait represents a Kotlin interface
	Trait struct {
		Class
	}

	// Enum represents a Kotlin enum class
	Enum struct {
		Class
	}

	// EnumConstant represents a constant entry of an enum class
	EnumConstant struct {
		notEmpty
		Name *Identifier
		Docs []SourceElement
		Args []Expression
		Body *AnonymousClass
	}

	// AnonymousClass is the body of an object expression
	AnonymousClass struct {
		notEmpty
		Members []SourceElement
	}

	// Function represents a member or top level function
	Function struct {
		notEmpty
		Name           *Identifier
		Docs           []SourceElement
		Modifiers      Modifiers
		ReturnType     Type
		TypeParameters []*TypeParameter
		Params         *ParameterList
		Body           *Block
	}

	// Constructor is either the primary constructor of a class, whose parameters are part of
	// the class header and whose body becomes an init block, or a secondary constructor
	// rendered as a factory function in the companion object.
	Constructor struct {
		Function
		IsPrimary bool
	}

	// Field represents a property declaration. Lateinit properties are not-null mutable
	// properties assigned after construction.
	Field struct {
		notEmpty
		Name        *Identifier
		Docs        []SourceElement
		Modifiers   Modifiers
		Ty          Type
		Initializer Expression
		Lateinit    bool
	}

	// Parameter represents a function parameter
	Parameter struct {
		notEmpty
		Name     *Identifier
		Ty       Type
		ReadOnly bool
		Vararg   bool
	}

	// ParameterList is an ordered list of parameters
	ParameterList struct {
		notEmpty
		Params []*Parameter
	}

	// Initializer represents an init block
	Initializer struct {
		notEmpty
		Body      *Block
		Modifiers Modifiers
	}

	companionObject struct {
		notEmpty
		Members []SourceElement
	}
)

func (f *File) ToSource() string {
	sb := strings.Builder{}
	if f.Header != "" {
		sb.WriteString(strings.TrimRight(f.Header, "\n"))
		sb.WriteString("\n\n")
	}
	if f.PackageName != "" {
		sb.WriteString("package ")
		sb.WriteString(QuoteQualifiedName(f.PackageName))
		sb.WriteString("\n\n")
	}
	sb.WriteString(Join(f.Imports, "\n", "", "\n\n"))
	sb.WriteString(JoinSource(f.Body, "\n"))
	if f.MainFunction != "" {
		sb.WriteString("\n\n")
		sb.WriteString(f.MainFunction)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func (i *Import) ToSource() string {
	return "import " + QuoteQualifiedName(i.Path)
}

// PrimaryConstructor returns the primary constructor among the members, if any
func (c *Class) PrimaryConstructor() *Constructor {
	for _, m := range c.Members {
		if ctor, ok := m.(*Constructor); ok && ctor.IsPrimary {
			return ctor
		}
	}
	return nil
}

func (c *Class) ToSource() string {
	sb := strings.Builder{}
	writeDocs(&sb, c.Docs)
	sb.WriteString(c.Modifiers.accessSource())
	switch {
	case c.Modifiers.Has(ABSTRACT):
		sb.WriteString("abstract ")
	case !c.Modifiers.Has(FINAL):
		sb.WriteString("open ")
	}
	if c.Inner {
		sb.WriteString("inner ")
	}
	sb.WriteString("class ")
	c.writeHeader(&sb)
	supers := []string{}
	for _, ext := range c.Extends {
		supers = append(supers, ext.ToSource()+"("+JoinSource(c.BaseArgs, ", ")+")")
	}
	writeSupers(&sb, supers, c.Implements)
	sb.WriteString(bodySource(c.Members, ""))
	return sb.String()
}

func (c *Class) writeHeader(sb *strings.Builder) {
	sb.WriteString(c.Name.ToSource())
	sb.WriteString(typeParameters(c.TypeParameters))
	if primary := c.PrimaryConstructor(); primary != nil {
		sb.WriteString("(")
		sb.WriteString(primary.Params.ToSource())
		sb.WriteString(")")
	}
}

func (t *Trait) ToSource() string {
	sb := strings.Builder{}
	writeDocs(&sb, t.Docs)
	sb.WriteString(t.Modifiers.accessSource())
	sb.WriteString("interface ")
	sb.WriteString(t.Name.ToSource())
	sb.WriteString(typeParameters(t.TypeParameters))
	supers := []string{}
	for _, ext := range t.Extends {
		supers = append(supers, ext.ToSource())
	}
	writeSupers(&sb, supers, t.Implements)
	sb.WriteString(bodySource(t.Members, ""))
	return sb.String()
}

func (e *Enum) ToSource() string {
	sb := strings.Builder{}
	writeDocs(&sb, e.Docs)
	sb.WriteString(e.Modifiers.accessSource())
	sb.WriteString("enum class ")
	e.writeHeader(&sb)
	writeSupers(&sb, nil, e.Implements)
	constants := []*EnumConstant{}
	for _, m := range e.Members {
		if constant, ok := m.(*EnumConstant); ok {
			constants = append(constants, constant)
		}
	}
	entries := JoinSource(constants, ",\n")
	if entries == "" {
		entries = ";"
	}
	sb.WriteString(bodySource(e.Members, entries))
	return sb.String()
}

func writeSupers(sb *strings.Builder, supers []string, implements []Type) {
	for _, impl := range implements {
		supers = append(supers, impl.ToSource())
	}
	if len(supers) == 0 {
		return
	}
	sb.WriteString(" : ")
	sb.WriteString(strings.Join(supers, ", "))
}

func writeDocs(sb *strings.Builder, docs []SourceElement) {
	for _, doc := range docs {
		sb.WriteString(doc.ToSource())
		sb.WriteString("\n")
	}
}

func isStaticMember(member SourceElement) bool {
	switch m := member.(type) {
	case *Field:
		return m.Modifiers.Has(STATIC)
	case *Function:
		return m.Modifiers.Has(STATIC)
	case *Initializer:
		return m.Modifiers.Has(STATIC)
	}
	return false
}

// bodySource renders class members. Secondary constructors and static members move to the
// companion object, a primary constructor with statements becomes an init block. leading is
// written first, used for enum entries.
func bodySource(members []SourceElement, leading string) string {
	var body, companion []SourceElement
	for _, m := range members {
		switch member := m.(type) {
		case *EnumConstant:
			continue
		case *Constructor:
			if !member.IsPrimary {
				companion = append(companion, member)
			} else if member.HasInitBlock() {
				body = append(body, member)
			}
			continue
		}
		if isStaticMember(m) {
			companion = append(companion, m)
			continue
		}
		body = append(body, m)
	}
	if len(companion) > 0 {
		body = append(body, &companionObject{Members: companion})
	}
	text := JoinSource(body, "\n")
	if leading != "" {
		if text != "" {
			text = strings.TrimSuffix(leading, ";") + ";\n" + text
		} else {
			text = leading
		}
	}
	if text == "" {
		return ""
	}
	return " " + braced(text)
}

func (c *companionObject) ToSource() string {
	return "companion object " + braced(JoinSource(c.Members, "\n"))
}

func (e *EnumConstant) ToSource() string {
	sb := strings.Builder{}
	writeDocs(&sb, e.Docs)
	sb.WriteString(e.Name.ToSource())
	if len(e.Args) > 0 {
		sb.WriteString("(")
		sb.WriteString(JoinSource(e.Args, ", "))
		sb.WriteString(")")
	}
	if e.Body != nil {
		sb.WriteString(" ")
		sb.WriteString(e.Body.ToSource())
	}
	return sb.String()
}

func (a *AnonymousClass) ToSource() string {
	return braced(JoinSource(a.Members, "\n"))
}

func (f *Function) modifiersSource() string {
	sb := strings.Builder{}
	sb.WriteString(f.Modifiers.accessSource())
	switch {
	case f.Modifiers.Has(OVERRIDE):
		sb.WriteString("override ")
	case f.Modifiers.Has(ABSTRACT):
		sb.WriteString("abstract ")
	case !f.Modifiers.Has(NOT_OPEN):
		sb.WriteString("open ")
	}
	return sb.String()
}

func (f *Function) ToSource() string {
	sb := strings.Builder{}
	writeDocs(&sb, f.Docs)
	sb.WriteString(f.modifiersSource())
	sb.WriteString("fun ")
	if tps := typeParameters(f.TypeParameters); tps != "" {
		sb.WriteString(tps)
		sb.WriteString(" ")
	}
	sb.WriteString(f.Name.ToSource())
	sb.WriteString("(")
	sb.WriteString(f.Params.ToSource())
	sb.WriteString(")")
	if !f.ReturnType.IsUnit() {
		sb.WriteString(": ")
		sb.WriteString(f.ReturnType.ToSource())
	}
	if !f.Body.IsEmpty() {
		sb.WriteString(" ")
		sb.WriteString(f.Body.withStatements(f.Params.shadows(), nil).ToSource())
	}
	return sb.String()
}

func (c *Constructor) ToSource() string {
	if c.IsPrimary {
		if !c.HasInitBlock() {
			return ""
		}
		return "init " + c.Body.withStatements(c.Params.shadows(), nil).ToSource()
	}
	sb := strings.Builder{}
	writeDocs(&sb, c.Docs)
	sb.WriteString(c.Modifiers.accessSource())
	sb.WriteString("fun ")
	if tps := typeParameters(c.TypeParameters); tps != "" {
		sb.WriteString(tps)
		sb.WriteString(" ")
	}
	sb.WriteString(FactoryName)
	sb.WriteString("(")
	sb.WriteString(c.Params.ToSource())
	sb.WriteString("): ")
	sb.WriteString(c.ReturnType.ToSource())
	sb.WriteString(" ")
	ret := &ReturnStatement{Value: NewIdentifier(SecondaryReceiver)}
	sb.WriteString(c.Body.withStatements(c.Params.shadows(), []Statement{ret}).ToSource())
	return sb.String()
}

// HasInitBlock reports whether a primary constructor needs an init block
func (c *Constructor) HasInitBlock() bool {
	return len(c.Body.statements()) > 0 || len(c.Params.shadows()) > 0
}

// IsVal reports whether the property is read only
func (f *Field) IsVal() bool {
	return f.Modifiers.Has(FINAL)
}

func (f *Field) ToSource() string {
	sb := strings.Builder{}
	writeDocs(&sb, f.Docs)
	sb.WriteString(f.Modifiers.accessSource())
	switch {
	case f.IsVal():
		sb.WriteString("val ")
	case f.Lateinit:
		sb.WriteString("lateinit var ")
	default:
		sb.WriteString("var ")
	}
	sb.WriteString(f.Name.ToSource())
	sb.WriteString(": ")
	sb.WriteString(f.Ty.ToSource())
	if f.Initializer != nil {
		sb.WriteString(WithPrefix(" = ", f.Initializer))
	}
	return sb.String()
}

func (p *Parameter) ToSource() string {
	prefix := ""
	if p.Vararg {
		prefix = "vararg "
	}
	return prefix + p.Name.ToSource() + ": " + p.Ty.ToSource()
}

func (l *ParameterList) ToSource() string {
	if l == nil {
		return ""
	}
	return JoinSource(l.Params, ", ")
}

// shadows declares a mutable local for every parameter written in the body
func (l *ParameterList) shadows() []Statement {
	if l == nil {
		return nil
	}
	var result []Statement
	for _, p := range l.Params {
		if p.ReadOnly {
			continue
		}
		result = append(result, &LocalVariable{
			Name:        p.Name,
			Initializer: p.Name,
		})
	}
	return result
}

func (i *Initializer) ToSource() string {
	return "init " + i.Body.ToSource()
}
