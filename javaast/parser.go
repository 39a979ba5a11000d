package javaast

import (
	"errors"
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// Parse parses Java source code and returns the resolved model of the compilation unit.
// Syntax errors do not fail the parse, they are reported in File.SyntaxErrors and the
// recovered tree is modelled as far as possible.
func Parse(source []byte, path string) (*File, error) {
	tree, err := ParseTree(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	b := &builder{source: source}
	file := b.file(tree.RootNode(), path)
	Resolve(file)
	return file, nil
}

// ParseTree parses Java source code and returns a tree-sitter tree
func ParseTree(source []byte) (*tree_sitter.Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_java.Language())); err != nil {
		return nil, fmt.Errorf("loading java grammar: %w", err)
	}
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errors.New("parser returned no tree")
	}
	return tree, nil
}

// IterateChildren iterates over all children of a node and calls fn for each
func IterateChildren(node *tree_sitter.Node, fn func(child *tree_sitter.Node)) {
	cursor := node.Walk()
	defer cursor.Close()
	for _, child := range node.Children(cursor) {
		fn(&child)
	}
}

// fieldChildren returns every child stored under the field, in order
func fieldChildren(node *tree_sitter.Node, field string) []*tree_sitter.Node {
	var result []*tree_sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.FieldNameForChild(uint32(i)) == field {
			result = append(result, node.Child(i))
		}
	}
	return result
}

// namedChildren returns the named children that are not comments
func namedChildren(node *tree_sitter.Node) []*tree_sitter.Node {
	var result []*tree_sitter.Node
	IterateChildren(node, func(child *tree_sitter.Node) {
		if child.IsNamed() && !isComment(child) {
			result = append(result, child)
		}
	})
	return result
}

func firstNamed(node *tree_sitter.Node) *tree_sitter.Node {
	if children := namedChildren(node); len(children) > 0 {
		return children[0]
	}
	return nil
}

func isComment(node *tree_sitter.Node) bool {
	return node.Kind() == "line_comment" || node.Kind() == "block_comment"
}

func isClassDeclaration(kind string) bool {
	switch kind {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration",
		"annotation_type_declaration":
		return true
	}
	return false
}

func isTypeKind(kind string) bool {
	switch kind {
	case "integral_type", "floating_point_type", "boolean_type", "void_type", "type_identifier",
		"scoped_type_identifier", "generic_type", "array_type", "annotated_type":
		return true
	}
	return false
}

// compact removes all whitespace, used for dotted names
func compact(text string) string {
	return strings.Join(strings.Fields(text), "")
}

type builder struct {
	source  []byte
	pkg     string
	classes []*Class
	errors  []SyntaxError
}

func (b *builder) text(n *tree_sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(b.source)
}

func (b *builder) node(n *tree_sitter.Node) node {
	p := n.StartPosition()
	return node{Text: b.text(n), Position: Position{Line: p.Row + 1, Column: p.Column + 1}}
}

func (b *builder) currentClass() *Class {
	if len(b.classes) == 0 {
		return nil
	}
	return b.classes[len(b.classes)-1]
}

func (b *builder) file(root *tree_sitter.Node, path string) *File {
	f := &File{node: b.node(root), Path: path}
	var items []Node
	var lastEnd uint
	seenBody := false
	IterateChildren(root, func(child *tree_sitter.Node) {
		var item Node
		switch child.Kind() {
		case "package_declaration":
			f.Package = b.dottedName(child)
			b.pkg = f.Package
		case "import_declaration":
			f.Imports = append(f.Imports, b.importDeclaration(child))
		case "line_comment", "block_comment":
			item = &Comment{node: b.node(child)}
		// ignored
		case "ERROR":
		case "module_declaration":
		case ";":
		default:
			if isClassDeclaration(child.Kind()) {
				item = b.classDeclaration(child)
			}
		}
		if item != nil {
			if seenBody && child.StartByte() > lastEnd {
				gap := string(b.source[lastEnd:child.StartByte()])
				if strings.TrimSpace(gap) != "" {
					gap = "\n"
				}
				items = append(items, &Whitespace{node: node{Text: gap}})
			}
			items = append(items, item)
			seenBody = true
		}
		lastEnd = child.EndByte()
	})
	f.Elements = attachDocs(items)
	b.collectErrors(root)
	f.SyntaxErrors = b.errors
	return f
}

func (b *builder) collectErrors(n *tree_sitter.Node) {
	if !n.HasError() && !n.IsMissing() {
		return
	}
	if n.IsError() || n.IsMissing() {
		p := n.StartPosition()
		b.errors = append(b.errors, SyntaxError{
			Position: Position{Line: p.Row + 1, Column: p.Column + 1},
			Text:     b.text(n),
		})
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		b.collectErrors(n.Child(i))
	}
}

// attachDocs moves documentation comments onto the declaration that directly follows them
func attachDocs(items []Node) []Node {
	var result []Node
	for i := 0; i < len(items); i++ {
		if doc, ok := items[i].(*Comment); ok && doc.IsDoc() {
			j := i + 1
			if j < len(items) {
				if ws, isWS := items[j].(*Whitespace); isWS && strings.Count(ws.Text, "\n") <= 1 {
					j++
				}
			}
			if j < len(items) && attachDoc(items[j], doc) {
				result = append(result, items[j])
				i = j
				continue
			}
		}
		result = append(result, items[i])
	}
	return result
}

func attachDoc(target Node, doc *Comment) bool {
	switch t := target.(type) {
	case *Class:
		t.Docs = append([]*Comment{doc}, t.Docs...)
	case *Method:
		t.Docs = append([]*Comment{doc}, t.Docs...)
	case *Field:
		t.Docs = append([]*Comment{doc}, t.Docs...)
	case *EnumConstant:
		t.Docs = append([]*Comment{doc}, t.Docs...)
	default:
		return false
	}
	return true
}

func (b *builder) dottedName(n *tree_sitter.Node) string {
	name := ""
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "identifier", "scoped_identifier":
			name = compact(b.text(child))
		}
	})
	return name
}

func (b *builder) importDeclaration(n *tree_sitter.Node) *Import {
	imp := &Import{node: b.node(n)}
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "static":
			imp.Static = true
		case "identifier", "scoped_identifier":
			imp.Path = compact(b.text(child))
		case "asterisk":
			imp.OnDemand = true
		}
	})
	if imp.OnDemand {
		imp.Path += ".*"
	}
	return imp
}

func (b *builder) modifiers(n *tree_sitter.Node) (Modifiers, []*Annotation) {
	var mods Modifiers
	var annotations []*Annotation
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "marker_annotation", "annotation":
			annotations = append(annotations, &Annotation{
				node: b.node(child),
				Name: compact(b.text(child.ChildByFieldName("name"))),
			})
		case "line_comment", "block_comment":
		default:
			mods |= ParseModifiers(b.text(child))
		}
	})
	return mods, annotations
}

func (b *builder) classDeclaration(n *tree_sitter.Node) *Class {
	c := &Class{node: b.node(n), Package: b.pkg, Outer: b.currentClass()}
	switch n.Kind() {
	case "interface_declaration":
		c.Kind = ClassKindInterface
	case "enum_declaration":
		c.Kind = ClassKindEnum
	case "annotation_type_declaration":
		c.Kind = ClassKindAnnotation
	case "record_declaration":
		c.Kind = ClassKindRecord
	}
	b.classes = append(b.classes, c)
	defer func() { b.classes = b.classes[:len(b.classes)-1] }()

	var components []*Parameter
	var body *tree_sitter.Node
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "modifiers":
			c.Modifiers, c.Annotations = b.modifiers(child)
		case "identifier":
			c.Name = b.text(child)
		case "type_parameters":
			c.TypeParameters = b.typeParameters(child)
		case "superclass", "extends_interfaces":
			c.Extends = append(c.Extends, b.typesIn(child)...)
		case "super_interfaces":
			c.Implements = append(c.Implements, b.typesIn(child)...)
		case "formal_parameters":
			components = b.formalParameters(child)
		case "class_body", "interface_body", "enum_body", "annotation_type_body":
			body = child
		}
	})
	if body != nil {
		c.Members = b.classBody(body, c)
	}
	if c.Kind == ClassKindRecord {
		b.completeRecord(c, components)
	}
	return c
}

func (b *builder) anonymousClass(body *tree_sitter.Node, super *Type) *Class {
	c := &Class{
		node:      b.node(body),
		Package:   b.pkg,
		Outer:     b.currentClass(),
		Anonymous: true,
		Extends:   []*Type{super},
	}
	b.classes = append(b.classes, c)
	defer func() { b.classes = b.classes[:len(b.classes)-1] }()
	c.Members = b.classBody(body, c)
	return c
}

func (b *builder) classBody(body *tree_sitter.Node, owner *Class) []Member {
	var items []Node
	var visit func(n *tree_sitter.Node)
	visit = func(n *tree_sitter.Node) {
		IterateChildren(n, func(child *tree_sitter.Node) {
			switch child.Kind() {
			case "field_declaration", "constant_declaration":
				for _, field := range b.fieldDeclaration(child, owner) {
					items = append(items, field)
				}
			case "method_declaration", "constructor_declaration", "compact_constructor_declaration",
				"annotation_type_element_declaration":
				items = append(items, b.methodDeclaration(child, owner))
			case "enum_constant":
				items = append(items, b.enumConstant(child, owner))
			case "enum_body_declarations":
				visit(child)
			case "static_initializer":
				items = append(items, &ClassInitializer{
					node:   b.node(child),
					Static: true,
					Body:   b.block(firstNamed(child)),
					Owner:  owner,
				})
			case "block":
				items = append(items, &ClassInitializer{node: b.node(child), Body: b.block(child), Owner: owner})
			case "line_comment", "block_comment":
				items = append(items, &Comment{node: b.node(child)})
			// ignored
			case "{":
			case "}":
			case ";":
			case ",":
			default:
				if isClassDeclaration(child.Kind()) {
					items = append(items, b.classDeclaration(child))
				}
			}
		})
	}
	visit(body)
	var members []Member
	for _, item := range attachDocs(items) {
		members = append(members, item.(Member))
	}
	return members
}

// completeRecord adds the fields, canonical constructor and accessors a record implies
func (b *builder) completeRecord(c *Class, components []*Parameter) {
	var fields []Member
	for _, p := range components {
		fields = append(fields, &Field{node: p.node, Name: p.Name, Modifiers: PRIVATE | FINAL, Type: p.Type, Owner: c})
	}
	c.Members = append(fields, c.Members...)

	var assignments []Statement
	for _, p := range components {
		text := "this." + p.Name + " = " + p.Name
		assignments = append(assignments, &ExpressionStatement{
			node: node{Text: text + ";", Position: p.Position},
			Expr: &Assignment{
				expr:  expr{node: node{Text: text, Position: p.Position}},
				Op:    "=",
				Left:  &Reference{expr: expr{node: node{Text: "this." + p.Name}}, Qualifier: &This{}, Name: p.Name},
				Right: &Reference{expr: expr{node: node{Text: p.Name}}, Name: p.Name},
			},
		})
	}
	hasCanonical := false
	for _, ctor := range c.Constructors() {
		if ctor.Params == nil && ctor.Body != nil {
			// compact constructor
			ctor.Params = components
			ctor.Body.Statements = append(ctor.Body.Statements, assignments...)
			hasCanonical = true
		} else if len(ctor.Params) == len(components) {
			hasCanonical = true
		}
	}
	if !hasCanonical {
		c.Members = append(c.Members, &Method{
			node:          c.node,
			Name:          c.Name,
			Modifiers:     PUBLIC,
			Params:        components,
			Body:          &Block{node: c.node, Statements: assignments},
			IsConstructor: true,
			Owner:         c,
		})
	}
	for _, p := range components {
		if hasMethod(c, p.Name, 0) {
			continue
		}
		ret := &Return{
			node:  node{Text: "return this." + p.Name + ";"},
			Value: &Reference{expr: expr{node: node{Text: "this." + p.Name}}, Qualifier: &This{}, Name: p.Name},
		}
		c.Members = append(c.Members, &Method{
			node:       p.node,
			Name:       p.Name,
			Modifiers:  PUBLIC,
			ReturnType: p.Type,
			Body:       &Block{node: node{Text: ret.Text}, Statements: []Statement{ret}},
			Owner:      c,
		})
	}
}

func hasMethod(c *Class, name string, params int) bool {
	for _, m := range c.Methods() {
		if m.Name == name && len(m.Params) == params {
			return true
		}
	}
	return false
}

func (b *builder) typeParameters(n *tree_sitter.Node) []*TypeParameter {
	var result []*TypeParameter
	IterateChildren(n, func(child *tree_sitter.Node) {
		if child.Kind() != "type_parameter" {
			return
		}
		tp := &TypeParameter{node: b.node(child)}
		IterateChildren(child, func(part *tree_sitter.Node) {
			switch part.Kind() {
			case "type_identifier", "identifier":
				tp.Name = b.text(part)
			case "type_bound":
				tp.Bounds = b.typesIn(part)
			}
		})
		result = append(result, tp)
	})
	return result
}

// typesIn collects the types listed under extends, implements, throws and bounds
func (b *builder) typesIn(n *tree_sitter.Node) []*Type {
	var result []*Type
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch {
		case isTypeKind(child.Kind()):
			result = append(result, b.typ(child))
		case child.Kind() == "type_list":
			result = append(result, b.typesIn(child)...)
		}
	})
	return result
}

func arrayOf(elem *Type, dims int) *Type {
	t := elem
	for range dims {
		t = &Type{Kind: ArrayType, Name: t.Name + "[]", Elem: t}
	}
	return t
}

func dimensionCount(text string) int {
	return strings.Count(text, "[")
}

// typ parses a tree-sitter type node
func (b *builder) typ(n *tree_sitter.Node) *Type {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "integral_type", "floating_point_type", "boolean_type":
		return Primitive(compact(b.text(n)))
	case "void_type":
		return &Type{Kind: VoidType, Name: "void", ID: "void"}
	case "type_identifier", "identifier":
		name := b.text(n)
		if name == "var" {
			return nil
		}
		return &Type{Kind: ClassType, Name: name}
	case "scoped_type_identifier":
		return &Type{Kind: ClassType, Name: stripTypeArguments(compact(b.text(n)))}
	case "generic_type":
		t := &Type{Kind: ClassType}
		IterateChildren(n, func(child *tree_sitter.Node) {
			switch child.Kind() {
			case "type_identifier", "scoped_type_identifier":
				t.Name = stripTypeArguments(compact(b.text(child)))
			case "type_arguments":
				t.Args = b.typeArguments(child)
			}
		})
		return t
	case "array_type":
		return arrayOf(b.typ(n.ChildByFieldName("element")), dimensionCount(b.text(n.ChildByFieldName("dimensions"))))
	case "annotated_type":
		var t *Type
		IterateChildren(n, func(child *tree_sitter.Node) {
			if isTypeKind(child.Kind()) {
				t = b.typ(child)
			}
		})
		return t
	case "wildcard":
		t := &Type{Kind: WildcardType, Name: "?"}
		IterateChildren(n, func(child *tree_sitter.Node) {
			switch {
			case child.Kind() == "super":
				t.Super = true
			case isTypeKind(child.Kind()):
				t.Bound = b.typ(child)
			}
		})
		return t
	}
	return &Type{Kind: ClassType, Name: compact(b.text(n))}
}

func stripTypeArguments(name string) string {
	sb := strings.Builder{}
	depth := 0
	for _, r := range name {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		default:
			if depth == 0 {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

func (b *builder) typeArguments(n *tree_sitter.Node) []*Type {
	var result []*Type
	IterateChildren(n, func(child *tree_sitter.Node) {
		if isTypeKind(child.Kind()) || child.Kind() == "wildcard" {
			result = append(result, b.typ(child))
		}
	})
	return result
}

func (b *builder) fieldDeclaration(n *tree_sitter.Node, owner *Class) []*Field {
	var mods Modifiers
	var annotations []*Annotation
	var ty *Type
	var fields []*Field
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "modifiers":
			mods, annotations = b.modifiers(child)
		case "variable_declarator":
			name, fieldType, init := b.declarator(child, ty)
			fields = append(fields, &Field{
				node:        b.node(n),
				annotated:   annotated{Annotations: annotations},
				Name:        name,
				Modifiers:   mods,
				Type:        fieldType,
				Initializer: init,
				Owner:       owner,
			})
		default:
			if isTypeKind(child.Kind()) {
				ty = b.typ(child)
			}
		}
	})
	return fields
}

func (b *builder) declarator(n *tree_sitter.Node, ty *Type) (string, *Type, Expression) {
	name := b.text(n.ChildByFieldName("name"))
	if dims := n.ChildByFieldName("dimensions"); dims != nil && ty != nil {
		ty = arrayOf(ty, dimensionCount(b.text(dims)))
	}
	var init Expression
	if value := n.ChildByFieldName("value"); value != nil {
		if value.Kind() == "array_initializer" {
			init = b.arrayInit(value, ty)
		} else {
			init = b.expression(value)
		}
	}
	return name, ty, init
}

func (b *builder) enumConstant(n *tree_sitter.Node, owner *Class) *EnumConstant {
	e := &EnumConstant{node: b.node(n), Owner: owner}
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "modifiers":
			_, e.Annotations = b.modifiers(child)
		case "identifier":
			e.Name = b.text(child)
		case "argument_list":
			e.Args = b.arguments(child)
		case "class_body":
			e.Body = b.anonymousClass(child, owner.AsType())
		}
	})
	return e
}

func (b *builder) methodDeclaration(n *tree_sitter.Node, owner *Class) *Method {
	m := &Method{node: b.node(n), Owner: owner}
	switch n.Kind() {
	case "constructor_declaration", "compact_constructor_declaration":
		m.IsConstructor = true
	}
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "modifiers":
			m.Modifiers, m.Annotations = b.modifiers(child)
		case "type_parameters":
			m.TypeParameters = b.typeParameters(child)
		case "identifier":
			m.Name = b.text(child)
		case "formal_parameters":
			m.Params = b.formalParameters(child)
			if m.Params == nil {
				m.Params = []*Parameter{}
			}
		case "dimensions":
			m.ReturnType = arrayOf(m.ReturnType, dimensionCount(b.text(child)))
		case "throws":
			m.Throws = b.typesIn(child)
		case "block", "constructor_body":
			m.Body = b.block(child)
		default:
			if isTypeKind(child.Kind()) {
				m.ReturnType = b.typ(child)
			}
		}
	})
	return m
}

func (b *builder) formalParameters(n *tree_sitter.Node) []*Parameter {
	var result []*Parameter
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "formal_parameter":
			result = append(result, b.formalParameter(child))
		case "spread_parameter":
			p := b.formalParameter(child)
			p.Varargs = true
			result = append(result, p)
		}
	})
	return result
}

func (b *builder) formalParameter(n *tree_sitter.Node) *Parameter {
	p := &Parameter{node: b.node(n)}
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "modifiers":
			p.Modifiers, p.Annotations = b.modifiers(child)
		case "identifier":
			p.Name = b.text(child)
		case "dimensions":
			p.Type = arrayOf(p.Type, dimensionCount(b.text(child)))
		case "variable_declarator":
			p.Name, p.Type, _ = b.declarator(child, p.Type)
		default:
			if isTypeKind(child.Kind()) {
				p.Type = b.typ(child)
			}
		}
	})
	return p
}

func (b *builder) arguments(n *tree_sitter.Node) []Expression {
	if n == nil {
		return nil
	}
	result := []Expression{}
	for _, child := range namedChildren(n) {
		result = append(result, b.expression(child))
	}
	return result
}
