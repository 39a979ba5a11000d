package javaast

import (
	"strings"
)

// Resolve links types, references and calls of a file. Resolution is local to the file: names
// that are neither declared here, imported nor part of java.lang stay unresolved.
func Resolve(f *File) {
	r := &resolver{
		file:    f,
		imports: map[string]string{},
		classes: map[string]*Class{},
	}
	for _, imp := range f.Imports {
		if imp.Static || imp.OnDemand {
			continue
		}
		r.imports[lastSegment(imp.Path)] = imp.Path
	}
	all := f.AllClasses()
	for _, c := range all {
		r.register(c)
	}
	for _, c := range all {
		r.declare(c)
	}
	for _, c := range all {
		r.linkOverrides(c)
	}
	for _, c := range f.Classes() {
		r.classBody(c)
	}
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

type scope struct {
	parent *scope
	names  map[string]Declaration
}

func (s *scope) lookup(name string) Declaration {
	for ; s != nil; s = s.parent {
		if d, ok := s.names[name]; ok {
			return d
		}
	}
	return nil
}

type resolver struct {
	file    *File
	imports map[string]string
	classes map[string]*Class
	class   *Class
	method  *Method
	scope   *scope
}

func (r *resolver) push() {
	r.scope = &scope{parent: r.scope, names: map[string]Declaration{}}
}

func (r *resolver) pop() {
	r.scope = r.scope.parent
}

func (r *resolver) define(d Declaration) {
	if r.scope == nil {
		r.push()
	}
	if d.DeclName() != "" {
		r.scope.names[d.DeclName()] = d
	}
}

func (r *resolver) register(c *Class) {
	if c.Name == "" {
		return
	}
	if _, exists := r.classes[c.Name]; !exists {
		r.classes[c.Name] = c
	}
	r.classes[c.QualifiedName()] = c
}

// lookupClass finds a class declared in this file visible from ctx
func (r *resolver) lookupClass(name string, ctx *Class) *Class {
	if head, rest, dotted := strings.Cut(name, "."); dotted {
		if c, ok := r.classes[name]; ok {
			return c
		}
		outer := r.lookupClass(head, ctx)
		for _, part := range strings.Split(rest, ".") {
			if outer == nil {
				return nil
			}
			outer = nestedClass(outer, part)
		}
		return outer
	}
	for c := ctx; c != nil; c = c.Outer {
		if c.Name == name {
			return c
		}
		if nested := nestedClass(c, name); nested != nil {
			return nested
		}
	}
	return r.classes[name]
}

func nestedClass(c *Class, name string) *Class {
	for _, nested := range c.NestedClasses() {
		if nested.Name == name {
			return nested
		}
	}
	return nil
}

func (r *resolver) isTypeVariable(name string, ctx *Class, m *Method) bool {
	if m != nil {
		for _, tp := range m.TypeParameters {
			if tp.Name == name {
				return true
			}
		}
	}
	for c := ctx; c != nil; c = c.Outer {
		for _, tp := range c.TypeParameters {
			if tp.Name == name {
				return true
			}
		}
	}
	return false
}

// qualify fills in the canonical identity of t and its components
func (r *resolver) qualify(t *Type, ctx *Class, m *Method) {
	if t == nil {
		return
	}
	for _, arg := range t.Args {
		r.qualify(arg, ctx, m)
	}
	r.qualify(t.Elem, ctx, m)
	r.qualify(t.Bound, ctx, m)
	switch t.Kind {
	case ArrayType:
		t.ID = t.Elem.Canonical() + "[]"
	case ClassType:
		if t.ID != "" {
			return
		}
		switch {
		case r.isTypeVariable(t.Name, ctx, m):
			t.Kind = TypeVariable
			t.ID = TypeID(t.Name)
		case r.lookupClass(t.Name, ctx) != nil:
			t.Decl = r.lookupClass(t.Name, ctx)
			t.ID = TypeID(t.Decl.QualifiedName())
		default:
			head, rest, dotted := strings.Cut(t.Name, ".")
			if imported, ok := r.imports[head]; ok {
				if dotted {
					t.ID = TypeID(imported + "." + rest)
				} else {
					t.ID = TypeID(imported)
				}
			} else if IsJavaLang(t.Name) {
				t.ID = TypeID("java.lang." + t.Name)
			}
		}
	}
}

func (r *resolver) qualifyHere(t *Type) {
	r.qualify(t, r.class, r.method)
}

func (r *resolver) annotate(a annotated) {
	for _, annotation := range a.Annotations {
		switch {
		case strings.Contains(annotation.Name, "."):
			annotation.QualifiedName = annotation.Name
		case r.imports[annotation.Name] != "":
			annotation.QualifiedName = r.imports[annotation.Name]
		case IsJavaLang(annotation.Name):
			annotation.QualifiedName = "java.lang." + annotation.Name
		default:
			annotation.QualifiedName = annotation.Name
		}
	}
}

// declare qualifies the types in the signatures of a class and its members
func (r *resolver) declare(c *Class) {
	r.annotate(c.annotated)
	for _, tp := range c.TypeParameters {
		for _, bound := range tp.Bounds {
			r.qualify(bound, c, nil)
		}
	}
	for _, t := range c.Extends {
		r.qualify(t, c, nil)
	}
	for _, t := range c.Implements {
		r.qualify(t, c, nil)
	}
	for _, member := range c.Members {
		switch m := member.(type) {
		case *Field:
			r.annotate(m.annotated)
			r.qualify(m.Type, c, nil)
		case *EnumConstant:
			r.annotate(m.annotated)
		case *Method:
			r.annotate(m.annotated)
			for _, tp := range m.TypeParameters {
				for _, bound := range tp.Bounds {
					r.qualify(bound, c, m)
				}
			}
			r.qualify(m.ReturnType, c, m)
			for _, p := range m.Params {
				r.annotate(p.annotated)
				r.qualify(p.Type, c, m)
			}
			for _, t := range m.Throws {
				r.qualify(t, c, m)
			}
		}
	}
}

// supertypes returns the declared ancestors of c found in this file, nearest first
func supertypes(c *Class) []*Class {
	var result []*Class
	seen := map[*Class]bool{c: true}
	queue := []*Class{c}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, t := range append(append([]*Type{}, current.Extends...), current.Implements...) {
			if t != nil && t.Decl != nil && !seen[t.Decl] {
				seen[t.Decl] = true
				result = append(result, t.Decl)
				queue = append(queue, t.Decl)
			}
		}
	}
	return result
}

func sameParameters(a, b *Method) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		pa, pb := a.Params[i].Type, b.Params[i].Type
		if pa.Kind == TypeVariable || pb.Kind == TypeVariable {
			continue
		}
		if pa.Canonical() != pb.Canonical() {
			return false
		}
	}
	return true
}

// linkOverrides records for every method of c the ancestor method it overrides
func (r *resolver) linkOverrides(c *Class) {
	ancestors := supertypes(c)
	for _, m := range c.Methods() {
		if m.Modifiers.Has(STATIC) || m.Modifiers.Has(PRIVATE) {
			continue
		}
	search:
		for _, ancestor := range ancestors {
			for _, candidate := range ancestor.Methods() {
				if candidate.Name == m.Name && !candidate.Modifiers.Has(PRIVATE) && sameParameters(m, candidate) {
					m.Overrides = candidate
					break search
				}
			}
		}
		if m.Overrides == nil {
			m.ObjectMethod = objectMethod(m)
		}
	}
}

func objectMethod(m *Method) string {
	switch {
	case m.Name == "equals" && len(m.Params) == 1 && m.Params[0].Type.Canonical() == "java.lang.Object":
		return m.Name
	case (m.Name == "hashCode" || m.Name == "toString") && len(m.Params) == 0:
		return m.Name
	}
	return ""
}

func (r *resolver) classBody(c *Class) {
	savedClass, savedMethod := r.class, r.method
	r.class, r.method = c, nil
	defer func() { r.class, r.method = savedClass, savedMethod }()
	for _, member := range c.Members {
		switch m := member.(type) {
		case *Field:
			if m.Initializer != nil {
				r.initializer(m.Initializer, m.Type)
			}
		case *EnumConstant:
			m.Target = pickMethod(c.Constructors(), r.arguments(m.Args))
			if m.Body != nil {
				r.localClass(m.Body)
			}
		case *Method:
			r.method = m
			r.push()
			for _, p := range m.Params {
				r.define(p)
			}
			if m.Body != nil {
				r.statement(m.Body)
			}
			r.pop()
			r.method = nil
		case *ClassInitializer:
			r.statement(m.Body)
		case *Class:
			savedScope := r.scope
			r.scope = nil
			r.classBody(m)
			r.scope = savedScope
		}
	}
}

// localClass resolves a class declared inside a body, where the enclosing locals stay visible
func (r *resolver) localClass(c *Class) {
	r.register(c)
	r.declare(c)
	r.linkOverrides(c)
	for _, nested := range c.NestedClasses() {
		r.register(nested)
		r.declare(nested)
		r.linkOverrides(nested)
	}
	r.push()
	r.classBody(c)
	r.pop()
}

func (r *resolver) initializer(e Expression, declared *Type) *Type {
	if init, ok := e.(*ArrayInit); ok && init.Type() == nil {
		init.setType(declared)
	}
	return r.expression(e)
}

func (r *resolver) statement(s Statement) {
	switch s := s.(type) {
	case *Block:
		r.push()
		for _, each := range s.Statements {
			r.statement(each)
		}
		r.pop()
	case *LocalVariableDeclaration:
		for _, v := range s.Variables {
			r.localVariable(v)
		}
	case *LocalClassDeclaration:
		r.localClass(s.Class)
	case *ExpressionStatement:
		r.expression(s.Expr)
	case *If:
		r.expression(s.Condition)
		r.branch(s.Then)
		r.branch(s.Else)
	case *While:
		r.expression(s.Condition)
		r.branch(s.Body)
	case *DoWhile:
		r.branch(s.Body)
		r.expression(s.Condition)
	case *For:
		r.push()
		for _, init := range s.Init {
			r.statement(init)
		}
		r.expression(s.Condition)
		for _, update := range s.Update {
			r.expression(update)
		}
		r.branch(s.Body)
		r.pop()
	case *ForEach:
		iterable := r.expression(s.Iterable)
		r.push()
		r.qualifyHere(s.Variable.Type)
		if s.Variable.Type == nil {
			s.Variable.Type = elementType(iterable)
		}
		r.define(s.Variable)
		r.branch(s.Body)
		r.pop()
	case *Return:
		r.expression(s.Value)
	case *Throw:
		r.expression(s.Value)
	case *Yield:
		r.expression(s.Value)
	case *Try:
		r.push()
		for _, resource := range s.Resources {
			r.localVariable(resource)
		}
		r.statement(s.Block)
		r.pop()
		for _, catch := range s.Catches {
			r.push()
			for _, t := range catch.Param.CatchTypes {
				r.qualifyHere(t)
			}
			r.define(catch.Param)
			r.statement(catch.Body)
			r.pop()
		}
		if s.Finally != nil {
			r.statement(s.Finally)
		}
	case *Switch:
		r.switchStatement(s)
	case *Synchronized:
		r.expression(s.Lock)
		r.statement(s.Body)
	case *Labeled:
		r.statement(s.Statement)
	case *Assert:
		r.expression(s.Condition)
		r.expression(s.Detail)
	}
}

func (r *resolver) branch(s Statement) {
	if s == nil {
		return
	}
	r.push()
	r.statement(s)
	r.pop()
}

func (r *resolver) localVariable(v *LocalVariable) {
	r.annotate(v.annotated)
	r.qualifyHere(v.Type)
	if v.Initializer != nil {
		t := r.initializer(v.Initializer, v.Type)
		if v.Type == nil {
			v.Type = t
		}
	}
	r.define(v)
}

func (r *resolver) switchStatement(s *Switch) {
	subject := r.expression(s.Subject)
	var enum *Class
	if subject != nil && subject.Decl != nil && subject.Decl.IsEnum() {
		enum = subject.Decl
	}
	r.push()
	for _, sc := range s.Cases {
		for _, label := range sc.Labels {
			if ref, ok := label.(*Reference); ok && enum != nil && ref.Qualifier == nil {
				for _, constant := range enum.EnumConstants() {
					if constant.Name == ref.Name {
						ref.Target = constant
						ref.setType(subject)
					}
				}
				continue
			}
			r.expression(label)
		}
		for _, stmt := range sc.Body {
			r.statement(stmt)
		}
	}
	r.pop()
}

func elementType(t *Type) *Type {
	if t == nil {
		return nil
	}
	if t.Kind == ArrayType {
		return t.Elem
	}
	if len(t.Args) == 1 && t.Args[0].Kind != WildcardType {
		return t.Args[0]
	}
	return nil
}

func (r *resolver) arguments(args []Expression) []*Type {
	types := make([]*Type, 0, len(args))
	for _, arg := range args {
		types = append(types, r.expression(arg))
	}
	return types
}

// expression computes and records the type of e
func (r *resolver) expression(e Expression) *Type {
	if e == nil {
		return nil
	}
	t := r.typeOf(e)
	if e.Type() == nil {
		e.setType(t)
	}
	return e.Type()
}

func (r *resolver) typeOf(e Expression) *Type {
	switch e := e.(type) {
	case *Literal:
		return literalType(e.Kind)
	case *Reference:
		return r.reference(e)
	case *This:
		if c := r.enclosing(e.Qualifier); c != nil {
			return c.AsType()
		}
	case *Super:
		if c := r.enclosing(e.Qualifier); c != nil && len(c.Extends) > 0 {
			return c.Extends[0]
		}
	case *MethodCall:
		return r.methodCall(e)
	case *New:
		r.qualifyHere(e.Class)
		args := r.arguments(e.Args)
		if e.Class.Decl != nil {
			e.Target = pickMethod(e.Class.Decl.Constructors(), args)
		}
		r.expression(e.Outer)
		if e.Body != nil {
			r.localClass(e.Body)
		}
		return e.Class
	case *NewArray:
		r.qualifyHere(e.Elem)
		r.arguments(e.Dimensions)
		t := arrayOf(e.Elem, len(e.Dimensions)+e.ExtraDims)
		r.qualifyHere(t)
		if e.Init != nil {
			if e.Init.Type() == nil {
				e.Init.setType(t)
			}
			r.expression(e.Init)
		}
		return t
	case *ArrayInit:
		r.qualifyHere(e.Type())
		for _, element := range e.Elements {
			if nested, ok := element.(*ArrayInit); ok && nested.Type() == nil && e.Type() != nil {
				nested.setType(e.Type().Elem)
			}
			r.expression(element)
		}
		return e.Type()
	case *ArrayAccess:
		r.expression(e.Index)
		if array := r.expression(e.Array); array != nil && array.Kind == ArrayType {
			return array.Elem
		}
	case *Assignment:
		r.expression(e.Right)
		return r.expression(e.Left)
	case *Binary:
		return binaryType(e.Op, r.expression(e.Left), r.expression(e.Right))
	case *Unary:
		operand := r.expression(e.Operand)
		switch {
		case e.Op == "!":
			return booleanType
		case e.IsIncrement():
			return operand
		}
		return promote(operand)
	case *Cast:
		r.qualifyHere(e.Target)
		r.expression(e.Value)
		return e.Target
	case *InstanceOf:
		r.expression(e.Value)
		r.qualifyHere(e.Target)
		if e.Binding != "" {
			r.define(&LocalVariable{node: e.node, Name: e.Binding, Type: e.Target, Pattern: e})
		}
		return booleanType
	case *Conditional:
		r.expression(e.Condition)
		return conditionalType(r.expression(e.Then), r.expression(e.Else))
	case *Parenthesized:
		return r.expression(e.Inner)
	case *Lambda:
		r.push()
		for _, p := range e.Params {
			r.qualifyHere(p.Type)
			r.define(p)
		}
		switch body := e.Body.(type) {
		case *Block:
			r.statement(body)
		case Expression:
			r.expression(body)
		}
		r.pop()
	case *ClassLiteral:
		r.qualifyHere(e.Target)
		return classType
	case *SwitchExpression:
		r.switchStatement(e.Switch)
	}
	return nil
}

// enclosing returns the current class, or the outer class with the given simple name
func (r *resolver) enclosing(qualifier string) *Class {
	for c := r.class; c != nil; c = c.Outer {
		if qualifier == "" || c.Name == lastSegment(qualifier) {
			return c
		}
	}
	return nil
}

func literalType(kind LiteralKind) *Type {
	switch kind {
	case IntLiteral:
		return intType
	case LongLiteral:
		return Primitive("long")
	case FloatLiteral:
		return Primitive("float")
	case DoubleLiteral:
		return Primitive("double")
	case CharLiteral:
		return Primitive("char")
	case StringLiteral, TextBlockLiteral:
		return stringType
	case BooleanLiteral:
		return booleanType
	}
	return nullType
}

func (r *resolver) reference(e *Reference) *Type {
	if e.Qualifier == nil {
		if d := r.scope.lookup(e.Name); d != nil {
			e.Target = d
			return d.DeclType()
		}
		for c := r.class; c != nil; c = c.Outer {
			if d := findField(c, e.Name); d != nil {
				e.Target = d
				return d.DeclType()
			}
		}
		if c := r.lookupClass(e.Name, r.class); c != nil {
			e.TargetClass = c
			return c.AsType()
		}
		if imported, ok := r.imports[e.Name]; ok {
			return &Type{Kind: ClassType, Name: e.Name, ID: TypeID(imported)}
		}
		if IsJavaLang(e.Name) {
			return &Type{Kind: ClassType, Name: e.Name, ID: TypeID("java.lang." + e.Name)}
		}
		return nil
	}
	qualifier := r.expression(e.Qualifier)
	var owner *Class
	if ref, ok := e.Qualifier.(*Reference); ok && ref.TargetClass != nil {
		owner = ref.TargetClass
		if nested := nestedClass(owner, e.Name); nested != nil {
			e.TargetClass = nested
			return nested.AsType()
		}
	} else if qualifier != nil {
		if qualifier.Kind == ArrayType && e.Name == "length" {
			return intType
		}
		owner = qualifier.Decl
	}
	if owner != nil {
		if d := findField(owner, e.Name); d != nil {
			e.Target = d
			return d.DeclType()
		}
	}
	return nil
}

// findField looks a field or enum constant up in c and its declared ancestors
func findField(c *Class, name string) Declaration {
	for _, each := range append([]*Class{c}, supertypes(c)...) {
		for _, member := range each.Members {
			switch m := member.(type) {
			case *Field:
				if m.Name == name {
					return m
				}
			case *EnumConstant:
				if m.Name == name {
					return m
				}
			}
		}
	}
	return nil
}

// methodsNamed returns the methods called name declared by c or its declared ancestors
func methodsNamed(c *Class, name string) []*Method {
	var result []*Method
	for _, each := range append([]*Class{c}, supertypes(c)...) {
		for _, m := range each.Methods() {
			if m.Name == name {
				result = append(result, m)
			}
		}
	}
	return result
}

func (r *resolver) methodCall(e *MethodCall) *Type {
	args := r.arguments(e.Args)
	if e.IsConstructorCall {
		target := r.class
		if e.IsSuper && r.class != nil {
			target = nil
			if super := r.class.Superclass(); super != nil {
				target = super.Decl
			}
		}
		if target != nil {
			e.Target = pickMethod(target.Constructors(), args)
		}
		return Primitive("void")
	}
	var candidates []*Method
	var receiver *Type
	switch q := e.Qualifier.(type) {
	case nil:
		for c := r.class; c != nil && len(candidates) == 0; c = c.Outer {
			candidates = methodsNamed(c, e.Name)
		}
	case *Super:
		r.expression(q)
		if c := r.enclosing(q.Qualifier); c != nil {
			for _, ancestor := range supertypes(c) {
				if candidates = methodsNamed(ancestor, e.Name); len(candidates) > 0 {
					break
				}
			}
		}
	default:
		receiver = r.expression(q)
		if ref, ok := q.(*Reference); ok && ref.TargetClass != nil {
			candidates = methodsNamed(ref.TargetClass, e.Name)
		} else if receiver != nil && receiver.Decl != nil {
			candidates = methodsNamed(receiver.Decl, e.Name)
		}
	}
	for _, t := range e.TypeArgs {
		r.qualifyHere(t)
	}
	if e.Target = pickMethod(candidates, args); e.Target != nil {
		return e.Target.ReturnType
	}
	return libraryMethodType(receiver, e.Name, len(args))
}

// pickMethod selects the overload matching the arguments best, the first candidate on ties
func pickMethod(candidates []*Method, args []*Type) *Method {
	var best *Method
	bestScore := -1
	for _, m := range candidates {
		if !m.Accepts(len(args)) {
			continue
		}
		score := 0
		for i, arg := range args {
			if i >= len(m.Params) || arg == nil {
				continue
			}
			param := m.Params[i].Type
			switch {
			case param.Canonical() == arg.Canonical():
				score += 2
			case boxedEqual(param, arg):
				score++
			}
		}
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	return best
}

func boxedEqual(a, b *Type) bool {
	if boxed, ok := Boxed(a.Canonical()); ok && boxed == b.Canonical() {
		return true
	}
	boxed, ok := Boxed(b.Canonical())
	return ok && boxed == a.Canonical()
}

// libraryMethodType knows the result types of the few JDK methods whose primitive results
// matter for conversions
func libraryMethodType(receiver *Type, name string, argCount int) *Type {
	switch {
	case name == "equals" && argCount == 1:
		return booleanType
	case name == "hashCode" && argCount == 0:
		return intType
	case name == "toString" && argCount == 0:
		return stringType
	}
	if receiver == nil || receiver.Canonical() != stringType.ID {
		return nil
	}
	switch name {
	case "length", "indexOf", "lastIndexOf", "compareTo":
		return intType
	case "charAt":
		return Primitive("char")
	case "isEmpty", "startsWith", "endsWith", "contains", "equalsIgnoreCase":
		return booleanType
	case "substring", "trim", "toUpperCase", "toLowerCase", "replace", "concat":
		return stringType
	}
	return nil
}

var numericRank = map[TypeID]int{
	"byte":   1,
	"short":  2,
	"char":   2,
	"int":    3,
	"long":   4,
	"float":  5,
	"double": 6,
}

// unbox returns the primitive form of a boxed type, or t itself
func unbox(t *Type) *Type {
	if t == nil {
		return nil
	}
	if primitive, ok := Unboxed(t.Canonical()); ok {
		return Primitive(string(primitive))
	}
	return t
}

// promote applies unary numeric promotion
func promote(t *Type) *Type {
	t = unbox(t)
	if rank, ok := numericRank[t.Canonical()]; ok && rank < numericRank["int"] {
		return intType
	}
	return t
}

func binaryType(op string, left, right *Type) *Type {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return booleanType
	case "<<", ">>", ">>>":
		return promote(left)
	case "+":
		if left.Equal(stringType) || right.Equal(stringType) {
			return stringType
		}
	}
	l, rt := unbox(left), unbox(right)
	if l.Canonical() == "boolean" && rt.Canonical() == "boolean" {
		return booleanType
	}
	lr, lok := numericRank[l.Canonical()]
	rr, rok := numericRank[rt.Canonical()]
	if !lok || !rok {
		return nil
	}
	if lr < rr {
		l = rt
	}
	return promote(l)
}

func conditionalType(then, otherwise *Type) *Type {
	switch {
	case then == nil:
		return otherwise
	case otherwise == nil || then.Equal(otherwise):
		return then
	case then.Kind == NullType:
		return otherwise
	case otherwise.Kind == NullType:
		return then
	}
	if binary := binaryType("-", then, otherwise); binary != nil {
		return binary
	}
	return then
}
