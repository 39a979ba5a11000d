package java

import (
	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

// classToClass converts a class, interface, enum or record declaration
func (ctx *MigrationContext) classToClass(c *javaast.Class) ktsrc.Element {
	if c.Kind == javaast.ClassKindAnnotation {
		return ctx.unsupported(c, "annotation_type_declaration")
	}
	cctx := ctx.forClass(c)
	class := ktsrc.Class{
		Name:           ktsrc.NewIdentifier(c.Name),
		Docs:           comments(c.Docs),
		Modifiers:      classModifiers(c),
		TypeParameters: cctx.typeParameters(c.TypeParameters),
		Extends:        cctx.typesToNotNullableTypeList(c.Extends),
		Implements:     cctx.typesToNotNullableTypeList(c.Implements),
		Members:        cctx.classMembers(c),
		Inner:          isInner(c),
	}
	switch {
	case c.IsInterface():
		return cctx.classToTrait(class)
	case c.IsEnum():
		return &ktsrc.Enum{Class: class}
	}
	class.BaseArgs = cctx.superCallArguments(c)
	return &class
}

func classModifiers(c *javaast.Class) ktsrc.Modifiers {
	modifiers := convertModifiers(c.Modifiers)
	if c.Outer == nil && !c.Local && c.Modifiers.IsPackagePrivate() {
		modifiers = modifiers.With(ktsrc.INTERNAL)
	}
	if c.Kind == javaast.ClassKindRecord || c.IsEnum() {
		modifiers = modifiers.With(ktsrc.FINAL)
	}
	return modifiers
}

// isInner reports whether a nested class needs an instance of its outer class
func isInner(c *javaast.Class) bool {
	if c.Outer == nil || c.Local || c.Anonymous || c.Kind != javaast.ClassKindClass {
		return false
	}
	return !c.Modifiers.Has(javaast.STATIC) && !c.Outer.IsInterface()
}

// classMembers converts the members of a class body in declaration order. Constructors are
// routed to Constructor nodes; when no constructor can be designated primary the secondary
// ones are unified behind a synthesized primary constructor.
func (ctx *MigrationContext) classMembers(c *javaast.Class) []ktsrc.SourceElement {
	constructors := c.Constructors()
	primary := primaryConstructor(c)
	if primary == nil && c.IsEnum() && len(constructors) > 0 {
		primary = constructors[0]
	}
	unify := !c.IsEnum() && !c.IsInterface() && len(constructors) > 1 && primary == nil
	var stable []*javaast.Field
	if unify {
		stable = stableFields(c)
	}
	members := make([]ktsrc.SourceElement, 0, len(c.Members)+1)
	for _, member := range c.Members {
		switch m := member.(type) {
		case *javaast.Field:
			members = append(members, ctx.fieldToField(m))
		case *javaast.EnumConstant:
			members = append(members, ctx.enumConstantToConstant(m))
		case *javaast.Method:
			if !m.IsConstructor {
				members = append(members, ctx.methodToFunction(m))
				continue
			}
			if c.IsEnum() && m != primary {
				members = append(members, ctx.unsupported(m, "enum secondary constructor"))
				continue
			}
			ctor := ctx.constructorToConstructor(m, m == primary)
			if unify && m.DelegatesToThis() == nil {
				ctor = ctx.unifiedConstructor(c, ctor, stable)
			}
			members = append(members, ctor)
		case *javaast.Class:
			members = append(members, ctx.classToClass(m))
		case *javaast.ClassInitializer:
			var modifiers ktsrc.Modifiers
			if m.Static {
				modifiers = ktsrc.STATIC
			}
			members = append(members, &ktsrc.Initializer{
				Body:      ctx.withScope(m.Body).blockToBlock(m.Body, true),
				Modifiers: modifiers,
			})
		case *javaast.Comment:
			members = append(members, &ktsrc.Comment{Text: m.Text})
		}
	}
	if unify {
		members = append(members, ctx.synthesizedPrimary(c, stable))
	}
	return members
}

// primaryConstructor returns the constructor that can be rendered as the Kotlin primary
// constructor: the only one, or the one every other constructor delegates to with this(...)
// while not delegating itself. It returns nil when there is none.
func primaryConstructor(c *javaast.Class) *javaast.Method {
	constructors := c.Constructors()
	if len(constructors) == 1 {
		return constructors[0]
	}
	var candidate *javaast.Method
	for _, ctor := range constructors {
		if ctor.DelegatesToThis() != nil {
			continue
		}
		if candidate != nil {
			return nil
		}
		candidate = ctor
	}
	if candidate == nil {
		return nil
	}
	for _, ctor := range constructors {
		if ctor != candidate && ctor.DelegatesToThis().Target != candidate {
			return nil
		}
	}
	return candidate
}

func isSecondaryConstructor(m *javaast.Method) bool {
	return m.IsConstructor && m.Owner != nil && primaryConstructor(m.Owner) != m
}

// stableFields are the instance fields the synthesized primary constructor initializes
func stableFields(c *javaast.Class) []*javaast.Field {
	var result []*javaast.Field
	for _, f := range c.Fields() {
		if !f.IsStatic() && (f.IsFinal() || f.Initializer == nil) {
			result = append(result, f)
		}
	}
	return result
}

// constructorType is the type a factory returns, the class applied to its own type parameters
func constructorType(c *javaast.Class) ktsrc.Type {
	args := make([]ktsrc.Type, 0, len(c.TypeParameters))
	for _, tp := range c.TypeParameters {
		args = append(args, ktsrc.NewType(tp.Name, ktsrc.NotNull))
	}
	return ktsrc.NewType(c.Name, ktsrc.NotNull, args...)
}

func (ctx *MigrationContext) constructorToConstructor(m *javaast.Method, isPrimary bool) *ktsrc.Constructor {
	mctx := ctx.forMethod(m)
	mctx.ReturnType = nil
	mctx.InSecondaryConstructor = !isPrimary
	return &ktsrc.Constructor{
		Function: ktsrc.Function{
			Name:           ktsrc.NewIdentifier(m.Owner.Name),
			Docs:           comments(m.Docs),
			Modifiers:      convertModifiers(m.Modifiers),
			ReturnType:     constructorType(m.Owner),
			TypeParameters: mctx.typeParameters(m.Owner.TypeParameters),
			Params:         mctx.createFunctionParameters(m),
			Body:           mctx.blockToBlock(m.Body, false),
		},
		IsPrimary: isPrimary,
	}
}

// unifiedConstructor rewrites a secondary constructor that does not delegate: assignments to
// stable fields become arguments of the synthesized primary constructor, built into __ first.
func (ctx *MigrationContext) unifiedConstructor(c *javaast.Class, ctor *ktsrc.Constructor, stable []*javaast.Field) *ktsrc.Constructor {
	values := make(map[string]ktsrc.Expression, len(stable))
	for _, f := range stable {
		values[f.Name] = ktsrc.Literal(getDefaultInitializer(ctx.fieldType(f)))
	}
	var kept []ktsrc.Statement
	for _, s := range ctor.Body.Statements {
		if name, value, ok := stableAssignment(s, values); ok {
			values[name] = value
			continue
		}
		kept = append(kept, s)
	}
	args := make([]ktsrc.Expression, 0, len(stable))
	for _, f := range stable {
		args = append(args, values[f.Name])
	}
	receiver := &ktsrc.LocalVariable{
		Name:        ktsrc.NewIdentifier(ktsrc.SecondaryReceiver),
		Initializer: &ktsrc.MethodCallExpression{Method: ktsrc.NewIdentifier(c.Name), Args: args},
		IsVal:       true,
	}
	statements := append([]ktsrc.Statement{receiver}, kept...)
	function := ctor.Function
	function.Body = ktsrc.NewBlock(statements...)
	return &ktsrc.Constructor{Function: function}
}

// stableAssignment matches `<receiver>.<field> = value` where field is one of the stable fields
func stableAssignment(s ktsrc.Statement, values map[string]ktsrc.Expression) (string, ktsrc.Expression, bool) {
	assignment, ok := s.(*ktsrc.AssignmentExpression)
	if !ok || assignment.Op != "=" {
		return "", nil, false
	}
	chain, ok := assignment.Left.(*ktsrc.CallChainExpression)
	if !ok {
		return "", nil, false
	}
	name := chain.Identifier.Name
	if _, stable := values[name]; !stable {
		return "", nil, false
	}
	return name, assignment.Right, true
}

// synthesizedPrimary takes one `_name` parameter per stable field and assigns it in init
func (ctx *MigrationContext) synthesizedPrimary(c *javaast.Class, stable []*javaast.Field) *ktsrc.Constructor {
	params := make([]*ktsrc.Parameter, 0, len(stable))
	statements := make([]ktsrc.Statement, 0, len(stable))
	for _, f := range stable {
		param := "_" + f.Name
		params = append(params, &ktsrc.Parameter{
			Name:     ktsrc.NewIdentifier(param),
			Ty:       ctx.fieldType(f),
			ReadOnly: true,
		})
		statements = append(statements, &ktsrc.AssignmentExpression{
			Left:  ktsrc.NewIdentifier(f.Name),
			Right: ktsrc.NewIdentifier(param),
			Op:    "=",
		})
	}
	return &ktsrc.Constructor{
		Function: ktsrc.Function{
			Name:       ktsrc.NewIdentifier(c.Name),
			ReturnType: constructorType(c),
			Params:     &ktsrc.ParameterList{Params: params},
			Body:       &ktsrc.Block{Statements: statements},
		},
		IsPrimary: true,
	}
}

// superCallArguments returns the arguments forwarded to the base class in the header. They are
// forwarded only when every super(...) call of the class passes the same arguments.
func (ctx *MigrationContext) superCallArguments(c *javaast.Class) []ktsrc.Expression {
	var found *javaast.MethodCall
	var owner *javaast.Method
	distinct := map[string]bool{}
	for _, ctor := range c.Constructors() {
		javaast.Inspect(ctor.Body, func(n javaast.Node) bool {
			switch n := n.(type) {
			case *javaast.Class:
				return false
			case *javaast.MethodCall:
				if n.IsConstructorCall && n.IsSuper {
					key := argumentsSource(n.Args)
					if !distinct[key] {
						distinct[key] = true
						found, owner = n, ctor
					}
				}
			}
			return true
		})
	}
	if len(distinct) != 1 {
		return nil
	}
	return ctx.forMethod(owner).argumentsToExpressionList(found.Args, found.Target)
}

func argumentsSource(args []javaast.Expression) string {
	key := ""
	for i, arg := range args {
		if i > 0 {
			key += ", "
		}
		key += arg.Source()
	}
	return key
}
