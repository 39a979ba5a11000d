package java

import (
	"strconv"
	"strings"

	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

// expressionToExpression converts a Java expression with no expected type
func (ctx *MigrationContext) expressionToExpression(e javaast.Expression) ktsrc.Expression {
	if e == nil {
		return ktsrc.EmptyExpression
	}
	switch e := e.(type) {
	case *javaast.Literal:
		return ktsrc.Literal(convertLiteral(e))
	case *javaast.Reference:
		return ctx.referenceToExpression(e)
	case *javaast.This:
		if ctx.InSecondaryConstructor && e.Qualifier == "" {
			return ktsrc.NewIdentifier(ktsrc.SecondaryReceiver)
		}
		return &ktsrc.ThisExpression{Label: label(e.Qualifier)}
	case *javaast.Super:
		return &ktsrc.SuperExpression{Label: label(e.Qualifier)}
	case *javaast.MethodCall:
		return ctx.methodCallToExpression(e)
	case *javaast.New:
		return ctx.newToExpression(e)
	case *javaast.NewArray:
		return ctx.newArrayToExpression(e)
	case *javaast.ArrayInit:
		return ctx.arrayInitToExpression(e)
	case *javaast.ArrayAccess:
		array := ctx.expressionToExpression(e.Array)
		if array.IsNullable() {
			array = &ktsrc.BangBangExpression{Expr: array}
		}
		return &ktsrc.ArrayAccessExpression{
			Array:    atomic(array),
			Index:    ctx.expressionToExpressionWithExpected(e.Index, javaast.Primitive("int")),
			Nullable: ctx.typeToType(e.Type()).IsNullable(),
		}
	case *javaast.Assignment:
		return ctx.assignmentToExpression(e)
	case *javaast.Binary:
		return ctx.binaryToExpression(e)
	case *javaast.Unary:
		operand := ctx.expressionToExpression(e.Operand)
		switch {
		case e.Op == "~":
			return ktsrc.BuildMethodCall(atomic(operand), "inv")
		case e.Postfix:
			return &ktsrc.PostfixOperator{Op: e.Op, Expr: operand}
		}
		return &ktsrc.PrefixOperator{Op: e.Op, Expr: operand}
	case *javaast.Cast:
		return ctx.castToExpression(e)
	case *javaast.InstanceOf:
		return &ktsrc.IsOperator{Expr: atomic(ctx.expressionToExpression(e.Value)), Ty: ctx.instanceOfType(e)}
	case *javaast.Conditional:
		return &ktsrc.ConditionalExpression{
			Condition: ctx.expressionToExpression(e.Condition),
			Then:      ctx.expressionToExpression(e.Then),
			Else:      ctx.expressionToExpression(e.Else),
		}
	case *javaast.Parenthesized:
		return &ktsrc.ParenthesizedExpression{Expr: ctx.expressionToExpression(e.Inner)}
	case *javaast.Lambda:
		return ctx.lambdaToExpression(e)
	case *javaast.MethodReference:
		switch {
		case e.Name == "new":
			return ktsrc.DummyString("::" + ktsrc.QuoteQualifiedName(e.Qualifier))
		case e.Qualifier == "":
			return ktsrc.DummyString("::" + ktsrc.QuoteKeyword(e.Name))
		}
		return ktsrc.DummyString(ktsrc.QuoteQualifiedName(e.Qualifier) + "::" + ktsrc.QuoteKeyword(e.Name))
	case *javaast.ClassLiteral:
		ty := ctx.typeToType(e.Target)
		if e.Target.IsPrimitive() {
			return ktsrc.DummyString(ty.ToSource() + "::class.javaPrimitiveType")
		}
		return &ktsrc.ClassLiteralExpression{Ty: ty}
	case *javaast.SwitchExpression:
		return ctx.switchToWhen(e.Switch, true)
	case *javaast.UnknownExpression:
		return ctx.unsupported(e, e.Kind)
	}
	return ctx.unsupported(e, "expression")
}

func label(qualifier string) *ktsrc.Identifier {
	if qualifier == "" {
		return nil
	}
	if i := strings.LastIndex(qualifier, "."); i >= 0 {
		qualifier = qualifier[i+1:]
	}
	return ktsrc.NewIdentifier(qualifier)
}

// atomic parenthesizes expressions that can not be used as a receiver as they are
func atomic(e ktsrc.Expression) ktsrc.Expression {
	switch e := e.(type) {
	case *ktsrc.BinaryExpression, *ktsrc.ConditionalExpression, *ktsrc.AssignmentExpression,
		*ktsrc.PrefixOperator, *ktsrc.IsOperator, *ktsrc.LambdaExpression:
		return &ktsrc.ParenthesizedExpression{Expr: e}
	case *ktsrc.NewClassExpression:
		if e.Anonymous != nil {
			return &ktsrc.ParenthesizedExpression{Expr: e}
		}
	}
	return e
}

func (ctx *MigrationContext) instanceOfType(e *javaast.InstanceOf) ktsrc.Type {
	ty := ctx.typeToType(e.Target).ConvertedToNotNull()
	for i := range ty.Args {
		ty.Args[i] = ktsrc.StarProjected
	}
	return ty
}

func (ctx *MigrationContext) referenceToExpression(e *javaast.Reference) ktsrc.Expression {
	if v, ok := e.Target.(*javaast.LocalVariable); ok && v.Pattern != nil && e.Qualifier == nil {
		// a pattern variable reads as a cast of the tested value
		return &ktsrc.TypeCastExpression{
			Ty:   ctx.instanceOfType(v.Pattern),
			Expr: atomic(ctx.expressionToExpression(v.Pattern.Value)),
		}
	}
	nullable := ctx.isNullableDeclaration(e.Target)
	if e.Qualifier == nil {
		if ctx.InSecondaryConstructor && isInstanceFieldOf(e.Target, ctx.Class) {
			return &ktsrc.CallChainExpression{
				Receiver:   ktsrc.NewIdentifier(ktsrc.SecondaryReceiver),
				Identifier: &ktsrc.Identifier{Name: e.Name, Nullable: nullable},
			}
		}
		return &ktsrc.Identifier{Name: e.Name, Nullable: nullable}
	}
	receiver := atomic(ctx.expressionToExpression(e.Qualifier))
	if t := e.Qualifier.Type(); e.Name == "length" && e.Target == nil && t != nil && t.Kind == javaast.ArrayType {
		return ktsrc.NewCallChain(receiver, "size")
	}
	return &ktsrc.CallChainExpression{
		Receiver:   receiver,
		Identifier: &ktsrc.Identifier{Name: e.Name, Nullable: nullable},
	}
}

func isPatternVariable(e javaast.Expression) bool {
	ref, ok := javaast.Unparen(e).(*javaast.Reference)
	if !ok || ref.Qualifier != nil {
		return false
	}
	v, ok := ref.Target.(*javaast.LocalVariable)
	return ok && v.Pattern != nil
}

func isInstanceFieldOf(decl javaast.Declaration, c *javaast.Class) bool {
	field, ok := decl.(*javaast.Field)
	return ok && c != nil && field.Owner == c && !field.IsStatic()
}

// isNullableDeclaration reports whether reading the declaration yields a nullable value
func (ctx *MigrationContext) isNullableDeclaration(decl javaast.Declaration) bool {
	switch d := decl.(type) {
	case *javaast.Field:
		return ctx.fieldType(d).IsNullable()
	case *javaast.Parameter:
		return ctx.typeToTypeNotNull(d.DeclType(), ctx.isAnnotatedAsNotNull(d)).IsNullable()
	case *javaast.LocalVariable:
		if !ctx.Settings.SpecifyLocalVariableTypes && isDefinitelyNotNull(d.Initializer) {
			return false
		}
		return ctx.typeToTypeNotNull(d.Type, ctx.isAnnotatedAsNotNull(d)).IsNullable()
	}
	return false
}

// isDefinitelyNotNull reports whether e is a non null literal or an instantiation
func isDefinitelyNotNull(e javaast.Expression) bool {
	switch e := javaast.Unparen(e).(type) {
	case *javaast.Literal:
		return e.IsNonNull()
	case *javaast.New, *javaast.NewArray, *javaast.ArrayInit:
		return true
	}
	return false
}

func (ctx *MigrationContext) methodCallToExpression(e *javaast.MethodCall) ktsrc.Expression {
	if e.IsConstructorCall {
		return ctx.unsupported(e, "explicit_constructor_invocation")
	}
	if _, isSuper := e.Qualifier.(*javaast.Super); isSuper {
		if replacement, ok := ctx.Strategy.ConvertSuperCall(ctx, e); ok {
			return replacement
		}
	}
	if e.Name == "getClass" && len(e.Args) == 0 {
		if e.Qualifier == nil {
			return ktsrc.NewIdentifier("javaClass")
		}
		return ktsrc.NewCallChain(atomic(ctx.expressionToExpression(e.Qualifier)), "javaClass")
	}
	var method ktsrc.Expression
	switch {
	case e.Qualifier != nil:
		method = ktsrc.NewCallChain(atomic(ctx.expressionToExpression(e.Qualifier)), e.Name)
	case ctx.InSecondaryConstructor && e.Target != nil && e.Target.Owner == ctx.Class && !e.Target.Modifiers.Has(javaast.STATIC):
		method = ktsrc.NewCallChain(ktsrc.NewIdentifier(ktsrc.SecondaryReceiver), e.Name)
	default:
		method = ktsrc.NewIdentifier(e.Name)
	}
	return &ktsrc.MethodCallExpression{
		Method:         method,
		Args:           ctx.argumentsToExpressionList(e.Args, e.Target),
		TypeArgs:       ctx.typeArguments(e.TypeArgs),
		ResultNullable: ctx.isNullableResult(e.Target),
	}
}

func (ctx *MigrationContext) isNullableResult(target *javaast.Method) bool {
	if target == nil || target.ReturnType.IsVoid() {
		return false
	}
	notNull := ctx.isAnnotatedAsNotNull(target) || target.ObjectMethod == "toString"
	return ctx.typeToTypeNotNull(target.ReturnType, notNull).IsNullable()
}

func (ctx *MigrationContext) newToExpression(e *javaast.New) ktsrc.Expression {
	args := ctx.argumentsToExpressionList(e.Args, e.Target)
	name := ctx.typeToType(e.Class).ConvertedToNotNull()
	if e.Body != nil {
		isInterface := knownInterfaces[e.Class.SimpleName()]
		if e.Class.Decl != nil {
			isInterface = e.Class.Decl.IsInterface()
		}
		return &ktsrc.NewClassExpression{
			Name:        name,
			Args:        args,
			Anonymous:   &ktsrc.AnonymousClass{Members: ctx.forClass(e.Body).classMembers(e.Body)},
			IsInterface: isInterface,
		}
	}
	if e.Target != nil && isSecondaryConstructor(e.Target) {
		return ktsrc.BuildMethodCall(ktsrc.NewIdentifier(name.Name), ktsrc.FactoryName, args...)
	}
	var qualifier ktsrc.Expression
	if e.Outer != nil {
		qualifier = atomic(ctx.expressionToExpression(e.Outer))
	}
	return &ktsrc.NewClassExpression{Name: name, Args: args, Qualifier: qualifier}
}

func (ctx *MigrationContext) newArrayToExpression(e *javaast.NewArray) ktsrc.Expression {
	if e.Init != nil {
		return ctx.arrayInitToExpression(e.Init)
	}
	ty := ctx.typeToType(e.Elem)
	for range e.ExtraDims {
		if name := ktsrc.PrimitiveArrayName(ty); name != "" {
			ty = ktsrc.NewType(name, ktsrc.NotNull)
		} else {
			ty = ktsrc.ArrayOf(ty, ktsrc.NotNull)
		}
	}
	dims := make([]ktsrc.Expression, 0, len(e.Dimensions))
	for _, dim := range e.Dimensions {
		dims = append(dims, ctx.expressionToExpressionWithExpected(dim, javaast.Primitive("int")))
	}
	return &ktsrc.ArrayWithoutInitializationExpression{Ty: ty, Dimensions: dims}
}

func (ctx *MigrationContext) arrayInitToExpression(e *javaast.ArrayInit) ktsrc.Expression {
	var elemType *javaast.Type
	if t := e.Type(); t != nil && t.Kind == javaast.ArrayType {
		elemType = t.Elem
	}
	function := "arrayOf"
	if name := ktsrc.PrimitiveArrayName(ctx.typeToType(elemType)); name != "" {
		function = strings.ToLower(name[:1]) + name[1:] + "Of"
	}
	elements := make([]ktsrc.Expression, 0, len(e.Elements))
	for _, element := range e.Elements {
		elements = append(elements, ctx.expressionToExpressionWithExpected(element, elemType))
	}
	return &ktsrc.ArrayInitializerExpression{Function: function, Elements: elements}
}

func (ctx *MigrationContext) assignmentToExpression(e *javaast.Assignment) ktsrc.Expression {
	if isPatternVariable(e.Left) {
		return ctx.unsupported(e, "pattern_variable_assignment")
	}
	left := ctx.expressionToExpression(e.Left)
	if e.Op == "=" || e.Op == "" {
		return &ktsrc.AssignmentExpression{
			Left:  left,
			Right: ctx.expressionToExpressionWithExpected(e.Right, e.Left.Type()),
			Op:    "=",
		}
	}
	right := ctx.expressionToExpression(e.Right)
	if function, ok := bitwiseOperators[strings.TrimSuffix(e.Op, "=")]; ok {
		return &ktsrc.AssignmentExpression{
			Left:  left,
			Right: &ktsrc.BinaryExpression{Left: left, Op: function, Right: atomic(right)},
			Op:    "=",
		}
	}
	return &ktsrc.AssignmentExpression{Left: left, Right: right, Op: e.Op}
}

func (ctx *MigrationContext) binaryToExpression(e *javaast.Binary) ktsrc.Expression {
	op := e.Op
	if function, ok := bitwiseOperators[op]; ok {
		op = function
	}
	if (op == "==" || op == "!=") && isReferenceComparison(e) {
		op += "="
	}
	return &ktsrc.BinaryExpression{
		Left:  ctx.expressionToExpression(e.Left),
		Op:    op,
		Right: ctx.expressionToExpression(e.Right),
	}
}

// isReferenceComparison reports whether both operands are object references, null aside
func isReferenceComparison(e *javaast.Binary) bool {
	left, right := e.Left.Type(), e.Right.Type()
	if left == nil || right == nil {
		return false
	}
	if left.Kind == javaast.NullType || right.Kind == javaast.NullType {
		return false
	}
	return left.IsReference() && right.IsReference()
}

func (ctx *MigrationContext) castToExpression(e *javaast.Cast) ktsrc.Expression {
	value := ctx.expressionToExpression(e.Value)
	if e.Target.IsPrimitive() {
		source := e.Value.Type()
		if source != nil && source.Canonical() == e.Target.Canonical() {
			return value
		}
		conversion, ok := primitiveConversions[e.Target.Canonical()]
		if ok && (source == nil || isPrimitiveOrBoxed(source)) {
			if value.IsNullable() {
				value = &ktsrc.BangBangExpression{Expr: value}
			}
			return ktsrc.BuildMethodCall(atomic(value), conversion)
		}
	}
	return &ktsrc.TypeCastExpression{Ty: ctx.typeToType(e.Target), Expr: value}
}

func (ctx *MigrationContext) lambdaToExpression(e *javaast.Lambda) ktsrc.Expression {
	params := make([]*ktsrc.Identifier, 0, len(e.Params))
	for _, p := range e.Params {
		params = append(params, ktsrc.NewIdentifier(p.Name))
	}
	lctx := ctx.withScope(e.Body)
	switch body := e.Body.(type) {
	case *javaast.Block:
		statements := lctx.statementsToStatements(body.Statements)
		if n := len(statements); n > 0 {
			if ret, ok := statements[n-1].(*ktsrc.ReturnStatement); ok && ret.Value != nil && !ret.Value.IsEmpty() {
				statements[n-1] = ret.Value
			}
		}
		return &ktsrc.LambdaExpression{Params: params, Body: &ktsrc.Block{Statements: statements}}
	case javaast.Expression:
		return &ktsrc.LambdaExpression{Params: params, Body: lctx.expressionToExpression(body)}
	}
	return ctx.unsupported(e, "lambda_expression")
}

// convertLiteral rewrites Java literal syntax into Kotlin literal syntax
func convertLiteral(l *javaast.Literal) string {
	text := l.Source()
	switch l.Kind {
	case javaast.IntLiteral:
		return convertInteger(text)
	case javaast.LongLiteral:
		return convertInteger(strings.TrimRight(text, "lL")) + "L"
	case javaast.FloatLiteral:
		return normalizeDecimal(strings.TrimRight(text, "fF")) + "f"
	case javaast.DoubleLiteral:
		text = normalizeDecimal(strings.TrimRight(text, "dD"))
		if !strings.ContainsAny(text, ".eExXpP") {
			text += ".0"
		}
		return text
	case javaast.CharLiteral:
		if text == `'\0'` {
			return `'\u0000'`
		}
		return text
	case javaast.StringLiteral:
		return strings.ReplaceAll(text, "$", `\$`)
	case javaast.TextBlockLiteral:
		return strings.ReplaceAll(text, "$", "${'$'}") + ".trimIndent()"
	}
	return text
}

// convertInteger rewrites octal literals, which Kotlin lacks, as decimal
func convertInteger(text string) string {
	digits := strings.ReplaceAll(text, "_", "")
	if len(digits) < 2 || digits[0] != '0' || strings.ContainsAny(digits, "xXbB") {
		return text
	}
	value, err := strconv.ParseInt(digits[1:], 8, 64)
	if err != nil {
		return text
	}
	return strconv.FormatInt(value, 10)
}

// normalizeDecimal adds the digits Kotlin requires around a decimal point
func normalizeDecimal(text string) string {
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	if i := strings.Index(text, "."); i >= 0 && (i == len(text)-1 || !isDigit(text[i+1])) {
		text = text[:i+1] + "0" + text[i+1:]
	}
	return text
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
