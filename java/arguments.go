package java

import (
	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

// argumentsToExpressionList converts call arguments. When the target is known and takes as
// many parameters as there are arguments each argument is coerced to its parameter type.
func (ctx *MigrationContext) argumentsToExpressionList(args []javaast.Expression, target *javaast.Method) []ktsrc.Expression {
	result := make([]ktsrc.Expression, 0, len(args))
	if target != nil && len(target.Params) == len(args) {
		for i, arg := range args {
			expected := target.Params[i].Type
			if target.Params[i].Varargs {
				expected = nil
			}
			result = append(result, ctx.expressionToExpressionWithExpected(arg, expected))
		}
		return result
	}
	for _, arg := range args {
		result = append(result, ctx.expressionToExpression(arg))
	}
	return result
}

// expressionToExpressionWithExpected converts arg where a value of the expected type is
// required, adding !! and numeric conversions where Kotlin does not coerce implicitly
func (ctx *MigrationContext) expressionToExpressionWithExpected(arg javaast.Expression, expected *javaast.Type) ktsrc.Expression {
	if arg == nil {
		return ktsrc.EmptyExpression
	}
	expression := ctx.expressionToExpression(arg)
	if expected == nil {
		return expression
	}
	actual := arg.Type()
	switch {
	case (actual == nil || actual.IsPrimitive()) && expression.IsNullable():
		expression = &ktsrc.BangBangExpression{Expr: expression}
	case expected.IsPrimitive() && actual != nil && actual.Kind == javaast.ClassType:
		if unboxed, ok := javaast.Unboxed(actual.Canonical()); ok && unboxed == expected.Canonical() {
			expression = &ktsrc.BangBangExpression{Expr: expression}
		}
	}
	if isConversionNeeded(actual, expected) {
		if _, isLiteral := expression.(*ktsrc.LiteralExpression); !isLiteral {
			if conversion, ok := primitiveConversions[expected.Canonical()]; ok {
				expression = ktsrc.BuildMethodCall(atomic(expression), conversion)
			}
		}
	}
	return expression
}

// isConversionNeeded reports whether an explicit conversion call is appended when a value of
// type actual is passed where expected is required: the types differ and exactly one of them
// is the wrapper of the other.
func isConversionNeeded(actual, expected *javaast.Type) bool {
	if actual == nil || expected == nil {
		return false
	}
	a, e := actual.Canonical(), expected.Canonical()
	if a == e {
		return false
	}
	unboxedActual, actualBoxed := conversionBoxes[a]
	unboxedExpected, expectedBoxed := conversionBoxes[e]
	o1 := actualBoxed && unboxedActual == e
	o2 := expectedBoxed && unboxedExpected == a
	return o1 != o2
}
