package java

import (
	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

// Strategy customizes conversion inside one method body
type Strategy interface {
	// ConvertSuperCall returns a replacement for a call qualified with super, or false to
	// convert it normally
	ConvertSuperCall(ctx *MigrationContext, call *javaast.MethodCall) (ktsrc.Expression, bool)
}

type defaultStrategy struct{}

func (defaultStrategy) ConvertSuperCall(*MigrationContext, *javaast.MethodCall) (ktsrc.Expression, bool) {
	return nil, false
}

// objectOverrideStrategy is used in methods directly overriding equals, hashCode or toString.
// Kotlin's Any has no implementation to call, so super calls are replaced with what the JVM
// default does.
type objectOverrideStrategy struct{}

func (objectOverrideStrategy) ConvertSuperCall(ctx *MigrationContext, call *javaast.MethodCall) (ktsrc.Expression, bool) {
	if call.Target != nil {
		return nil, false
	}
	this := &ktsrc.ThisExpression{}
	switch {
	case call.Name == "equals" && len(call.Args) == 1:
		return &ktsrc.BinaryExpression{Left: this, Op: "===", Right: ctx.expressionToExpression(call.Args[0])}, true
	case call.Name == "hashCode" && len(call.Args) == 0:
		return ktsrc.BuildMethodCall(ktsrc.NewIdentifier("System"), "identityHashCode", this), true
	case call.Name == "toString" && len(call.Args) == 0:
		className := ktsrc.NewCallChain(ktsrc.NewIdentifier("javaClass"), "name")
		hash := ktsrc.BuildMethodCall(ktsrc.NewIdentifier("Integer"), "toHexString",
			&ktsrc.MethodCallExpression{Method: ktsrc.NewIdentifier("hashCode")})
		return &ktsrc.BinaryExpression{
			Left:  &ktsrc.BinaryExpression{Left: className, Op: "+", Right: ktsrc.Literal(`"@"`)},
			Op:    "+",
			Right: hash,
		}, true
	}
	return nil, false
}

func strategyFor(m *javaast.Method) Strategy {
	if m.ObjectMethod != "" {
		return objectOverrideStrategy{}
	}
	return defaultStrategy{}
}
