package java

import (
	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

// methodToFunction converts a method declaration. The body is converted with the strategy
// chosen for the method.
func (ctx *MigrationContext) methodToFunction(m *javaast.Method) *ktsrc.Function {
	mctx := ctx.forMethod(m)
	modifiers := convertModifiers(m.Modifiers)
	if isOverride(m) {
		modifiers = modifiers.With(ktsrc.OVERRIDE)
	}
	if m.Owner.IsInterface() {
		modifiers = modifiers.Without(ktsrc.ABSTRACT)
	}
	if isNotOpenMethod(m) {
		modifiers = modifiers.With(ktsrc.NOT_OPEN)
	}
	body := ktsrc.EmptyBlock
	if m.Body != nil {
		body = mctx.blockToBlock(m.Body, true)
	}
	return &ktsrc.Function{
		Name:           ktsrc.NewIdentifier(m.Name),
		Docs:           comments(m.Docs),
		Modifiers:      modifiers,
		ReturnType:     mctx.typeToTypeNotNull(m.ReturnType, ctx.isAnnotatedAsNotNull(m) || m.ObjectMethod == "toString"),
		TypeParameters: mctx.typeParameters(m.TypeParameters),
		Params:         mctx.createFunctionParameters(m),
		Body:           body,
	}
}

func isOverride(m *javaast.Method) bool {
	return m.Overrides != nil || m.ObjectMethod != "" || m.HasAnnotation("java.lang.Override")
}

// isNotOpenMethod reports whether the method can not be overridden
func isNotOpenMethod(m *javaast.Method) bool {
	if m.Modifiers.Has(javaast.FINAL | javaast.PRIVATE | javaast.STATIC) {
		return true
	}
	owner := m.Owner
	return owner.Modifiers.Has(javaast.FINAL) || owner.IsEnum() || owner.IsInterface() ||
		owner.Anonymous || owner.Kind == javaast.ClassKindRecord
}

// createFunctionParameters converts the parameters, marking the ones the body never writes
func (ctx *MigrationContext) createFunctionParameters(m *javaast.Method) *ktsrc.ParameterList {
	params := make([]*ktsrc.Parameter, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, &ktsrc.Parameter{
			Name:     ktsrc.NewIdentifier(p.Name),
			Ty:       ctx.typeToTypeNotNull(p.Type, ctx.isAnnotatedAsNotNull(p)),
			ReadOnly: isReadOnly(p, m.Body),
			Vararg:   p.Varargs,
		})
	}
	return &ktsrc.ParameterList{Params: params}
}
