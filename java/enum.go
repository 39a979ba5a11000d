package java

import (
	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

// enumConstantToConstant converts an enum constant, its arguments coerced to the parameters of
// the enum constructor it invokes
func (ctx *MigrationContext) enumConstantToConstant(e *javaast.EnumConstant) *ktsrc.EnumConstant {
	constant := &ktsrc.EnumConstant{
		Name: ktsrc.NewIdentifier(e.Name),
		Docs: comments(e.Docs),
		Args: ctx.argumentsToExpressionList(e.Args, e.Target),
	}
	if e.Body != nil {
		constant.Body = &ktsrc.AnonymousClass{Members: ctx.forClass(e.Body).classMembers(e.Body)}
	}
	return constant
}

// enumEntry renders a reference to an enum constant qualified with its enum, as when labels
// need it
func enumEntry(ref *javaast.Reference) (ktsrc.Expression, bool) {
	if ref.Qualifier != nil {
		return nil, false
	}
	constant, ok := ref.Target.(*javaast.EnumConstant)
	if !ok || constant.Owner == nil {
		return nil, false
	}
	return ktsrc.NewCallChain(ktsrc.NewIdentifier(constant.Owner.Name), constant.Name), true
}
