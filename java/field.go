package java

import (
	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

// fieldType is the Kotlin type of a field. It is not-null when annotated as such, or when the
// field is final and initialized with a value that can not be null.
func (ctx *MigrationContext) fieldType(f *javaast.Field) ktsrc.Type {
	ty := ctx.typeToTypeNotNull(f.Type, ctx.isAnnotatedAsNotNull(f))
	if f.IsFinal() && isDefinitelyNotNull(f.Initializer) {
		return ty.ConvertedToNotNull()
	}
	return ty
}

func (ctx *MigrationContext) fieldToField(f *javaast.Field) *ktsrc.Field {
	modifiers := convertModifiers(f.Modifiers)
	if f.IsStatic() {
		modifiers = modifiers.With(ktsrc.STATIC)
	}
	if f.IsFinal() {
		modifiers = modifiers.With(ktsrc.FINAL)
	}
	field := &ktsrc.Field{
		Name:      ktsrc.NewIdentifier(f.Name),
		Docs:      comments(f.Docs),
		Modifiers: modifiers,
		Ty:        ctx.fieldType(f),
	}
	switch {
	case f.Initializer != nil:
		field.Initializer = ctx.expressionToExpressionWithExpected(f.Initializer, f.Type)
	case f.IsFinal():
		// assigned by a constructor or a static initializer
	case !field.Ty.IsNullable() && !isKotlinPrimitive(field.Ty):
		field.Lateinit = true
	default:
		field.Initializer = ktsrc.Literal(getDefaultInitializer(field.Ty))
	}
	return field
}
