package java

import (
	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

// referenceNullability is the nullability reference types get when nothing proves them not-null
func (ctx *MigrationContext) referenceNullability() ktsrc.Nullability {
	if ctx.Settings.ForceNotNullTypes {
		return ktsrc.NotNull
	}
	return ktsrc.Nullable
}

// typeToType converts a Java type. Primitives are not-null, reference types follow
// referenceNullability.
func (ctx *MigrationContext) typeToType(t *javaast.Type) ktsrc.Type {
	if t == nil {
		return ktsrc.EmptyType
	}
	switch t.Kind {
	case javaast.PrimitiveType:
		return ktsrc.NewType(kotlinPrimitives[t.Canonical()], ktsrc.NotNull)
	case javaast.VoidType:
		return ktsrc.UnitType
	case javaast.NullType:
		return ktsrc.AnyType
	case javaast.ArrayType:
		elem := ctx.typeToType(t.Elem)
		if name := ktsrc.PrimitiveArrayName(elem); name != "" {
			return ktsrc.NewType(name, ctx.referenceNullability())
		}
		return ktsrc.ArrayOf(elem, ctx.referenceNullability())
	case javaast.WildcardType:
		if t.Bound == nil {
			return ktsrc.StarProjected
		}
		bound := ctx.typeToType(t.Bound)
		bound.Variance = "out"
		if t.Super {
			bound.Variance = "in"
		}
		return bound
	case javaast.TypeVariable:
		return ktsrc.NewType(t.Name, ctx.referenceNullability())
	}
	args := make([]ktsrc.Type, 0, len(t.Args))
	for _, arg := range t.Args {
		args = append(args, ctx.typeToType(arg))
	}
	return ktsrc.NewType(ctx.className(t), ctx.referenceNullability(), args...)
}

// typeToTypeNotNull converts t, forcing a not-null type when notNull is set
func (ctx *MigrationContext) typeToTypeNotNull(t *javaast.Type, notNull bool) ktsrc.Type {
	result := ctx.typeToType(t)
	if notNull {
		return result.ConvertedToNotNull()
	}
	return result
}

// typesToNotNullableTypeList converts supertypes, which are never nullable
func (ctx *MigrationContext) typesToNotNullableTypeList(types []*javaast.Type) []ktsrc.Type {
	result := make([]ktsrc.Type, 0, len(types))
	for _, t := range types {
		result = append(result, ctx.typeToType(t).ConvertedToNotNull())
	}
	return result
}

func (ctx *MigrationContext) className(t *javaast.Type) string {
	if mapped, ok := ctx.Settings.TypeMappings[t.SimpleName()]; ok {
		return mapped
	}
	id := t.Canonical()
	if name, ok := kotlinPrimitives[id]; ok {
		return name
	}
	if name, ok := kotlinClasses[id]; ok {
		return name
	}
	return t.Name
}

// isPrimitiveOrBoxed reports whether t is a primitive or one of its wrapper classes
func isPrimitiveOrBoxed(t *javaast.Type) bool {
	if t == nil {
		return false
	}
	_, ok := kotlinPrimitives[t.Canonical()]
	return ok
}

func (ctx *MigrationContext) isAnnotatedAsNotNull(a interface {
	HasAnnotation(qualifiedNames ...string) bool
}) bool {
	if a.HasAnnotation(notNullAnnotations...) {
		return true
	}
	return len(ctx.Settings.NotNullAnnotations) > 0 && a.HasAnnotation(ctx.Settings.NotNullAnnotations...)
}

func (ctx *MigrationContext) typeParameters(params []*javaast.TypeParameter) []*ktsrc.TypeParameter {
	result := make([]*ktsrc.TypeParameter, 0, len(params))
	for _, p := range params {
		result = append(result, &ktsrc.TypeParameter{
			Name:   ktsrc.NewIdentifier(p.Name),
			Bounds: ctx.typesToNotNullableTypeList(p.Bounds),
		})
	}
	return result
}

func (ctx *MigrationContext) typeArguments(types []*javaast.Type) []ktsrc.Type {
	result := make([]ktsrc.Type, 0, len(types))
	for _, t := range types {
		result = append(result, ctx.typeToType(t))
	}
	return result
}
