package javaast

import (
	"strings"
)

// TypeID is the canonical identity of a type: the primitive keyword, or the fully qualified
// name for class types when it can be determined, e.g. "int" or "java.lang.Integer". Array
// identities end with "[]". Tables and comparisons use TypeID rather than source text.
type TypeID string

// TypeKind classifies a Type
type TypeKind uint8

const (
	PrimitiveType TypeKind = iota
	ClassType
	ArrayType
	TypeVariable
	WildcardType
	VoidType
	NullType
)

// Type is a Java type reference as written in the source, plus its resolved identity
type Type struct {
	Kind TypeKind
	// Name as written, without type arguments
	Name string
	Args []*Type
	// Elem is the element type of arrays
	Elem *Type
	// Bound and Super describe wildcards: ? extends Bound, ? super Bound
	Bound *Type
	Super bool
	ID    TypeID
	// Decl is the declaration when the type is declared in the same file
	Decl *Class
}

var javaLangTypes = map[string]bool{
	"AutoCloseable":                   true,
	"ArithmeticException":             true,
	"ArrayIndexOutOfBoundsException":  true,
	"Boolean":                         true,
	"Byte":                            true,
	"CharSequence":                    true,
	"Character":                       true,
	"Class":                           true,
	"ClassCastException":              true,
	"Cloneable":                       true,
	"Comparable":                      true,
	"Deprecated":                      true,
	"Double":                          true,
	"Enum":                            true,
	"Error":                           true,
	"Exception":                       true,
	"Float":                           true,
	"FunctionalInterface":             true,
	"IllegalArgumentException":        true,
	"IllegalStateException":           true,
	"IndexOutOfBoundsException":       true,
	"Integer":                         true,
	"InterruptedException":            true,
	"Iterable":                        true,
	"Long":                            true,
	"Math":                            true,
	"NullPointerException":            true,
	"Number":                          true,
	"NumberFormatException":           true,
	"Object":                          true,
	"Override":                        true,
	"Runnable":                        true,
	"RuntimeException":                true,
	"SafeVarargs":                     true,
	"Short":                           true,
	"String":                          true,
	"StringBuffer":                    true,
	"StringBuilder":                   true,
	"SuppressWarnings":                true,
	"System":                          true,
	"Thread":                          true,
	"Throwable":                       true,
	"UnsupportedOperationException":   true,
	"Void":                            true,
	"StringIndexOutOfBoundsException": true,
}

// IsJavaLang reports whether a simple name is implicitly imported from java.lang
func IsJavaLang(name string) bool {
	return javaLangTypes[name]
}

var primitiveNames = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
}

// Primitive builds a primitive type
func Primitive(name string) *Type {
	return &Type{Kind: PrimitiveType, Name: name, ID: TypeID(name)}
}

// Well known types produced by the resolver
var (
	booleanType = Primitive("boolean")
	intType     = Primitive("int")
	stringType  = &Type{Kind: ClassType, Name: "String", ID: "java.lang.String"}
	classType   = &Type{Kind: ClassType, Name: "Class", ID: "java.lang.Class"}
	nullType    = &Type{Kind: NullType, Name: "null", ID: "null"}
)

func (t *Type) IsPrimitive() bool {
	return t != nil && t.Kind == PrimitiveType
}

func (t *Type) IsVoid() bool {
	return t != nil && t.Kind == VoidType
}

// IsReference reports whether values of the type are object references
func (t *Type) IsReference() bool {
	return t != nil && (t.Kind == ClassType || t.Kind == ArrayType || t.Kind == TypeVariable || t.Kind == NullType)
}

// SimpleName is the last segment of the written name
func (t *Type) SimpleName() string {
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// Canonical returns the identity of the type. Types the resolver has not seen are qualified
// with java.lang when the simple name belongs there.
func (t *Type) Canonical() TypeID {
	if t == nil {
		return ""
	}
	if t.ID != "" {
		return t.ID
	}
	switch t.Kind {
	case ArrayType:
		return t.Elem.Canonical() + "[]"
	case ClassType:
		if IsJavaLang(t.Name) {
			return TypeID("java.lang." + t.Name)
		}
	}
	return TypeID(t.Name)
}

// String renders the type in Java syntax
func (t *Type) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case ArrayType:
		return t.Elem.String() + "[]"
	case WildcardType:
		if t.Bound == nil {
			return "?"
		}
		if t.Super {
			return "? super " + t.Bound.String()
		}
		return "? extends " + t.Bound.String()
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, 0, len(t.Args))
	for _, arg := range t.Args {
		args = append(args, arg.String())
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

// Equal compares canonical identities, type arguments ignored
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return false
	}
	return t.Canonical() == other.Canonical()
}

// Boxing table keyed on canonical identities
var (
	boxes = map[TypeID]TypeID{
		"boolean": "java.lang.Boolean",
		"byte":    "java.lang.Byte",
		"char":    "java.lang.Character",
		"short":   "java.lang.Short",
		"int":     "java.lang.Integer",
		"long":    "java.lang.Long",
		"float":   "java.lang.Float",
		"double":  "java.lang.Double",
	}
	unboxes = func() map[TypeID]TypeID {
		result := make(map[TypeID]TypeID, len(boxes))
		for primitive, boxed := range boxes {
			result[boxed] = primitive
		}
		return result
	}()
)

// Unboxed returns the primitive identity for a boxed class identity
func Unboxed(id TypeID) (TypeID, bool) {
	primitive, ok := unboxes[id]
	return primitive, ok
}

// Boxed returns the wrapper class identity for a primitive identity
func Boxed(id TypeID) (TypeID, bool) {
	boxed, ok := boxes[id]
	return boxed, ok
}
