package java

import (
	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

var modifierTable = []struct {
	java   javaast.Modifiers
	kotlin ktsrc.Modifiers
}{
	{javaast.ABSTRACT, ktsrc.ABSTRACT},
	{javaast.FINAL, ktsrc.FINAL},
	{javaast.STATIC, ktsrc.STATIC},
	{javaast.PUBLIC, ktsrc.PUBLIC},
	{javaast.PROTECTED, ktsrc.PROTECTED},
	{javaast.PRIVATE, ktsrc.PRIVATE},
}

// kotlinPrimitives maps both primitive and wrapper identities to the Kotlin class name
var kotlinPrimitives = map[javaast.TypeID]string{
	"boolean":             "Boolean",
	"byte":                "Byte",
	"char":                "Char",
	"short":               "Short",
	"int":                 "Int",
	"long":                "Long",
	"float":               "Float",
	"double":              "Double",
	"java.lang.Boolean":   "Boolean",
	"java.lang.Byte":      "Byte",
	"java.lang.Character": "Char",
	"java.lang.Short":     "Short",
	"java.lang.Integer":   "Int",
	"java.lang.Long":      "Long",
	"java.lang.Float":     "Float",
	"java.lang.Double":    "Double",
}

// kotlinClasses are the Java classes Kotlin maps onto its own types
var kotlinClasses = map[javaast.TypeID]string{
	"java.lang.Object":       "Any",
	"java.lang.String":       "String",
	"java.lang.CharSequence": "CharSequence",
	"java.lang.Throwable":    "Throwable",
	"java.lang.Comparable":   "Comparable",
	"java.lang.Number":       "Number",
	"java.lang.Iterable":     "Iterable",
	"java.lang.Void":         "Unit",
}

// conversionBoxes is the wrapper to primitive table used to decide whether a numeric
// conversion call is needed. Boolean has no conversion and is left out.
var conversionBoxes = map[javaast.TypeID]javaast.TypeID{
	"java.lang.Byte":      "byte",
	"java.lang.Character": "char",
	"java.lang.Short":     "short",
	"java.lang.Integer":   "int",
	"java.lang.Long":      "long",
	"java.lang.Float":     "float",
	"java.lang.Double":    "double",
}

// primitiveConversions names the Kotlin conversion function producing each expected type
var primitiveConversions = map[javaast.TypeID]string{
	"byte":                "toByte",
	"short":               "toShort",
	"int":                 "toInt",
	"long":                "toLong",
	"float":               "toFloat",
	"double":              "toDouble",
	"char":                "toChar",
	"java.lang.Byte":      "toByte",
	"java.lang.Short":     "toShort",
	"java.lang.Integer":   "toInt",
	"java.lang.Long":      "toLong",
	"java.lang.Float":     "toFloat",
	"java.lang.Double":    "toDouble",
	"java.lang.Character": "toChar",
}

// notNullAnnotations are recognized on fields, parameters, locals and methods
var notNullAnnotations = []string{
	"org.jetbrains.annotations.NotNull",
	"com.sun.istack.internal.NotNull",
	"javax.annotation.Nonnull",
}

// knownInterfaces are library types instantiated anonymously without constructor arguments
var knownInterfaces = map[string]bool{
	"Runnable":       true,
	"Callable":       true,
	"Comparator":     true,
	"Comparable":     true,
	"Iterator":       true,
	"Iterable":       true,
	"AutoCloseable":  true,
	"Closeable":      true,
	"Cloneable":      true,
	"Serializable":   true,
	"CharSequence":   true,
	"Supplier":       true,
	"Consumer":       true,
	"BiConsumer":     true,
	"Function":       true,
	"BiFunction":     true,
	"Predicate":      true,
	"UnaryOperator":  true,
	"BinaryOperator": true,
	"ActionListener": true,
}

// bitwiseOperators become infix functions in Kotlin
var bitwiseOperators = map[string]string{
	"&":   "and",
	"|":   "or",
	"^":   "xor",
	"<<":  "shl",
	">>":  "shr",
	">>>": "ushr",
}

// isKotlinPrimitive reports whether the type is one of the Kotlin classes backed by a primitive
func isKotlinPrimitive(ty ktsrc.Type) bool {
	return ktsrc.PrimitiveArrayName(ty) != ""
}

// getDefaultInitializer returns the zero value literal for a property of the given type
func getDefaultInitializer(ty ktsrc.Type) string {
	if ty.IsNullable() {
		return "null"
	}
	switch ty.Name {
	case "Boolean":
		return "false"
	case "Char":
		return "' '"
	case "Double":
		return "0.toDouble()"
	case "Float":
		return "0.toFloat()"
	}
	return "0"
}
