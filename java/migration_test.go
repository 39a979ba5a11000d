package java

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

func convert(t *testing.T, source string) string {
	t.Helper()
	ctx := NewMigrationContext(DefaultSettings(), "Test.java", false)
	result, err := Migrate(ctx, []byte(source))
	require.NoError(t, err)
	require.Empty(t, ctx.Errors.Errors(), "unexpected migration errors")
	return result
}

func convertClass(t *testing.T, source string) *ktsrc.Class {
	t.Helper()
	file, err := javaast.Parse([]byte(source), "Test.java")
	require.NoError(t, err)
	ctx := NewMigrationContext(DefaultSettings(), "Test.java", false)
	converted := ConvertFile(ctx, file)
	for _, element := range converted.Body {
		if class, ok := element.(*ktsrc.Class); ok {
			return class
		}
	}
	t.Fatal("no class converted")
	return nil
}

func constructors(class *ktsrc.Class) (primary []*ktsrc.Constructor, secondary []*ktsrc.Constructor) {
	for _, member := range class.Members {
		if ctor, ok := member.(*ktsrc.Constructor); ok {
			if ctor.IsPrimary {
				primary = append(primary, ctor)
			} else {
				secondary = append(secondary, ctor)
			}
		}
	}
	return primary, secondary
}

func TestConstructorUnification(t *testing.T) {
	source := `
class Pair {
    static final int LIMIT = 10;
    private final int a;
    private String b;
    private int counter = 1;

    Pair(int a) {
        this.a = a;
    }

    Pair(int a, String b) {
        this.a = a;
        this.b = b;
        counter++;
    }
}
`
	class := convertClass(t, source)
	primary, secondary := constructors(class)
	require.Len(t, primary, 1)
	assert.Len(t, secondary, 2)
	assert.Len(t, primary[0].Params.Params, 2, "one parameter per stable field")

	result := convert(t, source)
	assert.Contains(t, result, "internal open class Pair(_a: Int, _b: String?) {")
	assert.Contains(t, result, "a = _a")
	assert.Contains(t, result, "b = _b")
	assert.Contains(t, result, "val __ = Pair(a, null)")
	assert.Contains(t, result, "val __ = Pair(a, b)")
	assert.Contains(t, result, "__.counter++")
	assert.Contains(t, result, "return __")
}

func TestUnifiedConstructorDefaultsUnassignedField(t *testing.T) {
	result := convert(t, `
class Point {
    private final int x;
    private final int y;

    Point(int x, int y) {
        this.x = x;
        this.y = y;
    }

    Point(int x) {
        this.x = x;
    }
}
`)
	assert.Contains(t, result, "internal open class Point(_x: Int, _y: Int) {")
	assert.Contains(t, result, "val __ = Point(x, y)")
	assert.Contains(t, result, "val __ = Point(x, 0)")
}

func TestUnifiedConstructorForwardsTypedDefaults(t *testing.T) {
	source := `
class P {
    static final int K = 1;
    private final double d;
    private final float f;
    private final char c;
    private final boolean b;
    private String s;

    P(double d, float f, char c, boolean b, String s) {
        this.d = d;
        this.f = f;
        this.c = c;
        this.b = b;
        this.s = s;
    }

    P(double d) {
        this.d = d;
    }
}
`
	primary, _ := constructors(convertClass(t, source))
	require.Len(t, primary, 1)
	assert.Len(t, primary[0].Params.Params, 5, "static constant is not a constructor parameter")

	result := convert(t, source)
	assert.Contains(t, result, "internal open class P(_d: Double, _f: Float, _c: Char, _b: Boolean, _s: String?) {")
	assert.Contains(t, result, "val __ = P(d, f, c, b, s)")
	assert.Contains(t, result, "val __ = P(d, 0.toFloat(), ' ', false, null)")
}

func TestSuperCallArguments(t *testing.T) {
	result := convert(t, `
class Base {
    Base(int v) {}
}

class Same extends Base {
    Same() {
        super(1);
    }

    Same(int x) {
        super(1);
    }
}

class Mixed extends Base {
    Mixed(int x) {
        super(x);
    }

    Mixed() {
        super(2);
    }
}
`)
	assert.Contains(t, result, "internal open class Same() : Base(1) {")
	assert.Contains(t, result, "internal open class Mixed() : Base() {")
	assert.NotContains(t, result, "super(")
}

func TestDelegatingConstructor(t *testing.T) {
	class := convertClass(t, `
class Point {
    private final int x;
    private final int y;

    Point(int x, int y) {
        this.x = x;
        this.y = y;
    }

    Point(int x) {
        this(x, 0);
    }
}
`)
	primary, secondary := constructors(class)
	require.Len(t, primary, 1)
	require.Len(t, secondary, 1)
	assert.Len(t, primary[0].Params.Params, 2)
	assert.Contains(t, secondary[0].ToSource(), "val __ = Point(x, 0)")
	assert.Contains(t, class.ToSource(), "internal open class Point(x: Int, y: Int) {")
}

func TestSecondaryConstructorFactory(t *testing.T) {
	result := convert(t, `
class Box {
    int value;

    Box(int value) {
        this.value = value;
    }

    Box() {
        this(0);
    }

    static Box empty() {
        return new Box();
    }
}
`)
	assert.Contains(t, result, "return Box.create()")
}

func TestFieldDefaults(t *testing.T) {
	result := convert(t, `
class Defaults {
    float f;
    double d;
    boolean flag;
    char c;
    long l;
    String s;
    final int fixed = 3;
}
`)
	for _, expected := range []string{
		"var f: Float = 0.toFloat()",
		"var d: Double = 0.toDouble()",
		"var flag: Boolean = false",
		"var c: Char = ' '",
		"var l: Long = 0",
		"var s: String? = null",
		"val fixed: Int = 3",
	} {
		assert.Contains(t, result, expected)
	}
}

func TestNotNullAnnotation(t *testing.T) {
	result := convert(t, `
import org.jetbrains.annotations.NotNull;

class Names {
    @NotNull String name = "x";
    String other;

    @NotNull
    String describe(@NotNull String prefix) {
        return prefix + name;
    }
}
`)
	assert.Contains(t, result, `var name: String = "x"`)
	assert.Contains(t, result, "var other: String? = null")
	assert.Contains(t, result, "fun describe(prefix: String): String {")
	assert.Contains(t, result, "import org.jetbrains.annotations.NotNull")
}

func TestForceNotNullTypes(t *testing.T) {
	settings := DefaultSettings()
	settings.ForceNotNullTypes = true
	ctx := NewMigrationContext(settings, "Test.java", false)
	result, err := Migrate(ctx, []byte(`
class Holder {
    String value = "";
}
`))
	require.NoError(t, err)
	assert.Contains(t, result, `var value: String = ""`)
}

func TestArgumentConversion(t *testing.T) {
	result := convert(t, `
class Calls {
    void two(int a, Integer b) {}
    void one(int a) {}
    void wide(long a) {}

    void run(Integer x, int y) {
        two(x);
        one(x);
        one(y);
        wide(y);
    }
}
`)
	assert.Contains(t, result, "two(x)\n", "argument count mismatch leaves arguments untyped")
	assert.Contains(t, result, "one(x!!.toInt())")
	assert.Contains(t, result, "one(y)\n")
	assert.Contains(t, result, "wide(y)\n")
}

func TestIsConversionNeeded(t *testing.T) {
	integer := &javaast.Type{Kind: javaast.ClassType, Name: "Integer", ID: "java.lang.Integer"}
	long := &javaast.Type{Kind: javaast.ClassType, Name: "Long", ID: "java.lang.Long"}
	boolean := &javaast.Type{Kind: javaast.ClassType, Name: "Boolean", ID: "java.lang.Boolean"}
	tests := []struct {
		name     string
		actual   *javaast.Type
		expected *javaast.Type
		want     bool
	}{
		{"same primitive", javaast.Primitive("int"), javaast.Primitive("int"), false},
		{"unboxing", integer, javaast.Primitive("int"), true},
		{"boxing", javaast.Primitive("int"), integer, true},
		{"unrelated wrapper", long, javaast.Primitive("int"), false},
		{"widening primitives", javaast.Primitive("int"), javaast.Primitive("long"), false},
		{"boolean is never converted", boolean, javaast.Primitive("boolean"), false},
		{"unknown actual", nil, javaast.Primitive("int"), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, isConversionNeeded(test.actual, test.expected))
		})
	}
}

func TestLiteralConversion(t *testing.T) {
	tests := []struct {
		kind     javaast.LiteralKind
		java     string
		expected string
	}{
		{javaast.IntLiteral, "010", "8"},
		{javaast.IntLiteral, "0x1F", "0x1F"},
		{javaast.IntLiteral, "0", "0"},
		{javaast.LongLiteral, "10l", "10L"},
		{javaast.FloatLiteral, "1.5f", "1.5f"},
		{javaast.FloatLiteral, "1.F", "1.0f"},
		{javaast.DoubleLiteral, "2d", "2.0"},
		{javaast.DoubleLiteral, ".5", "0.5"},
		{javaast.DoubleLiteral, "1e3", "1e3"},
		{javaast.CharLiteral, `'\0'`, `'\u0000'`},
		{javaast.StringLiteral, `"cost: $5"`, `"cost: \$5"`},
	}
	for _, test := range tests {
		t.Run(test.java, func(t *testing.T) {
			file, err := javaast.Parse([]byte("class L { Object v = "+test.java+"; }"), "L.java")
			require.NoError(t, err)
			field := file.Classes()[0].Fields()[0]
			literal, ok := field.Initializer.(*javaast.Literal)
			require.True(t, ok, "initializer is a literal")
			require.Equal(t, test.kind, literal.Kind)
			assert.Equal(t, test.expected, convertLiteral(literal))
		})
	}
}

func TestMutationAnalysis(t *testing.T) {
	file, err := javaast.Parse([]byte(`
class M {
    void f(int a, int b, int c) {
        b = 2;
        c++;
        int d = a;
    }
}
`), "M.java")
	require.NoError(t, err)
	method := file.Classes()[0].Methods()[0]
	params := method.Params
	assert.True(t, isReadOnly(params[0], method.Body))
	assert.False(t, isReadOnly(params[1], method.Body))
	assert.Equal(t, 1, countWriteAccesses(params[2], method.Body))

	result := convert(t, `
class M {
    int f(int a, int b) {
        b = a;
        int d = b;
        int e = 0;
        e += d;
        return e;
    }
}
`)
	assert.Contains(t, result, "var b = b")
	assert.Contains(t, result, "val d = b")
	assert.Contains(t, result, "var e = 0")
}

func TestStatements(t *testing.T) {
	result := convert(t, `
class S {
    enum Color { RED, GREEN }

    int run(int[] values, Color color) {
        int total = 0;
        for (int i = 0; i < values.length; i++) {
            total += values[i];
        }
        for (int j = 0; j <= 3; j++) {
            total++;
        }
        switch (color) {
            case RED:
                total = 1;
                break;
            default:
                total = 2;
                break;
            case GREEN:
                total = 3;
        }
        return total & 0xFF;
    }
}
`)
	assert.Contains(t, result, "for (i in 0..values?.size - 1) {")
	assert.Contains(t, result, "total += values!![i]")
	assert.Contains(t, result, "for (j in 0..3) {")
	assert.Contains(t, result, "when (color) {")
	assert.Contains(t, result, "Color.RED -> total = 1")
	assert.Regexp(t, `Color\.GREEN -> total = 3\n\s*else -> total = 2\n`, result, "default moves last")
	assert.Contains(t, result, "return total and 0xFF")
}

func TestSwitchFallThrough(t *testing.T) {
	result := convert(t, `
class F {
    int pick(int k) {
        int r = 0;
        switch (k) {
            case 1:
            case 2:
                r = 12;
                break;
            case 3:
                r = 3;
            case 4:
                r += 4;
                break;
            case 5:
            default:
                r = -1;
        }
        return r;
    }
}
`)
	assert.Contains(t, result, "1, 2 -> r = 12\n")
	assert.Regexp(t, `3 -> \{\n\s*r = 3\n\s*r \+= 4\n\s*\}`, result, "case 3 falls into case 4")
	assert.Contains(t, result, "4 -> r += 4\n")
	assert.Contains(t, result, "else -> r = -1\n")
	assert.NotContains(t, result, "-> {}")
	assert.NotContains(t, result, "5 ->")
}

func TestInstanceOfPatternVariable(t *testing.T) {
	result := convert(t, `
class P {
    int size(Object o) {
        if (o instanceof String s && !s.isEmpty()) {
            return s.length();
        }
        return 0;
    }
}
`)
	assert.Contains(t, result, "if (o is String && !(o as String).isEmpty()) {")
	assert.Contains(t, result, "return (o as String).length()")

	ctx := NewMigrationContext(DefaultSettings(), "Test.java", false)
	_, err := Migrate(ctx, []byte(`
class Q {
    void reset(Object o) {
        if (o instanceof String s) {
            s = "";
        }
    }
}
`))
	require.NoError(t, err)
	require.Len(t, ctx.Errors.Errors(), 1)
	assert.Equal(t, "pattern_variable_assignment", ctx.Errors.Errors()[0].NodeKind)
}

func TestMainFunction(t *testing.T) {
	result := convert(t, `
public class App {
    public static void main(String[] args) {
        System.out.println("hi");
    }
}
`)
	assert.Contains(t, result, "companion object {")
	assert.Contains(t, result, "fun main(args: Array<String>) = App.main(args)\n")
}

func TestObjectMethodOverrides(t *testing.T) {
	result := convert(t, `
class Entity {
    @Override
    public int hashCode() {
        return super.hashCode();
    }

    @Override
    public String toString() {
        return "Entity";
    }
}
`)
	assert.Contains(t, result, "public override fun hashCode(): Int {")
	assert.Contains(t, result, "return System.identityHashCode(this)")
	assert.Contains(t, result, "public override fun toString(): String {")
}

func TestImportsDropJavaLang(t *testing.T) {
	file, err := javaast.Parse([]byte(`
import java.lang.String;
import java.lang.*;
import java.lang.reflect.Method;
import java.util.List;

class I {}
`), "I.java")
	require.NoError(t, err)
	var paths []string
	for _, imp := range importsToImportList(file.Imports) {
		paths = append(paths, imp.Path)
	}
	if diff := cmp.Diff([]string{"java.lang.reflect.Method", "java.util.List"}, paths); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsupportedConstructIsRecorded(t *testing.T) {
	ctx := NewMigrationContext(DefaultSettings(), "Test.java", true)
	result, err := Migrate(ctx, []byte(`
class Outer {
    @interface Marker {}
    int kept = 1;
}
`))
	require.Error(t, err)
	assert.Contains(t, result, "/* FIXME: unsupported annotation_type_declaration */")
	assert.Contains(t, result, "var kept: Int = 1")
	require.Len(t, ctx.Errors.Errors(), 1)
	assert.Contains(t, ctx.Errors.Errors()[0].Location, "class Outer")
}
