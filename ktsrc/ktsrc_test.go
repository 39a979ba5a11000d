package ktsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var intType = NewType("Int", NotNull)

func TestJoin(t *testing.T) {
	a := DummyString("A")
	b := DummyString("B")
	ws := &WhiteSpace{Text: "\n\n"}
	tests := []struct {
		name     string
		nodes    []SourceElement
		prefix   string
		suffix   string
		expected string
	}{
		{"empty list renders nothing", []SourceElement{}, "<", ">", ""},
		{"plain separator", []SourceElement{a, b}, "", "", "A,B"},
		{"whitespace between", []SourceElement{a, ws, b}, "", "", "A\n\nB"},
		{"leading whitespace", []SourceElement{ws, a, b}, "", "", "\n\nA,B"},
		{"prefix and suffix once", []SourceElement{a, b}, "<", ">", "<A,B>"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Join(test.nodes, ",", test.prefix, test.suffix))
		})
	}
}

func TestRemoveEmpty(t *testing.T) {
	a := DummyString("a")
	result := RemoveEmpty([]Statement{EmptyStatement, a, EmptyExpression, EmptyElement})
	assert.Equal(t, []Statement{a}, result)
	assert.Equal(t, "", EmptyExpression.ToSource())
}

func TestKeywordQuoting(t *testing.T) {
	assert.Equal(t, "`in`", NewIdentifier("in").ToSource())
	assert.Equal(t, "value", NewIdentifier("value").ToSource())
	assert.Equal(t, "com.`object`.`is`", QuoteQualifiedName("com.object.is"))
}

func TestTypeRendering(t *testing.T) {
	list := NewType("List", Nullable, NewType("String", NotNull))
	assert.Equal(t, "List<String>?", list.ToSource())

	notNull := list.ConvertedToNotNull()
	assert.Equal(t, "List<String>", notNull.ToSource())
	assert.True(t, list.IsNullable(), "conversion must not modify the original")
	assert.Equal(t, "*", StarProjected.ConvertedToNotNull().ToSource())
}

func TestModifiers(t *testing.T) {
	m := PUBLIC.With(FINAL)
	assert.True(t, m.Has(FINAL))
	assert.False(t, m.Without(FINAL).Has(FINAL))
	assert.Equal(t, "final public", m.String())
}

func TestClassWithSecondaryConstructor(t *testing.T) {
	field := &Field{Name: NewIdentifier("x"), Modifiers: PRIVATE, Ty: intType, Initializer: EmptyExpression}
	secondary := &Constructor{Function: Function{
		Modifiers:  PUBLIC,
		ReturnType: NewType("Point", NotNull),
		Params:     &ParameterList{Params: []*Parameter{{Name: NewIdentifier("x"), Ty: intType, ReadOnly: true}}},
		Body:       NewBlock(DummyString("val __ = Point(x)")),
	}}
	primary := &Constructor{Function: Function{
		Params: &ParameterList{Params: []*Parameter{{Name: NewIdentifier("_x"), Ty: intType, ReadOnly: true}}},
		Body:   NewBlock(&AssignmentExpression{Left: NewIdentifier("x"), Right: NewIdentifier("_x")}),
	}, IsPrimary: true}
	class := &Class{
		Name:      NewIdentifier("Point"),
		Modifiers: PUBLIC,
		Members:   []SourceElement{field, secondary, primary},
	}
	expected := `public open class Point(_x: Int) {
    private var x: Int
    init {
        x = _x
    }
    companion object {
        public fun create(x: Int): Point {
            val __ = Point(x)
            return __
        }
    }
}`
	assert.Equal(t, expected, class.ToSource())
}

func TestEnum(t *testing.T) {
	enum := &Enum{Class{
		Name: NewIdentifier("Color"),
		Members: []SourceElement{
			&EnumConstant{Name: NewIdentifier("RED")},
			&EnumConstant{Name: NewIdentifier("GREEN")},
		},
	}}
	assert.Equal(t, "enum class Color {\n    RED,\n    GREEN\n}", enum.ToSource())
}

func TestFunctionShadowsMutatedParameter(t *testing.T) {
	fn := &Function{
		Name:       NewIdentifier("inc"),
		Modifiers:  PUBLIC | NOT_OPEN,
		ReturnType: intType,
		Params:     &ParameterList{Params: []*Parameter{{Name: NewIdentifier("a"), Ty: intType}}},
		Body: NewBlock(
			&AssignmentExpression{Left: NewIdentifier("a"), Right: Literal("1"), Op: "+="},
			&ReturnStatement{Value: NewIdentifier("a")},
		),
	}
	assert.Equal(t, "public fun inc(a: Int): Int {\n    var a = a\n    a += 1\n    return a\n}", fn.ToSource())

	abstract := &Function{Name: NewIdentifier("size"), Modifiers: PUBLIC | NOT_OPEN, ReturnType: intType, Body: EmptyBlock}
	assert.Equal(t, "public fun size(): Int", abstract.ToSource())
}

func TestWhen(t *testing.T) {
	when := &WhenStatement{
		Subject: NewIdentifier("x"),
		Entries: []*WhenEntry{
			{Conditions: []Expression{Literal("1"), Literal("2")}, Body: NewBlock(DummyString("a()"))},
			{Body: NewBlock()},
		},
	}
	assert.Equal(t, "when (x) {\n    1, 2 -> {\n        a()\n    }\n    else -> {\n    }\n}", when.ToSource())
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expression
		expected string
	}{
		{"safe call on nullable receiver", NewCallChain(&Identifier{Name: "s", Nullable: true}, "length"), "s?.length"},
		{"plain call chain", NewCallChain(NewIdentifier("s"), "length"), "s.length"},
		{"bang bang", &BangBangExpression{Expr: NewIdentifier("v")}, "v!!"},
		{"primitive array", &ArrayWithoutInitializationExpression{Ty: intType, Dimensions: []Expression{Literal("3")}}, "IntArray(3)"},
		{"object array", &ArrayWithoutInitializationExpression{Ty: NewType("String", Nullable), Dimensions: []Expression{Literal("3")}}, "arrayOfNulls<String>(3)"},
		{"range", &RangeExpression{Start: Literal("0"), End: &BinaryExpression{Left: NewIdentifier("n"), Op: "-", Right: Literal("1")}}, "0..n - 1"},
		{"class literal", &ClassLiteralExpression{Ty: NewType("String", Nullable)}, "String::class.java"},
		{"conversion call", BuildMethodCall(NewIdentifier("x"), "toLong"), "x.toLong()"},
		{"conditional", &ConditionalExpression{Condition: NewIdentifier("c"), Then: Literal("1"), Else: Literal("2")}, "if (c) 1 else 2"},
		{"lambda", &LambdaExpression{Params: []*Identifier{NewIdentifier("a")}, Body: NewIdentifier("a")}, "{ a -> a }"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.expr.ToSource())
		})
	}
}

func TestFile(t *testing.T) {
	file := &File{
		PackageName: "demo.is",
		Imports:     []*Import{{Path: "java.util.List"}},
		Body: []SourceElement{
			&Comment{Text: "// hi"},
			&WhiteSpace{Text: "\n"},
			&Class{Name: NewIdentifier("A"), Modifiers: FINAL},
		},
	}
	assert.Equal(t, "package demo.`is`\n\nimport java.util.List\n\n// hi\nclass A\n", file.ToSource())
}
