package javaast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, source string) *File {
	t.Helper()
	file, err := Parse([]byte(source), "Test.java")
	require.NoError(t, err)
	require.Empty(t, file.SyntaxErrors, "unexpected syntax errors")
	return file
}

func TestParsePackageAndImports(t *testing.T) {
	file := parse(t, `package com.example.demo;

import java.util.List;
import static java.lang.Math.max;
import java.io.*;

public class A {}
`)
	assert.Equal(t, "com.example.demo", file.Package)
	require.Len(t, file.Imports, 3)
	assert.Equal(t, "java.util.List", file.Imports[0].Path)
	assert.True(t, file.Imports[1].Static)
	assert.Equal(t, "java.io.*", file.Imports[2].Path)
	assert.True(t, file.Imports[2].OnDemand)

	classes := file.Classes()
	require.Len(t, classes, 1)
	assert.Equal(t, "com.example.demo.A", classes[0].QualifiedName())
	assert.True(t, classes[0].Modifiers.Has(PUBLIC))
}

func TestParseClassMembers(t *testing.T) {
	file := parse(t, `
/** A point. */
public final class Point<T extends Comparable<T>> extends Base implements Runnable, Cloneable {
    private final int x, y;
    protected String name = "p";
    static int[] cache = {1, 2};

    public Point(int x, int y) {
        super(x);
        this.x = x;
        this.y = y;
    }

    @Override
    public void run() {}

    abstract <R> R map(T value, String... rest) throws Exception;

    static { cache = null; }
}
`)
	c := file.Classes()[0]
	assert.Equal(t, "Point", c.Name)
	require.Len(t, c.Docs, 1)
	assert.Equal(t, "/** A point. */", c.Docs[0].Text)
	assert.True(t, c.Modifiers.Has(FINAL))
	require.Len(t, c.TypeParameters, 1)
	assert.Equal(t, "T", c.TypeParameters[0].Name)
	require.Len(t, c.TypeParameters[0].Bounds, 1)
	assert.Equal(t, "Comparable<T>", c.TypeParameters[0].Bounds[0].String())
	require.Len(t, c.Extends, 1)
	assert.Equal(t, "Base", c.Extends[0].Name)
	require.Len(t, c.Implements, 2)
	assert.Equal(t, TypeID("java.lang.Runnable"), c.Implements[0].Canonical())

	fields := c.Fields()
	require.Len(t, fields, 4)
	assert.Equal(t, "x", fields[0].Name)
	assert.Equal(t, "y", fields[1].Name)
	assert.True(t, fields[1].Modifiers.Has(PRIVATE|FINAL))
	assert.Equal(t, TypeID("int"), fields[1].Type.Canonical())
	assert.Equal(t, TypeID("java.lang.String"), fields[2].Type.Canonical())
	assert.Equal(t, TypeID("int[]"), fields[3].Type.Canonical())
	init, ok := fields[3].Initializer.(*ArrayInit)
	require.True(t, ok)
	assert.Len(t, init.Elements, 2)
	assert.Equal(t, TypeID("int[]"), init.Type().Canonical())

	ctors := c.Constructors()
	require.Len(t, ctors, 1)
	require.Len(t, ctors[0].Params, 2)
	require.Len(t, ctors[0].Body.Statements, 3)
	stmt, ok := ctors[0].Body.Statements[0].(*ExpressionStatement)
	require.True(t, ok)
	call, ok := stmt.Expr.(*MethodCall)
	require.True(t, ok)
	assert.True(t, call.IsConstructorCall)
	assert.True(t, call.IsSuper)

	methods := c.Methods()
	require.Len(t, methods, 2)
	run := methods[0]
	assert.Equal(t, "run", run.Name)
	assert.True(t, run.HasAnnotation("java.lang.Override"))
	assert.True(t, run.ReturnType.IsVoid())

	mapMethod := methods[1]
	assert.True(t, mapMethod.IsAbstract())
	require.Len(t, mapMethod.TypeParameters, 1)
	assert.Equal(t, TypeVariable, mapMethod.ReturnType.Kind)
	require.Len(t, mapMethod.Params, 2)
	assert.True(t, mapMethod.Params[1].Varargs)
	assert.Equal(t, TypeID("java.lang.String[]"), mapMethod.Params[1].DeclType().Canonical())
	require.Len(t, mapMethod.Throws, 1)
	assert.Equal(t, "map(T,java.lang.String)", mapMethod.Signature())

	var initializers []*ClassInitializer
	for _, m := range c.Members {
		if ci, ok := m.(*ClassInitializer); ok {
			initializers = append(initializers, ci)
		}
	}
	require.Len(t, initializers, 1)
	assert.True(t, initializers[0].Static)
}

func TestParseEnumAndInterface(t *testing.T) {
	file := parse(t, `
enum Color {
    RED(1), GREEN(2) { int code() { return 0; } };

    private final int value;

    Color(int value) { this.value = value; }

    int code() { return value; }
}

interface Shape {
    double PI = 3.14;
    double area();
    default String label() { return "shape"; }
}
`)
	classes := file.Classes()
	require.Len(t, classes, 2)
	color := classes[0]
	assert.True(t, color.IsEnum())
	constants := color.EnumConstants()
	require.Len(t, constants, 2)
	assert.Equal(t, "RED", constants[0].Name)
	require.Len(t, constants[0].Args, 1)
	assert.Same(t, color.Constructors()[0], constants[0].Target)
	require.NotNil(t, constants[1].Body)
	assert.True(t, constants[1].Body.Anonymous)
	assert.Same(t, color.Methods()[0], constants[1].Body.Methods()[0].Overrides)

	shape := classes[1]
	assert.True(t, shape.IsInterface())
	require.Len(t, shape.Fields(), 1)
	assert.True(t, shape.Fields()[0].IsStatic())
	assert.True(t, shape.Fields()[0].IsFinal())
	methods := shape.Methods()
	require.Len(t, methods, 2)
	assert.True(t, methods[0].IsAbstract())
	assert.True(t, methods[1].Modifiers.Has(DEFAULT))
}

func TestParseRecord(t *testing.T) {
	file := parse(t, `record Pair(String first, int second) {}`)
	c := file.Classes()[0]
	assert.Equal(t, ClassKindRecord, c.Kind)
	fields := c.Fields()
	require.Len(t, fields, 2)
	assert.True(t, fields[0].Modifiers.Has(FINAL))
	ctors := c.Constructors()
	require.Len(t, ctors, 1)
	assert.Len(t, ctors[0].Params, 2)
	assert.Len(t, ctors[0].Body.Statements, 2)
	methods := c.Methods()
	require.Len(t, methods, 2)
	assert.Equal(t, "first", methods[0].Name)
	assert.Equal(t, TypeID("java.lang.String"), methods[0].ReturnType.Canonical())
}

func TestParseStatements(t *testing.T) {
	file := parse(t, `
class S {
    int run(int[] xs, java.util.List<String> names) {
        int total = 0;
        for (int i = 0; i < xs.length; i++) {
            total += xs[i];
        }
        for (String name : names) {
            if (name == null) continue;
        }
        outer:
        while (total > 10) {
            total--;
            break outer;
        }
        do { total++; } while (total < 0);
        switch (total) {
            case 1:
            case 2:
                total = 3;
                break;
            default:
                total = 4;
        }
        try {
            total = Integer.parseInt("1");
        } catch (IllegalArgumentException | IllegalStateException e) {
            throw e;
        } finally {
            total = 0;
        }
        synchronized (this) { total = 1; }
        assert total > 0 : "positive";
        return total;
    }
}
`)
	body := file.Classes()[0].Methods()[0].Body.Statements
	require.Len(t, body, 10)

	decl, ok := body[0].(*LocalVariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "total", decl.Variables[0].Name)

	loop, ok := body[1].(*For)
	require.True(t, ok)
	require.Len(t, loop.Init, 1)
	require.Len(t, loop.Update, 1)
	update, ok := loop.Update[0].(*Unary)
	require.True(t, ok)
	assert.True(t, update.Postfix)
	assert.True(t, update.IsIncrement())

	each, ok := body[2].(*ForEach)
	require.True(t, ok)
	assert.Equal(t, "name", each.Variable.Name)
	assert.Equal(t, TypeID("java.util.List"), each.Iterable.Type().Canonical())

	labeled, ok := body[3].(*Labeled)
	require.True(t, ok)
	assert.Equal(t, "outer", labeled.Label)
	_, ok = labeled.Statement.(*While)
	assert.True(t, ok)

	_, ok = body[4].(*DoWhile)
	assert.True(t, ok)

	sw, ok := body[5].(*Switch)
	require.True(t, ok)
	require.Len(t, sw.Cases, 2)
	assert.Len(t, sw.Cases[0].Labels, 2)
	assert.Len(t, sw.Cases[0].Body, 2)
	assert.True(t, sw.Cases[1].Default)

	try, ok := body[6].(*Try)
	require.True(t, ok)
	require.Len(t, try.Catches, 1)
	assert.Len(t, try.Catches[0].Param.CatchTypes, 2)
	assert.Equal(t, "e", try.Catches[0].Param.Name)
	assert.NotNil(t, try.Finally)

	_, ok = body[7].(*Synchronized)
	assert.True(t, ok)
	assertion, ok := body[8].(*Assert)
	require.True(t, ok)
	assert.NotNil(t, assertion.Detail)
	_, ok = body[9].(*Return)
	assert.True(t, ok)
}

func TestParseExpressions(t *testing.T) {
	file := parse(t, `
class E {
    Object f(Object o) {
        long a = 10L;
        double b = 1.5;
        float c = 2f;
        char d = 'x';
        Object e = o instanceof String ? (String) o : null;
        Runnable r = () -> {};
        int[][] grid = new int[3][];
        Class<?> k = E.class;
        return this.f(o);
    }
}
`)
	body := file.Classes()[0].Methods()[0].Body.Statements
	initializer := func(i int) Expression {
		return body[i].(*LocalVariableDeclaration).Variables[0].Initializer
	}
	assert.Equal(t, LongLiteral, initializer(0).(*Literal).Kind)
	assert.Equal(t, DoubleLiteral, initializer(1).(*Literal).Kind)
	assert.Equal(t, FloatLiteral, initializer(2).(*Literal).Kind)
	assert.Equal(t, CharLiteral, initializer(3).(*Literal).Kind)

	conditional, ok := initializer(4).(*Conditional)
	require.True(t, ok)
	_, ok = conditional.Condition.(*InstanceOf)
	assert.True(t, ok)
	cast, ok := conditional.Then.(*Cast)
	require.True(t, ok)
	assert.Equal(t, TypeID("java.lang.String"), cast.Type().Canonical())

	lambda, ok := initializer(5).(*Lambda)
	require.True(t, ok)
	assert.Empty(t, lambda.Params)

	array, ok := initializer(6).(*NewArray)
	require.True(t, ok)
	assert.Len(t, array.Dimensions, 1)
	assert.Equal(t, 1, array.ExtraDims)
	assert.Equal(t, TypeID("int[][]"), array.Type().Canonical())

	_, ok = initializer(7).(*ClassLiteral)
	assert.True(t, ok)

	ret := body[8].(*Return)
	call, ok := ret.Value.(*MethodCall)
	require.True(t, ok)
	assert.Same(t, file.Classes()[0].Methods()[0], call.Target)
	_, ok = call.Qualifier.(*This)
	assert.True(t, ok)
}

func TestParseCommentsAndWhitespace(t *testing.T) {
	file := parse(t, `// header
class A {}


class B {}
`)
	require.Len(t, file.Elements, 5)
	_, ok := file.Elements[0].(*Comment)
	assert.True(t, ok)
	ws, ok := file.Elements[1].(*Whitespace)
	require.True(t, ok)
	assert.Equal(t, "\n", ws.Text)
	ws, ok = file.Elements[3].(*Whitespace)
	require.True(t, ok)
	assert.Equal(t, "\n\n\n", ws.Text)
}

func TestParseSyntaxErrors(t *testing.T) {
	file, err := Parse([]byte("class A { void f( { }"), "Broken.java")
	require.NoError(t, err)
	assert.NotEmpty(t, file.SyntaxErrors)
}

func TestInspect(t *testing.T) {
	file := parse(t, `
class A {
    void f(int x) {
        x = 1;
        x++;
        Runnable r = new Runnable() { public void run() { int y = x; } };
    }
}
`)
	var references, assignments int
	Inspect(file, func(n Node) bool {
		switch n.(type) {
		case *Reference:
			references++
		case *Assignment:
			assignments++
		}
		return true
	})
	assert.Equal(t, 1, assignments)
	assert.Equal(t, 3, references)

	visited := 0
	Inspect(file.Classes()[0].Methods()[0], func(n Node) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}
