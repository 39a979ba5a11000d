package javaast

// Expression is a closed set of Java expression variants. Type returns the type computed by
// the resolver, nil when unknown.
type Expression interface {
	Node
	Type() *Type
	setType(t *Type)
	expression()
}

type expr struct {
	node
	ResolvedType *Type
}

func (e *expr) Type() *Type     { return e.ResolvedType }
func (e *expr) setType(t *Type) { e.ResolvedType = t }
func (*expr) expression()       {}

// LiteralKind classifies literals
type LiteralKind uint8

const (
	IntLiteral LiteralKind = iota
	LongLiteral
	FloatLiteral
	DoubleLiteral
	CharLiteral
	StringLiteral
	TextBlockLiteral
	BooleanLiteral
	NullLiteral
)

type (
	Literal struct {
		expr
		Kind LiteralKind
	}

	// Reference is a simple name or a field access. Qualifier is nil for simple names.
	Reference struct {
		expr
		Qualifier Expression
		Name      string
		Target    Declaration
		// TargetClass is set when the name denotes a class, as in Math.max
		TargetClass *Class
	}

	This struct {
		expr
		Qualifier string
	}

	Super struct {
		expr
		Qualifier string
	}

	// MethodCall is an invocation. Explicit constructor invocations, this(...) and
	// super(...), are calls with IsConstructorCall set.
	MethodCall struct {
		expr
		Qualifier         Expression
		Name              string
		Args              []Expression
		TypeArgs          []*Type
		Target            *Method
		IsConstructorCall bool
		IsSuper           bool
	}

	New struct {
		expr
		Class  *Type
		Args   []Expression
		Body   *Class
		Outer  Expression
		Target *Method
	}

	NewArray struct {
		expr
		Elem       *Type
		Dimensions []Expression
		ExtraDims  int
		Init       *ArrayInit
	}

	ArrayInit struct {
		expr
		Elements []Expression
	}

	ArrayAccess struct {
		expr
		Array Expression
		Index Expression
	}

	Assignment struct {
		expr
		Op    string
		Left  Expression
		Right Expression
	}

	Binary struct {
		expr
		Op    string
		Left  Expression
		Right Expression
	}

	// Unary covers prefix and postfix operators, increments included
	Unary struct {
		expr
		Op      string
		Operand Expression
		Postfix bool
	}

	Cast struct {
		expr
		Target *Type
		Value  Expression
	}

	InstanceOf struct {
		expr
		Value   Expression
		Target  *Type
		Binding string
	}

	Conditional struct {
		expr
		Condition Expression
		Then      Expression
		Else      Expression
	}

	Parenthesized struct {
		expr
		Inner Expression
	}

	Lambda struct {
		expr
		Params []*Parameter
		// Body is an Expression or a *Block
		Body Node
	}

	MethodReference struct {
		expr
		Qualifier string
		Name      string
	}

	ClassLiteral struct {
		expr
		Target *Type
	}

	SwitchExpression struct {
		expr
		Switch *Switch
	}

	UnknownExpression struct {
		expr
		Kind string
	}
)

// IsIncrement reports whether the operator writes its operand
func (u *Unary) IsIncrement() bool {
	return u.Op == "++" || u.Op == "--"
}

// IsNonNull reports whether the literal has a value other than null
func (l *Literal) IsNonNull() bool {
	return l.Kind != NullLiteral
}

// Unparen strips any parentheses around e
func Unparen(e Expression) Expression {
	for {
		p, ok := e.(*Parenthesized)
		if !ok {
			return e
		}
		e = p.Inner
	}
}
