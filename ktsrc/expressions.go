package ktsrc

import (
	"strings"
)

// Expression nodes

type (
	// LiteralExpression is a literal in Kotlin syntax. Only the null literal is nullable.
	LiteralExpression struct {
		notEmpty
		Text string
	}

	// BangBangExpression asserts a nullable value is not null
	BangBangExpression struct {
		notEmpty
		notNullable
		Expr Expression
	}

	AssignmentExpression struct {
		notEmpty
		notNullable
		Left  Expression
		Right Expression
		Op    string
	}

	// CallChainExpression is a member selection. Selecting from a nullable receiver uses `?.`.
	CallChainExpression struct {
		notEmpty
		Receiver   Expression
		Identifier *Identifier
	}

	MethodCallExpression struct {
		notEmpty
		Method         Expression
		Args           []Expression
		TypeArgs       []Type
		ResultNullable bool
	}

	BinaryExpression struct {
		notEmpty
		notNullable
		Left  Expression
		Right Expression
		Op    string
	}

	PrefixOperator struct {
		notEmpty
		notNullable
		Op   string
		Expr Expression
	}

	PostfixOperator struct {
		notEmpty
		notNullable
		Op   string
		Expr Expression
	}

	ParenthesizedExpression struct {
		notEmpty
		Expr Expression
	}

	TypeCastExpression struct {
		notEmpty
		Ty   Type
		Expr Expression
	}

	IsOperator struct {
		notEmpty
		notNullable
		Expr Expression
		Ty   Type
	}

	ThisExpression struct {
		notEmpty
		notNullable
		Label *Identifier
	}

	SuperExpression struct {
		notEmpty
		notNullable
		Label *Identifier
	}

	// NewClassExpression is an instantiation, or an object expression when Anonymous is set
	NewClassExpression struct {
		notEmpty
		notNullable
		Name        Element
		Args        []Expression
		Qualifier   Expression
		Anonymous   *AnonymousClass
		IsInterface bool
	}

	ArrayAccessExpression struct {
		notEmpty
		Array    Expression
		Index    Expression
		Nullable bool
	}

	// ArrayInitializerExpression renders a call to one of the arrayOf family
	ArrayInitializerExpression struct {
		notEmpty
		notNullable
		Function string
		Elements []Expression
	}

	// ArrayWithoutInitializationExpression allocates an array of the given size
	ArrayWithoutInitializationExpression struct {
		notEmpty
		notNullable
		Ty         Type
		Dimensions []Expression
	}

	// ConditionalExpression is Kotlin's if expression
	ConditionalExpression struct {
		notEmpty
		Condition Expression
		Then      Expression
		Else      Expression
	}

	LambdaExpression struct {
		notEmpty
		notNullable
		Params []*Identifier
		Body   Element
	}

	ClassLiteralExpression struct {
		notEmpty
		notNullable
		Ty Type
	}

	RangeExpression struct {
		notEmpty
		notNullable
		Start Expression
		End   Expression
	}
)

// Literal builds a literal expression
func Literal(text string) *LiteralExpression {
	return &LiteralExpression{Text: text}
}

func (e *LiteralExpression) ToSource() string {
	return e.Text
}

func (e *LiteralExpression) IsNullable() bool {
	return e.Text == "null"
}

func (e *BangBangExpression) ToSource() string {
	return e.Expr.ToSource() + "!!"
}

func (e *AssignmentExpression) ToSource() string {
	op := e.Op
	if op == "" {
		op = "="
	}
	return e.Left.ToSource() + " " + op + " " + e.Right.ToSource()
}

// NewCallChain selects name from receiver
func NewCallChain(receiver Expression, name string) *CallChainExpression {
	return &CallChainExpression{Receiver: receiver, Identifier: NewIdentifier(name)}
}

func (e *CallChainExpression) ToSource() string {
	if e.Receiver == nil || e.Receiver.IsEmpty() {
		return e.Identifier.ToSource()
	}
	if e.Receiver.IsNullable() {
		return e.Receiver.ToSource() + "?." + e.Identifier.ToSource()
	}
	return e.Receiver.ToSource() + "." + e.Identifier.ToSource()
}

func (e *CallChainExpression) IsNullable() bool {
	return e.Identifier.IsNullable()
}

// BuildMethodCall builds receiver.name(args...)
func BuildMethodCall(receiver Expression, name string, args ...Expression) *MethodCallExpression {
	return &MethodCallExpression{Method: NewCallChain(receiver, name), Args: args}
}

func (e *MethodCallExpression) ToSource() string {
	return e.Method.ToSource() + Join(e.TypeArgs, ", ", "<", ">") + "(" + JoinSource(e.Args, ", ") + ")"
}

func (e *MethodCallExpression) IsNullable() bool {
	return e.ResultNullable
}

func (e *BinaryExpression) ToSource() string {
	return e.Left.ToSource() + " " + e.Op + " " + e.Right.ToSource()
}

func (e *PrefixOperator) ToSource() string {
	return e.Op + e.Expr.ToSource()
}

func (e *PostfixOperator) ToSource() string {
	return e.Expr.ToSource() + e.Op
}

func (e *ParenthesizedExpression) ToSource() string {
	return "(" + e.Expr.ToSource() + ")"
}

func (e *ParenthesizedExpression) IsNullable() bool {
	return e.Expr.IsNullable()
}

func (e *TypeCastExpression) ToSource() string {
	return "(" + e.Expr.ToSource() + " as " + e.Ty.ToSource() + ")"
}

func (e *TypeCastExpression) IsNullable() bool {
	return e.Ty.IsNullable()
}

func (e *IsOperator) ToSource() string {
	return e.Expr.ToSource() + " is " + e.Ty.ToSource()
}

func (e *ThisExpression) ToSource() string {
	return "this" + WithPrefix("@", e.Label)
}

func (e *SuperExpression) ToSource() string {
	return "super" + WithPrefix("@", e.Label)
}

func (e *NewClassExpression) ToSource() string {
	sb := strings.Builder{}
	if e.Anonymous != nil {
		sb.WriteString("object : ")
		sb.WriteString(e.Name.ToSource())
		if !e.IsInterface {
			sb.WriteString("(" + JoinSource(e.Args, ", ") + ")")
		}
		sb.WriteString(" ")
		sb.WriteString(e.Anonymous.ToSource())
		return sb.String()
	}
	if e.Qualifier != nil && !e.Qualifier.IsEmpty() {
		sb.WriteString(e.Qualifier.ToSource())
		sb.WriteString(".")
	}
	sb.WriteString(e.Name.ToSource())
	sb.WriteString("(")
	sb.WriteString(JoinSource(e.Args, ", "))
	sb.WriteString(")")
	return sb.String()
}

func (e *ArrayAccessExpression) ToSource() string {
	return e.Array.ToSource() + "[" + e.Index.ToSource() + "]"
}

func (e *ArrayAccessExpression) IsNullable() bool {
	return e.Nullable
}

func (e *ArrayInitializerExpression) ToSource() string {
	return e.Function + "(" + JoinSource(e.Elements, ", ") + ")"
}

// primitiveArrays maps element types with a dedicated Kotlin array class
var primitiveArrays = map[string]bool{
	"Boolean": true,
	"Byte":    true,
	"Char":    true,
	"Short":   true,
	"Int":     true,
	"Long":    true,
	"Float":   true,
	"Double":  true,
}

// PrimitiveArrayName returns IntArray for Int and so on, or "" for non primitive elements
func PrimitiveArrayName(elem Type) string {
	if len(elem.Args) == 0 && elem.Nullability != Nullable && primitiveArrays[elem.Name] {
		return elem.Name + "Array"
	}
	return ""
}

func (e *ArrayWithoutInitializationExpression) ToSource() string {
	if len(e.Dimensions) == 0 {
		return "arrayOfNulls<" + e.Ty.ToSource() + ">(0)"
	}
	return arrayAllocation(e.Ty, e.Dimensions)
}

// arrayAllocation renders nested allocations for multi dimensional arrays
func arrayAllocation(elem Type, dims []Expression) string {
	size := dims[0].ToSource()
	if len(dims) == 1 {
		if name := PrimitiveArrayName(elem); name != "" {
			return name + "(" + size + ")"
		}
		return "arrayOfNulls<" + elem.ConvertedToNotNull().ToSource() + ">(" + size + ")"
	}
	inner := arrayAllocation(elem, dims[1:])
	return "Array(" + size + ") { " + inner + " }"
}

func (e *ConditionalExpression) ToSource() string {
	return "if (" + e.Condition.ToSource() + ") " + e.Then.ToSource() + " else " + e.Else.ToSource()
}

func (e *ConditionalExpression) IsNullable() bool {
	return e.Then.IsNullable() || e.Else.IsNullable()
}

func (e *LambdaExpression) ToSource() string {
	params := JoinSource(e.Params, ", ")
	if block, ok := e.Body.(*Block); ok {
		header := "{"
		if params != "" {
			header = "{ " + params + " ->"
		}
		body := JoinSource(block.statements(), "\n")
		if body == "" {
			return header + " }"
		}
		return header + "\n" + Indent(body) + "\n}"
	}
	if params == "" {
		return "{ " + e.Body.ToSource() + " }"
	}
	return "{ " + params + " -> " + e.Body.ToSource() + " }"
}

func (e *ClassLiteralExpression) ToSource() string {
	return e.Ty.ConvertedToNotNull().ToSource() + "::class.java"
}

func (e *RangeExpression) ToSource() string {
	return e.Start.ToSource() + ".." + e.End.ToSource()
}
