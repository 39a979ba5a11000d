package javaast

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

func (b *builder) expression(n *tree_sitter.Node) Expression {
	if n == nil {
		return nil
	}
	e := expr{node: b.node(n)}
	switch n.Kind() {
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		kind := IntLiteral
		if strings.HasSuffix(strings.ToLower(e.Text), "l") {
			kind = LongLiteral
		}
		return &Literal{expr: e, Kind: kind}
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		kind := DoubleLiteral
		if strings.HasSuffix(strings.ToLower(e.Text), "f") {
			kind = FloatLiteral
		}
		return &Literal{expr: e, Kind: kind}
	case "true", "false":
		return &Literal{expr: e, Kind: BooleanLiteral}
	case "character_literal":
		return &Literal{expr: e, Kind: CharLiteral}
	case "string_literal":
		if strings.HasPrefix(e.Text, `"""`) {
			return &Literal{expr: e, Kind: TextBlockLiteral}
		}
		return &Literal{expr: e, Kind: StringLiteral}
	case "text_block":
		return &Literal{expr: e, Kind: TextBlockLiteral}
	case "null_literal":
		return &Literal{expr: e, Kind: NullLiteral}
	case "identifier":
		return &Reference{expr: e, Name: e.Text}
	case "this":
		return &This{expr: e}
	case "super":
		return &Super{expr: e}
	case "field_access":
		object := n.ChildByFieldName("object")
		field := n.ChildByFieldName("field")
		switch field.Kind() {
		case "this":
			return &This{expr: e, Qualifier: compact(b.text(object))}
		case "super":
			return &Super{expr: e, Qualifier: compact(b.text(object))}
		}
		return &Reference{expr: e, Qualifier: b.expression(object), Name: b.text(field)}
	case "method_invocation":
		call := &MethodCall{
			expr: e,
			Name: b.text(n.ChildByFieldName("name")),
			Args: b.arguments(n.ChildByFieldName("arguments")),
		}
		if object := n.ChildByFieldName("object"); object != nil {
			call.Qualifier = b.expression(object)
		}
		if typeArgs := n.ChildByFieldName("type_arguments"); typeArgs != nil {
			call.TypeArgs = b.typeArguments(typeArgs)
		}
		return call
	case "explicit_constructor_invocation":
		constructor := n.ChildByFieldName("constructor")
		return &MethodCall{
			expr:              e,
			Name:              constructor.Kind(),
			Args:              b.arguments(n.ChildByFieldName("arguments")),
			IsConstructorCall: true,
			IsSuper:           constructor.Kind() == "super",
		}
	case "object_creation_expression":
		return b.newExpression(n, e)
	case "array_creation_expression":
		return b.newArray(n, e)
	case "array_initializer":
		return b.arrayInit(n, nil)
	case "array_access":
		return &ArrayAccess{
			expr:  e,
			Array: b.expression(n.ChildByFieldName("array")),
			Index: b.expression(n.ChildByFieldName("index")),
		}
	case "assignment_expression":
		return &Assignment{
			expr:  e,
			Op:    b.text(n.ChildByFieldName("operator")),
			Left:  b.expression(n.ChildByFieldName("left")),
			Right: b.expression(n.ChildByFieldName("right")),
		}
	case "binary_expression":
		return &Binary{
			expr:  e,
			Op:    b.text(n.ChildByFieldName("operator")),
			Left:  b.expression(n.ChildByFieldName("left")),
			Right: b.expression(n.ChildByFieldName("right")),
		}
	case "unary_expression":
		return &Unary{
			expr:    e,
			Op:      b.text(n.ChildByFieldName("operator")),
			Operand: b.expression(n.ChildByFieldName("operand")),
		}
	case "update_expression":
		first := n.Child(0)
		if first.Kind() == "++" || first.Kind() == "--" {
			return &Unary{expr: e, Op: first.Kind(), Operand: b.expression(firstNamed(n))}
		}
		return &Unary{expr: e, Op: n.Child(n.ChildCount() - 1).Kind(), Operand: b.expression(first), Postfix: true}
	case "cast_expression":
		return &Cast{
			expr:   e,
			Target: b.typ(n.ChildByFieldName("type")),
			Value:  b.expression(n.ChildByFieldName("value")),
		}
	case "instanceof_expression":
		return &InstanceOf{
			expr:    e,
			Value:   b.expression(n.ChildByFieldName("left")),
			Target:  b.typ(n.ChildByFieldName("right")),
			Binding: b.text(n.ChildByFieldName("name")),
		}
	case "ternary_expression":
		return &Conditional{
			expr:      e,
			Condition: b.expression(n.ChildByFieldName("condition")),
			Then:      b.expression(n.ChildByFieldName("consequence")),
			Else:      b.expression(n.ChildByFieldName("alternative")),
		}
	case "parenthesized_expression":
		return &Parenthesized{expr: e, Inner: b.expression(firstNamed(n))}
	case "lambda_expression":
		return b.lambda(n, e)
	case "method_reference":
		ref := &MethodReference{expr: e}
		seenColons := false
		IterateChildren(n, func(child *tree_sitter.Node) {
			switch {
			case child.Kind() == "::":
				seenColons = true
			case !seenColons:
				ref.Qualifier = compact(b.text(child))
			case child.Kind() == "identifier" || child.Kind() == "new":
				ref.Name = b.text(child)
			}
		})
		return ref
	case "class_literal":
		return &ClassLiteral{expr: e, Target: b.typ(firstNamed(n))}
	case "switch_expression":
		return &SwitchExpression{expr: e, Switch: b.switchBlock(n)}
	}
	return &UnknownExpression{expr: e, Kind: n.Kind()}
}

func (b *builder) newExpression(n *tree_sitter.Node, e expr) *New {
	typeNode := n.ChildByFieldName("type")
	nw := &New{
		expr:  e,
		Class: b.typ(typeNode),
		Args:  b.arguments(n.ChildByFieldName("arguments")),
	}
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch {
		case child.Kind() == "class_body":
			nw.Body = b.anonymousClass(child, nw.Class)
		case child.IsNamed() && !isComment(child) && typeNode != nil && child.EndByte() <= typeNode.StartByte() &&
			child.Kind() != "type_arguments" && nw.Outer == nil:
			nw.Outer = b.expression(child)
		}
	})
	return nw
}

func (b *builder) newArray(n *tree_sitter.Node, e expr) *NewArray {
	na := &NewArray{expr: e, Elem: b.typ(n.ChildByFieldName("type"))}
	for _, child := range fieldChildren(n, "dimensions") {
		switch child.Kind() {
		case "dimensions_expr":
			na.Dimensions = append(na.Dimensions, b.expression(firstNamed(child)))
		case "dimensions":
			na.ExtraDims += dimensionCount(b.text(child))
		}
	}
	if value := n.ChildByFieldName("value"); value != nil {
		na.Init = b.arrayInit(value, arrayOf(na.Elem, len(na.Dimensions)+na.ExtraDims))
	}
	return na
}

// arrayInit builds an array initializer. ty is the array type when the context declares it.
func (b *builder) arrayInit(n *tree_sitter.Node, ty *Type) *ArrayInit {
	init := &ArrayInit{expr: expr{node: b.node(n), ResolvedType: ty}}
	var elem *Type
	if ty != nil {
		elem = ty.Elem
	}
	for _, child := range namedChildren(n) {
		if child.Kind() == "array_initializer" {
			init.Elements = append(init.Elements, b.arrayInit(child, elem))
			continue
		}
		init.Elements = append(init.Elements, b.expression(child))
	}
	return init
}

func (b *builder) lambda(n *tree_sitter.Node, e expr) *Lambda {
	l := &Lambda{expr: e}
	params := n.ChildByFieldName("parameters")
	switch params.Kind() {
	case "identifier":
		l.Params = []*Parameter{{node: b.node(params), Name: b.text(params)}}
	case "formal_parameters":
		l.Params = b.formalParameters(params)
	case "inferred_parameters":
		IterateChildren(params, func(child *tree_sitter.Node) {
			if child.Kind() == "identifier" {
				l.Params = append(l.Params, &Parameter{node: b.node(child), Name: b.text(child)})
			}
		})
	}
	body := n.ChildByFieldName("body")
	if body.Kind() == "block" {
		l.Body = b.block(body)
	} else {
		l.Body = b.expression(body)
	}
	return l
}
