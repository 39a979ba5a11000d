package javaast

// Inspect traverses the subtree rooted at n in depth-first order. It calls fn for every node and
// descends into its children only when fn returns true. Class bodies of anonymous and local
// classes are part of the subtree.
func Inspect(n Node, fn func(Node) bool) {
	if isNil(n) || !fn(n) {
		return
	}
	for _, child := range children(n) {
		Inspect(child, fn)
	}
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Block:
		return v == nil
	case *Class:
		return v == nil
	case *LocalVariable:
		return v == nil
	case *ArrayInit:
		return v == nil
	case *Switch:
		return v == nil
	case *Parameter:
		return v == nil
	}
	return false
}

func children(n Node) []Node {
	var result []Node
	add := func(nodes ...Node) {
		for _, each := range nodes {
			if !isNil(each) {
				result = append(result, each)
			}
		}
	}
	addExpressions := func(exprs []Expression) {
		for _, e := range exprs {
			add(e)
		}
	}
	addStatements := func(stmts []Statement) {
		for _, s := range stmts {
			add(s)
		}
	}
	switch n := n.(type) {
	case *File:
		add(n.Elements...)
	case *Class:
		for _, m := range n.Members {
			add(m)
		}
	case *Field:
		add(n.Initializer)
	case *EnumConstant:
		addExpressions(n.Args)
		add(n.Body)
	case *Method:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *ClassInitializer:
		add(n.Body)

	case *Block:
		addStatements(n.Statements)
	case *LocalVariable:
		add(n.Initializer)
	case *LocalVariableDeclaration:
		for _, v := range n.Variables {
			add(v)
		}
	case *LocalClassDeclaration:
		add(n.Class)
	case *ExpressionStatement:
		add(n.Expr)
	case *If:
		add(n.Condition, n.Then, n.Else)
	case *While:
		add(n.Condition, n.Body)
	case *DoWhile:
		add(n.Body, n.Condition)
	case *For:
		addStatements(n.Init)
		add(n.Condition)
		addExpressions(n.Update)
		add(n.Body)
	case *ForEach:
		add(n.Variable, n.Iterable, n.Body)
	case *Return:
		add(n.Value)
	case *Throw:
		add(n.Value)
	case *Yield:
		add(n.Value)
	case *Try:
		for _, resource := range n.Resources {
			add(resource)
		}
		add(n.Block)
		for _, catch := range n.Catches {
			add(catch.Param, catch.Body)
		}
		add(n.Finally)
	case *Switch:
		add(n.Subject)
		for _, sc := range n.Cases {
			addExpressions(sc.Labels)
			addStatements(sc.Body)
		}
	case *Synchronized:
		add(n.Lock, n.Body)
	case *Labeled:
		add(n.Statement)
	case *Assert:
		add(n.Condition, n.Detail)

	case *Reference:
		add(n.Qualifier)
	case *MethodCall:
		add(n.Qualifier)
		addExpressions(n.Args)
	case *New:
		add(n.Outer)
		addExpressions(n.Args)
		add(n.Body)
	case *NewArray:
		addExpressions(n.Dimensions)
		add(n.Init)
	case *ArrayInit:
		addExpressions(n.Elements)
	case *ArrayAccess:
		add(n.Array, n.Index)
	case *Assignment:
		add(n.Left, n.Right)
	case *Binary:
		add(n.Left, n.Right)
	case *Unary:
		add(n.Operand)
	case *Cast:
		add(n.Value)
	case *InstanceOf:
		add(n.Value)
	case *Conditional:
		add(n.Condition, n.Then, n.Else)
	case *Parenthesized:
		add(n.Inner)
	case *Lambda:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *SwitchExpression:
		add(n.Switch)
	}
	return result
}

// Children returns the direct children of n in source order
func Children(n Node) []Node {
	if isNil(n) {
		return nil
	}
	return children(n)
}
