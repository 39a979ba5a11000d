package javaast

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

func (b *builder) block(n *tree_sitter.Node) *Block {
	if n == nil {
		return nil
	}
	block := &Block{node: b.node(n), Statements: []Statement{}}
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		// ignored
		case "{":
		case "}":
		default:
			if child.IsNamed() || child.Kind() == ";" {
				block.Statements = append(block.Statements, b.statement(child))
			}
		}
	})
	return block
}

// body builds a loop or branch body, which may be any statement
func (b *builder) body(n *tree_sitter.Node) Statement {
	if n == nil {
		return nil
	}
	return b.statement(n)
}

// condition unwraps the mandatory parentheses of if, while and switch headers
func (b *builder) condition(n *tree_sitter.Node) Expression {
	if n == nil {
		return nil
	}
	if n.Kind() == "parenthesized_expression" {
		return b.expression(firstNamed(n))
	}
	return b.expression(n)
}

func (b *builder) statement(n *tree_sitter.Node) Statement {
	switch n.Kind() {
	case "block":
		return b.block(n)
	case "local_variable_declaration":
		return b.localVariableDeclaration(n)
	case "expression_statement":
		return &ExpressionStatement{node: b.node(n), Expr: b.expression(firstNamed(n))}
	case "explicit_constructor_invocation":
		return &ExpressionStatement{node: b.node(n), Expr: b.expression(n)}
	case "if_statement":
		return &If{
			node:      b.node(n),
			Condition: b.condition(n.ChildByFieldName("condition")),
			Then:      b.body(n.ChildByFieldName("consequence")),
			Else:      b.body(n.ChildByFieldName("alternative")),
		}
	case "while_statement":
		return &While{
			node:      b.node(n),
			Condition: b.condition(n.ChildByFieldName("condition")),
			Body:      b.body(n.ChildByFieldName("body")),
		}
	case "do_statement":
		return &DoWhile{
			node:      b.node(n),
			Body:      b.body(n.ChildByFieldName("body")),
			Condition: b.condition(n.ChildByFieldName("condition")),
		}
	case "for_statement":
		return b.forStatement(n)
	case "enhanced_for_statement":
		return b.forEachStatement(n)
	case "return_statement":
		return &Return{node: b.node(n), Value: b.expression(firstNamed(n))}
	case "break_statement":
		return &Break{node: b.node(n), Label: b.text(firstNamed(n))}
	case "continue_statement":
		return &Continue{node: b.node(n), Label: b.text(firstNamed(n))}
	case "throw_statement":
		return &Throw{node: b.node(n), Value: b.expression(firstNamed(n))}
	case "yield_statement":
		return &Yield{node: b.node(n), Value: b.expression(firstNamed(n))}
	case "try_statement", "try_with_resources_statement":
		return b.tryStatement(n)
	case "switch_expression":
		return b.switchBlock(n)
	case "synchronized_statement":
		s := &Synchronized{node: b.node(n), Body: b.block(n.ChildByFieldName("body"))}
		IterateChildren(n, func(child *tree_sitter.Node) {
			if child.Kind() == "parenthesized_expression" {
				s.Lock = b.condition(child)
			}
		})
		return s
	case "labeled_statement":
		children := namedChildren(n)
		return &Labeled{
			node:      b.node(n),
			Label:     b.text(children[0]),
			Statement: b.statement(children[len(children)-1]),
		}
	case "assert_statement":
		children := namedChildren(n)
		a := &Assert{node: b.node(n), Condition: b.expression(children[0])}
		if len(children) > 1 {
			a.Detail = b.expression(children[1])
		}
		return a
	case ";":
		return &EmptyStatement{node: b.node(n)}
	case "line_comment", "block_comment":
		return &Comment{node: b.node(n)}
	default:
		if isClassDeclaration(n.Kind()) {
			c := b.classDeclaration(n)
			c.Local = true
			return &LocalClassDeclaration{node: b.node(n), Class: c}
		}
	}
	return &UnknownStatement{node: b.node(n), Kind: n.Kind()}
}

func (b *builder) localVariableDeclaration(n *tree_sitter.Node) *LocalVariableDeclaration {
	decl := &LocalVariableDeclaration{node: b.node(n)}
	var mods Modifiers
	var annotations []*Annotation
	var ty *Type
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "modifiers":
			mods, annotations = b.modifiers(child)
		case "variable_declarator":
			name, varType, init := b.declarator(child, ty)
			decl.Variables = append(decl.Variables, &LocalVariable{
				node:        b.node(child),
				annotated:   annotated{Annotations: annotations},
				Name:        name,
				Modifiers:   mods,
				Type:        varType,
				Initializer: init,
			})
		default:
			if isTypeKind(child.Kind()) {
				ty = b.typ(child)
			}
		}
	})
	return decl
}

func (b *builder) forStatement(n *tree_sitter.Node) *For {
	f := &For{node: b.node(n)}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch n.FieldNameForChild(uint32(i)) {
		case "init":
			if child.Kind() == "local_variable_declaration" {
				f.Init = append(f.Init, b.localVariableDeclaration(child))
			} else {
				f.Init = append(f.Init, &ExpressionStatement{node: b.node(child), Expr: b.expression(child)})
			}
		case "condition":
			f.Condition = b.expression(child)
		case "update":
			f.Update = append(f.Update, b.expression(child))
		case "body":
			f.Body = b.statement(child)
		}
	}
	return f
}

func (b *builder) forEachStatement(n *tree_sitter.Node) *ForEach {
	v := &LocalVariable{
		node: b.node(n.ChildByFieldName("name")),
		Name: b.text(n.ChildByFieldName("name")),
		Type: b.typ(n.ChildByFieldName("type")),
	}
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "modifiers":
			v.Modifiers, v.Annotations = b.modifiers(child)
		case "dimensions":
			v.Type = arrayOf(v.Type, dimensionCount(b.text(child)))
		}
	})
	return &ForEach{
		node:     b.node(n),
		Variable: v,
		Iterable: b.expression(n.ChildByFieldName("value")),
		Body:     b.body(n.ChildByFieldName("body")),
	}
}

func (b *builder) tryStatement(n *tree_sitter.Node) *Try {
	t := &Try{node: b.node(n)}
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "resource_specification":
			IterateChildren(child, func(resource *tree_sitter.Node) {
				if resource.Kind() == "resource" {
					t.Resources = append(t.Resources, b.resource(resource))
				}
			})
		case "block":
			t.Block = b.block(child)
		case "catch_clause":
			t.Catches = append(t.Catches, b.catchClause(child))
		case "finally_clause":
			t.Finally = b.block(firstNamed(child))
		}
	})
	return t
}

// resource builds a try resource. Resources naming an existing variable have no name.
func (b *builder) resource(n *tree_sitter.Node) *LocalVariable {
	name := n.ChildByFieldName("name")
	if name == nil {
		return &LocalVariable{node: b.node(n), Initializer: b.expression(firstNamed(n))}
	}
	v := &LocalVariable{
		node:        b.node(n),
		Name:        b.text(name),
		Type:        b.typ(n.ChildByFieldName("type")),
		Initializer: b.expression(n.ChildByFieldName("value")),
	}
	IterateChildren(n, func(child *tree_sitter.Node) {
		if child.Kind() == "modifiers" {
			v.Modifiers, v.Annotations = b.modifiers(child)
		}
	})
	return v
}

func (b *builder) catchClause(n *tree_sitter.Node) *Catch {
	c := &Catch{node: b.node(n), Body: b.block(n.ChildByFieldName("body"))}
	IterateChildren(n, func(child *tree_sitter.Node) {
		if child.Kind() != "catch_formal_parameter" {
			return
		}
		p := &Parameter{node: b.node(child)}
		IterateChildren(child, func(part *tree_sitter.Node) {
			switch part.Kind() {
			case "modifiers":
				p.Modifiers, p.Annotations = b.modifiers(part)
			case "catch_type":
				p.CatchTypes = b.typesIn(part)
			case "identifier":
				p.Name = b.text(part)
			}
		})
		if len(p.CatchTypes) > 0 {
			p.Type = p.CatchTypes[0]
		}
		c.Param = p
	})
	return c
}

func (b *builder) switchBlock(n *tree_sitter.Node) *Switch {
	s := &Switch{node: b.node(n), Subject: b.condition(n.ChildByFieldName("condition"))}
	body := n.ChildByFieldName("body")
	if body == nil {
		return s
	}
	IterateChildren(body, func(child *tree_sitter.Node) {
		switch child.Kind() {
		case "switch_block_statement_group":
			sc := &SwitchCase{node: b.node(child)}
			IterateChildren(child, func(part *tree_sitter.Node) {
				switch part.Kind() {
				case "switch_label":
					b.switchLabel(part, sc)
				case ":":
				default:
					if part.IsNamed() {
						sc.Body = append(sc.Body, b.statement(part))
					}
				}
			})
			s.Cases = append(s.Cases, sc)
		case "switch_rule":
			sc := &SwitchCase{node: b.node(child), Arrow: true}
			IterateChildren(child, func(part *tree_sitter.Node) {
				switch part.Kind() {
				case "switch_label":
					b.switchLabel(part, sc)
				case "->":
				default:
					if part.IsNamed() {
						sc.Body = append(sc.Body, b.statement(part))
					}
				}
			})
			s.Cases = append(s.Cases, sc)
		}
	})
	return s
}

func (b *builder) switchLabel(n *tree_sitter.Node, sc *SwitchCase) {
	IterateChildren(n, func(child *tree_sitter.Node) {
		switch {
		case child.Kind() == "default":
			sc.Default = true
		case child.IsNamed() && !isComment(child):
			sc.Labels = append(sc.Labels, b.expression(child))
		}
	})
}
