package java

import (
	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

// blockToBlock converts a block. A nil block converts to the empty block; notEmpty keeps the
// braces of a block without statements.
func (ctx *MigrationContext) blockToBlock(b *javaast.Block, notEmpty bool) *ktsrc.Block {
	if b == nil {
		return ktsrc.EmptyBlock
	}
	return &ktsrc.Block{Statements: ctx.statementsToStatements(b.Statements), NotEmpty: notEmpty}
}

func (ctx *MigrationContext) statementsToStatements(statements []javaast.Statement) []ktsrc.Statement {
	var result []ktsrc.Statement
	for _, s := range statements {
		result = append(result, ctx.convertStatement(s)...)
	}
	return ktsrc.RemoveEmpty(result)
}

// bodyToStatement converts the body of a branch or a loop
func (ctx *MigrationContext) bodyToStatement(s javaast.Statement) ktsrc.Statement {
	if b, ok := s.(*javaast.Block); ok {
		return ctx.blockToBlock(b, true)
	}
	return ctx.statementToStatement(s)
}

// statementToStatement converts s where exactly one statement is expected
func (ctx *MigrationContext) statementToStatement(s javaast.Statement) ktsrc.Statement {
	if s == nil {
		return ktsrc.EmptyStatement
	}
	return singleStatement(ktsrc.RemoveEmpty(ctx.convertStatement(s)))
}

func singleStatement(statements []ktsrc.Statement) ktsrc.Statement {
	switch len(statements) {
	case 0:
		return ktsrc.EmptyStatement
	case 1:
		switch statements[0].(type) {
		case *ktsrc.LocalVariable, *ktsrc.DeclarationStatement:
		default:
			return statements[0]
		}
	}
	return ktsrc.NewBlock(statements...)
}

// convertStatement converts one Java statement into zero or more Kotlin statements
func (ctx *MigrationContext) convertStatement(s javaast.Statement) []ktsrc.Statement {
	switch s := s.(type) {
	case *javaast.Block:
		lambda := &ktsrc.LambdaExpression{Body: &ktsrc.Block{Statements: ctx.statementsToStatements(s.Statements)}}
		return []ktsrc.Statement{ktsrc.DummyString("run " + lambda.ToSource())}
	case *javaast.LocalVariableDeclaration:
		return ctx.localVariables(s)
	case *javaast.LocalClassDeclaration:
		return []ktsrc.Statement{ctx.classToClass(s.Class)}
	case *javaast.ExpressionStatement:
		if call, ok := s.Expr.(*javaast.MethodCall); ok && call.IsConstructorCall {
			return ctx.constructorCallStatement(call)
		}
		return []ktsrc.Statement{ctx.expressionToExpression(s.Expr)}
	case *javaast.If:
		statement := &ktsrc.IfStatement{
			Condition: ctx.expressionToExpression(s.Condition),
			Then:      ctx.bodyToStatement(s.Then),
		}
		if s.Else != nil {
			statement.Else = ctx.bodyToStatement(s.Else)
		}
		return []ktsrc.Statement{statement}
	case *javaast.While:
		return []ktsrc.Statement{&ktsrc.WhileStatement{
			Condition: ctx.expressionToExpression(s.Condition),
			Body:      ctx.bodyToStatement(s.Body),
		}}
	case *javaast.DoWhile:
		return []ktsrc.Statement{&ktsrc.DoWhileStatement{
			Condition: ctx.expressionToExpression(s.Condition),
			Body:      ctx.bodyToStatement(s.Body),
		}}
	case *javaast.For:
		return ctx.forToStatements(s)
	case *javaast.ForEach:
		return []ktsrc.Statement{&ktsrc.ForeachStatement{
			Variable: ktsrc.NewIdentifier(s.Variable.Name),
			Iterable: ctx.expressionToExpression(s.Iterable),
			Body:     ctx.bodyToStatement(s.Body),
		}}
	case *javaast.Return:
		if s.Value == nil && ctx.InSecondaryConstructor {
			return []ktsrc.Statement{&ktsrc.ReturnStatement{Value: ktsrc.NewIdentifier(ktsrc.SecondaryReceiver)}}
		}
		return []ktsrc.Statement{&ktsrc.ReturnStatement{Value: ctx.expressionToExpressionWithExpected(s.Value, ctx.ReturnType)}}
	case *javaast.Break:
		return []ktsrc.Statement{&ktsrc.BreakStatement{Label: label(s.Label)}}
	case *javaast.Continue:
		return []ktsrc.Statement{&ktsrc.ContinueStatement{Label: label(s.Label)}}
	case *javaast.Throw:
		return []ktsrc.Statement{&ktsrc.ThrowStatement{Value: ctx.expressionToExpression(s.Value)}}
	case *javaast.Try:
		return ctx.tryToStatements(s)
	case *javaast.Switch:
		return []ktsrc.Statement{ctx.switchToWhen(s, false)}
	case *javaast.Synchronized:
		return []ktsrc.Statement{&ktsrc.SynchronizedStatement{
			Lock: ctx.expressionToExpression(s.Lock),
			Body: ctx.blockToBlock(s.Body, true),
		}}
	case *javaast.Labeled:
		return []ktsrc.Statement{&ktsrc.LabelStatement{
			Label:     ktsrc.NewIdentifier(s.Label),
			Statement: ctx.bodyToStatement(s.Statement),
		}}
	case *javaast.Assert:
		return []ktsrc.Statement{&ktsrc.AssertStatement{
			Condition: ctx.expressionToExpression(s.Condition),
			Detail:    ctx.expressionToExpression(s.Detail),
		}}
	case *javaast.Yield:
		return []ktsrc.Statement{ctx.expressionToExpression(s.Value)}
	case *javaast.Comment:
		return []ktsrc.Statement{&ktsrc.Comment{Text: s.Text}}
	case *javaast.EmptyStatement:
		return nil
	case *javaast.UnknownStatement:
		return []ktsrc.Statement{ctx.unsupported(s, s.Kind)}
	}
	return []ktsrc.Statement{ctx.unsupported(s, "statement")}
}

func (ctx *MigrationContext) localVariables(s *javaast.LocalVariableDeclaration) []ktsrc.Statement {
	variables := make([]*ktsrc.LocalVariable, 0, len(s.Variables))
	for _, v := range s.Variables {
		variables = append(variables, &ktsrc.LocalVariable{
			Name:        ktsrc.NewIdentifier(v.Name),
			Ty:          ctx.typeToTypeNotNull(v.Type, ctx.isAnnotatedAsNotNull(v)),
			Initializer: ctx.expressionToExpressionWithExpected(v.Initializer, v.Type),
			IsVal:       isReadOnly(v, ctx.scope),
			SpecifyType: ctx.Settings.SpecifyLocalVariableTypes,
		})
	}
	if len(variables) == 1 {
		return []ktsrc.Statement{variables[0]}
	}
	return []ktsrc.Statement{&ktsrc.DeclarationStatement{Elements: variables}}
}

// constructorCallStatement converts this(...) and super(...). Base class arguments are
// forwarded in the class header, so super(...) is dropped. In a factory this(...) builds the
// object the rest of the body works on.
func (ctx *MigrationContext) constructorCallStatement(call *javaast.MethodCall) []ktsrc.Statement {
	if call.IsSuper {
		return nil
	}
	if !ctx.InSecondaryConstructor || ctx.Class == nil {
		return []ktsrc.Statement{ctx.unsupported(call, "explicit_constructor_invocation")}
	}
	args := ctx.argumentsToExpressionList(call.Args, call.Target)
	var initializer ktsrc.Expression = &ktsrc.MethodCallExpression{Method: ktsrc.NewIdentifier(ctx.Class.Name), Args: args}
	if call.Target != nil && isSecondaryConstructor(call.Target) {
		initializer = ktsrc.BuildMethodCall(ktsrc.NewIdentifier(ctx.Class.Name), ktsrc.FactoryName, args...)
	}
	return []ktsrc.Statement{&ktsrc.LocalVariable{
		Name:        ktsrc.NewIdentifier(ktsrc.SecondaryReceiver),
		Initializer: initializer,
		IsVal:       true,
	}}
}

// forToStatements converts a counting loop over an int into a range loop, and any other for
// loop into its initializers followed by a while loop
func (ctx *MigrationContext) forToStatements(s *javaast.For) []ktsrc.Statement {
	if loop := ctx.forAsRange(s); loop != nil {
		return []ktsrc.Statement{loop}
	}
	var result []ktsrc.Statement
	for _, init := range s.Init {
		result = append(result, ctx.convertStatement(init)...)
	}
	var condition ktsrc.Expression = ktsrc.Literal("true")
	if s.Condition != nil {
		condition = ctx.expressionToExpression(s.Condition)
	}
	var body []ktsrc.Statement
	if b, ok := s.Body.(*javaast.Block); ok {
		body = ctx.statementsToStatements(b.Statements)
	} else if s.Body != nil {
		body = ktsrc.RemoveEmpty(ctx.convertStatement(s.Body))
	}
	for _, update := range s.Update {
		body = append(body, ctx.expressionToExpression(update))
	}
	return append(result, &ktsrc.WhileStatement{Condition: condition, Body: ktsrc.NewBlock(body...)})
}

func (ctx *MigrationContext) forAsRange(s *javaast.For) *ktsrc.ForeachStatement {
	if len(s.Init) != 1 || len(s.Update) != 1 {
		return nil
	}
	decl, ok := s.Init[0].(*javaast.LocalVariableDeclaration)
	if !ok || len(decl.Variables) != 1 {
		return nil
	}
	v := decl.Variables[0]
	if v.Initializer == nil || v.Type == nil || v.Type.Canonical() != "int" {
		return nil
	}
	condition, ok := javaast.Unparen(s.Condition).(*javaast.Binary)
	if !ok || (condition.Op != "<" && condition.Op != "<=") || !refersTo(condition.Left, v) {
		return nil
	}
	update, ok := javaast.Unparen(s.Update[0]).(*javaast.Unary)
	if !ok || update.Op != "++" || !refersTo(update.Operand, v) {
		return nil
	}
	if countWriteAccesses(v, s.Body) > 0 {
		return nil
	}
	end := ctx.expressionToExpression(condition.Right)
	if condition.Op == "<" {
		end = &ktsrc.BinaryExpression{Left: end, Op: "-", Right: ktsrc.Literal("1")}
	}
	return &ktsrc.ForeachStatement{
		Variable: ktsrc.NewIdentifier(v.Name),
		Iterable: &ktsrc.RangeExpression{Start: ctx.expressionToExpression(v.Initializer), End: end},
		Body:     ctx.bodyToStatement(s.Body),
	}
}

func (ctx *MigrationContext) tryToStatements(s *javaast.Try) []ktsrc.Statement {
	block := ctx.blockToBlock(s.Block, true)
	if len(s.Resources) > 0 {
		block = ktsrc.NewBlock(ctx.useResources(s.Resources, block))
		if len(s.Catches) == 0 && s.Finally == nil {
			return block.Statements
		}
	}
	var catches []*ktsrc.CatchStatement
	for _, c := range s.Catches {
		types := c.Param.CatchTypes
		if len(types) == 0 {
			types = []*javaast.Type{c.Param.Type}
		}
		for _, t := range types {
			catches = append(catches, &ktsrc.CatchStatement{
				Variable: &ktsrc.Parameter{
					Name:     ktsrc.NewIdentifier(c.Param.Name),
					Ty:       ctx.typeToType(t).ConvertedToNotNull(),
					ReadOnly: true,
				},
				Block: ctx.blockToBlock(c.Body, true),
			})
		}
	}
	var finally *ktsrc.Block
	if s.Finally != nil {
		finally = ctx.blockToBlock(s.Finally, true)
	}
	return []ktsrc.Statement{&ktsrc.TryStatement{Block: block, Catches: catches, Finally: finally}}
}

// useResources nests the body in one `use` call per resource, the first resource outermost
func (ctx *MigrationContext) useResources(resources []*javaast.LocalVariable, body *ktsrc.Block) ktsrc.Statement {
	var statement ktsrc.Statement
	for i := len(resources) - 1; i >= 0; i-- {
		resource := resources[i]
		var receiver ktsrc.Expression = ktsrc.NewIdentifier(resource.Name)
		if resource.Initializer != nil {
			receiver = atomic(ctx.expressionToExpression(resource.Initializer))
		}
		lambda := &ktsrc.LambdaExpression{
			Params: []*ktsrc.Identifier{ktsrc.NewIdentifier(resource.Name)},
			Body:   body,
		}
		statement = ktsrc.DummyString(receiver.ToSource() + ".use " + lambda.ToSource())
		body = &ktsrc.Block{Statements: []ktsrc.Statement{statement}}
	}
	return statement
}

// switchToWhen converts a switch statement or expression. Trailing breaks are dropped and the
// default case moves last as the else branch.
func (ctx *MigrationContext) switchToWhen(s *javaast.Switch, asExpression bool) *ktsrc.WhenStatement {
	when := &ktsrc.WhenStatement{Subject: ctx.expressionToExpression(s.Subject)}
	var otherwise *ktsrc.WhenEntry
	for _, c := range switchBranches(s.Cases) {
		body := c.Body
		if n := len(body); n > 0 && !c.Arrow && !asExpression {
			if brk, ok := body[n-1].(*javaast.Break); ok && brk.Label == "" {
				body = body[:n-1]
			}
		}
		entry := &ktsrc.WhenEntry{Body: singleStatement(ctx.statementsToStatements(body))}
		if c.Default {
			otherwise = entry
			continue
		}
		for _, l := range c.Labels {
			entry.Conditions = append(entry.Conditions, ctx.caseLabel(l))
		}
		when.Entries = append(when.Entries, entry)
	}
	if otherwise != nil {
		when.Entries = append(when.Entries, otherwise)
	}
	return when
}

// switchBranches folds fall-through into independent branches. Labels without statements join
// the next case, and a case that does not end in a jump gets the statements of the cases it
// falls into.
func switchBranches(cases []*javaast.SwitchCase) []*javaast.SwitchCase {
	var branches []*javaast.SwitchCase
	var pending *javaast.SwitchCase
	for _, c := range cases {
		branch := &javaast.SwitchCase{Labels: c.Labels, Default: c.Default, Arrow: c.Arrow, Body: caseBody(c)}
		if pending != nil {
			branch.Labels = append(append([]javaast.Expression{}, pending.Labels...), branch.Labels...)
			branch.Default = branch.Default || pending.Default
			pending = nil
		}
		if len(branch.Body) == 0 && !branch.Arrow {
			pending = branch
			continue
		}
		branches = append(branches, branch)
	}
	if pending != nil {
		branches = append(branches, pending)
	}
	for i := len(branches) - 2; i >= 0; i-- {
		branch := branches[i]
		if branch.Arrow || endsInJump(branch.Body) {
			continue
		}
		next := branches[i+1]
		branch.Body = append(append([]javaast.Statement{}, branch.Body...), next.Body...)
	}
	return branches
}

func caseBody(c *javaast.SwitchCase) []javaast.Statement {
	if len(c.Body) == 1 {
		if b, ok := c.Body[0].(*javaast.Block); ok {
			return b.Statements
		}
	}
	return c.Body
}

// endsInJump reports whether control cannot reach past the last statement
func endsInJump(statements []javaast.Statement) bool {
	if len(statements) == 0 {
		return false
	}
	switch last := statements[len(statements)-1].(type) {
	case *javaast.Break, *javaast.Continue, *javaast.Return, *javaast.Throw, *javaast.Yield:
		return true
	case *javaast.Block:
		return endsInJump(last.Statements)
	case *javaast.If:
		return last.Else != nil && endsInJump([]javaast.Statement{last.Then}) && endsInJump([]javaast.Statement{last.Else})
	}
	return false
}

func (ctx *MigrationContext) caseLabel(l javaast.Expression) ktsrc.Expression {
	if ref, ok := l.(*javaast.Reference); ok {
		if entry, ok := enumEntry(ref); ok {
			return entry
		}
	}
	return ctx.expressionToExpression(l)
}
