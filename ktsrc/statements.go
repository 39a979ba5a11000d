package ktsrc

import (
	"strings"
)

// Statement nodes

type (
	// Block is a brace delimited statement list. A block with no statements renders "" unless
	// NotEmpty is set, in which case it renders as an empty pair of braces.
	Block struct {
		Statements []Statement
		NotEmpty   bool
	}

	// LocalVariable is a val or var declaration inside a body
	LocalVariable struct {
		notEmpty
		Name        *Identifier
		Ty          Type
		Initializer Expression
		IsVal       bool
		SpecifyType bool
	}

	// DeclarationStatement groups the variables declared by one Java declaration
	DeclarationStatement struct {
		notEmpty
		Elements []*LocalVariable
	}

	ReturnStatement struct {
		notEmpty
		Value Expression
		Label *Identifier
	}

	ThrowStatement struct {
		notEmpty
		Value Expression
	}

	BreakStatement struct {
		notEmpty
		Label *Identifier
	}

	ContinueStatement struct {
		notEmpty
		Label *Identifier
	}

	IfStatement struct {
		notEmpty
		Condition Expression
		Then      Statement
		Else      Statement
	}

	WhileStatement struct {
		notEmpty
		Condition Expression
		Body      Statement
	}

	DoWhileStatement struct {
		notEmpty
		Condition Expression
		Body      Statement
	}

	// ForeachStatement is Kotlin's only for loop: `for (x in xs)`
	ForeachStatement struct {
		notEmpty
		Variable *Identifier
		Iterable Expression
		Body     Statement
	}

	TryStatement struct {
		notEmpty
		Block   *Block
		Catches []*CatchStatement
		Finally *Block
	}

	CatchStatement struct {
		notEmpty
		Variable *Parameter
		Block    *Block
	}

	// WhenStatement is the rendering of a Java switch
	WhenStatement struct {
		notEmpty
		Subject Expression
		Entries []*WhenEntry
	}

	// WhenEntry is one branch of a when. No conditions means `else`.
	WhenEntry struct {
		notEmpty
		Conditions []Expression
		Body       Statement
	}

	SynchronizedStatement struct {
		notEmpty
		Lock Expression
		Body *Block
	}

	LabelStatement struct {
		notEmpty
		Label     *Identifier
		Statement Statement
	}

	AssertStatement struct {
		notEmpty
		Condition Expression
		Detail    Expression
	}
)

// EmptyBlock is a block that renders as nothing
var EmptyBlock = &Block{}

// NewBlock builds a block that renders braces even when it has no statements
func NewBlock(statements ...Statement) *Block {
	return &Block{Statements: statements, NotEmpty: true}
}

func (b *Block) statements() []Statement {
	if b == nil {
		return nil
	}
	return b.Statements
}

func (b *Block) IsEmpty() bool {
	return b == nil || (len(b.Statements) == 0 && !b.NotEmpty)
}

func (b *Block) ToSource() string {
	if b.IsEmpty() {
		return ""
	}
	return braced(JoinSource(b.Statements, "\n"))
}

// withStatements returns a copy of the block with extra statements around the original ones
func (b *Block) withStatements(before, after []Statement) *Block {
	if len(before) == 0 && len(after) == 0 {
		return b
	}
	statements := make([]Statement, 0, len(before)+len(b.statements())+len(after))
	statements = append(statements, before...)
	statements = append(statements, b.statements()...)
	statements = append(statements, after...)
	return &Block{Statements: statements, NotEmpty: true}
}

func (v *LocalVariable) ToSource() string {
	sb := strings.Builder{}
	if v.IsVal {
		sb.WriteString("val ")
	} else {
		sb.WriteString("var ")
	}
	sb.WriteString(v.Name.ToSource())
	hasInitializer := v.Initializer != nil && !v.Initializer.IsEmpty()
	if (v.SpecifyType || !hasInitializer) && !v.Ty.IsEmpty() {
		sb.WriteString(": ")
		sb.WriteString(v.Ty.ToSource())
	}
	if hasInitializer {
		sb.WriteString(" = ")
		sb.WriteString(v.Initializer.ToSource())
	}
	return sb.String()
}

func (d *DeclarationStatement) ToSource() string {
	return JoinSource(d.Elements, "\n")
}

func (s *ReturnStatement) ToSource() string {
	label := ""
	if !s.Label.IsEmpty() {
		label = "@" + s.Label.ToSource()
	}
	if s.Value == nil {
		return "return" + label
	}
	return "return" + label + WithPrefix(" ", s.Value)
}

func (s *ThrowStatement) ToSource() string {
	return "throw " + s.Value.ToSource()
}

func (s *BreakStatement) ToSource() string {
	return "break" + WithPrefix("@", s.Label)
}

func (s *ContinueStatement) ToSource() string {
	return "continue" + WithPrefix("@", s.Label)
}

// statementBody renders a loop or branch body, an empty body becomes braces
func statementBody(s Statement) string {
	if s == nil || s.IsEmpty() {
		return "{\n}"
	}
	return s.ToSource()
}

func (s *IfStatement) ToSource() string {
	sb := strings.Builder{}
	sb.WriteString("if (")
	sb.WriteString(s.Condition.ToSource())
	sb.WriteString(") ")
	sb.WriteString(statementBody(s.Then))
	if s.Else != nil && !s.Else.IsEmpty() {
		if _, isBlock := s.Then.(*Block); !isBlock {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString("else ")
		sb.WriteString(s.Else.ToSource())
	}
	return sb.String()
}

func (s *WhileStatement) ToSource() string {
	return "while (" + s.Condition.ToSource() + ") " + statementBody(s.Body)
}

func (s *DoWhileStatement) ToSource() string {
	return "do " + statementBody(s.Body) + " while (" + s.Condition.ToSource() + ")"
}

func (s *ForeachStatement) ToSource() string {
	return "for (" + s.Variable.ToSource() + " in " + s.Iterable.ToSource() + ") " + statementBody(s.Body)
}

func (s *TryStatement) ToSource() string {
	sb := strings.Builder{}
	sb.WriteString("try ")
	sb.WriteString(statementBody(s.Block))
	for _, catch := range s.Catches {
		sb.WriteString(" ")
		sb.WriteString(catch.ToSource())
	}
	if !s.Finally.IsEmpty() {
		sb.WriteString(" finally ")
		sb.WriteString(s.Finally.ToSource())
	}
	return sb.String()
}

func (c *CatchStatement) ToSource() string {
	return "catch (" + c.Variable.ToSource() + ") " + statementBody(c.Block)
}

// IsNullable lets a when stand in for a switch expression
func (s *WhenStatement) IsNullable() bool {
	return false
}

func (s *WhenStatement) ToSource() string {
	return "when (" + s.Subject.ToSource() + ") " + braced(JoinSource(s.Entries, "\n"))
}

func (e *WhenEntry) ToSource() string {
	conditions := "else"
	if len(e.Conditions) > 0 {
		conditions = JoinSource(e.Conditions, ", ")
	}
	return conditions + " -> " + statementBody(e.Body)
}

func (s *SynchronizedStatement) ToSource() string {
	return "synchronized (" + s.Lock.ToSource() + ") " + statementBody(s.Body)
}

func (s *LabelStatement) ToSource() string {
	return s.Label.ToSource() + "@ " + s.Statement.ToSource()
}

func (s *AssertStatement) ToSource() string {
	if s.Detail == nil || s.Detail.IsEmpty() {
		return "assert(" + s.Condition.ToSource() + ")"
	}
	return "assert(" + s.Condition.ToSource() + ") { " + s.Detail.ToSource() + " }"
}
