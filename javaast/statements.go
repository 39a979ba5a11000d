package javaast

// Statement is a closed set of Java statement variants
type Statement interface {
	Node
	statement()
}

type (
	Block struct {
		node
		Statements []Statement
	}

	// LocalVariable is one variable introduced by a declaration, a for header, a catch clause
	// or a try-with-resources header
	LocalVariable struct {
		node
		annotated
		Name        string
		Modifiers   Modifiers
		Type        *Type
		Initializer Expression
		// Pattern is the instanceof test that binds the variable, as in o instanceof String s
		Pattern *InstanceOf
	}

	LocalVariableDeclaration struct {
		node
		Variables []*LocalVariable
	}

	LocalClassDeclaration struct {
		node
		Class *Class
	}

	ExpressionStatement struct {
		node
		Expr Expression
	}

	If struct {
		node
		Condition Expression
		Then      Statement
		Else      Statement
	}

	While struct {
		node
		Condition Expression
		Body      Statement
	}

	DoWhile struct {
		node
		Body      Statement
		Condition Expression
	}

	For struct {
		node
		Init      []Statement
		Condition Expression
		Update    []Expression
		Body      Statement
	}

	ForEach struct {
		node
		Variable *LocalVariable
		Iterable Expression
		Body     Statement
	}

	Return struct {
		node
		Value Expression
	}

	Break struct {
		node
		Label string
	}

	Continue struct {
		node
		Label string
	}

	Throw struct {
		node
		Value Expression
	}

	Try struct {
		node
		Resources []*LocalVariable
		Block     *Block
		Catches   []*Catch
		Finally   *Block
	}

	Catch struct {
		node
		Param *Parameter
		Body  *Block
	}

	Switch struct {
		node
		Subject Expression
		Cases   []*SwitchCase
	}

	// SwitchCase is a group of labels with the statements that follow them. Arrow is set for
	// `case X ->` rules, which never fall through.
	SwitchCase struct {
		node
		Labels  []Expression
		Default bool
		Arrow   bool
		Body    []Statement
	}

	Synchronized struct {
		node
		Lock Expression
		Body *Block
	}

	Labeled struct {
		node
		Label     string
		Statement Statement
	}

	Assert struct {
		node
		Condition Expression
		Detail    Expression
	}

	Yield struct {
		node
		Value Expression
	}

	EmptyStatement struct {
		node
	}

	// UnknownStatement keeps the text of a construct the model does not cover
	UnknownStatement struct {
		node
		Kind string
	}
)

func (*Block) statement()                    {}
func (*LocalVariableDeclaration) statement() {}
func (*LocalClassDeclaration) statement()    {}
func (*ExpressionStatement) statement()      {}
func (*If) statement()                       {}
func (*While) statement()                    {}
func (*DoWhile) statement()                  {}
func (*For) statement()                      {}
func (*ForEach) statement()                  {}
func (*Return) statement()                   {}
func (*Break) statement()                    {}
func (*Continue) statement()                 {}
func (*Throw) statement()                    {}
func (*Try) statement()                      {}
func (*Switch) statement()                   {}
func (*Synchronized) statement()             {}
func (*Labeled) statement()                  {}
func (*Assert) statement()                   {}
func (*Yield) statement()                    {}
func (*EmptyStatement) statement()           {}
func (*UnknownStatement) statement()         {}
func (*Comment) statement()                  {}
