// Package ktsrc provide type safe way to represent kotlin source code along with way
// to convert them to actual kotlin source code
package ktsrc

import (
	"strings"
)

const (
	// SecondaryReceiver is the local that holds the object built by a secondary constructor
	SecondaryReceiver = "__"
	// FactoryName is the companion function a secondary constructor is rendered as
	FactoryName = "create"
	indentUnit  = "    "
)

// Interfaces for source elements

type (
	// SourceElement represents any element that can be converted to Kotlin source
	SourceElement interface {
		ToSource() string
	}

	// Element is a source element that may stand in for an absent construct
	Element interface {
		SourceElement
		IsEmpty() bool
	}

	// Statement represents a Kotlin statement
	Statement interface {
		Element
	}

	// Expression represents a Kotlin expression
	Expression interface {
		Element
		IsNullable() bool
	}
)

type notEmpty struct{}

func (notEmpty) IsEmpty() bool { return false }

type notNullable struct{}

func (notNullable) IsNullable() bool { return false }

type empty struct {
	kind string
}

func (empty) ToSource() string { return "" }
func (empty) IsEmpty() bool    { return true }
func (empty) IsNullable() bool { return false }
func (e empty) String() string { return "EMPTY_" + e.kind }

// Sentinels for absent constructs. They render to the empty string and compare equal only to
// themselves.
var (
	EmptyElement    Element    = empty{"ELEMENT"}
	EmptyStatement  Statement  = empty{"STATEMENT"}
	EmptyExpression Expression = empty{"EXPRESSION"}
)

// IsSentinel reports whether e is one of the EMPTY sentinels
func IsSentinel(e SourceElement) bool {
	switch e {
	case EmptyElement, EmptyStatement, EmptyExpression:
		return true
	}
	return false
}

// RemoveEmpty drops the EMPTY sentinels from a list keeping everything else in order
func RemoveEmpty[T SourceElement](elements []T) []T {
	result := make([]T, 0, len(elements))
	for _, e := range elements {
		if IsSentinel(e) {
			continue
		}
		result = append(result, e)
	}
	return result
}

type (
	// Identifier is a name, quoted with backticks when it collides with a Kotlin keyword
	Identifier struct {
		Name     string
		Nullable bool
	}

	// Comment carries a source comment verbatim
	Comment struct {
		notEmpty
		Text string
	}

	// WhiteSpace carries source whitespace verbatim. List joins never put a separator next to it.
	WhiteSpace struct {
		notEmpty
		Text string
	}

	// DummyStringExpression is raw text used where no structured node exists
	DummyStringExpression struct {
		notEmpty
		notNullable
		Text string
	}
)

// NewIdentifier builds a not nullable identifier
func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

func (i *Identifier) ToSource() string {
	if i == nil || i.Name == "" {
		return ""
	}
	return QuoteKeyword(i.Name)
}

func (i *Identifier) IsEmpty() bool {
	return i == nil || i.Name == ""
}

func (i *Identifier) IsNullable() bool {
	return i != nil && i.Nullable
}

func (c *Comment) ToSource() string {
	return c.Text
}

func (w *WhiteSpace) ToSource() string {
	return w.Text
}

func (d *DummyStringExpression) ToSource() string {
	return d.Text
}

// DummyString wraps raw text as an expression
func DummyString(text string) *DummyStringExpression {
	return &DummyStringExpression{Text: text}
}

func isWhiteSpace(e SourceElement) bool {
	_, ok := e.(*WhiteSpace)
	return ok
}

// Join renders nodes one after another. The prefix and suffix are written once when the list
// is not empty. A separator is written before a node unless the node itself, or one of its
// neighbours, is WhiteSpace, and never before the first node that produced text.
func Join[T SourceElement](nodes []T, separator, prefix, suffix string) string {
	if len(nodes) == 0 {
		return ""
	}
	sb := strings.Builder{}
	sb.WriteString(prefix)
	first := true
	for i, node := range nodes {
		ws := isWhiteSpace(node)
		prevWS := i > 0 && isWhiteSpace(nodes[i-1])
		nextWS := i+1 < len(nodes) && isWhiteSpace(nodes[i+1])
		if !first && !ws && !prevWS && !nextWS {
			sb.WriteString(separator)
		}
		if !ws {
			first = false
		}
		sb.WriteString(node.ToSource())
	}
	sb.WriteString(suffix)
	return sb.String()
}

// JoinSource is Join without prefix and suffix
func JoinSource[T SourceElement](nodes []T, separator string) string {
	return Join(nodes, separator, "", "")
}

// WithPrefix renders node prefixed with prefix, or nothing when node renders empty
func WithPrefix(prefix string, node SourceElement) string {
	text := node.ToSource()
	if text == "" {
		return ""
	}
	return prefix + text
}

// Indent prefixes every non blank line of text with one indentation unit
func Indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = indentUnit + line
	}
	return strings.Join(lines, "\n")
}

// braced renders a brace delimited body, or "{\n}" when body is empty
func braced(body string) string {
	if body == "" {
		return "{\n}"
	}
	return "{\n" + Indent(body) + "\n}"
}

var keywords = map[string]bool{
	"as":        true,
	"break":     true,
	"class":     true,
	"continue":  true,
	"do":        true,
	"else":      true,
	"false":     true,
	"for":       true,
	"fun":       true,
	"if":        true,
	"in":        true,
	"interface": true,
	"is":        true,
	"null":      true,
	"object":    true,
	"package":   true,
	"return":    true,
	"super":     true,
	"this":      true,
	"throw":     true,
	"true":      true,
	"try":       true,
	"typealias": true,
	"typeof":    true,
	"val":       true,
	"var":       true,
	"when":      true,
	"while":     true,
}

// IsKeyword reports whether name is a hard Kotlin keyword
func IsKeyword(name string) bool {
	return keywords[name]
}

// QuoteKeyword wraps name in backticks when it is a Kotlin keyword
func QuoteKeyword(name string) string {
	if IsKeyword(name) {
		return "`" + name + "`"
	}
	return name
}

// QuoteQualifiedName quotes every keyword segment of a dotted name
func QuoteQualifiedName(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = QuoteKeyword(part)
	}
	return strings.Join(parts, ".")
}
