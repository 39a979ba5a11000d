package java

import (
	"fmt"
	"strings"

	"github.com/heshanpadmasiri/javaKt/diagnostics"
	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

// MigrationContext holds state during Java to Kotlin migration of one compilation unit.
// Class and method level state lives on copies derived with forClass and forMethod, the error
// collector is shared by all of them.
type MigrationContext struct {
	Settings       Settings
	SourceFilePath string // Path to the source Java file
	StrictMode     bool   // If true, migration errors fail the file
	Errors         *diagnostics.Collector
	// ClassIdentifiers are the simple names of every class declared in the file
	ClassIdentifiers map[string]bool

	Strategy               Strategy
	ReturnType             *javaast.Type
	InSecondaryConstructor bool
	Class                  *javaast.Class
	Method                 *javaast.Method
	// scope is the body write accesses of locals are counted in
	scope javaast.Node
}

// NewMigrationContext creates and initializes a new MigrationContext
func NewMigrationContext(settings Settings, sourceFilePath string, strictMode bool) *MigrationContext {
	if settings.TypeMappings == nil {
		settings.TypeMappings = map[string]string{}
	}
	return &MigrationContext{
		Settings:         settings,
		SourceFilePath:   sourceFilePath,
		StrictMode:       strictMode,
		Errors:           &diagnostics.Collector{},
		ClassIdentifiers: make(map[string]bool),
		Strategy:         defaultStrategy{},
	}
}

func (ctx *MigrationContext) forClass(c *javaast.Class) *MigrationContext {
	derived := *ctx
	derived.Class = c
	derived.Method = nil
	derived.ReturnType = nil
	derived.InSecondaryConstructor = false
	derived.Strategy = defaultStrategy{}
	derived.scope = nil
	return &derived
}

func (ctx *MigrationContext) forMethod(m *javaast.Method) *MigrationContext {
	derived := *ctx
	derived.Method = m
	derived.ReturnType = m.ReturnType
	derived.InSecondaryConstructor = false
	derived.Strategy = strategyFor(m)
	derived.scope = m.Body
	return &derived
}

func (ctx *MigrationContext) withScope(scope javaast.Node) *MigrationContext {
	derived := *ctx
	derived.scope = scope
	return &derived
}

// location renders the position of node along with the enclosing class and method
func (ctx *MigrationContext) location(node javaast.Node) string {
	sb := strings.Builder{}
	sb.WriteString(ctx.SourceFilePath)
	if node != nil {
		sb.WriteString(":")
		sb.WriteString(node.Pos().String())
	}
	if ctx.Class != nil {
		name := ctx.Class.Name
		if ctx.Class.Anonymous {
			name = "<anonymous>"
		}
		sb.WriteString(" class ")
		sb.WriteString(name)
	}
	if ctx.Method != nil {
		sb.WriteString(".method ")
		sb.WriteString(ctx.Method.Name)
	}
	return sb.String()
}

// addError records a construct that could not be converted
func (ctx *MigrationContext) addError(node javaast.Node, kind, message string) {
	source := ""
	if node != nil {
		source = node.Source()
	}
	ctx.Errors.Add(diagnostics.MigrationError{
		Location:   ctx.location(node),
		JavaSource: source,
		Message:    message,
		NodeKind:   kind,
	})
}

// unsupported records node as unconvertible and keeps its Java text in the output
func (ctx *MigrationContext) unsupported(node javaast.Node, kind string) *ktsrc.DummyStringExpression {
	ctx.addError(node, kind, fmt.Sprintf("unsupported %s", kind))
	return ktsrc.DummyString(fmt.Sprintf("/* FIXME: unsupported %s */ %s", kind, node.Source()))
}

// Failed reports whether a strict migration collected errors
func (ctx *MigrationContext) Failed() bool {
	return ctx.StrictMode && len(ctx.Errors.Errors()) > 0
}

// Migrate parses Java source and converts it to Kotlin source text. Syntax errors and
// unconvertible constructs are recorded on the context; in strict mode they fail the migration.
func Migrate(ctx *MigrationContext, source []byte) (string, error) {
	file, err := javaast.Parse(source, ctx.SourceFilePath)
	if err != nil {
		return "", err
	}
	for _, syntaxErr := range file.SyntaxErrors {
		ctx.Errors.Add(diagnostics.MigrationError{
			Location:   ctx.SourceFilePath + ":" + syntaxErr.Position.String(),
			JavaSource: syntaxErr.Text,
			Message:    "syntax error",
			NodeKind:   "ERROR",
		})
	}
	result := ConvertFile(ctx, file).ToSource()
	if ctx.Failed() {
		return result, fmt.Errorf("%s: %d constructs could not be converted", ctx.SourceFilePath, len(ctx.Errors.Errors()))
	}
	return result, nil
}

// ConvertFile converts a parsed compilation unit into a Kotlin file
func ConvertFile(ctx *MigrationContext, file *javaast.File) *ktsrc.File {
	for _, c := range file.AllClasses() {
		ctx.ClassIdentifiers[c.Name] = true
	}
	var body []ktsrc.SourceElement
	for _, element := range file.Elements {
		if converted := ctx.topElementToElement(element); converted != nil {
			body = append(body, converted)
		}
	}
	packageName := file.Package
	if ctx.Settings.PackageName != "" {
		packageName = ctx.Settings.PackageName
	}
	return &ktsrc.File{
		Header:       ctx.Settings.LicenseHeader,
		PackageName:  packageName,
		Imports:      importsToImportList(file.Imports),
		Body:         body,
		MainFunction: createMainFunction(file),
	}
}

// topElementToElement converts one top level element. A failure inside a class is recorded and
// the class is kept as Java text so the rest of the file still converts.
func (ctx *MigrationContext) topElementToElement(element javaast.Node) (result ktsrc.SourceElement) {
	switch e := element.(type) {
	case *javaast.Comment:
		return &ktsrc.Comment{Text: e.Text}
	case *javaast.Whitespace:
		return &ktsrc.WhiteSpace{Text: e.Text}
	case *javaast.Class:
		defer func() {
			if r := recover(); r != nil {
				ctx.addError(e, "class_declaration", fmt.Sprintf("conversion failed: %v", r))
				result = ktsrc.DummyString(e.Source())
			}
		}()
		return ctx.classToClass(e)
	}
	return nil
}

func importsToImportList(imports []*javaast.Import) []*ktsrc.Import {
	var result []*ktsrc.Import
	for _, imp := range imports {
		path := imp.Path
		if !imp.Static && strings.HasPrefix(path, "java.lang.") && strings.Count(path, ".") == 2 {
			continue
		}
		result = append(result, &ktsrc.Import{Path: path})
	}
	return result
}

// createMainFunction returns a top level main delegating to the first class declaring
// public static void main(String[])
func createMainFunction(file *javaast.File) string {
	for _, c := range file.Classes() {
		for _, m := range c.Methods() {
			if isMainMethod(m) {
				args := "args"
				if m.Params[0].Varargs {
					args = "*args"
				}
				return fmt.Sprintf("fun main(args: Array<String>) = %s.%s(%s)", ktsrc.QuoteKeyword(c.Name), m.Name, args)
			}
		}
	}
	return ""
}

func isMainMethod(m *javaast.Method) bool {
	if m.Name != "main" || !m.Modifiers.Has(javaast.STATIC) || !m.Modifiers.Has(javaast.PUBLIC) || !m.ReturnType.IsVoid() {
		return false
	}
	if len(m.Params) != 1 {
		return false
	}
	param := m.Params[0]
	return param.Varargs && param.Type.Canonical() == "java.lang.String" ||
		param.Type.Canonical() == "java.lang.String[]"
}
