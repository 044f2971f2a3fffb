package ast

import (
	"strings"

	"github.com/lilac-lang/lilac/pkg/util"
)

// Node is implemented by anything the parser constructs and records a source
// span for (headers, cases and terms alike).
type Node interface {
	// Text returns a textual rendering of this node, such that reparsing the
	// rendering yields an equivalent node.
	Text() string
}

// Term is either a function call or a literal expression.  Terms form trees:
// a call owns its argument terms exclusively, and no term is ever shared
// between two parents.
type Term interface {
	Node
	isTerm()
}

// ============================================================================
// Expression
// ============================================================================

// ExpressionKind distinguishes the three literal forms an expression can take.
type ExpressionKind uint

const (
	// STRING represents a double-quoted string literal.
	STRING ExpressionKind = iota
	// NUMBER represents an integer literal.
	NUMBER
	// BOOLEAN represents a true/false literal.
	BOOLEAN
)

// Expression is a literal leaf value.  It is immutable once constructed and
// has no children.
type Expression struct {
	kind ExpressionKind
	// Literal text exactly as written, including any quotes.
	text string
}

// NewExpression constructs a literal expression of a given kind from its
// source text.
func NewExpression(kind ExpressionKind, text string) *Expression {
	return &Expression{kind, text}
}

// Kind returns the literal form of this expression.
func (p *Expression) Kind() ExpressionKind {
	return p.kind
}

// Text returns the literal text of this expression, exactly as written.
func (p *Expression) Text() string {
	return p.text
}

func (p *Expression) isTerm() {}

// ============================================================================
// FunctionCall
// ============================================================================

// FunctionCall is a named term applied to an ordered sequence of argument
// terms.  An empty argument slot records a fragment which failed to parse,
// allowing the rest of the call to be retained (e.g. whilst the user is still
// typing).
type FunctionCall struct {
	// Name of the function being invoked.
	Name string
	// Ordered arguments, where an empty option marks a parse failure.
	Args []util.Option[Term]
}

// Text returns a textual rendering of this call.  Unparsed argument slots
// render as empty strings.
func (p *FunctionCall) Text() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Name)
	builder.WriteString("(")
	//
	for i, arg := range p.Args {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		if arg.HasValue() {
			builder.WriteString(arg.Unwrap().Text())
		}
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

func (p *FunctionCall) isTerm() {}

// ============================================================================
// FunctionCase
// ============================================================================

// FunctionCase is one pattern-matching clause of a function: an ordered
// sequence of formal argument names together with exactly one body term.
type FunctionCase struct {
	// Formal argument names, in declaration order.
	Args []string
	// Body of this case.
	Body Term
}

// Text reconstructs the source form of this case, i.e. "name(args) = body;"
// without the name (which a case does not retain).
func (p *FunctionCase) Text() string {
	return "(" + strings.Join(p.Args, ", ") + ") = " + p.Body.Text() + ";"
}

// ============================================================================
// FunctionBody
// ============================================================================

// FunctionBody is the ordered sequence of cases making up a function.  Order
// is irrelevant to validation, but preserved so diagnostics can report case
// indices.
type FunctionBody struct {
	Cases []*FunctionCase
}

// ============================================================================
// FunctionHeader
// ============================================================================

// FunctionHeader is the typed declaration line of a function: a name, one or
// more input type names and one or more output type names.  Types are
// unvalidated identifiers.
type FunctionHeader struct {
	// Name of the function being declared.
	Name string
	// Ordered input type names.
	Inputs []string
	// Ordered output type names.
	Outputs []string
}

// Text reconstructs the source form of this header.
func (p *FunctionHeader) Text() string {
	return "func " + p.Name + " " + strings.Join(p.Inputs, ",") + " -> " + strings.Join(p.Outputs, ",")
}

// ============================================================================
// Function
// ============================================================================

// Function pairs a header with its body.  A function owns both exclusively.
type Function struct {
	Header *FunctionHeader
	Body   FunctionBody
}
