package lilac

import (
	"regexp"
	"strings"

	"github.com/lilac-lang/lilac/pkg/lilac/ast"
	"github.com/lilac-lang/lilac/pkg/source"
	"github.com/lilac-lang/lilac/pkg/util"
)

var (
	// Matches a declaration line "func name in1,...,inN -> out1,...,outM",
	// where each list contains at least one word and arbitrary whitespace is
	// tolerated around commas.
	headerRegex = regexp.MustCompile(`^func\s+(\w+)\s+(\w+(?:\s*,\s*\w+)*)\s*->\s*(\w+(?:\s*,\s*\w+)*)$`)
	// Matches a case line "name(args) = body;".  The greedy body group runs up
	// to the last semicolon on the line, which is the case terminator.
	caseRegex = regexp.MustCompile(`^(\w+)\s*\(([^()]*)\)\s*=\s*(.*);$`)
)

// Parser turns Lilac source text into AST nodes.  The parser itself is
// relatively simplistic: a source file is a sequence of lines, where each
// non-blank line is either a function header or a case belonging to the most
// recent header.  Every node constructed is recorded in a source map, so that
// diagnostics can be reported against precise spans of the original text.
//
// Structural mismatch is signalled by an empty option, never by an error:
// partial or malformed input (e.g. a user mid-typing) is a normal, expected
// outcome.
type Parser struct {
	// Source file being parsed.
	srcfile *source.File
	// Mapping from constructed AST nodes to their spans in the original text.
	srcmap *source.Map[ast.Node]
	// Syntax errors accumulated for fragments which parse as nothing.
	errors []source.SyntaxError
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File) *Parser {
	srcmap := source.NewMap[ast.Node](*srcfile)
	//
	return &Parser{srcfile, srcmap, nil}
}

// SourceMap returns the mapping from AST nodes constructed by this parser to
// their spans in the original text.
func (p *Parser) SourceMap() *source.Map[ast.Node] {
	return p.srcmap
}

// ParseAll parses the entire source file into zero or more functions.  A
// header line starts a new function; each subsequent case line attaches to
// it.  Lines which parse as neither are reported as syntax errors.
func (p *Parser) ParseAll() ([]*ast.Function, []source.SyntaxError) {
	var (
		functions []*ast.Function
		current   *ast.Function
	)
	//
	p.errors = nil
	//
	for _, line := range p.srcfile.Lines() {
		span := p.trim(source.NewSpan(line.Start(), line.Start()+line.Length()))
		// Skip blank lines
		if span.Length() == 0 {
			continue
		}
		//
		if header := p.ParseHeader(span); header.HasValue() {
			current = &ast.Function{Header: header.Unwrap()}
			functions = append(functions, current)
		} else if c := p.ParseCase(span); c.HasValue() {
			if current == nil {
				p.syntaxError(span, "case without enclosing function declaration")
			} else {
				current.Body.Cases = append(current.Body.Cases, c.Unwrap())
			}
		} else {
			p.syntaxError(span, "unexpected or malformed declaration")
		}
	}
	//
	return functions, p.errors
}

// ParseHeader parses one declaration line of the shape "func name in1,...,inN
// -> out1,...,outM".  Observe that both lists require at least one word, hence
// zero-input or zero-output functions are not representable.  On mismatch an
// empty option is returned.
func (p *Parser) ParseHeader(span source.Span) util.Option[*ast.FunctionHeader] {
	span = p.trim(span)
	//
	m := headerRegex.FindStringSubmatch(p.textOf(span))
	if m == nil {
		return util.None[*ast.FunctionHeader]()
	}
	//
	header := &ast.FunctionHeader{
		Name:    m[1],
		Inputs:  splitList(m[2]),
		Outputs: splitList(m[3]),
	}
	//
	p.srcmap.Put(header, span)
	//
	return util.Some(header)
}

// ParseCase parses one case line of the shape "name(arg1, arg2, ...) = body;".
// The name is extracted but not retained, as a case does not re-validate its
// own name against the enclosing function.  Unlike arguments within a call,
// the body is mandatory: if it parses as neither call nor expression then the
// whole case fails.
func (p *Parser) ParseCase(span source.Span) util.Option[*ast.FunctionCase] {
	span = p.trim(span)
	text := p.textOf(span)
	//
	m := caseRegex.FindStringSubmatchIndex(text)
	if m == nil {
		return util.None[*ast.FunctionCase]()
	}
	// Determine span of body within enclosing file.
	bodySpan := source.NewSpan(
		span.Start()+runeIndex(text, m[6]),
		span.Start()+runeIndex(text, m[7]))
	// Body is parsed in strict mode.
	body := p.ParseTerm(bodySpan)
	if body.IsEmpty() {
		return util.None[*ast.FunctionCase]()
	}
	//
	c := &ast.FunctionCase{
		Args: splitList(text[m[4]:m[5]]),
		Body: body.Unwrap(),
	}
	//
	p.srcmap.Put(c, span)
	//
	return util.Some(c)
}

// ParseTerm parses a call-or-expression term.  A call of the shape
// "identifier(argument-list)" is the default parse attempt, where the
// identifier is a maximal run of word characters and the argument list spans
// from the first parenthesis after the identifier to the last parenthesis
// terminating the fragment.  Anything else falls back to expression parsing.
func (p *Parser) ParseTerm(span source.Span) util.Option[ast.Term] {
	span = p.trim(span)
	text := p.runesOf(span)
	// Match maximal identifier run
	i := 0
	for i < len(text) && isWordRune(text[i]) {
		i++
	}
	// Check for call shape
	if i > 0 && i < len(text) && text[i] == '(' && text[len(text)-1] == ')' {
		argSpan := source.NewSpan(span.Start()+i+1, span.End()-1)
		call := &ast.FunctionCall{
			Name: string(text[:i]),
			Args: p.parseArguments(argSpan),
		}
		//
		p.srcmap.Put(call, span)
		//
		return util.Some[ast.Term](call)
	}
	// Fall back to a literal expression
	if expr := p.ParseExpression(span); expr.HasValue() {
		return util.Some[ast.Term](expr.Unwrap())
	}
	//
	return util.None[ast.Term]()
}

// ParseExpression parses a single literal: an integer, a true/false keyword,
// or a double-quoted string in which a backslash followed by any character is
// one escape unit.
func (p *Parser) ParseExpression(span source.Span) util.Option[*ast.Expression] {
	var (
		kind ast.ExpressionKind
		text []rune
	)
	//
	span = p.trim(span)
	text = p.runesOf(span)
	//
	switch {
	case isNumberLiteral(text):
		kind = ast.NUMBER
	case string(text) == "true" || string(text) == "false":
		kind = ast.BOOLEAN
	case isStringLiteral(text):
		kind = ast.STRING
	default:
		return util.None[*ast.Expression]()
	}
	//
	expr := ast.NewExpression(kind, string(text))
	p.srcmap.Put(expr, span)
	//
	return util.Some(expr)
}

// parseArguments performs a depth-tracked comma split of an argument list,
// parsing each resulting fragment in turn.  This is the lenient mode: an
// argument which parses as neither call nor expression (e.g. a bare pattern
// variable) is recorded as an absent placeholder rather than failing the
// enclosing call, and is not a syntax error either.  Depth is updated before
// the comma test, so splits fall exactly on structural commas; this corrects
// the post-append ordering of the original grammar, which shifted the
// effective boundary by one character.
func (p *Parser) parseArguments(span source.Span) []util.Option[ast.Term] {
	var (
		args     []util.Option[ast.Term]
		depth    = 0
		start    = span.Start()
		contents = p.srcfile.Contents()
	)
	//
	for i := span.Start(); i < span.End(); i++ {
		switch contents[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, p.ParseTerm(source.NewSpan(start, i)))
				start = i + 1
			}
		}
	}
	// Flush any non-empty trailing argument.
	if start < span.End() {
		args = append(args, p.ParseTerm(source.NewSpan(start, span.End())))
	}
	//
	return args
}

// Record a syntax error against a given span.
func (p *Parser) syntaxError(span source.Span, msg string) {
	p.errors = append(p.errors, *p.srcfile.SyntaxError(span, msg))
}

// trim shrinks a span to exclude any surrounding whitespace.
func (p *Parser) trim(span source.Span) source.Span {
	var (
		contents   = p.srcfile.Contents()
		start, end = span.Start(), span.End()
	)
	//
	for start < end && isSpaceRune(contents[start]) {
		start++
	}
	//
	for end > start && isSpaceRune(contents[end-1]) {
		end--
	}
	//
	return source.NewSpan(start, end)
}

func (p *Parser) runesOf(span source.Span) []rune {
	return p.srcfile.Contents()[span.Start():span.End()]
}

func (p *Parser) textOf(span source.Span) string {
	return string(p.runesOf(span))
}

// splitList splits a comma-separated list, trimming whitespace around each
// element.  A blank list yields nil.
func splitList(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	//
	items := strings.Split(text, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	//
	return items
}

// runeIndex converts a byte offset within a string into a rune offset.
func runeIndex(text string, byteOffset int) int {
	return len([]rune(text[:byteOffset]))
}

func isWordRune(c rune) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func isSpaceRune(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// An integer sequence of at least one digit.
func isNumberLiteral(text []rune) bool {
	if len(text) == 0 {
		return false
	}
	//
	for _, c := range text {
		if c < '0' || c > '9' {
			return false
		}
	}
	//
	return true
}

// A double-quoted string whose closing quote terminates the fragment, where a
// backslash followed by any character counts as a single escape unit.
func isStringLiteral(text []rune) bool {
	if len(text) < 2 || text[0] != '"' {
		return false
	}
	//
	i := 1
	//
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
		case '"':
			// Closing quote must be the final character.
			return i == len(text)-1
		default:
			i++
		}
	}
	//
	return false
}
