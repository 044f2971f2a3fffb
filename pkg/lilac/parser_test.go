package lilac

import (
	"reflect"
	"testing"

	"github.com/lilac-lang/lilac/pkg/lilac/ast"
	"github.com/lilac-lang/lilac/pkg/source"
	"github.com/lilac-lang/lilac/pkg/util"
)

// ==================================================================
// Headers
// ==================================================================

func TestHeader_01(t *testing.T) {
	checkHeader(t, "func add a,b -> c", "add", list("a", "b"), list("c"))
}

func TestHeader_02(t *testing.T) {
	// Whitespace around commas is tolerated and trimmed.
	checkHeader(t, "func add a , b -> c , d", "add", list("a", "b"), list("c", "d"))
}

func TestHeader_03(t *testing.T) {
	checkHeader(t, "  func id x -> x  ", "id", list("x"), list("x"))
}

func TestHeader_04(t *testing.T) {
	// No func keyword
	checkNoHeader(t, "add a, b")
}

func TestHeader_05(t *testing.T) {
	// Missing arrow
	checkNoHeader(t, "func add a,b")
}

func TestHeader_06(t *testing.T) {
	// Zero-input functions are not representable.
	checkNoHeader(t, "func f -> c")
}

func TestHeader_07(t *testing.T) {
	// Zero-output functions are not representable.
	checkNoHeader(t, "func f a ->")
}

func TestHeader_08(t *testing.T) {
	// Keyword must stand alone.
	checkNoHeader(t, "funcx add a -> b")
}

func TestHeader_09(t *testing.T) {
	// Trailing comma leaves a dangling list.
	checkNoHeader(t, "func add a, -> c")
}

// ==================================================================
// Terms
// ==================================================================

func TestTerm_01(t *testing.T) {
	checkTerm(t, "1", num("1"))
}

func TestTerm_02(t *testing.T) {
	checkTerm(t, "123456789012345678901234567890", num("123456789012345678901234567890"))
}

func TestTerm_03(t *testing.T) {
	checkTerm(t, "true", boolean("true"))
	checkTerm(t, "false", boolean("false"))
}

func TestTerm_04(t *testing.T) {
	checkTerm(t, "\"hello\"", str("\"hello\""))
}

func TestTerm_05(t *testing.T) {
	// Backslash followed by any character is one escape unit.
	checkTerm(t, "\"he\\\"llo\"", str("\"he\\\"llo\""))
	checkTerm(t, "\"\\\\\"", str("\"\\\\\""))
	checkTerm(t, "\"\"", str("\"\""))
}

func TestTerm_06(t *testing.T) {
	// Unterminated or ill-formed literals
	checkNoTerm(t, "\"abc")
	checkNoTerm(t, "\"a\"b\"")
	checkNoTerm(t, "12a")
	checkNoTerm(t, "truest")
	checkNoTerm(t, "")
}

func TestTerm_07(t *testing.T) {
	checkTerm(t, "f()", call("f"))
}

func TestTerm_08(t *testing.T) {
	checkTerm(t, "f(1)", call("f", some(num("1"))))
}

func TestTerm_09(t *testing.T) {
	checkTerm(t, "f(1, g(2,3), true)",
		call("f",
			some(num("1")),
			some(call("g", some(num("2")), some(num("3")))),
			some(boolean("true"))))
}

func TestTerm_10(t *testing.T) {
	// Depth tracking separates top-level arguments across nesting depth >= 2.
	checkTerm(t, "f(g(h(1,2),3),4)",
		call("f",
			some(call("g",
				some(call("h", some(num("1")), some(num("2")))),
				some(num("3")))),
			some(num("4"))))
}

func TestTerm_11(t *testing.T) {
	// A malformed argument degrades to an absent placeholder.
	checkTerm(t, "f(1, @, 2)", call("f", some(num("1")), none(), some(num("2"))))
}

func TestTerm_12(t *testing.T) {
	// A trailing empty accumulator is not flushed.
	checkTerm(t, "f(1,)", call("f", some(num("1"))))
}

func TestTerm_13(t *testing.T) {
	// An empty argument terminated by a comma is retained as a placeholder.
	checkTerm(t, "f(,1)", call("f", none(), some(num("1"))))
}

func TestTerm_14(t *testing.T) {
	// Missing terminating parenthesis is no call, and no expression either.
	checkNoTerm(t, "f(1")
	checkNoTerm(t, "(1)")
}

func TestTerm_15(t *testing.T) {
	// The depth tracker is character-based: a comma inside a string literal
	// is still a split point, as in the original grammar.
	checkTerm(t, "f(\"a,b\")", call("f", none(), none()))
}

func TestTerm_16(t *testing.T) {
	// Identifiers are neither calls nor literals, hence a bare pattern
	// variable inside an argument list degrades to a placeholder.
	checkTerm(t, "plus(a, b)", call("plus", none(), none()))
}

// ==================================================================
// Cases
// ==================================================================

func TestCase_01(t *testing.T) {
	checkCase(t, "add(a,b) = plus(1, 2);", list("a", "b"),
		call("plus", some(num("1")), some(num("2"))))
}

func TestCase_02(t *testing.T) {
	checkCase(t, "one(a) = 1;", list("a"), num("1"))
}

func TestCase_03(t *testing.T) {
	checkCase(t, "yes(a) = true;", list("a"), boolean("true"))
}

func TestCase_04(t *testing.T) {
	// Body is mandatory: a case with an unparsable body fails outright.
	checkNoCase(t, "f(a) = ;")
	checkNoCase(t, "f(a) = @;")
}

func TestCase_05(t *testing.T) {
	// Missing terminator
	checkNoCase(t, "f(a) = 1")
}

func TestCase_06(t *testing.T) {
	// Missing body or malformed shape
	checkNoCase(t, "f(a)")
	checkNoCase(t, "= 1;")
}

func TestCase_07(t *testing.T) {
	// Malformed arguments inside the body are tolerated (lenient mode).
	checkCase(t, "f(a) = g(1, , 2);", list("a"),
		call("g", some(num("1")), none(), some(num("2"))))
}

// ==================================================================
// Idempotence
// ==================================================================

func TestReparseHeader_01(t *testing.T) {
	checkReparseHeader(t, "func add a, b -> c")
}

func TestReparseHeader_02(t *testing.T) {
	checkReparseHeader(t, "func f x,y,z -> u , v")
}

func TestReparseCase_01(t *testing.T) {
	checkReparseCase(t, "add(a,b) = plus(a, b);")
}

func TestReparseCase_02(t *testing.T) {
	checkReparseCase(t, "f(a) = g(h(1,2), \"x,y\", true);")
}

// ==================================================================
// Whole files
// ==================================================================

func TestParseAll_01(t *testing.T) {
	functions, errs := parseAll(t,
		"func add a,b -> c\n"+
			"add(a,b) = plus(1, 2);\n"+
			"\n"+
			"func one x -> x\n"+
			"one(x) = 1;\n")
	//
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	//
	if len(functions) != 2 {
		t.Errorf("got %d functions, expected 2", len(functions))
	} else if len(functions[0].Body.Cases) != 1 || len(functions[1].Body.Cases) != 1 {
		t.Errorf("missing cases: %v", functions)
	}
}

func TestParseAll_02(t *testing.T) {
	// Unparsable line reported, remainder still parsed.
	functions, errs := parseAll(t,
		"func add a,b -> c\n"+
			"?garbage?\n"+
			"add(a,b) = add(1, 2);\n")
	//
	if len(functions) != 1 || len(functions[0].Body.Cases) != 1 {
		t.Errorf("got %v", functions)
	}
	//
	if len(errs) != 1 || errs[0].Message() != "unexpected or malformed declaration" {
		t.Errorf("got %v", errs)
	}
}

func TestParseAll_03(t *testing.T) {
	// Case before any header
	_, errs := parseAll(t, "add(a,b) = 1;\n")
	//
	if len(errs) != 1 || errs[0].Message() != "case without enclosing function declaration" {
		t.Errorf("got %v", errs)
	}
}

func TestParseAll_04(t *testing.T) {
	// Bare pattern variables in a case body degrade to placeholders without
	// surfacing any error: this is the normal shape of a pattern-matching
	// body, not a defect.
	functions, errs := parseAll(t,
		"func add a,b -> c\n"+
			"add(a,b) = plus(a, b);\n")
	//
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	//
	if len(functions) != 1 || len(functions[0].Body.Cases) != 1 {
		t.Errorf("got %v", functions)
	}
	//
	body := functions[0].Body.Cases[0].Body
	//
	if !reflect.DeepEqual(body, call("plus", none(), none())) {
		t.Errorf("got body %v", body)
	}
}

func TestParseAll_05(t *testing.T) {
	// Likewise a genuinely malformed argument is absorbed as a placeholder.
	_, errs := parseAll(t,
		"func add a,b -> c\n"+
			"add(a,b) = plus(a, @);\n")
	//
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestParserSpans_01(t *testing.T) {
	var (
		file   = source.NewFile("test", []byte("f(1, g(2,3))"))
		parser = NewParser(file)
		term   = parser.ParseTerm(source.NewSpan(0, len(file.Contents())))
	)
	//
	if term.IsEmpty() {
		t.Fatal("expected a term")
	}
	// Outer call spans the whole fragment.
	outer := term.Unwrap()
	if span := parser.SourceMap().Get(outer); span != source.NewSpan(0, 12) {
		t.Errorf("got %v", span)
	}
	// Nested call spans its own fragment.
	inner := outer.(*ast.FunctionCall).Args[1].Unwrap()
	if span := parser.SourceMap().Get(inner); span != source.NewSpan(5, 11) {
		t.Errorf("got %v", span)
	}
}

func TestParserSpans_02(t *testing.T) {
	// Nodes from independently parsed files resolve through a joined set of
	// source maps, back to the file they came from.
	var (
		srcmaps = source.NewMaps[ast.Node]()
		f1      = source.NewFile("one", []byte("func f a -> b"))
		f2      = source.NewFile("two", []byte("func g x -> y"))
		p1      = NewParser(f1)
		p2      = NewParser(f2)
		h1      = p1.ParseHeader(source.NewSpan(0, len(f1.Contents())))
		h2      = p2.ParseHeader(source.NewSpan(0, len(f2.Contents())))
	)
	//
	if h1.IsEmpty() || h2.IsEmpty() {
		t.Fatal("headers failed to parse")
	}
	//
	srcmaps.Join(p1.SourceMap())
	srcmaps.Join(p2.SourceMap())
	//
	if !srcmaps.Has(h1.Unwrap()) || !srcmaps.Has(h2.Unwrap()) {
		t.Fatal("missing mapping after join")
	}
	//
	if err := srcmaps.SyntaxError(h2.Unwrap(), "oops"); err.SourceFile().Filename() != "two" {
		t.Errorf("got file %q, expected %q", err.SourceFile().Filename(), "two")
	}
}

// ==================================================================
// Framework
// ==================================================================

func num(text string) ast.Term {
	return ast.NewExpression(ast.NUMBER, text)
}

func boolean(text string) ast.Term {
	return ast.NewExpression(ast.BOOLEAN, text)
}

func str(text string) ast.Term {
	return ast.NewExpression(ast.STRING, text)
}

func call(name string, args ...util.Option[ast.Term]) ast.Term {
	return &ast.FunctionCall{Name: name, Args: args}
}

func some(term ast.Term) util.Option[ast.Term] {
	return util.Some(term)
}

func none() util.Option[ast.Term] {
	return util.None[ast.Term]()
}

func list(items ...string) []string {
	return items
}

func parseTermOf(t *testing.T, input string) util.Option[ast.Term] {
	t.Helper()
	//
	file := source.NewFile("test", []byte(input))
	//
	return NewParser(file).ParseTerm(source.NewSpan(0, len(file.Contents())))
}

func parseAll(t *testing.T, input string) ([]*ast.Function, []source.SyntaxError) {
	t.Helper()
	//
	file := source.NewFile("test", []byte(input))
	//
	return NewParser(file).ParseAll()
}

func checkTerm(t *testing.T, input string, expected ast.Term) {
	t.Helper()
	//
	term := parseTermOf(t, input)
	//
	if term.IsEmpty() {
		t.Errorf("%q failed to parse", input)
	} else if !reflect.DeepEqual(term.Unwrap(), expected) {
		t.Errorf("%q: got %v, expected %v", input, term.Unwrap(), expected)
	}
}

func checkNoTerm(t *testing.T, input string) {
	t.Helper()
	//
	if term := parseTermOf(t, input); term.HasValue() {
		t.Errorf("%q unexpectedly parsed as %v", input, term.Unwrap())
	}
}

func checkHeader(t *testing.T, input string, name string, inputs []string, outputs []string) {
	t.Helper()
	//
	file := source.NewFile("test", []byte(input))
	header := NewParser(file).ParseHeader(source.NewSpan(0, len(file.Contents())))
	//
	if header.IsEmpty() {
		t.Errorf("%q failed to parse", input)
		return
	}
	//
	h := header.Unwrap()
	//
	if h.Name != name || !reflect.DeepEqual(h.Inputs, inputs) || !reflect.DeepEqual(h.Outputs, outputs) {
		t.Errorf("%q: got %v, expected %s %v -> %v", input, h, name, inputs, outputs)
	}
}

func checkNoHeader(t *testing.T, input string) {
	t.Helper()
	//
	file := source.NewFile("test", []byte(input))
	//
	if header := NewParser(file).ParseHeader(source.NewSpan(0, len(file.Contents()))); header.HasValue() {
		t.Errorf("%q unexpectedly parsed as %v", input, header.Unwrap())
	}
}

func parseCaseOf(t *testing.T, input string) util.Option[*ast.FunctionCase] {
	t.Helper()
	//
	file := source.NewFile("test", []byte(input))
	//
	return NewParser(file).ParseCase(source.NewSpan(0, len(file.Contents())))
}

func checkCase(t *testing.T, input string, args []string, body ast.Term) {
	t.Helper()
	//
	c := parseCaseOf(t, input)
	//
	if c.IsEmpty() {
		t.Errorf("%q failed to parse", input)
		return
	}
	//
	if !reflect.DeepEqual(c.Unwrap().Args, args) {
		t.Errorf("%q: got args %v, expected %v", input, c.Unwrap().Args, args)
	}
	//
	if body != nil && !reflect.DeepEqual(c.Unwrap().Body, body) {
		t.Errorf("%q: got body %v, expected %v", input, c.Unwrap().Body, body)
	}
}

func checkNoCase(t *testing.T, input string) {
	t.Helper()
	//
	if c := parseCaseOf(t, input); c.HasValue() {
		t.Errorf("%q unexpectedly parsed as %v", input, c.Unwrap())
	}
}

func checkReparseHeader(t *testing.T, input string) {
	t.Helper()
	//
	first := parseHeaderOf(t, input)
	second := parseHeaderOf(t, first.Text())
	//
	if !reflect.DeepEqual(first, second) {
		t.Errorf("%q: reparsed %v, expected %v", input, second, first)
	}
}

func parseHeaderOf(t *testing.T, input string) *ast.FunctionHeader {
	t.Helper()
	//
	file := source.NewFile("test", []byte(input))
	header := NewParser(file).ParseHeader(source.NewSpan(0, len(file.Contents())))
	//
	if header.IsEmpty() {
		t.Fatalf("%q failed to parse", input)
	}
	//
	return header.Unwrap()
}

func checkReparseCase(t *testing.T, input string) {
	t.Helper()
	//
	first := parseCaseOf(t, input)
	if first.IsEmpty() {
		t.Fatalf("%q failed to parse", input)
	}
	// Reconstruct with an arbitrary name, which a case does not retain.
	second := parseCaseOf(t, "f"+first.Unwrap().Text())
	if second.IsEmpty() {
		t.Fatalf("%q failed to reparse", "f"+first.Unwrap().Text())
	}
	//
	if !reflect.DeepEqual(first.Unwrap(), second.Unwrap()) {
		t.Errorf("%q: reparsed %v, expected %v", input, second.Unwrap(), first.Unwrap())
	}
}
