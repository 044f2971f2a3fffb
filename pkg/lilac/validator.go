package lilac

import (
	"fmt"

	"github.com/lilac-lang/lilac/pkg/lilac/ast"
	"github.com/lilac-lang/lilac/pkg/util"
)

// Severity identifies how serious a given diagnostic is.
type Severity uint

const (
	// ERROR indicates a structural problem which must be fixed.
	ERROR Severity = iota
	// WARNING indicates a problem which does not prevent the function from
	// being well-formed.
	WARNING
	// INFORMATION indicates a purely informational diagnostic.
	INFORMATION
)

// Diagnostic describes one structural problem found in a function.  Absence of
// a diagnostic (an empty option) means the function is valid; there is no
// sentinel "no problem" diagnostic.
type Diagnostic struct {
	// Severity of this diagnostic.
	Severity Severity
	// Human-readable description of the problem.
	Message string
	// The node this diagnostic concerns (the header or a specific case),
	// allowing callers to report a precise source span.
	Subject ast.Node
}

// Validate checks that a function's cases are structurally consistent with its
// header, producing a diagnostic describing the first problem found.  Checks
// are applied in a fixed order, and the first violation wins:
//
//  1. the header name must be non-empty;
//  2. every case must declare the same number of arguments as the header
//     declares inputs;
//  3. every case argument name must be positionally identical to the
//     corresponding header input name.
//
// Note that output types are declared but never validated against case
// bodies.
func Validate(fn *ast.Function) util.Option[Diagnostic] {
	header := fn.Header
	//
	if header.Name == "" {
		return errorAt(header, "Function name cannot be empty")
	}
	//
	for i, c := range fn.Body.Cases {
		if len(c.Args) != len(header.Inputs) {
			return errorAt(c, fmt.Sprintf("Number of arguments in case %d does not match function header", i))
		}
	}
	//
	for i, c := range fn.Body.Cases {
		for j, arg := range c.Args {
			if arg != header.Inputs[j] {
				return errorAt(c, fmt.Sprintf("Argument %d in case %d does not match function header", j, i))
			}
		}
	}
	// Valid
	return util.None[Diagnostic]()
}

func errorAt(subject ast.Node, msg string) util.Option[Diagnostic] {
	return util.Some(Diagnostic{ERROR, msg, subject})
}
