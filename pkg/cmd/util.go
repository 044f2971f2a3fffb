package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lilac-lang/lilac/pkg/source"
)

// getFlag gets an expected flag, or panics if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// getUint gets an expected unsigned integer flag, or panics if an error
// arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Print a syntax error with appropriate highlighting, clamped to the width of
// the enclosing terminal.
func printSyntaxError(err *source.SyntaxError) {
	var (
		line  = err.FirstEnclosingLine()
		span  = err.Span()
		text  = line.String()
		width = terminalWidth()
	)
	// Print error + line number
	fmt.Printf("%s:%d: %s\n", err.SourceFile().Filename(), line.Number(), err.Message())
	// Determine indent of highlight within line
	indent := span.Start() - line.Start()
	// Determine extent of highlight, which must lie within the line.
	extent := max(1, min(span.Length(), line.Length()-indent))
	// Clamp both to the terminal
	indent = min(indent, width-1)
	extent = max(1, min(extent, width-indent))
	//
	if runes := []rune(text); len(runes) > width {
		text = string(runes[:width-1]) + "…"
	}
	// Print line (todo: account for tabs)
	fmt.Println(text)
	// Print highlight
	fmt.Print(strings.Repeat(" ", indent))
	fmt.Println(strings.Repeat("^", extent))
}

// Determine the width of the enclosing terminal, falling back on a sensible
// default when stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	//
	return 80
}
