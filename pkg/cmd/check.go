// Copyright The Lilac Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lilac-lang/lilac/pkg/lilac"
	"github.com/lilac-lang/lilac/pkg/lilac/ast"
	"github.com/lilac-lang/lilac/pkg/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] source_file...",
	Short: "parse and validate Lilac source files.",
	Long: `Parse a given set of Lilac source files and check that every
	function's cases are structurally consistent with its header,
	reporting any problems found against the original source text.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		maxProblems := getUint(cmd, "max-problems")
		// Read in source files
		files, err := source.ReadFiles(args...)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		var (
			problems  uint
			functions []*ast.Function
			srcmaps   = source.NewMaps[ast.Node]()
		)
		// Parse each file, reporting problems at the line level.
		for i := range files {
			fns, errs := parseFile(&files[i], srcmaps)
			functions = append(functions, fns...)
			//
			for j := range errs {
				if problems < maxProblems {
					printSyntaxError(&errs[j])
				}
				//
				problems++
			}
		}
		// Report structural problems, one per function at most, resolving
		// each offending node against the joined source maps.
		for _, fn := range functions {
			if d := lilac.Validate(fn); d.HasValue() {
				problem := d.Unwrap()
				//
				if problems < maxProblems {
					if problem.Subject != nil && srcmaps.Has(problem.Subject) {
						printSyntaxError(srcmaps.SyntaxError(problem.Subject, problem.Message))
					} else {
						fmt.Println(problem.Message)
					}
				}
				//
				problems++
			}
		}
		//
		log.Debugf("%d file(s), %d function(s), %d problem(s)", len(files), len(functions), problems)
		//
		if problems > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Uint("max-problems", 100, "limit the number of problems reported")
}

// parseFile parses a single source file, joining its source map into the
// given set so that nodes can be resolved across files afterwards.
func parseFile(file *source.File, srcmaps *source.Maps[ast.Node]) ([]*ast.Function, []source.SyntaxError) {
	parser := lilac.NewParser(file)
	functions, errs := parser.ParseAll()
	//
	srcmaps.Join(parser.SourceMap())
	//
	return functions, errs
}
