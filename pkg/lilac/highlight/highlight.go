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

// Package highlight provides a static lexical classification of Lilac source
// text.  This classification exists purely for presentation (syntax
// highlighting in an editor); it has no bearing on parsing or validation.
package highlight

import (
	"github.com/lilac-lang/lilac/pkg/source"
)

// Class identifies the lexical class of a classified span of text.
type Class uint

const (
	// WHITESPACE covers runs of blank characters.
	WHITESPACE Class = iota
	// KEYWORD covers the "func" keyword.
	KEYWORD
	// BOOLEAN covers the "true" and "false" literals.
	BOOLEAN
	// NUMBER covers integer literals.
	NUMBER
	// STRING covers double-quoted string literals, including unterminated
	// ones (so text being edited still classifies sensibly).
	STRING
	// IDENTIFIER covers all other word runs.
	IDENTIFIER
	// OPERATOR covers the arrow and equals signs.
	OPERATOR
	// PUNCTUATION covers parentheses, commas and semicolons.
	PUNCTUATION
	// UNKNOWN covers any character which matches nothing else.
	UNKNOWN
)

var classNames = []string{
	"whitespace", "keyword", "boolean", "number",
	"string", "identifier", "operator", "punctuation", "unknown",
}

// String returns the name of this class, as used in the editor legend.
func (c Class) String() string {
	return classNames[c]
}

// Classes returns the legend of all lexical classes, indexed by class value.
func Classes() []string {
	return classNames
}

// Keywords of the Lilac language which would otherwise classify as
// identifiers.
var keywords = map[string]Class{
	"func":  KEYWORD,
	"true":  BOOLEAN,
	"false": BOOLEAN,
}

var scanner = source.Or(
	source.Many(uint(WHITESPACE), ' ', '\t', '\r', '\n'),
	source.Exact(uint(OPERATOR), "->"),
	source.One(uint(OPERATOR), '='),
	source.One(uint(PUNCTUATION), '('),
	source.One(uint(PUNCTUATION), ')'),
	source.One(uint(PUNCTUATION), ','),
	source.One(uint(PUNCTUATION), ';'),
	source.Quoted(uint(STRING)),
	source.ManyWith(uint(NUMBER), '0', '9'),
	source.Word(uint(IDENTIFIER)),
	source.Any(uint(UNKNOWN)),
)

// Token is one classified span of the original text.
type Token struct {
	Class Class
	Span  source.Span
}

// Classify slices a given text into classified tokens covering every
// character.  Classification never fails: characters matching no rule are
// tagged UNKNOWN one at a time.
func Classify(text []rune) []Token {
	var (
		tokens []Token
		lexer  = source.NewLexer(text, scanner)
	)
	//
	for lexer.HasNext() {
		t := lexer.Next()
		tokens = append(tokens, reclassify(text, t))
	}
	//
	return tokens
}

// Promote word runs which happen to be keywords or boolean literals.
func reclassify(text []rune, t source.Token) Token {
	class := Class(t.Kind)
	//
	if class == IDENTIFIER {
		word := string(text[t.Span.Start():t.Span.End()])
		// Digits-only word runs scan as NUMBER before reaching the word
		// scanner, so only keywords need remapping here.
		if kw, ok := keywords[word]; ok {
			class = kw
		}
	}
	//
	return Token{class, t.Span}
}
