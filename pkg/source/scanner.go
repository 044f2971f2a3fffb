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
package source

import (
	"slices"
	"unicode"

	"github.com/lilac-lang/lilac/pkg/util"
)

// Scanner looks at a given sequence of runes, starting from the beginning, and
// attempts to consume 1 or more of them.  If it cannot consume any, then None
// is returned.  Otherwise, it returns a Token which spans characters 0..n+1
// where n is the last character of the token.
type Scanner interface {
	Scan([]rune) util.Option[Token]
}

// Eof adds a given tag to the end of the token stream.
func Eof(tag uint) Scanner {
	return &eofScanner{tag}
}

// One creates a scanner responsible for associating a single rune with a given
// tag.
func One(tag uint, item rune) Scanner {
	return &unitScanner{item, tag}
}

// Many creates a scanner responsible for associating one or more runes with a
// given tag.
func Many(tag uint, items ...rune) Scanner {
	return &manyScanner{tag, items}
}

// ManyWith creates a scanner responsible for associating runes in a given
// range with a given tag.
func ManyWith(tag uint, first rune, last rune) Scanner {
	return &manyWithinScanner{tag, first, last}
}

// Exact creates a scanner which matches a given sequence of runes exactly.
func Exact(tag uint, word string) Scanner {
	return &exactScanner{tag, []rune(word)}
}

// Word creates a scanner which matches a maximal run of word characters
// (letters, digits and underscore).
func Word(tag uint) Scanner {
	return &wordScanner{tag}
}

// Quoted creates a scanner which matches a double-quoted string literal, where
// a backslash followed by any character counts as a single escape unit.  An
// unterminated literal is matched to the end of the input, which permits
// classification of text mid-edit.
func Quoted(tag uint) Scanner {
	return &quotedScanner{tag}
}

// Any creates a scanner which matches any single rune.  Placing this last in
// an Or chain makes the overall scanner total.
func Any(tag uint) Scanner {
	return &anyScanner{tag}
}

// Or constructs a scanner which accepts words accepted by any of the given
// scanners.
func Or(scanners ...Scanner) Scanner {
	return &orScanner{scanners}
}

// ============================================================================
// Eof Scanner
// ============================================================================

type eofScanner struct {
	tag uint
}

func (p *eofScanner) Scan(items []rune) util.Option[Token] {
	if len(items) == 0 {
		token := Token{p.tag, NewSpan(0, 0)}
		return util.Some(token)
	}
	//
	return util.None[Token]()
}

// ============================================================================
// Unit Scanner
// ============================================================================

type unitScanner struct {
	item rune
	tag  uint
}

func (p *unitScanner) Scan(items []rune) util.Option[Token] {
	if len(items) > 0 && items[0] == p.item {
		token := Token{p.tag, NewSpan(0, 1)}
		return util.Some(token)
	}
	//
	return util.None[Token]()
}

// ============================================================================
// Many Scanner
// ============================================================================

type manyScanner struct {
	tag   uint
	items []rune
}

func (p *manyScanner) Scan(items []rune) util.Option[Token] {
	i := 0
	//
	for i < len(items) && slices.Contains(p.items, items[i]) {
		i++
	}
	//
	if i != 0 {
		token := Token{p.tag, NewSpan(0, i)}
		return util.Some(token)
	}
	//
	return util.None[Token]()
}

// ============================================================================
// ManyWithin Scanner
// ============================================================================

type manyWithinScanner struct {
	tag   uint
	first rune
	last  rune
}

func (p *manyWithinScanner) Scan(items []rune) util.Option[Token] {
	i := 0
	//
	for i < len(items) && p.first <= items[i] && items[i] <= p.last {
		i++
	}
	//
	if i != 0 {
		token := Token{p.tag, NewSpan(0, i)}
		return util.Some(token)
	}
	//
	return util.None[Token]()
}

// ============================================================================
// Exact Scanner
// ============================================================================

type exactScanner struct {
	tag  uint
	word []rune
}

func (p *exactScanner) Scan(items []rune) util.Option[Token] {
	if len(items) < len(p.word) {
		return util.None[Token]()
	}
	//
	for i, c := range p.word {
		if items[i] != c {
			return util.None[Token]()
		}
	}
	//
	token := Token{p.tag, NewSpan(0, len(p.word))}
	//
	return util.Some(token)
}

// ============================================================================
// Word Scanner
// ============================================================================

type wordScanner struct {
	tag uint
}

func (p *wordScanner) Scan(items []rune) util.Option[Token] {
	i := 0
	//
	for i < len(items) && isWordRune(items[i]) {
		i++
	}
	//
	if i != 0 {
		token := Token{p.tag, NewSpan(0, i)}
		return util.Some(token)
	}
	//
	return util.None[Token]()
}

func isWordRune(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

// ============================================================================
// Quoted Scanner
// ============================================================================

type quotedScanner struct {
	tag uint
}

func (p *quotedScanner) Scan(items []rune) util.Option[Token] {
	if len(items) == 0 || items[0] != '"' {
		return util.None[Token]()
	}
	//
	i := 1
	//
	for i < len(items) {
		switch items[i] {
		case '\\':
			// Escape unit covers the following character as well.
			i += 2
		case '"':
			token := Token{p.tag, NewSpan(0, i+1)}
			return util.Some(token)
		default:
			i++
		}
	}
	// Unterminated literal
	token := Token{p.tag, NewSpan(0, len(items))}
	//
	return util.Some(token)
}

// ============================================================================
// Any Scanner
// ============================================================================

type anyScanner struct {
	tag uint
}

func (p *anyScanner) Scan(items []rune) util.Option[Token] {
	if len(items) > 0 {
		token := Token{p.tag, NewSpan(0, 1)}
		return util.Some(token)
	}
	//
	return util.None[Token]()
}

// ============================================================================
// Or Scanner
// ============================================================================

type orScanner struct {
	scanners []Scanner
}

func (p *orScanner) Scan(items []rune) util.Option[Token] {
	for _, scanner := range p.scanners {
		if res := scanner.Scan(items); res.HasValue() {
			return res
		}
	}
	// Failed
	return util.None[Token]()
}
