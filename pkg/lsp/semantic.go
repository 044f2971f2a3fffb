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
package lsp

import (
	"go.lsp.dev/protocol"

	"github.com/lilac-lang/lilac/pkg/lilac/highlight"
)

// semanticTokens classifies a document for highlighting.  An unknown document
// yields an empty token set.
func (s *Server) semanticTokens(id protocol.DocumentURI) *protocol.SemanticTokens {
	doc, ok := s.store.Get(id)
	if !ok {
		return &protocol.SemanticTokens{Data: []uint32{}}
	}
	//
	return &protocol.SemanticTokens{Data: EncodeTokens(doc.Text)}
}

// EncodeTokens classifies a document and encodes the result in the protocol's
// relative token format: five integers per token (line delta, column delta,
// length, token type, modifier bitset).  Token types index the highlight
// legend; whitespace and unclassifiable characters are not emitted.
func EncodeTokens(text string) []uint32 {
	var (
		runes             = []rune(text)
		data              = []uint32{}
		line, col         = 0, 0
		prevLine, prevCol = 0, 0
		index             = 0
	)
	//
	for _, t := range highlight.Classify(runes) {
		// Advance line/column to the start of this token.
		for ; index < t.Span.Start(); index++ {
			if runes[index] == '\n' {
				line++
				col = 0
			} else {
				col++
			}
		}
		//
		if t.Class == highlight.WHITESPACE || t.Class == highlight.UNKNOWN {
			continue
		}
		// Column deltas are relative only within the same line.
		deltaCol := col
		if line == prevLine {
			deltaCol = col - prevCol
		}
		//
		data = append(data,
			uint32(line-prevLine), uint32(deltaCol),
			uint32(t.Span.Length()), uint32(t.Class), 0)
		//
		prevLine, prevCol = line, col
	}
	//
	return data
}
