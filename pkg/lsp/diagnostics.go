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
	"context"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/lilac-lang/lilac/pkg/lilac"
	"github.com/lilac-lang/lilac/pkg/source"
)

// Diagnose runs the core parser and validator over a document's text,
// translating the results into protocol diagnostics.  Syntax errors are
// reported first, followed by at most one structural diagnostic per function;
// the total is clamped to the configured maximum.
func Diagnose(id uri.URI, text string, config Config) []protocol.Diagnostic {
	var (
		diags  []protocol.Diagnostic
		file   = source.NewFile(string(id), []byte(text))
		parser = lilac.NewParser(file)
	)
	//
	functions, errs := parser.ParseAll()
	srcmap := parser.SourceMap()
	//
	for _, e := range errs {
		diags = append(diags, diagnostic(file, e.Span(), protocol.DiagnosticSeverityError, e.Message()))
	}
	//
	for _, fn := range functions {
		if d := lilac.Validate(fn); d.HasValue() {
			var (
				problem = d.Unwrap()
				span    = source.NewSpan(0, 0)
			)
			// Locate the offending node, where possible.
			if problem.Subject != nil && srcmap.Has(problem.Subject) {
				span = srcmap.Get(problem.Subject)
			}
			//
			diags = append(diags, diagnostic(file, span, severityOf(problem.Severity), problem.Message))
		}
	}
	//
	if config.MaxProblems >= 0 && len(diags) > config.MaxProblems {
		diags = diags[:config.MaxProblems]
	}
	//
	return diags
}

// publishDiagnostics pushes the current diagnostics for a given document to
// the editor.
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	diags := Diagnose(doc.URI, doc.Text, s.config)
	s.publish(ctx, doc.URI, uint32(doc.Version), diags)
}

func (s *Server) publish(ctx context.Context, id uri.URI, version uint32, diags []protocol.Diagnostic) {
	// The protocol requires an array, even when empty.
	if diags == nil {
		diags = []protocol.Diagnostic{}
	}
	//
	params := &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(id),
		Version:     version,
		Diagnostics: diags,
	}
	//
	if err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, params); err != nil {
		s.logger.Warn("publish failed", zap.String("uri", string(id)), zap.Error(err))
	}
}

func diagnostic(file *source.File, span source.Span, severity protocol.DiagnosticSeverity, msg string) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    rangeOf(file, span),
		Severity: severity,
		Source:   "lilac",
		Message:  msg,
	}
}

// rangeOf converts a rune span into zero-based line/column coordinates.
func rangeOf(file *source.File, span source.Span) protocol.Range {
	return protocol.Range{
		Start: positionOf(file, span.Start()),
		End:   positionOf(file, span.End()),
	}
}

func positionOf(file *source.File, index int) protocol.Position {
	pos := file.PositionOf(index)
	return protocol.Position{Line: uint32(pos.Line), Character: uint32(pos.Column)}
}

func severityOf(severity lilac.Severity) protocol.DiagnosticSeverity {
	switch severity {
	case lilac.ERROR:
		return protocol.DiagnosticSeverityError
	case lilac.WARNING:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}
