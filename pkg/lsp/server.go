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

// Package lsp implements the editor-facing half of the Lilac tooling: a
// language server which synchronises documents over the Language Server
// Protocol, feeds their text through the core parser and validator, and
// relays the resulting diagnostics back to the editor.  The core itself knows
// nothing of this package.
package lsp

import (
	"context"
	"encoding/json"
	"io"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/lilac-lang/lilac/pkg/lilac/highlight"
)

// Config carries the position-insensitive settings negotiated with the
// editor.  It is injected into the server rather than held by the core.
type Config struct {
	// MaxProblems bounds how many diagnostics are published per document.
	MaxProblems int
}

// DefaultConfig returns the settings used before the editor sends any.
func DefaultConfig() Config {
	return Config{MaxProblems: 100}
}

// Server is a Lilac language server on a single jsonrpc2 connection.
type Server struct {
	conn   jsonrpc2.Conn
	logger *zap.Logger
	store  *DocumentStore
	config Config
	// Set once shutdown has been requested.
	shutdown bool
}

// NewServer constructs a server with a given logger and initial settings.
func NewServer(logger *zap.Logger, config Config) *Server {
	return &Server{
		logger: logger,
		store:  NewDocumentStore(),
		config: config,
	}
}

// Run services a single editor connection until it closes.
func (s *Server) Run(ctx context.Context, rwc io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	s.conn = conn
	//
	conn.Go(ctx, s.handle)
	<-conn.Done()
	//
	if err := conn.Err(); err != nil && err != io.EOF {
		return err
	}
	//
	return nil
}

// handle dispatches one incoming request or notification.
func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.logger.Debug("request", zap.String("method", req.Method()))
	//
	switch req.Method() {
	case protocol.MethodInitialize:
		return reply(ctx, s.initialize(), nil)
	case protocol.MethodInitialized:
		return reply(ctx, nil, nil)
	case protocol.MethodShutdown:
		s.shutdown = true
		return reply(ctx, nil, nil)
	case protocol.MethodExit:
		if !s.shutdown {
			s.logger.Warn("exit received without shutdown")
		}
		//
		return s.conn.Close()
	case protocol.MethodTextDocumentDidOpen:
		var params protocol.DidOpenTextDocumentParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return replyParseError(ctx, reply, err)
		}
		//
		doc := s.store.Open(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
		s.publishDiagnostics(ctx, doc)
		//
		return reply(ctx, nil, nil)
	case protocol.MethodTextDocumentDidChange:
		var params protocol.DidChangeTextDocumentParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return replyParseError(ctx, reply, err)
		}
		// Full synchronisation: the final change carries the whole text.
		if n := len(params.ContentChanges); n > 0 {
			text := params.ContentChanges[n-1].Text
			doc := s.store.Update(params.TextDocument.URI, text, params.TextDocument.Version)
			s.publishDiagnostics(ctx, doc)
		}
		//
		return reply(ctx, nil, nil)
	case protocol.MethodTextDocumentDidClose:
		var params protocol.DidCloseTextDocumentParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return replyParseError(ctx, reply, err)
		}
		//
		s.store.Close(params.TextDocument.URI)
		// Clear any published diagnostics for the closed document.
		s.publish(ctx, params.TextDocument.URI, 0, nil)
		//
		return reply(ctx, nil, nil)
	case protocol.MethodWorkspaceDidChangeConfiguration:
		var params protocol.DidChangeConfigurationParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return replyParseError(ctx, reply, err)
		}
		//
		s.config = s.config.merge(params.Settings)
		s.logger.Debug("settings", zap.Int("maxProblems", s.config.MaxProblems))
		//
		return reply(ctx, nil, nil)
	case protocol.MethodSemanticTokensFull:
		var params protocol.SemanticTokensParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return replyParseError(ctx, reply, err)
		}
		//
		return reply(ctx, s.semanticTokens(params.TextDocument.URI), nil)
	}
	//
	return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
}

// initialize advertises the server's capabilities: full-text document
// synchronisation plus the lexical-classification legend used for
// highlighting.
func (s *Server) initialize() *protocol.InitializeResult {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			SemanticTokensProvider: map[string]interface{}{
				"legend": map[string]interface{}{
					"tokenTypes":     highlight.Classes(),
					"tokenModifiers": []string{},
				},
				"full": true,
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "lilac-ls",
			Version: "0.1.0",
		},
	}
}

// merge overlays whatever settings the editor sent onto the current
// configuration, ignoring anything unrecognised.
func (p Config) merge(settings interface{}) Config {
	var overlay struct {
		Lilac struct {
			MaxProblems *int `json:"maxProblems"`
		} `json:"lilac"`
	}
	//
	bytes, err := json.Marshal(settings)
	if err != nil {
		return p
	}
	//
	if err := json.Unmarshal(bytes, &overlay); err != nil {
		return p
	}
	//
	if overlay.Lilac.MaxProblems != nil && *overlay.Lilac.MaxProblems >= 0 {
		p.MaxProblems = *overlay.Lilac.MaxProblems
	}
	//
	return p
}

func replyParseError(ctx context.Context, reply jsonrpc2.Replier, err error) error {
	return reply(ctx, nil, err)
}
