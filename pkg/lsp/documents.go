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
	"sync"

	"go.lsp.dev/uri"
)

// Document is one open text document, as synchronised from the editor.
type Document struct {
	URI     uri.URI
	Text    string
	Version int32
}

// DocumentStore tracks the text of every open document.  The language core
// itself holds no state between invocations; this store is the caller-side
// cache the core's contract expects.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[uri.URI]*Document
}

// NewDocumentStore constructs an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[uri.URI]*Document)}
}

// Open registers a document with its initial text.
func (p *DocumentStore) Open(id uri.URI, text string, version int32) *Document {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	doc := &Document{id, text, version}
	p.docs[id] = doc
	//
	return doc
}

// Update replaces the full text of an open document.  Updating an unknown
// document registers it, which keeps the server robust against missed
// didOpen notifications.
func (p *DocumentStore) Update(id uri.URI, text string, version int32) *Document {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	doc, ok := p.docs[id]
	if !ok {
		doc = &Document{URI: id}
		p.docs[id] = doc
	}
	//
	doc.Text = text
	doc.Version = version
	//
	return doc
}

// Close removes a document from the store.
func (p *DocumentStore) Close(id uri.URI) {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	delete(p.docs, id)
}

// Get returns the document registered for a given URI (if any).
func (p *DocumentStore) Get(id uri.URI) (*Document, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	//
	doc, ok := p.docs[id]
	//
	return doc, ok
}
