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
	"io"
	"os"
)

// Stdio packages the process's standard streams into the single
// io.ReadWriteCloser the jsonrpc2 stream layer expects.
func Stdio() io.ReadWriteCloser {
	return &stdio{os.Stdin, os.Stdout}
}

type stdio struct {
	in  io.ReadCloser
	out io.WriteCloser
}

func (p *stdio) Read(data []byte) (int, error) {
	return p.in.Read(data)
}

func (p *stdio) Write(data []byte) (int, error) {
	return p.out.Write(data)
}

func (p *stdio) Close() error {
	if err := p.in.Close(); err != nil {
		return err
	}
	//
	return p.out.Close()
}
