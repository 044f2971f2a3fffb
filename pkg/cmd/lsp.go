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
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lilac-lang/lilac/pkg/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "run the Lilac language server over stdio.",
	Long: `Run a language server speaking the Language Server Protocol on
	stdin/stdout, synchronising documents from the editor and publishing
	diagnostics produced by the parser and validator.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		// Protocol traffic owns stdout, so the server logs to stderr.
		zapConfig := zap.NewDevelopmentConfig()
		zapConfig.OutputPaths = []string{"stderr"}
		//
		if !getFlag(cmd, "verbose") {
			zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}
		//
		logger, err := zapConfig.Build()
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//nolint:errcheck
		defer logger.Sync()
		//
		config := lsp.DefaultConfig()
		config.MaxProblems = int(getUint(cmd, "max-problems"))
		//
		log.Debug("starting language server on stdio")
		//
		server := lsp.NewServer(logger, config)
		if err := server.Run(context.Background(), lsp.Stdio()); err != nil {
			logger.Error("server terminated", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(lspCmd)
	lspCmd.Flags().Uint("max-problems", 100, "limit the number of diagnostics published per document")
}
