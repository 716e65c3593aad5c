// Copyright 2025 ticktools LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package operation ties config, walker, and logger together into the
// annotate run.
package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/ticktools/doctick/pkg/config"
	"github.com/ticktools/doctick/pkg/log"
	"github.com/ticktools/doctick/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation defines a runnable doctick operation
type Operation interface {
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for an operation
type Options struct {
	// Config is the doctick configuration
	Config *config.Config
	// Walker enumerates and processes files
	Walker *walker.Walker
	// Logger prints the per-file report
	Logger *log.Logger
}

// 🏭 NewAnnotateOperation creates the annotate operation
func NewAnnotateOperation(opts Options) (Operation, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Walker == nil {
		return nil, errors.Errorf("walker is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	return &annotateOperation{
		config: opts.Config,
		walker: opts.Walker,
		logger: opts.Logger,
	}, nil
}

// 🖊️ annotateOperation implements the annotate run
type annotateOperation struct {
	config *config.Config
	walker *walker.Walker
	logger *log.Logger
}

// 🏃 Execute enumerates the files, processes each one, and reports the
// per-file and total change counts. The total is accumulated here, not in
// package state, so concurrent runs cannot interfere.
func (op *annotateOperation) Execute(ctx context.Context) error {
	zlog := zerolog.Ctx(ctx)

	files, err := op.walker.Files(ctx)
	if err != nil {
		return errors.Errorf("enumerating files: %w", err)
	}

	op.logger.Header(op.config.Root)

	runner := NewRunner(zlog, op.config.Async)
	results, err := runner.ProcessAll(ctx, files, op.walker.ProcessFile)
	if err != nil {
		return err
	}

	total := 0
	for _, result := range results {
		if result.ChangedLines == 0 {
			continue
		}
		op.logger.LogFileOperation(log.FileOperation{
			Path:         result.Path,
			ChangedLines: result.ChangedLines,
			Rewritten:    result.Rewritten,
			DryRun:       op.config.DryRun,
		})
		total += result.ChangedLines
	}

	op.logger.Summary(total)
	return nil
}
