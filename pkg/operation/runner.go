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

package operation

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/ticktools/doctick/pkg/walker"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📄 ProcessFunc processes a single file and returns its result
type ProcessFunc func(ctx context.Context, file string) (walker.Result, error)

// 🏃 Runner executes per-file processing, sequentially or in parallel
type Runner struct {
	logger   *zerolog.Logger
	parallel bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, parallel bool) *Runner {
	return &Runner{
		logger:   logger,
		parallel: parallel,
	}
}

// 🏃 ProcessAll runs fn over every file and returns one result per file,
// in the same order as the input. Files share no state, so the parallel
// path needs no coordination beyond the result slots.
func (r *Runner) ProcessAll(ctx context.Context, files []string, fn ProcessFunc) ([]walker.Result, error) {
	if r.parallel {
		return r.processParallel(ctx, files, fn)
	}
	return r.processSequential(ctx, files, fn)
}

// 🔄 processSequential processes one file fully before the next
func (r *Runner) processSequential(ctx context.Context, files []string, fn ProcessFunc) ([]walker.Result, error) {
	results := make([]walker.Result, 0, len(files))
	for _, file := range files {
		result, err := fn(ctx, file)
		if err != nil {
			return nil, errors.Errorf("processing file %s: %w", file, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// ⚡ processParallel processes files concurrently, bounded by CPU count
func (r *Runner) processParallel(ctx context.Context, files []string, fn ProcessFunc) ([]walker.Result, error) {
	r.logger.Debug().Int("files", len(files)).Int("limit", runtime.NumCPU()).Msg("processing files in parallel")

	results := make([]walker.Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			result, err := fn(ctx, file)
			if err != nil {
				return errors.Errorf("processing file %s: %w", file, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
