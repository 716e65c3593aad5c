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

// Package walker enumerates the files selected by the configured globs and
// rewrites the ones whose doc comments change.
package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/ticktools/doctick/pkg/annotate"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures a Walker.
type Options struct {
	Root      string              // Root directory to walk
	Include   []string            // Doublestar globs, relative to root
	Ignore    []string            // Doublestar globs for files to skip
	DryRun    bool                // Process and count, but never write
	Annotator *annotate.Annotator // Line annotator to apply
}

// 📄 Result describes the outcome of processing one file.
type Result struct {
	Path         string // Path relative to the root
	ChangedLines int    // Number of lines that changed
	Rewritten    bool   // Whether the file was written back
}

// 🚶 Walker walks a tree and processes matching files one at a time.
type Walker struct {
	opts Options
}

// 🏭 New creates a Walker. Glob patterns are validated up front so a bad
// pattern fails the run before any file is touched.
func New(opts Options) (*Walker, error) {
	if opts.Root == "" {
		return nil, errors.Errorf("root is required")
	}
	if len(opts.Include) == 0 {
		return nil, errors.Errorf("at least one include pattern is required")
	}
	if opts.Annotator == nil {
		return nil, errors.Errorf("annotator is required")
	}
	for _, pattern := range append(append([]string{}, opts.Include...), opts.Ignore...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid glob pattern: %s", pattern)
		}
	}
	return &Walker{opts: opts}, nil
}

// 🔍 Files returns the paths (relative to root) of all regular files that
// match an include pattern and no ignore pattern. Order follows the
// directory walk; callers must not rely on it.
func (w *Walker) Files(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	var files []string
	err := filepath.WalkDir(w.opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.opts.Root, path)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)
		if !w.matches(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("enumerating files under %s: %w", w.opts.Root, err)
	}

	logger.Debug().Int("count", len(files)).Str("root", w.opts.Root).Msg("enumerated files")
	return files, nil
}

// 🎯 matches checks a slash-separated relative path against the globs.
func (w *Walker) matches(rel string) bool {
	for _, pattern := range w.opts.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	for _, pattern := range w.opts.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// 📄 ProcessFile reads one file, annotates its doc lines, and rewrites it
// if anything changed. The file is replaced atomically so a failure leaves
// either the old content or the new content, never a mix.
func (w *Walker) ProcessFile(ctx context.Context, rel string) (Result, error) {
	logger := zerolog.Ctx(ctx)
	result := Result{Path: rel}

	path := filepath.Join(w.opts.Root, filepath.FromSlash(rel))
	data, err := os.ReadFile(path)
	if err != nil {
		return result, errors.Errorf("reading %s: %w", rel, err)
	}
	if !utf8.Valid(data) {
		return result, errors.Errorf("decoding %s: content is not valid UTF-8", rel)
	}

	lines := annotate.SplitLines(string(data))
	result.ChangedLines = w.opts.Annotator.AnnotateLines(lines)
	if result.ChangedLines == 0 {
		logger.Debug().Str("file", rel).Msg("no doc lines changed")
		return result, nil
	}
	if w.opts.DryRun {
		logger.Debug().Str("file", rel).Int("lines", result.ChangedLines).Msg("dry-run, skipping write")
		return result, nil
	}

	if err := w.writeAtomic(path, strings.Join(lines, "")); err != nil {
		return result, errors.Errorf("rewriting %s: %w", rel, err)
	}
	result.Rewritten = true

	logger.Debug().Str("file", rel).Int("lines", result.ChangedLines).Msg("rewrote file")
	return result, nil
}

// 💾 writeAtomic writes content to a temp file next to path, matches the
// original mode, and renames it over the original.
func (w *Walker) writeAtomic(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Errorf("getting file mode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".doctick-*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(info.Mode()); err != nil {
		tmp.Close()
		return errors.Errorf("setting temp file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Errorf("replacing file: %w", err)
	}
	return nil
}
