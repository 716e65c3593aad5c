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

// Package log prints the per-file change report and keeps a structured
// trail in zerolog.
package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎯 FileOperation represents one processed file for logging
type FileOperation struct {
	Path         string // File path, relative to the walk root
	ChangedLines int    // Number of doc lines that changed
	Rewritten    bool   // Whether the file was written back
	DryRun       bool   // Whether this was a dry run
}

// 🎯 Logger handles the console report with a structured log behind it
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 📝 Header logs the run header
func (l *Logger) Header(root string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	doctickText := color.New(color.Bold, color.FgCyan).Sprint("doctick")
	fmt.Fprintf(l.console, "%s %s\n", doctickText, color.New(color.Faint).Sprint("• annotating doc comments in "+root))
	l.zlog.Info().Str("root", root).Msg("starting run")
}

// 📝 LogFileOperation logs one changed file
func (l *Logger) LogFileOperation(op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	symbol := color.New(color.FgGreen).Sprint("✓")
	if op.DryRun {
		symbol = color.New(color.FgYellow).Sprint("~")
	}
	fmt.Fprintf(l.console, "%s %s: %d lines updated\n", symbol, op.Path, op.ChangedLines)

	l.zlog.Info().
		Str("file", op.Path).
		Int("changed_lines", op.ChangedLines).
		Bool("rewritten", op.Rewritten).
		Bool("dry_run", op.DryRun).
		Msg("file annotated")
}

// 📝 Summary logs the total after all files are processed
func (l *Logger) Summary(total int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "\nTotal: %d doc comments updated\n", total)
	l.zlog.Info().Int("total", total).Msg("run complete")
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}
