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

// Package annotate wraps identifier-like tokens in documentation comment
// lines with backticks. It recognizes three token shapes: call-like tokens
// (name followed by an empty parenthesis pair), snake_case identifiers,
// and PascalCase type names.
package annotate

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultMarker is the prefix that identifies a documentation comment line.
const DefaultMarker = "///"

// 🔄 Rule is a single pattern/replacement pass over a doc line.
type Rule struct {
	Name    string         // Rule name for logging
	Pattern *regexp.Regexp // Match pattern
	Replace string         // Replacement template
}

// The three rules run in this order. Each one captures a leading boundary,
// the token itself, and a trailing boundary, and rewrites only the token.
// Matching is deliberately a whitespace/punctuation-delimited heuristic,
// not a lexer for the source language.
var rules = []Rule{
	{
		// fish_add_path() -> `fish_add_path()`
		Name:    "call-like",
		Pattern: regexp.MustCompile(`(\s)([a-zA-Z_][a-zA-Z0-9_]*\(\))(\s)`),
		Replace: "${1}`${2}`${3}",
	},
	{
		// fish_add_path -> `fish_add_path`, also before . , ; ) ]
		Name:    "snake_case",
		Pattern: regexp.MustCompile(`(\s)([a-z_][a-z0-9_]*_[a-z0-9_]+)(\s|[.,;)\]])`),
		Replace: "${1}`${2}`${3}",
	},
	{
		// PathBuf -> `PathBuf` (requires at least two uppercase letters)
		Name:    "PascalCase",
		Pattern: regexp.MustCompile(`(\s)([A-Z][a-zA-Z0-9]*[A-Z][a-zA-Z0-9]*)(\s)`),
		Replace: "${1}`${2}`${3}",
	},
}

// 🖊️ Annotator applies the substitution rules to doc comment lines.
type Annotator struct {
	marker string
}

// 🏭 New creates an Annotator that recognizes doc lines by the given
// marker. An empty marker falls back to DefaultMarker.
func New(marker string) *Annotator {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Annotator{marker: marker}
}

// 🔍 IsDocLine reports whether the line, after discarding leading
// whitespace, begins with the doc comment marker.
func (a *Annotator) IsDocLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), a.marker)
}

// 📝 AnnotateLine returns the line with qualifying tokens wrapped in
// backticks. Non-doc lines are returned unchanged. The line should include
// its trailing terminator so end-of-line tokens still see a whitespace
// boundary.
func (a *Annotator) AnnotateLine(line string) string {
	if !a.IsDocLine(line) {
		return line
	}
	for _, rule := range rules {
		line = rule.Pattern.ReplaceAllString(line, rule.Replace)
	}
	return line
}

// 📝 AnnotateLines applies AnnotateLine to every line in place and returns
// the number of lines that changed.
func (a *Annotator) AnnotateLines(lines []string) int {
	changed := 0
	for i, line := range lines {
		newLine := a.AnnotateLine(line)
		if newLine != line {
			changed++
		}
		lines[i] = newLine
	}
	return changed
}

// ✂️ SplitLines splits content into physical lines, each keeping its
// trailing terminator. Concatenating the result reproduces the input
// byte-for-byte; CRLF sequences stay inside their line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	// SplitAfter leaves a trailing empty element when content ends in \n.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
