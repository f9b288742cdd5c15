// Copyright 2025 walteh LLC
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

// Package report renders run results to the console.
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/walteh/replacerc/pkg/walker"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 45 // base width for file paths
)

// 🎯 Reporter writes human-readable run output. The reporting medium is the
// caller's choice; library code only hands it results.
type Reporter struct {
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a reporter writing to the given console
func New(console io.Writer) *Reporter {
	return &Reporter{console: console}
}

// 📝 Header prints the per-transformation banner
func (r *Reporter) Header(description string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.console, "%s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(description))
}

// 📝 FileEvent prints one visited file with its outcome
func (r *Reporter) FileEvent(ev walker.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	symbol := color.New(color.FgYellow).Sprint("-")
	status := "unchanged"
	if ev.Changed {
		symbol = color.New(color.FgGreen).Sprint("⟳")
		status = "rewritten"
	}
	fmt.Fprintf(r.console, "%*s%s %-*s %s\n",
		fileIndent, "", symbol, nameWidth, ev.Path, status)
}

// 📝 Summary prints the per-run totals
func (r *Reporter) Summary(result *walker.VisitResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.console, "%s %d files visited, %d changed\n",
		color.New(color.FgCyan).Sprint("•"),
		result.FilesVisited, result.FilesChanged)
}

// 📝 Noop reports a run that changed nothing, identified by the
// transformation's description
func (r *Reporter) Noop(description string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.console, "%s Transformation '%s' was a no-op. It didn't affect the working tree.\n",
		color.New(color.FgYellow).Sprint("!"),
		description)
}
