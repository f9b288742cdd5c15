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

// Package walker applies a compiled replacer to every regular file under a
// root directory accepted by a path filter.
package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔍 Filter is the externally supplied predicate over slash-separated paths
// relative to the tree root. The walker never interprets filter syntax itself.
type Filter interface {
	Accepts(relPath string) bool
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func(relPath string) bool

func (f FilterFunc) Accepts(relPath string) bool {
	return f(relPath)
}

// ⚙️ Replacer rewrites the text content of one file.
type Replacer interface {
	Replace(content string) string
}

// 📄 Event records the outcome of visiting one file.
type Event struct {
	Path    string // path relative to the tree root
	Changed bool
}

// 📊 VisitResult accumulates counters and per-file events for one run.
// Created fresh per Apply invocation.
type VisitResult struct {
	FilesVisited int
	FilesChanged int
	Events       []Event
}

// Noop reports whether the run changed nothing.
func (r *VisitResult) Noop() bool {
	return r.FilesChanged == 0
}

// 🔧 Options configures a tree walk.
type Options struct {
	// Async rewrites files concurrently. The replacer and registry are
	// immutable so only the result counters need coordination.
	Async bool
	// Workers bounds concurrency in async mode. Zero means one worker
	// per CPU.
	Workers int
}

// 🌳 Tree is a working tree rooted at a directory, restricted by a filter.
type Tree struct {
	root   string
	filter Filter
}

// 🏭 New creates a working tree handle. A nil filter accepts every file.
func New(root string, filter Filter) *Tree {
	if filter == nil {
		filter = FilterFunc(func(string) bool { return true })
	}
	return &Tree{root: root, filter: filter}
}

// Root returns the tree's root directory.
func (t *Tree) Root() string {
	return t.root
}

// 🏃 Apply runs the replacer over every accepted regular file, rewriting
// changed files in place with their original permissions. An I/O failure on
// any file aborts the remaining walk; files already rewritten stay rewritten.
func (t *Tree) Apply(ctx context.Context, r Replacer, opts Options) (*VisitResult, error) {
	if opts.Async {
		return t.applyAsync(ctx, r, opts.Workers)
	}

	result := &VisitResult{}
	err := filepath.WalkDir(t.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", path, err)
		}
		rel, ok := t.accepts(path, d)
		if !ok {
			return nil
		}
		changed, err := t.rewriteFile(ctx, path, rel, r)
		if err != nil {
			return err
		}
		result.FilesVisited++
		if changed {
			result.FilesChanged++
		}
		result.Events = append(result.Events, Event{Path: rel, Changed: changed})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyAsync fans the accepted files out over an errgroup. Event order is
// not deterministic in this mode.
func (t *Tree) applyAsync(ctx context.Context, r Replacer, workers int) (*VisitResult, error) {
	type candidate struct {
		path string
		rel  string
	}
	var files []candidate
	err := filepath.WalkDir(t.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", path, err)
		}
		if rel, ok := t.accepts(path, d); ok {
			files = append(files, candidate{path: path, rel: rel})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &VisitResult{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, f := range files {
		path, rel := f.path, f.rel
		g.Go(func() error {
			changed, err := t.rewriteFile(gctx, path, rel, r)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			result.FilesVisited++
			if changed {
				result.FilesChanged++
			}
			result.Events = append(result.Events, Event{Path: rel, Changed: changed})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// accepts decides whether a walked entry is a candidate file, returning its
// filter-relative path.
func (t *Tree) accepts(path string, d fs.DirEntry) (string, bool) {
	if !d.Type().IsRegular() {
		return "", false
	}
	rel, err := t.relPath(path)
	if err != nil {
		return "", false
	}
	if !t.filter.Accepts(rel) {
		return "", false
	}
	return rel, true
}

func (t *Tree) relPath(path string) (string, error) {
	rel, err := filepath.Rel(t.root, path)
	if err != nil {
		return "", errors.Errorf("relativizing %s: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}

// rewriteFile reads one file, applies the replacer, and writes the result
// back only when content changed.
func (t *Tree) rewriteFile(ctx context.Context, path, rel string, r Replacer) (bool, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return false, errors.Errorf("stating %s: %w", rel, err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Errorf("reading %s: %w", rel, err)
	}

	content := string(raw)
	rewritten := r.Replace(content)
	if rewritten == content {
		logger.Debug().Str("file", rel).Msg("file unchanged")
		return false, nil
	}

	if err := os.WriteFile(path, []byte(rewritten), info.Mode().Perm()); err != nil {
		return false, errors.Errorf("writing %s: %w", rel, err)
	}
	logger.Debug().Str("file", rel).Msg("file rewritten")
	return true, nil
}
