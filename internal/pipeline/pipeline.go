// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one conversion run: discover input files,
// confirm the output target, dispatch bounded concurrent conversions,
// collect results as they complete, restore discovery order, and write the
// combined document in a single pass.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/html2md/internal/clean"
)

// Converter turns one document's cleaned markup into Markdown.
// *gemini.Client satisfies it; tests supply stubs.
type Converter interface {
	Convert(ctx context.Context, cleanedHTML, label string) (string, error)
}

// Result is one converted document. Title is presentational only; ordering
// is tracked by discovery index, never by title.
type Result struct {
	Title    string
	Markdown string
}

// Summary reports a finished run.
type Summary struct {
	Found      int
	Processed  int
	OutputPath string
}

// Runner drives one conversion run. Every field except Converter is
// optional; zero values fall back to sensible defaults.
type Runner struct {
	Cleaner       *clean.Cleaner
	Converter     Converter
	ResolveOutput OutputResolver
	Logger        *slog.Logger
	Out           io.Writer // user-facing progress, distinct from logging

	MaxConcurrent int
	Separator     string
	AddHeaders    bool
	Ext           string // input extension, ".html" when empty
}

func (r *Runner) ext() string {
	if r.Ext == "" {
		return ".html"
	}
	return r.Ext
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Run converts every matching file in dir into one combined Markdown
// document named outputName inside dir. An empty directory is a normal
// exit; cancellation at the output prompt surfaces as ErrCancelled.
func (r *Runner) Run(ctx context.Context, dir, outputName string) (Summary, error) {
	entries, err := Discover(dir, r.ext())
	if err != nil {
		return Summary{}, err
	}
	r.logger().InfoContext(ctx, "discovered input files", "dir", dir, "count", len(entries))

	if len(entries) == 0 {
		fmt.Fprintln(r.out(), "No HTML files found in the directory.")
		return Summary{}, nil
	}

	outputPath, err := r.confirmOutput(filepath.Join(dir, outputName))
	if err != nil {
		return Summary{}, err
	}

	fmt.Fprintf(r.out(), "Processing %d HTML files...\n", len(entries))

	results := r.dispatch(ctx, entries)
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	if err := writeOutput(outputPath, results, r.Separator, r.AddHeaders); err != nil {
		return Summary{}, err
	}

	fmt.Fprintf(r.out(), "Conversion completed! Output saved to: %s\n", outputPath)
	fmt.Fprintf(r.out(), "Successfully processed %d out of %d files.\n", len(results), len(entries))

	return Summary{
		Found:      len(entries),
		Processed:  len(results),
		OutputPath: outputPath,
	}, nil
}

// taskResult carries one task's outcome back to the collector. The index
// keys the result to its discovery position so out-of-order completion
// cannot reorder the output.
type taskResult struct {
	index  int
	result Result
	err    error
}

// dispatch launches one conversion task per entry, bounded by the
// concurrency ceiling, and collects results in completion order. A failed
// task is logged and dropped; its siblings keep running. The returned
// slice is in discovery order.
func (r *Runner) dispatch(ctx context.Context, entries []Entry) []Result {
	limit := r.MaxConcurrent
	if limit <= 0 {
		limit = 1
	}
	sem := semaphore.NewWeighted(int64(limit))
	resultCh := make(chan taskResult)

	for i, entry := range entries {
		go func(index int, entry Entry) {
			res, err := r.processOne(ctx, sem, entry, index, len(entries))
			resultCh <- taskResult{index: index, result: res, err: err}
		}(i, entry)
	}

	byIndex := make([]*Result, len(entries))
	completed := 0
	for range entries {
		tr := <-resultCh
		if tr.err != nil {
			r.logger().ErrorContext(ctx, "file failed",
				"path", entries[tr.index].Path, "error", tr.err)
			continue
		}
		completed++
		fmt.Fprintf(r.out(), "Completed %s (%d/%d)\n", tr.result.Title, completed, len(entries))
		byIndex[tr.index] = &tr.result
	}

	results := make([]Result, 0, completed)
	for _, res := range byIndex {
		if res != nil {
			results = append(results, *res)
		}
	}
	return results
}

// processOne handles a single file: acquire a concurrency permit, read,
// clean, convert. The permit covers the whole task so the ceiling bounds
// in-flight conversions, not just API calls.
func (r *Runner) processOne(ctx context.Context, sem *semaphore.Weighted, entry Entry, index, total int) (Result, error) {
	if err := sem.Acquire(ctx, 1); err != nil {
		return Result{}, err
	}
	defer sem.Release(1)

	name := filepath.Base(entry.Path)
	r.logger().InfoContext(ctx, "processing file",
		"file", name, "position", index+1, "total", total)

	raw, err := os.ReadFile(entry.Path)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", entry.Path, err)
	}

	cleaned := string(raw)
	if r.Cleaner != nil {
		cleaned, err = r.Cleaner.Clean(cleaned)
		if err != nil {
			return Result{}, fmt.Errorf("cleaning %s: %w", name, err)
		}
	}

	markdown, err := r.Converter.Convert(ctx, cleaned, name)
	if err != nil {
		return Result{}, err
	}

	return Result{Title: clean.DeriveTitle(name), Markdown: markdown}, nil
}
